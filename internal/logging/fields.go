package logging

// Structured logging keys.
const (
	FieldError      = "error"
	FieldPath       = "path"
	FieldPaths      = "paths"
	FieldFiles      = "files"
	FieldInput      = "input"
	FieldOutput     = "output"
	FieldWorkingDir = "working_dir"

	FieldConfig = "config"
	FieldLayer  = "layer"
	FieldFix    = "fix"
	FieldDryRun = "dry_run"
	FieldJobs   = "jobs"

	FieldPass     = "pass"
	FieldApplied  = "applied"
	FieldRejected = "rejected"
	FieldCircular = "circular"

	FieldFilesDiscovered = "files_discovered"
	FieldFilesProcessed  = "files_processed"
	FieldFilesWithIssues = "files_with_issues"
	FieldFindingsTotal   = "findings_total"
	FieldSuppressed      = "suppressed"
	FieldFilesModified   = "files_modified"
	FieldCacheHit        = "cache_hit"

	FieldVersion = "version"
	FieldCommit  = "commit"
	FieldBuilt   = "built"

	FieldRule        = "rule"
	FieldName        = "name"
	FieldSeverity    = "severity"
	FieldFixable     = "fixable"
	FieldDescription = "description"
	FieldRules       = "rules"
	FieldPack        = "pack"
	FieldAliases     = "aliases"
)
