package rules

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/gojslint/pkg/config"
	"github.com/yaklabco/gojslint/pkg/finding"
	"github.com/yaklabco/gojslint/pkg/lint"
)

// GoldenTestCase represents a single golden file test case.
type GoldenTestCase struct {
	// Name is the test case name derived from the file path.
	Name string

	// InputPath is the absolute path to the input JavaScript file.
	InputPath string

	// GoldenPath is the path to the expected output after fixes.
	GoldenPath string

	// DiagsJSONPath is the path to the expected findings of the input.
	DiagsJSONPath string

	// RuleID is the only rule enabled for the case.
	RuleID string
}

// DiagExpectation represents an expected finding in JSON format.
type DiagExpectation struct {
	Rule     string `json:"rule"`
	Line     int    `json:"line"`
	Column   int    `json:"column"`
	Message  string `json:"message"`
	Severity string `json:"severity"`
	Fixable  bool   `json:"fixable"`
}

func diagFromFinding(f finding.Finding) DiagExpectation {
	return DiagExpectation{
		Rule:     f.RuleID,
		Line:     f.Line,
		Column:   f.Column,
		Message:  f.Message,
		Severity: f.Severity.String(),
		Fixable:  f.HasFix(),
	}
}

// discoverTestCases walks the testdata directory. Each subdirectory is
// named after the rule its cases run.
func discoverTestCases(t *testing.T, baseDir string) []GoldenTestCase {
	t.Helper()

	cases := make([]GoldenTestCase, 0)

	entries, err := os.ReadDir(baseDir)
	if err != nil {
		if os.IsNotExist(err) {
			return cases
		}
		t.Fatalf("failed to read testdata directory: %v", err)
	}

	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}

		ruleID := entry.Name()
		dirPath := filepath.Join(baseDir, ruleID)

		inputFiles, err := filepath.Glob(filepath.Join(dirPath, "*.input.js"))
		if err != nil {
			t.Fatalf("failed to glob input files in %s: %v", dirPath, err)
		}

		for _, inputPath := range inputFiles {
			baseName := strings.TrimSuffix(filepath.Base(inputPath), ".input.js")
			cases = append(cases, GoldenTestCase{
				Name:          filepath.Join(ruleID, baseName),
				InputPath:     inputPath,
				GoldenPath:    filepath.Join(dirPath, baseName+".golden.js"),
				DiagsJSONPath: filepath.Join(dirPath, baseName+".diags.json"),
				RuleID:        ruleID,
			})
		}
	}

	return cases
}

// onlyRuleConfig turns every registered rule off except ruleID.
func onlyRuleConfig(registry *lint.Registry, ruleID string) *config.Config {
	cfg := config.NewConfig()
	for _, id := range registry.IDs() {
		cfg.SetRule(id, config.SeverityOff)
	}
	cfg.SetRule(ruleID, config.SeverityError)
	return cfg
}

// loadExpectedDiags loads the expected findings from a JSON file.
// Returns nil if the file doesn't exist.
func loadExpectedDiags(t *testing.T, path string) []DiagExpectation {
	t.Helper()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		t.Fatalf("failed to read diagnostics file %s: %v", path, err)
	}

	if len(bytes.TrimSpace(data)) == 0 {
		return []DiagExpectation{}
	}

	var diags []DiagExpectation
	if err := json.Unmarshal(data, &diags); err != nil {
		t.Fatalf("failed to parse diagnostics JSON %s: %v", path, err)
	}

	return diags
}

// compareDiags compares findings with the expectation file, or rewrites
// it when update is set.
func compareDiags(t *testing.T, found []finding.Finding, path string, update bool) {
	t.Helper()

	actual := make([]DiagExpectation, len(found))
	for i, f := range found {
		actual[i] = diagFromFinding(f)
	}

	if update {
		data, err := json.MarshalIndent(actual, "", "  ")
		require.NoError(t, err)
		writeGoldenFile(t, path, append(data, '\n'))
		return
	}

	expected := loadExpectedDiags(t, path)
	if expected == nil {
		t.Fatalf("missing diagnostics file %s (run with -update to create)", path)
	}
	assert.Equal(t, expected, actual)
}

// writeGoldenFile writes content to a golden file.
func writeGoldenFile(t *testing.T, path string, content []byte) {
	t.Helper()

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("failed to create directory for %s: %v", path, err)
	}

	if err := os.WriteFile(path, content, 0o644); err != nil {
		t.Fatalf("failed to write golden file %s: %v", path, err)
	}

	t.Logf("Updated golden file: %s", path)
}

// compareWithGolden compares actual bytes with the golden file.
// If update is true, it updates the golden file instead of comparing.
func compareWithGolden(t *testing.T, actualBytes []byte, goldenPath string, update bool) {
	t.Helper()

	if update {
		writeGoldenFile(t, goldenPath, actualBytes)
		return
	}

	expected, err := os.ReadFile(goldenPath)
	if os.IsNotExist(err) {
		t.Fatalf("missing golden file %s (run with -update to create)", goldenPath)
	}
	require.NoError(t, err)
	assert.Equal(t, string(expected), string(actualBytes), "output differs from %s", goldenPath)
}
