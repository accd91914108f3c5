package suppress

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/yaklabco/gojslint/pkg/directive"
	"github.com/yaklabco/gojslint/pkg/finding"
	"github.com/yaklabco/gojslint/pkg/fix"
)

const ws = `[` + directive.SpaceClass + `]`

//nolint:gochecknoglobals // Compiled once.
var (
	// listStartPattern skips the leading whitespace and keyword of a
	// comment value.
	listStartPattern = regexp.MustCompile(`^` + ws + `*[^` + directive.SpaceClass + `]+` + ws + `+`)

	justificationSplit = regexp.MustCompile(ws + `-{2,}` + ws)
)

// unusedReports builds one report per unused comment or per unused rule in
// a partly used comment.
func (r *run) unusedReports() []finding.Finding {
	var reports []finding.Finding
	for idx := range r.in.Directives {
		d := &r.in.Directives[idx]

		usage := r.used
		if !d.Kind.IsDisable() {
			usage = r.enabled
		}

		if d.AppliesToAll() {
			if !usage[usageKey{directive: idx}] {
				reports = append(reports, r.report(d, nil, r.commentRemoval(d)))
			}
			continue
		}

		var unused []string
		for _, id := range d.RuleIDs {
			if !usage[usageKey{directive: idx, ruleID: id}] {
				unused = append(unused, id)
			}
		}
		if len(unused) == 0 {
			continue
		}

		if len(unused) == len(d.ListedIDs) {
			reports = append(reports, r.report(d, unused, r.commentRemoval(d)))
			continue
		}
		for _, id := range unused {
			reports = append(reports, r.report(d, []string{id}, r.listRemoval(d, id)))
		}
	}
	return reports
}

func (r *run) report(d *directive.Directive, ruleIDs []string, edit *fix.TextEdit) finding.Finding {
	return finding.Finding{
		Severity: r.in.ReportUnused,
		Message:  unusedMessage(d.Kind, ruleIDs),
		Line:     d.Line,
		Column:   d.Column,
		Fix:      edit,
	}
}

// unusedMessage formats the report text. Rule lists read
// "'a'", "'a' or 'b'" and "'a', 'b', or 'c'".
func unusedMessage(kind directive.Kind, ruleIDs []string) string {
	quoted := make([]string, len(ruleIDs))
	for i, id := range ruleIDs {
		quoted[i] = "'" + id + "'"
	}

	var list string
	if len(quoted) <= 2 {
		list = strings.Join(quoted, " or ")
	} else {
		list = strings.Join(quoted[:len(quoted)-1], ", ") + ", or " + quoted[len(quoted)-1]
	}

	if kind.IsDisable() {
		if list == "" {
			return "Unused disable directive (no problems were reported)."
		}
		return fmt.Sprintf("Unused disable directive (no problems were reported from %s).", list)
	}
	if list == "" {
		return "Unused enable directive (no matching disable directives were found)."
	}
	return fmt.Sprintf("Unused enable directive (no matching disable directives were found for %s).", list)
}

// commentRemoval replaces the whole comment with a single space.
func (r *run) commentRemoval(d *directive.Directive) *fix.TextEdit {
	edit := fix.Replace(d.Comment.Range.Start, d.Comment.Range.End, " ")
	return &edit
}

// listRemoval removes one identifier from the comment's rule list together
// with exactly one neighbouring comma. When the identifier sits between two
// commas the span between them goes, leaving the other comma in place.
func (r *run) listRemoval(d *directive.Directive, ruleID string) *fix.TextEdit {
	value := d.Comment.Value

	listStart := 0
	if loc := listStartPattern.FindStringIndex(value); loc != nil {
		listStart = loc[1]
	}
	listText := value[listStart:]
	if loc := justificationSplit.FindStringIndex(listText); loc != nil {
		listText = listText[:loc[0]]
	}
	listText = strings.TrimRightFunc(listText, directive.IsSpace)

	id := regexp.QuoteMeta(ruleID)
	pattern, err := regexp.Compile(
		`(?:^|` + ws + `*,` + ws + `*)(?:'` + id + `'|"` + id + `"|` + id + `)(?:` + ws + `*,` + ws + `*|$)`)
	if err != nil {
		return nil
	}
	loc := pattern.FindStringIndex(listText)
	if loc == nil {
		return nil
	}

	matched := listText[loc[0]:loc[1]]
	matchStart := d.Comment.ValueStart() + listStart + loc[0]

	first := strings.IndexByte(matched, ',')
	last := strings.LastIndexByte(matched, ',')
	edit := fix.Delete(matchStart, matchStart+len(matched))
	if first != last {
		edit = fix.Delete(matchStart+first, matchStart+last)
	}
	return &edit
}
