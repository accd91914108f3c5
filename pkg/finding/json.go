package finding

import (
	"encoding/json"
	"fmt"

	"github.com/yaklabco/gojslint/pkg/config"
	"github.com/yaklabco/gojslint/pkg/fix"
)

// jsonFix is the interchange form of an edit: {"range": [start, end], "text": "..."}.
type jsonFix struct {
	Range [2]int `json:"range"`
	Text  string `json:"text"`
}

type jsonSuggestion struct {
	Desc string  `json:"desc"`
	Fix  jsonFix `json:"fix"`
}

type jsonSuppression struct {
	Kind          string `json:"kind"`
	Justification string `json:"justification"`
}

type jsonFinding struct {
	RuleID       *string           `json:"ruleId"`
	Severity     int               `json:"severity"`
	Message      string            `json:"message"`
	Line         int               `json:"line"`
	Column       int               `json:"column"`
	EndLine      *int              `json:"endLine,omitempty"`
	EndColumn    *int              `json:"endColumn,omitempty"`
	NodeType     *string           `json:"nodeType"`
	Fatal        bool              `json:"fatal,omitempty"`
	Fix          *jsonFix          `json:"fix,omitempty"`
	Suggestions  []jsonSuggestion  `json:"suggestions,omitempty"`
	Suppressions []jsonSuppression `json:"suppressions,omitempty"`
}

func toJSONFix(edit fix.TextEdit) jsonFix {
	return jsonFix{Range: [2]int{edit.StartOffset, edit.EndOffset}, Text: edit.NewText}
}

func (j jsonFix) edit() fix.TextEdit {
	return fix.Replace(j.Range[0], j.Range[1], j.Text)
}

func nullable(value string) *string {
	if value == "" {
		return nil
	}
	return &value
}

// MarshalJSON writes the interchange form. ruleId and nodeType are null
// when empty; suppressions are only present on suppressed findings.
func (f Finding) MarshalJSON() ([]byte, error) {
	out := jsonFinding{
		RuleID:   nullable(f.RuleID),
		Severity: int(f.Severity),
		Message:  f.Message,
		Line:     f.Line,
		Column:   f.Column,
		NodeType: nullable(f.NodeType),
		Fatal:    f.Fatal,
	}
	if f.EndLine > 0 {
		out.EndLine, out.EndColumn = &f.EndLine, &f.EndColumn
	}
	if f.Fix != nil {
		converted := toJSONFix(*f.Fix)
		out.Fix = &converted
	}
	for _, s := range f.Suggestions {
		out.Suggestions = append(out.Suggestions, jsonSuggestion{Desc: s.Desc, Fix: toJSONFix(s.Fix)})
	}
	for _, s := range f.Suppressions {
		out.Suppressions = append(out.Suppressions, jsonSuppression(s))
	}
	return json.Marshal(out)
}

// UnmarshalJSON reads the interchange form.
func (f *Finding) UnmarshalJSON(data []byte) error {
	var in jsonFinding
	if err := json.Unmarshal(data, &in); err != nil {
		return fmt.Errorf("decode finding: %w", err)
	}

	severity := config.Severity(in.Severity)
	if !severity.IsValid() {
		return fmt.Errorf("decode finding: %w: %d", config.ErrInvalidSeverity, in.Severity)
	}

	decoded := Finding{
		Severity: severity,
		Message:  in.Message,
		Line:     in.Line,
		Column:   in.Column,
		Fatal:    in.Fatal,
	}
	if in.RuleID != nil {
		decoded.RuleID = *in.RuleID
	}
	if in.NodeType != nil {
		decoded.NodeType = *in.NodeType
	}
	if in.EndLine != nil {
		decoded.EndLine = *in.EndLine
	}
	if in.EndColumn != nil {
		decoded.EndColumn = *in.EndColumn
	}
	if in.Fix != nil {
		edit := in.Fix.edit()
		decoded.Fix = &edit
	}
	for _, s := range in.Suggestions {
		decoded.Suggestions = append(decoded.Suggestions, Suggestion{Desc: s.Desc, Fix: s.Fix.edit()})
	}
	for _, s := range in.Suppressions {
		decoded.Suppressions = append(decoded.Suppressions, Suppression(s))
	}

	*f = decoded
	return nil
}
