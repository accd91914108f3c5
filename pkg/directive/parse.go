package directive

import (
	"fmt"
	"regexp"
	"strings"
	"unicode"

	"github.com/yaklabco/gojslint/pkg/ast"
	"github.com/yaklabco/gojslint/pkg/config"
	"github.com/yaklabco/gojslint/pkg/finding"
	"github.com/yaklabco/gojslint/pkg/source"
)

// SpaceClass is a regexp character class body matching JavaScript
// whitespace and line terminators.
const SpaceClass = `\t\n\v\f\r \x{a0}\x{1680}\x{2000}-\x{200a}\x{2028}\x{2029}\x{202f}\x{205f}\x{3000}\x{feff}`

// Keywords recognised after the configured prefix.
const (
	keywordDisable         = "disable"
	keywordEnable          = "enable"
	keywordDisableAll      = "disable-all"
	keywordEnableAll       = "enable-all"
	keywordDisableLine     = "disable-line"
	keywordDisableNextLine = "disable-next-line"
	keywordRules           = "rules"
)

//nolint:gochecknoglobals // Compiled once.
var justificationPattern = regexp.MustCompile(`[` + SpaceClass + `]-{2,}[` + SpaceClass + `]`)

// IsSpace reports whether r is JavaScript whitespace or a line terminator.
func IsSpace(r rune) bool {
	switch r {
	case '\t', '\n', '\v', '\f', '\r', ' ', 0xA0, 0x1680, 0x2028, 0x2029, 0x202F, 0x205F, 0x3000, 0xFEFF:
		return true
	}
	return r >= 0x2000 && r <= 0x200A || r > unicode.MaxLatin1 && unicode.Is(unicode.Zs, r)
}

// TrimSpace removes JavaScript whitespace from both ends of s.
func TrimSpace(s string) string {
	return strings.TrimFunc(s, IsSpace)
}

// SplitJustification separates the directive part of a comment from the
// free text after the first whitespace-delimited run of two or more dashes.
func SplitJustification(value string) (string, string) {
	loc := justificationPattern.FindStringIndex(value)
	if loc == nil {
		return TrimSpace(value), ""
	}
	return TrimSpace(value[:loc[0]]), TrimSpace(value[loc[1]:])
}

// ParseList splits a comma-separated identifier list. Items are trimmed,
// one pair of matching quotes is removed, empty items are dropped and
// duplicates keep their first occurrence.
func ParseList(list string) []string {
	var items []string
	seen := make(map[string]bool)
	for _, raw := range strings.Split(list, ",") {
		item := unquote(TrimSpace(raw))
		if item == "" || seen[item] {
			continue
		}
		seen[item] = true
		items = append(items, item)
	}
	return items
}

func unquote(s string) string {
	if len(s) >= 2 && (s[0] == '"' || s[0] == '\'') && s[len(s)-1] == s[0] {
		return s[1 : len(s)-1]
	}
	return s
}

// Parse extracts directives from comments in document order.
func Parse(comments []ast.Comment, src *source.Text, opts Options) Result {
	p := &parser{src: src, opts: opts}
	for _, comment := range comments {
		p.parseComment(comment)
	}
	return p.result
}

type parser struct {
	src    *source.Text
	opts   Options
	result Result
}

func (p *parser) known(ruleID string) bool {
	return p.opts.KnownRule == nil || p.opts.KnownRule(ruleID)
}

func (p *parser) problem(comment ast.Comment, ruleID string, severity config.Severity, msg string) {
	p.result.Problems = append(p.result.Problems, finding.Finding{
		RuleID:   ruleID,
		Severity: severity,
		Message:  msg,
	}.At(p.src.LocationOf(comment.Range)))
}

// splitKeyword returns the first whitespace-delimited word and the rest.
func splitKeyword(part string) (string, string) {
	idx := strings.IndexFunc(part, IsSpace)
	if idx < 0 {
		return part, ""
	}
	return part[:idx], part[idx:]
}

func (p *parser) parseComment(comment ast.Comment) {
	part, justification := SplitJustification(comment.Value)
	keyword, rest := splitKeyword(part)
	if !strings.HasPrefix(keyword, p.opts.Prefix) {
		return
	}
	name := keyword[len(p.opts.Prefix):]

	switch name {
	case keywordDisable, keywordEnable, keywordDisableAll, keywordEnableAll, keywordRules:
		// Block-scoped forms only live in block comments.
		if comment.Kind != ast.CommentBlock {
			return
		}
	case keywordDisableLine, keywordDisableNextLine:
	default:
		return
	}

	if !p.opts.AllowInlineConfig {
		if p.opts.WarnInlineConfig != "" {
			text := string(p.src.Slice(comment.Range))
			p.problem(comment, "", config.SeverityWarn, fmt.Sprintf(
				"'%s' has no effect because you have 'noInlineConfig' setting in %s.",
				text, p.opts.WarnInlineConfig))
		}
		return
	}

	if name == keywordRules {
		p.parseRules(comment, rest)
		return
	}

	loc := p.src.LocationOf(comment.Range)
	if comment.Kind == ast.CommentBlock && loc.Start.Line != loc.End.Line &&
		(name == keywordDisableLine || name == keywordDisableNextLine) {
		p.problem(comment, "", config.SeverityError, keyword+" comment should not span multiple lines.")
		return
	}

	listed := ParseList(rest)
	if (name == keywordDisableAll || name == keywordEnableAll) && len(listed) > 0 {
		p.problem(comment, "", config.SeverityError, fmt.Sprintf("'%s' does not accept a rule list.", keyword))
		return
	}

	known := make([]string, 0, len(listed))
	for _, id := range listed {
		if !p.known(id) {
			p.problem(comment, id, config.SeverityError, fmt.Sprintf("Definition for rule '%s' was not found.", id))
			continue
		}
		known = append(known, id)
	}
	// A list of only unknown rules must not widen to "all rules".
	if len(listed) > 0 && len(known) == 0 {
		return
	}

	d := Directive{
		RuleIDs:       known,
		ListedIDs:     listed,
		Keyword:       keyword,
		Comment:       comment,
		Line:          loc.Start.Line,
		Column:        loc.Start.Column,
		Justification: justification,
	}
	if len(d.RuleIDs) == 0 {
		d.RuleIDs = nil
	}

	switch name {
	case keywordDisable, keywordDisableAll:
		d.Kind = DisableSome
		if d.AppliesToAll() {
			d.Kind = DisableAll
		}
	case keywordEnable, keywordEnableAll:
		d.Kind = EnableSome
		if d.AppliesToAll() {
			d.Kind = EnableAll
		}
	case keywordDisableLine:
		d.Kind = DisableLine
		d.TargetLine = loc.Start.Line
	case keywordDisableNextLine:
		d.Kind = DisableNextLine
		d.TargetLine = loc.End.Line + 1
	}

	p.result.Directives = append(p.result.Directives, d)
}
