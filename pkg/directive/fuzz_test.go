package directive_test

import (
	"testing"

	"github.com/yaklabco/gojslint/pkg/ast"
	"github.com/yaklabco/gojslint/pkg/directive"
	"github.com/yaklabco/gojslint/pkg/source"
)

func FuzzParse(f *testing.F) {
	f.Add(" disable-next-line no-alert -- reason", false)
	f.Add(" disable a, b", true)
	f.Add(" rules { semi: [\"error\", \"never\"] }", true)
	f.Add(" enable-all", true)
	f.Add("disable-line", false)

	f.Fuzz(func(t *testing.T, value string, block bool) {
		var code string
		comment := ast.Comment{Value: value}
		if block {
			code = "/*" + value + "*/"
			comment.Kind = ast.CommentBlock
		} else {
			code = "//" + value
			comment.Kind = ast.CommentLine
		}
		comment.Range = source.Range{Start: 0, End: len(code)}

		src := source.New("fuzz.js", []byte(code+"\n"))
		result := directive.Parse([]ast.Comment{comment}, src, defaultOptions())

		for _, p := range result.Problems {
			if p.Line < 1 || p.Column < 1 {
				t.Fatalf("problem has bad position: %+v", p)
			}
		}
		for _, d := range result.Directives {
			for _, id := range d.RuleIDs {
				if id == "" {
					t.Fatalf("empty rule id in %+v", d)
				}
			}
		}
	})
}
