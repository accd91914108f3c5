// Package langdetect decides whether a code block holds JavaScript. Blocks
// with an info string are resolved through go-enry's alias table; blocks
// without one are classified from their content.
package langdetect

import (
	"bytes"
	"regexp"
	"strings"

	"github.com/go-enry/go-enry/v2"
)

// JavaScript is the language name reported for JavaScript blocks.
const JavaScript = "javascript"

const langText = "text"

// classifierCandidates are the languages the classifier chooses between for
// unlabeled blocks. Languages that often look like JavaScript are included
// so that they are not misreported as JavaScript.
var classifierCandidates = []string{
	"JavaScript", "TypeScript", "JSON", "Java", "C", "C++", "C#",
	"Go", "Python", "Ruby", "Shell", "HTML", "CSS", "Markdown",
}

var (
	jsStatement = regexp.MustCompile(`(?m)^\s*(var|let|const|function)\s+[A-Za-z_$]`)
	jsCall      = regexp.MustCompile(`\b(console\.\w+|require|document\.\w+|window\.\w+)\s*\(`)
	tsOnly      = regexp.MustCompile(`(?m)^\s*(interface|type|enum)\s+[A-Z]\w*|:\s*(string|number|boolean)\b`)
)

// FromInfo resolves a fence info string such as "js", "JavaScript" or
// "mjs {title=x}" to a lowercase language name. Unknown names are returned
// lowercased as written.
func FromInfo(info string) string {
	fields := strings.Fields(info)
	if len(fields) == 0 {
		return ""
	}
	name := strings.TrimPrefix(strings.ToLower(fields[0]), "{.")
	name = strings.TrimSuffix(name, "}")
	if lang, ok := enry.GetLanguageByAlias(name); ok {
		return strings.ToLower(lang)
	}
	if lang, ok := enry.GetLanguageByExtension("x." + name); ok {
		return strings.ToLower(lang)
	}
	return name
}

// IsJavaScript reports whether lang names JavaScript, either as a resolved
// name or as one of the given aliases.
func IsJavaScript(lang string, aliases ...string) bool {
	lang = strings.ToLower(lang)
	if lang == JavaScript {
		return true
	}
	for _, alias := range aliases {
		if strings.EqualFold(lang, alias) {
			return true
		}
	}
	return false
}

// Detect classifies an unlabeled block. It returns JavaScript, another
// lowercase language name, or "text" when unsure.
func Detect(content []byte) string {
	trimmed := bytes.TrimSpace(content)
	if len(trimmed) == 0 {
		return langText
	}

	if lang, safe := enry.GetLanguageByShebang(content); safe {
		return strings.ToLower(lang)
	}

	switch {
	case looksLikeJSON(trimmed):
		return "json"
	case tsOnly.Match(content):
		return "typescript"
	case jsStatement.Match(content) || jsCall.Match(content):
		return JavaScript
	}

	if lang, safe := enry.GetLanguageByClassifier(content, classifierCandidates); safe && lang != "" {
		return strings.ToLower(lang)
	}
	return langText
}

func looksLikeJSON(trimmed []byte) bool {
	if !bytes.HasPrefix(trimmed, []byte("{")) && !bytes.HasPrefix(trimmed, []byte("[")) {
		return false
	}
	return bytes.Contains(trimmed, []byte(`":`)) || bytes.HasPrefix(trimmed, []byte(`["`))
}
