package js

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/yaklabco/gojslint/pkg/ast"
	"github.com/yaklabco/gojslint/pkg/source"
)

//nolint:gochecknoglobals // Static lookup tables.
var (
	keywords = map[string]bool{
		"break": true, "case": true, "catch": true, "class": true, "const": true,
		"continue": true, "debugger": true, "default": true, "delete": true, "do": true,
		"else": true, "export": true, "extends": true, "finally": true, "for": true,
		"function": true, "if": true, "import": true, "in": true, "instanceof": true,
		"let": true, "new": true, "return": true, "super": true, "switch": true,
		"this": true, "throw": true, "try": true, "typeof": true, "var": true,
		"void": true, "while": true, "with": true, "yield": true,
	}

	// punctuators is ordered longest first so the first prefix match wins.
	punctuators = []string{
		">>>=",
		"...", "===", "!==", "**=", "<<=", ">>=", ">>>", "&&=", "||=", "??=",
		"=>", "==", "!=", "<=", ">=", "&&", "||", "??", "?.", "++", "--",
		"+=", "-=", "*=", "/=", "%=", "&=", "|=", "^=", "**", "<<", ">>",
		"{", "}", "(", ")", "[", "]", ";", ",", "<", ">", "+", "-", "*", "/",
		"%", "&", "|", "^", "!", "~", "?", ":", "=", ".", "@", "#",
	}

	// regexAllowedAfter lists keywords after which "/" starts a regular expression.
	regexAllowedAfter = map[string]bool{
		"return": true, "typeof": true, "instanceof": true, "in": true, "of": true,
		"new": true, "delete": true, "void": true, "throw": true, "case": true,
		"do": true, "else": true, "yield": true, "await": true,
	}
)

// lexer turns source text into tokens and comments.
// Its cursor is a plain byte offset into src.Content.
type lexer struct {
	src     *source.Text
	content []byte
	off     int

	tokens   []ast.Token
	comments []ast.Comment

	// newline tracks whether a line terminator was skipped since the last token.
	newline bool
}

func newLexer(src *source.Text) *lexer {
	return &lexer{src: src, content: src.Content}
}

func (l *lexer) errorAt(offset int, format string) *SyntaxError {
	return &SyntaxError{Message: format, Offset: offset, Position: l.src.PositionAt(offset)}
}

// tokenize scans the whole input.
func (l *lexer) tokenize() error {
	for {
		if err := l.skipTrivia(); err != nil {
			return err
		}
		if l.off >= len(l.content) {
			return nil
		}
		tok, err := l.scanToken()
		if err != nil {
			return err
		}
		tok.NewlineBefore = l.newline
		l.newline = false
		l.tokens = append(l.tokens, tok)
	}
}

func (l *lexer) peekRune(offset int) (rune, int) {
	if offset >= len(l.content) {
		return utf8.RuneError, 0
	}
	if b := l.content[offset]; b < utf8.RuneSelf {
		return rune(b), 1
	}
	return utf8.DecodeRune(l.content[offset:])
}

// IsWhitespace reports whether r is JavaScript whitespace (not a line terminator).
func IsWhitespace(r rune) bool {
	switch r {
	case ' ', '\t', '\v', '\f', 0xA0, 0xFEFF:
		return true
	}
	return r > unicode.MaxASCII && unicode.Is(unicode.Zs, r)
}

// IsLineTerminator reports whether r ends a line.
func IsLineTerminator(r rune) bool {
	return r == '\n' || r == '\r' || r == 0x2028 || r == 0x2029
}

// skipTrivia skips whitespace and records comments.
func (l *lexer) skipTrivia() error {
	for l.off < len(l.content) {
		r, size := l.peekRune(l.off)
		switch {
		case IsLineTerminator(r):
			l.newline = true
			l.off += size
		case IsWhitespace(r):
			l.off += size
		case r == '/' && l.off+1 < len(l.content) && l.content[l.off+1] == '/':
			l.scanLineComment()
		case r == '/' && l.off+1 < len(l.content) && l.content[l.off+1] == '*':
			if err := l.scanBlockComment(); err != nil {
				return err
			}
		default:
			return nil
		}
	}
	return nil
}

func (l *lexer) scanLineComment() {
	start := l.off
	l.off += 2
	for l.off < len(l.content) {
		r, size := l.peekRune(l.off)
		if IsLineTerminator(r) {
			break
		}
		l.off += size
	}
	l.comments = append(l.comments, ast.Comment{
		Kind:  ast.CommentLine,
		Value: string(l.content[start+2 : l.off]),
		Range: source.Range{Start: start, End: l.off},
	})
}

func (l *lexer) scanBlockComment() error {
	start := l.off
	end := strings.Index(string(l.content[start+2:]), "*/")
	if end < 0 {
		return l.errorAt(start, "Unterminated comment")
	}
	valueEnd := start + 2 + end
	value := l.content[start+2 : valueEnd]
	for idx := range value {
		if source.IsLineBreak(value, idx) {
			l.newline = true
			break
		}
	}
	l.off = valueEnd + 2
	l.comments = append(l.comments, ast.Comment{
		Kind:  ast.CommentBlock,
		Value: string(value),
		Range: source.Range{Start: start, End: l.off},
	})
	return nil
}

func isIdentStart(r rune) bool {
	return r == '$' || r == '_' || unicode.IsLetter(r)
}

func isIdentPart(r rune) bool {
	return isIdentStart(r) || unicode.IsDigit(r) || r == 0x200C || r == 0x200D ||
		unicode.Is(unicode.Mn, r) || unicode.Is(unicode.Mc, r) || unicode.Is(unicode.Pc, r)
}

func (l *lexer) scanToken() (ast.Token, error) {
	start := l.off
	r, _ := l.peekRune(start)

	switch {
	case isIdentStart(r) || r == '\\':
		return l.scanIdentifier()
	case r >= '0' && r <= '9', r == '.' && l.off+1 < len(l.content) && isDigit(l.content[l.off+1]):
		return l.scanNumber()
	case r == '"' || r == '\'':
		return l.scanString(byte(r))
	case r == '`':
		return l.scanTemplate()
	case r == '/' && l.regexAllowed():
		return l.scanRegExp()
	}

	rest := string(l.content[start:min(start+4, len(l.content))])
	for _, punct := range punctuators {
		if strings.HasPrefix(rest, punct) {
			// "?." followed by a digit is a conditional and a number.
			if punct == "?." && start+2 < len(l.content) && isDigit(l.content[start+2]) {
				continue
			}
			l.off += len(punct)
			return l.token(ast.TokenPunctuator, start), nil
		}
	}

	return ast.Token{}, l.errorAt(start, "Unexpected character '"+string(r)+"'")
}

func (l *lexer) token(kind ast.TokenKind, start int) ast.Token {
	return ast.Token{
		Kind:  kind,
		Value: string(l.content[start:l.off]),
		Range: source.Range{Start: start, End: l.off},
	}
}

func isDigit(b byte) bool {
	return b >= '0' && b <= '9'
}

func (l *lexer) scanIdentifier() (ast.Token, error) {
	start := l.off
	for l.off < len(l.content) {
		r, size := l.peekRune(l.off)
		if r == '\\' {
			// \uXXXX or \u{...} escape.
			if l.off+1 >= len(l.content) || l.content[l.off+1] != 'u' {
				return ast.Token{}, l.errorAt(l.off, "Invalid escape in identifier")
			}
			l.off += 2
			if l.off < len(l.content) && l.content[l.off] == '{' {
				closing := strings.IndexByte(string(l.content[l.off:]), '}')
				if closing < 0 {
					return ast.Token{}, l.errorAt(l.off, "Invalid Unicode escape sequence")
				}
				l.off += closing + 1
			} else {
				l.off += 4
			}
			continue
		}
		if !isIdentPart(r) {
			break
		}
		l.off += size
	}
	if l.off > len(l.content) {
		return ast.Token{}, l.errorAt(start, "Invalid Unicode escape sequence")
	}

	tok := l.token(ast.TokenIdentifier, start)
	switch {
	case keywords[tok.Value]:
		tok.Kind = ast.TokenKeyword
	case tok.Value == "true" || tok.Value == "false":
		tok.Kind = ast.TokenBoolean
	case tok.Value == "null":
		tok.Kind = ast.TokenNull
	}
	return tok, nil
}

func (l *lexer) scanNumber() (ast.Token, error) {
	start := l.off
	content := l.content

	digits := func(valid func(b byte) bool) {
		for l.off < len(content) && (valid(content[l.off]) || content[l.off] == '_') {
			l.off++
		}
	}

	if content[l.off] == '0' && l.off+1 < len(content) {
		switch content[l.off+1] | 0x20 {
		case 'x':
			l.off += 2
			digits(func(b byte) bool { return isDigit(b) || (b|0x20) >= 'a' && (b|0x20) <= 'f' })
		case 'o':
			l.off += 2
			digits(func(b byte) bool { return b >= '0' && b <= '7' })
		case 'b':
			l.off += 2
			digits(func(b byte) bool { return b == '0' || b == '1' })
		}
	}

	if l.off == start {
		digits(isDigit)
		if l.off < len(content) && content[l.off] == '.' {
			l.off++
			digits(isDigit)
		}
		if l.off < len(content) && content[l.off]|0x20 == 'e' {
			l.off++
			if l.off < len(content) && (content[l.off] == '+' || content[l.off] == '-') {
				l.off++
			}
			expStart := l.off
			digits(isDigit)
			if l.off == expStart {
				return ast.Token{}, l.errorAt(start, "Invalid number")
			}
		}
	}

	if l.off < len(content) && content[l.off] == 'n' {
		l.off++
	}
	if l.off < len(content) {
		if r, _ := l.peekRune(l.off); isIdentStart(r) {
			return ast.Token{}, l.errorAt(l.off, "Identifier directly after number")
		}
	}

	return l.token(ast.TokenNumeric, start), nil
}

func (l *lexer) scanString(quote byte) (ast.Token, error) {
	start := l.off
	l.off++
	for l.off < len(l.content) {
		b := l.content[l.off]
		switch {
		case b == quote:
			l.off++
			return l.token(ast.TokenString, start), nil
		case b == '\\':
			l.off++
			if l.off < len(l.content) && l.content[l.off] == '\r' &&
				l.off+1 < len(l.content) && l.content[l.off+1] == '\n' {
				l.off++
			}
			if l.off < len(l.content) {
				_, size := l.peekRune(l.off)
				l.off += size
			}
		case b == '\n' || b == '\r':
			return ast.Token{}, l.errorAt(start, "Unterminated string constant")
		default:
			l.off++
		}
	}
	return ast.Token{}, l.errorAt(start, "Unterminated string constant")
}

// scanTemplate scans a whole template literal, including any substitutions,
// as one token.
func (l *lexer) scanTemplate() (ast.Token, error) {
	start := l.off
	l.off++
	for l.off < len(l.content) {
		switch l.content[l.off] {
		case '`':
			l.off++
			return l.token(ast.TokenTemplate, start), nil
		case '\\':
			l.off += 2
		case '$':
			if l.off+1 < len(l.content) && l.content[l.off+1] == '{' {
				l.off += 2
				if err := l.skipSubstitution(); err != nil {
					return ast.Token{}, err
				}
				continue
			}
			l.off++
		default:
			l.off++
		}
	}
	return ast.Token{}, l.errorAt(start, "Unterminated template")
}

// skipSubstitution consumes tokens up to the "}" closing a "${".
func (l *lexer) skipSubstitution() error {
	sub := &lexer{src: l.src, content: l.content, off: l.off}
	depth := 0
	for {
		if err := sub.skipTrivia(); err != nil {
			return err
		}
		if sub.off >= len(sub.content) {
			return l.errorAt(l.off, "Unterminated template")
		}
		if sub.content[sub.off] == '}' && depth == 0 {
			l.off = sub.off + 1
			return nil
		}
		tok, err := sub.scanToken()
		if err != nil {
			return err
		}
		switch tok.Value {
		case "{":
			depth++
		case "}":
			depth--
		}
		sub.tokens = append(sub.tokens, tok)
	}
}

// regexAllowed decides whether "/" starts a regular expression based on the
// previous significant token.
func (l *lexer) regexAllowed() bool {
	if len(l.tokens) == 0 {
		return true
	}
	prev := l.tokens[len(l.tokens)-1]
	switch prev.Kind {
	case ast.TokenNumeric, ast.TokenString, ast.TokenTemplate, ast.TokenRegExp,
		ast.TokenBoolean, ast.TokenNull, ast.TokenIdentifier:
		return regexAllowedAfter[prev.Value]
	case ast.TokenKeyword:
		return prev.Value != "this" && prev.Value != "super"
	case ast.TokenPunctuator:
		switch prev.Value {
		case ")", "]", "}", "++", "--":
			return false
		}
		return true
	default:
		return true
	}
}

func (l *lexer) scanRegExp() (ast.Token, error) {
	start := l.off
	l.off++
	inClass := false
	for {
		if l.off >= len(l.content) {
			return ast.Token{}, l.errorAt(start, "Unterminated regular expression")
		}
		b := l.content[l.off]
		switch {
		case b == '\n' || b == '\r':
			return ast.Token{}, l.errorAt(start, "Unterminated regular expression")
		case b == '\\':
			l.off += 2
			continue
		case b == '[':
			inClass = true
		case b == ']':
			inClass = false
		case b == '/' && !inClass:
			l.off++
			for l.off < len(l.content) {
				r, size := l.peekRune(l.off)
				if !isIdentPart(r) {
					break
				}
				l.off += size
			}
			return l.token(ast.TokenRegExp, start), nil
		}
		l.off++
	}
}
