package query

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// Lexer scans a query string into tokens.
type Lexer struct {
	input    string
	position int
	tokens   []Token
}

// NewLexer returns a Lexer over input.
func NewLexer(input string) *Lexer {
	return &Lexer{
		input:  input,
		tokens: make([]Token, 0),
	}
}

// Tokenize processes the entire input. The returned slice always ends with a
// TokenEOF token when err is nil.
func (l *Lexer) Tokenize() ([]Token, error) {
	for l.position < len(l.input) {
		start := l.position
		r, size := utf8.DecodeRuneInString(l.input[l.position:])

		switch {
		case unicode.IsSpace(r):
			l.position += size
		case r == '.':
			l.addToken(TokenDot, ".", start)
			l.position++
		case r == '-':
			l.addToken(TokenHyphen, "-", start)
			l.position++
		case r == ',':
			l.addToken(TokenComma, ",", start)
			l.position++
		case r == '(':
			l.addToken(TokenLParen, "(", start)
			l.position++
		case r == ')':
			l.addToken(TokenRParen, ")", start)
			l.position++
		case r == '\'' || r == '"':
			if err := l.lexString(byte(r)); err != nil {
				return nil, err
			}
		case isNameRune(r):
			l.lexName()
		default:
			return nil, &SyntaxError{Position: start, Msg: "unexpected character " + quoteRune(r)}
		}
	}

	l.addToken(TokenEOF, "", l.position)
	return l.tokens, nil
}

// lexName scans a run of name runes. A run made only of digits becomes a
// TokenNumber.
func (l *Lexer) lexName() {
	start := l.position
	digits := true
	for l.position < len(l.input) {
		r, size := utf8.DecodeRuneInString(l.input[l.position:])
		if !isNameRune(r) {
			break
		}
		if r < '0' || r > '9' {
			digits = false
		}
		l.position += size
	}

	if digits {
		l.addToken(TokenNumber, l.input[start:l.position], start)
		return
	}
	l.addToken(TokenName, l.input[start:l.position], start)
}

// lexString scans a quoted literal. Backslash escapes the next character.
func (l *Lexer) lexString(quote byte) error {
	start := l.position
	l.position++ // opening quote

	var sb strings.Builder
	for l.position < len(l.input) {
		c := l.input[l.position]
		switch c {
		case '\\':
			if l.position+1 >= len(l.input) {
				return &SyntaxError{Position: start, Msg: "unterminated string"}
			}
			sb.WriteByte(l.input[l.position+1])
			l.position += 2
		case quote:
			l.position++
			l.addToken(TokenString, sb.String(), start)
			return nil
		default:
			sb.WriteByte(c)
			l.position++
		}
	}
	return &SyntaxError{Position: start, Msg: "unterminated string"}
}

func (l *Lexer) addToken(tokenType TokenType, value string, pos int) {
	l.tokens = append(l.tokens, Token{
		Type:     tokenType,
		Value:    value,
		Position: pos,
	})
}

// isNameRune reports whether r can appear in a selector name or callee.
// `$` and `#` cover JavaScript identifiers and private fields.
func isNameRune(r rune) bool {
	return r == '_' || r == '$' || r == '#' || unicode.IsLetter(r) || unicode.IsDigit(r)
}

func quoteRune(r rune) string {
	if r == utf8.RuneError {
		return "(invalid utf-8)"
	}
	return "'" + string(r) + "'"
}
