// © 2024 tscn.org
//
// SPDX-License-Identifier: Apache-2.0

package tscn

import (
	"fmt"
	"strings"
	"unicode"
	"unicode/utf16"

	"gopkg.tscn.org/parser.go/exc"
)

// Lex converts scene text into its full token sequence. The sequence always
// ends with exactly one EOF token. The only fatal condition at this layer is
// an unterminated string literal; every other unrecognized character becomes
// an Error-kind token and it is up to the consumer to fail when one is
// consumed.
func Lex(text string) ([]Token, error) {
	l := &lexer{src: []rune(text), line: 1}
	return l.run()
}

type lexer struct {
	src    []rune
	pos    int
	line   int
	col    int
	tokens []Token
}

func (l *lexer) run() ([]Token, error) {
	for {
		l.skipBlanksAndComments()
		if l.eof() {
			l.tokens = append(l.tokens, newToken(TokenTypeEOF, "", l.line, l.col))
			return l.tokens, nil
		}
		line, col := l.line, l.col
		r := l.peek(0)
		switch r {
		case '[':
			l.advance()
			l.emit(TokenTypeSquareOpen, "[", line, col)
		case ']':
			l.advance()
			l.emit(TokenTypeSquareClose, "]", line, col)
		case '(':
			l.advance()
			l.emit(TokenTypeParenOpen, "(", line, col)
		case ')':
			l.advance()
			l.emit(TokenTypeParenClose, ")", line, col)
		case '{':
			l.advance()
			l.emit(TokenTypeCurlyOpen, "{", line, col)
		case '}':
			l.advance()
			l.emit(TokenTypeCurlyClose, "}", line, col)
		case '=':
			l.advance()
			l.emit(TokenTypeEqual, "=", line, col)
		case ':':
			l.advance()
			l.emit(TokenTypeColon, ":", line, col)
		case ',':
			l.advance()
			l.emit(TokenTypeComma, ",", line, col)
		case '.':
			if isDigit(l.peek(1)) {
				l.readNumber()
			} else {
				l.advance()
				l.emit(TokenTypeDot, ".", line, col)
			}
		case '-':
			if isDigit(l.peek(1)) || l.peek(1) == '.' {
				l.readNumber()
			} else {
				l.advance()
				l.emit(TokenTypeMinus, "-", line, col)
			}
		case '"':
			if err := l.readString(); err != nil {
				return nil, err
			}
		default:
			switch {
			case isDigit(r):
				l.readNumber()
			case r == '_' || unicode.IsLetter(r):
				l.readIdentifier()
			default:
				l.advance()
				l.emit(TokenTypeError, fmt.Sprintf("unexpected character %q", r), line, col)
			}
		}
	}
}

func (l *lexer) skipBlanksAndComments() {
	for !l.eof() {
		switch l.peek(0) {
		case ';':
			for !l.eof() && l.peek(0) != '\n' {
				l.advance()
			}
		case ' ', '\t', '\r', '\n':
			l.advance()
		default:
			return
		}
	}
}

// readNumber consumes a numeric literal and keeps its text exactly as
// written. Hex literals need at least one digit after the prefix and stop
// at the last hex digit; decimal literals take an optional fraction and
// exponent with no check that a digit actually follows the marker ("1e" and
// "3." are accepted as-is).
func (l *lexer) readNumber() {
	line, col := l.line, l.col
	var b strings.Builder
	if l.peek(0) == '-' {
		b.WriteRune(l.advance())
	}
	if l.peek(0) == '0' && (l.peek(1) == 'x' || l.peek(1) == 'X') && isHexDigit(l.peek(2)) {
		b.WriteRune(l.advance())
		b.WriteRune(l.advance())
		for isHexDigit(l.peek(0)) {
			b.WriteRune(l.advance())
		}
		l.emit(TokenTypeNumber, b.String(), line, col)
		return
	}
	for isDigit(l.peek(0)) {
		b.WriteRune(l.advance())
	}
	if l.peek(0) == '.' {
		b.WriteRune(l.advance())
		for isDigit(l.peek(0)) {
			b.WriteRune(l.advance())
		}
	}
	if l.peek(0) == 'e' || l.peek(0) == 'E' {
		b.WriteRune(l.advance())
		if l.peek(0) == '+' || l.peek(0) == '-' {
			b.WriteRune(l.advance())
		}
		for isDigit(l.peek(0)) {
			b.WriteRune(l.advance())
		}
	}
	l.emit(TokenTypeNumber, b.String(), line, col)
}

// readIdentifier consumes letters, digits, underscores and forward slashes;
// the slash keeps path-like property names such as "tracks/0/type" a single
// token. The identifier "Color" followed directly by '(' becomes the
// distinguished color-keyword token.
func (l *lexer) readIdentifier() {
	line, col := l.line, l.col
	var b strings.Builder
	b.WriteRune(l.advance())
	for {
		r := l.peek(0)
		if r == '_' || r == '/' || isDigit(r) || unicode.IsLetter(r) {
			b.WriteRune(l.advance())
			continue
		}
		break
	}
	text := b.String()
	if text == "Color" && l.peek(0) == '(' {
		l.emit(TokenTypeColor, text, line, col)
		return
	}
	l.emit(TokenTypeIdentifier, text, line, col)
}

func (l *lexer) readString() error {
	line, col := l.line, l.col
	l.advance() // opening quote
	var b strings.Builder
	for {
		if l.eof() {
			return exc.New(exc.KindTokenize, exc.At(line, col), exc.CodeUnterminatedString, "unterminated string literal")
		}
		r := l.advance()
		if r == '"' {
			l.emit(TokenTypeString, b.String(), line, col)
			return nil
		}
		if r != '\\' {
			b.WriteRune(r)
			continue
		}
		if l.eof() {
			return exc.New(exc.KindTokenize, exc.At(line, col), exc.CodeUnterminatedString, "unterminated string literal")
		}
		switch esc := l.advance(); esc {
		case '"':
			b.WriteByte('"')
		case '\\':
			b.WriteByte('\\')
		case 'n':
			b.WriteByte('\n')
		case 'r':
			b.WriteByte('\r')
		case 't':
			b.WriteByte('\t')
		case 'u':
			l.readUnicodeEscape(&b)
		default:
			// Unknown escapes pass through with the backslash intact.
			b.WriteByte('\\')
			b.WriteRune(esc)
		}
	}
}

// readUnicodeEscape handles the four hex digits after a \u. A high surrogate
// immediately followed by a \u low surrogate combines into one code point;
// anything malformed falls back to a literal pass-through of the backslash
// sequence.
func (l *lexer) readUnicodeEscape(b *strings.Builder) {
	u1, ok := l.readHex4()
	if !ok {
		b.WriteString("\\u")
		return
	}
	if utf16.IsSurrogate(rune(u1)) && l.peek(0) == '\\' && l.peek(1) == 'u' {
		mark := l.pos
		markLine, markCol := l.line, l.col
		l.advance()
		l.advance()
		if u2, ok := l.readHex4(); ok {
			if r := utf16.DecodeRune(rune(u1), rune(u2)); r != unicode.ReplacementChar {
				b.WriteRune(r)
				return
			}
			b.WriteRune(rune(u1))
			b.WriteRune(rune(u2))
			return
		}
		l.pos, l.line, l.col = mark, markLine, markCol
	}
	b.WriteRune(rune(u1))
}

func (l *lexer) readHex4() (uint16, bool) {
	var v uint16
	for i := 0; i < 4; i++ {
		r := l.peek(i)
		if !isHexDigit(r) {
			return 0, false
		}
		v = v<<4 | uint16(hexValue(r))
	}
	for i := 0; i < 4; i++ {
		l.advance()
	}
	return v, true
}

func (l *lexer) emit(t TokenType, text string, line int, col int) {
	l.tokens = append(l.tokens, newToken(t, text, line, col))
}

func (l *lexer) eof() bool {
	return l.pos >= len(l.src)
}

// peek returns the rune n positions ahead without consuming, or 0 past the
// end of input.
func (l *lexer) peek(n int) rune {
	if l.pos+n >= len(l.src) {
		return 0
	}
	return l.src[l.pos+n]
}

func (l *lexer) advance() rune {
	r := l.src[l.pos]
	l.pos++
	if r == '\n' {
		l.line++
		l.col = 0
	} else {
		l.col++
	}
	return r
}

func isDigit(r rune) bool {
	return r >= '0' && r <= '9'
}

func isHexDigit(r rune) bool {
	return isDigit(r) || (r >= 'a' && r <= 'f') || (r >= 'A' && r <= 'F')
}

func hexValue(r rune) int {
	switch {
	case r >= '0' && r <= '9':
		return int(r - '0')
	case r >= 'a' && r <= 'f':
		return int(r-'a') + 10
	default:
		return int(r-'A') + 10
	}
}
