// © 2024 tscn.org
//
// SPDX-License-Identifier: Apache-2.0

package tscn

import (
	"strconv"
	"strings"
)

// TokenType identifies the lexical class of a token. The set is closed;
// the lexer never emits anything outside it.
type TokenType uint8

const (
	TokenTypeUnknown TokenType = iota
	TokenTypeSquareOpen
	TokenTypeSquareClose
	TokenTypeParenOpen
	TokenTypeParenClose
	TokenTypeCurlyOpen
	TokenTypeCurlyClose
	TokenTypeEqual
	TokenTypeColon
	TokenTypeComma
	TokenTypeDot
	TokenTypeMinus
	TokenTypeIdentifier
	TokenTypeString
	TokenTypeNumber
	// TokenTypeColor is emitted for the identifier "Color" when it is
	// immediately followed by an opening parenthesis. Distinguishing it at
	// lex time keeps the value grammar free of lookahead: a property can
	// still be named Color without colliding with the constructor.
	TokenTypeColor
	TokenTypeEOF
	// TokenTypeError carries a description of an unrecognized character in
	// Text. Emitting it is not fatal; consuming it is.
	TokenTypeError
)

func (t TokenType) String() string {
	switch t {
	case TokenTypeSquareOpen:
		return "'['"
	case TokenTypeSquareClose:
		return "']'"
	case TokenTypeParenOpen:
		return "'('"
	case TokenTypeParenClose:
		return "')'"
	case TokenTypeCurlyOpen:
		return "'{'"
	case TokenTypeCurlyClose:
		return "'}'"
	case TokenTypeEqual:
		return "'='"
	case TokenTypeColon:
		return "':'"
	case TokenTypeComma:
		return "','"
	case TokenTypeDot:
		return "'.'"
	case TokenTypeMinus:
		return "'-'"
	case TokenTypeIdentifier:
		return "identifier"
	case TokenTypeString:
		return "string"
	case TokenTypeNumber:
		return "number"
	case TokenTypeColor:
		return "Color"
	case TokenTypeEOF:
		return "end of input"
	case TokenTypeError:
		return "error"
	}
	return "unknown"
}

// Token is one lexical unit of scene text. Line is 1-indexed and Column is
// 0-indexed, both referring to the first character of the token. For string
// tokens Text holds the unescaped content; for number tokens it holds the
// literal exactly as written (hex, decimal, or scientific), converted
// lazily via Float or Int.
type Token struct {
	Type   TokenType
	Text   string
	Line   int
	Column int
}

func newToken(t TokenType, text string, line int, column int) Token {
	return Token{Type: t, Text: text, Line: line, Column: column}
}

// Float converts a number token's literal text. Hex literals convert as
// integers. The lexer accepts a dangling exponent marker ("1e") or decimal
// point ("3.") without a digit after it; those convert as if the dangling
// tail were absent.
func (t Token) Float() (float64, error) {
	text := t.Text
	if isHexLiteral(text) {
		v, err := strconv.ParseInt(text, 0, 64)
		if err != nil {
			return 0, err
		}
		return float64(v), nil
	}
	v, err := strconv.ParseFloat(text, 64)
	if err == nil {
		return v, nil
	}
	trimmed := strings.TrimRight(text, "+-")
	trimmed = strings.TrimRight(trimmed, "eE")
	trimmed = strings.TrimSuffix(trimmed, ".")
	if trimmed == "" || trimmed == "-" {
		return 0, err
	}
	return strconv.ParseFloat(trimmed, 64)
}

// Int converts a number token's literal text, truncating any fractional
// part.
func (t Token) Int() (int64, error) {
	if isHexLiteral(t.Text) {
		return strconv.ParseInt(t.Text, 0, 64)
	}
	v, err := t.Float()
	if err != nil {
		return 0, err
	}
	return int64(v), nil
}

func isHexLiteral(text string) bool {
	text = strings.TrimPrefix(text, "-")
	return len(text) >= 2 && text[0] == '0' && (text[1] == 'x' || text[1] == 'X')
}
