// © 2024 tscn.org
//
// SPDX-License-Identifier: Apache-2.0

package tscn

import (
	"testing"

	"github.com/stretchr/testify/require"

	"gopkg.tscn.org/parser.go/exc"
)

func TestLexer(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name     string
		input    string
		expected []Token
	}{
		{
			name:  "empty input",
			input: "",
			expected: []Token{
				newToken(TokenTypeEOF, "", 1, 0),
			},
		},
		{
			name:  "punctuation",
			input: "[](){}=:,.-",
			expected: []Token{
				newToken(TokenTypeSquareOpen, "[", 1, 0),
				newToken(TokenTypeSquareClose, "]", 1, 1),
				newToken(TokenTypeParenOpen, "(", 1, 2),
				newToken(TokenTypeParenClose, ")", 1, 3),
				newToken(TokenTypeCurlyOpen, "{", 1, 4),
				newToken(TokenTypeCurlyClose, "}", 1, 5),
				newToken(TokenTypeEqual, "=", 1, 6),
				newToken(TokenTypeColon, ":", 1, 7),
				newToken(TokenTypeComma, ",", 1, 8),
				newToken(TokenTypeDot, ".", 1, 9),
				newToken(TokenTypeMinus, "-", 1, 10),
				newToken(TokenTypeEOF, "", 1, 11),
			},
		},
		{
			name:  "decimal integer",
			input: "1234",
			expected: []Token{
				newToken(TokenTypeNumber, "1234", 1, 0),
				newToken(TokenTypeEOF, "", 1, 4),
			},
		},
		{
			name:  "hex literal stops at non-hex",
			input: "0xFFg",
			expected: []Token{
				newToken(TokenTypeNumber, "0xFF", 1, 0),
				newToken(TokenTypeIdentifier, "g", 1, 4),
				newToken(TokenTypeEOF, "", 1, 5),
			},
		},
		{
			name:  "hex prefix without digits is not hex",
			input: "0xg",
			expected: []Token{
				newToken(TokenTypeNumber, "0", 1, 0),
				newToken(TokenTypeIdentifier, "xg", 1, 1),
				newToken(TokenTypeEOF, "", 1, 3),
			},
		},
		{
			name:  "scientific",
			input: "1e-5 2.5E+3",
			expected: []Token{
				newToken(TokenTypeNumber, "1e-5", 1, 0),
				newToken(TokenTypeNumber, "2.5E+3", 1, 5),
				newToken(TokenTypeEOF, "", 1, 11),
			},
		},
		{
			name:  "leading dot number",
			input: ".5",
			expected: []Token{
				newToken(TokenTypeNumber, ".5", 1, 0),
				newToken(TokenTypeEOF, "", 1, 2),
			},
		},
		{
			name:  "negative numbers",
			input: "-7 -.25",
			expected: []Token{
				newToken(TokenTypeNumber, "-7", 1, 0),
				newToken(TokenTypeNumber, "-.25", 1, 3),
				newToken(TokenTypeEOF, "", 1, 7),
			},
		},
		{
			name:  "dangling exponent and decimal point keep their text",
			input: "1e 3.",
			expected: []Token{
				newToken(TokenTypeNumber, "1e", 1, 0),
				newToken(TokenTypeNumber, "3.", 1, 3),
				newToken(TokenTypeEOF, "", 1, 5),
			},
		},
		{
			name:  "path-like identifier",
			input: "tracks/0/type",
			expected: []Token{
				newToken(TokenTypeIdentifier, "tracks/0/type", 1, 0),
				newToken(TokenTypeEOF, "", 1, 13),
			},
		},
		{
			name:  "color keyword before paren",
			input: "Color(",
			expected: []Token{
				newToken(TokenTypeColor, "Color", 1, 0),
				newToken(TokenTypeParenOpen, "(", 1, 5),
				newToken(TokenTypeEOF, "", 1, 6),
			},
		},
		{
			name:  "color as plain identifier",
			input: "Color = 1",
			expected: []Token{
				newToken(TokenTypeIdentifier, "Color", 1, 0),
				newToken(TokenTypeEqual, "=", 1, 6),
				newToken(TokenTypeNumber, "1", 1, 8),
				newToken(TokenTypeEOF, "", 1, 9),
			},
		},
		{
			name:  "string escapes",
			input: "\"a\\\\b\\\"c\\n\\t\"",
			expected: []Token{
				newToken(TokenTypeString, "a\\b\"c\n\t", 1, 0),
				newToken(TokenTypeEOF, "", 1, 13),
			},
		},
		{
			name:  "unknown escape passes through",
			input: `"a\qb"`,
			expected: []Token{
				newToken(TokenTypeString, `a\qb`, 1, 0),
				newToken(TokenTypeEOF, "", 1, 6),
			},
		},
		{
			name:  "unicode escape",
			input: "\"\\u0041\\u00e9\"",
			expected: []Token{
				newToken(TokenTypeString, "Aé", 1, 0),
				newToken(TokenTypeEOF, "", 1, 14),
			},
		},
		{
			name:  "surrogate pair",
			input: "\"\\ud83d\\ude00\"",
			expected: []Token{
				newToken(TokenTypeString, "\U0001f600", 1, 0),
				newToken(TokenTypeEOF, "", 1, 14),
			},
		},
		{
			name:  "comment to end of line",
			input: "; a comment\nfoo",
			expected: []Token{
				newToken(TokenTypeIdentifier, "foo", 2, 0),
				newToken(TokenTypeEOF, "", 2, 3),
			},
		},
		{
			name:  "unrecognized character becomes an error token",
			input: "1 % 2",
			expected: []Token{
				newToken(TokenTypeNumber, "1", 1, 0),
				newToken(TokenTypeError, `unexpected character '%'`, 1, 2),
				newToken(TokenTypeNumber, "2", 1, 4),
				newToken(TokenTypeEOF, "", 1, 5),
			},
		},
		{
			name:  "line and column tracking",
			input: "[node]\nname",
			expected: []Token{
				newToken(TokenTypeSquareOpen, "[", 1, 0),
				newToken(TokenTypeIdentifier, "node", 1, 1),
				newToken(TokenTypeSquareClose, "]", 1, 5),
				newToken(TokenTypeIdentifier, "name", 2, 0),
				newToken(TokenTypeEOF, "", 2, 4),
			},
		},
	}

	for _, tc := range testCases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			tokens, err := Lex(tc.input)
			require.NoError(t, err)
			require.Equal(t, tc.expected, tokens)
		})
	}
}

func TestLexerUnterminatedString(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name  string
		input string
		line  int
	}{
		{name: "bare open quote", input: `"`, line: 1},
		{name: "content without close", input: "\"abc", line: 1},
		{name: "trailing backslash", input: "\"abc\\", line: 1},
		{name: "opens on second line", input: "foo\n\"bar", line: 2},
	}

	for _, tc := range testCases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			_, err := Lex(tc.input)
			require.Error(t, err)
			e, ok := err.(exc.Exception)
			require.True(t, ok)
			require.Equal(t, exc.KindTokenize, e.Kind())
			require.True(t, e.Location().Known)
			require.Equal(t, tc.line, e.Location().Line)
			require.Positive(t, e.Location().Line)
		})
	}
}

func TestTokenNumericConversion(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		text     string
		expected float64
	}{
		{text: "0xFF", expected: 255},
		{text: "1e-5", expected: 0.00001},
		{text: ".5", expected: 0.5},
		{text: "-7", expected: -7},
		{text: "3.", expected: 3},
		{text: "1e", expected: 1},
		{text: "-0x10", expected: -16},
	}

	for _, tc := range testCases {
		tc := tc
		t.Run(tc.text, func(t *testing.T) {
			t.Parallel()
			f, err := Token{Type: TokenTypeNumber, Text: tc.text}.Float()
			require.NoError(t, err)
			require.Equal(t, tc.expected, f)
		})
	}
}
