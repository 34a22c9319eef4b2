// © 2024 tscn.org
//
// SPDX-License-Identifier: Apache-2.0

package tscn

import (
	"os"

	"gopkg.tscn.org/parser.go/exc"
)

// Parse runs the full pipeline over scene text: lexing, then document
// assembly. Recoverable property-level problems are reported through the
// returned document's Warnings; the error is non-nil only for fatal
// tokenization or structural failures.
func Parse(text string) (*Document, error) {
	tokens, err := Lex(text)
	if err != nil {
		return nil, err
	}
	return ParseDocument(tokens)
}

// ParseFile reads path and parses its contents as a scene document.
func ParseFile(path string) (*Document, error) {
	body, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return Parse(string(body))
}

// ParseValueText parses text as one standalone value. Anything left over
// after the value, other than the terminating EOF token, is a value error.
func ParseValueText(text string) (Value, error) {
	tokens, err := Lex(text)
	if err != nil {
		return nil, err
	}
	v, next, err := ParseValue(tokens, 0)
	if err != nil {
		return nil, err
	}
	if next < len(tokens) && tokens[next].Type != TokenTypeEOF {
		tok := tokens[next]
		return nil, exc.Newf(exc.KindValue, exc.At(tok.Line, tok.Column), exc.CodeTrailingTokens,
			"unexpected %s after value", describeToken(&tok))
	}
	return v, nil
}
