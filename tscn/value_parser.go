// © 2024 tscn.org
//
// SPDX-License-Identifier: Apache-2.0

package tscn

import (
	"fmt"

	"gopkg.tscn.org/parser.go/exc"
)

// ParseValue parses one value from tokens beginning at start. It returns
// the value and the index one past the last consumed token. Any grammar
// violation is a value-kind exception carrying the offending token's
// position when one is available.
func ParseValue(tokens []Token, start int) (Value, int, error) {
	p := &valueParser{tokens: tokens, pos: start}
	v, err := p.parseValue()
	if err != nil {
		return nil, p.pos, err
	}
	return v, p.pos, nil
}

type valueParser struct {
	tokens []Token
	pos    int
}

func (p *valueParser) peek() *Token {
	if p.pos >= len(p.tokens) {
		return nil
	}
	return &p.tokens[p.pos]
}

func (p *valueParser) advance() {
	p.pos++
}

// reports an error if there is no current token, the current token is an
// error placeholder, or it isn't of the expected type. Advances on success.
func (p *valueParser) expectOne(expectedType TokenType) (Token, error) {
	tok := p.peek()
	if tok == nil || tok.Type == TokenTypeEOF {
		return Token{}, p.unexpectedEOF(expectedType.String())
	}
	if tok.Type == TokenTypeError {
		return Token{}, exc.New(exc.KindValue, tokenAt(tok), exc.CodeUnexpectedToken, tok.Text)
	}
	if tok.Type != expectedType {
		return Token{}, exc.Newf(exc.KindValue, tokenAt(tok), exc.CodeUnexpectedToken, "unexpected %s (expecting %s)", describeToken(tok), expectedType)
	}
	p.advance()
	return *tok, nil
}

func (p *valueParser) unexpectedEOF(expecting string) error {
	loc := exc.Location{}
	if tok := p.peek(); tok != nil {
		loc = tokenAt(tok)
	} else if len(p.tokens) > 0 {
		loc = tokenAt(&p.tokens[len(p.tokens)-1])
	}
	return exc.Newf(exc.KindValue, loc, exc.CodeUnexpectedEOF, "unexpected end of input (expecting %s)", expecting)
}

// Value = number | string | Array | Dictionary | keyword | TypedArray | Constructor
func (p *valueParser) parseValue() (Value, error) {
	tok := p.peek()
	if tok == nil || tok.Type == TokenTypeEOF {
		return nil, p.unexpectedEOF("a value")
	}
	switch tok.Type {
	case TokenTypeNumber:
		p.advance()
		f, err := tok.Float()
		if err != nil {
			return nil, exc.Newf(exc.KindValue, tokenAt(tok), exc.CodeBadArgument, "invalid number literal %q", tok.Text)
		}
		return Number(f), nil
	case TokenTypeString:
		p.advance()
		return String(tok.Text), nil
	case TokenTypeSquareOpen:
		return p.parseArray()
	case TokenTypeCurlyOpen:
		return p.parseDictionary()
	case TokenTypeIdentifier, TokenTypeColor:
		return p.parseIdentifierValue()
	case TokenTypeError:
		return nil, exc.New(exc.KindValue, tokenAt(tok), exc.CodeUnexpectedToken, tok.Text)
	default:
		return nil, exc.Newf(exc.KindValue, tokenAt(tok), exc.CodeUnexpectedToken, "unexpected %s (expecting a value)", describeToken(tok))
	}
}

// Array = "[" [ Value { "," Value } [ "," ] ] "]"
func (p *valueParser) parseArray() (Value, error) {
	values, err := applyOverCommaSeparatedList(p, TokenTypeSquareOpen, p.parseValue, TokenTypeSquareClose)
	if err != nil {
		return nil, err
	}
	return Array(values), nil
}

// Dictionary = "{" [ Entry { "," Entry } [ "," ] ] "}"
// Entry = string ":" Value
func (p *valueParser) parseDictionary() (Value, error) {
	d := NewDictionary()
	parseEntry := func() (struct{}, error) {
		tok := p.peek()
		if tok == nil || tok.Type == TokenTypeEOF {
			return struct{}{}, p.unexpectedEOF("a dictionary key")
		}
		if tok.Type != TokenTypeString {
			return struct{}{}, exc.Newf(exc.KindValue, tokenAt(tok), exc.CodeUnexpectedToken, "dictionary keys must be strings, got %s", describeToken(tok))
		}
		p.advance()
		if _, err := p.expectOne(TokenTypeColon); err != nil {
			return struct{}{}, err
		}
		v, err := p.parseValue()
		if err != nil {
			return struct{}{}, err
		}
		d.Set(tok.Text, v)
		return struct{}{}, nil
	}
	if _, err := applyOverCommaSeparatedList(p, TokenTypeCurlyOpen, parseEntry, TokenTypeCurlyClose); err != nil {
		return nil, err
	}
	return d, nil
}

func (p *valueParser) parseIdentifierValue() (Value, error) {
	name := *p.peek()
	p.advance()
	switch name.Text {
	case "true":
		return Bool(true), nil
	case "false":
		return Bool(false), nil
	case "null":
		return Null{}, nil
	}
	next := p.peek()
	if next != nil && next.Type == TokenTypeSquareOpen {
		return p.parseTypedArray(name)
	}
	if next != nil && next.Type == TokenTypeParenOpen {
		return p.parseConstructor(name)
	}
	return nil, exc.Newf(exc.KindValue, tokenAt(&name), exc.CodeUnexpectedToken, "unexpected identifier %q (expecting a value)", name.Text)
}

// TypedArray = name "[" identifier "]" "(" Arguments ")"
//
// The declared element type is required to be a single identifier and then
// discarded: it is never checked against the actual elements. The canonical
// body is a single bracketed array; that shape unwraps, so the nested form
// and the flat argument form reduce to the same Array.
func (p *valueParser) parseTypedArray(name Token) (Value, error) {
	if _, err := p.expectOne(TokenTypeSquareOpen); err != nil {
		return nil, err
	}
	if _, err := p.expectOne(TokenTypeIdentifier); err != nil {
		return nil, err
	}
	if _, err := p.expectOne(TokenTypeSquareClose); err != nil {
		return nil, err
	}
	values, err := applyOverCommaSeparatedList(p, TokenTypeParenOpen, p.parseValue, TokenTypeParenClose)
	if err != nil {
		return nil, err
	}
	if len(values) == 1 {
		if inner, ok := values[0].(Array); ok {
			return inner, nil
		}
	}
	return Array(values), nil
}

// Constructor = name "(" Arguments ")"
//
// Dispatch is by name over the fixed set of composite types; every entry
// enforces its exact argument count and argument shapes.
func (p *valueParser) parseConstructor(name Token) (Value, error) {
	args, err := applyOverCommaSeparatedList(p, TokenTypeParenOpen, p.parseValue, TokenTypeParenClose)
	if err != nil {
		return nil, err
	}
	switch name.Text {
	case "Vector2":
		ns, err := p.numberArgs(name, args, 2)
		if err != nil {
			return nil, err
		}
		return Vector2{ns[0], ns[1]}, nil
	case "Vector3":
		ns, err := p.numberArgs(name, args, 3)
		if err != nil {
			return nil, err
		}
		return Vector3{ns[0], ns[1], ns[2]}, nil
	case "Vector4":
		ns, err := p.numberArgs(name, args, 4)
		if err != nil {
			return nil, err
		}
		return Vector4{ns[0], ns[1], ns[2], ns[3]}, nil
	case "Quaternion":
		ns, err := p.numberArgs(name, args, 4)
		if err != nil {
			return nil, err
		}
		return Quaternion{ns[0], ns[1], ns[2], ns[3]}, nil
	case "Color":
		ns, err := p.numberArgs(name, args, 4)
		if err != nil {
			return nil, err
		}
		return Color{ns[0], ns[1], ns[2], ns[3]}, nil
	case "Basis":
		ns, err := p.numberArgs(name, args, 9)
		if err != nil {
			return nil, err
		}
		return Basis(ns), nil
	case "Transform3D":
		ns, err := p.numberArgs(name, args, 12)
		if err != nil {
			return nil, err
		}
		return Transform3D{
			Basis:  Basis(ns[:9]),
			Origin: Vector3{ns[9], ns[10], ns[11]},
		}, nil
	case "ExtResource":
		s, err := p.stringArg(name, args)
		if err != nil {
			return nil, err
		}
		return ExtResource{ID: s}, nil
	case "SubResource":
		s, err := p.stringArg(name, args)
		if err != nil {
			return nil, err
		}
		return SubResource{ID: s}, nil
	case "NodePath":
		s, err := p.stringArg(name, args)
		if err != nil {
			return nil, err
		}
		return NodePath(s), nil
	case "AABB":
		if len(args) != 2 {
			return nil, p.arityError(name, "2", len(args))
		}
		pos, ok := args[0].(Vector3)
		if !ok {
			return nil, p.argError(name, 1, "a Vector3")
		}
		size, ok := args[1].(Vector3)
		if !ok {
			return nil, p.argError(name, 2, "a Vector3")
		}
		return AABB{Position: pos, Size: size}, nil
	case "Plane":
		if len(args) != 2 {
			return nil, p.arityError(name, "2", len(args))
		}
		normal, ok := args[0].(Vector3)
		if !ok {
			return nil, p.argError(name, 1, "a Vector3")
		}
		d, ok := args[1].(Number)
		if !ok {
			return nil, p.argError(name, 2, "a number")
		}
		return Plane{Normal: normal, D: float64(d)}, nil
	case "PackedInt32Array":
		out := make(PackedInt32Array, 0, len(args))
		for i, a := range args {
			n, ok := a.(Number)
			if !ok {
				return nil, p.argError(name, i+1, "a number")
			}
			out = append(out, int32(n))
		}
		return out, nil
	case "PackedVector3Array":
		if len(args)%3 != 0 {
			return nil, p.arityError(name, "a multiple of 3", len(args))
		}
		out := make(PackedVector3Array, 0, len(args)/3)
		for i := 0; i < len(args); i += 3 {
			ns, err := p.numberRange(name, args, i, 3)
			if err != nil {
				return nil, err
			}
			out = append(out, Vector3{ns[0], ns[1], ns[2]})
		}
		return out, nil
	}
	return nil, exc.Newf(exc.KindValue, tokenAt(&name), exc.CodeUnknownType, "unrecognized type name %q", name.Text)
}

func (p *valueParser) numberArgs(name Token, args []Value, want int) ([]float64, error) {
	if len(args) != want {
		return nil, p.arityError(name, fmt.Sprintf("%d", want), len(args))
	}
	return p.numberRange(name, args, 0, want)
}

func (p *valueParser) numberRange(name Token, args []Value, start int, count int) ([]float64, error) {
	out := make([]float64, 0, count)
	for i := start; i < start+count; i++ {
		n, ok := args[i].(Number)
		if !ok {
			return nil, p.argError(name, i+1, "a number")
		}
		out = append(out, float64(n))
	}
	return out, nil
}

func (p *valueParser) stringArg(name Token, args []Value) (string, error) {
	if len(args) != 1 {
		return "", p.arityError(name, "1", len(args))
	}
	s, ok := args[0].(String)
	if !ok {
		return "", p.argError(name, 1, "a string")
	}
	return string(s), nil
}

func (p *valueParser) arityError(name Token, want string, got int) error {
	return exc.Newf(exc.KindValue, tokenAt(&name), exc.CodeWrongArgCount, "%s expects %s arguments, got %d", name.Text, want, got)
}

func (p *valueParser) argError(name Token, index int, want string) error {
	return exc.Newf(exc.KindValue, tokenAt(&name), exc.CodeBadArgument, "%s argument %d must be %s", name.Text, index, want)
}

// generic application of parsing lists of zero or more comma-separated
// items, allowing an optional trailing comma before the closing delimiter.
func applyOverCommaSeparatedList[N any](p *valueParser, tOpen TokenType, parser func() (N, error), tClose TokenType) ([]N, error) {
	if _, err := p.expectOne(tOpen); err != nil {
		return nil, err
	}
	values := []N{}
	for {
		tok := p.peek()
		if tok == nil || tok.Type == TokenTypeEOF {
			return nil, p.unexpectedEOF(tClose.String())
		}
		if tok.Type == tClose {
			p.advance()
			return values, nil
		}
		v, err := parser()
		if err != nil {
			return nil, err
		}
		values = append(values, v)

		tok = p.peek()
		if tok == nil || tok.Type == TokenTypeEOF {
			return nil, p.unexpectedEOF(tClose.String())
		}
		if tok.Type == tClose {
			p.advance()
			return values, nil
		}
		if _, err := p.expectOne(TokenTypeComma); err != nil {
			return nil, err
		}
	}
}

func tokenAt(tok *Token) exc.Location {
	return exc.At(tok.Line, tok.Column)
}

func describeToken(tok *Token) string {
	switch tok.Type {
	case TokenTypeIdentifier, TokenTypeNumber, TokenTypeColor:
		return fmt.Sprintf("%q", tok.Text)
	case TokenTypeString:
		return fmt.Sprintf("string %q", tok.Text)
	default:
		return tok.Type.String()
	}
}
