// © 2024 tscn.org
//
// SPDX-License-Identifier: Apache-2.0

package tscn

import (
	"testing"

	"github.com/stretchr/testify/require"

	"gopkg.tscn.org/parser.go/exc"
)

func mustLex(t *testing.T, input string) []Token {
	t.Helper()
	tokens, err := Lex(input)
	require.NoError(t, err)
	return tokens
}

func TestParseValue(t *testing.T) {
	t.Parallel()

	dict := NewDictionary()
	dict.Set("a", Number(1))
	dict.Set("b", Array{Bool(true), Null{}})

	testCases := []struct {
		name     string
		input    string
		expected Value
	}{
		{name: "number", input: "42", expected: Number(42)},
		{name: "negative number", input: "-7", expected: Number(-7)},
		{name: "hex number", input: "0xFF", expected: Number(255)},
		{name: "string", input: `"hello"`, expected: String("hello")},
		{name: "true", input: "true", expected: Bool(true)},
		{name: "false", input: "false", expected: Bool(false)},
		{name: "null", input: "null", expected: Null{}},
		{name: "empty array", input: "[]", expected: Array{}},
		{name: "array", input: `[1, "two", true]`, expected: Array{Number(1), String("two"), Bool(true)}},
		{name: "array trailing comma", input: "[1, 2,]", expected: Array{Number(1), Number(2)}},
		{name: "nested arrays", input: "[[1], [2, [3]]]", expected: Array{Array{Number(1)}, Array{Number(2), Array{Number(3)}}}},
		{name: "empty dictionary", input: "{}", expected: NewDictionary()},
		{name: "dictionary", input: `{"a": 1, "b": [true, null]}`, expected: dict},
		{name: "vector2", input: "Vector2(1, 2)", expected: Vector2{1, 2}},
		{name: "vector2 trailing comma", input: "Vector2(1, 2,)", expected: Vector2{1, 2}},
		{name: "vector3", input: "Vector3(1.5, -2, 3e2)", expected: Vector3{1.5, -2, 300}},
		{name: "vector4", input: "Vector4(1, 2, 3, 4)", expected: Vector4{1, 2, 3, 4}},
		{name: "color", input: "Color(1, 0.5, 0, 1)", expected: Color{1, 0.5, 0, 1}},
		{name: "quaternion", input: "Quaternion(0, 0, 0, 1)", expected: Quaternion{0, 0, 0, 1}},
		{name: "basis", input: "Basis(1, 0, 0, 0, 1, 0, 0, 0, 1)", expected: Basis{1, 0, 0, 0, 1, 0, 0, 0, 1}},
		{
			name:  "transform3d",
			input: "Transform3D(1, 0, 0, 0, 1, 0, 0, 0, 1, 10, 20, 30)",
			expected: Transform3D{
				Basis:  Basis{1, 0, 0, 0, 1, 0, 0, 0, 1},
				Origin: Vector3{10, 20, 30},
			},
		},
		{name: "ext resource", input: `ExtResource("1_abc")`, expected: ExtResource{ID: "1_abc"}},
		{name: "sub resource", input: `SubResource("Mat_1")`, expected: SubResource{ID: "Mat_1"}},
		{name: "node path", input: `NodePath("Root/Child")`, expected: NodePath("Root/Child")},
		{
			name:     "aabb",
			input:    "AABB(Vector3(0, 0, 0), Vector3(1, 2, 3))",
			expected: AABB{Position: Vector3{0, 0, 0}, Size: Vector3{1, 2, 3}},
		},
		{
			name:     "plane",
			input:    "Plane(Vector3(0, 1, 0), 5)",
			expected: Plane{Normal: Vector3{0, 1, 0}, D: 5},
		},
		{name: "packed int32 truncates", input: "PackedInt32Array(1.9, -2, 0x10)", expected: PackedInt32Array{1, -2, 16}},
		{name: "empty packed int32", input: "PackedInt32Array()", expected: PackedInt32Array{}},
		{
			name:     "packed vector3",
			input:    "PackedVector3Array(1, 2, 3, 4, 5, 6)",
			expected: PackedVector3Array{{1, 2, 3}, {4, 5, 6}},
		},
		{name: "typed array nested form", input: "Array[int]([1, 2, 3])", expected: Array{Number(1), Number(2), Number(3)}},
		{name: "typed array flat form", input: "Array[int](1, 2, 3)", expected: Array{Number(1), Number(2), Number(3)}},
		{name: "typed array empty", input: "Array[float]()", expected: Array{}},
		{name: "typed array nested form trailing comma", input: "Array[int]([1, 2],)", expected: Array{Number(1), Number(2)}},
		{
			name:     "typed array of arrays stays flat",
			input:    "Array[int]([1, 2], [3, 4])",
			expected: Array{Array{Number(1), Number(2)}, Array{Number(3), Number(4)}},
		},
		{
			name:     "array of constructors",
			input:    `[Vector2(0, 0), ExtResource("2_x")]`,
			expected: Array{Vector2{0, 0}, ExtResource{ID: "2_x"}},
		},
	}

	for _, tc := range testCases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			tokens := mustLex(t, tc.input)
			v, next, err := ParseValue(tokens, 0)
			require.NoError(t, err)
			require.Equal(t, tc.expected, v)
			require.Equal(t, TokenTypeEOF, tokens[next].Type)
		})
	}
}

func TestParseValueTypedArrayFormsAreEquivalent(t *testing.T) {
	t.Parallel()
	nested, _, err := ParseValue(mustLex(t, "Array[int]([1, 2, 3])"), 0)
	require.NoError(t, err)
	flat, _, err := ParseValue(mustLex(t, "Array[int](1, 2, 3)"), 0)
	require.NoError(t, err)
	require.Equal(t, nested, flat)
	require.Len(t, nested, 3)
}

func TestParseValueErrors(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name     string
		input    string
		code     string
		contains string
	}{
		{name: "too few constructor args", input: "Vector2(1)", code: exc.CodeWrongArgCount, contains: "Vector2 expects 2 arguments, got 1"},
		{name: "too many constructor args", input: "Vector3(1, 2, 3, 4)", code: exc.CodeWrongArgCount, contains: "3 arguments, got 4"},
		{name: "transform arity", input: "Transform3D(1, 2, 3)", code: exc.CodeWrongArgCount, contains: "12 arguments"},
		{name: "unknown type name", input: "Mystery(1)", code: exc.CodeUnknownType, contains: `unrecognized type name "Mystery"`},
		{name: "bare identifier", input: "banana", code: exc.CodeUnexpectedToken, contains: "banana"},
		{name: "non-string dictionary key", input: "{a: 1}", code: exc.CodeUnexpectedToken, contains: "dictionary keys must be strings"},
		{name: "composite where scalar expected", input: "Vector2(Vector2(1, 1), 2)", code: exc.CodeBadArgument, contains: "argument 1 must be a number"},
		{name: "string where number expected", input: `Vector2("a", 1)`, code: exc.CodeBadArgument, contains: "must be a number"},
		{name: "number where string expected", input: "ExtResource(1)", code: exc.CodeBadArgument, contains: "must be a string"},
		{name: "aabb scalar argument", input: "AABB(1, Vector3(0, 0, 0))", code: exc.CodeBadArgument, contains: "must be a Vector3"},
		{name: "plane bad distance", input: `Plane(Vector3(0, 1, 0), "far")`, code: exc.CodeBadArgument, contains: "argument 2 must be a number"},
		{name: "packed vector3 arity", input: "PackedVector3Array(1, 2)", code: exc.CodeWrongArgCount, contains: "multiple of 3"},
		{name: "unterminated array", input: "[1,", code: exc.CodeUnexpectedEOF, contains: "unexpected end of input"},
		{name: "unterminated constructor", input: "Vector2(1,", code: exc.CodeUnexpectedEOF, contains: "unexpected end of input"},
		{name: "missing comma", input: "[1 2]", code: exc.CodeUnexpectedToken, contains: "expecting ','"},
		{name: "missing colon in dictionary", input: `{"a" 1}`, code: exc.CodeUnexpectedToken, contains: "expecting ':'"},
		{name: "error token consumed", input: "%", code: exc.CodeUnexpectedToken, contains: "unexpected character"},
		{name: "typed array element type not identifier", input: "Array[1](2)", code: exc.CodeUnexpectedToken, contains: "expecting identifier"},
		{name: "empty input", input: "", code: exc.CodeUnexpectedEOF, contains: "expecting a value"},
	}

	for _, tc := range testCases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			tokens := mustLex(t, tc.input)
			_, _, err := ParseValue(tokens, 0)
			require.Error(t, err)
			e, ok := err.(exc.Exception)
			require.True(t, ok)
			require.Equal(t, exc.KindValue, e.Kind())
			require.Equal(t, tc.code, e.Code())
			require.Contains(t, err.Error(), tc.contains)
		})
	}
}

func TestParseValueEndIndex(t *testing.T) {
	t.Parallel()
	tokens := mustLex(t, "1 2")
	v, next, err := ParseValue(tokens, 0)
	require.NoError(t, err)
	require.Equal(t, Number(1), v)
	require.Equal(t, 1, next)

	v, next, err = ParseValue(tokens, next)
	require.NoError(t, err)
	require.Equal(t, Number(2), v)
	require.Equal(t, 2, next)
}
