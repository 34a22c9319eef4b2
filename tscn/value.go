// © 2024 tscn.org
//
// SPDX-License-Identifier: Apache-2.0

package tscn

import "fmt"

// Value is the closed set of shapes a scene property can take. The marker
// method seals the set so every consumption site can switch exhaustively
// over the concrete types instead of downcasting through a base record.
type Value interface {
	value()
}

// Null is the absent/null literal.
type Null struct{}

// Bool is the true/false literal.
type Bool bool

// Number is any numeric literal, hex included.
type Number float64

// String is a quoted string literal, already unescaped.
type String string

type Vector2 struct {
	X, Y float64
}

type Vector3 struct {
	X, Y, Z float64
}

type Vector4 struct {
	X, Y, Z, W float64
}

// Basis holds nine numbers in row-major order.
type Basis [9]float64

type Transform3D struct {
	Basis  Basis
	Origin Vector3
}

type Color struct {
	R, G, B, A float64
}

type Quaternion struct {
	X, Y, Z, W float64
}

// AABB is an axis-aligned box; the grammar requires both arguments to
// already be 3-vectors.
type AABB struct {
	Position Vector3
	Size     Vector3
}

type Plane struct {
	Normal Vector3
	D      float64
}

// ExtResource references an asset stored in a separate file by the short id
// it is registered under in the ext_resource sections.
type ExtResource struct {
	ID string
}

// SubResource references an asset defined inline in the same file.
type SubResource struct {
	ID string
}

type NodePath string

type PackedInt32Array []int32

type PackedVector3Array []Vector3

// Array is the generic ordered container.
type Array []Value

// Dictionary maps string keys to values. Lookup is by key; iteration via
// Keys follows insertion order.
type Dictionary struct {
	keys    []string
	entries map[string]Value
}

func NewDictionary() *Dictionary {
	return &Dictionary{entries: map[string]Value{}}
}

// Set records v under key, preserving the first insertion position on
// overwrite.
func (d *Dictionary) Set(key string, v Value) {
	if _, ok := d.entries[key]; !ok {
		d.keys = append(d.keys, key)
	}
	d.entries[key] = v
}

func (d *Dictionary) Get(key string) (Value, bool) {
	v, ok := d.entries[key]
	return v, ok
}

func (d *Dictionary) Keys() []string {
	return d.keys
}

func (d *Dictionary) Len() int {
	return len(d.keys)
}

func (Null) value()               {}
func (Bool) value()               {}
func (Number) value()             {}
func (String) value()             {}
func (Vector2) value()            {}
func (Vector3) value()            {}
func (Vector4) value()            {}
func (Basis) value()              {}
func (Transform3D) value()        {}
func (Color) value()              {}
func (Quaternion) value()         {}
func (AABB) value()               {}
func (Plane) value()              {}
func (ExtResource) value()        {}
func (SubResource) value()        {}
func (NodePath) value()           {}
func (PackedInt32Array) value()   {}
func (PackedVector3Array) value() {}
func (Array) value()              {}
func (*Dictionary) value()        {}

// String renders the reference in its canonical scene-text form.
func (r ExtResource) String() string {
	return fmt.Sprintf("ExtResource(%q)", r.ID)
}

// String renders the reference in its canonical scene-text form.
func (r SubResource) String() string {
	return fmt.Sprintf("SubResource(%q)", r.ID)
}
