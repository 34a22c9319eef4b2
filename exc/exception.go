// © 2024 tscn.org
//
// SPDX-License-Identifier: Apache-2.0

package exc

import (
	"fmt"
)

// Kind partitions exceptions into the three failure classes a parse can
// surface: tokenization failures, value grammar failures, and document
// structure failures.
type Kind uint8

const (
	KindTokenize Kind = iota
	KindValue
	KindStructure
)

func (k Kind) String() string {
	switch k {
	case KindTokenize:
		return "tokenize error"
	case KindValue:
		return "value error"
	case KindStructure:
		return "structure error"
	}
	return "error"
}

// Location is a source position. Line is 1-indexed, Column is 0-indexed.
// Known reports whether the position was actually recorded; exceptions
// raised at end of input or outside any token have no usable position.
type Location struct {
	Line   int
	Column int
	Known  bool
}

func At(line int, column int) Location {
	return Location{Line: line, Column: column, Known: true}
}

type Exception interface {
	error
	Kind() Kind
	Code() string
	Message() string
	Location() Location
}

type exception struct {
	kind     Kind
	code     string
	message  string
	location Location
}

func (e *exception) Error() string {
	if e.location.Known {
		return fmt.Sprintf("%s at line %d, column %d: %s", e.kind, e.location.Line, e.location.Column, e.message)
	}
	return fmt.Sprintf("%s: %s", e.kind, e.message)
}

func (e *exception) Kind() Kind {
	return e.kind
}

func (e *exception) Code() string {
	return e.code
}

func (e *exception) Message() string {
	return e.message
}

func (e *exception) Location() Location {
	return e.location
}

type excUnwrap struct {
	Exception
	cause error
}

func (e *excUnwrap) Unwrap() error {
	return e.cause
}

func New(kind Kind, location Location, code string, message string) Exception {
	return &exception{
		kind:     kind,
		code:     code,
		message:  message,
		location: location,
	}
}

func Newf(kind Kind, location Location, code string, format string, args ...any) Exception {
	return New(kind, location, code, fmt.Sprintf(format, args...))
}

// Wrap converts err into an Exception of the given kind while keeping the
// original error reachable through errors.Unwrap. Wrapping an Exception
// keeps its message; wrapping nil returns nil.
func Wrap(kind Kind, location Location, code string, err error) Exception {
	if err == nil {
		return nil
	}
	if e, ok := err.(Exception); ok {
		return &excUnwrap{
			Exception: New(kind, location, code, e.Message()),
			cause:     e,
		}
	}
	return &excUnwrap{
		Exception: New(kind, location, code, err.Error()),
		cause:     err,
	}
}

// WrapUnknown is the catch-all for failures that are not already one of the
// recognized parse exception kinds; callers of the document parser only ever
// observe the three Kinds.
func WrapUnknown(err error) Exception {
	return Wrap(KindStructure, Location{}, CodeUnknownFatal, err)
}
