// Copyright 2022 Matrix Origin
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package descriptor defines the closed set of shapes a key codec can
// encode. The shape tree is supplied by the caller and drives both the
// encoder and the decoder; it is never serialized with the data.
package descriptor

import "errors"

var (
	ErrNilShape            = errors.New("shape is nil")
	ErrMissingElement      = errors.New("shape requires an element shape")
	ErrMissingVariants     = errors.New("sum shape requires at least one variant")
	ErrZeroWidthElement    = errors.New("sequence element shape has zero encoded width")
	ErrUnexpectedStructure = errors.New("shape has structure its kind does not use")
	ErrUnknownShapeKind    = errors.New("unknown shape kind")
)

type ShapeKind int

const (
	SHAPE_INVALID ShapeKind = iota
	SHAPE_UNIT
	SHAPE_BOOL
	SHAPE_UINT8
	SHAPE_UINT16
	SHAPE_UINT32
	SHAPE_UINT64
	SHAPE_INT8
	SHAPE_INT16
	SHAPE_INT32
	SHAPE_INT64
	SHAPE_FLOAT32
	SHAPE_FLOAT64
	SHAPE_BYTES
	SHAPE_STRING
	SHAPE_OPTION
	SHAPE_SEQUENCE
	SHAPE_TUPLE
	SHAPE_SUM
)

// Shape describes the structure of one value.
// Elem is set for SHAPE_OPTION and SHAPE_SEQUENCE, Fields for
// SHAPE_TUPLE, Variants for SHAPE_SUM; scalar kinds carry nothing.
type Shape struct {
	Kind     ShapeKind
	Elem     *Shape
	Fields   []*Shape
	Variants []*Shape
}

func Unit() *Shape    { return &Shape{Kind: SHAPE_UNIT} }
func Bool() *Shape    { return &Shape{Kind: SHAPE_BOOL} }
func Uint8() *Shape   { return &Shape{Kind: SHAPE_UINT8} }
func Uint16() *Shape  { return &Shape{Kind: SHAPE_UINT16} }
func Uint32() *Shape  { return &Shape{Kind: SHAPE_UINT32} }
func Uint64() *Shape  { return &Shape{Kind: SHAPE_UINT64} }
func Int8() *Shape    { return &Shape{Kind: SHAPE_INT8} }
func Int16() *Shape   { return &Shape{Kind: SHAPE_INT16} }
func Int32() *Shape   { return &Shape{Kind: SHAPE_INT32} }
func Int64() *Shape   { return &Shape{Kind: SHAPE_INT64} }
func Float32() *Shape { return &Shape{Kind: SHAPE_FLOAT32} }
func Float64() *Shape { return &Shape{Kind: SHAPE_FLOAT64} }
func Bytes() *Shape   { return &Shape{Kind: SHAPE_BYTES} }
func String() *Shape  { return &Shape{Kind: SHAPE_STRING} }

func Option(elem *Shape) *Shape {
	return &Shape{Kind: SHAPE_OPTION, Elem: elem}
}

func Sequence(elem *Shape) *Shape {
	return &Shape{Kind: SHAPE_SEQUENCE, Elem: elem}
}

func Tuple(fields ...*Shape) *Shape {
	return &Shape{Kind: SHAPE_TUPLE, Fields: fields}
}

// Sum declares an ordered list of variants, each with its payload
// shape. The declared order is the encoded order; appending variants
// at the end is the only change that keeps old encodings valid.
func Sum(variants ...*Shape) *Shape {
	return &Shape{Kind: SHAPE_SUM, Variants: variants}
}

// Validate checks the structural rules of the shape tree.
func (s *Shape) Validate() error {
	if s == nil {
		return ErrNilShape
	}
	switch s.Kind {
	case SHAPE_UNIT, SHAPE_BOOL,
		SHAPE_UINT8, SHAPE_UINT16, SHAPE_UINT32, SHAPE_UINT64,
		SHAPE_INT8, SHAPE_INT16, SHAPE_INT32, SHAPE_INT64,
		SHAPE_FLOAT32, SHAPE_FLOAT64,
		SHAPE_BYTES, SHAPE_STRING:
		if s.Elem != nil || s.Fields != nil || s.Variants != nil {
			return ErrUnexpectedStructure
		}
		return nil
	case SHAPE_OPTION:
		if s.Elem == nil {
			return ErrMissingElement
		}
		return s.Elem.Validate()
	case SHAPE_SEQUENCE:
		if s.Elem == nil {
			return ErrMissingElement
		}
		// A zero-width element would make an element block
		// indistinguishable from the end-of-sequence marker.
		if s.Elem.zeroWidth() {
			return ErrZeroWidthElement
		}
		return s.Elem.Validate()
	case SHAPE_TUPLE:
		for _, f := range s.Fields {
			if err := f.Validate(); err != nil {
				return err
			}
		}
		return nil
	case SHAPE_SUM:
		if len(s.Variants) == 0 {
			return ErrMissingVariants
		}
		for _, v := range s.Variants {
			if err := v.Validate(); err != nil {
				return err
			}
		}
		return nil
	}
	return ErrUnknownShapeKind
}

// zeroWidth reports whether every value of the shape encodes to zero
// bytes.
func (s *Shape) zeroWidth() bool {
	if s == nil {
		return true
	}
	switch s.Kind {
	case SHAPE_UNIT:
		return true
	case SHAPE_TUPLE:
		for _, f := range s.Fields {
			if !f.zeroWidth() {
				return false
			}
		}
		return true
	}
	return false
}
