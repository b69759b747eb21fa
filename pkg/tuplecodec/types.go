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

// Package tuplecodec turns structured values into sortable keys.
// Encoding walks a caller-supplied shape tree and concatenates the
// order-preserving encodings of every field; decoding walks the same
// tree and partitions the buffer back into values. Keys produced here
// compare with bytes.Compare exactly as the source values compare.
package tuplecodec

import (
	"errors"

	"github.com/matrixorigin/orderedkey/pkg/descriptor"
)

var (
	ErrInvalidTag         = errors.New("sum variant tag is out of the declared range")
	ErrWrongValueType     = errors.New("value does not conform to the shape")
	ErrUnknownShape       = errors.New("unknown shape kind")
	ErrCorruptedBlock     = errors.New("element block has bytes after the element")
	ErrAttributeCount     = errors.New("attribute count does not match the shape list")
	ErrInvalidAttributeID = errors.New("invalid attribute id")
)

type TupleKey []byte

type TupleValue []byte

// Tuple is the row abstraction the encoder reads field values from.
type Tuple interface {
	GetAttributeCount() (uint32, error)

	GetValue(attrID uint32) (interface{}, error)
}

// SliceTuple adapts a value slice to the Tuple interface.
type SliceTuple struct {
	values []interface{}
}

func NewSliceTuple(values ...interface{}) *SliceTuple {
	return &SliceTuple{values: values}
}

func (st *SliceTuple) GetAttributeCount() (uint32, error) {
	return uint32(len(st.values)), nil
}

func (st *SliceTuple) GetValue(attrID uint32) (interface{}, error) {
	if attrID >= uint32(len(st.values)) {
		return nil, ErrInvalidAttributeID
	}
	return st.values[attrID], nil
}

// Optional wraps a value of an option shape. Absent sorts before every
// present value.
type Optional struct {
	Present bool
	Value   interface{}
}

func Some(value interface{}) Optional {
	return Optional{Present: true, Value: value}
}

func None() Optional {
	return Optional{}
}

// Variant selects one case of a sum shape. Tag indexes the declared
// variant list.
type Variant struct {
	Tag   uint64
	Value interface{}
}

// TupleCodecHandler pairs the encoder and the decoder over one shared
// transform table.
type TupleCodecHandler struct {
	tke *TupleKeyEncoder
	tkd *TupleKeyDecoder
}

func NewTupleCodecHandler() *TupleCodecHandler {
	return &TupleCodecHandler{
		tke: NewTupleKeyEncoder(),
		tkd: NewTupleKeyDecoder(),
	}
}

func (tch *TupleCodecHandler) GetEncoder() *TupleKeyEncoder {
	return tch.tke
}

func (tch *TupleCodecHandler) GetDecoder() *TupleKeyDecoder {
	return tch.tkd
}

// Encode encodes the value under the shape into a fresh key.
func Encode(value interface{}, shape *descriptor.Shape) (TupleKey, error) {
	if err := shape.Validate(); err != nil {
		return nil, err
	}
	return NewTupleKeyEncoder().EncodeValue(nil, value, shape)
}

// Decode decodes one value of the shape from data and reports how many
// bytes it consumed.
func Decode(data []byte, shape *descriptor.Shape) (interface{}, int, error) {
	if err := shape.Validate(); err != nil {
		return nil, 0, err
	}
	_, di, err := NewTupleKeyDecoder().DecodeValue(data, shape)
	if err != nil {
		return nil, 0, err
	}
	return di.Value, di.BytesCountInValue, nil
}
