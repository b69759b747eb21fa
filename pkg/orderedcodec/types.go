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

package orderedcodec

import "errors"

var (
	ErrNoEnoughBytes   = errors.New("there is no enough bytes")
	ErrMalformedEscape = errors.New("malformed escape in encoded bytes")
	ErrVarintOverflow  = errors.New("varint is overflow")
	ErrInvalidBool     = errors.New("encoded bool is not 0 or 1")
)

type ValueType int

const (
	VALUE_TYPE_UNKOWN ValueType = iota
	VALUE_TYPE_BOOL
	VALUE_TYPE_UINT8
	VALUE_TYPE_UINT16
	VALUE_TYPE_UINT32
	VALUE_TYPE_UINT64
	VALUE_TYPE_INT8
	VALUE_TYPE_INT16
	VALUE_TYPE_INT32
	VALUE_TYPE_INT64
	VALUE_TYPE_FLOAT32
	VALUE_TYPE_FLOAT64
	VALUE_TYPE_BYTES
	VALUE_TYPE_STRING
	VALUE_TYPE_UVARINT
	VALUE_TYPE_UNIT
	VALUE_TYPE_OPTION
	VALUE_TYPE_SEQUENCE
	VALUE_TYPE_TUPLE
	VALUE_TYPE_SUM
)

// DecodedItem holds one decoded value and the count of encoded bytes
// it occupied in the input buffer.
type DecodedItem struct {
	Value             interface{}
	ValueType         ValueType
	BytesCountInValue int
}

func NewDecodedItem(value interface{}, vt ValueType, bytesCount int) *DecodedItem {
	return &DecodedItem{
		Value:             value,
		ValueType:         vt,
		BytesCountInValue: bytesCount,
	}
}
