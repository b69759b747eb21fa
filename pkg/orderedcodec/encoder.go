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

import "math"

// Reserved byte values in variable-length encodings.
// A literal 0x00 in the content becomes the pair {0x00,0xFF}; the pair
// {0x00,0x00} terminates the block. The terminator sorts below every
// escaped continuation, so a proper byte-prefix encodes strictly less
// than any of its extensions.
const (
	escapeByte     byte = 0x00
	escapedZero    byte = 0xFF
	terminatorByte byte = 0x00
)

// Boundaries of the order-preserving uvarint classes.
// One byte carries [0,uvarintSingleMax]; markers 241-248 introduce one
// payload byte; marker 249 introduces two; markers 250-255 introduce
// three to eight payload bytes of the raw value in big-endian order.
const (
	uvarintSingleMax  = 240
	uvarintDoubleMax  = 2287
	uvarintTripleMax  = 67823
	uvarintDoubleBase = 241
	uvarintTripleTag  = 249
	uvarintBigTagBase = 250
)

// OrderedEncoder appends order-preserving encodings to a caller-owned
// buffer. It keeps no state across calls.
type OrderedEncoder struct {
}

func NewOrderedEncoder() *OrderedEncoder {
	return &OrderedEncoder{}
}

func (oe *OrderedEncoder) EncodeBool(data []byte, value bool) []byte {
	if value {
		return append(data, 1)
	}
	return append(data, 0)
}

// EncodeUint8 encodes the uint8 into ascending bytes
func (oe *OrderedEncoder) EncodeUint8(data []byte, value uint8) []byte {
	return append(data, value)
}

func (oe *OrderedEncoder) EncodeUint16(data []byte, value uint16) []byte {
	return append(data, byte(value>>8), byte(value))
}

func (oe *OrderedEncoder) EncodeUint32(data []byte, value uint32) []byte {
	return append(data,
		byte(value>>24), byte(value>>16), byte(value>>8), byte(value))
}

func (oe *OrderedEncoder) EncodeUint64(data []byte, value uint64) []byte {
	return append(data,
		byte(value>>56), byte(value>>48), byte(value>>40), byte(value>>32),
		byte(value>>24), byte(value>>16), byte(value>>8), byte(value))
}

// EncodeInt8 encodes the int8 into ascending bytes.
// Flipping the sign bit maps the signed range onto the unsigned range
// in order-preserving fashion.
func (oe *OrderedEncoder) EncodeInt8(data []byte, value int8) []byte {
	return oe.EncodeUint8(data, uint8(value)^0x80)
}

func (oe *OrderedEncoder) EncodeInt16(data []byte, value int16) []byte {
	return oe.EncodeUint16(data, uint16(value)^0x8000)
}

func (oe *OrderedEncoder) EncodeInt32(data []byte, value int32) []byte {
	return oe.EncodeUint32(data, uint32(value)^0x80000000)
}

func (oe *OrderedEncoder) EncodeInt64(data []byte, value int64) []byte {
	return oe.EncodeUint64(data, uint64(value)^0x8000000000000000)
}

// EncodeFloat32 encodes the float32 into ascending bytes.
// Non-negative values get the sign bit set; negative values get every
// bit inverted. The resulting unsigned pattern is monotonic in the
// numeric value (Hacker's Delight 17-3).
func (oe *OrderedEncoder) EncodeFloat32(data []byte, value float32) []byte {
	bits := math.Float32bits(value)
	if bits&0x80000000 != 0 {
		bits = ^bits
	} else {
		bits |= 0x80000000
	}
	return oe.EncodeUint32(data, bits)
}

func (oe *OrderedEncoder) EncodeFloat64(data []byte, value float64) []byte {
	bits := math.Float64bits(value)
	if bits&0x8000000000000000 != 0 {
		bits = ^bits
	} else {
		bits |= 0x8000000000000000
	}
	return oe.EncodeUint64(data, bits)
}

// EncodeBytes encodes the bytes into ascending bytes with the
// escape-and-terminate rule, so the result can be embedded between
// other fields without a length prefix.
func (oe *OrderedEncoder) EncodeBytes(data []byte, value []byte) []byte {
	for _, b := range value {
		if b == escapeByte {
			data = append(data, escapeByte, escapedZero)
		} else {
			data = append(data, b)
		}
	}
	return append(data, escapeByte, terminatorByte)
}

func (oe *OrderedEncoder) EncodeString(data []byte, value string) []byte {
	for i := 0; i < len(value); i++ {
		if value[i] == escapeByte {
			data = append(data, escapeByte, escapedZero)
		} else {
			data = append(data, value[i])
		}
	}
	return append(data, escapeByte, terminatorByte)
}

// EncodeUvarint encodes the uint64 into between 1 and 9 ascending
// bytes. Smaller values encode shorter; encodings of different lengths
// still compare correctly because each class marker exceeds every byte
// the previous class can start with.
func (oe *OrderedEncoder) EncodeUvarint(data []byte, value uint64) []byte {
	switch {
	case value <= uvarintSingleMax:
		return append(data, byte(value))
	case value <= uvarintDoubleMax:
		value -= uvarintSingleMax
		return append(data,
			byte(uvarintDoubleBase+value/256), byte(value%256))
	case value <= uvarintTripleMax:
		value -= uvarintDoubleMax + 1
		return append(data, uvarintTripleTag, byte(value>>8), byte(value))
	default:
		var width int
		switch {
		case value <= 0xFFFFFF:
			width = 3
		case value <= 0xFFFFFFFF:
			width = 4
		case value <= 0xFFFFFFFFFF:
			width = 5
		case value <= 0xFFFFFFFFFFFF:
			width = 6
		case value <= 0xFFFFFFFFFFFFFF:
			width = 7
		default:
			width = 8
		}
		data = append(data, byte(uvarintBigTagBase+width-3))
		for shift := (width - 1) * 8; shift >= 0; shift -= 8 {
			data = append(data, byte(value>>uint(shift)))
		}
		return data
	}
}
