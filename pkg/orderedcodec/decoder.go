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

// OrderedDecoder reads order-preserving encodings from a borrowed
// buffer. Every method returns the unconsumed remainder of the input
// together with the decoded item; the input is never mutated.
type OrderedDecoder struct {
}

func NewOrderedDecoder() *OrderedDecoder {
	return &OrderedDecoder{}
}

func (od *OrderedDecoder) DecodeBool(data []byte) ([]byte, *DecodedItem, error) {
	if len(data) < 1 {
		return nil, nil, ErrNoEnoughBytes
	}
	switch data[0] {
	case 0:
		return data[1:], NewDecodedItem(false, VALUE_TYPE_BOOL, 1), nil
	case 1:
		return data[1:], NewDecodedItem(true, VALUE_TYPE_BOOL, 1), nil
	}
	return nil, nil, ErrInvalidBool
}

func (od *OrderedDecoder) DecodeUint8(data []byte) ([]byte, *DecodedItem, error) {
	if len(data) < 1 {
		return nil, nil, ErrNoEnoughBytes
	}
	return data[1:], NewDecodedItem(data[0], VALUE_TYPE_UINT8, 1), nil
}

func (od *OrderedDecoder) DecodeUint16(data []byte) ([]byte, *DecodedItem, error) {
	if len(data) < 2 {
		return nil, nil, ErrNoEnoughBytes
	}
	v := uint16(data[0])<<8 | uint16(data[1])
	return data[2:], NewDecodedItem(v, VALUE_TYPE_UINT16, 2), nil
}

func (od *OrderedDecoder) DecodeUint32(data []byte) ([]byte, *DecodedItem, error) {
	if len(data) < 4 {
		return nil, nil, ErrNoEnoughBytes
	}
	v := uint32(data[0])<<24 | uint32(data[1])<<16 |
		uint32(data[2])<<8 | uint32(data[3])
	return data[4:], NewDecodedItem(v, VALUE_TYPE_UINT32, 4), nil
}

func (od *OrderedDecoder) DecodeUint64(data []byte) ([]byte, *DecodedItem, error) {
	if len(data) < 8 {
		return nil, nil, ErrNoEnoughBytes
	}
	v := uint64(data[0])<<56 | uint64(data[1])<<48 |
		uint64(data[2])<<40 | uint64(data[3])<<32 |
		uint64(data[4])<<24 | uint64(data[5])<<16 |
		uint64(data[6])<<8 | uint64(data[7])
	return data[8:], NewDecodedItem(v, VALUE_TYPE_UINT64, 8), nil
}

func (od *OrderedDecoder) DecodeInt8(data []byte) ([]byte, *DecodedItem, error) {
	rest, di, err := od.DecodeUint8(data)
	if err != nil {
		return nil, nil, err
	}
	di.Value = int8(di.Value.(uint8) ^ 0x80)
	di.ValueType = VALUE_TYPE_INT8
	return rest, di, nil
}

func (od *OrderedDecoder) DecodeInt16(data []byte) ([]byte, *DecodedItem, error) {
	rest, di, err := od.DecodeUint16(data)
	if err != nil {
		return nil, nil, err
	}
	di.Value = int16(di.Value.(uint16) ^ 0x8000)
	di.ValueType = VALUE_TYPE_INT16
	return rest, di, nil
}

func (od *OrderedDecoder) DecodeInt32(data []byte) ([]byte, *DecodedItem, error) {
	rest, di, err := od.DecodeUint32(data)
	if err != nil {
		return nil, nil, err
	}
	di.Value = int32(di.Value.(uint32) ^ 0x80000000)
	di.ValueType = VALUE_TYPE_INT32
	return rest, di, nil
}

func (od *OrderedDecoder) DecodeInt64(data []byte) ([]byte, *DecodedItem, error) {
	rest, di, err := od.DecodeUint64(data)
	if err != nil {
		return nil, nil, err
	}
	di.Value = int64(di.Value.(uint64) ^ 0x8000000000000000)
	di.ValueType = VALUE_TYPE_INT64
	return rest, di, nil
}

func (od *OrderedDecoder) DecodeFloat32(data []byte) ([]byte, *DecodedItem, error) {
	rest, di, err := od.DecodeUint32(data)
	if err != nil {
		return nil, nil, err
	}
	bits := di.Value.(uint32)
	if bits&0x80000000 != 0 {
		bits &^= 0x80000000
	} else {
		bits = ^bits
	}
	di.Value = math.Float32frombits(bits)
	di.ValueType = VALUE_TYPE_FLOAT32
	return rest, di, nil
}

func (od *OrderedDecoder) DecodeFloat64(data []byte) ([]byte, *DecodedItem, error) {
	rest, di, err := od.DecodeUint64(data)
	if err != nil {
		return nil, nil, err
	}
	bits := di.Value.(uint64)
	if bits&0x8000000000000000 != 0 {
		bits &^= 0x8000000000000000
	} else {
		bits = ^bits
	}
	di.Value = math.Float64frombits(bits)
	di.ValueType = VALUE_TYPE_FLOAT64
	return rest, di, nil
}

// DecodeBytes scans forward resolving escapes until the terminator.
// The byte count in the returned item includes the two terminator
// bytes.
func (od *OrderedDecoder) DecodeBytes(data []byte) ([]byte, *DecodedItem, error) {
	value, consumed, err := decodeEscaped(data)
	if err != nil {
		return nil, nil, err
	}
	return data[consumed:], NewDecodedItem(value, VALUE_TYPE_BYTES, consumed), nil
}

func (od *OrderedDecoder) DecodeString(data []byte) ([]byte, *DecodedItem, error) {
	value, consumed, err := decodeEscaped(data)
	if err != nil {
		return nil, nil, err
	}
	return data[consumed:], NewDecodedItem(string(value), VALUE_TYPE_STRING, consumed), nil
}

// decodeEscaped is the restartable cursor over an escaped block:
// an explicit offset advances over the input, yielding either a
// resolved literal byte or the terminator.
func decodeEscaped(data []byte) ([]byte, int, error) {
	value := make([]byte, 0, len(data))
	for i := 0; i < len(data); i++ {
		b := data[i]
		if b != escapeByte {
			value = append(value, b)
			continue
		}
		if i+1 >= len(data) {
			return nil, 0, ErrNoEnoughBytes
		}
		switch data[i+1] {
		case terminatorByte:
			return value, i + 2, nil
		case escapedZero:
			value = append(value, escapeByte)
			i++
		default:
			return nil, 0, ErrMalformedEscape
		}
	}
	return nil, 0, ErrNoEnoughBytes
}

// DecodeUvarint is the inverse of OrderedEncoder.EncodeUvarint.
func (od *OrderedDecoder) DecodeUvarint(data []byte) ([]byte, *DecodedItem, error) {
	if len(data) < 1 {
		return nil, nil, ErrNoEnoughBytes
	}
	marker := data[0]
	switch {
	case marker <= uvarintSingleMax:
		return data[1:], NewDecodedItem(uint64(marker), VALUE_TYPE_UVARINT, 1), nil
	case marker < uvarintTripleTag:
		if len(data) < 2 {
			return nil, nil, ErrNoEnoughBytes
		}
		v := uint64(uvarintSingleMax) +
			uint64(marker-uvarintDoubleBase)*256 + uint64(data[1])
		return data[2:], NewDecodedItem(v, VALUE_TYPE_UVARINT, 2), nil
	case marker == uvarintTripleTag:
		if len(data) < 3 {
			return nil, nil, ErrNoEnoughBytes
		}
		v := uint64(uvarintDoubleMax) + 1 +
			uint64(data[1])<<8 + uint64(data[2])
		return data[3:], NewDecodedItem(v, VALUE_TYPE_UVARINT, 3), nil
	default:
		width := int(marker-uvarintBigTagBase) + 3
		if len(data) < 1+width {
			return nil, nil, ErrNoEnoughBytes
		}
		var v uint64
		for i := 1; i <= width; i++ {
			v = v<<8 | uint64(data[i])
		}
		// Each value has exactly one encoding; a payload small enough
		// for a shorter class does not belong to this one.
		min := uint64(uvarintTripleMax) + 1
		if width > 3 {
			min = uint64(1) << uint(8*(width-1))
		}
		if v < min {
			return nil, nil, ErrVarintOverflow
		}
		return data[1+width:], NewDecodedItem(v, VALUE_TYPE_UVARINT, 1+width), nil
	}
}
