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

package tuplecodec

import (
	"github.com/matrixorigin/orderedkey/pkg/descriptor"
	"github.com/matrixorigin/orderedkey/pkg/orderedcodec"
)

type TupleKeyEncoder struct {
	oe *orderedcodec.OrderedEncoder
}

func NewTupleKeyEncoder() *TupleKeyEncoder {
	return &TupleKeyEncoder{oe: orderedcodec.NewOrderedEncoder()}
}

// EncodeKeyspacePrefix encodes the (spaceID,indexID) pair in front of
// the key. Both are variable-length, so short ids stay short while the
// prefix still sorts by id.
func (tke *TupleKeyEncoder) EncodeKeyspacePrefix(prefix TupleKey, spaceID uint64, indexID uint64) TupleKey {
	prefix = tke.oe.EncodeUvarint(prefix, spaceID)
	return tke.oe.EncodeUvarint(prefix, indexID)
}

// EncodeTuple appends the encodings of every tuple field in declared
// order. The field count must match the shape list.
func (tke *TupleKeyEncoder) EncodeTuple(key TupleKey, tuple Tuple, shapes []*descriptor.Shape) (TupleKey, error) {
	cnt, err := tuple.GetAttributeCount()
	if err != nil {
		return nil, err
	}
	if cnt != uint32(len(shapes)) {
		return nil, ErrAttributeCount
	}
	for i := uint32(0); i < cnt; i++ {
		value, err := tuple.GetValue(i)
		if err != nil {
			return nil, err
		}
		key, err = tke.EncodeValue(key, value, shapes[i])
		if err != nil {
			return nil, err
		}
	}
	return key, nil
}

// EncodeValue appends the encoding of one value of the shape.
func (tke *TupleKeyEncoder) EncodeValue(key TupleKey, value interface{}, shape *descriptor.Shape) (TupleKey, error) {
	switch shape.Kind {
	case descriptor.SHAPE_UNIT:
		if value != nil {
			return nil, ErrWrongValueType
		}
		return key, nil
	case descriptor.SHAPE_BOOL:
		v, ok := value.(bool)
		if !ok {
			return nil, ErrWrongValueType
		}
		return tke.oe.EncodeBool(key, v), nil
	case descriptor.SHAPE_UINT8:
		v, ok := value.(uint8)
		if !ok {
			return nil, ErrWrongValueType
		}
		return tke.oe.EncodeUint8(key, v), nil
	case descriptor.SHAPE_UINT16:
		v, ok := value.(uint16)
		if !ok {
			return nil, ErrWrongValueType
		}
		return tke.oe.EncodeUint16(key, v), nil
	case descriptor.SHAPE_UINT32:
		v, ok := value.(uint32)
		if !ok {
			return nil, ErrWrongValueType
		}
		return tke.oe.EncodeUint32(key, v), nil
	case descriptor.SHAPE_UINT64:
		v, ok := value.(uint64)
		if !ok {
			return nil, ErrWrongValueType
		}
		return tke.oe.EncodeUint64(key, v), nil
	case descriptor.SHAPE_INT8:
		v, ok := value.(int8)
		if !ok {
			return nil, ErrWrongValueType
		}
		return tke.oe.EncodeInt8(key, v), nil
	case descriptor.SHAPE_INT16:
		v, ok := value.(int16)
		if !ok {
			return nil, ErrWrongValueType
		}
		return tke.oe.EncodeInt16(key, v), nil
	case descriptor.SHAPE_INT32:
		v, ok := value.(int32)
		if !ok {
			return nil, ErrWrongValueType
		}
		return tke.oe.EncodeInt32(key, v), nil
	case descriptor.SHAPE_INT64:
		v, ok := value.(int64)
		if !ok {
			return nil, ErrWrongValueType
		}
		return tke.oe.EncodeInt64(key, v), nil
	case descriptor.SHAPE_FLOAT32:
		v, ok := value.(float32)
		if !ok {
			return nil, ErrWrongValueType
		}
		return tke.oe.EncodeFloat32(key, v), nil
	case descriptor.SHAPE_FLOAT64:
		v, ok := value.(float64)
		if !ok {
			return nil, ErrWrongValueType
		}
		return tke.oe.EncodeFloat64(key, v), nil
	case descriptor.SHAPE_BYTES:
		v, ok := value.([]byte)
		if !ok {
			return nil, ErrWrongValueType
		}
		return tke.oe.EncodeBytes(key, v), nil
	case descriptor.SHAPE_STRING:
		v, ok := value.(string)
		if !ok {
			return nil, ErrWrongValueType
		}
		return tke.oe.EncodeString(key, v), nil
	case descriptor.SHAPE_OPTION:
		return tke.encodeOption(key, value, shape)
	case descriptor.SHAPE_SEQUENCE:
		return tke.encodeSequence(key, value, shape)
	case descriptor.SHAPE_TUPLE:
		return tke.encodeTupleValue(key, value, shape)
	case descriptor.SHAPE_SUM:
		return tke.encodeSum(key, value, shape)
	}
	return nil, ErrUnknownShape
}

func (tke *TupleKeyEncoder) encodeOption(key TupleKey, value interface{}, shape *descriptor.Shape) (TupleKey, error) {
	// nil counts as absent so callers do not have to wrap every
	// missing field in an Optional.
	if value == nil {
		return tke.oe.EncodeBool(key, false), nil
	}
	o, ok := value.(Optional)
	if !ok {
		return nil, ErrWrongValueType
	}
	if !o.Present {
		return tke.oe.EncodeBool(key, false), nil
	}
	key = tke.oe.EncodeBool(key, true)
	return tke.EncodeValue(key, o.Value, shape.Elem)
}

// encodeSequence writes every element as an escaped, terminated block
// and closes the list with one bare terminator. The end marker cannot
// collide with an element block: escaping rewrites a leading zero, so
// no block starts with the terminator pair.
func (tke *TupleKeyEncoder) encodeSequence(key TupleKey, value interface{}, shape *descriptor.Shape) (TupleKey, error) {
	seq, ok := value.([]interface{})
	if !ok {
		return nil, ErrWrongValueType
	}
	for _, elem := range seq {
		block, err := tke.EncodeValue(nil, elem, shape.Elem)
		if err != nil {
			return nil, err
		}
		key = tke.oe.EncodeBytes(key, block)
	}
	return tke.oe.EncodeBytes(key, nil), nil
}

func (tke *TupleKeyEncoder) encodeTupleValue(key TupleKey, value interface{}, shape *descriptor.Shape) (TupleKey, error) {
	fields, ok := value.([]interface{})
	if !ok {
		return nil, ErrWrongValueType
	}
	if len(fields) != len(shape.Fields) {
		return nil, ErrAttributeCount
	}
	var err error
	for i, f := range fields {
		key, err = tke.EncodeValue(key, f, shape.Fields[i])
		if err != nil {
			return nil, err
		}
	}
	return key, nil
}

func (tke *TupleKeyEncoder) encodeSum(key TupleKey, value interface{}, shape *descriptor.Shape) (TupleKey, error) {
	v, ok := value.(Variant)
	if !ok {
		return nil, ErrWrongValueType
	}
	if v.Tag >= uint64(len(shape.Variants)) {
		return nil, ErrInvalidTag
	}
	key = tke.oe.EncodeUvarint(key, v.Tag)
	return tke.EncodeValue(key, v.Value, shape.Variants[v.Tag])
}
