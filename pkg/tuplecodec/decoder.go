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

type TupleKeyDecoder struct {
	od *orderedcodec.OrderedDecoder
}

func NewTupleKeyDecoder() *TupleKeyDecoder {
	return &TupleKeyDecoder{od: orderedcodec.NewOrderedDecoder()}
}

// DecodeKeyspacePrefix reads the (spaceID,indexID) pair back from the
// front of the key.
func (tkd *TupleKeyDecoder) DecodeKeyspacePrefix(data []byte) ([]byte, uint64, uint64, error) {
	rest, di, err := tkd.od.DecodeUvarint(data)
	if err != nil {
		return nil, 0, 0, err
	}
	spaceID := di.Value.(uint64)
	rest, di, err = tkd.od.DecodeUvarint(rest)
	if err != nil {
		return nil, 0, 0, err
	}
	return rest, spaceID, di.Value.(uint64), nil
}

// SkipKeyspacePrefix returns the key with the keyspace prefix removed.
func (tkd *TupleKeyDecoder) SkipKeyspacePrefix(data []byte) ([]byte, error) {
	rest, _, _, err := tkd.DecodeKeyspacePrefix(data)
	return rest, err
}

// DecodeTuple decodes one field per shape, in order, and returns the
// decoded items alongside the unconsumed remainder.
func (tkd *TupleKeyDecoder) DecodeTuple(data []byte, shapes []*descriptor.Shape) ([]byte, []*orderedcodec.DecodedItem, error) {
	items := make([]*orderedcodec.DecodedItem, 0, len(shapes))
	for _, shape := range shapes {
		rest, di, err := tkd.DecodeValue(data, shape)
		if err != nil {
			return nil, nil, err
		}
		items = append(items, di)
		data = rest
	}
	return data, items, nil
}

// DecodeValue decodes one value of the shape from the front of data.
// The returned item carries the value and the exact byte count it
// occupied.
func (tkd *TupleKeyDecoder) DecodeValue(data []byte, shape *descriptor.Shape) ([]byte, *orderedcodec.DecodedItem, error) {
	switch shape.Kind {
	case descriptor.SHAPE_UNIT:
		return data, orderedcodec.NewDecodedItem(nil, orderedcodec.VALUE_TYPE_UNIT, 0), nil
	case descriptor.SHAPE_BOOL:
		return tkd.od.DecodeBool(data)
	case descriptor.SHAPE_UINT8:
		return tkd.od.DecodeUint8(data)
	case descriptor.SHAPE_UINT16:
		return tkd.od.DecodeUint16(data)
	case descriptor.SHAPE_UINT32:
		return tkd.od.DecodeUint32(data)
	case descriptor.SHAPE_UINT64:
		return tkd.od.DecodeUint64(data)
	case descriptor.SHAPE_INT8:
		return tkd.od.DecodeInt8(data)
	case descriptor.SHAPE_INT16:
		return tkd.od.DecodeInt16(data)
	case descriptor.SHAPE_INT32:
		return tkd.od.DecodeInt32(data)
	case descriptor.SHAPE_INT64:
		return tkd.od.DecodeInt64(data)
	case descriptor.SHAPE_FLOAT32:
		return tkd.od.DecodeFloat32(data)
	case descriptor.SHAPE_FLOAT64:
		return tkd.od.DecodeFloat64(data)
	case descriptor.SHAPE_BYTES:
		return tkd.od.DecodeBytes(data)
	case descriptor.SHAPE_STRING:
		return tkd.od.DecodeString(data)
	case descriptor.SHAPE_OPTION:
		return tkd.decodeOption(data, shape)
	case descriptor.SHAPE_SEQUENCE:
		return tkd.decodeSequence(data, shape)
	case descriptor.SHAPE_TUPLE:
		return tkd.decodeTupleValue(data, shape)
	case descriptor.SHAPE_SUM:
		return tkd.decodeSum(data, shape)
	}
	return nil, nil, ErrUnknownShape
}

func (tkd *TupleKeyDecoder) decodeOption(data []byte, shape *descriptor.Shape) ([]byte, *orderedcodec.DecodedItem, error) {
	rest, di, err := tkd.od.DecodeBool(data)
	if err != nil {
		return nil, nil, err
	}
	if !di.Value.(bool) {
		return rest, orderedcodec.NewDecodedItem(None(), orderedcodec.VALUE_TYPE_OPTION, 1), nil
	}
	rest, inner, err := tkd.DecodeValue(rest, shape.Elem)
	if err != nil {
		return nil, nil, err
	}
	return rest, orderedcodec.NewDecodedItem(
		Some(inner.Value),
		orderedcodec.VALUE_TYPE_OPTION,
		1+inner.BytesCountInValue), nil
}

// decodeSequence pulls terminated element blocks until the bare end
// marker shows up in block position.
func (tkd *TupleKeyDecoder) decodeSequence(data []byte, shape *descriptor.Shape) ([]byte, *orderedcodec.DecodedItem, error) {
	elems := make([]interface{}, 0)
	consumed := 0
	for {
		rest, di, err := tkd.od.DecodeBytes(data)
		if err != nil {
			return nil, nil, err
		}
		block := di.Value.([]byte)
		consumed += di.BytesCountInValue
		data = rest
		if len(block) == 0 {
			return data, orderedcodec.NewDecodedItem(
				elems, orderedcodec.VALUE_TYPE_SEQUENCE, consumed), nil
		}
		blockRest, elem, err := tkd.DecodeValue(block, shape.Elem)
		if err != nil {
			return nil, nil, err
		}
		if len(blockRest) != 0 {
			return nil, nil, ErrCorruptedBlock
		}
		elems = append(elems, elem.Value)
	}
}

func (tkd *TupleKeyDecoder) decodeTupleValue(data []byte, shape *descriptor.Shape) ([]byte, *orderedcodec.DecodedItem, error) {
	fields := make([]interface{}, 0, len(shape.Fields))
	consumed := 0
	for _, fs := range shape.Fields {
		rest, di, err := tkd.DecodeValue(data, fs)
		if err != nil {
			return nil, nil, err
		}
		fields = append(fields, di.Value)
		consumed += di.BytesCountInValue
		data = rest
	}
	return data, orderedcodec.NewDecodedItem(
		fields, orderedcodec.VALUE_TYPE_TUPLE, consumed), nil
}

func (tkd *TupleKeyDecoder) decodeSum(data []byte, shape *descriptor.Shape) ([]byte, *orderedcodec.DecodedItem, error) {
	rest, di, err := tkd.od.DecodeUvarint(data)
	if err != nil {
		return nil, nil, err
	}
	tag := di.Value.(uint64)
	if tag >= uint64(len(shape.Variants)) {
		return nil, nil, ErrInvalidTag
	}
	rest, payload, err := tkd.DecodeValue(rest, shape.Variants[tag])
	if err != nil {
		return nil, nil, err
	}
	return rest, orderedcodec.NewDecodedItem(
		Variant{Tag: tag, Value: payload.Value},
		orderedcodec.VALUE_TYPE_SUM,
		di.BytesCountInValue+payload.BytesCountInValue), nil
}
