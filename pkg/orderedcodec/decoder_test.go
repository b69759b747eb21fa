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

import (
	"math"
	"testing"

	"github.com/smartystreets/goconvey/convey"
)

func TestOrderedDecoder_Scalars(t *testing.T) {
	oe := NewOrderedEncoder()
	od := NewOrderedDecoder()

	convey.Convey("bool round trip", t, func() {
		for _, v := range []bool{false, true} {
			rest, di, err := od.DecodeBool(oe.EncodeBool(nil, v))
			convey.So(err, convey.ShouldBeNil)
			convey.So(rest, convey.ShouldBeEmpty)
			convey.So(di.Value, convey.ShouldEqual, v)
			convey.So(di.ValueType, convey.ShouldEqual, VALUE_TYPE_BOOL)
		}
		_, _, err := od.DecodeBool([]byte{0x02})
		convey.So(err, convey.ShouldEqual, ErrInvalidBool)
	})

	convey.Convey("unsigned round trip", t, func() {
		for _, v := range []uint64{0, 1, 0xFF, 0x1234, math.MaxUint32, math.MaxUint64} {
			rest, di, err := od.DecodeUint64(oe.EncodeUint64(nil, v))
			convey.So(err, convey.ShouldBeNil)
			convey.So(rest, convey.ShouldBeEmpty)
			convey.So(di.Value, convey.ShouldEqual, v)
		}
		rest, di, err := od.DecodeUint16(oe.EncodeUint16(nil, 0xABCD))
		convey.So(err, convey.ShouldBeNil)
		convey.So(rest, convey.ShouldBeEmpty)
		convey.So(di.Value, convey.ShouldEqual, uint16(0xABCD))
	})

	convey.Convey("signed round trip", t, func() {
		for _, v := range []int64{math.MinInt64, -1 << 40, -1, 0, 1, 1 << 40, math.MaxInt64} {
			rest, di, err := od.DecodeInt64(oe.EncodeInt64(nil, v))
			convey.So(err, convey.ShouldBeNil)
			convey.So(rest, convey.ShouldBeEmpty)
			convey.So(di.Value, convey.ShouldEqual, v)
		}
		for _, v := range []int8{math.MinInt8, -1, 0, 1, math.MaxInt8} {
			_, di, err := od.DecodeInt8(oe.EncodeInt8(nil, v))
			convey.So(err, convey.ShouldBeNil)
			convey.So(di.Value, convey.ShouldEqual, v)
		}
	})

	convey.Convey("float round trip", t, func() {
		f64s := []float64{math.Inf(-1), -1.5, math.Copysign(0, -1), 0,
			math.SmallestNonzeroFloat64, 2.75, math.MaxFloat64, math.Inf(1)}
		for _, v := range f64s {
			_, di, err := od.DecodeFloat64(oe.EncodeFloat64(nil, v))
			convey.So(err, convey.ShouldBeNil)
			convey.So(math.Float64bits(di.Value.(float64)),
				convey.ShouldEqual, math.Float64bits(v))
		}
		_, di, err := od.DecodeFloat32(oe.EncodeFloat32(nil, -2.25))
		convey.So(err, convey.ShouldBeNil)
		convey.So(di.Value, convey.ShouldEqual, float32(-2.25))
	})

	convey.Convey("truncated scalars", t, func() {
		_, _, err := od.DecodeBool(nil)
		convey.So(err, convey.ShouldEqual, ErrNoEnoughBytes)
		_, _, err = od.DecodeUint64([]byte{1, 2, 3})
		convey.So(err, convey.ShouldEqual, ErrNoEnoughBytes)
		_, _, err = od.DecodeInt32([]byte{0x80})
		convey.So(err, convey.ShouldEqual, ErrNoEnoughBytes)
		_, _, err = od.DecodeFloat64([]byte{0x80, 0, 0})
		convey.So(err, convey.ShouldEqual, ErrNoEnoughBytes)
	})
}

func TestOrderedDecoder_DecodeBytes(t *testing.T) {
	oe := NewOrderedEncoder()
	od := NewOrderedDecoder()

	convey.Convey("round trip with embedded zeros", t, func() {
		kases := [][]byte{
			{},
			{0x00},
			{0x00, 0x00},
			{0x61, 0x00, 0x62},
			{0x00, 0xFF, 0x00},
			[]byte("plain ascii"),
		}
		for _, k := range kases {
			rest, di, err := od.DecodeBytes(oe.EncodeBytes(nil, k))
			convey.So(err, convey.ShouldBeNil)
			convey.So(rest, convey.ShouldBeEmpty)
			convey.So(di.Value, convey.ShouldResemble, k)
		}
	})

	convey.Convey("string round trip leaves the remainder", t, func() {
		data := oe.EncodeString(nil, "hello\x00world")
		data = oe.EncodeUint8(data, 9)
		rest, di, err := od.DecodeString(data)
		convey.So(err, convey.ShouldBeNil)
		convey.So(di.Value, convey.ShouldEqual, "hello\x00world")
		convey.So(di.BytesCountInValue, convey.ShouldEqual, len(data)-1)
		convey.So(rest, convey.ShouldResemble, []byte{0x09})
	})

	convey.Convey("unterminated input", t, func() {
		_, _, err := od.DecodeBytes([]byte{0x61, 0x62})
		convey.So(err, convey.ShouldEqual, ErrNoEnoughBytes)
		_, _, err = od.DecodeBytes([]byte{0x61, 0x00})
		convey.So(err, convey.ShouldEqual, ErrNoEnoughBytes)
		_, _, err = od.DecodeBytes(nil)
		convey.So(err, convey.ShouldEqual, ErrNoEnoughBytes)
	})

	convey.Convey("malformed escape", t, func() {
		_, _, err := od.DecodeBytes([]byte{0x61, 0x00, 0x01, 0x00, 0x00})
		convey.So(err, convey.ShouldEqual, ErrMalformedEscape)
		_, _, err = od.DecodeBytes([]byte{0x00, 0xFE})
		convey.So(err, convey.ShouldEqual, ErrMalformedEscape)
	})
}

func TestOrderedDecoder_DecodeUvarint(t *testing.T) {
	oe := NewOrderedEncoder()
	od := NewOrderedDecoder()

	convey.Convey("round trip across every class", t, func() {
		kases := []uint64{
			0, 1, 240, 241, 495, 496, 2287, 2288, 67823, 67824,
			1<<24 - 1, 1 << 24, 1<<32 - 1, 1 << 32, 1<<40 - 1, 1 << 40,
			1<<48 - 1, 1 << 48, 1<<56 - 1, 1 << 56, math.MaxUint64,
		}
		for _, k := range kases {
			enc := oe.EncodeUvarint(nil, k)
			rest, di, err := od.DecodeUvarint(enc)
			convey.So(err, convey.ShouldBeNil)
			convey.So(rest, convey.ShouldBeEmpty)
			convey.So(di.Value, convey.ShouldEqual, k)
			convey.So(di.BytesCountInValue, convey.ShouldEqual, len(enc))
		}
	})

	convey.Convey("truncated input", t, func() {
		_, _, err := od.DecodeUvarint(nil)
		convey.So(err, convey.ShouldEqual, ErrNoEnoughBytes)
		_, _, err = od.DecodeUvarint([]byte{0xF1})
		convey.So(err, convey.ShouldEqual, ErrNoEnoughBytes)
		_, _, err = od.DecodeUvarint([]byte{0xF9, 0x01})
		convey.So(err, convey.ShouldEqual, ErrNoEnoughBytes)
		_, _, err = od.DecodeUvarint([]byte{0xFF, 1, 2, 3, 4, 5, 6, 7})
		convey.So(err, convey.ShouldEqual, ErrNoEnoughBytes)
	})

	convey.Convey("non canonical wide encodings are rejected", t, func() {
		// 5 fits in one byte; a three byte payload is out of class.
		_, _, err := od.DecodeUvarint([]byte{0xFA, 0x00, 0x00, 0x05})
		convey.So(err, convey.ShouldEqual, ErrVarintOverflow)
		// 1<<24-1 belongs to the three byte class, not the four byte one.
		_, _, err = od.DecodeUvarint([]byte{0xFB, 0x00, 0xFF, 0xFF, 0xFF})
		convey.So(err, convey.ShouldEqual, ErrVarintOverflow)
	})
}
