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
	"bytes"
	"math"
	"testing"

	"github.com/smartystreets/goconvey/convey"
)

func TestOrderedEncoder_EncodeUint8(t *testing.T) {
	convey.Convey("encodeUint8", t, func() {
		oe := NewOrderedEncoder()
		convey.So(oe.EncodeUint8(nil, 5), convey.ShouldResemble, []byte{0x05})
		convey.So(oe.EncodeUint8(nil, 250), convey.ShouldResemble, []byte{0xFA})
		convey.So(bytes.Compare(
			oe.EncodeUint8(nil, 5),
			oe.EncodeUint8(nil, 250)), convey.ShouldEqual, -1)
	})
}

func TestOrderedEncoder_EncodeInt8(t *testing.T) {
	convey.Convey("encodeInt8", t, func() {
		oe := NewOrderedEncoder()
		convey.So(oe.EncodeInt8(nil, -1), convey.ShouldResemble, []byte{0x7F})
		convey.So(oe.EncodeInt8(nil, 0), convey.ShouldResemble, []byte{0x80})
		convey.So(oe.EncodeInt8(nil, 1), convey.ShouldResemble, []byte{0x81})
		convey.So(oe.EncodeInt8(nil, math.MinInt8), convey.ShouldResemble, []byte{0x00})
		convey.So(oe.EncodeInt8(nil, math.MaxInt8), convey.ShouldResemble, []byte{0xFF})
	})

	convey.Convey("encodeInt8 is monotonic over the full range", t, func() {
		oe := NewOrderedEncoder()
		prev := oe.EncodeInt8(nil, math.MinInt8)
		for i := math.MinInt8 + 1; i <= math.MaxInt8; i++ {
			cur := oe.EncodeInt8(nil, int8(i))
			convey.So(bytes.Compare(prev, cur), convey.ShouldEqual, -1)
			prev = cur
		}
	})
}

func TestOrderedEncoder_EncodeFixedWidthInts(t *testing.T) {
	convey.Convey("fixed width integers keep numeric order", t, func() {
		oe := NewOrderedEncoder()

		u16s := []uint16{0, 1, 0xFF, 0x100, 0x7FFF, 0x8000, math.MaxUint16}
		for i := 1; i < len(u16s); i++ {
			convey.So(bytes.Compare(
				oe.EncodeUint16(nil, u16s[i-1]),
				oe.EncodeUint16(nil, u16s[i])), convey.ShouldEqual, -1)
		}

		i64s := []int64{math.MinInt64, -1 << 32, -256, -2, -1, 0, 1, 255, 1 << 40, math.MaxInt64}
		for i := 1; i < len(i64s); i++ {
			convey.So(bytes.Compare(
				oe.EncodeInt64(nil, i64s[i-1]),
				oe.EncodeInt64(nil, i64s[i])), convey.ShouldEqual, -1)
		}

		u64s := []uint64{0, 1, math.MaxUint32, math.MaxUint64 - 1, math.MaxUint64}
		for i := 1; i < len(u64s); i++ {
			convey.So(bytes.Compare(
				oe.EncodeUint64(nil, u64s[i-1]),
				oe.EncodeUint64(nil, u64s[i])), convey.ShouldEqual, -1)
		}
	})

	convey.Convey("widths are fixed", t, func() {
		oe := NewOrderedEncoder()
		convey.So(oe.EncodeUint16(nil, 0), convey.ShouldHaveLength, 2)
		convey.So(oe.EncodeUint32(nil, 0), convey.ShouldHaveLength, 4)
		convey.So(oe.EncodeUint64(nil, 0), convey.ShouldHaveLength, 8)
		convey.So(oe.EncodeInt16(nil, -1), convey.ShouldHaveLength, 2)
		convey.So(oe.EncodeInt32(nil, -1), convey.ShouldHaveLength, 4)
		convey.So(oe.EncodeInt64(nil, -1), convey.ShouldHaveLength, 8)
	})
}

func TestOrderedEncoder_EncodeFloat(t *testing.T) {
	convey.Convey("encodeFloat64 keeps numeric order", t, func() {
		oe := NewOrderedEncoder()
		f64s := []float64{
			math.Inf(-1),
			-math.MaxFloat64,
			-1.5,
			-math.SmallestNonzeroFloat64,
			math.Copysign(0, -1),
			0,
			math.SmallestNonzeroFloat64,
			1.5,
			math.MaxFloat64,
			math.Inf(1),
		}
		for i := 1; i < len(f64s); i++ {
			convey.So(bytes.Compare(
				oe.EncodeFloat64(nil, f64s[i-1]),
				oe.EncodeFloat64(nil, f64s[i])), convey.ShouldEqual, -1)
		}
	})

	convey.Convey("encodeFloat32 keeps numeric order", t, func() {
		oe := NewOrderedEncoder()
		f32s := []float32{
			float32(math.Inf(-1)),
			-math.MaxFloat32,
			-2.25,
			0,
			math.SmallestNonzeroFloat32,
			2.25,
			math.MaxFloat32,
			float32(math.Inf(1)),
		}
		for i := 1; i < len(f32s); i++ {
			convey.So(bytes.Compare(
				oe.EncodeFloat32(nil, f32s[i-1]),
				oe.EncodeFloat32(nil, f32s[i])), convey.ShouldEqual, -1)
		}
	})

	convey.Convey("negative zero sorts before positive zero", t, func() {
		oe := NewOrderedEncoder()
		neg := oe.EncodeFloat64(nil, math.Copysign(0, -1))
		pos := oe.EncodeFloat64(nil, 0)
		convey.So(bytes.Compare(neg, pos), convey.ShouldEqual, -1)
	})
}

func TestOrderedEncoder_EncodeBytes(t *testing.T) {
	convey.Convey("escape and terminate", t, func() {
		oe := NewOrderedEncoder()
		convey.So(oe.EncodeBytes(nil, nil),
			convey.ShouldResemble, []byte{0x00, 0x00})
		convey.So(oe.EncodeBytes(nil, []byte("a")),
			convey.ShouldResemble, []byte{0x61, 0x00, 0x00})
		convey.So(oe.EncodeBytes(nil, []byte{0x61, 0x00, 0x62}),
			convey.ShouldResemble, []byte{0x61, 0x00, 0xFF, 0x62, 0x00, 0x00})
		convey.So(oe.EncodeBytes(nil, []byte{0x00, 0x00}),
			convey.ShouldResemble, []byte{0x00, 0xFF, 0x00, 0xFF, 0x00, 0x00})
	})

	convey.Convey("strings keep order", t, func() {
		oe := NewOrderedEncoder()
		strs := []string{"", "a", "a\x00", "a\x00b", "ab", "b"}
		for i := 1; i < len(strs); i++ {
			convey.So(bytes.Compare(
				oe.EncodeString(nil, strs[i-1]),
				oe.EncodeString(nil, strs[i])), convey.ShouldEqual, -1)
		}
	})

	convey.Convey("no encoding is a prefix of another", t, func() {
		oe := NewOrderedEncoder()
		a := oe.EncodeString(nil, "a")
		ab := oe.EncodeString(nil, "ab")
		convey.So(bytes.HasPrefix(ab, a), convey.ShouldBeFalse)
		convey.So(bytes.HasPrefix(a, ab), convey.ShouldBeFalse)
	})
}

func TestOrderedEncoder_EncodeUvarint(t *testing.T) {
	convey.Convey("class boundaries", t, func() {
		oe := NewOrderedEncoder()
		kases := []struct {
			value uint64
			want  []byte
		}{
			{0, []byte{0x00}},
			{1, []byte{0x01}},
			{240, []byte{0xF0}},
			{241, []byte{0xF1, 0x01}},
			{495, []byte{0xF1, 0xFF}},
			{496, []byte{0xF2, 0x00}},
			{2287, []byte{0xF8, 0xFF}},
			{2288, []byte{0xF9, 0x00, 0x00}},
			{67823, []byte{0xF9, 0xFF, 0xFF}},
			{67824, []byte{0xFA, 0x01, 0x08, 0xF0}},
			{1<<24 - 1, []byte{0xFA, 0xFF, 0xFF, 0xFF}},
			{1 << 24, []byte{0xFB, 0x01, 0x00, 0x00, 0x00}},
			{1<<32 - 1, []byte{0xFB, 0xFF, 0xFF, 0xFF, 0xFF}},
			{1 << 32, []byte{0xFC, 0x01, 0x00, 0x00, 0x00, 0x00}},
			{1<<40 - 1, []byte{0xFC, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF}},
			{1 << 40, []byte{0xFD, 0x01, 0x00, 0x00, 0x00, 0x00, 0x00}},
			{1<<48 - 1, []byte{0xFD, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF}},
			{1 << 48, []byte{0xFE, 0x01, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00}},
			{1<<56 - 1, []byte{0xFE, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF}},
			{1 << 56, []byte{0xFF, 0x01, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00}},
			{math.MaxUint64, []byte{0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF}},
		}
		for _, k := range kases {
			convey.So(oe.EncodeUvarint(nil, k.value), convey.ShouldResemble, k.want)
		}
		for i := 1; i < len(kases); i++ {
			convey.So(bytes.Compare(
				oe.EncodeUvarint(nil, kases[i-1].value),
				oe.EncodeUvarint(nil, kases[i].value)), convey.ShouldEqual, -1)
		}
	})

	convey.Convey("dense ranges stay monotonic across boundaries", t, func() {
		oe := NewOrderedEncoder()
		prev := oe.EncodeUvarint(nil, 0)
		for v := uint64(1); v < 70000; v++ {
			cur := oe.EncodeUvarint(nil, v)
			convey.So(bytes.Compare(prev, cur), convey.ShouldEqual, -1)
			prev = cur
		}
	})
}

func TestOrderedEncoder_AppendsToPrefix(t *testing.T) {
	convey.Convey("encoders append to the given buffer", t, func() {
		oe := NewOrderedEncoder()
		buf := []byte{0xAA}
		buf = oe.EncodeUint8(buf, 1)
		buf = oe.EncodeString(buf, "x")
		convey.So(buf, convey.ShouldResemble, []byte{0xAA, 0x01, 0x78, 0x00, 0x00})
	})
}
