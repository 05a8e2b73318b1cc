// Copyright (c) 2016 Timo Savola. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package numeric implements the range predicates, assertions, and hex
// formatting shared by the encoder and decoder. Every predicate answers
// "is this integer value representable in the named bit width," matching
// the bounds the WebAssembly MVP binary format imposes on its scalar
// encodings.
package numeric

import "github.com/wasmmvp/wasmmvp/internal/panerr"

// IsUint1 reports whether v is representable as an unsigned 1-bit integer.
func IsUint1(v int64) bool { return v == int64(uint64(v)&0x1) }

// IsUint7 reports whether v is representable as an unsigned 7-bit integer.
func IsUint7(v int64) bool { return v >= 0 && v <= 0x7f }

// IsInt7 reports whether v is representable as a signed 7-bit integer.
func IsInt7(v int64) bool { return v >= -0x40 && v <= 0x3f }

// IsUint8 reports whether v is representable as an unsigned 8-bit integer.
func IsUint8(v int64) bool { return v >= 0 && v <= 0xff }

// IsInt32 reports whether v is representable as a signed 32-bit integer.
func IsInt32(v int64) bool { return v == int64(int32(v)) }

// IsUint32 reports whether v is representable as an unsigned 32-bit integer.
func IsUint32(v int64) bool { return v == int64(uint32(v)) }

// AssertUint1 panics unless v is a valid uint1.
func AssertUint1(v int64) { assert(IsUint1(v), v, "uint1") }

// AssertUint7 panics unless v is a valid uint7.
func AssertUint7(v int64) { assert(IsUint7(v), v, "uint7") }

// AssertInt7 panics unless v is a valid int7.
func AssertInt7(v int64) { assert(IsInt7(v), v, "int7") }

// AssertUint8 panics unless v is a valid uint8.
func AssertUint8(v int64) { assert(IsUint8(v), v, "uint8") }

// AssertInt32 panics unless v is a valid int32.
func AssertInt32(v int64) { assert(IsInt32(v), v, "int32") }

// AssertUint32 panics unless v is a valid uint32.
func AssertUint32(v int64) { assert(IsUint32(v), v, "uint32") }

func assert(ok bool, v int64, kind string) {
	if !ok {
		panerr.Panic(panerr.Errorf("'%d' must be a %s.", v, kind))
	}
}

const hexDigits = "0123456789abcdef"

// Hex8 formats the low 8 bits of v as two lowercase hex digits. v may be an
// 8-bit signed or unsigned integer; only v&0xff is significant.
func Hex8(v int64) string {
	b := byte(v)
	return string([]byte{hexDigits[b>>4], hexDigits[b&0xf]})
}

// Hex32 formats v, interpreted as an unsigned 32-bit integer, as eight
// zero-padded lowercase hex digits.
func Hex32(v int64) string {
	u := uint32(v)
	buf := make([]byte, 8)
	for i := 7; i >= 0; i-- {
		buf[i] = hexDigits[u&0xf]
		u >>= 4
	}
	return string(buf)
}

// Hex64 formats v, interpreted as an unsigned 64-bit integer, as sixteen
// zero-padded lowercase hex digits. It is used by the disassembler to
// render f64.const immediates and is not part of the MVP primitive set,
// but follows the same scheme as Hex32.
func Hex64(v uint64) string {
	buf := make([]byte, 16)
	for i := 15; i >= 0; i-- {
		buf[i] = hexDigits[v&0xf]
		v >>= 4
	}
	return string(buf)
}
