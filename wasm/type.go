// Copyright (c) 2016 Timo Savola. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package wasm enumerates the closed value sets of the MVP binary format:
// value types, the func type tag, external kinds, section codes, and
// opcodes. Each enumeration carries a validator and, where the wire
// encoding differs from the Go constant, a safe cast to and from the wire
// representation.
package wasm

import "github.com/wasmmvp/wasmmvp/internal/panerr"

// Type is the closed set of type-section tags: the four value types plus
// anyfunc, func, and the empty block type, encoded as signed LEB128 bytes
// (varint7) the same way the value types are.
type Type int8

const (
	TypeI32        = Type(-0x01)
	TypeI64        = Type(-0x02)
	TypeF32        = Type(-0x03)
	TypeF64        = Type(-0x04)
	TypeAnyFunc    = Type(-0x10)
	TypeFunc       = Type(-0x20)
	TypeEmptyBlock = Type(-0x40)
)

func (t Type) String() string {
	switch t {
	case TypeI32:
		return "i32"
	case TypeI64:
		return "i64"
	case TypeF32:
		return "f32"
	case TypeF64:
		return "f64"
	case TypeAnyFunc:
		return "anyfunc"
	case TypeFunc:
		return "func"
	case TypeEmptyBlock:
		return "void"
	default:
		return "<invalid type>"
	}
}

// IsValid reports whether t is one of the seven defined Type values.
func (t Type) IsValid() bool {
	switch t {
	case TypeI32, TypeI64, TypeF32, TypeF64, TypeAnyFunc, TypeFunc, TypeEmptyBlock:
		return true
	default:
		return false
	}
}

// ValueType is the subset of Type that may appear as a parameter, result,
// or local variable type: i32, i64, f32, f64.
type ValueType int8

const (
	I32 = ValueType(TypeI32)
	I64 = ValueType(TypeI64)
	F32 = ValueType(TypeF32)
	F64 = ValueType(TypeF64)
)

func (v ValueType) String() string {
	return Type(v).String()
}

// IsValid reports whether v is one of the four defined ValueType values.
func (v ValueType) IsValid() bool {
	switch v {
	case I32, I64, F32, F64:
		return true
	default:
		return false
	}
}

// AsType widens v to the broader Type enumeration. The conversion is
// total: every ValueType is also a Type.
func (v ValueType) AsType() Type {
	return Type(v)
}

// AsValueType narrows t to ValueType, panicking if t is not one of the four
// value types.
func (t Type) AsValueType() ValueType {
	v := ValueType(t)
	if !v.IsValid() {
		panerr.Panic(panerr.Errorf("%v is not a value type", t))
	}
	return v
}

// AssertValueType panics unless v is a valid ValueType.
func AssertValueType(v ValueType) {
	if !v.IsValid() {
		panerr.Panic(panerr.Errorf("%d is not a valid value_type", int8(v)))
	}
}
