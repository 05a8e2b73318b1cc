// Copyright (c) 2016 Timo Savola. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package module

import (
	"github.com/wasmmvp/wasmmvp/internal/panerr"
	"github.com/wasmmvp/wasmmvp/numeric"
	"github.com/wasmmvp/wasmmvp/wasm"
)

// FuncType is a function signature: an ordered parameter list plus zero or
// one result type. It carries an implicit form tag (wasm.TypeFunc) when
// encoded, so the in-memory representation doesn't store it.
type FuncType struct {
	ParamTypes  []wasm.ValueType
	ReturnTypes []wasm.ValueType
}

// NewFuncType constructs a FuncType, rejecting a params slice too long to
// encode as a varuint32 count or more than one return type.
func NewFuncType(params, returns []wasm.ValueType) FuncType {
	if !numeric.IsUint32(int64(len(params))) {
		panerr.Panic(panerr.Errorf("func_type has too many parameters: %d", len(params)))
	}
	if len(returns) > 1 {
		panerr.Panic(panerr.Errorf("func_type has too many return values: %d", len(returns)))
	}
	for _, t := range params {
		wasm.AssertValueType(t)
	}
	for _, t := range returns {
		wasm.AssertValueType(t)
	}
	return FuncType{
		ParamTypes:  append([]wasm.ValueType(nil), params...),
		ReturnTypes: append([]wasm.ValueType(nil), returns...),
	}
}

// Equal reports whether f and other have the same parameter and return
// types in the same order.
func (f FuncType) Equal(other FuncType) bool {
	if len(f.ParamTypes) != len(other.ParamTypes) || len(f.ReturnTypes) != len(other.ReturnTypes) {
		return false
	}
	for i, t := range f.ParamTypes {
		if t != other.ParamTypes[i] {
			return false
		}
	}
	for i, t := range f.ReturnTypes {
		if t != other.ReturnTypes[i] {
			return false
		}
	}
	return true
}

func (f FuncType) String() (s string) {
	s = "("
	for i, t := range f.ParamTypes {
		if i > 0 {
			s += ", "
		}
		s += t.String()
	}
	s += ")"

	switch len(f.ReturnTypes) {
	case 0:
		s += " void"
	case 1:
		s += " " + f.ReturnTypes[0].String()
	}
	return
}
