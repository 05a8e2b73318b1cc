// Copyright (c) 2016 Timo Savola. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package module

import (
	"github.com/wasmmvp/wasmmvp/internal/panerr"
	"github.com/wasmmvp/wasmmvp/wasm"
)

// endOpcode is the single byte every function body's code must end with.
const endOpcode = byte(wasm.End)

// FunctionBody is one function's locals declarations and instruction
// sequence. Code is stored as already-encoded bytes; this codec does not
// validate instructions against their operand types.
type FunctionBody struct {
	Locals []LocalEntry
	Code   []byte
}

// NewFunctionBody constructs a FunctionBody, rejecting empty code and code
// whose last byte isn't the end opcode (0x0b).
func NewFunctionBody(locals []LocalEntry, code []byte) FunctionBody {
	if len(code) == 0 || code[len(code)-1] != endOpcode {
		panerr.Panic(panerr.Error("function body code must be non-empty and end with the end opcode (0x0b)"))
	}
	return FunctionBody{
		Locals: append([]LocalEntry(nil), locals...),
		Code:   append([]byte(nil), code...),
	}
}
