// Copyright (c) 2015 Timo Savola. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package ops is a typed façade over package encoder used while writing a
// function body: one method per opcode instead of bare Op/Varuint32 calls,
// so that a caller building code cannot emit an immediate with the wrong
// shape for its opcode. It owns its own byte buffer; the caller hands that
// buffer to module.NewFunctionBody once the function is complete.
package ops

import (
	"math"

	"github.com/wasmmvp/wasmmvp/encoder"
	"github.com/wasmmvp/wasmmvp/wasm"
)

// Writer accumulates a function body's instruction bytes.
type Writer struct {
	enc encoder.Encoder
}

// Bytes returns the accumulated code. The caller must not modify it.
func (w *Writer) Bytes() []byte { return w.enc.Bytes() }

// Len returns the number of bytes written so far.
func (w *Writer) Len() int { return w.enc.Len() }

// Unreachable emits the unreachable opcode.
func (w *Writer) Unreachable() { w.enc.Op(wasm.Unreachable) }

// Nop emits the nop opcode.
func (w *Writer) Nop() { w.enc.Op(wasm.Nop) }

// Return emits the return opcode.
func (w *Writer) Return() { w.enc.Op(wasm.Return) }

// End emits the end opcode, terminating the current block or function.
func (w *Writer) End() { w.enc.Op(wasm.End) }

// Drop emits the drop opcode.
func (w *Writer) Drop() { w.enc.Op(wasm.Drop) }

// GetLocal emits get_local followed by the local's varuint32 index.
func (w *Writer) GetLocal(index uint32) {
	w.enc.Op(wasm.GetLocal)
	w.enc.Varuint32(index)
}

// SetLocal emits set_local followed by the local's varuint32 index.
func (w *Writer) SetLocal(index uint32) {
	w.enc.Op(wasm.SetLocal)
	w.enc.Varuint32(index)
}

// TeeLocal emits tee_local followed by the local's varuint32 index.
func (w *Writer) TeeLocal(index uint32) {
	w.enc.Op(wasm.TeeLocal)
	w.enc.Varuint32(index)
}

// Call emits call followed by the function's varuint32 index.
func (w *Writer) Call(funcIndex uint32) {
	w.enc.Op(wasm.Call)
	w.enc.Varuint32(funcIndex)
}

// I32 is the namespace of opcodes operating on i32 values.
func (w *Writer) I32() I32Ops { return I32Ops{w} }

// I64 is the namespace of opcodes operating on i64 values.
func (w *Writer) I64() I64Ops { return I64Ops{w} }

// F32 is the namespace of opcodes operating on f32 values.
func (w *Writer) F32() F32Ops { return F32Ops{w} }

// F64 is the namespace of opcodes operating on f64 values.
func (w *Writer) F64() F64Ops { return F64Ops{w} }

// I32Ops groups the opcodes that produce, consume, or operate on i32 values.
type I32Ops struct{ w *Writer }

// Const emits i32.const followed by s as a varint32.
func (o I32Ops) Const(s int32) {
	o.w.enc.Op(wasm.I32Const)
	o.w.enc.Varint32(s)
}

// Add emits i32.add.
func (o I32Ops) Add() { o.w.enc.Op(wasm.I32Add) }

// Sub emits i32.sub.
func (o I32Ops) Sub() { o.w.enc.Op(wasm.I32Sub) }

// Mul emits i32.mul.
func (o I32Ops) Mul() { o.w.enc.Op(wasm.I32Mul) }

// Eq emits i32.eq.
func (o I32Ops) Eq() { o.w.enc.Op(wasm.I32Eq) }

// I64Ops groups the opcodes that produce, consume, or operate on i64 values.
type I64Ops struct{ w *Writer }

// Const emits i64.const followed by s as a varint64.
func (o I64Ops) Const(s int64) {
	o.w.enc.Op(wasm.I64Const)
	o.w.enc.Varint64(s)
}

// Add emits i64.add.
func (o I64Ops) Add() { o.w.enc.Op(wasm.I64Add) }

// F32Ops groups the opcodes that produce, consume, or operate on f32 values.
type F32Ops struct{ w *Writer }

// Const emits f32.const followed by value's 4-byte little-endian IEEE-754
// bit pattern.
func (o F32Ops) Const(value float32) {
	o.w.enc.Op(wasm.F32Const)
	o.w.enc.Uint32(math.Float32bits(value))
}

// F64Ops groups the opcodes that produce, consume, or operate on f64
// values.
type F64Ops struct{ w *Writer }

// Const emits f64.const followed by value's 8-byte little-endian IEEE-754
// bit pattern.
func (o F64Ops) Const(value float64) {
	o.w.enc.Op(wasm.F64Const)
	o.w.enc.Float64(value)
}

// Add emits f64.add.
func (o F64Ops) Add() { o.w.enc.Op(wasm.F64Add) }
