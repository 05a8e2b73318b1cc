// Copyright (c) 2015 Timo Savola. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package encoder implements the WebAssembly (MVP) binary format's
// write side: an append-only byte sink with one method per primitive,
// enumeration, and module structure. Every method validates its argument
// and panics (via internal/panerr) on a range, enum, or structural
// violation; the encoder's contract assumes validated inputs, so there is
// no error return on the hot path.
package encoder

import (
	"encoding/binary"
	"math"

	"github.com/wasmmvp/wasmmvp/internal/panerr"
	"github.com/wasmmvp/wasmmvp/module"
	"github.com/wasmmvp/wasmmvp/numeric"
	"github.com/wasmmvp/wasmmvp/wasm"
)

// Encoder is a stateful, append-only byte sink. The zero value is ready to
// use.
type Encoder struct {
	buf sink
}

// Len returns the number of bytes written so far.
func (e *Encoder) Len() int { return e.buf.len() }

// Bytes returns the accumulated buffer. The caller must not modify it.
func (e *Encoder) Bytes() []byte { return e.buf.bytes() }

// Uint8 appends one byte. u must be in [0,255].
func (e *Encoder) Uint8(u int64) {
	numeric.AssertUint8(u)
	e.buf.putByte(byte(u))
}

// RawBytes appends bs verbatim; every byte is itself a valid uint8 by
// construction, so there is nothing to validate.
func (e *Encoder) RawBytes(bs []byte) {
	copy(e.buf.extend(len(bs)), bs)
}

// Uint32 writes u as 4 little-endian bytes.
func (e *Encoder) Uint32(u uint32) {
	binary.LittleEndian.PutUint32(e.buf.extend(4), u)
}

// Float64 writes f's IEEE-754 bit pattern as 8 little-endian bytes.
func (e *Encoder) Float64(f float64) {
	binary.LittleEndian.PutUint64(e.buf.extend(8), math.Float64bits(f))
}

// Varuint32 writes u as unsigned LEB128, at most 5 bytes.
func (e *Encoder) Varuint32(u uint32) {
	for u >= 0x80 {
		e.buf.putByte(byte(u) | 0x80)
		u >>= 7
	}
	e.buf.putByte(byte(u))
}

// Varuint7 writes a single byte after asserting u fits in 7 unsigned bits.
func (e *Encoder) Varuint7(u int64) {
	numeric.AssertUint7(u)
	e.buf.putByte(byte(u))
}

// Varuint1 writes a single byte after asserting u is 0 or 1.
func (e *Encoder) Varuint1(u int64) {
	numeric.AssertUint1(u)
	e.buf.putByte(byte(u))
}

// Varint32 writes s as signed LEB128.
func (e *Encoder) Varint32(s int32) {
	for {
		b := byte(s) & 0x7f
		s >>= 7
		if (s == 0 && b&0x40 == 0) || (s == -1 && b&0x40 != 0) {
			e.buf.putByte(b)
			return
		}
		e.buf.putByte(b | 0x80)
	}
}

// Varint64 writes s as signed LEB128. It is used by the i64 opcode
// namespace; the MVP section formats this codec implements never carry a
// bare 64-bit varint themselves.
func (e *Encoder) Varint64(s int64) {
	for {
		b := byte(s) & 0x7f
		s >>= 7
		if (s == 0 && b&0x40 == 0) || (s == -1 && b&0x40 != 0) {
			e.buf.putByte(b)
			return
		}
		e.buf.putByte(b | 0x80)
	}
}

// Varint7 writes a single byte after asserting s fits in 7 signed bits.
func (e *Encoder) Varint7(s int64) {
	numeric.AssertInt7(s)
	e.buf.putByte(byte(s) & 0x7f)
}

// UTF8 writes a varuint32 length followed by str's bytes. Code units must
// be ASCII (< 0x80); this codec does not support full UTF-8.
func (e *Encoder) UTF8(str string) {
	for i := 0; i < len(str); i++ {
		if str[i] >= 0x80 {
			panerr.Panic(panerr.Errorf("string contains non-ASCII byte at offset %d", i))
		}
	}
	e.Varuint32(uint32(len(str)))
	copy(e.buf.extend(len(str)), str)
}

// Op validates and emits one opcode byte.
func (e *Encoder) Op(op wasm.Opcode) {
	if !op.IsValid() {
		panerr.Panic(panerr.Errorf("invalid opcode: 0x%x", byte(op)))
	}
	e.buf.putByte(byte(op))
}

// Type writes t as a varint7.
func (e *Encoder) Type(t wasm.Type) {
	if !t.IsValid() {
		panerr.Panic(panerr.Errorf("invalid type: %d", int8(t)))
	}
	e.Varint7(int64(t))
}

// ValueType writes v as a varint7.
func (e *Encoder) ValueType(v wasm.ValueType) {
	wasm.AssertValueType(v)
	e.Varint7(int64(v))
}

// ExternalKind writes k as a single byte.
func (e *Encoder) ExternalKind(k wasm.ExternalKind) {
	wasm.AssertExternalKind(k)
	e.Uint8(int64(k))
}

// FuncType writes f: the func form tag, the parameter list, and the
// (0 or 1 element) return list.
func (e *Encoder) FuncType(f module.FuncType) {
	e.Type(wasm.TypeFunc)
	e.Varuint32(uint32(len(f.ParamTypes)))
	for _, t := range f.ParamTypes {
		e.ValueType(t)
	}
	e.Varuint1(int64(len(f.ReturnTypes)))
	for _, t := range f.ReturnTypes {
		e.ValueType(t)
	}
}

// ModulePreamble writes the 8-byte module header.
func (e *Encoder) ModulePreamble(p module.Preamble) {
	e.Uint32(module.MagicNumber)
	e.Uint32(uint32(p.Version))
}

// SectionID writes id as a varuint7.
func (e *Encoder) SectionID(id wasm.SectionID) {
	e.Varuint7(int64(id))
}

// section encodes a section's payload into a sub-encoder via writePayload,
// then — unless writePayload reports the section empty and elideIfEmpty is
// set — writes the section id, the payload's varuint32 length, and the
// payload itself. The sub-encoder is an arena whose lifetime is bounded by
// this call: it exists only long enough to measure the payload before it is
// copied into the outer buffer.
func (e *Encoder) section(id wasm.SectionID, elideIfEmpty bool, writePayload func(sub *Encoder) (notEmpty bool)) bool {
	var sub Encoder
	notEmpty := writePayload(&sub)
	if !notEmpty && elideIfEmpty {
		return false
	}
	e.SectionID(id)
	e.Varuint32(uint32(sub.Len()))
	e.RawBytes(sub.Bytes())
	return notEmpty
}

// CustomSection writes s. A custom section always reports itself non-empty:
// its mere presence carries meaning regardless of elision.
func (e *Encoder) CustomSection(s module.CustomSection) bool {
	return e.section(wasm.SectionCustom, false, func(sub *Encoder) bool {
		sub.UTF8(s.Name)
		sub.RawBytes(s.PayloadData)
		return true
	})
}

// TypeSection writes s, eliding it entirely when elideIfEmpty is set and s
// has no entries.
func (e *Encoder) TypeSection(s module.TypeSection, elideIfEmpty bool) bool {
	return e.section(wasm.SectionType, elideIfEmpty, func(sub *Encoder) bool {
		sub.Varuint32(uint32(len(s.Types)))
		for _, t := range s.Types {
			sub.FuncType(t)
		}
		return len(s.Types) > 0
	})
}

// FunctionSection writes s, eliding it entirely when elideIfEmpty is set and
// s has no entries.
func (e *Encoder) FunctionSection(s module.FunctionSection, elideIfEmpty bool) bool {
	return e.section(wasm.SectionFunction, elideIfEmpty, func(sub *Encoder) bool {
		sub.Varuint32(uint32(len(s.TypeIndices)))
		for _, idx := range s.TypeIndices {
			sub.Varuint32(idx)
		}
		return len(s.TypeIndices) > 0
	})
}

// ExportEntry writes entry: its name, kind, and index.
func (e *Encoder) ExportEntry(entry module.ExportEntry) {
	e.UTF8(entry.Name)
	e.ExternalKind(entry.Kind)
	e.Varuint32(entry.Index)
}

// ExportSection writes s, eliding it entirely when elideIfEmpty is set and s
// has no entries.
func (e *Encoder) ExportSection(s module.ExportSection, elideIfEmpty bool) bool {
	return e.section(wasm.SectionExport, elideIfEmpty, func(sub *Encoder) bool {
		sub.Varuint32(uint32(len(s.Entries)))
		for _, entry := range s.Entries {
			sub.ExportEntry(entry)
		}
		return len(s.Entries) > 0
	})
}

// LocalEntry writes l: its run count then its value type.
func (e *Encoder) LocalEntry(l module.LocalEntry) {
	e.Varuint32(l.Count)
	e.ValueType(l.Type)
}

// FunctionBody writes b's locals and code into a sub-encoder, then writes
// the sub-encoder's length and contents. b's constructor already asserts
// that its code ends with the end opcode.
func (e *Encoder) FunctionBody(b module.FunctionBody) {
	var sub Encoder
	sub.Varuint32(uint32(len(b.Locals)))
	for _, l := range b.Locals {
		sub.LocalEntry(l)
	}
	sub.RawBytes(b.Code)
	e.Varuint32(uint32(sub.Len()))
	e.RawBytes(sub.Bytes())
}

// CodeSection writes s, eliding it entirely when elideIfEmpty is set and s
// has no entries.
func (e *Encoder) CodeSection(s module.CodeSection, elideIfEmpty bool) bool {
	return e.section(wasm.SectionCode, elideIfEmpty, func(sub *Encoder) bool {
		sub.Varuint32(uint32(len(s.Bodies)))
		for _, body := range s.Bodies {
			sub.FunctionBody(body)
		}
		return len(s.Bodies) > 0
	})
}
