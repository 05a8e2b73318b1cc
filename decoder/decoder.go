// Copyright (c) 2015 Timo Savola. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package decoder implements the WebAssembly (MVP) binary format's read
// side: a cursor over an immutable byte slice with one method per
// primitive, enumeration, and module structure, mirroring package encoder.
// Every method panics (via internal/panerr) on a structural or buffer
// violation; Decode recovers exactly that class of panic into a returned
// error, so Decode reports a malformed module as an error rather than
// panicking. The individual read methods do not recover.
package decoder

import (
	"encoding/binary"
	"math"

	"github.com/wasmmvp/wasmmvp/internal/panerr"
	"github.com/wasmmvp/wasmmvp/module"
	"github.com/wasmmvp/wasmmvp/numeric"
	"github.com/wasmmvp/wasmmvp/wasm"
)

// Decoder is a read cursor over an immutable byte slice. The cursor only
// moves forward; there is no backtracking.
type Decoder struct {
	buf    []byte
	offset int
}

// New wraps buf in a Decoder. buf is not copied; the caller must not mutate
// it while the Decoder is in use.
func New(buf []byte) *Decoder {
	return &Decoder{buf: buf}
}

// Offset returns the number of bytes read so far.
func (d *Decoder) Offset() int { return d.offset }

// Remaining returns the number of unread bytes.
func (d *Decoder) Remaining() int { return len(d.buf) - d.offset }

func (d *Decoder) need(n int) {
	if d.Remaining() < n {
		panerr.Panic(panerr.ErrUnexpectedEOF)
	}
}

// RawBytes reads and returns the next n bytes verbatim.
func (d *Decoder) RawBytes(n int) []byte {
	d.need(n)
	b := d.buf[d.offset : d.offset+n]
	d.offset += n
	return b
}

// Uint8 reads one byte.
func (d *Decoder) Uint8() byte {
	d.need(1)
	b := d.buf[d.offset]
	d.offset++
	return b
}

// Uint32 reads 4 little-endian bytes.
func (d *Decoder) Uint32() uint32 {
	return binary.LittleEndian.Uint32(d.RawBytes(4))
}

// Float64 reads 8 little-endian bytes as an IEEE-754 double.
func (d *Decoder) Float64() float64 {
	return math.Float64frombits(binary.LittleEndian.Uint64(d.RawBytes(8)))
}

// Varuint32 reads an unsigned LEB128 value, at most 5 bytes: each byte
// contributes its low 7 bits, high bit set means "more bytes follow".
func (d *Decoder) Varuint32() uint32 {
	var x uint32
	var shift uint
	for n := 0; n < 5; n++ {
		b := d.Uint8()
		if b < 0x80 {
			if n == 4 && b > 0xf {
				panerr.Panic(panerr.Errorf("varuint32 value overflows 32 bits: final byte 0x%x", b))
			}
			return x | uint32(b)<<shift
		}
		x |= uint32(b&0x7f) << shift
		shift += 7
	}
	panerr.Panic(panerr.Error("varuint32 encoding exceeds 5 bytes"))
	return 0
}

// Varuint7 reads a varuint32 and asserts it fits in 7 unsigned bits. The
// format never nests a varuint7 inside a wider unsigned varint the way it
// does for the signed case, so a dedicated single-byte reader isn't needed.
func (d *Decoder) Varuint7() int64 {
	v := int64(d.Varuint32())
	numeric.AssertUint7(v)
	return v
}

// Varuint1 reads a varuint32 and asserts it is 0 or 1, the same way
// Varuint7 narrows a varuint32 rather than reading a dedicated single byte.
func (d *Decoder) Varuint1() bool {
	v := int64(d.Varuint32())
	numeric.AssertUint1(v)
	return v == 1
}

// Varint32 reads a signed LEB128 value, at most 5 bytes.
func (d *Decoder) Varint32() int32 {
	var x int32
	var shift uint
	for n := 0; n < 5; n++ {
		b := d.Uint8()
		x |= int32(b&0x7f) << shift
		shift += 7
		if b&0x80 != 0 {
			continue
		}
		if b&0x40 != 0 && shift < 32 {
			x |= -1 << shift
		}
		if n == 4 {
			if b&0x40 == 0 && b > 7 {
				panerr.Panic(panerr.Errorf("varint32 value overflows 32 bits: final byte 0x%x", b))
			}
			if b&0x40 != 0 && b < 0x78 {
				panerr.Panic(panerr.Errorf("varint32 value underflows 32 bits: final byte 0x%x", b))
			}
		}
		return x
	}
	panerr.Panic(panerr.Error("varint32 encoding exceeds 5 bytes"))
	return 0
}

// Varint64 reads a signed LEB128 value, at most 10 bytes. The MVP section
// formats this codec implements never carry a bare 64-bit varint, but the
// i64 opcode namespace does.
func (d *Decoder) Varint64() int64 {
	var x int64
	var shift uint
	for n := 0; n < 10; n++ {
		b := d.Uint8()
		x |= int64(b&0x7f) << shift
		shift += 7
		if b&0x80 != 0 {
			continue
		}
		if b&0x40 != 0 && shift < 64 {
			x |= -1 << shift
		}
		if n == 9 {
			if b&0x40 == 0 && b != 0 {
				panerr.Panic(panerr.Errorf("varint64 value overflows 64 bits: final byte 0x%x", b))
			}
			if b&0x40 != 0 && b != 0x7f {
				panerr.Panic(panerr.Errorf("varint64 value underflows 64 bits: final byte 0x%x", b))
			}
		}
		return x
	}
	panerr.Panic(panerr.Error("varint64 encoding exceeds 10 bytes"))
	return 0
}

// Varint7 reads a varint32 and asserts it fits in 7 signed bits, the same
// way Varuint7 narrows a varuint32 rather than reading a dedicated single
// byte.
func (d *Decoder) Varint7() int64 {
	v := int64(d.Varint32())
	numeric.AssertInt7(v)
	return v
}

// UTF8 reads a varuint32 length then that many bytes, each of which must be
// ASCII (< 0x80).
func (d *Decoder) UTF8() string {
	n := d.Varuint32()
	b := d.RawBytes(int(n))
	for i, c := range b {
		if c >= 0x80 {
			panerr.Panic(panerr.Errorf("string contains non-ASCII byte at offset %d", i))
		}
	}
	return string(b)
}

// Op reads one byte and validates it as an opcode.
func (d *Decoder) Op() wasm.Opcode {
	return wasm.ToOpcode(d.Uint8())
}

// Type reads a varint7 and validates it as a Type.
func (d *Decoder) Type() wasm.Type {
	t := wasm.Type(d.Varint7())
	if !t.IsValid() {
		panerr.Panic(panerr.Errorf("invalid type: %d", int8(t)))
	}
	return t
}

// ValueType reads a varint7 and validates it as a ValueType.
func (d *Decoder) ValueType() wasm.ValueType {
	v := wasm.ValueType(d.Varint7())
	wasm.AssertValueType(v)
	return v
}

// ExternalKind reads one byte and validates it as an ExternalKind.
func (d *Decoder) ExternalKind() wasm.ExternalKind {
	k := wasm.ExternalKind(d.Uint8())
	wasm.AssertExternalKind(k)
	return k
}

// FuncType reads a func_type: the form tag (which must be func), the
// parameter list, and the (0 or 1 element) return list.
func (d *Decoder) FuncType() module.FuncType {
	if form := d.Type(); form != wasm.TypeFunc {
		panerr.Panic(panerr.Errorf("unsupported form: %s", form))
	}

	np := d.Varuint32()
	params := make([]wasm.ValueType, np)
	for i := range params {
		params[i] = d.ValueType()
	}

	nr := d.Varuint1()
	var returns []wasm.ValueType
	if nr {
		returns = []wasm.ValueType{d.ValueType()}
	}

	return module.NewFuncType(params, returns)
}

// ModulePreamble reads the 8-byte module header.
func (d *Decoder) ModulePreamble() module.Preamble {
	if magic := d.Uint32(); magic != module.MagicNumber {
		panerr.Panic(panerr.Errorf("not a WebAssembly module: magic number is 0x%x, want 0x%x", magic, module.MagicNumber))
	}
	version := module.WasmVersion(d.Uint32())
	return module.NewPreamble(version)
}

// SectionID reads a varuint7 and validates it as a SectionID.
func (d *Decoder) SectionID() wasm.SectionID {
	id := wasm.SectionID(d.Varuint7())
	if !id.IsValid() {
		panerr.Panic(panerr.Errorf("invalid section id: 0x%x", uint8(id)))
	}
	return id
}

// ExportEntry reads one export entry.
func (d *Decoder) ExportEntry() module.ExportEntry {
	name := d.UTF8()
	kind := d.ExternalKind()
	index := d.Varuint32()
	return module.NewExportEntry(name, kind, index)
}

// LocalEntry reads one local entry.
func (d *Decoder) LocalEntry() module.LocalEntry {
	count := d.Varuint32()
	t := d.ValueType()
	return module.NewLocalEntry(count, t)
}

// TypeSection reads a type section's payload (count and entries). The count
// prefix itself is part of the payload, consistent with the encoder.
func (d *Decoder) TypeSection() module.TypeSection {
	count := d.Varuint32()
	var s module.TypeSection
	for i := uint32(0); i < count; i++ {
		s.Add(d.FuncType())
	}
	return s
}

// FunctionSection reads a function section's payload.
func (d *Decoder) FunctionSection() module.FunctionSection {
	count := d.Varuint32()
	var s module.FunctionSection
	for i := uint32(0); i < count; i++ {
		s.Add(d.Varuint32())
	}
	return s
}

// ExportSection reads an export section's payload.
func (d *Decoder) ExportSection() module.ExportSection {
	count := d.Varuint32()
	var s module.ExportSection
	for i := uint32(0); i < count; i++ {
		s.Add(d.ExportEntry())
	}
	return s
}

// FunctionBody reads one function body: its byte length, its locals, and
// its code. The code's length is derived from the declared body length
// minus the bytes already consumed for the locals declarations.
func (d *Decoder) FunctionBody() module.FunctionBody {
	bodyLen := d.Varuint32()
	start := d.offset

	localCount := d.Varuint32()
	locals := make([]module.LocalEntry, localCount)
	for i := range locals {
		locals[i] = d.LocalEntry()
	}

	consumed := d.offset - start
	codeLen := int(bodyLen) - consumed
	if codeLen < 0 {
		panerr.Panic(panerr.Error("function body payload is shorter than its locals declarations"))
	}
	code := d.RawBytes(codeLen)

	return module.NewFunctionBody(locals, code)
}

// CodeSection reads a code section's payload.
func (d *Decoder) CodeSection() module.CodeSection {
	count := d.Varuint32()
	var s module.CodeSection
	for i := uint32(0); i < count; i++ {
		s.Add(d.FunctionBody())
	}
	return s
}

// CustomSection reads a custom section's payload, given its total payload
// length: a utf8 name followed by payloadLen-minus-name-length raw bytes.
func (d *Decoder) CustomSection(payloadLen uint32) module.CustomSection {
	start := d.offset
	name := d.UTF8()
	n := int(payloadLen) - (d.offset - start)
	if n < 0 {
		panerr.Panic(panerr.Error("custom section payload is shorter than its name"))
	}
	payload := d.RawBytes(n)
	return module.NewCustomSection(name, payload)
}

// Decode reads a complete module: the preamble followed by a sequence of
// sections, each dispatched on its id, until the buffer is exhausted. Any
// panic raised by the primitive or structural reads above is recovered here
// and returned as an error.
func Decode(buf []byte) (m module.Module, err error) {
	defer func() { err = panerr.Handle(recover()) }()

	d := New(buf)
	m.Preamble = d.ModulePreamble()

	for d.Remaining() > 0 {
		id := d.SectionID()
		wasm.AssertSupported(id)
		payloadLen := d.Varuint32()
		payloadStart := d.offset

		switch id {
		case wasm.SectionCustom:
			m.Customs = append(m.Customs, d.CustomSection(payloadLen))
		case wasm.SectionType:
			m.Types = d.TypeSection()
		case wasm.SectionFunction:
			m.Functions = d.FunctionSection()
		case wasm.SectionExport:
			m.Exports = d.ExportSection()
		case wasm.SectionCode:
			m.Code = d.CodeSection()
		default:
			panic("unreachable: wasm.AssertSupported rejects any id not handled above")
		}

		if consumed := d.offset - payloadStart; consumed != int(payloadLen) {
			panerr.Panic(panerr.Errorf("section %s: declared payload length %d does not match decoded length %d", id, payloadLen, consumed))
		}
	}

	return m, nil
}
