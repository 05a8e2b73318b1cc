// Copyright (c) 2015 Timo Savola. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package decoder

import (
	"math"
	"reflect"
	"strings"
	"testing"

	"github.com/wasmmvp/wasmmvp/encoder"
	"github.com/wasmmvp/wasmmvp/module"
	"github.com/wasmmvp/wasmmvp/wasm"
)

func TestDecodePreamble(t *testing.T) {
	m, err := Decode([]byte{0x00, 0x61, 0x73, 0x6d, 0x01, 0x00, 0x00, 0x00})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if m.Preamble.Version != module.WasmVersionMvp {
		t.Fatalf("got version %d", m.Preamble.Version)
	}
}

func TestDecodeRejectsBadMagic(t *testing.T) {
	_, err := Decode([]byte{0xba, 0xda, 0xda, 0xba, 0x00, 0x00, 0x00, 0x00})
	if err == nil {
		t.Fatalf("expected error")
	}
	if !strings.Contains(err.Error(), "0x6d736100") {
		t.Fatalf("error %q does not mention the magic number", err.Error())
	}
}

func TestVaruint32RoundTripBoundaries(t *testing.T) {
	boundaries := []uint32{0, 0x3f, 0x40, 0x7f, 0x80, 0x1fff, 0x2000, 0x3fff, 0x4000,
		0xfffff, 0x100000, 0x1fffff, 0x200000, 0x7ffffff, 0x8000000, 0xfffffff}
	for _, v := range boundaries {
		var e encoder.Encoder
		e.Varuint32(v)
		d := New(e.Bytes())
		got := d.Varuint32()
		if got != v {
			t.Errorf("Varuint32 round-trip of %#x got %#x", v, got)
		}
		if d.Remaining() != 0 {
			t.Errorf("Varuint32(%#x): %d bytes left over", v, d.Remaining())
		}
	}
}

func TestVarint32RoundTripBoundaries(t *testing.T) {
	boundaries := []int32{0, 63, -64, 64, -65, 8191, -8192, 8192, -8193,
		1048575, -1048576, 1048576, -1048577}
	for _, v := range boundaries {
		var e encoder.Encoder
		e.Varint32(v)
		d := New(e.Bytes())
		got := d.Varint32()
		if got != v {
			t.Errorf("Varint32 round-trip of %d got %d", v, got)
		}
	}
}

func TestTypeSectionRoundTrip(t *testing.T) {
	var types module.TypeSection
	types.Add(module.NewFuncType([]wasm.ValueType{wasm.F64, wasm.F64}, []wasm.ValueType{wasm.F64}))

	var e encoder.Encoder
	e.TypeSection(types, false)

	d := New(e.Bytes())
	id := d.SectionID()
	if id != wasm.SectionType {
		t.Fatalf("got section id %s", id)
	}
	d.Varuint32() // payload length, already exercised by the round-trip itself
	got := d.TypeSection()
	if !reflect.DeepEqual(got, types) {
		t.Fatalf("got %+v, want %+v", got, types)
	}
}

func TestCustomSectionRoundTrip(t *testing.T) {
	original := module.NewCustomSection("name", []byte{0x70, 0x61, 0x79, 0x6c, 0x6f, 0x61, 0x64})

	var e encoder.Encoder
	e.CustomSection(original)

	d := New(e.Bytes())
	if id := d.SectionID(); id != wasm.SectionCustom {
		t.Fatalf("got section id %s", id)
	}
	payloadLen := d.Varuint32()
	got := d.CustomSection(payloadLen)
	if !reflect.DeepEqual(got, original) {
		t.Fatalf("got %+v, want %+v", got, original)
	}
}

func TestFunctionBodyRoundTrip(t *testing.T) {
	original := module.NewFunctionBody(
		[]module.LocalEntry{module.NewLocalEntry(1, wasm.I32)},
		[]byte{0x0b},
	)

	var e encoder.Encoder
	e.FunctionBody(original)

	d := New(e.Bytes())
	got := d.FunctionBody()
	if !reflect.DeepEqual(got, original) {
		t.Fatalf("got %+v, want %+v", got, original)
	}
	if d.Remaining() != 0 {
		t.Fatalf("%d bytes left over", d.Remaining())
	}
}

func TestDecodeRejectsUnsupportedSection(t *testing.T) {
	buf := []byte{0x00, 0x61, 0x73, 0x6d, 0x01, 0x00, 0x00, 0x00, byte(wasm.SectionImport), 0x00}
	_, err := Decode(buf)
	if err == nil {
		t.Fatalf("expected error")
	}
	if !strings.Contains(err.Error(), "unsupported") {
		t.Fatalf("error %q does not mention an unsupported section", err.Error())
	}
}

func TestDecodeFullModuleRoundTrip(t *testing.T) {
	var types module.TypeSection
	typeIdx := types.Add(module.NewFuncType(nil, []wasm.ValueType{wasm.F64}))

	var funcs module.FunctionSection
	funcIdx := funcs.Add(typeIdx)

	var exports module.ExportSection
	exports.Add(module.NewExportEntry("pi", wasm.ExternalKindFunction, funcIdx))

	var code module.CodeSection
	piBits := uint64(0x400921fb54442d18)
	var ops encoder.Encoder
	ops.Op(wasm.F64Const)
	ops.Float64(math.Float64frombits(piBits))
	ops.Op(wasm.Return)
	ops.Op(wasm.End)
	code.Add(module.NewFunctionBody(nil, ops.Bytes()))

	var e encoder.Encoder
	e.ModulePreamble(module.NewPreamble(module.WasmVersionMvp))
	e.TypeSection(types, true)
	e.FunctionSection(funcs, true)
	e.ExportSection(exports, true)
	e.CodeSection(code, true)

	m, err := Decode(e.Bytes())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !reflect.DeepEqual(m.Types, types) {
		t.Fatalf("types: got %+v, want %+v", m.Types, types)
	}
	if !reflect.DeepEqual(m.Functions, funcs) {
		t.Fatalf("functions: got %+v, want %+v", m.Functions, funcs)
	}
	if !reflect.DeepEqual(m.Exports, exports) {
		t.Fatalf("exports: got %+v, want %+v", m.Exports, exports)
	}
	if !reflect.DeepEqual(m.Code, code) {
		t.Fatalf("code: got %+v, want %+v", m.Code, code)
	}
}
