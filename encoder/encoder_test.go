// Copyright (c) 2015 Timo Savola. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package encoder

import (
	"bytes"
	"testing"

	"github.com/wasmmvp/wasmmvp/module"
	"github.com/wasmmvp/wasmmvp/wasm"
)

func TestModulePreamble(t *testing.T) {
	var e Encoder
	e.ModulePreamble(module.NewPreamble(module.WasmVersionMvp))
	got := e.Bytes()
	want := []byte{0x00, 0x61, 0x73, 0x6d, 0x01, 0x00, 0x00, 0x00}
	if !bytes.Equal(got, want) {
		t.Fatalf("got % x, want % x", got, want)
	}
}

func TestVaruint32Boundaries(t *testing.T) {
	cases := []struct {
		v    uint32
		want []byte
	}{
		{0, []byte{0x00}},
		{0x7f, []byte{0x7f}},
		{0x80, []byte{0x80, 0x01}},
		{0x3fff, []byte{0xff, 0x7f}},
		{0x4000, []byte{0x80, 0x80, 0x01}},
	}
	for _, c := range cases {
		var e Encoder
		e.Varuint32(c.v)
		if !bytes.Equal(e.Bytes(), c.want) {
			t.Errorf("Varuint32(%#x) = % x, want % x", c.v, e.Bytes(), c.want)
		}
	}
}

func TestVarint32NegativeBoundary(t *testing.T) {
	var e64 Encoder
	e64.Varint32(-64)
	if want := []byte{0x40}; !bytes.Equal(e64.Bytes(), want) {
		t.Fatalf("Varint32(-64) = % x, want % x", e64.Bytes(), want)
	}

	var e65 Encoder
	e65.Varint32(-65)
	if want := []byte{0xbf, 0x7f}; !bytes.Equal(e65.Bytes(), want) {
		t.Fatalf("Varint32(-65) = % x, want % x", e65.Bytes(), want)
	}
}

func TestUint8RejectsOutOfRange(t *testing.T) {
	mustPanic(t, func() {
		var e Encoder
		e.Uint8(256)
	})
}

func TestUTF8RejectsNonASCII(t *testing.T) {
	mustPanic(t, func() {
		var e Encoder
		e.UTF8(string([]byte{0x80}))
	})
}

func TestElideIfEmptyTrueYieldsZeroBytes(t *testing.T) {
	var e Encoder
	notEmpty := e.TypeSection(module.TypeSection{}, true)
	if notEmpty {
		t.Fatalf("expected not-empty to be false")
	}
	if e.Len() != 0 {
		t.Fatalf("expected zero bytes, got %d", e.Len())
	}
}

func TestElideIfEmptyFalseWritesEmptySection(t *testing.T) {
	var e Encoder
	notEmpty := e.TypeSection(module.TypeSection{}, false)
	if notEmpty {
		t.Fatalf("expected not-empty to be false")
	}
	want := []byte{byte(wasm.SectionType), 0x01, 0x00}
	if !bytes.Equal(e.Bytes(), want) {
		t.Fatalf("got % x, want % x", e.Bytes(), want)
	}
}

func TestCustomSectionWithEmptyNameAndPayload(t *testing.T) {
	var e Encoder
	notEmpty := e.CustomSection(module.NewCustomSection("", nil))
	if !notEmpty {
		t.Fatalf("expected custom section to always report non-empty")
	}
	want := []byte{byte(wasm.SectionCustom), 0x01, 0x00}
	if !bytes.Equal(e.Bytes(), want) {
		t.Fatalf("got % x, want % x", e.Bytes(), want)
	}
}

func TestCustomSectionRoundTripBytes(t *testing.T) {
	var e Encoder
	payload := []byte{0x70, 0x61, 0x79, 0x6c, 0x6f, 0x61, 0x64}
	e.CustomSection(module.NewCustomSection("name", payload))

	nameLen := len("name")
	want := []byte{byte(wasm.SectionCustom)}
	payloadLen := 1 + nameLen + len(payload) // varuint32(len(name)) fits in 1 byte + name bytes + payload
	want = append(want, byte(payloadLen))
	want = append(want, byte(nameLen))
	want = append(want, []byte("name")...)
	want = append(want, payload...)

	if !bytes.Equal(e.Bytes(), want) {
		t.Fatalf("got % x, want % x", e.Bytes(), want)
	}
}

func TestFunctionBodyEncodesLocalsAndCode(t *testing.T) {
	var e Encoder
	body := module.NewFunctionBody(
		[]module.LocalEntry{module.NewLocalEntry(1, wasm.I32)},
		[]byte{byte(wasm.End)},
	)
	e.FunctionBody(body)
	want := []byte{
		0x04, // payload length: local_count + entry.count + entry.type + code
		0x01, // local_count
		0x01, // local entry run count
		0x7f, // local entry type: i32 (-1) as varint7
		byte(wasm.End),
	}
	if !bytes.Equal(e.Bytes(), want) {
		t.Fatalf("got % x, want % x", e.Bytes(), want)
	}
}

func TestExportEntryRejectsNonASCIIName(t *testing.T) {
	mustPanic(t, func() {
		var e Encoder
		e.ExportEntry(module.NewExportEntry(string([]byte{0xff}), wasm.ExternalKindFunction, 0))
	})
}

func mustPanic(t *testing.T, f func()) {
	t.Helper()
	defer func() {
		if recover() == nil {
			t.Fatalf("expected panic")
		}
	}()
	f()
}
