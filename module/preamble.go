// Copyright (c) 2015 Timo Savola. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package module defines the in-memory representation of a WebAssembly
// (MVP) module: the preamble, the five section types this codec supports,
// and the entries within them. Every constructor validates its arguments
// and panics (via internal/panerr) on a structural or range violation, so
// that a value of these types is always well-formed.
package module

import (
	"github.com/wasmmvp/wasmmvp/internal/panerr"
	"github.com/wasmmvp/wasmmvp/wasm"
)

// MagicNumber is the fixed 4 bytes that open every WebAssembly module,
// little-endian "\0asm".
const MagicNumber uint32 = 0x6d736100

// WasmVersion identifies a binary format revision. Only WasmVersionMvp is
// accepted; the source lineage's earlier 0x0d value is historical and is
// rejected at construction and at decode time.
type WasmVersion uint32

// WasmVersionMvp is the only version this codec accepts.
const WasmVersionMvp = WasmVersion(1)

// Preamble is the 8-byte header that opens every module: the magic number
// (implicit; constant) followed by the version.
type Preamble struct {
	Version WasmVersion
}

// NewPreamble constructs a Preamble, rejecting any version but Mvp.
func NewPreamble(version WasmVersion) Preamble {
	if version != WasmVersionMvp {
		panerr.Panic(panerr.Errorf("unsupported module version: %d", uint32(version)))
	}
	return Preamble{Version: version}
}

// Section is implemented by every section type this codec encodes and
// decodes: CustomSection, TypeSection, FunctionSection, ExportSection, and
// CodeSection. It lets callers that dispatch on section kind (the encoder's
// generic framing helper, the disassembler) do so without a type switch at
// every call site.
type Section interface {
	SectionID() wasm.SectionID
}
