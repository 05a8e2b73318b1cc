// Copyright (c) 2016 Timo Savola. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package disasm

import (
	"math"
	"strings"
	"testing"

	"github.com/wasmmvp/wasmmvp/encoder"
	"github.com/wasmmvp/wasmmvp/module"
	"github.com/wasmmvp/wasmmvp/ops"
	"github.com/wasmmvp/wasmmvp/wasm"
)

// buildPiModule encodes a module with one exported function, "pi", that
// takes no parameters and returns the 64-bit constant pi.
func buildPiModule() []byte {
	var types module.TypeSection
	typeIdx := types.Add(module.NewFuncType(nil, []wasm.ValueType{wasm.F64}))

	var funcs module.FunctionSection
	funcIdx := funcs.Add(typeIdx)

	var exports module.ExportSection
	exports.Add(module.NewExportEntry("pi", wasm.ExternalKindFunction, funcIdx))

	var w ops.Writer
	w.F64().Const(math.Pi)
	w.Return()
	w.End()

	var code module.CodeSection
	code.Add(module.NewFunctionBody(nil, w.Bytes()))

	var e encoder.Encoder
	e.ModulePreamble(module.NewPreamble(module.WasmVersionMvp))
	e.TypeSection(types, true)
	e.FunctionSection(funcs, true)
	e.ExportSection(exports, true)
	e.CodeSection(code, true)
	return e.Bytes()
}

func TestDumpPiModule(t *testing.T) {
	text, err := Dump(buildPiModule(), "\n")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	for _, want := range []string{
		"00000000 ",
		"module version 1",
		"Type Section (id=1)",
		"func_type: () f64",
		"Function Section (id=3)",
		"Export Section (id=7)",
		"'pi' function index: 0",
		"Code Section (id=10)",
		"f64.const 0x400921fb54442d18",
		"return",
		"end",
	} {
		if !strings.Contains(text, want) {
			t.Errorf("dump does not contain %q\n---\n%s", want, text)
		}
	}

	// f64.const must precede return, which must precede end.
	iConst := strings.Index(text, "f64.const")
	iReturn := strings.Index(text, "return")
	iEnd := strings.LastIndex(text, "end")
	if !(iConst < iReturn && iReturn < iEnd) {
		t.Fatalf("opcodes not in expected order: const=%d return=%d end=%d", iConst, iReturn, iEnd)
	}
}

func TestDumpRejectsBadMagic(t *testing.T) {
	_, err := Dump([]byte{0xba, 0xda, 0xda, 0xba, 0x00, 0x00, 0x00, 0x00}, "\n")
	if err == nil {
		t.Fatalf("expected error")
	}
}

func TestDumpEmptyModule(t *testing.T) {
	var e encoder.Encoder
	e.ModulePreamble(module.NewPreamble(module.WasmVersionMvp))
	text, err := Dump(e.Bytes(), "\n")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(text, "module version 1") {
		t.Fatalf("dump missing preamble line:\n%s", text)
	}
}

func TestDumpCustomSection(t *testing.T) {
	var e encoder.Encoder
	e.ModulePreamble(module.NewPreamble(module.WasmVersionMvp))
	e.CustomSection(module.NewCustomSection("note", []byte("hi")))

	text, err := Dump(e.Bytes(), "\n")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(text, "Custom Section (id=0)") {
		t.Fatalf("dump missing custom section header:\n%s", text)
	}
	if !strings.Contains(text, "note = { 68 69 }") {
		t.Fatalf("dump missing custom payload line:\n%s", text)
	}
}

// buildControlFlowModule encodes a single exported function whose body
// exercises every immediate-bearing opcode family writeCode must parse
// beyond the basic local/call/const set: block types, branch targets,
// br_table, call_indirect's reserved byte, the load/store memory_immediate
// shape, and current_memory/grow_memory's reserved byte.
func buildControlFlowModule() []byte {
	var types module.TypeSection
	typeIdx := types.Add(module.NewFuncType([]wasm.ValueType{wasm.I32}, nil))

	var funcs module.FunctionSection
	funcIdx := funcs.Add(typeIdx)

	var exports module.ExportSection
	exports.Add(module.NewExportEntry("run", wasm.ExternalKindFunction, funcIdx))

	var w encoder.Encoder
	w.Op(wasm.Block)
	w.Type(wasm.TypeEmptyBlock)
	w.Op(wasm.GetLocal)
	w.Varuint32(0)
	w.Op(wasm.BrIf)
	w.Varuint32(0)
	w.Op(wasm.Br)
	w.Varuint32(0)
	w.Op(wasm.End)

	w.Op(wasm.GetLocal)
	w.Varuint32(0)
	w.Op(wasm.BrTable)
	w.Varuint32(2) // target count
	w.Varuint32(0)
	w.Varuint32(1)
	w.Varuint32(2) // default target

	w.Op(wasm.CallIndirect)
	w.Varuint32(uint32(typeIdx))
	w.Varuint1(0) // reserved

	w.Op(wasm.I32Load)
	w.Varuint32(2) // align
	w.Varuint32(4) // offset
	w.Op(wasm.I32Store)
	w.Varuint32(2)
	w.Varuint32(4)

	w.Op(wasm.GrowMemory)
	w.Varuint1(0) // reserved
	w.Op(wasm.Drop)

	w.Op(wasm.End)

	var code module.CodeSection
	code.Add(module.NewFunctionBody(nil, w.Bytes()))

	var e encoder.Encoder
	e.ModulePreamble(module.NewPreamble(module.WasmVersionMvp))
	e.TypeSection(types, true)
	e.FunctionSection(funcs, true)
	e.ExportSection(exports, true)
	e.CodeSection(code, true)
	return e.Bytes()
}

func TestDumpControlFlowAndMemoryImmediates(t *testing.T) {
	text, err := Dump(buildControlFlowModule(), "\n")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	for _, want := range []string{
		"block void",
		"br_if 0",
		"br 0",
		"br_table 0 1 default=2",
		"call_indirect 0",
		"i32.load align=2 offset=4",
		"i32.store align=2 offset=4",
		"grow_memory",
	} {
		if !strings.Contains(text, want) {
			t.Errorf("dump does not contain %q\n---\n%s", want, text)
		}
	}
}

func TestDumpNameSection(t *testing.T) {
	var funcNames encoder.Encoder
	funcNames.Varuint32(1) // one function name entry
	funcNames.Varuint32(0) // function index
	funcNames.UTF8("pi")

	var payload encoder.Encoder
	payload.Uint8(1) // function-names subsection id
	payload.Varuint32(uint32(funcNames.Len()))
	payload.RawBytes(funcNames.Bytes())

	var e encoder.Encoder
	e.ModulePreamble(module.NewPreamble(module.WasmVersionMvp))
	e.CustomSection(module.NewCustomSection("name", payload.Bytes()))

	text, err := Dump(e.Bytes(), "\n")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(text, `function 0 name: "pi"`) {
		t.Fatalf("dump missing decoded function name:\n%s", text)
	}
}
