// Copyright (c) 2015 Timo Savola. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package frontend

import (
	"math"
	"testing"

	"github.com/wasmmvp/wasmmvp/decoder"
	"github.com/wasmmvp/wasmmvp/wasm"
)

func TestBuildPiFunction(t *testing.T) {
	src := []byte(`(module
		(func $pi (export "pi") (result f64)
			(f64.const 3.141592653589793)
			(return)))`)

	m, err := Build(src)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(m.Types.Types) != 1 {
		t.Fatalf("got %d types, want 1", len(m.Types.Types))
	}
	sig := m.Types.Types[0]
	if len(sig.ParamTypes) != 0 || len(sig.ReturnTypes) != 1 || sig.ReturnTypes[0] != wasm.F64 {
		t.Fatalf("unexpected signature: %+v", sig)
	}

	if len(m.Exports.Entries) != 1 {
		t.Fatalf("got %d exports, want 1", len(m.Exports.Entries))
	}
	export := m.Exports.Entries[0]
	if export.Name != "pi" || export.Kind != wasm.ExternalKindFunction || export.Index != 0 {
		t.Fatalf("unexpected export: %+v", export)
	}

	if len(m.Code.Bodies) != 1 {
		t.Fatalf("got %d function bodies, want 1", len(m.Code.Bodies))
	}
	body := m.Code.Bodies[0]

	d := decoder.New(body.Code)
	if op := d.Op(); op != wasm.F64Const {
		t.Fatalf("got opcode %s, want f64.const", op)
	}
	if got := d.Float64(); math.Abs(got-math.Pi) > 1e-15 {
		t.Fatalf("got constant %v, want approximately pi", got)
	}
	if op := d.Op(); op != wasm.Return {
		t.Fatalf("got opcode %s, want return", op)
	}
	if op := d.Op(); op != wasm.End {
		t.Fatalf("got opcode %s, want end", op)
	}
	if d.Remaining() != 0 {
		t.Fatalf("%d bytes left over in function body", d.Remaining())
	}
}

func TestBuildRejectsUnknownInstruction(t *testing.T) {
	src := []byte(`(module (func (result f64) (f64.nonsense 1)))`)
	if _, err := Build(src); err == nil {
		t.Fatalf("expected error")
	}
}

func TestBuildWithParamsAndGetLocal(t *testing.T) {
	src := []byte(`(module
		(func (export "first") (param f64 f64) (result f64)
			(get_local 0)))`)

	m, err := Build(src)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	sig := m.Types.Types[0]
	if len(sig.ParamTypes) != 2 {
		t.Fatalf("got %d params, want 2", len(sig.ParamTypes))
	}

	body := m.Code.Bodies[0]
	d := decoder.New(body.Code)
	if op := d.Op(); op != wasm.GetLocal {
		t.Fatalf("got opcode %s, want get_local", op)
	}
	if idx := d.Varuint32(); idx != 0 {
		t.Fatalf("got local index %d, want 0", idx)
	}
	if op := d.Op(); op != wasm.End {
		t.Fatalf("got opcode %s, want end", op)
	}
}
