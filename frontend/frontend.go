// Copyright (c) 2015 Timo Savola. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package frontend is a minimal source-program front-end: it walks the
// s-expression tree produced by this package's own scanner and populates a
// module.Module via package module's constructors and package ops's opcode
// façade. It emits a small, deliberately incomplete subset of the textual
// format -- one function form, a fixed set of opcode mnemonics, numeric
// local references only -- just enough to produce the kind of
// single-function, single-export module the rest of this codec is tested
// against.
package frontend

import (
	"strings"

	"github.com/wasmmvp/wasmmvp/internal/panerr"
	"github.com/wasmmvp/wasmmvp/module"
	"github.com/wasmmvp/wasmmvp/ops"
	"github.com/wasmmvp/wasmmvp/wasm"
)

// Build parses src as a single top-level (module ...) form and returns the
// module it describes.
func Build(src []byte) (m module.Module, err error) {
	defer func() { err = panerr.Handle(recover()) }()

	list := readModuleForm(src)
	if len(list) == 0 {
		panerr.Panic(panerr.Error("expected a single top-level form"))
	}
	if head, _ := list[0].(string); head != "module" {
		panerr.Panic(panerr.Errorf("unsupported top-level form: %v", list[0]))
	}

	b := &builder{}
	b.m.Preamble = module.NewPreamble(module.WasmVersionMvp)
	for _, form := range list[1:] {
		b.topForm(form)
	}
	return b.m, nil
}

type builder struct {
	m module.Module
}

func (b *builder) topForm(form interface{}) {
	items := asList(form)
	if len(items) == 0 {
		panerr.Panic(panerr.Error("empty module-level form"))
	}
	head, _ := items[0].(string)
	switch head {
	case "func":
		b.buildFunc(items[1:])
	default:
		panerr.Panic(panerr.Errorf("unsupported module-level form: %s", head))
	}
}

func (b *builder) buildFunc(items []interface{}) {
	i := 0
	if i < len(items) {
		if name, ok := items[i].(string); ok && strings.HasPrefix(name, "$") {
			i++
		}
	}

	var (
		exportName string
		hasExport  bool
		params     []wasm.ValueType
		results    []wasm.ValueType
		locals     []module.LocalEntry
	)

	for i < len(items) {
		clause, ok := items[i].([]interface{})
		if !ok || len(clause) == 0 {
			break
		}
		tag, _ := clause[0].(string)
		switch tag {
		case "export":
			exportName, _ = clause[1].(string)
			hasExport = true
		case "param":
			for _, v := range clause[1:] {
				params = append(params, parseValueType(v))
			}
		case "result":
			for _, v := range clause[1:] {
				results = append(results, parseValueType(v))
			}
		case "local":
			for _, v := range clause[1:] {
				locals = append(locals, module.NewLocalEntry(1, parseValueType(v)))
			}
		default:
			goto body // i still points at the first body instruction
		}
		i++
	}

body:
	var w ops.Writer
	for _, instr := range items[i:] {
		emit(&w, instr)
	}
	w.End()

	typeIndex := b.m.Types.Add(module.NewFuncType(params, results))
	funcIndex := b.m.Functions.Add(typeIndex)
	if hasExport {
		b.m.Exports.Add(module.NewExportEntry(exportName, wasm.ExternalKindFunction, funcIndex))
	}
	b.m.Code.Add(module.NewFunctionBody(locals, w.Bytes()))
}

func emit(w *ops.Writer, instr interface{}) {
	clause := asList(instr)
	if len(clause) == 0 {
		panerr.Panic(panerr.Error("expected an instruction"))
	}
	mnemonic, _ := clause[0].(string)
	args := clause[1:]

	switch mnemonic {
	case "unreachable":
		w.Unreachable()
	case "nop":
		w.Nop()
	case "return":
		w.Return()
	case "drop":
		w.Drop()
	case "get_local":
		w.GetLocal(asIndex(args[0]))
	case "set_local":
		w.SetLocal(asIndex(args[0]))
	case "tee_local":
		w.TeeLocal(asIndex(args[0]))
	case "call":
		w.Call(asIndex(args[0]))
	case "i32.const":
		w.I32().Const(int32(asInt(args[0])))
	case "i32.add":
		w.I32().Add()
	case "i32.sub":
		w.I32().Sub()
	case "i32.mul":
		w.I32().Mul()
	case "i32.eq":
		w.I32().Eq()
	case "i64.const":
		w.I64().Const(asInt(args[0]))
	case "i64.add":
		w.I64().Add()
	case "f32.const":
		w.F32().Const(float32(asFloat(args[0])))
	case "f64.const":
		w.F64().Const(asFloat(args[0]))
	case "f64.add":
		w.F64().Add()
	default:
		panerr.Panic(panerr.Errorf("unsupported instruction: %s", mnemonic))
	}
}

func asList(v interface{}) []interface{} {
	items, ok := v.([]interface{})
	if !ok {
		panerr.Panic(panerr.Error("expected a list"))
	}
	return items
}

func asInt(v interface{}) int64 {
	switch n := v.(type) {
	case int64:
		return n
	case uint64:
		return int64(n)
	}
	panerr.Panic(panerr.Errorf("expected an integer, got %v", v))
	return 0
}

func asIndex(v interface{}) uint32 {
	return uint32(asInt(v))
}

func asFloat(v interface{}) float64 {
	switch n := v.(type) {
	case float64:
		return n
	case int64:
		return float64(n)
	case uint64:
		return float64(n)
	}
	panerr.Panic(panerr.Errorf("expected a number, got %v", v))
	return 0
}

func parseValueType(v interface{}) wasm.ValueType {
	s, ok := v.(string)
	if !ok {
		panerr.Panic(panerr.Errorf("expected a value type, got %v", v))
	}
	switch s {
	case "i32":
		return wasm.I32
	case "i64":
		return wasm.I64
	case "f32":
		return wasm.F32
	case "f64":
		return wasm.F64
	default:
		panerr.Panic(panerr.Errorf("unknown value type: %s", s))
		return 0
	}
}
