// Copyright (c) 2016 Timo Savola. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package disasm streams a WebAssembly (MVP) module's binary form as
// annotated text: a full hex dump, the preamble, and then each section's
// raw bytes followed by a pretty-printed rendering of its payload. It is
// the reference dump used to produce test baselines for package encoder
// and package decoder; its own correctness is tied to the wire format, not
// to any execution semantics.
package disasm

import (
	"fmt"
	"io"
	"math"
	"strings"

	"github.com/wasmmvp/wasmmvp/decoder"
	"github.com/wasmmvp/wasmmvp/internal/panerr"
	"github.com/wasmmvp/wasmmvp/module"
	"github.com/wasmmvp/wasmmvp/numeric"
	"github.com/wasmmvp/wasmmvp/wasm"
)

// commentColumn is where an opcode's trailing "// " comment starts, when
// the mnemonic and its immediate don't already reach it.
const commentColumn = 30

// Dump decodes buf and renders it as text, using newline as the line
// terminator (so callers can request "\n" or "\r\n" baselines).
func Dump(buf []byte, newline string) (text string, err error) {
	defer func() { err = panerr.Handle(recover()) }()

	var b strings.Builder
	d := &dumper{buf: buf, d: decoder.New(buf), out: &b, newline: newline}
	d.dump()
	return b.String(), nil
}

// Fprint writes text to w, as produced by Dump.
func Fprint(w io.Writer, text string) error {
	_, err := io.WriteString(w, text)
	return err
}

// LeadingHexDump returns the prefix of a Dump result up to (but not
// including) the first blank line: the raw hex dump of the whole module,
// before any decoded section text.
func LeadingHexDump(text string) string {
	var b strings.Builder
	for _, line := range strings.SplitAfter(text, "\n") {
		if strings.TrimSpace(line) == "" {
			break
		}
		b.WriteString(line)
	}
	return b.String()
}

type dumper struct {
	buf     []byte
	d       *decoder.Decoder
	out     *strings.Builder
	newline string
	mark    int
}

func (d *dumper) dump() {
	writeHexDump(d.out, d.buf, d.newline)
	d.out.WriteString(d.newline)

	preamble := d.d.ModulePreamble()
	fmt.Fprintf(d.out, "  module version %d%s", preamble.Version, d.newline)
	d.writeDecoded("  ")

	var m module.Module
	m.Preamble = preamble

	for d.d.Remaining() > 0 {
		id := d.d.SectionID()
		wasm.AssertSupported(id)
		payloadLen := d.d.Varuint32()
		payloadStart := d.d.Offset()

		d.out.WriteString(d.newline)
		fmt.Fprintf(d.out, "%s Section (id=%d)%s", id, uint8(id), d.newline)

		switch id {
		case wasm.SectionCustom:
			cs := d.d.CustomSection(payloadLen)
			m.Customs = append(m.Customs, cs)
			d.writeDecoded("  ")
			writeCustomPayload(d.out, cs, d.newline)
		case wasm.SectionType:
			m.Types = d.d.TypeSection()
			d.writeDecoded("  ")
			writeTypePayload(d.out, m.Types, d.newline)
		case wasm.SectionFunction:
			m.Functions = d.d.FunctionSection()
			d.writeDecoded("  ")
			writeFunctionPayload(d.out, m.Functions, d.newline)
		case wasm.SectionExport:
			m.Exports = d.d.ExportSection()
			d.writeDecoded("  ")
			writeExportPayload(d.out, m.Exports, d.newline)
		case wasm.SectionCode:
			m.Code = d.d.CodeSection()
			d.writeDecoded("  ")
			writeCodePayload(d.out, m, d.newline)
		default:
			panic("unreachable: wasm.AssertSupported rejects any id not handled above")
		}

		if consumed := d.d.Offset() - payloadStart; consumed != int(payloadLen) {
			panerr.Panic(panerr.Errorf("section %s: declared payload length %d does not match decoded length %d", id, payloadLen, consumed))
		}
	}
}

// writeDecoded emits, as indented hex, the bytes consumed since the
// previous call (or since the dump began), then advances the mark to the
// decoder's current offset.
func (d *dumper) writeDecoded(indent string) {
	writeHexBlock(d.out, d.buf[d.mark:d.d.Offset()], indent, d.newline)
	d.mark = d.d.Offset()
}

func writeHexDump(out *strings.Builder, buf []byte, newline string) {
	for off := 0; off < len(buf); off += 16 {
		line := buf[off:min(off+16, len(buf))]
		fmt.Fprintf(out, "%08x ", off)
		for _, b := range line {
			out.WriteByte(' ')
			out.WriteString(numeric.Hex8(int64(b)))
		}
		out.WriteString(newline)
	}
}

func writeHexBlock(out *strings.Builder, buf []byte, indent, newline string) {
	for off := 0; off < len(buf); off += 16 {
		line := buf[off:min(off+16, len(buf))]
		out.WriteString(indent)
		for i, b := range line {
			if i > 0 {
				out.WriteByte(' ')
			}
			out.WriteString(numeric.Hex8(int64(b)))
		}
		out.WriteString(newline)
	}
}

func writeCustomPayload(out *strings.Builder, s module.CustomSection, newline string) {
	if s.Name == "name" {
		if moduleName, funcNames, ok := tryParseNameSection(s.PayloadData); ok {
			if moduleName != "" {
				fmt.Fprintf(out, "  module name: %q%s", moduleName, newline)
			}
			for _, idx := range sortedFuncIndices(funcNames) {
				fmt.Fprintf(out, "  function %d name: %q%s", idx, funcNames[idx], newline)
			}
			return
		}
	}

	out.WriteString("  ")
	out.WriteString(s.Name)
	out.WriteString(" = { ")
	for i, b := range s.PayloadData {
		if i > 0 {
			out.WriteByte(' ')
		}
		out.WriteString(numeric.Hex8(int64(b)))
	}
	out.WriteString(" }")
	out.WriteString(newline)
}

func writeTypePayload(out *strings.Builder, s module.TypeSection, newline string) {
	for i, t := range s.Types {
		fmt.Fprintf(out, "  [%d] func_type: %s%s", i, t, newline)
	}
}

func writeFunctionPayload(out *strings.Builder, s module.FunctionSection, newline string) {
	for i, idx := range s.TypeIndices {
		fmt.Fprintf(out, "  [%d] %d%s", i, idx, newline)
	}
}

func writeExportPayload(out *strings.Builder, s module.ExportSection, newline string) {
	for i, e := range s.Entries {
		fmt.Fprintf(out, "  [%d] '%s' %s index: %d%s", i, e.Name, e.Kind, e.Index, newline)
	}
}

func writeCodePayload(out *strings.Builder, m module.Module, newline string) {
	exportsByFunc := make(map[uint32][]module.ExportEntry)
	for _, e := range m.Exports.Entries {
		if e.Kind == wasm.ExternalKindFunction {
			exportsByFunc[e.Index] = append(exportsByFunc[e.Index], e)
		}
	}

	for i, body := range m.Code.Bodies {
		funcIndex := uint32(i)

		if matches := exportsByFunc[funcIndex]; len(matches) > 0 {
			names := make([]string, len(matches))
			for j, e := range matches {
				names[j] = fmt.Sprintf("'%s'", e.Name)
			}
			fmt.Fprintf(out, "  [%d] %s%s", funcIndex, strings.Join(names, " ... "), newline)
		}

		var sig module.FuncType
		if int(funcIndex) < len(m.Functions.TypeIndices) {
			typeIndex := m.Functions.TypeIndices[funcIndex]
			if int(typeIndex) < len(m.Types.Types) {
				sig = m.Types.Types[typeIndex]
			}
		}
		fmt.Fprintf(out, "  func_type: %s%s", sig, newline)

		out.WriteString("  params:")
		out.WriteString(newline)
		localIndex := 0
		for _, t := range sig.ParamTypes {
			fmt.Fprintf(out, "    $%d: %s%s", localIndex, t, newline)
			localIndex++
		}

		out.WriteString("  locals:")
		out.WriteString(newline)
		for _, l := range body.Locals {
			for n := uint32(0); n < l.Count; n++ {
				fmt.Fprintf(out, "    $%d: %s%s", localIndex, l.Type, newline)
				localIndex++
			}
		}

		out.WriteString("  code:")
		out.WriteString(newline)
		writeCode(out, body.Code, newline)
	}
}

// loadStoreOpcodes is the memory_immediate family: each reads a varuint32
// alignment hint followed by a varuint32 offset.
var loadStoreOpcodes = map[wasm.Opcode]bool{
	wasm.I32Load: true, wasm.I64Load: true, wasm.F32Load: true, wasm.F64Load: true,
	wasm.I32Load8S: true, wasm.I32Load8U: true, wasm.I32Load16S: true, wasm.I32Load16U: true,
	wasm.I64Load8S: true, wasm.I64Load8U: true, wasm.I64Load16S: true, wasm.I64Load16U: true,
	wasm.I64Load32S: true, wasm.I64Load32U: true,
	wasm.I32Store: true, wasm.I64Store: true, wasm.F32Store: true, wasm.F64Store: true,
	wasm.I32Store8: true, wasm.I32Store16: true,
	wasm.I64Store8: true, wasm.I64Store16: true, wasm.I64Store32: true,
}

func writeCode(out *strings.Builder, code []byte, newline string) {
	d := decoder.New(code)
	for d.Remaining() > 0 {
		op := d.Op()
		line := "    " + op.String()
		comment := ""

		switch {
		case op == wasm.Block || op == wasm.Loop || op == wasm.If:
			bt := d.Type()
			line += " " + bt.String()
		case op == wasm.Br || op == wasm.BrIf:
			depth := d.Varuint32()
			line += fmt.Sprintf(" %d", depth)
		case op == wasm.BrTable:
			count := d.Varuint32()
			targets := make([]string, count)
			for i := range targets {
				targets[i] = fmt.Sprintf("%d", d.Varuint32())
			}
			def := d.Varuint32()
			line += fmt.Sprintf(" %s default=%d", strings.Join(targets, " "), def)
		case op == wasm.CallIndirect:
			typeIndex := d.Varuint32()
			d.Varuint1() // reserved, must be 0; value carries no meaning
			line += fmt.Sprintf(" %d", typeIndex)
		case op == wasm.GetLocal || op == wasm.SetLocal || op == wasm.TeeLocal ||
			op == wasm.GetGlobal || op == wasm.SetGlobal || op == wasm.Call:
			index := d.Varuint32()
			line += fmt.Sprintf(" %d", index)
		case loadStoreOpcodes[op]:
			align := d.Varuint32()
			offset := d.Varuint32()
			line += fmt.Sprintf(" align=%d offset=%d", align, offset)
		case op == wasm.CurrentMemory || op == wasm.GrowMemory:
			d.Varuint1() // reserved, must be 0; value carries no meaning
		case op == wasm.I32Const:
			v := d.Varint32()
			line += fmt.Sprintf(" %d", v)
		case op == wasm.I64Const:
			v := d.Varint64()
			line += fmt.Sprintf(" %d", v)
		case op == wasm.F32Const:
			bits := d.Uint32()
			line += " 0x" + numeric.Hex32(int64(bits))
			comment = fmt.Sprintf("%g", math.Float32frombits(bits))
		case op == wasm.F64Const:
			f := d.Float64()
			line += " 0x" + numeric.Hex64(math.Float64bits(f))
			comment = fmt.Sprintf("%g", f)
		}

		if comment != "" {
			if pad := commentColumn - len(line); pad > 0 {
				line += strings.Repeat(" ", pad)
			} else {
				line += " "
			}
			line += "// " + comment
		}

		out.WriteString(line)
		out.WriteString(newline)
	}
}
