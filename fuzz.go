// Copyright (c) 2016 Timo Savola. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// +build gofuzz

package wasmmvp

import (
	"reflect"

	"github.com/wasmmvp/wasmmvp/decoder"
	"github.com/wasmmvp/wasmmvp/encoder"
	"github.com/wasmmvp/wasmmvp/module"
)

// Fuzz decodes data and, if that succeeds, re-encodes and re-decodes the
// result, panicking if the second decode disagrees with the first. This
// exercises decode-then-encode as a stable fixed point without assuming
// data's custom sections (if any) were interleaved in the one order this
// module's in-memory representation can reproduce.
func Fuzz(data []byte) int {
	m, err := decoder.Decode(data)
	if err != nil {
		return 0
	}

	m2, err := decoder.Decode(encodeModule(m))
	if err != nil {
		panic(err)
	}
	if !reflect.DeepEqual(m, m2) {
		panic("re-decoded module disagrees with the original decode")
	}

	return 1
}

func encodeModule(m module.Module) []byte {
	var e encoder.Encoder
	e.ModulePreamble(m.Preamble)
	e.TypeSection(m.Types, true)
	e.FunctionSection(m.Functions, true)
	e.ExportSection(m.Exports, true)
	e.CodeSection(m.Code, true)
	for _, c := range m.Customs {
		e.CustomSection(c)
	}
	return e.Bytes()
}
