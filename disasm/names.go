// Copyright (c) 2016 Timo Savola. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package disasm

import (
	"sort"

	"github.com/wasmmvp/wasmmvp/decoder"
)

const (
	nameSubsectionModuleName byte = iota
	nameSubsectionFunctionNames
	nameSubsectionLocalNames
)

// parseNameSection decodes the well-known "name" custom section's
// module-name and function-name subsections. Local-name subsections are
// skipped; this dump doesn't have a use for them.
func parseNameSection(payload []byte) (moduleName string, funcNames map[uint32]string) {
	funcNames = make(map[uint32]string)

	d := decoder.New(payload)
	for d.Remaining() > 0 {
		id := d.Uint8()
		size := d.Varuint32()
		sub := decoder.New(d.RawBytes(int(size)))

		switch id {
		case nameSubsectionModuleName:
			nameLen := sub.Varuint32()
			moduleName = string(sub.RawBytes(int(nameLen)))

		case nameSubsectionFunctionNames:
			count := sub.Varuint32()
			for i := uint32(0); i < count; i++ {
				funcIndex := sub.Varuint32()
				nameLen := sub.Varuint32()
				funcNames[funcIndex] = string(sub.RawBytes(int(nameLen)))
			}
		}
	}

	return
}

// tryParseNameSection recovers from any malformed-input panic raised while
// parsing payload, reporting ok=false instead of propagating it: a
// malformed "name" section is informational only and shouldn't abort the
// rest of the dump.
func tryParseNameSection(payload []byte) (moduleName string, funcNames map[uint32]string, ok bool) {
	defer func() {
		if recover() != nil {
			moduleName, funcNames, ok = "", nil, false
		}
	}()
	moduleName, funcNames = parseNameSection(payload)
	ok = true
	return
}

func sortedFuncIndices(funcNames map[uint32]string) []uint32 {
	indices := make([]uint32, 0, len(funcNames))
	for idx := range funcNames {
		indices = append(indices, idx)
	}
	sort.Slice(indices, func(i, j int) bool { return indices[i] < indices[j] })
	return indices
}
