// Copyright (c) 2015 Timo Savola. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package wasm

import (
	"fmt"

	"github.com/wasmmvp/wasmmvp/internal/panerr"
)

// SectionID identifies a module section. The values are the consecutive
// ids the MVP binary format assigns them; this codec only emits and
// decodes Custom, Type, Function, Export, and Code, but the full
// enumeration is kept so that an unsupported section id can be named in a
// diagnostic rather than reported as a bare number.
type SectionID uint8

const (
	SectionCustom   = SectionID(0)
	SectionType     = SectionID(1)
	SectionImport   = SectionID(2)
	SectionFunction = SectionID(3)
	SectionTable    = SectionID(4)
	SectionMemory   = SectionID(5)
	SectionGlobal   = SectionID(6)
	SectionExport   = SectionID(7)
	SectionStart    = SectionID(8)
	SectionElement  = SectionID(9)
	SectionCode     = SectionID(10)
	SectionData     = SectionID(11)

	numSectionIDs = 12
)

var sectionIDStrings = [numSectionIDs]string{
	SectionCustom:   "Custom",
	SectionType:     "Type",
	SectionImport:   "Import",
	SectionFunction: "Function",
	SectionTable:    "Table",
	SectionMemory:   "Memory",
	SectionGlobal:   "Global",
	SectionExport:   "Export",
	SectionStart:    "Start",
	SectionElement:  "Element",
	SectionCode:     "Code",
	SectionData:     "Data",
}

func (c SectionID) String() string {
	if int(c) < len(sectionIDStrings) {
		return sectionIDStrings[c]
	}
	return fmt.Sprintf("<unknown section 0x%x>", uint8(c))
}

// IsValid reports whether c is one of the twelve defined section ids.
func (c SectionID) IsValid() bool {
	return int(c) < numSectionIDs
}

// IsSupported reports whether this codec implements section c: Custom,
// Type, Function, Export, or Code. Import, Table, Memory, Global, Start,
// Element, and Data are valid MVP section ids but out of this codec's
// scope per its Non-goals.
func (c SectionID) IsSupported() bool {
	switch c {
	case SectionCustom, SectionType, SectionFunction, SectionExport, SectionCode:
		return true
	default:
		return false
	}
}

// AssertSupported panics unless c is a section this codec implements.
func AssertSupported(c SectionID) {
	if !c.IsValid() {
		panerr.Panic(panerr.Errorf("unsupported section id: 0x%x", uint8(c)))
	}
	if !c.IsSupported() {
		panerr.Panic(panerr.Errorf("unsupported section id: %s (0x%x)", c, uint8(c)))
	}
}
