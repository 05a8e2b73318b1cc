// Copyright (c) 2016 Timo Savola. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package module

import "github.com/wasmmvp/wasmmvp/wasm"

// ExportSection is the ordered list of a module's exports.
type ExportSection struct {
	Entries []ExportEntry
}

// Add appends entry to the section.
func (s *ExportSection) Add(entry ExportEntry) {
	s.Entries = append(s.Entries, entry)
}

// SectionID implements Section.
func (*ExportSection) SectionID() wasm.SectionID { return wasm.SectionExport }
