// Copyright (c) 2016 Timo Savola. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package module

import "github.com/wasmmvp/wasmmvp/wasm"

// TypeSection is the ordered list of function signatures a module defines.
type TypeSection struct {
	Types []FuncType
}

// Add appends sig and returns its index within the section.
func (s *TypeSection) Add(sig FuncType) uint32 {
	index := uint32(len(s.Types))
	s.Types = append(s.Types, sig)
	return index
}

// SectionID implements Section.
func (*TypeSection) SectionID() wasm.SectionID { return wasm.SectionType }
