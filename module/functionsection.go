// Copyright (c) 2016 Timo Savola. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package module

import "github.com/wasmmvp/wasmmvp/wasm"

// FunctionSection is the ordered list of type-section indices, one per
// function defined by the module.
type FunctionSection struct {
	TypeIndices []uint32
}

// Add appends typeIndex and returns the function index it was assigned.
func (s *FunctionSection) Add(typeIndex uint32) uint32 {
	index := uint32(len(s.TypeIndices))
	s.TypeIndices = append(s.TypeIndices, typeIndex)
	return index
}

// SectionID implements Section.
func (*FunctionSection) SectionID() wasm.SectionID { return wasm.SectionFunction }
