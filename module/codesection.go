// Copyright (c) 2016 Timo Savola. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package module

import "github.com/wasmmvp/wasmmvp/wasm"

// CodeSection is the ordered list of function bodies, one per entry in the
// function section, in the same order.
type CodeSection struct {
	Bodies []FunctionBody
}

// Add appends body to the section.
func (s *CodeSection) Add(body FunctionBody) {
	s.Bodies = append(s.Bodies, body)
}

// SectionID implements Section.
func (*CodeSection) SectionID() wasm.SectionID { return wasm.SectionCode }
