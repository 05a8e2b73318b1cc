// Copyright (c) 2016 Timo Savola. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package module

import (
	"github.com/wasmmvp/wasmmvp/wasm"
)

// CustomSection carries an opaque payload under an ASCII name. Consumers
// that don't recognize the name are expected to skip it; this codec never
// interprets the payload beyond storing and round-tripping it. An empty
// name and an empty payload are both valid.
type CustomSection struct {
	Name        string
	PayloadData []byte
}

// NewCustomSection constructs a CustomSection. name's encoding is validated
// by the encoder (utf8 with code units restricted to ASCII); payload is
// copied so the caller's slice may be reused.
func NewCustomSection(name string, payload []byte) CustomSection {
	return CustomSection{
		Name:        name,
		PayloadData: append([]byte(nil), payload...),
	}
}

// SectionID implements Section.
func (CustomSection) SectionID() wasm.SectionID { return wasm.SectionCustom }
