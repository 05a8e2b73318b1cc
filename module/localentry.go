// Copyright (c) 2016 Timo Savola. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package module

import (
	"github.com/wasmmvp/wasmmvp/wasm"
)

// LocalEntry declares a run of Count local variables of the same Type,
// immediately following a function's declared parameters. A zero count is
// a legal, if pointless, run: it decodes and re-encodes like any other
// entry.
type LocalEntry struct {
	Count uint32
	Type  wasm.ValueType
}

// NewLocalEntry constructs a LocalEntry.
func NewLocalEntry(count uint32, t wasm.ValueType) LocalEntry {
	wasm.AssertValueType(t)
	return LocalEntry{Count: count, Type: t}
}
