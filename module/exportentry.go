// Copyright (c) 2016 Timo Savola. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package module

import (
	"github.com/wasmmvp/wasmmvp/internal/panerr"
	"github.com/wasmmvp/wasmmvp/wasm"
)

// ExportEntry names one internal definition and makes it visible to the
// module's host. Index refers to the function, table, memory, or global
// index space selected by Kind.
type ExportEntry struct {
	Name  string
	Kind  wasm.ExternalKind
	Index uint32
}

// NewExportEntry constructs an ExportEntry. In the MVP there is exactly one
// memory and one set of globals per index, so when kind is Memory or
// Global, index must be zero.
func NewExportEntry(name string, kind wasm.ExternalKind, index uint32) ExportEntry {
	wasm.AssertExternalKind(kind)
	if (kind == wasm.ExternalKindMemory || kind == wasm.ExternalKindGlobal) && index != 0 {
		panerr.Panic(panerr.Errorf("export %q: index must be 0 for kind %s, got %d", name, kind, index))
	}
	return ExportEntry{
		Name:  name,
		Kind:  kind,
		Index: index,
	}
}
