// Copyright (c) 2018 Timo Savola. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package wasm

import (
	"fmt"

	"github.com/wasmmvp/wasmmvp/internal/panerr"
)

// ExternalKind identifies what an export entry refers to.
type ExternalKind uint8

const (
	ExternalKindFunction = ExternalKind(0)
	ExternalKindTable    = ExternalKind(1)
	ExternalKindMemory   = ExternalKind(2)
	ExternalKindGlobal   = ExternalKind(3)
)

var externalKindStrings = [...]string{
	ExternalKindFunction: "function",
	ExternalKindTable:    "table",
	ExternalKindMemory:   "memory",
	ExternalKindGlobal:   "global",
}

func (k ExternalKind) String() string {
	if int(k) < len(externalKindStrings) {
		return externalKindStrings[k]
	}
	return fmt.Sprintf("<unknown external kind 0x%x>", uint8(k))
}

// IsValid reports whether k is one of the four defined ExternalKind values.
func (k ExternalKind) IsValid() bool {
	return int(k) < len(externalKindStrings)
}

// AssertExternalKind panics unless k is a valid ExternalKind.
func AssertExternalKind(k ExternalKind) {
	if !k.IsValid() {
		panerr.Panic(panerr.Errorf("invalid external kind: 0x%x", uint8(k)))
	}
}
