// Copyright (c) 2015 Timo Savola. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package module

// Module is a fully decoded WebAssembly module: its preamble plus the
// sections this codec understands, in the order they were read from (or are
// to be written to) the byte stream. Custom sections may appear any number
// of times and anywhere in the stream, so they are kept as a slice rather
// than merged into one; the other sections appear at most once.
type Module struct {
	Preamble  Preamble
	Types     TypeSection
	Functions FunctionSection
	Exports   ExportSection
	Code      CodeSection
	Customs   []CustomSection
}
