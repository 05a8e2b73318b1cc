// Copyright (c) 2018 Timo Savola. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Program wasmdump decodes a WebAssembly (MVP) module and writes its
// annotated disassembly to stdout.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/wasmmvp/wasmmvp/disasm"
)

func main() {
	log.SetFlags(0)

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s [options] wasmfile\n\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
	}

	hexOnly := flag.Bool("hex", false, "print only the leading hex dump, not the section-by-section disassembly")
	flag.Parse()

	if flag.NArg() != 1 {
		flag.Usage()
		os.Exit(2)
	}

	buf, err := os.ReadFile(flag.Arg(0))
	if err != nil {
		log.Fatal(err)
	}

	text, err := disasm.Dump(buf, "\n")
	if err != nil {
		log.Fatal(err)
	}

	if *hexOnly {
		text = disasm.LeadingHexDump(text)
	}

	if err := disasm.Fprint(os.Stdout, text); err != nil {
		log.Fatal(err)
	}
}
