// Copyright (c) 2015 Timo Savola. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package ops

import (
	"bytes"
	"math"
	"testing"

	"github.com/wasmmvp/wasmmvp/wasm"
)

func TestPiFunctionBody(t *testing.T) {
	var w Writer
	w.F64().Const(math.Pi)
	w.Return()
	w.End()

	got := w.Bytes()
	want := []byte{byte(wasm.F64Const)}
	var bits [8]byte
	v := math.Float64bits(math.Pi)
	for i := 0; i < 8; i++ {
		bits[i] = byte(v)
		v >>= 8
	}
	want = append(want, bits[:]...)
	want = append(want, byte(wasm.Return), byte(wasm.End))

	if !bytes.Equal(got, want) {
		t.Fatalf("got % x, want % x", got, want)
	}
}

func TestGetLocalEmitsIndex(t *testing.T) {
	var w Writer
	w.GetLocal(0x81)
	got := w.Bytes()
	want := []byte{byte(wasm.GetLocal), 0x81, 0x01}
	if !bytes.Equal(got, want) {
		t.Fatalf("got % x, want % x", got, want)
	}
}

func TestI32ConstNegative(t *testing.T) {
	var w Writer
	w.I32().Const(-1)
	got := w.Bytes()
	want := []byte{byte(wasm.I32Const), 0x7f}
	if !bytes.Equal(got, want) {
		t.Fatalf("got % x, want % x", got, want)
	}
}
