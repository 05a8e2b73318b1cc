// Copyright (c) 2016 Timo Savola. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package numeric

import "testing"

func TestIsUint7(t *testing.T) {
	for _, v := range []int64{0, 1, 0x7f} {
		if !IsUint7(v) {
			t.Errorf("IsUint7(%d) = false, want true", v)
		}
	}
	for _, v := range []int64{-1, 0x80} {
		if IsUint7(v) {
			t.Errorf("IsUint7(%d) = true, want false", v)
		}
	}
}

func TestIsInt7(t *testing.T) {
	for _, v := range []int64{-0x40, 0, 0x3f} {
		if !IsInt7(v) {
			t.Errorf("IsInt7(%d) = false, want true", v)
		}
	}
	for _, v := range []int64{-0x41, 0x40} {
		if IsInt7(v) {
			t.Errorf("IsInt7(%d) = true, want false", v)
		}
	}
}

func TestIsUint32(t *testing.T) {
	if !IsUint32(0xffffffff) {
		t.Error("IsUint32(0xffffffff) = false, want true")
	}
	if IsUint32(0x100000000) {
		t.Error("IsUint32(0x100000000) = true, want false")
	}
	if IsUint32(-1) {
		t.Error("IsUint32(-1) = true, want false")
	}
}

func TestIsInt32(t *testing.T) {
	if !IsInt32(-0x80000000) || !IsInt32(0x7fffffff) {
		t.Error("boundary int32 values rejected")
	}
	if IsInt32(0x80000000) {
		t.Error("IsInt32(0x80000000) = true, want false")
	}
}

func TestAssertPanicsOnRangeViolation(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("AssertUint7 did not panic on out-of-range value")
		}
	}()
	AssertUint7(0x80)
}

func TestHex8(t *testing.T) {
	if got := Hex8(0x0b); got != "0b" {
		t.Errorf("Hex8(0x0b) = %q, want %q", got, "0b")
	}
	if got := Hex8(-1); got != "ff" {
		t.Errorf("Hex8(-1) = %q, want %q", got, "ff")
	}
}

func TestHex32(t *testing.T) {
	if got := Hex32(0x6d736100); got != "6d736100" {
		t.Errorf("Hex32(0x6d736100) = %q, want %q", got, "6d736100")
	}
	if got := Hex32(1); got != "00000001" {
		t.Errorf("Hex32(1) = %q, want %q", got, "00000001")
	}
}

func TestHex64(t *testing.T) {
	if got := Hex64(0x400921fb54442d18); got != "400921fb54442d18" {
		t.Errorf("Hex64(pi) = %q, want %q", got, "400921fb54442d18")
	}
}
