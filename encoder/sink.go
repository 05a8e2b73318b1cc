// Copyright (c) 2015 Timo Savola. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package encoder

import "github.com/pkg/errors"

// sink is the append-only byte buffer backing an Encoder. The zero value is
// empty and ready to use. It grows by doubling its capacity (plus whatever
// the current write still needs) rather than reallocating on every append,
// so that a function body built one opcode at a time doesn't pay for a new
// allocation per opcode.
type sink struct {
	buf []byte
}

func (s *sink) len() int { return len(s.buf) }

func (s *sink) bytes() []byte { return s.buf }

// putByte appends one byte.
func (s *sink) putByte(b byte) {
	s.extend(1)[0] = b
}

// extend grows the buffer by n bytes and returns that newly available
// region for the caller to fill in.
func (s *sink) extend(n int) []byte {
	offset := len(s.buf)
	size := offset + n
	if size < offset {
		panic(errors.New("encoder: buffer size overflowed"))
	}
	if size <= cap(s.buf) {
		s.buf = s.buf[:size]
		return s.buf[offset:]
	}
	s.grow(n)
	return s.buf[offset:]
}

func (s *sink) grow(addLen int) {
	newLen := len(s.buf) + addLen
	newCap := cap(s.buf)*2 + addLen
	if newCap < cap(s.buf) {
		newCap = newLen
	}
	newBuf := make([]byte, newLen, newCap)
	copy(newBuf, s.buf)
	s.buf = newBuf
}
