// Copyright (c) 2018 Timo Savola. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package panerr implements the codec's fatal-failure discipline: every
// precondition violation (range, enum, structural, buffer) is raised as a
// panic carrying an error that implements ModuleError, and every public
// entry point that accepts untrusted input recovers exactly that class of
// panic and returns it as an error. Any other panic (a genuine programmer
// or runtime bug) is left to propagate.
package panerr

import (
	"fmt"
	"io"
	"runtime"

	"golang.org/x/xerrors"
	"import.name/pan"
)

// moduleError is a fatal, non-recoverable codec failure. Its presence
// (detected through the ModuleError method) marks an error as caused by a
// malformed or out-of-range value rather than a bug in this package.
type moduleError string

func (e moduleError) Error() string       { return string(e) }
func (e moduleError) ModuleError() string { return string(e) }

type wrappedError struct {
	text  string
	cause error
}

func (e *wrappedError) Error() string       { return e.text }
func (e *wrappedError) ModuleError() string { return e.text }
func (e *wrappedError) Unwrap() error       { return e.cause }

// ErrUnexpectedEOF is returned in place of io.ErrUnexpectedEOF so that
// callers can rely on the ModuleError marker regardless of which primitive
// read ran out of buffer.
var ErrUnexpectedEOF unexpectedEOF

type unexpectedEOF struct{}

func (unexpectedEOF) Error() string       { return io.ErrUnexpectedEOF.Error() }
func (unexpectedEOF) ModuleError() string { return io.ErrUnexpectedEOF.Error() }
func (unexpectedEOF) Unwrap() error       { return io.ErrUnexpectedEOF }

// Error constructs a fatal error with a plain message.
func Error(text string) error {
	return moduleError(text)
}

// Errorf constructs a fatal error with a formatted message, such as the
// `'value' must be a <type>.` messages of the numeric package's assertions.
func Errorf(format string, args ...interface{}) error {
	return moduleError(fmt.Sprintf(format, args...))
}

// Wrap attaches cause to a fatal error without losing either message.
func Wrap(cause error, text string) error {
	return &wrappedError{text, cause}
}

var zone = new(pan.Zone)

// Panic raises err as a panic within this package's recovery zone. Nil is a
// no-op.
func Panic(err error) {
	zone.Panic(err)
}

// Check panics via Panic if err is non-nil.
func Check(err error) {
	if err != nil {
		zone.Panic(err)
	}
}

// Must panics via Panic if err is non-nil, otherwise returns x. It lets a
// fallible call be used as an expression: panerr.Must(strconv.Atoi(s)).
func Must[T any](x T, err error) T {
	Check(err)
	return x
}

// Handle recovers a panic raised via Panic (or any panic carrying an error
// that is not a runtime.Error) into a returned error, normalizing EOF-class
// failures to ErrUnexpectedEOF. Any other panic value -- including a
// runtime.Error, which indicates a bug rather than a malformed module -- is
// re-panicked. Call this in a deferred function at every API boundary that
// must turn fatal failures into a Go error instead of crashing the caller.
func Handle(x interface{}) (err error) {
	if x == nil {
		return nil
	}

	err, ok := x.(error)
	if !ok {
		panic(x)
	}

	if _, ok := err.(runtime.Error); ok {
		panic(x)
	}

	if xerrors.Is(err, io.EOF) || xerrors.Is(err, io.ErrUnexpectedEOF) {
		return ErrUnexpectedEOF
	}

	return err
}
