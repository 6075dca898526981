// Copyright 2016, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

// Package errors implements functions to manipulate compression errors.
//
// In idiomatic Go, it is an anti-pattern to use panics as a form of error
// reporting in the API. Instead, the expected way to transmit errors is by
// returning an error value. Unfortunately, the checking of "err != nil" in
// tight loops commonly found in compression causes non-negligible performance
// degradation. While this may not be idiomatic, the internal packages of this
// repository rely on panics as a normal means to convey errors. In order to
// ensure that these panics do not leak across the public API, the public
// packages must recover from these panics and present an error value.
//
// The Panic and Recover functions in this package provide a safe way to
// recover from errors only generated from within this repository.
//
// Example usage:
//
//	func Foo() (err error) {
//		defer errors.Recover(&err)
//
//		if rand.Intn(2) == 0 {
//			// Unexpected panics will not be caught by Recover.
//			io.Closer(nil).Close()
//		} else {
//			// Errors thrown by Panic will be caught by Recover.
//			errors.Panic(errors.Error{Code: errors.Decoding, Pkg: "pkg", Msg: "whoopsie"})
//		}
//	}
package errors

import (
	stderrors "errors"
	"strings"
)

const (
	// Unknown indicates that there is no classification for this error.
	Unknown = iota

	// Internal indicates that this error is due to an internal bug.
	// Users should file a issue report if this type of error is encountered.
	Internal

	// InvalidState indicates that an operation was invoked before its
	// prerequisite step ran, or on empty or missing data.
	InvalidState

	// InvalidFormat indicates that a serialized tree or metadata artifact is
	// corrupted or truncated.
	InvalidFormat

	// Encoding indicates that a symbol could not be encoded because it has
	// no entry in the code table.
	Encoding

	// Decoding indicates that the bit stream ended in the middle of a code, or
	// that the padding is inconsistent with the payload.
	Decoding

	// IO indicates that reading or writing an artifact failed.
	// The underlying error is always available through Unwrap.
	IO
)

var codeMap = map[int]string{
	Unknown:       "unknown error",
	Internal:      "internal error",
	InvalidState:  "invalid state",
	InvalidFormat: "invalid format",
	Encoding:      "encoding error",
	Decoding:      "decoding error",
	IO:            "i/o error",
}

type Error struct {
	Code int    // The error type
	Pkg  string // Name of the package where the error originated
	Msg  string // Descriptive message about the error (optional)
	Err  error  // Underlying cause (optional)
}

func (e Error) Error() string {
	var ss []string
	for _, s := range []string{e.Pkg, codeMap[e.Code], e.Msg} {
		if s != "" {
			ss = append(ss, s)
		}
	}
	s := strings.Join(ss, ": ")
	if e.Err != nil {
		s += ": " + e.Err.Error()
	}
	return s
}

func (e Error) Unwrap() error { return e.Err }

func (e Error) CompressError()       {}
func (e Error) IsInternal() bool      { return e.Code == Internal }
func (e Error) IsInvalidState() bool  { return e.Code == InvalidState }
func (e Error) IsInvalidFormat() bool { return e.Code == InvalidFormat }
func (e Error) IsEncoding() bool      { return e.Code == Encoding }
func (e Error) IsDecoding() bool      { return e.Code == Decoding }
func (e Error) IsIO() bool            { return e.Code == IO }

// Code reports the classification of err, or Unknown if err did not
// originate from this repository.
func Code(err error) int {
	var cerr Error
	if stderrors.As(err, &cerr) {
		return cerr.Code
	}
	return Unknown
}

func IsInternal(err error) bool      { return isCode(err, Internal) }
func IsInvalidState(err error) bool  { return isCode(err, InvalidState) }
func IsInvalidFormat(err error) bool { return isCode(err, InvalidFormat) }
func IsEncoding(err error) bool      { return isCode(err, Encoding) }
func IsDecoding(err error) bool      { return isCode(err, Decoding) }
func IsIO(err error) bool            { return isCode(err, IO) }

func isCode(err error, code int) bool {
	var cerr Error
	return stderrors.As(err, &cerr) && cerr.Code == code
}

// errWrap is used by Panic and Recover to ensure that only errors raised by
// Panic are recovered by Recover.
type errWrap struct{ e *error }

func Recover(err *error) {
	switch ex := recover().(type) {
	case nil:
		// Do nothing.
	case errWrap:
		*err = *ex.e
	default:
		panic(ex)
	}
}

func Panic(err error) {
	panic(errWrap{&err})
}
