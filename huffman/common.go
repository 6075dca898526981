// Copyright 2015, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

// Package huffman implements a lossless compressor based on Huffman coding.
//
// Compressing an input produces two artifacts that must be kept together:
// the payload, which holds the bit-packed codes of every input byte, and the
// metadata, which holds the serialized code tree, the number of padding bits
// at the end of the payload, and a checksum of the payload.
package huffman

import (
	"fmt"

	"github.com/dsnet/huffman/internal/errors"
)

func errorf(code int, format string, args ...interface{}) error {
	return errors.Error{Code: code, Pkg: "huffman", Msg: fmt.Sprintf(format, args...)}
}

func errIO(err error, format string, args ...interface{}) error {
	return errors.Error{Code: errors.IO, Pkg: "huffman", Msg: fmt.Sprintf(format, args...), Err: err}
}

// IsInvalidState reports whether an operation was invoked without its
// prerequisite data, such as generating codes without a tree.
func IsInvalidState(err error) bool { return errors.IsInvalidState(err) }

// IsInvalidFormat reports whether a serialized tree or metadata artifact was
// found to be corrupted or truncated.
func IsInvalidFormat(err error) bool { return errors.IsInvalidFormat(err) }

// IsEncoding reports whether an input symbol had no code.
func IsEncoding(err error) bool { return errors.IsEncoding(err) }

// IsDecoding reports whether a payload did not match its metadata.
func IsDecoding(err error) bool { return errors.IsDecoding(err) }

// IsIO reports whether reading or writing an artifact failed.
// The underlying error can be retrieved with errors.Unwrap.
func IsIO(err error) bool { return errors.IsIO(err) }
