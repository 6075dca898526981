// Copyright 2015, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

package bench

import (
	"bufio"
	"bytes"
	"encoding/binary"
	"io"

	"github.com/klauspost/compress/flate"
	"github.com/klauspost/compress/huff0"
	"github.com/klauspost/compress/zstd"
	"github.com/ulikunitz/xz"

	"github.com/dsnet/huffman/huffman"
)

func init() {
	RegisterEncoder("huff",
		func(w io.Writer, lvl int) io.WriteCloser {
			return &huffWriter{w: w}
		})
	RegisterDecoder("huff",
		func(r io.Reader) io.ReadCloser {
			return newHuffReader(r)
		})

	RegisterEncoder("flate",
		func(w io.Writer, lvl int) io.WriteCloser {
			zw, err := flate.NewWriter(w, lvl)
			if err != nil {
				panic(err)
			}
			return zw
		})
	RegisterDecoder("flate",
		func(r io.Reader) io.ReadCloser {
			return flate.NewReader(r)
		})

	RegisterEncoder("zstd",
		func(w io.Writer, lvl int) io.WriteCloser {
			zw, err := zstd.NewWriter(w, zstd.WithEncoderLevel(zstd.EncoderLevelFromZstd(lvl)))
			if err != nil {
				panic(err)
			}
			return zw
		})
	RegisterDecoder("zstd",
		func(r io.Reader) io.ReadCloser {
			zr, err := zstd.NewReader(r)
			if err != nil {
				panic(err)
			}
			return zr.IOReadCloser()
		})

	// The huff0 block format does not record the decoded length of a block,
	// so it is only measured as an encoder.
	RegisterEncoder("huff0",
		func(w io.Writer, lvl int) io.WriteCloser {
			return &huff0Writer{w: w}
		})

	RegisterEncoder("xz",
		func(w io.Writer, lvl int) io.WriteCloser {
			zw, err := xz.NewWriter(w)
			if err != nil {
				panic(err)
			}
			return zw
		})
	RegisterDecoder("xz",
		func(r io.Reader) io.ReadCloser {
			zr, err := xz.NewReader(bufio.NewReader(r))
			if err != nil {
				return errReadCloser{err}
			}
			return io.NopCloser(zr)
		})
}

// huffWriter buffers all input and compresses it on Close, since the code
// tree depends on the frequencies of the entire input.
//
// The output is a container holding the length of the metadata artifact as
// a uvarint, followed by the metadata artifact and then the payload.
type huffWriter struct {
	w   io.Writer
	buf bytes.Buffer
}

func (hw *huffWriter) Write(b []byte) (int, error) { return hw.buf.Write(b) }

func (hw *huffWriter) Close() error {
	res, err := huffman.Compress(hw.buf.Bytes())
	if err != nil {
		return err
	}
	meta, err := res.Metadata.MarshalBinary()
	if err != nil {
		return err
	}
	hdr := binary.AppendUvarint(nil, uint64(len(meta)))
	for _, b := range [][]byte{hdr, meta, res.Payload} {
		if _, err := hw.w.Write(b); err != nil {
			return err
		}
	}
	return nil
}

func newHuffReader(r io.Reader) io.ReadCloser {
	b, err := io.ReadAll(r)
	if err != nil {
		return errReadCloser{err}
	}
	n, k := binary.Uvarint(b)
	if k <= 0 || uint64(len(b)-k) < n {
		return errReadCloser{io.ErrUnexpectedEOF}
	}
	b = b[k:]
	var meta huffman.Metadata
	if err := meta.UnmarshalBinary(b[:n]); err != nil {
		return errReadCloser{err}
	}
	out, err := huffman.Decompress(b[n:], meta)
	if err != nil {
		return errReadCloser{err}
	}
	return io.NopCloser(bytes.NewReader(out))
}

type errReadCloser struct{ err error }

func (r errReadCloser) Read([]byte) (int, error) { return 0, r.err }
func (r errReadCloser) Close() error             { return r.err }

const huff0BlockSize = 1 << 16

// huff0Writer compresses its input as a series of independent blocks, each
// prefixed by its compressed length as a uvarint. Blocks that huff0 cannot
// compress are stored raw, and single-symbol blocks store that symbol alone.
type huff0Writer struct {
	w   io.Writer
	buf bytes.Buffer
	s   huff0.Scratch
}

func (hw *huff0Writer) Write(b []byte) (int, error) { return hw.buf.Write(b) }

func (hw *huff0Writer) Close() error {
	in := hw.buf.Bytes()
	for len(in) > 0 {
		blk := in[:min(len(in), huff0BlockSize)]
		in = in[len(blk):]

		out, _, err := huff0.Compress1X(blk, &hw.s)
		switch err {
		case nil:
		case huff0.ErrIncompressible:
			out = blk
		case huff0.ErrUseRLE:
			out = blk[:1]
		default:
			return err
		}
		if _, err := hw.w.Write(binary.AppendUvarint(nil, uint64(len(out)))); err != nil {
			return err
		}
		if _, err := hw.w.Write(out); err != nil {
			return err
		}
	}
	return nil
}
