// Copyright 2015, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

package huffman

import (
	"bytes"
	"encoding/binary"
	"hash/crc32"
	"io"

	"github.com/dsnet/huffman/internal/bits"
	"github.com/dsnet/huffman/internal/errors"
	"github.com/dsnet/huffman/internal/prefix"
)

// The metadata artifact has the following layout, where multi-byte integers
// are big-endian and the tree bits are packed most-significant-bit first:
//
//	magic    [4]byte  "HUFT"
//	version  uint8    1
//	padding  uint8    0..7
//	checksum uint32   CRC-32 (IEEE) of the payload
//	ntokens  uvarint  Number of tokens in the serialized tree
//	tree     bits     Per token, a 1-bit leaf flag followed by an
//	                  8-bit symbol if the flag is set, then zero bits up to
//	                  a byte boundary
const (
	metaMagic   = "HUFT"
	metaVersion = 1
	metaHdrSize = len(metaMagic) + 1 + 1 + 4

	maxTokens = 511 // Largest tree over a byte alphabet
)

// Metadata is the side information needed to decompress a payload.
type Metadata struct {
	Tree     prefix.Tokens // Pre-order serialized tree
	Padding  uint8         // Number of padding bits at the end of the payload
	Checksum uint32        // CRC-32 of the payload
}

func checksum(payload []byte) uint32 {
	return crc32.ChecksumIEEE(payload)
}

// MarshalBinary encodes the metadata into its artifact form.
func (m Metadata) MarshalBinary() ([]byte, error) {
	if m.Padding > 7 {
		return nil, errorf(errors.InvalidFormat, "padding of %d bits exceeds 7", m.Padding)
	}
	if len(m.Tree) > maxTokens {
		return nil, errorf(errors.InvalidFormat, "tree of %d tokens exceeds %d", len(m.Tree), maxTokens)
	}

	buf := make([]byte, metaHdrSize, metaHdrSize+binary.MaxVarintLen64+(9*len(m.Tree)+7)/8)
	copy(buf, metaMagic)
	buf[4] = metaVersion
	buf[5] = m.Padding
	binary.BigEndian.PutUint32(buf[6:], m.Checksum)
	buf = binary.AppendUvarint(buf, uint64(len(m.Tree)))

	bw := bits.NewWriter(nil)
	for _, tok := range m.Tree {
		bw.WriteBit(tok.Leaf)
		if tok.Leaf {
			bw.WriteBits(uint64(tok.Sym), 8)
		}
	}
	bw.Flush()
	return append(buf, bw.Bytes()...), nil
}

// UnmarshalBinary decodes the artifact form of the metadata.
// Only the framing is validated here; the tree structure is validated when
// the tokens are deserialized.
func (m *Metadata) UnmarshalBinary(b []byte) (err error) {
	defer errors.Recover(&err)

	if len(b) < metaHdrSize {
		return errorf(errors.InvalidFormat, "truncated header: got %d bytes, want %d", len(b), metaHdrSize)
	}
	if string(b[:4]) != metaMagic {
		return errorf(errors.InvalidFormat, "invalid magic %q", b[:4])
	}
	if b[4] != metaVersion {
		return errorf(errors.InvalidFormat, "unsupported version %d", b[4])
	}
	pads := b[5]
	if pads > 7 {
		return errorf(errors.InvalidFormat, "padding of %d bits exceeds 7", pads)
	}
	sum := binary.BigEndian.Uint32(b[6:])

	ntoks, n := binary.Uvarint(b[metaHdrSize:])
	if n <= 0 || n != len(binary.AppendUvarint(nil, ntoks)) {
		return errorf(errors.InvalidFormat, "invalid token count")
	}
	if ntoks > maxTokens {
		return errorf(errors.InvalidFormat, "tree of %d tokens exceeds %d", ntoks, maxTokens)
	}

	br := bits.NewReader(b[metaHdrSize+n:], -1)
	var toks prefix.Tokens
	if ntoks > 0 {
		toks = make(prefix.Tokens, ntoks)
	}
	for i := range toks {
		if readBits(br, 1) == 1 {
			toks[i] = prefix.Token{Leaf: true, Sym: prefix.Symbol(readBits(br, 8))}
		}
	}
	if br.Remaining() >= 8 {
		return errorf(errors.InvalidFormat, "%d trailing bytes", br.Remaining()/8)
	}
	if readBits(br, uint(br.Remaining())) != 0 {
		return errorf(errors.InvalidFormat, "tree padding bits are not zero")
	}

	*m = Metadata{Tree: toks, Padding: pads, Checksum: sum}
	return nil
}

// readBits reads n bits of the serialized tree.
// This function panics if the tree is truncated.
func readBits(br *bits.Reader, n uint) uint64 {
	v, err := br.ReadBits(n)
	if err != nil {
		errors.Panic(errorf(errors.InvalidFormat, "truncated tree at bit %d", br.BitsRead()))
	}
	return v
}

// WriteTo writes the artifact form of the metadata to w.
func (m Metadata) WriteTo(w io.Writer) (int64, error) {
	b, err := m.MarshalBinary()
	if err != nil {
		return 0, err
	}
	n, err := w.Write(b)
	if err != nil {
		return int64(n), errIO(err, "write metadata")
	}
	return int64(n), nil
}

// ReadMetadata reads and decodes a metadata artifact from r.
func ReadMetadata(r io.Reader) (Metadata, error) {
	var bb bytes.Buffer
	if _, err := bb.ReadFrom(r); err != nil {
		return Metadata{}, errIO(err, "read metadata")
	}
	var m Metadata
	if err := m.UnmarshalBinary(bb.Bytes()); err != nil {
		return Metadata{}, err
	}
	return m, nil
}
