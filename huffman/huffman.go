// Copyright 2015, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

package huffman

import (
	"github.com/rs/zerolog"

	"github.com/dsnet/huffman/internal/errors"
	"github.com/dsnet/huffman/internal/prefix"
)

// CompressorConfig configures a Compressor.
type CompressorConfig struct {
	// Logger receives a debug event for every stage of compression and
	// decompression. If nil, nothing is logged.
	Logger *zerolog.Logger

	_ struct{} // Blank field to prevent unkeyed struct literals
}

// Compressor runs the compression and decompression pipelines.
//
// A Compressor holds no state between calls, so it may be reused for any
// number of sequential operations.
type Compressor struct {
	log zerolog.Logger
}

// NewCompressor creates a new Compressor. If conf is nil, then default
// options are used.
func NewCompressor(conf *CompressorConfig) *Compressor {
	c := &Compressor{log: zerolog.Nop()}
	if conf != nil && conf.Logger != nil {
		c.log = conf.Logger.With().Str("pkg", "huffman").Logger()
	}
	return c
}

// Result holds both artifacts of a compressed input and their sizes.
type Result struct {
	Payload  []byte
	Metadata Metadata

	OriginalSize   int64 // Length of the input in bytes
	CompressedSize int64 // Length of the payload in bytes
}

// Ratio reports the space saved by compression as a percentage of the
// original size. It is zero for an empty input.
func (r *Result) Ratio() float64 {
	if r.OriginalSize == 0 {
		return 0
	}
	return (1 - float64(r.CompressedSize)/float64(r.OriginalSize)) * 100
}

// Compress counts the frequencies of input, builds the code tree, assigns
// a code to every symbol, and packs the input into a payload.
//
// An empty input produces an empty payload and an empty tree.
// On failure, no part of the result is returned.
func (c *Compressor) Compress(input []byte) (*Result, error) {
	ft := prefix.CountFrequencies(input)
	c.log.Debug().Int("symbols", ft.Len()).Uint64("total", ft.Total()).Msg("counted frequencies")
	if ft.Len() == 0 {
		return &Result{Metadata: Metadata{Checksum: checksum(nil)}}, nil
	}

	tree, err := prefix.BuildTree(ft)
	if err != nil {
		return nil, err
	}
	if e := c.log.Debug(); e.Enabled() {
		e.Int("nodes", len(tree.Nodes)).Int("depth", tree.Depth()).Uint64("weight", tree.Weight()).Msg("built tree")
	}

	codes, err := prefix.GenerateCodes(tree)
	if err != nil {
		return nil, err
	}

	p, err := Encode(input, codes)
	if err != nil {
		return nil, err
	}
	c.log.Debug().Int64("bits", p.Bits()).Uint8("padding", p.Padding).Int("bytes", len(p.Data)).Msg("encoded payload")

	return &Result{
		Payload: p.Data,
		Metadata: Metadata{
			Tree:     prefix.Serialize(tree),
			Padding:  p.Padding,
			Checksum: checksum(p.Data),
		},
		OriginalSize:   int64(len(input)),
		CompressedSize: int64(len(p.Data)),
	}, nil
}

// Decompress restores the tree from meta and decodes the payload with it.
func (c *Compressor) Decompress(payload []byte, meta Metadata) ([]byte, error) {
	tree, rem, err := prefix.Deserialize(meta.Tree)
	if err != nil {
		return nil, err
	}
	if len(rem) > 0 {
		return nil, errorf(errors.InvalidFormat, "%d trailing tokens after tree", len(rem))
	}
	if tree == nil {
		if len(payload) > 0 || meta.Padding > 0 {
			return nil, errorf(errors.InvalidFormat, "payload of %d bytes has no tree", len(payload))
		}
		c.log.Debug().Msg("decoded empty payload")
		return []byte{}, nil
	}
	if sum := checksum(payload); sum != meta.Checksum {
		return nil, errorf(errors.Decoding, "payload checksum mismatch: got %08x, want %08x", sum, meta.Checksum)
	}
	c.log.Debug().Int("leaves", tree.Len()).Msg("restored tree")

	out, err := Decode(Payload{Data: payload, Padding: meta.Padding}, tree)
	if err != nil {
		return nil, err
	}
	c.log.Debug().Int("bytes", len(out)).Msg("decoded payload")
	return out, nil
}

var defaultCompressor = NewCompressor(nil)

// Compress compresses input using a Compressor with default options.
func Compress(input []byte) (*Result, error) {
	return defaultCompressor.Compress(input)
}

// Decompress decompresses payload using a Compressor with default options.
func Decompress(payload []byte, meta Metadata) ([]byte, error) {
	return defaultCompressor.Decompress(payload, meta)
}
