// Copyright 2016, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

package huffman

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
)

// File extensions of the two artifacts written by WriteArtifacts.
const (
	PayloadExt = ".huff"
	TreeExt    = ".hufftree"
)

// ArtifactPaths returns the payload and metadata paths for the given prefix.
func ArtifactPaths(prefix string) (payload, tree string) {
	return prefix + PayloadExt, prefix + TreeExt
}

// WriteResult writes the payload of r to payload and its metadata to tree.
func WriteResult(payload, tree io.Writer, r *Result) error {
	if _, err := payload.Write(r.Payload); err != nil {
		return errIO(err, "write payload")
	}
	_, err := r.Metadata.WriteTo(tree)
	return err
}

// WriteArtifacts writes the payload and metadata of r next to each other,
// using the file names given by ArtifactPaths.
//
// Both artifacts are first written to temporary files. If any step fails,
// the temporary files are removed and no artifact is left without its
// counterpart.
func WriteArtifacts(prefix string, r *Result) (err error) {
	payloadPath, treePath := ArtifactPaths(prefix)
	dir := filepath.Dir(prefix)

	pf, err := os.CreateTemp(dir, filepath.Base(payloadPath)+".*.tmp")
	if err != nil {
		return errIO(err, "create payload artifact")
	}
	defer os.Remove(pf.Name())
	defer pf.Close()
	tf, err := os.CreateTemp(dir, filepath.Base(treePath)+".*.tmp")
	if err != nil {
		return errIO(err, "create tree artifact")
	}
	defer os.Remove(tf.Name())
	defer tf.Close()

	if err := WriteResult(pf, tf, r); err != nil {
		return err
	}
	if err := pf.Close(); err != nil {
		return errIO(err, "close payload artifact")
	}
	if err := tf.Close(); err != nil {
		return errIO(err, "close tree artifact")
	}

	if err := os.Rename(pf.Name(), payloadPath); err != nil {
		return errIO(err, "rename payload artifact")
	}
	if err := os.Rename(tf.Name(), treePath); err != nil {
		os.Remove(payloadPath)
		return errIO(err, "rename tree artifact")
	}
	return nil
}

// ReadArtifacts reads a payload artifact and its metadata artifact.
func ReadArtifacts(payloadPath, treePath string) ([]byte, Metadata, error) {
	tb, err := os.ReadFile(treePath)
	if err != nil {
		return nil, Metadata{}, errIO(err, "read tree artifact")
	}
	meta, err := ReadMetadata(bytes.NewReader(tb))
	if err != nil {
		return nil, Metadata{}, err
	}
	payload, err := os.ReadFile(payloadPath)
	if err != nil {
		return nil, Metadata{}, errIO(err, "read payload artifact")
	}
	return payload, meta, nil
}

// CompressFile compresses the file at inPath and writes both artifacts using
// the given prefix.
func (c *Compressor) CompressFile(inPath, prefix string) (*Result, error) {
	input, err := os.ReadFile(inPath)
	if err != nil {
		return nil, errIO(err, "read input")
	}
	r, err := c.Compress(input)
	if err != nil {
		return nil, err
	}
	if err := WriteArtifacts(prefix, r); err != nil {
		return nil, err
	}
	c.log.Info().Str("input", inPath).Str("prefix", prefix).
		Int64("original", r.OriginalSize).Int64("compressed", r.CompressedSize).Msg("wrote artifacts")
	return r, nil
}

// DecompressFile decompresses the given artifacts. If outPath is not empty,
// then the output is also written to that path.
func (c *Compressor) DecompressFile(payloadPath, treePath, outPath string) ([]byte, error) {
	payload, meta, err := ReadArtifacts(payloadPath, treePath)
	if err != nil {
		return nil, err
	}
	out, err := c.Decompress(payload, meta)
	if err != nil {
		return nil, err
	}
	if outPath != "" {
		if err := os.WriteFile(outPath, out, 0666); err != nil {
			return nil, errIO(err, "write output")
		}
		c.log.Info().Str("output", outPath).Int("bytes", len(out)).Msg("wrote output")
	}
	return out, nil
}
