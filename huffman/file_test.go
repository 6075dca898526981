// Copyright 2016, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

package huffman

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dsnet/huffman/internal/testutil"
)

func TestArtifactPaths(t *testing.T) {
	p, tr := ArtifactPaths(filepath.Join("out", "text"))
	assert.Equal(t, filepath.Join("out", "text.huff"), p)
	assert.Equal(t, filepath.Join("out", "text.hufftree"), tr)
}

func TestCompressFile(t *testing.T) {
	dir := t.TempDir()
	input := testutil.NewRand(0).Text(1 << 12)
	inPath := filepath.Join(dir, "input.txt")
	require.NoError(t, os.WriteFile(inPath, input, 0666))

	c := NewCompressor(nil)
	prefix := filepath.Join(dir, "input")
	res, err := c.CompressFile(inPath, prefix)
	require.NoError(t, err)

	payloadPath, treePath := ArtifactPaths(prefix)
	payload, err := os.ReadFile(payloadPath)
	require.NoError(t, err)
	assert.Equal(t, res.Payload, payload)

	// No temporary files are left behind.
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 3)

	outPath := filepath.Join(dir, "output.txt")
	out, err := c.DecompressFile(payloadPath, treePath, outPath)
	require.NoError(t, err)
	assert.Equal(t, input, out)
	onDisk, err := os.ReadFile(outPath)
	require.NoError(t, err)
	assert.Equal(t, input, onDisk)

	out, err = c.DecompressFile(payloadPath, treePath, "")
	require.NoError(t, err)
	assert.Equal(t, input, out)
}

func TestReadArtifacts(t *testing.T) {
	dir := t.TempDir()
	res, err := Compress([]byte(testSentence))
	require.NoError(t, err)
	prefix := filepath.Join(dir, "sentence")
	require.NoError(t, WriteArtifacts(prefix, res))
	payloadPath, treePath := ArtifactPaths(prefix)

	payload, meta, err := ReadArtifacts(payloadPath, treePath)
	require.NoError(t, err)
	assert.Equal(t, res.Payload, payload)
	assert.Equal(t, res.Metadata, meta)

	_, _, err = ReadArtifacts(payloadPath, filepath.Join(dir, "missing.hufftree"))
	assert.True(t, IsIO(err), "unexpected error: %v", err)
	assert.ErrorIs(t, err, os.ErrNotExist)

	_, _, err = ReadArtifacts(filepath.Join(dir, "missing.huff"), treePath)
	assert.True(t, IsIO(err), "unexpected error: %v", err)
	assert.ErrorIs(t, err, os.ErrNotExist)

	// A payload artifact is not a valid tree artifact.
	_, _, err = ReadArtifacts(payloadPath, payloadPath)
	assert.True(t, IsInvalidFormat(err), "unexpected error: %v", err)
}

func TestFileErrors(t *testing.T) {
	dir := t.TempDir()
	c := NewCompressor(nil)

	_, err := c.CompressFile(filepath.Join(dir, "missing.txt"), filepath.Join(dir, "out"))
	assert.True(t, IsIO(err), "unexpected error: %v", err)
	assert.ErrorIs(t, err, os.ErrNotExist)

	res, err := Compress([]byte(testSentence))
	require.NoError(t, err)
	err = WriteArtifacts(filepath.Join(dir, "no", "such", "dir"), res)
	assert.True(t, IsIO(err), "unexpected error: %v", err)

	var tree bytes.Buffer
	err = WriteResult(&testutil.BuggyWriter{W: io.Discard, N: 1, Err: io.ErrShortWrite}, &tree, res)
	assert.True(t, IsIO(err), "unexpected error: %v", err)
	assert.ErrorIs(t, err, io.ErrShortWrite)
	assert.Zero(t, tree.Len())
}
