// Copyright 2016, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dsnet/huffman/internal/testutil"
	"github.com/dsnet/huffman/internal/tool/bench"
)

const testSentence = "este es un texto de prueba para el algoritmo de huffman"

// run executes the root command with args and returns its standard output
// and standard error.
func run(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	cmd := newRootCmd()
	cmd.SetArgs(args)
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

func TestCompressDecompress(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "sentence.txt")
	require.NoError(t, os.WriteFile(input, []byte(testSentence), 0666))

	stdout, _, err := run(t, "compress", input)
	require.NoError(t, err)
	assert.Contains(t, stdout, "original size:    55 bytes")
	assert.Contains(t, stdout, "space saved:")
	assert.Contains(t, stdout, "elapsed time:")

	payload := filepath.Join(dir, "sentence.huff")
	tree := filepath.Join(dir, "sentence.hufftree")
	assert.FileExists(t, payload)
	assert.FileExists(t, tree)

	output := filepath.Join(dir, "copy.txt")
	stdout, _, err = run(t, "decompress", payload, tree, output)
	require.NoError(t, err)
	assert.Contains(t, stdout, "decompressed size: 55 bytes")
	assert.Contains(t, stdout, testSentence)

	got, err := os.ReadFile(output)
	require.NoError(t, err)
	assert.Equal(t, testSentence, string(got))
}

func TestCompressShowCodes(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "aab.txt")
	require.NoError(t, os.WriteFile(input, []byte("aab"), 0666))

	stdout, _, err := run(t, "compress", "--show-codes", input, filepath.Join(dir, "out"))
	require.NoError(t, err)
	assert.Contains(t, stdout, "'a'")
	assert.Contains(t, stdout, "'b'")
	assert.FileExists(t, filepath.Join(dir, "out.huff"))
}

func TestDecompressPreview(t *testing.T) {
	dir := t.TempDir()
	text := testutil.NewRand(0).Text(1 << 10)
	input := filepath.Join(dir, "text.txt")
	require.NoError(t, os.WriteFile(input, text, 0666))

	_, _, err := run(t, "compress", input)
	require.NoError(t, err)
	stdout, _, err := run(t, "decompress", filepath.Join(dir, "text.huff"), filepath.Join(dir, "text.hufftree"))
	require.NoError(t, err)
	assert.Contains(t, stdout, string(text[:previewSize])+"...")
	assert.NotContains(t, stdout, "wrote")
}

func TestCommandErrors(t *testing.T) {
	dir := t.TempDir()

	_, _, err := run(t, "compress", filepath.Join(dir, "missing.txt"))
	assert.Error(t, err)

	_, _, err = run(t, "decompress", filepath.Join(dir, "missing.huff"), filepath.Join(dir, "missing.hufftree"))
	assert.Error(t, err)

	_, _, err = run(t, "decompress", "only-one-arg")
	assert.Error(t, err)

	_, _, err = run(t, "--log-level", "loud", "version")
	assert.Error(t, err)
}

func TestLogging(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "sentence.txt")
	require.NoError(t, os.WriteFile(input, []byte(testSentence), 0666))

	_, stderr, err := run(t, "--log-level", "debug", "compress", input)
	require.NoError(t, err)
	assert.Contains(t, stderr, "built tree")
	assert.Contains(t, stderr, "wrote artifacts")

	_, stderr, err = run(t, "compress", input)
	require.NoError(t, err)
	assert.Empty(t, stderr)
}

func TestVersion(t *testing.T) {
	stdout, _, err := run(t, "version")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(stdout, "huff version "+version), "unexpected output: %q", stdout)
}

func TestParseBenchConfig(t *testing.T) {
	conf, err := parseBenchConfig("huff, flate", "ratio,encRate", "gen:text,a.txt", "1,6", "1e4,1e5")
	require.NoError(t, err)
	assert.Equal(t, []string{"huff", "flate"}, conf.Codecs)
	assert.Equal(t, []string{"gen:text", "a.txt"}, conf.Files)
	assert.Equal(t, []int{bench.TestCompressRatio, bench.TestEncodeRate}, conf.Tests)
	assert.Equal(t, []int{1, 6}, conf.Levels)
	assert.Equal(t, 10000, conf.Sizes[0])

	_, err = parseBenchConfig("huff", "speed", "gen:text", "6", "1e4")
	assert.Error(t, err)
	_, err = parseBenchConfig("huff", "ratio", "gen:text", "six", "1e4")
	assert.Error(t, err)
	_, err = parseBenchConfig("huff", "ratio", "gen:text", "6", "huge")
	assert.Error(t, err)
}

func TestBenchRatio(t *testing.T) {
	stdout, _, err := run(t, "bench", "--codecs", "huff,flate", "--files", "gen:text", "--sizes", "1e4")
	require.NoError(t, err)
	assert.Contains(t, stdout, "BENCHMARK: ratio")
	assert.Contains(t, stdout, "huff ratio")
	assert.Contains(t, stdout, "gen:text:6:1e4")
	assert.Contains(t, stdout, "RUNTIME:")
}
