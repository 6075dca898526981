// Copyright 2015, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

package bench

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestGetName(t *testing.T) {
	var vectors = []struct {
		file  string
		level int
		size  int
		want  string
	}{
		{"twain.txt", 6, 1e4, "twain.txt:6:1e4"},
		{"/tmp/data/twain.txt", 1, 1e6, "twain.txt:1:1e6"},
	}
	for i, v := range vectors {
		if got := getName(v.file, v.level, v.size); got != v.want {
			t.Errorf("test %d, getName() = %q, want %q", i, got, v.want)
		}
	}
}

func TestLoadInput(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "abc.txt"), []byte("abc"), 0666); err != nil {
		t.Fatal(err)
	}
	defer func(p []string) { Paths = p }(Paths)
	Paths = []string{filepath.Join(dir, "missing"), dir}

	b, err := LoadInput("abc.txt", 7)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if string(b) != "abcabca" {
		t.Errorf("LoadInput() = %q, want %q", b, "abcabca")
	}

	b, err = LoadInput("gen:zeros", -1)
	if err != nil || len(b) != defaultGenSize {
		t.Errorf("LoadInput(gen:zeros) = (%d bytes, %v)", len(b), err)
	}
	if _, err := LoadInput("gen:bogus", 10); err == nil {
		t.Errorf("unexpected success for unknown generator")
	}
	if _, err := LoadInput("missing.txt", 10); err == nil {
		t.Errorf("unexpected success for missing file")
	}
}

func TestCodecsOrder(t *testing.T) {
	cs := Codecs()
	if len(cs) == 0 || cs[0] != "huff" {
		t.Fatalf("Codecs() = %v, want huff first", cs)
	}
	for _, c := range []string{"flate", "huff0", "xz", "zstd"} {
		found := false
		for _, c2 := range cs {
			found = found || c == c2
		}
		if !found {
			t.Errorf("Codecs() = %v, missing %s", cs, c)
		}
	}
}

func TestRatioSuite(t *testing.T) {
	codecs := []string{"huff", "flate"}
	var ticks int
	results, names := BenchmarkRatioSuite(codecs, []string{"gen:text", "gen:random"}, []int{6}, []int{1e4}, func() { ticks++ })
	if ticks != 4 {
		t.Errorf("got %d ticks, want 4", ticks)
	}
	if len(results) != 2 || len(names) != 2 {
		t.Fatalf("got %d results and %d names, want 2", len(results), len(names))
	}
	if names[0] != "gen:text:6:1e4" {
		t.Errorf("names[0] = %q, want %q", names[0], "gen:text:6:1e4")
	}
	if r := results[0][0]; r.R <= 1 || r.D != 1 {
		t.Errorf("huffman on text: got %+v, want ratio above 1 and delta of 1", r)
	}
}

func TestFormatResults(t *testing.T) {
	var bb bytes.Buffer
	results := [][]Result{{{R: 1.5, D: 1}, {R: 3, D: 2}}}
	FormatResults(&bb, results, []string{"gen:text:6:1e4"}, []string{"huff", "flate"}, "ratio", "x")

	lines := strings.Split(strings.TrimSuffix(bb.String(), "\n"), "\n")
	if len(lines) != 2 {
		t.Fatalf("got %d lines, want 2:\n%s", len(lines), bb.String())
	}
	for _, s := range []string{"benchmark", "huff ratio", "flate ratio", "delta"} {
		if !strings.Contains(lines[0], s) {
			t.Errorf("header %q does not contain %q", lines[0], s)
		}
	}
	for _, s := range []string{"gen:text:6:1e4", "1.50x", "3.00x", "2.00x"} {
		if !strings.Contains(lines[1], s) {
			t.Errorf("row %q does not contain %q", lines[1], s)
		}
	}
}

func TestRunSkip(t *testing.T) {
	var bb bytes.Buffer
	Run(&bb, Config{Codecs: []string{"bogus"}, Tests: []int{TestCompressRatio}})
	if !strings.Contains(bb.String(), "SKIP") {
		t.Errorf("Run() output %q does not report a skip", bb.String())
	}
}
