// Copyright 2015, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

package bench

import (
	"fmt"
	"io"
	"math"
	"sort"
	"strings"
)

var (
	testToEnum = map[string]int{
		"encRate": TestEncodeRate,
		"decRate": TestDecodeRate,
		"ratio":   TestCompressRatio,
	}
	enumToTest = map[int]string{
		TestEncodeRate:    "encRate",
		TestDecodeRate:    "decRate",
		TestCompressRatio: "ratio",
	}
)

// ParseTest returns the test identified by name: "encRate", "decRate",
// or "ratio".
func ParseTest(name string) (int, bool) {
	t, ok := testToEnum[name]
	return t, ok
}

// Codecs returns the names of all registered codecs in sorted order, except
// huff which always comes first since deltas are relative to the first codec.
func Codecs() []string {
	var cs []string
	seen := make(map[string]bool)
	for c := range Encoders {
		seen[c] = true
	}
	for c := range Decoders {
		seen[c] = true
	}
	for c := range seen {
		if c != "huff" {
			cs = append(cs, c)
		}
	}
	sort.Strings(cs)
	if seen["huff"] {
		cs = append([]string{"huff"}, cs...)
	}
	return cs
}

// Config selects what Run benchmarks.
type Config struct {
	Codecs []string
	Files  []string
	Tests  []int
	Levels []int
	Sizes  []int

	// Progress, if set, is called once before every individual benchmark
	// with the number of benchmarks done and the total.
	Progress func(done, total int)
}

// Run performs every selected test and writes a table of results for each
// to w.
func Run(w io.Writer, conf Config) {
	// Get lists of encoders and decoders that exist.
	var encs, decs []string
	for _, c := range conf.Codecs {
		if _, ok := Encoders[c]; ok {
			encs = append(encs, c)
		}
		if _, ok := Decoders[c]; ok {
			decs = append(decs, c)
		}
	}

	for _, t := range conf.Tests {
		var results [][]Result
		var names, codecs []string
		var title, suffix string

		// Check that we can actually do this bench.
		fmt.Fprintf(w, "BENCHMARK: %s\n", enumToTest[t])
		if len(encs) == 0 {
			fmt.Fprint(w, "\tSKIP: There are no encoders available.\n\n")
			continue
		}
		if len(decs) == 0 && t == TestDecodeRate {
			fmt.Fprint(w, "\tSKIP: There are no decoders available.\n\n")
			continue
		}

		switch t {
		case TestEncodeRate, TestCompressRatio:
			codecs = encs
		case TestDecodeRate:
			codecs = decs
		}
		var cnt int
		tick := func() {
			if conf.Progress != nil {
				conf.Progress(cnt, len(codecs)*len(conf.Files)*len(conf.Levels)*len(conf.Sizes))
			}
			cnt++
		}

		// Perform the bench. This may take some time.
		switch t {
		case TestEncodeRate:
			title, suffix = "MB/s", ""
			results, names = BenchmarkEncoderSuite(encs, conf.Files, conf.Levels, conf.Sizes, tick)
		case TestDecodeRate:
			title, suffix = "MB/s", ""
			results, names = BenchmarkDecoderSuite(decs, conf.Files, conf.Levels, conf.Sizes, tick)
		case TestCompressRatio:
			title, suffix = "ratio", "x"
			results, names = BenchmarkRatioSuite(encs, conf.Files, conf.Levels, conf.Sizes, tick)
		default:
			panic("unknown test")
		}

		FormatResults(w, results, names, codecs, title, suffix)
		fmt.Fprintln(w)
	}
}

// FormatResults writes the results as a table with one row per benchmark
// and a value and delta column per codec.
func FormatResults(w io.Writer, results [][]Result, names, codecs []string, title, suffix string) {
	// Allocate result table.
	cells := make([][]string, 1+len(names))
	for i := range cells {
		cells[i] = make([]string, 1+2*len(codecs))
	}

	// Label the first row.
	cells[0][0] = "benchmark"
	for i, c := range codecs {
		cells[0][1+2*i] = c + " " + title
		cells[0][2+2*i] = "delta"
	}

	// Insert all rows.
	for j, row := range results {
		cells[1+j][0] = names[j]
		for i, r := range row {
			if r.R != 0 && !math.IsNaN(r.R) && !math.IsInf(r.R, 0) {
				cells[1+j][1+2*i] = fmt.Sprintf("%.2f", r.R) + suffix
			}
			if r.D != 0 && !math.IsNaN(r.D) && !math.IsInf(r.D, 0) {
				cells[1+j][2+2*i] = fmt.Sprintf("%.2f", r.D) + "x"
			}
		}
	}

	// Compute the maximum lengths.
	maxLens := make([]int, 1+2*len(codecs))
	for _, row := range cells {
		for i, s := range row {
			if maxLens[i] < len(s) {
				maxLens[i] = len(s)
			}
		}
	}

	// Print padded versions of all cells.
	for _, row := range cells {
		var sb strings.Builder
		sb.WriteString("\t")
		for i, s := range row {
			switch {
			case i == 0: // Column 0
				sb.WriteString(s + strings.Repeat(" ", maxLens[i]-len(s)))
			case i%2 == 1: // Column 1, 3, 5, 7, ...
				sb.WriteString(strings.Repeat(" ", 6+maxLens[i]-len(s)) + s)
			case i%2 == 0: // Column 2, 4, 6, 8, ...
				sb.WriteString(strings.Repeat(" ", 2+maxLens[i]-len(s)) + s)
			}
		}
		fmt.Fprintln(w, sb.String())
	}
}
