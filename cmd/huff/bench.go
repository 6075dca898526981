// Copyright 2016, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

package main

import (
	"fmt"
	"strings"
	"time"

	strconv "github.com/dsnet/golib/unitconv"
	"github.com/spf13/cobra"

	"github.com/dsnet/huffman/internal/tool/bench"
)

const (
	defaultTests  = "ratio"
	defaultFiles  = "gen:text,gen:random,gen:repeats,gen:zeros"
	defaultLevels = "6"
	defaultSizes  = "1e4,1e5,1e6"
)

func newBenchCmd() *cobra.Command {
	var codecs, tests, paths, files, levels, sizes string
	cmd := &cobra.Command{
		Use:   "bench",
		Short: "Compare huff against other compressors",
		Long: "Compare the ratio and speed of huff against other compressors.\n" +
			"Deltas are relative to the first codec listed. Files may be paths or\n" +
			"generated inputs: gen:text, gen:random, gen:repeats, or gen:zeros.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			conf, err := parseBenchConfig(codecs, tests, files, levels, sizes)
			if err != nil {
				return err
			}
			if paths != "" {
				bench.Paths = splitList(paths)
			}
			conf.Progress = func(done, total int) {
				pct := 100.0 * float64(done) / float64(total)
				fmt.Fprintf(cmd.ErrOrStderr(), "\t[%6.2f%%] %d of %d\r", pct, done, total)
			}

			ts := time.Now()
			bench.Run(cmd.OutOrStdout(), conf)
			fmt.Fprintf(cmd.OutOrStdout(), "RUNTIME: %v\n", time.Since(ts))
			return nil
		},
	}
	cmd.Flags().StringVar(&codecs, "codecs", strings.Join(bench.Codecs(), ","), "List of codecs to benchmark")
	cmd.Flags().StringVar(&tests, "tests", defaultTests, "List of tests: encRate,decRate,ratio")
	cmd.Flags().StringVar(&paths, "paths", "", "List of paths to search for input files")
	cmd.Flags().StringVar(&files, "files", defaultFiles, "List of input files to benchmark")
	cmd.Flags().StringVar(&levels, "levels", defaultLevels, "List of compression levels to benchmark")
	cmd.Flags().StringVar(&sizes, "sizes", defaultSizes, "List of input sizes to benchmark")
	return cmd
}

func splitList(s string) []string {
	var ss []string
	for _, s := range strings.Split(s, ",") {
		if s = strings.TrimSpace(s); s != "" {
			ss = append(ss, s)
		}
	}
	return ss
}

func parseBenchConfig(codecs, tests, files, levels, sizes string) (bench.Config, error) {
	conf := bench.Config{
		Codecs: splitList(codecs),
		Files:  splitList(files),
	}
	for _, s := range splitList(tests) {
		t, ok := bench.ParseTest(s)
		if !ok {
			return conf, fmt.Errorf("invalid test %q", s)
		}
		conf.Tests = append(conf.Tests, t)
	}
	for _, s := range splitList(levels) {
		lvl, err := strconv.ParsePrefix(s, strconv.AutoParse)
		if err != nil {
			return conf, fmt.Errorf("invalid level %q", s)
		}
		conf.Levels = append(conf.Levels, int(lvl))
	}
	for _, s := range splitList(sizes) {
		n, err := strconv.ParsePrefix(s, strconv.AutoParse)
		if err != nil || n <= 0 {
			return conf, fmt.Errorf("invalid size %q", s)
		}
		conf.Sizes = append(conf.Sizes, int(n))
	}
	return conf, nil
}
