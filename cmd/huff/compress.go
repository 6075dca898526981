// Copyright 2016, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/dsnet/huffman/huffman"
	"github.com/dsnet/huffman/internal/prefix"
)

func newCompressCmd(opts *options) *cobra.Command {
	var showCodes bool
	cmd := &cobra.Command{
		Use:   "compress <input> [prefix]",
		Short: "Compress a file",
		Long: "Compress a file into <prefix>.huff and <prefix>.hufftree.\n" +
			"The prefix defaults to the input path without its extension.",
		Args: cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			in := args[0]
			pfx := strings.TrimSuffix(in, filepath.Ext(in))
			if len(args) > 1 {
				pfx = args[1]
			}

			c := huffman.NewCompressor(&huffman.CompressorConfig{Logger: &opts.log})
			start := time.Now()
			res, err := c.CompressFile(in, pfx)
			if err != nil {
				return err
			}
			elapsed := time.Since(start)

			payloadPath, treePath := huffman.ArtifactPaths(pfx)
			w := cmd.OutOrStdout()
			fmt.Fprintf(w, "original size:    %s\n", formatSize(res.OriginalSize))
			fmt.Fprintf(w, "compressed size:  %s\n", formatSize(res.CompressedSize))
			fmt.Fprintf(w, "space saved:      %.2f%%\n", res.Ratio())
			fmt.Fprintf(w, "elapsed time:     %v\n", elapsed)
			fmt.Fprintf(w, "wrote %s and %s\n", payloadPath, treePath)

			if showCodes && res.OriginalSize > 0 {
				dump, err := dumpCodes(in)
				if err != nil {
					return err
				}
				fmt.Fprintln(w, dump)
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&showCodes, "show-codes", false, "Print the code of every symbol")
	return cmd
}

// dumpCodes renders the code table derived from the contents of file.
func dumpCodes(file string) (string, error) {
	input, err := os.ReadFile(file)
	if err != nil {
		return "", err
	}
	ft := prefix.CountFrequencies(input)
	tree, err := prefix.BuildTree(ft)
	if err != nil {
		return "", err
	}
	codes, err := prefix.GenerateCodes(tree)
	if err != nil {
		return "", err
	}
	return codes.Dump(&ft), nil
}
