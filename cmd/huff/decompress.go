// Copyright 2016, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/dsnet/huffman/huffman"
)

const previewSize = 100

func newDecompressCmd(opts *options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "decompress <payload> <tree> [output]",
		Short: "Decompress a file",
		Long: "Decompress a payload using its tree artifact. The output is written\n" +
			"to the given path if any, and a preview is always printed.",
		Args: cobra.RangeArgs(2, 3),
		RunE: func(cmd *cobra.Command, args []string) error {
			var out string
			if len(args) > 2 {
				out = args[2]
			}

			c := huffman.NewCompressor(&huffman.CompressorConfig{Logger: &opts.log})
			start := time.Now()
			b, err := c.DecompressFile(args[0], args[1], out)
			if err != nil {
				return err
			}
			elapsed := time.Since(start)

			w := cmd.OutOrStdout()
			fmt.Fprintf(w, "decompressed size: %s\n", formatSize(int64(len(b))))
			fmt.Fprintf(w, "elapsed time:      %v\n", elapsed)
			if out != "" {
				fmt.Fprintf(w, "wrote %s\n", out)
			}
			preview, more := b, ""
			if len(preview) > previewSize {
				preview, more = preview[:previewSize], "..."
			}
			fmt.Fprintf(w, "preview:\n%s%s\n", preview, more)
			return nil
		},
	}
	return cmd
}
