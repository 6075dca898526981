// Copyright 2016, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

package main

import (
	"fmt"
	"io"
	"os"
	"time"

	strconv "github.com/dsnet/golib/unitconv"
	"github.com/mattn/go-isatty"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

// options holds the persistent flags shared by every subcommand.
type options struct {
	logLevel string
	noColor  bool

	log zerolog.Logger
}

func newRootCmd() *cobra.Command {
	opts := &options{log: zerolog.Nop()}
	cmd := &cobra.Command{
		Use:   "huff",
		Short: "Huffman file compressor",
		Long: "huff compresses a file into a payload of bit-packed Huffman codes and a\n" +
			"separate tree artifact, and restores the original file from the two.",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			lvl, err := zerolog.ParseLevel(opts.logLevel)
			if err != nil {
				return fmt.Errorf("invalid log level %q", opts.logLevel)
			}
			opts.log = newLogger(cmd.ErrOrStderr(), lvl, opts.noColor)
			return nil
		},
	}
	cmd.PersistentFlags().StringVar(&opts.logLevel, "log-level", "warn", "Log level: debug|info|warn|error")
	cmd.PersistentFlags().BoolVar(&opts.noColor, "no-color", false, "Disable colored log output")

	cmd.AddCommand(
		newCompressCmd(opts),
		newDecompressCmd(opts),
		newBenchCmd(),
		newVersionCmd(),
	)
	return cmd
}

// newLogger creates a console logger on w. Colors are only used when w is
// a terminal.
func newLogger(w io.Writer, lvl zerolog.Level, noColor bool) zerolog.Logger {
	if f, ok := w.(*os.File); !ok || !(isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())) {
		noColor = true
	}
	cw := zerolog.ConsoleWriter{Out: w, NoColor: noColor, TimeFormat: time.TimeOnly}
	return zerolog.New(cw).Level(lvl).With().Timestamp().Logger()
}

// formatSize formats n as a byte count, followed by a short form with a
// binary prefix for larger sizes.
func formatSize(n int64) string {
	if n < 1024 {
		return fmt.Sprintf("%d bytes", n)
	}
	return fmt.Sprintf("%d bytes (%sB)", n, strconv.FormatPrefix(float64(n), strconv.Base1024, 2))
}
