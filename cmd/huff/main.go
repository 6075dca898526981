// Copyright 2016, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

// Command huff compresses and decompresses files using Huffman coding.
//
// Example usage:
//
//	$ huff compress notes.txt out/notes
//	$ huff decompress out/notes.huff out/notes.hufftree notes.copy.txt
//	$ huff bench --files gen:text,notes.txt --sizes 1e4,1e5
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "huff:", err)
		os.Exit(1)
	}
}
