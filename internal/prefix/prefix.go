// Copyright 2015, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

// Package prefix implements a Huffman prefix tree over a byte alphabet.
//
// The package covers each stage needed to derive a prefix code from a stream
// of symbols: counting frequencies, building the tree by greedy merging,
// assigning codes by walking the tree, and flattening the tree into a token
// sequence that can later be restored.
package prefix

import (
	"sort"

	"github.com/dsnet/huffman/internal/errors"
)

// Symbol is an atomic unit of the input alphabet.
type Symbol = byte

const (
	maxSyms = 256 // Number of distinct symbols in the alphabet

	// MaxCodeBits is the longest code that a Code can represent.
	MaxCodeBits = 64
)

func errorf(code int, msg string) error {
	return errors.Error{Code: code, Pkg: "prefix", Msg: msg}
}

// FrequencyTable maps every symbol present in some input to the number of
// times it occurs. The zero value is an empty table.
//
// A FrequencyTable is immutable once constructed.
type FrequencyTable struct {
	cnts  [maxSyms]uint64
	num   int    // Number of symbols with a non-zero count
	total uint64 // Sum of all counts
}

// CountFrequencies counts the occurrences of each symbol in data.
func CountFrequencies(data []byte) FrequencyTable {
	var ft FrequencyTable
	for _, c := range data {
		ft.cnts[c]++
	}
	ft.finish()
	return ft
}

// NewFrequencyTable constructs a table from explicit counts.
// Symbols with a zero count are omitted.
func NewFrequencyTable(cnts map[Symbol]uint64) FrequencyTable {
	var ft FrequencyTable
	for sym, n := range cnts {
		ft.cnts[sym] = n
	}
	ft.finish()
	return ft
}

func (ft *FrequencyTable) finish() {
	for _, n := range ft.cnts {
		if n > 0 {
			ft.num++
			ft.total += n
		}
	}
}

// Count reports the number of occurrences of sym.
func (ft *FrequencyTable) Count(sym Symbol) uint64 { return ft.cnts[sym] }

// Len reports the number of distinct symbols.
func (ft *FrequencyTable) Len() int { return ft.num }

// Total reports the sum of all counts, which is the length of the input.
func (ft *FrequencyTable) Total() uint64 { return ft.total }

// Symbols returns the distinct symbols in ascending order.
func (ft *FrequencyTable) Symbols() []Symbol {
	syms := make([]Symbol, 0, ft.num)
	for i, n := range ft.cnts {
		if n > 0 {
			syms = append(syms, Symbol(i))
		}
	}
	return syms
}

// ByCount returns the distinct symbols ordered from most to least frequent.
// Symbols with equal counts are ordered by ascending symbol value.
func (ft *FrequencyTable) ByCount() []Symbol {
	syms := ft.Symbols()
	sort.SliceStable(syms, func(i, j int) bool {
		return ft.cnts[syms[i]] > ft.cnts[syms[j]]
	})
	return syms
}
