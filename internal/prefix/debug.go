// Copyright 2015, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

package prefix

import (
	"fmt"
	"strconv"
	"strings"
)

func lenBase10(n interface{}) int { return len(fmt.Sprintf("%d", n)) }
func padBase10(n interface{}, m int) string {
	s := fmt.Sprintf("%d", n)
	if pad := m - len(s); pad > 0 {
		s = strings.Repeat(" ", pad) + s
	}
	return s
}

func padRight(s string, m int) string {
	if pad := m - len(s); pad > 0 {
		s += strings.Repeat(" ", pad)
	}
	return s
}

// quoteSym renders a symbol so that control and non-ASCII bytes remain
// readable in a terminal.
func quoteSym(sym Symbol) string {
	return strconv.QuoteRuneToASCII(rune(sym))
}

// Dump renders the codes in ct from the most to the least frequent symbol in
// ft, along with a histogram of the counts. Every symbol of ft must be in ct.
func (ct *CodeTable) Dump(ft *FrequencyTable) string {
	var maxLen, maxSym int
	var maxCnt uint64
	syms := ft.ByCount()
	for _, sym := range syms {
		c, _ := ct.Lookup(sym)
		if maxLen < int(c.Len) {
			maxLen = int(c.Len)
		}
		if maxSym < len(quoteSym(sym)) {
			maxSym = len(quoteSym(sym))
		}
		if maxCnt < ft.Count(sym) {
			maxCnt = ft.Count(sym)
		}
	}
	maxCntStr := lenBase10(maxCnt)

	var ss []string
	ss = append(ss, "{")
	for _, sym := range syms {
		c, _ := ct.Lookup(sym)
		cnt := int(32*float64(ft.Count(sym))/float64(maxCnt) + 0.5)
		ss = append(ss, fmt.Sprintf("\t%s  %s  %s |%s",
			padRight(quoteSym(sym), maxSym),
			padRight(c.String(), maxLen),
			padBase10(ft.Count(sym), maxCntStr),
			strings.Repeat("#", cnt),
		))
	}
	ss = append(ss, "}")
	return strings.Join(ss, "\n")
}
