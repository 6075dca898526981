// Copyright 2015, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

package prefix

import (
	"container/heap"
	"fmt"

	"github.com/dsnet/huffman/internal/errors"
)

// Kind distinguishes the two variants of Node.
type Kind uint8

const (
	Leaf     Kind = iota + 1 // Holds a symbol
	Internal                 // Holds exactly two children
)

// Node is a single vertex of a Tree. Which fields are meaningful depends on
// Kind: a Leaf carries Sym, while an Internal node carries Left and Right,
// which are indexes into Tree.Nodes.
type Node struct {
	Kind   Kind
	Sym    Symbol
	Weight uint64
	Left   int32
	Right  int32
}

// Tree is a strict binary prefix tree stored as an arena of nodes.
// Every Internal node owns exactly two children and each child has exactly
// one parent. Trees should only be obtained from BuildTree or Deserialize.
type Tree struct {
	Nodes []Node
	Root  int32
}

// Len reports the number of leaves.
func (t *Tree) Len() int {
	return (len(t.Nodes) + 1) / 2
}

// Weight reports the weight of the root node.
func (t *Tree) Weight() uint64 {
	return t.Nodes[t.Root].Weight
}

// Depth reports the length of the longest root-to-leaf path.
// A root-only tree has a depth of zero.
func (t *Tree) Depth() int {
	type item struct {
		idx   int32
		depth int
	}
	var maxDepth int
	stack := []item{{t.Root, 0}}
	for len(stack) > 0 {
		it := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		switch n := &t.Nodes[it.idx]; n.Kind {
		case Leaf:
			if it.depth > maxDepth {
				maxDepth = it.depth
			}
		case Internal:
			stack = append(stack, item{n.Left, it.depth + 1}, item{n.Right, it.depth + 1})
		}
	}
	return maxDepth
}

// heapNode is an entry in the priority queue used by BuildTree.
// Entries are ordered by weight, and then by the order in which they were
// pushed so that equal weights always resolve the same way.
type heapNode struct {
	idx    int32
	weight uint64
	seq    uint32
}

type nodeHeap []heapNode

func (h nodeHeap) Len() int { return len(h) }
func (h nodeHeap) Less(i, j int) bool {
	if h[i].weight != h[j].weight {
		return h[i].weight < h[j].weight
	}
	return h[i].seq < h[j].seq
}
func (h nodeHeap) Swap(i, j int)       { h[i], h[j] = h[j], h[i] }
func (h *nodeHeap) Push(x interface{}) { *h = append(*h, x.(heapNode)) }
func (h *nodeHeap) Pop() interface{} {
	old := *h
	n := old[len(old)-1]
	*h = old[:len(old)-1]
	return n
}

// BuildTree constructs a Huffman tree minimizing the weighted path length of
// the symbols in ft.
//
// Leaves are queued in ascending symbol order. The two lowest nodes are merged
// repeatedly, with the first extracted becoming the left child and the second
// the right child. Ties in weight are broken by queue order, where a merged
// node is ordered after every node queued before it.
func BuildTree(ft FrequencyTable) (*Tree, error) {
	if ft.Len() == 0 {
		return nil, errorf(errors.InvalidState, "no frequencies available")
	}

	t := &Tree{Nodes: make([]Node, 0, 2*ft.Len()-1)}
	h := make(nodeHeap, 0, ft.Len())
	var seq uint32
	for _, sym := range ft.Symbols() {
		w := ft.Count(sym)
		h = append(h, heapNode{idx: int32(len(t.Nodes)), weight: w, seq: seq})
		t.Nodes = append(t.Nodes, Node{Kind: Leaf, Sym: sym, Weight: w})
		seq++
	}
	heap.Init(&h)

	for h.Len() > 1 {
		left := heap.Pop(&h).(heapNode)
		right := heap.Pop(&h).(heapNode)
		w := left.weight + right.weight
		if w < left.weight {
			return nil, errorf(errors.InvalidState, fmt.Sprintf("total weight overflows: %d + %d", left.weight, right.weight))
		}
		heap.Push(&h, heapNode{idx: int32(len(t.Nodes)), weight: w, seq: seq})
		t.Nodes = append(t.Nodes, Node{Kind: Internal, Weight: w, Left: left.idx, Right: right.idx})
		seq++
	}
	t.Root = h[0].idx
	return t, nil
}
