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

// Package huffman decodes the big-value and count1 (quadruples) regions of
// a granule's spectral samples: a table-select index picks one of 32
// codebooks, and each codeword is matched against 32 bits of lookahead
// scanned row by row, column by column, the way the reference decoder's
// unpack_samples does it.
package huffman

import (
	"github.com/FlorisCreyf/mp3-decoder/internal/consts"
)

// BigValue decodes one Huffman codeword from a big-value region codebook
// and returns the two magnitudes it encodes plus the number of bits the
// codeword occupied (before any linbits/sign extension). tableNum 0 is the
// always-zero codebook and never reaches here; callers special-case it.
func BigValue(buf []byte, bitPos int, tableNum int) (v0, v1 int, size int, err error) {
	t := tables[tableNum]
	if t == nil {
		return 0, 0, 0, consts.ErrTableMiss
	}
	lookahead := peek32(buf, bitPos)
	for row := 0; row < t.max; row++ {
		for col := 0; col < t.max; col++ {
			c := t.rows[row][col]
			if c.size == 0 {
				continue
			}
			if c.value == (lookahead >> (32 - c.size)) {
				return row, col, int(c.size), nil
			}
		}
	}
	return 0, 0, 0, consts.ErrTableMiss
}

// Linbits returns the codebook's linbit extension width and the sentinel
// row/col value ("max-1") that triggers it, per table_select semantics.
func Linbits(tableNum int) (linbits, sentinel int) {
	t := tables[tableNum]
	if t == nil {
		return 0, 0
	}
	return t.linbits, t.max - 1
}

// Quad decodes one count1-region codeword using the variable-length
// codebook (count1table_select == 0) and returns its 4-value vector and
// bit width.
func Quad(buf []byte, bitPos int) (values [4]int, size int, err error) {
	lookahead := peek32(buf, bitPos)
	for _, e := range quadTableA {
		if e.code == (lookahead >> (32 - e.size)) {
			return e.values, int(e.size), nil
		}
	}
	return [4]int{}, 0, consts.ErrTableMiss
}

// QuadFixed decodes one count1-region codeword using the fixed 4-bit
// unweighted codebook (count1table_select == 1): the reference decoder
// reads 4 raw bits and complements each one to form a magnitude vector
// (original_source/mp3.cpp's inverted 4-bit read).
func QuadFixed(nibble uint32) (values [4]int) {
	nibble = (^nibble) & 0xf
	values[0] = int((nibble >> 3) & 1)
	values[1] = int((nibble >> 2) & 1)
	values[2] = int((nibble >> 1) & 1)
	values[3] = int(nibble & 1)
	return values
}

func peek32(buf []byte, bitPos int) uint32 {
	byteIdx := bitPos / 8
	bitOff := bitPos % 8
	var window [5]byte
	for i := 0; i < 5; i++ {
		if byteIdx+i < len(buf) {
			window[i] = buf[byteIdx+i]
		}
	}
	v := uint64(window[0])<<32 | uint64(window[1])<<24 | uint64(window[2])<<16 |
		uint64(window[3])<<8 | uint64(window[4])
	v >>= uint(8 - bitOff)
	return uint32(v)
}
