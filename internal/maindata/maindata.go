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

// Package maindata assembles the bit-reservoir buffer for a frame (Read)
// and unpacks the scale factors and Huffman-coded spectral samples out of
// it (Unpack).
package maindata

import (
	"github.com/FlorisCreyf/mp3-decoder/internal/bits"
	"github.com/FlorisCreyf/mp3-decoder/internal/consts"
	"github.com/FlorisCreyf/mp3-decoder/internal/frameheader"
	"github.com/FlorisCreyf/mp3-decoder/internal/huffman"
	"github.com/FlorisCreyf/mp3-decoder/internal/sideinfo"
)

// A MainData is MPEG1 Layer 3 main data: the unpacked scale factors and
// spectral samples for both granules and up to two channels of one frame.
type MainData struct {
	ScalefacL [2][2][22]int    // [gr][ch][sfb], long-block scale factors
	ScalefacS [2][2][13][3]int // [gr][ch][sfb][window], short-block scale factors
	Is        [2][2][576]float32
}

// Unpack decodes scale factors and samples for every (granule, channel)
// pair described by si, consuming bits from m starting at its current
// position.
func Unpack(m *bits.Bits, header frameheader.FrameHeader, si *sideinfo.SideInfo) (*MainData, error) {
	nch := header.NumberOfChannels()
	md := &MainData{}

	for gr := 0; gr < consts.NumGranules; gr++ {
		for ch := 0; ch < nch; ch++ {
			part2Start := m.Pos()
			readScalefac(m, md, si, gr, ch)
			if err := readHuffmanRegion(m, header, si, md, part2Start, gr, ch); err != nil {
				return nil, err
			}
		}
	}
	return md, nil
}

func readScalefac(m *bits.Bits, md *MainData, si *sideinfo.SideInfo, gr, ch int) {
	slen1 := consts.ScalefacSizes[si.ScalefacCompress[gr][ch]][0]
	slen2 := consts.ScalefacSizes[si.ScalefacCompress[gr][ch]][1]

	if si.WinSwitchFlag[gr][ch] != 0 && si.BlockType[gr][ch] == consts.BlockTypeShort {
		if si.MixedBlockFlag[gr][ch] != 0 {
			for sfb := 0; sfb < 8; sfb++ {
				md.ScalefacL[gr][ch][sfb] = m.Bits(slen1)
			}
			for sfb := 3; sfb < 12; sfb++ {
				nbits := slen2
				if sfb < 6 {
					nbits = slen1
				}
				for win := 0; win < 3; win++ {
					md.ScalefacS[gr][ch][sfb][win] = m.Bits(nbits)
				}
			}
		} else {
			for sfb := 0; sfb < 12; sfb++ {
				nbits := slen2
				if sfb < 6 {
					nbits = slen1
				}
				for win := 0; win < 3; win++ {
					md.ScalefacS[gr][ch][sfb][win] = m.Bits(nbits)
				}
			}
		}
		return
	}

	// Long block. Granule 0 always reads fresh; granule 1 may reuse
	// granule 0's factors per band group when scfsi selects it.
	type group struct {
		lo, hi int
		nbits  int
	}
	groups := []group{{0, 6, slen1}, {6, 11, slen1}, {11, 16, slen2}, {16, 21, slen2}}
	for i, g := range groups {
		if gr == 0 || si.Scfsi[ch][i] == 0 {
			for sfb := g.lo; sfb < g.hi; sfb++ {
				md.ScalefacL[gr][ch][sfb] = m.Bits(g.nbits)
			}
		} else {
			for sfb := g.lo; sfb < g.hi; sfb++ {
				md.ScalefacL[gr][ch][sfb] = md.ScalefacL[0][ch][sfb]
			}
		}
	}
}

func readHuffmanRegion(m *bits.Bits, header frameheader.FrameHeader, si *sideinfo.SideInfo, md *MainData, part2Start, gr, ch int) error {
	if si.Part2_3Length[gr][ch] == 0 {
		return nil
	}
	bitPosEnd := part2Start + si.Part2_3Length[gr][ch] - 1

	var region1Start, region2Start int
	if si.WinSwitchFlag[gr][ch] == 1 && si.BlockType[gr][ch] == consts.BlockTypeShort {
		region1Start = 36
		region2Start = consts.SamplesPerGr
	} else {
		l := consts.BandIndexLong(header.SamplingFrequency())
		i := si.Region0Count[gr][ch] + 1
		j := si.Region0Count[gr][ch] + si.Region1Count[gr][ch] + 2
		if i < 0 || j < 0 || j >= len(l) {
			return &consts.StructuralError{Reason: "region0_count/region1_count select a scale-factor band beyond the table"}
		}
		region1Start = l[i]
		region2Start = l[j]
	}

	isPos := 0
	for ; isPos < si.BigValues[gr][ch]*2; isPos += 2 {
		var tableNum int
		switch {
		case isPos < region1Start:
			tableNum = si.TableSelect[gr][ch][0]
		case isPos < region2Start:
			tableNum = si.TableSelect[gr][ch][1]
		default:
			tableNum = si.TableSelect[gr][ch][2]
		}
		if tableNum == 0 {
			md.Is[gr][ch][isPos] = 0
			md.Is[gr][ch][isPos+1] = 0
			continue
		}
		row, col, size, err := huffman.BigValue(m.Vec, m.Pos(), tableNum)
		if err != nil {
			return err
		}
		m.SetPos(m.Pos() + size)
		values := [2]int{row, col}
		linbits, sentinel := huffman.Linbits(tableNum)
		for i, v := range values {
			lin := 0
			if linbits != 0 && v == sentinel {
				lin = m.Bits(linbits)
			}
			signed := v + lin
			if v > 0 && m.Bits(1) != 0 {
				signed = -signed
			}
			md.Is[gr][ch][isPos+i] = float32(signed)
		}
	}

	tableSelect := si.Count1TableSelect[gr][ch]
	for isPos <= 572 && m.Pos() <= bitPosEnd {
		var values [4]int
		if tableSelect == 1 {
			nibble := m.Bits(4)
			values = huffman.QuadFixed(uint32(nibble))
		} else {
			var size int
			var err error
			values, size, err = huffman.Quad(m.Vec, m.Pos())
			if err != nil {
				return err
			}
			m.SetPos(m.Pos() + size)
		}
		for i := 0; i < 4; i++ {
			if values[i] > 0 && m.Bits(1) != 0 {
				values[i] = -values[i]
			}
			if isPos >= consts.SamplesPerGr {
				break
			}
			md.Is[gr][ch][isPos] = float32(values[i])
			isPos++
		}
	}

	for ; isPos < consts.SamplesPerGr; isPos++ {
		md.Is[gr][ch][isPos] = 0
	}
	return nil
}
