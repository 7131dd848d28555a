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

// Package sideinfo decodes the fixed-size side-information block that
// follows every MPEG-1 Layer III frame header (and optional CRC): the
// bit-reservoir pointer, scale-factor selection flags, and the per-granule,
// per-channel geometry (block type, region boundaries, table selectors)
// needed to unpack main data.
package sideinfo

import (
	"github.com/FlorisCreyf/mp3-decoder/internal/bits"
	"github.com/FlorisCreyf/mp3-decoder/internal/consts"
)

// A SideInfo is MPEG1 Layer 3 Side Information. Indices are [gr][ch]
// unless noted otherwise.
type SideInfo struct {
	MainDataBegin    int       // 9 bits
	PrivateBits      int       // 3 bits stereo, 5 bits mono
	Scfsi            [2][4]int // 1 bit each, indexed [ch][band]
	Part2_3Length    [2][2]int // 12 bits
	BigValues        [2][2]int // 9 bits
	GlobalGain       [2][2]int // 8 bits
	ScalefacCompress [2][2]int // 4 bits
	WinSwitchFlag    [2][2]int // 1 bit

	BlockType      [2][2]consts.BlockType // 2 bits
	MixedBlockFlag [2][2]int              // 1 bit
	TableSelect    [2][2][3]int           // 5 bits
	SubblockGain   [2][2][3]int           // 3 bits

	Region0Count [2][2]int // 4 bits (implicit when window-switched)
	Region1Count [2][2]int // 3 bits (implicit when window-switched)

	Preflag           [2][2]int // 1 bit
	ScalefacScale     [2][2]int // 1 bit
	Count1TableSelect [2][2]int // 1 bit
}

// Read parses a side-information block already isolated into buf (17 bytes
// mono, 32 bytes stereo, per frameheader.FrameHeader.SideInfoSize) for a
// header describing nch channels.
func Read(buf []byte, nch int) *SideInfo {
	s := bits.New(buf)
	si := &SideInfo{}

	si.MainDataBegin = s.Bits(9)
	if nch == 1 {
		si.PrivateBits = s.Bits(5)
	} else {
		si.PrivateBits = s.Bits(3)
	}

	for ch := 0; ch < nch; ch++ {
		for band := 0; band < 4; band++ {
			si.Scfsi[ch][band] = s.Bits(1)
		}
	}

	for gr := 0; gr < consts.NumGranules; gr++ {
		for ch := 0; ch < nch; ch++ {
			si.Part2_3Length[gr][ch] = s.Bits(12)
			si.BigValues[gr][ch] = s.Bits(9)
			si.GlobalGain[gr][ch] = s.Bits(8)
			si.ScalefacCompress[gr][ch] = s.Bits(4)
			si.WinSwitchFlag[gr][ch] = s.Bits(1)

			if si.WinSwitchFlag[gr][ch] == 1 {
				si.BlockType[gr][ch] = consts.BlockType(s.Bits(2))
				si.MixedBlockFlag[gr][ch] = s.Bits(1)
				for region := 0; region < 2; region++ {
					si.TableSelect[gr][ch][region] = s.Bits(5)
				}
				for window := 0; window < 3; window++ {
					si.SubblockGain[gr][ch][window] = s.Bits(3)
				}
				if si.BlockType[gr][ch] == consts.BlockTypeShort && si.MixedBlockFlag[gr][ch] == 0 {
					si.Region0Count[gr][ch] = 8
				} else {
					si.Region0Count[gr][ch] = 7
				}
				si.Region1Count[gr][ch] = 20 - si.Region0Count[gr][ch]
			} else {
				for region := 0; region < 3; region++ {
					si.TableSelect[gr][ch][region] = s.Bits(5)
				}
				si.Region0Count[gr][ch] = s.Bits(4)
				si.Region1Count[gr][ch] = s.Bits(3)
				si.BlockType[gr][ch] = consts.BlockTypeReserved
			}

			si.Preflag[gr][ch] = s.Bits(1)
			si.ScalefacScale[gr][ch] = s.Bits(1)
			si.Count1TableSelect[gr][ch] = s.Bits(1)
		}
	}
	return si
}
