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

// Package frame runs the per-granule reconstruction pipeline shared by
// both channels of an MPEG-1 Layer III frame: requantization, mid/side
// stereo, reorder or alias reduction, IMDCT with overlap-add, frequency
// inversion, and polyphase synthesis into PCM.
package frame

import (
	"math"

	"github.com/FlorisCreyf/mp3-decoder/internal/consts"
	"github.com/FlorisCreyf/mp3-decoder/internal/sideinfo"
)

// Requantize rescales quantized Huffman magnitudes back to their original
// scale, per sample, for one (granule, channel).
func Requantize(samples *[576]float32, si *sideinfo.SideInfo, header interface {
	SamplingFrequency() consts.SamplingFrequency
}, md interface {
	ScalefacL(sfb int) int
	ScalefacS(window, sfb int) int
}, gr, ch int) {
	sfreq := header.SamplingFrequency()
	longBand := consts.BandIndexLong(sfreq)
	shortBand := consts.BandIndexShort(sfreq)

	window := 0
	sfb := 0
	scalefacMult := 0.5 * (1.0 + float64(si.ScalefacScale[gr][ch]))

	shortAndSwitched := si.BlockType[gr][ch] == consts.BlockTypeShort && si.WinSwitchFlag[gr][ch] != 0

	for sample := 0; sample < 576; sample++ {
		var exp1, exp2 float64

		if shortAndSwitched {
			var scalefac float64
			if si.MixedBlockFlag[gr][ch] == 1 && sfb < 8 && window == 0 {
				if sample >= longBand[sfb] {
					sfb++
				}
				scalefac = float64(md.ScalefacL(sfb))
			} else {
				if sample >= window*192+shortBand[sfb+1] {
					if sfb == 12 {
						window++
						sfb = 0
					} else {
						sfb++
					}
				}
				scalefac = float64(md.ScalefacS(window, sfb))
			}
			exp1 = float64(si.GlobalGain[gr][ch]) - 210.0 - 8.0*float64(si.SubblockGain[gr][ch][window])
			exp2 = scalefacMult * scalefac
		} else {
			if sample >= longBand[sfb+1] {
				sfb++
			}
			exp1 = float64(si.GlobalGain[gr][ch]) - 210.0
			exp2 = scalefacMult * (float64(md.ScalefacL(sfb)) + float64(si.Preflag[gr][ch])*float64(consts.Pretab[sfb]))
		}

		v := float64(samples[sample])
		sign := 1.0
		if v < 0 {
			sign = -1.0
		}
		a := math.Pow(math.Abs(v), 4.0/3.0)
		b := math.Pow(2.0, exp1/4.0)
		c := math.Pow(2.0, -exp2)
		samples[sample] = float32(sign * a * b * c)
	}
}
