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

package frame

import (
	"github.com/FlorisCreyf/mp3-decoder/internal/consts"
	"github.com/FlorisCreyf/mp3-decoder/internal/frameheader"
	"github.com/FlorisCreyf/mp3-decoder/internal/imdct"
	"github.com/FlorisCreyf/mp3-decoder/internal/maindata"
	"github.com/FlorisCreyf/mp3-decoder/internal/sideinfo"
)

// State is the per-channel history a decoder must carry across frames:
// the IMDCT overlap tail and the polyphase synthesis FIFO. A stereo
// stream needs two.
type State struct {
	Overlap imdct.Overlap
	Synth   SynthesisFIFO
}

// scalefacView adapts one (granule, channel) slice of a MainData into the
// accessor interface Requantize expects, already bound to gr so the
// long-block branch reads the correct granule's scale factors instead of
// always granule 0.
type scalefacView struct {
	md *maindata.MainData
	gr int
	ch int
}

func (v scalefacView) ScalefacL(sfb int) int {
	return v.md.ScalefacL[v.gr][v.ch][sfb]
}

func (v scalefacView) ScalefacS(window, sfb int) int {
	return v.md.ScalefacS[v.gr][v.ch][sfb][window]
}

// isMSStereo reports whether this frame's channel mode and mode-extension
// bits select mid/side joint stereo. Only meaningful for Layer III: bit 5
// of the mode-extension field (the high bit of FrameHeader.ModeExtension)
// enables MS stereo, per original_source/mp3.cpp's set_mode_extension.
func isMSStereo(header frameheader.FrameHeader) bool {
	return header.Mode() == consts.ModeJointStereo && header.ModeExtension()&0x2 != 0
}

// DecodeGranule runs the full reconstruction pipeline (requantize, mid/side
// stereo, reorder or alias reduction, IMDCT with overlap-add, frequency
// inversion, polyphase synthesis) for one granule of every channel in the
// frame, and returns each channel's 576 PCM samples. states must have one
// entry per channel and is updated in place with this granule's overlap
// and FIFO history.
func DecodeGranule(md *maindata.MainData, si *sideinfo.SideInfo, header frameheader.FrameHeader, gr int, states []*State) [][576]float32 {
	nch := header.NumberOfChannels()
	samples := make([][576]float32, nch)

	for ch := 0; ch < nch; ch++ {
		samples[ch] = md.Is[gr][ch]
		Requantize(&samples[ch], si, header, scalefacView{md, gr, ch}, gr, ch)
	}

	if nch == 2 && isMSStereo(header) {
		MSStereo(&samples[0], &samples[1])
	}

	out := make([][576]float32, nch)
	for ch := 0; ch < nch; ch++ {
		blockType := si.BlockType[gr][ch]
		mixed := si.WinSwitchFlag[gr][ch] != 0 && blockType == consts.BlockTypeShort && si.MixedBlockFlag[gr][ch] != 0

		switch {
		case blockType == consts.BlockTypeShort:
			Reorder(&samples[ch], mixed)
			if mixed {
				AliasReduction(&samples[ch], true)
			}
		default:
			AliasReduction(&samples[ch], false)
		}

		windowSwitching := si.WinSwitchFlag[gr][ch] != 0
		states[ch].Overlap.Apply(&samples[ch], &samples[ch], int(blockType), windowSwitching)

		FrequencyInversion(&samples[ch])
		states[ch].Synth.Synthesize(&samples[ch], &out[ch])
	}

	return out
}

// Interleave packs per-channel PCM sample slices (as produced by repeated
// calls to DecodeGranule across both granules) into a single interleaved
// stream, matching the output order hajimehoshi-go-mp3's Read expects:
// left, right, left, right, ...
func Interleave(channels [][576]float32) []float32 {
	if len(channels) == 1 {
		out := make([]float32, len(channels[0]))
		copy(out, channels[0][:])
		return out
	}
	n := len(channels[0])
	out := make([]float32, n*len(channels))
	for i := 0; i < n; i++ {
		for ch := range channels {
			out[i*len(channels)+ch] = channels[ch][i]
		}
	}
	return out
}
