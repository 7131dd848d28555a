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

// Package imdct computes the windowed inverse modified discrete cosine
// transform used to turn one granule's 32 blocks of 18 frequency-domain
// samples into 576 time-domain samples, with the cross-block overlap-add
// history a caller must retain per channel.
package imdct

import "math"

const numBlocks = 32
const blockWidth = 18

// sineWindows holds the four block-type windows (0: long/sine, 1:
// start-block, 2: short, applied per 12-point sub-block, 3: end-block),
// precomputed once at package init.
var sineWindows [4][36]float64

func init() {
	for i := 0; i < 36; i++ {
		sineWindows[0][i] = math.Sin(math.Pi / 36.0 * (float64(i) + 0.5))
	}
	i := 0
	for ; i < 18; i++ {
		sineWindows[1][i] = math.Sin(math.Pi / 36.0 * (float64(i) + 0.5))
	}
	for ; i < 24; i++ {
		sineWindows[1][i] = 1.0
	}
	for ; i < 30; i++ {
		sineWindows[1][i] = math.Sin(math.Pi / 12.0 * (float64(i) - 18.0 + 0.5))
	}
	for ; i < 36; i++ {
		sineWindows[1][i] = 0.0
	}
	for i = 0; i < 12; i++ {
		sineWindows[2][i] = math.Sin(math.Pi / 12.0 * (float64(i) + 0.5))
	}
	for i = 0; i < 6; i++ {
		sineWindows[3][i] = 0.0
	}
	for ; i < 12; i++ {
		sineWindows[3][i] = math.Sin(math.Pi / 12.0 * (float64(i) - 6.0 + 0.5))
	}
	for ; i < 18; i++ {
		sineWindows[3][i] = 1.0
	}
	for ; i < 36; i++ {
		sineWindows[3][i] = math.Sin(math.Pi / 36.0 * (float64(i) + 0.5))
	}
}

// Overlap is one channel's carried tails: for each of the 32 blocks, the
// last 18 samples of the previous granule's windowed IMDCT output for that
// block, added into the same block's first 18 output samples.
type Overlap struct {
	prev [numBlocks][blockWidth]float64
}

// Apply runs the IMDCT and overlap-add over in (576 frequency-domain
// samples for one granule/channel), writing 576 time-domain samples to
// out. blockType selects the window (0-3); when it is 2 every block goes
// through the three 12-point sub-transforms. windowSwitching does not
// change the transform.
func (o *Overlap) Apply(in *[576]float32, out *[576]float32, blockType int, windowSwitching bool) {
	for block := 0; block < numBlocks; block++ {
		var sampleBlock [36]float64
		if blockType == 2 {
			sampleBlock = shortBlockTransform(in, block)
		} else {
			sampleBlock = longBlockTransform(in, block, blockType)
		}

		for i := 0; i < blockWidth; i++ {
			out[blockWidth*block+i] = float32(sampleBlock[i] + o.prev[block][i])
			o.prev[block][i] = sampleBlock[18+i]
		}
	}
}

// longBlockTransform computes the 36-point IMDCT (12-point when blockType
// is 2) over one 18-sample input block and applies the block-type window.
func longBlockTransform(in *[576]float32, block, blockType int) [36]float64 {
	n := 36
	if blockType == 2 {
		n = 12
	}
	var out [36]float64
	for i := 0; i < n; i++ {
		var xi float64
		for k := 0; k < n/2; k++ {
			s := float64(in[blockWidth*block+k])
			xi += s * math.Cos(math.Pi/float64(2*n)*float64(2*i+1+n/2)*float64(2*k+1))
		}
		out[i] = xi * sineWindows[blockType][i]
	}
	return out
}

// shortBlockTransform runs three independent 12-point IMDCTs over the
// three interleaved 6-coefficient windows packed into this block's 18
// input samples (the reorder step groups them window-major), applies the
// short window to each, and overlap-adds the three 12-sample results into
// a 36-sample block using the schedule: 6 zeros, sub0[0:6), sub0[6:12) +
// sub1[0:6), sub1[6:12) + sub2[0:6), sub2[6:12), 6 zeros.
func shortBlockTransform(in *[576]float32, block int) [36]float64 {
	const n = 12
	var sub [3][12]float64
	for w := 0; w < 3; w++ {
		for i := 0; i < n; i++ {
			var xi float64
			for k := 0; k < n/2; k++ {
				s := float64(in[blockWidth*block+w*6+k])
				xi += s * math.Cos(math.Pi/float64(2*n)*float64(2*i+1+n/2)*float64(2*k+1))
			}
			sub[w][i] = xi * sineWindows[2][i]
		}
	}

	var out [36]float64
	for i := 0; i < 6; i++ {
		out[i] = 0
		out[6+i] = sub[0][i]
		out[12+i] = sub[0][6+i] + sub[1][i]
		out[18+i] = sub[1][6+i] + sub[2][i]
		out[24+i] = sub[2][6+i]
		out[30+i] = 0
	}
	return out
}
