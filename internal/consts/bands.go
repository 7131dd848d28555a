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

package consts

// ScalefacSizes maps scalefac_compress (0-15) to (slen1, slen2), the bit
// widths of the low-band and high-band scale factors.
var ScalefacSizes = [16][2]int{
	{0, 0}, {0, 1}, {0, 2}, {0, 3}, {3, 0}, {1, 1}, {1, 2}, {1, 3},
	{2, 1}, {2, 2}, {2, 3}, {3, 1}, {3, 2}, {3, 3}, {4, 2}, {4, 3},
}

// Pretab holds the fixed preemphasis addend applied to long-block scale
// factors when a granule's preflag bit is set.
var Pretab = [22]int{
	0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 1, 1, 1, 1, 2, 2, 3, 3, 3, 2, 0, 0,
}

// bandIndexLong holds, per sampling frequency, the cumulative
// scale-factor-band boundaries for long blocks (23 entries, band[22]=576).
var bandIndexLong = map[SamplingFrequency][]int{
	SamplingFrequency44100: {0, 4, 8, 12, 16, 20, 24, 30, 36, 44, 52, 62, 74, 90, 110, 134, 162, 196, 238, 288, 342, 418, 576},
	SamplingFrequency48000: {0, 4, 8, 12, 16, 20, 24, 30, 36, 42, 50, 60, 72, 88, 106, 128, 156, 190, 230, 276, 330, 384, 576},
	SamplingFrequency32000: {0, 4, 8, 12, 16, 20, 24, 30, 36, 44, 54, 66, 82, 102, 126, 156, 194, 240, 296, 364, 448, 550, 576},
}

// bandIndexShort holds the cumulative scale-factor-band boundaries for one
// short window (14 entries, band[13]=192, the width of a single window's
// third of the spectrum).
var bandIndexShort = map[SamplingFrequency][]int{
	SamplingFrequency44100: {0, 4, 8, 12, 16, 22, 30, 40, 52, 66, 84, 106, 136, 192},
	SamplingFrequency48000: {0, 4, 8, 12, 16, 22, 28, 38, 50, 64, 80, 100, 126, 192},
	SamplingFrequency32000: {0, 4, 8, 12, 16, 22, 30, 42, 58, 78, 104, 138, 180, 192},
}

// BandIndexLong returns the long-block scale-factor-band boundary table
// for the given sampling frequency.
func BandIndexLong(sf SamplingFrequency) []int {
	return bandIndexLong[sf]
}

// BandIndexShort returns the short-block (single window) scale-factor-band
// boundary table for the given sampling frequency.
func BandIndexShort(sf SamplingFrequency) []int {
	return bandIndexShort[sf]
}
