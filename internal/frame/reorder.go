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

// Reorder permutes short-block samples from (subband, window, coefficient)
// scanning order into (window, subband, coefficient) order, the layout the
// IMDCT's three-sub-transform short-block path expects. When mixed is
// true the first two subbands (36 samples, the long-block-coded low
// frequencies of a mixed block) are left untouched and only the remaining
// short-block portion is permuted.
func Reorder(samples *[576]float32, mixed bool) {
	start := 0
	if mixed {
		start = 36
	}
	groups := (576 - start) / 3

	var div [192][3]float32
	for g := 0; g < groups; g++ {
		for s := 0; s < 3; s++ {
			div[g][s] = samples[start+3*g+s]
		}
	}
	for s := 0; s < 3; s++ {
		for w := 0; w < groups; w++ {
			samples[start+groups*s+w] = div[w][s]
		}
	}
}

// aliasCS and aliasCA are the eight butterfly coefficients used by alias
// reduction, ISO/IEC 11172-3 Table B.9.
var aliasCS = [8]float64{
	0.8574929257, 0.8817419973, 0.9496286491, 0.9833145925,
	0.9955178161, 0.9991605582, 0.9998991952, 0.9999931551,
}
var aliasCA = [8]float64{
	-0.5144957554, -0.4717319686, -0.3133774542, -0.1819131996,
	-0.0945741925, -0.0409655829, -0.0141985686, -0.0036999747,
}

// AliasReduction performs the 8-point butterfly across each of sbMax-1
// subband boundaries: sbMax is 2 for a mixed block (only the two lowest
// subbands, which carry the long-block portion, are reduced) and 32
// otherwise.
func AliasReduction(samples *[576]float32, mixed bool) {
	sbMax := 32
	if mixed {
		sbMax = 2
	}
	for sb := 1; sb < sbMax; sb++ {
		for k := 0; k < 8; k++ {
			offset1 := 18*sb - k - 1
			offset2 := 18*sb + k
			s1 := float64(samples[offset1])
			s2 := float64(samples[offset2])
			samples[offset1] = float32(s1*aliasCS[k] - s2*aliasCA[k])
			samples[offset2] = float32(s2*aliasCS[k] + s1*aliasCA[k])
		}
	}
}
