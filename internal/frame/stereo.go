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

import "math"

var sqrt2 = math.Sqrt(2)

// MSStereo turns the transmitted (mid, side) pair for one granule back
// into (left, right): left = (mid+side)/sqrt2, right = (mid-side)/sqrt2.
func MSStereo(mid, side *[576]float32) {
	for i := range mid {
		m := float64(mid[i])
		s := float64(side[i])
		mid[i] = float32((m + s) / sqrt2)
		side[i] = float32((m - s) / sqrt2)
	}
}
