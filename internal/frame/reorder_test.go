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

package frame_test

import (
	"testing"

	"github.com/FlorisCreyf/mp3-decoder/internal/frame"
)

func TestReorderPureShortBlock(t *testing.T) {
	var samples [576]float32
	// Three windows of 192 groups each; fill so window w, group g holds
	// value w*1000+g for the first few groups, the rest zero.
	groups := 192
	for w := 0; w < 3; w++ {
		for g := 0; g < 3; g++ {
			samples[3*g+w] = float32(w*1000 + g)
		}
	}
	_ = groups

	frame.Reorder(&samples, false)

	// After reorder, window-major layout: group g, window w lands at
	// index groups*w + g.
	for w := 0; w < 3; w++ {
		for g := 0; g < 3; g++ {
			want := float32(w*1000 + g)
			got := samples[groups*w+g]
			if got != want {
				t.Errorf("window %d group %d: got %v, want %v", w, g, got, want)
			}
		}
	}
}

func TestReorderMixedBlockLeavesLongPortionUntouched(t *testing.T) {
	var samples [576]float32
	for i := 0; i < 36; i++ {
		samples[i] = float32(1000 + i)
	}
	before := samples

	frame.Reorder(&samples, true)

	for i := 0; i < 36; i++ {
		if samples[i] != before[i] {
			t.Fatalf("index %d changed under mixed reorder: got %v, want %v", i, samples[i], before[i])
		}
	}
}

func TestAliasReductionMixedOnlyTouchesFirstBoundary(t *testing.T) {
	var samples [576]float32
	for i := range samples {
		samples[i] = 1
	}
	before := samples

	frame.AliasReduction(&samples, true)

	changed := false
	for i := 18*2 - 8; i < 18*2+8; i++ {
		if samples[i] != before[i] {
			changed = true
		}
	}
	if changed {
		t.Fatalf("mixed alias reduction touched samples beyond the sb=1 boundary")
	}

	untouchedAfterBoundary := true
	for i := 36; i < len(samples); i++ {
		if samples[i] != before[i] {
			untouchedAfterBoundary = false
		}
	}
	if !untouchedAfterBoundary {
		t.Fatalf("mixed alias reduction (sbMax=2) modified samples past subband 1")
	}
}

func TestAliasReductionFullRangeTouchesHighSubbands(t *testing.T) {
	var samples [576]float32
	for i := range samples {
		samples[i] = 1
	}

	frame.AliasReduction(&samples, false)

	if samples[18*20] == 1 && samples[18*20-1] == 1 {
		t.Fatalf("full-range alias reduction left subband 20's boundary unmodified")
	}
}
