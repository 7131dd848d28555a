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

package imdct_test

import (
	"math"
	"testing"

	. "github.com/FlorisCreyf/mp3-decoder/internal/imdct"
)

func TestApplyZeroInputProducesZeroOutput(t *testing.T) {
	var in, out [576]float32
	var o Overlap
	o.Apply(&in, &out, 0, false)
	for i, v := range out {
		if v != 0 {
			t.Fatalf("out[%d] = %v, want 0 for all-zero input", i, v)
		}
	}
}

func TestApplyOverlapCarriesAcrossCalls(t *testing.T) {
	var in [576]float32
	in[0] = 1
	var out1, out2 [576]float32
	var o Overlap
	o.Apply(&in, &out1, 0, false)
	var zero [576]float32
	o.Apply(&zero, &out2, 0, false)

	nonZero := false
	for _, v := range out2[:18] {
		if v != 0 {
			nonZero = true
			break
		}
	}
	if !nonZero {
		t.Fatal("expected the first granule's tail to overlap into the second granule's head")
	}
}

func TestApplyShortBlockDoesNotProduceNaN(t *testing.T) {
	var in [576]float32
	for i := range in {
		in[i] = float32(i%7) - 3
	}
	var out [576]float32
	var o Overlap
	o.Apply(&in, &out, 2, false)
	for i, v := range out {
		if math.IsNaN(float64(v)) || math.IsInf(float64(v), 0) {
			t.Fatalf("out[%d] = %v, want finite", i, v)
		}
	}
}
