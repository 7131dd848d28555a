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
	"math"
	"testing"

	"github.com/FlorisCreyf/mp3-decoder/internal/consts"
	"github.com/FlorisCreyf/mp3-decoder/internal/frame"
	"github.com/FlorisCreyf/mp3-decoder/internal/frameheader"
	"github.com/FlorisCreyf/mp3-decoder/internal/maindata"
	"github.com/FlorisCreyf/mp3-decoder/internal/sideinfo"
)

func monoHeader() frameheader.FrameHeader {
	// MPEG1 Layer III, no CRC, bitrate index 9, 44100Hz, no padding, mono.
	v := uint32(0xFF)<<24 | uint32(0xFB)<<16 | uint32(0x90)<<8 | uint32(0xC0)
	return frameheader.FrameHeader(v)
}

func flatSideInfo() *sideinfo.SideInfo {
	si := &sideinfo.SideInfo{}
	for gr := 0; gr < 2; gr++ {
		si.BlockType[gr][0] = consts.BlockTypeReserved
		si.GlobalGain[gr][0] = 128
	}
	return si
}

func TestDecodeGranuleLongBlockProducesFiniteOutput(t *testing.T) {
	header := monoHeader()
	si := flatSideInfo()
	md := &maindata.MainData{}
	md.Is[0][0][0] = 10

	states := []*frame.State{{}}
	out := frame.DecodeGranule(md, si, header, 0, states)

	if len(out) != 1 {
		t.Fatalf("expected 1 channel of output, got %d", len(out))
	}
	for i, v := range out[0] {
		if math.IsNaN(float64(v)) || math.IsInf(float64(v), 0) {
			t.Fatalf("sample %d is not finite: %v", i, v)
		}
	}
}

func TestDecodeGranuleCarriesOverlapAcrossGranules(t *testing.T) {
	header := monoHeader()
	si := flatSideInfo()
	md := &maindata.MainData{}
	md.Is[0][0][0] = 20
	md.Is[1][0][0] = 20

	states := []*frame.State{{}}
	first := frame.DecodeGranule(md, si, header, 0, states)
	second := frame.DecodeGranule(md, si, header, 1, states)

	same := true
	for i := range first[0] {
		if first[0][i] != second[0][i] {
			same = false
			break
		}
	}
	if same {
		t.Fatalf("expected overlap-add history to change granule 1's output relative to granule 0")
	}
}

func TestInterleaveMono(t *testing.T) {
	var ch [576]float32
	ch[0] = 1
	ch[1] = 2
	out := frame.Interleave([][576]float32{ch})
	if out[0] != 1 || out[1] != 2 {
		t.Fatalf("mono interleave should copy straight through, got %v", out[:2])
	}
}

func TestInterleaveStereo(t *testing.T) {
	var left, right [576]float32
	left[0], left[1] = 1, 3
	right[0], right[1] = 2, 4
	out := frame.Interleave([][576]float32{left, right})
	want := []float32{1, 2, 3, 4}
	for i, w := range want {
		if out[i] != w {
			t.Errorf("index %d: got %v, want %v", i, out[i], w)
		}
	}
}
