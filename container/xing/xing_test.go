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

package xing_test

import (
	"testing"

	"github.com/FlorisCreyf/mp3-decoder/container/xing"
)

func TestParseNoTagReturnsFalse(t *testing.T) {
	payload := make([]byte, 64)
	if _, ok := xing.Parse(payload); ok {
		t.Fatal("expected ok == false for a payload with no Xing/Info tag")
	}
}

func TestParseFrameCountOnly(t *testing.T) {
	payload := []byte("Xing")
	payload = append(payload, 0, 0, 0, 0x01) // flags: frame count only
	payload = append(payload, 0, 0, 0x03, 0xE8)

	info, ok := xing.Parse(payload)
	if !ok {
		t.Fatal("expected tag to be found")
	}
	if !info.IsXing {
		t.Error("expected IsXing true")
	}
	if !info.HasFrameCount() || info.HasByteCount() {
		t.Fatalf("flags decoded wrong: HasFrameCount=%v HasByteCount=%v", info.HasFrameCount(), info.HasByteCount())
	}
	if info.FrameCount != 1000 {
		t.Errorf("FrameCount = %d, want 1000", info.FrameCount)
	}
}

func TestParseByteCountOnlyIsNotMistakenForFrameCount(t *testing.T) {
	payload := []byte("Info")
	payload = append(payload, 0, 0, 0, 0x02) // flags: byte count only
	payload = append(payload, 0, 0x01, 0x00, 0x00)

	info, ok := xing.Parse(payload)
	if !ok {
		t.Fatal("expected tag to be found")
	}
	if info.HasFrameCount() {
		t.Fatal("byte-count-only flags should not report a frame count")
	}
	if info.FrameCount != 0 {
		t.Errorf("FrameCount should stay zero when only the byte-count flag is set, got %d", info.FrameCount)
	}
	if info.ByteCount != 0x00010000 {
		t.Errorf("ByteCount = %#x, want 0x10000", info.ByteCount)
	}
}

func TestParseLAMEExtension(t *testing.T) {
	payload := []byte("Xing")
	payload = append(payload, 0, 0, 0, 0) // no optional fields
	payload = append(payload, []byte("LAME3.100")...)
	payload = append(payload, make([]byte, 12)...)
	payload = append(payload, 0x02, 0x10, 0x00) // delay=0x21=33, padding=0

	info, ok := xing.Parse(payload)
	if !ok {
		t.Fatal("expected tag to be found")
	}
	if !info.HasLAMEInfo() {
		t.Fatal("expected LAME info to be detected")
	}
	if info.EncoderDelay != 33 {
		t.Errorf("EncoderDelay = %d, want 33", info.EncoderDelay)
	}
}
