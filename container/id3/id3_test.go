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

package id3_test

import (
	"testing"

	"github.com/FlorisCreyf/mp3-decoder/container/id3"
)

type fakeSource struct {
	data []byte
}

func (f *fakeSource) ReadFull(buf []byte) (int, error) {
	n := copy(buf, f.data)
	f.data = f.data[n:]
	return n, nil
}

func (f *fakeSource) Unread(buf []byte) {
	f.data = append(append([]byte{}, buf...), f.data...)
}

func TestSkipTagID3v2(t *testing.T) {
	body := make([]byte, 20)
	header := append([]byte("ID3"), 0x03, 0x00, 0x00)
	header = append(header, 0x00, 0x00, 0x00, 0x14) // synchsafe size 20
	src := &fakeSource{data: append(header, body...)}

	skipped, err := id3.SkipTag(src, src)
	if err != nil {
		t.Fatalf("SkipTag returned error: %v", err)
	}
	if want := int64(3 + 3 + 4 + 20); skipped != want {
		t.Errorf("skipped = %d, want %d", skipped, want)
	}
	if len(src.data) != 0 {
		t.Errorf("expected all bytes consumed, %d remain", len(src.data))
	}
}

func TestSkipTagID3v1(t *testing.T) {
	src := &fakeSource{data: append([]byte("TAG"), make([]byte, 125)...)}
	skipped, err := id3.SkipTag(src, src)
	if err != nil {
		t.Fatalf("SkipTag returned error: %v", err)
	}
	if skipped != 128 {
		t.Errorf("skipped = %d, want 128", skipped)
	}
}

func TestSkipTagNoTagUnreadsBytes(t *testing.T) {
	src := &fakeSource{data: []byte{0xFF, 0xFB, 0x90}}
	skipped, err := id3.SkipTag(src, src)
	if err != nil {
		t.Fatalf("SkipTag returned error: %v", err)
	}
	if skipped != 0 {
		t.Errorf("skipped = %d, want 0", skipped)
	}
	if len(src.data) != 3 {
		t.Fatalf("expected 3 bytes pushed back, got %d", len(src.data))
	}
	if src.data[0] != 0xFF {
		t.Errorf("pushed-back bytes out of order: %v", src.data)
	}
}
