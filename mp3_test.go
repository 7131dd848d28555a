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

package mp3

import (
	"bufio"
	"bytes"
	"errors"
	"io"
	"testing"
)

// header builds a 4-byte MPEG-1 Layer III frame header: mono, 64kbps,
// 44100Hz, no padding, no CRC. versionBits and layerBits let a test
// corrupt those fields to exercise the version/layer rejection paths.
func header(versionBits, layerBits byte) []byte {
	b0 := byte(0xff)
	b1 := byte(0xe0) | versionBits<<3 | layerBits<<1 | 1 // sync tail, version, layer, protection bit
	b2 := byte(0x50)                                     // bitrate index 5, 44100Hz, no padding, no private bit
	b3 := byte(0xc0)                                     // single channel, no mode extension, no emphasis
	return []byte{b0, b1, b2, b3}
}

func TestNewDecoderRejectsVersion2(t *testing.T) {
	data := header(0x2 /* Version2 */, 0x1 /* Layer3 */)
	_, err := NewDecoder(bufio.NewReader(bytes.NewReader(data)))
	if err == nil {
		t.Fatal("expected an error for a non-Version1 stream, got nil")
	}
}

func TestNewDecoderRejectsLayer1(t *testing.T) {
	data := header(0x3 /* Version1 */, 0x3 /* Layer1 */)
	_, err := NewDecoder(bufio.NewReader(bytes.NewReader(data)))
	if err == nil {
		t.Fatal("expected an error for a non-Layer3 stream, got nil")
	}
}

func TestNewDecoderEmptyInputReturnsEOF(t *testing.T) {
	_, err := NewDecoder(bufio.NewReader(bytes.NewReader(nil)))
	if !errors.Is(err, io.EOF) {
		t.Fatalf("got %v, want io.EOF", err)
	}
}

func TestNewDecoderTruncatedFrameReturnsEOF(t *testing.T) {
	data := header(0x3, 0x1)
	data = append(data, 0x00, 0x00) // a couple of side-info bytes, then nothing
	_, err := NewDecoder(bufio.NewReader(bytes.NewReader(data)))
	if !errors.Is(err, io.EOF) {
		t.Fatalf("got %v, want io.EOF", err)
	}
}

func TestNewDecoderSkipsID3v1TagBeforeFrame(t *testing.T) {
	var data []byte
	data = append(data, []byte("TAG")...)
	data = append(data, make([]byte, 125)...)
	data = append(data, header(0x3, 0x1)...)

	_, err := NewDecoder(bufio.NewReader(bytes.NewReader(data)))
	// The header is well formed but the frame body is missing, so this
	// still fails; the point is that it fails past the tag, not on it.
	if !errors.Is(err, io.EOF) {
		t.Fatalf("got %v, want io.EOF (tag should have been skipped)", err)
	}
}

func TestDecoderCloseClosesUnderlyingReadCloser(t *testing.T) {
	data := header(0x3, 0x1)
	rc := io.NopCloser(bytes.NewReader(data))
	d := &Decoder{source: &source{reader: rc}}
	if err := d.Close(); err != nil {
		t.Fatalf("Close returned %v, want nil", err)
	}
}
