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

// Package xing parses the optional Xing/Info VBR header and its LAME
// extension carried in the first frame of many encoded streams. Neither
// tag affects decoding; both exist purely as metadata a caller can use
// for progress bars and gapless-playback trimming.
package xing

const (
	flagFrameCount = 1 << 0
	flagByteCount  = 1 << 1
	flagTOC        = 1 << 2
	flagQuality    = 1 << 3
)

// Info is the parsed content of one Xing/Info header, plus its LAME
// extension if present.
type Info struct {
	IsXing bool
	Flags  uint32

	FrameCount uint32
	ByteCount  uint32
	TOC        [100]byte
	Quality    uint32

	LAMEVersion    string
	EncoderDelay   uint16
	EncoderPadding uint16
}

func (i *Info) HasFrameCount() bool { return i.Flags&flagFrameCount != 0 }
func (i *Info) HasByteCount() bool  { return i.Flags&flagByteCount != 0 }
func (i *Info) HasTOC() bool        { return i.Flags&flagTOC != 0 }
func (i *Info) HasQuality() bool    { return i.Flags&flagQuality != 0 }
func (i *Info) HasLAMEInfo() bool   { return i.LAMEVersion != "" }

// DecoderDelay is the fixed decoder delay every Layer III decoder
// introduces via its synthesis filterbank history.
const DecoderDelay = 529

// TotalDelay is the number of leading samples a gapless player should
// discard: the encoder's own reported delay plus the fixed decoder delay.
func (i *Info) TotalDelay() int {
	if !i.HasLAMEInfo() {
		return DecoderDelay
	}
	return int(i.EncoderDelay) + DecoderDelay
}

// Parse looks for a "Xing" or "Info" tag inside payload, the frame's bytes
// starting immediately after its side-information block (sideInfoSize
// bytes past the 4-byte header), per original_source/xing.cpp's
// placement rule that the tag's exact offset otherwise varies with
// bitrate mode. It returns ok == false when no tag is found.
//
// Deviation from original_source/xing.cpp: the C++ reads the extension
// flag bits in order (frame field, byte field, TOC, quality) but then
// checks bit 1 (byte-field flag) to decide whether to read the frame
// count and bit 0 (frame-field flag) to decide whether to read the byte
// count, swapping which value ends up in which field whenever only one of
// the two flags is set. This implementation checks bit 0 for frame count
// and bit 1 for byte count, matching the field order the Xing format
// itself defines and matching other_examples/llehouerou-go-mp3__lameinfo.go's
// field layout.
func Parse(payload []byte) (*Info, bool) {
	tagStart := -1
	for i := 0; i+4 <= len(payload); i++ {
		tag := string(payload[i : i+4])
		if tag == "Xing" || tag == "Info" {
			tagStart = i
			break
		}
	}
	if tagStart < 0 {
		return nil, false
	}

	info := &Info{IsXing: payload[tagStart] == 'X'}
	pos := tagStart + 4
	if pos+4 > len(payload) {
		return nil, false
	}
	info.Flags = beUint32(payload[pos:])
	pos += 4

	if info.HasFrameCount() {
		if pos+4 > len(payload) {
			return info, true
		}
		info.FrameCount = beUint32(payload[pos:])
		pos += 4
	}
	if info.HasByteCount() {
		if pos+4 > len(payload) {
			return info, true
		}
		info.ByteCount = beUint32(payload[pos:])
		pos += 4
	}
	if info.HasTOC() {
		if pos+100 > len(payload) {
			return info, true
		}
		copy(info.TOC[:], payload[pos:pos+100])
		pos += 100
	}
	if info.HasQuality() {
		if pos+4 > len(payload) {
			return info, true
		}
		info.Quality = beUint32(payload[pos:])
		pos += 4
	}

	parseLAMEExtension(payload, pos, info)
	return info, true
}

// parseLAMEExtension reads the 9-byte encoder version string and, if it
// looks like a LAME (or Gogo) tag, the encoder delay/padding nibble triple
// 12 bytes after it. Layout ported from
// other_examples/llehouerou-go-mp3__lameinfo.go, which documents the
// intervening 12 bytes (revision/VBR method, lowpass filter, peak signal,
// replay gain fields, encoding flags, ABR/minimal bitrate) that this
// decoder has no use for and so skips over rather than naming.
func parseLAMEExtension(payload []byte, pos int, info *Info) {
	if pos+9 > len(payload) {
		return
	}
	version := string(payload[pos : pos+9])
	if !looksLikeLAME(version) {
		return
	}
	info.LAMEVersion = version

	delayOffset := pos + 9 + 12
	if delayOffset+3 > len(payload) {
		return
	}
	info.EncoderDelay = uint16(payload[delayOffset])<<4 | uint16(payload[delayOffset+1])>>4
	info.EncoderPadding = uint16(payload[delayOffset+1]&0x0F)<<8 | uint16(payload[delayOffset+2])
}

func looksLikeLAME(s string) bool {
	if len(s) < 4 {
		return false
	}
	switch s[:4] {
	case "LAME", "L3.9", "Gogo", "GOGO":
		return true
	}
	return false
}

func beUint32(b []byte) uint32 {
	return uint32(b[0])<<24 | uint32(b[1])<<16 | uint32(b[2])<<8 | uint32(b[3])
}
