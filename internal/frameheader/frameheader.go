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

// Package frameheader decodes the 4-byte MPEG audio frame header: sync,
// version, layer, bitrate, sampling rate, padding, and channel mode.
package frameheader

import (
	"github.com/FlorisCreyf/mp3-decoder/internal/consts"
)

// FrameHeader is the 32-bit sync word + header fields for one frame.
type FrameHeader uint32

// ID returns the MPEG version field, stored in bits 20,19.
func (m FrameHeader) ID() consts.Version {
	return consts.Version((m & 0x00180000) >> 19)
}

// Layer returns the MPEG layer field, stored in bits 18,17.
func (m FrameHeader) Layer() consts.Layer {
	return consts.Layer((m & 0x00060000) >> 17)
}

// ProtectionBit returns the CRC-protection bit, stored in bit 16.
// It is 0 when a 16-bit CRC follows the header, 1 when it is absent.
func (m FrameHeader) ProtectionBit() int {
	return int(m&0x00010000) >> 16
}

// BitrateIndex returns the raw 4-bit bitrate index, stored in bits 15-12.
func (m FrameHeader) BitrateIndex() int {
	return int(m&0x0000f000) >> 12
}

// SamplingFrequency returns the 2-bit sampling-rate index, stored in bits 11-10.
func (m FrameHeader) SamplingFrequency() consts.SamplingFrequency {
	return consts.SamplingFrequency(int(m&0x00000c00) >> 10)
}

// PaddingBit returns the padding bit, stored in bit 9.
func (m FrameHeader) PaddingBit() int {
	return int(m&0x00000200) >> 9
}

// PrivateBit returns the private bit, stored in bit 8.
func (m FrameHeader) PrivateBit() int {
	return int(m&0x00000100) >> 8
}

// Mode returns the channel mode, stored in bits 7-6.
func (m FrameHeader) Mode() consts.Mode {
	return consts.Mode((m & 0x000000c0) >> 6)
}

// ModeExtension returns the mode-extension bits, stored in bits 5-4. These
// are only meaningful for JointStereo Layer III (MS-stereo), per spec.
func (m FrameHeader) ModeExtension() int {
	return int(m&0x00000030) >> 4
}

// Copyright returns the copyright bit, stored in bit 3.
func (m FrameHeader) Copyright() int {
	return int(m&0x00000008) >> 3
}

// OriginalOrCopy returns the original/copy bit, stored in bit 2.
func (m FrameHeader) OriginalOrCopy() int {
	return int(m&0x00000004) >> 2
}

// Emphasis returns the emphasis field, stored in bits 1-0. Parsed but
// never consumed by the decode pipeline (spec §9).
func (m FrameHeader) Emphasis() int {
	return int(m&0x00000003) >> 0
}

// IsValid reports whether the header's sync word and enumerated fields all
// fall within their valid domains. Any violation is a StructuralReject.
func (m FrameHeader) IsValid() bool {
	const sync = 0xffe00000
	if (m & sync) != sync {
		return false
	}
	if m.ID() == consts.VersionReserved {
		return false
	}
	if m.Layer() == consts.LayerReserved {
		return false
	}
	// Bitrate index 0 is free-format (unsupported, spec Non-goals) and 15
	// is reserved; both are rejected outright.
	if bi := m.BitrateIndex(); bi == 0 || bi == 15 {
		return false
	}
	if m.SamplingFrequency() > consts.SamplingFrequency32000 {
		return false
	}
	if m.Emphasis() == 2 {
		return false
	}
	return true
}

// bitrateTables holds the three MPEG-1 bitrate tables (one per layer),
// indexed [layer][bitrateIndex]. Index 0 (free format) is never looked up
// because IsValid rejects it first.
var bitrateTables = map[consts.Layer][15]int{
	consts.Layer1: {
		0, 32000, 64000, 96000, 128000, 160000, 192000, 224000,
		256000, 288000, 320000, 352000, 384000, 416000, 448000,
	},
	consts.Layer2: {
		0, 32000, 48000, 56000, 64000, 80000, 96000, 112000,
		128000, 160000, 192000, 224000, 256000, 320000, 384000,
	},
	consts.Layer3: {
		0, 32000, 40000, 48000, 56000, 64000, 80000, 96000,
		112000, 128000, 160000, 192000, 224000, 256000, 320000,
	},
}

func bitrate(layer consts.Layer, index int) int {
	return bitrateTables[layer][index]
}

// SamplesPerFrame returns the number of PCM samples per channel this
// header's (version, layer) combination packs into one frame.
func (h FrameHeader) SamplesPerFrame() int {
	switch h.Layer() {
	case consts.Layer1:
		return 384
	case consts.Layer2:
		return 1152
	case consts.Layer3:
		if h.ID() == consts.Version1 {
			return 1152
		}
		return 576
	}
	return 0
}

// FrameSize returns the total byte size of the frame (header included),
// per spec §3: floor(samples_per_frame/8 * bit_rate / sampling_rate) + padding.
func (h FrameHeader) FrameSize() int {
	return h.SamplesPerFrame()/8*bitrate(h.Layer(), h.BitrateIndex())/h.SamplingFrequency().Int() +
		int(h.PaddingBit())
}

// NumberOfChannels returns 1 for single-channel (mono) mode, 2 otherwise.
func (h FrameHeader) NumberOfChannels() int {
	if h.Mode() == consts.ModeSingleChannel {
		return 1
	}
	return 2
}

// SideInfoSize returns the fixed byte length of the side-information block
// that follows the header (and optional CRC): 17 bytes mono, 32 bytes
// stereo, per spec §4.3.
func (h FrameHeader) SideInfoSize() int {
	if h.NumberOfChannels() == 1 {
		return 17
	}
	return 32
}
