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

// Package id3 recognizes and skips the ID3v1 and ID3v2 tags that often
// precede or follow an MPEG audio stream, so a caller can hand the
// remaining bytes straight to the frame decoder.
package id3

import "io"

// FullReader is the subset of io.Reader the decoder's own source type
// implements: a short read is only ever an error, never a partial result
// the caller should keep.
type FullReader interface {
	ReadFull(buf []byte) (int, error)
}

// Unreader lets SkipTag push back the bytes it peeked and did not consume,
// mirroring the source type's own Unread method.
type Unreader interface {
	Unread(buf []byte)
}

// SkipTag inspects the next three bytes of r. If they spell "TAG" it
// consumes the fixed 128-byte ID3v1 tag (3 already read plus 125 more). If
// they spell "ID3" it consumes the ID3v2 header and the tag body named by
// the header's synchsafe size field. Otherwise it pushes the three bytes
// back via u and returns skipped == 0.
//
// Grounded on original_source/id3.cpp's tag detection and
// hajimehoshi-go-mp3/source.go's skipTags.
func SkipTag(r FullReader, u Unreader) (skipped int64, err error) {
	head := make([]byte, 3)
	if _, err := r.ReadFull(head); err != nil {
		return 0, err
	}

	switch string(head) {
	case "TAG":
		body := make([]byte, 125)
		if _, err := r.ReadFull(body); err != nil {
			return 0, err
		}
		return 3 + 125, nil

	case "ID3":
		rest := make([]byte, 3)
		if _, err := r.ReadFull(rest); err != nil {
			return 0, err
		}
		sizeBuf := make([]byte, 4)
		n, err := r.ReadFull(sizeBuf)
		if err != nil {
			return 0, err
		}
		if n != 4 {
			return 0, io.ErrUnexpectedEOF
		}
		size := synchsafe(sizeBuf)
		body := make([]byte, size)
		if _, err := r.ReadFull(body); err != nil {
			return 0, err
		}
		return int64(3 + 3 + 4 + size), nil

	default:
		u.Unread(head)
		return 0, nil
	}
}

// synchsafe decodes a 4-byte big-endian synchsafe integer, the encoding
// ID3v2 uses for its header size field: each byte contributes only its
// low 7 bits.
func synchsafe(b []byte) uint32 {
	return (uint32(b[0]) << 21) | (uint32(b[1]) << 14) |
		(uint32(b[2]) << 7) | uint32(b[3])
}
