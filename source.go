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
	"fmt"
	"io"

	"github.com/FlorisCreyf/mp3-decoder/container/id3"
	"github.com/FlorisCreyf/mp3-decoder/internal/bits"
	"github.com/FlorisCreyf/mp3-decoder/internal/consts"
	"github.com/FlorisCreyf/mp3-decoder/internal/frame"
	"github.com/FlorisCreyf/mp3-decoder/internal/frameheader"
	"github.com/FlorisCreyf/mp3-decoder/internal/maindata"
	"github.com/FlorisCreyf/mp3-decoder/internal/sideinfo"
)

// source wraps the caller's io.Reader with the small unread buffer the
// frame scanner and tag skipper both need: readHeader must be able to
// push back bytes that turned out not to start a valid sync word, and
// id3.SkipTag must be able to push back three bytes that turned out not
// to spell a tag.
type source struct {
	reader io.Reader
	buf    []byte
	pos    int64
}

func (s *source) ReadFull(buf []byte) (int, error) {
	read := 0
	if s.buf != nil {
		read = copy(buf, s.buf)
		if len(s.buf) > read {
			s.buf = s.buf[read:]
		} else {
			s.buf = nil
		}
		if len(buf) == read {
			return read, nil
		}
	}
	n, err := io.ReadFull(s.reader, buf[read:])
	if err == io.ErrUnexpectedEOF {
		err = io.EOF
	}
	s.pos += int64(n)
	return n + read, err
}

func (s *source) Unread(buf []byte) {
	s.buf = append(append([]byte{}, buf...), s.buf...)
	s.pos -= int64(len(buf))
}

func (s *source) Seek(position int64, whence int) (int64, error) {
	seeker, ok := s.reader.(io.Seeker)
	if !ok {
		panic("mp3: source must be io.Seeker")
	}
	s.buf = nil
	n, err := seeker.Seek(position, whence)
	s.pos = n
	return n, err
}

func (s *source) Close() error {
	s.buf = nil
	if c, ok := s.reader.(io.Closer); ok {
		return c.Close()
	}
	return nil
}

func (s *source) rewind() error {
	if _, err := s.Seek(0, io.SeekStart); err != nil {
		return err
	}
	return nil
}

func (s *source) skipTags() error {
	for {
		skipped, err := id3.SkipTag(s, s)
		if err != nil {
			return err
		}
		if skipped == 0 {
			return nil
		}
	}
}

func (s *source) readCRC() error {
	buf := make([]byte, 2)
	n, err := s.ReadFull(buf)
	if n < 2 {
		if err == io.EOF {
			return &consts.UnexpectedEOF{At: "readCRC"}
		}
		return fmt.Errorf("mp3: error at readCRC: %w", err)
	}
	return nil
}

// mp3Frame is one decoded frame's parsed structure plus the per-channel
// state (IMDCT overlap tail, synthesis FIFO) carried forward from the
// previous frame.
type mp3Frame struct {
	header        frameheader.FrameHeader
	sideInfo      *sideinfo.SideInfo
	mainData      *maindata.MainData
	mainDataBytes *bits.Bits
	states        [2]frame.State
}

func (s *source) readHeader() (frameheader.FrameHeader, int64, error) {
	pos := s.pos
	buf := make([]byte, 4)
	n, err := s.ReadFull(buf)
	if n < 4 {
		if err == io.EOF {
			if n == 0 {
				return 0, 0, io.EOF
			}
			return 0, 0, &consts.UnexpectedEOF{At: "readHeader (1)"}
		}
		return 0, 0, err
	}
	word := uint32(buf[0])<<24 | uint32(buf[1])<<16 | uint32(buf[2])<<8 | uint32(buf[3])
	for !frameheader.FrameHeader(word).IsValid() {
		next := make([]byte, 1)
		if _, err := s.ReadFull(next); err != nil {
			if err == io.EOF {
				return 0, 0, &consts.UnexpectedEOF{At: "readHeader (2)"}
			}
			return 0, 0, err
		}
		word = (word << 8) | uint32(next[0])
		pos++
	}
	h := frameheader.FrameHeader(word)
	if h.ID() != consts.Version1 {
		return 0, 0, fmt.Errorf("mp3: only MPEG version 1 (want %d; got %d) is supported", consts.Version1, h.ID())
	}
	if h.Layer() != consts.Layer3 {
		return 0, 0, fmt.Errorf("mp3: only layer3 (want %d; got %d) is supported", consts.Layer3, h.Layer())
	}
	return h, pos, nil
}

// readNextFrame reads one frame header, its side info, and its assembled
// main data off the source, given the previous frame (nil for the first).
// It returns a non-nil frame together with consts.ErrBitReservoirUnderflow
// when main_data_begin reached further back than the retained reservoir:
// the caller must treat the granules as undecodable but keep the frame
// around as history for the next call.
func (s *source) readNextFrame(prev *mp3Frame) (*mp3Frame, int64, error) {
	h, pos, err := s.readHeader()
	if err != nil {
		return nil, 0, err
	}
	if h.ProtectionBit() == 0 {
		if err := s.readCRC(); err != nil {
			return nil, 0, err
		}
	}

	siBuf := make([]byte, h.SideInfoSize())
	if _, err := s.ReadFull(siBuf); err != nil {
		return nil, 0, err
	}
	si := sideinfo.Read(siBuf, h.NumberOfChannels())

	bodySize := h.FrameSize() - 4 - h.SideInfoSize()
	if h.ProtectionBit() == 0 {
		bodySize -= 2
	}
	if bodySize < 0 {
		return nil, 0, &consts.StructuralError{Reason: "frame size too small for its own header and side info"}
	}
	body := make([]byte, bodySize)
	if _, err := s.ReadFull(body); err != nil {
		return nil, 0, err
	}

	var prevM *bits.Bits
	if prev != nil {
		prevM = prev.mainDataBytes
	}
	m, reservoirErr := maindata.Read(byteSource{body}, prevM, bodySize, si.MainDataBegin)

	nf := &mp3Frame{header: h, sideInfo: si, mainDataBytes: m}
	if prev != nil {
		nf.states = prev.states
	}
	if reservoirErr != nil {
		return nf, pos, reservoirErr
	}

	md, err := maindata.Unpack(m, h, si)
	if err != nil {
		return nil, 0, err
	}
	nf.mainData = md
	return nf, pos, nil
}

// byteSource adapts an already-fully-read frame body into the
// maindata.FullReader interface Read expects: reading past the body's
// end simply means "no more fresh bytes for this frame".
type byteSource struct {
	buf []byte
}

func (b byteSource) ReadFull(dst []byte) (int, error) {
	n := copy(dst, b.buf)
	b.buf = b.buf[n:]
	if n < len(dst) {
		return n, io.ErrUnexpectedEOF
	}
	return n, nil
}
