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

// Package mp3 decodes MPEG-1 Audio Layer III streams into PCM. Decoder
// implements io.Reader, emitting 16-bit little-endian interleaved samples;
// ReadSamples exposes the same audio as float32 for callers that want the
// decoder's native precision.
package mp3

import (
	"fmt"
	"io"

	"github.com/FlorisCreyf/mp3-decoder/internal/consts"
	"github.com/FlorisCreyf/mp3-decoder/internal/frame"
)

// A Decoder is an MPEG-1 Layer III stream decoded on the fly from its
// underlying source.
type Decoder struct {
	source      *source
	sampleRate  int
	length      int64
	frameStarts []int64
	buf         []float32
	frm         *mp3Frame
	pos         int64
}

// NewDecoder wraps r, skips any leading ID3 tag, and returns a Decoder
// ready to Read or ReadSamples. If r is also an io.Seeker, NewDecoder
// walks the whole stream once up front to record every frame's start
// offset (so Length and byte-accurate Seek work) and then rewinds.
func NewDecoder(r io.Reader) (*Decoder, error) {
	s := &source{reader: r}
	if err := s.skipTags(); err != nil {
		return nil, err
	}

	d := &Decoder{source: s, length: -1}

	if _, ok := r.(io.Seeker); ok {
		var l int64
		var f *mp3Frame
		for {
			var err error
			var pos int64
			f, pos, err = s.readNextFrame(f)
			if err != nil && err != consts.ErrBitReservoirUnderflow {
				if err == io.EOF {
					break
				}
				if _, ok := err.(*consts.UnexpectedEOF); ok {
					break
				}
				return nil, err
			}
			d.frameStarts = append(d.frameStarts, pos)
			l += int64(f.header.SamplesPerFrame() * 2 * f.header.NumberOfChannels())
		}
		if err := s.rewind(); err != nil {
			return nil, err
		}
		if err := s.skipTags(); err != nil {
			return nil, err
		}
		d.length = l
	}

	if err := d.readFrame(); err != nil {
		return nil, err
	}
	d.sampleRate = d.frm.header.SamplingFrequency().Int()
	return d, nil
}

func (d *Decoder) readFrame() error {
	f, _, err := d.source.readNextFrame(d.frm)
	if err != nil && err != consts.ErrBitReservoirUnderflow {
		if err == io.EOF {
			return io.EOF
		}
		if _, ok := err.(*consts.UnexpectedEOF); ok {
			return io.EOF
		}
		return err
	}
	underflowed := err == consts.ErrBitReservoirUnderflow
	d.frm = f
	if underflowed {
		// Not enough bit-reservoir history to decode this frame's
		// granules; its bytes are consumed and its state is kept as
		// history for the next frame, but it contributes no samples.
		return nil
	}

	nch := f.header.NumberOfChannels()
	states := make([]*frame.State, nch)
	for ch := 0; ch < nch; ch++ {
		states[ch] = &f.states[ch]
	}
	for gr := 0; gr < consts.NumGranules; gr++ {
		channels := frame.DecodeGranule(f.mainData, f.sideInfo, f.header, gr, states)
		d.buf = append(d.buf, frame.Interleave(channels)...)
	}
	return nil
}

// Read implements io.Reader, emitting 16-bit little-endian PCM samples
// interleaved across the stream's channels; a mono stream yields a single
// channel.
func (d *Decoder) Read(buf []byte) (int, error) {
	for len(d.buf) == 0 {
		if err := d.readFrame(); err != nil {
			return 0, err
		}
	}
	n := 0
	for n+2 <= len(buf) && len(d.buf) > 0 {
		v := clampToInt16(d.buf[0])
		buf[n] = byte(v)
		buf[n+1] = byte(v >> 8)
		d.buf = d.buf[1:]
		n += 2
	}
	d.pos += int64(n)
	return n, nil
}

// ReadSamples fills buf with up to len(buf) float32 PCM samples,
// interleaved the same way Read's byte stream is, without the lossy
// round trip through 16-bit integers.
func (d *Decoder) ReadSamples(buf []float32) (int, error) {
	for len(d.buf) == 0 {
		if err := d.readFrame(); err != nil {
			return 0, err
		}
	}
	n := copy(buf, d.buf)
	d.buf = d.buf[n:]
	d.pos += int64(n * 2)
	return n, nil
}

func clampToInt16(v float32) int16 {
	const max = 32767
	const min = -32768
	f := v
	if f > max {
		f = max
	}
	if f < min {
		f = min
	}
	return int16(f)
}

// bytesPerFrame is the number of 16-bit PCM bytes a two-channel MPEG-1
// Layer III frame decodes to: 1152 samples per channel, 2 channels, 2
// bytes per sample.
const bytesPerFrame = consts.SamplesPerFrame * 2 * 2

// Seek implements io.Seeker. It panics if the underlying reader given to
// NewDecoder is not itself an io.Seeker.
func (d *Decoder) Seek(offset int64, whence int) (int64, error) {
	s, ok := d.source.reader.(io.Seeker)
	if !ok {
		panic("mp3: source must be io.Seeker to support Seek")
	}

	var npos int64
	switch whence {
	case io.SeekStart:
		npos = offset
	case io.SeekCurrent:
		npos = d.pos + offset
	case io.SeekEnd:
		npos = d.length + offset
	default:
		panic(fmt.Sprintf("mp3: invalid whence: %v", whence))
	}
	d.pos = npos
	d.buf = nil
	d.frm = nil

	f := npos / bytesPerFrame
	// The targeted frame's own decode depends on the previous frame's
	// bit-reservoir and overlap-add history, so read that one first
	// whenever it exists.
	if f > 0 {
		f--
		if _, err := s.Seek(d.frameStarts[f], io.SeekStart); err != nil {
			return 0, err
		}
		if err := d.readFrame(); err != nil {
			return 0, err
		}
		if err := d.readFrame(); err != nil {
			return 0, err
		}
		d.buf = d.buf[bytesPerFrame/2+(d.pos%bytesPerFrame)/2:]
	} else {
		if _, err := s.Seek(d.frameStarts[f], io.SeekStart); err != nil {
			return 0, err
		}
		if err := d.readFrame(); err != nil {
			return 0, err
		}
		d.buf = d.buf[d.pos/2:]
	}
	return npos, nil
}

// Close implements io.Closer, releasing the underlying reader if it is
// itself an io.Closer.
func (d *Decoder) Close() error {
	return d.source.Close()
}

// SampleRate returns the stream's sample rate in Hz, taken from the first
// frame.
func (d *Decoder) SampleRate() int {
	return d.sampleRate
}

// Length returns the total decoded size in bytes of the 16-bit PCM stream
// Read emits, or -1 if the underlying reader is not an io.Seeker.
func (d *Decoder) Length() int64 {
	return d.length
}
