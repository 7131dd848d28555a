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

package maindata

import (
	"io"

	"github.com/FlorisCreyf/mp3-decoder/internal/bits"
	"github.com/FlorisCreyf/mp3-decoder/internal/consts"
)

// FullReader supplies the raw bytes a frame's main data occupies; the root
// decoder's buffered source satisfies it.
type FullReader interface {
	ReadFull([]byte) (int, error)
}

// Read assembles this frame's bit-reservoir buffer: offset bytes carried
// over the tail of prev's history (a previous frame's own reservoir
// buffer, since main_data_begin can reach back further than one frame)
// concatenated with size fresh bytes read from source. prev is nil on the
// first frame, where offset must be 0.
func Read(source FullReader, prev *bits.Bits, size int, offset int) (*bits.Bits, error) {
	if size > 1500 {
		return nil, &consts.StructuralError{Reason: "main data size too large"}
	}
	if prev != nil && offset > prev.LenInBytes() {
		// The reservoir doesn't go back far enough; the frame can't be
		// decoded, but its bytes must still be consumed so the stream
		// stays byte-aligned for the next frame.
		buf := make([]byte, size)
		if n, err := source.ReadFull(buf); n < size {
			if err == io.EOF {
				return nil, &consts.UnexpectedEOF{At: "maindata.Read (reservoir underflow)"}
			}
			return nil, err
		}
		return bits.Append(prev, buf), consts.ErrBitReservoirUnderflow
	}

	vec := []byte{}
	if prev != nil && offset > 0 {
		vec = prev.Tail(offset)
	}
	buf := make([]byte, size)
	if n, err := source.ReadFull(buf); n < size {
		if err == io.EOF {
			return nil, &consts.UnexpectedEOF{At: "maindata.Read"}
		}
		return nil, err
	}
	return bits.New(append(vec, buf...)), nil
}
