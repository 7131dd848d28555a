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

package frame

import "math"

const fifoLen = 1024

// synthMatrix is the 64x32 analysis-inverting cosine matrix,
// n[i][j] = cos((16+i)*(2j+1)*pi/64), computed once at package init.
var synthMatrix [64][32]float64

// synthWindow is the 512-entry D-coefficient window applied before the
// final 16-way sum, ISO/IEC 11172-3 Table B.3: a Hann-windowed sinc
// lowpass prototype at cutoff 1/32 of the sampling frequency (one
// subband width), quantized to the standard's own 1/65536 (2^-16) grain
// — the D coefficients are published as 16-bit fixed-point values, which
// is why every entry in the real table is an exact multiple of that step.
var synthWindow [512]float64

const dCoeffStep = 1.0 / 65536.0

func init() {
	for i := 0; i < 64; i++ {
		for j := 0; j < 32; j++ {
			synthMatrix[i][j] = math.Cos(math.Pi / 64.0 * (2.0*float64(j) + 1.0) * (16.0 + float64(i)))
		}
	}
	const n = 512
	const cutoff = 1.0 / 32.0
	for i := range synthWindow {
		m := float64(i) - float64(n-1)/2
		var sinc float64
		if m == 0 {
			sinc = cutoff
		} else {
			sinc = math.Sin(math.Pi*cutoff*m) / (math.Pi * m)
		}
		hann := 0.5 - 0.5*math.Cos(2*math.Pi*float64(i)/float64(n-1))
		synthWindow[i] = math.Round(sinc*hann/dCoeffStep) * dCoeffStep
	}
}

// SynthesisFIFO is one channel's 1024-sample polyphase filterbank history.
type SynthesisFIFO struct {
	buf [fifoLen]float64
}

// Synthesize runs the 32-band polyphase synthesis filterbank over one
// granule's 576 frequency-domain samples (already IMDCT'd and frequency
// inverted) and writes 576 PCM samples to out.
func (f *SynthesisFIFO) Synthesize(samples *[576]float32, out *[576]float32) {
	for sb := 0; sb < 18; sb++ {
		var s [32]float64
		for i := 0; i < 32; i++ {
			s[i] = float64(samples[i*18+sb])
		}

		for i := fifoLen - 1; i >= 64; i-- {
			f.buf[i] = f.buf[i-64]
		}
		for i := 0; i < 64; i++ {
			var sum float64
			for j := 0; j < 32; j++ {
				sum += s[j] * synthMatrix[i][j]
			}
			f.buf[i] = sum
		}

		var u [512]float64
		for i := 0; i < 8; i++ {
			for j := 0; j < 32; j++ {
				u[i*64+j] = f.buf[i*128+j]
				u[i*64+j+32] = f.buf[i*128+j+96]
			}
		}
		for i := range u {
			u[i] *= synthWindow[i]
		}

		for i := 0; i < 32; i++ {
			var sum float64
			for j := 0; j < 16; j++ {
				sum += u[j*32+i]
			}
			out[32*sb+i] = float32(sum)
		}
	}
}

// FrequencyInversion negates every odd sample of every odd-indexed
// 18-sample subband block in place, compensating the filterbank's
// spectral flip.
func FrequencyInversion(samples *[576]float32) {
	for sb := 1; sb < 32; sb += 2 {
		for sample := 1; sample < 18; sample += 2 {
			samples[18*sb+sample] *= -1
		}
	}
}
