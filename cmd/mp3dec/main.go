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

// Command mp3dec decodes an MPEG-1 Layer III file to a WAV file, or plays
// it directly through the system's audio device.
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"time"

	"github.com/go-audio/audio"
	"github.com/go-audio/wav"
	"github.com/hajimehoshi/oto/v2"

	mp3 "github.com/FlorisCreyf/mp3-decoder"
)

func main() {
	log.SetFlags(0)
	log.SetPrefix("mp3dec: ")

	wavOut := flag.String("wav", "", "write decoded PCM to this WAV file instead of playing it")
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s [-wav out.wav] file.mp3\n", os.Args[0])
		flag.PrintDefaults()
	}
	flag.Parse()

	if flag.NArg() != 1 {
		flag.Usage()
		os.Exit(2)
	}

	if err := run(flag.Arg(0), *wavOut); err != nil {
		log.Fatal(err)
	}
}

func run(path, wavOut string) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("opening %s: %w", path, err)
	}
	defer f.Close()

	d, err := mp3.NewDecoder(f)
	if err != nil {
		return fmt.Errorf("decoding %s: %w", path, err)
	}

	if wavOut != "" {
		return decodeToWAV(d, wavOut)
	}
	return play(d)
}

// decodeToWAV drains d's native float32 samples straight into a stereo
// 16-bit WAV file, skipping the lossy round trip Read's io.Reader contract
// would otherwise force.
func decodeToWAV(d *mp3.Decoder, path string) error {
	out, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	defer out.Close()

	enc := wav.NewEncoder(out, d.SampleRate(), 16, 2, 1)
	defer enc.Close()

	buf := make([]float32, 4096)
	intBuf := &audio.IntBuffer{
		Format: &audio.Format{NumChannels: 2, SampleRate: d.SampleRate()},
		Data:   make([]int, len(buf)),
	}
	for {
		n, err := d.ReadSamples(buf)
		if n > 0 {
			intBuf.Data = intBuf.Data[:n]
			for i := 0; i < n; i++ {
				intBuf.Data[i] = int(clampInt16(buf[i]))
			}
			if err := enc.Write(intBuf); err != nil {
				return fmt.Errorf("writing %s: %w", path, err)
			}
		}
		if err != nil {
			if errors.Is(err, io.EOF) {
				return nil
			}
			return fmt.Errorf("decoding: %w", err)
		}
	}
}

func clampInt16(v float32) int16 {
	const max = 32767
	const min = -32768
	if v > max {
		return max
	}
	if v < min {
		return min
	}
	return int16(v)
}

// play streams d to the default audio device until the stream ends.
func play(d *mp3.Decoder) error {
	ctx, ready, err := oto.NewContext(d.SampleRate(), 2, 2)
	if err != nil {
		return fmt.Errorf("opening audio device: %w", err)
	}
	<-ready

	p := ctx.NewPlayer(d)
	defer p.Close()
	p.Play()

	for p.IsPlaying() {
		time.Sleep(time.Millisecond * 100)
	}
	return nil
}
