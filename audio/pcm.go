package audio

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"io"
	"time"

	gomp3 "github.com/hajimehoshi/go-mp3"

	"github.com/kbukum/voicecheck/errors"
)

// PCM is mono audio as float samples in [-1, 1].
type PCM struct {
	Samples    []float64
	SampleRate int
}

// Duration returns the length of the audio.
func (p *PCM) Duration() time.Duration {
	if p.SampleRate <= 0 {
		return 0
	}
	return time.Duration(float64(len(p.Samples)) / float64(p.SampleRate) * float64(time.Second))
}

// bytesPerFrame is what go-mp3 emits per sample frame: 16-bit little-endian stereo.
const bytesPerFrame = 4

// DecodePCM decodes MP3 data into mono PCM, reading at most limit of audio.
// A stream that breaks after some audio was decoded yields the audio read so far.
// Undecodable data is a DECODE_ERROR, never a backend failure.
func DecodePCM(data []byte, limit time.Duration) (*PCM, error) {
	dec, err := gomp3.NewDecoder(bytes.NewReader(data))
	if err != nil {
		return nil, errors.DecodeFailed("MP3 stream could not be decoded").WithCause(err)
	}
	rate := dec.SampleRate()
	if rate <= 0 {
		return nil, errors.DecodeFailed(fmt.Sprintf("MP3 stream has invalid sample rate %d", rate))
	}

	var r io.Reader = dec
	if limit > 0 {
		maxFrames := int64(limit.Seconds() * float64(rate))
		r = io.LimitReader(dec, maxFrames*bytesPerFrame)
	}
	raw, err := io.ReadAll(r)
	if len(raw) < bytesPerFrame {
		if err == nil {
			err = io.ErrUnexpectedEOF
		}
		return nil, errors.DecodeFailed("MP3 stream has no audio samples").WithCause(err)
	}

	return &PCM{Samples: MixToMono(raw), SampleRate: rate}, nil
}

// MixToMono averages interleaved 16-bit little-endian stereo into mono floats.
func MixToMono(raw []byte) []float64 {
	n := len(raw) / bytesPerFrame
	out := make([]float64, n)
	for i := 0; i < n; i++ {
		l := int16(binary.LittleEndian.Uint16(raw[i*4:]))
		r := int16(binary.LittleEndian.Uint16(raw[i*4+2:]))
		out[i] = (float64(l) + float64(r)) / 2 / 32768
	}
	return out
}

// Resample converts to rate using linear interpolation. Analysis only needs
// the speech band, so no anti-aliasing filter is applied.
func (p *PCM) Resample(rate int) *PCM {
	if rate <= 0 || rate == p.SampleRate || len(p.Samples) == 0 {
		return p
	}
	ratio := float64(p.SampleRate) / float64(rate)
	n := int(int64(len(p.Samples)) * int64(rate) / int64(p.SampleRate))
	out := make([]float64, n)
	last := len(p.Samples) - 1
	for i := range out {
		pos := float64(i) * ratio
		j := int(pos)
		if j >= last {
			out[i] = p.Samples[last]
			continue
		}
		frac := pos - float64(j)
		out[i] = p.Samples[j]*(1-frac) + p.Samples[j+1]*frac
	}
	return &PCM{Samples: out, SampleRate: rate}
}

// Truncate keeps at most d of audio.
func (p *PCM) Truncate(d time.Duration) *PCM {
	maxLen := int(d.Seconds() * float64(p.SampleRate))
	if d <= 0 || len(p.Samples) <= maxLen {
		return p
	}
	return &PCM{Samples: p.Samples[:maxLen], SampleRate: p.SampleRate}
}
