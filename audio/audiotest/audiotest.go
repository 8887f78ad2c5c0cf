// Package audiotest provides deterministic audio fixtures for tests: MPEG
// frame streams that pass the decoder checks and synthetic PCM signals with
// known pitch and variation.
package audiotest

import (
	"bytes"
	"encoding/base64"
	"math"
	"math/rand/v2"
	"time"
)

// FrameHeader is an MPEG-1 Layer III header: 128 kbps, 44.1 kHz, joint stereo, no CRC.
var FrameHeader = []byte{0xFF, 0xFB, 0x90, 0x64}

const (
	// FrameSize is the byte length of one frame with FrameHeader.
	FrameSize = 417
	// FrameDuration is 1152 samples at 44.1 kHz.
	FrameDuration = time.Second * 1152 / 44100
)

// ID3Tag is a minimal empty ID3v2.4 tag as written by most encoders.
var ID3Tag = []byte{'I', 'D', '3', 0x04, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00}

// MP3Frames returns n silent MPEG frames.
func MP3Frames(n int) []byte {
	var buf bytes.Buffer
	frame := make([]byte, FrameSize)
	copy(frame, FrameHeader)
	for i := 0; i < n; i++ {
		buf.Write(frame)
	}
	return buf.Bytes()
}

// MP3Base64 returns MP3Frames(n) prefixed with an ID3 tag, base64 encoded.
func MP3Base64(n int) string {
	return base64.StdEncoding.EncodeToString(append(append([]byte{}, ID3Tag...), MP3Frames(n)...))
}

// FramesFor returns how many frames cover d.
func FramesFor(d time.Duration) int {
	return int(math.Ceil(float64(d) / float64(FrameDuration)))
}

// Sine returns a constant tone.
func Sine(freq, amplitude float64, d time.Duration, sampleRate int) []float64 {
	n := int(d.Seconds() * float64(sampleRate))
	out := make([]float64, n)
	for i := range out {
		out[i] = amplitude * math.Sin(2*math.Pi*freq*float64(i)/float64(sampleRate))
	}
	return out
}

// Chirp returns a tone whose frequency moves linearly from f0 to f1.
func Chirp(f0, f1, amplitude float64, d time.Duration, sampleRate int) []float64 {
	n := int(d.Seconds() * float64(sampleRate))
	out := make([]float64, n)
	phase := 0.0
	for i := range out {
		f := f0 + (f1-f0)*float64(i)/float64(n)
		phase += 2 * math.Pi * f / float64(sampleRate)
		out[i] = amplitude * math.Sin(phase)
	}
	return out
}

// SpeechLike alternates a gliding voiced tone with noise bursts every 250 ms,
// giving the pitch, energy and spectral movement of natural speech. The
// noise is seeded so the signal is identical on every call.
func SpeechLike(d time.Duration, sampleRate int) []float64 {
	out := Chirp(120, 320, 0.6, d, sampleRate)
	rng := rand.New(rand.NewPCG(7, 11))
	segment := sampleRate / 4
	for i := range out {
		if (i/segment)%2 == 1 {
			out[i] = 0.3 * (2*rng.Float64() - 1)
		}
	}
	return out
}
