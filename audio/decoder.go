package audio

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"strings"
	"time"
	"unicode"

	"github.com/tcolgate/mp3"

	"github.com/kbukum/voicecheck/errors"
	"github.com/kbukum/voicecheck/util"
)

// Clip is a decoded audio payload that passed every Decoder check.
type Clip struct {
	// Data holds the raw MP3 bytes.
	Data []byte
	// Frames is the number of MPEG audio frames found.
	Frames int
	// Duration is the summed duration of all frames.
	Duration time.Duration
	// Skipped counts bytes that were not part of an audio frame (ID3 tags, padding, junk).
	Skipped int
}

// Decoder validates and decodes base64 MP3 payloads.
type Decoder struct {
	maxBytes    int64
	maxDuration time.Duration
}

// NewDecoder creates a Decoder enforcing cfg's limits. cfg should have
// defaults applied.
func NewDecoder(cfg Config) *Decoder {
	return &Decoder{
		maxBytes:    cfg.MaxSizeBytes(),
		maxDuration: cfg.MaxDuration,
	}
}

// Decode turns a base64 payload into a Clip. Whitespace is ignored so
// line-wrapped output of base64 tools is accepted.
//
// Errors are *errors.AppError: DECODE_ERROR for malformed base64, a
// non-MP3 payload or a clip longer than the limit, and PAYLOAD_TOO_LARGE
// for a payload over the size limit.
func (d *Decoder) Decode(payload string) (*Clip, error) {
	encoded := stripSpace(payload)
	if encoded == "" {
		return nil, errors.DecodeFailed("empty audio payload")
	}

	// Reject oversized payloads before allocating the decoded buffer.
	if d.maxBytes > 0 && decodedLen(encoded) > d.maxBytes {
		return nil, errors.PayloadTooLarge(util.FormatSize(d.maxBytes)).
			WithDetail("encoded_bytes", len(encoded))
	}

	data, err := base64.StdEncoding.Strict().DecodeString(encoded)
	if err != nil {
		return nil, errors.DecodeFailed("Invalid Base64 encoding").WithCause(err)
	}
	if len(data) == 0 {
		return nil, errors.DecodeFailed("empty audio payload")
	}

	clip, err := scanFrames(data)
	if err != nil {
		return nil, err
	}
	if d.maxDuration > 0 && clip.Duration > d.maxDuration {
		return nil, errors.DecodeFailed(fmt.Sprintf("audio duration %.1fs exceeds maximum of %s",
			clip.Duration.Seconds(), d.maxDuration)).
			WithDetail("duration", clip.Duration.String())
	}
	return clip, nil
}

// minFrameRun is how many back-to-back frames with the same version, layer
// and sample rate a stream must contain. Arbitrary binary data produces
// isolated sync words, not chains of them.
const minFrameRun = 2

type streamFormat struct {
	version mp3.FrameVersion
	layer   mp3.FrameLayer
	rate    mp3.FrameSampleRate
}

// scanFrames walks the MPEG frames of data after any ID3v2 tag. Frames must
// chain and cover at least half of the remaining bytes.
func scanFrames(data []byte) (*Clip, error) {
	tag := id3Size(data)
	body := data[tag:]
	dec := mp3.NewDecoder(bytes.NewReader(body))
	clip := &Clip{Data: data, Skipped: tag}

	var (
		frame      mp3.Frame
		prev       streamFormat
		run, best  int
		frameBytes int
	)
	for {
		skipped := 0
		if err := dec.Decode(&frame, &skipped); err != nil {
			// io.EOF ends a clean stream; a truncated trailing frame ends it too.
			break
		}
		h := frame.Header()
		format := streamFormat{h.Version(), h.Layer(), h.SampleRate()}
		if run > 0 && skipped == 0 && format == prev {
			run++
		} else {
			run = 1
		}
		prev = format
		best = max(best, run)

		clip.Skipped += skipped
		clip.Frames++
		clip.Duration += frame.Duration()
		frameBytes += frame.Size()
	}

	if clip.Frames == 0 {
		return nil, errors.DecodeFailed("no MP3 audio frames found")
	}
	if best < minFrameRun || frameBytes*2 < len(body) {
		return nil, errors.DecodeFailed("payload is not an MP3 audio stream").
			WithDetail("frames", clip.Frames)
	}
	return clip, nil
}

// id3Size returns the length of a leading ID3v2 tag, 0 when there is none.
func id3Size(data []byte) int {
	if len(data) < 10 || string(data[:3]) != "ID3" {
		return 0
	}
	// Tag size is a 28-bit syncsafe integer excluding the 10 byte header.
	size := 10 + (int(data[6]&0x7F)<<21 | int(data[7]&0x7F)<<14 | int(data[8]&0x7F)<<7 | int(data[9]&0x7F))
	if data[5]&0x10 != 0 {
		size += 10 // footer
	}
	return min(size, len(data))
}

func stripSpace(s string) string {
	if strings.IndexFunc(s, unicode.IsSpace) < 0 {
		return s
	}
	return strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return r
	}, s)
}

// decodedLen is the exact decoded size of a well-formed padded payload.
func decodedLen(encoded string) int64 {
	n := int64(len(encoded)) / 4 * 3
	if strings.HasSuffix(encoded, "==") {
		n -= 2
	} else if strings.HasSuffix(encoded, "=") {
		n--
	}
	return n
}
