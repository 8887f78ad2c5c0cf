// Package audio turns the base64 payload of a detection request into a
// validated MP3 clip and, for analysis, into mono PCM.
//
// Decoder enforces the payload limits: strict base64, a maximum decoded
// size, at least one MPEG audio frame and a maximum duration. Frame walking
// uses github.com/tcolgate/mp3, which skips ID3 tags and junk between frames.
//
// DecodePCM decodes MP3 to 16-bit PCM with github.com/hajimehoshi/go-mp3 and
// mixes it down to mono float samples in [-1, 1].
package audio
