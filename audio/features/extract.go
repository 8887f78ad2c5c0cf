package features

import (
	"errors"
	"fmt"
	"math"
	"time"
)

// ErrNoAudio is returned for an empty sample slice.
var ErrNoAudio = errors.New("no audio samples")

// Config controls frame analysis.
type Config struct {
	FrameSize      int     // samples per frame, power of two (default 2048)
	HopSize        int     // samples between frame starts (default 512)
	NumMels        int     // mel bands feeding the MFCCs (default 128)
	NumMFCC        int     // cepstral coefficients kept (default 13)
	RolloffPercent float64 // spectral energy share below the rolloff (default 0.85)
	MinPitch       float64 // lowest pitch searched in Hz (default 60)
	MaxPitch       float64 // highest pitch searched in Hz (default 500)
	// VoicingThreshold is the normalized autocorrelation a frame needs to
	// count as voiced (default 0.5).
	VoicingThreshold float64
	// SilenceRMS is the RMS below which a frame is not searched for pitch (default 0.01).
	SilenceRMS float64
}

// DefaultConfig returns the 16 kHz speech analysis defaults.
func DefaultConfig() Config {
	return Config{
		FrameSize:        2048,
		HopSize:          512,
		NumMels:          128,
		NumMFCC:          13,
		RolloffPercent:   0.85,
		MinPitch:         60,
		MaxPitch:         500,
		VoicingThreshold: 0.5,
		SilenceRMS:       0.01,
	}
}

// Features are per-clip statistics over all analysis frames.
type Features struct {
	Duration     time.Duration `json:"duration"`
	SampleRate   int           `json:"sample_rate"`
	Frames       int           `json:"frames"`
	VoicedFrames int           `json:"voiced_frames"`

	// Pitch summarizes voiced frames only; all zeros when none were voiced.
	Pitch            Summary `json:"pitch"`
	ZeroCrossingRate Summary `json:"zero_crossing_rate"`
	Energy           Summary `json:"energy"`
	SpectralCentroid Summary `json:"spectral_centroid"`
	SpectralRolloff  Summary `json:"spectral_rolloff"`
	// MFCCStd is the standard deviation of each cepstral coefficient.
	MFCCStd []float64 `json:"mfcc_std"`
}

// MFCCStdMean averages MFCCStd.
func (f *Features) MFCCStdMean() float64 {
	if len(f.MFCCStd) == 0 {
		return 0
	}
	sum := 0.0
	for _, v := range f.MFCCStd {
		sum += v
	}
	return sum / float64(len(f.MFCCStd))
}

// Extract analyses mono samples at sampleRate. Clips shorter than one frame
// are zero-padded to a single frame.
func Extract(samples []float64, sampleRate int, cfg Config) (*Features, error) {
	if len(samples) == 0 {
		return nil, ErrNoAudio
	}
	if sampleRate <= 0 {
		return nil, fmt.Errorf("invalid sample rate %d", sampleRate)
	}
	if !isPowerOfTwo(cfg.FrameSize) || cfg.HopSize <= 0 {
		return nil, fmt.Errorf("frame size %d must be a power of two and hop %d positive", cfg.FrameSize, cfg.HopSize)
	}

	n := cfg.FrameSize
	if len(samples) < n {
		padded := make([]float64, n)
		copy(padded, samples)
		samples = padded
	}

	a := newAnalyzer(cfg, sampleRate)
	numFrames := (len(samples)-n)/cfg.HopSize + 1

	var (
		zcr       = make([]float64, 0, numFrames)
		rms       = make([]float64, 0, numFrames)
		centroid  = make([]float64, 0, numFrames)
		rolloff   = make([]float64, 0, numFrames)
		pitch     = make([]float64, 0, numFrames)
		melFrames = make([][]float64, 0, numFrames)
	)
	for t := 0; t < numFrames; t++ {
		frame := samples[t*cfg.HopSize : t*cfg.HopSize+n]

		zcr = append(zcr, zeroCrossingRate(frame))
		e := rootMeanSquare(frame)
		rms = append(rms, e)

		c, r, mel := a.spectrum(frame)
		centroid = append(centroid, c)
		rolloff = append(rolloff, r)
		melFrames = append(melFrames, mel)

		if e >= cfg.SilenceRMS {
			if f0, ok := a.pitch(frame); ok {
				pitch = append(pitch, f0)
			}
		}
	}

	return &Features{
		Duration:         time.Duration(float64(len(samples)) / float64(sampleRate) * float64(time.Second)),
		SampleRate:       sampleRate,
		Frames:           numFrames,
		VoicedFrames:     len(pitch),
		Pitch:            summarize(pitch),
		ZeroCrossingRate: summarize(zcr),
		Energy:           summarize(rms),
		SpectralCentroid: summarize(centroid),
		SpectralRolloff:  summarize(rolloff),
		MFCCStd:          a.mfccStd(melFrames),
	}, nil
}

// analyzer holds per-sample-rate tables and scratch buffers.
type analyzer struct {
	cfg        Config
	sampleRate int
	window     []float64
	melBank    [][]float64
	dct        [][]float64
	re, im     []float64
	corr       []float64
	minLag     int
	maxLag     int
}

func newAnalyzer(cfg Config, sampleRate int) *analyzer {
	n := cfg.FrameSize
	a := &analyzer{
		cfg:        cfg,
		sampleRate: sampleRate,
		window:     hannWindow(n),
		melBank:    melFilterBank(cfg.NumMels, n, sampleRate, 0, float64(sampleRate)/2),
		dct:        dctMatrix(cfg.NumMFCC, cfg.NumMels),
		re:         make([]float64, n),
		im:         make([]float64, n),
	}
	a.minLag = max(2, int(float64(sampleRate)/cfg.MaxPitch))
	a.maxLag = min(n/2, int(math.Ceil(float64(sampleRate)/cfg.MinPitch)))
	a.corr = make([]float64, a.maxLag+2)
	return a
}

// spectrum returns the spectral centroid and rolloff in Hz and the mel
// band powers of one frame.
func (a *analyzer) spectrum(frame []float64) (centroid, rolloff float64, mel []float64) {
	for i, x := range frame {
		a.re[i] = x * a.window[i]
		a.im[i] = 0
	}
	fft(a.re, a.im)

	bins := len(frame)/2 + 1
	binHz := float64(a.sampleRate) / float64(len(frame))
	mag := make([]float64, bins)
	total, weighted := 0.0, 0.0
	for k := 0; k < bins; k++ {
		mag[k] = math.Hypot(a.re[k], a.im[k])
		total += mag[k]
		weighted += float64(k) * binHz * mag[k]
	}

	if total > 0 {
		centroid = weighted / total
		threshold := a.cfg.RolloffPercent * total
		cum := 0.0
		for k := 0; k < bins; k++ {
			cum += mag[k]
			if cum >= threshold {
				rolloff = float64(k) * binHz
				break
			}
		}
	}

	mel = make([]float64, len(a.melBank))
	for m, filter := range a.melBank {
		sum := 0.0
		for k, w := range filter {
			if w != 0 {
				sum += w * mag[k] * mag[k]
			}
		}
		mel[m] = sum
	}
	return centroid, rolloff, mel
}

// pitch estimates the fundamental frequency with normalized autocorrelation.
// The first peak within 90% of the strongest one is taken to avoid octave errors.
func (a *analyzer) pitch(frame []float64) (float64, bool) {
	lo, hi := a.minLag-1, a.maxLag+1
	w := len(frame) - hi
	if lo < 1 || w <= 0 {
		return 0, false
	}

	best := 0.0
	for lag := lo; lag <= hi; lag++ {
		var xy, xx, yy float64
		for i := 0; i < w; i++ {
			x, y := frame[i], frame[i+lag]
			xy += x * y
			xx += x * x
			yy += y * y
		}
		r := 0.0
		if xx > 0 && yy > 0 {
			r = xy / math.Sqrt(xx*yy)
		}
		a.corr[lag] = r
		if lag >= a.minLag && lag <= a.maxLag && r > best {
			best = r
		}
	}
	if best < a.cfg.VoicingThreshold {
		return 0, false
	}

	for lag := a.minLag; lag <= a.maxLag; lag++ {
		r := a.corr[lag]
		if r < 0.9*best || r < a.corr[lag-1] || r < a.corr[lag+1] {
			continue
		}
		// Parabolic interpolation around the peak.
		den := a.corr[lag-1] - 2*r + a.corr[lag+1]
		offset := 0.0
		if den != 0 {
			offset = 0.5 * (a.corr[lag-1] - a.corr[lag+1]) / den
		}
		return float64(a.sampleRate) / (float64(lag) + offset), true
	}
	return 0, false
}

// mfccStd converts mel powers to MFCCs and returns each coefficient's
// standard deviation across frames.
func (a *analyzer) mfccStd(melFrames [][]float64) []float64 {
	powerToDB(melFrames, 1e-10, 80)

	series := make([][]float64, len(a.dct))
	for _, mel := range melFrames {
		for k, row := range a.dct {
			c := 0.0
			for i, v := range mel {
				c += row[i] * v
			}
			series[k] = append(series[k], c)
		}
	}

	out := make([]float64, len(series))
	for k, s := range series {
		out[k] = summarize(s).Std
	}
	return out
}

func zeroCrossingRate(frame []float64) float64 {
	crossings := 0
	for i := 1; i < len(frame); i++ {
		if (frame[i] >= 0) != (frame[i-1] >= 0) {
			crossings++
		}
	}
	return float64(crossings) / float64(len(frame))
}

func rootMeanSquare(frame []float64) float64 {
	sum := 0.0
	for _, x := range frame {
		sum += x * x
	}
	return math.Sqrt(sum / float64(len(frame)))
}
