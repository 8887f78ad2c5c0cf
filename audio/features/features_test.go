package features

import (
	"errors"
	"math"
	"testing"
	"time"

	"github.com/kbukum/voicecheck/audio/audiotest"
)

const rate = 16000

func TestExtract_SinePitch(t *testing.T) {
	for _, freq := range []float64{110, 220, 330} {
		t.Run("", func(t *testing.T) {
			f, err := Extract(audiotest.Sine(freq, 0.5, time.Second, rate), rate, DefaultConfig())
			if err != nil {
				t.Fatalf("Extract failed: %v", err)
			}
			if f.VoicedFrames != f.Frames {
				t.Errorf("expected every frame voiced, got %d of %d", f.VoicedFrames, f.Frames)
			}
			if math.Abs(f.Pitch.Mean-freq) > 2 {
				t.Errorf("expected pitch ~%.0f Hz, got %.2f", freq, f.Pitch.Mean)
			}
			if f.Pitch.Std > 1 || f.Pitch.Range() > 3 {
				t.Errorf("constant tone should have stable pitch, got std=%.2f range=%.2f", f.Pitch.Std, f.Pitch.Range())
			}
			if wantZCR := 2 * freq / rate; math.Abs(f.ZeroCrossingRate.Mean-wantZCR) > 0.002 {
				t.Errorf("expected zcr ~%.4f, got %.4f", wantZCR, f.ZeroCrossingRate.Mean)
			}
			if math.Abs(f.SpectralCentroid.Mean-freq) > 50 {
				t.Errorf("expected centroid near %.0f Hz, got %.1f", freq, f.SpectralCentroid.Mean)
			}
			if wantRMS := 0.5 / math.Sqrt2; math.Abs(f.Energy.Mean-wantRMS) > 0.01 {
				t.Errorf("expected rms ~%.3f, got %.3f", wantRMS, f.Energy.Mean)
			}
		})
	}
}

func TestExtract_ToneIsFlat(t *testing.T) {
	f, err := Extract(audiotest.Sine(220, 0.5, 2*time.Second, rate), rate, DefaultConfig())
	if err != nil {
		t.Fatalf("Extract failed: %v", err)
	}
	if f.ZeroCrossingRate.Std > 0.01 || f.Energy.Std > 0.01 {
		t.Errorf("tone should have flat zcr/energy, got zcr std %.4f energy std %.4f", f.ZeroCrossingRate.Std, f.Energy.Std)
	}
	if f.SpectralCentroid.Std > 500 || f.SpectralRolloff.Std > 500 {
		t.Errorf("tone should have flat spectrum, got centroid std %.1f rolloff std %.1f", f.SpectralCentroid.Std, f.SpectralRolloff.Std)
	}
	if f.MFCCStdMean() > 1 {
		t.Errorf("tone should have near-constant MFCCs, got %.3f", f.MFCCStdMean())
	}
	if len(f.MFCCStd) != 13 {
		t.Errorf("expected 13 MFCC coefficients, got %d", len(f.MFCCStd))
	}
}

func TestExtract_SpeechLikeVaries(t *testing.T) {
	f, err := Extract(audiotest.SpeechLike(4*time.Second, rate), rate, DefaultConfig())
	if err != nil {
		t.Fatalf("Extract failed: %v", err)
	}
	if f.VoicedFrames == 0 || f.VoicedFrames == f.Frames {
		t.Errorf("expected a mix of voiced and unvoiced frames, got %d of %d", f.VoicedFrames, f.Frames)
	}
	if f.Pitch.Std < 20 || f.Pitch.Range() < 100 {
		t.Errorf("gliding pitch should vary, got std=%.1f range=%.1f", f.Pitch.Std, f.Pitch.Range())
	}
	if f.ZeroCrossingRate.Std < 0.01 {
		t.Errorf("noise bursts should move zcr, got std %.4f", f.ZeroCrossingRate.Std)
	}
	if f.Energy.Std < 0.01 {
		t.Errorf("expected energy variation, got std %.4f", f.Energy.Std)
	}
	if f.SpectralCentroid.Std < 500 || f.SpectralRolloff.Std < 500 {
		t.Errorf("expected spectral variation, got centroid std %.1f rolloff std %.1f", f.SpectralCentroid.Std, f.SpectralRolloff.Std)
	}
}

func TestExtract_Silence(t *testing.T) {
	f, err := Extract(make([]float64, rate), rate, DefaultConfig())
	if err != nil {
		t.Fatalf("Extract failed: %v", err)
	}
	if f.VoicedFrames != 0 || f.Pitch != (Summary{}) {
		t.Errorf("silence has no pitch, got %+v", f.Pitch)
	}
	if f.Energy.Max != 0 || f.SpectralCentroid.Max != 0 {
		t.Errorf("silence has no energy or centroid, got energy %+v centroid %+v", f.Energy, f.SpectralCentroid)
	}
}

func TestExtract_ShortClipPadded(t *testing.T) {
	f, err := Extract(audiotest.Sine(220, 0.5, 10*time.Millisecond, rate), rate, DefaultConfig())
	if err != nil {
		t.Fatalf("Extract failed: %v", err)
	}
	if f.Frames != 1 {
		t.Errorf("expected a single padded frame, got %d", f.Frames)
	}
}

func TestExtract_Errors(t *testing.T) {
	if _, err := Extract(nil, rate, DefaultConfig()); !errors.Is(err, ErrNoAudio) {
		t.Errorf("expected ErrNoAudio, got %v", err)
	}
	if _, err := Extract([]float64{1}, 0, DefaultConfig()); err == nil {
		t.Error("expected error for zero sample rate")
	}
	cfg := DefaultConfig()
	cfg.FrameSize = 1000
	if _, err := Extract([]float64{1}, rate, cfg); err == nil {
		t.Error("expected error for non power of two frame size")
	}
}

func TestFFT(t *testing.T) {
	t.Run("impulse is flat", func(t *testing.T) {
		re := make([]float64, 16)
		im := make([]float64, 16)
		re[0] = 1
		fft(re, im)
		for k := range re {
			if math.Abs(math.Hypot(re[k], im[k])-1) > 1e-12 {
				t.Fatalf("bin %d: expected magnitude 1, got %v", k, math.Hypot(re[k], im[k]))
			}
		}
	})

	t.Run("cosine peaks at its bin", func(t *testing.T) {
		const n, bin = 64, 5
		re := make([]float64, n)
		im := make([]float64, n)
		for i := range re {
			re[i] = math.Cos(2 * math.Pi * bin * float64(i) / n)
		}
		fft(re, im)
		for k := 0; k <= n/2; k++ {
			mag := math.Hypot(re[k], im[k])
			if k == bin && math.Abs(mag-n/2) > 1e-9 {
				t.Errorf("expected magnitude %d at bin %d, got %v", n/2, bin, mag)
			}
			if k != bin && mag > 1e-9 {
				t.Errorf("expected no energy at bin %d, got %v", k, mag)
			}
		}
	})
}

func TestMelFilterBank(t *testing.T) {
	bank := melFilterBank(40, 512, rate, 0, rate/2)
	if len(bank) != 40 || len(bank[0]) != 257 {
		t.Fatalf("unexpected bank shape %dx%d", len(bank), len(bank[0]))
	}
	for m, filter := range bank {
		peak := 0.0
		for _, w := range filter {
			if w < 0 || w > 1 {
				t.Fatalf("filter %d has weight %v outside [0,1]", m, w)
			}
			peak = math.Max(peak, w)
		}
		if peak == 0 {
			t.Errorf("filter %d is empty", m)
		}
	}
}

func TestDCTMatrixOrthonormal(t *testing.T) {
	const n = 32
	m := dctMatrix(n, n)
	for a := 0; a < n; a++ {
		for b := 0; b < n; b++ {
			dot := 0.0
			for i := 0; i < n; i++ {
				dot += m[a][i] * m[b][i]
			}
			want := 0.0
			if a == b {
				want = 1
			}
			if math.Abs(dot-want) > 1e-9 {
				t.Fatalf("rows %d,%d: dot %v want %v", a, b, dot, want)
			}
		}
	}
}

func TestSummarize(t *testing.T) {
	s := summarize([]float64{2, 4, 4, 4, 5, 5, 7, 9})
	if s.Mean != 5 || s.Std != 2 || s.Min != 2 || s.Max != 9 || s.Range() != 7 {
		t.Errorf("unexpected summary %+v", s)
	}
	if summarize(nil) != (Summary{}) {
		t.Error("empty series should summarize to zeros")
	}
}
