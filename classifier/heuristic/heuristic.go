// Package heuristic classifies clips from acoustic statistics: synthetic
// speech tends to hold pitch, energy and spectrum steadier than a human
// speaker does. Seven cues each vote AI or human and the normalised vote
// becomes the confidence score.
package heuristic

import (
	"context"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/kbukum/voicecheck/audio"
	"github.com/kbukum/voicecheck/audio/features"
	"github.com/kbukum/voicecheck/classifier"
	"github.com/kbukum/voicecheck/provider"
)

const (
	// ProviderName is the registered name for the heuristic backend.
	ProviderName = classifier.BackendHeuristic

	// AnalysisRate is the sample rate features are computed at.
	AnalysisRate = 16000

	humanExplanation = "Natural speech patterns with expected variations detected"
	aiPrefix         = "Unnatural patterns detected: "
	maxReasons       = 3
)

// cue is one vote. An AI vote adds weight to the AI score, a human vote
// always adds 0.1 to the human score.
type cue struct {
	reason string
	weight float64
	ai     func(f *features.Features) bool
}

var cues = []cue{
	{"unusually consistent pitch", 0.15, func(f *features.Features) bool { return f.Pitch.Std < 20 }},
	{"limited spectral variation", 0.1, func(f *features.Features) bool { return f.SpectralCentroid.Std < 500 }},
	{"unnatural zero crossing patterns", 0.1, func(f *features.Features) bool { return f.ZeroCrossingRate.Std < 0.01 }},
	{"unnatural energy consistency", 0.1, func(f *features.Features) bool { return f.Energy.Std < 0.01 }},
	{"atypical MFCC patterns", 0.1, func(f *features.Features) bool { return f.MFCCStdMean() < 5 }},
	{"limited spectral rolloff variation", 0.1, func(f *features.Features) bool { return f.SpectralRolloff.Std < 500 }},
	{"restricted pitch range", 0.1, func(f *features.Features) bool { return f.Pitch.Range() < 100 }},
}

const humanVote = 0.1

// Classifier is the feature based backend. It holds no per-request state.
type Classifier struct {
	window   time.Duration
	features features.Config
}

// New creates a heuristic classifier analysing at most cfg.AnalysisWindow of audio.
func New(cfg classifier.Config) *Classifier {
	cfg.ApplyDefaults()
	return &Classifier{
		window:   cfg.AnalysisWindow,
		features: features.DefaultConfig(),
	}
}

// Factory returns a provider.Factory for the registry.
func Factory() provider.Factory[classifier.Classifier, classifier.Config] {
	return func(cfg classifier.Config) (classifier.Classifier, error) {
		return New(cfg), nil
	}
}

// Name returns the provider name.
func (c *Classifier) Name() string { return ProviderName }

// IsAvailable always reports true; the backend runs in process.
func (c *Classifier) IsAvailable(context.Context) bool { return true }

// Classify decodes the clip, resamples it to AnalysisRate mono and scores
// its features. Language does not change the thresholds.
func (c *Classifier) Classify(ctx context.Context, in classifier.Input) (*classifier.Result, error) {
	if in.Audio == nil || len(in.Audio.Data) == 0 {
		return nil, fmt.Errorf("heuristic: no audio")
	}

	pcm, err := audio.DecodePCM(in.Audio.Data, c.window)
	if err != nil {
		return nil, fmt.Errorf("heuristic: %w", err)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	pcm = pcm.Resample(AnalysisRate).Truncate(c.window)
	f, err := features.Extract(pcm.Samples, pcm.SampleRate, c.features)
	if err != nil {
		return nil, fmt.Errorf("heuristic: %w", err)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return Score(f), nil
}

// Score turns features into a verdict. The winner's normalised vote plus
// 0.1 is the confidence, clamped to [0.5, 0.99].
func Score(f *features.Features) *classifier.Result {
	var aiScore, humanScore float64
	var reasons []string
	for _, c := range cues {
		if c.ai(f) {
			aiScore += c.weight
			reasons = append(reasons, c.reason)
		} else {
			humanScore += humanVote
		}
	}

	if total := aiScore + humanScore; total > 0 {
		aiScore /= total
		humanScore /= total
	}

	if aiScore > humanScore {
		return &classifier.Result{
			Label:       classifier.LabelAIGenerated,
			Score:       confidence(aiScore),
			Explanation: aiPrefix + strings.Join(reasons[:min(len(reasons), maxReasons)], ", "),
		}
	}
	return &classifier.Result{
		Label:       classifier.LabelHuman,
		Score:       confidence(humanScore),
		Explanation: humanExplanation,
	}
}

func confidence(winner float64) float64 {
	return math.Max(0.5, math.Min(0.99, winner+0.1))
}
