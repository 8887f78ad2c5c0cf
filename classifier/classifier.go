package classifier

import (
	"context"
	"fmt"
	"math"

	"github.com/kbukum/voicecheck/audio"
	"github.com/kbukum/voicecheck/provider"
)

// Label is the classification outcome.
type Label string

const (
	LabelAIGenerated Label = "AI_GENERATED"
	LabelHuman       Label = "HUMAN"
)

// Valid reports whether l is one of the two known labels.
func (l Label) Valid() bool {
	return l == LabelAIGenerated || l == LabelHuman
}

// Input is what a classifier sees of a request.
type Input struct {
	Audio    *audio.Clip
	Language string
}

// Result is a classifier verdict.
type Result struct {
	Label       Label   `json:"classification"`
	Score       float64 `json:"confidenceScore"`
	Explanation string  `json:"explanation"`
}

// Check rejects verdicts that cannot be returned to a client.
func (r *Result) Check() error {
	if r == nil {
		return fmt.Errorf("empty result")
	}
	if !r.Label.Valid() {
		return fmt.Errorf("unknown label %q", r.Label)
	}
	if math.IsNaN(r.Score) || r.Score < 0 || r.Score > 1 {
		return fmt.Errorf("score %v outside [0, 1]", r.Score)
	}
	if r.Explanation == "" {
		return fmt.Errorf("empty explanation")
	}
	return nil
}

// Classifier labels a clip. Implementations must be safe for concurrent use
// and must honour ctx cancellation.
type Classifier interface {
	provider.Provider

	Classify(ctx context.Context, in Input) (*Result, error)
}

// NewRegistry creates a registry of classifier backends keyed by name.
func NewRegistry() *provider.Registry[Classifier, Config] {
	return provider.NewRegistry[Classifier, Config]()
}
