// Package classifiertest provides classifier doubles for tests.
package classifiertest

import (
	"context"
	"sync"
	"time"

	"github.com/kbukum/voicecheck/classifier"
)

// Stub returns a fixed verdict, optionally after Delay, and records its inputs.
type Stub struct {
	Result *classifier.Result
	Err    error
	// Delay is waited out unless ctx ends first.
	Delay time.Duration
	// Down makes IsAvailable report false.
	Down bool

	mu     sync.Mutex
	inputs []classifier.Input
}

// NewStub returns a stub answering label with score.
func NewStub(label classifier.Label, score float64) *Stub {
	return &Stub{Result: &classifier.Result{
		Label:       label,
		Score:       score,
		Explanation: "stub verdict",
	}}
}

func (s *Stub) Name() string { return "stub" }

func (s *Stub) IsAvailable(context.Context) bool { return !s.Down }

// Classify records in and answers with the configured verdict.
func (s *Stub) Classify(ctx context.Context, in classifier.Input) (*classifier.Result, error) {
	s.mu.Lock()
	s.inputs = append(s.inputs, in)
	s.mu.Unlock()

	if s.Delay > 0 {
		select {
		case <-time.After(s.Delay):
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	if s.Err != nil {
		return nil, s.Err
	}
	r := *s.Result
	return &r, nil
}

// Calls returns how many times Classify ran.
func (s *Stub) Calls() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.inputs)
}

// Inputs returns a copy of every input seen so far.
func (s *Stub) Inputs() []classifier.Input {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]classifier.Input(nil), s.inputs...)
}

// Echo hands the decoded bytes back through the Received channel so tests
// can compare them with what the client sent.
type Echo struct {
	Received chan []byte
}

// NewEcho returns an Echo with room for n clips.
func NewEcho(n int) *Echo {
	return &Echo{Received: make(chan []byte, n)}
}

func (e *Echo) Name() string { return "echo" }

func (e *Echo) IsAvailable(context.Context) bool { return true }

func (e *Echo) Classify(_ context.Context, in classifier.Input) (*classifier.Result, error) {
	data := append([]byte(nil), in.Audio.Data...)
	select {
	case e.Received <- data:
	default:
	}
	return &classifier.Result{
		Label:       classifier.LabelHuman,
		Score:       0.5,
		Explanation: "echo",
	}, nil
}
