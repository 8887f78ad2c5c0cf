package resilience

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"
)

var errUpstream = errors.New("upstream 500")

func trip(cb *CircuitBreaker, n int) {
	for i := 0; i < n; i++ {
		_ = cb.Execute(func() error { return errUpstream })
	}
}

func TestCircuitBreaker_StartsClosed(t *testing.T) {
	cb := NewCircuitBreaker(DefaultCircuitBreakerConfig("test"))
	if cb.State() != StateClosed {
		t.Errorf("expected closed, got %s", cb.State())
	}

	called := false
	if err := cb.Execute(func() error { called = true; return nil }); err != nil || !called {
		t.Errorf("expected the call to pass through, err=%v called=%v", err, called)
	}
}

func TestCircuitBreaker_OpensAfterMaxFailures(t *testing.T) {
	cb := NewCircuitBreaker(CircuitBreakerConfig{Name: "test", MaxFailures: 3, Timeout: time.Second})
	trip(cb, 3)

	if cb.State() != StateOpen {
		t.Fatalf("expected open, got %s", cb.State())
	}
	err := cb.Execute(func() error {
		t.Error("function should not have been called")
		return nil
	})
	if !errors.Is(err, ErrCircuitOpen) {
		t.Errorf("expected ErrCircuitOpen, got %v", err)
	}
}

func TestCircuitBreaker_SuccessResetsFailures(t *testing.T) {
	cb := NewCircuitBreaker(CircuitBreakerConfig{Name: "test", MaxFailures: 3})
	trip(cb, 2)
	_ = cb.Execute(func() error { return nil })
	trip(cb, 2)

	if cb.State() != StateClosed {
		t.Errorf("non-consecutive failures must not open the circuit, got %s", cb.State())
	}
	if cb.Failures() != 2 {
		t.Errorf("expected 2 consecutive failures, got %d", cb.Failures())
	}
}

func TestCircuitBreaker_CanceledCallsDoNotCount(t *testing.T) {
	cb := NewCircuitBreaker(CircuitBreakerConfig{Name: "test", MaxFailures: 1})
	_ = cb.Execute(func() error { return fmt.Errorf("classify: %w", context.Canceled) })

	if cb.State() != StateClosed {
		t.Errorf("a canceled call must not open the circuit, got %s", cb.State())
	}
}

func TestCircuitBreaker_HalfOpenLifecycle(t *testing.T) {
	tests := []struct {
		name      string
		trial     error
		wantState State
	}{
		{"success closes", nil, StateClosed},
		{"failure reopens", errUpstream, StateOpen},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cb := NewCircuitBreaker(CircuitBreakerConfig{Name: "test", MaxFailures: 1, Timeout: 10 * time.Millisecond})
			trip(cb, 1)
			time.Sleep(15 * time.Millisecond)

			if cb.State() != StateHalfOpen {
				t.Fatalf("expected half-open, got %s", cb.State())
			}
			_ = cb.Execute(func() error { return tc.trial })
			if cb.State() != tc.wantState {
				t.Errorf("expected %s, got %s", tc.wantState, cb.State())
			}
		})
	}
}

func TestCircuitBreaker_HalfOpenLimitsTrialCalls(t *testing.T) {
	cb := NewCircuitBreaker(CircuitBreakerConfig{Name: "test", MaxFailures: 1, Timeout: 10 * time.Millisecond})
	trip(cb, 1)
	time.Sleep(15 * time.Millisecond)

	inTrial := make(chan struct{})
	finish := make(chan struct{})
	go func() {
		_ = cb.Execute(func() error {
			close(inTrial)
			<-finish
			return nil
		})
	}()
	<-inTrial

	if err := cb.Execute(func() error { return nil }); !errors.Is(err, ErrCircuitOpen) {
		t.Errorf("expected a second trial call to be rejected, got %v", err)
	}
	close(finish)
}

func TestCircuitBreaker_StateChangeCallback(t *testing.T) {
	var transitions []string
	cb := NewCircuitBreaker(CircuitBreakerConfig{
		Name:        "remote",
		MaxFailures: 1,
		Timeout:     10 * time.Millisecond,
		OnStateChange: func(name string, from, to State) {
			transitions = append(transitions, fmt.Sprintf("%s:%s->%s", name, from, to))
		},
	})
	trip(cb, 1)
	time.Sleep(20 * time.Millisecond)
	if err := cb.Execute(func() error { return nil }); err != nil {
		t.Fatalf("trial call failed: %v", err)
	}

	want := []string{"remote:closed->open", "remote:open->half-open", "remote:half-open->closed"}
	if fmt.Sprint(transitions) != fmt.Sprint(want) {
		t.Errorf("expected %v, got %v", want, transitions)
	}
	if cb.Failures() != 0 {
		t.Errorf("expected failures cleared on close, got %d", cb.Failures())
	}
}

func TestStateString(t *testing.T) {
	tests := map[State]string{
		StateClosed:   "closed",
		StateOpen:     "open",
		StateHalfOpen: "half-open",
		State(42):     "unknown",
	}
	for s, want := range tests {
		if s.String() != want {
			t.Errorf("State(%d).String() = %q, want %q", int(s), s.String(), want)
		}
	}
}
