package classifier_test

import (
	"context"
	"strings"
	"testing"

	"github.com/kbukum/voicecheck/classifier"
	"github.com/kbukum/voicecheck/classifier/classifiertest"
	"github.com/kbukum/voicecheck/component"
)

type closingStub struct {
	*classifiertest.Stub
	closed bool
}

func (c *closingStub) Close(context.Context) error {
	c.closed = true
	return nil
}

func TestComponent_HealthFollowsAvailability(t *testing.T) {
	stub := classifiertest.NewStub(classifier.LabelHuman, 0.7)
	c := classifier.NewComponent(stub, classifier.Config{})
	ctx := context.Background()

	if err := c.Start(ctx); err != nil {
		t.Fatalf("Start: %v", err)
	}
	if h := c.Health(ctx); h.Status != component.StatusHealthy || h.Name != "classifier" {
		t.Errorf("expected healthy classifier, got %+v", h)
	}

	stub.Down = true
	h := c.Health(ctx)
	if h.Status != component.StatusUnhealthy {
		t.Errorf("expected unhealthy when backend is down, got %+v", h)
	}
	if !strings.Contains(h.Message, "stub") {
		t.Errorf("expected backend name in message, got %q", h.Message)
	}
}

func TestComponent_StartToleratesUnavailableBackend(t *testing.T) {
	stub := classifiertest.NewStub(classifier.LabelHuman, 0.7)
	stub.Down = true
	if err := classifier.NewComponent(stub, classifier.Config{}).Start(context.Background()); err != nil {
		t.Errorf("an unavailable backend must not fail startup, got %v", err)
	}
}

func TestComponent_StopClosesBackend(t *testing.T) {
	stub := &closingStub{Stub: classifiertest.NewStub(classifier.LabelHuman, 0.7)}
	if err := classifier.NewComponent(stub, classifier.Config{}).Stop(context.Background()); err != nil {
		t.Fatalf("Stop: %v", err)
	}
	if !stub.closed {
		t.Error("expected Stop to close the backend")
	}
}

func TestComponent_Describe(t *testing.T) {
	stub := classifiertest.NewStub(classifier.LabelHuman, 0.7)
	d := classifier.NewComponent(stub, classifier.Config{}).Describe()
	if d.Type != "classifier" {
		t.Errorf("unexpected type %q", d.Type)
	}
	for _, want := range []string{"stub", "timeout=30s", "max_concurrent=8"} {
		if !strings.Contains(d.Details, want) {
			t.Errorf("details %q missing %q", d.Details, want)
		}
	}
}
