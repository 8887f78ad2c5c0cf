package classifier

import (
	"context"
	"fmt"
	"time"

	"github.com/kbukum/voicecheck/component"
	"github.com/kbukum/voicecheck/logger"
	"github.com/kbukum/voicecheck/provider"
)

const healthProbeTimeout = 2 * time.Second

// Component manages a classifier backend's lifetime. An unavailable backend
// does not fail startup; it is reported through Health.
type Component struct {
	classifier Classifier
	cfg        Config
	log        *logger.Logger
}

var _ component.Component = (*Component)(nil)
var _ component.Describable = (*Component)(nil)

// NewComponent wraps c for the component registry.
func NewComponent(c Classifier, cfg Config) *Component {
	cfg.ApplyDefaults()
	return &Component{classifier: c, cfg: cfg, log: logger.WithComponent("classifier")}
}

func (c *Component) Name() string { return "classifier" }

// Start probes the backend once and logs the outcome.
func (c *Component) Start(ctx context.Context) error {
	probeCtx, cancel := context.WithTimeout(ctx, healthProbeTimeout)
	defer cancel()
	start := time.Now()
	available := c.classifier.IsAvailable(probeCtx)
	fields := logger.DurationFields("probe", time.Since(start))
	fields[logger.FieldBackend] = c.classifier.Name()
	if !available {
		c.log.Warn("classifier backend not available yet", fields)
		return nil
	}
	c.log.Info("classifier backend ready", fields)
	return nil
}

// Stop releases backend resources.
func (c *Component) Stop(ctx context.Context) error {
	return provider.Close(ctx, c.classifier)
}

func (c *Component) Health(ctx context.Context) component.Health {
	probeCtx, cancel := context.WithTimeout(ctx, healthProbeTimeout)
	defer cancel()
	if !c.classifier.IsAvailable(probeCtx) {
		return component.Health{
			Name:    c.Name(),
			Status:  component.StatusUnhealthy,
			Message: c.classifier.Name() + " backend unavailable",
		}
	}
	return component.Health{Name: c.Name(), Status: component.StatusHealthy}
}

func (c *Component) Describe() component.Description {
	details := fmt.Sprintf("%s timeout=%s max_concurrent=%d", c.classifier.Name(), c.cfg.Timeout, c.cfg.MaxConcurrent)
	switch c.classifier.Name() {
	case BackendHeuristic:
		details += fmt.Sprintf(" window=%s", c.cfg.AnalysisWindow)
	case BackendRemote:
		details += " url=" + c.cfg.Remote.URL
	}
	return component.Description{Type: "classifier", Details: details}
}
