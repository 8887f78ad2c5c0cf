package endpoint

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/kbukum/voicecheck/component"
)

// HealthChecker returns health status for registered components.
type HealthChecker func(ctx context.Context) []component.Health

// HealthResponse is the body of GET /health.
type HealthResponse struct {
	Status     string             `json:"status" example:"healthy"`
	Service    string             `json:"service" example:"voicecheck"`
	Timestamp  string             `json:"timestamp" format:"date-time"`
	Components []component.Health `json:"components"`
}

// Health reports that the process is serving. It always answers 200 with
// status "healthy"; degraded components are listed but do not change the
// status so load balancers keep routing. Use Readiness for gating traffic.
func Health(serviceName string, checker HealthChecker) gin.HandlerFunc {
	return func(c *gin.Context) {
		components := []component.Health{}
		if checker != nil {
			components = append(components, checker(c.Request.Context())...)
		}
		c.JSON(http.StatusOK, HealthResponse{
			Status:     string(component.StatusHealthy),
			Service:    serviceName,
			Timestamp:  time.Now().UTC().Format(time.RFC3339),
			Components: components,
		})
	}
}
