package bootstrap

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/kbukum/voicecheck/component"
)

// InfrastructureInfo is one describable component in the summary.
type InfrastructureInfo struct {
	Name    string
	Type    string
	Details string
	Port    int
	Health  component.HealthStatus
}

// RouteInfo represents a registered HTTP route.
type RouteInfo struct {
	Method  string
	Path    string
	Handler string
}

// Summary collects and prints what the service started with.
type Summary struct {
	serviceName     string
	version         string
	startupDuration time.Duration
	out             io.Writer
	color           bool

	infrastructure []InfrastructureInfo
	routes         []RouteInfo
	health         []component.Health
}

// NewSummary creates a summary that prints to stdout.
func NewSummary(serviceName, version string) *Summary {
	return &Summary{
		serviceName: serviceName,
		version:     version,
		out:         os.Stdout,
		color:       true,
	}
}

// SetOutput redirects the summary. Colors are only used on stdout.
func (s *Summary) SetOutput(w io.Writer) {
	s.out = w
	s.color = w == os.Stdout
}

// SetStartupDuration records the total startup time.
func (s *Summary) SetStartupDuration(d time.Duration) {
	s.startupDuration = d
}

// Infrastructure returns the components collected by the last Collect.
func (s *Summary) Infrastructure() []InfrastructureInfo { return s.infrastructure }

// Routes returns the routes collected by the last Collect.
func (s *Summary) Routes() []RouteInfo { return s.routes }

// Collect reads descriptions, routes and live health from the registry.
func (s *Summary) Collect(ctx context.Context, registry *component.Registry) {
	s.infrastructure = s.infrastructure[:0]
	s.routes = s.routes[:0]
	s.health = nil
	if registry == nil {
		return
	}

	s.health = registry.HealthAll(ctx)
	statusByName := make(map[string]component.HealthStatus, len(s.health))
	for _, h := range s.health {
		statusByName[h.Name] = h.Status
	}

	for _, c := range registry.All() {
		if d, ok := c.(component.Describable); ok {
			desc := d.Describe()
			name := desc.Name
			if name == "" {
				name = c.Name()
			}
			s.infrastructure = append(s.infrastructure, InfrastructureInfo{
				Name:    name,
				Type:    desc.Type,
				Details: desc.Details,
				Port:    desc.Port,
				Health:  statusByName[c.Name()],
			})
		}
		if rp, ok := c.(component.RouteProvider); ok {
			for _, r := range rp.Routes() {
				s.routes = append(s.routes, RouteInfo(r))
			}
		}
	}
}

// DisplaySummary collects from the registry and prints the summary.
func (s *Summary) DisplaySummary(registry *component.Registry) {
	s.Collect(context.Background(), registry)
	s.render()
}

func (s *Summary) render() {
	var b strings.Builder

	fmt.Fprintf(&b, "\n🚀 %s v%s started in %.2fs\n\n", s.serviceName, s.version, s.startupDuration.Seconds())

	if len(s.infrastructure) == 0 {
		b.WriteString("📊 Infrastructure\n   └── No components registered\n")
	} else {
		b.WriteString("📊 Infrastructure\n")
		for i, inf := range s.infrastructure {
			details := inf.Details
			if inf.Port > 0 && !strings.Contains(details, fmt.Sprintf(":%d", inf.Port)) {
				details = fmt.Sprintf("%s (:%d)", details, inf.Port)
			}
			fmt.Fprintf(&b, "   %s %s %s [%s]: %s\n",
				treePrefix(i, len(s.infrastructure)), healthStatusIcon(inf.Health), inf.Name, inf.Type, details)
		}
	}

	if len(s.routes) > 0 {
		fmt.Fprintf(&b, "\n🌐 Routes (%d)\n", len(s.routes))
		for i, r := range s.routes {
			fmt.Fprintf(&b, "   %s %s %s → %s\n", treePrefix(i, len(s.routes)), s.method(r.Method), r.Path, r.Handler)
		}
	}

	if len(s.health) > 0 {
		b.WriteString("\n🏥 Health Check\n")
		healthy := 0
		for i, h := range s.health {
			if h.Status == component.StatusHealthy {
				healthy++
			}
			msg := ""
			if h.Message != "" {
				msg = ": " + h.Message
			}
			fmt.Fprintf(&b, "   %s %s %s (%s)%s\n",
				treePrefix(i, len(s.health)), healthStatusIcon(h.Status), h.Name, h.Status, msg)
		}
		if healthy == len(s.health) {
			fmt.Fprintf(&b, "\n✅ All components healthy (%d/%d)\n", healthy, len(s.health))
		} else {
			fmt.Fprintf(&b, "\n⚠️  Some components have issues (%d/%d healthy)\n", healthy, len(s.health))
		}
	}

	b.WriteString("\n")
	_, _ = io.WriteString(s.out, b.String())
}

func (s *Summary) method(m string) string {
	padded := fmt.Sprintf("%-7s", m)
	if !s.color {
		return padded
	}
	return methodColor(m) + padded + "\033[0m"
}

func treePrefix(i, n int) string {
	if i == n-1 {
		return "└──"
	}
	return "├──"
}

func healthStatusIcon(status component.HealthStatus) string {
	switch status {
	case component.StatusHealthy:
		return "✅"
	case component.StatusDegraded:
		return "⚠️"
	case component.StatusUnhealthy:
		return "❌"
	default:
		return "❓"
	}
}

func methodColor(method string) string {
	switch method {
	case "GET":
		return "\033[32m"
	case "POST":
		return "\033[33m"
	case "PUT", "PATCH":
		return "\033[34m"
	case "DELETE":
		return "\033[31m"
	default:
		return "\033[36m"
	}
}
