package server

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/kbukum/voicecheck/component"
	"github.com/kbukum/voicecheck/server/endpoint"
)

const componentName = "http-server"

var (
	_ component.Component     = (*ServerComponent)(nil)
	_ component.Describable   = (*ServerComponent)(nil)
	_ component.RouteProvider = (*ServerComponent)(nil)
)

// systemPaths are listed after the API routes in the startup summary.
var systemPaths = map[string]bool{
	endpoint.PathRoot:    true,
	endpoint.PathHealth:  true,
	endpoint.PathReady:   true,
	endpoint.PathVersion: true,
	endpoint.PathOpenAPI: true,
	endpoint.PathDocs:    true,
	endpoint.PathReDoc:   true,
}

// ServerComponent wraps Server to implement component.Component.
type ServerComponent struct {
	server *Server
}

// NewComponent returns a component.Component backed by the given Server.
func NewComponent(s *Server) *ServerComponent {
	return &ServerComponent{server: s}
}

// Name returns the component name used for registration.
func (sc *ServerComponent) Name() string { return componentName }

// Start starts the underlying HTTP server.
func (sc *ServerComponent) Start(ctx context.Context) error {
	return sc.server.Start(ctx)
}

// Stop gracefully shuts down the underlying HTTP server.
func (sc *ServerComponent) Stop(ctx context.Context) error {
	return sc.server.Stop(ctx)
}

// Health reports whether the listener is bound.
func (sc *ServerComponent) Health(ctx context.Context) component.Health {
	if sc.server.Started() {
		return component.Health{Name: componentName, Status: component.StatusHealthy}
	}
	return component.Health{
		Name:    componentName,
		Status:  component.StatusUnhealthy,
		Message: "HTTP server not started",
	}
}

// Describe returns infrastructure summary info for the bootstrap display.
func (sc *ServerComponent) Describe() component.Description {
	cfg := sc.server.config
	details := sc.server.Addr() + " h2c"
	if cfg.RateLimit.Enabled() {
		details += fmt.Sprintf(", %.4g rps per client", cfg.RateLimit.RPS)
	}
	return component.Description{
		Name:    "HTTP Server",
		Type:    "server",
		Details: details,
		Port:    cfg.Port,
	}
}

// Routes returns all registered HTTP routes, API routes first.
func (sc *ServerComponent) Routes() []component.Route {
	ginRoutes := sc.server.engine.Routes()

	sort.Slice(ginRoutes, func(i, j int) bool {
		iSys := systemPaths[ginRoutes[i].Path]
		jSys := systemPaths[ginRoutes[j].Path]
		if iSys != jSys {
			return !iSys
		}
		if ginRoutes[i].Path != ginRoutes[j].Path {
			return ginRoutes[i].Path < ginRoutes[j].Path
		}
		return methodOrder(ginRoutes[i].Method) < methodOrder(ginRoutes[j].Method)
	})

	routes := make([]component.Route, 0, len(ginRoutes))
	for _, r := range ginRoutes {
		routes = append(routes, component.Route{
			Method:  r.Method,
			Path:    r.Path,
			Handler: formatHandlerName(r.Handler),
		})
	}
	return routes
}

// formatHandlerName shortens Gin's handler names:
//
//	github.com/kbukum/voicecheck/server/endpoint.Health.func1 -> endpoint.Health
func formatHandlerName(full string) string {
	name := strings.TrimSuffix(full, "-fm")
	if idx := strings.LastIndex(name, "/"); idx >= 0 {
		name = name[idx+1:]
	}
	name = strings.ReplaceAll(name, "(*", "")
	name = strings.ReplaceAll(name, ")", "")

	parts := strings.Split(name, ".")
	for len(parts) > 1 && strings.HasPrefix(parts[len(parts)-1], "func") {
		parts = parts[:len(parts)-1]
	}
	return strings.Join(parts, ".")
}

// methodOrder returns a sort key for HTTP methods (GET first).
func methodOrder(method string) int {
	switch method {
	case "GET":
		return 0
	case "POST":
		return 1
	default:
		return 2
	}
}
