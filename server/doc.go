// Package server provides the HTTP server of the voice detection service:
// Gin routing served over HTTP/1.1 and cleartext HTTP/2, the response
// envelopes, and the public routes.
//
// # Middleware
//
// Built-in middleware (server/middleware):
//
//   - Recovery: panic recovery into the 500 envelope
//   - RequestID: request id generation and propagation into the logger
//   - RequestLogger: one line per request, health checks skipped
//   - CORS and BodySizeLimit: applied before Gin routing
//   - APIKey: x-api-key gate for the /api group
//   - RateLimit: per client token bucket for the /api group
//
// # Endpoints
//
// Built-in endpoints (server/endpoint): /, /health, /ready, /version,
// /openapi.json, /docs and /redoc.
//
// # Usage
//
//	srv := server.New(cfg.Server, log)
//	srv.ApplyMiddleware()
//	if err := srv.RegisterAPI(server.APIConfig{APIKey: key, Detector: svc}); err != nil {
//	    return err
//	}
//	registry.Register(server.NewComponent(srv))
package server
