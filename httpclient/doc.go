// Package httpclient is a small JSON-over-HTTP client with API key
// authentication, typed error classification and an optional circuit
// breaker. The CLI uses it to call the detection service and the remote
// classifier uses it to call its sidecar.
//
//	c, err := httpclient.New(httpclient.Config{
//	    BaseURL: "http://localhost:8000",
//	    Auth:    httpclient.APIKeyAuth("x-api-key", key),
//	})
//
//	resp, err := httpclient.Post[Result](ctx, c, "/api/voice-detection", body)
package httpclient
