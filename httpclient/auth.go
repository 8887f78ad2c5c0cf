package httpclient

import "net/http"

// AuthConfig places a credential in a request header.
type AuthConfig struct {
	// Header is the header name, e.g. "x-api-key" or "Authorization".
	Header string
	// Value is sent verbatim.
	Value string
}

// APIKeyAuth sends key in the named header.
func APIKeyAuth(header, key string) *AuthConfig {
	return &AuthConfig{Header: header, Value: key}
}

func (a *AuthConfig) apply(req *http.Request) {
	if a == nil || a.Header == "" || a.Value == "" {
		return
	}
	req.Header.Set(a.Header, a.Value)
}
