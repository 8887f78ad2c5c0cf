package httpclient

import (
	"net/http"
	"testing"
)

func TestAuthConfig_Apply(t *testing.T) {
	tests := []struct {
		name   string
		auth   *AuthConfig
		header string
		want   string
	}{
		{"api key", APIKeyAuth("x-api-key", "sk_test_123"), "X-Api-Key", "sk_test_123"},
		{"authorization header", &AuthConfig{Header: "Authorization", Value: "Bearer tok"}, "Authorization", "Bearer tok"},
		{"empty key sends nothing", APIKeyAuth("x-api-key", ""), "X-Api-Key", ""},
		{"nil", nil, "X-Api-Key", ""},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			req, _ := http.NewRequest(http.MethodGet, "http://example.com", nil)
			tc.auth.apply(req)
			if got := req.Header.Get(tc.header); got != tc.want {
				t.Errorf("got %q, want %q", got, tc.want)
			}
		})
	}
}
