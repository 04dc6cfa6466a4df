package httpserver

import (
	"net/http/httptest"
	"testing"

	"paper-dashboard/internal/config"
)

func TestAllowOrigin(t *testing.T) {
	tests := []struct {
		name    string
		allowed string
		host    string
		origin  string
		want    bool
	}{
		{name: "wildcard", allowed: "*", host: "dash.local:8501", origin: "https://evil.example", want: true},
		{name: "same host", allowed: config.WSOriginSameHost, host: "dash.local:8501", origin: "http://dash.local:8501", want: true},
		{name: "same host case", allowed: config.WSOriginSameHost, host: "Dash.Local:8501", origin: "http://dash.local:8501", want: true},
		{name: "cross site", allowed: config.WSOriginSameHost, host: "dash.local:8501", origin: "https://evil.example", want: false},
		{name: "other port", allowed: config.WSOriginSameHost, host: "dash.local:8501", origin: "http://dash.local:9000", want: false},
		{name: "same host no origin", allowed: config.WSOriginSameHost, host: "dash.local:8501", origin: "", want: false},
		{name: "explicit match", allowed: "https://dash.example.com", host: "10.0.0.5:8501", origin: "https://dash.example.com", want: true},
		{name: "explicit mismatch", allowed: "https://dash.example.com", host: "10.0.0.5:8501", origin: "https://evil.example", want: false},
		{name: "localhost variants", allowed: "http://localhost:8501", host: "127.0.0.1:8501", origin: "http://127.0.0.1:8501", want: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := httptest.NewRequest("GET", "/ws/orders", nil)
			r.Host = tt.host
			if tt.origin != "" {
				r.Header.Set("Origin", tt.origin)
			}
			if got := allowOrigin(r, tt.allowed); got != tt.want {
				t.Fatalf("allowOrigin(%q, origin %q) = %v, want %v", tt.allowed, tt.origin, got, tt.want)
			}
		})
	}
}
