package controller

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func feedOriginRequest(origin string) *http.Request {
	req := httptest.NewRequest(http.MethodGet, "/api/v1/feed", nil)
	if origin != "" {
		req.Header.Set("Origin", origin)
	}
	return req
}

func TestFeedController_CheckOrigin(t *testing.T) {
	tests := []struct {
		name    string
		allowed []string
		origin  string
		want    bool
	}{
		{"empty list allows any", nil, "https://other.example.org", true},
		{"wildcard allows any", []string{"*"}, "https://other.example.org", true},
		{"listed origin allowed", []string{"https://shop.example.org"}, "https://shop.example.org", true},
		{"unlisted origin rejected", []string{"https://shop.example.org"}, "https://other.example.org", false},
		{"wildcard among list allows any", []string{"https://shop.example.org", "*"}, "https://other.example.org", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := NewFeedController(nil, tt.allowed)
			got := ctrl.upgrader.CheckOrigin(feedOriginRequest(tt.origin))
			assert.Equal(t, tt.want, got)
		})
	}
}
