package utils

import (
	"context"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newContext(headers map[string]string, remoteAddr string) *gin.Context {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	req := httptest.NewRequest("GET", "/api/v1/rooms", nil)
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	if remoteAddr != "" {
		req.RemoteAddr = remoteAddr
	}
	c.Request = req
	return c
}

func TestGetRealIP(t *testing.T) {
	tests := []struct {
		name    string
		headers map[string]string
		remote  string
		want    string
	}{
		{"X-Real-IP public", map[string]string{"X-Real-IP": "203.0.113.7"}, "", "203.0.113.7"},
		{"X-Real-IP private ignored", map[string]string{"X-Real-IP": "10.1.2.3"}, "198.51.100.1:4000", "198.51.100.1"},
		{"forwarded first public", map[string]string{"X-Forwarded-For": "10.0.0.5, 203.0.113.9, 198.51.100.2"}, "", "203.0.113.9"},
		{"forwarded all private", map[string]string{"X-Forwarded-For": "192.168.1.4, 10.0.0.1"}, "", "192.168.1.4"},
		{"direct connection", nil, "198.51.100.20:5555", "198.51.100.20"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newContext(tt.headers, tt.remote)
			assert.Equal(t, tt.want, GetRealIP(c))
		})
	}
}

func TestGetUserAgent(t *testing.T) {
	assert.Equal(t, "Unknown", GetUserAgent(newContext(nil, "")))
	assert.Equal(t, "curl/8.0", GetUserAgent(newContext(map[string]string{"User-Agent": "curl/8.0"}, "")))
}

func TestParseUserAgent(t *testing.T) {
	t.Run("Empty", func(t *testing.T) {
		info := ParseUserAgent("")
		assert.Equal(t, "unknown", info.DeviceType)
		assert.Equal(t, "Unknown", info.Browser)
	})

	t.Run("Desktop Chrome on Windows", func(t *testing.T) {
		info := ParseUserAgent("Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36")
		assert.Equal(t, "desktop", info.DeviceType)
		assert.Equal(t, "Chrome", info.Browser)
		assert.Equal(t, "windows", info.Platform)
	})

	t.Run("iPhone", func(t *testing.T) {
		info := ParseUserAgent("Mozilla/5.0 (iPhone; CPU iPhone OS 17_0 like Mac OS X) AppleWebKit/605.1.15 (KHTML, like Gecko) Version/17.0 Mobile/15E148 Safari/604.1")
		assert.Equal(t, "mobile", info.DeviceType)
		assert.Equal(t, "ios", info.Platform)
	})

	t.Run("iPad", func(t *testing.T) {
		info := ParseUserAgent("Mozilla/5.0 (iPad; CPU OS 16_0 like Mac OS X) AppleWebKit/605.1.15 (KHTML, like Gecko) Version/16.0 Mobile/15E148 Safari/604.1")
		assert.Equal(t, "tablet", info.DeviceType)
	})

	t.Run("Bot", func(t *testing.T) {
		info := ParseUserAgent("Mozilla/5.0 (compatible; Googlebot/2.1; +http://www.google.com/bot.html)")
		assert.Equal(t, "bot", info.DeviceType)
	})
}

func TestClientContext(t *testing.T) {
	_, ok := ClientFromContext(context.Background())
	assert.False(t, ok)

	c := newContext(map[string]string{"X-Real-IP": "203.0.113.7", "User-Agent": "curl/8.0"}, "")
	info := ClientFromGin(c, "req-1")
	ctx := WithClient(context.Background(), info)

	got, ok := ClientFromContext(ctx)
	require.True(t, ok)
	assert.Equal(t, "req-1", got.RequestID)
	assert.Equal(t, "203.0.113.7", got.IP)
	assert.Equal(t, "curl/8.0", got.UserAgent)
}
