package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "auth-gateway", cfg.App.Name)
	assert.Equal(t, time.Hour, cfg.Auth.TokenTTL())
	assert.Equal(t, time.Second, cfg.WebSocket.HeartbeatInterval())
	assert.Equal(t, "/ws/notifications", cfg.WebSocket.Path)
	assert.Contains(t, cfg.Auth.PublicPathPrefixes, "/v1/auth")
	assert.Contains(t, cfg.Auth.PublicPathPrefixes, "/ws")
	assert.Contains(t, cfg.Auth.PublicPathPrefixes, "/storage")
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("AUTH_TOKEN_TTL_SECONDS", "120")
	t.Setenv("AUTH_PUBLIC_PATH_PREFIXES", "/api/auth, /public ,")
	t.Setenv("WS_HEARTBEAT_MS", "250")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 2*time.Minute, cfg.Auth.TokenTTL())
	assert.Equal(t, []string{"/api/auth", "/public"}, cfg.Auth.PublicPathPrefixes)
	assert.Equal(t, 250*time.Millisecond, cfg.WebSocket.HeartbeatInterval())
}

func TestDurationFallbacks(t *testing.T) {
	auth := AuthConfig{TokenTTLSeconds: 0}
	assert.Equal(t, time.Hour, auth.TokenTTL())

	wsCfg := WebSocketConfig{HeartbeatMS: -1}
	assert.Equal(t, time.Second, wsCfg.HeartbeatInterval())
}
