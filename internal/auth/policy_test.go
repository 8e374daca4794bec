package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAccessPolicyIsPublic(t *testing.T) {
	policy := NewAccessPolicy([]string{"/v1/auth", "/ws", "/storage", "/swagger", "/static", "/health"})

	tests := []struct {
		name   string
		path   string
		public bool
	}{
		{"signin endpoint", "/v1/auth/signin", true},
		{"auth root", "/v1/auth", true},
		{"push channel", "/ws/notifications", true},
		{"file serving", "/storage/report.pdf", true},
		{"docs", "/swagger/index.html", true},
		{"static asset", "/static/logo.png", true},
		{"health probe", "/health/live", true},
		{"user listing", "/v1/users", false},
		{"profile", "/v1/users/me", false},
		{"root", "/", false},
		{"unknown", "/admin", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.public, policy.IsPublic(tt.path))
		})
	}
}

func TestAccessPolicyFirstMatchWins(t *testing.T) {
	// an earlier protected rule shadows a later public one
	policy := NewAccessPolicyFromRules([]PathRule{
		{Prefix: "/v1/auth/internal", Public: false},
		{Prefix: "/v1/auth", Public: true},
	})

	assert.False(t, policy.IsPublic("/v1/auth/internal/rotate"))
	assert.True(t, policy.IsPublic("/v1/auth/signin"))
}

func TestAccessPolicyDefaultsProtected(t *testing.T) {
	policy := NewAccessPolicy(nil)
	assert.False(t, policy.IsPublic("/anything"))
}
