package httpmw

import (
	"testing"

	"github.com/Devansh2835/EventSpark/internal/config"

	"github.com/stretchr/testify/assert"
)

func strictPolicy(frontend string) *OriginPolicy {
	return NewOriginPolicy(config.Config{
		AppEnv:      config.EnvProduction,
		CORSMode:    config.CORSModeStrict,
		FrontendURL: frontend,
	})
}

func permissivePolicy() *OriginPolicy {
	return NewOriginPolicy(config.Config{
		AppEnv:   config.EnvDevelopment,
		CORSMode: config.CORSModePermissive,
	})
}

func TestOriginPolicy_Strict(t *testing.T) {
	p := strictPolicy("")

	cases := []struct {
		name   string
		origin string
		want   bool
	}{
		{"absent origin", "", true},
		{"localhost literal", "http://localhost:3000", true},
		{"localhost alt port literal", "http://localhost:3001", true},
		{"loopback literal", "http://127.0.0.1:3000", true},
		{"vercel deployment", "https://myapp.vercel.app", true},
		{"nested vercel deployment", "https://myapp-git-main-me.vercel.app", true},
		{"evil origin", "https://evil.example", false},
		{"vercel lookalike", "https://vercel.app.evil.example", false},
		{"plain vercel suffix without subdomain", "https://vercel.app", false},
		{"http vercel", "http://myapp.vercel.app", false},
		{"unlisted localhost port", "http://localhost:9999", false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, p.Allow(tc.origin))
		})
	}
}

func TestOriginPolicy_ConfiguredFrontend(t *testing.T) {
	p := strictPolicy("https://events.mycollege.edu")

	assert.True(t, p.Allow("https://events.mycollege.edu"))
	assert.False(t, p.Allow("https://events.mycollege.edu.evil.example"))
}

func TestOriginPolicy_Permissive(t *testing.T) {
	strict := strictPolicy("")
	permissive := permissivePolicy()

	assert.True(t, permissive.Allow(""))
	assert.True(t, permissive.Allow("http://localhost:3000"))
	assert.True(t, permissive.Allow("http://localhost:9999"))

	// Permissive mode falls through to allowing everything; the same
	// origin is denied under strict mode.
	assert.True(t, permissive.Allow("https://evil.example"))
	assert.False(t, strict.Allow("https://evil.example"))
}

// The wide-open permissive fallback must never reach production: Load
// refuses the combination outright.
func TestConfig_RejectsPermissiveInProduction(t *testing.T) {
	t.Setenv("APP_ENV", config.EnvProduction)
	t.Setenv("CORS_MODE", config.CORSModePermissive)
	t.Setenv("DATABASE_DSN", "postgres://localhost/eventspark")

	_, err := config.Load()
	assert.Error(t, err)
}

func TestNewPattern(t *testing.T) {
	p, err := NewPattern("https://*.vercel.app")
	assert.NoError(t, err)
	assert.True(t, p.Matches("https://a.vercel.app"))
	assert.True(t, p.Matches("https://a.b.vercel.app"))
	assert.False(t, p.Matches("https://vercel.app"))
	assert.False(t, p.Matches("https://a.vercel.app.evil"))
}
