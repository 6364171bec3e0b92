package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	for _, key := range []string{"PORT", "DEFAULT_VENUE_ID", "CHECKOUT_STRICT_ITEMS", "IDEMPOTENCY_TTL", "RATE_LIMIT_RPS"} {
		t.Setenv(key, "")
	}

	cfg := Load()

	assert.Equal(t, "8081", cfg.Port)
	assert.Equal(t, int64(1), cfg.DefaultVenueID)
	assert.False(t, cfg.StrictCheckout)
	assert.Equal(t, 24*time.Hour, cfg.IdempotencyTTL)
	assert.Equal(t, 20.0, cfg.RateLimitRPS)
	assert.Equal(t, "orders", cfg.OrderEventsTopic)
}

func TestLoad_Overrides(t *testing.T) {
	tests := []struct {
		name  string
		key   string
		value string
		check func(*testing.T, App)
	}{
		{name: "venue", key: "DEFAULT_VENUE_ID", value: "4", check: func(t *testing.T, a App) { assert.Equal(t, int64(4), a.DefaultVenueID) }},
		{name: "strict", key: "CHECKOUT_STRICT_ITEMS", value: "true", check: func(t *testing.T, a App) { assert.True(t, a.StrictCheckout) }},
		{name: "ttl", key: "IDEMPOTENCY_TTL", value: "90s", check: func(t *testing.T, a App) { assert.Equal(t, 90*time.Second, a.IdempotencyTTL) }},
		{name: "bad venue falls back", key: "DEFAULT_VENUE_ID", value: "one", check: func(t *testing.T, a App) { assert.Equal(t, int64(1), a.DefaultVenueID) }},
		{name: "bad bool falls back", key: "CHECKOUT_STRICT_ITEMS", value: "maybe", check: func(t *testing.T, a App) { assert.False(t, a.StrictCheckout) }},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			t.Setenv(testCase.key, testCase.value)
			testCase.check(t, Load())
		})
	}
}

func TestLoadEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(path, []byte("OVERCOOKED_TEST_KEY=from-file\n"), 0o600))
	t.Cleanup(func() { os.Unsetenv("OVERCOOKED_TEST_KEY") })

	LoadEnv(path, filepath.Join(t.TempDir(), "missing.env"))

	assert.Equal(t, "from-file", GetEnv("OVERCOOKED_TEST_KEY", "default"))
	assert.Equal(t, "default", GetEnv("OVERCOOKED_UNSET_KEY", "default"))
}
