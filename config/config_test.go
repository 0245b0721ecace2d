package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigDefaults(t *testing.T) {
	t.Setenv("SUPABASE_URL", "https://abc.supabase.co/")
	t.Setenv("RATE_LIMIT_NOTIFY_THRESHOLD", "not-a-number")
	t.Setenv("OTEL_ENABLED", "true")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "https://abc.supabase.co", cfg.SupabaseUrl)
	assert.Equal(t, "https://abc.supabase.co/storage/v1/s3", cfg.StorageS3Endpoint)
	assert.Equal(t, 20, cfg.RateLimitNotifyThreshold)
	assert.True(t, cfg.OtelEnabled)
	assert.Equal(t, "America/Sao_Paulo", cfg.Timezone)
	assert.False(t, cfg.StorageConfigured())
}

func TestStorageConfigured(t *testing.T) {
	cfg := &Config{StorageS3Endpoint: "https://x", StorageS3AccessKey: "a", StorageS3SecretKey: "b"}
	assert.True(t, cfg.StorageConfigured())
}

func TestTrustedProxiesList(t *testing.T) {
	t.Setenv("TRUSTED_PROXIES", " 10.0.0.0/8, ,127.0.0.1 ")
	t.Setenv("SUPABASE_ANON_KEY", "anon")

	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, []string{"10.0.0.0/8", "127.0.0.1"}, cfg.TrustedProxies)
	assert.Equal(t, "anon", cfg.SupabaseAnonKey)
}

func TestTrustedProxiesUnset(t *testing.T) {
	t.Setenv("TRUSTED_PROXIES", "")

	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.Nil(t, cfg.TrustedProxies)
}
