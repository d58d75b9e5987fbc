package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoadEnvConfig_Defaults(t *testing.T) {
	for _, key := range []string{
		"HTTP_PORT", "DATABASE_DRIVER", "OBJECT_STORE_DRIVER", "MIRROR_BUCKET",
		"ALLOWED_DOMAINS", "EVENT_CACHE_TTL", "GRAFANA_OTLP_ENDPOINT", "MINIO_USE_SSL",
	} {
		t.Setenv(key, "")
	}

	cfg := LoadEnvConfig()

	assert.Equal(t, "8585", cfg.HTTP.Port)
	assert.Equal(t, "postgres", cfg.Database.Driver)
	assert.Equal(t, "minio", cfg.ObjectStore.Driver)
	assert.Equal(t, "my-op-bucket", cfg.ObjectStore.MirrorBucket)
	assert.Equal(t, []string{"http://localhost:4200"}, cfg.AllowedOrigins())
	assert.Equal(t, 5*time.Minute, cfg.Redis.EventCacheTTL)
	assert.Empty(t, cfg.Grafana.OTLPEndpoint)
	assert.False(t, cfg.Minio.UseSSL)
}

func TestLoadEnvConfig_Overrides(t *testing.T) {
	t.Setenv("DATABASE_DRIVER", "SQLite")
	t.Setenv("OBJECT_STORE_DRIVER", "memory")
	t.Setenv("ALLOWED_DOMAINS", "http://a.test, http://b.test,")
	t.Setenv("EVENT_CACHE_TTL", "30s")
	t.Setenv("GRAFANA_OTLP_ENDPOINT", "https://otlp.example.com")
	t.Setenv("MINIO_USE_SSL", "true")

	cfg := LoadEnvConfig()

	assert.Equal(t, "sqlite", cfg.Database.Driver)
	assert.Equal(t, "memory", cfg.ObjectStore.Driver)
	assert.Equal(t, []string{"http://a.test", "http://b.test"}, cfg.AllowedOrigins())
	assert.Equal(t, 30*time.Second, cfg.Redis.EventCacheTTL)
	assert.Equal(t, "otlp.example.com", cfg.Grafana.OTLPEndpoint)
	assert.True(t, cfg.Minio.UseSSL)
}
