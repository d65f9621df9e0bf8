package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoadFromFile_AppliesDefaults(t *testing.T) {
	path := writeConfig(t, `
camunda:
  broker_address: localhost:26500
database:
  redis:
    address: localhost:6379
workers:
  sync-application-records:
    enabled: true
`)

	cfg, err := LoadFromFile(path)
	require.NoError(t, err)

	assert.Equal(t, BackendRedis, cfg.Storage.Backend)
	assert.Equal(t, "job_applications", cfg.Storage.Key)
	assert.Equal(t, 7, cfg.Tracker.DefaultWindowDays)
	assert.Equal(t, 300, cfg.Tracker.StatsCacheTTL)
	assert.Equal(t, "info", cfg.Logging.Level)
	assert.Equal(t, ":8080", cfg.Metrics.Address)

	w := cfg.Workers["sync-application-records"]
	assert.True(t, w.Enabled)
	assert.Equal(t, 5, w.MaxJobsActive)
	assert.Equal(t, 30000, w.Timeout)
	assert.Equal(t, 3, w.MaxRetries)
}

func TestLoadFromFile_EnvOverride(t *testing.T) {
	t.Setenv("STORAGE_BACKEND", "memory")
	t.Setenv("TRACKER_REDIS_HOST", "cache.internal:6380")

	path := writeConfig(t, `
camunda:
  broker_address: localhost:26500
database:
  redis:
    address: ${TRACKER_REDIS_HOST}
`)

	cfg, err := LoadFromFile(path)
	require.NoError(t, err)
	assert.Equal(t, BackendMemory, cfg.Storage.Backend)
	assert.Equal(t, "cache.internal:6380", cfg.Database.Redis.Address)
}

func TestLoadFromFile_Validation(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		wantErr string
	}{
		{
			name:    "missing broker",
			body:    "storage:\n  backend: memory\n",
			wantErr: "camunda.broker_address",
		},
		{
			name:    "redis backend without address",
			body:    "camunda:\n  broker_address: x:1\n",
			wantErr: "database.redis.address",
		},
		{
			name:    "postgres backend without host",
			body:    "camunda:\n  broker_address: x:1\nstorage:\n  backend: postgres\n",
			wantErr: "database.postgres.host",
		},
		{
			name:    "elasticsearch backend without addresses",
			body:    "camunda:\n  broker_address: x:1\nstorage:\n  backend: elasticsearch\n",
			wantErr: "database.elasticsearch.addresses",
		},
		{
			name:    "unknown backend",
			body:    "camunda:\n  broker_address: x:1\nstorage:\n  backend: s3\n",
			wantErr: "not supported",
		},
		{
			name:    "unsupported window",
			body:    "camunda:\n  broker_address: x:1\nstorage:\n  backend: memory\ntracker:\n  default_window_days: 14\n",
			wantErr: "default_window_days",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadFromFile(writeConfig(t, tt.body))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestGetWorkerConfig_Fallback(t *testing.T) {
	cfg := &Config{Workers: map[string]WorkerConfig{
		"filter-applications": {Enabled: false, MaxJobsActive: 2},
	}}

	assert.False(t, IsWorkerEnabled(cfg, "filter-applications"))
	assert.True(t, IsWorkerEnabled(cfg, "build-activity-histogram"))
	assert.Equal(t, 2, GetWorkerConfig(cfg, "filter-applications").MaxJobsActive)
	assert.Equal(t, 5, GetWorkerConfig(cfg, "unknown").MaxJobsActive)
}

func TestTrackerConfig_Location(t *testing.T) {
	assert.Equal(t, time.UTC, TrackerConfig{Timezone: "UTC"}.Location())
	assert.Equal(t, time.Local, TrackerConfig{Timezone: "Not/AZone"}.Location())
}

func TestGetDuration(t *testing.T) {
	assert.Equal(t, 1500*time.Millisecond, GetDuration(1500))
}
