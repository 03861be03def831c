package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_MissingFileUsesDefaults(t *testing.T) {
	t.Setenv("DATABASE_URL", "")
	t.Chdir(t.TempDir())

	cfg, err := LoadConfig("does-not-exist.yaml")
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.HTTP.Address)
	assert.Empty(t, cfg.GRPC.Address)
	assert.Equal(t, "trips", cfg.Kafka.TripsTopic)
	assert.Equal(t, 30*time.Second, cfg.Trips.ListCacheTTL())
	assert.Equal(t, "host=localhost port=5432 user=postgres password= dbname=tripmates sslmode=disable", cfg.Database.DSN())
}

func TestLoadConfig_FileAndEnvOverrides(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)

	path := filepath.Join(dir, "config.yaml")
	data := []byte(`
http:
  address: ":9090"
grpc:
  address: ":50051"
redis:
  addr: "localhost:6379"
kafka:
  brokers: ["kafka:9092"]
  trips_topic: "trip-events"
trips:
  list_cache_ttl_seconds: 5
`)
	require.NoError(t, os.WriteFile(path, data, 0o600))

	t.Setenv("DATABASE_URL", "postgres://u:p@db:5432/trips")
	t.Setenv("KAFKA_BROKERS", "k1:9092, k2:9092")

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, ":9090", cfg.HTTP.Address)
	assert.Equal(t, ":50051", cfg.GRPC.Address)
	assert.Equal(t, "localhost:6379", cfg.Redis.Addr)
	assert.Equal(t, "trip-events", cfg.Kafka.TripsTopic)
	assert.Equal(t, []string{"k1:9092", "k2:9092"}, cfg.Kafka.Brokers)
	assert.Equal(t, 5*time.Second, cfg.Trips.ListCacheTTL())
	assert.Equal(t, "postgres://u:p@db:5432/trips", cfg.Database.DSN())
}

func TestLoadConfig_InvalidYAML(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)

	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("http: [unterminated"), 0o600))

	_, err := LoadConfig(path)
	assert.ErrorContains(t, err, "failed to parse config")
}
