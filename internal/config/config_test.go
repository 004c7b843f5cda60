package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.API.Port)
	assert.Equal(t, DriverPostgres, cfg.Database.Driver)
	assert.Equal(t, "localhost:6379", cfg.Redis.Addr())
	assert.False(t, cfg.Audit.Enabled)
	assert.False(t, cfg.IsDevelopment())
}

func TestLoad_SQLiteFromEnv(t *testing.T) {
	t.Setenv("DATABASE_DRIVER", "SQLite")
	t.Setenv("DATABASE_PATH", "/tmp/workly-test.db")
	t.Setenv("API_PORT", "9090")
	t.Setenv("API_WRITES_PER_MINUTE", "30")
	t.Setenv("APP_ENV", "development")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, DriverSQLite, cfg.Database.Driver)
	assert.Equal(t, "/tmp/workly-test.db", cfg.Database.Path)
	assert.Equal(t, 9090, cfg.API.Port)
	assert.Equal(t, 30, cfg.API.WritesPerMinute)
	assert.True(t, cfg.IsDevelopment())
}

func TestLoad_RejectsUnknownDriver(t *testing.T) {
	t.Setenv("DATABASE_DRIVER", "oracle")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported database driver")
}

func TestLoad_RejectsNegativeRateLimit(t *testing.T) {
	t.Setenv("API_WRITES_PER_MINUTE", "-1")

	_, err := Load()
	require.Error(t, err)
}

func TestDatabaseConfig_DSN(t *testing.T) {
	d := DatabaseConfig{Host: "db", Port: 5433, User: "u", Password: "p", Name: "n", SSLMode: "require"}
	assert.Equal(t, "host=db port=5433 user=u password=p dbname=n sslmode=require", d.DSN())
}

func TestValidateStorage(t *testing.T) {
	cfg := Config{MinIO: MinIOConfig{Endpoint: "localhost:9000", Bucket: "b"}}
	require.Error(t, cfg.ValidateStorage())

	cfg.MinIO.AccessKeyID = "key"
	cfg.MinIO.SecretAccessKey = "secret"
	require.NoError(t, cfg.ValidateStorage())
}
