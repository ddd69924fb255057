package db_test

import (
	"context"
	"os"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"jobmate/jobboard/internal/config"
	"jobmate/jobboard/internal/db"
	"jobmate/jobboard/internal/storage"
)

func TestOpen_Memory(t *testing.T) {
	res, err := db.Open(context.Background(), &config.Config{StorageBackend: config.BackendMemory}, zerolog.Nop())
	require.NoError(t, err)
	defer res.Close()

	assert.IsType(t, &storage.Memory{}, res.Medium)
	assert.Nil(t, res.Redis)
	assert.Nil(t, res.Pool)
}

func TestOpen_File(t *testing.T) {
	dir := t.TempDir()
	res, err := db.Open(context.Background(), &config.Config{StorageBackend: config.BackendFile, DataDir: dir}, zerolog.Nop())
	require.NoError(t, err)
	defer res.Close()

	ctx := context.Background()
	require.NoError(t, res.Medium.Set(ctx, "saved_jobs", "[]"))
	v, ok, err := res.Medium.Get(ctx, "saved_jobs")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "[]", v)
}

func TestOpen_UnknownBackend(t *testing.T) {
	_, err := db.Open(context.Background(), &config.Config{StorageBackend: "s3"}, zerolog.Nop())
	assert.Error(t, err)
}

func TestOpen_RedisUnreachable(t *testing.T) {
	_, err := db.Open(context.Background(), &config.Config{
		StorageBackend: config.BackendRedis,
		RedisURL:       "redis://127.0.0.1:1/0",
	}, zerolog.Nop())
	assert.Error(t, err)
}

func TestOpen_Redis(t *testing.T) {
	url := os.Getenv("TEST_REDIS_URL")
	if url == "" {
		t.Skip("TEST_REDIS_URL not set")
	}
	res, err := db.Open(context.Background(), &config.Config{StorageBackend: config.BackendRedis, RedisURL: url}, zerolog.Nop())
	require.NoError(t, err)
	defer res.Close()
	assert.NotNil(t, res.Redis)
	assert.IsType(t, &storage.RedisMedium{}, res.Medium)
}

func TestOpen_Postgres(t *testing.T) {
	url := os.Getenv("TEST_DATABASE_URL")
	if url == "" {
		t.Skip("TEST_DATABASE_URL not set")
	}
	res, err := db.Open(context.Background(), &config.Config{StorageBackend: config.BackendPostgres, DatabaseURL: url}, zerolog.Nop())
	require.NoError(t, err)
	defer res.Close()
	assert.NotNil(t, res.Pool)
	assert.IsType(t, &storage.PostgresMedium{}, res.Medium)
}
