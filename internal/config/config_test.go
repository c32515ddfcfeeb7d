package config

import (
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	for _, key := range []string{"STORAGE_ENDPOINT", "STORAGE_ACCESS_KEY", "STORAGE_SECRET_KEY", "STORAGE_BUCKET", "HTTP_PORT", "STORAGE_PATH_PREFIX", "UPLOAD_MAX_BODY_BYTES", "HOME_MAX_BODY_BYTES", "STORAGE_USE_SSL"} {
		t.Setenv(key, "")
	}
	cfg, err := load(viper.New())
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.HTTPPort)
	assert.Equal(t, "homes", cfg.StoragePathPrefix)
	assert.Equal(t, int64(10*1024*1024), cfg.UploadMaxBodyBytes)
	assert.Equal(t, int64(1<<20), cfg.HomeMaxBodyBytes)
	assert.False(t, cfg.StorageUseSSL)
	assert.ElementsMatch(t,
		[]string{"STORAGE_ENDPOINT", "STORAGE_ACCESS_KEY", "STORAGE_SECRET_KEY", "STORAGE_BUCKET"},
		cfg.MissingStorageSettings())
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("HTTP_PORT", "9000")
	t.Setenv("STORAGE_ENDPOINT", "minio:9000")
	t.Setenv("STORAGE_ACCESS_KEY", "access")
	t.Setenv("STORAGE_SECRET_KEY", "secret")
	t.Setenv("STORAGE_BUCKET", "homes-images")
	t.Setenv("STORAGE_USE_SSL", "true")
	t.Setenv("STORAGE_PATH_PREFIX", "/listing-images/")

	cfg, err := load(viper.New())
	require.NoError(t, err)

	assert.Equal(t, "9000", cfg.HTTPPort)
	assert.Equal(t, "minio:9000", cfg.StorageEndpoint)
	assert.True(t, cfg.StorageUseSSL)
	assert.Equal(t, "listing-images", cfg.StoragePathPrefix)
	assert.Empty(t, cfg.MissingStorageSettings())
}
