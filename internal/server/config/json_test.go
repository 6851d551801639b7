package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTempJSON(t *testing.T, data map[string]any) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "cfg.json")
	b, err := json.Marshal(data)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(path, b, 0o600))
	return path
}

func Test_parseJson(t *testing.T) {
	origArgs := os.Args
	t.Cleanup(func() { os.Args = origArgs })

	t.Run("loads from -config flag", func(t *testing.T) {
		path := writeTempJSON(t, map[string]any{
			"endpoint_addr":          ":9000",
			"database_dsn":           "postgres://example/db",
			"s3_bucket":              "bucket-x",
			"presign_expiry_minutes": 5,
		})
		os.Args = []string{"testbin", "-config", path}

		cfg := &Config{}
		cfg.LoadDefaults()
		parseJson(cfg)

		assert.Equal(t, ":9000", cfg.EndpointAddr)
		assert.Equal(t, "postgres://example/db", cfg.DatabaseDSN)
		assert.Equal(t, "bucket-x", cfg.S3Bucket)
		assert.Equal(t, 5*time.Minute, cfg.PresignExpiry)
		// missing keys keep their defaults
		assert.Equal(t, "ffprobe", cfg.FFProbePath)
	})

	t.Run("no flag means no changes", func(t *testing.T) {
		os.Args = []string{"testbin"}

		cfg := &Config{EndpointAddr: "keep:1234"}
		parseJson(cfg)

		assert.Equal(t, "keep:1234", cfg.EndpointAddr)
	})

	t.Run("invalid JSON panics", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "bad.json")
		require.NoError(t, os.WriteFile(path, []byte(`{ not json`), 0o600))
		os.Args = []string{"testbin", "-config", path}

		cfg := &Config{}
		require.Panics(t, func() { parseJson(cfg) })
	})
}
