package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/LongVanNgo/CAPTCHA-solver/internal/config"
	"github.com/LongVanNgo/CAPTCHA-solver/pkg/resample"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv(config.KeySourceDir, "")
	t.Setenv(config.KeyDestDir, "")
	t.Setenv(config.KeyFilter, "")

	cfg := config.Load(viper.New())

	assert.Empty(t, cfg.Resize.SourceDir)
	assert.Empty(t, cfg.Resize.DestDir)
	assert.Equal(t, "localhost", cfg.Server.Host)
	assert.Equal(t, "8080", cfg.Server.Port)
	assert.False(t, cfg.S3.Enabled)
	assert.Equal(t, "mnist28", cfg.S3.Prefix)
}

func TestLoad_FromEnvironment(t *testing.T) {
	t.Setenv(config.KeySourceDir, "/data/raw")
	t.Setenv(config.KeyDestDir, "/data/28")
	t.Setenv(config.KeyFilter, "bicubic")
	t.Setenv("S3_ENABLED", "true")
	t.Setenv("S3_BUCKET_NAME", "digits")

	cfg := config.Load(viper.New())

	assert.Equal(t, "/data/raw", cfg.Resize.SourceDir)
	assert.Equal(t, "/data/28", cfg.Resize.DestDir)
	assert.Equal(t, "bicubic", cfg.Resize.Filter)
	assert.True(t, cfg.S3.Enabled)
	assert.Equal(t, "digits", cfg.S3.BucketName)
}

func TestLoad_ExplicitValueOverridesEnvironment(t *testing.T) {
	t.Setenv(config.KeyFilter, "bicubic")

	v := viper.New()
	v.Set(config.KeyFilter, "nearest")

	cfg := config.Load(v)
	assert.Equal(t, "nearest", cfg.Resize.Filter)
}

func TestLoadEnvFile(t *testing.T) {
	t.Run("missing file is ignored", func(t *testing.T) {
		require.NoError(t, config.LoadEnvFile(filepath.Join(t.TempDir(), ".env")))
	})

	t.Run("empty path is ignored", func(t *testing.T) {
		require.NoError(t, config.LoadEnvFile(""))
	})

	t.Run("variables are exported", func(t *testing.T) {
		t.Setenv("RESIZE_SOURCE_DIR", "")
		require.NoError(t, os.Unsetenv("RESIZE_SOURCE_DIR"))

		path := filepath.Join(t.TempDir(), ".env")
		require.NoError(t, os.WriteFile(path, []byte("RESIZE_SOURCE_DIR=/from/dotenv\n"), 0644))
		require.NoError(t, config.LoadEnvFile(path))

		cfg := config.Load(viper.New())
		assert.Equal(t, "/from/dotenv", cfg.Resize.SourceDir)
	})
}

func TestResizeConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     config.ResizeConfig
		wantErr error
	}{
		{
			name: "valid",
			cfg:  config.ResizeConfig{SourceDir: "in", DestDir: "out", Filter: "lanczos"},
		},
		{
			name: "empty filter selects default",
			cfg:  config.ResizeConfig{SourceDir: "in", DestDir: "out"},
		},
		{
			name:    "missing source",
			cfg:     config.ResizeConfig{DestDir: "out"},
			wantErr: config.ErrMissingDir,
		},
		{
			name:    "missing destination",
			cfg:     config.ResizeConfig{SourceDir: "in"},
			wantErr: config.ErrMissingDir,
		},
		{
			name:    "unknown filter",
			cfg:     config.ResizeConfig{SourceDir: "in", DestDir: "out", Filter: "box"},
			wantErr: resample.ErrUnknownFilter,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if tt.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}
