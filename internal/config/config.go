package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/LongVanNgo/CAPTCHA-solver/pkg/resample"
)

const (
	KeySourceDir = "RESIZE_SOURCE_DIR"
	KeyDestDir   = "RESIZE_DEST_DIR"
	KeyFilter    = "RESIZE_FILTER"
	KeyLogLevel  = "LOG_LEVEL"
	KeyHost      = "SERVER_HOST"
	KeyPort      = "SERVER_PORT"
)

var ErrMissingDir = errors.New("directory not configured")

type Config struct {
	Resize ResizeConfig
	Server ServerConfig
	S3     S3Config
	Log    LogConfig
}

// ResizeConfig holds the parameters of one batch run.
type ResizeConfig struct {
	SourceDir string
	DestDir   string
	Filter    string
}

type ServerConfig struct {
	Host string
	Port string
}

type S3Config struct {
	Enabled         bool
	Endpoint        string
	AccessKeyID     string
	SecretAccessKey string
	UseSSL          bool
	BucketName      string
	Region          string
	Prefix          string
}

type LogConfig struct {
	Level string
}

// SetDefaults registers the default value of every key on v.
func SetDefaults(v *viper.Viper) {
	v.SetDefault(KeySourceDir, "")
	v.SetDefault(KeyDestDir, "")
	v.SetDefault(KeyFilter, resample.DefaultFilter)
	v.SetDefault(KeyLogLevel, "info")
	v.SetDefault(KeyHost, "localhost")
	v.SetDefault(KeyPort, "8080")
	v.SetDefault("S3_ENABLED", false)
	v.SetDefault("S3_ENDPOINT", "localhost:9000")
	v.SetDefault("S3_ACCESS_KEY_ID", "minioadmin")
	v.SetDefault("S3_SECRET_ACCESS_KEY", "minioadmin")
	v.SetDefault("S3_USE_SSL", false)
	v.SetDefault("S3_BUCKET_NAME", "resized")
	v.SetDefault("S3_REGION", "us-east-1")
	v.SetDefault("S3_PREFIX", "mnist28")
}

// LoadEnvFile loads variables from a dotenv file into the process
// environment. A missing file is not an error.
func LoadEnvFile(path string) error {
	if path == "" {
		return nil
	}
	if err := godotenv.Load(path); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("failed to load env file %s: %w", path, err)
	}
	return nil
}

// Load reads the configuration from v. Flags bound to v take precedence
// over environment variables, which take precedence over defaults.
func Load(v *viper.Viper) *Config {
	SetDefaults(v)
	v.AutomaticEnv()

	return &Config{
		Resize: ResizeConfig{
			SourceDir: v.GetString(KeySourceDir),
			DestDir:   v.GetString(KeyDestDir),
			Filter:    v.GetString(KeyFilter),
		},
		Server: ServerConfig{
			Host: v.GetString(KeyHost),
			Port: v.GetString(KeyPort),
		},
		S3: S3Config{
			Enabled:         v.GetBool("S3_ENABLED"),
			Endpoint:        v.GetString("S3_ENDPOINT"),
			AccessKeyID:     v.GetString("S3_ACCESS_KEY_ID"),
			SecretAccessKey: v.GetString("S3_SECRET_ACCESS_KEY"),
			UseSSL:          v.GetBool("S3_USE_SSL"),
			BucketName:      v.GetString("S3_BUCKET_NAME"),
			Region:          v.GetString("S3_REGION"),
			Prefix:          v.GetString("S3_PREFIX"),
		},
		Log: LogConfig{
			Level: v.GetString(KeyLogLevel),
		},
	}
}

// Validate checks that both directories are named and the filter exists.
// Whether the directories exist is checked when a run starts.
func (c ResizeConfig) Validate() error {
	if c.SourceDir == "" {
		return fmt.Errorf("source: %w (set %s or pass it as an argument)", ErrMissingDir, KeySourceDir)
	}
	if c.DestDir == "" {
		return fmt.Errorf("destination: %w (set %s or pass it as an argument)", ErrMissingDir, KeyDestDir)
	}
	if _, err := resample.Lookup(c.Filter); err != nil {
		return err
	}
	return nil
}
