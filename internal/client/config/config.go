// Package config handles configuration for the client: defaults, optional
// JSON overlay, and command-line flags, in that order of precedence.
package config

import (
	"time"

	"github.com/mghilardi/vidlib/internal/client/validation"
)

// Config holds runtime settings for the client, including the validation
// policy applied to candidate uploads.
type Config struct {
	ServerEndpointAddr  string
	FFProbePath         string
	CacheDSN            string
	OnlineCheckInterval time.Duration

	MaxVideoSizeMB          int64
	MaxVideoDurationSeconds int
	MaxThumbnailSizeMB      int64

	SupportedVideoFormats    []string
	SupportedVideoExtensions []string
	SupportedImageFormats    []string
	SupportedImageExtensions []string

	Categories []string
}

// LoadDefaults populates c with the stock policy and endpoints.
func (c *Config) LoadDefaults() {
	c.ServerEndpointAddr = "http://127.0.0.1:3070"
	c.FFProbePath = "ffprobe"
	c.CacheDSN = "library.db"
	c.OnlineCheckInterval = 3 * time.Second

	c.MaxVideoSizeMB = 2048
	c.MaxVideoDurationSeconds = 3600
	c.MaxThumbnailSizeMB = 10

	c.SupportedVideoFormats = []string{"video/mp4", "video/quicktime", "video/x-msvideo"}
	c.SupportedVideoExtensions = []string{"mp4", "mov", "avi"}
	c.SupportedImageFormats = []string{"image/jpeg", "image/png", "image/webp", "image/jpg"}
	c.SupportedImageExtensions = []string{"jpeg", "jpg", "png", "webp"}

	c.Categories = []string{
		"Programming", "Photography", "Cooking", "Fitness",
		"Music", "Travel", "Business", "Other",
	}
}

// Policy derives the validator configuration from the loaded settings.
func (c *Config) Policy() validation.Policy {
	return validation.Policy{
		MaxVideoSizeBytes:     c.MaxVideoSizeMB * validation.MBToBytes,
		MaxVideoDuration:      float64(c.MaxVideoDurationSeconds),
		MaxThumbnailSizeBytes: c.MaxThumbnailSizeMB * validation.MBToBytes,
		VideoFormats:          c.SupportedVideoFormats,
		VideoExtensions:       c.SupportedVideoExtensions,
		ImageFormats:          c.SupportedImageFormats,
		ImageExtensions:       c.SupportedImageExtensions,
	}
}

// LoadConfig constructs a Config, applies defaults, then overlays values
// from JSON (if present) and command-line flags. Later sources win.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)
	parseFlags(cfg)
	return cfg
}
