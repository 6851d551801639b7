package config

import (
	"encoding/json"
	"os"
	"time"

	"github.com/mghilardi/vidlib/internal/flagx"
)

// JsonConfig is a DTO used exclusively for JSON unmarshalling. Durations are
// given in seconds; zero values and missing keys leave the current setting
// untouched.
type JsonConfig struct {
	ServerEndpointAddr  string `json:"server_endpoint_addr"`
	FFProbePath         string `json:"ffprobe_path"`
	CacheDSN            string `json:"cache_dsn"`
	OnlineCheckInterval int    `json:"online_check_interval"`

	MaxVideoSizeMB          int64 `json:"max_video_size_mb"`
	MaxVideoDurationSeconds int   `json:"max_video_duration_seconds"`
	MaxThumbnailSizeMB      int64 `json:"max_thumbnail_size_mb"`

	SupportedVideoFormats    []string `json:"supported_video_formats"`
	SupportedVideoExtensions []string `json:"supported_video_extensions"`
	SupportedImageFormats    []string `json:"supported_image_formats"`
	SupportedImageExtensions []string `json:"supported_image_extensions"`

	Categories []string `json:"categories"`
}

// parseJson overlays cfg with values loaded from the JSON file given via the
// -c/-config flags. No file means no changes. Read or parse failures panic;
// configuration errors should be loud and immediate.
func parseJson(cfg *Config) {
	jsonConfigFile := flagx.JsonConfigFlags()
	if jsonConfigFile == "" {
		return
	}

	var jc JsonConfig

	data, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}
	if err := json.Unmarshal(data, &jc); err != nil {
		panic(err)
	}

	if jc.ServerEndpointAddr != "" {
		cfg.ServerEndpointAddr = jc.ServerEndpointAddr
	}
	if jc.FFProbePath != "" {
		cfg.FFProbePath = jc.FFProbePath
	}
	if jc.CacheDSN != "" {
		cfg.CacheDSN = jc.CacheDSN
	}
	if jc.OnlineCheckInterval > 0 {
		cfg.OnlineCheckInterval = time.Duration(jc.OnlineCheckInterval) * time.Second
	}
	if jc.MaxVideoSizeMB > 0 {
		cfg.MaxVideoSizeMB = jc.MaxVideoSizeMB
	}
	if jc.MaxVideoDurationSeconds > 0 {
		cfg.MaxVideoDurationSeconds = jc.MaxVideoDurationSeconds
	}
	if jc.MaxThumbnailSizeMB > 0 {
		cfg.MaxThumbnailSizeMB = jc.MaxThumbnailSizeMB
	}
	if len(jc.SupportedVideoFormats) > 0 {
		cfg.SupportedVideoFormats = jc.SupportedVideoFormats
	}
	if len(jc.SupportedVideoExtensions) > 0 {
		cfg.SupportedVideoExtensions = jc.SupportedVideoExtensions
	}
	if len(jc.SupportedImageFormats) > 0 {
		cfg.SupportedImageFormats = jc.SupportedImageFormats
	}
	if len(jc.SupportedImageExtensions) > 0 {
		cfg.SupportedImageExtensions = jc.SupportedImageExtensions
	}
	if len(jc.Categories) > 0 {
		cfg.Categories = jc.Categories
	}
}
