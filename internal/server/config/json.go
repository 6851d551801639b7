package config

import (
	"encoding/json"
	"os"
	"time"

	"github.com/mghilardi/vidlib/internal/flagx"
)

// JsonConfig is a DTO used exclusively for JSON unmarshalling. The presign
// expiry is given in minutes; zero values and missing keys leave the current
// setting untouched.
type JsonConfig struct {
	EndpointAddr         string `json:"endpoint_addr"`
	DatabaseDSN          string `json:"database_dsn"`
	FFProbePath          string `json:"ffprobe_path"`
	S3AccessKey          string `json:"s3_access_key"`
	S3SecretKey          string `json:"s3_secret_key"`
	S3Bucket             string `json:"s3_bucket"`
	S3Region             string `json:"s3_region"`
	S3BaseEndpoint       string `json:"s3_base_endpoint"`
	PresignExpiryMinutes int    `json:"presign_expiry_minutes"`
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

	if jc.EndpointAddr != "" {
		cfg.EndpointAddr = jc.EndpointAddr
	}
	if jc.DatabaseDSN != "" {
		cfg.DatabaseDSN = jc.DatabaseDSN
	}
	if jc.FFProbePath != "" {
		cfg.FFProbePath = jc.FFProbePath
	}
	if jc.S3AccessKey != "" {
		cfg.S3AccessKey = jc.S3AccessKey
	}
	if jc.S3SecretKey != "" {
		cfg.S3SecretKey = jc.S3SecretKey
	}
	if jc.S3Bucket != "" {
		cfg.S3Bucket = jc.S3Bucket
	}
	if jc.S3Region != "" {
		cfg.S3Region = jc.S3Region
	}
	if jc.S3BaseEndpoint != "" {
		cfg.S3BaseEndpoint = jc.S3BaseEndpoint
	}
	if jc.PresignExpiryMinutes > 0 {
		cfg.PresignExpiry = time.Duration(jc.PresignExpiryMinutes) * time.Minute
	}
}
