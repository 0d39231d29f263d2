package config

import (
	"encoding/json"
	"os"
	"time"

	"github.com/dmitrijs2005/portalroom/internal/flagx"
	"github.com/dmitrijs2005/portalroom/internal/timex"
)

// JsonConfig mirrors Config for JSON files. Durations accept either a Go
// duration string such as "15m" or integer nanoseconds. Absent fields keep
// the value already in Config.
type JsonConfig struct {
	StorageDriver    string         `json:"storage_driver"`
	DatabaseDSN      string         `json:"database_dsn"`
	LogFormat        string         `json:"log_format"`
	HTTPAddr         string         `json:"http_addr"`
	PublicURL        string         `json:"public_url"`
	SecretKey        string         `json:"secret_key"`
	TokenTTL         timex.Duration `json:"token_ttl"`
	LockoutThreshold int            `json:"lockout_threshold"`
	LockoutDuration  timex.Duration `json:"lockout_duration"`
	KarmaPerLink     int            `json:"karma_per_link"`
	RemoteBackend    string         `json:"remote_backend"`
	SyncPassphrase   string         `json:"sync_passphrase"`
	GistID           string         `json:"gist_id"`
	GistToken        string         `json:"gist_token"`
	S3Bucket         string         `json:"s3_bucket"`
	S3Key            string         `json:"s3_key"`
	S3Region         string         `json:"s3_region"`
	S3Endpoint       string         `json:"s3_endpoint"`
	S3AccessKey      string         `json:"s3_access_key"`
	S3SecretKey      string         `json:"s3_secret_key"`
	ScrapeTimeout    timex.Duration `json:"scrape_timeout"`
}

// parseJson overlays the file named by -c or -config in args. Nothing is
// loaded when neither flag is present; an unreadable or invalid file panics.
func parseJson(cfg *Config, args []string) {
	path := flagx.ConfigPath(args)
	if path == "" {
		return
	}

	file, err := os.ReadFile(path)
	if err != nil {
		panic(err)
	}
	c := &JsonConfig{}
	if err := json.Unmarshal(file, c); err != nil {
		panic(err)
	}

	setString(&cfg.StorageDriver, c.StorageDriver)
	setString(&cfg.DatabaseDSN, c.DatabaseDSN)
	setString(&cfg.LogFormat, c.LogFormat)
	setString(&cfg.HTTPAddr, c.HTTPAddr)
	setString(&cfg.PublicURL, c.PublicURL)
	setString(&cfg.SecretKey, c.SecretKey)
	setDuration(&cfg.TokenTTL, c.TokenTTL)
	setInt(&cfg.LockoutThreshold, c.LockoutThreshold)
	setDuration(&cfg.LockoutDuration, c.LockoutDuration)
	setInt(&cfg.KarmaPerLink, c.KarmaPerLink)
	setString(&cfg.RemoteBackend, c.RemoteBackend)
	setString(&cfg.SyncPassphrase, c.SyncPassphrase)
	setString(&cfg.GistID, c.GistID)
	setString(&cfg.GistToken, c.GistToken)
	setString(&cfg.S3Bucket, c.S3Bucket)
	setString(&cfg.S3Key, c.S3Key)
	setString(&cfg.S3Region, c.S3Region)
	setString(&cfg.S3Endpoint, c.S3Endpoint)
	setString(&cfg.S3AccessKey, c.S3AccessKey)
	setString(&cfg.S3SecretKey, c.S3SecretKey)
	setDuration(&cfg.ScrapeTimeout, c.ScrapeTimeout)
}

func setString(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}

func setInt(dst *int, v int) {
	if v != 0 {
		*dst = v
	}
}

func setDuration(dst *time.Duration, v timex.Duration) {
	if v.Duration != 0 {
		*dst = v.Duration
	}
}
