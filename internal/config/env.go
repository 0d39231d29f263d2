package config

import (
	"errors"
	"io/fs"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

const envPrefix = "PORTALROOM_"

// parseEnv overlays PORTALROOM_* variables. Variables from envFile are added
// to the environment first without overriding ones already set; a missing
// file is not an error.
func parseEnv(cfg *Config, envFile string) {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
			panic(err)
		}
	}

	strs := map[string]*string{
		"STORAGE_DRIVER":  &cfg.StorageDriver,
		"DATABASE_DSN":    &cfg.DatabaseDSN,
		"LOG_FORMAT":      &cfg.LogFormat,
		"HTTP_ADDR":       &cfg.HTTPAddr,
		"PUBLIC_URL":      &cfg.PublicURL,
		"SECRET_KEY":      &cfg.SecretKey,
		"REMOTE_BACKEND":  &cfg.RemoteBackend,
		"SYNC_PASSPHRASE": &cfg.SyncPassphrase,
		"GIST_ID":         &cfg.GistID,
		"GIST_TOKEN":      &cfg.GistToken,
		"S3_BUCKET":       &cfg.S3Bucket,
		"S3_KEY":          &cfg.S3Key,
		"S3_REGION":       &cfg.S3Region,
		"S3_ENDPOINT":     &cfg.S3Endpoint,
		"S3_ACCESS_KEY":   &cfg.S3AccessKey,
		"S3_SECRET_KEY":   &cfg.S3SecretKey,
	}
	for name, dst := range strs {
		if v, ok := os.LookupEnv(envPrefix + name); ok {
			*dst = v
		}
	}

	ints := map[string]*int{
		"LOCKOUT_THRESHOLD": &cfg.LockoutThreshold,
		"KARMA_PER_LINK":    &cfg.KarmaPerLink,
	}
	for name, dst := range ints {
		if v, ok := os.LookupEnv(envPrefix + name); ok {
			n, err := strconv.Atoi(v)
			if err != nil {
				panic(err)
			}
			*dst = n
		}
	}

	durations := map[string]*time.Duration{
		"TOKEN_TTL":        &cfg.TokenTTL,
		"LOCKOUT_DURATION": &cfg.LockoutDuration,
		"SCRAPE_TIMEOUT":   &cfg.ScrapeTimeout,
	}
	for name, dst := range durations {
		if v, ok := os.LookupEnv(envPrefix + name); ok {
			d, err := time.ParseDuration(v)
			if err != nil {
				panic(err)
			}
			*dst = d
		}
	}
}
