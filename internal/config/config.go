package config

import (
	"os"
	"time"

	"github.com/dmitrijs2005/portalroom/internal/store"
)

// Remote backends.
const (
	RemoteNone = ""
	RemoteGist = "gist"
	RemoteS3   = "s3"
)

// DefaultEnvFile is read, when present, before environment variables are
// applied.
const DefaultEnvFile = ".env"

type Config struct {
	StorageDriver string
	DatabaseDSN   string
	LogFormat     string

	HTTPAddr  string
	PublicURL string
	SecretKey string
	TokenTTL  time.Duration

	LockoutThreshold int
	LockoutDuration  time.Duration
	KarmaPerLink     int

	RemoteBackend  string
	SyncPassphrase string
	GistID         string
	GistToken      string
	S3Bucket       string
	S3Key          string
	S3Region       string
	S3Endpoint     string
	S3AccessKey    string
	S3SecretKey    string

	ScrapeTimeout time.Duration
}

// LoadDefaults populates c with development defaults. The secret key is
// left empty so the server signs tokens with a per-process random key
// unless one is configured.
func (c *Config) LoadDefaults() {
	c.StorageDriver = "sqlite"
	c.DatabaseDSN = "portalroom.db"
	c.LogFormat = "text"
	c.HTTPAddr = ":8080"
	c.PublicURL = "http://localhost:8080"
	c.SecretKey = ""
	c.TokenTTL = 24 * time.Hour

	d := store.DefaultSettings()
	c.LockoutThreshold = d.LockoutThreshold
	c.LockoutDuration = d.LockoutDuration
	c.KarmaPerLink = d.KarmaPerLink

	c.RemoteBackend = RemoteNone
	c.S3Key = "portalroom.json"
	c.S3Region = "us-east-1"
	c.ScrapeTimeout = 5 * time.Second
}

// StoreSettings returns the store rules selected by c.
func (c *Config) StoreSettings() store.Settings {
	s := store.DefaultSettings()
	s.LockoutThreshold = c.LockoutThreshold
	s.LockoutDuration = c.LockoutDuration
	s.KarmaPerLink = c.KarmaPerLink
	return s
}

// Load builds a Config from defaults, the JSON file named in args, the
// environment (after reading envFile if it exists) and the flags in args.
func Load(args []string, envFile string) *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg, args)
	parseEnv(cfg, envFile)
	parseFlags(cfg, args)
	return cfg
}

// LoadConfig is Load over the process arguments and DefaultEnvFile.
func LoadConfig() *Config {
	return Load(os.Args[1:], DefaultEnvFile)
}
