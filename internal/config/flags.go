package config

import (
	"flag"
	"io"
	"time"

	"github.com/dmitrijs2005/portalroom/internal/flagx"
)

// parseFlags overlays command-line flags. Only the flags below are looked
// at, so other components may define their own.
//
//	-driver string     storage driver (sqlite, postgres, memory)
//	-d string          database DSN
//	-log string        log format (text, json, zerolog)
//	-a string          HTTP listen address
//	-s string          JWT signing key
//	-t int             token lifetime, minutes
//	-remote string     remote backend (gist, s3)
//	-gist string       gist ID
//	-bucket string     S3 bucket
//	-e string          S3 endpoint
func parseFlags(cfg *Config, args []string) {
	args = flagx.FilterArgs(args, []string{"-driver", "-d", "-log", "-a", "-s", "-t", "-remote", "-gist", "-bucket", "-e"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	fs.StringVar(&cfg.StorageDriver, "driver", cfg.StorageDriver, "storage driver")
	fs.StringVar(&cfg.DatabaseDSN, "d", cfg.DatabaseDSN, "database DSN")
	fs.StringVar(&cfg.LogFormat, "log", cfg.LogFormat, "log format")
	fs.StringVar(&cfg.HTTPAddr, "a", cfg.HTTPAddr, "HTTP listen address")
	fs.StringVar(&cfg.SecretKey, "s", cfg.SecretKey, "secret key")
	tokenTTL := fs.Int("t", int(cfg.TokenTTL.Minutes()), "token validity (in minutes)")
	fs.StringVar(&cfg.RemoteBackend, "remote", cfg.RemoteBackend, "remote backend")
	fs.StringVar(&cfg.GistID, "gist", cfg.GistID, "gist ID")
	fs.StringVar(&cfg.S3Bucket, "bucket", cfg.S3Bucket, "S3 bucket")
	fs.StringVar(&cfg.S3Endpoint, "e", cfg.S3Endpoint, "S3 endpoint")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}

	cfg.TokenTTL = time.Duration(*tokenTTL) * time.Minute
}
