package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"

	"github.com/dmitrijs2005/portalroom/internal/config"
	"github.com/dmitrijs2005/portalroom/internal/logging"
	"github.com/dmitrijs2005/portalroom/internal/remote"
	"github.com/dmitrijs2005/portalroom/internal/scrape"
	"github.com/dmitrijs2005/portalroom/internal/storage"
	"github.com/dmitrijs2005/portalroom/internal/store"
)

// metadataFetcher is the part of scrape.Fetcher the client uses.
type metadataFetcher interface {
	Fetch(ctx context.Context, rawURL string) (*scrape.Metadata, error)
}

// syncer is the part of remote.Syncer the client uses.
type syncer interface {
	Push(ctx context.Context) (remote.PushResult, error)
	Pull(ctx context.Context) error
}

type App struct {
	config  *config.Config
	store   *store.Store
	log     logging.Logger
	fetcher metadataFetcher
	syncer  syncer
	reader  *bufio.Reader
	out     io.Writer
	closeDB func() error
}

// NewApp opens the local store described by c and wires the optional remote
// backup and scraping collaborators.
func NewApp(ctx context.Context, c *config.Config) (*App, error) {
	logger, err := logging.New(c.LogFormat, os.Stderr)
	if err != nil {
		return nil, err
	}

	persist, closeDB, err := storage.Open(ctx, c.StorageDriver, c.DatabaseDSN, logger)
	if err != nil {
		return nil, fmt.Errorf("db init error: %w", err)
	}

	st, err := store.New(ctx, persist, logger,
		store.WithSettings(c.StoreSettings()),
		store.WithNotifier(store.LogNotifier{Log: logger}),
	)
	if err != nil {
		_ = closeDB()
		return nil, err
	}

	app := &App{
		config:  c,
		store:   st,
		log:     logger,
		reader:  bufio.NewReader(os.Stdin),
		out:     os.Stdout,
		closeDB: closeDB,
	}
	if c.ScrapeTimeout > 0 {
		app.fetcher = scrape.NewFetcher(c.ScrapeTimeout)
	}

	blobs, err := newBlobStore(ctx, c)
	if err != nil {
		_ = closeDB()
		return nil, err
	}
	if blobs != nil {
		app.syncer = remote.NewSyncer(st, blobs, c.SyncPassphrase, logger)
	}
	return app, nil
}

// newBlobStore returns the configured remote backend, or nil when none is
// configured.
func newBlobStore(ctx context.Context, c *config.Config) (remote.BlobStore, error) {
	switch c.RemoteBackend {
	case config.RemoteNone:
		return nil, nil
	case config.RemoteGist:
		if c.GistToken == "" {
			return nil, fmt.Errorf("gist backend needs a token")
		}
		return remote.NewGistStore(ctx, c.GistToken, c.GistID), nil
	case config.RemoteS3:
		return remote.NewS3Store(ctx, remote.S3Config{
			Bucket:    c.S3Bucket,
			Key:       c.S3Key,
			Region:    c.S3Region,
			Endpoint:  c.S3Endpoint,
			AccessKey: c.S3AccessKey,
			SecretKey: c.S3SecretKey,
		})
	default:
		return nil, fmt.Errorf("unknown remote backend %q", c.RemoteBackend)
	}
}

func (a *App) isLoggedIn() bool {
	return a.store.CurrentUser() != ""
}

func (a *App) getStatus() string {
	if u := a.store.CurrentUser(); u != "" {
		return fmt.Sprintf("(%s)", u)
	}
	return ""
}

// Run starts the REPL on stdin and closes the database when the user exits.
func (a *App) Run(ctx context.Context) error {
	fmt.Fprintln(a.out, "Welcome to PortalRoom (type 'help' for commands)")
	runREPL(ctx, a, a.getStatus, a.reader)
	if a.closeDB != nil {
		return a.closeDB()
	}
	return nil
}
