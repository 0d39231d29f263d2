package server

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/dmitrijs2005/portalroom/internal/common"
	"github.com/dmitrijs2005/portalroom/internal/config"
	"github.com/dmitrijs2005/portalroom/internal/logging"
	"github.com/dmitrijs2005/portalroom/internal/storage"
	"github.com/dmitrijs2005/portalroom/internal/store"
)

// App wires configuration, storage, the store and the HTTP server for the
// portalroomd binary.
type App struct {
	config  *config.Config
	logger  logging.Logger
	server  *Server
	closeDB func() error
}

func NewApp(ctx context.Context, c *config.Config) (*App, error) {
	logger, err := logging.New(c.LogFormat, os.Stdout)
	if err != nil {
		return nil, err
	}

	persist, closeDB, err := storage.Open(ctx, c.StorageDriver, c.DatabaseDSN, logger)
	if err != nil {
		return nil, fmt.Errorf("db init error: %w", err)
	}

	secret := c.SecretKey
	if secret == "" {
		if secret, err = common.MakeRandHexString(32); err != nil {
			_ = closeDB()
			return nil, err
		}
		logger.Warn(ctx, "no secret key configured, issued tokens will not survive a restart")
	}

	hub := NewHub(logger)
	st, err := store.New(ctx, persist, logger,
		store.WithSettings(c.StoreSettings()),
		store.WithNotifier(store.Fanout{store.LogNotifier{Log: logger}, hub}),
	)
	if err != nil {
		_ = closeDB()
		return nil, err
	}

	srv := NewServer(st, hub, logger, Options{
		Address:   c.HTTPAddr,
		SecretKey: secret,
		TokenTTL:  c.TokenTTL,
		PublicURL: c.PublicURL,
	})
	return &App{config: c, logger: logger, server: srv, closeDB: closeDB}, nil
}

func (app *App) initSignalHandler(cancelFunc context.CancelFunc) {
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		<-sigs
		cancelFunc()
	}()
}

// Run serves until a termination signal arrives or ctx is cancelled.
func (app *App) Run(ctx context.Context) error {
	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()

	app.logger.Info(ctx, "Starting app...")
	app.initSignalHandler(cancelFunc)

	err := app.server.Run(ctx)
	if cerr := app.closeDB(); cerr != nil {
		app.logger.Error(ctx, "failed to close database", "error", cerr)
	}
	return err
}
