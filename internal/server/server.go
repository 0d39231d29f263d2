// Package server exposes the store over a JSON HTTP API and pushes store
// events to websocket clients.
package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/dmitrijs2005/portalroom/internal/feed"
	"github.com/dmitrijs2005/portalroom/internal/logging"
	"github.com/dmitrijs2005/portalroom/internal/store"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

const shutdownTimeout = 5 * time.Second

type Options struct {
	Address   string
	SecretKey string
	TokenTTL  time.Duration
	PublicURL string
	// Now replaces time.Now when set.
	Now func() time.Time
}

type Server struct {
	store  *store.Store
	hub    *Hub
	log    logging.Logger
	opts   Options
	secret []byte
}

// NewServer builds a server over s. hub may be nil when no event stream is
// wanted.
func NewServer(s *store.Store, hub *Hub, log logging.Logger, opts Options) *Server {
	if opts.Now == nil {
		opts.Now = time.Now
	}
	return &Server{
		store:  s,
		hub:    hub,
		log:    log.With("module", "http_server"),
		opts:   opts,
		secret: []byte(opts.SecretKey),
	}
}

// Router returns the gin engine with every route registered.
func (s *Server) Router() *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), s.requestLogger())

	r.Use(cors.New(cors.Config{
		AllowOrigins:  []string{"*"},
		AllowMethods:  []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:  []string{"Accept", "Authorization", "Content-Type"},
		ExposeHeaders: []string{"Content-Length", "Retry-After"},
		MaxAge:        12 * time.Hour,
	}))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/feed.rss", s.rss)
	if s.hub != nil {
		r.GET("/ws", gin.WrapH(s.hub))
	}

	api := r.Group("/api")
	{
		api.POST("/register", s.register)
		api.POST("/login", s.login)

		api.GET("/links", s.listLinks)
		api.GET("/links/:id", s.getLink)
		api.GET("/trending", s.trending)
		api.GET("/users/:username", s.optionalAuth(), s.getUser)

		protected := api.Group("")
		protected.Use(s.requireAuth())
		{
			protected.POST("/links", s.submitLink)
			protected.PUT("/links/:id", s.editLink)
			protected.DELETE("/links/:id", s.deleteLink)
			protected.POST("/links/:id/vote", s.vote)
			protected.POST("/links/:id/bookmark", s.toggleBookmark)
			protected.POST("/links/:id/comments", s.addComment)
			protected.DELETE("/links/:id/comments/:commentId", s.deleteComment)

			protected.GET("/lists", s.getLists)
			protected.POST("/lists", s.createList)
			protected.GET("/lists/:id", s.getList)
			protected.DELETE("/lists/:id", s.deleteList)
			protected.POST("/lists/:id/links/:linkId", s.addToList)
			protected.DELETE("/lists/:id/links/:linkId", s.removeFromList)

			protected.PUT("/profile", s.updateProfile)
			protected.POST("/users/:username/follow", s.follow)
			protected.DELETE("/users/:username/follow", s.unfollow)
			protected.GET("/feed", s.userFeed)
			protected.GET("/bookmarks", s.bookmarks)
		}
	}

	return r
}

// Run serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.opts.Address,
		Handler:           s.Router(),
		ReadHeaderTimeout: 10 * time.Second,
		IdleTimeout:       time.Minute,
	}

	errc := make(chan error, 1)
	go func() {
		s.log.Info(ctx, "Starting HTTP server", "address", s.opts.Address)
		errc <- srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
	}

	s.log.Info(ctx, "Stopping HTTP server...")
	if s.hub != nil {
		s.hub.Close()
	}
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errc; !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func (s *Server) rss(c *gin.Context) {
	links := s.store.Links(store.LinkFilter{Limit: feed.DefaultLimit})
	out, err := feed.RSS(links, feed.Channel{Link: s.opts.PublicURL}, s.opts.Now())
	if err != nil {
		s.fail(c, err)
		return
	}
	c.Data(http.StatusOK, "application/rss+xml; charset=utf-8", []byte(out))
}
