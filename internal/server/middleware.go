package server

import (
	"strings"
	"time"

	"github.com/dmitrijs2005/portalroom/internal/common"
	"github.com/dmitrijs2005/portalroom/internal/server/auth"
	"github.com/gin-gonic/gin"
)

const usernameKey = "username"

func (s *Server) requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		s.log.Info(c.Request.Context(), "request",
			"method", c.Request.Method,
			"path", c.FullPath(),
			"status", c.Writer.Status(),
			"duration", time.Since(start).String(),
		)
	}
}

func bearerToken(c *gin.Context) string {
	h := c.GetHeader("Authorization")
	if token, ok := strings.CutPrefix(h, "Bearer "); ok {
		return strings.TrimSpace(token)
	}
	return ""
}

// requireAuth rejects requests without a valid bearer token and stores the
// token's username in the context.
func (s *Server) requireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		token := bearerToken(c)
		if token == "" {
			s.fail(c, common.ErrNotAuthenticated)
			c.Abort()
			return
		}
		username, err := auth.ParseToken(token, s.secret, s.opts.Now)
		if err != nil {
			s.fail(c, err)
			c.Abort()
			return
		}
		c.Set(usernameKey, username)
		c.Next()
	}
}

// optionalAuth records the username when a valid token is present and
// otherwise lets the request through anonymously.
func (s *Server) optionalAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		if token := bearerToken(c); token != "" {
			if username, err := auth.ParseToken(token, s.secret, s.opts.Now); err == nil {
				c.Set(usernameKey, username)
			}
		}
		c.Next()
	}
}

func currentUser(c *gin.Context) string {
	return c.GetString(usernameKey)
}
