package server

import (
	"net/http"
	"time"

	"github.com/dmitrijs2005/portalroom/internal/server/auth"
	"github.com/gin-gonic/gin"
)

type credentialsRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type tokenResponse struct {
	Token     string    `json:"token"`
	Username  string    `json:"username"`
	ExpiresAt time.Time `json:"expiresAt"`
}

func (s *Server) issueToken(c *gin.Context, status int, username string) {
	now := s.opts.Now()
	token, err := auth.GenerateToken(username, s.secret, now, s.opts.TokenTTL)
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(status, tokenResponse{Token: token, Username: username, ExpiresAt: now.Add(s.opts.TokenTTL)})
}

func (s *Server) register(c *gin.Context) {
	var req credentialsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		s.badRequest(c, err)
		return
	}
	acc, err := s.store.Register(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		s.fail(c, err)
		return
	}
	s.issueToken(c, http.StatusCreated, acc.Username)
}

func (s *Server) login(c *gin.Context) {
	var req credentialsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		s.badRequest(c, err)
		return
	}
	sess, err := s.store.Authenticate(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		s.fail(c, err)
		return
	}
	s.issueToken(c, http.StatusOK, sess.Username)
}

func (s *Server) getUser(c *gin.Context) {
	acc, err := s.store.Account(c.Param("username"), currentUser(c))
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, acc)
}

type profileRequest struct {
	Bio string `json:"bio"`
}

func (s *Server) updateProfile(c *gin.Context) {
	var req profileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		s.badRequest(c, err)
		return
	}
	acc, err := s.store.UpdateProfile(c.Request.Context(), currentUser(c), req.Bio)
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, acc)
}

func (s *Server) follow(c *gin.Context) {
	if err := s.store.Follow(c.Request.Context(), currentUser(c), c.Param("username")); err != nil {
		s.fail(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (s *Server) unfollow(c *gin.Context) {
	if err := s.store.Unfollow(c.Request.Context(), currentUser(c), c.Param("username")); err != nil {
		s.fail(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (s *Server) userFeed(c *gin.Context) {
	c.JSON(http.StatusOK, nonNil(s.store.Feed(currentUser(c))))
}

func (s *Server) bookmarks(c *gin.Context) {
	links, err := s.store.Bookmarks(currentUser(c))
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, nonNil(links))
}

// nonNil keeps empty results encoded as [] rather than null.
func nonNil[T any](in []T) []T {
	if in == nil {
		return []T{}
	}
	return in
}
