package server

import (
	"errors"
	"math"
	"net/http"
	"strconv"

	"github.com/dmitrijs2005/portalroom/internal/common"
	"github.com/gin-gonic/gin"
)

// statusFor maps the store's error kinds to HTTP status codes.
func statusFor(err error) int {
	switch {
	case errors.Is(err, common.ErrNotAuthenticated),
		errors.Is(err, common.ErrInvalidToken),
		errors.Is(err, common.ErrTokenExpired),
		errors.Is(err, common.ErrInvalidCredentials):
		return http.StatusUnauthorized
	case errors.Is(err, common.ErrValidation):
		return http.StatusBadRequest
	case errors.Is(err, common.ErrAuthorization):
		return http.StatusForbidden
	case errors.Is(err, common.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, common.ErrDuplicate):
		return http.StatusConflict
	case errors.Is(err, common.ErrRateLimit):
		return http.StatusTooManyRequests
	default:
		return http.StatusInternalServerError
	}
}

func (s *Server) fail(c *gin.Context, err error) {
	status := statusFor(err)
	msg := err.Error()
	if status == http.StatusInternalServerError {
		s.log.Error(c.Request.Context(), "request failed", "path", c.FullPath(), "error", err)
		msg = "internal error"
	}

	var locked *common.LockedError
	if errors.As(err, &locked) {
		secs := math.Ceil(locked.Until.Sub(s.opts.Now()).Seconds())
		c.Header("Retry-After", strconv.Itoa(max(int(secs), 1)))
	}
	c.JSON(status, gin.H{"error": msg})
}

// badRequest reports a malformed request body.
func (s *Server) badRequest(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body: " + err.Error()})
}
