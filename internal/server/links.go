package server

import (
	"net/http"
	"strconv"

	"github.com/dmitrijs2005/portalroom/internal/models"
	"github.com/dmitrijs2005/portalroom/internal/store"
	"github.com/gin-gonic/gin"
)

const defaultTrending = 10

type linkRequest struct {
	URL         string   `json:"url"`
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Tags        []string `json:"tags"`
	Category    string   `json:"category"`
}

func (r linkRequest) input() store.LinkInput {
	return store.LinkInput{
		URL:         r.URL,
		Title:       r.Title,
		Description: r.Description,
		Tags:        r.Tags,
		Category:    r.Category,
	}
}

func linkID(c *gin.Context) models.ID {
	return models.ID(c.Param("id"))
}

func (s *Server) listLinks(c *gin.Context) {
	limit, _ := strconv.Atoi(c.Query("limit"))
	links := s.store.Links(store.LinkFilter{
		Query:    c.Query("q"),
		Category: c.Query("category"),
		Tag:      c.Query("tag"),
		Author:   c.Query("author"),
		Limit:    limit,
	})
	c.JSON(http.StatusOK, nonNil(links))
}

// getLink returns a link and counts the request as a view.
func (s *Server) getLink(c *gin.Context) {
	if _, err := s.store.IncrementViews(c.Request.Context(), linkID(c)); err != nil {
		s.fail(c, err)
		return
	}
	l, err := s.store.Link(linkID(c))
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, l)
}

func (s *Server) trending(c *gin.Context) {
	n := defaultTrending
	if v, err := strconv.Atoi(c.Query("n")); err == nil && v > 0 {
		n = v
	}
	c.JSON(http.StatusOK, nonNil(s.store.Trending(n)))
}

func (s *Server) submitLink(c *gin.Context) {
	var req linkRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		s.badRequest(c, err)
		return
	}
	l, err := s.store.SubmitLink(c.Request.Context(), currentUser(c), req.input())
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, l)
}

func (s *Server) editLink(c *gin.Context) {
	var req linkRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		s.badRequest(c, err)
		return
	}
	l, err := s.store.EditLink(c.Request.Context(), linkID(c), currentUser(c), req.input())
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, l)
}

func (s *Server) deleteLink(c *gin.Context) {
	if err := s.store.DeleteLink(c.Request.Context(), linkID(c), currentUser(c)); err != nil {
		s.fail(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

type voteRequest struct {
	Direction models.VoteDirection `json:"direction"`
}

func (s *Server) vote(c *gin.Context) {
	var req voteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		s.badRequest(c, err)
		return
	}
	res, err := s.store.Vote(c.Request.Context(), linkID(c), currentUser(c), req.Direction)
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"linkId":      res.LinkID,
		"state":       res.State,
		"up":          res.Up,
		"down":        res.Down,
		"score":       res.Score,
		"authorKarma": res.AuthorKarma,
	})
}

func (s *Server) toggleBookmark(c *gin.Context) {
	on, err := s.store.ToggleBookmark(c.Request.Context(), linkID(c), currentUser(c))
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"bookmarked": on})
}

type commentRequest struct {
	Text string `json:"text"`
}

func (s *Server) addComment(c *gin.Context) {
	var req commentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		s.badRequest(c, err)
		return
	}
	cm, err := s.store.AddComment(c.Request.Context(), linkID(c), currentUser(c), req.Text)
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, cm)
}

func (s *Server) deleteComment(c *gin.Context) {
	err := s.store.DeleteComment(c.Request.Context(), linkID(c), models.ID(c.Param("commentId")), currentUser(c))
	if err != nil {
		s.fail(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
