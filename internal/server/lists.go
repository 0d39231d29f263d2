package server

import (
	"net/http"

	"github.com/dmitrijs2005/portalroom/internal/models"
	"github.com/dmitrijs2005/portalroom/internal/store"
	"github.com/gin-gonic/gin"
)

type listRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	IsPublic    bool   `json:"isPublic"`
}

func (s *Server) getLists(c *gin.Context) {
	lists, err := s.store.Lists(currentUser(c))
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, nonNil(lists))
}

func (s *Server) createList(c *gin.Context) {
	var req listRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		s.badRequest(c, err)
		return
	}
	l, err := s.store.CreateList(c.Request.Context(), currentUser(c), store.ListInput{
		Name:        req.Name,
		Description: req.Description,
		IsPublic:    req.IsPublic,
	})
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, l)
}

// getList returns the list with its resolvable links.
func (s *Server) getList(c *gin.Context) {
	list, links, err := s.store.ResolveList(models.ID(c.Param("id")), currentUser(c))
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"list": list, "links": nonNil(links)})
}

func (s *Server) deleteList(c *gin.Context) {
	if err := s.store.DeleteList(c.Request.Context(), models.ID(c.Param("id")), currentUser(c)); err != nil {
		s.fail(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (s *Server) addToList(c *gin.Context) {
	err := s.store.AddLinkToList(c.Request.Context(), models.ID(c.Param("id")), models.ID(c.Param("linkId")), currentUser(c))
	if err != nil {
		s.fail(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (s *Server) removeFromList(c *gin.Context) {
	err := s.store.RemoveLinkFromList(c.Request.Context(), models.ID(c.Param("id")), models.ID(c.Param("linkId")), currentUser(c))
	if err != nil {
		s.fail(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
