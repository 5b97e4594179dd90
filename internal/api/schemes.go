package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "scheme-finder/internal/common/errors"
)

func (s *Server) listSchemes(c *gin.Context) {
	snap := s.deps.Catalog.Current()
	if snap == nil {
		s.fail(c, apperrors.NewCatalogEmptyError("store"))
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"schemes": snap.Schemes(),
		"total":   snap.Len(),
		"version": snap.Version,
	})
}

func (s *Server) getScheme(c *gin.Context) {
	scheme, ok := s.deps.Catalog.Current().Lookup(c.Param("id"))
	if !ok {
		s.fail(c, apperrors.NewSchemeNotFoundError(c.Param("id")))
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "scheme": scheme})
}
