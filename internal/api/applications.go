package api

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	apperrors "scheme-finder/internal/common/errors"
	"scheme-finder/internal/models"
)

func (s *Server) listApplications(c *gin.Context) {
	apps, err := s.deps.Tracker.List(c.Request.Context(), c.GetString(ctxCitizenID))
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "applications": apps, "total": len(apps)})
}

// addApplication tracks a scheme. Re-adding a tracked scheme returns the
// existing record with 200 instead of 201.
func (s *Server) addApplication(c *gin.Context) {
	var rec models.SchemeRecommendation
	if err := c.ShouldBindJSON(&rec); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Invalid request body"})
		return
	}
	if strings.TrimSpace(rec.SchemeName) == "" {
		s.fail(c, apperrors.NewInvalidInputError("schemeName", "is required"))
		return
	}

	app, created, err := s.deps.Tracker.Add(c.Request.Context(), c.GetString(ctxCitizenID), rec)
	if err != nil {
		s.fail(c, err)
		return
	}
	status := http.StatusOK
	if created {
		status = http.StatusCreated
	}
	c.JSON(status, gin.H{"success": true, "application": app, "created": created})
}

func (s *Server) updateApplication(c *gin.Context) {
	var upd models.ApplicationUpdate
	if err := c.ShouldBindJSON(&upd); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Invalid request body"})
		return
	}

	app, err := s.deps.Tracker.Update(c.Request.Context(), c.GetString(ctxCitizenID), c.Param("id"), upd)
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "application": app})
}

func (s *Server) removeApplication(c *gin.Context) {
	if err := s.deps.Tracker.Remove(c.Request.Context(), c.GetString(ctxCitizenID), c.Param("id")); err != nil {
		s.fail(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
