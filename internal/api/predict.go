package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"scheme-finder/internal/predictor"
)

// predict relays the profile to the remote predictor and passes its answer
// through untouched.
func (s *Server) predict(c *gin.Context) {
	if s.deps.Predictor == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"success": false, "error": "Predictor not configured"})
		return
	}

	var req predictor.Request
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Invalid request body"})
		return
	}
	if req.Tags == nil {
		req.Tags = []string{}
	}

	body, err := s.deps.Predictor.Predict(c.Request.Context(), req)
	if err != nil {
		s.fail(c, err)
		return
	}

	c.Header("Cache-Control", "no-store, max-age=0")
	c.Data(http.StatusOK, "application/json", body)
}
