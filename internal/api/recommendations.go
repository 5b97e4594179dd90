package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/otel/attribute"

	apperrors "scheme-finder/internal/common/errors"
	"scheme-finder/internal/common/metrics"
	"scheme-finder/internal/common/validation"
	"scheme-finder/internal/models"
)

type recommendResponse struct {
	Success         bool                  `json:"success"`
	Recommendations []models.ScoredScheme `json:"recommendations"`
	Total           int                   `json:"total"`
	Profile         models.UserProfile    `json:"profile"`
}

func (s *Server) recommend(c *gin.Context) {
	var body map[string]interface{}
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Invalid request body"})
		return
	}

	profile, shape, err := validation.DecodeProfile(body)
	if err != nil {
		s.fail(c, apperrors.NewInternalError(err))
		return
	}
	if !shape.Valid {
		msg := "Invalid profile"
		for _, e := range shape.Errors {
			if e.Code == "REQUIRED_FIELD_MISSING" {
				msg = "Missing required fields"
				break
			}
		}
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": msg, "fieldErrors": shape.FieldErrors()})
		return
	}

	profile = validation.NormalizeProfile(profile)
	if res := validation.ValidateProfile(profile); !res.Valid {
		s.fail(c, apperrors.NewProfileValidationError(res.FieldErrors()))
		return
	}

	snap := s.deps.Catalog.Current()
	if snap == nil {
		s.fail(c, apperrors.NewCatalogEmptyError("store"))
		return
	}

	_, span := s.deps.Tracer.Start(c.Request.Context(), "matching.Rank")
	res := s.deps.Engine.Rank(profile, snap.Schemes())
	span.SetAttributes(
		attribute.Int("catalog_size", snap.Len()),
		attribute.Int("recommendations", len(res.Recommendations)),
		attribute.StringSlice("overrides", res.Applied),
	)
	span.End()
	for _, rule := range res.Applied {
		metrics.OverridesApplied.WithLabelValues(rule).Inc()
	}
	metrics.RecommendationListSize.Observe(float64(len(res.Recommendations)))
	metrics.RecommendationsServed.WithLabelValues("api", "none").Inc()

	c.JSON(http.StatusOK, recommendResponse{
		Success:         true,
		Recommendations: res.Recommendations,
		Total:           len(res.Recommendations),
		Profile:         profile,
	})
}
