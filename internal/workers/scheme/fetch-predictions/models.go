// internal/workers/scheme/fetch-predictions/models.go
package fetchpredictions

import "scheme-finder/internal/models"

const (
	SourcePredictor = "predictor"
	SourceEngine    = "engine"
)

type Input struct {
	CitizenID string             `json:"citizenId,omitempty"`
	Profile   models.UserProfile `json:"profile"`
}

type Output struct {
	Recommendations []models.SchemeRecommendation `json:"predictions"`
	Total           int                           `json:"predictionCount"`
	Source          string                        `json:"predictionSource"`
}
