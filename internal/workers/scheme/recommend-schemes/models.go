// internal/workers/scheme/recommend-schemes/models.go
package recommendschemes

import "scheme-finder/internal/models"

type Input struct {
	CitizenID string              `json:"citizenId,omitempty"`
	Profile   *models.UserProfile `json:"profile,omitempty"`
}

type Output struct {
	Recommendations  []models.ScoredScheme `json:"recommendations"`
	Total            int                   `json:"total"`
	CatalogVersion   string                `json:"catalogVersion"`
	OverridesApplied []string              `json:"overridesApplied"`
	Cached           bool                  `json:"cached"`
}

// ranking is the cached part of an Output.
type ranking struct {
	Recommendations  []models.ScoredScheme `json:"recommendations"`
	OverridesApplied []string              `json:"overridesApplied"`
}
