// internal/workers/scheme/calculate-match-score/models.go
package calculatematchscore

import (
	"scheme-finder/internal/matching"
	"scheme-finder/internal/models"
)

// Input names the profile and scheme to score. Inline values win over ids.
type Input struct {
	CitizenID string              `json:"citizenId,omitempty"`
	Profile   *models.UserProfile `json:"profile,omitempty"`
	SchemeID  string              `json:"schemeId,omitempty"`
	Scheme    *models.Scheme      `json:"scheme,omitempty"`
}

type Output struct {
	SchemeID     string             `json:"schemeId"`
	MatchScore   int                `json:"matchScore"`
	Recommended  bool               `json:"recommended"`
	MatchFactors matching.Breakdown `json:"matchFactors"`
}
