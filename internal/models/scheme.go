// internal/models/scheme.go
package models

// Scheme holds one scheme's eligibility rules plus descriptive fields.
// MinAge and MaxAge are inclusive.
type Scheme struct {
	ID                string    `json:"id"`
	Name              string    `json:"name"`
	Description       string    `json:"description"`
	Benefits          string    `json:"benefits"`
	MinAge            int       `json:"minAge"`
	MaxAge            int       `json:"maxAge"`
	GenderEligibility Gender    `json:"genderEligibility"`
	MinEducation      Education `json:"minEducation"`
	Area              Area      `json:"area"`
	State             string    `json:"state"`
	TargetGroups      []string  `json:"targetGroups"`
	Department        string    `json:"department"`
	ApplicationLink   string    `json:"applicationLink"`
}

// ScoredScheme is a Scheme annotated with its match score in [0,100].
type ScoredScheme struct {
	Scheme
	MatchScore int `json:"matchScore"`
}

// SchemeRecommendation is the reduced shape returned by the remote predictor
// after normalization.
type SchemeRecommendation struct {
	ID              string `json:"id"`
	SchemeName      string `json:"schemeName"`
	State           string `json:"state"`
	ApplicationLink string `json:"applicationLink"`
}
