// internal/workers/scheme/validate-profile/models.go
package validateprofile

import "scheme-finder/internal/models"

type Input struct {
	CitizenID string                 `json:"citizenId,omitempty"`
	Profile   map[string]interface{} `json:"profile"`
}

type Output struct {
	Profile      models.UserProfile `json:"profile"`
	ProfileValid bool               `json:"profileValid"`
	Persisted    bool               `json:"profilePersisted"`
}
