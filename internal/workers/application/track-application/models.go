// internal/workers/application/track-application/models.go
package trackapplication

import "scheme-finder/internal/models"

const (
	ActionAdd    = "add"
	ActionUpdate = "update"
	ActionRemove = "remove"
	ActionList   = "list"
	ActionCheck  = "check"
)

type Input struct {
	Action        string                       `json:"action"`
	CitizenID     string                       `json:"citizenId"`
	ApplicationID string                       `json:"applicationId,omitempty"`
	Scheme        *models.SchemeRecommendation `json:"scheme,omitempty"`
	SchemeName    string                       `json:"schemeName,omitempty"`
	Update        *models.ApplicationUpdate    `json:"update,omitempty"`
}

type Output struct {
	Action       string                      `json:"action"`
	Application  *models.TrackedApplication  `json:"application,omitempty"`
	Applications []models.TrackedApplication `json:"applications,omitempty"`
	Total        int                         `json:"total"`
	Created      bool                        `json:"created"`
	Tracked      bool                        `json:"tracked"`
}
