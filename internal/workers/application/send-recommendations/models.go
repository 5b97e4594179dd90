// internal/workers/application/send-recommendations/models.go
package sendrecommendations

import "scheme-finder/internal/models"

// Input carries either engine recommendations or predictor shortlists.
// When both are present the engine list is used.
type Input struct {
	CitizenID       string                        `json:"citizenId"`
	Email           string                        `json:"email,omitempty"`
	Phone           string                        `json:"phone,omitempty"`
	Recommendations []models.ScoredScheme         `json:"recommendations,omitempty"`
	Predictions     []models.SchemeRecommendation `json:"predictions,omitempty"`
}

type Output struct {
	NotificationID string   `json:"notificationId"`
	Status         string   `json:"status"`
	Channels       []string `json:"channels"`
	SchemeCount    int      `json:"schemeCount"`
	SentAt         string   `json:"sentAt"` // ISO 8601
}

// Statuses
const (
	StatusSent     = "sent"
	StatusDisabled = "disabled"
)

// Channels
const (
	ChannelEmail = "email"
	ChannelSMS   = "sms"
)
