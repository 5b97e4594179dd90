// internal/models/application.go
package models

import "time"

type ApplicationStatus string

const (
	StatusApplied          ApplicationStatus = "applied"
	StatusInProgress       ApplicationStatus = "in-progress"
	StatusApproved         ApplicationStatus = "approved"
	StatusRejected         ApplicationStatus = "rejected"
	StatusPendingDocuments ApplicationStatus = "pending-documents"
)

func (s ApplicationStatus) Valid() bool {
	switch s {
	case StatusApplied, StatusInProgress, StatusApproved, StatusRejected, StatusPendingDocuments:
		return true
	}
	return false
}

// TrackedApplication is a scheme the citizen has applied to and follows up on.
type TrackedApplication struct {
	ID                string            `json:"id"`
	CitizenID         string            `json:"citizenId"`
	SchemeName        string            `json:"schemeName"`
	State             string            `json:"state"`
	ApplicationLink   string            `json:"applicationLink"`
	Status            ApplicationStatus `json:"status"`
	AppliedDate       time.Time         `json:"appliedDate"`
	LastUpdated       time.Time         `json:"lastUpdated"`
	ApplicationNumber string            `json:"applicationNumber,omitempty"`
	Notes             string            `json:"notes,omitempty"`
	Documents         []string          `json:"documents,omitempty"`
	NextSteps         string            `json:"nextSteps,omitempty"`
}

// ApplicationUpdate carries the mutable fields of a TrackedApplication.
// Nil fields are left unchanged.
type ApplicationUpdate struct {
	Status            *ApplicationStatus `json:"status,omitempty"`
	ApplicationNumber *string            `json:"applicationNumber,omitempty"`
	Notes             *string            `json:"notes,omitempty"`
	Documents         []string           `json:"documents,omitempty"`
	NextSteps         *string            `json:"nextSteps,omitempty"`
}
