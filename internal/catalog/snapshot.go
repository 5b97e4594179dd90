package catalog

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"time"

	"scheme-finder/internal/models"
)

// Snapshot is an immutable view of the catalog. Readers hold on to the
// snapshot they started with; reloads publish a new one.
type Snapshot struct {
	Version  string
	Source   string
	LoadedAt time.Time

	schemes []models.Scheme
	byID    map[string]int
}

// NewSnapshot copies schemes so later changes to the input do not leak in.
func NewSnapshot(source string, schemes []models.Scheme) *Snapshot {
	owned := clone(schemes)
	byID := make(map[string]int, len(owned))
	for i, s := range owned {
		byID[s.ID] = i
	}
	return &Snapshot{
		Version:  fingerprint(owned),
		Source:   source,
		LoadedAt: time.Now().UTC(),
		schemes:  owned,
		byID:     byID,
	}
}

// Schemes returns the catalog in source order. Callers must not modify it.
func (s *Snapshot) Schemes() []models.Scheme {
	if s == nil {
		return nil
	}
	return s.schemes
}

func (s *Snapshot) Len() int {
	if s == nil {
		return 0
	}
	return len(s.schemes)
}

// Lookup finds a scheme by id.
func (s *Snapshot) Lookup(id string) (models.Scheme, bool) {
	if s == nil {
		return models.Scheme{}, false
	}
	i, ok := s.byID[id]
	if !ok {
		return models.Scheme{}, false
	}
	return s.schemes[i], true
}

func fingerprint(schemes []models.Scheme) string {
	data, err := json.Marshal(schemes)
	if err != nil {
		return ""
	}
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:8])
}

func clone(schemes []models.Scheme) []models.Scheme {
	out := make([]models.Scheme, len(schemes))
	for i, s := range schemes {
		s.TargetGroups = append([]string(nil), s.TargetGroups...)
		out[i] = s
	}
	return out
}
