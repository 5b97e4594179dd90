// pkg/registry/registry.go
package registry

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"scheme-finder/internal/models"
)

// LoadRegistry reads and validates a scheme registry file.
func LoadRegistry(path string) (*SchemeRegistry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return Parse(data)
}

// Parse validates data and decodes it.
func Parse(data []byte) (*SchemeRegistry, error) {
	if err := Validate(data); err != nil {
		return nil, err
	}

	var reg SchemeRegistry
	if err := json.Unmarshal(data, &reg); err != nil {
		return nil, fmt.Errorf("decode registry: %w", err)
	}
	if err := checkSchemes(reg.Schemes); err != nil {
		return nil, err
	}
	return &reg, nil
}

// New wraps schemes in a registry stamped with the current time.
func New(version string, schemes []models.Scheme) *SchemeRegistry {
	return &SchemeRegistry{
		Version:     version,
		LastUpdated: time.Now().UTC().Format(time.RFC3339),
		Schemes:     schemes,
	}
}

// SaveRegistry writes reg as indented JSON.
func SaveRegistry(path string, reg *SchemeRegistry) error {
	data, err := json.MarshalIndent(reg, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, append(data, '\n'), 0o644)
}
