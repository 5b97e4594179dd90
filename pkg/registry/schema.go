// pkg/registry/schema.go
package registry

import (
	"fmt"
	"strings"
	"sync"

	"github.com/xeipuuv/gojsonschema"

	"scheme-finder/internal/models"
)

// SchemeRegistry is the on-disk catalog file format.
type SchemeRegistry struct {
	Version     string          `json:"version"`
	LastUpdated string          `json:"lastUpdated"`
	Schemes     []models.Scheme `json:"schemes"`
}

// registrySchema constrains the enum fields to the values the matcher
// understands, except minEducation which the matcher treats permissively.
const registrySchema = `{
  "$schema": "http://json-schema.org/draft-07/schema#",
  "type": "object",
  "required": ["version", "schemes"],
  "properties": {
    "version": {"type": "string", "minLength": 1},
    "lastUpdated": {"type": "string"},
    "schemes": {
      "type": "array",
      "items": {
        "type": "object",
        "required": ["id", "name", "minAge", "maxAge", "genderEligibility", "minEducation", "area", "state", "targetGroups"],
        "properties": {
          "id": {"type": "string", "pattern": "^[a-z0-9][a-z0-9-]*$"},
          "name": {"type": "string", "minLength": 1},
          "minAge": {"type": "integer", "minimum": 0},
          "maxAge": {"type": "integer", "minimum": 0},
          "genderEligibility": {"enum": ["Male", "Female", "Any"]},
          "minEducation": {"type": "string", "minLength": 1},
          "area": {"enum": ["Rural", "Urban", "Any"]},
          "state": {"type": "string", "minLength": 1},
          "targetGroups": {"type": "array", "items": {"type": "string"}},
          "applicationLink": {"type": "string"}
        }
      }
    }
  }
}`

var (
	compileOnce    sync.Once
	compiledSchema *gojsonschema.Schema
	compileErr     error
)

func schema() (*gojsonschema.Schema, error) {
	compileOnce.Do(func() {
		compiledSchema, compileErr = gojsonschema.NewSchema(gojsonschema.NewStringLoader(registrySchema))
	})
	return compiledSchema, compileErr
}

// ValidationError lists every schema violation found in a registry file.
type ValidationError struct {
	Problems []string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("registry validation failed: %s", strings.Join(e.Problems, "; "))
}

// Validate checks raw registry JSON against the file schema and the
// cross-field rules the schema cannot express.
func Validate(data []byte) error {
	s, err := schema()
	if err != nil {
		return fmt.Errorf("compile registry schema: %w", err)
	}

	result, err := s.Validate(gojsonschema.NewBytesLoader(data))
	if err != nil {
		return fmt.Errorf("parse registry: %w", err)
	}

	var problems []string
	for _, e := range result.Errors() {
		problems = append(problems, fmt.Sprintf("%s: %s", e.Field(), e.Description()))
	}
	if len(problems) > 0 {
		return &ValidationError{Problems: problems}
	}
	return nil
}

// checkSchemes applies rules across records: unique ids and ordered age bounds.
func checkSchemes(schemes []models.Scheme) error {
	var problems []string
	seen := make(map[string]bool, len(schemes))
	for i, s := range schemes {
		if seen[s.ID] {
			problems = append(problems, fmt.Sprintf("schemes.%d.id: duplicate id %q", i, s.ID))
		}
		seen[s.ID] = true
		if s.MinAge > s.MaxAge {
			problems = append(problems, fmt.Sprintf("schemes.%d: minAge %d exceeds maxAge %d", i, s.MinAge, s.MaxAge))
		}
	}
	if len(problems) > 0 {
		return &ValidationError{Problems: problems}
	}
	return nil
}
