package catalog

import (
	"context"

	"scheme-finder/internal/models"
)

// BuiltinSource serves the compiled-in catalog.
type BuiltinSource struct{}

func (BuiltinSource) Name() string { return "builtin" }

func (BuiltinSource) Load(context.Context) ([]models.Scheme, error) {
	return Default(), nil
}

// StaticSource serves a caller supplied list.
type StaticSource struct {
	Schemes []models.Scheme
}

func (StaticSource) Name() string { return "static" }

func (s StaticSource) Load(context.Context) ([]models.Scheme, error) {
	return clone(s.Schemes), nil
}
