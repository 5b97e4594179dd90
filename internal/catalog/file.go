package catalog

import (
	"context"

	"scheme-finder/internal/models"
	"scheme-finder/pkg/registry"
)

// FileSource reads a registry JSON file on every load.
type FileSource struct {
	Path string
}

func (f FileSource) Name() string { return "file" }

func (f FileSource) Load(context.Context) ([]models.Scheme, error) {
	reg, err := registry.LoadRegistry(f.Path)
	if err != nil {
		return nil, err
	}
	return reg.Schemes, nil
}
