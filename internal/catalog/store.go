package catalog

import (
	"context"
	"sync/atomic"
	"time"

	apperrors "scheme-finder/internal/common/errors"
	"scheme-finder/internal/common/logger"
	"scheme-finder/internal/common/metrics"
	"scheme-finder/internal/models"
)

// Source loads the full list of scheme records from a backing store.
type Source interface {
	Name() string
	Load(ctx context.Context) ([]models.Scheme, error)
}

// Store publishes catalog snapshots. Current never blocks; Reload builds
// a complete snapshot before swapping it in.
type Store struct {
	source  Source
	logger  logger.Logger
	current atomic.Pointer[Snapshot]
}

// NewStore returns a store with no snapshot. Call Reload before serving,
// or use NewStaticStore.
func NewStore(source Source, log logger.Logger) *Store {
	return &Store{
		source: source,
		logger: log.WithFields(map[string]interface{}{"component": "catalog", "source": source.Name()}),
	}
}

// NewStaticStore serves a fixed list of schemes. Reload re-publishes it.
func NewStaticStore(schemes []models.Scheme, log logger.Logger) *Store {
	s := NewStore(StaticSource{Schemes: schemes}, log)
	s.Swap(NewSnapshot("static", schemes))
	return s
}

// Current returns the active snapshot, nil before the first load.
func (s *Store) Current() *Snapshot {
	return s.current.Load()
}

// Swap publishes snap and returns the snapshot it replaced.
func (s *Store) Swap(snap *Snapshot) *Snapshot {
	old := s.current.Swap(snap)
	metrics.CatalogSize.Set(float64(snap.Len()))
	return old
}

// Reload loads the source and swaps in the result. An empty result is
// rejected and the previous snapshot stays active.
func (s *Store) Reload(ctx context.Context) (*Snapshot, error) {
	start := time.Now()
	name := s.source.Name()

	schemes, err := s.source.Load(ctx)
	if err != nil {
		metrics.CatalogReloads.WithLabelValues(name, "error").Inc()
		return nil, apperrors.NewCatalogLoadFailedError(name, err)
	}
	if len(schemes) == 0 {
		metrics.CatalogReloads.WithLabelValues(name, "empty").Inc()
		return nil, apperrors.NewCatalogEmptyError(name)
	}

	snap := NewSnapshot(name, schemes)
	old := s.Swap(snap)
	metrics.CatalogReloads.WithLabelValues(name, "ok").Inc()

	fields := map[string]interface{}{
		"schemes":    snap.Len(),
		"version":    snap.Version,
		"durationMs": time.Since(start).Milliseconds(),
	}
	if old != nil {
		fields["previousVersion"] = old.Version
	}
	s.logger.Info("catalog loaded", fields)
	return snap, nil
}
