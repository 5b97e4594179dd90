package catalog

import (
	"context"
	"time"
)

// Refresh reloads store every interval until ctx is done. Failed reloads
// are logged and the previous snapshot keeps serving.
func (s *Store) Refresh(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		return
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if _, err := s.Reload(ctx); err != nil {
				s.logger.Warn("catalog refresh failed, keeping previous snapshot", map[string]interface{}{
					"error":   err.Error(),
					"version": s.Current().versionOrEmpty(),
				})
			}
		}
	}
}

func (s *Snapshot) versionOrEmpty() string {
	if s == nil {
		return ""
	}
	return s.Version
}
