// Package citizen loads stored citizen profiles.
package citizen

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"time"

	"github.com/lib/pq"
	"github.com/redis/go-redis/v9"

	apperrors "scheme-finder/internal/common/errors"
	"scheme-finder/internal/common/logger"
	"scheme-finder/internal/models"
)

const cacheKeyPrefix = "citizen:profile:"

// ProfileStore reads profiles from Postgres through a redis read-through
// cache. A nil redis client disables caching.
type ProfileStore struct {
	db     *sql.DB
	redis  *redis.Client
	ttl    time.Duration
	logger logger.Logger
}

func NewProfileStore(db *sql.DB, rdb *redis.Client, ttl time.Duration, log logger.Logger) *ProfileStore {
	return &ProfileStore{
		db:     db,
		redis:  rdb,
		ttl:    ttl,
		logger: log.WithFields(map[string]interface{}{"component": "citizen-profiles"}),
	}
}

func (s *ProfileStore) Get(ctx context.Context, citizenID string) (*models.UserProfile, error) {
	key := cacheKeyPrefix + citizenID
	if s.redis != nil {
		if val, err := s.redis.Get(ctx, key).Result(); err == nil {
			var profile models.UserProfile
			if err := json.Unmarshal([]byte(val), &profile); err == nil {
				return &profile, nil
			}
		} else if !errors.Is(err, redis.Nil) {
			s.logger.Warn("profile cache read failed", map[string]interface{}{"error": err.Error()})
		}
	}

	var (
		profile                 models.UserProfile
		gender, education, area string
	)
	err := s.db.QueryRowContext(ctx, `
		SELECT age, gender, education, area, state, categories
		FROM citizen_profiles WHERE id = $1`, citizenID).
		Scan(&profile.Age, &gender, &education, &area, &profile.State, pq.Array(&profile.Categories))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperrors.NewProfileNotFoundError(citizenID)
	}
	if err != nil {
		return nil, apperrors.NewQueryExecutionFailedError("get_citizen_profile", err)
	}
	profile.Gender = models.Gender(gender)
	profile.Education = models.Education(education)
	profile.Area = models.Area(area)

	if s.redis != nil {
		data, _ := json.Marshal(profile)
		if err := s.redis.Set(ctx, key, data, s.ttl).Err(); err != nil {
			s.logger.Warn("profile cache write failed", map[string]interface{}{"error": err.Error()})
		}
	}
	return &profile, nil
}

// Save upserts the profile and drops its cache entry.
func (s *ProfileStore) Save(ctx context.Context, citizenID string, p models.UserProfile) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO citizen_profiles (id, age, gender, education, area, state, categories, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, NOW())
		ON CONFLICT (id) DO UPDATE SET
			age = EXCLUDED.age, gender = EXCLUDED.gender, education = EXCLUDED.education,
			area = EXCLUDED.area, state = EXCLUDED.state, categories = EXCLUDED.categories,
			updated_at = NOW()`,
		citizenID, p.Age, string(p.Gender), string(p.Education), string(p.Area), p.State, pq.Array(p.Categories))
	if err != nil {
		return apperrors.NewDatabaseInsertFailedError("citizen_profiles", err)
	}

	if s.redis != nil {
		if err := s.redis.Del(ctx, cacheKeyPrefix+citizenID).Err(); err != nil {
			s.logger.Warn("profile cache invalidate failed", map[string]interface{}{"error": err.Error()})
		}
	}
	return nil
}
