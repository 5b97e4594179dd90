// Package tracker persists the schemes a citizen has applied to and the
// progress of each application.
package tracker

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"

	apperrors "scheme-finder/internal/common/errors"
	"scheme-finder/internal/common/logger"
	"scheme-finder/internal/models"
)

const selectColumns = `id, citizen_id, scheme_name, state, application_link, status,
	applied_date, last_updated, application_number, notes, documents, next_steps`

type Repository struct {
	db     *sql.DB
	logger logger.Logger
	now    func() time.Time
	newID  func() string
}

func NewRepository(db *sql.DB, log logger.Logger) *Repository {
	return &Repository{
		db:     db,
		logger: log.WithFields(map[string]interface{}{"component": "tracker"}),
		now:    func() time.Time { return time.Now().UTC() },
		newID:  func() string { return uuid.New().String() },
	}
}

// Add starts tracking scheme for citizenID with status applied. A scheme the
// citizen already tracks under the same name is returned unchanged with
// created false.
func (r *Repository) Add(ctx context.Context, citizenID string, scheme models.SchemeRecommendation) (*models.TrackedApplication, bool, error) {
	name := strings.TrimSpace(scheme.SchemeName)
	if existing, err := r.findByName(ctx, citizenID, name); err != nil {
		return nil, false, err
	} else if existing != nil {
		return existing, false, nil
	}

	now := r.now()
	app := &models.TrackedApplication{
		ID:              r.newID(),
		CitizenID:       citizenID,
		SchemeName:      name,
		State:           scheme.State,
		ApplicationLink: scheme.ApplicationLink,
		Status:          models.StatusApplied,
		AppliedDate:     now,
		LastUpdated:     now,
		Documents:       []string{},
	}

	res, err := r.db.ExecContext(ctx,
		`INSERT INTO tracked_applications
			(id, citizen_id, scheme_name, state, application_link, status,
			 applied_date, last_updated, application_number, notes, documents, next_steps)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, '', '', $9, '')
		 ON CONFLICT (citizen_id, scheme_name) DO NOTHING`,
		app.ID, app.CitizenID, app.SchemeName, app.State, app.ApplicationLink, string(app.Status),
		app.AppliedDate, app.LastUpdated, pq.Array(app.Documents),
	)
	if err != nil {
		return nil, false, apperrors.NewDatabaseInsertFailedError("tracked_applications", err)
	}

	if n, err := res.RowsAffected(); err == nil && n == 0 {
		// lost a race with a concurrent add
		existing, err := r.findByName(ctx, citizenID, name)
		if err != nil {
			return nil, false, err
		}
		if existing != nil {
			return existing, false, nil
		}
		return nil, false, apperrors.NewDuplicateApplicationError(name)
	}

	r.logger.Info("Application tracked", map[string]interface{}{
		"citizenId":  citizenID,
		"schemeName": name,
		"id":         app.ID,
	})
	return app, true, nil
}

// Update merges upd into the application and bumps LastUpdated.
func (r *Repository) Update(ctx context.Context, citizenID, id string, upd models.ApplicationUpdate) (*models.TrackedApplication, error) {
	if upd.Status != nil && !upd.Status.Valid() {
		return nil, apperrors.NewInvalidStatusError(string(*upd.Status))
	}

	app, err := r.Get(ctx, citizenID, id)
	if err != nil {
		return nil, err
	}
	Merge(app, upd, r.now())

	res, err := r.db.ExecContext(ctx,
		`UPDATE tracked_applications
		    SET status = $1, application_number = $2, notes = $3, documents = $4,
		        next_steps = $5, last_updated = $6
		  WHERE id = $7 AND citizen_id = $8`,
		string(app.Status), app.ApplicationNumber, app.Notes, pq.Array(app.Documents),
		app.NextSteps, app.LastUpdated, id, citizenID,
	)
	if err != nil {
		return nil, apperrors.NewQueryExecutionFailedError("update_application", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return nil, apperrors.NewApplicationNotFoundError(id)
	}
	return app, nil
}

// Merge applies the non-nil fields of upd to app.
func Merge(app *models.TrackedApplication, upd models.ApplicationUpdate, now time.Time) {
	if upd.Status != nil {
		app.Status = *upd.Status
	}
	if upd.ApplicationNumber != nil {
		app.ApplicationNumber = *upd.ApplicationNumber
	}
	if upd.Notes != nil {
		app.Notes = *upd.Notes
	}
	if upd.Documents != nil {
		app.Documents = append([]string(nil), upd.Documents...)
	}
	if upd.NextSteps != nil {
		app.NextSteps = *upd.NextSteps
	}
	app.LastUpdated = now
}

func (r *Repository) Remove(ctx context.Context, citizenID, id string) error {
	res, err := r.db.ExecContext(ctx,
		`DELETE FROM tracked_applications WHERE id = $1 AND citizen_id = $2`, id, citizenID)
	if err != nil {
		return apperrors.NewQueryExecutionFailedError("delete_application", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return apperrors.NewQueryExecutionFailedError("delete_application", err)
	}
	if n == 0 {
		return apperrors.NewApplicationNotFoundError(id)
	}
	r.logger.Info("Application removed", map[string]interface{}{"citizenId": citizenID, "id": id})
	return nil
}

func (r *Repository) Get(ctx context.Context, citizenID, id string) (*models.TrackedApplication, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+selectColumns+` FROM tracked_applications WHERE id = $1 AND citizen_id = $2`, id, citizenID)
	app, err := scanApplication(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperrors.NewApplicationNotFoundError(id)
	}
	if err != nil {
		return nil, apperrors.NewQueryExecutionFailedError("get_application", err)
	}
	return app, nil
}

// List returns the citizen's applications in the order they were added.
func (r *Repository) List(ctx context.Context, citizenID string) ([]models.TrackedApplication, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+selectColumns+` FROM tracked_applications WHERE citizen_id = $1 ORDER BY applied_date, id`, citizenID)
	if err != nil {
		return nil, apperrors.NewQueryExecutionFailedError("list_applications", err)
	}
	defer rows.Close()

	apps := make([]models.TrackedApplication, 0)
	for rows.Next() {
		app, err := scanApplication(rows)
		if err != nil {
			return nil, apperrors.NewQueryExecutionFailedError("list_applications", err)
		}
		apps = append(apps, *app)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewQueryExecutionFailedError("list_applications", err)
	}
	return apps, nil
}

func (r *Repository) IsTracked(ctx context.Context, citizenID, schemeName string) (bool, error) {
	app, err := r.findByName(ctx, citizenID, strings.TrimSpace(schemeName))
	if err != nil {
		return false, err
	}
	return app != nil, nil
}

func (r *Repository) findByName(ctx context.Context, citizenID, schemeName string) (*models.TrackedApplication, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+selectColumns+` FROM tracked_applications WHERE citizen_id = $1 AND scheme_name = $2`, citizenID, schemeName)
	app, err := scanApplication(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, apperrors.NewQueryExecutionFailedError("find_application", err)
	}
	return app, nil
}

type scanner interface {
	Scan(dest ...interface{}) error
}

func scanApplication(s scanner) (*models.TrackedApplication, error) {
	var (
		app    models.TrackedApplication
		status string
	)
	err := s.Scan(
		&app.ID, &app.CitizenID, &app.SchemeName, &app.State, &app.ApplicationLink, &status,
		&app.AppliedDate, &app.LastUpdated, &app.ApplicationNumber, &app.Notes,
		pq.Array(&app.Documents), &app.NextSteps,
	)
	if err != nil {
		return nil, fmt.Errorf("scan application: %w", err)
	}
	app.Status = models.ApplicationStatus(status)
	return &app, nil
}
