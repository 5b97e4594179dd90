package catalog

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/lib/pq"

	"scheme-finder/internal/models"
)

// PostgresSource reads active schemes ordered by their position column.
type PostgresSource struct {
	db    *sql.DB
	table string
}

func NewPostgresSource(db *sql.DB, table string) *PostgresSource {
	return &PostgresSource{db: db, table: pq.QuoteIdentifier(table)}
}

func (p *PostgresSource) Name() string { return "postgres" }

func (p *PostgresSource) Load(ctx context.Context) ([]models.Scheme, error) {
	rows, err := p.db.QueryContext(ctx, `
		SELECT id, name, description, benefits, min_age, max_age,
		       gender_eligibility, min_education, area, state, target_groups,
		       department, application_link
		FROM `+p.table+`
		WHERE active
		ORDER BY position, id`)
	if err != nil {
		return nil, fmt.Errorf("query schemes: %w", err)
	}
	defer rows.Close()

	var out []models.Scheme
	for rows.Next() {
		var s models.Scheme
		if err := rows.Scan(
			&s.ID, &s.Name, &s.Description, &s.Benefits, &s.MinAge, &s.MaxAge,
			&s.GenderEligibility, &s.MinEducation, &s.Area, &s.State, pq.Array(&s.TargetGroups),
			&s.Department, &s.ApplicationLink,
		); err != nil {
			return nil, fmt.Errorf("scan scheme: %w", err)
		}
		out = append(out, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate schemes: %w", err)
	}
	return out, nil
}

// Save upserts schemes in one transaction, storing slice order as position.
// Rows whose id is not in schemes are marked inactive so Load stops
// returning them.
func (p *PostgresSource) Save(ctx context.Context, schemes []models.Scheme) error {
	if len(schemes) == 0 {
		return errors.New("refusing to save an empty catalog")
	}

	tx, err := p.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO `+p.table+` (id, name, description, benefits, min_age, max_age,
			gender_eligibility, min_education, area, state, target_groups,
			department, application_link, position, active)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, TRUE)
		ON CONFLICT (id) DO UPDATE SET
			name = EXCLUDED.name,
			description = EXCLUDED.description,
			benefits = EXCLUDED.benefits,
			min_age = EXCLUDED.min_age,
			max_age = EXCLUDED.max_age,
			gender_eligibility = EXCLUDED.gender_eligibility,
			min_education = EXCLUDED.min_education,
			area = EXCLUDED.area,
			state = EXCLUDED.state,
			target_groups = EXCLUDED.target_groups,
			department = EXCLUDED.department,
			application_link = EXCLUDED.application_link,
			position = EXCLUDED.position,
			active = TRUE`)
	if err != nil {
		return fmt.Errorf("prepare upsert: %w", err)
	}
	defer stmt.Close()

	ids := make([]string, len(schemes))
	for i, s := range schemes {
		ids[i] = s.ID
		if _, err := stmt.ExecContext(ctx,
			s.ID, s.Name, s.Description, s.Benefits, s.MinAge, s.MaxAge,
			string(s.GenderEligibility), string(s.MinEducation), string(s.Area), s.State,
			pq.Array(s.TargetGroups), s.Department, s.ApplicationLink, i,
		); err != nil {
			return fmt.Errorf("upsert scheme %s: %w", s.ID, err)
		}
	}

	if _, err := tx.ExecContext(ctx,
		`UPDATE `+p.table+` SET active = FALSE WHERE active AND NOT (id = ANY($1))`,
		pq.Array(ids),
	); err != nil {
		return fmt.Errorf("deactivate dropped schemes: %w", err)
	}

	return tx.Commit()
}
