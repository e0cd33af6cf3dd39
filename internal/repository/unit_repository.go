package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"unitly-be/internal/entities"
)

// UnitRepository defines the interface for unit-of-measure storage
type UnitRepository interface {
	Create(ctx context.Context, code, title string) (*entities.Unit, error)
	FindByCode(ctx context.Context, code string) (*entities.Unit, error)
	List(ctx context.Context, approvedOnly bool) ([]*entities.Unit, error)
	SetApproved(ctx context.Context, code string, approved bool) (*entities.Unit, error)
	Upsert(ctx context.Context, units []*entities.Unit) error
}

type unitRepository struct {
	db *sql.DB
}

// NewUnitRepository creates a new unit repository
func NewUnitRepository(db *sql.DB) UnitRepository {
	return &unitRepository{db: db}
}

const unitColumns = `ucum_code, title, approved, created_at, updated_at`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanUnit(row rowScanner) (*entities.Unit, error) {
	var u entities.Unit
	if err := row.Scan(&u.UCUMCode, &u.Title, &u.Approved, &u.CreatedAt, &u.UpdatedAt); err != nil {
		return nil, err
	}
	return &u, nil
}

// Create inserts an unapproved unit
func (r *unitRepository) Create(ctx context.Context, code, title string) (*entities.Unit, error) {
	query := `
		INSERT INTO units (ucum_code, title)
		VALUES ($1, $2)
		RETURNING ` + unitColumns

	unit, err := scanUnit(r.db.QueryRowContext(ctx, query, code, title))
	if isUniqueViolation(err) {
		return nil, ErrConflict
	}
	if err != nil {
		return nil, fmt.Errorf("failed to create unit: %w", err)
	}
	return unit, nil
}

func (r *unitRepository) FindByCode(ctx context.Context, code string) (*entities.Unit, error) {
	query := `SELECT ` + unitColumns + ` FROM units WHERE ucum_code = $1`

	unit, err := scanUnit(r.db.QueryRowContext(ctx, query, code))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find unit: %w", err)
	}
	return unit, nil
}

// List returns units ordered by code, optionally only approved ones
func (r *unitRepository) List(ctx context.Context, approvedOnly bool) ([]*entities.Unit, error) {
	query := `SELECT ` + unitColumns + ` FROM units`
	if approvedOnly {
		query += ` WHERE approved = TRUE`
	}
	query += ` ORDER BY ucum_code ASC`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list units: %w", err)
	}
	defer rows.Close()

	units := []*entities.Unit{}
	for rows.Next() {
		unit, err := scanUnit(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan unit: %w", err)
		}
		units = append(units, unit)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating units: %w", err)
	}
	return units, nil
}

func (r *unitRepository) SetApproved(ctx context.Context, code string, approved bool) (*entities.Unit, error) {
	query := `
		UPDATE units
		SET approved = $1, updated_at = NOW()
		WHERE ucum_code = $2
		RETURNING ` + unitColumns

	unit, err := scanUnit(r.db.QueryRowContext(ctx, query, approved, code))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to update unit: %w", err)
	}
	return unit, nil
}

// Upsert writes all units in one transaction, keeping the supplied timestamps
func (r *unitRepository) Upsert(ctx context.Context, units []*entities.Unit) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO units (ucum_code, title, approved, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (ucum_code) DO UPDATE
		SET title = EXCLUDED.title,
			approved = EXCLUDED.approved,
			updated_at = EXCLUDED.updated_at
	`)
	if err != nil {
		return fmt.Errorf("failed to prepare upsert: %w", err)
	}
	defer stmt.Close()

	for _, u := range units {
		if _, err := stmt.ExecContext(ctx, u.UCUMCode, u.Title, u.Approved, u.CreatedAt, u.UpdatedAt); err != nil {
			return fmt.Errorf("failed to upsert unit %s: %w", u.UCUMCode, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit units: %w", err)
	}
	return nil
}
