package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"unitly-be/internal/entities"
)

// UserRepository defines the interface for user database operations
type UserRepository interface {
	Create(ctx context.Context, email, passwordHash string, name *string) (*entities.Account, error)
	FindByEmail(ctx context.Context, email string) (*entities.Account, error)
	FindByID(ctx context.Context, id string) (*entities.Account, error)
}

type userRepository struct {
	db *sql.DB
}

// NewUserRepository creates a new user repository
func NewUserRepository(db *sql.DB) UserRepository {
	return &userRepository{db: db}
}

const userColumns = `id, email, password_hash, name, created_at, updated_at`

// Create inserts a new user; a duplicate email yields ErrConflict
func (r *userRepository) Create(ctx context.Context, email, passwordHash string, name *string) (*entities.Account, error) {
	query := `
		INSERT INTO users (email, password_hash, name)
		VALUES ($1, $2, $3)
		RETURNING ` + userColumns

	account, err := scanAccount(r.db.QueryRowContext(ctx, query, email, passwordHash, name))
	if isUniqueViolation(err) {
		return nil, ErrConflict
	}
	if err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}
	return account, nil
}

func (r *userRepository) FindByEmail(ctx context.Context, email string) (*entities.Account, error) {
	return r.findOne(ctx, `SELECT `+userColumns+` FROM users WHERE email = $1`, email)
}

// FindByID finds a user by ID (UUID)
func (r *userRepository) FindByID(ctx context.Context, id string) (*entities.Account, error) {
	return r.findOne(ctx, `SELECT `+userColumns+` FROM users WHERE id = $1`, id)
}

func (r *userRepository) findOne(ctx context.Context, query string, arg string) (*entities.Account, error) {
	account, err := scanAccount(r.db.QueryRowContext(ctx, query, arg))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find user: %w", err)
	}
	return account, nil
}

func scanAccount(row *sql.Row) (*entities.Account, error) {
	var a entities.Account
	var name sql.NullString
	if err := row.Scan(&a.ID, &a.Email, &a.PasswordHash, &name, &a.CreatedAt, &a.UpdatedAt); err != nil {
		return nil, err
	}
	if name.Valid {
		a.Name = &name.String
	}
	return &a, nil
}
