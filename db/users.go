package db

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"geoanalyzer/internal/auth"
)

const findUserByUsernameSQL = `
    SELECT id, username, password_hash
    FROM users
    WHERE username = $1
`

// FindByUsername implements auth.UserRepository. A missing user is
// (nil, nil).
func (s *Store) FindByUsername(ctx context.Context, username string) (*auth.User, error) {
	row := s.pool.QueryRow(ctx, findUserByUsernameSQL, username)

	var u auth.User
	if err := row.Scan(&u.ID, &u.Username, &u.PasswordHash); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &u, nil
}

const findUserByIDSQL = `
    SELECT id, username, password_hash
    FROM users
    WHERE id = $1
`

// FindByID implements auth.UserRepository.
func (s *Store) FindByID(ctx context.Context, id string) (*auth.User, error) {
	row := s.pool.QueryRow(ctx, findUserByIDSQL, id)

	var u auth.User
	if err := row.Scan(&u.ID, &u.Username, &u.PasswordHash); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &u, nil
}

const upsertUserSQL = `
    INSERT INTO users (id, username, password_hash)
    VALUES ($1, $2, $3)
    ON CONFLICT (username) DO NOTHING
`

// SeedUser inserts an account if the username is not already taken.
func (s *Store) SeedUser(ctx context.Context, username, passwordHash string) error {
	_, err := s.pool.Exec(ctx, upsertUserSQL, uuid.NewString(), username, passwordHash)
	return err
}
