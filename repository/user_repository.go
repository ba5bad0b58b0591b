package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"workoutLists/internal/auth"
	"workoutLists/models"
)

type UserRepository struct {
	db *sql.DB
}

func NewUserRepository(db *sql.DB) *UserRepository {
	return &UserRepository{db: db}
}

// Create hashes password and inserts a new user.
// Returns the created User with its generated ID.
func (r *UserRepository) Create(ctx context.Context, username, password string) (*models.User, error) {
	hash, err := auth.HashPassword(password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	res, err := r.db.ExecContext(ctx, `INSERT INTO users (username, password_hash) VALUES (?, ?)`, username, hash)
	if err != nil {
		return nil, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return nil, err
	}
	return &models.User{ID: id, Username: username, PasswordHash: hash}, nil
}

func (r *UserRepository) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	var u models.User
	err := r.db.QueryRowContext(ctx, `SELECT id, username, password_hash FROM users WHERE username = ?`, username).Scan(&u.ID, &u.Username, &u.PasswordHash)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &u, nil
}

// Authenticate reports whether password matches the stored hash for username.
// An unknown username and a wrong password both yield false with a nil error;
// the hash comparison only runs when a row is found.
func (r *UserRepository) Authenticate(ctx context.Context, username, password string) (bool, error) {
	u, err := r.GetByUsername(ctx, username)
	if err != nil {
		return false, err
	}
	if u == nil {
		return false, nil
	}
	return auth.CheckPassword(password, u.PasswordHash), nil
}
