// MoView - Movie Review and Recommendation API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/moview

package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/tomtom215/moview/internal/models"
)

const userColumns = `id, username, email, password_hash, created_at`

// CreateUser inserts a user. An empty ID is replaced by a new UUID. Taken
// emails and usernames are reported as ErrEmailTaken and ErrUsernameTaken.
func (db *DB) CreateUser(ctx context.Context, user *models.User) (err error) {
	ctx, cancel := db.ensureContext(ctx)
	defer cancel()

	start := time.Now()
	defer func() { observe("insert", "users", start, err) }()

	if user.ID == "" {
		user.ID = uuid.New().String()
	}
	if user.CreatedAt.IsZero() {
		user.CreatedAt = time.Now().UTC()
	}

	tx, err := db.conn.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	var emailTaken, usernameTaken bool
	err = tx.QueryRowContext(ctx,
		`SELECT
			COALESCE(bool_or(email = ?), false),
			COALESCE(bool_or(username = ?), false)
		FROM users WHERE email = ? OR username = ?`,
		user.Email, user.Username, user.Email, user.Username,
	).Scan(&emailTaken, &usernameTaken)
	if err != nil {
		return fmt.Errorf("failed to check existing users: %w", err)
	}
	switch {
	case emailTaken:
		return ErrEmailTaken
	case usernameTaken:
		return ErrUsernameTaken
	}

	_, err = tx.ExecContext(ctx,
		`INSERT INTO users (`+userColumns+`) VALUES (?, ?, ?, ?, ?)`,
		user.ID, user.Username, user.Email, user.PasswordHash, user.CreatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return ErrEmailTaken
		}
		return fmt.Errorf("failed to insert user: %w", err)
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit user: %w", err)
	}
	return nil
}

// GetUserByID returns the user or ErrNotFound.
func (db *DB) GetUserByID(ctx context.Context, id string) (*models.User, error) {
	return db.getUser(ctx, `SELECT `+userColumns+` FROM users WHERE id = ?`, id)
}

// GetUserByEmail returns the user or ErrNotFound.
func (db *DB) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	return db.getUser(ctx, `SELECT `+userColumns+` FROM users WHERE email = ?`, email)
}

func (db *DB) getUser(ctx context.Context, query string, arg any) (u *models.User, err error) {
	ctx, cancel := db.ensureContext(ctx)
	defer cancel()

	start := time.Now()
	defer func() {
		if errors.Is(err, ErrNotFound) {
			observe("select", "users", start, nil)
			return
		}
		observe("select", "users", start, err)
	}()

	var user models.User
	err = db.conn.QueryRowContext(ctx, query, arg).Scan(
		&user.ID, &user.Username, &user.Email, &user.PasswordHash, &user.CreatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query user: %w", err)
	}
	return &user, nil
}

// UserExists reports whether a user with id exists.
func (db *DB) UserExists(ctx context.Context, id string) (bool, error) {
	ctx, cancel := db.ensureContext(ctx)
	defer cancel()

	start := time.Now()
	var n int
	err := db.conn.QueryRowContext(ctx, `SELECT COUNT(*) FROM users WHERE id = ?`, id).Scan(&n)
	observe("select", "users", start, err)
	if err != nil {
		return false, fmt.Errorf("failed to check user: %w", err)
	}
	return n > 0, nil
}
