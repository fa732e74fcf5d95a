// MoView - Movie Review and Recommendation API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/moview

package database

import (
	"context"
	"errors"
	"fmt"

	"github.com/tomtom215/moview/internal/logging"
	"github.com/tomtom215/moview/internal/models"
)

// Demo account identity.
const (
	DemoUsername = "demo_user"
	DemoEmail    = "demo@moview.com"
)

// SeedDemoUser creates the demo account with the given password hash unless
// it already exists. It reports whether a row was written.
func (db *DB) SeedDemoUser(ctx context.Context, passwordHash string) (bool, error) {
	if _, err := db.GetUserByID(ctx, models.DemoUserID); err == nil {
		return false, nil
	} else if !errors.Is(err, ErrNotFound) {
		return false, err
	}

	err := db.CreateUser(ctx, &models.User{
		ID:           models.DemoUserID,
		Username:     DemoUsername,
		Email:        DemoEmail,
		PasswordHash: passwordHash,
	})
	switch {
	case errors.Is(err, ErrEmailTaken), errors.Is(err, ErrUsernameTaken):
		return false, fmt.Errorf("demo account identity is held by another user: %w", err)
	case err != nil:
		return false, err
	}

	logging.Info().Str("user_id", models.DemoUserID).Msg("Seeded demo user")
	return true, nil
}
