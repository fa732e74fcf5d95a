// MoView - Movie Review and Recommendation API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/moview

package auth

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/goccy/go-json"

	"github.com/tomtom215/moview/internal/database"
	"github.com/tomtom215/moview/internal/logging"
	"github.com/tomtom215/moview/internal/models"
)

type contextKey string

const (
	// ClaimsContextKey holds the validated *Claims.
	ClaimsContextKey contextKey = "claims"
	// UserContextKey holds the *models.User the token resolved to.
	UserContextKey contextKey = "user"
)

// CredentialsMessage is the detail returned for every token failure.
const CredentialsMessage = "Could not validate credentials"

// UserLookup resolves a token subject to a stored user.
type UserLookup interface {
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
}

// Middleware authenticates bearer tokens against the user store
type Middleware struct {
	jwtManager *JWTManager
	users      UserLookup
}

// NewMiddleware creates a new authentication middleware
func NewMiddleware(jwtManager *JWTManager, users UserLookup) *Middleware {
	return &Middleware{jwtManager: jwtManager, users: users}
}

// Authenticate rejects requests without a valid bearer token for an existing
// user. The claims and user are stored in the request context.
func (m *Middleware) Authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token, problem := extractBearerToken(r.Header.Get("Authorization"))
		if problem != "" {
			writeUnauthorized(w, problem)
			return
		}

		claims, err := m.jwtManager.ValidateToken(token)
		if err != nil {
			logging.Ctx(r.Context()).Debug().Err(err).Msg("Token validation failed")
			writeUnauthorized(w, CredentialsMessage)
			return
		}

		user, err := m.users.GetUserByEmail(r.Context(), claims.Email())
		if err != nil {
			if !errors.Is(err, database.ErrNotFound) {
				logging.Ctx(r.Context()).Error().Err(err).Msg("Failed to load token user")
				writeJSONError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to load user")
				return
			}
			writeUnauthorized(w, CredentialsMessage)
			return
		}

		ctx := context.WithValue(r.Context(), ClaimsContextKey, claims)
		ctx = context.WithValue(ctx, UserContextKey, user)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// UserFromContext returns the authenticated user, if any.
func UserFromContext(ctx context.Context) (*models.User, bool) {
	user, ok := ctx.Value(UserContextKey).(*models.User)
	return user, ok && user != nil
}

// ClaimsFromContext returns the validated token claims, if any.
func ClaimsFromContext(ctx context.Context) (*Claims, bool) {
	claims, ok := ctx.Value(ClaimsContextKey).(*Claims)
	return claims, ok && claims != nil
}

// extractBearerToken parses an "Authorization: Bearer <token>" header and
// returns the token, or a client-facing problem description.
// The scheme is matched case-insensitively.
func extractBearerToken(authHeader string) (token, problem string) {
	if authHeader == "" {
		return "", "Not authenticated"
	}

	scheme, token, ok := strings.Cut(authHeader, " ")
	token = strings.TrimSpace(token)
	if !ok || !strings.EqualFold(scheme, "Bearer") || token == "" {
		return "", "Invalid authorization header"
	}
	return token, ""
}

func writeUnauthorized(w http.ResponseWriter, message string) {
	w.Header().Set("WWW-Authenticate", "Bearer")
	writeJSONError(w, http.StatusUnauthorized, "UNAUTHORIZED", message)
}

// writeJSONError writes the standard error envelope without depending on the
// api package.
func writeJSONError(w http.ResponseWriter, status int, code, message string) {
	data, err := json.Marshal(&models.APIResponse{
		Status:   "error",
		Metadata: models.Metadata{Timestamp: time.Now()},
		Error:    &models.APIError{Code: code, Message: message},
	})
	if err != nil {
		http.Error(w, message, status)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if _, err := w.Write(data); err != nil {
		logging.Error().Err(err).Msg("Failed to write auth error response")
	}
}
