// MoView - Movie Review and Recommendation API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/moview

package api

import (
	"errors"
	"math"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/tomtom215/moview/internal/auth"
	"github.com/tomtom215/moview/internal/database"
	"github.com/tomtom215/moview/internal/logging"
	"github.com/tomtom215/moview/internal/metrics"
	"github.com/tomtom215/moview/internal/models"
)

// Register creates an account.
//
// @Summary Register a user
// @Tags Auth
// @Accept json
// @Produce json
// @Param body body models.RegisterRequest true "username 3-50, email, password 6-100"
// @Success 201 {object} models.APIResponse{data=models.User}
// @Failure 400 {object} models.APIResponse "email or username taken"
// @Failure 422 {object} models.APIResponse "validation failed"
// @Router /auth/register [post]
func (h *Handler) Register(w http.ResponseWriter, r *http.Request) {
	var req models.RegisterRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	hash, err := auth.HashPassword(req.Password, h.bcryptCost())
	if err != nil {
		if errors.Is(err, auth.ErrPasswordTooLong) {
			respondError(w, http.StatusUnprocessableEntity, "VALIDATION_ERROR", "password must be at most 72 bytes", nil)
			return
		}
		respondError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to register user", err)
		return
	}

	user := &models.User{
		Username:     strings.TrimSpace(req.Username),
		Email:        normalizeEmail(req.Email),
		PasswordHash: hash,
	}
	err = h.store.CreateUser(r.Context(), user)
	metrics.RecordAuthAttempt("register", err == nil)
	switch {
	case errors.Is(err, database.ErrEmailTaken):
		respondError(w, http.StatusBadRequest, "EMAIL_TAKEN", "Email already registered", nil)
		return
	case errors.Is(err, database.ErrUsernameTaken):
		respondError(w, http.StatusBadRequest, "USERNAME_TAKEN", "Username already taken", nil)
		return
	case err != nil:
		respondError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to register user", err)
		return
	}

	logging.Ctx(r.Context()).Info().Str("user_id", user.ID).Msg("User registered")
	respondSuccess(w, http.StatusCreated, user, time.Time{})
}

// Login exchanges email and password for a bearer token.
//
// @Summary Log in
// @Tags Auth
// @Accept json
// @Produce json
// @Param body body models.LoginRequest true "credentials"
// @Success 200 {object} models.APIResponse{data=models.Token}
// @Failure 401 {object} models.APIResponse "Incorrect email or password"
// @Failure 429 {object} models.APIResponse "account temporarily locked"
// @Router /auth/login [post]
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req models.LoginRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}
	email := normalizeEmail(req.Email)

	if locked, remaining := h.lockout.CheckLocked(email); locked {
		metrics.RecordAuthAttempt("login", false)
		respondLocked(w, remaining)
		return
	}

	user, err := h.store.GetUserByEmail(r.Context(), email)
	if err != nil && !errors.Is(err, database.ErrNotFound) {
		respondError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to log in", err)
		return
	}

	if user == nil || !auth.CheckPassword(user.PasswordHash, req.Password) {
		metrics.RecordAuthAttempt("login", false)
		if locked, remaining := h.lockout.RecordFailedAttempt(email); locked {
			respondLocked(w, remaining)
			return
		}
		w.Header().Set("WWW-Authenticate", "Bearer")
		respondError(w, http.StatusUnauthorized, "INVALID_CREDENTIALS", "Incorrect email or password", nil)
		return
	}

	token, err := h.jwtManager.GenerateToken(user.Email)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to issue token", err)
		return
	}

	h.lockout.RecordSuccess(email)
	metrics.RecordAuthAttempt("login", true)
	respondSuccess(w, http.StatusOK, models.Token{AccessToken: token, TokenType: auth.TokenType}, time.Time{})
}

// Me returns the authenticated user.
func (h *Handler) Me(w http.ResponseWriter, r *http.Request) {
	user, ok := auth.UserFromContext(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "UNAUTHORIZED", auth.CredentialsMessage, nil)
		return
	}
	respondSuccess(w, http.StatusOK, user, time.Time{})
}

// VerifyToken confirms the bearer token is valid and returns its user.
func (h *Handler) VerifyToken(w http.ResponseWriter, r *http.Request) {
	user, ok := auth.UserFromContext(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "UNAUTHORIZED", auth.CredentialsMessage, nil)
		return
	}
	respondSuccess(w, http.StatusOK, models.TokenVerification{Valid: true, User: user}, time.Time{})
}

func respondLocked(w http.ResponseWriter, remaining time.Duration) {
	w.Header().Set("Retry-After", strconv.Itoa(int(math.Ceil(remaining.Seconds()))))
	respondError(w, http.StatusTooManyRequests, "ACCOUNT_LOCKED", "Too many failed login attempts, try again later", nil)
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
