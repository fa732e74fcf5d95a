// MoView - Movie Review and Recommendation API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/moview

/*
Package auth provides local email/password authentication.

Key Components:

  - Password hashing: bcrypt with the configured cost
  - JWTManager: HS256 bearer tokens whose subject is the user's email
  - Middleware: resolves the bearer token to a stored user and places it in
    the request context
  - LockoutManager: temporary lockout after repeated failed logins

Authentication Modes (AUTH_MODE):

  - jwt (default): register, login and the token endpoints are served
  - none: the auth routes are not mounted; intended for local development only
    and rejected when ENVIRONMENT=production

Usage Example:

	jwtManager, err := auth.NewJWTManager(&cfg.Security)
	if err != nil {
	    return err
	}
	mw := auth.NewMiddleware(jwtManager, db)

	r.With(mw.Authenticate).Get("/api/v1/auth/me", handler.Me)

	user, ok := auth.UserFromContext(r.Context())

Tokens are stateless; they stay valid until they expire.
*/
package auth
