// MoView - Movie Review and Recommendation API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/moview

/*
Package models defines the data shared by MoView's store, services and HTTP layer.

  - User, RegisterRequest, LoginRequest, Token: accounts and authentication
  - Review, NewReview, MovieRatingStats: reviews and their aggregates
  - SentimentResult, SentimentRequest, SentimentResponse: sentiment labels
  - MovieMetadata, RecommendedMovie, RecommendationResponse: catalog data and recommendations
  - APIResponse, Metadata, APIError: the HTTP envelope

Request types carry go-playground/validator tags checked by internal/validation.
*/
package models
