// MoView - Movie Review and Recommendation API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/moview

package api

import (
	"context"
	"net/http"
	"time"
)

// Version is reported by the root and health endpoints.
const Version = "1.0.0"

// healthPingTimeout bounds the database ping in Health.
const healthPingTimeout = 2 * time.Second

// HealthStatus is the payload of GET /api/v1/health.
type HealthStatus struct {
	Status            string  `json:"status"`
	Version           string  `json:"version"`
	DatabaseConnected bool    `json:"database_connected"`
	CatalogConfigured bool    `json:"catalog_configured"`
	CatalogCircuit    string  `json:"catalog_circuit,omitempty"`
	SentimentMode     string  `json:"sentiment_mode"`
	Uptime            float64 `json:"uptime_seconds"`
}

// Root answers GET / with a welcome message.
func (h *Handler) Root(w http.ResponseWriter, _ *http.Request) {
	respondSuccess(w, http.StatusOK, map[string]string{
		"message": "Welcome to MoView API",
		"version": Version,
	}, time.Time{})
}

// Health handles health check requests
//
// @Summary Get service health
// @Description Reports database connectivity and catalog circuit state. Returns 503 when the database is unreachable.
// @Tags Core
// @Produce json
// @Success 200 {object} models.APIResponse{data=HealthStatus}
// @Failure 503 {object} models.APIResponse{data=HealthStatus}
// @Router /health [get]
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), healthPingTimeout)
	defer cancel()

	dbConnected := h.store != nil && h.store.Ping(ctx) == nil

	health := HealthStatus{
		Status:            "healthy",
		Version:           Version,
		DatabaseConnected: dbConnected,
		SentimentMode:     "heuristic",
		Uptime:            time.Since(h.startTime).Seconds(),
	}
	if h.catalog != nil {
		health.CatalogConfigured = h.catalog.Configured()
		health.CatalogCircuit = h.catalog.BreakerState()
	}
	if h.sentiment != nil && h.sentiment.Generative() {
		health.SentimentMode = "generative"
	}

	status := http.StatusOK
	if !dbConnected {
		health.Status = "unhealthy"
		status = http.StatusServiceUnavailable
	}

	respondSuccess(w, status, health, time.Time{})
}

// HealthLive handles liveness probe requests. It never touches dependencies.
func (h *Handler) HealthLive(w http.ResponseWriter, _ *http.Request) {
	respondSuccess(w, http.StatusOK, map[string]interface{}{
		"alive":  true,
		"uptime": time.Since(h.startTime).Seconds(),
	}, time.Time{})
}
