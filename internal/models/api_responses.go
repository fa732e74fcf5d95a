// MoView - Movie Review and Recommendation API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/moview

package models

import (
	"time"
)

// APIResponse is the envelope every HTTP endpoint responds with.
//
// Status is "success" (see Data) or "error" (see Error):
//
//	{
//	  "status": "success",
//	  "data": {"user_id": "...", "recommendations": [...]},
//	  "metadata": {"timestamp": "2026-10-19T12:00:00Z", "query_time_ms": 812}
//	}
type APIResponse struct {
	Status   string      `json:"status"`
	Data     interface{} `json:"data"`
	Metadata Metadata    `json:"metadata"`
	Error    *APIError   `json:"error,omitempty"`
}

// Metadata carries response timing.
type Metadata struct {
	Timestamp   time.Time `json:"timestamp"`
	QueryTimeMS int64     `json:"query_time_ms,omitempty"`
}

// APIError is the machine readable error payload.
type APIError struct {
	Code    string                 `json:"code"`
	Message string                 `json:"message"`
	Details map[string]interface{} `json:"details,omitempty"`
}
