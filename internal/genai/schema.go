// MoView - Movie Review and Recommendation API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/moview

package genai

import (
	"strings"

	"github.com/invopop/jsonschema"
)

// SchemaFor reflects a strict JSON schema (no additional properties, no
// $ref indirection) from the Go type T.
func SchemaFor[T any]() any {
	reflector := jsonschema.Reflector{
		AllowAdditionalProperties: false,
		DoNotReference:            true,
	}
	var v T
	return reflector.Reflect(v)
}

// StripCodeFences removes a surrounding Markdown code fence, with or without
// a language tag, and trims whitespace. Text without fences is only trimmed.
func StripCodeFences(text string) string {
	s := strings.TrimSpace(text)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```")
	// Drop the info string (for example "json") up to the first newline.
	if nl := strings.IndexByte(s, '\n'); nl >= 0 {
		if info := strings.TrimSpace(s[:nl]); !strings.ContainsAny(info, "[{") {
			s = s[nl+1:]
		}
	} else {
		s = strings.TrimPrefix(s, "json")
	}
	s = strings.TrimSpace(s)
	s = strings.TrimSuffix(s, "```")
	return strings.TrimSpace(s)
}
