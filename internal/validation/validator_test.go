// MoView - Movie Review and Recommendation API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/moview

package validation

import (
	"strings"
	"testing"
)

func TestGetValidator_Singleton(t *testing.T) {
	v1 := GetValidator()
	v2 := GetValidator()

	if v1 == nil {
		t.Fatal("GetValidator() returned nil")
	}
	if v1 != v2 {
		t.Error("GetValidator() should return the same singleton instance")
	}
}

type reviewInput struct {
	UserID  string  `json:"user_id" validate:"required,uuid"`
	MovieID int     `json:"movie_id" validate:"required,gt=0"`
	Content string  `json:"content" validate:"required,notblank,min=10,max=1000"`
	Rating  float64 `json:"rating" validate:"gte=1,lte=5"`
}

type analyzeInput struct {
	Text string `json:"text" validate:"required,notblank,min=1,max=1000"`
}

func validReview() reviewInput {
	return reviewInput{
		UserID:  "12345678-1234-5678-9012-123456789012",
		MovieID: 550,
		Content: "A film that rewards a second viewing.",
		Rating:  4.5,
	}
}

func TestValidateStruct_Review(t *testing.T) {
	tests := []struct {
		name      string
		mutate    func(r *reviewInput)
		wantField string
		wantTag   string
	}{
		{name: "valid", mutate: func(r *reviewInput) {}},
		{name: "rating lower bound", mutate: func(r *reviewInput) { r.Rating = 1.0 }},
		{name: "rating upper bound", mutate: func(r *reviewInput) { r.Rating = 5.0 }},
		{name: "rating too low", mutate: func(r *reviewInput) { r.Rating = 0.5 }, wantField: "rating", wantTag: "gte"},
		{name: "rating too high", mutate: func(r *reviewInput) { r.Rating = 5.5 }, wantField: "rating", wantTag: "lte"},
		{name: "content too short", mutate: func(r *reviewInput) { r.Content = "too short" }, wantField: "content", wantTag: "min"},
		{name: "content too long", mutate: func(r *reviewInput) { r.Content = strings.Repeat("x", 1001) }, wantField: "content", wantTag: "max"},
		{name: "content blank", mutate: func(r *reviewInput) { r.Content = strings.Repeat(" ", 12) }, wantField: "content", wantTag: "notblank"},
		{name: "bad user id", mutate: func(r *reviewInput) { r.UserID = "demo" }, wantField: "user_id", wantTag: "uuid"},
		{name: "missing movie", mutate: func(r *reviewInput) { r.MovieID = 0 }, wantField: "movie_id", wantTag: "required"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := validReview()
			tt.mutate(&in)
			verr := ValidateStruct(&in)
			if tt.wantField == "" {
				if verr != nil {
					t.Fatalf("ValidateStruct() = %v, want nil", verr)
				}
				return
			}
			if verr == nil {
				t.Fatal("ValidateStruct() = nil, want error")
			}
			errs := verr.Errors()
			if len(errs) != 1 {
				t.Fatalf("got %d errors, want 1: %v", len(errs), verr)
			}
			if errs[0].Field() != tt.wantField || errs[0].Tag() != tt.wantTag {
				t.Errorf("got %s/%s, want %s/%s", errs[0].Field(), errs[0].Tag(), tt.wantField, tt.wantTag)
			}
		})
	}
}

func TestValidateStruct_TextLengthInRunes(t *testing.T) {
	tests := []struct {
		name    string
		text    string
		valid   bool
		wantMsg string
	}{
		{name: "one char", text: "a", valid: true},
		{name: "limit in runes", text: strings.Repeat("é", 1000), valid: true},
		{name: "over limit in runes", text: strings.Repeat("é", 1001), wantMsg: "text must be at most 1000 characters"},
		{name: "over limit", text: strings.Repeat("a", 1001), wantMsg: "text must be at most 1000 characters"},
		{name: "whitespace only", text: "   ", wantMsg: "text must not be blank"},
		{name: "empty", text: "", wantMsg: "text is required"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			verr := ValidateStruct(&analyzeInput{Text: tt.text})
			if tt.valid {
				if verr != nil {
					t.Fatalf("ValidateStruct(%q) = %v, want nil", tt.name, verr)
				}
				return
			}
			if verr == nil {
				t.Fatalf("ValidateStruct(%q) = nil, want error", tt.name)
			}
			if got := verr.ToAPIError().Message; got != tt.wantMsg {
				t.Errorf("Message = %q, want %q", got, tt.wantMsg)
			}
		})
	}
}

func TestToAPIError_SingleError(t *testing.T) {
	in := validReview()
	in.Rating = 9
	apiErr := ValidateStruct(&in).ToAPIError()

	if apiErr.Code != "VALIDATION_ERROR" {
		t.Errorf("Code = %q, want VALIDATION_ERROR", apiErr.Code)
	}
	if apiErr.Message != "rating must be less than or equal to 5" {
		t.Errorf("Message = %q", apiErr.Message)
	}
	if apiErr.Details["field"] != "rating" {
		t.Errorf("Details[field] = %v, want rating", apiErr.Details["field"])
	}
}

func TestToAPIError_MultipleErrors(t *testing.T) {
	apiErr := ValidateStruct(&reviewInput{}).ToAPIError()

	fields, ok := apiErr.Details["fields"].([]map[string]interface{})
	if !ok {
		t.Fatalf("Details[fields] has type %T", apiErr.Details["fields"])
	}
	if len(fields) < 3 {
		t.Errorf("got %d field errors, want at least 3", len(fields))
	}
	if !strings.Contains(apiErr.Message, "user_id: user_id is required") {
		t.Errorf("Message = %q, want user_id entry", apiErr.Message)
	}
}

func TestErrorMessages(t *testing.T) {
	type registerInput struct {
		Username string `json:"username" validate:"min=3,max=50"`
		Email    string `json:"email" validate:"email"`
	}

	verr := ValidateStruct(&registerInput{Username: "ab", Email: "nope"})
	if verr == nil {
		t.Fatal("expected errors")
	}
	msg := verr.Error()
	for _, want := range []string{
		"username must be at least 3 characters",
		"email must be a valid email address",
	} {
		if !strings.Contains(msg, want) {
			t.Errorf("Error() = %q, missing %q", msg, want)
		}
	}
}

func TestToAPIError_RedactsPassword(t *testing.T) {
	type loginInput struct {
		Password string `json:"password" validate:"min=6"`
	}

	verr := ValidateStruct(&loginInput{Password: "abc"})
	if verr == nil {
		t.Fatal("expected an error")
	}
	apiErr := verr.ToAPIError()
	if got := apiErr.Details["value"]; got != redactedValue {
		t.Errorf("Details[value] = %v, want %q", got, redactedValue)
	}
}
