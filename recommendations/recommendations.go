// Package recommendations is the typed client for the recommendation
// routes. Generation itself runs on the backend; this client only
// requests and manages the results.
package recommendations

import (
	"strings"
	"time"
)

// FocusArea narrows what a generated recommendation should emphasize.
type FocusArea string

const (
	FocusPerformance FocusArea = "performance"
	FocusSafety      FocusArea = "safety"
	FocusNutrition   FocusArea = "nutrition"
	FocusRecovery    FocusArea = "recovery"
)

// Recommendation is a piece of training advice tied to an activity.
type Recommendation struct {
	ID             string     `json:"id"`
	UserID         string     `json:"userId"`
	ActivityID     string     `json:"activityId"`
	Type           string     `json:"type"`
	Recommendation string     `json:"recommendation"`
	Improvements   []string   `json:"improvements,omitempty"`
	Suggestions    []string   `json:"suggestions,omitempty"`
	Safety         []string   `json:"safety,omitempty"`
	CreatedAt      *time.Time `json:"createdAt,omitempty"`
	UpdatedAt      *time.Time `json:"updatedAt,omitempty"`
}

// CreateRequest carries the fields for recording a recommendation by hand.
type CreateRequest struct {
	ActivityID     string   `json:"activityId" validate:"required"`
	Type           string   `json:"type" validate:"required"`
	Recommendation string   `json:"recommendation" validate:"required"`
	Improvements   []string `json:"improvements,omitempty"`
	Suggestions    []string `json:"suggestions,omitempty"`
	Safety         []string `json:"safety,omitempty"`
}

// GenerateRequest asks the backend to generate a recommendation for an
// activity.
type GenerateRequest struct {
	ActivityID string    `json:"activityId" validate:"required"`
	FocusArea  FocusArea `json:"focusArea,omitempty"`
}

// Search returns the recommendations whose type or text contains query,
// case-insensitively, preserving order.
func Search(list []Recommendation, query string) []Recommendation {
	query = strings.ToLower(query)

	var out []Recommendation
	for _, rec := range list {
		if strings.Contains(strings.ToLower(rec.Type), query) ||
			strings.Contains(strings.ToLower(rec.Recommendation), query) {
			out = append(out, rec)
		}
	}
	return out
}
