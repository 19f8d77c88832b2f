// Package activities is the typed client for the activity routes and the
// local helpers operating on fetched activity lists.
package activities

import "time"

// Type enumerates the supported activity types.
type Type string

const (
	TypeRunning  Type = "RUNNING"
	TypeWalking  Type = "WALKING"
	TypeCycling  Type = "CYCLING"
	TypeSwimming Type = "SWIMMING"
	TypeYoga     Type = "YOGA"
	TypeGym      Type = "GYM"
	TypeSports   Type = "SPORTS"
	TypeOther    Type = "OTHER"
)

// Types returns every supported activity type with its display label, in
// presentation order.
func Types() []TypeLabel {
	return []TypeLabel{
		{TypeRunning, "Running"},
		{TypeWalking, "Walking"},
		{TypeCycling, "Cycling"},
		{TypeSwimming, "Swimming"},
		{TypeYoga, "Yoga"},
		{TypeGym, "Gym"},
		{TypeSports, "Sports"},
		{TypeOther, "Other"},
	}
}

// TypeLabel pairs an activity type with its display label.
type TypeLabel struct {
	Value Type
	Label string
}

// Activity is a single logged workout.
type Activity struct {
	ID                string         `json:"id"`
	UserID            string         `json:"userId"`
	Type              Type           `json:"type"`
	Duration          int            `json:"duration"` // minutes
	CaloriesBurned    int            `json:"caloriesBurned"`
	Date              string         `json:"date,omitempty"`
	StartTime         string         `json:"startTime,omitempty"`
	Distance          *float64       `json:"distance,omitempty"`
	Intensity         string         `json:"intensity,omitempty"`
	Notes             string         `json:"notes,omitempty"`
	AdditionalMetrics map[string]any `json:"additionalMetrics,omitempty"`
	CreatedAt         *time.Time     `json:"createdAt,omitempty"`
	UpdatedAt         *time.Time     `json:"updatedAt,omitempty"`
}

// CreateRequest carries the fields for logging a new activity.
type CreateRequest struct {
	Type              Type           `json:"type" validate:"required"`
	Duration          int            `json:"duration" validate:"required,gt=0"`
	CaloriesBurned    int            `json:"caloriesBurned" validate:"gte=0"`
	Date              string         `json:"date,omitempty"`
	StartTime         string         `json:"startTime,omitempty"`
	Distance          *float64       `json:"distance,omitempty"`
	Intensity         string         `json:"intensity,omitempty"`
	Notes             string         `json:"notes,omitempty"`
	AdditionalMetrics map[string]any `json:"additionalMetrics,omitempty"`
}

// UpdateRequest carries a partial activity update. Nil and zero fields
// are omitted.
type UpdateRequest struct {
	Type              Type           `json:"type,omitempty"`
	Duration          *int           `json:"duration,omitempty"`
	CaloriesBurned    *int           `json:"caloriesBurned,omitempty"`
	StartTime         string         `json:"startTime,omitempty"`
	Distance          *float64       `json:"distance,omitempty"`
	Intensity         string         `json:"intensity,omitempty"`
	Notes             string         `json:"notes,omitempty"`
	AdditionalMetrics map[string]any `json:"additionalMetrics,omitempty"`
}

// Stats is the aggregate the statistics endpoint returns.
type Stats struct {
	TotalActivities int     `json:"totalActivities"`
	TotalDuration   int     `json:"totalDuration"`
	TotalCalories   int     `json:"totalCalories"`
	AverageDuration float64 `json:"averageDuration"`
	AverageCalories float64 `json:"averageCalories"`
	MostCommonType  Type    `json:"mostCommonType"`
}

// FilterByType returns the activities of the given type, preserving order.
func FilterByType(list []Activity, t Type) []Activity {
	var out []Activity
	for _, a := range list {
		if a.Type == t {
			out = append(out, a)
		}
	}
	return out
}
