// Package goals is the typed client for the goal and milestone routes.
package goals

import "time"

// Type enumerates the supported goal types.
type Type string

const (
	TypeWeightLoss    Type = "WEIGHT_LOSS"
	TypeWeightGain    Type = "WEIGHT_GAIN"
	TypeMuscleGain    Type = "MUSCLE_GAIN"
	TypeEndurance     Type = "ENDURANCE"
	TypeStrength      Type = "STRENGTH"
	TypeFlexibility   Type = "FLEXIBILITY"
	TypeHabitBuilding Type = "HABIT_BUILDING"
	TypeCustom        Type = "CUSTOM"
)

// Status enumerates the goal lifecycle states.
type Status string

const (
	StatusActive    Status = "ACTIVE"
	StatusCompleted Status = "COMPLETED"
	StatusAbandoned Status = "ABANDONED"
	StatusPaused    Status = "PAUSED"
)

// Goal is a fitness goal with optional milestones.
type Goal struct {
	ID                 string      `json:"id,omitempty"`
	UserID             string      `json:"userId,omitempty"`
	Title              string      `json:"title" validate:"required"`
	Description        string      `json:"description,omitempty"`
	Type               Type        `json:"type" validate:"required"`
	TargetValue        *float64    `json:"targetValue,omitempty"`
	CurrentValue       *float64    `json:"currentValue,omitempty"`
	Unit               string      `json:"unit"`
	StartDate          string      `json:"startDate,omitempty"`
	Deadline           string      `json:"deadline,omitempty"`
	Status             Status      `json:"status,omitempty"`
	ProgressPercentage *float64    `json:"progressPercentage,omitempty"`
	Milestones         []Milestone `json:"milestones,omitempty"`
	CreatedAt          *time.Time  `json:"createdAt,omitempty"`
	UpdatedAt          *time.Time  `json:"updatedAt,omitempty"`
}

// Milestone is an intermediate target within a goal.
type Milestone struct {
	ID          string     `json:"id,omitempty"`
	GoalID      string     `json:"goalId,omitempty"`
	Title       string     `json:"title" validate:"required"`
	Description string     `json:"description,omitempty"`
	TargetValue float64    `json:"targetValue" validate:"required"`
	Achieved    bool       `json:"achieved,omitempty"`
	AchievedAt  *time.Time `json:"achievedAt,omitempty"`
	CreatedAt   *time.Time `json:"createdAt,omitempty"`
}
