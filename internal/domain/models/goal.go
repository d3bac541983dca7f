// internal/domain/models/goal.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Goal types.
const (
	GoalTypeReduction = "reduction"
	GoalTypeLimit     = "limit"
)

// Goal statuses.
const (
	GoalStatusActive    = "active"
	GoalStatusCompleted = "completed"
	GoalStatusFailed    = "failed"
)

// Goal is an owner-scoped energy target.
type Goal struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Title        string             `bson:"title" json:"title"`
	Description  string             `bson:"description,omitempty" json:"description,omitempty"`
	TargetValue  float64            `bson:"target_value" json:"targetValue"`
	Unit         string             `bson:"unit,omitempty" json:"unit,omitempty"`
	StartDate    time.Time          `bson:"start_date,omitempty" json:"startDate,omitempty"`
	EndDate      time.Time          `bson:"end_date,omitempty" json:"endDate,omitempty"`
	Type         string             `bson:"type" json:"type"`     // reduction | limit
	Status       string             `bson:"status" json:"status"` // active | completed | failed
	CurrentValue float64            `bson:"current_value" json:"currentValue"`
	UserID       primitive.ObjectID `bson:"user_id" json:"userId"`
}

// ValidGoalType reports whether t is one of the goal type enum values.
func ValidGoalType(t string) bool {
	return t == GoalTypeReduction || t == GoalTypeLimit
}

// ValidGoalStatus reports whether s is one of the goal status enum values.
func ValidGoalStatus(s string) bool {
	return s == GoalStatusActive || s == GoalStatusCompleted || s == GoalStatusFailed
}
