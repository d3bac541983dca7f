// internal/domain/models/meterreading.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// MeterReading is a single owner-scoped meter sample. Date defaults to
// the creation time and is the sort key for all consumption views.
type MeterReading struct {
	ID       primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Value    float64            `bson:"value" json:"value"`
	Unit     string             `bson:"unit,omitempty" json:"unit,omitempty"`
	ImageURL string             `bson:"image_url,omitempty" json:"imageUrl,omitempty"`
	Date     time.Time          `bson:"date" json:"date"`
	UserID   primitive.ObjectID `bson:"user_id" json:"userId"`
}
