// internal/domain/models/appliance.go
package models

import "go.mongodb.org/mongo-driver/bson/primitive"

// Appliance is a household device tracked by a single owning user.
// Every appliance has exactly one owner; reads and writes are always
// scoped by UserID.
type Appliance struct {
	ID               primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name             string             `bson:"name" json:"name"`
	UsageHoursPerDay float64            `bson:"usage_hours_per_day" json:"usageHoursPerDay"`
	PowerRatingWatts float64            `bson:"power_rating_watts" json:"powerRatingWatts"`
	UserID           primitive.ObjectID `bson:"user_id" json:"userId"`
}
