// internal/domain/models/user.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// User is the internal record for an externally authenticated account.
//
// NOTE:
//   - FirebaseUID is the external identity key. It is unique and never
//     rewritten after the record is created; there is exactly one user
//     per external identity.
//   - Owned resources (appliances, goals, meter readings) reference the
//     user from their own documents; nothing is embedded here except
//     preferences.
type User struct {
	ID              primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	FirebaseUID     string             `bson:"firebase_uid" json:"firebaseUid"`
	Email           string             `bson:"email" json:"email"`
	EmailCI         string             `bson:"email_ci" json:"-"` // lowercase, diacritics-stripped
	FirstName       string             `bson:"first_name" json:"firstName"`
	LastName        string             `bson:"last_name" json:"lastName"`
	PhotoURL        string             `bson:"photo_url,omitempty" json:"photoUrl,omitempty"`
	IsEmailVerified bool               `bson:"is_email_verified" json:"isEmailVerified"`
	CreatedAt       time.Time          `bson:"created_at" json:"createdAt"`
	Preferences     Preferences        `bson:"preferences" json:"preferences"`
}

// Preferences is embedded in User and always present with defaults once
// the user exists. Updates replace the whole object.
type Preferences struct {
	DarkMode             bool     `bson:"dark_mode" json:"darkMode"`
	Currency             string   `bson:"currency" json:"currency"`
	EnergyUnit           string   `bson:"energy_unit" json:"energyUnit"`
	NotificationsEnabled bool     `bson:"notifications_enabled" json:"notificationsEnabled"`
	NotificationTypes    []string `bson:"notification_types,omitempty" json:"notificationTypes,omitempty"`
}

// DefaultPreferences returns the preferences a newly created user starts with.
func DefaultPreferences() Preferences {
	return Preferences{
		Currency:             "$",
		EnergyUnit:           "kWh",
		NotificationsEnabled: true,
	}
}
