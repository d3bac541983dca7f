// internal/testutil/fixtures.go
package testutil

import (
	"context"
	"testing"
	"time"

	"github.com/muba123321/WATTWISE/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// Fixtures inserts prebuilt documents for tests that need existing
// data. Every Create* method fails the test on error.
type Fixtures struct {
	t  *testing.T
	db *mongo.Database
}

func NewFixtures(t *testing.T, db *mongo.Database) *Fixtures {
	return &Fixtures{t: t, db: db}
}

// DB exposes the underlying test database.
func (f *Fixtures) DB() *mongo.Database { return f.db }

// Logger returns a no-op logger for handler construction.
func (f *Fixtures) Logger() *zap.Logger { return zap.NewNop() }

// CreateUser inserts a directory user keyed by the given external id.
func (f *Fixtures) CreateUser(ctx context.Context, externalID, email string) *models.User {
	f.t.Helper()
	u := &models.User{
		ID:          primitive.NewObjectID(),
		FirebaseUID: externalID,
		Email:       email,
		FirstName:   "Test",
		LastName:    "User",
		CreatedAt:   time.Now().UTC(),
		Preferences: models.DefaultPreferences(),
	}
	if _, err := f.db.Collection("users").InsertOne(ctx, u); err != nil {
		f.t.Fatalf("insert user: %v", err)
	}
	return u
}

// CreateAppliance inserts an appliance owned by the given user.
func (f *Fixtures) CreateAppliance(ctx context.Context, owner primitive.ObjectID, name string, hours, watts float64) models.Appliance {
	f.t.Helper()
	a := models.Appliance{
		ID:               primitive.NewObjectID(),
		Name:             name,
		UsageHoursPerDay: hours,
		PowerRatingWatts: watts,
		UserID:           owner,
	}
	if _, err := f.db.Collection("appliances").InsertOne(ctx, a); err != nil {
		f.t.Fatalf("insert appliance: %v", err)
	}
	return a
}

// CreateReading inserts a meter reading owned by the given user.
func (f *Fixtures) CreateReading(ctx context.Context, owner primitive.ObjectID, value float64, date time.Time) models.MeterReading {
	f.t.Helper()
	m := models.MeterReading{
		ID:     primitive.NewObjectID(),
		Value:  value,
		Unit:   "kwh",
		Date:   date,
		UserID: owner,
	}
	if _, err := f.db.Collection("meter_readings").InsertOne(ctx, m); err != nil {
		f.t.Fatalf("insert meter reading: %v", err)
	}
	return m
}

// CreateGoal inserts an active reduction goal owned by the given user.
func (f *Fixtures) CreateGoal(ctx context.Context, owner primitive.ObjectID, title string, target float64) models.Goal {
	f.t.Helper()
	g := models.Goal{
		ID:          primitive.NewObjectID(),
		Title:       title,
		TargetValue: target,
		Type:        models.GoalTypeReduction,
		Status:      models.GoalStatusActive,
		UserID:      owner,
	}
	if _, err := f.db.Collection("goals").InsertOne(ctx, g); err != nil {
		f.t.Fatalf("insert goal: %v", err)
	}
	return g
}
