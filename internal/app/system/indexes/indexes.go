// Package indexes ensures the indexes this app depends on exist at
// startup. Each ensure call is idempotent; problems are aggregated so
// startup can fail fast with everything that is wrong.
package indexes

import (
	"context"
	"errors"
	"strings"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"
)

// EnsureAll creates the index set for every collection the app uses.
func EnsureAll(ctx context.Context, db *mongo.Database) error {
	var problems []string

	boolPtr := func(b bool) *bool { return &b }

	// users: the external identity key and email are both unique.
	if err := ensure(ctx, db.Collection("users"), []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "firebase_uid", Value: 1}},
			Options: &options.IndexOptions{Unique: boolPtr(true)},
		},
		{
			Keys:    bson.D{{Key: "email", Value: 1}},
			Options: &options.IndexOptions{Unique: boolPtr(true)},
		},
	}); err != nil {
		problems = append(problems, "users: "+err.Error())
	}

	// Owner-scoped collections: every query filters on user_id.
	if err := ensure(ctx, db.Collection("appliances"), []mongo.IndexModel{
		{Keys: bson.D{{Key: "user_id", Value: 1}}},
	}); err != nil {
		problems = append(problems, "appliances: "+err.Error())
	}

	if err := ensure(ctx, db.Collection("goals"), []mongo.IndexModel{
		{Keys: bson.D{{Key: "user_id", Value: 1}}},
	}); err != nil {
		problems = append(problems, "goals: "+err.Error())
	}

	// meter_readings: consumption views sort by date within an owner.
	if err := ensure(ctx, db.Collection("meter_readings"), []mongo.IndexModel{
		{Keys: bson.D{{Key: "user_id", Value: 1}, {Key: "date", Value: 1}}},
	}); err != nil {
		problems = append(problems, "meter_readings: "+err.Error())
	}

	if len(problems) > 0 {
		return errors.New(strings.Join(problems, "; "))
	}
	return nil
}

func ensure(ctx context.Context, coll *mongo.Collection, indexModels []mongo.IndexModel) error {
	names, err := coll.Indexes().CreateMany(ctx, indexModels)
	if err != nil {
		return err
	}
	zap.L().Info("indexes ensured",
		zap.String("collection", coll.Name()),
		zap.Strings("names", names))
	return nil
}
