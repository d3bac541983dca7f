package appliancestore

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/muba123321/WATTWISE/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// ErrInvalid wraps every field-validation failure so handlers can map
// the whole family to a 400 while keeping the per-field message.
var ErrInvalid = errors.New("invalid appliance")

type Store struct {
	c *mongo.Collection
}

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("appliances")}
}

// Params are the caller-supplied fields for a new appliance.
type Params struct {
	Name             string
	UsageHoursPerDay float64
	PowerRatingWatts float64
}

func validate(name string, hours, watts float64) error {
	if strings.TrimSpace(name) == "" {
		return fmt.Errorf("%w: name is required", ErrInvalid)
	}
	if hours <= 0 {
		return fmt.Errorf("%w: usage hours must be positive", ErrInvalid)
	}
	if watts < 1 {
		return fmt.Errorf("%w: power rating must be at least 1W", ErrInvalid)
	}
	return nil
}

// Create validates the payload, stamps the owner, and inserts.
func (s *Store) Create(ctx context.Context, owner primitive.ObjectID, p Params) (models.Appliance, error) {
	if err := validate(p.Name, p.UsageHoursPerDay, p.PowerRatingWatts); err != nil {
		return models.Appliance{}, err
	}

	a := models.Appliance{
		ID:               primitive.NewObjectID(),
		Name:             strings.TrimSpace(p.Name),
		UsageHoursPerDay: p.UsageHoursPerDay,
		PowerRatingWatts: p.PowerRatingWatts,
		UserID:           owner,
	}
	if _, err := s.c.InsertOne(ctx, a); err != nil {
		return models.Appliance{}, err
	}
	return a, nil
}

// ListByOwner returns every appliance owned by the caller.
func (s *Store) ListByOwner(ctx context.Context, owner primitive.ObjectID) ([]models.Appliance, error) {
	cur, err := s.c.Find(ctx, bson.M{"user_id": owner})
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	appliances := []models.Appliance{}
	if err := cur.All(ctx, &appliances); err != nil {
		return nil, err
	}
	return appliances, nil
}

// Update applies the replacement fields in a single find-and-modify
// whose filter matches both id and owner, so a record belonging to
// someone else is indistinguishable from a missing one
// (mongo.ErrNoDocuments either way).
func (s *Store) Update(ctx context.Context, id, owner primitive.ObjectID, p Params) (models.Appliance, error) {
	if err := validate(p.Name, p.UsageHoursPerDay, p.PowerRatingWatts); err != nil {
		return models.Appliance{}, err
	}

	after := options.After
	opts := options.FindOneAndUpdate().SetReturnDocument(after)

	var a models.Appliance
	err := s.c.FindOneAndUpdate(ctx,
		bson.M{"_id": id, "user_id": owner},
		bson.M{"$set": bson.M{
			"name":                strings.TrimSpace(p.Name),
			"usage_hours_per_day": p.UsageHoursPerDay,
			"power_rating_watts":  p.PowerRatingWatts,
		}},
		opts,
	).Decode(&a)
	if err != nil {
		return models.Appliance{}, err
	}
	return a, nil
}

// Delete removes the record matching id and owner together.
// Returns mongo.ErrNoDocuments when nothing matched.
func (s *Store) Delete(ctx context.Context, id, owner primitive.ObjectID) error {
	err := s.c.FindOneAndDelete(ctx, bson.M{"_id": id, "user_id": owner}).Err()
	return err
}
