package readingstore

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/muba123321/WATTWISE/internal/app/system/normalize"
	"github.com/muba123321/WATTWISE/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// ErrInvalid wraps field-validation failures.
var ErrInvalid = errors.New("invalid meter reading")

type Store struct {
	c *mongo.Collection
}

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("meter_readings")}
}

// Params are the caller-supplied fields for a new reading. A zero Date
// defaults to the creation time.
type Params struct {
	Value    float64
	Unit     string
	ImageURL string
	Date     time.Time
}

// Create validates, stamps the owner, defaults the timestamp, inserts.
func (s *Store) Create(ctx context.Context, owner primitive.ObjectID, p Params) (models.MeterReading, error) {
	if p.Value <= 0 {
		return models.MeterReading{}, fmt.Errorf("%w: value must be positive", ErrInvalid)
	}

	date := p.Date
	if date.IsZero() {
		date = time.Now().UTC()
	}

	r := models.MeterReading{
		ID:       primitive.NewObjectID(),
		Value:    p.Value,
		Unit:     normalize.Unit(p.Unit),
		ImageURL: p.ImageURL,
		Date:     date,
		UserID:   owner,
	}
	if _, err := s.c.InsertOne(ctx, r); err != nil {
		return models.MeterReading{}, err
	}
	return r, nil
}

// ListByOwner returns every reading owned by the caller, in store order.
func (s *Store) ListByOwner(ctx context.Context, owner primitive.ObjectID) ([]models.MeterReading, error) {
	return s.find(ctx, owner, nil)
}

// Update holds the patchable fields; nil means "leave unchanged".
type Update struct {
	Value    *float64
	Unit     *string
	ImageURL *string
	Date     *time.Time
}

// Update patches the provided fields in one find-and-modify scoped by
// id and owner together. Returns mongo.ErrNoDocuments when nothing
// matched (missing and non-owned are indistinguishable).
func (s *Store) Update(ctx context.Context, id, owner primitive.ObjectID, upd Update) (models.MeterReading, error) {
	set := bson.M{}
	if upd.Value != nil {
		if *upd.Value <= 0 {
			return models.MeterReading{}, fmt.Errorf("%w: value must be positive", ErrInvalid)
		}
		set["value"] = *upd.Value
	}
	if upd.Unit != nil {
		set["unit"] = normalize.Unit(*upd.Unit)
	}
	if upd.ImageURL != nil {
		set["image_url"] = *upd.ImageURL
	}
	if upd.Date != nil && !upd.Date.IsZero() {
		set["date"] = *upd.Date
	}

	filter := bson.M{"_id": id, "user_id": owner}
	if len(set) == 0 {
		var r models.MeterReading
		err := s.c.FindOne(ctx, filter).Decode(&r)
		return r, err
	}

	after := options.After
	opts := options.FindOneAndUpdate().SetReturnDocument(after)

	var r models.MeterReading
	if err := s.c.FindOneAndUpdate(ctx, filter, bson.M{"$set": set}, opts).Decode(&r); err != nil {
		return models.MeterReading{}, err
	}
	return r, nil
}

// Delete removes the record matching id and owner together.
// Returns mongo.ErrNoDocuments when nothing matched.
func (s *Store) Delete(ctx context.Context, id, owner primitive.ObjectID) error {
	return s.c.FindOneAndDelete(ctx, bson.M{"_id": id, "user_id": owner}).Err()
}

/* ------------------------------ derived views ----------------------------- */

// CurrentPeriod returns the owner's earliest and latest readings by
// timestamp. Both are nil when the owner has no readings.
func (s *Store) CurrentPeriod(ctx context.Context, owner primitive.ObjectID) (first, last *models.MeterReading, err error) {
	asc := options.FindOne().SetSort(bson.D{{Key: "date", Value: 1}})
	desc := options.FindOne().SetSort(bson.D{{Key: "date", Value: -1}})

	var earliest models.MeterReading
	err = s.c.FindOne(ctx, bson.M{"user_id": owner}, asc).Decode(&earliest)
	if err == mongo.ErrNoDocuments {
		return nil, nil, nil
	}
	if err != nil {
		return nil, nil, err
	}

	var latest models.MeterReading
	if err = s.c.FindOne(ctx, bson.M{"user_id": owner}, desc).Decode(&latest); err != nil {
		return nil, nil, err
	}
	return &earliest, &latest, nil
}

// Ordered returns all of the owner's readings sorted by timestamp
// ascending. Grouping into calendar periods is the caller's job.
func (s *Store) Ordered(ctx context.Context, owner primitive.ObjectID) ([]models.MeterReading, error) {
	return s.find(ctx, owner, options.Find().SetSort(bson.D{{Key: "date", Value: 1}}))
}

// RecentWindow returns at most n readings sorted by timestamp
// descending (newest first).
func (s *Store) RecentWindow(ctx context.Context, owner primitive.ObjectID, n int64) ([]models.MeterReading, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: "date", Value: -1}}).
		SetLimit(n)
	return s.find(ctx, owner, opts)
}

func (s *Store) find(ctx context.Context, owner primitive.ObjectID, opts *options.FindOptions) ([]models.MeterReading, error) {
	filter := bson.M{"user_id": owner}

	var cur *mongo.Cursor
	var err error
	if opts != nil {
		cur, err = s.c.Find(ctx, filter, opts)
	} else {
		cur, err = s.c.Find(ctx, filter)
	}
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	readings := []models.MeterReading{}
	if err := cur.All(ctx, &readings); err != nil {
		return nil, err
	}
	return readings, nil
}
