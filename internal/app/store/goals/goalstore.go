package goalstore

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/muba123321/WATTWISE/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// ErrInvalid wraps field-validation failures.
var ErrInvalid = errors.New("invalid goal")

type Store struct {
	c *mongo.Collection
}

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("goals")}
}

// Params are the caller-supplied fields for a new goal. Type defaults
// to "reduction" and Status to "active".
type Params struct {
	Title        string
	Description  string
	TargetValue  float64
	Unit         string
	StartDate    time.Time
	EndDate      time.Time
	Type         string
	Status       string
	CurrentValue float64
}

// Create validates, applies enum defaults, stamps the owner, inserts.
func (s *Store) Create(ctx context.Context, owner primitive.ObjectID, p Params) (models.Goal, error) {
	if strings.TrimSpace(p.Title) == "" {
		return models.Goal{}, fmt.Errorf("%w: title is required", ErrInvalid)
	}
	if p.Type == "" {
		p.Type = models.GoalTypeReduction
	}
	if p.Status == "" {
		p.Status = models.GoalStatusActive
	}
	if !models.ValidGoalType(p.Type) {
		return models.Goal{}, fmt.Errorf(`%w: type must be "reduction"|"limit"`, ErrInvalid)
	}
	if !models.ValidGoalStatus(p.Status) {
		return models.Goal{}, fmt.Errorf(`%w: status must be "active"|"completed"|"failed"`, ErrInvalid)
	}

	g := models.Goal{
		ID:           primitive.NewObjectID(),
		Title:        strings.TrimSpace(p.Title),
		Description:  p.Description,
		TargetValue:  p.TargetValue,
		Unit:         p.Unit,
		StartDate:    p.StartDate,
		EndDate:      p.EndDate,
		Type:         p.Type,
		Status:       p.Status,
		CurrentValue: p.CurrentValue,
		UserID:       owner,
	}
	if _, err := s.c.InsertOne(ctx, g); err != nil {
		return models.Goal{}, err
	}
	return g, nil
}

// ListByOwner returns every goal owned by the caller.
func (s *Store) ListByOwner(ctx context.Context, owner primitive.ObjectID) ([]models.Goal, error) {
	cur, err := s.c.Find(ctx, bson.M{"user_id": owner})
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	goals := []models.Goal{}
	if err := cur.All(ctx, &goals); err != nil {
		return nil, err
	}
	return goals, nil
}

// Update holds the patchable fields; nil means "leave unchanged".
type Update struct {
	Title        *string
	Description  *string
	TargetValue  *float64
	Unit         *string
	StartDate    *time.Time
	EndDate      *time.Time
	Type         *string
	Status       *string
	CurrentValue *float64
}

// Update patches the provided fields in one find-and-modify scoped by
// id and owner together. Returns mongo.ErrNoDocuments when nothing
// matched (missing and non-owned are indistinguishable).
func (s *Store) Update(ctx context.Context, id, owner primitive.ObjectID, upd Update) (models.Goal, error) {
	set := bson.M{}
	if upd.Title != nil {
		if strings.TrimSpace(*upd.Title) == "" {
			return models.Goal{}, fmt.Errorf("%w: title is required", ErrInvalid)
		}
		set["title"] = strings.TrimSpace(*upd.Title)
	}
	if upd.Description != nil {
		set["description"] = *upd.Description
	}
	if upd.TargetValue != nil {
		set["target_value"] = *upd.TargetValue
	}
	if upd.Unit != nil {
		set["unit"] = *upd.Unit
	}
	if upd.StartDate != nil && !upd.StartDate.IsZero() {
		set["start_date"] = *upd.StartDate
	}
	if upd.EndDate != nil && !upd.EndDate.IsZero() {
		set["end_date"] = *upd.EndDate
	}
	if upd.Type != nil {
		if !models.ValidGoalType(*upd.Type) {
			return models.Goal{}, fmt.Errorf(`%w: type must be "reduction"|"limit"`, ErrInvalid)
		}
		set["type"] = *upd.Type
	}
	if upd.Status != nil {
		if !models.ValidGoalStatus(*upd.Status) {
			return models.Goal{}, fmt.Errorf(`%w: status must be "active"|"completed"|"failed"`, ErrInvalid)
		}
		set["status"] = *upd.Status
	}
	if upd.CurrentValue != nil {
		set["current_value"] = *upd.CurrentValue
	}

	filter := bson.M{"_id": id, "user_id": owner}
	if len(set) == 0 {
		var g models.Goal
		err := s.c.FindOne(ctx, filter).Decode(&g)
		return g, err
	}

	after := options.After
	opts := options.FindOneAndUpdate().SetReturnDocument(after)

	var g models.Goal
	if err := s.c.FindOneAndUpdate(ctx, filter, bson.M{"$set": set}, opts).Decode(&g); err != nil {
		return models.Goal{}, err
	}
	return g, nil
}

// Delete removes the record matching id and owner together.
// Returns mongo.ErrNoDocuments when nothing matched.
func (s *Store) Delete(ctx context.Context, id, owner primitive.ObjectID) error {
	return s.c.FindOneAndDelete(ctx, bson.M{"_id": id, "user_id": owner}).Err()
}
