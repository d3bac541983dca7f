package userstore

import (
	"context"
	"time"

	"github.com/muba123321/WATTWISE/internal/app/system/identity"
	"github.com/muba123321/WATTWISE/internal/app/system/normalize"
	"github.com/muba123321/WATTWISE/internal/domain/models"
	wafflemongo "github.com/dalemusser/waffle/pantry/mongo"
	"github.com/dalemusser/waffle/pantry/text"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Store is the user directory: it maps external identities to internal
// user records and owns the account lifecycle.
type Store struct {
	c *mongo.Collection

	// Owned collections, touched only by the deletion cascade.
	appliances *mongo.Collection
	goals      *mongo.Collection
	readings   *mongo.Collection
}

func New(db *mongo.Database) *Store {
	return &Store{
		c:          db.Collection("users"),
		appliances: db.Collection("appliances"),
		goals:      db.Collection("goals"),
		readings:   db.Collection("meter_readings"),
	}
}

// GetByID loads a user by ObjectID. Returns mongo.ErrNoDocuments if absent.
func (s *Store) GetByID(ctx context.Context, id primitive.ObjectID) (*models.User, error) {
	var u models.User
	if err := s.c.FindOne(ctx, bson.M{"_id": id}).Decode(&u); err != nil {
		return nil, err
	}
	return &u, nil
}

// GetByExternalID loads a user by their external identity key.
// Returns mongo.ErrNoDocuments if absent.
func (s *Store) GetByExternalID(ctx context.Context, externalID string) (*models.User, error) {
	var u models.User
	if err := s.c.FindOne(ctx, bson.M{"firebase_uid": externalID}).Decode(&u); err != nil {
		return nil, err
	}
	return &u, nil
}

// ResolveOrCreate looks up the user for a verified claim, creating the
// record on first sight. For an existing user it computes a field diff
// against the claim (verified flag, names, avatar) and rewrites only the
// fields that changed; an unchanged claim performs zero writes.
//
// The external identity key itself is never rewritten.
func (s *Store) ResolveOrCreate(ctx context.Context, claim *identity.Claim) (*models.User, error) {
	var u models.User
	err := s.c.FindOne(ctx, bson.M{"firebase_uid": claim.ExternalID}).Decode(&u)

	if err == mongo.ErrNoDocuments {
		created, insertErr := s.create(ctx, claim)
		if insertErr == nil {
			return created, nil
		}
		if !wafflemongo.IsDup(insertErr) {
			return nil, insertErr
		}
		// Lost a first-login race; the record now exists. Fall through to
		// the diff-patch path against the winner's document.
		if err := s.c.FindOne(ctx, bson.M{"firebase_uid": claim.ExternalID}).Decode(&u); err != nil {
			return nil, err
		}
	} else if err != nil {
		return nil, err
	}

	set := bson.M{}
	if u.IsEmailVerified != claim.EmailVerified {
		set["is_email_verified"] = claim.EmailVerified
	}
	if claim.FirstName != "" && u.FirstName != claim.FirstName {
		set["first_name"] = normalize.Name(claim.FirstName)
	}
	if claim.LastName != "" && u.LastName != claim.LastName {
		set["last_name"] = normalize.Name(claim.LastName)
	}
	if claim.AvatarURL != "" && u.PhotoURL != claim.AvatarURL {
		set["photo_url"] = claim.AvatarURL
	}
	if len(set) == 0 {
		return &u, nil
	}

	after := options.After
	opts := options.FindOneAndUpdate().SetReturnDocument(after)
	var updated models.User
	if err := s.c.FindOneAndUpdate(ctx,
		bson.M{"firebase_uid": claim.ExternalID},
		bson.M{"$set": set},
		opts,
	).Decode(&updated); err != nil {
		return nil, err
	}
	return &updated, nil
}

func (s *Store) create(ctx context.Context, claim *identity.Claim) (*models.User, error) {
	createdAt := claim.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now().UTC()
	}

	email := normalize.Email(claim.Email)
	u := models.User{
		ID:              primitive.NewObjectID(),
		FirebaseUID:     claim.ExternalID,
		Email:           email,
		EmailCI:         text.Fold(email),
		FirstName:       normalize.Name(claim.FirstName),
		LastName:        normalize.Name(claim.LastName),
		PhotoURL:        claim.AvatarURL,
		IsEmailVerified: claim.EmailVerified,
		CreatedAt:       createdAt,
		Preferences:     models.DefaultPreferences(),
	}
	if _, err := s.c.InsertOne(ctx, u); err != nil {
		return nil, err
	}
	return &u, nil
}

// ProfileUpdate holds the caller-editable profile fields. Nil means
// "not provided"; only provided, non-empty fields are written.
type ProfileUpdate struct {
	FirstName *string
	LastName  *string
	PhotoURL  *string
}

// UpdateProfile patches the provided fields and returns the updated
// record. Returns mongo.ErrNoDocuments if the user is absent.
func (s *Store) UpdateProfile(ctx context.Context, externalID string, upd ProfileUpdate) (*models.User, error) {
	set := bson.M{}
	if upd.FirstName != nil && normalize.Name(*upd.FirstName) != "" {
		set["first_name"] = normalize.Name(*upd.FirstName)
	}
	if upd.LastName != nil && normalize.Name(*upd.LastName) != "" {
		set["last_name"] = normalize.Name(*upd.LastName)
	}
	if upd.PhotoURL != nil && *upd.PhotoURL != "" {
		set["photo_url"] = *upd.PhotoURL
	}
	if len(set) == 0 {
		return s.GetByExternalID(ctx, externalID)
	}

	after := options.After
	opts := options.FindOneAndUpdate().SetReturnDocument(after)
	var u models.User
	if err := s.c.FindOneAndUpdate(ctx,
		bson.M{"firebase_uid": externalID},
		bson.M{"$set": set},
		opts,
	).Decode(&u); err != nil {
		return nil, err
	}
	return &u, nil
}

// ReplacePreferences replaces the embedded preferences object wholesale
// and returns the updated record. Returns mongo.ErrNoDocuments if the
// user is absent.
func (s *Store) ReplacePreferences(ctx context.Context, externalID string, prefs models.Preferences) (*models.User, error) {
	after := options.After
	opts := options.FindOneAndUpdate().SetReturnDocument(after)
	var u models.User
	if err := s.c.FindOneAndUpdate(ctx,
		bson.M{"firebase_uid": externalID},
		bson.M{"$set": bson.M{"preferences": prefs}},
		opts,
	).Decode(&u); err != nil {
		return nil, err
	}
	return &u, nil
}

// Delete removes the user and everything they own. The cascade runs
// before the user document so a storage failure leaves the account
// intact and retryable. Returns mongo.ErrNoDocuments if no such user.
func (s *Store) Delete(ctx context.Context, id primitive.ObjectID) error {
	owned := bson.M{"user_id": id}
	if _, err := s.appliances.DeleteMany(ctx, owned); err != nil {
		return err
	}
	if _, err := s.goals.DeleteMany(ctx, owned); err != nil {
		return err
	}
	if _, err := s.readings.DeleteMany(ctx, owned); err != nil {
		return err
	}

	res, err := s.c.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}
