package appliancestore_test

import (
	"errors"
	"testing"

	appliancestore "github.com/muba123321/WATTWISE/internal/app/store/appliances"
	"github.com/muba123321/WATTWISE/internal/testutil"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

func TestCreate_ThenListExactlyOnce(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := appliancestore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	owner := primitive.NewObjectID()
	created, err := store.Create(ctx, owner, appliancestore.Params{
		Name:             "Refrigerator",
		UsageHoursPerDay: 24,
		PowerRatingWatts: 150,
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if created.UserID != owner {
		t.Errorf("owner = %s, want %s", created.UserID.Hex(), owner.Hex())
	}

	list, err := store.ListByOwner(ctx, owner)
	if err != nil {
		t.Fatalf("ListByOwner: %v", err)
	}
	if len(list) != 1 {
		t.Fatalf("list length = %d, want 1", len(list))
	}
	if list[0].ID != created.ID || list[0].Name != "Refrigerator" {
		t.Errorf("listed appliance mismatch: %+v", list[0])
	}
}

func TestCreate_Validation(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := appliancestore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	owner := primitive.NewObjectID()
	cases := []struct {
		name string
		p    appliancestore.Params
	}{
		{"empty name", appliancestore.Params{Name: "", UsageHoursPerDay: 4, PowerRatingWatts: 100}},
		{"zero hours", appliancestore.Params{Name: "TV", UsageHoursPerDay: 0, PowerRatingWatts: 100}},
		{"watts below one", appliancestore.Params{Name: "TV", UsageHoursPerDay: 4, PowerRatingWatts: 0.5}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := store.Create(ctx, owner, tc.p); !errors.Is(err, appliancestore.ErrInvalid) {
				t.Errorf("err = %v, want ErrInvalid", err)
			}
		})
	}
}

func TestList_DoesNotLeakAcrossOwners(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := appliancestore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	a := primitive.NewObjectID()
	b := primitive.NewObjectID()

	if _, err := store.Create(ctx, a, appliancestore.Params{Name: "Washer", UsageHoursPerDay: 2, PowerRatingWatts: 500}); err != nil {
		t.Fatalf("Create: %v", err)
	}

	list, err := store.ListByOwner(ctx, b)
	if err != nil {
		t.Fatalf("ListByOwner: %v", err)
	}
	if len(list) != 0 {
		t.Errorf("owner b sees %d appliances, want 0", len(list))
	}
}

func TestUpdate_CrossOwnerIsNotFound(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := appliancestore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	owner := primitive.NewObjectID()
	created, err := store.Create(ctx, owner, appliancestore.Params{Name: "Dryer", UsageHoursPerDay: 1, PowerRatingWatts: 3000})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	intruder := primitive.NewObjectID()
	_, err = store.Update(ctx, created.ID, intruder, appliancestore.Params{Name: "Hijacked", UsageHoursPerDay: 1, PowerRatingWatts: 1})
	if !errors.Is(err, mongo.ErrNoDocuments) {
		t.Errorf("err = %v, want mongo.ErrNoDocuments", err)
	}

	// The record must be untouched.
	list, err := store.ListByOwner(ctx, owner)
	if err != nil {
		t.Fatalf("ListByOwner: %v", err)
	}
	if len(list) != 1 || list[0].Name != "Dryer" {
		t.Errorf("record changed by cross-owner update: %+v", list)
	}
}

func TestUpdate_ReplacesEditableFields(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := appliancestore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	owner := primitive.NewObjectID()
	created, err := store.Create(ctx, owner, appliancestore.Params{Name: "Old", UsageHoursPerDay: 2, PowerRatingWatts: 100})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	updated, err := store.Update(ctx, created.ID, owner, appliancestore.Params{Name: "New", UsageHoursPerDay: 5, PowerRatingWatts: 250})
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if updated.Name != "New" || updated.UsageHoursPerDay != 5 || updated.PowerRatingWatts != 250 {
		t.Errorf("update not applied: %+v", updated)
	}
	if updated.UserID != owner {
		t.Error("owner must never change on update")
	}
}

func TestDelete_CrossOwnerIsNotFound(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := appliancestore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	owner := primitive.NewObjectID()
	created, err := store.Create(ctx, owner, appliancestore.Params{Name: "AC", UsageHoursPerDay: 8, PowerRatingWatts: 1200})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	if err := store.Delete(ctx, created.ID, primitive.NewObjectID()); !errors.Is(err, mongo.ErrNoDocuments) {
		t.Errorf("cross-owner delete err = %v, want mongo.ErrNoDocuments", err)
	}

	if err := store.Delete(ctx, created.ID, owner); err != nil {
		t.Fatalf("owner delete: %v", err)
	}

	list, err := store.ListByOwner(ctx, owner)
	if err != nil {
		t.Fatalf("ListByOwner: %v", err)
	}
	if len(list) != 0 {
		t.Errorf("appliance still listed after delete")
	}
}
