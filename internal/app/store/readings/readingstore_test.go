package readingstore_test

import (
	"errors"
	"testing"
	"time"

	readingstore "github.com/muba123321/WATTWISE/internal/app/store/readings"
	"github.com/muba123321/WATTWISE/internal/testutil"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

func TestCreate_DefaultsDateAndNormalizesUnit(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := readingstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	owner := primitive.NewObjectID()
	before := time.Now().UTC()

	r, err := store.Create(ctx, owner, readingstore.Params{Value: 120.5, Unit: " KWH "})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	if r.Date.Before(before.Add(-time.Second)) {
		t.Errorf("date %v not defaulted to now", r.Date)
	}
	if r.Unit != "kwh" {
		t.Errorf("unit = %q, want normalized kwh", r.Unit)
	}
	if r.UserID != owner {
		t.Error("owner not stamped")
	}
}

func TestCreate_RejectsNonPositiveValue(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := readingstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	_, err := store.Create(ctx, primitive.NewObjectID(), readingstore.Params{Value: 0})
	if !errors.Is(err, readingstore.ErrInvalid) {
		t.Errorf("err = %v, want ErrInvalid", err)
	}
}

func TestCurrentPeriod_EmptyIsNilNil(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := readingstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	first, last, err := store.CurrentPeriod(ctx, primitive.NewObjectID())
	if err != nil {
		t.Fatalf("CurrentPeriod: %v", err)
	}
	if first != nil || last != nil {
		t.Errorf("expected nil/nil on empty history, got %v / %v", first, last)
	}
}

func TestCurrentPeriod_BracketsByDate(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := readingstore.New(db)
	fixtures := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	owner := primitive.NewObjectID()
	base := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	// Inserted out of order on purpose.
	mid := fixtures.CreateReading(ctx, owner, 2, base.AddDate(0, 0, 10))
	earliest := fixtures.CreateReading(ctx, owner, 1, base)
	latest := fixtures.CreateReading(ctx, owner, 3, base.AddDate(0, 0, 20))
	_ = mid

	first, last, err := store.CurrentPeriod(ctx, owner)
	if err != nil {
		t.Fatalf("CurrentPeriod: %v", err)
	}
	if first == nil || last == nil {
		t.Fatal("expected both ends present")
	}
	if first.ID != earliest.ID {
		t.Errorf("start = %v, want earliest reading", first.Date)
	}
	if last.ID != latest.ID {
		t.Errorf("end = %v, want latest reading", last.Date)
	}
}

func TestOrdered_AscendingByDate(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := readingstore.New(db)
	fixtures := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	owner := primitive.NewObjectID()
	base := time.Date(2026, 5, 1, 0, 0, 0, 0, time.UTC)
	for _, offset := range []int{5, 1, 3} {
		fixtures.CreateReading(ctx, owner, float64(offset), base.AddDate(0, 0, offset))
	}

	list, err := store.Ordered(ctx, owner)
	if err != nil {
		t.Fatalf("Ordered: %v", err)
	}
	if len(list) != 3 {
		t.Fatalf("length = %d, want 3", len(list))
	}
	for i := 1; i < len(list); i++ {
		if list[i].Date.Before(list[i-1].Date) {
			t.Errorf("not ascending at %d: %v after %v", i, list[i].Date, list[i-1].Date)
		}
	}
}

func TestRecentWindow_CapAndOrder(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := readingstore.New(db)
	fixtures := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	owner := primitive.NewObjectID()
	base := time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC)
	for i := 0; i < 30; i++ {
		fixtures.CreateReading(ctx, owner, float64(i+1), base.Add(time.Duration(i)*time.Hour))
	}

	list, err := store.RecentWindow(ctx, owner, 24)
	if err != nil {
		t.Fatalf("RecentWindow: %v", err)
	}
	if len(list) != 24 {
		t.Fatalf("length = %d, want 24", len(list))
	}
	if !list[0].Date.Equal(base.Add(29 * time.Hour)) {
		t.Errorf("first item %v is not the newest reading", list[0].Date)
	}
	for i := 1; i < len(list); i++ {
		if list[i].Date.After(list[i-1].Date) {
			t.Errorf("not descending at %d", i)
		}
	}
}

func TestRecentWindow_FewerThanWindow(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := readingstore.New(db)
	fixtures := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	owner := primitive.NewObjectID()
	fixtures.CreateReading(ctx, owner, 1, time.Now().UTC())

	list, err := store.RecentWindow(ctx, owner, 24)
	if err != nil {
		t.Fatalf("RecentWindow: %v", err)
	}
	if len(list) != 1 {
		t.Errorf("length = %d, want 1", len(list))
	}
}

func TestUpdate_PatchesOnlyProvidedFields(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := readingstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	owner := primitive.NewObjectID()
	created, err := store.Create(ctx, owner, readingstore.Params{Value: 50, Unit: "kwh", ImageURL: "https://example.com/m.jpg"})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	v := 75.0
	updated, err := store.Update(ctx, created.ID, owner, readingstore.Update{Value: &v})
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if updated.Value != 75 {
		t.Errorf("value = %v, want 75", updated.Value)
	}
	if updated.ImageURL != created.ImageURL || updated.Unit != created.Unit {
		t.Error("untouched fields changed")
	}
}

func TestUpdateDelete_CrossOwnerIsNotFound(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := readingstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	owner := primitive.NewObjectID()
	created, err := store.Create(ctx, owner, readingstore.Params{Value: 10})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	intruder := primitive.NewObjectID()
	v := 99.0
	if _, err := store.Update(ctx, created.ID, intruder, readingstore.Update{Value: &v}); !errors.Is(err, mongo.ErrNoDocuments) {
		t.Errorf("cross-owner update err = %v, want mongo.ErrNoDocuments", err)
	}
	if err := store.Delete(ctx, created.ID, intruder); !errors.Is(err, mongo.ErrNoDocuments) {
		t.Errorf("cross-owner delete err = %v, want mongo.ErrNoDocuments", err)
	}
}
