package consumption_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/muba123321/WATTWISE/internal/app/features/consumption"
	readingstore "github.com/muba123321/WATTWISE/internal/app/store/readings"
	"github.com/muba123321/WATTWISE/internal/app/system/apiauth"
	"github.com/muba123321/WATTWISE/internal/domain/models"
	"github.com/muba123321/WATTWISE/internal/testutil"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

func setup(t *testing.T) (*consumption.Handler, *testutil.Fixtures, *models.User) {
	t.Helper()
	db := testutil.SetupTestDB(t)
	handler := consumption.NewHandler(readingstore.New(db), zap.NewNop())
	user := &models.User{ID: primitive.NewObjectID(), FirebaseUID: "uid-1", Email: "c@example.com"}
	return handler, testutil.NewFixtures(t, db), user
}

type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
}

func decodeData(t *testing.T, rec *httptest.ResponseRecorder, dst any) {
	t.Helper()
	var env envelope
	if err := json.Unmarshal(rec.Body.Bytes(), &env); err != nil {
		t.Fatalf("decode envelope: %v", err)
	}
	if !env.Success {
		t.Fatalf("success = false, body: %s", rec.Body.String())
	}
	if err := json.Unmarshal(env.Data, dst); err != nil {
		t.Fatalf("decode data: %v", err)
	}
}

func TestAll_AscendingSeries(t *testing.T) {
	handler, fixtures, user := setup(t)

	ctx, cancel := testutil.TestContext()
	defer cancel()
	base := time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC)
	for _, offset := range []int{3, 1, 2} {
		fixtures.CreateReading(ctx, user.ID, float64(offset), base.AddDate(0, 0, offset))
	}

	req := httptest.NewRequest("GET", "/api/consumption", nil)
	req = apiauth.WithTestUser(req, user)
	rec := httptest.NewRecorder()

	handler.All(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	var list []models.MeterReading
	decodeData(t, rec, &list)
	if len(list) != 3 {
		t.Fatalf("length = %d, want 3", len(list))
	}
	for i := 1; i < len(list); i++ {
		if list[i].Date.Before(list[i-1].Date) {
			t.Errorf("series not ascending at %d", i)
		}
	}
}

func TestCurrentPeriod_NullsWhenEmpty(t *testing.T) {
	handler, _, user := setup(t)

	req := httptest.NewRequest("GET", "/api/consumption/current", nil)
	req = apiauth.WithTestUser(req, user)
	rec := httptest.NewRecorder()

	handler.CurrentPeriod(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	var period struct {
		Start *models.MeterReading `json:"start"`
		End   *models.MeterReading `json:"end"`
	}
	decodeData(t, rec, &period)
	if period.Start != nil || period.End != nil {
		t.Errorf("expected null ends, got %+v", period)
	}
}

func TestCurrentPeriod_MinAndMax(t *testing.T) {
	handler, fixtures, user := setup(t)

	ctx, cancel := testutil.TestContext()
	defer cancel()
	base := time.Date(2026, 4, 1, 0, 0, 0, 0, time.UTC)
	earliest := fixtures.CreateReading(ctx, user.ID, 1, base)
	latest := fixtures.CreateReading(ctx, user.ID, 2, base.AddDate(0, 1, 0))

	req := httptest.NewRequest("GET", "/api/consumption/current", nil)
	req = apiauth.WithTestUser(req, user)
	rec := httptest.NewRecorder()

	handler.CurrentPeriod(rec, req)

	var period struct {
		Start *models.MeterReading `json:"start"`
		End   *models.MeterReading `json:"end"`
	}
	decodeData(t, rec, &period)
	if period.Start == nil || period.End == nil {
		t.Fatal("expected both ends")
	}
	if period.Start.ID != earliest.ID || period.End.ID != latest.ID {
		t.Errorf("period = [%v, %v]", period.Start.Date, period.End.Date)
	}
}

func TestHourly_CappedAtWindow(t *testing.T) {
	handler, fixtures, user := setup(t)

	ctx, cancel := testutil.TestContext()
	defer cancel()
	base := time.Date(2026, 7, 1, 0, 0, 0, 0, time.UTC)
	for i := 0; i < 30; i++ {
		fixtures.CreateReading(ctx, user.ID, float64(i), base.Add(time.Duration(i)*time.Hour))
	}

	req := httptest.NewRequest("GET", "/api/consumption/hourly", nil)
	req = apiauth.WithTestUser(req, user)
	rec := httptest.NewRecorder()

	handler.Hourly(rec, req)

	var list []models.MeterReading
	decodeData(t, rec, &list)
	if len(list) != 24 {
		t.Fatalf("length = %d, want 24", len(list))
	}
	for i := 1; i < len(list); i++ {
		if list[i].Date.After(list[i-1].Date) {
			t.Errorf("hourly series not newest-first at %d", i)
		}
	}
}
