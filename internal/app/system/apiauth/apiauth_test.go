package apiauth_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/muba123321/WATTWISE/internal/app/system/apiauth"
	"github.com/muba123321/WATTWISE/internal/app/system/identity"
	"github.com/muba123321/WATTWISE/internal/domain/models"
	"github.com/muba123321/WATTWISE/internal/testutil"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// stubDirectory maps external ids to users without a database.
type stubDirectory struct {
	users map[string]*models.User
}

func (d *stubDirectory) GetByExternalID(ctx context.Context, externalID string) (*models.User, error) {
	if u, ok := d.users[externalID]; ok {
		return u, nil
	}
	return nil, mongo.ErrNoDocuments
}

func newGate() (*apiauth.Gate, *models.User) {
	known := &models.User{ID: primitive.NewObjectID(), FirebaseUID: "uid-known", Email: "k@example.com"}
	verifier := &testutil.StubVerifier{Claims: map[string]*identity.Claim{
		"known-token":    {ExternalID: "uid-known", Email: "k@example.com"},
		"stranger-token": {ExternalID: "uid-stranger", Email: "s@example.com"},
	}}
	dir := &stubDirectory{users: map[string]*models.User{"uid-known": known}}
	return apiauth.New(verifier, dir, zap.NewNop()), known
}

func errMessage(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	var body struct {
		Success    bool   `json:"success"`
		StatusCode int    `json:"statusCode"`
		Message    string `json:"message"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode error body: %v", err)
	}
	if body.Success {
		t.Error("error body must have success=false")
	}
	return body.Message
}

func TestRequireIdentity_MissingToken(t *testing.T) {
	gate, _ := newGate()
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("handler must not run")
	})

	rec := httptest.NewRecorder()
	gate.RequireIdentity(next).ServeHTTP(rec, httptest.NewRequest("GET", "/", nil))

	if rec.Code != http.StatusForbidden {
		t.Errorf("status = %d, want 403", rec.Code)
	}
	if msg := errMessage(t, rec); msg != "Authorization token missing" {
		t.Errorf("message = %q", msg)
	}
}

func TestRequireIdentity_RejectedToken(t *testing.T) {
	gate, _ := newGate()
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("handler must not run")
	})

	req := httptest.NewRequest("GET", "/", nil)
	req.Header.Set("Authorization", "Bearer garbage")
	rec := httptest.NewRecorder()
	gate.RequireIdentity(next).ServeHTTP(rec, req)

	if rec.Code != http.StatusForbidden {
		t.Errorf("status = %d, want 403", rec.Code)
	}
	if msg := errMessage(t, rec); msg != "Invalid or expired authorization token" {
		t.Errorf("message = %q", msg)
	}
}

func TestRequireIdentity_AttachesClaim(t *testing.T) {
	gate, _ := newGate()
	var got *identity.Claim
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got, _ = apiauth.ClaimFrom(r)
	})

	req := httptest.NewRequest("GET", "/", nil)
	req.Header.Set("Authorization", "Bearer known-token")
	rec := httptest.NewRecorder()
	gate.RequireIdentity(next).ServeHTTP(rec, req)

	if got == nil || got.ExternalID != "uid-known" {
		t.Errorf("claim = %+v", got)
	}
}

func TestRequireUser_UnregisteredIdentity(t *testing.T) {
	gate, _ := newGate()
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("handler must not run")
	})

	// Valid token, but no directory entry yet.
	req := httptest.NewRequest("GET", "/", nil)
	req.Header.Set("Authorization", "Bearer stranger-token")
	rec := httptest.NewRecorder()
	gate.RequireUser(next).ServeHTTP(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", rec.Code)
	}
	if msg := errMessage(t, rec); msg != "User not found" {
		t.Errorf("message = %q", msg)
	}
}

func TestRequireUser_AttachesUser(t *testing.T) {
	gate, known := newGate()
	var got *models.User
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got, _ = apiauth.CurrentUser(r)
	})

	req := httptest.NewRequest("GET", "/", nil)
	req.Header.Set("Authorization", "Bearer known-token")
	rec := httptest.NewRecorder()
	gate.RequireUser(next).ServeHTTP(rec, req)

	if got == nil || got.ID != known.ID {
		t.Errorf("user = %+v", got)
	}
}

func TestBearerToken(t *testing.T) {
	cases := []struct {
		header string
		token  string
		ok     bool
	}{
		{"Bearer abc", "abc", true},
		{"Bearer ", "", false},
		{"Basic abc", "", false},
		{"", "", false},
	}
	for _, tc := range cases {
		req := httptest.NewRequest("GET", "/", nil)
		if tc.header != "" {
			req.Header.Set("Authorization", tc.header)
		}
		token, ok := apiauth.BearerToken(req)
		if token != tc.token || ok != tc.ok {
			t.Errorf("header %q: got (%q, %v), want (%q, %v)", tc.header, token, ok, tc.token, tc.ok)
		}
	}
}
