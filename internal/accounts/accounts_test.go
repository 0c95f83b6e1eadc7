package accounts

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"golang.org/x/crypto/bcrypt"

	"github.com/robalobadob/wordle/apps/engine-server/assets"
	"github.com/robalobadob/wordle/apps/engine-server/internal/database"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	db, err := database.Open(":memory:")
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { _ = db.Close() })
	if err := database.Migrate(context.Background(), db, assets.Migrations()); err != nil {
		t.Fatal(err)
	}
	return testStore(db)
}

func testStore(db *sql.DB) *Store {
	s := NewStore(db)
	s.cost = bcrypt.MinCost
	return s
}

func TestCreateAndAuthenticate(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	u, err := s.Create(ctx, "  alice_1 ", "correct horse")
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if u.Username != "alice_1" || len(u.ID) != 22 {
		t.Fatalf("unexpected user: %+v", u)
	}

	got, err := s.Authenticate(ctx, "ALICE_1", "correct horse")
	if err != nil || got.ID != u.ID {
		t.Fatalf("Authenticate = %+v, %v", got, err)
	}
	if _, err := s.Authenticate(ctx, "alice_1", "wrong password"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("wrong password err = %v", err)
	}
	if _, err := s.Authenticate(ctx, "nobody", "correct horse"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("unknown user err = %v", err)
	}

	byID, err := s.ByID(ctx, u.ID)
	if err != nil || byID.Username != "alice_1" || !byID.CreatedAt.Equal(u.CreatedAt) {
		t.Fatalf("ByID = %+v, %v", byID, err)
	}
	if _, err := s.ByID(ctx, "missing"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("ByID(missing) err = %v", err)
	}
}

func TestCreateRejects(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)
	if _, err := s.Create(ctx, "bob", "password1"); err != nil {
		t.Fatal(err)
	}
	if _, err := s.Create(ctx, "BOB", "password1"); !errors.Is(err, ErrUsernameTaken) {
		t.Fatalf("duplicate err = %v", err)
	}

	for _, tc := range []struct{ user, pw string }{
		{"ab", "password1"},
		{"has space", "password1"},
		{"carol", "short"},
	} {
		var verr *ValidationError
		if _, err := s.Create(ctx, tc.user, tc.pw); !errors.As(err, &verr) {
			t.Fatalf("Create(%q, %q) err = %v, want ValidationError", tc.user, tc.pw, err)
		}
	}
}
