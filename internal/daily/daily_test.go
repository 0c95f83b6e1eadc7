package daily

import (
	"context"
	"testing"
	"time"

	"github.com/robalobadob/wordle/apps/engine-server/assets"
	"github.com/robalobadob/wordle/apps/engine-server/internal/database"
)

func TestWordIndexDeterministic(t *testing.T) {
	day := time.Date(2024, 3, 9, 23, 59, 0, 0, time.UTC)
	later := time.Date(2024, 3, 9, 1, 0, 0, 0, time.UTC)

	a := WordIndex(day, "salt", 100)
	if a != WordIndex(later, "salt", 100) {
		t.Fatalf("same date gave different indices")
	}
	if a < 0 || a >= 100 {
		t.Fatalf("index %d out of range", a)
	}
	if WordIndex(day, "salt", 0) != 0 {
		t.Fatalf("empty list should give 0")
	}
	if DateKey(day) != "2024-03-09" {
		t.Fatalf("DateKey = %q", DateKey(day))
	}
}

func TestFor(t *testing.T) {
	answers := []string{"crane", "house", "vivid"}
	day := time.Date(2024, 3, 9, 12, 0, 0, 0, time.UTC)
	p := For(day, "salt", answers)
	if p.Date != "2024-03-09" || p.Answer != answers[p.WordIndex] {
		t.Fatalf("For = %+v", p)
	}
	if empty := For(day, "salt", nil); empty.Answer != "" {
		t.Fatalf("For(nil) = %+v", empty)
	}
}

func TestStore(t *testing.T) {
	ctx := context.Background()
	db, err := database.Open(":memory:")
	if err != nil {
		t.Fatal(err)
	}
	defer db.Close()
	if err := database.Migrate(ctx, db, assets.Migrations()); err != nil {
		t.Fatal(err)
	}
	s := NewStore(db)

	played, err := s.AlreadyPlayed(ctx, "u1", "2024-03-09")
	if err != nil || played {
		t.Fatalf("AlreadyPlayed = %v, %v", played, err)
	}
	for _, r := range []Result{
		{UserID: "u1", Date: "2024-03-09", Guesses: 4, ElapsedMs: 9000},
		{UserID: "u2", Date: "2024-03-09", Guesses: 3, ElapsedMs: 5000},
		{UserID: "u1", Date: "2024-03-09", Guesses: 1, ElapsedMs: 1}, // ignored
		{UserID: "u3", Date: "2024-03-10", Guesses: 2, ElapsedMs: 100},
	} {
		if err := s.InsertResult(ctx, r); err != nil {
			t.Fatalf("InsertResult: %v", err)
		}
	}
	if played, _ := s.AlreadyPlayed(ctx, "u1", "2024-03-09"); !played {
		t.Fatal("expected u1 to have played")
	}

	top, err := s.Leaderboard(ctx, "2024-03-09", 0)
	if err != nil {
		t.Fatalf("Leaderboard: %v", err)
	}
	if len(top) != 2 || top[0].UserID != "u2" || top[1].UserID != "u1" || top[1].Guesses != 4 {
		t.Fatalf("Leaderboard = %+v", top)
	}
}
