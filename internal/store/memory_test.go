package store

import (
	"context"
	"errors"
	"testing"

	"github.com/robalobadob/wordle/apps/engine-server/internal/game"
	"github.com/robalobadob/wordle/apps/engine-server/internal/session"
)

func TestMemoryStore(t *testing.T) {
	ctx := context.Background()
	e := game.NewEngine(
		game.DictionaryFunc(func(string) bool { return true }),
		game.WordSourceFunc(func() string { return "crane" }),
	)
	sess, err := session.New(e, "")
	if err != nil {
		t.Fatal(err)
	}

	st := NewMemoryStore()
	if _, err := st.Get(ctx, sess.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("Get before Save: err = %v", err)
	}
	if err := st.Save(ctx, sess); err != nil {
		t.Fatalf("Save: %v", err)
	}
	got, err := st.Get(ctx, sess.ID)
	if err != nil || got != sess {
		t.Fatalf("Get = %v, %v", got, err)
	}
	if err := st.Delete(ctx, sess.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, err := st.Get(ctx, sess.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("Get after Delete: err = %v", err)
	}
}
