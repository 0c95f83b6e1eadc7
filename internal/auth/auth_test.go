package auth

import (
	"errors"
	"testing"
	"time"
)

func TestSignAndParse(t *testing.T) {
	s := NewSigner("secret", time.Hour)
	tok, exp, err := s.Sign("u1", "alice")
	if err != nil {
		t.Fatalf("Sign: %v", err)
	}
	if time.Until(exp) <= 0 {
		t.Fatalf("expiry in the past: %v", exp)
	}
	c, err := s.Parse(tok)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if c.ID != "u1" || c.Username != "alice" {
		t.Fatalf("claims = %+v", c)
	}
}

func TestParseRejects(t *testing.T) {
	s := NewSigner("secret", time.Hour)
	tok, _, _ := s.Sign("u1", "alice")

	other := NewSigner("other", time.Hour)
	if _, err := other.Parse(tok); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("wrong secret err = %v", err)
	}
	if _, err := s.Parse("garbage"); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("garbage err = %v", err)
	}

	expired := NewSigner("secret", time.Hour)
	expired.now = func() time.Time { return time.Now().Add(-2 * time.Hour) }
	old, _, _ := expired.Sign("u1", "alice")
	if _, err := s.Parse(old); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("expired err = %v", err)
	}

	anon, _, _ := s.Sign("", "")
	if _, err := s.Parse(anon); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("empty claims err = %v", err)
	}
}
