// Package auth signs and verifies the HS256 session tokens handed to players.
package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// ErrInvalidToken is returned for tokens that fail verification or lack claims.
var ErrInvalidToken = errors.New("invalid token")

// Claims identifies the user a token was issued to.
type Claims struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	jwt.RegisteredClaims
}

// Signer issues and parses tokens with a shared secret.
type Signer struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

// NewSigner returns a Signer whose tokens expire after ttl.
func NewSigner(secret string, ttl time.Duration) *Signer {
	return &Signer{secret: []byte(secret), ttl: ttl, now: time.Now}
}

// Sign creates a token carrying id and username.
func (s *Signer) Sign(id, username string) (string, time.Time, error) {
	now := s.now()
	exp := now.Add(s.ttl)
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		ID:       id,
		Username: username,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(exp),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	})
	ss, err := t.SignedString(s.secret)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("sign token: %w", err)
	}
	return ss, exp, nil
}

// Parse verifies a token and returns its claims.
func (s *Signer) Parse(token string) (*Claims, error) {
	claims := &Claims{}
	t, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		return s.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil || !t.Valid {
		return nil, ErrInvalidToken
	}
	if claims.ID == "" || claims.Username == "" {
		return nil, ErrInvalidToken
	}
	return claims, nil
}
