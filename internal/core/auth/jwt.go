// Package auth signs the client-held session token. The value inside is an
// opaque server-side session id; all revocable state lives in the sessions
// table, the signature only stops token forgery and tampering.
package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

type sessionClaims struct {
	SID string `json:"sid"`
	jwt.RegisteredClaims
}

type Signer struct {
	Secret []byte
	Issuer string
}

func (s *Signer) Sign(sid string, expiresAt time.Time) (string, error) {
	claims := sessionClaims{
		SID: sid,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    s.Issuer,
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.Secret)
}

// Verify returns the embedded session id. Any failure (bad signature,
// expiry, wrong issuer) is reported the same way.
func (s *Signer) Verify(tokenStr string) (string, error) {
	t, err := jwt.ParseWithClaims(tokenStr, &sessionClaims{}, func(token *jwt.Token) (interface{}, error) {
		if token.Method != jwt.SigningMethodHS256 {
			return nil, fmt.Errorf("unexpected alg")
		}
		return s.Secret, nil
	}, jwt.WithIssuer(s.Issuer), jwt.WithLeeway(60*time.Second))
	if err != nil {
		return "", err
	}
	if c, ok := t.Claims.(*sessionClaims); ok && t.Valid && c.SID != "" {
		return c.SID, nil
	}
	return "", errors.New("invalid session token")
}
