// Package auth provides token issuing, parsing and password hashing
// helpers shared by the handlers and the middleware.
package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Token is a signed JWT together with its expiry.
type Token struct {
	Value string    `json:"token"`
	Exp   time.Time `json:"expires"`
}

// ErrInvalidToken is returned when a token fails signature or expiry
// checks, or does not carry the expected claims.
var ErrInvalidToken = errors.New("invalid or expired token")

// NewAccessToken builds and signs an HS256 access token for a user. The
// claims carry the user id as subject, the role ids resolved at issue
// time, expiration and issued-at. TTL is expressed in minutes.
func NewAccessToken(secret string, userID uint64, roleIDs []uint64, ttlMin int) (Token, error) {
	exp := time.Now().UTC().Add(time.Duration(ttlMin) * time.Minute)
	claims := jwt.MapClaims{
		"sub":   userID,
		"roles": roleIDs,
		"exp":   exp.Unix(),
		"iat":   time.Now().UTC().Unix(),
	}
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := t.SignedString([]byte(secret))
	if err != nil {
		return Token{}, err
	}
	return Token{Value: signed, Exp: exp}, nil
}

// NewRefreshToken signs a long-lived HS256 token with the refresh
// secret. Refresh tokens carry only the subject and are blacklisted on
// rotation or logout. TTL is expressed in days.
func NewRefreshToken(secret string, userID uint64, ttlDays int) (Token, error) {
	exp := time.Now().UTC().Add(time.Duration(ttlDays) * 24 * time.Hour)
	claims := jwt.MapClaims{
		"sub": userID,
		"exp": exp.Unix(),
		"iat": time.Now().UTC().Unix(),
	}
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := t.SignedString([]byte(secret))
	if err != nil {
		return Token{}, err
	}
	return Token{Value: signed, Exp: exp}, nil
}

// Parse verifies an HS256 token against the given secret and returns the
// subject user id and the expiry. Tokens signed with any other method
// are rejected.
func Parse(secret, raw string) (userID uint64, exp time.Time, err error) {
	tok, err := jwt.Parse(raw, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return []byte(secret), nil
	})
	if err != nil || !tok.Valid {
		return 0, time.Time{}, ErrInvalidToken
	}
	claims, ok := tok.Claims.(jwt.MapClaims)
	if !ok {
		return 0, time.Time{}, ErrInvalidToken
	}
	sub, ok := claims["sub"].(float64)
	if !ok {
		return 0, time.Time{}, ErrInvalidToken
	}
	expClaim, err := claims.GetExpirationTime()
	if err != nil || expClaim == nil {
		return 0, time.Time{}, ErrInvalidToken
	}
	return uint64(sub), expClaim.Time, nil
}
