package service

import (
	"errors"
	"time"

	"blogapi/internal/models"

	"github.com/golang-jwt/jwt/v5"
)

// ErrInvalidToken covers every token failure: malformed, expired, bad
// signature. Callers must not tell clients which one it was.
var ErrInvalidToken = errors.New("invalid token")

// TokenManager issues and validates the signed bearer tokens. The signing
// secret is fixed at construction and never changes afterwards.
type TokenManager struct {
	secret []byte
	ttl    time.Duration
}

func NewTokenManager(secret string, ttl time.Duration) *TokenManager {
	return &TokenManager{secret: []byte(secret), ttl: ttl}
}

// Issue creates a signed token asserting the given username as subject,
// expiring after the configured TTL.
func (m *TokenManager) Issue(username string) (string, time.Time, error) {
	now := time.Now()
	expirationTime := now.Add(m.ttl)
	claims := &models.Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   username,
			ExpiresAt: jwt.NewNumericDate(expirationTime),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString(m.secret)
	if err != nil {
		return "", time.Time{}, err
	}
	return tokenString, expirationTime, nil
}

// Validate checks signature and expiry and returns the subject. Any failure
// collapses to ErrInvalidToken.
func (m *TokenManager) Validate(tokenString string) (string, error) {
	claims := &models.Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		// Ensure the token's signing method is what we expect
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return m.secret, nil
	})
	if err != nil || !token.Valid || claims.Subject == "" {
		return "", ErrInvalidToken
	}
	return claims.Subject, nil
}
