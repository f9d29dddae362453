package utils

import (
	"errors"
	"fmt"
	"time"

	"cinema-api/internal/data/entity"

	"github.com/golang-jwt/jwt/v5"
)

// TokenClaims is the verified content of an access token.
type TokenClaims struct {
	Username string
	Role     entity.UserRole
}

// TokenManager signs and verifies HS256 access tokens. The signing key and
// TTL are injected at construction so tests can run with distinct secrets.
type TokenManager struct {
	secret []byte
	ttl    time.Duration
}

func NewTokenManager(cfg JWTConfig) *TokenManager {
	return &TokenManager{
		secret: []byte(cfg.Secret),
		ttl:    time.Duration(cfg.ExpiryMinutes) * time.Minute,
	}
}

// Issue builds a signed token for the user and returns it with its expiry.
func (tm *TokenManager) Issue(user *entity.User) (string, time.Time, error) {
	now := time.Now().UTC()
	exp := now.Add(tm.ttl)

	claims := jwt.MapClaims{
		"sub":  user.Username,
		"role": string(user.Role),
		"exp":  exp.Unix(),
		"iat":  now.Unix(),
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(tm.secret)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("sign token: %w", err)
	}

	return signed, exp, nil
}

// Verify parses and validates a token string. It fails closed: malformed
// tokens, bad signatures, missing subjects and expired timestamps all
// return an error.
func (tm *TokenManager) Verify(raw string) (*TokenClaims, error) {
	tok, err := jwt.Parse(raw, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return tm.secret, nil
	})
	if err != nil {
		return nil, fmt.Errorf("parse token: %w", err)
	}
	if !tok.Valid {
		return nil, errors.New("invalid token")
	}

	claims, ok := tok.Claims.(jwt.MapClaims)
	if !ok {
		return nil, errors.New("invalid token claims")
	}

	sub, _ := claims["sub"].(string)
	if sub == "" {
		return nil, errors.New("token missing subject")
	}
	role, _ := claims["role"].(string)

	return &TokenClaims{
		Username: sub,
		Role:     entity.UserRole(role),
	}, nil
}
