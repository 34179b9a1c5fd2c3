package auth

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// AuthService signs and verifies session tokens with a process-wide HMAC secret.
type AuthService struct {
	secret []byte
}

// SessionClaims carries the identity embedded in a session token.
type SessionClaims struct {
	UserID   uint   `json:"user_id"`
	Username string `json:"username"`
	jwt.RegisteredClaims
}

// NewAuthService constructs the service from the injected signing secret.
func NewAuthService(secret string) (*AuthService, error) {
	if strings.TrimSpace(secret) == "" {
		return nil, errors.New("signing secret is required")
	}
	return &AuthService{secret: []byte(secret)}, nil
}

// IssueToken signs a session token binding the user's id and username.
// Sessions carry no expiry: they last until the client's cookie is cleared.
func (s *AuthService) IssueToken(userID uint, username string) (string, error) {
	claims := SessionClaims{
		UserID:   userID,
		Username: username,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:  strconv.FormatUint(uint64(userID), 10),
			IssuedAt: jwt.NewNumericDate(time.Now()),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

// ValidateToken parses and verifies a session token, returning its claims.
func (s *AuthService) ValidateToken(tokenString string) (*SessionClaims, error) {
	if tokenString == "" {
		return nil, errors.New("token string is empty")
	}

	token, err := jwt.ParseWithClaims(tokenString, &SessionClaims{}, func(token *jwt.Token) (interface{}, error) {
		if token.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, fmt.Errorf("unexpected signing method: %s", token.Method.Alg())
		}
		return s.secret, nil
	})
	if err != nil {
		return nil, fmt.Errorf("parse token: %w", err)
	}

	claims, ok := token.Claims.(*SessionClaims)
	if !ok || !token.Valid {
		return nil, errors.New("invalid token claims")
	}

	return claims, nil
}
