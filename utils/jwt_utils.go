package utils

import (
	"errors"
	"os"
	"time"

	"github.com/golang-jwt/jwt/v4"
)

// ErrSecretMissing means JWT_SECRET is not configured. Validation fails
// closed: without a secret no token is ever accepted.
var ErrSecretMissing = errors.New("JWT_SECRET is not set")

// secretKey reads the signing secret from the environment on every call, so
// the value godotenv loads in main is the one actually used. An empty secret
// is an error, never an empty key.
func secretKey() ([]byte, error) {
	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		return nil, ErrSecretMissing
	}
	return []byte(secret), nil
}

// Claims carried by the tokens the auth service issues. This service only
// validates them.
type Claims struct {
	UserID   string `json:"userId"`
	Username string `json:"username"`
	Role     string `json:"role"`
	jwt.RegisteredClaims
}

// GenerateToken exists for integration tests and local tooling; production
// tokens come from the auth service.
func GenerateToken(userID, username, role string) (string, error) {
	key, err := secretKey()
	if err != nil {
		return "", err
	}

	claims := Claims{
		UserID:   userID,
		Username: username,
		Role:     role,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(24 * time.Hour)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(key)
}

// ValidateToken parses and verifies a token and returns its claims.
func ValidateToken(tokenString string) (*Claims, error) {
	key, err := secretKey()
	if err != nil {
		return nil, err
	}

	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return key, nil
	})
	if err != nil {
		return nil, err
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, errors.New("invalid token")
	}

	return claims, nil
}
