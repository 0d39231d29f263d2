// Package auth issues and verifies the bearer tokens of the HTTP API.
package auth

import (
	"errors"
	"time"

	"github.com/dmitrijs2005/portalroom/internal/common"
	"github.com/golang-jwt/jwt/v5"
)

// Claims are the standard claims plus the username the token was issued to.
type Claims struct {
	jwt.RegisteredClaims
	Username string `json:"username"`
}

// GenerateToken signs an HS256 token for username valid for ttl from now.
func GenerateToken(username string, secretKey []byte, now time.Time, ttl time.Duration) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
		Username: username,
	})
	return token.SignedString(secretKey)
}

// ParseToken verifies tokenString and returns the username it carries.
// Expiry is checked against now, the clock the token was issued with.
func ParseToken(tokenString string, secretKey []byte, now func() time.Time) (string, error) {
	if now == nil {
		now = time.Now
	}

	claims := &Claims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (any, error) {
		return secretKey, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(now),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return "", common.ErrTokenExpired
		}
		return "", common.ErrInvalidToken
	}
	if !token.Valid || claims.Username == "" {
		return "", common.ErrInvalidToken
	}

	return claims.Username, nil
}
