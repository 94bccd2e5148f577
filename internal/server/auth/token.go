// Package auth signs and verifies the session-state tokens that carry one
// session's State between interactions.
package auth

import (
	"time"

	"github.com/getcareer/portal/internal/common"
	"github.com/getcareer/portal/internal/server/session"
	"github.com/golang-jwt/jwt/v5"
)

// Claims bundles the registered claims with the session state payload.
type Claims struct {
	jwt.RegisteredClaims
	Session session.State `json:"session"`
}

// GenerateSessionToken signs the session state into an HS256 token valid for
// validityDuration.
func GenerateSessionToken(st session.State, secretKey []byte, validityDuration time.Duration) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(validityDuration)),
		},
		Session: st,
	})

	tokenString, err := token.SignedString(secretKey)
	if err != nil {
		return "", err
	}

	return tokenString, nil
}

// GetSessionFromToken verifies the token and returns the embedded session
// state. Expired, malformed, or foreign-key tokens yield
// common.ErrInvalidToken.
func GetSessionFromToken(tokenString string, secretKey []byte) (session.State, error) {
	claims := &Claims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		return secretKey, nil
	})
	if err != nil {
		return session.State{}, common.ErrInvalidToken
	}

	if !token.Valid {
		return session.State{}, common.ErrInvalidToken
	}

	return claims.Session, nil
}
