package utils

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Session token lifetimes. The access token authorizes individual requests;
// the refresh token only mints new access tokens via /api/auth/refresh.
const (
	AccessTokenTTL  = 10 * time.Minute
	RefreshTokenTTL = 7 * 24 * time.Hour
)

var ErrInvalidToken = errors.New("invalid token")

// SessionClaims carries the authenticated user's id as the `id` claim, which
// is the whole session payload.
type SessionClaims struct {
	UserID string `json:"id"`
	jwt.RegisteredClaims
}

func GenerateSessionToken(userID string, secret string, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := SessionClaims{
		UserID: userID,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

// ParseSessionToken verifies signature and expiry and returns the user id.
// Every failure mode (malformed, expired, bad signature, empty id claim)
// comes back as ErrInvalidToken so callers treat them uniformly as
// unauthorized.
func ParseSessionToken(tokenString string, secret string) (string, error) {
	claims := &SessionClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		return []byte(secret), nil
	})
	if err != nil || !token.Valid {
		return "", ErrInvalidToken
	}
	if claims.UserID == "" {
		return "", ErrInvalidToken
	}
	return claims.UserID, nil
}
