package utils

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt"
)

// ErrNoExpiry is returned when a token carries no usable "exp" claim.
var ErrNoExpiry = errors.New("token does not contain an exp claim")

// tokenClaims decodes the claims of an upstream access token without verifying its signature;
// the dashboard does not hold the upstream signing key.
func tokenClaims(tokenString string) (jwt.MapClaims, error) {
	claims := jwt.MapClaims{}
	parser := &jwt.Parser{}
	if _, _, err := parser.ParseUnverified(tokenString, claims); err != nil {
		return nil, err
	}
	return claims, nil
}

// TokenExpiry returns the expiry time carried by an upstream access token.
func TokenExpiry(tokenString string) (time.Time, error) {
	claims, err := tokenClaims(tokenString)
	if err != nil {
		return time.Time{}, err
	}
	switch exp := claims["exp"].(type) {
	case float64:
		return time.Unix(int64(exp), 0), nil
	case int64:
		return time.Unix(exp, 0), nil
	default:
		return time.Time{}, ErrNoExpiry
	}
}

// TokenSubject extracts the "sub" claim, which the upstream sets to the user's email.
func TokenSubject(tokenString string) (string, error) {
	claims, err := tokenClaims(tokenString)
	if err != nil {
		return "", err
	}
	sub, ok := claims["sub"].(string)
	if !ok || sub == "" {
		return "", errors.New("token does not contain a valid 'sub' claim")
	}
	return sub, nil
}

// SessionLifetime picks the session expiry: the token's own expiry when it carries one, even if
// that is already past, otherwise now plus fallback.
func SessionLifetime(tokenString string, now time.Time, fallback time.Duration) time.Time {
	exp, err := TokenExpiry(tokenString)
	if err != nil {
		return now.Add(fallback)
	}
	return exp
}
