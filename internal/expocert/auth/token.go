// Package auth resolves the authenticated caller identity from HMAC-signed
// JWT tokens. Every workflow operation requires a resolved CallerID; an
// invocation whose token cannot be validated never reaches the services.
package auth

import (
	"encoding/hex"
	"fmt"
	"time"

	"github.com/gartstein/expocert/internal/expocert/models"
	"github.com/golang-jwt/jwt/v5"
)

// GenerateToken signs a token whose subject is the hex encoding of the
// caller's raw identity bytes.
func GenerateToken(caller models.CallerID, secret string) (string, error) {
	claims := jwt.MapClaims{
		"sub": hex.EncodeToString(caller),
		"exp": time.Now().Add(time.Hour * 24).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

// Authenticator validates tokens against a shared HMAC secret.
type Authenticator struct {
	secret string
}

// NewAuthenticator creates an Authenticator with the given secret.
func NewAuthenticator(secret string) *Authenticator {
	return &Authenticator{secret: secret}
}

// Authenticate validates the token and returns the caller identity from its
// subject claim.
func (a *Authenticator) Authenticate(tokenString string) (models.CallerID, error) {
	claims, err := validateToken(tokenString, a.secret)
	if err != nil {
		return nil, err
	}

	subject, err := claims.GetSubject()
	if err != nil || subject == "" {
		return nil, fmt.Errorf("token has no subject")
	}
	caller, err := hex.DecodeString(subject)
	if err != nil {
		return nil, fmt.Errorf("invalid subject encoding: %w", err)
	}
	return caller, nil
}

// validateToken checks the token signature and returns parsed claims if valid.
func validateToken(tokenString, secret string) (jwt.MapClaims, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(secret), nil
	})

	if err != nil {
		return nil, fmt.Errorf("invalid token: %w", err)
	}

	if claims, ok := token.Claims.(jwt.MapClaims); ok && token.Valid {
		return claims, nil
	}

	return nil, fmt.Errorf("invalid token claims")
}
