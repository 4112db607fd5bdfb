package types

import (
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// TokenClaims represents the claims in a JWT token. The subject is the username.
type TokenClaims struct {
	jwt.RegisteredClaims
	UserID uuid.UUID `json:"id"`
	Email  string    `json:"email"`
	Roles  []string  `json:"roles"`
}

// Username returns the identity the token was issued to.
func (c *TokenClaims) Username() string {
	return c.Subject
}

// TokenResponse is returned by a successful login.
type TokenResponse struct {
	Token    string    `json:"token"`
	Type     string    `json:"type"`
	ID       uuid.UUID `json:"id"`
	Username string    `json:"username"`
	Email    string    `json:"email"`
	Roles    []string  `json:"roles"`
}
