package models

import "github.com/golang-jwt/jwt/v5"

// OperatorClaims is the JWT claim set accepted by the API.
// Tokens come from the identity provider configured by JWKS_URL.
type OperatorClaims struct {
	jwt.RegisteredClaims
	Email string   `json:"email"`
	Role  string   `json:"role"` // "authenticated" or "anon"
	Scope []string `json:"scope,omitempty"`
}

// GetUserID returns the operator id from the subject claim
func (c *OperatorClaims) GetUserID() string {
	return c.Subject
}
