package auth

import "iotdash/internal/domain/models"

// JWTVerifier validates bearer tokens for the API middleware
type JWTVerifier interface {
	// VerifyToken validates a token string and returns its claims.
	// Invalid, expired or unsigned tokens yield domain.ErrUnauthorized.
	VerifyToken(tokenString string) (*models.OperatorClaims, error)

	Close() error
}
