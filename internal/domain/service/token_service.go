package service

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// Claims defines the custom claims carried by a session token.
type Claims struct {
	AccountID uuid.UUID
	jwt.RegisteredClaims
}

// TokenService defines the interface for issuing and validating session tokens.
// This abstracts the details of token creation from the use cases.
//
// Tokens are self-contained and not persisted server-side; a token is valid
// exactly until its embedded expiry, with no revocation path.
type TokenService interface {
	// Issue creates a new signed session token bound to the given account.
	Issue(accountID uuid.UUID) (string, error)

	// Validate checks the signature and expiry of a token string.
	// It fails with domainerrors.ErrTokenExpired when the token is past its
	// expiry and domainerrors.ErrTokenInvalid when the signature does not
	// verify or the structure is malformed.
	Validate(tokenString string) (*Claims, error)

	// AccessTokenDuration returns the configured session token lifetime.
	AccessTokenDuration() time.Duration
}
