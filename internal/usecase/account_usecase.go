// Package usecase contains the application-specific business rules.
// It orchestrates the domain layer to perform tasks.
package usecase

import (
	"context"

	"innkeeper/internal/domain/entity"

	"github.com/google/uuid"
)

// --- Input DTOs ---

// RegisterInput defines the data required to register a new account.
// The validate tags describe the input shape contract; all failures are
// accumulated into a single ValidationError, never just the first one.
// ConfirmPassword equality is enforced server-side: client-only validation
// is bypassable.
type RegisterInput struct {
	FirstName       string `json:"firstName" validate:"required"`
	LastName        string `json:"lastName" validate:"required"`
	Email           string `json:"email" validate:"required,email"`
	Password        string `json:"password" validate:"required,min=6"`
	ConfirmPassword string `json:"confirmPassword" validate:"required,eqfield=Password"`
}

// LoginInput defines the data required to log in to an existing account.
type LoginInput struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
}

// --- Output DTOs ---

// SessionOutput returns the issued session token together with the account it
// is bound to. The delivery layer decides whether the token travels as a
// cookie or a bearer value; the flows treat it as opaque.
type SessionOutput struct {
	Token   string
	Account *entity.Account
}

// AccountUsecase defines the interface for account-related business operations.
// This is the contract that the delivery layer (e.g., API handlers) will depend on.
type AccountUsecase interface {
	// Register creates a new account and issues a session token for it.
	Register(ctx context.Context, input *RegisterInput) (*SessionOutput, error)

	// Login verifies credentials for an existing account and issues a session token.
	Login(ctx context.Context, input *LoginInput) (*SessionOutput, error)

	// GetAccount loads the account behind an authenticated session. A token
	// can outlive its account, so holders of a valid token still get an
	// unauthorized answer when the account no longer exists.
	GetAccount(ctx context.Context, accountID uuid.UUID) (*entity.Account, error)
}
