// Package entity contains the core business objects of the project,
// each representing a unique, identifiable concept within the domain.
package entity

import (
	"time"

	"github.com/google/uuid"
)

// Account is the core entity in the system, representing a registered person.
// Email is the login identifier and is stored in normalized (lower-cased,
// trimmed) form. PasswordHash holds the bcrypt verifier; the plaintext
// password never leaves the registration/login flow.
type Account struct {
	ID           uuid.UUID // The unique identifier for the account.
	Email        string    // Normalized login email, unique across accounts.
	FirstName    string    // The account holder's first name.
	LastName     string    // The account holder's last name.
	PasswordHash string    // The bcrypt verifier of the account's password.
	CreatedAt    time.Time // Timestamp of when this account was created.
	UpdatedAt    time.Time // Timestamp of the last modification to this account.
}
