package auth

import (
	"context"

	"github.com/mmynk/billsplit/internal/models"
)

// Authenticator creates accounts and checks credentials for the AuthService.
// It reports failures with ErrEmailExists, ErrInvalidEmail, ErrWeakPassword
// or ErrInvalidCredentials so the service can pick a status code.
type Authenticator interface {
	// Register stores a new user. The email is normalised before storing.
	Register(ctx context.Context, email, displayName, credential string) (*models.User, error)
	// Authenticate returns the user owning email if credential matches.
	Authenticate(ctx context.Context, email, credential string) (*models.User, error)
}
