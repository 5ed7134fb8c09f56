package auth

import (
	"context"

	"github.com/splitpot/splitpot/internal/models"
)

// Authenticator is the credential-verification seam. It keeps the service
// layer independent of the concrete auth method (password today, possibly
// OAuth or passkeys later).
type Authenticator interface {
	// Register creates a new user account with the given credential.
	Register(ctx context.Context, email, name, credential string) (*models.User, error)

	// Authenticate verifies the credential and returns the matching user.
	Authenticate(ctx context.Context, email, credential string) (*models.User, error)
}
