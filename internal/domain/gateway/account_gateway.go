package gateway

import (
	"context"
	"errors"

	"vetadmin/internal/domain/entity"
)

// ErrNotFound marks a lookup whose target does not exist in the clinic API,
// regardless of which implementation served it.
var ErrNotFound = errors.New("not found")

// AccountGateway is the clinic API surface for credential records. Implemented
// by the REST client in live mode and by the in-memory store in demo mode.
type AccountGateway interface {
	// Create registers a new account and returns it with the server-assigned ID.
	Create(ctx context.Context, account *entity.Account) (*entity.Account, error)
	// Update changes the login name. It never touches the secret.
	Update(ctx context.Context, id int64, loginName string) error
	// ResetSecret replaces the secret through the dedicated reset endpoint.
	ResetSecret(ctx context.Context, id int64, secret string) error
	// Deactivate flips the account to Inactive (soft delete).
	Deactivate(ctx context.Context, id int64) error
	FindByID(ctx context.Context, id int64) (*entity.Account, error)
	// Login verifies credentials and returns the matching account.
	Login(ctx context.Context, loginName, secret string) (*entity.Account, error)
}
