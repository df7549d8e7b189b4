package users

import (
	"context"

	"github.com/dmitrijs2005/profilevault/internal/server/models"
)

// Repository persists up_users rows. Create is an optimistic insert: a
// concurrent insert of the same name surfaces as a unique-violation error,
// which the identity service resolves with a fallback read.
type Repository interface {
	GetByName(ctx context.Context, name string) (*models.User, error)
	Create(ctx context.Context, name string) (int64, error)
	TouchLastAccess(ctx context.Context, id int64) error
	Delete(ctx context.Context, id int64) error
}
