package groups

import (
	"context"

	"github.com/dmitrijs2005/profilevault/internal/server/models"
)

// Repository persists up_groups rows. Same optimistic-insert contract as the
// users repository.
type Repository interface {
	GetByName(ctx context.Context, name string) (*models.Group, error)
	Create(ctx context.Context, name string) (int64, error)
	TouchLastAccess(ctx context.Context, id int64) error
}
