package profiles

import (
	"context"

	"github.com/dmitrijs2005/profilevault/internal/server/models"
	"github.com/dmitrijs2005/profilevault/internal/server/perms"
)

// Repository persists up_profiles_data rows. Visibility checks are pushed
// down into the queries, so rows the requester may not see are never read.
//
// Store upserts atomically: on primary-key conflict it overwrites data and
// only the permission columns listed in explicit, leaving the rest of the
// stored permissions untouched.
type Repository interface {
	Store(ctx context.Context, v *models.ProfileVariable, explicit []perms.Attr) error
	GetData(ctx context.Context, requester, owner models.IdentityPair, profile, varName string) ([]byte, error)
	GetPerms(ctx context.Context, requester, owner models.IdentityPair, profile, varName string) (map[perms.Attr]perms.Visibility, error)
	GetAllForOwner(ctx context.Context, owner models.IdentityPair, profile string) (map[string][]byte, error)
	SetPerms(ctx context.Context, owner models.IdentityPair, profile, varName string, attrs map[perms.Attr]perms.Visibility) error
	DeleteVar(ctx context.Context, owner models.IdentityPair, profile, varName string) error
	DeleteOwnerVars(ctx context.Context, userID int64, groupID int64, groupScoped bool) error
	ListPublished(ctx context.Context, requester models.IdentityPair, profile string, groupIDs []int64) ([]models.PublishedVar, error)
}
