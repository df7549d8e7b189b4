// This file implements ProfileService: authorized storage and retrieval of
// profile variables. Writes are trusted to come from the legitimate owner;
// visibility is enforced on reads and listings only, inside the storage
// queries.
package services

import (
	"context"
	"database/sql"

	"github.com/dmitrijs2005/profilevault/internal/dbx"
	"github.com/dmitrijs2005/profilevault/internal/server/models"
	"github.com/dmitrijs2005/profilevault/internal/server/perms"
	"github.com/dmitrijs2005/profilevault/internal/server/repositories/repomanager"
)

type ProfileService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	identity    *IdentityService
}

func NewProfileService(db *sql.DB, m repomanager.RepositoryManager, identity *IdentityService) *ProfileService {
	return &ProfileService{db: db, repomanager: m, identity: identity}
}

// StoreVar upserts a variable owned by (userName, userGroup). On first store
// both permission attributes get values (defaulting to USER); on overwrite
// only data and the permissions the caller actually supplied are changed.
func (s *ProfileService) StoreVar(ctx context.Context, userName, userGroup, profile, varName string, data []byte, rawPerms map[string]string) error {
	owner, err := s.identity.ResolvePair(ctx, userName, userGroup, true)
	if err != nil {
		return err
	}

	full := perms.Normalize(rawPerms, true)
	supplied := perms.Normalize(rawPerms, false)
	explicit := make([]perms.Attr, 0, len(supplied))
	for _, attr := range perms.Attrs {
		if _, ok := supplied[attr]; ok {
			explicit = append(explicit, attr)
		}
	}

	v := &models.ProfileVariable{
		Owner:         owner,
		Profile:       profile,
		VarName:       varName,
		Data:          data,
		ReadAccess:    full[perms.AttrReadAccess],
		PublishAccess: full[perms.AttrPublishAccess],
	}
	return s.repomanager.Profiles(s.db).Store(ctx, v, explicit)
}

// RetrieveVar returns the data of a variable owned by (ownerName, ownerGroup)
// if it is read-eligible for the requester. An absent variable and one the
// requester may not see both fail with common.ErrorNotFound.
func (s *ProfileService) RetrieveVar(ctx context.Context, userName, userGroup, ownerName, ownerGroup, profile, varName string) ([]byte, error) {
	requester, err := s.identity.ResolvePair(ctx, userName, userGroup, true)
	if err != nil {
		return nil, err
	}
	owner, err := s.identity.ResolvePair(ctx, ownerName, ownerGroup, true)
	if err != nil {
		return nil, err
	}
	return s.repomanager.Profiles(s.db).GetData(ctx, requester, owner, profile, varName)
}

// RetrieveAllUserVars returns every variable the owner has in the profile,
// keyed by variable name. No visibility check beyond ownership.
func (s *ProfileService) RetrieveAllUserVars(ctx context.Context, userName, userGroup, profile string) (map[string][]byte, error) {
	owner, err := s.identity.ResolvePair(ctx, userName, userGroup, true)
	if err != nil {
		return nil, err
	}
	return s.repomanager.Profiles(s.db).GetAllForOwner(ctx, owner, profile)
}

// RetrieveVarPerms returns the stored permission attributes of a variable,
// guarded by the same read predicate as RetrieveVar. The owner pair must
// already exist.
func (s *ProfileService) RetrieveVarPerms(ctx context.Context, userName, userGroup, ownerName, ownerGroup, profile, varName string) (map[perms.Attr]perms.Visibility, error) {
	requester, err := s.identity.ResolvePair(ctx, userName, userGroup, true)
	if err != nil {
		return nil, err
	}
	owner, err := s.identity.ResolvePair(ctx, ownerName, ownerGroup, false)
	if err != nil {
		return nil, err
	}
	return s.repomanager.Profiles(s.db).GetPerms(ctx, requester, owner, profile, varName)
}

// SetVarPerms updates only the permission attributes present in rawPerms;
// malformed levels are dropped rather than defaulted, so an update never
// resets an attribute the caller did not name.
func (s *ProfileService) SetVarPerms(ctx context.Context, userName, userGroup, profile, varName string, rawPerms map[string]string) error {
	owner, err := s.identity.ResolvePair(ctx, userName, userGroup, true)
	if err != nil {
		return err
	}
	attrs := perms.Normalize(rawPerms, false)
	return s.repomanager.Profiles(s.db).SetPerms(ctx, owner, profile, varName, attrs)
}

// DeleteVar removes one of the caller's own variables.
func (s *ProfileService) DeleteVar(ctx context.Context, userName, userGroup, profile, varName string) error {
	owner, err := s.identity.ResolvePair(ctx, userName, userGroup, true)
	if err != nil {
		return err
	}
	return s.repomanager.Profiles(s.db).DeleteVar(ctx, owner, profile, varName)
}

// DeleteUserProfile removes every variable the user owns. When userGroup is
// empty the deletion spans all groups and the user row itself is removed;
// with a group given, only that group's variables go and the user row stays.
func (s *ProfileService) DeleteUserProfile(ctx context.Context, userName, userGroup string) error {
	userID, err := s.identity.ResolveUser(ctx, userName, true)
	if err != nil {
		return err
	}

	groupScoped := userGroup != ""
	var groupID int64
	if groupScoped {
		if groupID, err = s.identity.ResolveGroup(ctx, userGroup, true); err != nil {
			return err
		}
	}

	return dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		if err := s.repomanager.Profiles(tx).DeleteOwnerVars(ctx, userID, groupID, groupScoped); err != nil {
			return err
		}
		if groupScoped {
			return nil
		}
		return s.repomanager.Users(tx).Delete(ctx, userID)
	})
}

// ListAvailableVars enumerates the variables of the profile whose publish
// level admits the requester, as (ownerUserName, ownerGroupName, varName)
// triples. filterGroups, when non-empty, restricts the listing to those
// groups plus the requester's own; unknown names are resolved (creating
// empty identities) so they simply contribute nothing.
func (s *ProfileService) ListAvailableVars(ctx context.Context, userName, userGroup, profile string, filterGroups []string) ([]models.PublishedVar, error) {
	requester, err := s.identity.ResolvePair(ctx, userName, userGroup, true)
	if err != nil {
		return nil, err
	}

	var groupIDs []int64
	if len(filterGroups) > 0 {
		groupIDs = append(groupIDs, requester.GroupID)
		for _, name := range filterGroups {
			id, err := s.identity.ResolveGroup(ctx, name, true)
			if err != nil {
				return nil, err
			}
			groupIDs = append(groupIDs, id)
		}
	}

	return s.repomanager.Profiles(s.db).ListPublished(ctx, requester, profile, groupIDs)
}
