// Package services contains the operational surface of the profile store.
// This file implements IdentityService, which maps user and group names to
// their stable numeric ids, auto-provisioning rows on first sight.
package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/profilevault/internal/common"
	"github.com/dmitrijs2005/profilevault/internal/dbx"
	"github.com/dmitrijs2005/profilevault/internal/server/models"
	"github.com/dmitrijs2005/profilevault/internal/server/repositories/repomanager"
	"golang.org/x/sync/errgroup"
)

// IdentityService resolves names to identity row ids. Resolution of a name
// never seen before inserts the row; two callers racing on the same name
// both get the winner's id.
type IdentityService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
}

// NewIdentityService constructs an IdentityService on the given handle.
func NewIdentityService(db *sql.DB, m repomanager.RepositoryManager) *IdentityService {
	return &IdentityService{db: db, repomanager: m}
}

// ResolveUser returns the id of the named user. A hit refreshes the row's
// last-access time. A miss inserts the row when autoCreate is set and fails
// with common.ErrorNotFound otherwise.
//
// The insert is optimistic: losing the unique-name race falls back to a
// second lookup, so concurrent first access converges on one id with no
// error surfaced.
func (s *IdentityService) ResolveUser(ctx context.Context, name string, autoCreate bool) (int64, error) {
	repo := s.repomanager.Users(s.db)

	user, err := repo.GetByName(ctx, name)
	if err == nil {
		// Bookkeeping only; a failed refresh must not fail the resolution.
		_ = repo.TouchLastAccess(ctx, user.ID)
		return user.ID, nil
	}
	if !errors.Is(err, common.ErrorNotFound) {
		return 0, err
	}
	if !autoCreate {
		return 0, fmt.Errorf("no user %s defined: %w", name, common.ErrorNotFound)
	}

	id, err := repo.Create(ctx, name)
	if err == nil {
		return id, nil
	}
	if !dbx.IsUniqueViolation(err) {
		return 0, err
	}

	// Lost the insert race; the winner's row exists now.
	user, err = repo.GetByName(ctx, name)
	if err != nil {
		return 0, err
	}
	return user.ID, nil
}

// ResolveGroup is ResolveUser for group names.
func (s *IdentityService) ResolveGroup(ctx context.Context, name string, autoCreate bool) (int64, error) {
	repo := s.repomanager.Groups(s.db)

	group, err := repo.GetByName(ctx, name)
	if err == nil {
		_ = repo.TouchLastAccess(ctx, group.ID)
		return group.ID, nil
	}
	if !errors.Is(err, common.ErrorNotFound) {
		return 0, err
	}
	if !autoCreate {
		return 0, fmt.Errorf("no group %s defined: %w", name, common.ErrorNotFound)
	}

	id, err := repo.Create(ctx, name)
	if err == nil {
		return id, nil
	}
	if !dbx.IsUniqueViolation(err) {
		return 0, err
	}

	group, err = repo.GetByName(ctx, name)
	if err != nil {
		return 0, err
	}
	return group.ID, nil
}

// ResolvePair resolves a (userName, groupName) combination. The two
// resolutions are independent and run concurrently; either failing fails
// the pair.
func (s *IdentityService) ResolvePair(ctx context.Context, userName, groupName string, autoCreate bool) (models.IdentityPair, error) {
	var pair models.IdentityPair

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		id, err := s.ResolveUser(ctx, userName, autoCreate)
		if err != nil {
			return err
		}
		pair.UserID = id
		return nil
	})
	g.Go(func() error {
		id, err := s.ResolveGroup(ctx, groupName, autoCreate)
		if err != nil {
			return err
		}
		pair.GroupID = id
		return nil
	})

	if err := g.Wait(); err != nil {
		return models.IdentityPair{}, err
	}
	return pair, nil
}
