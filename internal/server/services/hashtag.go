// This file implements HashTagService: opaque shareable tokens aliasing a
// named resource owned by an identity pair.
package services

import (
	"context"
	"database/sql"
	"strings"

	"github.com/dmitrijs2005/profilevault/internal/server/repositories/repomanager"
	"github.com/google/uuid"
)

type HashTagService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	identity    *IdentityService
}

func NewHashTagService(db *sql.DB, m repomanager.RepositoryManager, identity *IdentityService) *HashTagService {
	return &HashTagService{db: db, repomanager: m, identity: identity}
}

// newHashTag derives an unguessable 32-character token.
func newHashTag() string {
	return strings.ReplaceAll(uuid.NewString(), "-", "")
}

// StoreHashTag registers hashTag as an alias for tagName owned by
// (userName, userGroup), generating the token when none is supplied, and
// returns it. Re-issuing a tag name replaces the stored token: the previous
// one stops resolving.
func (s *HashTagService) StoreHashTag(ctx context.Context, userName, userGroup, tagName, hashTag string) (string, error) {
	owner, err := s.identity.ResolvePair(ctx, userName, userGroup, true)
	if err != nil {
		return "", err
	}

	if hashTag == "" {
		hashTag = newHashTag()
	}

	if err := s.repomanager.HashTags(s.db).Upsert(ctx, owner.UserID, owner.GroupID, tagName, hashTag); err != nil {
		return "", err
	}
	return hashTag, nil
}

// RetrieveHashTag resolves a token back to its tag name. An unknown (or
// replaced) token fails with common.ErrorNotFound.
func (s *HashTagService) RetrieveHashTag(ctx context.Context, userName, userGroup, hashTag string) (string, error) {
	owner, err := s.identity.ResolvePair(ctx, userName, userGroup, true)
	if err != nil {
		return "", err
	}
	return s.repomanager.HashTags(s.db).GetTagName(ctx, owner.UserID, owner.GroupID, hashTag)
}

// RetrieveAllHashTags returns every token the owner has issued, mapped to
// its tag name.
func (s *HashTagService) RetrieveAllHashTags(ctx context.Context, userName, userGroup string) (map[string]string, error) {
	owner, err := s.identity.ResolvePair(ctx, userName, userGroup, true)
	if err != nil {
		return nil, err
	}
	return s.repomanager.HashTags(s.db).GetAll(ctx, owner.UserID, owner.GroupID)
}
