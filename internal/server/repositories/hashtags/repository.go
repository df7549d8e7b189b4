package hashtags

import "context"

// Repository persists up_hash_tags rows. Upsert replaces the stored token
// when the owner already has a tag of that name, which silently invalidates
// the previous token.
type Repository interface {
	Upsert(ctx context.Context, userID, groupID int64, tagName, hashTag string) error
	GetTagName(ctx context.Context, userID, groupID int64, hashTag string) (string, error)
	GetAll(ctx context.Context, userID, groupID int64) (map[string]string, error)
}
