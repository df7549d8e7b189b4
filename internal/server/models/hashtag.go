package models

import "time"

// HashTag is a row of up_hash_tags: an opaque token aliasing a named resource
// owned by an identity pair. Primary key is (UserID, GroupID, TagName); the
// token is the lookup key when resolving and need not be globally unique.
type HashTag struct {
	Owner      IdentityPair
	HashTag    string
	TagName    string
	LastAccess time.Time
}
