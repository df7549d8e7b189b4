// Package models holds the row types persisted by the profile storage layer.
package models

import "time"

// User is a row of up_users. Rows are created lazily the first time a user
// name is resolved.
type User struct {
	ID         int64
	UserName   string
	LastAccess time.Time
}

// Group is a row of up_groups, created lazily like User.
type Group struct {
	ID         int64
	UserGroup  string
	LastAccess time.Time
}

// IdentityPair is a resolved (user, group) combination. The same user may own
// distinct profiles under different groups.
type IdentityPair struct {
	UserID  int64
	GroupID int64
}
