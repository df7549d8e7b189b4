package models

import "github.com/dmitrijs2005/profilevault/internal/server/perms"

// ProfileVariable is a row of up_profiles_data: one named value owned by an
// identity pair within a named profile namespace. Primary key is
// (UserID, GroupID, Profile, VarName).
type ProfileVariable struct {
	Owner         IdentityPair
	Profile       string
	VarName       string
	Data          []byte
	ReadAccess    perms.Visibility
	PublishAccess perms.Visibility
}

// PublishedVar is one entry of a listing: a variable some owner has made
// visible to the requester, identified by the owner's names rather than ids.
type PublishedVar struct {
	UserName  string
	UserGroup string
	VarName   string
}
