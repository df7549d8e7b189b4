package repomanager

import (
	"context"
	"database/sql"

	"github.com/dmitrijs2005/profilevault/internal/dbx"
	"github.com/dmitrijs2005/profilevault/internal/server/repositories/groups"
	"github.com/dmitrijs2005/profilevault/internal/server/repositories/hashtags"
	"github.com/dmitrijs2005/profilevault/internal/server/repositories/profiles"
	"github.com/dmitrijs2005/profilevault/internal/server/repositories/users"
)

type RepositoryManager interface {
	RunMigrations(context.Context, *sql.DB) error
	Users(db dbx.DBTX) users.Repository
	Groups(db dbx.DBTX) groups.Repository
	Profiles(db dbx.DBTX) profiles.Repository
	HashTags(db dbx.DBTX) hashtags.Repository
}
