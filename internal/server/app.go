// Package server wires the profile store together: it opens the database,
// brings the schema up to date and hands out the services an embedding
// application talks to.
package server

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"os"

	_ "github.com/jackc/pgx/v5/stdlib"

	"github.com/dmitrijs2005/profilevault/internal/logging"
	"github.com/dmitrijs2005/profilevault/internal/server/config"
	"github.com/dmitrijs2005/profilevault/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/profilevault/internal/server/services"
)

type App struct {
	config   *config.Config
	logger   logging.Logger
	db       *sql.DB
	identity *services.IdentityService
	profiles *services.ProfileService
	hashtags *services.HashTagService
}

// NewApp opens the database described by c, applies pending migrations and
// constructs the service layer. Migrations are idempotent, so repeated
// startups against the same database are safe.
func NewApp(ctx context.Context, c *config.Config) (*App, error) {

	sl := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	logger := logging.NewSlogLogger(sl)

	db, err := sql.Open("pgx", c.DatabaseDSN)
	if err != nil {
		return nil, fmt.Errorf("db init error: %w", err)
	}
	db.SetMaxOpenConns(c.MaxOpenConns)
	db.SetConnMaxLifetime(c.ConnMaxLifetime)

	rm := repomanager.NewPostgresRepositoryManager()
	if err := rm.RunMigrations(ctx, db); err != nil {
		db.Close()
		return nil, fmt.Errorf("migration error: %w", err)
	}
	logger.Info(ctx, "schema is up to date")

	identity := services.NewIdentityService(db, rm)

	return &App{
		config:   c,
		logger:   logger,
		db:       db,
		identity: identity,
		profiles: services.NewProfileService(db, rm, identity),
		hashtags: services.NewHashTagService(db, rm, identity),
	}, nil
}

func (app *App) Identity() *services.IdentityService { return app.identity }
func (app *App) Profiles() *services.ProfileService { return app.profiles }
func (app *App) HashTags() *services.HashTagService { return app.hashtags }

func (app *App) Close() error {
	return app.db.Close()
}
