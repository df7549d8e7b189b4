// Command migrate applies pending schema migrations and exits. Running it
// against an already migrated database is a no-op.
package main

import (
	"context"
	"database/sql"
	"log/slog"
	"os"

	_ "github.com/jackc/pgx/v5/stdlib"

	"github.com/dmitrijs2005/profilevault/internal/logging"
	"github.com/dmitrijs2005/profilevault/internal/server/config"
	"github.com/dmitrijs2005/profilevault/internal/server/repositories/repomanager"
)

func main() {
	ctx := context.Background()

	sl := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	logger := logging.NewSlogLogger(sl)

	cfg := config.LoadConfig()

	db, err := sql.Open("pgx", cfg.DatabaseDSN)
	if err != nil {
		logger.Error(ctx, "db init error", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	rm := repomanager.NewPostgresRepositoryManager()
	if err := rm.RunMigrations(ctx, db); err != nil {
		logger.Error(ctx, "migration error", "error", err)
		os.Exit(1)
	}

	logger.Info(ctx, "schema is up to date")
}
