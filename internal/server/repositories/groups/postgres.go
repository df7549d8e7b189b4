package groups

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/profilevault/internal/common"
	"github.com/dmitrijs2005/profilevault/internal/dbx"
	"github.com/dmitrijs2005/profilevault/internal/server/models"
)

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) GetByName(ctx context.Context, name string) (*models.Group, error) {
	query :=
		`SELECT id, user_group FROM up_groups
		 WHERE user_group = $1
		 `

	group := &models.Group{}
	err := r.db.QueryRowContext(ctx, query, name).Scan(&group.ID, &group.UserGroup)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return group, nil
}

func (r *PostgresRepository) Create(ctx context.Context, name string) (int64, error) {
	query :=
		`INSERT INTO up_groups (user_group, last_access)
		 VALUES ($1, now())
		 RETURNING id
		 `

	var id int64
	if err := r.db.QueryRowContext(ctx, query, name).Scan(&id); err != nil {
		return 0, fmt.Errorf("db error: %w", err)
	}

	return id, nil
}

func (r *PostgresRepository) TouchLastAccess(ctx context.Context, id int64) error {
	query :=
		`UPDATE up_groups SET last_access = now()
		 WHERE id = $1
		 `

	if _, err := r.db.ExecContext(ctx, query, id); err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}
