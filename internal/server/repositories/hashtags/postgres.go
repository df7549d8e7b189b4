package hashtags

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/profilevault/internal/common"
	"github.com/dmitrijs2005/profilevault/internal/dbx"
)

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Upsert(ctx context.Context, userID, groupID int64, tagName, hashTag string) error {
	query :=
		`INSERT INTO up_hash_tags (user_id, group_id, tag_name, hash_tag, last_access)
		 VALUES ($1, $2, $3, $4, now())
		 ON CONFLICT (user_id, group_id, tag_name)
		 DO UPDATE SET hash_tag = EXCLUDED.hash_tag, last_access = EXCLUDED.last_access
		 `

	if _, err := r.db.ExecContext(ctx, query, userID, groupID, tagName, hashTag); err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

func (r *PostgresRepository) GetTagName(ctx context.Context, userID, groupID int64, hashTag string) (string, error) {
	query :=
		`SELECT tag_name FROM up_hash_tags
		 WHERE user_id = $1 AND group_id = $2 AND hash_tag = $3
		 `

	var tagName string
	err := r.db.QueryRowContext(ctx, query, userID, groupID, hashTag).Scan(&tagName)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", common.ErrorNotFound
		}
		return "", fmt.Errorf("db error: %w", err)
	}

	return tagName, nil
}

func (r *PostgresRepository) GetAll(ctx context.Context, userID, groupID int64) (map[string]string, error) {
	query :=
		`SELECT hash_tag, tag_name FROM up_hash_tags
		 WHERE user_id = $1 AND group_id = $2
		 `

	rows, err := r.db.QueryContext(ctx, query, userID, groupID)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	tags := map[string]string{}
	for rows.Next() {
		var hashTag, tagName string
		if err := rows.Scan(&hashTag, &tagName); err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		tags[hashTag] = tagName
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return tags, nil
}
