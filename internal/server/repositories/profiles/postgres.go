package profiles

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/profilevault/internal/common"
	"github.com/dmitrijs2005/profilevault/internal/dbx"
	"github.com/dmitrijs2005/profilevault/internal/server/models"
	"github.com/dmitrijs2005/profilevault/internal/server/perms"
)

// Access-condition fragments shared by the guarded reads. Placeholders:
// $1 profile, $2 var name, $3/$4 owner user/group id, $5/$6 requester
// user/group id.
//
// A row is read-eligible when the requester is the owner pair, or the row is
// group-readable and the requester shares the owner's group, or the row is
// readable by all. VO parses and stores but grants nothing beyond these
// branches.
const (
	ownerKeyCond = `profile = $1 AND var_name = $2 AND user_id = $3 AND group_id = $4`

	readEligibleCond = `( (user_id = $5 AND group_id = $6)
		OR (read_access = 'GROUP' AND group_id = $6)
		OR read_access = 'ALL' )`
)

// permColumns maps permission attributes to their storage columns.
var permColumns = map[perms.Attr]string{
	perms.AttrReadAccess:    "read_access",
	perms.AttrPublishAccess: "publish_access",
}

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// Store inserts the variable or, when the (owner, profile, varName) key
// already exists, overwrites data plus the explicitly supplied permission
// columns. Permissions not listed in explicit keep their stored values.
func (r *PostgresRepository) Store(ctx context.Context, v *models.ProfileVariable, explicit []perms.Attr) error {
	assign := []string{"data = EXCLUDED.data"}
	for _, attr := range explicit {
		col, ok := permColumns[attr]
		if !ok {
			return fmt.Errorf("unknown permission attribute %q", attr)
		}
		assign = append(assign, fmt.Sprintf("%s = EXCLUDED.%s", col, col))
	}

	query := fmt.Sprintf(
		`INSERT INTO up_profiles_data (user_id, group_id, profile, var_name, data, read_access, publish_access)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)
		 ON CONFLICT (user_id, group_id, profile, var_name)
		 DO UPDATE SET %s
		 `, strings.Join(assign, ", "))

	_, err := r.db.ExecContext(ctx, query,
		v.Owner.UserID, v.Owner.GroupID, v.Profile, v.VarName, v.Data, v.ReadAccess, v.PublishAccess)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

func (r *PostgresRepository) GetData(ctx context.Context, requester, owner models.IdentityPair, profile, varName string) ([]byte, error) {
	query :=
		`SELECT data FROM up_profiles_data
		 WHERE ` + ownerKeyCond + ` AND ` + readEligibleCond

	var data []byte
	err := r.db.QueryRowContext(ctx, query,
		profile, varName, owner.UserID, owner.GroupID, requester.UserID, requester.GroupID).Scan(&data)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			// Absent and unauthorized are the same outcome here.
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return data, nil
}

func (r *PostgresRepository) GetPerms(ctx context.Context, requester, owner models.IdentityPair, profile, varName string) (map[perms.Attr]perms.Visibility, error) {
	query :=
		`SELECT read_access, publish_access FROM up_profiles_data
		 WHERE ` + ownerKeyCond + ` AND ` + readEligibleCond

	var read, publish perms.Visibility
	err := r.db.QueryRowContext(ctx, query,
		profile, varName, owner.UserID, owner.GroupID, requester.UserID, requester.GroupID).Scan(&read, &publish)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return map[perms.Attr]perms.Visibility{
		perms.AttrReadAccess:    read,
		perms.AttrPublishAccess: publish,
	}, nil
}

func (r *PostgresRepository) GetAllForOwner(ctx context.Context, owner models.IdentityPair, profile string) (map[string][]byte, error) {
	query :=
		`SELECT var_name, data FROM up_profiles_data
		 WHERE user_id = $1 AND group_id = $2 AND profile = $3
		 `

	rows, err := r.db.QueryContext(ctx, query, owner.UserID, owner.GroupID, profile)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	vars := map[string][]byte{}
	for rows.Next() {
		var name string
		var data []byte
		if err := rows.Scan(&name, &data); err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		vars[name] = data
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return vars, nil
}

// SetPerms updates only the supplied permission attributes. An empty attrs
// map is a no-op.
func (r *PostgresRepository) SetPerms(ctx context.Context, owner models.IdentityPair, profile, varName string, attrs map[perms.Attr]perms.Visibility) error {
	if len(attrs) == 0 {
		return nil
	}

	assign := make([]string, 0, len(attrs))
	args := []any{owner.UserID, owner.GroupID, profile, varName}
	for _, attr := range perms.Attrs {
		v, ok := attrs[attr]
		if !ok {
			continue
		}
		args = append(args, v)
		assign = append(assign, fmt.Sprintf("%s = $%d", permColumns[attr], len(args)))
	}

	query := fmt.Sprintf(
		`UPDATE up_profiles_data SET %s
		 WHERE user_id = $1 AND group_id = $2 AND profile = $3 AND var_name = $4
		 `, strings.Join(assign, ", "))

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

func (r *PostgresRepository) DeleteVar(ctx context.Context, owner models.IdentityPair, profile, varName string) error {
	query :=
		`DELETE FROM up_profiles_data
		 WHERE user_id = $1 AND group_id = $2 AND profile = $3 AND var_name = $4
		 `

	if _, err := r.db.ExecContext(ctx, query, owner.UserID, owner.GroupID, profile, varName); err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

// DeleteOwnerVars removes every variable the user owns, across all profiles,
// restricted to one group when groupScoped is set.
func (r *PostgresRepository) DeleteOwnerVars(ctx context.Context, userID int64, groupID int64, groupScoped bool) error {
	query := `DELETE FROM up_profiles_data WHERE user_id = $1`
	args := []any{userID}
	if groupScoped {
		query += ` AND group_id = $2`
		args = append(args, groupID)
	}

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

// ListPublished enumerates (ownerUserName, ownerGroupName, varName) triples
// for every row of the profile whose publish level admits the requester:
// the requester's own rows, group-published rows of the requester's group,
// and rows published to all. groupIDs, when non-empty, restricts the listing
// to those owning groups.
func (r *PostgresRepository) ListPublished(ctx context.Context, requester models.IdentityPair, profile string, groupIDs []int64) ([]models.PublishedVar, error) {
	query :=
		`SELECT u.user_name, g.user_group, p.var_name
		 FROM up_profiles_data p
		 JOIN up_users u ON u.id = p.user_id
		 JOIN up_groups g ON g.id = p.group_id
		 WHERE p.profile = $1
		   AND ( (p.user_id = $2 AND p.group_id = $3)
		      OR (p.publish_access = 'GROUP' AND p.group_id = $3)
		      OR p.publish_access = 'ALL' )`
	args := []any{profile, requester.UserID, requester.GroupID}

	if len(groupIDs) > 0 {
		placeholders := make([]string, len(groupIDs))
		for i, id := range groupIDs {
			args = append(args, id)
			placeholders[i] = fmt.Sprintf("$%d", len(args))
		}
		query += fmt.Sprintf(" AND p.group_id IN (%s)", strings.Join(placeholders, ", "))
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	var list []models.PublishedVar
	for rows.Next() {
		var v models.PublishedVar
		if err := rows.Scan(&v.UserName, &v.UserGroup, &v.VarName); err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		list = append(list, v)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return list, nil
}
