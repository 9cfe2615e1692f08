package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/jmoiron/sqlx"

	"earthlink/internal/model"
)

type groupRepository struct {
	db *sqlx.DB
}

func NewGroupRepository(db *sqlx.DB) GroupRepository {
	return &groupRepository{db: db}
}

// groupSelect is shared by every group read. $1 is the viewing user id
// (model.AnonymousViewerID when no session is present).
const groupSelect = `
	SELECT g.id, g.user_id, g.name, g.location, g.description, g.website,
	       g.icon, g.images, g.created_at,
	       (SELECT COUNT(*) FROM group_members gm WHERE gm.group_id = g.id) AS member_count,
	       EXISTS(SELECT 1 FROM group_members gm WHERE gm.group_id = g.id AND gm.user_id = $1) AS is_member
	FROM groups g
`

// Create inserts the group and the creator's membership in one transaction,
// so a failure between the two writes leaves neither behind.
func (r *groupRepository) Create(ctx context.Context, group *model.Group) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback()

	query := `
		INSERT INTO groups (user_id, name, location, description, website, icon, images)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, created_at
	`
	err = tx.QueryRowxContext(ctx, query,
		group.UserID, group.Name, group.Location, group.Description,
		group.Website, group.Icon, group.ImagesRaw,
	).Scan(&group.ID, &group.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert group: %w", err)
	}

	// Creating a group enrolls its creator.
	_, err = tx.ExecContext(ctx, `
		INSERT INTO group_members (group_id, user_id) VALUES ($1, $2)
	`, group.ID, group.UserID)
	if err != nil {
		return fmt.Errorf("insert creator membership: %w", err)
	}

	return tx.Commit()
}

func (r *groupRepository) GetByID(ctx context.Context, groupID, viewerID int64) (*model.Group, error) {
	var group model.Group
	err := r.db.GetContext(ctx, &group, groupSelect+` WHERE g.id = $2`, viewerID, groupID)
	if err == sql.ErrNoRows {
		return nil, model.ErrGroupNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get group: %w", err)
	}
	group.Images = model.DecodeImages(group.ImagesRaw)
	return &group, nil
}

func (r *groupRepository) GetAll(ctx context.Context, viewerID int64) ([]model.Group, error) {
	groups := []model.Group{}
	err := r.db.SelectContext(ctx, &groups, groupSelect+` ORDER BY g.created_at DESC`, viewerID)
	if err != nil {
		return nil, fmt.Errorf("get groups: %w", err)
	}
	for i := range groups {
		groups[i].Images = model.DecodeImages(groups[i].ImagesRaw)
	}
	return groups, nil
}

func (r *groupRepository) Update(ctx context.Context, group *model.Group) error {
	result, err := r.db.ExecContext(ctx, `
		UPDATE groups
		SET name = $1, location = $2, description = $3, website = $4, icon = $5, images = $6
		WHERE id = $7
	`, group.Name, group.Location, group.Description, group.Website,
		group.Icon, group.ImagesRaw, group.ID)
	if err != nil {
		return fmt.Errorf("update group: %w", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("get rows affected: %w", err)
	}
	if rows == 0 {
		return model.ErrGroupNotFound
	}
	return nil
}

func (r *groupRepository) Delete(ctx context.Context, groupID int64) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM groups WHERE id = $1`, groupID)
	if err != nil {
		return fmt.Errorf("delete group: %w", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("get rows affected: %w", err)
	}
	if rows == 0 {
		return model.ErrGroupNotFound
	}
	return nil
}

func (r *groupRepository) Join(ctx context.Context, groupID, userID int64) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO group_members (group_id, user_id) VALUES ($1, $2)
		ON CONFLICT (group_id, user_id) DO NOTHING
	`, groupID, userID)
	if err != nil {
		if isForeignKeyViolation(err) {
			return model.ErrGroupNotFound
		}
		return fmt.Errorf("insert membership: %w", err)
	}
	return nil
}

func (r *groupRepository) Leave(ctx context.Context, groupID, userID int64) error {
	_, err := r.db.ExecContext(ctx, `
		DELETE FROM group_members WHERE group_id = $1 AND user_id = $2
	`, groupID, userID)
	if err != nil {
		return fmt.Errorf("delete membership: %w", err)
	}
	return nil
}

func (r *groupRepository) GetMembers(ctx context.Context, groupID int64) ([]model.UserSummary, error) {
	members := []model.UserSummary{}
	err := r.db.SelectContext(ctx, &members, `
		SELECT u.id, u.handle, u.name, u.avatar
		FROM group_members gm
		JOIN users u ON u.id = gm.user_id
		WHERE gm.group_id = $1
		ORDER BY gm.created_at ASC
	`, groupID)
	if err != nil {
		return nil, fmt.Errorf("get members: %w", err)
	}
	return members, nil
}

func (r *groupRepository) Search(ctx context.Context, query string, viewerID int64, limit int) ([]model.Group, error) {
	pattern := "%" + query + "%"
	groups := []model.Group{}
	err := r.db.SelectContext(ctx, &groups, groupSelect+`
		WHERE g.name ILIKE $2 OR g.description ILIKE $2 OR g.location ILIKE $2
		ORDER BY g.created_at DESC
		LIMIT $3
	`, viewerID, pattern, limit)
	if err != nil {
		return nil, fmt.Errorf("search groups: %w", err)
	}
	for i := range groups {
		groups[i].Images = model.DecodeImages(groups[i].ImagesRaw)
	}
	return groups, nil
}
