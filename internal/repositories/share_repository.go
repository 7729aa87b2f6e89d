package repositories

import (
	"context"
	"database/sql"
	"taskboard/internal/models"
)

// SharedTask is one row of the share→task join used to build the
// viewer's shared half of the visible set.
type SharedTask struct {
	Task       models.Task
	Permission models.SharePermission
	OwnerEmail string
}

type ShareRepository interface {
	Store(ctx context.Context, share *models.TaskShare) error
	FindByID(ctx context.Context, id int64) (*models.TaskShare, error)
	FindByTaskAndRecipient(ctx context.Context, taskID, recipientID int64) (*models.TaskShare, error)
	FindTasksSharedWith(ctx context.Context, recipientID int64) ([]SharedTask, error)
	ListByTask(ctx context.Context, taskID int64) ([]models.ShareInfo, error)
	UpdatePermission(ctx context.Context, id int64, permission models.SharePermission) error
	Delete(ctx context.Context, id int64) error
}

type shareRepository struct {
	db *sql.DB
}

func NewShareRepository(db *sql.DB) ShareRepository {
	return &shareRepository{db: db}
}

func (r *shareRepository) Store(ctx context.Context, share *models.TaskShare) error {
	query := `
		INSERT INTO task_shares (task_id, shared_by_user_id, shared_with_user_id, permission)
		VALUES ($1,$2,$3,$4)
		RETURNING id, created_at`
	return r.db.QueryRowContext(ctx, query,
		share.TaskID, share.SharedByUserID, share.SharedWithUserID, share.Permission,
	).Scan(&share.ID, &share.CreatedAt)
}

func (r *shareRepository) FindByID(ctx context.Context, id int64) (*models.TaskShare, error) {
	query := `SELECT id, task_id, shared_by_user_id, shared_with_user_id, permission, created_at
       FROM task_shares WHERE id = $1`
	s := &models.TaskShare{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&s.ID, &s.TaskID, &s.SharedByUserID, &s.SharedWithUserID, &s.Permission, &s.CreatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return s, nil
}

func (r *shareRepository) FindByTaskAndRecipient(ctx context.Context, taskID, recipientID int64) (*models.TaskShare, error) {
	query := `SELECT id, task_id, shared_by_user_id, shared_with_user_id, permission, created_at
       FROM task_shares WHERE task_id = $1 AND shared_with_user_id = $2`
	s := &models.TaskShare{}
	err := r.db.QueryRowContext(ctx, query, taskID, recipientID).Scan(
		&s.ID, &s.TaskID, &s.SharedByUserID, &s.SharedWithUserID, &s.Permission, &s.CreatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return s, nil
}

func (r *shareRepository) FindTasksSharedWith(ctx context.Context, recipientID int64) ([]SharedTask, error) {
	query := `
		SELECT t.id, t.owner_id, t.title, t.description, t.due_date, t.priority, t.status,
		       t.created_at, t.updated_at, s.permission, p.email
		FROM task_shares s
		JOIN tasks t ON t.id = s.task_id
		JOIN profiles p ON p.id = t.owner_id
		WHERE s.shared_with_user_id = $1
		ORDER BY t.created_at DESC`
	rows, err := r.db.QueryContext(ctx, query, recipientID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []SharedTask
	for rows.Next() {
		var st SharedTask
		if err := rows.Scan(
			&st.Task.ID, &st.Task.OwnerID, &st.Task.Title, &st.Task.Description,
			&st.Task.DueDate, &st.Task.Priority, &st.Task.Status,
			&st.Task.CreatedAt, &st.Task.UpdatedAt, &st.Permission, &st.OwnerEmail,
		); err != nil {
			return nil, err
		}
		out = append(out, st)
	}
	return out, rows.Err()
}

func (r *shareRepository) ListByTask(ctx context.Context, taskID int64) ([]models.ShareInfo, error) {
	query := `
		SELECT s.id, s.task_id, s.shared_by_user_id, s.shared_with_user_id, s.permission, s.created_at,
		       p.email, COALESCE(p.full_name, '')
		FROM task_shares s
		JOIN profiles p ON p.id = s.shared_with_user_id
		WHERE s.task_id = $1
		ORDER BY s.created_at`
	rows, err := r.db.QueryContext(ctx, query, taskID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []models.ShareInfo
	for rows.Next() {
		var si models.ShareInfo
		if err := rows.Scan(
			&si.ID, &si.TaskID, &si.SharedByUserID, &si.SharedWithUserID, &si.Permission, &si.CreatedAt,
			&si.RecipientEmail, &si.RecipientFullName,
		); err != nil {
			return nil, err
		}
		out = append(out, si)
	}
	return out, rows.Err()
}

func (r *shareRepository) UpdatePermission(ctx context.Context, id int64, permission models.SharePermission) error {
	_, err := r.db.ExecContext(ctx,
		`UPDATE task_shares SET permission=$1 WHERE id=$2`, permission, id)
	return err
}

func (r *shareRepository) Delete(ctx context.Context, id int64) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM task_shares WHERE id = $1`, id)
	return err
}
