package repositories

import (
	"context"
	"database/sql"
	"taskboard/internal/models"
)

type InvitationRepository interface {
	Store(ctx context.Context, inv *models.TaskInvitation) error
	FindByID(ctx context.Context, id int64) (*models.TaskInvitation, error)
	FindPending(ctx context.Context, taskID, inviteeID int64) (*models.TaskInvitation, error)
	UpdateStatus(ctx context.Context, id int64, status models.InvitationStatus) error
}

type invitationRepository struct {
	db *sql.DB
}

func NewInvitationRepository(db *sql.DB) InvitationRepository {
	return &invitationRepository{db: db}
}

func (r *invitationRepository) Store(ctx context.Context, inv *models.TaskInvitation) error {
	query := `
		INSERT INTO task_invitations (task_id, inviter_id, invitee_id, permission, status)
		VALUES ($1,$2,$3,$4,$5)
		RETURNING id, created_at, updated_at`
	return r.db.QueryRowContext(ctx, query,
		inv.TaskID, inv.InviterID, inv.InviteeID, inv.Permission, inv.Status,
	).Scan(&inv.ID, &inv.CreatedAt, &inv.UpdatedAt)
}

func (r *invitationRepository) FindByID(ctx context.Context, id int64) (*models.TaskInvitation, error) {
	query := `SELECT id, task_id, inviter_id, invitee_id, permission, status, created_at, updated_at
       FROM task_invitations WHERE id = $1`
	inv := &models.TaskInvitation{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&inv.ID, &inv.TaskID, &inv.InviterID, &inv.InviteeID,
		&inv.Permission, &inv.Status, &inv.CreatedAt, &inv.UpdatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return inv, nil
}

func (r *invitationRepository) FindPending(ctx context.Context, taskID, inviteeID int64) (*models.TaskInvitation, error) {
	query := `SELECT id, task_id, inviter_id, invitee_id, permission, status, created_at, updated_at
       FROM task_invitations WHERE task_id = $1 AND invitee_id = $2 AND status = 'pending'`
	inv := &models.TaskInvitation{}
	err := r.db.QueryRowContext(ctx, query, taskID, inviteeID).Scan(
		&inv.ID, &inv.TaskID, &inv.InviterID, &inv.InviteeID,
		&inv.Permission, &inv.Status, &inv.CreatedAt, &inv.UpdatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return inv, nil
}

func (r *invitationRepository) UpdateStatus(ctx context.Context, id int64, status models.InvitationStatus) error {
	_, err := r.db.ExecContext(ctx,
		`UPDATE task_invitations SET status=$1, updated_at=NOW() WHERE id=$2`, status, id)
	return err
}
