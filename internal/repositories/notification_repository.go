package repositories

import (
	"context"
	"database/sql"
	"taskboard/internal/models"
)

type NotificationRepository interface {
	Store(ctx context.Context, n *models.Notification) error
	FindByID(ctx context.Context, id int64) (*models.Notification, error)
	FindByUser(ctx context.Context, userID int64, limit int) ([]models.Notification, error)
	MarkRead(ctx context.Context, id int64) error
	MarkAllRead(ctx context.Context, userID int64) error
}

type notificationRepository struct {
	db *sql.DB
}

func NewNotificationRepository(db *sql.DB) NotificationRepository {
	return &notificationRepository{db: db}
}

func (r *notificationRepository) Store(ctx context.Context, n *models.Notification) error {
	query := `
		INSERT INTO notifications (user_id, type, title, message, data, read)
		VALUES ($1,$2,$3,$4,$5,FALSE)
		RETURNING id, created_at`
	data := []byte(n.Data)
	if len(data) == 0 {
		data = []byte("{}")
	}
	return r.db.QueryRowContext(ctx, query,
		n.UserID, n.Type, n.Title, n.Message, data,
	).Scan(&n.ID, &n.CreatedAt)
}

func (r *notificationRepository) FindByID(ctx context.Context, id int64) (*models.Notification, error) {
	query := `SELECT id, user_id, type, title, message, data, read, created_at
       FROM notifications WHERE id = $1`
	n := &models.Notification{}
	var data []byte
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&n.ID, &n.UserID, &n.Type, &n.Title, &n.Message, &data, &n.Read, &n.CreatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	n.Data = data
	return n, nil
}

func (r *notificationRepository) FindByUser(ctx context.Context, userID int64, limit int) ([]models.Notification, error) {
	query := `SELECT id, user_id, type, title, message, data, read, created_at
       FROM notifications WHERE user_id = $1 ORDER BY created_at DESC LIMIT $2`
	rows, err := r.db.QueryContext(ctx, query, userID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []models.Notification
	for rows.Next() {
		var n models.Notification
		var data []byte
		if err := rows.Scan(
			&n.ID, &n.UserID, &n.Type, &n.Title, &n.Message, &data, &n.Read, &n.CreatedAt,
		); err != nil {
			return nil, err
		}
		n.Data = data
		out = append(out, n)
	}
	return out, rows.Err()
}

func (r *notificationRepository) MarkRead(ctx context.Context, id int64) error {
	_, err := r.db.ExecContext(ctx,
		`UPDATE notifications SET read=TRUE WHERE id=$1`, id)
	return err
}

func (r *notificationRepository) MarkAllRead(ctx context.Context, userID int64) error {
	_, err := r.db.ExecContext(ctx,
		`UPDATE notifications SET read=TRUE WHERE user_id=$1 AND NOT read`, userID)
	return err
}
