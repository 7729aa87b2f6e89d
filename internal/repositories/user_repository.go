package repositories

import (
	"context"
	"database/sql"
	"time"

	"taskboard/internal/models"
)

type UserRepository interface {
	Create(ctx context.Context, user *models.Profile) error
	GetByID(ctx context.Context, id int64) (*models.Profile, error)
	GetByEmail(ctx context.Context, email string) (*models.Profile, error)
	UpdateProfile(ctx context.Context, user *models.Profile) error
	UpdatePassword(ctx context.Context, userID int64, passwordHash string) error

	// refresh helpers
	UpdateRefresh(ctx context.Context, userID int64, token string, expiresAt time.Time) error
	RotateRefresh(ctx context.Context, oldToken, newToken string, newExpiresAt time.Time) (*models.Profile, error)
	ClearRefresh(ctx context.Context, userID int64) error

	// telegram helpers
	UpdateTelegramLink(ctx context.Context, userID int64, chatID int64, enable bool) error
	GetTelegramSettings(ctx context.Context, userID int64) (chatID int64, notify bool, err error)
}

type userRepository struct {
	DB *sql.DB
}

func NewUserRepository(db *sql.DB) UserRepository {
	return &userRepository{DB: db}
}

const profileColumns = `
	id, email, COALESCE(full_name,''), COALESCE(avatar_url,''), password_hash,
	refresh_token, refresh_expires_at, refresh_revoked,
	COALESCE(telegram_chat_id,0), COALESCE(notify_telegram,TRUE),
	created_at, updated_at`

func scanProfile(row *sql.Row) (*models.Profile, error) {
	u := &models.Profile{}
	var (
		rt  sql.NullString
		rte sql.NullTime
		rr  sql.NullBool
	)
	err := row.Scan(
		&u.ID, &u.Email, &u.FullName, &u.AvatarURL, &u.PasswordHash,
		&rt, &rte, &rr,
		&u.TelegramChatID, &u.NotifyTelegram,
		&u.CreatedAt, &u.UpdatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	if rt.Valid {
		s := rt.String
		u.RefreshToken = &s
	}
	if rte.Valid {
		t := rte.Time
		u.RefreshExpiresAt = &t
	}
	if rr.Valid {
		u.RefreshRevoked = rr.Bool
	}
	return u, nil
}

func (r *userRepository) Create(ctx context.Context, user *models.Profile) error {
	const q = `
		INSERT INTO profiles (email, full_name, avatar_url, password_hash, notify_telegram)
		VALUES ($1,$2,$3,$4,$5)
		RETURNING id, created_at, updated_at
	`
	return r.DB.QueryRowContext(ctx, q,
		user.Email,
		user.FullName,
		user.AvatarURL,
		user.PasswordHash,
		user.NotifyTelegram,
	).Scan(&user.ID, &user.CreatedAt, &user.UpdatedAt)
}

func (r *userRepository) GetByID(ctx context.Context, id int64) (*models.Profile, error) {
	return scanProfile(r.DB.QueryRowContext(ctx,
		`SELECT `+profileColumns+` FROM profiles WHERE id = $1`, id))
}

func (r *userRepository) GetByEmail(ctx context.Context, email string) (*models.Profile, error) {
	return scanProfile(r.DB.QueryRowContext(ctx,
		`SELECT `+profileColumns+` FROM profiles WHERE email = $1`, email))
}

func (r *userRepository) UpdateProfile(ctx context.Context, user *models.Profile) error {
	const q = `
		UPDATE profiles
		SET full_name=$1, avatar_url=$2, notify_telegram=$3, updated_at=NOW()
		WHERE id=$4
	`
	_, err := r.DB.ExecContext(ctx, q, user.FullName, user.AvatarURL, user.NotifyTelegram, user.ID)
	return err
}

func (r *userRepository) UpdatePassword(ctx context.Context, userID int64, passwordHash string) error {
	_, err := r.DB.ExecContext(ctx,
		`UPDATE profiles SET password_hash=$1, updated_at=NOW() WHERE id=$2`,
		passwordHash, userID)
	return err
}

// ===== refresh helpers =====

func (r *userRepository) UpdateRefresh(ctx context.Context, userID int64, token string, expiresAt time.Time) error {
	const q = `
		UPDATE profiles
		SET refresh_token=$1, refresh_expires_at=$2, refresh_revoked=FALSE
		WHERE id=$3
	`
	_, err := r.DB.ExecContext(ctx, q, token, expiresAt, userID)
	return err
}

func (r *userRepository) RotateRefresh(ctx context.Context, oldToken, newToken string, newExpiresAt time.Time) (*models.Profile, error) {
	const q = `
		UPDATE profiles
		SET refresh_token=$1, refresh_expires_at=$2, refresh_revoked=FALSE
		WHERE refresh_token=$3 AND NOT refresh_revoked AND refresh_expires_at > NOW()
		RETURNING ` + profileColumns
	return scanProfile(r.DB.QueryRowContext(ctx, q, newToken, newExpiresAt, oldToken))
}

func (r *userRepository) ClearRefresh(ctx context.Context, userID int64) error {
	_, err := r.DB.ExecContext(ctx, `
		UPDATE profiles
		SET refresh_token=NULL, refresh_expires_at=NULL, refresh_revoked=TRUE
		WHERE id=$1
	`, userID)
	return err
}

// ===== telegram helpers =====

func (r *userRepository) UpdateTelegramLink(ctx context.Context, userID int64, chatID int64, enable bool) error {
	_, err := r.DB.ExecContext(ctx, `
		UPDATE profiles
		SET telegram_chat_id=$1, notify_telegram=$2, updated_at=NOW()
		WHERE id=$3
	`, chatID, enable, userID)
	return err
}

func (r *userRepository) GetTelegramSettings(ctx context.Context, userID int64) (int64, bool, error) {
	var chat sql.NullInt64
	var notify bool
	err := r.DB.QueryRowContext(ctx,
		`SELECT telegram_chat_id, notify_telegram FROM profiles WHERE id=$1`, userID,
	).Scan(&chat, &notify)
	if err != nil {
		return 0, false, err
	}
	if chat.Valid {
		return chat.Int64, notify, nil
	}
	return 0, notify, nil
}
