package repositories

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/saoodchoudhary/rbmesports/models"
)

var (
	ErrSessionNotFound = errors.New("session not found")
	ErrSessionConflict = errors.New("session id conflict")
)

type SessionRepository interface {
	Create(ctx context.Context, session *models.AuthSession) error
	GetByID(ctx context.Context, id string) (*models.AuthSession, error)
	Delete(ctx context.Context, id string) error
	DeleteByUserID(ctx context.Context, userID string) (int64, error)
	DeleteExpired(ctx context.Context, now time.Time) (int64, error)
}

type postgresSessionRepository struct {
	db *sql.DB
}

func NewPostgresSessionRepository(db *sql.DB) SessionRepository {
	return &postgresSessionRepository{db: db}
}

func (r *postgresSessionRepository) Create(ctx context.Context, session *models.AuthSession) error {
	profile, err := json.Marshal(session.User)
	if err != nil {
		return fmt.Errorf("failed to encode session profile: %w", err)
	}

	query := `
		INSERT INTO auth_sessions (id, user_id, role, profile, backend_token, expires_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING created_at`

	err = r.db.QueryRowContext(ctx, query,
		session.ID,
		session.UserID,
		session.Role,
		profile,
		session.BackendToken,
		session.ExpiresAt,
	).Scan(&session.CreatedAt)

	if err != nil {
		if pqCode(err) == pqUniqueViolation {
			return ErrSessionConflict
		}
		return err
	}
	return nil
}

func (r *postgresSessionRepository) GetByID(ctx context.Context, id string) (*models.AuthSession, error) {
	query := `
		SELECT id, user_id, role, profile, backend_token, created_at, expires_at
		FROM auth_sessions
		WHERE id = $1`

	var (
		session models.AuthSession
		profile []byte
	)
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&session.ID,
		&session.UserID,
		&session.Role,
		&profile,
		&session.BackendToken,
		&session.CreatedAt,
		&session.ExpiresAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrSessionNotFound
		}
		if pqCode(err) == pqInvalidTextRepresentation {
			return nil, ErrSessionNotFound
		}
		return nil, err
	}

	if err := json.Unmarshal(profile, &session.User); err != nil {
		return nil, fmt.Errorf("failed to decode session profile: %w", err)
	}
	return &session, nil
}

func (r *postgresSessionRepository) Delete(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM auth_sessions WHERE id = $1`, id)
	if err != nil {
		return err
	}
	return checkAffectedRows(result, ErrSessionNotFound)
}

func (r *postgresSessionRepository) DeleteByUserID(ctx context.Context, userID string) (int64, error) {
	result, err := r.db.ExecContext(ctx, `DELETE FROM auth_sessions WHERE user_id = $1`, userID)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}

func (r *postgresSessionRepository) DeleteExpired(ctx context.Context, now time.Time) (int64, error) {
	result, err := r.db.ExecContext(ctx, `DELETE FROM auth_sessions WHERE expires_at <= $1`, now)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}
