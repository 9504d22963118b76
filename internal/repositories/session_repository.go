package repositories

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"restaurant_backend/internal/database"
	"restaurant_backend/internal/models"
)

// SessionRepository persists server-side login sessions.
type SessionRepository interface {
	CreateSession(ctx context.Context, session *models.Session) error
	GetSession(ctx context.Context, sid string) (*models.Session, error)
	DeleteSession(ctx context.Context, sid string) error
	// DeleteExpiredSessions removes every session whose expiry is at or before now.
	DeleteExpiredSessions(ctx context.Context, now time.Time) (int64, error)
}

type sessionRepository struct {
	db *database.DB
}

// NewSessionRepository creates a new instance of SessionRepository.
func NewSessionRepository(db *database.DB) SessionRepository {
	return &sessionRepository{db: db}
}

func (r *sessionRepository) CreateSession(ctx context.Context, session *models.Session) error {
	payload, err := json.Marshal(session.Data)
	if err != nil {
		return fmt.Errorf("encoding session payload: %w", err)
	}
	_, err = r.db.ExecContext(ctx,
		`INSERT INTO sessions (sid, sess, expire) VALUES ($1, $2, $3)`,
		session.SID, payload, session.Expire,
	)
	if err != nil {
		return classify(err, "creating session")
	}
	return nil
}

func (r *sessionRepository) GetSession(ctx context.Context, sid string) (*models.Session, error) {
	session := &models.Session{SID: sid}
	var payload []byte
	err := r.db.QueryRowContext(ctx, `SELECT sess, expire FROM sessions WHERE sid = $1`, sid).Scan(&payload, &session.Expire)
	if err != nil {
		return nil, classify(err, "getting session")
	}
	if err := json.Unmarshal(payload, &session.Data); err != nil {
		return nil, fmt.Errorf("%w: decoding session payload: %w", ErrDatabaseError, err)
	}
	return session, nil
}

func (r *sessionRepository) DeleteSession(ctx context.Context, sid string) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM sessions WHERE sid = $1`, sid); err != nil {
		return classify(err, "deleting session")
	}
	return nil
}

func (r *sessionRepository) DeleteExpiredSessions(ctx context.Context, now time.Time) (int64, error) {
	res, err := r.db.ExecContext(ctx, `DELETE FROM sessions WHERE expire <= $1`, now)
	if err != nil {
		return 0, classify(err, "pruning sessions")
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, classify(err, "pruning sessions")
	}
	return n, nil
}
