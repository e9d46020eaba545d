package database

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"islandproperties-backend/internal/models"
	"islandproperties-backend/internal/session"
)

// SessionRepo is a session.Store over the admin_sessions table
type SessionRepo struct {
	db  *sql.DB
	now func() time.Time
}

// NewSessionRepo creates a new session repository
func NewSessionRepo(db *sql.DB) *SessionRepo {
	return &SessionRepo{db: db, now: func() time.Time { return time.Now().UTC() }}
}

// WithClock sets the time source. Intended for tests.
func (r *SessionRepo) WithClock(now func() time.Time) *SessionRepo {
	r.now = now
	return r
}

// Issue creates a new session and returns the plain token
func (r *SessionRepo) Issue(ctx context.Context, adminUserID string, ttl time.Duration) (string, *models.Session, error) {
	token, sess, err := session.NewSession(adminUserID, ttl, r.now())
	if err != nil {
		return "", nil, err
	}

	_, err = r.db.ExecContext(ctx, `
		INSERT INTO admin_sessions (token_hash, admin_user_id, created_at, expires_at)
		VALUES (?, ?, ?, ?)
	`, sess.TokenHash, sess.AdminUserID, sess.CreatedAt, sess.ExpiresAt)
	if err != nil {
		return "", nil, err
	}

	return token, sess, nil
}

// Validate retrieves a session by its plain token
func (r *SessionRepo) Validate(ctx context.Context, token string) (*models.Session, error) {
	sess := &models.Session{}

	err := r.db.QueryRowContext(ctx, `
		SELECT token_hash, admin_user_id, created_at, expires_at
		FROM admin_sessions WHERE token_hash = ?
	`, session.HashToken(token)).Scan(&sess.TokenHash, &sess.AdminUserID, &sess.CreatedAt, &sess.ExpiresAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, session.ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	// Check if expired
	if sess.Expired(r.now()) {
		// Clean up expired session
		r.db.ExecContext(ctx, "DELETE FROM admin_sessions WHERE token_hash = ?", sess.TokenHash)
		return nil, session.ErrExpired
	}

	return sess, nil
}

// Revoke deletes a session by its plain token
func (r *SessionRepo) Revoke(ctx context.Context, token string) error {
	_, err := r.db.ExecContext(ctx, "DELETE FROM admin_sessions WHERE token_hash = ?", session.HashToken(token))
	return err
}

// DeleteExpired removes all expired sessions
func (r *SessionRepo) DeleteExpired(ctx context.Context) (int64, error) {
	result, err := r.db.ExecContext(ctx, "DELETE FROM admin_sessions WHERE expires_at < ?", r.now())
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}
