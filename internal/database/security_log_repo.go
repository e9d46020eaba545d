package database

import (
	"context"
	"database/sql"
	"fmt"

	"islandproperties-backend/internal/models"
)

// CreateSecurityLog appends a security log entry
func (s *SQLStore) CreateSecurityLog(ctx context.Context, l *models.SecurityLog) error {
	var details sql.NullString
	if l.Details != nil {
		b, err := toJSON(l.Details)
		if err != nil {
			return fmt.Errorf("encode security log details: %w", err)
		}
		details = sql.NullString{String: b, Valid: true}
	}

	l.ID = newID()
	l.CreatedAt = s.now()

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO security_logs (id, admin_user_id, action, ip_address, user_agent, details, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`, l.ID, l.AdminUserID, l.Action, l.IPAddress, l.UserAgent, details, l.CreatedAt)
	return err
}

// ListSecurityLogs retrieves the most recent entries, newest first
func (s *SQLStore) ListSecurityLogs(ctx context.Context, limit int) ([]*models.SecurityLog, error) {
	if limit <= 0 {
		limit = models.DefaultSecurityLogLimit
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, admin_user_id, action, ip_address, user_agent, details, created_at
		FROM security_logs ORDER BY created_at DESC, seq DESC LIMIT ?
	`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	logs := []*models.SecurityLog{}
	for rows.Next() {
		l := &models.SecurityLog{}
		var ipAddress, userAgent, details sql.NullString

		err := rows.Scan(&l.ID, &l.AdminUserID, &l.Action, &ipAddress, &userAgent, &details, &l.CreatedAt)
		if err != nil {
			return nil, err
		}

		if ipAddress.Valid {
			l.IPAddress = ipAddress.String
		}
		if userAgent.Valid {
			l.UserAgent = userAgent.String
		}
		if err := fromJSON(details, &l.Details); err != nil {
			return nil, err
		}

		logs = append(logs, l)
	}

	return logs, rows.Err()
}
