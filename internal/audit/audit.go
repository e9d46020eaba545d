// Package audit appends admin activity to the security log.
package audit

import (
	"context"
	"log"

	"islandproperties-backend/internal/models"
)

// Writer is the part of the repository the logger needs
type Writer interface {
	CreateSecurityLog(ctx context.Context, l *models.SecurityLog) error
}

// Entry describes one audited event. AdminUserID is empty for events with
// no resolved admin, such as a login for an unknown email.
type Entry struct {
	AdminUserID string
	Action      string
	IPAddress   string
	UserAgent   string
	Details     map[string]any
}

// Logger records audit entries
type Logger struct {
	w Writer
}

// NewLogger creates a new audit logger
func NewLogger(w Writer) *Logger {
	return &Logger{w: w}
}

// Record appends e to the security log. A failed write is logged and
// returned; callers treat it as non-fatal.
func (l *Logger) Record(ctx context.Context, e Entry) (*models.SecurityLog, error) {
	entry := &models.SecurityLog{
		Action:    e.Action,
		IPAddress: e.IPAddress,
		UserAgent: e.UserAgent,
		Details:   e.Details,
	}
	if e.AdminUserID != "" {
		id := e.AdminUserID
		entry.AdminUserID = &id
	}

	if err := l.w.CreateSecurityLog(ctx, entry); err != nil {
		log.Printf("audit: failed to record %s: %v", e.Action, err)
		return nil, err
	}
	return entry, nil
}
