package audit

import (
	"context"
	"errors"
	"testing"

	"islandproperties-backend/internal/database"
	"islandproperties-backend/internal/models"
)

type failingWriter struct{}

func (failingWriter) CreateSecurityLog(context.Context, *models.SecurityLog) error {
	return errors.New("disk full")
}

func TestRecord(t *testing.T) {
	store := database.NewMemStore()
	logger := NewLogger(store)
	ctx := context.Background()

	entry, err := logger.Record(ctx, Entry{
		AdminUserID: "admin-1",
		Action:      models.ActionCreateProperty,
		IPAddress:   "192.0.2.10",
		UserAgent:   "curl/8",
		Details:     map[string]any{"propertyId": "p-1"},
	})
	if err != nil {
		t.Fatalf("Record: %v", err)
	}
	if entry.ID == "" || entry.CreatedAt.IsZero() {
		t.Errorf("entry not stored: %+v", entry)
	}
	if entry.AdminUserID == nil || *entry.AdminUserID != "admin-1" {
		t.Errorf("adminUserId = %v", entry.AdminUserID)
	}

	logs, _ := store.ListSecurityLogs(ctx, 10)
	if len(logs) != 1 || logs[0].Details["propertyId"] != "p-1" || logs[0].IPAddress != "192.0.2.10" {
		t.Errorf("unexpected logs: %+v", logs)
	}
}

func TestRecordWithoutAdmin(t *testing.T) {
	store := database.NewMemStore()
	entry, err := NewLogger(store).Record(context.Background(), Entry{Action: models.ActionFailedLogin})
	if err != nil {
		t.Fatalf("Record: %v", err)
	}
	if entry.AdminUserID != nil {
		t.Errorf("adminUserId = %v, want nil", *entry.AdminUserID)
	}
}

func TestRecordReturnsWriteError(t *testing.T) {
	if _, err := NewLogger(failingWriter{}).Record(context.Background(), Entry{Action: "x"}); err == nil {
		t.Error("write failure not reported")
	}
}
