// Package dashboard builds the admin overview from repository reads.
package dashboard

import (
	"context"
	"errors"
	"time"

	"islandproperties-backend/internal/database"
	"islandproperties-backend/internal/models"
)

// RecentActivityLimit is how many log entries the overview shows
const RecentActivityLimit = 10

// UnknownUser is shown for entries with no resolvable admin
const UnknownUser = "Unknown"

// Source is the part of the repository the dashboard reads
type Source interface {
	ListProperties(ctx context.Context, filter models.PropertyFilter) ([]*models.Property, error)
	ListSecurityLogs(ctx context.Context, limit int) ([]*models.SecurityLog, error)
	GetAdminUser(ctx context.Context, id string) (*models.AdminUser, error)
}

// Stats is the admin dashboard payload
type Stats struct {
	TotalProperties      int                     `json:"totalProperties"`
	PropertiesByCategory map[models.Category]int `json:"propertiesByCategory"`
	RecentActivity       []Activity              `json:"recentActivity"`
}

// Activity is a security log entry projected for display
type Activity struct {
	ID        string    `json:"id"`
	Action    string    `json:"action"`
	Timestamp time.Time `json:"timestamp"`
	User      string    `json:"user"`
}

// Build computes the dashboard. Every known category is present in the
// breakdown, with zero when it has no listings; properties in other
// categories count toward the total only.
func Build(ctx context.Context, src Source) (*Stats, error) {
	properties, err := src.ListProperties(ctx, models.PropertyFilter{})
	if err != nil {
		return nil, err
	}

	stats := &Stats{
		TotalProperties:      len(properties),
		PropertiesByCategory: make(map[models.Category]int, len(models.Categories)),
		RecentActivity:       []Activity{},
	}
	for _, c := range models.Categories {
		stats.PropertiesByCategory[c] = 0
	}
	for _, p := range properties {
		if _, ok := stats.PropertiesByCategory[p.Category]; ok {
			stats.PropertiesByCategory[p.Category]++
		}
	}

	logs, err := src.ListSecurityLogs(ctx, RecentActivityLimit)
	if err != nil {
		return nil, err
	}

	// Several entries usually share an admin
	names := map[string]string{}
	for _, l := range logs {
		user := UnknownUser
		if l.AdminUserID != nil {
			id := *l.AdminUserID
			name, seen := names[id]
			if !seen {
				name, err = displayName(ctx, src, id)
				if err != nil {
					return nil, err
				}
				names[id] = name
			}
			user = name
		}
		stats.RecentActivity = append(stats.RecentActivity, Activity{
			ID:        l.ID,
			Action:    l.Action,
			Timestamp: l.CreatedAt,
			User:      user,
		})
	}

	return stats, nil
}

func displayName(ctx context.Context, src Source, id string) (string, error) {
	admin, err := src.GetAdminUser(ctx, id)
	if errors.Is(err, database.ErrNotFound) {
		return UnknownUser, nil
	}
	if err != nil {
		return "", err
	}
	return admin.Email, nil
}
