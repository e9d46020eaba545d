package database

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"

	"islandproperties-backend/internal/models"
)

const propertyColumns = `id, title, price, price_per_sqm, location, category, bedrooms, bathrooms,
	square_feet, lot_size, year_built, property_type, description, detailed_description,
	features, images, video_url, contact_info, broker_name, broker_phone, broker_email,
	title_type, is_featured, is_hot, category_data`

type scanner interface {
	Scan(dest ...any) error
}

func scanProperty(row scanner) (*models.Property, error) {
	p := &models.Property{}
	var features, images, contactInfo, categoryData sql.NullString

	err := row.Scan(
		&p.ID, &p.Title, &p.Price, &p.PricePerSqm, &p.Location, &p.Category,
		&p.Bedrooms, &p.Bathrooms, &p.SquareFeet, &p.LotSize, &p.YearBuilt, &p.PropertyType,
		&p.Description, &p.DetailedDescription, &features, &images, &p.VideoURL,
		&contactInfo, &p.BrokerName, &p.BrokerPhone, &p.BrokerEmail, &p.TitleType,
		&p.IsFeatured, &p.IsHot, &categoryData,
	)
	if err != nil {
		return nil, err
	}

	if err := fromJSON(features, &p.Features); err != nil {
		return nil, err
	}
	if err := fromJSON(images, &p.Images); err != nil {
		return nil, err
	}
	if err := fromJSON(contactInfo, &p.ContactInfo); err != nil {
		return nil, err
	}
	if categoryData.Valid {
		p.CategoryData, err = models.DecodeCategoryData(p.Category, json.RawMessage(categoryData.String))
		if err != nil {
			return nil, err
		}
	}

	return p, nil
}

// propertyArgs returns the column values of p in propertyColumns order,
// without the id.
func propertyArgs(p *models.Property) ([]any, error) {
	features, err := toJSON(p.Features)
	if err != nil {
		return nil, err
	}
	images, err := toJSON(p.Images)
	if err != nil {
		return nil, err
	}
	var contactInfo, categoryData sql.NullString
	if p.ContactInfo != nil {
		s, err := toJSON(p.ContactInfo)
		if err != nil {
			return nil, err
		}
		contactInfo = sql.NullString{String: s, Valid: true}
	}
	if p.CategoryData != nil {
		s, err := toJSON(p.CategoryData)
		if err != nil {
			return nil, err
		}
		categoryData = sql.NullString{String: s, Valid: true}
	}

	return []any{
		p.Title, p.Price, p.PricePerSqm, p.Location, p.Category,
		p.Bedrooms, p.Bathrooms, p.SquareFeet, p.LotSize, p.YearBuilt, p.PropertyType,
		p.Description, p.DetailedDescription, features, images, p.VideoURL,
		contactInfo, p.BrokerName, p.BrokerPhone, p.BrokerEmail, p.TitleType,
		p.IsFeatured, p.IsHot, categoryData,
	}, nil
}

// ListProperties returns the properties matching filter in insertion order.
// Category and status are applied in SQL; the search term is matched in Go
// so case folding follows Unicode rather than SQLite's ASCII-only LOWER.
func (s *SQLStore) ListProperties(ctx context.Context, filter models.PropertyFilter) ([]*models.Property, error) {
	query := "SELECT " + propertyColumns + " FROM properties WHERE 1=1"
	args := []any{}

	if filter.Category != "" {
		query += " AND category = ?"
		args = append(args, filter.Category)
	}
	switch filter.Status {
	case models.StatusFeatured:
		query += " AND is_featured = 1"
	case models.StatusHot:
		query += " AND is_hot = 1"
	}
	query += " ORDER BY seq"

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	properties := []*models.Property{}
	for rows.Next() {
		p, err := scanProperty(rows)
		if err != nil {
			return nil, err
		}
		if filter.Matches(p) {
			properties = append(properties, p)
		}
	}

	return properties, rows.Err()
}

// GetProperty retrieves a property by ID
func (s *SQLStore) GetProperty(ctx context.Context, id string) (*models.Property, error) {
	return getProperty(ctx, s.db, id)
}

func getProperty(ctx context.Context, q querier, id string) (*models.Property, error) {
	row := q.QueryRowContext(ctx, "SELECT "+propertyColumns+" FROM properties WHERE id = ?", id)
	p, err := scanProperty(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	return p, err
}

// CreateProperty creates a new property
func (s *SQLStore) CreateProperty(ctx context.Context, p *models.Property) error {
	if err := prepareProperty(p); err != nil {
		return err
	}
	args, err := propertyArgs(p)
	if err != nil {
		return err
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO properties (`+propertyColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, append([]any{p.ID}, args...)...)
	return err
}

// UpdateProperty merges patch over the stored property
func (s *SQLStore) UpdateProperty(ctx context.Context, id string, patch models.PropertyPatch) (*models.Property, error) {
	var updated *models.Property
	err := s.inTx(ctx, func(tx *sql.Tx) error {
		p, err := getProperty(ctx, tx, id)
		if err != nil {
			return err
		}
		if err := patch.ApplyTo(p); err != nil {
			return err
		}
		if err := p.Validate(); err != nil {
			return err
		}
		args, err := propertyArgs(p)
		if err != nil {
			return err
		}

		_, err = tx.ExecContext(ctx, `
			UPDATE properties SET title = ?, price = ?, price_per_sqm = ?, location = ?,
				category = ?, bedrooms = ?, bathrooms = ?, square_feet = ?, lot_size = ?,
				year_built = ?, property_type = ?, description = ?, detailed_description = ?,
				features = ?, images = ?, video_url = ?, contact_info = ?, broker_name = ?,
				broker_phone = ?, broker_email = ?, title_type = ?, is_featured = ?, is_hot = ?,
				category_data = ?
			WHERE id = ?
		`, append(args, id)...)
		if err != nil {
			return err
		}
		updated = p
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// DeleteProperty deletes a property
func (s *SQLStore) DeleteProperty(ctx context.Context, id string) error {
	_, err := s.db.ExecContext(ctx, "DELETE FROM properties WHERE id = ?", id)
	return err
}
