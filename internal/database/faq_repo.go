package database

import (
	"context"
	"database/sql"
	"errors"

	"islandproperties-backend/internal/models"
)

const faqColumns = "id, question, answer, category, sort_order, is_active, created_at, updated_at"

func scanFAQ(row scanner) (*models.FAQ, error) {
	f := &models.FAQ{}
	err := row.Scan(&f.ID, &f.Question, &f.Answer, &f.Category, &f.Order, &f.IsActive, &f.CreatedAt, &f.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return f, nil
}

// ListFAQs returns FAQs by display order
func (s *SQLStore) ListFAQs(ctx context.Context, filter models.FAQFilter) ([]*models.FAQ, error) {
	query := "SELECT " + faqColumns + " FROM faqs"
	if filter.ActiveOnly {
		query += " WHERE is_active = 1"
	}
	query += " ORDER BY sort_order, created_at, seq"

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	faqs := []*models.FAQ{}
	for rows.Next() {
		f, err := scanFAQ(rows)
		if err != nil {
			return nil, err
		}
		faqs = append(faqs, f)
	}

	return faqs, rows.Err()
}

// GetFAQ retrieves a FAQ by ID
func (s *SQLStore) GetFAQ(ctx context.Context, id string) (*models.FAQ, error) {
	return getFAQ(ctx, s.db, id)
}

func getFAQ(ctx context.Context, q querier, id string) (*models.FAQ, error) {
	f, err := scanFAQ(q.QueryRowContext(ctx, "SELECT "+faqColumns+" FROM faqs WHERE id = ?", id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	return f, err
}

// CreateFAQ creates a new FAQ
func (s *SQLStore) CreateFAQ(ctx context.Context, f *models.FAQ) error {
	if err := prepareFAQ(f, s.now); err != nil {
		return err
	}
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO faqs (`+faqColumns+`) VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`, f.ID, f.Question, f.Answer, f.Category, f.Order, f.IsActive, f.CreatedAt, f.UpdatedAt)
	return err
}

// UpdateFAQ merges patch over the stored FAQ
func (s *SQLStore) UpdateFAQ(ctx context.Context, id string, patch models.FAQPatch) (*models.FAQ, error) {
	var updated *models.FAQ
	err := s.inTx(ctx, func(tx *sql.Tx) error {
		f, err := getFAQ(ctx, tx, id)
		if err != nil {
			return err
		}
		patch.ApplyTo(f)
		f.UpdatedAt = s.now()
		if err := f.Validate(); err != nil {
			return err
		}
		_, err = tx.ExecContext(ctx, `
			UPDATE faqs SET question = ?, answer = ?, category = ?, sort_order = ?, is_active = ?,
				updated_at = ?
			WHERE id = ?
		`, f.Question, f.Answer, f.Category, f.Order, f.IsActive, f.UpdatedAt, id)
		if err != nil {
			return err
		}
		updated = f
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// DeleteFAQ deletes a FAQ
func (s *SQLStore) DeleteFAQ(ctx context.Context, id string) error {
	_, err := s.db.ExecContext(ctx, "DELETE FROM faqs WHERE id = ?", id)
	return err
}
