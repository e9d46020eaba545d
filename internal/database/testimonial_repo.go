package database

import (
	"context"
	"database/sql"
	"errors"

	"islandproperties-backend/internal/models"
)

// ListTestimonials retrieves all testimonials in insertion order
func (s *SQLStore) ListTestimonials(ctx context.Context) ([]*models.Testimonial, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, name, title, quote, avatar, rating
		FROM testimonials ORDER BY seq
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	testimonials := []*models.Testimonial{}
	for rows.Next() {
		t := &models.Testimonial{}
		if err := rows.Scan(&t.ID, &t.Name, &t.Title, &t.Quote, &t.Avatar, &t.Rating); err != nil {
			return nil, err
		}
		testimonials = append(testimonials, t)
	}

	return testimonials, rows.Err()
}

// GetTestimonial retrieves a testimonial by ID
func (s *SQLStore) GetTestimonial(ctx context.Context, id string) (*models.Testimonial, error) {
	return getTestimonial(ctx, s.db, id)
}

func getTestimonial(ctx context.Context, q querier, id string) (*models.Testimonial, error) {
	t := &models.Testimonial{}
	err := q.QueryRowContext(ctx, `
		SELECT id, name, title, quote, avatar, rating
		FROM testimonials WHERE id = ?
	`, id).Scan(&t.ID, &t.Name, &t.Title, &t.Quote, &t.Avatar, &t.Rating)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return t, nil
}

// CreateTestimonial creates a new testimonial
func (s *SQLStore) CreateTestimonial(ctx context.Context, t *models.Testimonial) error {
	if err := prepareTestimonial(t); err != nil {
		return err
	}
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO testimonials (id, name, title, quote, avatar, rating)
		VALUES (?, ?, ?, ?, ?, ?)
	`, t.ID, t.Name, t.Title, t.Quote, t.Avatar, t.Rating)
	return err
}

// UpdateTestimonial merges patch over the stored testimonial
func (s *SQLStore) UpdateTestimonial(ctx context.Context, id string, patch models.TestimonialPatch) (*models.Testimonial, error) {
	var updated *models.Testimonial
	err := s.inTx(ctx, func(tx *sql.Tx) error {
		t, err := getTestimonial(ctx, tx, id)
		if err != nil {
			return err
		}
		patch.ApplyTo(t)
		if err := t.Validate(); err != nil {
			return err
		}
		_, err = tx.ExecContext(ctx, `
			UPDATE testimonials SET name = ?, title = ?, quote = ?, avatar = ?, rating = ?
			WHERE id = ?
		`, t.Name, t.Title, t.Quote, t.Avatar, t.Rating, id)
		if err != nil {
			return err
		}
		updated = t
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// DeleteTestimonial deletes a testimonial
func (s *SQLStore) DeleteTestimonial(ctx context.Context, id string) error {
	_, err := s.db.ExecContext(ctx, "DELETE FROM testimonials WHERE id = ?", id)
	return err
}
