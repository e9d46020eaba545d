package database

import (
	"context"
	"database/sql"
	"errors"

	"islandproperties-backend/internal/models"
)

const blogPostColumns = `id, title, slug, content, excerpt, featured_image, category, tags,
	seo_title, seo_description, status, publish_date, author, created_at, updated_at`

func scanBlogPost(row scanner) (*models.BlogPost, error) {
	p := &models.BlogPost{}
	var tags sql.NullString

	err := row.Scan(
		&p.ID, &p.Title, &p.Slug, &p.Content, &p.Excerpt, &p.FeaturedImage, &p.Category,
		&tags, &p.SEOTitle, &p.SEODescription, &p.Status, &p.PublishDate, &p.Author,
		&p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	if err := fromJSON(tags, &p.Tags); err != nil {
		return nil, err
	}
	return p, nil
}

// ListBlogPosts returns the posts matching filter, newest first
func (s *SQLStore) ListBlogPosts(ctx context.Context, filter models.BlogPostFilter) ([]*models.BlogPost, error) {
	query := "SELECT " + blogPostColumns + " FROM blog_posts"
	args := []any{}
	if filter.Status != "" {
		query += " WHERE status = ?"
		args = append(args, filter.Status)
	}
	query += " ORDER BY created_at DESC, seq DESC"

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	posts := []*models.BlogPost{}
	for rows.Next() {
		p, err := scanBlogPost(rows)
		if err != nil {
			return nil, err
		}
		posts = append(posts, p)
	}

	return posts, rows.Err()
}

// GetBlogPost retrieves a post by ID
func (s *SQLStore) GetBlogPost(ctx context.Context, id string) (*models.BlogPost, error) {
	return getBlogPost(ctx, s.db, "id", id)
}

// GetBlogPostBySlug retrieves a post by slug
func (s *SQLStore) GetBlogPostBySlug(ctx context.Context, slug string) (*models.BlogPost, error) {
	return getBlogPost(ctx, s.db, "slug", slug)
}

// getBlogPost looks a post up by a unique column. column is never user input.
func getBlogPost(ctx context.Context, q querier, column, value string) (*models.BlogPost, error) {
	row := q.QueryRowContext(ctx, "SELECT "+blogPostColumns+" FROM blog_posts WHERE "+column+" = ?", value)
	p, err := scanBlogPost(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	return p, err
}

// CreateBlogPost creates a new post
func (s *SQLStore) CreateBlogPost(ctx context.Context, p *models.BlogPost) error {
	if err := prepareBlogPost(p, s.now); err != nil {
		return err
	}
	tags, err := toJSON(p.Tags)
	if err != nil {
		return err
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO blog_posts (`+blogPostColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, p.ID, p.Title, p.Slug, p.Content, p.Excerpt, p.FeaturedImage, p.Category, tags,
		p.SEOTitle, p.SEODescription, p.Status, p.PublishDate, p.Author, p.CreatedAt, p.UpdatedAt)
	if isUniqueViolation(err) {
		return ErrDuplicateSlug
	}
	return err
}

// UpdateBlogPost merges patch over the stored post
func (s *SQLStore) UpdateBlogPost(ctx context.Context, id string, patch models.BlogPostPatch) (*models.BlogPost, error) {
	var updated *models.BlogPost
	err := s.inTx(ctx, func(tx *sql.Tx) error {
		p, err := getBlogPost(ctx, tx, "id", id)
		if err != nil {
			return err
		}
		patch.ApplyTo(p)
		p.UpdatedAt = s.now()
		if err := p.Validate(); err != nil {
			return err
		}
		tags, err := toJSON(p.Tags)
		if err != nil {
			return err
		}

		_, err = tx.ExecContext(ctx, `
			UPDATE blog_posts SET title = ?, slug = ?, content = ?, excerpt = ?, featured_image = ?,
				category = ?, tags = ?, seo_title = ?, seo_description = ?, status = ?,
				publish_date = ?, author = ?, updated_at = ?
			WHERE id = ?
		`, p.Title, p.Slug, p.Content, p.Excerpt, p.FeaturedImage, p.Category, tags,
			p.SEOTitle, p.SEODescription, p.Status, p.PublishDate, p.Author, p.UpdatedAt, id)
		if isUniqueViolation(err) {
			return ErrDuplicateSlug
		}
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

// DeleteBlogPost deletes a post
func (s *SQLStore) DeleteBlogPost(ctx context.Context, id string) error {
	_, err := s.db.ExecContext(ctx, "DELETE FROM blog_posts WHERE id = ?", id)
	return err
}
