package database

import (
	"context"
	"database/sql"
	"errors"

	"islandproperties-backend/internal/models"
)

// GetUser retrieves a site user by ID
func (s *SQLStore) GetUser(ctx context.Context, id string) (*models.User, error) {
	return s.getUser(ctx, "id", id)
}

// GetUserByUsername retrieves a site user by username
func (s *SQLStore) GetUserByUsername(ctx context.Context, username string) (*models.User, error) {
	return s.getUser(ctx, "username", username)
}

func (s *SQLStore) getUser(ctx context.Context, column, value string) (*models.User, error) {
	u := &models.User{}
	err := s.db.QueryRowContext(ctx,
		"SELECT id, username, password_hash FROM users WHERE "+column+" = ?", value,
	).Scan(&u.ID, &u.Username, &u.PasswordHash)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return u, nil
}

// CreateUser creates a new site user
func (s *SQLStore) CreateUser(ctx context.Context, u *models.User) error {
	if u.Username == "" {
		return &models.ValidationError{Field: "username", Message: "is required"}
	}
	u.ID = newID()
	_, err := s.db.ExecContext(ctx,
		"INSERT INTO users (id, username, password_hash) VALUES (?, ?, ?)",
		u.ID, u.Username, u.PasswordHash,
	)
	if isUniqueViolation(err) {
		return ErrDuplicateUsername
	}
	return err
}

const adminUserColumns = `id, email, password_hash, role, login_attempts, locked_until, last_login,
	created_at, updated_at`

func scanAdminUser(row scanner) (*models.AdminUser, error) {
	u := &models.AdminUser{}
	var lockedUntil, lastLogin sql.NullTime

	err := row.Scan(
		&u.ID, &u.Email, &u.PasswordHash, &u.Role, &u.LoginAttempts,
		&lockedUntil, &lastLogin, &u.CreatedAt, &u.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	if lockedUntil.Valid {
		u.LockedUntil = &lockedUntil.Time
	}
	if lastLogin.Valid {
		u.LastLogin = &lastLogin.Time
	}

	return u, nil
}

// GetAdminUser retrieves an admin by ID
func (s *SQLStore) GetAdminUser(ctx context.Context, id string) (*models.AdminUser, error) {
	return getAdminUser(ctx, s.db, "id", id)
}

// GetAdminUserByEmail retrieves an admin by email, ignoring case
func (s *SQLStore) GetAdminUserByEmail(ctx context.Context, email string) (*models.AdminUser, error) {
	return getAdminUser(ctx, s.db, "email", models.NormalizeEmail(email))
}

func getAdminUser(ctx context.Context, q querier, column, value string) (*models.AdminUser, error) {
	row := q.QueryRowContext(ctx, "SELECT "+adminUserColumns+" FROM admin_users WHERE "+column+" = ?", value)
	u, err := scanAdminUser(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	return u, err
}

// CountAdminUsers returns the number of admin accounts
func (s *SQLStore) CountAdminUsers(ctx context.Context) (int, error) {
	var count int
	err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM admin_users").Scan(&count)
	return count, err
}

// CreateAdminUser creates a new admin account
func (s *SQLStore) CreateAdminUser(ctx context.Context, u *models.AdminUser) error {
	if err := prepareAdminUser(u, s.now); err != nil {
		return err
	}
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO admin_users (`+adminUserColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, u.ID, u.Email, u.PasswordHash, u.Role, u.LoginAttempts, u.LockedUntil, u.LastLogin,
		u.CreatedAt, u.UpdatedAt)
	if isUniqueViolation(err) {
		return ErrDuplicateEmail
	}
	return err
}

// UpdateAdminUser merges patch over the stored account
func (s *SQLStore) UpdateAdminUser(ctx context.Context, id string, patch models.AdminUserPatch) (*models.AdminUser, error) {
	var updated *models.AdminUser
	err := s.inTx(ctx, func(tx *sql.Tx) error {
		u, err := getAdminUser(ctx, tx, "id", id)
		if err != nil {
			return err
		}
		patch.ApplyTo(u)
		u.UpdatedAt = s.now()
		if err := u.Validate(); err != nil {
			return err
		}

		_, err = tx.ExecContext(ctx, `
			UPDATE admin_users SET email = ?, password_hash = ?, role = ?, login_attempts = ?,
				locked_until = ?, last_login = ?, updated_at = ?
			WHERE id = ?
		`, u.Email, u.PasswordHash, u.Role, u.LoginAttempts, u.LockedUntil, u.LastLogin, u.UpdatedAt, id)
		if isUniqueViolation(err) {
			return ErrDuplicateEmail
		}
		if err != nil {
			return err
		}
		updated = u
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}
