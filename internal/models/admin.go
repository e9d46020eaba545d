package models

import (
	"strings"
	"time"
)

// Role represents back-office access levels
type Role string

const (
	RoleAdmin      Role = "admin"
	RoleSuperAdmin Role = "super_admin"
)

// AdminUser is a back-office account
type AdminUser struct {
	ID            string     `json:"id"`
	Email         string     `json:"email"`
	PasswordHash  string     `json:"-"` // Never expose in JSON
	Role          Role       `json:"role"`
	LoginAttempts int        `json:"loginAttempts"`
	LockedUntil   *time.Time `json:"lockedUntil"`
	LastLogin     *time.Time `json:"lastLogin"`
	CreatedAt     time.Time  `json:"createdAt"`
	UpdatedAt     time.Time  `json:"updatedAt"`
}

// IsLocked reports whether the account is inside its lockout window at now.
// A lockedUntil at or before now is no longer enforced.
func (u *AdminUser) IsLocked(now time.Time) bool {
	return u.LockedUntil != nil && u.LockedUntil.After(now)
}

// Validate checks the account invariants.
func (u *AdminUser) Validate() error {
	if u.Email == "" || !strings.Contains(u.Email, "@") {
		return invalid("email", "must be a valid email address")
	}
	if u.PasswordHash == "" {
		return invalid("password", "is required")
	}
	if u.Role != RoleAdmin && u.Role != RoleSuperAdmin {
		return invalid("role", "must be one of: admin super_admin")
	}
	return nil
}

// AdminUserPatch is a shallow partial update of an admin account
type AdminUserPatch struct {
	Email         Field[string]
	PasswordHash  Field[string]
	Role          Field[Role]
	LoginAttempts Field[int]
	LockedUntil   Field[*time.Time]
	LastLogin     Field[*time.Time]
}

// ApplyTo merges the supplied fields over u.
func (p AdminUserPatch) ApplyTo(u *AdminUser) {
	if p.Email.Set {
		u.Email = NormalizeEmail(p.Email.Value)
	}
	p.PasswordHash.ApplyTo(&u.PasswordHash)
	p.Role.ApplyTo(&u.Role)
	p.LoginAttempts.ApplyTo(&u.LoginAttempts)
	p.LockedUntil.ApplyTo(&u.LockedUntil)
	p.LastLogin.ApplyTo(&u.LastLogin)
}

// NormalizeEmail trims and lowercases an address so lookups are
// case-insensitive.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// User is a public-site account
type User struct {
	ID           string `json:"id"`
	Username     string `json:"username"`
	PasswordHash string `json:"-"`
}
