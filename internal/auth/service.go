package auth

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"islandproperties-backend/internal/audit"
	"islandproperties-backend/internal/database"
	"islandproperties-backend/internal/models"
	"islandproperties-backend/internal/session"
)

// Lockout and session policy
const (
	MaxLoginAttempts = 5
	LockDuration     = 15 * time.Minute
	SessionTTL       = 2 * time.Hour
	RememberMeTTL    = 7 * 24 * time.Hour
)

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrMissingCredentials = errors.New("email and password are required")
	ErrUnauthorized       = errors.New("unauthorized")
	ErrAccountLocked      = errors.New("account locked")
)

// LockedError is returned by Login while the account is inside its lockout
// window. It matches ErrAccountLocked with errors.Is.
type LockedError struct {
	Until time.Time
}

func (e *LockedError) Error() string {
	return fmt.Sprintf("account locked until %s", e.Until.Format(time.RFC3339))
}

func (e *LockedError) Is(target error) bool {
	return target == ErrAccountLocked
}

// AdminStore is the part of the repository the auth service needs
type AdminStore interface {
	GetAdminUser(ctx context.Context, id string) (*models.AdminUser, error)
	GetAdminUserByEmail(ctx context.Context, email string) (*models.AdminUser, error)
	UpdateAdminUser(ctx context.Context, id string, patch models.AdminUserPatch) (*models.AdminUser, error)
}

// Recorder writes security log entries
type Recorder interface {
	Record(ctx context.Context, e audit.Entry) (*models.SecurityLog, error)
}

// Service handles authentication logic
type Service struct {
	admins   AdminStore
	sessions session.Store
	audit    Recorder
	now      func() time.Time
	locks    *keyedMutex
}

// NewService creates a new auth service
func NewService(admins AdminStore, sessions session.Store, recorder Recorder) *Service {
	return &Service{
		admins:   admins,
		sessions: sessions,
		audit:    recorder,
		now:      func() time.Time { return time.Now().UTC() },
		locks:    newKeyedMutex(),
	}
}

// WithClock sets the time source used for lockout decisions. Intended for tests.
func (s *Service) WithClock(now func() time.Time) *Service {
	s.now = now
	return s
}

// LoginRequest represents login credentials
type LoginRequest struct {
	Email      string `json:"email"`
	Password   string `json:"password"`
	RememberMe bool   `json:"rememberMe"`
}

// ClientInfo identifies the caller for the security log
type ClientInfo struct {
	IPAddress string
	UserAgent string
}

// LoginResponse represents a successful login
type LoginResponse struct {
	User      *models.AdminUser
	Token     string
	TTL       time.Duration
	ExpiresAt time.Time
}

// Login authenticates an admin and issues a session.
//
// An unknown email and a wrong password both yield ErrInvalidCredentials and
// a failed_login entry. A locked account yields *LockedError without touching
// the attempt counter or the log. The fifth consecutive failure locks the
// account for LockDuration; only a successful login resets the counter.
func (s *Service) Login(ctx context.Context, req LoginRequest, client ClientInfo) (*LoginResponse, error) {
	email := models.NormalizeEmail(req.Email)
	if email == "" || req.Password == "" {
		return nil, ErrMissingCredentials
	}

	found, err := s.admins.GetAdminUserByEmail(ctx, email)
	if errors.Is(err, database.ErrNotFound) {
		burnPasswordCheck(req.Password)
		s.record(ctx, "", models.ActionFailedLogin, client, map[string]any{
			"email":  email,
			"reason": "User not found",
		})
		return nil, ErrInvalidCredentials
	}
	if err != nil {
		return nil, err
	}

	// Attempts for one account are serialized so concurrent failures
	// cannot under-count toward the lock.
	unlock := s.locks.Lock(found.ID)
	defer unlock()

	user, err := s.admins.GetAdminUser(ctx, found.ID)
	if err != nil {
		return nil, err
	}

	now := s.now()
	if user.IsLocked(now) {
		return nil, &LockedError{Until: *user.LockedUntil}
	}

	ok, err := VerifyPassword(req.Password, user.PasswordHash)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, s.recordFailure(ctx, user, now, client)
	}

	user, err = s.admins.UpdateAdminUser(ctx, user.ID, models.AdminUserPatch{
		LoginAttempts: models.Set(0),
		LockedUntil:   models.Set[*time.Time](nil),
		LastLogin:     models.Set(&now),
	})
	if err != nil {
		return nil, err
	}

	ttl := SessionTTL
	if req.RememberMe {
		ttl = RememberMeTTL
	}
	token, sess, err := s.sessions.Issue(ctx, user.ID, ttl)
	if err != nil {
		return nil, err
	}

	s.record(ctx, user.ID, models.ActionLogin, client, map[string]any{
		"email":      user.Email,
		"rememberMe": req.RememberMe,
	})

	return &LoginResponse{User: user, Token: token, TTL: ttl, ExpiresAt: sess.ExpiresAt}, nil
}

// recordFailure counts a wrong password, locking the account at the
// threshold, and returns the error Login reports.
func (s *Service) recordFailure(ctx context.Context, user *models.AdminUser, now time.Time, client ClientInfo) error {
	attempts := user.LoginAttempts + 1
	patch := models.AdminUserPatch{LoginAttempts: models.Set(attempts)}
	details := map[string]any{
		"email":   user.Email,
		"reason":  "Invalid password",
		"attempt": attempts,
	}
	if attempts >= MaxLoginAttempts {
		until := now.Add(LockDuration)
		patch.LockedUntil = models.Set(&until)
		details["lockedUntil"] = until.Format(time.RFC3339)
	}

	if _, err := s.admins.UpdateAdminUser(ctx, user.ID, patch); err != nil {
		return err
	}
	s.record(ctx, user.ID, models.ActionFailedLogin, client, details)
	return ErrInvalidCredentials
}

// Logout revokes the session token and records the logout against admin
func (s *Service) Logout(ctx context.Context, admin *models.AdminUser, token string, client ClientInfo) error {
	if err := s.sessions.Revoke(ctx, token); err != nil {
		return err
	}
	s.record(ctx, admin.ID, models.ActionLogout, client, map[string]any{"email": admin.Email})
	return nil
}

// ValidateToken validates a session token and returns the admin it belongs
// to. Unknown, expired and orphaned tokens all yield ErrUnauthorized; an
// orphaned token is revoked.
func (s *Service) ValidateToken(ctx context.Context, token string) (*models.AdminUser, *models.Session, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return nil, nil, ErrUnauthorized
	}

	sess, err := s.sessions.Validate(ctx, token)
	if errors.Is(err, session.ErrNotFound) || errors.Is(err, session.ErrExpired) {
		return nil, nil, ErrUnauthorized
	}
	if err != nil {
		return nil, nil, err
	}

	user, err := s.admins.GetAdminUser(ctx, sess.AdminUserID)
	if errors.Is(err, database.ErrNotFound) {
		if err := s.sessions.Revoke(ctx, token); err != nil {
			log.Printf("auth: failed to revoke session of missing admin %s: %v", sess.AdminUserID, err)
		}
		return nil, nil, ErrUnauthorized
	}
	if err != nil {
		return nil, nil, err
	}

	return user, sess, nil
}

func (s *Service) record(ctx context.Context, adminUserID, action string, client ClientInfo, details map[string]any) {
	if s.audit == nil {
		return
	}
	s.audit.Record(ctx, audit.Entry{
		AdminUserID: adminUserID,
		Action:      action,
		IPAddress:   client.IPAddress,
		UserAgent:   client.UserAgent,
		Details:     details,
	})
}
