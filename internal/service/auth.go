package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"reflect"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/bookscoutapp/bookscout-server/internal/config"
	"github.com/bookscoutapp/bookscout-server/internal/domain"
	domainerrors "github.com/bookscoutapp/bookscout-server/internal/errors"
	"github.com/bookscoutapp/bookscout-server/internal/id"
	"github.com/bookscoutapp/bookscout-server/internal/store"
)

// validate is a shared validator instance for request validation.
var validate = func() *validator.Validate {
	v := validator.New()
	// Use JSON tag names for field names in error messages
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := fld.Tag.Get("json")
		if name == "" {
			return fld.Name
		}
		for i := range len(name) {
			if name[i] == ',' {
				return name[:i]
			}
		}
		return name
	})
	return v
}()

// GoogleProfile is the identity asserted by a completed OAuth exchange.
type GoogleProfile struct {
	Sub   string `json:"sub" validate:"required"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// AuthService handles sign-in, the registration gate, browser sessions,
// and admin access decisions.
type AuthService struct {
	store  store.Store
	cfg    *config.Config
	logger *slog.Logger
}

// NewAuthService creates a new authentication service.
func NewAuthService(store store.Store, cfg *config.Config, logger *slog.Logger) *AuthService {
	return &AuthService{
		store:  store,
		cfg:    cfg,
		logger: logger,
	}
}

// SignIn admits a verified Google identity. Known users are always let
// through and their profile refreshed; unknown identities are admitted
// only while registration is open. The account row and the admission
// decision commit together, so toggling registration mid-flight cannot
// strand a half-created user.
func (s *AuthService) SignIn(ctx context.Context, profile GoogleProfile) (*domain.User, *domain.Session, error) {
	if err := validate.Struct(profile); err != nil {
		return nil, nil, formatValidationError(err)
	}

	known, err := s.store.UserExists(ctx, profile.Sub)
	if err != nil {
		return nil, nil, fmt.Errorf("check user: %w", err)
	}

	if !known && !s.cfg.Admin.AllowRegistration {
		s.logger.Info("registration closed, sign-in refused",
			"email", profile.Email,
		)
		return nil, nil, domainerrors.RegistrationClosed("registration is currently closed")
	}

	now := time.Now()
	user := &domain.User{
		ID:        profile.Sub,
		Name:      profile.Name,
		Email:     profile.Email,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.store.UpsertUser(ctx, user); err != nil {
		return nil, nil, fmt.Errorf("upsert user: %w", err)
	}

	sess, err := s.createSession(ctx, user.ID)
	if err != nil {
		return nil, nil, err
	}

	s.logger.Info("user signed in",
		"user_id", user.ID,
		"new_account", !known,
	)
	return user, sess, nil
}

// DevSignIn signs in the reserved development identity without touching
// Google. It is refused in production outright, and otherwise only
// honored on the day named by the dev access date.
func (s *AuthService) DevSignIn(ctx context.Context) (*domain.User, *domain.Session, error) {
	if s.cfg.IsProduction() {
		return nil, nil, domainerrors.Forbidden("dev sign-in is disabled in production")
	}

	today := time.Now().Format("2006-01-02")
	if s.cfg.Admin.DevAccessDate != today {
		s.logger.Warn("dev sign-in refused",
			"access_date", s.cfg.Admin.DevAccessDate,
		)
		return nil, nil, domainerrors.Forbidden("dev sign-in is not enabled today")
	}

	// The dev identity is exempt from the registration gate: the date
	// check above is its admission control.
	now := time.Now()
	user := &domain.User{
		ID:        "dev-user",
		Name:      "Dev User",
		Email:     s.cfg.Admin.DevUserEmail,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.store.UpsertUser(ctx, user); err != nil {
		return nil, nil, fmt.Errorf("upsert dev user: %w", err)
	}

	sess, err := s.createSession(ctx, user.ID)
	if err != nil {
		return nil, nil, err
	}

	s.logger.Info("dev user signed in", "user_id", user.ID)
	return user, sess, nil
}

// createSession mints a session with a fresh CSRF token.
func (s *AuthService) createSession(ctx context.Context, userID string) (*domain.Session, error) {
	sessionID, err := id.NewSession()
	if err != nil {
		return nil, fmt.Errorf("generate session ID: %w", err)
	}
	csrfToken, err := id.NewCSRFToken()
	if err != nil {
		return nil, fmt.Errorf("generate CSRF token: %w", err)
	}

	now := time.Now()
	sess := &domain.Session{
		ID:         sessionID,
		UserID:     userID,
		CSRFToken:  csrfToken,
		CreatedAt:  now,
		ExpiresAt:  now.Add(s.cfg.Auth.SessionDuration),
		LastSeenAt: now,
	}
	if err := s.store.CreateSession(ctx, sess); err != nil {
		return nil, fmt.Errorf("create session: %w", err)
	}
	return sess, nil
}

// SessionUser resolves a session cookie to its user. An expired or
// unknown session reads as unauthorized.
func (s *AuthService) SessionUser(ctx context.Context, sessionID string) (*domain.User, *domain.Session, error) {
	sess, err := s.store.GetSession(ctx, sessionID)
	if errors.Is(err, store.ErrSessionNotFound) {
		return nil, nil, domainerrors.Unauthorized("session expired or unknown")
	}
	if err != nil {
		return nil, nil, fmt.Errorf("get session: %w", err)
	}

	user, err := s.store.GetUser(ctx, sess.UserID)
	if err != nil {
		return nil, nil, fmt.Errorf("get session user: %w", err)
	}

	if err := s.store.TouchSession(ctx, sess.ID); err != nil {
		s.logger.Warn("touch session failed", "error", err)
	}
	return user, sess, nil
}

// SignOut discards a session. Signing out an unknown session is fine.
func (s *AuthService) SignOut(ctx context.Context, sessionID string) error {
	if sessionID == "" {
		return nil
	}
	if err := s.store.DeleteSession(ctx, sessionID); err != nil {
		return fmt.Errorf("delete session: %w", err)
	}
	return nil
}

// SweepSessions removes expired sessions and reports how many went.
func (s *AuthService) SweepSessions(ctx context.Context) (int, error) {
	return s.store.DeleteExpiredSessions(ctx)
}

// AuthorizeAdmin decides whether a user may enter the admin surface.
// The configured admin email is allowed everywhere; the reserved dev
// identity is allowed outside production. Every refusal of a signed-in
// user is logged with the identity that tried.
func (s *AuthService) AuthorizeAdmin(user *domain.User) error {
	if user == nil {
		return domainerrors.Unauthorized("sign in required")
	}
	if s.cfg.Admin.AdminEmail != "" && user.Email == s.cfg.Admin.AdminEmail {
		return nil
	}
	if !s.cfg.IsProduction() && user.Email == s.cfg.Admin.DevUserEmail {
		return nil
	}

	s.logger.Warn("admin access refused",
		"email", user.Email,
	)
	return domainerrors.Forbidden("admin access required")
}

// formatValidationError converts validator errors into domain errors.
func formatValidationError(err error) error {
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		for _, e := range validationErrs {
			field := e.Field()
			switch e.Tag() {
			case "required":
				return domainerrors.Validationf("%s is required", field)
			case "min":
				return domainerrors.Validationf("%s must be at least %s", field, e.Param())
			case "max":
				return domainerrors.Validationf("%s must be at most %s", field, e.Param())
			default:
				return domainerrors.Validationf("%s is invalid", field)
			}
		}
	}
	return err
}
