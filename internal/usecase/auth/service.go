package auth

import (
	"context"
	"errors"
	"log"
	"strings"

	"talent-admin/internal/domain/user"
)

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUnauthorized       = errors.New("unauthorized")
	ErrForbidden          = errors.New("operator not allowed")
	ErrInternal           = errors.New("internal error")
)

const (
	EventSignedIn  = "signed_in"
	EventSignedOut = "signed_out"
)

// Provider is a credential backend issuing and checking operator sessions.
type Provider interface {
	SignIn(ctx context.Context, email, password string) (user.Session, error)
	Refresh(ctx context.Context, refreshToken string) (user.Session, error)
	SignOut(ctx context.Context, accessToken string) error
	Verify(ctx context.Context, accessToken string) (user.User, error)
}

// SessionEvents is told about sign-in and sign-out so open dashboards can follow.
type SessionEvents interface {
	SessionChanged(event string, u user.User)
}

type Service struct {
	provider Provider
	allowed  map[string]struct{}
	events   SessionEvents
	logger   *log.Logger
}

// NewService wraps provider. A non-empty allowedEmails restricts access to
// those operators.
func NewService(provider Provider, allowedEmails []string, events SessionEvents, logger *log.Logger) *Service {
	if logger == nil {
		logger = log.Default()
	}
	var allowed map[string]struct{}
	if len(allowedEmails) > 0 {
		allowed = make(map[string]struct{}, len(allowedEmails))
		for _, e := range allowedEmails {
			allowed[normalizeEmail(e)] = struct{}{}
		}
	}
	return &Service{provider: provider, allowed: allowed, events: events, logger: logger}
}

func (s *Service) SignIn(ctx context.Context, email, password string) (user.Session, error) {
	email = normalizeEmail(email)
	if email == "" || password == "" {
		return user.Session{}, ErrInvalidCredentials
	}

	sess, err := s.provider.SignIn(ctx, email, password)
	if err != nil {
		return user.Session{}, s.mapProviderError("sign in", err)
	}
	if !s.isAllowed(sess.User.Email) {
		s.logger.Printf("[Auth] sign in rejected by allowlist email=%s", sess.User.Email)
		_ = s.provider.SignOut(ctx, sess.AccessToken)
		return user.Session{}, ErrForbidden
	}

	s.logger.Printf("[Auth] signed in user_id=%s", sess.User.ID)
	s.emit(EventSignedIn, sess.User)
	return sess, nil
}

func (s *Service) Refresh(ctx context.Context, refreshToken string) (user.Session, error) {
	refreshToken = strings.TrimSpace(refreshToken)
	if refreshToken == "" {
		return user.Session{}, ErrUnauthorized
	}
	sess, err := s.provider.Refresh(ctx, refreshToken)
	if err != nil {
		return user.Session{}, s.mapProviderError("refresh", err)
	}
	if !s.isAllowed(sess.User.Email) {
		return user.Session{}, ErrForbidden
	}
	return sess, nil
}

func (s *Service) SignOut(ctx context.Context, accessToken string) error {
	u, err := s.Authenticate(ctx, accessToken)
	if err != nil {
		return err
	}
	if err := s.provider.SignOut(ctx, accessToken); err != nil {
		s.logger.Printf("[Auth] sign out failed user_id=%s err=%v", u.ID, err)
		return ErrInternal
	}
	s.logger.Printf("[Auth] signed out user_id=%s", u.ID)
	s.emit(EventSignedOut, u)
	return nil
}

// Authenticate resolves the operator behind an access token.
func (s *Service) Authenticate(ctx context.Context, accessToken string) (user.User, error) {
	accessToken = strings.TrimSpace(accessToken)
	if accessToken == "" {
		return user.User{}, ErrUnauthorized
	}
	u, err := s.provider.Verify(ctx, accessToken)
	if err != nil {
		return user.User{}, ErrUnauthorized
	}
	if !s.isAllowed(u.Email) {
		return user.User{}, ErrForbidden
	}
	return u, nil
}

func (s *Service) isAllowed(email string) bool {
	if s.allowed == nil {
		return true
	}
	_, ok := s.allowed[normalizeEmail(email)]
	return ok
}

func (s *Service) emit(event string, u user.User) {
	if s.events != nil {
		s.events.SessionChanged(event, u)
	}
}

func (s *Service) mapProviderError(op string, err error) error {
	switch {
	case errors.Is(err, user.ErrInvalidCredentials):
		return ErrInvalidCredentials
	case errors.Is(err, user.ErrInvalidToken):
		return ErrUnauthorized
	default:
		s.logger.Printf("[Auth] %s failed err=%v", op, err)
		return ErrInternal
	}
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
