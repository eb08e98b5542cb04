package auth

import (
	"context"
	"strings"
	"time"

	"talent-admin/internal/domain/user"
	"talent-admin/internal/pkg/jwt"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// LocalProvider authenticates a single operator configured by email and
// bcrypt hash and issues its own HS256 tokens. Tokens are stateless, so
// sign-out only takes effect on the client.
type LocalProvider struct {
	email        string
	passwordHash []byte
	tokens       jwt.Service
	userID       uuid.UUID
	createdAt    time.Time
}

func NewLocalProvider(email, passwordHash string, tokens jwt.Service) *LocalProvider {
	email = normalizeEmail(email)
	return &LocalProvider{
		email:        email,
		passwordHash: []byte(strings.TrimSpace(passwordHash)),
		tokens:       tokens,
		userID:       uuid.NewSHA1(uuid.NameSpaceURL, []byte("talent-admin:operator:"+email)),
		createdAt:    time.Now().UTC(),
	}
}

func (p *LocalProvider) operator() user.User {
	return user.User{ID: p.userID, Email: p.email, CreatedAt: p.createdAt}
}

func (p *LocalProvider) SignIn(_ context.Context, email, password string) (user.Session, error) {
	if normalizeEmail(email) != p.email {
		return user.Session{}, user.ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword(p.passwordHash, []byte(password)); err != nil {
		return user.Session{}, user.ErrInvalidCredentials
	}
	return p.issue()
}

func (p *LocalProvider) Refresh(_ context.Context, refreshToken string) (user.Session, error) {
	c, err := p.tokens.ValidateRefreshToken(refreshToken)
	if err != nil {
		return user.Session{}, user.ErrInvalidToken
	}
	if id, err := c.UserID(); err != nil || id != p.userID {
		return user.Session{}, user.ErrInvalidToken
	}
	return p.issue()
}

func (p *LocalProvider) SignOut(context.Context, string) error {
	return nil
}

func (p *LocalProvider) Verify(_ context.Context, accessToken string) (user.User, error) {
	c, err := p.tokens.ValidateAccessToken(accessToken)
	if err != nil {
		return user.User{}, user.ErrInvalidToken
	}
	if id, err := c.UserID(); err != nil || id != p.userID {
		return user.User{}, user.ErrInvalidToken
	}
	return p.operator(), nil
}

func (p *LocalProvider) issue() (user.Session, error) {
	access, err := p.tokens.GenerateAccessToken(p.userID, p.email)
	if err != nil {
		return user.Session{}, err
	}
	refresh, err := p.tokens.GenerateRefreshToken(p.userID, p.email)
	if err != nil {
		return user.Session{}, err
	}
	return user.Session{
		User:         p.operator(),
		AccessToken:  access,
		RefreshToken: refresh,
		ExpiresIn:    int(p.tokens.AccessExpiresIn().Seconds()),
	}, nil
}
