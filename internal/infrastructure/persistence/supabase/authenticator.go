package supabase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"talent-admin/internal/domain/user"
	"talent-admin/internal/pkg/jwt"

	"github.com/google/uuid"
	supabasego "github.com/nedpals/supabase-go"
)

// Authenticator signs operators in through Supabase auth. Access tokens are
// verified locally with the project JWT secret instead of a round trip.
type Authenticator struct {
	client   *Client
	verifier jwt.Service
}

func NewAuthenticator(client *Client, jwtSecret string) *Authenticator {
	return &Authenticator{client: client, verifier: jwt.NewVerifier(jwtSecret)}
}

func (a *Authenticator) SignIn(ctx context.Context, email, password string) (user.Session, error) {
	details, err := a.client.sb.Auth.SignIn(ctx, supabasego.UserCredentials{Email: email, Password: password})
	if err != nil {
		return user.Session{}, fmt.Errorf("%w: %v", user.ErrInvalidCredentials, err)
	}
	return sessionFromDetails(details)
}

func (a *Authenticator) Refresh(ctx context.Context, refreshToken string) (user.Session, error) {
	details, err := a.client.sb.Auth.RefreshUser(ctx, "", refreshToken)
	if err != nil {
		return user.Session{}, fmt.Errorf("%w: %v", user.ErrInvalidToken, err)
	}
	return sessionFromDetails(details)
}

func (a *Authenticator) SignOut(ctx context.Context, accessToken string) error {
	if err := a.client.sb.Auth.SignOut(ctx, accessToken); err != nil {
		return fmt.Errorf("supabase sign out: %w", err)
	}
	return nil
}

func (a *Authenticator) Verify(_ context.Context, accessToken string) (user.User, error) {
	c, err := a.verifier.ValidateAccessToken(accessToken)
	if err != nil {
		return user.User{}, fmt.Errorf("%w: %v", user.ErrInvalidToken, err)
	}
	id, err := c.UserID()
	if err != nil {
		return user.User{}, user.ErrInvalidToken
	}
	return user.User{ID: id, Email: strings.ToLower(c.Email)}, nil
}

func sessionFromDetails(d *supabasego.AuthenticatedDetails) (user.Session, error) {
	if d == nil || d.AccessToken == "" {
		return user.Session{}, user.ErrInvalidCredentials
	}
	u, err := userFromSupabase(d.User.ID, d.User.Email, d.User.UserMetadata, d.User.CreatedAt)
	if err != nil {
		return user.Session{}, err
	}
	return user.Session{
		User:         u,
		AccessToken:  d.AccessToken,
		RefreshToken: d.RefreshToken,
		ExpiresIn:    d.ExpiresIn,
	}, nil
}

func userFromSupabase(id, email string, meta map[string]interface{}, createdAt time.Time) (user.User, error) {
	uid, err := uuid.Parse(id)
	if err != nil {
		return user.User{}, fmt.Errorf("supabase user id %q: %w", id, err)
	}
	u := user.User{
		ID:        uid,
		Email:     strings.ToLower(email),
		CreatedAt: createdAt,
	}
	for _, key := range []string{"full_name", "name"} {
		if v, ok := meta[key].(string); ok && v != "" {
			u.Name = &v
			break
		}
	}
	if v, ok := meta["avatar_url"].(string); ok && v != "" {
		u.AvatarURL = &v
	}
	return u, nil
}
