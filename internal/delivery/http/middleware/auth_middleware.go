package middleware

import (
	"context"
	"errors"
	"strings"

	"talent-admin/internal/domain/user"
	"talent-admin/internal/usecase/auth"

	"github.com/gofiber/fiber/v3"
)

const (
	CtxUserKey        = "user"
	CtxAccessTokenKey = "access_token"
)

// Authenticator resolves the operator behind a bearer token.
type Authenticator interface {
	Authenticate(ctx context.Context, accessToken string) (user.User, error)
}

// AuthMiddleware rejects requests without a valid operator session and
// stores the operator and raw token in Locals for downstream handlers.
type AuthMiddleware struct {
	auth Authenticator
}

func NewAuthMiddleware(a Authenticator) *AuthMiddleware {
	return &AuthMiddleware{auth: a}
}

func (m *AuthMiddleware) Middleware() fiber.Handler {
	return func(c fiber.Ctx) error {
		token, ok := BearerToken(c.Get(fiber.HeaderAuthorization))
		if !ok {
			return NewAppError(fiber.StatusUnauthorized, "Unauthorized", nil, nil)
		}

		u, err := m.auth.Authenticate(c.Context(), token)
		switch {
		case errors.Is(err, auth.ErrForbidden):
			return NewAppError(fiber.StatusForbidden, "Access denied", nil, err)
		case err != nil:
			return NewAppError(fiber.StatusUnauthorized, "Invalid token", nil, err)
		}

		c.Locals(CtxUserKey, u)
		c.Locals(CtxAccessTokenKey, token)

		return c.Next()
	}
}

// CurrentUser returns the operator stored by the auth middleware.
func CurrentUser(c fiber.Ctx) (user.User, bool) {
	u, ok := c.Locals(CtxUserKey).(user.User)
	return u, ok
}

// BearerToken extracts the token from an "Authorization: Bearer <token>"
// header. The scheme is case-insensitive.
func BearerToken(header string) (string, bool) {
	scheme, token, ok := strings.Cut(strings.TrimSpace(header), " ")
	if !ok || !strings.EqualFold(scheme, "Bearer") {
		return "", false
	}
	token = strings.TrimSpace(token)
	return token, token != ""
}
