package handler

import (
	"context"
	"errors"
	"strings"

	"talent-admin/internal/delivery/http/dto"
	"talent-admin/internal/delivery/http/middleware"
	"talent-admin/internal/domain/user"
	"talent-admin/internal/pkg/response"
	"talent-admin/internal/usecase/auth"

	"github.com/gofiber/fiber/v3"
)

type AuthService interface {
	SignIn(ctx context.Context, email, password string) (user.Session, error)
	Refresh(ctx context.Context, refreshToken string) (user.Session, error)
	SignOut(ctx context.Context, accessToken string) error
}

type AuthHandler struct {
	svc AuthService
}

func NewAuthHandler(svc AuthService) *AuthHandler {
	return &AuthHandler{svc: svc}
}

// RegisterRoutes mounts the auth endpoints; protected guards logout and me.
func (h *AuthHandler) RegisterRoutes(r fiber.Router, protected fiber.Handler) {
	if r == nil {
		return
	}

	r.Post("/login", h.Login)
	r.Post("/refresh", h.Refresh)
	r.Post("/logout", protected, h.Logout)
	r.Get("/me", protected, h.Me)
}

func (h *AuthHandler) Login(c fiber.Ctx) error {
	var req dto.LoginRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}
	if strings.TrimSpace(req.Email) == "" || req.Password == "" {
		return middleware.NewAppError(fiber.StatusBadRequest, "Email and password are required", nil, nil)
	}

	sess, err := h.svc.SignIn(c.Context(), req.Email, req.Password)
	if err != nil {
		return mapAuthError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.NewSessionResponse(sess))
}

func (h *AuthHandler) Refresh(c fiber.Ctx) error {
	var req dto.RefreshRequest
	if len(c.Body()) > 0 {
		if err := c.Bind().Body(&req); err != nil {
			return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
		}
	}
	tok := strings.TrimSpace(req.RefreshToken)
	if tok == "" {
		bearer, ok := middleware.BearerToken(c.Get(fiber.HeaderAuthorization))
		if !ok {
			return middleware.NewAppError(fiber.StatusUnauthorized, "Unauthorized", nil, nil)
		}
		tok = bearer
	}

	sess, err := h.svc.Refresh(c.Context(), tok)
	if err != nil {
		if errors.Is(err, auth.ErrUnauthorized) {
			return middleware.NewAppError(fiber.StatusUnauthorized, "Invalid refresh token", nil, err)
		}
		return mapAuthError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.NewSessionResponse(sess))
}

func (h *AuthHandler) Logout(c fiber.Ctx) error {
	tok, _ := c.Locals(middleware.CtxAccessTokenKey).(string)
	if err := h.svc.SignOut(c.Context(), tok); err != nil {
		return mapAuthError(err)
	}
	return response.Success(c, fiber.StatusOK, "Signed out", nil)
}

func (h *AuthHandler) Me(c fiber.Ctx) error {
	u, ok := middleware.CurrentUser(c)
	if !ok {
		return middleware.NewAppError(fiber.StatusUnauthorized, "Unauthorized", nil, nil)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.NewUserResponse(u))
}

func mapAuthError(err error) error {
	if err == nil {
		return nil
	}

	switch {
	case errors.Is(err, auth.ErrInvalidCredentials):
		return middleware.NewAppError(fiber.StatusUnauthorized, "Invalid email or password", nil, err)
	case errors.Is(err, auth.ErrUnauthorized):
		return middleware.NewAppError(fiber.StatusUnauthorized, "Unauthorized", nil, err)
	case errors.Is(err, auth.ErrForbidden):
		return middleware.NewAppError(fiber.StatusForbidden, "Access denied", nil, err)
	default:
		return middleware.NewAppError(fiber.StatusInternalServerError, response.MessageInternalServerError, nil, err)
	}
}
