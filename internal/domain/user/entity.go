package user

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// User is an authenticated dashboard operator.
type User struct {
	ID        uuid.UUID
	Email     string
	Name      *string
	AvatarURL *string
	CreatedAt time.Time
}

// Session is the token pair handed to a signed-in operator.
type Session struct {
	User         User
	AccessToken  string
	RefreshToken string
	ExpiresIn    int
}

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInvalidToken       = errors.New("invalid or expired token")
)
