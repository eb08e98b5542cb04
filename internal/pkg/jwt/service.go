package jwt

import (
	"errors"
	"time"

	jwtlib "github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

const (
	TokenTypeAccess  = "access"
	TokenTypeRefresh = "refresh"
)

var (
	ErrTokenExpired = errors.New("token expired")
	ErrTokenInvalid = errors.New("token invalid")
)

// Claims covers both locally issued tokens and Supabase access tokens, which
// carry no token_type and use "authenticated" as role.
type Claims struct {
	Email     string `json:"email,omitempty"`
	Role      string `json:"role,omitempty"`
	TokenType string `json:"token_type,omitempty"`

	jwtlib.RegisteredClaims
}

func (c Claims) UserID() (uuid.UUID, error) {
	id, err := uuid.Parse(c.Subject)
	if err != nil {
		return uuid.Nil, ErrTokenInvalid
	}
	return id, nil
}

type Service interface {
	GenerateAccessToken(userID uuid.UUID, email string) (string, error)
	GenerateRefreshToken(userID uuid.UUID, email string) (string, error)
	ValidateAccessToken(tokenString string) (Claims, error)
	ValidateRefreshToken(tokenString string) (Claims, error)
	AccessExpiresIn() time.Duration
}

// Issuer is the iss claim of tokens minted by this service.
const Issuer = "talent-admin"

const operatorRole = "admin"

// signingKey is the secret and lifetime of one token type. A zero ttl means
// the key can verify but not sign.
type signingKey struct {
	secret []byte
	ttl    time.Duration
}

func (k signingKey) canSign() bool   { return len(k.secret) > 0 && k.ttl > 0 }
func (k signingKey) canVerify() bool { return len(k.secret) > 0 }

// HMACService signs and verifies HS256 tokens, with separate keys for
// access and refresh tokens.
type HMACService struct {
	keys map[string]signingKey
	now  func() time.Time
}

func NewHMACService(accessSecret, refreshSecret string, accessExpiresIn, refreshExpiresIn time.Duration) *HMACService {
	return &HMACService{
		keys: map[string]signingKey{
			TokenTypeAccess:  {secret: []byte(accessSecret), ttl: accessExpiresIn},
			TokenTypeRefresh: {secret: []byte(refreshSecret), ttl: refreshExpiresIn},
		},
		now: time.Now,
	}
}

// NewVerifier returns a service that only validates access tokens signed
// with secret, such as the ones issued by Supabase auth.
func NewVerifier(secret string) *HMACService {
	return &HMACService{
		keys: map[string]signingKey{TokenTypeAccess: {secret: []byte(secret)}},
		now:  time.Now,
	}
}

func (s *HMACService) AccessExpiresIn() time.Duration {
	return s.keys[TokenTypeAccess].ttl
}

func (s *HMACService) GenerateAccessToken(userID uuid.UUID, email string) (string, error) {
	return s.sign(TokenTypeAccess, userID, email)
}

func (s *HMACService) GenerateRefreshToken(userID uuid.UUID, email string) (string, error) {
	return s.sign(TokenTypeRefresh, userID, email)
}

// ValidateAccessToken accepts tokens typed "access" and untyped tokens from
// an external issuer.
func (s *HMACService) ValidateAccessToken(tokenString string) (Claims, error) {
	c, err := s.verify(TokenTypeAccess, tokenString)
	if err != nil {
		return Claims{}, err
	}
	if c.TokenType != "" && c.TokenType != TokenTypeAccess {
		return Claims{}, ErrTokenInvalid
	}
	return c, nil
}

func (s *HMACService) ValidateRefreshToken(tokenString string) (Claims, error) {
	c, err := s.verify(TokenTypeRefresh, tokenString)
	if err != nil {
		return Claims{}, err
	}
	if c.TokenType != TokenTypeRefresh {
		return Claims{}, ErrTokenInvalid
	}
	return c, nil
}

func (s *HMACService) sign(tokenType string, userID uuid.UUID, email string) (string, error) {
	key := s.keys[tokenType]
	if !key.canSign() {
		return "", ErrTokenInvalid
	}

	now := s.now().UTC()
	claims := Claims{
		Email:     email,
		Role:      operatorRole,
		TokenType: tokenType,
		RegisteredClaims: jwtlib.RegisteredClaims{
			ID:        uuid.NewString(),
			Issuer:    Issuer,
			Subject:   userID.String(),
			IssuedAt:  jwtlib.NewNumericDate(now),
			ExpiresAt: jwtlib.NewNumericDate(now.Add(key.ttl)),
		},
	}
	return jwtlib.NewWithClaims(jwtlib.SigningMethodHS256, claims).SignedString(key.secret)
}

func (s *HMACService) verify(tokenType, tokenString string) (Claims, error) {
	key := s.keys[tokenType]
	if !key.canVerify() || tokenString == "" {
		return Claims{}, ErrTokenInvalid
	}

	parser := jwtlib.NewParser(
		jwtlib.WithValidMethods([]string{jwtlib.SigningMethodHS256.Alg()}),
		jwtlib.WithTimeFunc(s.now),
		jwtlib.WithExpirationRequired(),
	)

	var c Claims
	_, err := parser.ParseWithClaims(tokenString, &c, func(*jwtlib.Token) (any, error) {
		return key.secret, nil
	})
	switch {
	case errors.Is(err, jwtlib.ErrTokenExpired):
		return Claims{}, ErrTokenExpired
	case err != nil:
		return Claims{}, ErrTokenInvalid
	}
	if _, err := c.UserID(); err != nil {
		return Claims{}, err
	}
	return c, nil
}
