package server

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/jonathan/ats-ranker/internal/config"
	"github.com/jonathan/ats-ranker/internal/server/middleware"
)

// tokenIssuer is set on every token and required on validation.
const tokenIssuer = "ats-ranker"

// Claims identify a signed-in caller. Owner grants the quota bypass and the
// audit view.
type Claims struct {
	Email string `json:"email"`
	Owner bool   `json:"owner,omitempty"`
	jwt.RegisteredClaims
}

// GetEmail implements middleware.Identity.
func (c *Claims) GetEmail() string { return c.Email }

// IsOwner implements middleware.Identity.
func (c *Claims) IsOwner() bool { return c.Owner }

// JWTService issues and checks HS256 session tokens.
type JWTService struct {
	config *config.JWTConfig
	now    func() time.Time
}

// NewJWTService creates a JWTService signing with cfg.Secret.
func NewJWTService(cfg *config.JWTConfig) *JWTService {
	return &JWTService{config: cfg, now: time.Now}
}

// AsTokenValidator adapts the service for middleware.OptionalAuth.
func (s *JWTService) AsTokenValidator() middleware.TokenValidator {
	return tokenValidatorFunc(func(token string) (middleware.Identity, error) {
		claims, err := s.ValidateToken(token)
		if err != nil {
			return nil, err
		}
		return claims, nil
	})
}

type tokenValidatorFunc func(string) (middleware.Identity, error)

func (f tokenValidatorFunc) ValidateToken(token string) (middleware.Identity, error) {
	return f(token)
}

// GenerateToken signs a token for email and returns it with its expiry.
func (s *JWTService) GenerateToken(email string, owner bool) (string, time.Time, error) {
	if email == "" {
		return "", time.Time{}, errors.New("email is required")
	}

	issuedAt := s.now()
	expiresAt := issuedAt.Add(s.config.Expiration())
	claims := &Claims{
		Email: email,
		Owner: owner,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    tokenIssuer,
			Subject:   email,
			IssuedAt:  jwt.NewNumericDate(issuedAt),
			NotBefore: jwt.NewNumericDate(issuedAt),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(s.config.Secret))
	if err != nil {
		return "", time.Time{}, fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, expiresAt, nil
}

// ValidateToken checks signature, algorithm, issuer and lifetime and returns
// the claims. Errors wrap the jwt package's sentinel errors.
func (s *JWTService) ValidateToken(tokenString string) (*Claims, error) {
	if tokenString == "" {
		return nil, errors.New("token string is empty")
	}

	claims := &Claims{}
	_, err := jwt.ParseWithClaims(tokenString, claims,
		func(*jwt.Token) (any, error) { return []byte(s.config.Secret), nil },
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(tokenIssuer),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(s.now),
	)
	switch {
	case err == nil:
	case errors.Is(err, jwt.ErrTokenExpired):
		return nil, fmt.Errorf("token expired: %w", err)
	case errors.Is(err, jwt.ErrTokenSignatureInvalid):
		return nil, fmt.Errorf("invalid token signature: %w", err)
	case errors.Is(err, jwt.ErrTokenMalformed):
		return nil, fmt.Errorf("malformed token: %w", err)
	default:
		return nil, fmt.Errorf("invalid token: %w", err)
	}

	if claims.Email == "" {
		return nil, errors.New("token has no email claim")
	}
	return claims, nil
}
