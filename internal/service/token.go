package service

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/guttosm/fulfillment-service/config"
)

// ScopeInventoryWrite allows changing the catalog and crediting stock.
const ScopeInventoryWrite = "inventory:write"

// TokenIssuer is the iss claim of every operator token.
const TokenIssuer = "fulfillment-service"

var (
	// ErrInvalidToken is returned when a token fails signature, expiry or issuer checks.
	ErrInvalidToken = errors.New("invalid token")
	// ErrMissingSigningKey is returned when tokens are requested without a secret.
	ErrMissingSigningKey = errors.New("jwt signing key is not configured")
)

// TokenClaims are the claims carried by an operator token.
type TokenClaims struct {
	Scopes []string `json:"scopes,omitempty"`
	jwt.RegisteredClaims
}

// HasScope reports whether the claims grant scope.
func (c *TokenClaims) HasScope(scope string) bool {
	return slices.Contains(c.Scopes, scope)
}

// TokenService issues and validates operator tokens.
type TokenService interface {
	// IssueToken signs a token for subject with the given scopes.
	IssueToken(subject string, scopes []string) (string, time.Time, error)
	// ValidateToken parses a token and returns its claims.
	ValidateToken(ctx context.Context, tokenString string) (*TokenClaims, error)
}

// TokenConfig holds configuration for the token service.
type TokenConfig struct {
	SecretKey string
	TTL       time.Duration
}

// NewTokenConfigFromAuthConfig creates TokenConfig from config.AuthConfig.
func NewTokenConfigFromAuthConfig(authConfig config.AuthConfig) TokenConfig {
	return TokenConfig{
		SecretKey: authConfig.JWTSecretKey,
		TTL:       authConfig.TokenTTL,
	}
}

// TokenServiceImpl implements TokenService with HS256 signatures.
type TokenServiceImpl struct {
	secretKey []byte
	ttl       time.Duration
	now       func() time.Time
}

// NewTokenService creates a token service. It fails without a secret key.
func NewTokenService(cfg TokenConfig) (*TokenServiceImpl, error) {
	if cfg.SecretKey == "" {
		return nil, ErrMissingSigningKey
	}
	if cfg.TTL <= 0 {
		cfg.TTL = time.Hour
	}
	return &TokenServiceImpl{
		secretKey: []byte(cfg.SecretKey),
		ttl:       cfg.TTL,
		now:       time.Now,
	}, nil
}

// IssueToken signs a token for subject with the given scopes.
func (s *TokenServiceImpl) IssueToken(subject string, scopes []string) (string, time.Time, error) {
	now := s.now()
	expiresAt := now.Add(s.ttl)

	claims := &TokenClaims{
		Scopes: scopes,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    TokenIssuer,
			Subject:   subject,
			ID:        uuid.NewString(),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.secretKey)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, expiresAt, nil
}

// ValidateToken parses a token and returns its claims.
func (s *TokenServiceImpl) ValidateToken(_ context.Context, tokenString string) (*TokenClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &TokenClaims{}, func(*jwt.Token) (interface{}, error) {
		return s.secretKey, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(TokenIssuer),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}

	claims, ok := token.Claims.(*TokenClaims)
	if !ok || !token.Valid {
		return nil, ErrInvalidToken
	}
	return claims, nil
}
