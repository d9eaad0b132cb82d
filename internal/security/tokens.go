package security

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

var (
	// ErrInvalidToken covers bad signatures, wrong secrets, expiry, and malformed input.
	ErrInvalidToken = errors.New("invalid or expired token")
	// ErrWrongTokenType is returned when a reset token lacks the password_reset discriminator.
	ErrWrongTokenType = errors.New("invalid token type")
)

// TokenTypePasswordReset discriminates reset tokens from every other kind.
const TokenTypePasswordReset = "password_reset"

// AuthConfig holds key material and lifetimes. It is built once at startup
// and never mutated afterwards.
type AuthConfig struct {
	AccessSecret  []byte
	RefreshSecret []byte
	ResetSecret   []byte

	AccessTTL          time.Duration
	AccessRememberTTL  time.Duration
	RefreshTTL         time.Duration
	RefreshRememberTTL time.Duration
	PasswordResetTTL   time.Duration
}

// DefaultAuthConfig uses the standard lifetimes: 15m / 7d access, 7d / 30d
// refresh, 1h reset.
func DefaultAuthConfig(accessSecret, refreshSecret, resetSecret string) AuthConfig {
	return AuthConfig{
		AccessSecret:       []byte(accessSecret),
		RefreshSecret:      []byte(refreshSecret),
		ResetSecret:        []byte(resetSecret),
		AccessTTL:          15 * time.Minute,
		AccessRememberTTL:  7 * 24 * time.Hour,
		RefreshTTL:         7 * 24 * time.Hour,
		RefreshRememberTTL: 30 * 24 * time.Hour,
		PasswordResetTTL:   time.Hour,
	}
}

// Subject is the identity a token is minted for.
type Subject struct {
	ID    string
	Email string
	Role  string
}

type AccessClaims struct {
	UserID string `json:"userId"`
	Email  string `json:"email"`
	Role   string `json:"role"`
	jwt.RegisteredClaims
}

type RefreshClaims struct {
	UserID string `json:"userId"`
	jwt.RegisteredClaims
}

type ResetClaims struct {
	UserID string `json:"userId"`
	Type   string `json:"type"`
	jwt.RegisteredClaims
}

// TokenIssuer signs and verifies the three token kinds, each with its own secret.
type TokenIssuer struct {
	cfg AuthConfig
	now func() time.Time
}

func NewTokenIssuer(cfg AuthConfig) *TokenIssuer {
	return &TokenIssuer{cfg: cfg, now: time.Now}
}

func (i *TokenIssuer) IssueAccess(sub Subject, rememberMe bool) (string, error) {
	ttl := i.cfg.AccessTTL
	if rememberMe {
		ttl = i.cfg.AccessRememberTTL
	}
	return i.sign(AccessClaims{
		UserID:           sub.ID,
		Email:            sub.Email,
		Role:             sub.Role,
		RegisteredClaims: i.registered(sub.ID, ttl),
	}, i.cfg.AccessSecret)
}

func (i *TokenIssuer) IssueRefresh(sub Subject, rememberMe bool) (string, error) {
	ttl := i.cfg.RefreshTTL
	if rememberMe {
		ttl = i.cfg.RefreshRememberTTL
	}
	return i.sign(RefreshClaims{
		UserID:           sub.ID,
		RegisteredClaims: i.registered(sub.ID, ttl),
	}, i.cfg.RefreshSecret)
}

func (i *TokenIssuer) IssueReset(sub Subject) (string, error) {
	return i.sign(ResetClaims{
		UserID:           sub.ID,
		Type:             TokenTypePasswordReset,
		RegisteredClaims: i.registered(sub.ID, i.cfg.PasswordResetTTL),
	}, i.cfg.ResetSecret)
}

func (i *TokenIssuer) VerifyAccess(token string) (*AccessClaims, error) {
	claims := &AccessClaims{}
	if err := i.verify(token, i.cfg.AccessSecret, claims); err != nil {
		return nil, err
	}
	return claims, nil
}

func (i *TokenIssuer) VerifyRefresh(token string) (*RefreshClaims, error) {
	claims := &RefreshClaims{}
	if err := i.verify(token, i.cfg.RefreshSecret, claims); err != nil {
		return nil, err
	}
	return claims, nil
}

// VerifyReset checks the reset secret and then the type discriminator, even
// though the secret alone already separates the kinds.
func (i *TokenIssuer) VerifyReset(token string) (*ResetClaims, error) {
	claims := &ResetClaims{}
	if err := i.verify(token, i.cfg.ResetSecret, claims); err != nil {
		return nil, err
	}
	if claims.Type != TokenTypePasswordReset {
		return nil, ErrWrongTokenType
	}
	return claims, nil
}

// RememberMe reports whether a refresh token was issued with the extended
// lifetime, so rotation can keep it.
func (i *TokenIssuer) RememberMe(c *RefreshClaims) bool {
	if c.IssuedAt == nil || c.ExpiresAt == nil {
		return false
	}
	return c.ExpiresAt.Sub(c.IssuedAt.Time) > i.cfg.RefreshTTL
}

func (i *TokenIssuer) PasswordResetTTL() time.Duration {
	return i.cfg.PasswordResetTTL
}

func (i *TokenIssuer) registered(userID string, ttl time.Duration) jwt.RegisteredClaims {
	now := i.now()
	return jwt.RegisteredClaims{
		ID:        uuid.NewString(),
		Subject:   userID,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
	}
}

func (i *TokenIssuer) sign(claims jwt.Claims, secret []byte) (string, error) {
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(secret)
}

func (i *TokenIssuer) verify(token string, secret []byte, claims jwt.Claims) error {
	if token == "" {
		return ErrInvalidToken
	}

	keyFunc := func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrTokenMalformed
		}
		return secret, nil
	}

	parsed, err := jwt.ParseWithClaims(token, claims, keyFunc,
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(i.now),
	)
	if err != nil || !parsed.Valid {
		return ErrInvalidToken
	}
	return nil
}
