// Package auth issues and validates the bearer tokens that bind a browser
// session to its workspace.
package auth

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"bridge/internal/config"
	"bridge/internal/domain"
)

const audience = "workspace"

// Claims carries the workspace a token grants access to.
type Claims struct {
	jwt.RegisteredClaims
	WorkspaceID uuid.UUID `json:"workspace_id"`
}

// Tokens signs workspace tokens with HS256.
type Tokens struct {
	cfg config.AuthConfig
	now func() time.Time
}

// NewTokens creates a token issuer.
func NewTokens(cfg config.AuthConfig) *Tokens {
	return &Tokens{cfg: cfg, now: time.Now}
}

// Issue returns a signed token for workspaceID and its expiry.
func (t *Tokens) Issue(workspaceID uuid.UUID) (string, time.Time, error) {
	now := t.now()
	expiry := now.Add(t.cfg.TokenExpiry)

	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    t.cfg.Issuer,
			Subject:   workspaceID.String(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiry),
			Audience:  jwt.ClaimStrings{audience},
			ID:        uuid.New().String(),
		},
		WorkspaceID: workspaceID,
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(t.cfg.Secret))
	if err != nil {
		return "", time.Time{}, fmt.Errorf("signing token: %w", err)
	}
	return signed, expiry, nil
}

// Validate parses a token and returns its claims. Any failure maps to
// domain.ErrUnauthorized.
func (t *Tokens) Validate(tokenString string) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(t.cfg.Secret), nil
	},
		jwt.WithAudience(audience),
		jwt.WithIssuer(t.cfg.Issuer),
		jwt.WithTimeFunc(t.now),
	)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrUnauthorized, err)
	}
	if !token.Valid || claims.WorkspaceID == uuid.Nil {
		return nil, domain.ErrUnauthorized
	}
	return claims, nil
}
