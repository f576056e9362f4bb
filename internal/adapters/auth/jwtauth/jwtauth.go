// Package jwtauth implementa auth.TokenVerifier y auth.TokenIssuer con JWT
// HS256 firmados localmente. A diferencia de un IAM remoto, acá el servicio
// emite y verifica sus propios tokens.
package jwtauth

import (
	"context"
	"errors"
	"strings"
	"time"

	"eventhorizon/internal/ports/auth"

	"github.com/golang-jwt/jwt/v5"
)

var (
	ErrNotConfigured = errors.New("jwtauth: secret not configured")
	ErrInvalidToken  = errors.New("jwtauth: invalid token")
)

const defaultTTL = 24 * time.Hour

type Config struct {
	Secret string
	Issuer string
	TTL    time.Duration
}

type Provider struct {
	secret []byte
	issuer string
	ttl    time.Duration
	now    func() time.Time
}

func New(cfg Config) *Provider {
	ttl := cfg.TTL
	if ttl <= 0 {
		ttl = defaultTTL
	}
	issuer := strings.TrimSpace(cfg.Issuer)
	if issuer == "" {
		issuer = "eventhorizon"
	}

	return &Provider{
		secret: []byte(strings.TrimSpace(cfg.Secret)),
		issuer: issuer,
		ttl:    ttl,
		now:    time.Now,
	}
}

func (p *Provider) IsConfigured() bool {
	return p != nil && len(p.secret) > 0
}

type tokenClaims struct {
	Email string `json:"email,omitempty"`
	Role  string `json:"role,omitempty"`
	jwt.RegisteredClaims
}

func (p *Provider) Issue(ctx context.Context, c auth.Claims) (string, error) {
	if !p.IsConfigured() {
		return "", ErrNotConfigured
	}
	if strings.TrimSpace(c.UserID) == "" {
		return "", errors.New("jwtauth: claims missing user id")
	}

	now := p.now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, tokenClaims{
		Email: c.Email,
		Role:  string(c.Role),
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   c.UserID,
			Issuer:    p.issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(p.ttl)),
		},
	})

	return token.SignedString(p.secret)
}

func (p *Provider) Verify(ctx context.Context, tokenStr string) (auth.Claims, error) {
	if !p.IsConfigured() {
		return auth.Claims{}, ErrNotConfigured
	}
	tokenStr = strings.TrimSpace(tokenStr)
	if tokenStr == "" {
		return auth.Claims{}, ErrInvalidToken
	}

	var claims tokenClaims
	token, err := jwt.ParseWithClaims(tokenStr, &claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return p.secret, nil
	},
		jwt.WithIssuer(p.issuer),
		jwt.WithTimeFunc(p.now),
	)
	if err != nil || !token.Valid {
		return auth.Claims{}, ErrInvalidToken
	}

	userID := strings.TrimSpace(claims.Subject)
	if userID == "" {
		return auth.Claims{}, ErrInvalidToken
	}

	role := auth.Role(claims.Role)
	if role == "" {
		role = auth.RoleUser
	}

	return auth.Claims{
		UserID: userID,
		Email:  claims.Email,
		Role:   role,
	}, nil
}
