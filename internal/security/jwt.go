// Package security provides token issuance and verification, password
// hashing, and helpers for the authenticated request context.
package security

import (
	"fmt"
	"math/rand/v2"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/jrjohn/academy-cloud-go/internal/config"
	"github.com/jrjohn/academy-cloud-go/internal/domain/entity"
	apperrors "github.com/jrjohn/academy-cloud-go/pkg/errors"
)

// AccessClaims is the payload of access and refresh tokens.
type AccessClaims struct {
	UserID uint   `json:"uid"`
	Role   string `json:"role"`
	jwt.RegisteredClaims
}

// ActivationClaims carries the pending registration through the activation
// handshake. The password is already bcrypt-hashed, so nothing in the token
// is usable on its own; the code must match what was mailed to the user.
type ActivationClaims struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Code     string `json:"code"`
	jwt.RegisteredClaims
}

// JWTProvider signs and verifies the three token families: short-lived
// access tokens, refresh tokens, and activation tokens.
type JWTProvider struct {
	accessSecret     []byte
	refreshSecret    []byte
	activationSecret []byte
	accessTTL        time.Duration
	refreshTTL       time.Duration
	activationTTL    time.Duration
	issuer           string
}

// NewJWTProvider creates a JWTProvider from configuration.
func NewJWTProvider(cfg *config.JWTConfig) *JWTProvider {
	return &JWTProvider{
		accessSecret:     []byte(cfg.AccessSecret),
		refreshSecret:    []byte(cfg.RefreshSecret),
		activationSecret: []byte(cfg.ActivationSecret),
		accessTTL:        cfg.AccessTokenDuration,
		refreshTTL:       cfg.RefreshTokenDuration,
		activationTTL:    cfg.ActivationDuration,
		issuer:           cfg.Issuer,
	}
}

// AccessTTL returns the configured access token lifetime.
func (p *JWTProvider) AccessTTL() time.Duration {
	return p.accessTTL
}

// RefreshTTL returns the configured refresh token lifetime.
func (p *JWTProvider) RefreshTTL() time.Duration {
	return p.refreshTTL
}

// GenerateAccessToken issues a signed access token for the user.
func (p *JWTProvider) GenerateAccessToken(user *entity.User) (string, error) {
	return p.generateToken(user, p.accessSecret, p.accessTTL)
}

// GenerateRefreshToken issues a signed refresh token for the user.
func (p *JWTProvider) GenerateRefreshToken(user *entity.User) (string, error) {
	return p.generateToken(user, p.refreshSecret, p.refreshTTL)
}

func (p *JWTProvider) generateToken(user *entity.User, secret []byte, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := AccessClaims{
		UserID: user.ID,
		Role:   string(user.Role),
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    p.issuer,
			Subject:   fmt.Sprintf("%d", user.ID),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(secret)
}

// ParseAccessToken verifies an access token and returns its claims.
func (p *JWTProvider) ParseAccessToken(tokenString string) (*AccessClaims, error) {
	return p.parseToken(tokenString, p.accessSecret)
}

// ParseRefreshToken verifies a refresh token and returns its claims.
func (p *JWTProvider) ParseRefreshToken(tokenString string) (*AccessClaims, error) {
	return p.parseToken(tokenString, p.refreshSecret)
}

func (p *JWTProvider) parseToken(tokenString string, secret []byte) (*AccessClaims, error) {
	claims := &AccessClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return secret, nil
	})
	if err != nil || !token.Valid {
		return nil, apperrors.ErrUnauthorized.WithMessage("invalid or expired token")
	}
	return claims, nil
}

// GenerateActivationToken issues the activation token for a pending
// registration and returns it together with the 4-digit code that is
// mailed out of band.
func (p *JWTProvider) GenerateActivationToken(name, email, hashedPassword string) (string, string, error) {
	code := fmt.Sprintf("%d", 1000+rand.IntN(9000))

	now := time.Now()
	claims := ActivationClaims{
		Name:     name,
		Email:    email,
		Password: hashedPassword,
		Code:     code,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    p.issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(p.activationTTL)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(p.activationSecret)
	if err != nil {
		return "", "", err
	}
	return signed, code, nil
}

// ParseActivationToken verifies an activation token and returns the pending
// registration it carries.
func (p *JWTProvider) ParseActivationToken(tokenString string) (*ActivationClaims, error) {
	claims := &ActivationClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return p.activationSecret, nil
	})
	if err != nil || !token.Valid {
		return nil, apperrors.ErrUnauthorized.WithMessage("invalid or expired activation token")
	}
	return claims, nil
}
