package security

import (
	"testing"
	"time"

	"github.com/jrjohn/academy-cloud-go/internal/config"
	"github.com/jrjohn/academy-cloud-go/internal/domain/entity"
)

func testJWTProvider() *JWTProvider {
	return NewJWTProvider(&config.JWTConfig{
		AccessSecret:         "test-access-secret",
		RefreshSecret:        "test-refresh-secret",
		ActivationSecret:     "test-activation-secret",
		AccessTokenDuration:  5 * time.Minute,
		RefreshTokenDuration: time.Hour,
		ActivationDuration:   5 * time.Minute,
		Issuer:               "test",
	})
}

func TestJWTProvider_AccessTokenRoundtrip(t *testing.T) {
	provider := testJWTProvider()
	user := &entity.User{ID: 7, Role: entity.RoleAdmin}

	token, err := provider.GenerateAccessToken(user)
	if err != nil {
		t.Fatalf("GenerateAccessToken() error = %v", err)
	}

	claims, err := provider.ParseAccessToken(token)
	if err != nil {
		t.Fatalf("ParseAccessToken() error = %v", err)
	}
	if claims.UserID != 7 {
		t.Errorf("UserID = %d, want 7", claims.UserID)
	}
	if claims.Role != string(entity.RoleAdmin) {
		t.Errorf("Role = %q, want admin", claims.Role)
	}
}

func TestJWTProvider_TokenFamiliesAreSeparate(t *testing.T) {
	provider := testJWTProvider()
	user := &entity.User{ID: 1, Role: entity.RoleUser}

	refresh, err := provider.GenerateRefreshToken(user)
	if err != nil {
		t.Fatalf("GenerateRefreshToken() error = %v", err)
	}

	// A refresh token must not verify as an access token.
	if _, err := provider.ParseAccessToken(refresh); err == nil {
		t.Error("ParseAccessToken() accepted a refresh token")
	}
	if _, err := provider.ParseRefreshToken(refresh); err != nil {
		t.Errorf("ParseRefreshToken() error = %v", err)
	}
}

func TestJWTProvider_ParseAccessToken_Garbage(t *testing.T) {
	provider := testJWTProvider()
	if _, err := provider.ParseAccessToken("not-a-token"); err == nil {
		t.Error("ParseAccessToken() accepted garbage")
	}
}

func TestJWTProvider_ActivationTokenRoundtrip(t *testing.T) {
	provider := testJWTProvider()

	token, code, err := provider.GenerateActivationToken("Alice", "alice@example.com", "$2a$10$hash")
	if err != nil {
		t.Fatalf("GenerateActivationToken() error = %v", err)
	}
	if len(code) != 4 {
		t.Errorf("code = %q, want 4 digits", code)
	}
	if code[0] == '0' {
		t.Errorf("code = %q, must not have a leading zero", code)
	}

	claims, err := provider.ParseActivationToken(token)
	if err != nil {
		t.Fatalf("ParseActivationToken() error = %v", err)
	}
	if claims.Email != "alice@example.com" || claims.Name != "Alice" {
		t.Errorf("claims = %+v", claims)
	}
	if claims.Code != code {
		t.Errorf("claims.Code = %q, want %q", claims.Code, code)
	}
	if claims.Password != "$2a$10$hash" {
		t.Errorf("claims.Password = %q", claims.Password)
	}
}

func TestJWTProvider_ActivationTokenNotAnAccessToken(t *testing.T) {
	provider := testJWTProvider()

	token, _, err := provider.GenerateActivationToken("Bob", "bob@example.com", "hash")
	if err != nil {
		t.Fatalf("GenerateActivationToken() error = %v", err)
	}
	if _, err := provider.ParseAccessToken(token); err == nil {
		t.Error("ParseAccessToken() accepted an activation token")
	}
}
