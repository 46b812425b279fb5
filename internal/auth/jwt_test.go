package auth

import (
	"testing"

	"jewel-backend/internal/config"
	"jewel-backend/internal/models"
)

func testConfig() *config.Config {
	cfg := &config.Config{}
	cfg.JWT.Secret = "test-secret"
	cfg.JWT.ExpirationHours = 1
	cfg.JWT.Issuer = "jewel-backend-test"
	return cfg
}

func TestTokenRoundTrip(t *testing.T) {
	mgr := NewJWTManager(testConfig())
	user := &models.User{ID: 7, Email: "a@b.c", Role: "admin", IsActive: true}

	token, err := mgr.GenerateToken(user)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}

	claims, err := mgr.ValidateToken(token)
	if err != nil {
		t.Fatalf("validate: %v", err)
	}
	if claims.UserID != 7 || claims.Email != "a@b.c" || claims.Role != "admin" || !claims.IsActive {
		t.Errorf("claims = %+v", claims)
	}
}

func TestTokenWrongSecretRejected(t *testing.T) {
	mgr := NewJWTManager(testConfig())
	token, err := mgr.GenerateToken(&models.User{ID: 1, Email: "a@b.c"})
	if err != nil {
		t.Fatalf("generate: %v", err)
	}

	other := testConfig()
	other.JWT.Secret = "different-secret"
	if _, err := NewJWTManager(other).ValidateToken(token); err == nil {
		t.Fatal("token signed with another secret validated")
	}
}

func TestTempTokenRoundTrip(t *testing.T) {
	mgr := NewJWTManager(testConfig())
	token, err := mgr.GenerateTempToken(&models.User{ID: 3, Email: "x@y.z"})
	if err != nil {
		t.Fatalf("generate temp: %v", err)
	}

	claims, err := mgr.ValidateTempToken(token)
	if err != nil {
		t.Fatalf("validate temp: %v", err)
	}
	if claims.UserID != 3 || claims.Type != "2fa_pending" {
		t.Errorf("claims = %+v", claims)
	}
}

func TestSessionTokenNotAcceptedAsTempToken(t *testing.T) {
	mgr := NewJWTManager(testConfig())
	token, err := mgr.GenerateToken(&models.User{ID: 3, Email: "x@y.z"})
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if _, err := mgr.ValidateTempToken(token); err == nil {
		t.Fatal("session token passed temp-token validation")
	}
}

func TestGarbageToken(t *testing.T) {
	mgr := NewJWTManager(testConfig())
	if _, err := mgr.ValidateToken("not.a.token"); err == nil {
		t.Fatal("garbage validated")
	}
}
