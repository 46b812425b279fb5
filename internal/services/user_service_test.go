package services

import (
	"context"
	"testing"

	"github.com/pquerna/otp/totp"

	"jewel-backend/internal/apperrors"
	"jewel-backend/internal/auth"
	"jewel-backend/internal/config"
	"jewel-backend/internal/memstore"
	"jewel-backend/internal/models"
	"jewel-backend/internal/timeutil"
)

func newUserService() (*UserService, *TOTPService, *memstore.Store) {
	cfg := &config.Config{}
	cfg.JWT.Secret = "test-secret"
	cfg.JWT.ExpirationHours = 1
	cfg.JWT.Issuer = "jewel-backend-test"

	store := memstore.New()
	users := store.UserStore()
	totpSvc := NewTOTPService(users)
	return NewUserService(users, auth.NewJWTManager(cfg), totpSvc), totpSvc, store
}

func TestSignupFirstUserIsAdmin(t *testing.T) {
	svc, _, _ := newUserService()
	ctx := context.Background()

	first, err := svc.Signup(ctx, &models.SignupRequest{Name: "A", Email: "A@Shop.com", Password: "password1"})
	if err != nil {
		t.Fatalf("first signup: %v", err)
	}
	if first.User.Role != "admin" {
		t.Errorf("first user role = %q, want admin", first.User.Role)
	}
	if first.User.Email != "a@shop.com" {
		t.Errorf("email not normalized: %q", first.User.Email)
	}
	if first.Token == "" {
		t.Error("signup returned no token")
	}

	second, err := svc.Signup(ctx, &models.SignupRequest{Name: "B", Email: "b@shop.com", Password: "password2"})
	if err != nil {
		t.Fatalf("second signup: %v", err)
	}
	if second.User.Role != "staff" {
		t.Errorf("second user role = %q, want staff", second.User.Role)
	}
}

func TestSignupValidation(t *testing.T) {
	svc, _, _ := newUserService()
	ctx := context.Background()

	cases := []struct {
		name string
		req  *models.SignupRequest
	}{
		{"blank name", &models.SignupRequest{Name: " ", Email: "a@b.c", Password: "password1"}},
		{"bad email", &models.SignupRequest{Name: "A", Email: "not-an-email", Password: "password1"}},
		{"short password", &models.SignupRequest{Name: "A", Email: "a@b.c", Password: "short"}},
	}
	for _, tc := range cases {
		if _, err := svc.Signup(ctx, tc.req); !apperrors.IsValidation(err) {
			t.Errorf("%s: err = %v, want validation", tc.name, err)
		}
	}
}

func TestSignupDuplicateEmail(t *testing.T) {
	svc, _, _ := newUserService()
	ctx := context.Background()

	if _, err := svc.Signup(ctx, &models.SignupRequest{Name: "A", Email: "a@b.c", Password: "password1"}); err != nil {
		t.Fatalf("signup: %v", err)
	}
	if _, err := svc.Signup(ctx, &models.SignupRequest{Name: "B", Email: "A@B.C", Password: "password2"}); !apperrors.IsConflict(err) {
		t.Fatalf("duplicate signup: err = %v, want conflict", err)
	}
}

func TestLogin(t *testing.T) {
	svc, _, _ := newUserService()
	ctx := context.Background()

	if _, err := svc.Signup(ctx, &models.SignupRequest{Name: "A", Email: "a@b.c", Password: "password1"}); err != nil {
		t.Fatalf("signup: %v", err)
	}

	resp, step1, err := svc.Login(ctx, &models.LoginRequest{Email: "a@b.c", Password: "password1"})
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if step1 != nil {
		t.Fatal("2FA step requested for a user without 2FA")
	}
	if resp.Token == "" || resp.User.Email != "a@b.c" {
		t.Errorf("resp = %+v", resp)
	}

	if _, _, err := svc.Login(ctx, &models.LoginRequest{Email: "a@b.c", Password: "wrong-password"}); !apperrors.IsValidation(err) {
		t.Errorf("wrong password: err = %v, want validation", err)
	}
	if _, _, err := svc.Login(ctx, &models.LoginRequest{Email: "nobody@b.c", Password: "password1"}); !apperrors.IsValidation(err) {
		t.Errorf("unknown email: err = %v, want validation", err)
	}
}

func TestLoginWith2FA(t *testing.T) {
	svc, totpSvc, store := newUserService()
	ctx := context.Background()

	resp, err := svc.Signup(ctx, &models.SignupRequest{Name: "A", Email: "a@b.c", Password: "password1"})
	if err != nil {
		t.Fatalf("signup: %v", err)
	}
	userID := resp.User.ID

	setup, err := totpSvc.GenerateSetup(ctx, userID)
	if err != nil {
		t.Fatalf("totp setup: %v", err)
	}
	code, err := totp.GenerateCode(setup.Secret, timeutil.Now())
	if err != nil {
		t.Fatalf("generate code: %v", err)
	}
	if err := totpSvc.VerifyAndEnable(ctx, userID, code); err != nil {
		t.Fatalf("enable 2FA: %v", err)
	}
	if u, _ := store.UserStore().Get(ctx, userID); !u.TOTPEnabled {
		t.Fatal("2FA not flagged enabled after verification")
	}

	// Step 1 now yields a temp token, never a session token.
	full, step1, err := svc.Login(ctx, &models.LoginRequest{Email: "a@b.c", Password: "password1"})
	if err != nil {
		t.Fatalf("login step 1: %v", err)
	}
	if full != nil {
		t.Fatal("session token issued before 2FA code")
	}
	if step1 == nil || !step1.Requires2FA || step1.TempToken == "" {
		t.Fatalf("step1 = %+v", step1)
	}

	// Step 2 with a fresh code completes the login.
	code, err = totp.GenerateCode(setup.Secret, timeutil.Now())
	if err != nil {
		t.Fatalf("generate code: %v", err)
	}
	final, err := svc.VerifyTOTPLogin(ctx, &models.TOTPVerifyRequest{TempToken: step1.TempToken, Code: code})
	if err != nil {
		t.Fatalf("login step 2: %v", err)
	}
	if final.Token == "" {
		t.Error("no session token after 2FA")
	}

	if _, err := svc.VerifyTOTPLogin(ctx, &models.TOTPVerifyRequest{TempToken: step1.TempToken, Code: "000000"}); !apperrors.IsValidation(err) {
		t.Errorf("bad code: err = %v, want validation", err)
	}
}

func TestTOTPEnableWithoutSetup(t *testing.T) {
	svc, totpSvc, _ := newUserService()
	ctx := context.Background()

	resp, err := svc.Signup(ctx, &models.SignupRequest{Name: "A", Email: "a@b.c", Password: "password1"})
	if err != nil {
		t.Fatalf("signup: %v", err)
	}
	if err := totpSvc.VerifyAndEnable(ctx, resp.User.ID, "123456"); !apperrors.IsConflict(err) {
		t.Errorf("enable without setup: err = %v, want conflict", err)
	}
	if err := totpSvc.Verify(ctx, resp.User.ID, "123456"); !apperrors.IsConflict(err) {
		t.Errorf("verify without 2FA enabled: err = %v, want conflict", err)
	}
}
