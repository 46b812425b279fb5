package services

import (
	"context"
	"strings"

	"jewel-backend/internal/apperrors"
	"jewel-backend/internal/auth"
	"jewel-backend/internal/cache"
	"jewel-backend/internal/models"
)

type UserService struct {
	users UserStore
	jwt   *auth.JWTManager
	totp  *TOTPService
}

func NewUserService(users UserStore, jwt *auth.JWTManager, totp *TOTPService) *UserService {
	return &UserService{users: users, jwt: jwt, totp: totp}
}

// Signup registers a new user. The very first account becomes the admin;
// everyone after that is staff.
func (s *UserService) Signup(ctx context.Context, req *models.SignupRequest) (*models.AuthResponse, error) {
	if strings.TrimSpace(req.Name) == "" {
		return nil, apperrors.Validationf("name is required")
	}
	email := strings.ToLower(strings.TrimSpace(req.Email))
	if email == "" || !strings.Contains(email, "@") {
		return nil, apperrors.Validationf("a valid email is required")
	}
	if len(req.Password) < 8 {
		return nil, apperrors.Validationf("password must be at least 8 characters")
	}

	if _, err := s.users.GetByEmail(ctx, email); err == nil {
		return nil, apperrors.Conflictf("email %s is already registered", email)
	} else if !apperrors.IsNotFound(err) {
		return nil, err
	}

	count, err := s.users.Count(ctx)
	if err != nil {
		return nil, err
	}
	role := "staff"
	if count == 0 {
		role = "admin"
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, err
	}

	user := &models.User{
		Name:         strings.TrimSpace(req.Name),
		Email:        email,
		PasswordHash: hash,
		Role:         role,
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, err
	}

	token, err := s.jwt.GenerateToken(user)
	if err != nil {
		return nil, err
	}
	return &models.AuthResponse{Token: token, User: user}, nil
}

// Login verifies credentials. With 2FA enabled it returns a short-lived temp
// token instead of a session token; the caller finishes via VerifyTOTPLogin.
func (s *UserService) Login(ctx context.Context, req *models.LoginRequest) (*models.AuthResponse, *models.LoginStep1Response, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))

	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if apperrors.IsNotFound(err) {
			return nil, nil, apperrors.Validationf("invalid email or password")
		}
		return nil, nil, err
	}

	if !user.IsActive {
		return nil, nil, apperrors.Conflictf("account is suspended")
	}

	// Redis fast path skips bcrypt when the same credentials were verified
	// within the last 15 minutes.
	if cachedID, ok := cache.GetCachedAuth(ctx, email, req.Password); !ok || cachedID != user.ID {
		if !auth.VerifyPassword(user.PasswordHash, req.Password) {
			return nil, nil, apperrors.Validationf("invalid email or password")
		}
		cache.CacheAuth(ctx, email, req.Password, user.ID)
	}

	if user.TOTPEnabled {
		tempToken, err := s.jwt.GenerateTempToken(user)
		if err != nil {
			return nil, nil, err
		}
		return nil, &models.LoginStep1Response{
			Requires2FA: true,
			TempToken:   tempToken,
			Message:     "Enter the code from your authenticator app",
		}, nil
	}

	token, err := s.jwt.GenerateToken(user)
	if err != nil {
		return nil, nil, err
	}
	return &models.AuthResponse{Token: token, User: user}, nil, nil
}

// VerifyTOTPLogin completes step two of a 2FA login.
func (s *UserService) VerifyTOTPLogin(ctx context.Context, req *models.TOTPVerifyRequest) (*models.AuthResponse, error) {
	claims, err := s.jwt.ValidateTempToken(req.TempToken)
	if err != nil {
		return nil, apperrors.Validationf("invalid or expired login session")
	}

	if err := s.totp.Verify(ctx, claims.UserID, req.Code); err != nil {
		return nil, err
	}

	user, err := s.users.Get(ctx, claims.UserID)
	if err != nil {
		return nil, err
	}

	token, err := s.jwt.GenerateToken(user)
	if err != nil {
		return nil, err
	}
	return &models.AuthResponse{Token: token, User: user}, nil
}
