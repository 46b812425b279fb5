package services

import (
	"bytes"
	"context"
	"encoding/base64"
	"image/png"

	"github.com/pquerna/otp"
	"github.com/pquerna/otp/totp"

	"jewel-backend/internal/apperrors"
	"jewel-backend/internal/models"
)

const totpIssuer = "JewelLedger"

// TOTPService handles the optional authenticator-app 2FA flow: setup
// generates a secret and QR code, enable verifies the first code, verify
// completes step two of a login.
type TOTPService struct {
	users UserStore
}

func NewTOTPService(users UserStore) *TOTPService {
	return &TOTPService{users: users}
}

// GenerateSetup creates a new TOTP secret and QR code for a user. The secret
// is stored immediately but 2FA stays disabled until a code is verified.
func (s *TOTPService) GenerateSetup(ctx context.Context, userID int) (*models.TOTPSetupResponse, error) {
	user, err := s.users.Get(ctx, userID)
	if err != nil {
		return nil, err
	}

	key, err := totp.Generate(totp.GenerateOpts{
		Issuer:      totpIssuer,
		AccountName: user.Email,
		Period:      30,
		Digits:      otp.DigitsSix,
		Algorithm:   otp.AlgorithmSHA1,
	})
	if err != nil {
		return nil, err
	}

	if err := s.users.SetTOTP(ctx, user.ID, key.Secret(), false); err != nil {
		return nil, err
	}

	qrImage, err := key.Image(200, 200)
	if err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, qrImage); err != nil {
		return nil, err
	}

	return &models.TOTPSetupResponse{
		Secret:      key.Secret(),
		QRCode:      "data:image/png;base64," + base64.StdEncoding.EncodeToString(buf.Bytes()),
		Issuer:      totpIssuer,
		AccountName: user.Email,
	}, nil
}

// VerifyAndEnable verifies a TOTP code against the stored secret and turns
// 2FA on for the user.
func (s *TOTPService) VerifyAndEnable(ctx context.Context, userID int, code string) error {
	user, err := s.users.Get(ctx, userID)
	if err != nil {
		return err
	}

	if user.TOTPSecret == "" {
		return apperrors.Conflictf("2FA setup not initiated")
	}

	if !totp.Validate(code, user.TOTPSecret) {
		return apperrors.Validationf("invalid verification code")
	}

	return s.users.SetTOTP(ctx, user.ID, user.TOTPSecret, true)
}

// Verify validates a TOTP code during login step two.
func (s *TOTPService) Verify(ctx context.Context, userID int, code string) error {
	user, err := s.users.Get(ctx, userID)
	if err != nil {
		return err
	}

	if !user.TOTPEnabled || user.TOTPSecret == "" {
		return apperrors.Conflictf("2FA is not enabled")
	}

	if !totp.Validate(code, user.TOTPSecret) {
		return apperrors.Validationf("invalid verification code")
	}
	return nil
}
