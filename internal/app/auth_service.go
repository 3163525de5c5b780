package app

import (
	"context"
	"crypto/rand"
	"fmt"
	"math/big"
	"regexp"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"internhub/internal/common"
	"internhub/internal/domain/admin"
	"internhub/internal/domain/auth"
	"internhub/internal/domain/user"
	"internhub/internal/mail"
	"internhub/internal/security"
)

var emailPattern = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

type AuthService struct {
	users    user.Repository
	admins   admin.Repository
	otps     auth.OTPRepository
	mailer   mail.Mailer
	jwt      *security.JWTProvider
	logger   *logrus.Logger
	tokenTTL time.Duration
	otpTTL   time.Duration
}

func NewAuthService(users user.Repository, admins admin.Repository, otps auth.OTPRepository, mailer mail.Mailer, jwt *security.JWTProvider, logger *logrus.Logger, tokenTTL, otpTTL time.Duration) *AuthService {
	return &AuthService{
		users:    users,
		admins:   admins,
		otps:     otps,
		mailer:   mailer,
		jwt:      jwt,
		logger:   logger,
		tokenTTL: tokenTTL,
		otpTTL:   otpTTL,
	}
}

type TokenResult struct {
	Token     string
	ExpiresAt time.Time
}

// RequestOTP issues a fresh registration code for the address. A repeat
// request simply overwrites the pending code; a verified account on the
// address is a conflict.
func (s *AuthService) RequestOTP(ctx context.Context, email string) error {
	email = normalizeEmail(email)
	if !emailPattern.MatchString(email) {
		return common.NewValidationError("invalid request", map[string]string{"email": "a valid email is required"})
	}
	existing, err := s.users.GetByEmail(ctx, email)
	if err != nil && !common.Is(err, common.CodeNotFound) {
		return err
	}
	if existing != nil && existing.IsVerified {
		return common.NewError(common.CodeConflict, "email already registered", nil)
	}
	code, err := generateOTP()
	if err != nil {
		return common.NewError(common.CodeInternal, "failed to generate otp", err)
	}
	if err := s.otps.UpsertCode(ctx, auth.PurposeRegister, email, code, s.otpTTL); err != nil {
		return err
	}
	if err := s.mailer.SendOTP(ctx, email, code, s.otpTTL); err != nil {
		// The user has no other way to obtain the code, so a send failure
		// must surface instead of pretending the OTP is on its way.
		s.logger.WithError(err).WithField("email", email).Error("otp email delivery failed")
		return common.NewError(common.CodeUnavailable, "failed to send verification email", err)
	}
	s.logger.WithField("email", email).Info("otp issued")
	return nil
}

type RegisterInput struct {
	Name     string
	Email    string
	Password string
	Phone    string
	OTP      string
}

// Register consumes a pending registration OTP and creates the account
// already verified.
func (s *AuthService) Register(ctx context.Context, input RegisterInput) (*TokenResult, *user.User, error) {
	input.Email = normalizeEmail(input.Email)
	fields := map[string]string{}
	if strings.TrimSpace(input.Name) == "" {
		fields["name"] = "name is required"
	}
	if !emailPattern.MatchString(input.Email) {
		fields["email"] = "a valid email is required"
	}
	if len(input.Password) < 6 {
		fields["password"] = "password must be at least 6 characters"
	}
	if strings.TrimSpace(input.OTP) == "" {
		fields["otp"] = "otp is required"
	}
	if len(fields) > 0 {
		return nil, nil, common.NewValidationError("invalid request", fields)
	}

	ok, err := s.otps.VerifyCode(ctx, auth.PurposeRegister, input.Email, strings.TrimSpace(input.OTP), time.Now().UTC())
	if err != nil {
		return nil, nil, err
	}
	if !ok {
		return nil, nil, common.NewError(common.CodeValidation, "invalid or expired otp", nil)
	}

	hash, err := security.HashPassword(input.Password)
	if err != nil {
		return nil, nil, common.NewError(common.CodeInternal, "failed to hash password", err)
	}
	account, err := s.users.Create(ctx, user.User{
		Name:         strings.TrimSpace(input.Name),
		Email:        input.Email,
		PasswordHash: hash,
		Phone:        strings.TrimSpace(input.Phone),
		IsVerified:   true,
	})
	if err != nil {
		return nil, nil, err
	}
	if err := s.otps.InvalidateCode(ctx, auth.PurposeRegister, input.Email); err != nil {
		s.logger.WithError(err).Warn("failed to invalidate consumed otp")
	}
	token, err := s.issueToken(account.ID, security.RoleUser)
	if err != nil {
		return nil, nil, err
	}
	s.logger.WithFields(logrus.Fields{"user_id": account.ID, "email": account.Email}).Info("user registered")
	return token, account, nil
}

func (s *AuthService) Login(ctx context.Context, email, password string) (*TokenResult, *user.User, error) {
	email = normalizeEmail(email)
	account, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if common.Is(err, common.CodeNotFound) {
			return nil, nil, common.NewError(common.CodeUnauthorized, "invalid email or password", nil)
		}
		return nil, nil, err
	}
	if !security.VerifyPassword(password, account.PasswordHash) {
		s.logger.WithField("email", email).Warn("login failed: password mismatch")
		return nil, nil, common.NewError(common.CodeUnauthorized, "invalid email or password", nil)
	}
	token, err := s.issueToken(account.ID, security.RoleUser)
	if err != nil {
		return nil, nil, err
	}
	s.logger.WithField("user_id", account.ID).Info("user logged in")
	return token, account, nil
}

func (s *AuthService) AdminLogin(ctx context.Context, username, password string) (*TokenResult, *admin.Admin, error) {
	account, err := s.admins.GetByUsername(ctx, strings.TrimSpace(username))
	if err != nil {
		if common.Is(err, common.CodeNotFound) {
			return nil, nil, common.NewError(common.CodeUnauthorized, "invalid username or password", nil)
		}
		return nil, nil, err
	}
	if !security.VerifyPassword(password, account.PasswordHash) {
		s.logger.WithField("username", username).Warn("admin login failed: password mismatch")
		return nil, nil, common.NewError(common.CodeUnauthorized, "invalid username or password", nil)
	}
	token, err := s.issueToken(account.ID, security.RoleAdmin)
	if err != nil {
		return nil, nil, err
	}
	s.logger.WithField("admin_id", account.ID).Info("admin logged in")
	return token, account, nil
}

// Admin looks up the account behind an authenticated console session.
func (s *AuthService) Admin(ctx context.Context, id common.UUID) (*admin.Admin, error) {
	return s.admins.GetByID(ctx, id)
}

// ForgotPassword issues a reset code scoped apart from registration codes.
func (s *AuthService) ForgotPassword(ctx context.Context, email string) error {
	email = normalizeEmail(email)
	if _, err := s.users.GetByEmail(ctx, email); err != nil {
		return err
	}
	code, err := generateOTP()
	if err != nil {
		return common.NewError(common.CodeInternal, "failed to generate otp", err)
	}
	if err := s.otps.UpsertCode(ctx, auth.PurposePasswordReset, email, code, s.otpTTL); err != nil {
		return err
	}
	if err := s.mailer.SendPasswordResetOTP(ctx, email, code, s.otpTTL); err != nil {
		s.logger.WithError(err).WithField("email", email).Error("reset email delivery failed")
		return common.NewError(common.CodeUnavailable, "failed to send password reset email", err)
	}
	return nil
}

func (s *AuthService) ResetPassword(ctx context.Context, email, code, newPassword string) error {
	email = normalizeEmail(email)
	if len(newPassword) < 6 {
		return common.NewValidationError("invalid request", map[string]string{"password": "password must be at least 6 characters"})
	}
	ok, err := s.otps.VerifyCode(ctx, auth.PurposePasswordReset, email, strings.TrimSpace(code), time.Now().UTC())
	if err != nil {
		return err
	}
	if !ok {
		return common.NewError(common.CodeValidation, "invalid or expired otp", nil)
	}
	account, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		return err
	}
	hash, err := security.HashPassword(newPassword)
	if err != nil {
		return common.NewError(common.CodeInternal, "failed to hash password", err)
	}
	if err := s.users.UpdatePasswordHash(ctx, account.ID, hash); err != nil {
		return err
	}
	if err := s.otps.InvalidateCode(ctx, auth.PurposePasswordReset, email); err != nil {
		s.logger.WithError(err).Warn("failed to invalidate consumed otp")
	}
	s.logger.WithField("user_id", account.ID).Info("password reset")
	return nil
}

// EnsureAdmin seeds the single administrator account if it does not exist yet.
func (s *AuthService) EnsureAdmin(ctx context.Context, username, email, password string) error {
	if _, err := s.admins.GetByUsername(ctx, username); err == nil {
		return nil
	} else if !common.Is(err, common.CodeNotFound) {
		return err
	}
	hash, err := security.HashPassword(password)
	if err != nil {
		return common.NewError(common.CodeInternal, "failed to hash admin password", err)
	}
	if _, err := s.admins.Create(ctx, admin.Admin{Username: username, PasswordHash: hash, Email: email}); err != nil {
		// A concurrent replica may have seeded it first.
		if common.Is(err, common.CodeConflict) {
			return nil
		}
		return err
	}
	s.logger.WithField("username", username).Info("admin account seeded")
	return nil
}

func (s *AuthService) issueToken(id common.UUID, role string) (*TokenResult, error) {
	token, expiresAt, err := s.jwt.Generate(id, role, s.tokenTTL)
	if err != nil {
		return nil, common.NewError(common.CodeInternal, "failed to sign token", err)
	}
	return &TokenResult{Token: token, ExpiresAt: expiresAt}, nil
}

// generateOTP draws a 6-digit code uniformly from [100000, 999999].
func generateOTP() (string, error) {
	value, err := rand.Int(rand.Reader, big.NewInt(900000))
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%06d", value.Int64()+100000), nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
