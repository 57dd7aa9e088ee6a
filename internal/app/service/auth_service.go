package service

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"regexp"
	"strings"

	"ambassador_portal/internal/common"
	"ambassador_portal/internal/common/security"
	"ambassador_portal/internal/domain/model"
	"ambassador_portal/internal/domain/repository"
	"ambassador_portal/internal/platform/config"
	"ambassador_portal/internal/platform/mail"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

var (
	validate = validator.New()
	phoneRe  = regexp.MustCompile(`^[+\d][\d\s-]{7,}$`)
)

type AuthService struct {
	ambassadorRepo repository.AmbassadorRepository
	adminRepo      repository.AdminRepository
	tokenRepo      repository.ResetTokenRepository
	codeGen        *ReferralCodeGenerator
	mailer         mail.Mailer
}

func NewAuthService(
	ambassadorRepo repository.AmbassadorRepository,
	adminRepo repository.AdminRepository,
	tokenRepo repository.ResetTokenRepository,
	codeGen *ReferralCodeGenerator,
	mailer mail.Mailer,
) *AuthService {
	return &AuthService{
		ambassadorRepo: ambassadorRepo,
		adminRepo:      adminRepo,
		tokenRepo:      tokenRepo,
		codeGen:        codeGen,
		mailer:         mailer,
	}
}

type RegisterRequest struct {
	Name     string `json:"name" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
	Phone    string `json:"phone" validate:"required"`
	College  string `json:"college" validate:"required"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type AuthResponse struct {
	Principal model.Principal `json:"principal"`
	User      interface{}     `json:"user"`
	Token     string          `json:"token"`
}

func (s *AuthService) Register(ctx context.Context, req RegisterRequest) (*AuthResponse, error) {
	req.Name = strings.TrimSpace(req.Name)
	req.Email = strings.ToLower(strings.TrimSpace(req.Email))
	req.Phone = strings.TrimSpace(req.Phone)
	req.College = strings.TrimSpace(req.College)

	if req.Name == "" || req.Email == "" || req.Password == "" || req.Phone == "" || req.College == "" {
		return nil, fmt.Errorf("missing required fields: %w", common.ErrBadRequest)
	}
	if err := validate.Struct(req); err != nil {
		return nil, fmt.Errorf("invalid registration payload: %w", common.ErrValidation)
	}
	if !phoneRe.MatchString(req.Phone) {
		return nil, fmt.Errorf("invalid phone number: %w", common.ErrValidation)
	}

	if _, err := s.ambassadorRepo.FindByEmail(ctx, req.Email); err == nil {
		return nil, fmt.Errorf("account already exists: %w", common.ErrConflict)
	} else if !errors.Is(err, common.ErrNotFound) {
		return nil, fmt.Errorf("failed to check existing account: %w", err)
	}

	referralCode, err := s.codeGen.Generate(ctx, req.Name)
	if err != nil {
		return nil, err
	}

	hashedPassword, err := security.HashPassword(req.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	ambassador := &model.Ambassador{
		ID:             uuid.NewString(),
		Name:           req.Name,
		Email:          req.Email,
		HashedPassword: hashedPassword,
		Phone:          req.Phone,
		College:        req.College,
		ReferralCode:   referralCode,
		Role:           model.RoleAmbassador,
	}

	// The unique indexes on email and referral code are the authoritative
	// backstop; a violation here surfaces as a conflict, not an internal
	// failure.
	if err := s.ambassadorRepo.Create(ctx, ambassador); err != nil {
		return nil, fmt.Errorf("failed to create ambassador: %w", err)
	}

	principal := ambassador.Principal()
	token, err := security.GenerateToken(principal.ID, principal.Role, principal.Kind)
	if err != nil {
		return nil, fmt.Errorf("failed to generate token: %w", err)
	}
	ambassador.HashedPassword = ""
	return &AuthResponse{Principal: principal, User: ambassador, Token: token}, nil
}

// Login resolves a principal by trying the admin store first, then the
// ambassador store; the first credential match wins. Mismatches collapse to
// a generic unauthorized error so the response never reveals which store, if
// any, knows the email.
func (s *AuthService) Login(ctx context.Context, req LoginRequest) (*AuthResponse, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))
	if email == "" || req.Password == "" {
		return nil, fmt.Errorf("email and password are required: %w", common.ErrBadRequest)
	}

	admin, err := s.adminRepo.FindByEmail(ctx, email)
	if err == nil {
		if !security.CheckPasswordHash(req.Password, admin.HashedPassword) {
			return nil, common.ErrUnauthorized
		}
		principal := admin.Principal()
		token, err := security.GenerateToken(principal.ID, principal.Role, principal.Kind)
		if err != nil {
			return nil, fmt.Errorf("failed to generate token: %w", err)
		}
		admin.HashedPassword = ""
		return &AuthResponse{Principal: principal, User: admin, Token: token}, nil
	}
	if !errors.Is(err, common.ErrNotFound) {
		return nil, fmt.Errorf("failed to look up admin: %w", err)
	}

	ambassador, err := s.ambassadorRepo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return nil, common.ErrUnauthorized
		}
		return nil, fmt.Errorf("failed to look up ambassador: %w", err)
	}
	if !security.CheckPasswordHash(req.Password, ambassador.HashedPassword) {
		return nil, common.ErrUnauthorized
	}

	principal := ambassador.Principal()
	token, err := security.GenerateToken(principal.ID, principal.Role, principal.Kind)
	if err != nil {
		return nil, fmt.Errorf("failed to generate token: %w", err)
	}
	ambassador.HashedPassword = ""
	return &AuthResponse{Principal: principal, User: ambassador, Token: token}, nil
}

// ForgotPassword issues a reset token and mails a link. The outcome is
// indistinguishable whether or not the email exists, and mailer failures are
// logged but never surfaced, so the endpoint cannot be used to enumerate
// accounts.
func (s *AuthService) ForgotPassword(ctx context.Context, email string) error {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" {
		return fmt.Errorf("email is required: %w", common.ErrBadRequest)
	}

	var userID, kind, recipient string
	if ambassador, err := s.ambassadorRepo.FindByEmail(ctx, email); err == nil {
		userID, kind, recipient = ambassador.ID, model.PrincipalKindAmbassador, ambassador.Email
	} else if !errors.Is(err, common.ErrNotFound) {
		return fmt.Errorf("failed to look up account: %w", err)
	} else if admin, err := s.adminRepo.FindByEmail(ctx, email); err == nil {
		userID, kind, recipient = admin.ID, model.PrincipalKindAdmin, admin.Email
	} else if !errors.Is(err, common.ErrNotFound) {
		return fmt.Errorf("failed to look up account: %w", err)
	}

	if userID == "" {
		return nil // No such account; report success regardless.
	}

	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return fmt.Errorf("failed to generate reset token: %w", err)
	}
	token := hex.EncodeToString(buf)

	if err := s.tokenRepo.Create(ctx, token, userID, kind, config.AppConfig.ResetTokenTTL); err != nil {
		return fmt.Errorf("failed to store reset token: %w", err)
	}

	resetURL := strings.TrimRight(config.AppConfig.AppBaseURL, "/") + "/reset-password?token=" + token
	if err := s.mailer.SendPasswordReset(recipient, resetURL); err != nil {
		zap.S().Errorw("password reset email delivery failed", "error", err)
	}
	return nil
}

func (s *AuthService) ResetPassword(ctx context.Context, token, password string) error {
	if token == "" || password == "" {
		return fmt.Errorf("token and password are required: %w", common.ErrBadRequest)
	}
	if len(password) < 8 {
		return fmt.Errorf("password must be at least 8 characters: %w", common.ErrValidation)
	}

	userID, kind, err := s.tokenRepo.Find(ctx, token)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return fmt.Errorf("invalid or expired token: %w", common.ErrBadRequest)
		}
		return fmt.Errorf("failed to look up reset token: %w", err)
	}

	hashedPassword, err := security.HashPassword(password)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	switch kind {
	case model.PrincipalKindAmbassador:
		err = s.ambassadorRepo.UpdatePassword(ctx, userID, hashedPassword)
	case model.PrincipalKindAdmin:
		err = s.adminRepo.UpdatePassword(ctx, userID, hashedPassword)
	default:
		return fmt.Errorf("invalid principal kind on token: %w", common.ErrBadRequest)
	}
	if err != nil {
		return fmt.Errorf("failed to update password: %w", err)
	}

	if err := s.tokenRepo.Delete(ctx, token); err != nil {
		zap.S().Warnw("failed to delete consumed reset token", "error", err)
	}
	return nil
}
