package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"ambassador_portal/internal/common"
	"ambassador_portal/internal/domain/repository"

	"go.uber.org/zap"
)

// ReferralService handles the externally-triggered referral signals: code
// verification and counter increments. Callers authenticate with a shared
// bearer secret before these methods are reached.
type ReferralService struct {
	ambassadorRepo repository.AmbassadorRepository
}

func NewReferralService(ambassadorRepo repository.AmbassadorRepository) *ReferralService {
	return &ReferralService{ambassadorRepo: ambassadorRepo}
}

type VerifyResult struct {
	ReferralCode string `json:"referralCode"`
	Name         string `json:"name"`
	College      string `json:"college"`
}

func normalizeCode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}

// Verify checks that a referral code exists without mutating anything.
func (s *ReferralService) Verify(ctx context.Context, code string) (*VerifyResult, error) {
	code = normalizeCode(code)
	if code == "" {
		return nil, fmt.Errorf("referral code is required: %w", common.ErrBadRequest)
	}

	ambassador, err := s.ambassadorRepo.FindByReferralCode(ctx, code)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return nil, fmt.Errorf("referral code not found: %w", common.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to look up referral code: %w", err)
	}

	return &VerifyResult{
		ReferralCode: ambassador.ReferralCode,
		Name:         ambassador.Name,
		College:      ambassador.College,
	}, nil
}

// Increment bumps the referring ambassador's counter by exactly 1. The
// update is a single atomic increment at the storage layer, so concurrent
// signals for the same code never lose updates. Unknown codes return
// not-found; the caller surfaces it without retry.
func (s *ReferralService) Increment(ctx context.Context, code string) error {
	code = normalizeCode(code)
	if code == "" {
		return fmt.Errorf("referral code is required: %w", common.ErrBadRequest)
	}

	if err := s.ambassadorRepo.IncrementReferrals(ctx, code); err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return fmt.Errorf("referral code not found: %w", common.ErrNotFound)
		}
		return fmt.Errorf("failed to increment referral count: %w", err)
	}

	zap.S().Infow("referral recorded", "referral_code", code)
	return nil
}
