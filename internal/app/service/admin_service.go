package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"ambassador_portal/internal/app/service/points"
	"ambassador_portal/internal/common"
	"ambassador_portal/internal/domain/model"
	"ambassador_portal/internal/domain/repository"
)

// AdminService covers the admin console operations: reviewing ambassadors,
// assigning points, and deleting accounts.
type AdminService struct {
	ambassadorRepo repository.AmbassadorRepository
	uploadRepo     repository.UploadRepository
	uploadService  *UploadService
}

func NewAdminService(
	ambassadorRepo repository.AmbassadorRepository,
	uploadRepo repository.UploadRepository,
	uploadService *UploadService,
) *AdminService {
	return &AdminService{
		ambassadorRepo: ambassadorRepo,
		uploadRepo:     uploadRepo,
		uploadService:  uploadService,
	}
}

// AmbassadorSummary is the admin list row: identity plus the recomputed
// points view. Totals are always derived on read, never stored.
type AmbassadorSummary struct {
	ID             string    `json:"id"`
	Name           string    `json:"name"`
	Email          string    `json:"email"`
	Phone          string    `json:"phone"`
	College        string    `json:"college"`
	ReferralCode   string    `json:"referralCode"`
	TotalReferrals int       `json:"totalReferrals"`
	Role           string    `json:"role"`
	ManualPoints   int       `json:"manualPoints"`
	ImagePoints    int       `json:"imagePoints"`
	TotalPoints    int       `json:"totalPoints"`
	UploadCount    int       `json:"uploadCount"`
	CreatedAt      time.Time `json:"createdAt"`
}

// AmbassadorDetail adds the per-category upload lists to the summary.
type AmbassadorDetail struct {
	AmbassadorSummary
	Uploads model.UploadsByCategory `json:"uploads"`
}

func summarize(a *model.Ambassador, uploads model.UploadsByCategory) AmbassadorSummary {
	agg := points.Aggregate(a.ManualPoints, uploads)
	return AmbassadorSummary{
		ID:             a.ID,
		Name:           a.Name,
		Email:          a.Email,
		Phone:          a.Phone,
		College:        a.College,
		ReferralCode:   a.ReferralCode,
		TotalReferrals: a.TotalReferrals,
		Role:           a.Role,
		ManualPoints:   agg.ManualPoints,
		ImagePoints:    agg.ImagePoints,
		TotalPoints:    agg.TotalPoints,
		UploadCount:    agg.UploadCount,
		CreatedAt:      a.CreatedAt,
	}
}

func (s *AdminService) ListAmbassadors(ctx context.Context) ([]AmbassadorSummary, error) {
	all, err := s.ambassadorRepo.FindAllByCreatedAt(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list ambassadors: %w", err)
	}

	summaries := make([]AmbassadorSummary, 0, len(all))
	for _, a := range all {
		uploads, err := s.uploadRepo.ListByAmbassador(ctx, a.ID)
		if err != nil {
			return nil, fmt.Errorf("failed to list uploads for %s: %w", a.ID, err)
		}
		summaries = append(summaries, summarize(a, uploads))
	}
	return summaries, nil
}

func (s *AdminService) GetAmbassador(ctx context.Context, id string) (*AmbassadorDetail, error) {
	ambassador, err := s.ambassadorRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return nil, fmt.Errorf("ambassador not found: %w", common.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to find ambassador: %w", err)
	}

	uploads, err := s.uploadRepo.ListByAmbassador(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to list uploads: %w", err)
	}

	return &AmbassadorDetail{AmbassadorSummary: summarize(ambassador, uploads), Uploads: uploads}, nil
}

// ImageUpdate is one intended change in an admin points batch. Type and
// PublicID select the entry; nil fields are left untouched.
type ImageUpdate struct {
	Type           string   `json:"type"`
	PublicID       string   `json:"public_id"`
	Points         *float64 `json:"points"`
	ApprovalStatus *string  `json:"approval_status"`
}

type PointsUpdateRequest struct {
	ManualPoints *float64      `json:"manualPoints"`
	ImageUpdates []ImageUpdate `json:"imageUpdates"`
}

// UpdatePoints applies an admin points batch and returns the recomputed
// record. Semantics are best-effort patch: the admin UI submits its full set
// of intended changes, and entries that no longer match any upload are
// silently skipped rather than failing the batch. A manual adjustment is
// clamped per edit and added to the stored cumulative value, which itself
// stays unbounded.
func (s *AdminService) UpdatePoints(ctx context.Context, id string, req PointsUpdateRequest) (*AmbassadorDetail, error) {
	ambassador, err := s.ambassadorRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return nil, fmt.Errorf("ambassador not found: %w", common.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to find ambassador: %w", err)
	}

	if req.ManualPoints != nil {
		adjusted := ambassador.ManualPoints + points.Clamp(*req.ManualPoints)
		if err := s.ambassadorRepo.UpdateManualPoints(ctx, id, adjusted); err != nil {
			return nil, fmt.Errorf("failed to update manual points: %w", err)
		}
	}

	for _, update := range req.ImageUpdates {
		if !model.IsValidCategory(update.Type) || update.PublicID == "" {
			continue
		}

		var pointsArg *int
		if update.Points != nil {
			clamped := points.Clamp(*update.Points)
			pointsArg = &clamped
		}
		var statusArg *string
		if update.ApprovalStatus != nil && model.IsValidApprovalStatus(*update.ApprovalStatus) {
			statusArg = update.ApprovalStatus
		}
		if pointsArg == nil && statusArg == nil {
			continue
		}

		// Unmatched (category, public_id) pairs are a no-op for that entry.
		if _, err := s.uploadRepo.UpdateEntry(ctx, id, update.Type, update.PublicID, pointsArg, statusArg); err != nil {
			return nil, fmt.Errorf("failed to patch upload entry: %w", err)
		}
	}

	return s.GetAmbassador(ctx, id)
}

// DeleteAmbassador removes the account and releases its stored images.
// Image-host cleanup is best-effort and never blocks or fails the deletion.
func (s *AdminService) DeleteAmbassador(ctx context.Context, id string) error {
	if _, err := s.ambassadorRepo.FindByID(ctx, id); err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return fmt.Errorf("ambassador not found: %w", common.ErrNotFound)
		}
		return fmt.Errorf("failed to find ambassador: %w", err)
	}

	s.uploadService.CleanupObjects(ctx, id)

	if err := s.ambassadorRepo.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete ambassador: %w", err)
	}
	return nil
}
