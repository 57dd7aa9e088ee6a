package service

import (
	"context"
	"errors"
	"fmt"

	"ambassador_portal/internal/app/service/points"
	"ambassador_portal/internal/common"
	"ambassador_portal/internal/domain/model"
	"ambassador_portal/internal/domain/repository"
)

// AmbassadorService serves the ambassador's own dashboard view.
type AmbassadorService struct {
	ambassadorRepo repository.AmbassadorRepository
	uploadRepo     repository.UploadRepository
	leaderboard    *LeaderboardService
}

func NewAmbassadorService(
	ambassadorRepo repository.AmbassadorRepository,
	uploadRepo repository.UploadRepository,
	leaderboard *LeaderboardService,
) *AmbassadorService {
	return &AmbassadorService{
		ambassadorRepo: ambassadorRepo,
		uploadRepo:     uploadRepo,
		leaderboard:    leaderboard,
	}
}

type Dashboard struct {
	ID             string                  `json:"id"`
	Name           string                  `json:"name"`
	Email          string                  `json:"email"`
	College        string                  `json:"college"`
	ReferralCode   string                  `json:"referralCode"`
	TotalReferrals int                     `json:"totalReferrals"`
	Rank           int                     `json:"rank"`
	ImagePoints    int                     `json:"imagePoints"`
	ManualPoints   int                     `json:"manualPoints"`
	TotalPoints    int                     `json:"totalPoints"`
	UploadCount    int                     `json:"uploadCount"`
	Uploads        model.UploadsByCategory `json:"uploads"`
}

func (s *AmbassadorService) GetDashboard(ctx context.Context, ambassadorID string) (*Dashboard, error) {
	ambassador, err := s.ambassadorRepo.FindByID(ctx, ambassadorID)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return nil, fmt.Errorf("ambassador not found: %w", common.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to find ambassador: %w", err)
	}

	uploads, err := s.uploadRepo.ListByAmbassador(ctx, ambassadorID)
	if err != nil {
		return nil, fmt.Errorf("failed to list uploads: %w", err)
	}

	rank, err := s.leaderboard.RankFor(ctx, ambassador)
	if err != nil {
		return nil, fmt.Errorf("failed to compute rank: %w", err)
	}

	agg := points.Aggregate(ambassador.ManualPoints, uploads)
	return &Dashboard{
		ID:             ambassador.ID,
		Name:           ambassador.Name,
		Email:          ambassador.Email,
		College:        ambassador.College,
		ReferralCode:   ambassador.ReferralCode,
		TotalReferrals: ambassador.TotalReferrals,
		Rank:           rank,
		ImagePoints:    agg.ImagePoints,
		ManualPoints:   agg.ManualPoints,
		TotalPoints:    agg.TotalPoints,
		UploadCount:    agg.UploadCount,
		Uploads:        uploads,
	}, nil
}
