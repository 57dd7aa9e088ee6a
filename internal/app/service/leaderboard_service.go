package service

import (
	"context"
	"encoding/json"
	"sort"
	"time"

	"ambassador_portal/internal/domain/model"
	"ambassador_portal/internal/domain/repository"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const (
	leaderboardSize     = 10
	leaderboardCacheKey = "leaderboard:top"
)

// LeaderboardService ranks ambassadors by referral count. The visible board
// is the top 10, cached briefly in Redis; an individual's numeric rank is
// computed over the full set and can exceed the visible window.
type LeaderboardService struct {
	ambassadorRepo repository.AmbassadorRepository
	rdb            *redis.Client
	cacheTTL       time.Duration
}

func NewLeaderboardService(ambassadorRepo repository.AmbassadorRepository, rdb *redis.Client, cacheTTL time.Duration) *LeaderboardService {
	return &LeaderboardService{ambassadorRepo: ambassadorRepo, rdb: rdb, cacheTTL: cacheTTL}
}

// Rank orders ambassadors by total referrals descending, ties broken by
// registration time ascending (earlier registration wins). The sort is
// stable, so the ordering is deterministic for equal keys.
func Rank(all []*model.Ambassador) []*model.Ambassador {
	ordered := make([]*model.Ambassador, len(all))
	copy(ordered, all)
	sort.SliceStable(ordered, func(i, j int) bool {
		if ordered[i].TotalReferrals != ordered[j].TotalReferrals {
			return ordered[i].TotalReferrals > ordered[j].TotalReferrals
		}
		return ordered[i].CreatedAt.Before(ordered[j].CreatedAt)
	})
	return ordered
}

// RankOf computes a numeric rank as (count of strictly greater totals) + 1.
// Ambassadors tied on referral count share the same rank, even though the
// visible ordering breaks the tie by registration time. The asymmetry is
// deliberate: a tie that looks resolved on the board is not resolved in the
// number.
func RankOf(a *model.Ambassador, all []*model.Ambassador) int {
	greater := 0
	for _, other := range all {
		if other.TotalReferrals > a.TotalReferrals {
			greater++
		}
	}
	return greater + 1
}

// Top returns the visible leaderboard. Redis is consulted first; a cache
// problem degrades to the database rather than failing the request.
func (s *LeaderboardService) Top(ctx context.Context) ([]model.LeaderboardEntry, error) {
	if s.rdb != nil {
		cached, err := s.rdb.Get(ctx, leaderboardCacheKey).Bytes()
		if err == nil {
			var entries []model.LeaderboardEntry
			if jsonErr := json.Unmarshal(cached, &entries); jsonErr == nil {
				return entries, nil
			}
		} else if err != redis.Nil {
			zap.S().Warnw("leaderboard cache read failed", "error", err)
		}
	}

	all, err := s.ambassadorRepo.FindAllByCreatedAt(ctx)
	if err != nil {
		return nil, err
	}

	ordered := Rank(all)
	if len(ordered) > leaderboardSize {
		ordered = ordered[:leaderboardSize]
	}

	entries := make([]model.LeaderboardEntry, 0, len(ordered))
	for _, a := range ordered {
		entries = append(entries, model.LeaderboardEntry{
			Rank:           RankOf(a, all),
			Name:           a.Name,
			College:        a.College,
			TotalReferrals: a.TotalReferrals,
		})
	}

	if s.rdb != nil {
		if payload, err := json.Marshal(entries); err == nil {
			if err := s.rdb.Set(ctx, leaderboardCacheKey, payload, s.cacheTTL).Err(); err != nil {
				zap.S().Warnw("leaderboard cache write failed", "error", err)
			}
		}
	}

	return entries, nil
}

// RankFor computes one ambassador's rank over the whole user set.
func (s *LeaderboardService) RankFor(ctx context.Context, ambassador *model.Ambassador) (int, error) {
	all, err := s.ambassadorRepo.FindAllByCreatedAt(ctx)
	if err != nil {
		return 0, err
	}
	return RankOf(ambassador, all), nil
}
