package service_test

import (
	"context"
	"testing"
	"time"

	"ambassador_portal/internal/app/service"
	"ambassador_portal/internal/domain/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func rankedFixture() []*model.Ambassador {
	base := time.Date(2026, 1, 10, 12, 0, 0, 0, time.UTC)
	return []*model.Ambassador{
		{ID: "c", Name: "Carol", TotalReferrals: 3, CreatedAt: base.Add(2 * time.Hour)},
		{ID: "b", Name: "Bob", TotalReferrals: 10, CreatedAt: base.Add(time.Hour)},
		{ID: "a", Name: "Alice", TotalReferrals: 10, CreatedAt: base},
	}
}

func TestRankOrdersByReferralsThenRegistration(t *testing.T) {
	ordered := service.Rank(rankedFixture())

	require.Len(t, ordered, 3)
	assert.Equal(t, "a", ordered[0].ID) // earlier registration wins the tie
	assert.Equal(t, "b", ordered[1].ID)
	assert.Equal(t, "c", ordered[2].ID)
}

func TestRankOfSharesTiedRanks(t *testing.T) {
	all := rankedFixture()
	byID := map[string]*model.Ambassador{}
	for _, a := range all {
		byID[a.ID] = a
	}

	assert.Equal(t, 1, service.RankOf(byID["a"], all))
	assert.Equal(t, 1, service.RankOf(byID["b"], all))
	assert.Equal(t, 3, service.RankOf(byID["c"], all))
}

func TestTopLimitsToTen(t *testing.T) {
	base := time.Date(2026, 1, 10, 12, 0, 0, 0, time.UTC)
	all := make([]*model.Ambassador, 0, 12)
	for i := 0; i < 12; i++ {
		all = append(all, &model.Ambassador{
			ID:             string(rune('a' + i)),
			TotalReferrals: 12 - i,
			CreatedAt:      base.Add(time.Duration(i) * time.Minute),
		})
	}
	repo := &mockAmbassadorRepo{
		findAllFn: func(ctx context.Context) ([]*model.Ambassador, error) {
			return all, nil
		},
	}
	svc := service.NewLeaderboardService(repo, nil, 0)

	entries, err := svc.Top(context.Background())
	require.NoError(t, err)

	require.Len(t, entries, 10)
	assert.Equal(t, 1, entries[0].Rank)
	assert.Equal(t, 12, entries[0].TotalReferrals)
	assert.Equal(t, 10, entries[9].Rank)
}

func TestRankForUsesFullSet(t *testing.T) {
	all := rankedFixture()
	repo := &mockAmbassadorRepo{
		findAllFn: func(ctx context.Context) ([]*model.Ambassador, error) {
			return all, nil
		},
	}
	svc := service.NewLeaderboardService(repo, nil, 0)

	rank, err := svc.RankFor(context.Background(), all[0]) // Carol
	require.NoError(t, err)
	assert.Equal(t, 3, rank)
}
