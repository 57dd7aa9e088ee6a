package service_test

import (
	"context"
	"sync"
	"testing"

	"ambassador_portal/internal/app/service"
	"ambassador_portal/internal/common"
	"ambassador_portal/internal/domain/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVerifyNormalizesCode(t *testing.T) {
	var lookedUp string
	repo := &mockAmbassadorRepo{
		findByReferralCodeFn: func(ctx context.Context, code string) (*model.Ambassador, error) {
			lookedUp = code
			return &model.Ambassador{ReferralCode: code, Name: "Priya", College: "IIT Delhi"}, nil
		},
	}
	svc := service.NewReferralService(repo)

	got, err := svc.Verify(context.Background(), "  pri-9f2c1a ")
	require.NoError(t, err)

	assert.Equal(t, "PRI-9F2C1A", lookedUp)
	assert.Equal(t, "PRI-9F2C1A", got.ReferralCode)
	assert.Equal(t, "Priya", got.Name)
	assert.Equal(t, "IIT Delhi", got.College)
}

func TestVerifyEmptyCode(t *testing.T) {
	svc := service.NewReferralService(&mockAmbassadorRepo{})

	_, err := svc.Verify(context.Background(), "   ")
	assert.ErrorIs(t, err, common.ErrBadRequest)
}

func TestVerifyUnknownCode(t *testing.T) {
	svc := service.NewReferralService(&mockAmbassadorRepo{})

	_, err := svc.Verify(context.Background(), "NOPE-000000")
	assert.ErrorIs(t, err, common.ErrNotFound)
}

func TestIncrementUnknownCode(t *testing.T) {
	svc := service.NewReferralService(&mockAmbassadorRepo{})

	err := svc.Increment(context.Background(), "DOES-NOT-EXIST")
	assert.ErrorIs(t, err, common.ErrNotFound)
}

func TestIncrementConcurrent(t *testing.T) {
	var mu sync.Mutex
	counters := map[string]int{}
	repo := &mockAmbassadorRepo{
		incrementFn: func(ctx context.Context, code string) error {
			mu.Lock()
			defer mu.Unlock()
			counters[code]++
			return nil
		},
	}
	svc := service.NewReferralService(repo)

	var wg sync.WaitGroup
	for i := 0; i < 100; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			assert.NoError(t, svc.Increment(context.Background(), "pri-9f2c1a"))
		}()
	}
	wg.Wait()

	assert.Equal(t, 100, counters["PRI-9F2C1A"])
}
