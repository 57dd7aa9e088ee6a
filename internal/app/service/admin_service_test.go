package service_test

import (
	"context"
	"errors"
	"testing"

	"ambassador_portal/internal/app/service"
	"ambassador_portal/internal/common"
	"ambassador_portal/internal/domain/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func floatPtr(v float64) *float64 { return &v }
func strPtr(v string) *string     { return &v }

// adminFixture wires an AdminService around one ambassador whose manual
// points track UpdateManualPoints calls.
func adminFixture(uploadRepo *mockUploadRepo) (*service.AdminService, *model.Ambassador) {
	ambassador := &model.Ambassador{ID: "amb-1", Name: "Priya", ManualPoints: 2}
	ambRepo := &mockAmbassadorRepo{
		findByIDFn: func(ctx context.Context, id string) (*model.Ambassador, error) {
			if id == ambassador.ID {
				cp := *ambassador
				return &cp, nil
			}
			return nil, common.ErrNotFound
		},
		updateManualPointsFn: func(ctx context.Context, id string, manualPoints int) error {
			ambassador.ManualPoints = manualPoints
			return nil
		},
	}
	uploadService := service.NewUploadService(uploadRepo, ambRepo, &mockObjectStore{})
	return service.NewAdminService(ambRepo, uploadRepo, uploadService), ambassador
}

func TestUpdatePointsManualDelta(t *testing.T) {
	svc, ambassador := adminFixture(&mockUploadRepo{})

	// Each edit is clamped before being added to the stored value.
	detail, err := svc.UpdatePoints(context.Background(), "amb-1", service.PointsUpdateRequest{
		ManualPoints: floatPtr(9),
	})
	require.NoError(t, err)
	assert.Equal(t, 7, ambassador.ManualPoints) // 2 + clamp(9)=5

	detail, err = svc.UpdatePoints(context.Background(), "amb-1", service.PointsUpdateRequest{
		ManualPoints: floatPtr(4),
	})
	require.NoError(t, err)
	assert.Equal(t, 11, ambassador.ManualPoints)
	assert.Equal(t, 11, detail.TotalPoints)
}

func TestUpdatePointsPatchesUploadEntries(t *testing.T) {
	uploadRepo := &mockUploadRepo{
		entries: []*model.Upload{
			{AmbassadorID: "amb-1", Category: model.CategoryWhatsappStatus, PublicID: "obj-1",
				ApprovalStatus: model.ApprovalPending},
		},
	}
	svc, _ := adminFixture(uploadRepo)

	detail, err := svc.UpdatePoints(context.Background(), "amb-1", service.PointsUpdateRequest{
		ImageUpdates: []service.ImageUpdate{
			{
				Type:           model.CategoryWhatsappStatus,
				PublicID:       "obj-1",
				Points:         floatPtr(7.4),
				ApprovalStatus: strPtr(model.ApprovalVerified),
			},
		},
	})
	require.NoError(t, err)

	assert.Equal(t, 5, uploadRepo.entries[0].Points) // clamped
	assert.Equal(t, model.ApprovalVerified, uploadRepo.entries[0].ApprovalStatus)
	assert.Equal(t, 5, detail.ImagePoints)
	assert.Equal(t, 7, detail.TotalPoints) // stored manual 2 + image 5
	assert.Equal(t, 1, detail.UploadCount)
}

func TestUpdatePointsSkipsUnmatchedEntries(t *testing.T) {
	uploadRepo := &mockUploadRepo{
		entries: []*model.Upload{
			{AmbassadorID: "amb-1", Category: model.CategoryWhatsappStatus, PublicID: "obj-1"},
		},
	}
	svc, _ := adminFixture(uploadRepo)

	// Unknown public_id, wrong category and invalid category are all silently
	// skipped; the batch still succeeds.
	_, err := svc.UpdatePoints(context.Background(), "amb-1", service.PointsUpdateRequest{
		ImageUpdates: []service.ImageUpdate{
			{Type: model.CategoryWhatsappStatus, PublicID: "gone", Points: floatPtr(5)},
			{Type: model.CategoryInstagramStory, PublicID: "obj-1", Points: floatPtr(5)},
			{Type: "tiktok", PublicID: "obj-1", Points: floatPtr(5)},
			{Type: model.CategoryWhatsappStatus, PublicID: "", Points: floatPtr(5)},
		},
	})
	require.NoError(t, err)
	assert.Equal(t, 0, uploadRepo.entries[0].Points)
}

func TestUpdatePointsIgnoresInvalidStatus(t *testing.T) {
	uploadRepo := &mockUploadRepo{
		entries: []*model.Upload{
			{AmbassadorID: "amb-1", Category: model.CategoryWhatsappStatus, PublicID: "obj-1",
				ApprovalStatus: model.ApprovalPending},
		},
	}
	svc, _ := adminFixture(uploadRepo)

	_, err := svc.UpdatePoints(context.Background(), "amb-1", service.PointsUpdateRequest{
		ImageUpdates: []service.ImageUpdate{
			{Type: model.CategoryWhatsappStatus, PublicID: "obj-1", ApprovalStatus: strPtr("maybe")},
		},
	})
	require.NoError(t, err)
	assert.Equal(t, model.ApprovalPending, uploadRepo.entries[0].ApprovalStatus)
}

func TestUpdatePointsUnknownAmbassador(t *testing.T) {
	svc, _ := adminFixture(&mockUploadRepo{})

	_, err := svc.UpdatePoints(context.Background(), "ghost", service.PointsUpdateRequest{})
	assert.ErrorIs(t, err, common.ErrNotFound)
}

func TestGetAmbassadorRecomputesTotals(t *testing.T) {
	uploadRepo := &mockUploadRepo{
		entries: []*model.Upload{
			{AmbassadorID: "amb-1", Category: model.CategoryWhatsappStatus, PublicID: "obj-1", Points: 3},
			{AmbassadorID: "amb-1", Category: model.CategoryInstagramStory, PublicID: "obj-2", Points: 4},
		},
	}
	svc, _ := adminFixture(uploadRepo)

	detail, err := svc.GetAmbassador(context.Background(), "amb-1")
	require.NoError(t, err)

	assert.Equal(t, 7, detail.ImagePoints)
	assert.Equal(t, 2, detail.ManualPoints)
	assert.Equal(t, 9, detail.TotalPoints)
	assert.Equal(t, 2, detail.UploadCount)
	require.Len(t, detail.Uploads, 3) // every category present, empty or not
	assert.Len(t, detail.Uploads[model.CategoryWhatsappGroup], 0)
}

func TestDeleteAmbassadorCleansUpObjects(t *testing.T) {
	uploadRepo := &mockUploadRepo{
		entries: []*model.Upload{
			{AmbassadorID: "amb-1", Category: model.CategoryWhatsappStatus, PublicID: "obj-1"},
		},
	}
	ambassador := &model.Ambassador{ID: "amb-1"}
	var deletedID string
	ambRepo := &mockAmbassadorRepo{
		findByIDFn: func(ctx context.Context, id string) (*model.Ambassador, error) {
			if id == ambassador.ID {
				return ambassador, nil
			}
			return nil, common.ErrNotFound
		},
		deleteFn: func(ctx context.Context, id string) error {
			deletedID = id
			return nil
		},
	}
	store := &mockObjectStore{deleteErr: errors.New("r2 unavailable")}
	uploadService := service.NewUploadService(uploadRepo, ambRepo, store)
	svc := service.NewAdminService(ambRepo, uploadRepo, uploadService)

	// Image-host failure must not block account deletion.
	err := svc.DeleteAmbassador(context.Background(), "amb-1")
	require.NoError(t, err)
	assert.Equal(t, "amb-1", deletedID)
	assert.Equal(t, []string{"obj-1"}, store.deleted)
}

func TestDeleteAmbassadorUnknown(t *testing.T) {
	svc, _ := adminFixture(&mockUploadRepo{})

	err := svc.DeleteAmbassador(context.Background(), "ghost")
	assert.ErrorIs(t, err, common.ErrNotFound)
}
