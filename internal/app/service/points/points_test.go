package points_test

import (
	"testing"

	"ambassador_portal/internal/app/service/points"
	"ambassador_portal/internal/domain/model"

	"github.com/stretchr/testify/assert"
)

func TestClamp(t *testing.T) {
	tests := []struct {
		name string
		in   float64
		want int
	}{
		{"within range", 3, 3},
		{"rounds half up", 2.5, 3},
		{"rounds down", 2.4, 2},
		{"above max", 7, 5},
		{"below min", -3, 0},
		{"upper boundary", 5, 5},
		{"lower boundary", 0, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, points.Clamp(tt.in))
		})
	}
}

func TestAggregate(t *testing.T) {
	uploads := model.UploadsByCategory{
		model.CategoryWhatsappStatus: {
			{Points: 3, ApprovalStatus: model.ApprovalVerified},
			{Points: 5, ApprovalStatus: model.ApprovalVerified},
		},
		model.CategoryInstagramStory: {
			{Points: 0, ApprovalStatus: model.ApprovalPending},
		},
		model.CategoryWhatsappGroup: {},
	}

	got := points.Aggregate(4, uploads)

	assert.Equal(t, 8, got.ImagePoints)
	assert.Equal(t, 4, got.ManualPoints)
	assert.Equal(t, 12, got.TotalPoints)
	assert.Equal(t, 3, got.UploadCount)
}

func TestAggregateNoUploads(t *testing.T) {
	got := points.Aggregate(2, model.UploadsByCategory{})

	assert.Equal(t, 0, got.ImagePoints)
	assert.Equal(t, 2, got.TotalPoints)
	assert.Equal(t, 0, got.UploadCount)
}

func TestAggregateBoundsStoredPoints(t *testing.T) {
	// A row that somehow holds an out-of-range value must not inflate the
	// aggregate.
	uploads := model.UploadsByCategory{
		model.CategoryWhatsappStatus: {{Points: 9}},
	}

	got := points.Aggregate(0, uploads)

	assert.Equal(t, 5, got.ImagePoints)
	assert.Equal(t, 5, got.TotalPoints)
}
