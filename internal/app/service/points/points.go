// Package points holds the scoring arithmetic for ambassador uploads:
// clamping of awarded points and aggregation of per-category totals.
package points

import (
	"math"

	"ambassador_portal/internal/domain/model"
)

const (
	MinPoints = 0
	MaxPoints = 5
)

// Clamp rounds to the nearest integer and bounds the result into
// [MinPoints, MaxPoints]. Applied on every write path; out-of-range input is
// clamped at the boundary, never stored as-is.
func Clamp(v float64) int {
	r := int(math.Round(v))
	return ClampInt(r)
}

func ClampInt(n int) int {
	if n < MinPoints {
		return MinPoints
	}
	if n > MaxPoints {
		return MaxPoints
	}
	return n
}

// Summary is the recomputed points view of one ambassador. TotalPoints is
// always derived, never stored, so it cannot drift from its parts.
type Summary struct {
	ImagePoints  int `json:"imagePoints"`
	ManualPoints int `json:"manualPoints"`
	TotalPoints  int `json:"totalPoints"`
	UploadCount  int `json:"uploadCount"`
}

// Aggregate computes image points, total points and upload counts from the
// stored manual adjustment and the per-category upload lists. Per-entry
// points are clamped again on read; stored values outside the range never
// reach a total.
func Aggregate(manualPoints int, uploads model.UploadsByCategory) Summary {
	s := Summary{ManualPoints: manualPoints}
	for _, entries := range uploads {
		s.UploadCount += len(entries)
		for _, e := range entries {
			s.ImagePoints += ClampInt(e.Points)
		}
	}
	s.TotalPoints = s.ImagePoints + s.ManualPoints
	return s
}
