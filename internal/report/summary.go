package report

import (
	"gonum.org/v1/gonum/stat"

	"github.com/banshee-data/detection.report/internal/bsd"
)

// CategorySummary describes the velocity distribution of one radar category.
type CategorySummary struct {
	Category bsd.Category
	Entries  int
	// WithVelocity counts the members carrying a velocity field; the moments
	// below are computed over those only.
	WithVelocity int
	MeanVelocity float64
	StdDev       float64
}

// SummarizeCategories computes per-category velocity statistics in the
// canonical category order. Categories with fewer than two velocities report
// a zero standard deviation.
func SummarizeCategories(categories map[bsd.Category][]bsd.Detection) []CategorySummary {
	out := make([]CategorySummary, 0, len(bsd.AllCategories))
	for _, c := range bsd.AllCategories {
		members := categories[c]

		velocities := make([]float64, 0, len(members))
		for _, d := range members {
			if d.Velocity != nil {
				velocities = append(velocities, float64(*d.Velocity))
			}
		}

		s := CategorySummary{
			Category:     c,
			Entries:      len(members),
			WithVelocity: len(velocities),
		}
		if len(velocities) > 0 {
			s.MeanVelocity = stat.Mean(velocities, nil)
		}
		if len(velocities) > 1 {
			s.StdDev = stat.StdDev(velocities, nil)
		}
		out = append(out, s)
	}
	return out
}
