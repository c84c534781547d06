// Package categorize partitions radar detections into the four operational
// categories used by the triage sheet.
//
// The categories are evaluated independently over the full collection: a
// detection at a boundary can satisfy more than one predicate and will then
// appear in every category it satisfies. Nothing here is mutually exclusive
// by construction.
package categorize

import (
	"sort"

	"github.com/banshee-data/detection.report/internal/bsd"
)

// Thresholds are the y-axis boundaries between the near, mid and far bands.
type Thresholds struct {
	NearMax int // Category 1: y < NearMax
	FarMin  int // Category 3: y > FarMin; Category 2 is [NearMax, FarMin]
}

// DefaultThresholds matches the triage sheet labels.
var DefaultThresholds = Thresholds{NearMax: 20, FarMin: 80}

// Radar categorises with the default thresholds.
func Radar(detections []bsd.Detection) map[bsd.Category][]bsd.Detection {
	return RadarWith(DefaultThresholds, detections)
}

// RadarWith evaluates every category predicate over detections and returns
// the members of each, keyed by category. All four keys are always present;
// empty input yields four empty slices. Categories 1-3 are sorted by y
// ascending with the original relative order preserved on ties; category 4 is
// left in encounter order (all of its members share y = 0).
func RadarWith(t Thresholds, detections []bsd.Detection) map[bsd.Category][]bsd.Detection {
	out := make(map[bsd.Category][]bsd.Detection, len(bsd.AllCategories))
	for _, c := range bsd.AllCategories {
		members := make([]bsd.Detection, 0)
		for _, d := range detections {
			if matches(t, c, d) {
				members = append(members, d)
			}
		}
		if c != bsd.CategoryStationary {
			sort.SliceStable(members, func(i, j int) bool {
				return *members[i].Y < *members[j].Y
			})
		}
		out[c] = members
	}
	return out
}

// matches evaluates one category predicate. A nil field never satisfies a
// comparison: nil velocity is not zero velocity, and a detection without y
// lands in no band.
func matches(t Thresholds, c bsd.Category, d bsd.Detection) bool {
	switch c {
	case bsd.CategoryNear:
		return d.Y != nil && *d.Y < t.NearMax && moving(d)
	case bsd.CategoryMid:
		return d.Y != nil && *d.Y >= t.NearMax && *d.Y <= t.FarMin && moving(d)
	case bsd.CategoryFar:
		return d.Y != nil && *d.Y > t.FarMin && moving(d)
	case bsd.CategoryStationary:
		return d.X != nil && *d.X == 0 &&
			d.Y != nil && *d.Y == 0 &&
			d.Velocity != nil && *d.Velocity == 0
	default:
		return false
	}
}

func moving(d bsd.Detection) bool {
	return d.Velocity != nil && *d.Velocity != 0
}
