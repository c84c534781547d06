// Package match verifies cross-sensor consistency between the radar and
// imaging subsystems.
//
// Verification is driven by the radar side: for every timestamp that appears
// in the radar collection, every radar detection at that timestamp must have
// an image detection with identical x, y and confidence. A time-frame either
// passes whole or fails whole: one unmatched radar detection condemns the
// frame including its matched siblings. Timestamps that occur only in the
// image collection are never evaluated.
package match

import (
	"sort"

	"github.com/banshee-data/detection.report/internal/bsd"
)

// Result is the outcome of one cross-sensor comparison.
type Result struct {
	Matched   []bsd.TimeFrame
	Unmatched []bsd.TimeFrame

	// MatchedCount and TotalCount count radar detections, not frames.
	MatchedCount int
	TotalCount   int

	// MatchPercentage is 100 * MatchedCount / TotalCount, or 0 when the radar
	// collection is empty.
	MatchPercentage float64
}

// Compare partitions the radar timestamps into matched and unmatched
// time-frames, ascending by time, and computes the aggregate match
// percentage. It is a pure function of its inputs.
func Compare(radar, image []bsd.Detection) Result {
	radarByTime := groupByTime(radar)
	imageByTime := groupByTime(image)

	// Timestamps are keyed by exact value; only radar timestamps are visited.
	stamps := make(map[int64]bsd.Timestamp, len(radarByTime))
	keys := make([]int64, 0, len(radarByTime))
	for _, d := range radar {
		k := d.Timestamp.Key()
		if _, seen := stamps[k]; !seen {
			stamps[k] = d.Timestamp
			keys = append(keys, k)
		}
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i] < keys[j] })

	var res Result
	for _, k := range keys {
		frame := bsd.TimeFrame{
			Timestamp: stamps[k],
			Radar:     radarByTime[k],
			Image:     imageByTime[k],
		}

		allMatched := true
		for _, r := range frame.Radar {
			if !hasImageMatch(r, frame.Image) {
				allMatched = false
				break
			}
		}

		res.TotalCount += len(frame.Radar)
		if allMatched && len(frame.Radar) > 0 {
			res.MatchedCount += len(frame.Radar)
			res.Matched = append(res.Matched, frame)
		} else {
			res.Unmatched = append(res.Unmatched, frame)
		}
	}

	if res.TotalCount > 0 {
		res.MatchPercentage = 100 * float64(res.MatchedCount) / float64(res.TotalCount)
	}
	return res
}

// hasImageMatch reports whether any image detection agrees with r on x, y and
// confidence. One image detection may satisfy several radar detections;
// multiplicity is deliberately not checked.
func hasImageMatch(r bsd.Detection, image []bsd.Detection) bool {
	for _, i := range image {
		if eqField(r.X, i.X) && eqField(r.Y, i.Y) && eqField(r.Confidence, i.Confidence) {
			return true
		}
	}
	return false
}

// eqField compares two optional scalars. Two absent values are equal; an
// absent value never equals a present one.
func eqField(a, b *int) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return *a == *b
}

func groupByTime(detections []bsd.Detection) map[int64][]bsd.Detection {
	groups := make(map[int64][]bsd.Detection)
	for _, d := range detections {
		k := d.Timestamp.Key()
		groups[k] = append(groups[k], d)
	}
	return groups
}
