// Package report exports batch results: CSV files, an ECharts HTML page, PNG
// scatter frames and per-category statistics. It consumes the collections the
// core pipeline produces and owns every on-disk output format.
package report

import (
	"sort"

	"github.com/banshee-data/detection.report/internal/bsd"
)

// SortByTimeThenY returns a copy of detections ordered by timestamp, then y
// ascending, nil y last. Folder enumeration gives no chronological guarantee
// across files; this is the explicit post-ingest sort consumers opt into.
func SortByTimeThenY(detections []bsd.Detection) []bsd.Detection {
	out := make([]bsd.Detection, len(detections))
	copy(out, detections)

	sort.SliceStable(out, func(i, j int) bool {
		if !out[i].Timestamp.At.Equal(out[j].Timestamp.At) {
			return out[i].Timestamp.Before(out[j].Timestamp)
		}
		yi, yj := out[i].Y, out[j].Y
		switch {
		case yi == nil && yj == nil:
			return false
		case yi == nil:
			return false
		case yj == nil:
			return true
		default:
			return *yi < *yj
		}
	})
	return out
}
