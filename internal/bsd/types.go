// Package bsd defines the detection records shared across the BSD log
// verification pipeline: parsed sensor detections, their timestamps, the
// per-timestamp frames produced by cross-sensor matching, and the radar
// categorisation labels.
package bsd

import "time"

// Sensor identifies which subsystem emitted a detection.
type Sensor int

const (
	SensorRadar Sensor = iota
	SensorImage
)

func (s Sensor) String() string {
	switch s {
	case SensorRadar:
		return "radar"
	case SensorImage:
		return "image"
	default:
		return "unknown"
	}
}

// Timestamp is one parsed log header time. Frames are grouped by exact value
// equality, never tolerance windows, so Key() is the canonical grouping key.
type Timestamp struct {
	Raw string // header line as it appeared in the log
	At  time.Time
}

// Key returns the exact-equality grouping key for the timestamp.
func (t Timestamp) Key() int64 { return t.At.UnixNano() }

// Before reports whether t is earlier than u.
func (t Timestamp) Before(u Timestamp) bool { return t.At.Before(u.At) }

// IsZero reports whether the timestamp is unset (no header seen yet).
func (t Timestamp) IsZero() bool { return t.At.IsZero() }

// Detection is one parsed sensor observation. Scalar fields are pointers
// because the logs routinely omit them; nil means the field was absent, and
// is never coerced to zero. Radar-only and image-only fields are nil for the
// other sensor.
type Detection struct {
	Sensor     Sensor
	X          *int
	Y          *int
	Confidence *int

	// Radar raw block.
	Distance *int
	Theta    *int
	Velocity *int
	Power    *int

	// Image raw block.
	Left   *int
	Top    *int
	Width  *int
	Height *int

	// Timestamp is attached by the ingestor; detections without timestamp
	// context are dropped before they reach any consumer, so this is always
	// set downstream.
	Timestamp Timestamp

	// Provenance for warnings and persistence.
	SourceFile string
	SourceLine int
}

// TimeFrame is the set of all radar and image detections sharing one exact
// timestamp.
type TimeFrame struct {
	Timestamp Timestamp
	Radar     []Detection
	Image     []Detection
}

// Int returns a pointer to v. Convenience for building detections in tests
// and generators.
func Int(v int) *int { return &v }
