// Package parse converts raw BSD log lines into typed detection records.
//
// A detection line carries a sensor marker token (BsdRadarObjInfo or
// BsdImageObjInfo), scalar fields anywhere on the line, and an optional
// labelled raw block of key=value pairs:
//
//	BsdRadarObjInfo {x=0, y=5, confidence=9, raw=BsdRadarObjRaw {distance=12, theta=3, velocity=-2, power=88}}
//
// Parsing is lenient: a missing scalar yields a nil field, a malformed raw
// entry is skipped with a warning, and an unrecognised raw key is ignored.
// Nothing in this package aborts a line, a file, or a batch.
package parse

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/banshee-data/detection.report/internal/bsd"
	"github.com/banshee-data/detection.report/internal/monitoring"
)

const (
	radarMarker = "BsdRadarObjInfo"
	imageMarker = "BsdImageObjInfo"
)

// Scalar fields are searched independently so a line missing one field still
// yields the others. The leading delimiter class keeps y= from matching the
// tail of velocity=.
var (
	xPattern    = regexp.MustCompile(`(?:^|[\s{,])x=(-?\d+)`)
	yPattern    = regexp.MustCompile(`(?:^|[\s{,])y=(-?\d+)`)
	confPattern = regexp.MustCompile(`(?:^|[\s{,])confidence=(-?\d+)`)

	radarRawPattern = regexp.MustCompile(`raw=BsdRadarObjRaw\s*\{([^}]*)\}`)
	imageRawPattern = regexp.MustCompile(`raw=BsdImageObjRaw\s*\{([^}]*)\}`)
)

// Parser turns single log lines into detection records. The zero value is
// ready to use and reports anomalies through monitoring.Logf; callers that
// know the source file and line (the ingestor) install their own Warnf to add
// that context.
type Parser struct {
	Warnf monitoring.LogFunc
}

// Parse converts one raw log line into a detection record. The second return
// is false for any line that carries no sensor marker, including timestamp
// headers, which are the ingestor's concern, not this parser's.
func (p *Parser) Parse(line string) (bsd.Detection, bool) {
	var d bsd.Detection
	switch {
	case strings.Contains(line, radarMarker):
		d.Sensor = bsd.SensorRadar
	case strings.Contains(line, imageMarker):
		d.Sensor = bsd.SensorImage
	default:
		return bsd.Detection{}, false
	}

	d.X = firstInt(xPattern, line)
	d.Y = firstInt(yPattern, line)
	d.Confidence = firstInt(confPattern, line)

	if d.Sensor == bsd.SensorRadar {
		if m := radarRawPattern.FindStringSubmatch(line); m != nil {
			p.parseRaw(m[1], &d)
		}
	} else {
		if m := imageRawPattern.FindStringSubmatch(line); m != nil {
			p.parseRaw(m[1], &d)
		}
	}

	return d, true
}

// parseRaw maps the key=value entries of a raw block onto the typed fields
// for the detection's sensor. A malformed entry skips that one field only.
func (p *Parser) parseRaw(content string, d *bsd.Detection) {
	for _, item := range strings.Split(content, ",") {
		item = strings.TrimSpace(item)
		if item == "" {
			continue
		}

		k, v, ok := strings.Cut(item, "=")
		if !ok {
			p.warnf("raw entry %q has no '='; skipping field", item)
			continue
		}
		key := strings.TrimSpace(k)

		n, err := strconv.Atoi(strings.TrimSpace(v))
		if err != nil {
			p.warnf("raw entry %q has a non-integer value; skipping field", item)
			continue
		}

		if d.Sensor == bsd.SensorRadar {
			switch key {
			case "distance":
				d.Distance = &n
			case "theta":
				d.Theta = &n
			case "velocity":
				d.Velocity = &n
			case "power":
				d.Power = &n
			}
		} else {
			switch key {
			case "left":
				d.Left = &n
			case "top":
				d.Top = &n
			case "width":
				d.Width = &n
			case "height":
				d.Height = &n
			}
		}
		// Unrecognised keys fall through silently: the sensors add fields
		// between firmware revisions and old logs must keep parsing.
	}
}

func (p *Parser) warnf(format string, v ...interface{}) {
	if p.Warnf != nil {
		p.Warnf(format, v...)
		return
	}
	monitoring.Logf(format, v...)
}

func firstInt(re *regexp.Regexp, line string) *int {
	m := re.FindStringSubmatch(line)
	if m == nil {
		return nil
	}
	n, err := strconv.Atoi(m[1])
	if err != nil {
		return nil
	}
	return &n
}
