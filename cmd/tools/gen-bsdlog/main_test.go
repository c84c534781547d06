package main

import (
	"bufio"
	"bytes"
	"math/rand"
	"strings"
	"testing"
	"time"

	"github.com/banshee-data/detection.report/internal/bsd/parse"
)

func TestWriteLogOutputParses(t *testing.T) {
	var buf bytes.Buffer
	rng := rand.New(rand.NewSource(1))
	start := time.Date(2024, 3, 18, 14, 0, 0, 0, time.UTC)

	writeLog(&buf, rng, start, 20, 0.1)

	var warnings []string
	p := &parse.Parser{Warnf: func(format string, v ...interface{}) {
		warnings = append(warnings, format)
	}}

	var headers, radar, image int
	scanner := bufio.NewScanner(&buf)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		if _, ok := parse.ParseTimestamp(line); ok {
			headers++
			continue
		}
		d, ok := p.Parse(line)
		if !ok {
			t.Fatalf("generated line does not parse: %q", line)
		}
		if d.X == nil || d.Y == nil || d.Confidence == nil {
			t.Errorf("generated detection missing a scalar: %q", line)
		}
		switch {
		case strings.Contains(line, "BsdRadarObjInfo"):
			radar++
			if d.Velocity == nil {
				t.Errorf("radar line missing velocity: %q", line)
			}
		case strings.Contains(line, "BsdImageObjInfo"):
			image++
			if d.Height == nil {
				t.Errorf("image line missing height: %q", line)
			}
		}
	}
	if err := scanner.Err(); err != nil {
		t.Fatalf("scanning output: %v", err)
	}

	if headers != 20 {
		t.Errorf("got %d timestamp headers, want 20", headers)
	}
	if radar != 20 {
		t.Errorf("got %d radar lines, want one per frame", radar)
	}
	if image > radar {
		t.Errorf("got %d image lines for %d radar lines", image, radar)
	}
	if len(warnings) > 0 {
		t.Errorf("generated output raised parser warnings: %v", warnings)
	}
}

func TestWriteLogTimestampsAdvance(t *testing.T) {
	var buf bytes.Buffer
	rng := rand.New(rand.NewSource(7))
	start := time.Date(2024, 3, 18, 14, 0, 0, 0, time.UTC)

	writeLog(&buf, rng, start, 3, 0)

	var stamps []int64
	scanner := bufio.NewScanner(&buf)
	for scanner.Scan() {
		if ts, ok := parse.ParseTimestamp(strings.TrimSpace(scanner.Text())); ok {
			stamps = append(stamps, ts.Key())
		}
	}
	if len(stamps) != 3 {
		t.Fatalf("got %d headers, want 3", len(stamps))
	}
	for i := 1; i < len(stamps); i++ {
		if got := stamps[i] - stamps[i-1]; got != int64(100*time.Millisecond) {
			t.Errorf("header gap %d = %dns, want 100ms", i, got)
		}
	}
}

func TestWriteLogMismatchZeroPairsEveryFrame(t *testing.T) {
	var buf bytes.Buffer
	rng := rand.New(rand.NewSource(3))

	writeLog(&buf, rng, time.Date(2024, 3, 18, 14, 0, 0, 0, time.UTC), 10, 0)

	out := buf.String()
	radar := strings.Count(out, "BsdRadarObjInfo")
	image := strings.Count(out, "BsdImageObjInfo")
	if radar != 10 || image != 10 {
		t.Errorf("got %d radar / %d image lines, want 10 / 10", radar, image)
	}
}
