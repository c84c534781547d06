package report

import (
	"encoding/csv"
	"fmt"
	"path/filepath"
	"strconv"

	"github.com/banshee-data/detection.report/internal/bsd"
	"github.com/banshee-data/detection.report/internal/bsd/match"
	"github.com/banshee-data/detection.report/internal/fsutil"
	"github.com/banshee-data/detection.report/internal/monitoring"
)

// Writer writes the batch's CSV outputs under one directory.
type Writer struct {
	FS   fsutil.FileSystem
	Dir  string
	Logf monitoring.LogFunc
}

// WriteDetections writes radar.csv and image.csv, each sorted by (time, y).
// An empty collection skips its file; the original tooling reported "no
// radar data" rather than writing an empty sheet, and that behaviour stays.
func (w *Writer) WriteDetections(radar, image []bsd.Detection) error {
	if len(radar) == 0 {
		w.logf("there is no radar data")
	} else if err := w.writeDetectionFile("radar.csv", bsd.SensorRadar, SortByTimeThenY(radar)); err != nil {
		return err
	}

	if len(image) == 0 {
		w.logf("there is no image data")
	} else if err := w.writeDetectionFile("image.csv", bsd.SensorImage, SortByTimeThenY(image)); err != nil {
		return err
	}
	return nil
}

// WriteCategories writes one CSV per category and logs the entry counts.
func (w *Writer) WriteCategories(categories map[bsd.Category][]bsd.Detection) error {
	for _, c := range bsd.AllCategories {
		members := categories[c]
		w.logf("%s: %d entries", c, len(members))
		if err := w.writeDetectionFile(c.Slug()+".csv", bsd.SensorRadar, members); err != nil {
			return err
		}
	}
	return nil
}

// WriteComparison writes matched.csv and unmatched.csv timeframe summaries
// and logs the overall match percentage.
func (w *Writer) WriteComparison(res match.Result) error {
	w.logf("overall match percentage: %.1f%% (%d of %d radar detections)",
		res.MatchPercentage, res.MatchedCount, res.TotalCount)

	if err := w.writeTimeFrameFile("matched.csv", res.Matched); err != nil {
		return err
	}
	return w.writeTimeFrameFile("unmatched.csv", res.Unmatched)
}

func (w *Writer) writeDetectionFile(name string, sensor bsd.Sensor, detections []bsd.Detection) error {
	return w.writeCSV(name, detectionHeader(sensor), func(cw *csv.Writer) error {
		for _, d := range detections {
			if err := cw.Write(detectionRow(sensor, d)); err != nil {
				return err
			}
		}
		return nil
	})
}

func (w *Writer) writeTimeFrameFile(name string, frames []bsd.TimeFrame) error {
	header := []string{"time", "radar_count", "image_count"}
	return w.writeCSV(name, header, func(cw *csv.Writer) error {
		for _, f := range frames {
			row := []string{f.Timestamp.Raw, strconv.Itoa(len(f.Radar)), strconv.Itoa(len(f.Image))}
			if err := cw.Write(row); err != nil {
				return err
			}
		}
		return nil
	})
}

func (w *Writer) writeCSV(name string, header []string, rows func(*csv.Writer) error) error {
	fsys := w.FS
	if fsys == nil {
		fsys = fsutil.OSFileSystem{}
	}

	path := filepath.Join(w.Dir, name)
	f, err := fsys.Create(path)
	if err != nil {
		return fmt.Errorf("create %q: %w", path, err)
	}
	defer f.Close()

	cw := csv.NewWriter(f)
	if err := cw.Write(header); err != nil {
		return fmt.Errorf("write %q header: %w", path, err)
	}
	if err := rows(cw); err != nil {
		return fmt.Errorf("write %q rows: %w", path, err)
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("flush %q: %w", path, err)
	}
	return f.Close()
}

func detectionHeader(sensor bsd.Sensor) []string {
	h := []string{"time", "x", "y", "confidence"}
	if sensor == bsd.SensorRadar {
		h = append(h, "distance", "theta", "velocity", "power")
	} else {
		h = append(h, "left", "top", "width", "height")
	}
	return append(h, "source_file", "source_line")
}

func detectionRow(sensor bsd.Sensor, d bsd.Detection) []string {
	row := []string{d.Timestamp.Raw, formatInt(d.X), formatInt(d.Y), formatInt(d.Confidence)}
	if sensor == bsd.SensorRadar {
		row = append(row, formatInt(d.Distance), formatInt(d.Theta), formatInt(d.Velocity), formatInt(d.Power))
	} else {
		row = append(row, formatInt(d.Left), formatInt(d.Top), formatInt(d.Width), formatInt(d.Height))
	}
	return append(row, d.SourceFile, strconv.Itoa(d.SourceLine))
}

// formatInt renders an optional scalar; absent fields export as empty cells,
// never zero.
func formatInt(p *int) string {
	if p == nil {
		return ""
	}
	return strconv.Itoa(*p)
}

func (w *Writer) logf(format string, v ...interface{}) {
	if w.Logf != nil {
		w.Logf(format, v...)
		return
	}
	monitoring.Logf(format, v...)
}
