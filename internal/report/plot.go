package report

import (
	"fmt"
	"image/color"
	"os"
	"path/filepath"
	"sort"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"

	"github.com/banshee-data/detection.report/internal/bsd"
	"github.com/banshee-data/detection.report/internal/fsutil"
)

var (
	radarColor = color.RGBA{R: 31, G: 119, B: 180, A: 255}
	imageColor = color.RGBA{R: 214, G: 39, B: 40, A: 255}
)

// WriteFramePlots renders one PNG scatter per time-frame under dir, ascending
// by time: radar detections as crosses, image detections as circles. It
// replaces the original interactive animation with one still per frame.
func WriteFramePlots(fsys fsutil.FileSystem, dir string, frames []bsd.TimeFrame) error {
	if fsys == nil {
		fsys = fsutil.OSFileSystem{}
	}
	if err := fsys.MkdirAll(dir, os.FileMode(0755)); err != nil {
		return fmt.Errorf("create frames dir %q: %w", dir, err)
	}

	ordered := make([]bsd.TimeFrame, len(frames))
	copy(ordered, frames)
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].Timestamp.Before(ordered[j].Timestamp)
	})

	for i, frame := range ordered {
		name := filepath.Join(dir, fmt.Sprintf("frame_%04d.png", i+1))
		if err := writeFramePlot(fsys, name, frame); err != nil {
			return err
		}
	}
	return nil
}

func writeFramePlot(fsys fsutil.FileSystem, path string, frame bsd.TimeFrame) error {
	p := plot.New()
	p.Title.Text = frame.Timestamp.Raw
	p.X.Label.Text = "x"
	p.Y.Label.Text = "y"
	p.Legend.Top = true

	radarScatter, err := plotter.NewScatter(frameXYs(frame.Radar))
	if err != nil {
		return fmt.Errorf("radar scatter for %q: %w", frame.Timestamp.Raw, err)
	}
	radarScatter.GlyphStyle.Shape = draw.CrossGlyph{}
	radarScatter.GlyphStyle.Color = radarColor
	radarScatter.GlyphStyle.Radius = vg.Points(4)
	p.Add(radarScatter)
	p.Legend.Add("radar", radarScatter)

	imageScatter, err := plotter.NewScatter(frameXYs(frame.Image))
	if err != nil {
		return fmt.Errorf("image scatter for %q: %w", frame.Timestamp.Raw, err)
	}
	imageScatter.GlyphStyle.Shape = draw.CircleGlyph{}
	imageScatter.GlyphStyle.Color = imageColor
	imageScatter.GlyphStyle.Radius = vg.Points(3)
	p.Add(imageScatter)
	p.Legend.Add("image", imageScatter)

	wt, err := p.WriterTo(6*vg.Inch, 6*vg.Inch, "png")
	if err != nil {
		return fmt.Errorf("render frame %q: %w", frame.Timestamp.Raw, err)
	}

	f, err := fsys.Create(path)
	if err != nil {
		return fmt.Errorf("create %q: %w", path, err)
	}
	defer f.Close()

	if _, err := wt.WriteTo(f); err != nil {
		return fmt.Errorf("write %q: %w", path, err)
	}
	return f.Close()
}

func frameXYs(detections []bsd.Detection) plotter.XYs {
	pts := make(plotter.XYs, 0, len(detections))
	for _, d := range detections {
		if d.X == nil || d.Y == nil {
			continue
		}
		pts = append(pts, plotter.XY{X: float64(*d.X), Y: float64(*d.Y)})
	}
	return pts
}
