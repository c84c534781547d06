package report

import (
	"fmt"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/components"
	"github.com/go-echarts/go-echarts/v2/opts"

	"github.com/banshee-data/detection.report/internal/bsd"
	"github.com/banshee-data/detection.report/internal/bsd/match"
	"github.com/banshee-data/detection.report/internal/fsutil"
)

// WriteHTML renders the run report page: a radar-vs-image scatter of the x/y
// plane, a per-category bar chart and a matched/unmatched frame bar chart.
func WriteHTML(fsys fsutil.FileSystem, path string, radar, image []bsd.Detection, categories map[bsd.Category][]bsd.Detection, res match.Result) error {
	if fsys == nil {
		fsys = fsutil.OSFileSystem{}
	}

	page := components.NewPage()
	page.AddCharts(
		detectionScatter(radar, image),
		categoryBar(categories),
		frameBar(res),
	)

	f, err := fsys.Create(path)
	if err != nil {
		return fmt.Errorf("create %q: %w", path, err)
	}
	defer f.Close()

	if err := page.Render(f); err != nil {
		return fmt.Errorf("render report page: %w", err)
	}
	return f.Close()
}

// detectionScatter plots every detection carrying both x and y; detections
// missing either coordinate have no position to plot and are skipped.
func detectionScatter(radar, image []bsd.Detection) *charts.Scatter {
	scatter := charts.NewScatter()
	scatter.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{PageTitle: "BSD detections", Width: "900px", Height: "600px"}),
		charts.WithTitleOpts(opts.Title{
			Title:    "Radar vs image detections",
			Subtitle: fmt.Sprintf("radar=%d image=%d", len(radar), len(image)),
		}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
		charts.WithXAxisOpts(opts.XAxis{Name: "x", NameLocation: "middle", NameGap: 25}),
		charts.WithYAxisOpts(opts.YAxis{Name: "y", NameLocation: "middle", NameGap: 30}),
	)

	scatter.AddSeries("radar", scatterData(radar), charts.WithScatterChartOpts(opts.ScatterChart{SymbolSize: 8}))
	scatter.AddSeries("image", scatterData(image), charts.WithScatterChartOpts(opts.ScatterChart{SymbolSize: 5}))
	return scatter
}

func scatterData(detections []bsd.Detection) []opts.ScatterData {
	data := make([]opts.ScatterData, 0, len(detections))
	for _, d := range detections {
		if d.X == nil || d.Y == nil {
			continue
		}
		data = append(data, opts.ScatterData{Value: []interface{}{*d.X, *d.Y}})
	}
	return data
}

func categoryBar(categories map[bsd.Category][]bsd.Detection) *charts.Bar {
	x := make([]string, 0, len(bsd.AllCategories))
	y := make([]opts.BarData, 0, len(bsd.AllCategories))
	for _, c := range bsd.AllCategories {
		x = append(x, c.Slug())
		y = append(y, opts.BarData{Value: len(categories[c])})
	}

	bar := charts.NewBar()
	bar.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{Title: "Radar categories"}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
	)
	bar.SetXAxis(x).
		AddSeries("entries", y,
			charts.WithLabelOpts(opts.Label{Show: opts.Bool(true), Position: "top"}),
		)
	return bar
}

func frameBar(res match.Result) *charts.Bar {
	bar := charts.NewBar()
	bar.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{
			Title:    "Cross-sensor time-frames",
			Subtitle: fmt.Sprintf("match percentage %.1f%%", res.MatchPercentage),
		}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
	)
	bar.SetXAxis([]string{"matched", "unmatched"}).
		AddSeries("frames", []opts.BarData{
			{Value: len(res.Matched)},
			{Value: len(res.Unmatched)},
		},
			charts.WithLabelOpts(opts.Label{Show: opts.Bool(true), Position: "top"}),
		)
	return bar
}
