// Command bsdreport runs the BSD log verification batch: it ingests a folder
// of radar/image sensor logs, categorises the radar detections, verifies
// cross-sensor consistency per time-frame, and writes CSV, HTML and optional
// PNG and sqlite outputs.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/banshee-data/detection.report/internal/bsd"
	"github.com/banshee-data/detection.report/internal/bsd/categorize"
	"github.com/banshee-data/detection.report/internal/bsd/ingest"
	"github.com/banshee-data/detection.report/internal/bsd/match"
	"github.com/banshee-data/detection.report/internal/config"
	"github.com/banshee-data/detection.report/internal/detectdb"
	"github.com/banshee-data/detection.report/internal/fsutil"
	"github.com/banshee-data/detection.report/internal/report"
	"github.com/banshee-data/detection.report/internal/version"
)

var (
	input      = flag.String("input", "", "input folder containing sensor log files")
	output     = flag.String("output", "output", "output folder for reports")
	clean      = flag.Bool("clean", false, "remove the output folder before writing")
	dbPath     = flag.String("db", "", "sqlite database to record the run (empty disables persistence)")
	configPath = flag.String("config", "", "thresholds config file (JSON)")
	plots      = flag.Bool("plots", false, "write per-timeframe PNG scatter frames")
	ext        = flag.String("ext", "", "log file extension (overrides config)")
	showVer    = flag.Bool("version", false, "print version and exit")
)

func main() {
	flag.Parse()

	if *showVer {
		fmt.Printf("bsdreport %s (%s, built %s)\n", version.Version, version.GitSHA, version.BuildTime)
		os.Exit(0)
	}

	if *input == "" {
		log.Fatal("input folder is required")
	}

	cfg := config.Default()
	if *configPath != "" {
		var err error
		cfg, err = config.Load(*configPath)
		if err != nil {
			log.Fatalf("failed to load config: %v", err)
		}
	}
	extension := cfg.Extension()
	if *ext != "" {
		extension = *ext
	}

	fs := fsutil.OSFileSystem{}
	if *clean {
		if err := fs.RemoveAll(*output); err != nil {
			log.Fatalf("failed to clean output folder: %v", err)
		}
	}
	if err := fs.MkdirAll(*output, 0755); err != nil {
		log.Fatalf("failed to create output folder: %v", err)
	}

	ingestor := ingest.Ingestor{FS: fs, Ext: extension}
	radar, image, err := ingestor.ReadFolder(*input)
	if err != nil {
		log.Fatalf("ingest failed: %v", err)
	}
	log.Printf("ingested %d radar and %d image detections", len(radar), len(image))

	categories := categorize.RadarWith(cfg.Thresholds(), radar)

	writer := report.Writer{FS: fs, Dir: *output}
	if err := writer.WriteDetections(radar, image); err != nil {
		log.Fatalf("failed to export detections: %v", err)
	}
	if err := writer.WriteCategories(categories); err != nil {
		log.Fatalf("failed to export categories: %v", err)
	}

	for _, s := range report.SummarizeCategories(categories) {
		log.Printf("%s: mean velocity %.2f (stddev %.2f) over %d of %d entries",
			s.Category.Slug(), s.MeanVelocity, s.StdDev, s.WithVelocity, s.Entries)
	}

	var res match.Result
	if len(radar) == 0 || len(image) == 0 {
		log.Print("no comparison made: need both radar and image data")
	} else {
		res = match.Compare(radar, image)
		if err := writer.WriteComparison(res); err != nil {
			log.Fatalf("failed to export comparison: %v", err)
		}
	}

	htmlPath := filepath.Join(*output, "report.html")
	if err := report.WriteHTML(fs, htmlPath, radar, image, categories, res); err != nil {
		log.Fatalf("failed to write report page: %v", err)
	}
	log.Printf("report written to %s", htmlPath)

	if *plots {
		frames := append(append([]bsd.TimeFrame{}, res.Matched...), res.Unmatched...)
		if err := report.WriteFramePlots(fs, filepath.Join(*output, "frames"), frames); err != nil {
			log.Fatalf("failed to write frame plots: %v", err)
		}
		log.Printf("wrote %d frame plots", len(frames))
	}

	if *dbPath != "" {
		db, err := detectdb.Open(*dbPath)
		if err != nil {
			log.Fatalf("failed to open database: %v", err)
		}
		defer db.Close()

		runID, err := db.RecordRun(*input, radar, image, categories, res)
		if err != nil {
			log.Fatalf("failed to record run: %v", err)
		}
		log.Printf("recorded run %s in %s", runID, *dbPath)
	}
}
