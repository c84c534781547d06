// Command gen-bsdlog generates sample BSD sensor logs for testing and demos.
package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"math/rand"
	"os"
	"path/filepath"
	"time"
)

func main() {
	output := flag.String("o", "input", "output folder")
	files := flag.Int("files", 2, "number of log files")
	frames := flag.Int("frames", 50, "time-frames per file")
	seed := flag.Int64("seed", 1, "random seed")
	mismatch := flag.Float64("mismatch", 0.1, "probability that a radar detection has no image twin")
	flag.Parse()

	if err := os.MkdirAll(*output, 0755); err != nil {
		log.Fatalf("failed to create output folder: %v", err)
	}

	rng := rand.New(rand.NewSource(*seed))
	start := time.Date(2024, 3, 18, 14, 0, 0, 0, time.UTC)

	for i := 0; i < *files; i++ {
		name := filepath.Join(*output, fmt.Sprintf("sensor_%02d.txt", i+1))
		f, err := os.Create(name)
		if err != nil {
			log.Fatalf("failed to create %s: %v", name, err)
		}
		writeLog(f, rng, start.Add(time.Duration(i)*time.Hour), *frames, *mismatch)
		if err := f.Close(); err != nil {
			log.Fatalf("failed to close %s: %v", name, err)
		}
		log.Printf("wrote %s (%d frames)", name, *frames)
	}
}

// writeLog emits one log file: timestamp headers 100ms apart, each followed
// by a radar line and (usually) a matching image line.
func writeLog(w io.Writer, rng *rand.Rand, start time.Time, frames int, mismatch float64) {
	ts := start
	for i := 0; i < frames; i++ {
		fmt.Fprintf(w, "%s\n", ts.Format("2006-01-02 15:04:05.000"))

		x := rng.Intn(200) - 100
		y := rng.Intn(120)
		confidence := rng.Intn(10)
		velocity := rng.Intn(41) - 20

		fmt.Fprintf(w,
			"BsdRadarObjInfo {x=%d, y=%d, confidence=%d, raw=BsdRadarObjRaw {distance=%d, theta=%d, velocity=%d, power=%d}}\n",
			x, y, confidence, rng.Intn(150), rng.Intn(360), velocity, rng.Intn(100))

		if rng.Float64() >= mismatch {
			fmt.Fprintf(w,
				"BsdImageObjInfo {x=%d, y=%d, confidence=%d, raw=BsdImageObjRaw {left=%d, top=%d, width=%d, height=%d}}\n",
				x, y, confidence, rng.Intn(1920), rng.Intn(1080), rng.Intn(300), rng.Intn(300))
		}

		fmt.Fprintln(w)
		ts = ts.Add(100 * time.Millisecond)
	}
}
