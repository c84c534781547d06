// Package ingest reads folders of BSD sensor logs into detection records.
//
// Each file is folded line by line through a small state machine: a timestamp
// header activates a timestamp context, and every detection line that follows
// is attributed to it. The context never crosses a file boundary. Detections
// seen before any header are dropped with a warning; there is nothing sound
// to attribute them to.
package ingest

import (
	"bufio"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/banshee-data/detection.report/internal/bsd"
	"github.com/banshee-data/detection.report/internal/bsd/parse"
	"github.com/banshee-data/detection.report/internal/fsutil"
	"github.com/banshee-data/detection.report/internal/monitoring"
)

// ErrNoLogFiles is returned when the input folder exists but contains no
// files with the expected extension. Like a missing folder, this aborts the
// batch: an empty run would silently report 0% on nothing.
var ErrNoLogFiles = fmt.Errorf("no log files found")

// DefaultExtension is the log file extension the sensors write.
const DefaultExtension = ".txt"

// Ingestor reads every recognised log file in a folder. The zero value reads
// .txt files from the real filesystem and logs through monitoring.Logf.
type Ingestor struct {
	FS   fsutil.FileSystem
	Ext  string
	Logf monitoring.LogFunc
}

// ReadFolder parses all recognised files in folder and returns the radar and
// image detections in file-enumeration order. The order of files is the
// (name-sorted) directory enumeration, not chronological: callers that need
// global time order must sort afterwards.
//
// A missing folder or a folder with no recognised files is an error. A read
// failure on one file is logged and the remaining files are still processed.
func (ing *Ingestor) ReadFolder(folder string) (radar, image []bsd.Detection, err error) {
	fsys := ing.FS
	if fsys == nil {
		fsys = fsutil.OSFileSystem{}
	}
	ext := ing.Ext
	if ext == "" {
		ext = DefaultExtension
	}

	entries, err := fsys.ReadDir(folder)
	if err != nil {
		return nil, nil, fmt.Errorf("read input folder %q: %w", folder, err)
	}

	var names []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		if strings.EqualFold(filepath.Ext(e.Name()), ext) {
			names = append(names, e.Name())
		}
	}
	if len(names) == 0 {
		return nil, nil, fmt.Errorf("%w with extension %q in %q", ErrNoLogFiles, ext, folder)
	}

	for i, name := range names {
		ing.logf("processing file %d/%d: %q", i+1, len(names), name)

		r, im, err := ing.readFile(fsys, folder, name)
		if err != nil {
			ing.logf("error processing file %q: %v; continuing", name, err)
			continue
		}
		radar = append(radar, r...)
		image = append(image, im...)
	}

	return radar, image, nil
}

// readFile folds one file through the timestamp state machine. The timestamp
// context starts empty for every file.
func (ing *Ingestor) readFile(fsys fsutil.FileSystem, folder, name string) (radar, image []bsd.Detection, err error) {
	f, err := fsys.Open(filepath.Join(folder, name))
	if err != nil {
		return nil, nil, err
	}
	defer f.Close()

	warner := &monitoring.FileWarner{File: name, Logf: ing.Logf}

	lineNum := 0
	parser := parse.Parser{Warnf: func(format string, v ...interface{}) {
		warner.Warnf(lineNum, format, v...)
	}}

	var current bsd.Timestamp

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		lineNum++
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		if ts, ok := parse.ParseTimestamp(line); ok {
			current = ts
			continue
		}

		d, ok := parser.Parse(line)
		if !ok {
			continue
		}
		if current.IsZero() {
			warner.Warnf(lineNum, "detection before any timestamp header; dropping")
			continue
		}

		d.Timestamp = current
		d.SourceFile = name
		d.SourceLine = lineNum

		if d.Sensor == bsd.SensorRadar {
			radar = append(radar, d)
		} else {
			image = append(image, d)
		}
	}
	if err := scanner.Err(); err != nil {
		// Keep whatever parsed before the failure.
		warner.Warnf(lineNum, "read failed: %v; keeping lines parsed so far", err)
	}

	if n := warner.Count(); n > 0 {
		ing.logf("file %q produced %d warnings", name, n)
	}
	return radar, image, nil
}

func (ing *Ingestor) logf(format string, v ...interface{}) {
	if ing.Logf != nil {
		ing.Logf(format, v...)
		return
	}
	monitoring.Logf(format, v...)
}
