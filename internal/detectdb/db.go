// Package detectdb persists batch-run results to sqlite so successive runs
// over the same sensor logs can be compared later.
package detectdb

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"github.com/banshee-data/detection.report/internal/bsd"
	"github.com/banshee-data/detection.report/internal/bsd/match"
	"github.com/banshee-data/detection.report/internal/bsd/parse"
	"github.com/banshee-data/detection.report/internal/timeutil"
)

type DB struct {
	*sql.DB
	clock timeutil.Clock
}

// Open opens (or creates) the sqlite database at path and brings its schema
// up to date.
func Open(path string) (*DB, error) {
	sqlDB, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}

	db := &DB{DB: sqlDB, clock: timeutil.RealClock{}}
	if err := db.migrateUp(); err != nil {
		sqlDB.Close()
		return nil, err
	}
	return db, nil
}

// SetClock replaces the clock used for run timestamps. Tests use this to pin
// started_at.
func (db *DB) SetClock(c timeutil.Clock) {
	if c != nil {
		db.clock = c
	}
}

// Run is one recorded batch run.
type Run struct {
	ID           string
	InputFolder  string
	StartedAt    time.Time
	RadarCount   int
	ImageCount   int
	MatchedCount int
	TotalCount   int
	MatchPercent float64
}

// RecordRun stores one complete batch run (the run row, every detection, the
// per-category entry counts and the per-timeframe verdicts) in a single
// transaction, and returns the new run ID.
func (db *DB) RecordRun(inputFolder string, radar, image []bsd.Detection, categories map[bsd.Category][]bsd.Detection, res match.Result) (string, error) {
	runID := uuid.New().String()

	tx, err := db.Begin()
	if err != nil {
		return "", fmt.Errorf("begin run transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.Exec(`
		INSERT INTO runs (run_id, input_folder, started_at, radar_count, image_count, matched_count, total_count, match_percent)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		runID, inputFolder, db.clock.Now().UTC(),
		len(radar), len(image), res.MatchedCount, res.TotalCount, res.MatchPercentage,
	)
	if err != nil {
		return "", fmt.Errorf("insert run: %w", err)
	}

	stmt, err := tx.Prepare(`
		INSERT INTO detections (run_id, sensor, ts, x, y, confidence, distance, theta, velocity, power, left_px, top_px, width_px, height_px, source_file, source_line)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return "", fmt.Errorf("prepare detection insert: %w", err)
	}
	defer stmt.Close()

	for _, d := range radar {
		if err := insertDetection(stmt, runID, d); err != nil {
			return "", err
		}
	}
	for _, d := range image {
		if err := insertDetection(stmt, runID, d); err != nil {
			return "", err
		}
	}

	for _, c := range bsd.AllCategories {
		_, err := tx.Exec(`INSERT INTO category_counts (run_id, category, entries) VALUES (?, ?, ?)`,
			runID, c.Slug(), len(categories[c]))
		if err != nil {
			return "", fmt.Errorf("insert category count for %s: %w", c.Slug(), err)
		}
	}

	for _, frame := range res.Matched {
		if err := insertTimeFrame(tx, runID, frame, true); err != nil {
			return "", err
		}
	}
	for _, frame := range res.Unmatched {
		if err := insertTimeFrame(tx, runID, frame, false); err != nil {
			return "", err
		}
	}

	if err := tx.Commit(); err != nil {
		return "", fmt.Errorf("commit run: %w", err)
	}
	return runID, nil
}

func insertDetection(stmt *sql.Stmt, runID string, d bsd.Detection) error {
	_, err := stmt.Exec(
		runID, d.Sensor.String(), d.Timestamp.Raw,
		nullInt(d.X), nullInt(d.Y), nullInt(d.Confidence),
		nullInt(d.Distance), nullInt(d.Theta), nullInt(d.Velocity), nullInt(d.Power),
		nullInt(d.Left), nullInt(d.Top), nullInt(d.Width), nullInt(d.Height),
		d.SourceFile, d.SourceLine,
	)
	if err != nil {
		return fmt.Errorf("insert detection %s:%d: %w", d.SourceFile, d.SourceLine, err)
	}
	return nil
}

func insertTimeFrame(tx *sql.Tx, runID string, frame bsd.TimeFrame, matched bool) error {
	_, err := tx.Exec(`INSERT INTO timeframes (run_id, ts, radar_count, image_count, matched) VALUES (?, ?, ?, ?, ?)`,
		runID, frame.Timestamp.Raw, len(frame.Radar), len(frame.Image), matched)
	if err != nil {
		return fmt.Errorf("insert timeframe %s: %w", frame.Timestamp.Raw, err)
	}
	return nil
}

// Run loads one recorded run row.
func (db *DB) Run(runID string) (Run, error) {
	var r Run
	err := db.QueryRow(`
		SELECT run_id, input_folder, started_at, radar_count, image_count, matched_count, total_count, match_percent
		FROM runs WHERE run_id = ?`, runID).Scan(
		&r.ID, &r.InputFolder, &r.StartedAt,
		&r.RadarCount, &r.ImageCount, &r.MatchedCount, &r.TotalCount, &r.MatchPercent,
	)
	if err != nil {
		return Run{}, fmt.Errorf("load run %s: %w", runID, err)
	}
	return r, nil
}

// Detections loads the stored detections of one run and sensor, in insertion
// order.
func (db *DB) Detections(runID string, sensor bsd.Sensor) ([]bsd.Detection, error) {
	rows, err := db.Query(`
		SELECT sensor, ts, x, y, confidence, distance, theta, velocity, power, left_px, top_px, width_px, height_px, source_file, source_line
		FROM detections WHERE run_id = ? AND sensor = ? ORDER BY rowid`,
		runID, sensor.String())
	if err != nil {
		return nil, fmt.Errorf("query detections: %w", err)
	}
	defer rows.Close()

	var out []bsd.Detection
	for rows.Next() {
		var (
			d          bsd.Detection
			sensorName string
			rawTS      string
			x, y, conf sql.NullInt64
			di, th     sql.NullInt64
			ve, po     sql.NullInt64
			le, to     sql.NullInt64
			wi, he     sql.NullInt64
		)
		err := rows.Scan(&sensorName, &rawTS, &x, &y, &conf, &di, &th, &ve, &po, &le, &to, &wi, &he, &d.SourceFile, &d.SourceLine)
		if err != nil {
			return nil, fmt.Errorf("scan detection: %w", err)
		}

		if sensorName == bsd.SensorImage.String() {
			d.Sensor = bsd.SensorImage
		}
		if ts, ok := parse.ParseTimestamp(rawTS); ok {
			d.Timestamp = ts
		}
		d.X, d.Y, d.Confidence = intPtr(x), intPtr(y), intPtr(conf)
		d.Distance, d.Theta, d.Velocity, d.Power = intPtr(di), intPtr(th), intPtr(ve), intPtr(po)
		d.Left, d.Top, d.Width, d.Height = intPtr(le), intPtr(to), intPtr(wi), intPtr(he)

		out = append(out, d)
	}
	return out, rows.Err()
}

// CategoryCount returns the stored entry count of one category in one run.
func (db *DB) CategoryCount(runID string, c bsd.Category) (int, error) {
	var n int
	err := db.QueryRow(`SELECT entries FROM category_counts WHERE run_id = ? AND category = ?`,
		runID, c.Slug()).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("load category count %s: %w", c.Slug(), err)
	}
	return n, nil
}

func nullInt(p *int) interface{} {
	if p == nil {
		return nil
	}
	return int64(*p)
}

func intPtr(n sql.NullInt64) *int {
	if !n.Valid {
		return nil
	}
	v := int(n.Int64)
	return &v
}
