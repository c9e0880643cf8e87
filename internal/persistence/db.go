// Package persistence provides a SQLite log of generation runs. Only run
// parameters and terrain totals are stored; maps are regenerated from seed.
package persistence

import (
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"

	"github.com/talgya/hexworld/internal/world"
)

// ErrRunNotFound is returned by GetRun for unknown ids.
var ErrRunNotFound = errors.New("run not found")

// Run records one invocation of the generation pipeline.
type Run struct {
	ID            uuid.UUID
	Seed          int64
	Width         int
	Height        int
	WrapX         bool
	WaterFraction float64
	InitialFill   string
	Ranges        int
	Biomes        bool
	CreatedAt     time.Time
	Counts        map[world.Terrain]int
}

// NewRun describes a finished generation.
func NewRun(cfg world.GenConfig, report *world.Report) Run {
	counts := make(map[world.Terrain]int, len(report.Counts))
	for t, n := range report.Counts {
		counts[t] = n
	}
	return Run{
		ID:            uuid.New(),
		Seed:          report.Seed,
		Width:         cfg.Width,
		Height:        cfg.Height,
		WrapX:         cfg.WrapX,
		WaterFraction: cfg.WaterFraction,
		InitialFill:   cfg.InitialFill.String(),
		Ranges:        len(report.Ranges),
		Biomes:        cfg.Biomes,
		CreatedAt:     time.Now().UTC(),
		Counts:        counts,
	}
}

// runRow mirrors the runs table.
type runRow struct {
	ID            string  `db:"id"`
	Seed          int64   `db:"seed"`
	Width         int     `db:"width"`
	Height        int     `db:"height"`
	WrapX         bool    `db:"wrap_x"`
	WaterFraction float64 `db:"water_fraction"`
	InitialFill   string  `db:"initial_fill"`
	Ranges        int     `db:"ranges"`
	Biomes        bool    `db:"biomes"`
	CreatedAt     int64   `db:"created_at"`
}

type countRow struct {
	Terrain int `db:"terrain"`
	Count   int `db:"count"`
}

// DB wraps a SQLite connection for the run log.
type DB struct {
	conn *sqlx.DB
}

// Open opens or creates a SQLite database at the given path.
func Open(path string) (*DB, error) {
	conn, err := sqlx.Open("sqlite", path+"?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}

	db := &DB{conn: conn}
	if err := db.migrate(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	return db, nil
}

// Close closes the database connection.
func (db *DB) Close() error {
	return db.conn.Close()
}

func (db *DB) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS runs (
		id TEXT PRIMARY KEY,
		seed INTEGER NOT NULL,
		width INTEGER NOT NULL,
		height INTEGER NOT NULL,
		wrap_x INTEGER NOT NULL,
		water_fraction REAL NOT NULL,
		initial_fill TEXT NOT NULL,
		ranges INTEGER NOT NULL,
		biomes INTEGER NOT NULL,
		created_at INTEGER NOT NULL
	);

	CREATE TABLE IF NOT EXISTS terrain_counts (
		run_id TEXT NOT NULL REFERENCES runs(id),
		terrain INTEGER NOT NULL,
		count INTEGER NOT NULL,
		PRIMARY KEY (run_id, terrain)
	);

	CREATE INDEX IF NOT EXISTS idx_runs_created ON runs(created_at);
	`
	_, err := db.conn.Exec(schema)
	return err
}

// SaveRun stores a run and its terrain histogram.
func (db *DB) SaveRun(r Run) error {
	tx, err := db.conn.Beginx()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	_, err = tx.NamedExec(`INSERT INTO runs
		(id, seed, width, height, wrap_x, water_fraction, initial_fill, ranges, biomes, created_at)
		VALUES (:id, :seed, :width, :height, :wrap_x, :water_fraction, :initial_fill, :ranges, :biomes, :created_at)`,
		runRow{
			ID:            r.ID.String(),
			Seed:          r.Seed,
			Width:         r.Width,
			Height:        r.Height,
			WrapX:         r.WrapX,
			WaterFraction: r.WaterFraction,
			InitialFill:   r.InitialFill,
			Ranges:        r.Ranges,
			Biomes:        r.Biomes,
			CreatedAt:     r.CreatedAt.UnixNano(),
		})
	if err != nil {
		return fmt.Errorf("save run %s: %w", r.ID, err)
	}

	stmt, err := tx.Preparex(`INSERT INTO terrain_counts (run_id, terrain, count) VALUES (?, ?, ?)`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for t, n := range r.Counts {
		if _, err := stmt.Exec(r.ID.String(), int(t), n); err != nil {
			return fmt.Errorf("save run %s terrain %s: %w", r.ID, world.TerrainName(t), err)
		}
	}

	if err := tx.Commit(); err != nil {
		return err
	}
	slog.Debug("run saved", "id", r.ID, "seed", r.Seed)
	return nil
}

// GetRun loads a run by id.
func (db *DB) GetRun(id uuid.UUID) (*Run, error) {
	var row runRow
	err := db.conn.Get(&row, "SELECT * FROM runs WHERE id = ?", id.String())
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", ErrRunNotFound, id)
	}
	if err != nil {
		return nil, fmt.Errorf("get run %s: %w", id, err)
	}
	return db.hydrate(row)
}

// RecentRuns returns the most recent runs, newest first.
func (db *DB) RecentRuns(limit int) ([]Run, error) {
	var rows []runRow
	err := db.conn.Select(&rows, "SELECT * FROM runs ORDER BY created_at DESC LIMIT ?", limit)
	if err != nil {
		return nil, fmt.Errorf("recent runs: %w", err)
	}

	runs := make([]Run, 0, len(rows))
	for _, row := range rows {
		r, err := db.hydrate(row)
		if err != nil {
			return nil, err
		}
		runs = append(runs, *r)
	}
	return runs, nil
}

func (db *DB) hydrate(row runRow) (*Run, error) {
	id, err := uuid.Parse(row.ID)
	if err != nil {
		return nil, fmt.Errorf("run id %q: %w", row.ID, err)
	}

	var counts []countRow
	err = db.conn.Select(&counts, "SELECT terrain, count FROM terrain_counts WHERE run_id = ?", row.ID)
	if err != nil {
		return nil, fmt.Errorf("terrain counts for %s: %w", row.ID, err)
	}

	r := &Run{
		ID:            id,
		Seed:          row.Seed,
		Width:         row.Width,
		Height:        row.Height,
		WrapX:         row.WrapX,
		WaterFraction: row.WaterFraction,
		InitialFill:   row.InitialFill,
		Ranges:        row.Ranges,
		Biomes:        row.Biomes,
		CreatedAt:     time.Unix(0, row.CreatedAt).UTC(),
		Counts:        make(map[world.Terrain]int, len(counts)),
	}
	for _, c := range counts {
		r.Counts[world.Terrain(c.Terrain)] = c.Count
	}
	return r, nil
}
