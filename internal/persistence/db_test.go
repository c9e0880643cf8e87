package persistence

import (
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/talgya/hexworld/internal/world"
)

func openTestDB(t *testing.T) *DB {
	t.Helper()
	db, err := Open(filepath.Join(t.TempDir(), "runs.db"))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

func TestSaveAndGetRun(t *testing.T) {
	db := openTestDB(t)

	cfg := world.SmallTestConfig()
	cfg.Biomes = true
	_, report, err := world.Generate(cfg)
	if err != nil {
		t.Fatal(err)
	}
	run := NewRun(cfg, report)
	if err := db.SaveRun(run); err != nil {
		t.Fatalf("SaveRun: %v", err)
	}

	got, err := db.GetRun(run.ID)
	if err != nil {
		t.Fatalf("GetRun: %v", err)
	}
	if got.ID != run.ID || got.Seed != cfg.Seed || got.Width != cfg.Width || got.Height != cfg.Height {
		t.Errorf("run header = %+v", got)
	}
	if !got.WrapX || !got.Biomes || got.InitialFill != "uniform" || got.Ranges != cfg.MountainRanges {
		t.Errorf("run flags = %+v", got)
	}
	if !got.CreatedAt.Equal(run.CreatedAt) {
		t.Errorf("CreatedAt = %v, want %v", got.CreatedAt, run.CreatedAt)
	}
	if len(got.Counts) != len(report.Counts) {
		t.Fatalf("counts = %v, want %v", got.Counts, report.Counts)
	}
	for terrain, n := range report.Counts {
		if got.Counts[terrain] != n {
			t.Errorf("%s: %d, want %d", terrain, got.Counts[terrain], n)
		}
	}
}

func TestGetRunNotFound(t *testing.T) {
	db := openTestDB(t)
	if _, err := db.GetRun(uuid.New()); !errors.Is(err, ErrRunNotFound) {
		t.Errorf("GetRun(unknown) error = %v, want ErrRunNotFound", err)
	}
}

func TestRecentRuns(t *testing.T) {
	db := openTestDB(t)

	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	var ids []uuid.UUID
	for i := 0; i < 3; i++ {
		r := Run{
			ID:          uuid.New(),
			Seed:        int64(i + 1),
			Width:       9,
			Height:      6,
			InitialFill: "simplex",
			CreatedAt:   base.Add(time.Duration(i) * time.Minute),
			Counts:      map[world.Terrain]int{world.TerrainOcean: 54 - i, world.TerrainDesert: i},
		}
		if err := db.SaveRun(r); err != nil {
			t.Fatal(err)
		}
		ids = append(ids, r.ID)
	}

	runs, err := db.RecentRuns(2)
	if err != nil {
		t.Fatal(err)
	}
	if len(runs) != 2 {
		t.Fatalf("RecentRuns(2) returned %d runs", len(runs))
	}
	if runs[0].ID != ids[2] || runs[1].ID != ids[1] {
		t.Errorf("order = %v, %v; want newest first", runs[0].ID, runs[1].ID)
	}
	if runs[0].Counts[world.TerrainDesert] != 2 {
		t.Errorf("newest run counts = %v", runs[0].Counts)
	}
}

func TestSaveRunDuplicate(t *testing.T) {
	db := openTestDB(t)
	r := Run{ID: uuid.New(), Width: 1, Height: 1, CreatedAt: time.Now()}
	if err := db.SaveRun(r); err != nil {
		t.Fatal(err)
	}
	if err := db.SaveRun(r); err == nil {
		t.Error("saving the same run twice succeeded")
	}
}
