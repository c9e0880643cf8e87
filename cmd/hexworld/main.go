// Command hexworld generates a wrapping hex terrain map and prints it.
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/atotto/clipboard"
	"github.com/dustin/go-humanize"

	"github.com/talgya/hexworld/internal/entropy"
	"github.com/talgya/hexworld/internal/persistence"
	"github.com/talgya/hexworld/internal/render"
	"github.com/talgya/hexworld/internal/world"
)

func main() {
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: logLevel(os.Getenv("LOG_LEVEL")),
	}))
	slog.SetDefault(logger)

	if err := run(os.Args[1:]); err != nil {
		slog.Error("hexworld failed", "error", err)
		os.Exit(1)
	}
}

func run(args []string) error {
	cfg := world.DefaultGenConfig()

	fs := flag.NewFlagSet("hexworld", flag.ContinueOnError)
	fs.IntVar(&cfg.Width, "width", envIntOrDefault("HEXWORLD_WIDTH", cfg.Width), "cells per row")
	fs.IntVar(&cfg.Height, "height", envIntOrDefault("HEXWORLD_HEIGHT", cfg.Height), "number of rows")
	fs.Int64Var(&cfg.Seed, "seed", int64(envIntOrDefault("HEXWORLD_SEED", 0)), "random seed (0 = draw one)")
	fs.Float64Var(&cfg.WaterFraction, "water", envFloatOrDefault("HEXWORLD_WATER", cfg.WaterFraction), "chance a cell starts as ocean")
	fs.IntVar(&cfg.MountainRanges, "ranges", envIntOrDefault("HEXWORLD_RANGES", cfg.MountainRanges), "mountain ranges to carve")
	fs.Float64Var(&cfg.HillChance, "hill", envFloatOrDefault("HEXWORLD_HILL", cfg.HillChance), "upper roll for hills on a range")
	fs.IntVar(&cfg.MaxWalkSteps, "max-walk", envIntOrDefault("HEXWORLD_MAX_WALK", cfg.MaxWalkSteps), "cap on steps per range (0 = none)")
	fs.BoolVar(&cfg.Biomes, "biomes", envBoolOrDefault("HEXWORLD_BIOMES", cfg.Biomes), "run biome banding and blobs")
	fill := fs.String("fill", envOrDefault("HEXWORLD_FILL", cfg.InitialFill.String()), "initial fill: uniform or simplex")
	dbPath := fs.String("db", os.Getenv("HEXWORLD_DB"), "SQLite run log path (empty = off)")
	copyOut := fs.Bool("copy", false, "copy the plain map to the clipboard")
	probeCol := fs.Int("probe-col", -4, "column of the cell whose neighbors are listed")
	probeRow := fs.Int("probe-row", 0, "row of the cell whose neighbors are listed")
	if err := fs.Parse(args); err != nil {
		return err
	}

	var err error
	if cfg.InitialFill, err = world.ParseInitialFill(*fill); err != nil {
		return err
	}

	ctx := context.Background()
	if cfg.Seed == 0 {
		cfg.Seed = entropy.NewClient(os.Getenv("RANDOM_ORG_API_KEY")).Seed(ctx)
	}

	slog.Info("generating map",
		"width", cfg.Width,
		"height", cfg.Height,
		"seed", cfg.Seed,
		"water", cfg.WaterFraction,
		"fill", cfg.InitialFill,
		"ranges", cfg.MountainRanges,
		"biomes", cfg.Biomes,
	)

	grid, report, err := world.Generate(cfg)
	if err != nil {
		return fmt.Errorf("generate: %w", err)
	}

	for _, t := range world.Terrains {
		if n := report.Counts[t]; n > 0 {
			slog.Info("terrain", "type", world.TerrainName(t), "count", humanize.Comma(int64(n)))
		}
	}

	if err := printNeighbors(grid, *probeCol, *probeRow); err != nil {
		return err
	}

	if cols := render.TerminalWidth(); render.IsTerminal(os.Stdout) && !render.Fits(grid, cols) {
		slog.Warn("map is wider than the terminal", "map", render.LineWidth(grid), "terminal", cols)
	}
	if err := render.Write(os.Stdout, grid); err != nil {
		return fmt.Errorf("print map: %w", err)
	}

	if *copyOut {
		if err := clipboard.WriteAll(render.Text(grid)); err != nil {
			slog.Warn("clipboard copy failed", "error", err)
		} else {
			slog.Info("map copied to clipboard")
		}
	}

	if *dbPath != "" {
		db, err := persistence.Open(*dbPath)
		if err != nil {
			return err
		}
		defer db.Close()

		r := persistence.NewRun(cfg, report)
		if err := db.SaveRun(r); err != nil {
			return fmt.Errorf("record run: %w", err)
		}
		slog.Info("run recorded", "id", r.ID, "path", *dbPath)
	}

	fmt.Printf("\n%s cells, %s ranges, seed %d\n",
		humanize.Comma(int64(grid.Len())), humanize.Comma(int64(len(report.Ranges))), report.Seed)
	return nil
}

// printNeighbors lists the resolved neighbors of one cell, which makes the
// seam handling visible on a printed map.
func printNeighbors(g *world.Grid, col, row int) error {
	c := g.GetAt(col, row)
	if c == nil {
		slog.Warn("probe cell out of bounds", "column", col, "row", row)
		return nil
	}
	n, err := g.Neighbors(c)
	if err != nil {
		return fmt.Errorf("neighbors of (%d, %d): %w", col, row, err)
	}
	for _, d := range world.Directions {
		if n[d] == nil {
			fmt.Printf("Neighbor %s missing!\n", d)
			continue
		}
		fmt.Printf("Neighbor %s (%d, %d) %s\n", d, n[d].Hex.Column, n[d].Hex.Row, n[d].Tile)
	}
	return nil
}

func logLevel(s string) slog.Level {
	var level slog.Level
	if err := level.UnmarshalText([]byte(s)); err != nil {
		return slog.LevelInfo
	}
	return level
}

func envOrDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func envIntOrDefault(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
		slog.Warn("ignoring malformed env var", "key", key, "value", v)
	}
	return def
}

func envFloatOrDefault(key string, def float64) float64 {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
		slog.Warn("ignoring malformed env var", "key", key, "value", v)
	}
	return def
}

func envBoolOrDefault(key string, def bool) bool {
	switch strings.ToLower(os.Getenv(key)) {
	case "1", "true", "yes", "on":
		return true
	case "0", "false", "no", "off":
		return false
	}
	return def
}
