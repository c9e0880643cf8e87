package world

import (
	"errors"
	"fmt"
)

// ErrInvalidConfig is returned by GenConfig.Validate.
var ErrInvalidConfig = errors.New("invalid generation config")

// InitialFill selects how the land/water pass seeds terrain before the
// cellular refinement.
type InitialFill uint8

const (
	FillUniform InitialFill = iota // One independent draw per cell
	FillSimplex                    // Threshold on simplex noise
)

func (f InitialFill) String() string {
	switch f {
	case FillUniform:
		return "uniform"
	case FillSimplex:
		return "simplex"
	default:
		return "unknown"
	}
}

// ParseInitialFill maps a fill name back to its value.
func ParseInitialFill(s string) (InitialFill, error) {
	switch s {
	case "", "uniform":
		return FillUniform, nil
	case "simplex":
		return FillSimplex, nil
	default:
		return FillUniform, fmt.Errorf("%w: fill %q", ErrInvalidConfig, s)
	}
}

// GenConfig holds world generation parameters.
type GenConfig struct {
	Width  int  // Cells per row span
	Height int  // Number of rows
	WrapX  bool // Join the left and right border of every row
	Seed   int64

	WaterFraction float64 // Chance a cell stays ocean in the initial fill
	InitialFill   InitialFill
	RefineRounds  int // Cellular automaton rounds
	RoundSeeds    int // Random starting cells per round

	MountainRanges int     // Random walks carved per map
	MountainChance float64 // Roll at or below this raises a mountain
	HillChance     float64 // Roll at or below this (and above MountainChance) raises a hill
	MaxWalkSteps   int     // 0 leaves walks uncapped

	Biomes bool // Run latitude banding and blob placement
}

// DefaultGenConfig returns the configuration the map was tuned with.
func DefaultGenConfig() GenConfig {
	return GenConfig{
		Width:          50,
		Height:         80,
		WrapX:          true,
		Seed:           0,
		WaterFraction:  0.6,
		InitialFill:    FillUniform,
		RefineRounds:   10,
		RoundSeeds:     4,
		MountainRanges: 10,
		MountainChance: 0.2,
		HillChance:     0.4,
		MaxWalkSteps:   0,
		Biomes:         false,
	}
}

// SmallTestConfig returns a tiny map for rapid iteration.
func SmallTestConfig() GenConfig {
	cfg := DefaultGenConfig()
	cfg.Width = 9
	cfg.Height = 6
	cfg.Seed = 42
	cfg.MountainRanges = 3
	cfg.MaxWalkSteps = 10000
	return cfg
}

// Validate reports the first out-of-range parameter.
func (c GenConfig) Validate() error {
	switch {
	case c.Width < 1 || c.Height < 1:
		return fmt.Errorf("%w: size %dx%d", ErrInvalidConfig, c.Width, c.Height)
	case c.WaterFraction < 0 || c.WaterFraction > 1:
		return fmt.Errorf("%w: water fraction %v", ErrInvalidConfig, c.WaterFraction)
	case c.InitialFill > FillSimplex:
		return fmt.Errorf("%w: fill %d", ErrInvalidConfig, c.InitialFill)
	case c.RefineRounds < 0 || c.RoundSeeds < 0:
		return fmt.Errorf("%w: refine rounds %d, seeds %d", ErrInvalidConfig, c.RefineRounds, c.RoundSeeds)
	case c.MountainRanges < 0 || c.MaxWalkSteps < 0:
		return fmt.Errorf("%w: ranges %d, max steps %d", ErrInvalidConfig, c.MountainRanges, c.MaxWalkSteps)
	case c.MountainChance < 0 || c.HillChance < c.MountainChance || c.HillChance > 1:
		return fmt.Errorf("%w: mountain %v, hill %v", ErrInvalidConfig, c.MountainChance, c.HillChance)
	}
	return nil
}
