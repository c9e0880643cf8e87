package world

import (
	"cmp"
	"errors"
	"fmt"
	"math"
	"slices"

	"github.com/zyedidia/generic/mapset"
)

// ErrWalkAborted is returned when a mountain walk hits GenConfig.MaxWalkSteps
// before reaching its end cell.
var ErrWalkAborted = errors.New("mountain walk aborted")

// GenerateMountains carves one range along a biased random walk between
// two random cells, the way plates buckle along their border. Desert cells
// on the walk may rise to mountains or hills; other terrain is untouched.
// It returns the cells of the walk in order, end cell included.
func (gen *Generator) GenerateMountains(g *Grid) ([]Hex, error) {
	start := g.RandomCell(gen.rng)
	end := g.RandomCell(gen.rng)

	var walk []Hex
	inRange := mapset.New[int]()
	current := start
	steps := 0

	for current != end {
		if gen.cfg.MaxWalkSteps > 0 && steps >= gen.cfg.MaxWalkSteps {
			return walk, fmt.Errorf("%w after %d steps", ErrWalkAborted, steps)
		}
		steps++

		if len(walk) == 0 || walk[len(walk)-1] != current.Hex {
			walk = append(walk, current.Hex)
		}
		inRange.Put(current.Hex.Key())

		if current.Tile.Type() == TerrainDesert {
			roll := gen.rng.Float64()
			if roll <= gen.cfg.MountainChance {
				setTerrain(current, TerrainMountain)
			} else if roll <= gen.cfg.HillChance {
				setTerrain(current, TerrainHill)
			}
		}

		n, err := g.Neighbors(current)
		if err != nil {
			return walk, err
		}

		smallest := math.MaxInt
		var distance [6]int
		candidates := make([]Direction, 0, len(n))
		for _, d := range Directions {
			if n[d] == nil {
				continue
			}
			distance[d] = Distance(n[d].Hex, end.Hex)
			smallest = min(smallest, distance[d])
			candidates = append(candidates, d)
		}

		// Farther neighbors are more likely to be passed over.
		var stop [6]float64
		allWalked := true
		for _, d := range candidates {
			stop[d] = min(float64(distance[d]-smallest)*0.45+0.05, 0.95)
			if !inRange.Has(n[d].Hex.Key()) {
				allWalked = false
			}
		}

		if allWalked {
			for _, d := range candidates {
				if distance[d] == smallest {
					current = n[d]
					break
				}
			}
			continue
		}

		slices.SortStableFunc(candidates, func(a, b Direction) int {
			return cmp.Compare(stop[b], stop[a])
		})
		for _, d := range candidates {
			roll := gen.rng.Float64()
			if roll <= stop[d] || inRange.Has(n[d].Hex.Key()) {
				continue
			}
			current = n[d]
			break
		}
	}

	return append(walk, end.Hex), nil
}

// GenerateRanges carves count mountain ranges. Walks stopped by
// MaxWalkSteps keep what they raised and are still returned.
func (gen *Generator) GenerateRanges(g *Grid, count int) ([][]Hex, error) {
	ranges := make([][]Hex, 0, count)
	for i := 0; i < count; i++ {
		walk, err := gen.GenerateMountains(g)
		if errors.Is(err, ErrWalkAborted) {
			gen.log.Warn("mountain walk capped", "range", i, "steps", gen.cfg.MaxWalkSteps)
		} else if err != nil {
			return ranges, fmt.Errorf("range %d: %w", i, err)
		}
		gen.log.Debug("mountain range", "range", i, "length", len(walk))
		ranges = append(ranges, walk)
	}
	return ranges, nil
}
