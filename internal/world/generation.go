// Map generation passes. Every pass draws from one seeded stream in a fixed
// order, so the same seed and size always produce the same map.

package world

import (
	"fmt"
	"log/slog"
	"math"
	"math/rand"

	opensimplex "github.com/ojrac/opensimplex-go"
	"github.com/zyedidia/generic/mapset"
	"github.com/zyedidia/generic/queue"
)

// Generator runs the stochastic passes over a grid, mutating tiles in place.
// It keeps no state between calls besides its random source.
type Generator struct {
	cfg GenConfig
	rng *rand.Rand
	log *slog.Logger
}

// NewGenerator creates a generator seeded from cfg.Seed.
func NewGenerator(cfg GenConfig) *Generator {
	return &Generator{
		cfg: cfg,
		rng: rand.New(rand.NewSource(cfg.Seed)),
		log: slog.Default().With("component", "mapgen"),
	}
}

// Report summarizes a generated map.
type Report struct {
	Seed   int64
	Ranges [][]Hex
	Counts map[Terrain]int
}

// Generate builds a grid and runs every configured pass over it.
func Generate(cfg GenConfig) (*Grid, *Report, error) {
	if err := cfg.Validate(); err != nil {
		return nil, nil, err
	}
	if cfg.Seed == 0 {
		cfg.Seed = rand.Int63()
	}

	g, err := NewGrid(cfg.Width, cfg.Height, cfg.WrapX, false)
	if err != nil {
		return nil, nil, fmt.Errorf("new grid: %w", err)
	}

	gen := NewGenerator(cfg)
	if err := gen.CellularGenerate(g, cfg.WaterFraction); err != nil {
		return nil, nil, fmt.Errorf("cellular pass: %w", err)
	}

	ranges, err := gen.GenerateRanges(g, cfg.MountainRanges)
	if err != nil {
		return nil, nil, fmt.Errorf("mountain pass: %w", err)
	}

	if cfg.Biomes {
		if err := gen.GenerateBiomes(g); err != nil {
			return nil, nil, fmt.Errorf("biome pass: %w", err)
		}
	}

	return g, &Report{Seed: cfg.Seed, Ranges: ranges, Counts: TerrainCounts(g)}, nil
}

// CellularGenerate splits the map into ocean and desert. waterFraction is
// the chance a cell stays ocean in the initial fill; the refinement rounds
// then smooth the result toward contiguous land masses.
func (gen *Generator) CellularGenerate(g *Grid, waterFraction float64) error {
	switch gen.cfg.InitialFill {
	case FillSimplex:
		gen.simplexFill(g, waterFraction)
	default:
		for _, c := range g.Cells() {
			if gen.rng.Float64() >= waterFraction {
				setTerrain(c, TerrainDesert)
			}
		}
	}

	for i := 0; i < gen.cfg.RefineRounds; i++ {
		gen.log.Debug("refine round", "round", i)
		if err := gen.refine(g); err != nil {
			return fmt.Errorf("refine round %d: %w", i, err)
		}
	}
	return nil
}

// refine floods the map breadth-first from a few random cells, flipping
// each cell between ocean and desert with a chance that drops as more of
// its neighbors agree with it.
func (gen *Generator) refine(g *Grid) error {
	visited := mapset.New[int]()
	pending := queue.New[*Cell]()
	for i := 0; i < gen.cfg.RoundSeeds; i++ {
		pending.Enqueue(g.RandomCell(gen.rng))
	}

	for !pending.Empty() {
		c := pending.Dequeue()
		if visited.Has(c.Hex.Key()) {
			continue
		}
		n, err := g.Neighbors(c)
		if err != nil {
			return err
		}

		same := 0
		for _, nb := range n {
			if nb != nil && nb.Tile.Type() == c.Tile.Type() {
				same++
			}
		}
		chance := 0.7
		if same == 4 {
			chance = 0.2
		}
		if same >= 5 {
			chance = 0.05
		}
		if gen.rng.Float64() <= chance {
			if c.Tile.Type() == TerrainDesert {
				setTerrain(c, TerrainOcean)
			} else {
				setTerrain(c, TerrainDesert)
			}
		}
		visited.Put(c.Hex.Key())

		for _, nb := range n {
			if nb != nil && !visited.Has(nb.Hex.Key()) {
				pending.Enqueue(nb)
			}
		}
	}
	return nil
}

// simplexFill raises desert wherever layered noise reaches waterFraction.
// Normalized simplex values cluster around 0.5, so the fraction acts as a
// sea level rather than a probability.
func (gen *Generator) simplexFill(g *Grid, waterFraction float64) {
	noise := opensimplex.NewNormalized(gen.cfg.Seed)
	for _, c := range g.Cells() {
		// Offset rows shift by half a cell: x = col + row/2, y = row*sqrt(3)/2.
		x := float64(c.Hex.Column) + float64(c.Hex.Row)*0.5
		y := float64(c.Hex.Row) * math.Sqrt(3.0) / 2.0
		if octaveNoise(noise, x, y, 4, 0.08, 0.5) >= waterFraction {
			setTerrain(c, TerrainDesert)
		}
	}
}

// octaveNoise generates fractal noise by layering multiple frequencies.
func octaveNoise(noise opensimplex.Noise, x, y float64, octaves int, frequency, persistence float64) float64 {
	total := 0.0
	amplitude := 1.0
	maxVal := 0.0

	for i := 0; i < octaves; i++ {
		total += noise.Eval2(x*frequency, y*frequency) * amplitude
		maxVal += amplitude
		amplitude *= persistence
		frequency *= 2
	}

	return total / maxVal
}

// setTerrain changes a cell to one of the declared terrain constants.
func setTerrain(c *Cell, t Terrain) {
	if err := c.Tile.Change(t); err != nil {
		panic(err)
	}
}

// TerrainCounts returns a summary of terrain type distribution.
func TerrainCounts(g *Grid) map[Terrain]int {
	counts := make(map[Terrain]int)
	for _, c := range g.Cells() {
		counts[c.Tile.Type()]++
	}
	return counts
}
