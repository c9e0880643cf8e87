package world

import (
	"cmp"
	"fmt"
	"slices"

	"github.com/zyedidia/generic/queue"
	"github.com/zyedidia/generic/stack"
)

// latitudeBand covers rows [from, to).
type latitudeBand struct {
	from, to int
	terrain  Terrain
}

// blobSpec describes rare biome patches scattered over a band.
type blobSpec struct {
	latitudeBand
	chance           float64
	minSize, maxSize int // size drawn from [minSize, maxSize)
}

// spreadGate is the chance a freshly banded cell spreads into its neighbors.
const spreadGate = 0.3

// GenerateBiomes replaces desert with a base biome per latitude band, then
// scatters blobs of rarer biomes. Water, hills and mountains are kept.
func (gen *Generator) GenerateBiomes(g *Grid) error {
	top, bottom := g.TopBorder(), g.BottomBorder()
	topTropic, bottomTropic := top/4, bottom/4
	topArctic, bottomArctic := top*5/6, bottom*5/6

	bands := []latitudeBand{
		{top, topArctic, TerrainTundra},
		{bottomArctic, bottom + 1, TerrainTundra},
		{topTropic, bottomTropic, TerrainSteppe},
		{topArctic, topTropic, TerrainGrassland},
		{bottomTropic, bottomArctic, TerrainGrassland},
	}
	for _, b := range bands {
		if err := gen.fillLatitudes(g, b); err != nil {
			return fmt.Errorf("fill %s rows %d..%d: %w", TerrainName(b.terrain), b.from, b.to, err)
		}
	}

	blobs := []blobSpec{
		{latitudeBand{topTropic, bottomTropic, TerrainJungle}, 0.035, 3, 6},
		{latitudeBand{topTropic, bottomTropic, TerrainDesert}, 0.029, 1, 8},
		{latitudeBand{top, topTropic, TerrainForest}, 0.03, 2, 4},
		{latitudeBand{bottomTropic, bottom + 1, TerrainForest}, 0.03, 2, 4},
		{latitudeBand{top, bottom + 1, TerrainSwamp}, 0.029, 1, 3},
	}
	for _, b := range blobs {
		if err := gen.placeBlobs(g, b); err != nil {
			return fmt.Errorf("place %s blobs: %w", TerrainName(b.terrain), err)
		}
	}
	return nil
}

func (gen *Generator) fillLatitudes(g *Grid, b latitudeBand) error {
	for row := b.from; row < b.to; row++ {
		left, right := RowBorders(g.Width(), row)
		for col := left; col <= right; col++ {
			c := g.GetAt(col, row)
			if c == nil || c.Tile.Type() != TerrainDesert {
				continue
			}
			setTerrain(c, b.terrain)
			if err := gen.spread(g, c, spreadGate, b.terrain); err != nil {
				return err
			}
		}
	}
	return nil
}

// spreadFrame is one cell whose neighbors are still being spread into.
type spreadFrame struct {
	neighbors Neighbors
	next      int
	gate      float64
}

// spread pushes terrain outward from origin. Each converted neighbor gets
// its own chance to spread further with a third of the parent's gate.
// Neighbors are visited depth first in direction order.
func (gen *Generator) spread(g *Grid, origin *Cell, gate float64, t Terrain) error {
	frames := stack.New[*spreadFrame]()
	open := func(c *Cell, gate float64) error {
		if gen.rng.Float64() < 1.0-gate {
			return nil
		}
		n, err := g.Neighbors(c)
		if err != nil {
			return err
		}
		frames.Push(&spreadFrame{neighbors: n, gate: gate})
		return nil
	}

	if err := open(origin, gate); err != nil {
		return err
	}
	for frames.Size() > 0 {
		f := frames.Peek()
		if f.next == len(f.neighbors) {
			frames.Pop()
			continue
		}
		nb := f.neighbors[f.next]
		f.next++
		if !buildable(nb) || nb.Tile.Type() == t {
			continue
		}
		setTerrain(nb, t)
		if err := open(nb, f.gate/3.0); err != nil {
			return err
		}
	}
	return nil
}

// buildable reports whether biome passes may overwrite c.
func buildable(c *Cell) bool {
	if c == nil {
		return false
	}
	switch c.Tile.Type() {
	case TerrainHill, TerrainMountain, TerrainOcean:
		return false
	}
	return true
}

func (gen *Generator) placeBlobs(g *Grid, b blobSpec) error {
	for row := b.from; row < b.to; row++ {
		left, right := RowBorders(g.Width(), row)
		for col := left; col <= right; col++ {
			c := g.GetAt(col, row)
			if !buildable(c) || gen.rng.Float64() < 1.0-b.chance {
				continue
			}
			n, err := g.Neighbors(c)
			if err != nil {
				return err
			}
			if slices.ContainsFunc(n.Present(), func(nb *Cell) bool { return nb.Tile.Type() == b.terrain }) {
				continue
			}
			if err := gen.growBlob(g, c, b.terrain, intBetween(gen.rng, b.minSize, b.maxSize)); err != nil {
				return err
			}
		}
	}
	return nil
}

// growBlob converts up to size cells breadth-first from start. When the
// buildable area around start is smaller than size, the blob covers about
// half of it.
func (gen *Generator) growBlob(g *Grid, start *Cell, t Terrain, size int) error {
	available, err := g.Area(start, buildable)
	if err != nil {
		return err
	}
	if len(available) == 0 {
		return nil
	}
	if len(available) < size {
		size = len(available)/2 + 1
	}

	pending := queue.New[*Cell]()
	pending.Enqueue(start)
	for filled := 0; filled < size && !pending.Empty(); filled++ {
		c := pending.Dequeue()
		setTerrain(c, t)

		n, err := g.Neighbors(c)
		if err != nil {
			return err
		}
		order := gen.shuffledDirections()
		for _, d := range order {
			nb := n[d]
			if buildable(nb) && nb.Tile.Type() != t {
				pending.Enqueue(nb)
			}
		}
	}
	return nil
}

// shuffledDirections orders the directions by one random key each.
func (gen *Generator) shuffledDirections() []Direction {
	var keys [6]int
	for _, d := range Directions {
		keys[d] = gen.rng.Int()
	}
	order := slices.Clone(Directions[:])
	slices.SortStableFunc(order, func(a, b Direction) int {
		return cmp.Compare(keys[a], keys[b])
	})
	return order
}
