package world

import (
	"errors"
	"fmt"
	"math/rand"
	"strings"
	"sync"

	"github.com/zyedidia/generic/mapset"
	"github.com/zyedidia/generic/stack"
)

var (
	// ErrWrapYUnsupported is returned when a grid is asked to wrap vertically.
	ErrWrapYUnsupported = errors.New("y-axis wrap is not implemented")
	// ErrInvalidDimensions is returned for grids that cannot be addressed.
	ErrInvalidDimensions = errors.New("invalid grid dimensions")
	// ErrUnsupportedTopology is returned when neighbors of a cell would need
	// vertical wrapping to resolve.
	ErrUnsupportedTopology = errors.New("unsupported wrap topology")
)

// Cell pairs a coordinate with its tile. Cells live in the grid and are
// handed out by pointer, so every holder sees the same terrain.
type Cell struct {
	Hex  Hex
	Tile Tile
}

func (c *Cell) String() string {
	return fmt.Sprintf("Cell(%d, %d %s)", c.Hex.Column, c.Hex.Row, TerrainName(c.Tile.Type()))
}

// Neighbors holds the adjacent cells of a cell indexed by Direction.
// Missing neighbors are nil.
type Neighbors [6]*Cell

// Present returns the non-nil neighbors in direction order.
func (n Neighbors) Present() []*Cell {
	out := make([]*Cell, 0, len(n))
	for _, c := range n {
		if c != nil {
			out = append(out, c)
		}
	}
	return out
}

// Grid is a rectangular block of hex rows, optionally wrapping along X.
// Its cell set and topology are fixed at construction; only tiles change.
type Grid struct {
	width  int
	height int
	top    int
	bottom int
	wrapX  bool
	wrapY  bool

	cells []Cell
	index map[int]int

	mu        sync.Mutex
	neighbors map[int]Neighbors
}

// NewGrid creates a grid of ocean cells. Height rows are laid out from
// TopBorder to BottomBorder, each holding width cells.
func NewGrid(width, height int, wrapX, wrapY bool) (*Grid, error) {
	if wrapY {
		return nil, ErrWrapYUnsupported
	}
	if width < 1 || height < 1 || height >= KeyOffset {
		return nil, fmt.Errorf("%w: %dx%d", ErrInvalidDimensions, width, height)
	}

	g := &Grid{
		width:     width,
		height:    height,
		top:       -height / 2,
		bottom:    (height+height%2)/2 - 1,
		wrapX:     wrapX,
		wrapY:     wrapY,
		cells:     make([]Cell, 0, width*height),
		index:     make(map[int]int, width*height),
		neighbors: make(map[int]Neighbors, width*height),
	}

	for row := g.top; row <= g.bottom; row++ {
		left, right := RowBorders(width, row)
		for col := left; col <= right; col++ {
			h := Hex{Column: col, Row: row}
			g.index[h.Key()] = len(g.cells)
			g.cells = append(g.cells, Cell{Hex: h, Tile: oceanTile()})
		}
	}
	return g, nil
}

// Width returns the number of cells per row.
func (g *Grid) Width() int { return g.width }

// Height returns the number of rows.
func (g *Grid) Height() int { return g.height }

// TopBorder returns the index of the first row.
func (g *Grid) TopBorder() int { return g.top }

// BottomBorder returns the index of the last row.
func (g *Grid) BottomBorder() int { return g.bottom }

// WrapX reports whether the grid wraps horizontally.
func (g *Grid) WrapX() bool { return g.wrapX }

// Len returns the number of cells.
func (g *Grid) Len() int { return len(g.cells) }

// Get returns the cell at the given coordinate, or nil if out of bounds.
func (g *Grid) Get(h Hex) *Cell {
	return g.lookup(h.Key())
}

// GetAt returns the cell at column and row, or nil if out of bounds.
func (g *Grid) GetAt(column, row int) *Cell {
	return g.lookup(MapKey(column, row))
}

func (g *Grid) lookup(key int) *Cell {
	i, ok := g.index[key]
	if !ok {
		return nil
	}
	return &g.cells[i]
}

// Cells returns every cell in row-major order.
func (g *Grid) Cells() []*Cell {
	out := make([]*Cell, len(g.cells))
	for i := range g.cells {
		out[i] = &g.cells[i]
	}
	return out
}

// RandomCell picks a row in [top, bottom) and a column in [left, right) of
// that row. The last row and the last column of each row are never chosen;
// generation passes are balanced against that.
func (g *Grid) RandomCell(rng *rand.Rand) *Cell {
	row := intBetween(rng, g.top, g.bottom)
	left, right := RowBorders(g.width, row)
	col := intBetween(rng, left, right)
	return g.GetAt(col, row)
}

// intBetween returns an int in [lo, hi), or lo when the range is empty.
func intBetween(rng *rand.Rand, lo, hi int) int {
	if hi <= lo {
		return lo
	}
	return lo + rng.Intn(hi-lo)
}

// Neighbors returns the six adjacent cells of c, resolving the horizontal
// seam when the grid wraps. Results are cached per cell and never
// recomputed.
func (g *Grid) Neighbors(c *Cell) (Neighbors, error) {
	key := c.Hex.Key()

	g.mu.Lock()
	defer g.mu.Unlock()

	if n, ok := g.neighbors[key]; ok {
		return n, nil
	}
	n, err := g.resolveNeighbors(c.Hex)
	if err != nil {
		return Neighbors{}, err
	}
	g.neighbors[key] = n
	return n, nil
}

func (g *Grid) resolveNeighbors(h Hex) (Neighbors, error) {
	var n Neighbors
	for _, d := range Directions {
		n[d] = g.Get(h.Neighbor(d))
	}

	evenRow := h.Row%2 == 0
	left, right := RowBorders(g.width, h.Row)

	switch {
	case g.wrapX && g.wrapY && h.IsInCorner(g.width, g.top, g.bottom):
		return n, fmt.Errorf("%w: corner cell (%d, %d)", ErrUnsupportedTopology, h.Column, h.Row)
	case g.wrapX && h.Column == left:
		west := g.GetAt(right, h.Row)
		n[West] = west
		if !evenRow {
			n[NorthWest] = g.Get(west.Hex.Neighbor(NorthEast))
			n[SouthWest] = g.Get(west.Hex.Neighbor(SouthEast))
		}
	case g.wrapX && h.Column == right:
		east := g.GetAt(left, h.Row)
		n[East] = east
		if evenRow {
			n[NorthEast] = g.Get(east.Hex.Neighbor(NorthWest))
			n[SouthEast] = g.Get(east.Hex.Neighbor(SouthWest))
		}
	case g.wrapY:
		return n, fmt.Errorf("%w: vertical wrap at (%d, %d)", ErrUnsupportedTopology, h.Column, h.Row)
	}
	return n, nil
}

// Area returns every cell reachable from start through neighbors that
// satisfy match, start included. Missing neighbors are skipped before match
// is called. Each cell appears once.
func (g *Grid) Area(start *Cell, match func(*Cell) bool) ([]*Cell, error) {
	var area []*Cell
	visited := mapset.New[int]()

	pending := stack.New[*Cell]()
	pending.Push(start)
	for pending.Size() > 0 {
		c := pending.Pop()
		if c == nil || !match(c) || visited.Has(c.Hex.Key()) {
			continue
		}
		visited.Put(c.Hex.Key())
		area = append(area, c)

		n, err := g.Neighbors(c)
		if err != nil {
			return nil, fmt.Errorf("area from (%d, %d): %w", start.Hex.Column, start.Hex.Row, err)
		}
		// Reverse push keeps the depth-first order in direction order.
		for i := len(n) - 1; i >= 0; i-- {
			if n[i] != nil && !visited.Has(n[i].Hex.Key()) {
				pending.Push(n[i])
			}
		}
	}
	return area, nil
}

// Format lays the grid out row by row, even rows indented by two spaces so
// the stagger lines up, each cell followed by a single space.
func (g *Grid) Format(cell func(*Cell) string) string {
	var b strings.Builder
	for row := g.top; row <= g.bottom; row++ {
		if row%2 == 0 {
			b.WriteString("  ")
		}
		left, right := RowBorders(g.width, row)
		for col := left; col <= right; col++ {
			b.WriteString(cell(g.GetAt(col, row)))
			b.WriteByte(' ')
		}
		b.WriteByte('\n')
	}
	return b.String()
}

// String renders the grid with tile glyphs.
func (g *Grid) String() string {
	return g.Format(func(c *Cell) string { return c.Tile.Glyph() })
}
