// Package render prints hex maps to a terminal.
package render

import (
	"io"
	"os"

	"github.com/gookit/color"
	"github.com/mattn/go-isatty"
	"golang.org/x/term"

	"github.com/talgya/hexworld/internal/world"
)

const (
	DefaultWidth = 80
	cellColumns  = 4 // three glyph runes plus separator
	indent       = 2
)

var terrainStyles = map[world.Terrain]color.Style{
	world.TerrainOcean:     {color.FgBlue, color.BgBlack},
	world.TerrainDesert:    {color.FgYellow},
	world.TerrainMountain:  {color.FgWhite, color.OpBold},
	world.TerrainHill:      {color.FgLightYellow},
	world.TerrainGrassland: {color.FgGreen},
	world.TerrainSteppe:    {color.FgLightGreen},
	world.TerrainTundra:    {color.FgLightWhite},
	world.TerrainJungle:    {color.FgGreen, color.OpBold},
	world.TerrainForest:    {color.FgGreen},
	world.TerrainSwamp:     {color.FgCyan},
}

// Text returns the plain glyph layout of the grid.
func Text(g *world.Grid) string {
	return g.String()
}

// Colored returns the same layout as Text with each glyph styled by terrain.
func Colored(g *world.Grid) string {
	return g.Format(func(c *world.Cell) string {
		style, ok := terrainStyles[c.Tile.Type()]
		if !ok {
			return c.Tile.Glyph()
		}
		return style.Sprint(c.Tile.Glyph())
	})
}

// Write prints the grid to w, colored when w is a terminal.
func Write(w io.Writer, g *world.Grid) error {
	out := Text(g)
	if f, ok := w.(*os.File); ok && IsTerminal(f) {
		out = Colored(g)
	}
	_, err := io.WriteString(w, out)
	return err
}

// IsTerminal reports whether f is attached to a terminal.
func IsTerminal(f *os.File) bool {
	fd := f.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

// TerminalWidth returns the width of stdout, or DefaultWidth when it
// cannot be determined.
func TerminalWidth() int {
	width, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || width <= 0 {
		return DefaultWidth
	}
	return width
}

// LineWidth returns the number of terminal columns the widest row takes.
func LineWidth(g *world.Grid) int {
	left, right := world.RowBorders(g.Width(), 0)
	return indent + cellColumns*(right-left+1)
}

// Fits reports whether every row of the grid fits in cols columns.
func Fits(g *world.Grid, cols int) bool {
	return LineWidth(g) <= cols
}
