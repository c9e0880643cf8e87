// Package world provides the hex grid, terrain, and map generation passes.
// Cells are addressed with offset coordinates (column, row) where each row
// is shifted half a cell against its neighbors.
package world

// KeyOffset separates columns in a coordinate key. It must stay larger than
// any grid height, otherwise two coordinates could share a key.
const KeyOffset = 32768

// Hex is a position on the grid.
type Hex struct {
	Column int `json:"column"`
	Row    int `json:"row"`
}

// Add returns the component-wise sum of two coordinates.
func (h Hex) Add(o Hex) Hex {
	return Hex{Column: h.Column + o.Column, Row: h.Row + o.Row}
}

// Sub returns the component-wise difference of two coordinates.
func (h Hex) Sub(o Hex) Hex {
	return Hex{Column: h.Column - o.Column, Row: h.Row - o.Row}
}

// Key returns the lookup key for the coordinate.
func (h Hex) Key() int {
	return MapKey(h.Column, h.Row)
}

// MapKey returns the lookup key for a column and row.
func MapKey(column, row int) int {
	return column*KeyOffset + row
}

// Direction names one of the six neighbors of a cell.
type Direction uint8

const (
	NorthEast Direction = iota
	East
	SouthEast
	SouthWest
	West
	NorthWest
)

// Directions lists every direction in enumeration order.
var Directions = [6]Direction{NorthEast, East, SouthEast, SouthWest, West, NorthWest}

// directionVectors holds the offset added to a coordinate for each direction.
var directionVectors = [6]Hex{
	NorthEast: {Column: 1, Row: -1},
	East:      {Column: 1, Row: 0},
	SouthEast: {Column: 0, Row: 1},
	SouthWest: {Column: -1, Row: 1},
	West:      {Column: -1, Row: 0},
	NorthWest: {Column: 0, Row: -1},
}

// Vector returns the coordinate offset for the direction.
func (d Direction) Vector() Hex {
	return directionVectors[d]
}

func (d Direction) String() string {
	switch d {
	case NorthEast:
		return "NorthEast"
	case East:
		return "East"
	case SouthEast:
		return "SouthEast"
	case SouthWest:
		return "SouthWest"
	case West:
		return "West"
	case NorthWest:
		return "NorthWest"
	default:
		return "Unknown"
	}
}

// Neighbor returns the raw coordinate one step away in the given direction.
// Wrapping is resolved by the grid, not here.
func (h Hex) Neighbor(d Direction) Hex {
	return h.Add(d.Vector())
}

// RowBorders returns the leftmost and rightmost column of a row.
// Odd and even rows are shifted against each other so that the six
// direction vectors describe hex adjacency.
func RowBorders(width, row int) (left, right int) {
	rowOffset := (row + abs(row%2)) / 2
	left = -width/2 - 1 + width%2 - rowOffset
	right = width/2 - 1 + width%2 - rowOffset
	return left, right
}

// IsAtLeftBorder reports whether h is the first cell of its row.
func (h Hex) IsAtLeftBorder(width int) bool {
	left, _ := RowBorders(width, h.Row)
	return h.Column == left
}

// IsAtRightBorder reports whether h is the last cell of its row.
func (h Hex) IsAtRightBorder(width int) bool {
	_, right := RowBorders(width, h.Row)
	return h.Column == right
}

// IsAtTopBorder reports whether h lies on the top row.
func (h Hex) IsAtTopBorder(top int) bool {
	return h.Row == top
}

// IsAtBottomBorder reports whether h lies on the bottom row.
func (h Hex) IsAtBottomBorder(bottom int) bool {
	return h.Row == bottom
}

// IsInCorner reports whether h touches a column border and a row border at
// the same time.
func (h Hex) IsInCorner(width, top, bottom int) bool {
	return (h.IsAtLeftBorder(width) || h.IsAtRightBorder(width)) &&
		(h.IsAtTopBorder(top) || h.IsAtBottomBorder(bottom))
}

// Distance returns the number of steps between two coordinates.
// The direction vectors are axial, so the third cube coordinate is -q-r.
// Wrapping is ignored.
func Distance(a, b Hex) int {
	dq := a.Column - b.Column
	dr := a.Row - b.Row
	ds := -dq - dr
	return max(abs(dq), abs(dr), abs(ds))
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
