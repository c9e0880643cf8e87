package world

import "testing"

func TestRowBorders(t *testing.T) {
	tests := []struct {
		width, row  int
		left, right int
	}{
		{9, -3, -3, 5},
		{9, -2, -3, 5},
		{9, -1, -4, 4},
		{9, 0, -4, 4},
		{9, 1, -5, 3},
		{9, 2, -5, 3},
		{50, 0, -26, 24},
		{50, -40, -6, 44},
		{1, 0, 0, 0},
		{1, 3, -2, -2},
	}
	for _, tc := range tests {
		left, right := RowBorders(tc.width, tc.row)
		if left != tc.left || right != tc.right {
			t.Errorf("RowBorders(%d, %d) = (%d, %d), want (%d, %d)",
				tc.width, tc.row, left, right, tc.left, tc.right)
		}
	}
}

func TestRowBordersMatchPopulatedRows(t *testing.T) {
	for width := 1; width <= 12; width++ {
		g, err := NewGrid(width, 9, true, false)
		if err != nil {
			t.Fatalf("NewGrid(%d, 9): %v", width, err)
		}
		perRow := make(map[int]int)
		for _, c := range g.Cells() {
			perRow[c.Hex.Row]++
		}
		for row := g.TopBorder(); row <= g.BottomBorder(); row++ {
			left, right := RowBorders(width, row)
			if left > right {
				t.Fatalf("RowBorders(%d, %d) = (%d, %d), left > right", width, row, left, right)
			}
			if got := right - left + 1; got != perRow[row] {
				t.Errorf("width %d row %d: border span %d, populated %d", width, row, got, perRow[row])
			}
		}
	}
}

func TestBorderPredicates(t *testing.T) {
	const width = 9
	left, right := RowBorders(width, -3)

	h := Hex{Column: left, Row: -3}
	if !h.IsAtLeftBorder(width) || h.IsAtRightBorder(width) {
		t.Errorf("%v: want left border only", h)
	}
	if !h.IsInCorner(width, -3, 2) {
		t.Errorf("%v: want corner", h)
	}

	h = Hex{Column: right, Row: -3}
	if !h.IsAtRightBorder(width) || !h.IsInCorner(width, -3, 2) {
		t.Errorf("%v: want right border corner", h)
	}

	h = Hex{Column: left + 1, Row: -3}
	if h.IsInCorner(width, -3, 2) {
		t.Errorf("%v: top row but not a column border, want no corner", h)
	}

	l, _ := RowBorders(width, 0)
	h = Hex{Column: l, Row: 0}
	if h.IsInCorner(width, -3, 2) {
		t.Errorf("%v: left border but middle row, want no corner", h)
	}
}

func TestHexArithmetic(t *testing.T) {
	a := Hex{Column: 3, Row: -2}
	b := Hex{Column: -1, Row: 5}

	if got := a.Add(b); got != (Hex{Column: 2, Row: 3}) {
		t.Errorf("Add = %v", got)
	}
	if got := a.Sub(b); got != (Hex{Column: 4, Row: -7}) {
		t.Errorf("Sub = %v", got)
	}
	if got := a.Add(b).Sub(b); got != a {
		t.Errorf("Add then Sub = %v, want %v", got, a)
	}
	if a.Key() != 3*KeyOffset-2 {
		t.Errorf("Key = %d", a.Key())
	}
	if a.Key() == b.Key() {
		t.Error("distinct coordinates share a key")
	}
}

func TestDistance(t *testing.T) {
	origin := Hex{}
	tests := []struct {
		to   Hex
		want int
	}{
		{Hex{}, 0},
		{Hex{Column: 3, Row: 0}, 3},
		{Hex{Column: 1, Row: -1}, 1},
		{Hex{Column: -1, Row: -1}, 2},
		{Hex{Column: 2, Row: -1}, 2},
		{Hex{Column: -2, Row: 4}, 4},
	}
	for _, tc := range tests {
		if got := Distance(origin, tc.to); got != tc.want {
			t.Errorf("Distance(origin, %v) = %d, want %d", tc.to, got, tc.want)
		}
		if got := Distance(tc.to, origin); got != tc.want {
			t.Errorf("Distance(%v, origin) = %d, want %d", tc.to, got, tc.want)
		}
	}

	for _, d := range Directions {
		if got := Distance(origin, origin.Neighbor(d)); got != 1 {
			t.Errorf("Distance to %s neighbor = %d, want 1", d, got)
		}
	}
}
