package world

import (
	"errors"
	"testing"
	"unicode/utf8"
)

func TestTileChange(t *testing.T) {
	for _, terrain := range Terrains {
		tile, err := NewTile(terrain)
		if err != nil {
			t.Fatalf("NewTile(%s): %v", terrain, err)
		}
		if tile.Type() != terrain {
			t.Errorf("NewTile(%s).Type() = %s", terrain, tile.Type())
		}
		if want := terrain == TerrainOcean; tile.IsWater() != want {
			t.Errorf("%s: IsWater = %v, want %v", terrain, tile.IsWater(), want)
		}
		if n := utf8.RuneCountInString(tile.Glyph()); n != 3 {
			t.Errorf("%s: glyph %q has %d runes, want 3", terrain, tile.Glyph(), n)
		}
		if TerrainName(terrain) == "Unknown" {
			t.Errorf("%d has no name", terrain)
		}
	}
}

func TestTileGlyphsDistinct(t *testing.T) {
	seen := make(map[string]Terrain)
	for _, terrain := range Terrains {
		tile, _ := NewTile(terrain)
		if other, ok := seen[tile.Glyph()]; ok {
			t.Errorf("%s and %s share glyph %q", terrain, other, tile.Glyph())
		}
		seen[tile.Glyph()] = terrain
	}
}

func TestTileChangeUnknown(t *testing.T) {
	tile, _ := NewTile(TerrainDesert)

	err := tile.Change(Terrain(200))
	if !errors.Is(err, ErrUnknownTerrain) {
		t.Fatalf("Change(200) error = %v, want ErrUnknownTerrain", err)
	}
	if tile.Type() != TerrainDesert || tile.Glyph() != "░░░" || tile.IsWater() {
		t.Errorf("failed change modified tile: %+v", tile)
	}

	if _, err := NewTile(Terrain(len(Terrains))); !errors.Is(err, ErrUnknownTerrain) {
		t.Errorf("NewTile(out of range) error = %v, want ErrUnknownTerrain", err)
	}
}

func TestTileRecomputesWater(t *testing.T) {
	tile := oceanTile()
	if !tile.IsWater() {
		t.Fatal("ocean tile is not water")
	}
	if err := tile.Change(TerrainForest); err != nil {
		t.Fatal(err)
	}
	if tile.IsWater() || tile.Glyph() != "♣♣♣" {
		t.Errorf("after Change(Forest): water=%v glyph=%q", tile.IsWater(), tile.Glyph())
	}
	if err := tile.Change(TerrainOcean); err != nil {
		t.Fatal(err)
	}
	if !tile.IsWater() || tile.String() != "▓▓▓" {
		t.Errorf("after Change(Ocean): water=%v glyph=%q", tile.IsWater(), tile.String())
	}
}
