package world

import (
	"errors"
	"fmt"
)

// ErrUnknownTerrain is returned when a terrain value has no glyph or water mapping.
var ErrUnknownTerrain = errors.New("unknown terrain type")

// Terrain types for hex tiles.
type Terrain uint8

const (
	TerrainOcean Terrain = iota
	TerrainDesert
	TerrainMountain
	TerrainHill
	TerrainGrassland
	TerrainSteppe
	TerrainTundra
	TerrainJungle
	TerrainForest
	TerrainSwamp
)

// Terrains lists every known terrain type.
var Terrains = []Terrain{
	TerrainOcean, TerrainDesert, TerrainMountain, TerrainHill, TerrainGrassland,
	TerrainSteppe, TerrainTundra, TerrainJungle, TerrainForest, TerrainSwamp,
}

// Tile holds the terrain of a single cell together with the attributes
// derived from it. Cells start out as ocean.
type Tile struct {
	terrain Terrain
	water   bool
	glyph   string
}

// NewTile returns a tile of the given terrain.
func NewTile(t Terrain) (Tile, error) {
	var tile Tile
	if err := tile.Change(t); err != nil {
		return Tile{}, err
	}
	return tile, nil
}

func oceanTile() Tile {
	return Tile{terrain: TerrainOcean, water: true, glyph: "▓▓▓"}
}

// Change sets the terrain and recomputes the water flag and glyph.
// An unknown terrain leaves the tile unchanged.
func (t *Tile) Change(terrain Terrain) error {
	var water bool
	var glyph string
	switch terrain {
	case TerrainOcean:
		water, glyph = true, "▓▓▓"
	case TerrainDesert:
		glyph = "░░░"
	case TerrainMountain:
		glyph = "^^^"
	case TerrainHill:
		glyph = "∩∩∩"
	case TerrainGrassland:
		glyph = `"""`
	case TerrainSteppe:
		glyph = ",,,"
	case TerrainTundra:
		glyph = "***"
	case TerrainJungle:
		glyph = "&&&"
	case TerrainForest:
		glyph = "♣♣♣"
	case TerrainSwamp:
		glyph = "~~~"
	default:
		return fmt.Errorf("%w: %d", ErrUnknownTerrain, terrain)
	}
	t.terrain = terrain
	t.water = water
	t.glyph = glyph
	return nil
}

// Type returns the terrain of the tile.
func (t Tile) Type() Terrain {
	return t.terrain
}

// IsWater reports whether the tile is water.
func (t Tile) IsWater() bool {
	return t.water
}

// Glyph returns the three-rune display string of the tile.
func (t Tile) Glyph() string {
	return t.glyph
}

func (t Tile) String() string {
	return t.Glyph()
}

// TerrainName returns a human-readable name for a terrain type.
func TerrainName(t Terrain) string {
	switch t {
	case TerrainOcean:
		return "Ocean"
	case TerrainDesert:
		return "Desert"
	case TerrainMountain:
		return "Mountain"
	case TerrainHill:
		return "Hill"
	case TerrainGrassland:
		return "Grassland"
	case TerrainSteppe:
		return "Steppe"
	case TerrainTundra:
		return "Tundra"
	case TerrainJungle:
		return "Jungle"
	case TerrainForest:
		return "Forest"
	case TerrainSwamp:
		return "Swamp"
	default:
		return "Unknown"
	}
}

func (t Terrain) String() string {
	return TerrainName(t)
}
