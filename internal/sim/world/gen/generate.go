// Package gen fills a tile grid with deterministic terrain. Generation is
// four ordered passes over the same grid: height-field shaping, cave
// carving, ore placement, and den carving plus surface trees. Every
// random decision is a pure function of the 32-bit seed, the config, and
// fixed pass salts, so two runs with the same inputs produce bit-identical
// grids on any platform.
package gen

import "github.com/WilliamBehnke/terraria-clone-sub000/internal/sim/world/tile"

// Generate fills the grid using the default seed and a neutral config.
func Generate(g *tile.Grid) {
	GenerateWith(g, DefaultSeed, DefaultConfig())
}

// GenerateSeeded fills the grid from the given seed with a neutral config.
func GenerateSeeded(g *tile.Grid, seed uint32) {
	GenerateWith(g, seed, DefaultConfig())
}

// GenerateWith fills the grid from the given seed and config. It is the
// only writer during world creation; after it returns the grid belongs to
// gameplay. The call is synchronous and cannot fail: a sub-feature that
// finds no eligible site simply places nothing.
func GenerateWith(g *tile.Grid, seed uint32, cfg Config) {
	surface := shapeTerrain(g, seed, cfg)
	carveCaves(g, seed, cfg, surface)
	placeOres(g, seed, cfg, surface)
	carveDen(g, DenFor(g.Width(), g.Height(), seed))
	plantTrees(g, seed, cfg, surface)
}
