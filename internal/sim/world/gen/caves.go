package gen

import "github.com/WilliamBehnke/terraria-clone-sub000/internal/sim/world/tile"

// caveCellsPerSeed controls how many carve walks a world gets: one walk
// per this many cells of grid area, before cave_density scaling.
const caveCellsPerSeed = 300

// carveCaves runs pass 2: random-walk blob carving below the surface.
// Walks are indexed so the carve order is fixed; voids from different
// walks may merge. Carving never touches the one-cell border and never
// opens a column above its pass-1 surface.
func carveCaves(g *tile.Grid, seed uint32, cfg Config, surface []int) {
	w, h := g.Width(), g.Height()
	if w < 4 || h < 4 {
		return
	}

	count := int(float64(w*h) / caveCellsPerSeed * cfg.CaveDensity)
	for i := 0; i < count; i++ {
		r := newStream(seed, saltCaves, i)

		x := 1 + r.intn(w-2)
		minY := surface[x] + 2
		if minY < 1 {
			minY = 1
		}
		if minY >= h-1 {
			continue
		}
		y := minY + r.intn(h-1-minY)

		steps := 12 + r.intn(24)
		for s := 0; s < steps; s++ {
			radius := 1 + r.intn(2)
			carveBlob(g, x, y, radius, surface)

			x += r.intn(3) - 1
			y += r.intn(3) - 1
			if x < 1 {
				x = 1
			} else if x > w-2 {
				x = w - 2
			}
			if y < 1 {
				y = 1
			} else if y > h-2 {
				y = h - 2
			}
		}
	}
}

// carveBlob clears a circular void centred on (cx, cy). Cells on the
// border, or at/above their own column's surface, are left alone.
func carveBlob(g *tile.Grid, cx, cy, radius int, surface []int) {
	w, h := g.Width(), g.Height()
	for dy := -radius; dy <= radius; dy++ {
		for dx := -radius; dx <= radius; dx++ {
			if dx*dx+dy*dy > radius*radius {
				continue
			}
			x, y := cx+dx, cy+dy
			if x < 1 || x > w-2 || y < 1 || y > h-2 {
				continue
			}
			if y <= surface[x] {
				continue
			}
			g.SetCell(x, y, tile.MatAir, false)
		}
	}
}
