package gen

import "github.com/WilliamBehnke/terraria-clone-sub000/internal/sim/world/tile"

// anchorSpacing is the column distance between noise anchors. Surface
// height is smoothstep-interpolated between anchors, which bounds the
// per-column step (see MaxSurfaceStep).
const anchorSpacing = 8

// surfaceBand returns the [lo, hi] row range the surface may occupy.
// The band stays below the top border and above the den depth band.
func surfaceBand(height int) (lo, hi int) {
	lo = 2
	hi = height * 3 / 5
	if hi > height-3 {
		hi = height - 3
	}
	if hi < 1 {
		hi = 1
	}
	if lo > hi {
		lo = hi
	}
	return lo, hi
}

// anchorValue returns a noise value in [-1, 1) for anchor index i.
func anchorValue(seed uint32, i int) float64 {
	return float64(hash2(seed, saltHeight, i, 0)%2048)/1024.0 - 1.0
}

// columnSurface computes the surface row for a single column. It depends
// only on (seed, cfg, height, x), so columns are order-independent.
func columnSurface(seed uint32, cfg Config, height, x int) int {
	lo, hi := surfaceBand(height)
	base := float64(lo+hi) / 2
	amp := float64(hi-lo) / 2 * cfg.TerrainAmplitude

	i := x / anchorSpacing
	t := float64(x-i*anchorSpacing) / anchorSpacing
	s := t * t * (3 - 2*t)
	v0 := anchorValue(seed, i)
	v1 := anchorValue(seed, i+1)
	v := v0 + (v1-v0)*s

	y := int(base + amp*v)
	if y < lo {
		y = lo
	}
	if y > hi {
		y = hi
	}
	return y
}

// MaxSurfaceStep is the guaranteed bound on the surface height difference
// between adjacent columns: smoothstep's peak slope is 1.5x the mean, so
// the float delta is at most 3*amp/anchorSpacing, plus one for truncation.
func MaxSurfaceStep(height int, cfg Config) int {
	lo, hi := surfaceBand(height)
	amp := float64(hi-lo) / 2 * cfg.TerrainAmplitude
	return int(3*amp/anchorSpacing) + 1
}

// shapeTerrain runs pass 1: air above the surface, a grass cap, soil to
// the scaled depth, stone to the floor. The outermost one-cell border is
// painted solid stone so physics always has a boundary to query.
func shapeTerrain(g *tile.Grid, seed uint32, cfg Config) []int {
	w, h := g.Width(), g.Height()

	soilDepth := int(float64(h)/8*cfg.SoilDepthScale + 0.5)
	if soilDepth < 1 {
		soilDepth = 1
	}

	surface := make([]int, w)
	for x := 0; x < w; x++ {
		surface[x] = columnSurface(seed, cfg, h, x)
	}

	for x := 0; x < w; x++ {
		for y := 0; y < h; y++ {
			if x == 0 || x == w-1 || y == 0 || y == h-1 {
				g.SetCell(x, y, tile.MatStone, true)
				continue
			}
			switch {
			case y < surface[x]:
				g.SetCell(x, y, tile.MatAir, false)
			case y == surface[x]:
				g.SetCell(x, y, tile.MatGrass, true)
			case y <= surface[x]+soilDepth:
				g.SetCell(x, y, tile.MatSoil, true)
			default:
				g.SetCell(x, y, tile.MatStone, true)
			}
		}
	}
	return surface
}
