package gen

import "github.com/WilliamBehnke/terraria-clone-sub000/internal/sim/world/tile"

// oreGrade describes one ore tier. Deeper grades demand more depth below
// the column surface before a cell is eligible, and get fewer veins.
type oreGrade struct {
	kind         tile.Material
	minDepthFrac float64 // minimum depth below surface, fraction of grid height
	cellsPerVein int     // grid area per vein attempt
	veinMin      int
	veinMax      int
}

var oreGrades = []oreGrade{
	{kind: tile.MatCopperOre, minDepthFrac: 0.05, cellsPerVein: 500, veinMin: 4, veinMax: 9},
	{kind: tile.MatIronOre, minDepthFrac: 0.20, cellsPerVein: 750, veinMin: 4, veinMax: 8},
	{kind: tile.MatGoldOre, minDepthFrac: 0.40, cellsPerVein: 1200, veinMin: 3, veinMax: 6},
}

// placeOres runs pass 3: scatter ore veins into stone, shallow grades
// first. Runs after cave carving, so veins grow around voids instead of
// into volumes a cave already removed. Only stone is converted; a cell
// that became ore is never reconsidered for another grade.
func placeOres(g *tile.Grid, seed uint32, cfg Config, surface []int) {
	w, h := g.Width(), g.Height()
	if w < 4 || h < 4 {
		return
	}

	for gi, grade := range oreGrades {
		count := int(float64(w*h) / float64(grade.cellsPerVein) * cfg.OreDensity)
		minDepth := int(grade.minDepthFrac * float64(h))
		if minDepth < 1 {
			minDepth = 1
		}

		for i := 0; i < count; i++ {
			r := newStream(seed, saltOres+uint64(gi)*0x101, i)

			x := 1 + r.intn(w-2)
			minY := surface[x] + minDepth
			if minY >= h-1 {
				continue
			}
			y := minY + r.intn(h-1-minY)

			growVein(g, r, grade, x, y, minDepth, surface)
		}
	}
}

// growVein random-walks from (x, y) converting eligible stone cells.
func growVein(g *tile.Grid, r *stream, grade oreGrade, x, y, minDepth int, surface []int) {
	w, h := g.Width(), g.Height()
	size := grade.veinMin + r.intn(grade.veinMax-grade.veinMin+1)
	for s := 0; s < size; s++ {
		if x >= 1 && x <= w-2 && y >= 1 && y <= h-2 && y >= surface[x]+minDepth {
			c := g.Get(x, y)
			if c.Active && c.Kind == tile.MatStone {
				g.SetKind(x, y, grade.kind)
			}
		}
		switch r.intn(4) {
		case 0:
			x++
		case 1:
			x--
		case 2:
			y++
		default:
			y--
		}
	}
}
