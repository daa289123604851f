package gen

import "github.com/WilliamBehnke/terraria-clone-sub000/internal/sim/world/tile"

// treeProbPermille is the per-column planting chance at neutral density.
const treeProbPermille = 200

// plantTrees runs the surface pass: walk columns left to right and grow a
// 2-4 cell trunk capped with a 3x2 foliage cluster wherever the column
// roll passes, the surface cell is still grass, and the full tree volume
// is clear air. Trees are only ever written into air; they never carve.
func plantTrees(g *tile.Grid, seed uint32, cfg Config, surface []int) {
	w := g.Width()

	prob := uint64(treeProbPermille * cfg.TreeDensity)
	if prob > 1000 {
		prob = 1000
	}
	if prob == 0 {
		return
	}

	for x := 1; x < w-1; x++ {
		roll := hash2(seed, saltTrees, x, 0)
		if roll%1000 >= prob {
			continue
		}

		sy := surface[x]
		root := g.Get(x, sy)
		if !root.Active || root.Kind != tile.MatGrass {
			continue
		}

		trunkH := 2 + int((roll>>12)%3) // 2-4 cells
		top := sy - trunkH              // first row above the trunk
		if top-1 < 1 {
			continue
		}
		if !treeVolumeClear(g, x, sy, top) {
			continue
		}

		for y := top; y <= sy-1; y++ {
			g.SetCell(x, y, tile.MatTrunk, true)
		}
		for y := top - 1; y <= top; y++ {
			for fx := x - 1; fx <= x+1; fx++ {
				if fx == x && y == top {
					continue // trunk's top row keeps its trunk cell
				}
				g.SetCell(fx, y, tile.MatLeaves, true)
			}
		}
	}
}

// treeVolumeClear checks the trunk column and the 3-wide foliage rows for
// untouched air, keeping everything inside the solid border.
func treeVolumeClear(g *tile.Grid, x, sy, top int) bool {
	w := g.Width()
	if x-1 < 1 || x+1 > w-2 {
		return false
	}
	for y := top; y <= sy-1; y++ {
		if !cellIsClear(g, x, y) {
			return false
		}
	}
	for y := top - 1; y <= top; y++ {
		for fx := x - 1; fx <= x+1; fx++ {
			if !cellIsClear(g, fx, y) {
				return false
			}
		}
	}
	return true
}

func cellIsClear(g *tile.Grid, x, y int) bool {
	c := g.Get(x, y)
	return !c.Active && c.Kind == tile.MatAir
}
