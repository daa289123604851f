package gen

import "github.com/WilliamBehnke/terraria-clone-sub000/internal/sim/world/tile"

// DenInfo describes the elliptical carved chamber hosting the dragon
// encounter. It is a pure function of (grid dimensions, seed): computing
// it again always matches what generation carved. A zero-radius den (tiny
// grids) is valid and contains no cells.
type DenInfo struct {
	CX, CY int // center column, row
	RX, RY int // radii
}

// Empty reports whether the den has no interior.
func (d DenInfo) Empty() bool {
	return d.RX <= 0 || d.RY <= 0
}

// Contains reports whether (x, y) lies inside the ellipse. Integer
// arithmetic only, so membership is exact and platform-independent.
func (d DenInfo) Contains(x, y int) bool {
	if d.Empty() {
		return false
	}
	dx, dy := x-d.CX, y-d.CY
	rx2 := d.RX * d.RX
	ry2 := d.RY * d.RY
	return dx*dx*ry2+dy*dy*rx2 <= rx2*ry2
}

// DenFor computes the den placement for a world of the given dimensions
// and seed. The chamber sits in the lower depth band, below where the
// surface can reach, and always fits strictly inside the solid border.
func DenFor(width, height int, seed uint32) DenInfo {
	rx := width / 10
	if rx > 12 {
		rx = 12
	}
	ry := height / 12
	if ry > 8 {
		ry = 8
	}

	empty := DenInfo{CX: width / 2, CY: height * 3 / 4}
	if rx < 1 || ry < 1 {
		return empty
	}

	minCX, maxCX := 1+rx, width-2-rx
	if maxCX < minCX {
		return empty
	}
	minCY := height * 2 / 3
	// The chamber must sit strictly below the deepest possible surface so
	// it never opens onto the sky.
	if _, surfHi := surfaceBand(height); minCY < surfHi+ry+1 {
		minCY = surfHi + ry + 1
	}
	if minCY < 1+ry {
		minCY = 1 + ry
	}
	maxCY := height - 2 - ry
	if maxCY < minCY {
		return empty
	}

	h := hash2(seed, saltDen, width, height)
	cx := minCX + int(h%uint64(maxCX-minCX+1))
	cy := minCY + int((h>>20)%uint64(maxCY-minCY+1))
	return DenInfo{CX: cx, CY: cy, RX: rx, RY: ry}
}

// DragonDenInfo returns the den that Generate carves (or would carve)
// for this grid and seed, without running generation.
func DragonDenInfo(g *tile.Grid, seed uint32) DenInfo {
	return DenFor(g.Width(), g.Height(), seed)
}

// carveDen clears every cell inside the ellipse, overriding whatever the
// cave and ore passes wrote there.
func carveDen(g *tile.Grid, den DenInfo) {
	if den.Empty() {
		return
	}
	for y := den.CY - den.RY; y <= den.CY+den.RY; y++ {
		for x := den.CX - den.RX; x <= den.CX+den.RX; x++ {
			if den.Contains(x, y) {
				g.SetCell(x, y, tile.MatAir, false)
			}
		}
	}
}
