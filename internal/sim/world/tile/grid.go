package tile

import (
	"crypto/sha256"
	"fmt"
)

// Cell is one grid-addressable unit of world material.
// An inactive cell renders and collides as empty regardless of Kind; the
// kind is retained so a mined block remembers what it was.
type Cell struct {
	Kind   Material
	Active bool
}

// Grid is a dense width x height array of cells, origin top-left,
// addressed by (column, row). Dimensions are fixed after construction.
type Grid struct {
	width  int
	height int
	cells  []Cell // row-major, len = width*height
}

// NewGrid allocates a grid of air/inactive cells.
func NewGrid(width, height int) (*Grid, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("tile grid: invalid dimensions %dx%d", width, height)
	}
	return &Grid{
		width:  width,
		height: height,
		cells:  make([]Cell, width*height),
	}, nil
}

func (g *Grid) Width() int  { return g.width }
func (g *Grid) Height() int { return g.height }

// InBounds reports whether (x, y) addresses a cell.
func (g *Grid) InBounds(x, y int) bool {
	return x >= 0 && x < g.width && y >= 0 && y < g.height
}

func (g *Grid) index(x, y int) int {
	if !g.InBounds(x, y) {
		// Out-of-range access is a programming error: physics and render
		// callers pre-clip, and the generator stays inside the grid.
		panic(fmt.Sprintf("tile grid: access (%d,%d) outside %dx%d", x, y, g.width, g.height))
	}
	return y*g.width + x
}

// Get returns the cell at (x, y).
func (g *Grid) Get(x, y int) Cell {
	return g.cells[g.index(x, y)]
}

// SetCell replaces the full state of the cell at (x, y).
func (g *Grid) SetCell(x, y int, kind Material, active bool) {
	g.cells[g.index(x, y)] = Cell{Kind: kind, Active: active}
}

// SetKind changes the material while preserving the active flag.
func (g *Grid) SetKind(x, y int, kind Material) {
	g.cells[g.index(x, y)].Kind = kind
}

// Cells exposes the backing sequence in row-major order for bulk consumers
// (serializer, renderer). Callers must treat it as read-only.
func (g *Grid) Cells() []Cell {
	return g.cells
}

// Digest returns a sha256 over the full cell array. Two grids with
// identical contents have identical digests.
func (g *Grid) Digest() [32]byte {
	h := sha256.New()
	buf := make([]byte, 2)
	for _, c := range g.cells {
		buf[0] = byte(c.Kind)
		buf[1] = 0
		if c.Active {
			buf[1] = 1
		}
		h.Write(buf)
	}
	var out [32]byte
	copy(out[:], h.Sum(nil))
	return out
}
