package gen

import (
	"testing"

	"github.com/WilliamBehnke/terraria-clone-sub000/internal/sim/world/tile"
)

func mustGrid(t *testing.T, w, h int) *tile.Grid {
	t.Helper()
	g, err := tile.NewGrid(w, h)
	if err != nil {
		t.Fatalf("NewGrid(%d, %d): %v", w, h, err)
	}
	return g
}

// detectedSurface scans a column top-down for the first active solid cell
// below the top border. With caves, ore and the den all kept strictly
// below the pass-1 surface, this recovers the height field exactly.
func detectedSurface(g *tile.Grid, x int) int {
	for y := 1; y < g.Height()-1; y++ {
		c := g.Get(x, y)
		if c.Active && tile.IsSolid(c.Kind) {
			return y
		}
	}
	return g.Height() - 1
}

func TestGenerate_Deterministic(t *testing.T) {
	a := mustGrid(t, 100, 40)
	b := mustGrid(t, 100, 40)
	GenerateSeeded(a, 42)
	GenerateSeeded(b, 42)
	if a.Digest() != b.Digest() {
		t.Fatalf("same seed produced different worlds")
	}

	c := mustGrid(t, 100, 40)
	GenerateSeeded(c, 43)
	if a.Digest() == c.Digest() {
		t.Fatalf("seeds 42 and 43 produced identical worlds")
	}
}

func TestGenerate_SurfaceContinuity(t *testing.T) {
	const w, h = 100, 40
	g := mustGrid(t, w, h)
	cfg := DefaultConfig()
	GenerateWith(g, 42, cfg)

	bound := MaxSurfaceStep(h, cfg)
	for x := 2; x < w-1; x++ {
		prev := detectedSurface(g, x-1)
		cur := detectedSurface(g, x)
		d := cur - prev
		if d < 0 {
			d = -d
		}
		if d > bound {
			t.Fatalf("surface step %d between columns %d and %d exceeds bound %d", d, x-1, x, bound)
		}
	}
}

func TestGenerate_SurfaceColumnsOrderIndependent(t *testing.T) {
	cfg := DefaultConfig()
	// columnSurface must depend only on (seed, cfg, height, x).
	for x := 0; x < 100; x++ {
		a := columnSurface(42, cfg, 40, x)
		b := columnSurface(42, cfg, 40, x)
		if a != b {
			t.Fatalf("column %d surface not stable: %d vs %d", x, a, b)
		}
	}
}

func TestGenerate_FlatWithZeroAmplitude(t *testing.T) {
	cfg := DefaultConfig()
	cfg.TerrainAmplitude = 0
	first := columnSurface(42, cfg, 40, 0)
	for x := 1; x < 100; x++ {
		if got := columnSurface(42, cfg, 40, x); got != first {
			t.Fatalf("zero amplitude surface varies: column %d is %d, column 0 is %d", x, got, first)
		}
	}
}

func TestGenerate_BoundarySolid(t *testing.T) {
	const w, h = 100, 40
	g := mustGrid(t, w, h)
	GenerateSeeded(g, 42)

	check := func(x, y int) {
		c := g.Get(x, y)
		if !c.Active || c.Kind == tile.MatAir {
			t.Fatalf("border cell (%d,%d) = %+v, want solid", x, y, c)
		}
	}
	for x := 0; x < w; x++ {
		check(x, 0)
		check(x, h-1)
	}
	for y := 0; y < h; y++ {
		check(0, y)
		check(w-1, y)
	}
}

func TestGenerate_OreContainment(t *testing.T) {
	const w, h = 100, 40
	g := mustGrid(t, w, h)
	GenerateSeeded(g, 42)

	found := false
	for x := 1; x < w-1; x++ {
		sy := detectedSurface(g, x)
		for y := 1; y < h-1; y++ {
			c := g.Get(x, y)
			if !tile.IsOre(c.Kind) {
				continue
			}
			found = true
			if !c.Active {
				t.Fatalf("inactive ore at (%d,%d)", x, y)
			}
			if y <= sy {
				t.Fatalf("ore at (%d,%d) at or above surface row %d", x, y, sy)
			}
		}
	}
	if !found {
		t.Fatalf("no ore placed in a 100x40 world at neutral density")
	}
}

func TestGenerate_DenCarvedClear(t *testing.T) {
	const w, h = 100, 40
	g := mustGrid(t, w, h)
	GenerateSeeded(g, 42)

	den := DragonDenInfo(g, 42)
	if den.Empty() {
		t.Fatalf("den unexpectedly empty for 100x40")
	}
	if den.CX-den.RX < 1 || den.CX+den.RX > w-2 || den.CY-den.RY < 1 || den.CY+den.RY > h-2 {
		t.Fatalf("den %+v extends into the border", den)
	}
	for y := den.CY - den.RY; y <= den.CY+den.RY; y++ {
		for x := den.CX - den.RX; x <= den.CX+den.RX; x++ {
			if !den.Contains(x, y) {
				continue
			}
			c := g.Get(x, y)
			if c.Active || c.Kind != tile.MatAir {
				t.Fatalf("den interior (%d,%d) = %+v, want carved air", x, y, c)
			}
		}
	}
}

func TestGenerate_DenQueryIdempotent(t *testing.T) {
	g := mustGrid(t, 100, 40)
	before := DragonDenInfo(g, 42)
	GenerateSeeded(g, 42)
	after := DragonDenInfo(g, 42)
	if before != after {
		t.Fatalf("den query changed across generation: %+v vs %+v", before, after)
	}
	if DenFor(100, 40, 42) != before {
		t.Fatalf("DenFor disagrees with DragonDenInfo")
	}
}

func TestGenerate_TreeValidity(t *testing.T) {
	const w, h = 100, 40
	g := mustGrid(t, w, h)
	GenerateSeeded(g, 42)

	trunks := 0
	for x := 1; x < w-1; x++ {
		for y := 1; y < h-1; y++ {
			c := g.Get(x, y)
			if c.Kind != tile.MatTrunk || !c.Active {
				continue
			}
			trunks++
			below := g.Get(x, y+1)
			if below.Kind != tile.MatTrunk && !(below.Active && below.Kind == tile.MatGrass) {
				t.Fatalf("trunk at (%d,%d) stands on %+v, want trunk or grass", x, y, below)
			}
			// Trees grow into sky only: everything at or below the
			// detected surface must not be tree material.
			if y >= detectedSurface(g, x) {
				t.Fatalf("trunk at (%d,%d) at or below surface", x, y)
			}
		}
	}
	if trunks == 0 {
		t.Fatalf("no trees in a 100x40 world at neutral density")
	}

	// Foliage never floats free of a trunk cluster.
	for x := 1; x < w-1; x++ {
		for y := 1; y < h-1; y++ {
			if g.Get(x, y).Kind != tile.MatLeaves {
				continue
			}
			adjacent := false
			for _, d := range [][2]int{{1, 0}, {-1, 0}, {0, 1}, {0, -1}, {1, 1}, {-1, 1}, {1, -1}, {-1, -1}} {
				nx, ny := x+d[0], y+d[1]
				if !g.InBounds(nx, ny) {
					continue
				}
				k := g.Get(nx, ny).Kind
				if k == tile.MatTrunk || k == tile.MatLeaves {
					adjacent = true
					break
				}
			}
			if !adjacent {
				t.Fatalf("floating foliage at (%d,%d)", x, y)
			}
		}
	}
}

func TestGenerate_NoCavesMeansSolidUnderground(t *testing.T) {
	const w, h = 100, 40
	g := mustGrid(t, w, h)
	cfg := DefaultConfig()
	cfg.CaveDensity = 0
	GenerateWith(g, 42, cfg)

	den := DenFor(w, h, 42)
	for x := 1; x < w-1; x++ {
		sy := detectedSurface(g, x)
		for y := sy + 1; y < h-1; y++ {
			if den.Contains(x, y) {
				continue
			}
			c := g.Get(x, y)
			if !c.Active || c.Kind == tile.MatAir {
				t.Fatalf("air below surface at (%d,%d) with cave_density=0", x, y)
			}
		}
	}
}

func TestGenerate_DegenerateTinyGrid(t *testing.T) {
	g := mustGrid(t, 5, 5)
	GenerateSeeded(g, 42) // must not panic

	den := DragonDenInfo(g, 42)
	if !den.Empty() {
		t.Fatalf("5x5 grid grew a den: %+v", den)
	}
	for x := 0; x < 5; x++ {
		for y := 0; y < 5; y++ {
			if x == 0 || x == 4 || y == 0 || y == 4 {
				if c := g.Get(x, y); !c.Active || c.Kind == tile.MatAir {
					t.Fatalf("border cell (%d,%d) = %+v on tiny grid", x, y, c)
				}
			}
		}
	}

	a := mustGrid(t, 5, 5)
	GenerateSeeded(a, 42)
	if a.Digest() != g.Digest() {
		t.Fatalf("tiny grid generation not deterministic")
	}
}

func TestGenerate_DisabledFeatures(t *testing.T) {
	const w, h = 100, 40
	g := mustGrid(t, w, h)
	cfg := Config{TerrainAmplitude: 1, SoilDepthScale: 1}
	GenerateWith(g, 42, cfg)

	for x := 0; x < w; x++ {
		for y := 0; y < h; y++ {
			c := g.Get(x, y)
			if tile.IsOre(c.Kind) {
				t.Fatalf("ore at (%d,%d) with ore_density=0", x, y)
			}
			if c.Kind == tile.MatTrunk || c.Kind == tile.MatLeaves {
				t.Fatalf("tree at (%d,%d) with tree_density=0", x, y)
			}
		}
	}
}

func TestConfig_Validate(t *testing.T) {
	if err := DefaultConfig().Validate(); err != nil {
		t.Fatalf("default config invalid: %v", err)
	}
	bad := DefaultConfig()
	bad.CaveDensity = -0.5
	if err := bad.Validate(); err == nil {
		t.Fatalf("negative cave_density accepted")
	}
	zero := Config{}
	if err := zero.Validate(); err != nil {
		t.Fatalf("all-zero config should be valid (features disabled): %v", err)
	}
}

func TestMaxSurfaceStep_Positive(t *testing.T) {
	if got := MaxSurfaceStep(40, DefaultConfig()); got < 1 {
		t.Fatalf("MaxSurfaceStep = %d, want >= 1", got)
	}
}

func TestHash2_Stable(t *testing.T) {
	a := hash2(42, saltHeight, 7, 0)
	b := hash2(42, saltHeight, 7, 0)
	if a != b {
		t.Fatalf("hash2 not stable")
	}
	if hash2(42, saltHeight, 7, 0) == hash2(42, saltCaves, 7, 0) {
		t.Fatalf("salts do not separate streams")
	}
	if hash2(42, saltHeight, 7, 0) == hash2(43, saltHeight, 7, 0) {
		t.Fatalf("seed does not perturb the hash")
	}
}

func TestStream_FixedPerIndex(t *testing.T) {
	a := newStream(42, saltCaves, 3)
	b := newStream(42, saltCaves, 3)
	for i := 0; i < 16; i++ {
		if a.next() != b.next() {
			t.Fatalf("stream diverged at draw %d", i)
		}
	}
	if newStream(42, saltCaves, 3).next() == newStream(42, saltCaves, 4).next() {
		t.Fatalf("walk index does not separate streams")
	}
}
