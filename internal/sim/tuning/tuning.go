package tuning

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

type Tuning struct {
	ProtocolVersion string `yaml:"protocol_version"`

	WorldWidth  int `yaml:"world_width"`
	WorldHeight int `yaml:"world_height"`

	TickRateHz         int `yaml:"tick_rate_hz"`
	SnapshotEveryTicks int `yaml:"snapshot_every_ticks"`

	WorldGen WorldGen `yaml:"worldgen"`
}

type WorldGen struct {
	TerrainAmplitude float64 `yaml:"terrain_amplitude"`
	SoilDepthScale   float64 `yaml:"soil_depth_scale"`
	CaveDensity      float64 `yaml:"cave_density"`
	OreDensity       float64 `yaml:"ore_density"`
	TreeDensity      float64 `yaml:"tree_density"`
}

func Defaults() Tuning {
	return Tuning{
		ProtocolVersion:    "1.0",
		WorldWidth:         1200,
		WorldHeight:        400,
		TickRateHz:         10,
		SnapshotEveryTicks: 3000,
		WorldGen: WorldGen{
			TerrainAmplitude: 1.0,
			SoilDepthScale:   1.0,
			CaveDensity:      1.0,
			OreDensity:       1.0,
			TreeDensity:      1.0,
		},
	}
}

func Load(path string) (Tuning, error) {
	var t Tuning
	raw, err := os.ReadFile(path)
	if err != nil {
		return t, err
	}
	if err := yaml.Unmarshal(raw, &t); err != nil {
		return t, fmt.Errorf("tuning.yaml: %w", err)
	}
	if err := t.Validate(); err != nil {
		return t, err
	}
	return t, nil
}

// Validate rejects configs that must never reach the sim: zero-sized
// worlds, a stopped tick clock, and negative scale factors.
func (t Tuning) Validate() error {
	if t.WorldWidth <= 0 || t.WorldHeight <= 0 {
		return fmt.Errorf("tuning.yaml: invalid world dimensions %dx%d", t.WorldWidth, t.WorldHeight)
	}
	// The snapshot cadence divides by the tick rate.
	if t.TickRateHz <= 0 {
		return fmt.Errorf("tuning.yaml: tick_rate_hz must be > 0, got %d", t.TickRateHz)
	}
	if t.SnapshotEveryTicks < 0 {
		return fmt.Errorf("tuning.yaml: snapshot_every_ticks must be >= 0, got %d", t.SnapshotEveryTicks)
	}
	g := t.WorldGen
	for _, f := range []struct {
		name string
		v    float64
	}{
		{"terrain_amplitude", g.TerrainAmplitude},
		{"soil_depth_scale", g.SoilDepthScale},
		{"cave_density", g.CaveDensity},
		{"ore_density", g.OreDensity},
		{"tree_density", g.TreeDensity},
	} {
		if f.v < 0 {
			return fmt.Errorf("tuning.yaml: worldgen.%s must be >= 0", f.name)
		}
	}
	return nil
}
