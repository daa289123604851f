package gen

import "fmt"

// DefaultSeed drives quick/demo worlds generated without an explicit seed.
const DefaultSeed uint32 = 1337

// Config scales the generation passes. All factors default to 1.0
// (neutral); a factor of zero disables its feature, which is valid and
// simply yields a world without it.
type Config struct {
	TerrainAmplitude float64
	SoilDepthScale   float64
	CaveDensity      float64
	OreDensity       float64
	TreeDensity      float64
}

// DefaultConfig returns the all-neutral config.
func DefaultConfig() Config {
	return Config{
		TerrainAmplitude: 1.0,
		SoilDepthScale:   1.0,
		CaveDensity:      1.0,
		OreDensity:       1.0,
		TreeDensity:      1.0,
	}
}

// Validate rejects negative factors. Zero is allowed (feature disabled).
func (c Config) Validate() error {
	check := func(name string, v float64) error {
		if v < 0 {
			return fmt.Errorf("gen config: %s must be >= 0, got %v", name, v)
		}
		return nil
	}
	if err := check("terrain_amplitude", c.TerrainAmplitude); err != nil {
		return err
	}
	if err := check("soil_depth_scale", c.SoilDepthScale); err != nil {
		return err
	}
	if err := check("cave_density", c.CaveDensity); err != nil {
		return err
	}
	if err := check("ore_density", c.OreDensity); err != nil {
		return err
	}
	return check("tree_density", c.TreeDensity)
}
