package world

import (
	"fmt"

	"github.com/WilliamBehnke/terraria-clone-sub000/internal/sim/world/gen"
)

// Config describes one world instance. Width/Height/Seed/Gen together are
// everything generation needs; they are also what a snapshot retains so a
// reload never regenerates.
type Config struct {
	ID         string
	Width      int
	Height     int
	Seed       uint32
	TickRateHz int

	Gen gen.Config
}

func (c *Config) applyDefaults() {
	if c.ID == "" {
		c.ID = "world_1"
	}
	if c.TickRateHz <= 0 {
		c.TickRateHz = 10
	}
	if c.Gen == (gen.Config{}) {
		c.Gen = gen.DefaultConfig()
	}
}

func (c Config) validate() error {
	if c.Width <= 0 || c.Height <= 0 {
		return fmt.Errorf("world %s: invalid dimensions %dx%d", c.ID, c.Width, c.Height)
	}
	return c.Gen.Validate()
}
