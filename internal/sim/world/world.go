// Package world owns the tile grid for the lifetime of a play session.
// Generation writes the grid once at creation; afterwards a single run
// goroutine applies all gameplay mutations, so no locking is needed.
package world

import (
	"context"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"time"

	"github.com/WilliamBehnke/terraria-clone-sub000/internal/protocol"
	"github.com/WilliamBehnke/terraria-clone-sub000/internal/sim/world/gen"
	"github.com/WilliamBehnke/terraria-clone-sub000/internal/sim/world/tile"
)

type World struct {
	cfg  Config
	grid *tile.Grid
	den  gen.DenInfo
	tick uint64

	join  chan JoinRequest
	leave chan string
	inbox chan ActionEnvelope
	snaps chan SnapshotRequest

	sessions   map[string]*session
	nextPlayer uint64
}

type session struct {
	id   string
	name string
	out  chan []byte
}

type JoinRequest struct {
	Name string
	Out  chan []byte
	Resp chan JoinResponse
}

type JoinResponse struct {
	Welcome protocol.WelcomeMsg
	World   protocol.WorldMsg
	Err     error
}

type ActionEnvelope struct {
	PlayerID string
	Act      protocol.ActMsg
}

type SnapshotRequest struct {
	Resp chan SnapshotState
}

// SnapshotState is a copy of everything a save must retain.
type SnapshotState struct {
	WorldID string
	Tick    uint64
	Seed    uint32
	Gen     gen.Config
	Width   int
	Height  int
	Cells   []tile.Cell
	Digest  string
}

// New creates a freshly generated world.
func New(cfg Config) (*World, error) {
	cfg.applyDefaults()
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	g, err := tile.NewGrid(cfg.Width, cfg.Height)
	if err != nil {
		return nil, err
	}
	gen.GenerateWith(g, cfg.Seed, cfg.Gen)
	return newWorld(cfg, g, 0), nil
}

// Load restores a world from saved cells without regenerating. The cell
// array is authoritative post-gameplay state, not a seed replay.
func Load(cfg Config, cells []tile.Cell, tick uint64) (*World, error) {
	cfg.applyDefaults()
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	g, err := tile.NewGrid(cfg.Width, cfg.Height)
	if err != nil {
		return nil, err
	}
	if len(cells) != cfg.Width*cfg.Height {
		return nil, fmt.Errorf("world %s: %d cells for %dx%d grid", cfg.ID, len(cells), cfg.Width, cfg.Height)
	}
	copy(g.Cells(), cells)
	return newWorld(cfg, g, tick), nil
}

func newWorld(cfg Config, g *tile.Grid, tick uint64) *World {
	return &World{
		cfg:      cfg,
		grid:     g,
		den:      gen.DenFor(cfg.Width, cfg.Height, cfg.Seed),
		tick:     tick,
		join:     make(chan JoinRequest, 16),
		leave:    make(chan string, 16),
		inbox:    make(chan ActionEnvelope, 256),
		snaps:    make(chan SnapshotRequest, 4),
		sessions: map[string]*session{},
	}
}

func (w *World) Join() chan<- JoinRequest          { return w.join }
func (w *World) Leave() chan<- string              { return w.leave }
func (w *World) Inbox() chan<- ActionEnvelope      { return w.inbox }
func (w *World) Snapshots() chan<- SnapshotRequest { return w.snaps }

func (w *World) Config() Config   { return w.cfg }
func (w *World) Den() gen.DenInfo { return w.den }
func (w *World) Tick() uint64     { return w.tick }

// Grid exposes the tile grid for collaborators running on the sim
// goroutine (physics, spawning). Off-thread use is a caller bug.
func (w *World) Grid() *tile.Grid { return w.grid }

// SpawnSurface returns the first row below the top border whose cell is
// active and solid, or -1 for a fully clear column. Enemy spawn logic
// stands entities on the row above it.
func (w *World) SpawnSurface(x int) int {
	for y := 1; y < w.grid.Height(); y++ {
		c := w.grid.Get(x, y)
		if c.Active && tile.IsSolid(c.Kind) {
			return y
		}
	}
	return -1
}

// Solid is the physics collision query.
func (w *World) Solid(x, y int) bool {
	if !w.grid.InBounds(x, y) {
		return true // outside the world is solid by convention
	}
	c := w.grid.Get(x, y)
	return c.Active && tile.IsSolid(c.Kind)
}

// Run processes joins, leaves, actions and snapshot requests on a single
// goroutine until the context is cancelled.
func (w *World) Run(ctx context.Context) {
	ticker := time.NewTicker(time.Second / time.Duration(w.cfg.TickRateHz))
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			w.tick++
		case req := <-w.join:
			w.handleJoin(req)
		case id := <-w.leave:
			delete(w.sessions, id)
		case env := <-w.inbox:
			w.handleAct(env)
		case req := <-w.snaps:
			req.Resp <- w.snapshotState()
		}
	}
}

func (w *World) handleJoin(req JoinRequest) {
	// Build the download before registering: a failed join must not
	// leave a session behind, since the client never sends a leave.
	worldMsg, err := w.buildWorldMsg()
	if err != nil {
		req.Resp <- JoinResponse{Err: err}
		return
	}

	w.nextPlayer++
	id := fmt.Sprintf("P%d", w.nextPlayer)
	name := req.Name
	if name == "" {
		name = "player"
	}
	w.sessions[id] = &session{id: id, name: name, out: req.Out}
	req.Resp <- JoinResponse{
		Welcome: protocol.WelcomeMsg{
			Type:            protocol.TypeWelcome,
			ProtocolVersion: protocol.Version,
			PlayerID:        id,
			WorldParams: protocol.WorldParams{
				Width:      w.cfg.Width,
				Height:     w.cfg.Height,
				Seed:       w.cfg.Seed,
				TickRateHz: w.cfg.TickRateHz,
				Den:        protocol.DenRef{CX: w.den.CX, CY: w.den.CY, RX: w.den.RX, RY: w.den.RY},
			},
		},
		World: worldMsg,
	}
}

func (w *World) buildWorldMsg() (protocol.WorldMsg, error) {
	cells := w.grid.Cells()
	raw := make([]byte, 2*len(cells))
	for i, c := range cells {
		raw[2*i] = byte(c.Kind)
		if c.Active {
			raw[2*i+1] = 1
		}
	}
	data, err := protocol.EncodeGridPayload(raw)
	if err != nil {
		return protocol.WorldMsg{}, fmt.Errorf("encode grid: %w", err)
	}
	return protocol.WorldMsg{
		Type:            protocol.TypeWorld,
		ProtocolVersion: protocol.Version,
		Width:           w.cfg.Width,
		Height:          w.cfg.Height,
		Encoding:        protocol.GridEncoding,
		Data:            data,
	}, nil
}

func (w *World) snapshotState() SnapshotState {
	cells := make([]tile.Cell, len(w.grid.Cells()))
	copy(cells, w.grid.Cells())
	d := w.grid.Digest()
	return SnapshotState{
		WorldID: w.cfg.ID,
		Tick:    w.tick,
		Seed:    w.cfg.Seed,
		Gen:     w.cfg.Gen,
		Width:   w.cfg.Width,
		Height:  w.cfg.Height,
		Cells:   cells,
		Digest:  hex.EncodeToString(d[:]),
	}
}

func (w *World) send(s *session, v any) {
	b, err := json.Marshal(v)
	if err != nil {
		return
	}
	select {
	case s.out <- b:
	default:
		// Slow consumer: drop rather than stall the sim.
	}
}

func (w *World) broadcast(v any) {
	b, err := json.Marshal(v)
	if err != nil {
		return
	}
	for _, s := range w.sessions {
		select {
		case s.out <- b:
		default:
		}
	}
}
