package world

import (
	"github.com/WilliamBehnke/terraria-clone-sub000/internal/protocol"
	"github.com/WilliamBehnke/terraria-clone-sub000/internal/sim/world/tile"
)

// Action types.
const (
	ActDig   = "DIG"
	ActPlace = "PLACE"
)

func (w *World) handleAct(env ActionEnvelope) {
	s, ok := w.sessions[env.PlayerID]
	if !ok {
		return
	}
	for _, a := range env.Act.Actions {
		ack := w.applyAction(a)
		w.send(s, ack)
		if ack.Accepted {
			c := w.grid.Get(a.X, a.Y)
			w.broadcast(protocol.TileMsg{
				Type:            protocol.TypeTile,
				ProtocolVersion: protocol.Version,
				Tick:            w.tick,
				X:               a.X,
				Y:               a.Y,
				Material:        c.Kind.String(),
				Active:          c.Active,
			})
		}
	}
}

func (w *World) applyAction(a protocol.ActionReq) protocol.AckMsg {
	ack := protocol.AckMsg{
		Type:            protocol.TypeAck,
		ProtocolVersion: protocol.Version,
		AckFor:          a.ID,
		ServerTick:      w.tick,
	}
	reject := func(code, msg string) protocol.AckMsg {
		ack.Accepted = false
		ack.Code = code
		ack.Message = msg
		return ack
	}

	if !w.grid.InBounds(a.X, a.Y) {
		return reject(protocol.ErrOutOfBounds, "outside the world")
	}
	if w.onBorder(a.X, a.Y) {
		return reject(protocol.ErrInvalidTarget, "the world border is indestructible")
	}

	switch a.Type {
	case ActDig:
		c := w.grid.Get(a.X, a.Y)
		if !c.Active {
			return reject(protocol.ErrInvalidTarget, "nothing to dig")
		}
		// Deactivate but keep the kind: a mined block remembers what it
		// was so floor/ceiling conventions survive restoration.
		w.grid.SetCell(a.X, a.Y, c.Kind, false)
		ack.Accepted = true
		ack.Drop = tile.DropItem(c.Kind)
		return ack
	case ActPlace:
		kind, ok := tile.MaterialFromName(a.Material)
		if !ok || kind == tile.MatAir {
			return reject(protocol.ErrBadRequest, "unknown material")
		}
		if c := w.grid.Get(a.X, a.Y); c.Active {
			return reject(protocol.ErrInvalidTarget, "cell is occupied")
		}
		w.grid.SetCell(a.X, a.Y, kind, true)
		ack.Accepted = true
		return ack
	default:
		return reject(protocol.ErrBadRequest, "unknown action type")
	}
}

func (w *World) onBorder(x, y int) bool {
	return x == 0 || y == 0 || x == w.cfg.Width-1 || y == w.cfg.Height-1
}
