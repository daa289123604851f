package protocol

// HELLO (client -> server)
type HelloMsg struct {
	Type            string `json:"type"`
	ProtocolVersion string `json:"protocol_version"`
	PlayerName      string `json:"player_name"`
}

// WELCOME (server -> client)
type WelcomeMsg struct {
	Type            string      `json:"type"`
	ProtocolVersion string      `json:"protocol_version"`
	PlayerID        string      `json:"player_id"`
	WorldParams     WorldParams `json:"world_params"`
}

type WorldParams struct {
	Width      int    `json:"width"`
	Height     int    `json:"height"`
	Seed       uint32 `json:"seed"`
	TickRateHz int    `json:"tick_rate_hz"`
	Den        DenRef `json:"den"`
}

// DenRef locates the dragon den chamber for spawn-placement logic.
type DenRef struct {
	CX int `json:"cx"`
	CY int `json:"cy"`
	RX int `json:"rx"`
	RY int `json:"ry"`
}

// WORLD (server -> client): the full tile grid, zstd-compressed.
type WorldMsg struct {
	Type            string `json:"type"`
	ProtocolVersion string `json:"protocol_version"`
	Width           int    `json:"width"`
	Height          int    `json:"height"`
	Encoding        string `json:"encoding"` // "zstd+base64"
	Data            string `json:"data"`
}

// ACT (client -> server)
type ActMsg struct {
	Type            string      `json:"type"`
	ProtocolVersion string      `json:"protocol_version"`
	Tick            uint64      `json:"tick"`
	Actions         []ActionReq `json:"actions"`
}

type ActionReq struct {
	ID       string `json:"id"`
	Type     string `json:"type"` // "DIG" | "PLACE"
	X        int    `json:"x"`
	Y        int    `json:"y"`
	Material string `json:"material,omitempty"` // PLACE only
}

// ACK (server -> client)
type AckMsg struct {
	Type            string `json:"type"`
	ProtocolVersion string `json:"protocol_version"`
	AckFor          string `json:"ack_for"`
	Accepted        bool   `json:"accepted"`
	Code            string `json:"code,omitempty"`
	Message         string `json:"message,omitempty"`
	Drop            string `json:"drop,omitempty"` // item yielded by a DIG
	ServerTick      uint64 `json:"server_tick"`
}

// TILE (server -> client): one cell changed.
type TileMsg struct {
	Type            string `json:"type"`
	ProtocolVersion string `json:"protocol_version"`
	Tick            uint64 `json:"tick"`
	X               int    `json:"x"`
	Y               int    `json:"y"`
	Material        string `json:"material"`
	Active          bool   `json:"active"`
}
