// Package snapshot persists the authoritative world state: the full cell
// array after generation and gameplay mutation, never a seed replay.
// Format: one JSON header line for quick inspection, then a zstd-wrapped
// gob body.
package snapshot

import (
	"bufio"
	"encoding/gob"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/klauspost/compress/zstd"
)

type Header struct {
	Version int    `json:"version"`
	WorldID string `json:"world_id"`
	Tick    uint64 `json:"tick"`
}

type SnapshotV1 struct {
	Header Header `json:"header"`

	Seed   uint32 `json:"seed"`
	Width  int    `json:"width"`
	Height int    `json:"height"`

	// Generation config used at creation, kept so a regeneration with the
	// same inputs is always possible even though reload never needs one.
	TerrainAmplitude float64 `json:"terrain_amplitude"`
	SoilDepthScale   float64 `json:"soil_depth_scale"`
	CaveDensity      float64 `json:"cave_density"`
	OreDensity       float64 `json:"ore_density"`
	TreeDensity      float64 `json:"tree_density"`

	// Row-major cell array.
	Kinds  []uint8 `json:"kinds"`
	Active []bool  `json:"active"`
}

func (s SnapshotV1) validate() error {
	want := s.Width * s.Height
	if s.Width <= 0 || s.Height <= 0 {
		return fmt.Errorf("snapshot: invalid dimensions %dx%d", s.Width, s.Height)
	}
	if len(s.Kinds) != want || len(s.Active) != want {
		return fmt.Errorf("snapshot: cell arrays %d/%d for %dx%d grid", len(s.Kinds), len(s.Active), s.Width, s.Height)
	}
	return nil
}

func WriteSnapshot(path string, snap SnapshotV1) error {
	if err := snap.validate(); err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o644)
	if err != nil {
		return err
	}
	defer f.Close()

	enc, err := zstd.NewWriter(f, zstd.WithEncoderLevel(zstd.SpeedDefault))
	if err != nil {
		return err
	}
	defer enc.Close()

	bw := bufio.NewWriterSize(enc, 256*1024)
	defer bw.Flush()

	hb, _ := json.Marshal(snap.Header)
	if _, err := bw.Write(hb); err != nil {
		return err
	}
	if err := bw.WriteByte('\n'); err != nil {
		return err
	}

	if err := gob.NewEncoder(bw).Encode(&snap); err != nil {
		return fmt.Errorf("gob encode: %w", err)
	}
	return nil
}

func ReadSnapshot(path string) (SnapshotV1, error) {
	var snap SnapshotV1
	f, err := os.Open(path)
	if err != nil {
		return snap, err
	}
	defer f.Close()

	dec, err := zstd.NewReader(f)
	if err != nil {
		return snap, err
	}
	defer dec.Close()

	br := bufio.NewReaderSize(dec, 256*1024)

	// Skip the header line; the gob body also carries it.
	_, _ = br.ReadBytes('\n')

	if err := gob.NewDecoder(br).Decode(&snap); err != nil {
		return snap, fmt.Errorf("gob decode: %w", err)
	}
	if err := snap.validate(); err != nil {
		return snap, err
	}
	return snap, nil
}
