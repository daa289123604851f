package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/WilliamBehnke/terraria-clone-sub000/internal/persistence/indexdb"
	"github.com/WilliamBehnke/terraria-clone-sub000/internal/persistence/snapshot"
	"github.com/WilliamBehnke/terraria-clone-sub000/internal/sim/tuning"
	"github.com/WilliamBehnke/terraria-clone-sub000/internal/sim/world"
	"github.com/WilliamBehnke/terraria-clone-sub000/internal/sim/world/gen"
	"github.com/WilliamBehnke/terraria-clone-sub000/internal/sim/world/tile"
	"github.com/WilliamBehnke/terraria-clone-sub000/internal/transport/ws"
)

func main() {
	var (
		addr       = flag.String("addr", ":8080", "listen address")
		worldID    = flag.String("world", "world_1", "world id")
		seed       = flag.Uint("seed", uint(gen.DefaultSeed), "world seed (32-bit)")
		dataDir    = flag.String("data", "data", "data directory for snapshots and index")
		tuningPath = flag.String("tuning", "configs/tuning.yaml", "tuning file")
		disableDB  = flag.Bool("disable_db", false, "skip the sqlite snapshot index")
	)
	flag.Parse()

	logger := log.New(os.Stdout, "[server] ", log.LstdFlags|log.Lmsgprefix)

	tun, err := loadTuning(*tuningPath, logger)
	if err != nil {
		logger.Fatalf("tuning: %v", err)
	}

	var idx *indexdb.SQLiteIndex
	if !*disableDB {
		idx, err = indexdb.OpenSQLite(filepath.Join(*dataDir, "index.db"))
		if err != nil {
			logger.Fatalf("index db: %v", err)
		}
		defer idx.Close()
	}

	cfg := world.Config{
		ID:         *worldID,
		Width:      tun.WorldWidth,
		Height:     tun.WorldHeight,
		Seed:       uint32(*seed),
		TickRateHz: tun.TickRateHz,
		Gen: gen.Config{
			TerrainAmplitude: tun.WorldGen.TerrainAmplitude,
			SoilDepthScale:   tun.WorldGen.SoilDepthScale,
			CaveDensity:      tun.WorldGen.CaveDensity,
			OreDensity:       tun.WorldGen.OreDensity,
			TreeDensity:      tun.WorldGen.TreeDensity,
		},
	}

	w, err := openWorld(cfg, idx, logger)
	if err != nil {
		logger.Fatalf("world: %v", err)
	}
	if idx != nil {
		if err := idx.UpsertWorld(cfg.ID, cfg.Seed, cfg.Width, cfg.Height); err != nil {
			logger.Fatalf("index db: %v", err)
		}
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go w.Run(ctx)

	if tun.SnapshotEveryTicks > 0 {
		go snapshotLoop(ctx, w, idx, *dataDir, tun, logger)
	}

	srv := ws.NewServer(w, logger)
	mux := http.NewServeMux()
	mux.HandleFunc("/v1/ws", srv.Handler())
	mux.HandleFunc("/healthz", func(rw http.ResponseWriter, _ *http.Request) {
		rw.WriteHeader(http.StatusOK)
		_, _ = rw.Write([]byte("ok"))
	})

	httpSrv := &http.Server{Addr: *addr, Handler: mux}
	go func() {
		<-ctx.Done()
		shutCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = httpSrv.Shutdown(shutCtx)
	}()

	logger.Printf("world %s %dx%d seed=%d listening on %s", cfg.ID, cfg.Width, cfg.Height, cfg.Seed, *addr)
	if err := httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Fatalf("http: %v", err)
	}

	// Final save after the listener drains.
	if err := saveSnapshot(w, idx, *dataDir, logger); err != nil {
		logger.Printf("final snapshot: %v", err)
	}
	logger.Printf("shutdown complete")
}

func loadTuning(path string, logger *log.Logger) (tuning.Tuning, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		logger.Printf("tuning %s not found, using defaults", path)
		return tuning.Defaults(), nil
	}
	return tuning.Load(path)
}

// openWorld resumes the latest indexed snapshot when one exists; the
// saved cell array wins over the seed, so gameplay edits survive.
func openWorld(cfg world.Config, idx *indexdb.SQLiteIndex, logger *log.Logger) (*world.World, error) {
	if idx == nil {
		return world.New(cfg)
	}
	row, ok, err := idx.LatestSnapshot(cfg.ID)
	if err != nil {
		return nil, err
	}
	if !ok {
		logger.Printf("no snapshot for %s, generating", cfg.ID)
		return world.New(cfg)
	}

	snap, err := snapshot.ReadSnapshot(row.Path)
	if err != nil {
		return nil, fmt.Errorf("resume %s: %w", row.Path, err)
	}
	cfg.Width = snap.Width
	cfg.Height = snap.Height
	cfg.Seed = snap.Seed
	cfg.Gen = gen.Config{
		TerrainAmplitude: snap.TerrainAmplitude,
		SoilDepthScale:   snap.SoilDepthScale,
		CaveDensity:      snap.CaveDensity,
		OreDensity:       snap.OreDensity,
		TreeDensity:      snap.TreeDensity,
	}
	cells := make([]tile.Cell, len(snap.Kinds))
	for i := range cells {
		cells[i] = tile.Cell{Kind: tile.Material(snap.Kinds[i]), Active: snap.Active[i]}
	}
	logger.Printf("resuming %s from %s (tick %d)", cfg.ID, row.Path, snap.Header.Tick)
	return world.Load(cfg, cells, snap.Header.Tick)
}

func snapshotLoop(ctx context.Context, w *world.World, idx *indexdb.SQLiteIndex, dataDir string, tun tuning.Tuning, logger *log.Logger) {
	interval := time.Duration(tun.SnapshotEveryTicks) * time.Second / time.Duration(tun.TickRateHz)
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := saveSnapshot(w, idx, dataDir, logger); err != nil {
				logger.Printf("snapshot: %v", err)
			}
		}
	}
}

func saveSnapshot(w *world.World, idx *indexdb.SQLiteIndex, dataDir string, logger *log.Logger) error {
	resp := make(chan world.SnapshotState, 1)
	select {
	case w.Snapshots() <- world.SnapshotRequest{Resp: resp}:
	case <-time.After(5 * time.Second):
		return fmt.Errorf("sim loop unresponsive")
	}
	state := <-resp

	snap := snapshot.SnapshotV1{
		Header: snapshot.Header{Version: 1, WorldID: state.WorldID, Tick: state.Tick},
		Seed:   state.Seed,
		Width:  state.Width,
		Height: state.Height,

		TerrainAmplitude: state.Gen.TerrainAmplitude,
		SoilDepthScale:   state.Gen.SoilDepthScale,
		CaveDensity:      state.Gen.CaveDensity,
		OreDensity:       state.Gen.OreDensity,
		TreeDensity:      state.Gen.TreeDensity,

		Kinds:  make([]uint8, len(state.Cells)),
		Active: make([]bool, len(state.Cells)),
	}
	for i, c := range state.Cells {
		snap.Kinds[i] = uint8(c.Kind)
		snap.Active[i] = c.Active
	}

	path := filepath.Join(dataDir, "snapshots", fmt.Sprintf("%s_%012d.snap", state.WorldID, state.Tick))
	if err := snapshot.WriteSnapshot(path, snap); err != nil {
		return err
	}
	logger.Printf("snapshot %s tick=%d digest=%s", path, state.Tick, state.Digest[:12])

	if idx == nil {
		return nil
	}
	return idx.RecordSnapshot(indexdb.SnapshotRow{
		WorldID: state.WorldID,
		Tick:    state.Tick,
		Path:    path,
		Seed:    state.Seed,
		Width:   state.Width,
		Height:  state.Height,
		Digest:  state.Digest,
	})
}
