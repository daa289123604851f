package indexdb

import (
	"path/filepath"
	"testing"
)

func openTest(t *testing.T) *SQLiteIndex {
	t.Helper()
	idx, err := OpenSQLite(filepath.Join(t.TempDir(), "index.db"))
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	t.Cleanup(func() { _ = idx.Close() })
	return idx
}

func TestLatestSnapshot_EmptyIndex(t *testing.T) {
	idx := openTest(t)
	_, ok, err := idx.LatestSnapshot("w1")
	if err != nil {
		t.Fatalf("query: %v", err)
	}
	if ok {
		t.Fatalf("empty index reported a snapshot")
	}
}

func TestRecordAndLatest(t *testing.T) {
	idx := openTest(t)
	if err := idx.UpsertWorld("w1", 42, 100, 40); err != nil {
		t.Fatalf("upsert world: %v", err)
	}
	// Re-upserting the same world is a no-op, not an error.
	if err := idx.UpsertWorld("w1", 42, 100, 40); err != nil {
		t.Fatalf("second upsert: %v", err)
	}

	rows := []SnapshotRow{
		{WorldID: "w1", Tick: 3000, Path: "data/w1_3000.snap", Seed: 42, Width: 100, Height: 40, Digest: "aaa"},
		{WorldID: "w1", Tick: 6000, Path: "data/w1_6000.snap", Seed: 42, Width: 100, Height: 40, Digest: "bbb"},
		{WorldID: "w2", Tick: 9000, Path: "data/w2_9000.snap", Seed: 7, Width: 50, Height: 50, Digest: "ccc"},
	}
	for _, r := range rows {
		if err := idx.RecordSnapshot(r); err != nil {
			t.Fatalf("record %d: %v", r.Tick, err)
		}
	}

	got, ok, err := idx.LatestSnapshot("w1")
	if err != nil || !ok {
		t.Fatalf("latest: %v ok=%v", err, ok)
	}
	if got.Tick != 6000 || got.Path != "data/w1_6000.snap" || got.Digest != "bbb" {
		t.Fatalf("latest = %+v, want tick 6000", got)
	}
	if got.Seed != 42 || got.Width != 100 || got.Height != 40 {
		t.Fatalf("latest metadata = %+v", got)
	}

	// Re-recording the same tick overwrites in place.
	if err := idx.RecordSnapshot(SnapshotRow{WorldID: "w1", Tick: 6000, Path: "data/w1_6000b.snap", Seed: 42, Width: 100, Height: 40, Digest: "ddd"}); err != nil {
		t.Fatalf("re-record: %v", err)
	}
	got, _, _ = idx.LatestSnapshot("w1")
	if got.Path != "data/w1_6000b.snap" || got.Digest != "ddd" {
		t.Fatalf("re-record did not update: %+v", got)
	}
}

func TestOpenSQLite_EmptyPath(t *testing.T) {
	if _, err := OpenSQLite(""); err == nil {
		t.Fatalf("empty path accepted")
	}
}
