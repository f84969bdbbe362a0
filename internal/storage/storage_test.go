package storage

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"
	"time"
)

func openTest(t *testing.T) *Storage {
	t.Helper()
	s, err := OpenInMemory()
	if err != nil {
		t.Fatalf("Failed to open in-memory storage: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestOptions(t *testing.T) {
	s := openTest(t)

	t.Run("Defaults", func(t *testing.T) {
		opts, err := s.LoadOptions(DefaultOptions(16, 5))
		if err != nil {
			t.Fatal(err)
		}
		if opts.HashMB != 16 || opts.Depth != 5 {
			t.Errorf("Expected defaults, got %+v", opts)
		}
	})

	t.Run("RoundTrip", func(t *testing.T) {
		if err := s.SaveOptions(&Options{HashMB: 64, Depth: 7}); err != nil {
			t.Fatal(err)
		}
		opts, err := s.LoadOptions(DefaultOptions(16, 5))
		if err != nil {
			t.Fatal(err)
		}
		if opts.HashMB != 64 || opts.Depth != 7 {
			t.Errorf("Expected saved options, got %+v", opts)
		}
		if opts.UpdatedAt.IsZero() {
			t.Error("Expected UpdatedAt to be set")
		}
	})
}

func TestSearchStats(t *testing.T) {
	s := openTest(t)

	stats, err := s.LoadStats()
	if err != nil {
		t.Fatal(err)
	}
	if stats.Searches != 0 || stats.NodesPerSecond() != 0 {
		t.Errorf("Expected empty stats, got %+v", stats)
	}

	if err := s.RecordSearch(4, 3000, time.Second); err != nil {
		t.Fatal(err)
	}
	if err := s.RecordSearch(2, 1000, time.Second); err != nil {
		t.Fatal(err)
	}

	stats, err = s.LoadStats()
	if err != nil {
		t.Fatal(err)
	}
	if stats.Searches != 2 || stats.Nodes != 4000 || stats.DeepestDepth != 4 {
		t.Errorf("Unexpected stats: %+v", stats)
	}
	if nps := stats.NodesPerSecond(); nps != 2000 {
		t.Errorf("Expected 2000 nodes/s, got %.2f", nps)
	}
}

func TestPerftCache(t *testing.T) {
	s := openTest(t)
	const fen = "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1"

	if _, found, err := s.LoadPerft(fen, 3); err != nil || found {
		t.Fatalf("Expected miss, got found=%v err=%v", found, err)
	}

	if err := s.SavePerft(fen, 3, 8902, time.Millisecond); err != nil {
		t.Fatal(err)
	}

	// Clocks do not change the key.
	rec, found, err := s.LoadPerft("rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 12 40", 3)
	if err != nil || !found {
		t.Fatalf("Expected hit, got found=%v err=%v", found, err)
	}
	if rec.Nodes != 8902 || rec.Depth != 3 {
		t.Errorf("Unexpected record: %+v", rec)
	}

	if _, found, _ := s.LoadPerft(fen, 4); found {
		t.Error("Different depth must miss")
	}

	if err := s.ClearPerft(); err != nil {
		t.Fatal(err)
	}
	if _, found, _ := s.LoadPerft(fen, 3); found {
		t.Error("Expected miss after ClearPerft")
	}
}

func TestOpenPersists(t *testing.T) {
	dir := t.TempDir()

	s, err := Open(dir)
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	if err := s.SaveOptions(&Options{HashMB: 32, Depth: 6}); err != nil {
		t.Fatal(err)
	}
	if err := s.Close(); err != nil {
		t.Fatal(err)
	}

	s, err = Open(dir)
	if err != nil {
		t.Fatalf("Reopen failed: %v", err)
	}
	defer s.Close()

	opts, err := s.LoadOptions(DefaultOptions(16, 5))
	if err != nil {
		t.Fatal(err)
	}
	if opts.HashMB != 32 || opts.Depth != 6 {
		t.Errorf("Options not persisted: %+v", opts)
	}
}

func TestDataPaths(t *testing.T) {
	if runtime.GOOS == "darwin" || runtime.GOOS == "windows" {
		t.Skip("XDG_DATA_HOME is only honored on Unix-like systems")
	}
	base := t.TempDir()
	t.Setenv("XDG_DATA_HOME", base)

	dataDir, err := GetDataDir()
	if err != nil {
		t.Fatalf("GetDataDir failed: %v", err)
	}
	if want := filepath.Join(base, appName); dataDir != want {
		t.Errorf("GetDataDir() = %s, want %s", dataDir, want)
	}

	dbDir, err := GetDatabaseDir()
	if err != nil {
		t.Fatalf("GetDatabaseDir failed: %v", err)
	}
	if _, err := os.Stat(dbDir); os.IsNotExist(err) {
		t.Errorf("Database directory was not created: %s", dbDir)
	}
}
