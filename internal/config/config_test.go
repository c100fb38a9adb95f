package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadFillsDefaults(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	if err := os.WriteFile(path, []byte("log:\n  level: debug\n"), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	c, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if c.Log.Level != "debug" {
		t.Fatalf("Log.Level = %q, want debug", c.Log.Level)
	}
	if c.LRU.Capacity != 1024 {
		t.Fatalf("LRU.Capacity = %d, want default 1024", c.LRU.Capacity)
	}
	if c.Bench.N != 8192 || c.Bench.Threads != 4 {
		t.Fatalf("Bench = %+v, want defaults N=8192 Threads=4", c.Bench)
	}
}

func TestLoadRejectsNonPositiveCapacity(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	if err := os.WriteFile(path, []byte("lru:\n  capacity: 0\n"), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	if _, err := Load(path); err == nil {
		t.Fatalf("Load did not reject a zero capacity")
	}
}
