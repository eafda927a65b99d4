package parallel

import (
	"sync/atomic"
	"testing"
)

func TestFor_Sequential(t *testing.T) {
	visited := make([]bool, 10)

	For(10, func(i int) { visited[i] = true }, Sequential())

	for i, v := range visited {
		if !v {
			t.Errorf("Index %d not visited", i)
		}
	}
}

// TestFor_Parallel: every index is visited exactly once across workers.
func TestFor_Parallel(t *testing.T) {
	const n = 1000
	counts := make([]int32, n)

	cfg := Config{Enabled: true, NumWorkers: 4, MinChunkSize: 1}
	For(n, func(i int) { atomic.AddInt32(&counts[i], 1) }, cfg)

	for i, c := range counts {
		if c != 1 {
			t.Errorf("Index %d visited %d times", i, c)
		}
	}
}

// TestFor_SmallFallsBackToSequential: below MinChunkSize the loop runs inline.
func TestFor_SmallFallsBackToSequential(t *testing.T) {
	var count int32

	cfg := Config{Enabled: true, NumWorkers: 8, MinChunkSize: 64}
	For(10, func(i int) { count++ }, cfg) // no atomics needed when sequential

	if count != 10 {
		t.Errorf("Expected 10 iterations, got %d", count)
	}
}

func TestFor_Empty(t *testing.T) {
	called := false
	For(0, func(i int) { called = true }, DefaultConfig())
	if called {
		t.Error("f called for n=0")
	}
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	if cfg.NumWorkers < 1 {
		t.Errorf("Expected at least 1 worker, got %d", cfg.NumWorkers)
	}
}
