package parallel

import (
	"sync"
	"sync/atomic"
	"testing"
)

func TestRowsCoversEveryRowOnce(t *testing.T) {
	tests := []struct {
		name       string
		n, workers int
	}{
		{"sequential", 10, 1},
		{"even", 12, 4},
		{"uneven", 13, 4},
		{"more workers than rows", 3, 8},
		{"gomaxprocs", 100, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			hits := make([]atomic.Int32, tt.n)
			var mu sync.Mutex
			bands := 0
			Rows(tt.n, tt.workers, func(lo, hi int) {
				mu.Lock()
				bands++
				mu.Unlock()
				if lo >= hi {
					t.Errorf("empty band [%d, %d)", lo, hi)
				}
				for y := lo; y < hi; y++ {
					hits[y].Add(1)
				}
			})
			for y := range hits {
				if got := hits[y].Load(); got != 1 {
					t.Errorf("row %d visited %d times; want 1", y, got)
				}
			}
			if tt.workers > 0 && bands > tt.workers {
				t.Errorf("%d bands for %d workers", bands, tt.workers)
			}
		})
	}
}

func TestRowsEmpty(t *testing.T) {
	Rows(0, 4, func(lo, hi int) {
		t.Errorf("fn called with [%d, %d) for zero rows", lo, hi)
	})
}

func TestBandsAreContiguous(t *testing.T) {
	n, k := 17, 5
	prev := 0
	for i := range k {
		lo, hi := band(n, k, i)
		if lo != prev {
			t.Fatalf("band %d starts at %d; want %d", i, lo, prev)
		}
		prev = hi
	}
	if prev != n {
		t.Errorf("last band ends at %d; want %d", prev, n)
	}
}
