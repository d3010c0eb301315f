package scheduler

import (
	"sort"
	"sync"
	"testing"
)

func TestRunVisitsEveryBlockExactlyOnce(t *testing.T) {
	for _, helpers := range []int{0, 1, 3, 7} {
		var mu sync.Mutex
		var seen []int
		canceled := Run(4, 4, helpers, 0, 100, nil, func(k int) {
			mu.Lock()
			seen = append(seen, k)
			mu.Unlock()
		})
		if canceled {
			t.Fatalf("helpers=%d: unexpected cancellation", helpers)
		}
		sort.Ints(seen)
		if len(seen) != 16 {
			t.Fatalf("helpers=%d: got %d visits, want 16", helpers, len(seen))
		}
		for i, k := range seen {
			if k != i {
				t.Fatalf("helpers=%d: block %d missing or duplicated: %v", helpers, i, seen)
			}
		}
	}
}

func TestRunCancellation(t *testing.T) {
	var count int32
	var mu sync.Mutex
	progressCalls := 0
	canceled := Run(16, 16, 3, 0, 100, func(pct int) bool {
		mu.Lock()
		progressCalls++
		mu.Unlock()
		return false
	}, func(k int) {
		mu.Lock()
		count++
		mu.Unlock()
	})
	if !canceled {
		t.Fatal("expected Run to report cancellation")
	}
	if progressCalls == 0 {
		t.Fatal("expected at least one progress callback before cancellation")
	}
}
