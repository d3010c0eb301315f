// Package scheduler implements the strided block-parallel encode
// scheduling contract: worker t encodes every block index k with
// k mod T == t, T = helperThreads+1, joined before Run returns. Output
// is independent of T because the k->t mapping is fixed and each
// block's encode is pure in its own tile.
package scheduler

import (
	"sync"
	"sync/atomic"
)

// Run partitions block indices [0, blocksX*blocksY) across
// helperThreads+1 workers and calls encodeBlock(k) for each index
// assigned to a worker. Only the calling goroutine's worker (t=0)
// invokes progress, every 64 blocks it processes, with
// pct = progressStart + floor((k*progressRange + total/2) / total).
// progress returning false sets a shared cancellation flag observed by
// every worker before its next block; Run then returns true.
func Run(blocksX, blocksY, helperThreads, progressStart, progressRange int, progress func(pct int) bool, encodeBlock func(k int)) bool {
	total := blocksX * blocksY
	threads := helperThreads + 1
	var canceled int32

	helper := func(t int) {
		for k := t; k < total; k += threads {
			if atomic.LoadInt32(&canceled) != 0 {
				return
			}
			encodeBlock(k)
		}
	}

	caller := func() {
		processed := 0
		lastPct := -1
		for k := 0; k < total; k += threads {
			if atomic.LoadInt32(&canceled) != 0 {
				return
			}
			encodeBlock(k)
			processed++
			if progress != nil && processed%64 == 0 {
				pct := progressStart + (k*progressRange + total/2)/total
				if pct != lastPct {
					lastPct = pct
					if !progress(pct) {
						atomic.StoreInt32(&canceled, 1)
						return
					}
				}
			}
		}
	}

	var wg sync.WaitGroup
	for t := 1; t < threads; t++ {
		wg.Add(1)
		go func(t int) {
			defer wg.Done()
			helper(t)
		}(t)
	}
	caller()
	wg.Wait()

	return atomic.LoadInt32(&canceled) != 0
}
