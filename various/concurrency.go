package various

import (
	"runtime"
	"sync"
)

// KickOffChunkWorkers splits totalItems into contiguous chunks and runs fn
// on each chunk in its own goroutine, blocking until all chunks complete.
// fn must not depend on chunk execution order. Small workloads run inline
// to avoid paying for goroutine setup.
func KickOffChunkWorkers(totalItems int, fn func(start, end int)) {
	numWorkers := runtime.GOMAXPROCS(0)
	if numWorkers > 8 {
		numWorkers = 8
	}
	if totalItems < numWorkers*64 {
		fn(0, totalItems)
		return
	}

	var wg sync.WaitGroup
	var chunkStart int
	chunkSize := (totalItems / numWorkers) + 1
	for i := 0; i < numWorkers; i++ {
		curChunk := chunkSize
		if rem := totalItems - chunkStart; rem < curChunk {
			curChunk = rem
		}
		if curChunk <= 0 {
			break
		}
		wg.Add(1)
		go func(start, end int) {
			fn(start, end)
			wg.Done()
		}(chunkStart, chunkStart+curChunk)
		chunkStart += curChunk
	}
	wg.Wait()
}
