package propagator

import (
	"runtime"
	"sync"
)

// parallelThreshold is the minimum interior row count for parallel stepping.
// Below this, single-threaded is faster due to dispatch overhead.
const parallelThreshold = 64

// rowChunk is a contiguous range of interior rows for one worker. Write sets
// of distinct chunks are disjoint by construction, so the workers need no
// locking; the dispatch loop provides the join barrier.
type rowChunk struct {
	i0, i1 int
}

// workerPool holds persistent goroutines that execute stencil chunks.
type workerPool struct {
	numWorkers int

	workChan chan rowChunk // sends row ranges to workers
	doneChan chan struct{} // workers signal chunk completion
	stopChan chan struct{} // signals workers to exit
	wg       sync.WaitGroup
	running  bool
}

func newWorkerPool(numWorkers int) *workerPool {
	if numWorkers <= 0 {
		numWorkers = runtime.GOMAXPROCS(0)
	}
	return &workerPool{numWorkers: numWorkers}
}

// start launches the worker goroutines.
func (w *workerPool) start(p *Propagator) {
	if w.running {
		return
	}

	w.workChan = make(chan rowChunk, w.numWorkers)
	w.doneChan = make(chan struct{}, w.numWorkers)
	w.stopChan = make(chan struct{})
	w.running = true

	for i := 0; i < w.numWorkers; i++ {
		w.wg.Add(1)
		go w.worker(p)
	}
}

// stop signals all workers to exit and waits for them.
func (w *workerPool) stop() {
	if !w.running {
		return
	}

	close(w.stopChan)
	w.wg.Wait()
	close(w.workChan)
	close(w.doneChan)
	w.running = false
}

// worker processes row chunks until stopped.
func (w *workerPool) worker(p *Propagator) {
	defer w.wg.Done()

	for {
		select {
		case <-w.stopChan:
			return
		case chunk, ok := <-w.workChan:
			if !ok {
				return
			}
			p.computeChunk(chunk.i0, chunk.i1)
			w.doneChan <- struct{}{}
		}
	}
}

// dispatch splits rows [i0, i1) across the pool and blocks until every chunk
// has completed. The current-level buffer is read-only for the whole region.
func (w *workerPool) dispatch(p *Propagator, i0, i1 int) {
	if !w.running {
		w.start(p)
	}

	n := i1 - i0
	chunkSize := (n + w.numWorkers - 1) / w.numWorkers

	chunksDispatched := 0
	for c := 0; c < w.numWorkers; c++ {
		start := i0 + c*chunkSize
		end := start + chunkSize
		if end > i1 {
			end = i1
		}
		if start >= end {
			continue
		}

		w.workChan <- rowChunk{i0: start, i1: end}
		chunksDispatched++
	}

	for i := 0; i < chunksDispatched; i++ {
		<-w.doneChan
	}
}
