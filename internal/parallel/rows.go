package parallel

import "sync"

// MinPixels is the smallest area Rows splits across workers. Smaller
// passes run on the calling goroutine.
const MinPixels = 64 * 1024

var defaultPool = sync.OnceValue(func() *WorkerPool { return NewWorkerPool(0) })

// Rows calls fn over disjoint bands [y0, y1) covering [0, height). Bands
// run concurrently when width*height reaches MinPixels, so fn must only
// write rows inside its band.
func Rows(width, height int, fn func(y0, y1 int)) {
	if height <= 0 {
		return
	}
	if width*height < MinPixels {
		fn(0, height)
		return
	}
	RowsOn(defaultPool(), height, fn)
}

// RowsOn splits [0, height) into one band per worker of pool, or fewer
// when there are not enough rows, and waits for all of them.
func RowsOn(pool *WorkerPool, height int, fn func(y0, y1 int)) {
	n := min(pool.Workers(), height)
	if n <= 1 {
		fn(0, height)
		return
	}
	work := make([]func(), 0, n)
	for i := range n {
		y0, y1 := i*height/n, (i+1)*height/n
		work = append(work, func() { fn(y0, y1) })
	}
	pool.ExecuteAll(work)
}
