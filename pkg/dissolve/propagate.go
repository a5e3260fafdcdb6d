package dissolve

import (
	"container/heap"
	"math"

	"dissolvemask/pkg/grid"
)

// entry is a candidate distance for the pixel at pos, carrying the value of
// the seed it was propagated from. seq orders entries of equal distance.
type entry[T any] struct {
	dist  float64
	seq   uint64
	pos   int
	value T
}

// frontier is a min-heap of entries ordered by (dist, seq). Several entries
// may exist for the same pixel; only the one matching the current best
// distance is acted on.
type frontier[T any] []entry[T]

func (f frontier[T]) Len() int { return len(f) }

func (f frontier[T]) Less(i, j int) bool {
	if f[i].dist != f[j].dist {
		return f[i].dist < f[j].dist
	}
	return f[i].seq < f[j].seq
}

func (f frontier[T]) Swap(i, j int) { f[i], f[j] = f[j], f[i] }

func (f *frontier[T]) Push(x any) { *f = append(*f, x.(entry[T])) }

func (f *frontier[T]) Pop() any {
	old := *f
	n := len(old)
	item := old[n-1]
	*f = old[:n-1]
	return item
}

// engine runs the multi-source shortest-path expansion over the masked pixels
// of region. Distances and finalized flags are indexed by region.Linear.
type engine[T any] struct {
	region    grid.Region
	mask      Mask
	topo      Topology
	dist      []float64
	finalized []bool
	queue     frontier[T]
	seq       uint64

	// onFinalize is called exactly once per finalized pixel.
	onFinalize func(idx grid.Index, value T)

	idx, nb grid.Index
}

func newEngine[T any](region grid.Region, mask Mask, topo Topology, onFinalize func(grid.Index, T)) *engine[T] {
	n := region.NumberOfPixels()
	dist := make([]float64, n)
	for i := range dist {
		dist[i] = math.Inf(1)
	}
	return &engine[T]{
		region:     region,
		mask:       mask,
		topo:       topo,
		dist:       dist,
		finalized:  make([]bool, n),
		onFinalize: onFinalize,
		idx:        make(grid.Index, region.Dim()),
		nb:         make(grid.Index, region.Dim()),
	}
}

// seed registers every seed as a distance-zero source.
func (e *engine[T]) seed(seeds []Seed[T]) {
	for _, s := range seeds {
		pos := e.region.Linear(s.Index)
		e.dist[pos] = 0
		e.push(0, pos, s.Value)
	}
}

func (e *engine[T]) push(dist float64, pos int, value T) {
	heap.Push(&e.queue, entry[T]{dist: dist, seq: e.seq, pos: pos, value: value})
	e.seq++
}

// run drains the frontier.
func (e *engine[T]) run() {
	for e.step() {
	}
}

// step pops one entry and, unless it is stale, finalizes its pixel and relaxes
// the masked neighbours. It returns false once the frontier is empty.
func (e *engine[T]) step() bool {
	if e.queue.Len() == 0 {
		return false
	}
	item := heap.Pop(&e.queue).(entry[T])

	// a better distance was found after this entry was pushed, or an entry of
	// equal distance already claimed the pixel
	if item.dist > e.dist[item.pos] || e.finalized[item.pos] {
		return true
	}
	e.finalized[item.pos] = true

	idx := e.region.IndexAt(item.pos, e.idx)
	if e.onFinalize != nil {
		e.onFinalize(idx, item.value)
	}

	for k, off := range e.topo.Offsets {
		nb := idx.AddTo(off, e.nb)
		if !e.region.IsInside(nb) || !e.mask.Inside(nb) {
			continue
		}
		d := item.dist + e.topo.Deltas[k]
		pos := e.region.Linear(nb)
		if d < e.dist[pos] {
			e.dist[pos] = d
			e.push(d, pos, item.value)
		}
	}
	return true
}
