package dissolve

// ProgressFunc receives the number of finalized pixels out of the number of
// masked pixels in the processing region. completed never decreases.
type ProgressFunc func(completed, total int)

// progressUpdates bounds how often a ProgressFunc is called during one run.
const progressUpdates = 100

// progress throttles calls to a ProgressFunc.
type progress struct {
	fn        ProgressFunc
	total     int
	stride    int
	completed int
}

func newProgress(fn ProgressFunc, total int) *progress {
	return &progress{
		fn:     fn,
		total:  total,
		stride: max(1, total/progressUpdates),
	}
}

func (p *progress) pixelDone() {
	p.completed++
	if p.fn != nil && p.completed%p.stride == 0 {
		p.fn(p.completed, p.total)
	}
}

// finish reports the final count if the last update was skipped by the stride.
func (p *progress) finish() {
	if p.fn != nil && p.completed%p.stride != 0 {
		p.fn(p.completed, p.total)
	}
}
