package export

// ProgressListener receives page progress from an export. Calls are made
// synchronously on the exporting goroutine.
type ProgressListener interface {
	SetMaximumState(max int)
	SetCurrentState(state int)
}

// ProgressFunc adapts a function receiving the completed fraction (0..1)
type ProgressFunc func(fraction float64)

type progressFunc struct {
	fn  ProgressFunc
	max int
}

// Listener returns a ProgressListener calling f
func (f ProgressFunc) Listener() ProgressListener {
	return &progressFunc{fn: f}
}

func (p *progressFunc) SetMaximumState(max int) {
	p.max = max
	p.fn(0)
}

func (p *progressFunc) SetCurrentState(state int) {
	if p.max <= 0 {
		p.fn(1)
		return
	}
	p.fn(float64(state) / float64(p.max))
}

type nopListener struct{}

func (nopListener) SetMaximumState(int) {}
func (nopListener) SetCurrentState(int) {}
