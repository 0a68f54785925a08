package scheduler

import "time"

// Repeating is a cancelable repeating task with an explicit running state.
//
// Every Start opens a new generation. Ticks are stamped with the generation
// that produced them and Live rejects anything stamped by a stopped or
// superseded run, so a tick already in flight when Stop is called is dropped
// instead of being applied twice.
//
// Repeating is not safe for concurrent use; it belongs to a single event loop.
type Repeating struct {
	period  time.Duration
	gen     uint64
	running bool
	ticker  *time.Ticker
}

func NewRepeating(period time.Duration) *Repeating {
	if period <= 0 {
		period = time.Second
	}
	return &Repeating{period: period}
}

func (r *Repeating) Period() time.Duration { return r.period }

func (r *Repeating) Running() bool { return r.running }

// Generation returns the generation of the current run, or of the last one
// if the task is stopped.
func (r *Repeating) Generation() uint64 { return r.gen }

// Start begins a new run and returns its generation. Starting a running task
// is a no-op that returns the live generation.
func (r *Repeating) Start() uint64 {
	if r.running {
		return r.gen
	}
	r.gen++
	r.running = true
	return r.gen
}

// Stop deactivates the task. Outstanding ticks of the stopped run become stale.
func (r *Repeating) Stop() {
	if !r.running {
		return
	}
	r.running = false
	r.gen++
	if r.ticker != nil {
		r.ticker.Stop()
		r.ticker = nil
	}
}

// Live reports whether a tick stamped with gen belongs to the active run.
func (r *Repeating) Live(gen uint64) bool {
	return r.running && gen == r.gen
}

// C returns a channel delivering ticks for channel-driven loops. It is nil
// while stopped, which blocks forever inside a select.
func (r *Repeating) C() <-chan time.Time {
	if !r.running {
		return nil
	}
	if r.ticker == nil {
		r.ticker = time.NewTicker(r.period)
	}
	return r.ticker.C
}
