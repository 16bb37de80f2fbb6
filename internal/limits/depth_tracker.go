package limits

import (
	"fmt"
)

// defaultWarnFraction is the fraction of the maximum depth at which
// DepthTracker.Enter first calls the warning callback, ahead of the hard
// MaxNodeDepth failure; NewDepthTracker derives the warning depth from it.
const defaultWarnFraction = 0.8

// RecursionDepthExceeded is returned by Enter once current depth would
// exceed the configured maximum.
type RecursionDepthExceeded struct {
	Location string
	Depth    int
	Max      int
}

func (e *RecursionDepthExceeded) Error() string {
	return fmt.Sprintf("recursion depth exceeded at %s: depth %d > max %d", e.Location, e.Depth, e.Max)
}

// DepthTracker is per-invocation (per-worker) recursive-descent depth
// state. It is created lazily by each parse and is not safe to share
// across goroutines — mirrors the teacher's VisitContext, which is
// instantiated per parse call rather than held in global state
// (internal/parser/parser.go's NewVisitContext/PushParent/PopParent).
type DepthTracker struct {
	current   int
	max       int
	warnAt    int
	warned    bool
	onWarn    func(depth int)
}

// NewDepthTracker creates a tracker bounded by max, warning once depth
// first reaches defaultWarnFraction of max. onWarn may be nil.
func NewDepthTracker(max int, onWarn func(depth int)) *DepthTracker {
	if max <= 0 {
		max = Defaults().MaxNodeDepth
	}
	return &DepthTracker{
		max:    max,
		warnAt: int(float64(max) * defaultWarnFraction),
		onWarn: onWarn,
	}
}

// Depth returns the current recursion depth.
func (d *DepthTracker) Depth() int { return d.current }

// Enter increments the depth counter, firing onWarn the first time the
// warn threshold is reached, and failing with *RecursionDepthExceeded once
// depth would exceed max. Every successful Enter must be paired with Exit
// on all exit paths, including error returns — callers should prefer
// EnterScoped to get that pairing for free.
func (d *DepthTracker) Enter(location string) error {
	if d.current+1 > d.max {
		return &RecursionDepthExceeded{Location: location, Depth: d.current + 1, Max: d.max}
	}
	d.current++
	if !d.warned && d.current >= d.warnAt {
		d.warned = true
		if d.onWarn != nil {
			d.onWarn(d.current)
		}
	}
	return nil
}

// Exit decrements the depth counter. It fails if called without a matching
// prior Enter (depth already at zero).
func (d *DepthTracker) Exit() error {
	if d.current == 0 {
		return fmt.Errorf("depth tracker: Exit called without a matching Enter")
	}
	d.current--
	return nil
}

// EnterScoped calls Enter and, on success, returns a release function that
// calls Exit exactly once. Callers use `defer release()` to guarantee the
// pairing on every exit path, including panics unwound by an outer recover.
func (d *DepthTracker) EnterScoped(location string) (func(), error) {
	if err := d.Enter(location); err != nil {
		return func() {}, err
	}
	released := false
	return func() {
		if released {
			return
		}
		released = true
		_ = d.Exit()
	}, nil
}
