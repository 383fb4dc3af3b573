package video

import "fmt"

// CompositionState tracks a render job through its phases. Transitions
// only advance; a failure records which phase broke.
type CompositionState string

const (
	StateValidating  CompositionState = "validating"
	StateAssetsReady CompositionState = "assets_ready"
	StateEncoding    CompositionState = "encoding"
	StateDone        CompositionState = "done"
	StateFailed      CompositionState = "failed"
)

var stateOrder = map[CompositionState]int{
	StateValidating:  0,
	StateAssetsReady: 1,
	StateEncoding:    2,
	StateDone:        3,
}

// Composition carries the mutable state of one render job.
type Composition struct {
	State       CompositionState
	FailedPhase CompositionState
}

// NewComposition starts a job in the validating phase.
func NewComposition() *Composition {
	return &Composition{State: StateValidating}
}

// Advance moves the job to the next phase. Skipping phases or moving
// backwards is a programming error and is reported as one.
func (c *Composition) Advance(next CompositionState) error {
	if c.State == StateFailed {
		return fmt.Errorf("composition already failed in phase %s", c.FailedPhase)
	}
	cur, ok := stateOrder[c.State]
	if !ok {
		return fmt.Errorf("composition in unknown state %q", c.State)
	}
	n, ok := stateOrder[next]
	if !ok {
		return fmt.Errorf("unknown composition state %q", next)
	}
	if n != cur+1 {
		return fmt.Errorf("invalid transition %s -> %s", c.State, next)
	}
	c.State = next
	return nil
}

// Fail marks the job failed, remembering the phase that broke.
func (c *Composition) Fail() {
	if c.State == StateFailed || c.State == StateDone {
		return
	}
	c.FailedPhase = c.State
	c.State = StateFailed
}
