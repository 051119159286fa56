package spark

import "fmt"

// RecomputeError wraps a failure recovered from an effect body before it is
// handed to the runtime's error hook. Computed signal failures are never
// wrapped; they propagate to the reader as-is.
type RecomputeError struct {
	Recovered any
}

func (e *RecomputeError) Error() string {
	return fmt.Sprintf("effect body failed: %v", e.Recovered)
}

func (e *RecomputeError) Unwrap() error {
	if err, ok := e.Recovered.(error); ok {
		return err
	}
	return nil
}

// CycleError reports a computed signal that read itself, directly or through
// other computed signals, during its own evaluation.
type CycleError struct {
	NodeID uint64
}

func (e *CycleError) Error() string {
	return fmt.Sprintf("computed %d depends on itself", e.NodeID)
}

// RunawayFlushError reports a flush whose effect queue never drained within
// the configured pass bound: some effect keeps writing producers that
// re-enqueue it.
type RunawayFlushError struct {
	Passes int
}

func (e *RunawayFlushError) Error() string {
	return fmt.Sprintf("flush did not settle after %d passes", e.Passes)
}

// DisposedAccessError reports a read of a computed signal whose owning scope
// has been disposed. Raised only under WithStrictDisposal; the default policy
// returns the last cached value instead.
type DisposedAccessError struct {
	NodeID uint64
}

func (e *DisposedAccessError) Error() string {
	return fmt.Sprintf("computed %d read after its scope was disposed", e.NodeID)
}
