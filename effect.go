package spark

// CleanupFunc is an optional cleanup returned by an effect body. It runs
// immediately before the body re-runs and once more on disposal.
type CleanupFunc func()

// EffectFunc is an effect body. Return nil when there is nothing to clean up.
type EffectFunc func() CleanupFunc

type effectState struct {
	fn      EffectFunc
	cleanup CleanupFunc
}

// Effect registers an eager side-effecting computation. The body runs once
// immediately, rebuilding its dependency set on every execution, and re-runs
// whenever a dependency's version changes and the queue is flushed.
//
// The returned dispose severs the effect from all producers and runs its
// pending cleanup; it is also called automatically when the owning scope is
// disposed. Panics out of the body are recovered and routed to the runtime's
// error hook, on the first run included.
func Effect(rt *Runtime, fn EffectFunc) (dispose func()) {
	n := rt.newNode(kindEffect)
	n.effect = &effectState{fn: fn}
	rt.currentScope().adopt(n)

	func() {
		defer func() {
			if r := recover(); r != nil {
				rt.reportEffectFailure(r)
			}
		}()
		rt.runEffect(n)
	}()

	return func() { rt.disposeNode(n) }
}

// runEffect executes an effect body: previous cleanup first, then the body
// under tracking. Writes performed by the body may re-mark this very node;
// it is then queued for the next flush pass rather than re-entered.
func (rt *Runtime) runEffect(n *node) {
	if n.state == stateDisposed {
		return
	}
	es := n.effect
	if es.cleanup != nil {
		cleanup := es.cleanup
		es.cleanup = nil
		rt.PauseTracking()
		cleanup()
		rt.ResumeTracking()
	}

	snap := rt.beginRun(n)
	n.state = stateClean
	defer func() {
		rt.endRun(n)
		if r := recover(); r != nil {
			rt.abortRun(n, snap)
			panic(r)
		}
	}()
	es.cleanup = es.fn()
}

// Watch observes a derived value and invokes cb whenever it changes. prev is
// nil on the first call. The callback itself is untracked, so reads inside
// it never become dependencies.
func Watch[T any](rt *Runtime, source func() T, cb func(next T, prev *T)) (dispose func()) {
	var prev *T
	return Effect(rt, func() CleanupFunc {
		next := source()
		if prev != nil && defaultEquals(*prev, next) {
			return nil
		}
		old := prev
		kept := next
		prev = &kept
		rt.Untrack(func() { cb(next, old) })
		return nil
	})
}
