package spark

// ReadonlySignal is a lazily recomputed, memoized value derived from other
// signals. It is a consumer of its dependencies and a producer for anything
// that reads it.
//
// Invalidation is push-then-pull: a producer version bump only marks the
// node; the body re-runs the next time someone actually reads it. If the
// fresh result is equal to the cached one the node's own version does not
// bump, so downstream consumers stay quiet.
type ReadonlySignal[T any] struct {
	sourceBase

	rt      *Runtime
	n       *node
	fn      func() T
	value   T
	version uint64
	equals  func(a, b T) bool
	// inited distinguishes the first evaluation, where the cached zero value
	// must not be fed to a custom equality predicate.
	inited bool
}

// Computed creates a derived signal. The body does not run here; the first
// read triggers the first evaluation.
func Computed[T any](rt *Runtime, fn func() T) *ReadonlySignal[T] {
	c := &ReadonlySignal[T]{
		sourceBase: sourceBase{id: rt.nextID()},
		rt:         rt,
		fn:         fn,
	}
	n := rt.newNode(kindComputed)
	n.out = &c.sourceBase
	c.n = n
	rt.currentScope().adopt(n)
	return c
}

// WithEquals replaces the equality predicate used to decide whether a
// recomputation produced a new value.
func (c *ReadonlySignal[T]) WithEquals(fn func(a, b T) bool) *ReadonlySignal[T] {
	c.equals = fn
	return c
}

// Value settles the signal and returns its cached value, registering it as a
// dependency of the running computation. Reading a disposed computed returns
// the last cached value, or panics with *DisposedAccessError under
// WithStrictDisposal.
func (c *ReadonlySignal[T]) Value() T {
	if c.n.state == stateDisposed {
		if c.rt.strictDisposal {
			panic(&DisposedAccessError{NodeID: c.n.id})
		}
		return c.value
	}
	c.settle()
	c.rt.track(c)
	return c.value
}

// Peek settles the signal and returns its value without registering a
// dependency.
func (c *ReadonlySignal[T]) Peek() T {
	if c.n.state == stateDisposed {
		if c.rt.strictDisposal {
			panic(&DisposedAccessError{NodeID: c.n.id})
		}
		return c.value
	}
	c.settle()
	return c.value
}

// settle is the pull half of invalidation. A checked node first settles its
// own producers; if its input fingerprint is unchanged the cached value is
// still valid and the body never runs.
func (c *ReadonlySignal[T]) settle() {
	n := c.n
	if n.running {
		panic(&CycleError{NodeID: n.id})
	}
	if n.state == stateCheck {
		if n.settled() {
			n.state = stateClean
		} else {
			n.state = stateDirty
		}
	}
	if n.state == stateDirty {
		c.recompute()
	}
}

// recompute re-runs the body under tracking. A panic rolls the node back to
// its pre-run value, state and dependency edges, then propagates to the
// reader.
func (c *ReadonlySignal[T]) recompute() {
	n := c.n
	prevState := n.state
	snap := c.rt.beginRun(n)

	var next T
	func() {
		defer func() {
			c.rt.endRun(n)
			if r := recover(); r != nil {
				c.rt.abortRun(n, snap)
				n.state = prevState
				panic(r)
			}
		}()
		next = c.fn()
	}()

	n.state = stateClean
	if !c.inited {
		c.inited = true
		c.value = next
		return
	}
	if !c.eq(c.value, next) {
		c.value = next
		c.version++
	}
}

func (c *ReadonlySignal[T]) eq(a, b T) bool {
	if c.equals != nil {
		return c.equals(a, b)
	}
	return defaultEquals(a, b)
}

func (c *ReadonlySignal[T]) producerVersion() uint64 { return c.version }
