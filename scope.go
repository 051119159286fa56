package spark

// Scope is one node of the ownership tree. Every computed signal and effect
// belongs to exactly one scope; disposing the scope disposes them, its child
// scopes first, and runs registered cleanups in reverse registration order.
type Scope struct {
	rt       *Runtime
	parent   *Scope
	children []*Scope
	owned    []*node
	cleanups []func()
	values   map[uint64]any
	disposed bool
}

func newScope(rt *Runtime, parent *Scope) *Scope {
	return &Scope{rt: rt, parent: parent}
}

func (s *Scope) adopt(n *node) {
	s.owned = append(s.owned, n)
}

// Root establishes a fresh ownership scope, runs fn untracked with a dispose
// callback bound to it, and returns fn's result. The scope is registered as
// a child of the current scope so disposing an ancestor cascades into it.
func Root[T any](rt *Runtime, fn func(dispose func()) T) T {
	parent := rt.currentScope()
	s := newScope(rt, parent)
	parent.children = append(parent.children, s)

	rt.scopes = append(rt.scopes, s)
	rt.PauseTracking()
	defer func() {
		rt.ResumeTracking()
		rt.scopes = rt.scopes[:len(rt.scopes)-1]
	}()
	return fn(s.Dispose)
}

// OnCleanup registers fn against the nearest owning scope: the scope of the
// currently running computation, or the runtime's root scope outside of one.
func (rt *Runtime) OnCleanup(fn func()) {
	rt.currentScope().cleanups = append(rt.currentScope().cleanups, fn)
}

// Dispose tears the scope down. Calling it a second time is a no-op.
func (s *Scope) Dispose() {
	if s.disposed {
		return
	}
	s.disposed = true
	s.disposeContents()
	if s.parent != nil {
		for i, c := range s.parent.children {
			if c == s {
				s.parent.children = append(s.parent.children[:i], s.parent.children[i+1:]...)
				break
			}
		}
	}
}

// disposeContents empties the scope without retiring it: child scopes go
// depth-first, then this scope's cleanups in reverse order, then owned nodes
// are severed from every producer. Re-running computations reuse their scope
// through this.
func (s *Scope) disposeContents() {
	children := s.children
	s.children = nil
	for _, c := range children {
		c.Dispose()
	}

	cleanups := s.cleanups
	s.cleanups = nil
	for i := len(cleanups) - 1; i >= 0; i-- {
		cleanups[i]()
	}

	owned := s.owned
	s.owned = nil
	for _, n := range owned {
		s.rt.disposeNode(n)
	}

	s.values = nil
}

// disposeNode retires a computed/effect node: final effect cleanup, nested
// scope teardown, then unsubscription from every producer so the node can
// never be re-triggered and holds no graph references.
func (rt *Runtime) disposeNode(n *node) {
	if n.state == stateDisposed {
		return
	}
	n.state = stateDisposed

	if n.effect != nil && n.effect.cleanup != nil {
		cleanup := n.effect.cleanup
		n.effect.cleanup = nil
		rt.PauseTracking()
		cleanup()
		rt.ResumeTracking()
	}

	n.scope.disposeContents()

	for _, dep := range n.deps {
		dep.detach(n)
	}
	n.deps = nil
	n.depIDs.Clear()
}

// Context carries a scope-scoped value with a default. Reads resolve through
// the ownership tree, so a value provided in an ancestor scope is visible to
// every computation nested beneath it.
type Context[T any] struct {
	rt  *Runtime
	id  uint64
	def T
}

func NewContext[T any](rt *Runtime, defaultValue T) *Context[T] {
	return &Context[T]{rt: rt, id: rt.nextID(), def: defaultValue}
}

// Provide binds value to the current scope. The binding disappears when the
// scope is disposed or its owner re-runs.
func (c *Context[T]) Provide(value T) {
	s := c.rt.currentScope()
	if s.values == nil {
		s.values = map[uint64]any{}
	}
	s.values[c.id] = value
}

// Use returns the nearest provided value, or the context's default.
func (c *Context[T]) Use() T {
	for s := c.rt.currentScope(); s != nil; s = s.parent {
		if v, ok := s.values[c.id]; ok {
			return v.(T)
		}
	}
	return c.def
}
