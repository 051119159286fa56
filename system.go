package spark

import (
	"log"

	mapset "github.com/deckarep/golang-set/v2"
)

// OnErrorFunc receives failures recovered from effect bodies. Computed signal
// failures are not routed here; they propagate to the reader.
type OnErrorFunc func(err error)

// DefaultMaxFlushPasses bounds how many times a single flush may drain the
// effect queue before it is declared a runaway write→effect→write loop.
const DefaultMaxFlushPasses = 1000

// Runtime is one independent reactive system: the execution context stack,
// the scope stack, the batch counter and the effect queue all live here
// rather than in package globals, so multiple runtimes never cross-talk.
type Runtime struct {
	idCounter uint64

	// active is the execution context stack; the top entry (nil while
	// tracking is paused) receives dependency registrations for every
	// producer read.
	active []*node

	// scopes is the ownership stack, pushed in lockstep with node execution
	// and Root calls.
	scopes []*Scope
	root   *Scope

	batchDepth int

	// queue holds effects in enqueue order; queued dedupes them.
	queue    []*node
	queued   mapset.Set[*node]
	flushing bool

	maxFlushPasses int
	strictDisposal bool
	onError        OnErrorFunc
}

type Option func(*Runtime)

// WithOnError installs the hook invoked for effect failures. Without it,
// failures are logged and otherwise swallowed so one broken side effect
// cannot halt the rest of the flush.
func WithOnError(fn OnErrorFunc) Option {
	return func(rt *Runtime) { rt.onError = fn }
}

// WithMaxFlushPasses overrides DefaultMaxFlushPasses.
func WithMaxFlushPasses(n int) Option {
	return func(rt *Runtime) { rt.maxFlushPasses = n }
}

// WithStrictDisposal makes reads of disposed computed signals panic with
// *DisposedAccessError instead of returning the last cached value.
func WithStrictDisposal() Option {
	return func(rt *Runtime) { rt.strictDisposal = true }
}

func New(opts ...Option) *Runtime {
	rt := &Runtime{
		queued:         mapset.NewThreadUnsafeSet[*node](),
		maxFlushPasses: DefaultMaxFlushPasses,
	}
	rt.root = newScope(rt, nil)
	for _, opt := range opts {
		opt(rt)
	}
	return rt
}

// Dispose tears down the runtime's root scope: every owned node and every
// nested scope is disposed, registered cleanups run. Idempotent.
func (rt *Runtime) Dispose() {
	rt.root.Dispose()
}

func (rt *Runtime) nextID() uint64 {
	rt.idCounter++
	return rt.idCounter
}

func (rt *Runtime) currentConsumer() *node {
	if len(rt.active) == 0 {
		return nil
	}
	return rt.active[len(rt.active)-1]
}

func (rt *Runtime) currentScope() *Scope {
	if len(rt.scopes) == 0 {
		return rt.root
	}
	return rt.scopes[len(rt.scopes)-1]
}

// PauseTracking suppresses dependency registration until the matching
// ResumeTracking. Pairs nest.
func (rt *Runtime) PauseTracking() {
	rt.active = append(rt.active, nil)
}

func (rt *Runtime) ResumeTracking() {
	rt.active = rt.active[:len(rt.active)-1]
}

// Untrack runs fn with dependency registration suppressed: producer reads
// inside fn create no graph edges.
func (rt *Runtime) Untrack(fn func()) {
	rt.PauseTracking()
	defer rt.ResumeTracking()
	fn()
}

// UntrackValue is Untrack for functions that return a value.
func UntrackValue[T any](rt *Runtime, fn func() T) T {
	rt.PauseTracking()
	defer rt.ResumeTracking()
	return fn()
}

func (rt *Runtime) StartBatch() {
	rt.batchDepth++
}

func (rt *Runtime) EndBatch() {
	rt.batchDepth--
	if rt.batchDepth == 0 {
		rt.flush()
	}
}

// Batch defers effect execution until the outermost batch exits; writes
// inside fn mark and enqueue as usual but the queue drains only once.
func (rt *Runtime) Batch(fn func()) {
	rt.StartBatch()
	defer rt.EndBatch()
	fn()
}

// BatchValue is Batch for functions that return a value.
func BatchValue[T any](rt *Runtime, fn func() T) T {
	rt.StartBatch()
	defer rt.EndBatch()
	return fn()
}

// mark raises the state of a consumer after a producer version bump. Direct
// consumers are marked dirty; consumers further downstream of a computed
// signal only get check, because the computed may turn out to re-evaluate to
// an equal value. Effects are enqueued either way and decide at flush time.
func (rt *Runtime) mark(n *node, state nodeState) {
	if n.state == stateDisposed {
		return
	}
	if n.kind == kindEffect {
		if n.state < state {
			n.state = state
		}
		rt.enqueue(n)
		return
	}
	if n.state >= state {
		return
	}
	wasClean := n.state == stateClean
	n.state = state
	if wasClean && n.out != nil {
		for _, sub := range append([]*node(nil), n.out.subs...) {
			rt.mark(sub, stateCheck)
		}
	}
}

func (rt *Runtime) enqueue(n *node) {
	if rt.queued.Contains(n) {
		return
	}
	rt.queued.Add(n)
	rt.queue = append(rt.queue, n)
}

// flush drains the effect queue. Effects enqueued by running effects are
// folded into the same flush; an effect re-marked while running lands in the
// next pass, never re-entrantly in the current one. Exceeding the pass bound
// clears the queue and panics with *RunawayFlushError.
func (rt *Runtime) flush() {
	if rt.flushing {
		return
	}
	rt.flushing = true
	defer func() { rt.flushing = false }()

	passes := 0
	for len(rt.queue) > 0 {
		passes++
		if passes > rt.maxFlushPasses {
			rt.queue = nil
			rt.queued.Clear()
			panic(&RunawayFlushError{Passes: passes - 1})
		}
		pass := rt.queue
		rt.queue = nil
		rt.queued.Clear()
		for _, n := range pass {
			rt.runQueuedEffect(n)
		}
	}
}

// runQueuedEffect isolates one effect execution: a panic is recovered,
// reported through the runtime's error hook and the rest of the pass keeps
// running.
func (rt *Runtime) runQueuedEffect(n *node) {
	defer func() {
		if r := recover(); r != nil {
			rt.reportEffectFailure(r)
		}
	}()
	rt.notifyEffect(n)
}

// notifyEffect decides whether a queued effect really needs to re-run: a
// dirty effect always does; a checked effect first settles its producers and
// skips the run when its input fingerprint is unchanged (an upstream computed
// re-evaluated to an equal value). Effects disposed before their turn are
// skipped.
func (rt *Runtime) notifyEffect(n *node) {
	switch n.state {
	case stateDisposed, stateClean:
		return
	case stateCheck:
		if n.settled() {
			n.state = stateClean
			return
		}
		n.state = stateDirty
	}
	rt.runEffect(n)
}

func (rt *Runtime) reportEffectFailure(recovered any) {
	err := &RecomputeError{Recovered: recovered}
	if rt.onError != nil {
		rt.onError(err)
		return
	}
	log.Printf("spark: %v", err)
}
