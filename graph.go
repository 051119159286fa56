package spark

import (
	"encoding/binary"

	"github.com/cespare/xxhash/v2"
	mapset "github.com/deckarep/golang-set/v2"
)

type nodeKind uint8

const (
	kindComputed nodeKind = iota + 1
	kindEffect
)

// nodeState ordering matters: mark only ever raises a node's state, and
// stateDisposed is terminal.
type nodeState uint8

const (
	stateClean nodeState = iota
	// stateCheck means a transitive producer bumped its version; whether this
	// node really needs to re-run is decided by settling its dependencies and
	// comparing version fingerprints.
	stateCheck
	// stateDirty means a direct producer changed, re-run is unavoidable.
	stateDirty
	stateDisposed
)

// producer is the read side of the dependency graph: writeable signals and
// computed signals both act as producers for downstream consumers.
type producer interface {
	producerID() uint64
	// producerVersion increments iff the produced value actually changed
	// under the producer's equality predicate.
	producerVersion() uint64
	attach(n *node)
	detach(n *node)
	// settle brings a lazy producer up to date; plain signals are always
	// settled, computed signals pull themselves here.
	settle()
}

// node is the consumer side: the tagged per-kind state shared by computed
// signals and effects. Producers hold *node handles, nodes hold producer
// handles; disposal severs both directions.
type node struct {
	id    uint64
	kind  nodeKind
	state nodeState
	rt    *Runtime

	// running marks a node currently evaluating, used for cycle detection.
	running bool

	// deps is the ordered set of producers read during the most recent
	// execution; depIDs dedupes repeated reads of the same producer within
	// one run. Both are rebuilt from scratch every execution.
	deps   []producer
	depIDs mapset.Set[uint64]
	// fingerprint is the xxhash digest of (producer id, version) pairs
	// observed at the end of the last execution.
	fingerprint uint64

	// out is the producer half of a computed node, nil for effects.
	out *sourceBase

	// effect holds effect-only state, nil for computed nodes.
	effect *effectState

	// scope owns everything created while this node's body runs; it is
	// emptied before every re-run and on disposal.
	scope *Scope
}

// sourceBase is the subscriber bookkeeping shared by writeable and computed
// signals. Subscribers are kept in subscription order so notifications stay
// deterministic.
type sourceBase struct {
	id   uint64
	subs []*node
}

func (s *sourceBase) producerID() uint64 { return s.id }

func (s *sourceBase) attach(n *node) {
	s.subs = append(s.subs, n)
}

func (s *sourceBase) detach(n *node) {
	for i, sub := range s.subs {
		if sub == n {
			s.subs = append(s.subs[:i], s.subs[i+1:]...)
			return
		}
	}
}

func (rt *Runtime) newNode(kind nodeKind) *node {
	n := &node{
		id:     rt.nextID(),
		kind:   kind,
		state:  stateDirty,
		rt:     rt,
		depIDs: mapset.NewThreadUnsafeSet[uint64](),
	}
	n.scope = newScope(rt, rt.currentScope())
	return n
}

// track registers p as a dependency of the currently running node, if any.
func (rt *Runtime) track(p producer) {
	n := rt.currentConsumer()
	if n == nil {
		return
	}
	if n.depIDs.Contains(p.producerID()) {
		return
	}
	n.depIDs.Add(p.producerID())
	n.deps = append(n.deps, p)
	p.attach(n)
}

// depSnapshot preserves a node's dependency edges across a run so a failed
// execution can be rolled back without committing a half-built graph.
type depSnapshot struct {
	deps []producer
	ids  mapset.Set[uint64]
	fp   uint64
}

// beginRun prepares n for (re-)execution: everything the previous run created
// is disposed, the previous dependency edges are unsubscribed (their identity
// retained in the returned snapshot), and n becomes the tracking target.
func (rt *Runtime) beginRun(n *node) depSnapshot {
	rt.PauseTracking()
	n.scope.disposeContents()
	rt.ResumeTracking()

	snap := depSnapshot{deps: n.deps, ids: n.depIDs, fp: n.fingerprint}
	for _, dep := range n.deps {
		dep.detach(n)
	}
	n.deps = nil
	n.depIDs = mapset.NewThreadUnsafeSet[uint64]()

	n.running = true
	rt.active = append(rt.active, n)
	rt.scopes = append(rt.scopes, n.scope)
	return snap
}

func (rt *Runtime) endRun(n *node) {
	rt.scopes = rt.scopes[:len(rt.scopes)-1]
	rt.active = rt.active[:len(rt.active)-1]
	n.running = false
	n.fingerprint = n.currentFingerprint()
}

// abortRun undoes a failed execution: dependencies read by the broken body
// are unsubscribed and the pre-run edges are restored.
func (rt *Runtime) abortRun(n *node, snap depSnapshot) {
	for _, dep := range n.deps {
		dep.detach(n)
	}
	for _, dep := range snap.deps {
		dep.attach(n)
	}
	n.deps = snap.deps
	n.depIDs = snap.ids
	n.fingerprint = snap.fp
}

// currentFingerprint digests the (id, version) pairs of n's dependencies.
// Comparing it against the stored fingerprint answers "did anything I read
// last time actually change?" without re-running the body.
func (n *node) currentFingerprint() uint64 {
	d := xxhash.New()
	var buf [16]byte
	for _, dep := range n.deps {
		binary.LittleEndian.PutUint64(buf[:8], dep.producerID())
		binary.LittleEndian.PutUint64(buf[8:], dep.producerVersion())
		d.Write(buf[:])
	}
	return d.Sum64()
}

// settled pulls every dependency up to date, then reports whether the node's
// inputs are unchanged since its last run.
func (n *node) settled() bool {
	for _, dep := range n.deps {
		dep.settle()
	}
	return n.currentFingerprint() == n.fingerprint
}
