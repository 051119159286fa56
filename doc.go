// Package spark is a fine-grained reactive dependency graph and scheduler:
// writeable signals, lazily memoized computed signals, eager effects with
// cleanup, batching, and an ownership tree for deterministic disposal.
//
// Everything hangs off an explicit Runtime, so isolated systems can coexist
// in one process:
//
//	rt := spark.New()
//	count := spark.Signal(rt, 1)
//	double := spark.Computed(rt, func() int { return count.Value() * 2 })
//	spark.Effect(rt, func() spark.CleanupFunc {
//		log.Println(double.Value())
//		return nil
//	})
//	count.SetValue(5) // logs 10, exactly once
//
// Propagation is glitch-free: writes push cheap invalidation marks through
// the graph, recomputation is pulled lazily in dependency order, and a
// computed signal that re-evaluates to an equal value keeps the graph quiet
// downstream.
package spark
