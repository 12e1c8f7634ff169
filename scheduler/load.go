package scheduler

import "github.com/hvml/purc-go/run/dag"

// LoadDAG runs load once per node of a document dependency DAG built from
// `<load>`/`<include>` edges, honoring that a document only loads once
// every document it depends on already has (spec.md §4.H document load
// ordering). parallel selects Parallel[V] — independent branches load
// concurrently — over Sequential[V]'s strict one-at-a-time topological
// order.
func LoadDAG[V any](d *dag.DAG[V], load func(V) error, parallel bool) error {
	var s S[V]
	if parallel {
		s = NewParallel(d, false)
	} else {
		s = NewSequential(d, false)
	}
	return s.Run(load)
}
