package coroutine

import (
	"sync"

	"golang.org/x/exp/slices"

	"github.com/hvml/purc-go/internal/atom"
)

// Heap is the process-wide table of live coroutines, keyed by atom id.
// spec.md §3 models it as a red-black tree so iteration is id-ordered;
// a plain map plus a sort-on-read (mirroring the teacher's dag.DAG.IDs,
// which sorts its node-id slice rather than keeping a balanced tree)
// gives the same observable ordering without porting tree-rebalancing
// code no source in the retrieval pack actually implements.
type Heap struct {
	mu   sync.RWMutex
	byID map[atom.Atom]*Coroutine
}

// NewHeap returns an empty heap.
func NewHeap() *Heap {
	return &Heap{byID: map[atom.Atom]*Coroutine{}}
}

// Add inserts co, keyed by co.ID.
func (h *Heap) Add(co *Coroutine) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.byID[co.ID] = co
}

// Remove deletes the coroutine with the given id, if present.
func (h *Heap) Remove(id atom.Atom) {
	h.mu.Lock()
	defer h.mu.Unlock()
	delete(h.byID, id)
}

// Get returns the coroutine with the given id, if present.
func (h *Heap) Get(id atom.Atom) (*Coroutine, bool) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	co, ok := h.byID[id]
	return co, ok
}

// Ordered returns every live coroutine, sorted by id ascending — the
// iteration order dispatch_msg walks the heap in.
func (h *Heap) Ordered() []*Coroutine {
	h.mu.RLock()
	defer h.mu.RUnlock()
	cos := make([]*Coroutine, 0, len(h.byID))
	for _, co := range h.byID {
		cos = append(cos, co)
	}
	slices.SortFunc(cos, func(a, b *Coroutine) int {
		switch {
		case a.ID < b.ID:
			return -1
		case a.ID > b.ID:
			return 1
		default:
			return 0
		}
	})
	return cos
}

// Len reports the number of live coroutines.
func (h *Heap) Len() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.byID)
}
