package scheduler_test

import (
	"sync"
	"testing"

	"github.com/hvml/purc-go/scheduler"
)

func TestLoadDAGSequentialRespectsDependencies(t *testing.T) {
	var order []string
	err := scheduler.LoadDAG(makeLoadDAG(), func(uri string) error {
		order = append(order, uri)
		return nil
	}, false)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	pos := map[string]int{}
	for i, uri := range order {
		pos[uri] = i
	}
	for _, dep := range []string{"a", "b", "c"} {
		if pos[dep] > pos["z"] {
			t.Fatalf("expected %q to load before z, got order %v", dep, order)
		}
	}
	if pos["a"] > pos["a/1"] || pos["a/1"] > pos["a/2"] || pos["a/2"] > pos["a/3"] {
		t.Fatalf("expected a < a/1 < a/2 < a/3, got order %v", order)
	}
}

func TestLoadDAGParallelRespectsDependencies(t *testing.T) {
	var mu sync.Mutex
	loaded := map[string]bool{}

	err := scheduler.LoadDAG(makeLoadDAG(), func(uri string) error {
		mu.Lock()
		defer mu.Unlock()
		for _, dep := range []string{"a", "b", "c"} {
			if uri == "z" && !loaded[dep] {
				t.Fatalf("z loaded before dependency %s", dep)
			}
		}
		loaded[uri] = true
		return nil
	}, true)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}
