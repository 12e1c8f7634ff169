package dag_test

import (
	"testing"

	"github.com/hvml/purc-go/errors"
	"github.com/hvml/purc-go/run/dag"

	"github.com/rs/zerolog"
)

type node struct {
	ancestors   []dag.ID
	descendants []dag.ID
}
type testcase struct {
	name   string
	nodes  map[string]node
	err    errors.Kind
	reason string
	order  []dag.ID
}

func cycleTests() []testcase {
	return []testcase{
		{
			name: "cycle: A after A",
			nodes: map[string]node{
				"A": {
					ancestors: []dag.ID{"A"},
				},
			},
			err:    dag.ErrCycleDetected,
			reason: "A -> A",
		},
		{
			name: "cycle: A after B, B after A",
			nodes: map[string]node{
				"A": {
					ancestors: []dag.ID{"B"},
				},
				"B": {
					ancestors: []dag.ID{"A"},
				},
			},
			err:    dag.ErrCycleDetected,
			reason: "A -> B -> A",
		},
		{
			name: "cycle: A after B, B after C, C after A",
			nodes: map[string]node{
				"A": {
					ancestors: []dag.ID{"B"},
				},
				"B": {
					ancestors: []dag.ID{"C"},
				},
				"C": {
					ancestors: []dag.ID{"A"},
				},
			},
			err:    dag.ErrCycleDetected,
			reason: "A -> B -> C -> A",
		},
	}
}

func dagTests() []testcase {
	return []testcase{
		{
			name: "empty dag",
		},
		{
			name: "simple dag",
			nodes: map[string]node{
				"A": {
					ancestors: []dag.ID{"B"},
				},
				"B": {},
			},
			order: []dag.ID{"B", "A"},
		},
		{
			name: "A -> (B, E), B -> (C, D), D -> E",
			nodes: map[string]node{
				"A": {
					ancestors: []dag.ID{"B", "E"},
				},
				"B": {
					ancestors: []dag.ID{"C", "D"},
				},
				"D": {
					ancestors: []dag.ID{"E"},
				},
				"E": {},
			},
			order: []dag.ID{"C", "E", "D", "B", "A"},
		},
		{
			name: "simple before: A before B",
			nodes: map[string]node{
				"B": {},
				"A": {
					descendants: []dag.ID{"B"},
				},
			},
			order: []dag.ID{"A", "B"},
		},
		{
			name: "A before B, B before D and after C",
			nodes: map[string]node{
				"A": {
					descendants: []dag.ID{"B"},
				},
				"B": {
					descendants: []dag.ID{"D"},
					ancestors:   []dag.ID{"C"},
				},
				"C": {},
				"D": {},
			},
			order: []dag.ID{"A", "C", "B", "D"},
		},
	}
}

func TestValidatedDAG(t *testing.T) {
	var testcases []testcase
	testcases = append(testcases, cycleTests()...)
	testcases = append(testcases, dagTests()...)

	for _, tc := range testcases {
		t.Run(tc.name, func(t *testing.T) {
			d := dag.New[string]()

			for id, v := range tc.nodes {
				if err := d.AddNode(dag.ID(id), id, v.descendants, v.ancestors); err != nil {
					t.Fatalf("unexpected AddNode error: %v", err)
				}
			}

			reason, err := d.Validate()
			if tc.err != "" {
				if err == nil {
					t.Fatalf("expected error kind %q, got nil", tc.err)
				}
				var e *errors.Error
				if !errors.As(err, &e) || e.Kind != tc.err {
					t.Fatalf("got error %v, want kind %q", err, tc.err)
				}
				if reason != tc.reason {
					t.Fatalf("got reason %q, want %q", reason, tc.reason)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			assertOrder(t, tc.order, d.Order())
		})
	}
}

func assertOrder(t *testing.T, want, got []dag.ID) {
	t.Helper()
	if len(want) != len(got) {
		t.Fatalf("length mismatch: want %v, got %v", want, got)
	}
	for i, w := range want {
		if w != got[i] {
			t.Fatalf("id %d mismatch: want %q, got %q", i, w, got[i])
		}
	}
}

func init() {
	zerolog.SetGlobalLevel(zerolog.Disabled)
}
