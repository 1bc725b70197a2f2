package export

import "iter"

// Grouping accumulates values per annotator, preserving both the order in
// which annotators first appear and the order of each annotator's values.
// Plain map iteration cannot provide the deterministic walk the record
// stream requires.
type Grouping[T any] struct {
	users  []string
	values map[string][]T
}

// NewGrouping creates an empty Grouping.
func NewGrouping[T any]() *Grouping[T] {
	return &Grouping[T]{
		values: make(map[string][]T),
	}
}

// Add appends v to user's sequence, registering the user on first use.
func (g *Grouping[T]) Add(user string, v T) {
	if _, ok := g.values[user]; !ok {
		g.users = append(g.users, user)
	}
	g.values[user] = append(g.values[user], v)
}

// Len returns the number of annotators present.
func (g *Grouping[T]) Len() int {
	return len(g.users)
}

// Get returns user's sequence, or nil when the user is absent.
func (g *Grouping[T]) Get(user string) []T {
	return g.values[user]
}

// All iterates annotators in first-appearance order with their sequences.
func (g *Grouping[T]) All() iter.Seq2[string, []T] {
	return func(yield func(string, []T) bool) {
		for _, u := range g.users {
			if !yield(u, g.values[u]) {
				return
			}
		}
	}
}

// ReduceAll collapses g into a single "all" pseudo-annotator whose sequence
// concatenates every annotator's values in first-appearance order. Annotator
// identity is discarded and cannot be recovered. The result always contains
// exactly the "all" key, even when g is empty.
func ReduceAll[T any](g *Grouping[T]) *Grouping[T] {
	merged := make([]T, 0)
	for _, u := range g.users {
		merged = append(merged, g.values[u]...)
	}

	return &Grouping[T]{
		users:  []string{UserAll},
		values: map[string][]T{UserAll: merged},
	}
}
