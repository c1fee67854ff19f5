package dag

import (
	"slices"
	"strings"
)

// Graph maps each ability name to its ordered dependency list. It is not safe
// for concurrent mutation.
type Graph struct {
	// order holds node names in discovery order. After Union it may hold the
	// same name more than once.
	order []string
	// deps holds the dependency list of every node, in declaration order.
	deps map[string][]string
}

// EdgeFunc is called for each edge from -> to advanced by the walk.
type EdgeFunc func(from, to string) error

// CycleError reports the dependency chain that closes a cycle.
type CycleError struct {
	Path []string
}

func (e *CycleError) Error() string {
	return "cycle detected: " + strings.Join(e.Path, "->")
}

// Nodes returns node names in discovery order.
func (g *Graph) Nodes() []string {
	return slices.Clone(g.order)
}
