package dag

import "slices"

// New creates and returns an initialized, empty Graph.
func New() *Graph {
	return &Graph{
		deps: make(map[string][]string),
	}
}

// AddNode registers id with its dependency list. Re-adding an existing id
// replaces its dependencies but keeps its original discovery position.
func (g *Graph) AddNode(id string, deps ...string) {
	if _, ok := g.deps[id]; !ok {
		g.order = append(g.order, id)
	}
	g.deps[id] = slices.Clone(deps)
}

// Has reports whether id is a node of the graph.
func (g *Graph) Has(id string) bool {
	_, ok := g.deps[id]
	return ok
}

// Dependencies returns the dependency list declared for id, including
// entries that do not resolve to a node of this graph.
func (g *Graph) Dependencies(id string) []string {
	return slices.Clone(g.deps[id])
}

// Len returns the number of distinct nodes.
func (g *Graph) Len() int {
	return len(g.deps)
}

// Union folds other into g. Discovery orders are concatenated as-is and a
// node present in both graphs takes the dependency list from other.
func (g *Graph) Union(other *Graph) {
	g.order = append(g.order, other.order...)
	for id, deps := range other.deps {
		g.deps[id] = slices.Clone(deps)
	}
}

// DetectCycles walks every node in discovery order and returns a *CycleError
// for the first cycle found. If visit is non-nil it runs once per advanced
// edge before the cycle test, and its error aborts the walk.
func (g *Graph) DetectCycles(visit EdgeFunc) error {
	// advanced counts, per node, how many of its edges the walk has taken.
	advanced := make(map[string]int, len(g.deps))

	for _, start := range g.order {
		path := []string{start}
		for len(path) > 0 {
			tail := path[len(path)-1]
			deps := g.deps[tail]
			next := advanced[tail]
			if next >= len(deps) {
				path = path[:len(path)-1]
				continue
			}
			advanced[tail] = next + 1

			dep := deps[next]
			if !g.Has(dep) {
				continue
			}
			if visit != nil {
				if err := visit(tail, dep); err != nil {
					return err
				}
			}
			if slices.Contains(path, dep) {
				cycle := append(slices.Clone(path), dep)
				return &CycleError{Path: cycle}
			}
			path = append(path, dep)
		}
	}
	return nil
}
