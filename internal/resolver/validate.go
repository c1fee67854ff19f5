package resolver

import (
	"errors"

	"github.com/vk/samerge/internal/dag"
	"github.com/vk/samerge/internal/profile"
)

// buildGraph returns the dependency graph of the process in discovery order.
func buildGraph(abilities []*profile.SystemAbility) *dag.Graph {
	g := dag.New()
	for _, sa := range abilities {
		g.AddNode(sa.Name, sa.Depends...)
	}
	return g
}

// validate walks every local dependency edge once. Each edge is checked for a
// boot priority inversion, then for an eager ability depending on a lazy
// one, and finally for closing a cycle.
func (r *Resolver) validate(file string, g *dag.Graph, abilities []*profile.SystemAbility) error {
	byName := make(map[string]*profile.SystemAbility, len(abilities))
	for _, sa := range abilities {
		byName[sa.Name] = sa
	}

	err := g.DetectCycles(func(from, to string) error {
		src, dst := byName[from], byName[to]
		if r.policy.Priority(src.Phase) > r.policy.Priority(dst.Phase) {
			return profile.Errorf(profile.ErrPriorityInversion, file,
				"%s (%s) depends on %s (%s) which starts in a later phase", src.Name, src.Phase, dst.Name, dst.Phase)
		}
		if src.RunOnCreate && !dst.RunOnCreate {
			return profile.Errorf(profile.ErrCreationOrder, file,
				"%s is run-on-create but depends on %s which is created on demand", src.Name, dst.Name)
		}
		return nil
	})

	var cycle *dag.CycleError
	if errors.As(err, &cycle) {
		return profile.CycleError(file, cycle.Path)
	}
	return err
}
