// Package crosscheck joins the dependency graphs of every process and looks
// for cycles that only close across process boundaries.
package crosscheck

import (
	"context"
	"errors"

	"github.com/vk/samerge/internal/ctxlog"
	"github.com/vk/samerge/internal/dag"
	"github.com/vk/samerge/internal/fsutil"
	"github.com/vk/samerge/internal/profile"
)

// Validator accumulates per-process graphs for one merge run.
type Validator struct {
	graph     *dag.Graph
	processes int
}

// New returns an empty Validator.
func New() *Validator {
	return &Validator{graph: dag.New()}
}

// Add joins one process graph into the global graph.
func (v *Validator) Add(g *dag.Graph) {
	v.graph.Union(g)
	v.processes++
}

// Validate runs the cycle walk over the joined graph. Boot phase and
// run-on-create rules are not rechecked here. On a cycle every path in
// artifacts is deleted before the error is returned.
func (v *Validator) Validate(ctx context.Context, artifacts []string) error {
	logger := ctxlog.FromContext(ctx)

	err := v.graph.DetectCycles(nil)
	if err == nil {
		logger.Debug("Cross-process dependency check passed.", "processes", v.processes, "abilities", v.graph.Len())
		return nil
	}

	var cycle *dag.CycleError
	if !errors.As(err, &cycle) {
		return err
	}
	crossErr := profile.CrossProcessError(profile.CycleError("", cycle.Path))

	logger.Error("Cross-process dependency cycle, discarding output.", "cycle", profile.FormatPath(cycle.Path), "artifacts", len(artifacts))
	if rmErr := fsutil.RemoveFiles(artifacts); rmErr != nil {
		return errors.Join(crossErr, rmErr)
	}
	return crossErr
}
