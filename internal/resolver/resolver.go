package resolver

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/beevik/etree"
	"github.com/vk/samerge/internal/ctxlog"
	"github.com/vk/samerge/internal/dag"
	"github.com/vk/samerge/internal/profile"
)

// Result is the outcome of resolving one process.
type Result struct {
	// Output is the path of the written profile.
	Output string
	// Order lists ability names in their final startup order.
	Order []string
	// Graph holds every ability of the process with its full dependency
	// list, cross-process edges included.
	Graph     *dag.Graph
	Abilities []*profile.SystemAbility
}

// Resolver validates merged process documents against a boot-phase Policy.
type Resolver struct {
	policy profile.Policy
}

// New returns a Resolver for the given policy.
func New(policy profile.Policy) *Resolver {
	return &Resolver{policy: policy}
}

// Resolve validates the merged document at file and writes the reordered
// profile into outDir under the same base name.
func (r *Resolver) Resolve(ctx context.Context, file, outDir string) (*Result, error) {
	logger := ctxlog.FromContext(ctx)

	data, err := os.ReadFile(file)
	if err != nil {
		return nil, fmt.Errorf("failed to read merged profile: %w", err)
	}

	res, content, err := r.resolve(file, data)
	if err != nil {
		return nil, err
	}

	res.Output = filepath.Join(outDir, filepath.Base(file))
	if err := os.WriteFile(res.Output, []byte(content), 0o644); err != nil {
		return nil, fmt.Errorf("failed to write resolved profile: %w", err)
	}

	logger.Info("Process profile resolved.",
		"process", strings.TrimSuffix(filepath.Base(file), filepath.Ext(file)),
		"order", res.Order,
		"output", res.Output)
	return res, nil
}

// resolve runs both passes over data and returns the result with the
// reordered document text. file is only used in error reports.
func (r *Resolver) resolve(file string, data []byte) (*Result, string, error) {
	doc := etree.NewDocument()
	if err := doc.ReadFromBytes(data); err != nil {
		return nil, "", &profile.Error{Kind: profile.ErrMalformedProfile, File: file, Msg: "cannot parse xml", Err: err}
	}
	root := doc.Root()
	if root == nil {
		return nil, "", profile.Malformedf(file, "document has no root element")
	}
	elems := root.SelectElements("systemability")

	idx := scanLines(string(data))
	if idx.count != len(elems) {
		return nil, "", profile.Malformedf(file,
			"found %d <systemability> elements but %d line spans: SA tags and children must each start on their own line",
			len(elems), idx.count)
	}

	abilities, err := r.extract(file, elems, idx)
	if err != nil {
		return nil, "", err
	}

	g := buildGraph(abilities)
	if err := r.validate(file, g, abilities); err != nil {
		return nil, "", err
	}

	order := r.order(abilities)
	return &Result{Order: order, Graph: g, Abilities: abilities}, splice(idx, order), nil
}
