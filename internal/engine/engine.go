package engine

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/vk/samerge/internal/classifier"
	"github.com/vk/samerge/internal/crosscheck"
	"github.com/vk/samerge/internal/ctxlog"
	"github.com/vk/samerge/internal/fsutil"
	"github.com/vk/samerge/internal/merger"
	"github.com/vk/samerge/internal/profile"
	"github.com/vk/samerge/internal/resolver"
)

// Options configures an Engine.
type Options struct {
	// Target64Bit selects the library path rule for the target image.
	Target64Bit bool
	// Policy is the boot-phase table; nil selects DefaultPolicy.
	Policy *profile.Policy
	// ScratchDir is the parent of the per-run scratch directory. Empty
	// means os.TempDir().
	ScratchDir string
}

// Engine merges fragment files into per-process profiles.
type Engine struct {
	classifier *classifier.Classifier
	resolver   *resolver.Resolver
	scratchDir string
}

// New returns an Engine configured by opts.
func New(opts Options) *Engine {
	policy := profile.DefaultPolicy()
	if opts.Policy != nil {
		policy = *opts.Policy
	}
	return &Engine{
		classifier: classifier.New(opts.Target64Bit),
		resolver:   resolver.New(policy),
		scratchDir: opts.ScratchDir,
	}
}

// Merge processes fragments in order and writes the results into outDir. It
// returns the produced artifacts: pass-through copies in input order followed
// by one resolved profile per process, in order of first appearance.
func (e *Engine) Merge(ctx context.Context, fragments []string, outDir string) ([]string, error) {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("Merge run started.", "fragments", len(fragments), "output_dir", outDir)

	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create output directory: %w", err)
	}

	scratch, err := os.MkdirTemp(e.scratchDir, "samerge-*")
	if err != nil {
		return nil, fmt.Errorf("failed to create scratch directory: %w", err)
	}
	defer func() {
		if err := os.RemoveAll(scratch); err != nil {
			logger.Warn("Failed to remove scratch directory.", "path", scratch, "error", err)
		}
	}()

	var artifacts []string
	m := merger.New()
	for _, file := range fragments {
		frag, err := e.classifier.Classify(ctx, file)
		if err != nil {
			return nil, err
		}
		switch f := frag.(type) {
		case *classifier.PassThrough:
			dst := filepath.Join(outDir, filepath.Base(f.Path))
			if err := fsutil.CopyFile(f.Path, dst); err != nil {
				return nil, fmt.Errorf("failed to copy %s: %w", f.Path, err)
			}
			artifacts = append(artifacts, dst)
		case *classifier.Mergeable:
			m.Add(f)
		}
	}

	merged, err := m.WriteScratch(ctx, scratch)
	if err != nil {
		return nil, err
	}

	validator := crosscheck.New()
	for _, doc := range merged {
		res, err := e.resolver.Resolve(ctx, doc, outDir)
		if err != nil {
			return nil, err
		}
		artifacts = append(artifacts, res.Output)
		validator.Add(res.Graph)
	}

	if err := validator.Validate(ctx, artifacts); err != nil {
		return nil, err
	}

	logger.Info("Merge run finished.", "processes", len(merged), "artifacts", len(artifacts))
	return artifacts, nil
}
