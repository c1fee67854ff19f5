package hcl

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/vk/samerge/internal/config"
	"github.com/vk/samerge/internal/ctxlog"
	"github.com/vk/samerge/internal/schema"
)

// Loader is the HCL-specific implementation of the config.Loader interface.
type Loader struct {
	environ func() []string
}

// NewLoader creates a new HCL job loader reading the process environment.
func NewLoader() *Loader {
	return &Loader{environ: os.Environ}
}

// Load parses the job file at path and returns its merge job.
func (l *Loader) Load(ctx context.Context, path string) (*config.Model, error) {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("HCL job loader started.", "path", path)

	parser := hclparse.NewParser()
	file, diags := parser.ParseHCLFile(path)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse HCL file %s: %w", path, diags)
	}

	baseDir := filepath.Dir(path)
	var job schema.JobFile
	diags = gohcl.DecodeBody(file.Body, l.evalContext(baseDir), &job)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode HCL file %s: %w", path, diags)
	}
	if job.Merge == nil {
		return nil, errors.New("job file " + path + " has no merge block")
	}

	model := &config.Model{
		OutputDir: resolvePath(baseDir, job.Merge.OutputDir),
		TargetCPU: job.Merge.TargetCPU,
	}
	for _, f := range job.Merge.Fragments {
		model.Fragments = append(model.Fragments, resolvePath(baseDir, f))
	}

	logger.Debug("HCL job loaded.", "fragments", len(model.Fragments), "output_dir", model.OutputDir, "target_cpu", model.TargetCPU)
	return model, nil
}

func resolvePath(baseDir, p string) string {
	if p == "" || filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(baseDir, p)
}
