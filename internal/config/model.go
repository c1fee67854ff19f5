package config

import "context"

// Model is one merge job: which fragments to merge, where the profiles go
// and which CPU the image targets. Paths are already resolved against the
// job file's directory.
type Model struct {
	Fragments []string
	OutputDir string
	TargetCPU string
}

// Loader reads a job file and translates it into a Model.
type Loader interface {
	Load(ctx context.Context, path string) (*Model, error)
}
