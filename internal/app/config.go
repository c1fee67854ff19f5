package app

import (
	"errors"
	"strings"
)

// DefaultTargetCPU is used when neither flags nor the job file name a CPU.
const DefaultTargetCPU = "arm64"

// Config holds all the necessary configuration for an App instance to run.
type Config struct {
	// Fragments are fragment files or directories of them, merged in order.
	Fragments []string
	// JobPath optionally names an HCL job file; its fragments come first.
	JobPath   string
	OutputDir string
	TargetCPU string

	LogFormat string
	LogLevel  string
}

// NewConfig validates cfg and returns a copy of it.
func NewConfig(cfg Config) (*Config, error) {
	if len(cfg.Fragments) == 0 && cfg.JobPath == "" {
		return nil, errors.New("no input: pass fragment paths or a job file")
	}
	return &cfg, nil
}

// Is64Bit reports whether cpu names a 64-bit target such as arm64, x86_64,
// riscv64 or mips64el.
func Is64Bit(cpu string) bool {
	cpu = strings.ToLower(cpu)
	return strings.HasSuffix(cpu, "64") || strings.HasSuffix(cpu, "64el")
}
