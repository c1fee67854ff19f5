// Package hcl implements config.Loader for HCL job files.
//
// Expressions in a job file are evaluated with:
//   - env: an object holding the process environment (env.TARGET_CPU)
//   - glob(pattern): sorted file paths matching pattern
//   - concat, format, lower, upper from the cty standard library
//
// Relative paths and glob patterns resolve against the directory of the job
// file, not the working directory.
package hcl
