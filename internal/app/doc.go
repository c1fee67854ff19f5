// Package app contains the application lifecycle around a merge run: it
// resolves the job from flags and an optional job file, configures logging,
// runs the engine and reports the produced artifacts. It is decoupled from
// any specific entrypoint like a CLI.
package app
