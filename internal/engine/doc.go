// Package engine drives a complete merge run: classify every fragment, fold
// abilities into one document per process, resolve each process into its
// final profile and validate dependencies across all processes.
//
// A run is strictly sequential. The order of the input paths is part of the
// contract: it decides the order of abilities inside a merged document and
// breaks ties inside a boot phase.
//
// # Failure and Cleanup
//
// Classification and per-process resolution errors abort the run at once and
// leave files already written to the output directory in place. Only a cycle
// that spans processes removes every artifact of the run before returning.
// The scratch directory holding merged documents is removed on every path.
package engine
