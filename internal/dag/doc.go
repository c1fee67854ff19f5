// Package dag models system-ability dependencies as an adjacency map plus the
// order in which abilities were discovered.
//
// # Cycle Detection
//
// DetectCycles walks the graph with an explicit path stack instead of
// recursion. Every ability keeps a cursor into its own dependency list, so an
// edge is advanced at most once for the whole walk and its cost is linear in
// the number of edges. When an advanced edge points back into the current path
// the walk stops and reports the full chain, closing it with the repeated name:
//
//	1->2->3->1
//
// Edges whose target is not a node of the graph are skipped. A per-process
// graph routinely references abilities hosted by another process; those edges
// are only resolvable once every process graph has been joined with Union.
//
// An optional EdgeFunc runs on every edge the walk advances into, before the
// cycle test. Callers use it to enforce pairwise rules on dependencies.
package dag
