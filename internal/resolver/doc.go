// Package resolver turns one merged process document into its final profile.
//
// Resolution runs in two passes over the same bytes. The tree pass (etree)
// extracts and validates the metadata of every <systemability>. The line pass
// records, for every ability, the exact span of source lines that holds its
// declaration. Reordering only ever moves those spans around, so the text of
// each ability is written back exactly as it was read, comments and entity
// spelling included.
//
// Both passes must agree on the number of abilities. They only do when every
// <systemability> start and end tag, and every <name> child, begins its own line.
package resolver
