// Package profile holds the data model shared by every stage of a merge run:
// boot phases and their priority table, the SystemAbility record extracted
// from a merged document, and the error taxonomy reported to callers.
package profile
