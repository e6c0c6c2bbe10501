// Package history persists successful resolutions in a small SQLite
// database so recent lookups can be listed without hitting the extractor.
//
// The store keeps at most the configured number of entries; older rows are
// pruned on insert. Schema creation is guarded by a file lock because several
// CLI invocations may open a fresh database at the same time.
package history
