// Package types defines core domain types for the Grove pipeline.
//
//nolint:revive // types is a common Go package naming convention
package types

// CatalogEntry is one grammar to process: a name and the source locator
// its repository is fetched from. Entries are immutable once produced by
// a catalog source, and a run's entry set contains no duplicate names.
type CatalogEntry struct {
	// Name is the grammar name (e.g. "rust").
	Name string `json:"name"`
	// SourceLocator is the location the fetch tool clones from.
	SourceLocator string `json:"source_locator"`
}
