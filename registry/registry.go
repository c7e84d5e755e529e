// Package registry maintains the shared registry document mapping grammar
// names to compiled artifacts.
//
// The document is a single JSON file shared by every concurrent job.
// All access goes through Store, which serializes the whole
// read-merge-write cycle under one mutex; callers never touch the file
// directly. This removes the lost-update race by construction: two
// concurrent merges can never both read stale document state.
package registry

// Document is the persisted registry structure.
type Document struct {
	// KnownLanguages maps grammar name to its artifact record.
	KnownLanguages map[string]Entry `json:"known_languages"`
}

// Entry records one grammar's compiled artifact.
type Entry struct {
	// Path is the shared-library artifact path.
	Path string `json:"path"`
	// Extension is the grammar's declared file extension, empty when the
	// metadata descriptor declares none.
	Extension string `json:"extension"`
}

// NewDocument returns an empty document.
func NewDocument() Document {
	return Document{KnownLanguages: make(map[string]Entry)}
}
