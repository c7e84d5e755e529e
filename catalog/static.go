package catalog

import (
	"context"
	"sort"

	"github.com/justapithecus/grove/types"
)

// StaticSource serves a fixed entry set. Used by tests and by callers
// that already know the catalog (e.g. a single-grammar rebuild).
type StaticSource struct {
	entries []types.CatalogEntry
	err     error
}

// NewStaticSource creates a source over the given entries. Duplicate
// names keep the first occurrence and the set is sorted by name,
// matching HTTPSource semantics.
func NewStaticSource(entries ...types.CatalogEntry) *StaticSource {
	seen := make(map[string]struct{}, len(entries))
	deduped := make([]types.CatalogEntry, 0, len(entries))
	for _, e := range entries {
		if _, dup := seen[e.Name]; dup {
			continue
		}
		seen[e.Name] = struct{}{}
		deduped = append(deduped, e)
	}
	sort.Slice(deduped, func(i, j int) bool { return deduped[i].Name < deduped[j].Name })
	return &StaticSource{entries: deduped}
}

// NewFailingSource creates a source whose Entries always returns err.
func NewFailingSource(err error) *StaticSource {
	return &StaticSource{err: err}
}

// Entries returns the fixed entry set.
func (s *StaticSource) Entries(_ context.Context) ([]types.CatalogEntry, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.entries, nil
}
