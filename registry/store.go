package registry

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"sync"

	"github.com/justapithecus/grove/log"
	"github.com/justapithecus/grove/types"
)

// Store owns the registry document at one path for the duration of a run.
//
// Apply is the only mutating operation. At most one Apply executes its
// read-merge-write sequence at a time; the mutex covers the full cycle
// including file I/O, not just the in-memory merge.
type Store struct {
	path   string
	logger *log.Logger

	mu sync.Mutex
}

// NewStore creates a store over the document at path. The file need not
// exist yet; the first Apply starts from an empty document.
func NewStore(path string, logger *log.Logger) *Store {
	if logger == nil {
		logger = log.Nop()
	}
	return &Store{path: path, logger: logger}
}

// Path returns the document location.
func (s *Store) Path() string {
	return s.path
}

// Apply upserts one artifact record per grammar declared in desc, then
// persists the document. Existing entries for other names are preserved.
// A descriptor with zero grammars still performs a valid no-op write.
//
// An unparsable existing document is an error; the document is left
// untouched in that case.
func (s *Store) Apply(desc types.MetadataDescriptor, artifactPath string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc, err := s.load()
	if err != nil {
		return err
	}

	for _, grammar := range desc.Grammars {
		if grammar.Name == "" {
			continue
		}
		if existing, ok := doc.KnownLanguages[grammar.Name]; ok && existing.Path != artifactPath {
			// Two jobs declared the same grammar name. Last writer wins;
			// surface the conflict instead of guessing a correct owner.
			s.logger.Warn("registry entry conflict", map[string]any{
				"grammar":       grammar.Name,
				"existing_path": existing.Path,
				"new_path":      artifactPath,
			})
		}
		doc.KnownLanguages[grammar.Name] = Entry{
			Path:      artifactPath,
			Extension: grammar.Extension(),
		}
	}

	return s.persist(doc)
}

// Snapshot returns the current document contents. A missing file reads as
// an empty document.
func (s *Store) Snapshot() (Document, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.load()
}

func (s *Store) load() (Document, error) {
	data, err := os.ReadFile(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		return NewDocument(), nil
	}
	if err != nil {
		return Document{}, fmt.Errorf("cannot read registry document %q: %w", s.path, err)
	}

	var doc Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return Document{}, fmt.Errorf("registry document %q is malformed: %w", s.path, err)
	}
	if doc.KnownLanguages == nil {
		doc.KnownLanguages = make(map[string]Entry)
	}
	return doc, nil
}

func (s *Store) persist(doc Document) error {
	data, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("cannot encode registry document: %w", err)
	}
	if err := os.WriteFile(s.path, data, 0o644); err != nil {
		return fmt.Errorf("cannot write registry document %q: %w", s.path, err)
	}
	return nil
}
