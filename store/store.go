// Package store persists the survey document as a single JSON file,
// read and rewritten wholesale on every operation.
package store

import (
	"encoding/json"
	"os"
	"sync"

	"github.com/Praveen5612/skill-survey-bot/pkg/logger"
)

// Store owns the backing JSON file. The mutex serializes
// read-modify-write cycles within this process; a second process
// writing the same file still races last-writer-wins, with the losing
// write dropped in full. Callers that need cross-process safety must
// put a single service instance in front of the file.
type Store struct {
	path string
	mu   sync.Mutex
}

// Open returns a store over the JSON document at path. The file is not
// required to exist yet.
func Open(path string) *Store {
	return &Store{path: path}
}

// Load reads the persisted document. A missing file yields an empty
// document; an unparsable file is logged and also degrades to empty.
func (s *Store) Load() (*Document, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	doc, _, err := s.load()
	return doc, err
}

// load reads and normalizes the document. repaired reports that the
// file was missing, unparsable, or lacked one of the top-level keys.
func (s *Store) load() (doc *Document, repaired bool, err error) {
	doc = &Document{}
	data, err := os.ReadFile(s.path)
	if err != nil {
		if !os.IsNotExist(err) {
			return nil, false, err
		}
		doc.EnsureStructure()
		return doc, true, nil
	}
	if err := json.Unmarshal(data, doc); err != nil {
		// Corrupt state is invisible to callers otherwise, so at least
		// leave a trace before degrading to an empty document.
		logger.Sugar.Errorf("Unparsable document %s, starting empty: %v", s.path, err)
		doc = &Document{}
		doc.EnsureStructure()
		return doc, true, nil
	}
	return doc, doc.EnsureStructure(), nil
}

// Save overwrites the backing file with doc. A crash mid-write can
// corrupt the file; there is no write-ahead copy.
func (s *Store) Save(doc *Document) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.save(doc)
}

func (s *Store) save(doc *Document) error {
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(s.path, data, 0o644)
}

// Update runs fn against the current document and persists the result
// when fn succeeds. The whole cycle holds the store lock, so two
// in-process writers cannot drop each other's changes.
func (s *Store) Update(fn func(*Document) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc, _, err := s.load()
	if err != nil {
		return err
	}
	if err := fn(doc); err != nil {
		return err
	}
	return s.save(doc)
}

// EnsureStructure loads the document, adds any missing top-level keys,
// and persists once if something had to be added. Calling it on a
// well-formed document does not rewrite the file.
func (s *Store) EnsureStructure() (*Document, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc, repaired, err := s.load()
	if err != nil {
		return nil, err
	}
	if repaired {
		if err := s.save(doc); err != nil {
			return nil, err
		}
	}
	return doc, nil
}
