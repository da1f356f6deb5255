package memory

import (
	"context"
	"slices"
	"sync"

	"github.com/aretw0/typeset/pkg/document"
	"github.com/aretw0/typeset/pkg/ports"
)

// Store implements ports.DocumentStore in memory.
// Safe for concurrent use.
type Store struct {
	data map[string]*document.Document
	mu   sync.RWMutex
}

// NewStore creates a new in-memory store.
func NewStore() *Store {
	return &Store{
		data: make(map[string]*document.Document),
	}
}

// copyDocument deep copies doc so callers never share entries with the store.
func copyDocument(doc *document.Document) *document.Document {
	out := *doc
	out.Expression = copySpecs(doc.Expression)
	return &out
}

func copySpecs(specs []document.NodeSpec) []document.NodeSpec {
	if specs == nil {
		return nil
	}
	out := slices.Clone(specs)
	for i := range out {
		if out[i].Children == nil {
			continue
		}
		children := make([][]document.NodeSpec, len(out[i].Children))
		for j, c := range out[i].Children {
			children[j] = copySpecs(c)
		}
		out[i].Children = children
	}
	return out
}

// Save persists the document in memory.
func (s *Store) Save(ctx context.Context, id string, doc *document.Document) error {
	copied := copyDocument(doc)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.data[id] = copied
	return nil
}

// Load retrieves the document from memory.
func (s *Store) Load(ctx context.Context, id string) (*document.Document, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	doc, ok := s.data[id]
	if !ok {
		return nil, ports.ErrNotFound
	}
	return copyDocument(doc), nil
}

// Delete removes the document.
func (s *Store) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.data, id)
	return nil
}

// List returns stored IDs in sorted order.
func (s *Store) List(ctx context.Context) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ids := make([]string, 0, len(s.data))
	for id := range s.data {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	return ids, nil
}
