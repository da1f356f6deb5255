package ports

import (
	"context"
	"errors"

	"github.com/aretw0/typeset/pkg/document"
)

// ErrNotFound is returned by stores when no document exists for an ID.
var ErrNotFound = errors.New("document not found")

// DocumentStore defines the interface for persisting expression documents.
type DocumentStore interface {
	// Save persists the document for a given session ID.
	Save(ctx context.Context, id string, doc *document.Document) error

	// Load retrieves the document for a given session ID.
	// Returns ErrNotFound if the session does not exist.
	Load(ctx context.Context, id string) (*document.Document, error)

	// Delete removes the document for a given session ID.
	Delete(ctx context.Context, id string) error

	// List returns the IDs of stored documents.
	List(ctx context.Context) ([]string, error)
}
