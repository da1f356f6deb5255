package middleware

import (
	"context"
	"fmt"

	"github.com/aretw0/typeset/pkg/document"
	"github.com/aretw0/typeset/pkg/ports"
)

type validatingMiddleware struct {
	ports.DocumentStore
}

// NewValidatingMiddleware rejects documents that do not build a tree before
// they reach the store. Load is passed through so stored documents stay
// readable for repair.
func NewValidatingMiddleware() Middleware {
	return func(next ports.DocumentStore) ports.DocumentStore {
		return &validatingMiddleware{DocumentStore: next}
	}
}

func (m *validatingMiddleware) Save(ctx context.Context, id string, doc *document.Document) error {
	if doc == nil {
		return fmt.Errorf("%w: nil document", document.ErrInvalidDocument)
	}
	if _, err := doc.Tree(); err != nil {
		return fmt.Errorf("refusing to save %q: %w", id, err)
	}
	return m.DocumentStore.Save(ctx, id, doc)
}
