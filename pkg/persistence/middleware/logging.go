package middleware

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/aretw0/typeset/pkg/document"
	"github.com/aretw0/typeset/pkg/ports"
)

type loggingMiddleware struct {
	next   ports.DocumentStore
	logger *slog.Logger
}

// NewLoggingMiddleware logs every store operation at debug level and
// failures at warn level. A missing document is not a failure.
func NewLoggingMiddleware(logger *slog.Logger) Middleware {
	return func(next ports.DocumentStore) ports.DocumentStore {
		return &loggingMiddleware{next: next, logger: logger}
	}
}

func (m *loggingMiddleware) log(ctx context.Context, op, id string, start time.Time, err error) {
	attrs := []any{"op", op, "duration", time.Since(start)}
	if id != "" {
		attrs = append(attrs, "session_id", id)
	}
	if err != nil && !errors.Is(err, ports.ErrNotFound) {
		m.logger.WarnContext(ctx, "store operation failed", append(attrs, "err", err)...)
		return
	}
	m.logger.DebugContext(ctx, "store operation", attrs...)
}

func (m *loggingMiddleware) Save(ctx context.Context, id string, doc *document.Document) error {
	start := time.Now()
	err := m.next.Save(ctx, id, doc)
	m.log(ctx, "save", id, start, err)
	return err
}

func (m *loggingMiddleware) Load(ctx context.Context, id string) (*document.Document, error) {
	start := time.Now()
	doc, err := m.next.Load(ctx, id)
	m.log(ctx, "load", id, start, err)
	return doc, err
}

func (m *loggingMiddleware) Delete(ctx context.Context, id string) error {
	start := time.Now()
	err := m.next.Delete(ctx, id)
	m.log(ctx, "delete", id, start, err)
	return err
}

func (m *loggingMiddleware) List(ctx context.Context) ([]string, error) {
	start := time.Now()
	ids, err := m.next.List(ctx)
	m.log(ctx, "list", "", start, err)
	return ids, err
}
