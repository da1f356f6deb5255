package middleware_test

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"testing"

	"github.com/aretw0/typeset/internal/logging"
	"github.com/aretw0/typeset/pkg/adapters/memory"
	"github.com/aretw0/typeset/pkg/document"
	"github.com/aretw0/typeset/pkg/persistence/middleware"
	"github.com/aretw0/typeset/pkg/ports"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestChain_Contract(t *testing.T) {
	store := middleware.Chain(memory.NewStore(),
		middleware.NewLoggingMiddleware(logging.NewNop()),
		middleware.NewValidatingMiddleware(),
	)
	ports.RunDocumentStoreContract(t, store)
}

func TestChain_Order(t *testing.T) {
	var calls []string
	tag := func(name string) middleware.Middleware {
		return func(next ports.DocumentStore) ports.DocumentStore {
			calls = append(calls, name)
			return next
		}
	}
	middleware.Chain(memory.NewStore(), tag("outer"), tag("inner"))
	assert.Equal(t, []string{"inner", "outer"}, calls)
}

func TestValidatingMiddleware(t *testing.T) {
	inner := memory.NewStore()
	store := middleware.NewValidatingMiddleware()(inner)
	ctx := context.Background()

	bad := &document.Document{Version: document.Version, Expression: []document.NodeSpec{{Kind: "hexagon"}}}
	assert.ErrorIs(t, store.Save(ctx, "s", bad), document.ErrInvalidDocument)
	assert.ErrorIs(t, store.Save(ctx, "s", nil), document.ErrInvalidDocument)

	_, err := inner.Load(ctx, "s")
	assert.ErrorIs(t, err, ports.ErrNotFound, "nothing reaches the store")

	good := &document.Document{Version: document.Version, Expression: []document.NodeSpec{{Kind: document.KindDigit, Text: "4"}}}
	require.NoError(t, store.Save(ctx, "s", good))
	loaded, err := store.Load(ctx, "s")
	require.NoError(t, err)
	assert.Equal(t, good, loaded)
}

type failingStore struct{ ports.DocumentStore }

func (failingStore) Delete(context.Context, string) error { return errors.New("disk on fire") }

func TestLoggingMiddleware(t *testing.T) {
	var buf bytes.Buffer
	logger := logging.NewWriter(&buf, slog.LevelDebug, false)
	store := middleware.NewLoggingMiddleware(logger)(failingStore{memory.NewStore()})
	ctx := context.Background()

	_, err := store.Load(ctx, "missing")
	assert.ErrorIs(t, err, ports.ErrNotFound)
	assert.Contains(t, buf.String(), "level=DEBUG msg=\"store operation\" op=load")
	assert.Contains(t, buf.String(), "session_id=missing")

	buf.Reset()
	assert.Error(t, store.Delete(ctx, "x"))
	assert.Contains(t, buf.String(), "level=WARN")
	assert.Contains(t, buf.String(), "err=\"disk on fire\"")

	buf.Reset()
	_, err = store.List(ctx)
	require.NoError(t, err)
	assert.NotContains(t, buf.String(), "session_id")
}
