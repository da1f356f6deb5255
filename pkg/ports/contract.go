package ports

import (
	"context"
	"testing"
	"time"

	"github.com/aretw0/typeset/pkg/document"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func contractDocument(name string) *document.Document {
	return &document.Document{
		Version: document.Version,
		Name:    name,
		Expression: []document.NodeSpec{
			{Kind: document.KindDigit, Text: "2", Type: "integer"},
			{Kind: document.KindOperator, Text: "+"},
			{Kind: "fraction", Focus: true, Children: [][]document.NodeSpec{
				{{Kind: document.KindDigit, Text: "1", Type: "integer"}},
				{{Kind: document.KindLeaf, Text: "x", Type: "var_free"}},
			}},
		},
	}
}

// RunDocumentStoreContract runs a suite of tests to verify that a DocumentStore
// implementation adheres to the interface contract.
func RunDocumentStoreContract(t *testing.T, store DocumentStore) {
	ctx := context.Background()
	id := "contract-test-session-" + time.Now().Format("20060102150405")

	t.Run("Save and Load", func(t *testing.T) {
		doc := contractDocument("contract")
		require.NoError(t, store.Save(ctx, id, doc), "Save should not return error")

		loaded, err := store.Load(ctx, id)
		require.NoError(t, err, "Load should not return error")
		assert.Equal(t, doc, loaded)

		tree, err := loaded.Tree()
		require.NoError(t, err)
		assert.Equal(t, 3, tree.Len())
	})

	t.Run("Load Isolation", func(t *testing.T) {
		doc := contractDocument("isolated")
		require.NoError(t, store.Save(ctx, id, doc))
		doc.Name = "mutated"
		doc.Expression[0].Text = "9"

		loaded, err := store.Load(ctx, id)
		require.NoError(t, err)
		assert.Equal(t, "isolated", loaded.Name)
		assert.Equal(t, "2", loaded.Expression[0].Text)
	})

	t.Run("Load Non-Existent", func(t *testing.T) {
		_, err := store.Load(ctx, "non-existent-"+id)
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("Delete", func(t *testing.T) {
		require.NoError(t, store.Save(ctx, id, contractDocument("doomed")))
		require.NoError(t, store.Delete(ctx, id), "Delete should not return error")

		_, err := store.Load(ctx, id)
		assert.ErrorIs(t, err, ErrNotFound, "Load after Delete should return ErrNotFound")
	})

	t.Run("List", func(t *testing.T) {
		id1 := id + "-1"
		id2 := id + "-2"
		require.NoError(t, store.Save(ctx, id1, contractDocument("one")))
		require.NoError(t, store.Save(ctx, id2, contractDocument("two")))
		defer func() {
			_ = store.Delete(ctx, id1)
			_ = store.Delete(ctx, id2)
		}()

		ids, err := store.List(ctx)
		require.NoError(t, err)
		assert.Contains(t, ids, id1)
		assert.Contains(t, ids, id2)
	})
}
