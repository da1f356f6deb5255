package file_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/aretw0/typeset/pkg/adapters/file"
	"github.com/aretw0/typeset/pkg/document"
	"github.com/aretw0/typeset/pkg/ports"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Ensure Store implements DocumentStore
var _ ports.DocumentStore = (*file.Store)(nil)

func TestFileStore_Contract(t *testing.T) {
	ports.RunDocumentStoreContract(t, file.NewStore(t.TempDir()))
}

func TestFileStore_HandEdited(t *testing.T) {
	dir := t.TempDir()
	store := file.NewStore(dir)
	ctx := context.Background()

	src := "version: 1\nname: scratch\nexpression:\n  - kind: digit\n    text: \"7\"\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, "scratch.yaml"), []byte(src), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("ignored"), 0o644))

	ids, err := store.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"scratch"}, ids)

	doc, err := store.Load(ctx, "scratch")
	require.NoError(t, err)
	tree, err := doc.Tree()
	require.NoError(t, err)
	assert.Equal(t, 1, tree.Len())
}

func TestFileStore_InvalidID(t *testing.T) {
	store := file.NewStore(t.TempDir())
	ctx := context.Background()

	for _, id := range []string{"", "../escape", `a\b`, "..", ".draft"} {
		assert.ErrorIs(t, store.Save(ctx, id, &document.Document{}), file.ErrInvalidID, id)
		_, err := store.Load(ctx, id)
		assert.ErrorIs(t, err, file.ErrInvalidID, id)
	}
}

func TestFileStore_MissingDirectory(t *testing.T) {
	store := file.NewStore(filepath.Join(t.TempDir(), "absent"))
	ids, err := store.List(context.Background())
	require.NoError(t, err)
	assert.Empty(t, ids)
}
