package session

import (
	"context"
	"fmt"
	"testing"

	"github.com/aretw0/typeset/pkg/document"
)

// nopStore accepts everything and stores nothing.
type nopStore struct{}

func (nopStore) Save(ctx context.Context, id string, doc *document.Document) error { return nil }
func (nopStore) Load(ctx context.Context, id string) (*document.Document, error) {
	return &document.Document{}, nil
}
func (nopStore) Delete(ctx context.Context, id string) error { return nil }
func (nopStore) List(ctx context.Context) ([]string, error)  { return nil, nil }

func TestManager_LockLifecycle(t *testing.T) {
	mgr := NewManager(nopStore{})
	ctx := context.Background()
	count := 10000

	for i := 0; i < count; i++ {
		sid := fmt.Sprintf("session-%d", i)
		_ = mgr.Save(ctx, sid, &document.Document{})
		_ = mgr.Delete(ctx, sid)
	}

	if n := len(mgr.locks); n != 0 {
		t.Errorf("memory leak detected: %d locks remaining after Delete", n)
	}
}
