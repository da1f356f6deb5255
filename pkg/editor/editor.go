// Package editor implements an undoable expression editor with a caret.
//
// Every edit produces a new tree through segment.Builder. Trees are
// persistent, so the undo history is a list of roots that share nearly all
// of their structure.
package editor

import (
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"sync"

	"github.com/aretw0/typeset/internal/logging"
	"github.com/aretw0/typeset/pkg/document"
	"github.com/aretw0/typeset/pkg/segment"
)

// DefaultHistory is the number of undo steps kept by default.
const DefaultHistory = 100

var (
	// ErrNothingToUndo is returned by Undo on an empty history.
	ErrNothingToUndo = errors.New("nothing to undo")
	// ErrNothingToRedo is returned by Redo when no undone edit remains.
	ErrNothingToRedo = errors.New("nothing to redo")
	// ErrCaretBounds is returned when a caret move leaves the tree.
	ErrCaretBounds = errors.New("caret out of bounds")
)

// snapshot is one point in the edit history.
type snapshot struct {
	root  *segment.Node
	caret []int
}

// Editor holds a tree and a caret. The caret is an address whose last
// element is an insertion index in [0, len] of the chain it points into.
// Safe for concurrent use.
type Editor struct {
	mu     sync.Mutex
	root   *segment.Node
	caret  []int
	undo   []snapshot
	redo   []snapshot
	limit  int
	logger *slog.Logger
}

// Option configures an Editor.
type Option func(*Editor)

// WithHistory bounds the undo history. Values below 1 keep one step.
func WithHistory(n int) Option {
	return func(e *Editor) {
		e.limit = max(n, 1)
	}
}

// WithLogger configures a logger for edit events.
func WithLogger(logger *slog.Logger) Option {
	return func(e *Editor) {
		e.logger = logger
	}
}

// New creates an editor over root (a placeholder when nil) with the caret
// at the end of the top-level chain.
func New(root *segment.Node, opts ...Option) *Editor {
	if root == nil {
		root = segment.Empty()
	}
	e := &Editor{
		root:   root,
		limit:  DefaultHistory,
		logger: logging.NewNop(),
	}
	for _, opt := range opts {
		opt(e)
	}
	e.caret = []int{logicalLen(root)}
	return e
}

// FromDocument creates an editor over the tree of doc.
func FromDocument(doc *document.Document, opts ...Option) (*Editor, error) {
	root, err := doc.Tree()
	if err != nil {
		return nil, err
	}
	return New(root, opts...), nil
}

// logicalLen is the chain length, counting a lone placeholder as empty.
func logicalLen(chain *segment.Node) int {
	if chain.Kind() == segment.KindPlaceholder && !chain.HasSibling() {
		return 0
	}
	return chain.Len()
}

// Tree returns the current tree.
func (e *Editor) Tree() *segment.Node {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.root
}

// Caret returns a copy of the caret address.
func (e *Editor) Caret() []int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return slices.Clone(e.caret)
}

// CanUndo reports whether Undo would succeed.
func (e *Editor) CanUndo() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return len(e.undo) > 0
}

// CanRedo reports whether Redo would succeed.
func (e *Editor) CanRedo() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return len(e.redo) > 0
}

// chainLen returns the logical length of the chain the caret points into.
func chainLen(b *segment.Builder, caret []int) (int, error) {
	probe := slices.Clone(caret)
	probe[len(probe)-1] = 0
	first, err := b.At(probe...)
	if err != nil {
		return 0, err
	}
	n, err := b.ChainLen(probe...)
	if err != nil {
		return 0, err
	}
	if n == 1 && first.Kind() == segment.KindPlaceholder {
		return 0, nil
	}
	return n, nil
}

// commit records the current state for undo and installs the edit.
func (e *Editor) commit(op string, root *segment.Node, caret []int) {
	e.undo = append(e.undo, snapshot{root: e.root, caret: e.caret})
	if len(e.undo) > e.limit {
		e.undo = slices.Delete(e.undo, 0, len(e.undo)-e.limit)
	}
	e.redo = nil
	e.root, e.caret = root, caret
	e.logger.Debug("edit", "op", op, "caret", fmt.Sprint(caret), "history", len(e.undo))
}

// edit runs fn on a builder over the current tree and commits the result.
func (e *Editor) edit(op string, fn func(b *segment.Builder, caret []int) ([]int, error)) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	b := segment.NewBuilder(e.root)
	caret, err := fn(b, slices.Clone(e.caret))
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	e.commit(op, b.Node(), caret)
	return nil
}

// Insert places s at the caret and moves the caret past it.
func (e *Editor) Insert(s *segment.Node) error {
	return e.edit("insert", func(b *segment.Builder, caret []int) ([]int, error) {
		if err := b.Insert(s, caret...); err != nil {
			return nil, err
		}
		// A trailing placeholder absorbs the insert, so clamp to the chain.
		n, err := chainLen(b, caret)
		if err != nil {
			return nil, err
		}
		caret[len(caret)-1] = min(caret[len(caret)-1]+s.Len(), n)
		return caret, nil
	})
}

// InsertComposite places s at the caret and moves the caret into child
// slot of s, at the end of that slot's chain.
func (e *Editor) InsertComposite(s *segment.Node, slot int) error {
	if s == nil {
		return fmt.Errorf("insert: %w", segment.ErrNilSegment)
	}
	if slot < 0 || slot >= s.NumChildren() {
		return fmt.Errorf("insert: %w: slot %d", ErrCaretBounds, slot)
	}
	return e.edit("insert", func(b *segment.Builder, caret []int) ([]int, error) {
		if err := b.Insert(s, caret...); err != nil {
			return nil, err
		}
		child, err := s.Child(slot)
		if err != nil {
			return nil, err
		}
		return append(caret, slot, logicalLen(child)), nil
	})
}

// Backspace removes the node before the caret. At the start of a child
// chain the caret leaves the composite instead. It returns false when there
// was nothing to do.
func (e *Editor) Backspace() (bool, error) {
	err := e.edit("backspace", func(b *segment.Builder, caret []int) ([]int, error) {
		if caret[len(caret)-1] == 0 {
			return nil, errNoop
		}
		caret[len(caret)-1]--
		return caret, b.Delete(caret...)
	})
	if !errors.Is(err, errNoop) {
		return err == nil, err
	}
	if len(e.Caret()) > 1 {
		return true, e.Leave()
	}
	return false, nil
}

// Delete removes the node after the caret. It returns false at the end of
// the chain.
func (e *Editor) Delete() (bool, error) {
	err := e.edit("delete", func(b *segment.Builder, caret []int) ([]int, error) {
		n, err := chainLen(b, caret)
		if err != nil {
			return nil, err
		}
		if caret[len(caret)-1] >= n {
			return nil, errNoop
		}
		return caret, b.Delete(caret...)
	})
	if errors.Is(err, errNoop) {
		return false, nil
	}
	return err == nil, err
}

// errNoop aborts an edit without recording it.
var errNoop = errors.New("no change")

// MarkError sets the error flag of the node after the caret, or of the node
// before it at the end of a chain.
func (e *Editor) MarkError(flag bool) error {
	return e.edit("mark", func(b *segment.Builder, caret []int) ([]int, error) {
		target, err := focusAddress(b, caret)
		if err != nil {
			return nil, err
		}
		return caret, b.SetError(flag, target...)
	})
}

// focusAddress is the address of the node the caret highlights.
func focusAddress(b *segment.Builder, caret []int) ([]int, error) {
	n, err := chainLen(b, caret)
	if err != nil {
		return nil, err
	}
	target := slices.Clone(caret)
	if last := len(target) - 1; target[last] >= n {
		target[last] = max(n-1, 0)
	}
	return target, nil
}

// MoveTo places the caret at addr after checking that it is reachable.
func (e *Editor) MoveTo(addr ...int) error {
	if len(addr) == 0 || len(addr)%2 == 0 {
		return fmt.Errorf("%w: %v", segment.ErrInvalidAddress, addr)
	}
	e.mu.Lock()
	defer e.mu.Unlock()

	n, err := chainLen(segment.NewBuilder(e.root), addr)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrCaretBounds, err)
	}
	if i := addr[len(addr)-1]; i < 0 || i > n {
		return fmt.Errorf("%w: index %d of %d", ErrCaretBounds, i, n)
	}
	e.caret = slices.Clone(addr)
	return nil
}

// Left moves the caret one place back within its chain.
func (e *Editor) Left() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	last := len(e.caret) - 1
	if e.caret[last] == 0 {
		return false
	}
	e.caret = slices.Clone(e.caret)
	e.caret[last]--
	return true
}

// Right moves the caret one place forward within its chain.
func (e *Editor) Right() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	last := len(e.caret) - 1
	n, err := chainLen(segment.NewBuilder(e.root), e.caret)
	if err != nil || e.caret[last] >= n {
		return false
	}
	e.caret = slices.Clone(e.caret)
	e.caret[last]++
	return true
}

// Enter moves the caret to the end of child slot of the node after it.
func (e *Editor) Enter(slot int) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	at, err := segment.NewBuilder(e.root).At(e.caret...)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrCaretBounds, err)
	}
	child, err := at.Child(slot)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrCaretBounds, err)
	}
	e.caret = append(slices.Clone(e.caret), slot, logicalLen(child))
	return nil
}

// Leave moves the caret out of the current child chain, just past the
// composite that holds it.
func (e *Editor) Leave() error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if len(e.caret) < 3 {
		return fmt.Errorf("%w: caret is at the top level", ErrCaretBounds)
	}
	c := slices.Clone(e.caret[:len(e.caret)-2])
	c[len(c)-1]++
	e.caret = c
	return nil
}

// Undo restores the state before the last edit.
func (e *Editor) Undo() error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if len(e.undo) == 0 {
		return ErrNothingToUndo
	}
	last := e.undo[len(e.undo)-1]
	e.undo = e.undo[:len(e.undo)-1]
	e.redo = append(e.redo, snapshot{root: e.root, caret: e.caret})
	e.root, e.caret = last.root, last.caret
	return nil
}

// Redo reapplies the last undone edit.
func (e *Editor) Redo() error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if len(e.redo) == 0 {
		return ErrNothingToRedo
	}
	next := e.redo[len(e.redo)-1]
	e.redo = e.redo[:len(e.redo)-1]
	e.undo = append(e.undo, snapshot{root: e.root, caret: e.caret})
	e.root, e.caret = next.root, next.caret
	return nil
}

// Focused returns the current tree with the node at the caret focused.
func (e *Editor) Focused() *segment.Node {
	e.mu.Lock()
	defer e.mu.Unlock()

	b := segment.NewBuilder(e.root)
	target, err := focusAddress(b, e.caret)
	if err == nil {
		err = b.SetFocus(true, target...)
	}
	if err != nil {
		e.logger.Warn("caret does not address a node", "caret", fmt.Sprint(e.caret), "err", err)
		return e.root
	}
	return b.Node()
}

// Markup renders the tree with the caret through f.
func (e *Editor) Markup(f segment.Formatter) string {
	return segment.Markup(e.Focused(), f)
}

// Text returns the diagnostic text form of the tree.
func (e *Editor) Text() string {
	return segment.Text(e.Tree(), nil)
}

// Document encodes the current tree under name.
func (e *Editor) Document(name string) (*document.Document, error) {
	return document.Encode(name, e.Tree())
}
