package editor_test

import (
	"testing"

	"github.com/aretw0/typeset/pkg/editor"
	"github.com/aretw0/typeset/pkg/markup"
	"github.com/aretw0/typeset/pkg/segment"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func caretOnly() *markup.Formatter {
	f := markup.Empty()
	f.Add(markup.KeyCaret, markup.NewCaretMarker(markup.ModeInsert))
	return f
}

func fraction(t *testing.T) *editor.Editor {
	t.Helper()
	e := editor.New(nil)
	require.NoError(t, e.Insert(segment.Digit("1")))
	require.NoError(t, e.Insert(segment.Operator("+")))
	require.NoError(t, e.InsertComposite(segment.Fraction(segment.Empty(), segment.Empty()), 0))
	require.NoError(t, e.Insert(segment.Digit("3")))
	return e
}

func TestEditor_InsertAndNavigate(t *testing.T) {
	e := fraction(t)
	assert.Equal(t, []int{2, 0, 1}, e.Caret())
	assert.Equal(t, "1 + Rational[3 , ]", e.Text())

	require.NoError(t, e.Leave())
	assert.Equal(t, []int{3}, e.Caret())
	assert.Equal(t, `1 +\cssId{caret}{\left| \frac{3 }{}\right.}`, e.Markup(caretOnly()))

	assert.True(t, e.Left())
	require.NoError(t, e.Enter(1))
	assert.Equal(t, []int{2, 1, 0}, e.Caret())
	require.NoError(t, e.Insert(segment.FreeVariable("x")))
	assert.Equal(t, "1 + Rational[3 , x ]", e.Text())

	assert.False(t, e.Right(), "caret is at the end of the denominator")
	require.NoError(t, e.Leave())
	assert.False(t, e.Right())
	assert.ErrorIs(t, e.Leave(), editor.ErrCaretBounds)
}

func TestEditor_UndoRedo(t *testing.T) {
	e := fraction(t)
	before := e.Tree()

	require.NoError(t, e.Undo())
	assert.Equal(t, "1 + Rational[ , ]", e.Text())
	assert.Equal(t, []int{2, 0, 0}, e.Caret())
	assert.True(t, e.CanRedo())

	require.NoError(t, e.Redo())
	assert.Equal(t, "1 + Rational[3 , ]", e.Text())
	assert.True(t, before.Equal(e.Tree()))
	assert.ErrorIs(t, e.Redo(), editor.ErrNothingToRedo)

	require.NoError(t, e.Undo())
	require.NoError(t, e.Insert(segment.Digit("4")))
	assert.False(t, e.CanRedo(), "a new edit clears the redo history")

	for e.CanUndo() {
		require.NoError(t, e.Undo())
	}
	assert.Equal(t, "", e.Text())
	assert.ErrorIs(t, e.Undo(), editor.ErrNothingToUndo)
}

func TestEditor_HistoryLimit(t *testing.T) {
	e := editor.New(nil, editor.WithHistory(2))
	for _, d := range []string{"1", "2", "3"} {
		require.NoError(t, e.Insert(segment.Digit(d)))
	}
	require.NoError(t, e.Undo())
	require.NoError(t, e.Undo())
	assert.ErrorIs(t, e.Undo(), editor.ErrNothingToUndo)
	assert.Equal(t, "1", e.Text())
}

func TestEditor_Persistent(t *testing.T) {
	e := editor.New(nil)
	require.NoError(t, e.Insert(segment.FreeVariable("a")))
	old := e.Tree()

	require.NoError(t, e.Insert(segment.FreeVariable("b")))
	ok, err := e.Backspace()
	require.NoError(t, err)
	assert.True(t, ok)
	ok, err = e.Backspace()
	require.NoError(t, err)
	assert.True(t, ok)

	assert.Equal(t, " a", segment.Text(old, nil), "earlier trees are never modified")
	assert.Equal(t, "", e.Text())

	ok, err = e.Backspace()
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestEditor_BackspaceLeavesChild(t *testing.T) {
	e := editor.New(nil)
	require.NoError(t, e.InsertComposite(segment.Sqrt(segment.Empty()), 0))
	assert.Equal(t, []int{0, 0, 0}, e.Caret())

	ok, err := e.Backspace()
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, []int{1}, e.Caret())
}

func TestEditor_Delete(t *testing.T) {
	e := editor.New(nil)
	require.NoError(t, e.Insert(segment.FreeVariable("a")))
	require.NoError(t, e.Insert(segment.FreeVariable("b")))

	ok, err := e.Delete()
	require.NoError(t, err)
	assert.False(t, ok, "nothing after the caret")

	require.NoError(t, e.MoveTo(0))
	ok, err = e.Delete()
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, " b", e.Text())
}

func TestEditor_MoveTo(t *testing.T) {
	e := fraction(t)
	require.NoError(t, e.MoveTo(2, 1, 0))
	assert.ErrorIs(t, e.MoveTo(2, 0), segment.ErrInvalidAddress)
	assert.ErrorIs(t, e.MoveTo(5), editor.ErrCaretBounds)
	assert.ErrorIs(t, e.MoveTo(2, 0, 3), editor.ErrCaretBounds)
	assert.ErrorIs(t, e.MoveTo(0, 0, 0), editor.ErrCaretBounds)
	assert.Equal(t, []int{2, 1, 0}, e.Caret())
}

func TestEditor_MarkError(t *testing.T) {
	e := editor.New(nil)
	require.NoError(t, e.Insert(segment.FreeVariable("y")))
	require.NoError(t, e.MarkError(true))

	f := markup.Empty()
	f.Add(markup.KeyError, markup.NewErrorMarker())
	assert.Equal(t, `\bbox[red]{  y }`, segment.Markup(e.Tree(), f))

	require.NoError(t, e.Undo())
	assert.False(t, e.Tree().HasError())
}

func TestEditor_Document(t *testing.T) {
	e := fraction(t)
	doc, err := e.Document("draft")
	require.NoError(t, err)
	assert.Equal(t, "draft", doc.Name)

	restored, err := editor.FromDocument(doc)
	require.NoError(t, err)
	assert.True(t, e.Tree().Equal(restored.Tree()))
	assert.Equal(t, []int{3}, restored.Caret())
}
