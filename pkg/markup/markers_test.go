package markup_test

import (
	"bytes"
	"log/slog"
	"testing"

	"github.com/aretw0/typeset/pkg/markup"
	"github.com/aretw0/typeset/pkg/segment"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func only(key int, m markup.Marker) *markup.Formatter {
	f := bare()
	f.Add(key, m)
	return f
}

func TestErrorMarker(t *testing.T) {
	em := markup.NewErrorMarker()
	f := only(markup.KeyError, em)

	ab, err := segment.Basic("a", segment.TypeVarFree).Concat(segment.Basic("b", segment.TypeVarFree))
	require.NoError(t, err)

	assert.Equal(t, "ab", segment.Markup(ab, f))
	_, ok := em.LastPosition()
	assert.False(t, ok)

	flagged, err := ab.SetError(1, true)
	require.NoError(t, err)
	assert.Equal(t, `a\bbox[red]{ b }`, segment.Markup(flagged, f))

	pos, ok := em.LastPosition()
	require.True(t, ok)
	assert.Equal(t, "[1]", pos.String())

	em.Reset()
	_, ok = em.LastPosition()
	assert.False(t, ok)
}

func TestErrorMarker_WithDefaults(t *testing.T) {
	x, err := segment.Basic("x", segment.TypeVarFree).SetError(0, true)
	require.NoError(t, err)
	assert.Equal(t, `\bbox[red]{ \cssId{[0]}{x} }`, segment.Markup(x, markup.New()))
}

func TestCaretMarker_Modes(t *testing.T) {
	x, err := segment.Basic("x", segment.TypeVarFree).SetFocus(0, true)
	require.NoError(t, err)

	tests := []struct {
		mode markup.InputMode
		want string
	}{
		{markup.ModeInsert, `\cssId{caret}{\left|x\right.}`},
		{markup.ModeAppend, `\cssId{caret}{\left\lfloor x \right.}`},
		{markup.ModeOverwrite, `\cssId{caret}{\bbox[black]{ x }}`},
		{markup.ModePrepend, `\cssId{caret}{\left. x \right\rfloor}`},
	}
	for _, tt := range tests {
		t.Run(tt.mode.String(), func(t *testing.T) {
			cm := markup.NewCaretMarker(tt.mode)
			assert.Equal(t, tt.want, segment.Markup(x, only(markup.KeyCaret, cm)))

			pos, ok := cm.LastPosition()
			require.True(t, ok)
			assert.Equal(t, "[0]", pos.String())
		})
	}
}

func TestCaretMarker_SetMode(t *testing.T) {
	cm := markup.NewCaretMarker(markup.ModeInsert)
	f := only(markup.KeyCaret, cm)
	plain := segment.Basic("y", segment.TypeVarFree)

	assert.Equal(t, "y", segment.Markup(plain, f))
	_, ok := cm.LastPosition()
	assert.False(t, ok)

	cm.SetMode(markup.ModePrepend)
	assert.Equal(t, markup.ModePrepend, cm.Mode())

	focused, err := plain.SetFocus(0, true)
	require.NoError(t, err)
	assert.Equal(t, `\cssId{caret}{\left. y \right\rfloor}`, segment.Markup(focused, f))

	mode, err := markup.ParseInputMode("Overwrite")
	require.NoError(t, err)
	assert.Equal(t, markup.ModeOverwrite, mode)
	_, err = markup.ParseInputMode("sideways")
	assert.ErrorIs(t, err, markup.ErrInvalidConfig)
}

func TestCSSIDMarker(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))
	m := markup.NewCSSIDMarker(logger)
	x := segment.Basic("x", segment.TypeVarFree)

	assert.Equal(t, `\cssId{[0, 2, 1]}{x}`, m.Mark(x, "x", x.Type(), segment.NewPath(0, 2, 1)))
	assert.Equal(t, ",", m.Mark(nil, ",", segment.TypeSeparator, segment.Path{}))

	assert.Equal(t, "x", m.Mark(x, "x", x.Type(), segment.Path{}))
	assert.Contains(t, buf.String(), "without a position")
}

func TestClassNameMarker(t *testing.T) {
	cm := markup.NewClassNameMarker()
	cm.Register(segment.TypeOperator, "op")

	plus := segment.Operator("+")
	assert.Equal(t, `\class{op}{ +}`, segment.Markup(plus, only(markup.KeyClassName, cm)))
	assert.Equal(t, "x", segment.Markup(segment.Basic("x", segment.TypeVarFree), only(markup.KeyClassName, cm)))

	f := markup.New()
	classes, _ := f.ClassName()
	classes.Register(segment.TypeOperator, "op")
	assert.Equal(t, `\class{op}{\cssId{[0]}{ +}}`, segment.Markup(plus, f))

	name, ok := classes.Name(segment.TypeOperator)
	require.True(t, ok)
	assert.Equal(t, "op", name)
	classes.Register(segment.TypeOperator, "")
	assert.Empty(t, classes.Names())
}

func TestStyleMarker(t *testing.T) {
	sm := markup.NewStyleMarker()
	require.NoError(t, sm.RegisterColour(segment.TypeInteger, "red", markup.Bold|markup.Italic))
	require.NoError(t, sm.RegisterColour(segment.TypeVarFree, "", markup.StrikeThrough))
	f := only(markup.KeyStyle, sm)

	assert.Equal(t, `\style{color:#ff0000;}{\mathit{\mathbf{1}}}`, segment.Markup(segment.Digit("1"), f))
	assert.Equal(t, `\cancelto{x}{}`, segment.Markup(segment.Basic("x", segment.TypeVarFree), f))
	assert.Equal(t, `\style{color:#000000;}{\mathrm{A}}`, segment.Markup(segment.Basic("A", segment.TypeNonDecimal), f))
	assert.Equal(t, " +", segment.Markup(segment.Operator("+"), f))

	assert.ErrorIs(t, sm.RegisterColour(segment.TypeInteger, "not-a-colour", 0), markup.ErrInvalidConfig)

	sm.Unregister(segment.TypeInteger)
	_, ok := sm.Lookup(segment.TypeInteger)
	assert.False(t, ok)
	assert.Len(t, sm.Styles(), 2)
}

func TestStyleMarker_WithDefaults(t *testing.T) {
	a := segment.Basic("A", segment.TypeNonDecimal)
	assert.Equal(t, `\cssId{[0]}{\style{color:#000000;}{\mathrm{A}}}`, segment.Markup(a, markup.New()))
}

func TestFontStyle(t *testing.T) {
	assert.Equal(t, "normal", markup.FontStyle(0).String())
	assert.Equal(t, "bold|roman", (markup.Bold | markup.Roman).String())

	fs, err := markup.ParseFontStyle("Caligraphic")
	require.NoError(t, err)
	assert.Equal(t, markup.Caligraphic, fs)
	_, err = markup.ParseFontStyle("wavy")
	assert.ErrorIs(t, err, markup.ErrInvalidConfig)

	c, err := markup.ParseColour("#0f0")
	require.NoError(t, err)
	assert.Equal(t, "#00ff00", c.Hex())
}
