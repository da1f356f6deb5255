package segment_test

import (
	"errors"
	"strings"
	"sync"
	"testing"

	"github.com/aretw0/typeset/pkg/diag"
	"github.com/aretw0/typeset/pkg/segment"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func digits(vals ...string) []*segment.Node {
	out := make([]*segment.Node, len(vals))
	for i, v := range vals {
		out[i] = segment.Basic(v, segment.TypeInteger)
	}
	return out
}

func TestMarkup_Array(t *testing.T) {
	arr := segment.Array(digits("1", "2")...)

	assert.Equal(t, ` \left[1,\,2 \right]`, segment.Markup(arr, nil))
	assert.Equal(t,
		`\cssId{[0]}{ \left[\cssId{[0, 0, 0]}{1},\,\cssId{[0, 1, 0]}{2} \right]}`,
		segment.Markup(arr, pathFormatter{}))
}

func TestMarkup_SiblingPaths(t *testing.T) {
	ab := letters(t, "ab")
	assert.Equal(t, `\cssId{[0]}{a}\cssId{[1]}{b}`, segment.Markup(ab, pathFormatter{}))

	// Re-rendering the same shape yields the same identifiers.
	assert.Equal(t, segment.Markup(ab, pathFormatter{}), segment.Markup(letters(t, "ab"), pathFormatter{}))
}

func TestMarkup_NestedPaths(t *testing.T) {
	inner := segment.Array(chain(t, digits("1", "2")...))
	outer := chain(t, segment.Basic("x", segment.TypeVarFree), segment.Array(digits("0")[0], inner))

	got := segment.Markup(outer, pathFormatter{})
	assert.Contains(t, got, `\cssId{[1, 1, 0, 0, 1]}{2}`)
	assert.Contains(t, got, `\cssId{[1, 0, 0]}{0}`)
}

func TestMarkup_Composites(t *testing.T) {
	tests := []struct {
		name   string
		node   *segment.Node
		markup string
		text   string
	}{
		{
			name:   "fraction",
			node:   segment.Fraction(segment.Digit("1"), segment.Digit("2")),
			markup: ` \frac{1 }{2}`,
			text:   ` Rational[1 ,2 ]`,
		},
		{
			name:   "root",
			node:   segment.Root(segment.Digit("3"), segment.Basic("x", segment.TypeVarFree)),
			markup: ` \sqrt[3 ]{x }`,
			text:   ` Power(x , 1/3 )`,
		},
		{
			name:   "sum",
			node:   segment.Sum("i", segment.Basic("n", segment.TypeVarFree), segment.Digit("1"), segment.BoundVariable("i")),
			markup: ` \sum\limits_{i = 1 }^{n }\, i`,
			text:   ` Sum[ i ,{i,1 ,n }]`,
		},
		{
			name:   "integral",
			node:   segment.Integral("x", segment.Digit("1"), segment.Digit("0"), segment.BoundVariable("x")),
			markup: ` \int\limits_{0 }^{1 } x \,\mathrm{d}x`,
			text:   ` Integrate[ x ,{x,0 ,1 }]`,
		},
		{
			name:   "limit",
			node:   segment.Limit("x", segment.Digit("0"), segment.BoundVariable("x")),
			markup: ` \lim\limits_{x \to 0 }\, x`,
			text:   ` Limit[ x , x -> 0 ]`,
		},
		{
			name:   "log",
			node:   segment.LogBase(segment.Digit("2"), segment.Basic("y", segment.TypeVarFree)),
			markup: ` \log_{2 } \left(y \right)`,
			text:   ` Log[y ,2 ]`,
		},
		{
			name:   "pow",
			node:   segment.Pow(segment.Basic("x", segment.TypeVarFree), segment.Digit("2")),
			markup: `x ^{2 }`,
			text:   `x ^(2 )`,
		},
		{
			name:   "abs",
			node:   segment.Abs(segment.Basic("x", segment.TypeVarFree)),
			markup: ` \left|x \right|`,
			text:   ` Abs[x ]`,
		},
		{
			name:   "diff",
			node:   segment.Diff("x", segment.BoundVariable("x")),
			markup: ` \frac{\mathrm{d}}{\mathrm{d}\, x}\, x`,
			text:   ` D[ x , x]`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.markup, segment.Markup(tt.node, nil))
			assert.Equal(t, tt.text, segment.Text(tt.node, nil))
		})
	}
}

func TestMarkup_CompositeChildPathsFollowSlots(t *testing.T) {
	sum := segment.Sum("i", segment.Basic("n", segment.TypeVarFree), segment.Digit("1"), segment.BoundVariable("i"))
	got := segment.Markup(sum, pathFormatter{})

	// The lower bound lives in slot 1 even though it is written first.
	assert.True(t, strings.HasPrefix(got, `\cssId{[0]}{ \sum\limits_{i = \cssId{[0, 1, 0]}{1}`), got)
	assert.Contains(t, got, `\cssId{[0, 0, 0]}{n}`)
	assert.Contains(t, got, `\cssId{[0, 2, 0]}{ i}`)
}

func TestMarkup_PlaceholderAndAdapter(t *testing.T) {
	assert.Equal(t, "", segment.Markup(segment.Empty(), nil))
	assert.Equal(t, `\square`, segment.Markup(segment.EmptyText(`\square`), nil))
	assert.Equal(t, "", segment.Text(segment.EmptyText(`\square`), nil))

	a := segment.Adapt(marked{stub: stub{typ: segment.TypeConstant, text: "pi"}, markup: `\pi`})
	assert.Equal(t, `\pi`, segment.Markup(a, nil))
	assert.Equal(t, "pi", segment.Text(a, nil))

	plain := segment.Adapt(stub{typ: segment.TypeConstant, text: "e"})
	assert.Equal(t, "e", segment.Markup(plain, nil), "markup falls back to the text form")
}

func TestDescribe_Array(t *testing.T) {
	arr := segment.Array(digits("1", "2")...)
	assert.Equal(t, " {1, 2}", segment.Text(arr, nil))
	assert.Equal(t, " {1, 2}", arr.String())
}

func TestDescribe_LogsFlags(t *testing.T) {
	abc := letters(t, "abc")
	abc, err := abc.SetError(1, true)
	require.NoError(t, err)
	abc, err = abc.SetFocus(2, true)
	require.NoError(t, err)
	abc, err = abc.Concat(segment.Adapt(bare{typ: segment.TypeSymbol}))
	require.NoError(t, err)

	l := diag.New()
	assert.Equal(t, "abc", segment.Text(abc, l))

	require.Equal(t, 1, l.Count(diag.Error))
	msg, _ := l.Peek(diag.Error)
	assert.Contains(t, msg, "[1]")
	assert.Equal(t, 1, l.Count(diag.Info))
	msg, _ = l.Peek(diag.Info)
	assert.Contains(t, msg, "[2]")
	assert.Equal(t, 1, l.Count(diag.Warning))
}

func TestRender_ContinuesAfterWriteFailure(t *testing.T) {
	w := &failingWriter{failAt: 1}
	err := segment.Render(w, letters(t, "abc"), nil)

	require.Error(t, err)
	assert.ErrorIs(t, err, errSinkClosed)
	assert.Equal(t, 3, w.calls, "every sibling is still rendered")
}

func TestDescribe_FatalOnWriteFailure(t *testing.T) {
	w := &failingWriter{failAt: 2}
	err := segment.DescribeTo(w, letters(t, "abc"), nil)

	var fatal *segment.FatalParseError
	require.True(t, errors.As(err, &fatal))
	assert.Equal(t, "[1]", fatal.Path.String())
	assert.ErrorIs(t, err, errSinkClosed)
	assert.Equal(t, 2, w.calls, "the render stops at the failure")
}

func TestRender_Concurrent(t *testing.T) {
	tree := chain(t,
		segment.Fraction(segment.Digit("1"), segment.Digit("2")),
		segment.Operator("+"),
		segment.Array(digits("3", "4")...),
	)
	want := segment.Markup(tree, pathFormatter{})

	var wg sync.WaitGroup
	results := make([]string, 8)
	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i] = segment.Markup(tree, pathFormatter{})
		}(i)
	}
	wg.Wait()

	for _, got := range results {
		assert.Equal(t, want, got)
	}
}
