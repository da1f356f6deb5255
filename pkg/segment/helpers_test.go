package segment_test

import (
	"errors"
	"strings"
	"testing"

	"github.com/aretw0/typeset/pkg/segment"
	"github.com/stretchr/testify/require"
)

func chain(t *testing.T, nodes ...*segment.Node) *segment.Node {
	t.Helper()
	head := nodes[0]
	for _, n := range nodes[1:] {
		var err error
		head, err = head.Concat(n)
		require.NoError(t, err)
	}
	return head
}

// letters builds one free-variable leaf per rune of s.
func letters(t *testing.T, s string) *segment.Node {
	t.Helper()
	var nodes []*segment.Node
	for _, r := range s {
		nodes = append(nodes, segment.Basic(string(r), segment.TypeVarFree))
	}
	return chain(t, nodes...)
}

// pathFormatter wraps every segment fragment with its path, leaving
// separators alone.
type pathFormatter struct{}

func (pathFormatter) Format(s segment.Segment, fragment string, _ segment.Type, pos segment.Path) string {
	if s == nil {
		return fragment
	}
	return `\cssId{` + pos.String() + `}{` + fragment + `}`
}

type failingWriter struct {
	calls  int
	failAt int
}

var errSinkClosed = errors.New("sink closed")

func (w *failingWriter) Write(p []byte) (int, error) {
	w.calls++
	if w.calls >= w.failAt {
		return 0, errSinkClosed
	}
	return len(p), nil
}

// stub is a foreign segment with a text form.
type stub struct {
	typ   segment.Type
	focus bool
	err   bool
	text  string
}

func (s stub) Type() segment.Type { return s.typ }
func (s stub) Focused() bool      { return s.focus }
func (s stub) HasError() bool     { return s.err }
func (s stub) String() string     { return s.text }

// marked also supplies markup.
type marked struct {
	stub
	markup string
}

func (m marked) Markup() string { return m.markup }

// bare has neither a text nor a markup form.
type bare struct{ typ segment.Type }

func (b bare) Type() segment.Type { return b.typ }
func (bare) Focused() bool        { return false }
func (bare) HasError() bool       { return false }

// numeral is a foreign numeric literal.
type numeral struct {
	typ   segment.Type
	digit string
}

func (n numeral) Type() segment.Type { return n.typ }
func (numeral) Focused() bool        { return false }
func (numeral) HasError() bool       { return false }
func (n numeral) String() string     { return n.digit }

func (n numeral) ToDigit() segment.Segment {
	return numeral{typ: segment.TypeInteger, digit: n.digit}
}

func (n numeral) ToMantissaDigit() segment.Segment {
	return numeral{typ: segment.TypeMantissa, digit: n.digit}
}

func text(n *segment.Node) string {
	return strings.TrimSpace(segment.Text(n, nil))
}
