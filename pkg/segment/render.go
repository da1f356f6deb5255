package segment

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/aretw0/typeset/pkg/diag"
)

// Sink collects markup output. Write failures are recorded and rendering
// carries on, so one failed fragment never drops its siblings.
type Sink struct {
	w    io.Writer
	errs []error
}

// NewSink wraps w.
func NewSink(w io.Writer) *Sink {
	return &Sink{w: w}
}

// WriteString writes s, recording any failure.
func (s *Sink) WriteString(str string) {
	if _, err := io.WriteString(s.w, str); err != nil {
		s.errs = append(s.errs, err)
	}
}

// Err returns every recorded write failure joined, or nil.
func (s *Sink) Err() error {
	return errors.Join(s.errs...)
}

type identity struct{}

func (identity) Format(_ Segment, fragment string, _ Type, _ Path) string { return fragment }

// Format renders the chain starting at n into s. p is the path before the
// first node; the path of the last node visited is returned. A nil
// formatter leaves fragments untouched.
func (n *Node) Format(s *Sink, f Formatter, p Path) Path {
	if f == nil {
		f = identity{}
	}
	for cur := n; cur != nil; cur = cur.sibling {
		p = p.Next()
		s.WriteString(cur.markup(f, p))
	}
	return p
}

func (n *Node) markup(f Formatter, p Path) string {
	var frag string
	switch n.kind {
	case KindLeaf, KindPlaceholder:
		frag = n.format
	case KindComposite:
		if n.layout == nil {
			frag = n.arrayMarkup(f, p)
		} else {
			frag = n.layoutMarkup(f, p)
		}
	case KindAdapter:
		if m, ok := n.inner.(Marked); ok {
			frag = m.Markup()
		} else if st, ok := n.inner.(fmt.Stringer); ok {
			frag = st.String()
		}
	}
	return f.Format(n, frag, n.Type(), p)
}

func (n *Node) childMarkup(b *strings.Builder, f Formatter, p Path, i int) {
	sink := NewSink(b)
	n.children[i].Format(sink, f, p.Descend(i))
}

func (n *Node) arrayMarkup(f Formatter, p Path) string {
	var b strings.Builder
	b.WriteString(` \left[`)
	for i := range n.children {
		if i > 0 {
			b.WriteString(f.Format(nil, `,\,`, TypeSeparator, Path{}))
		}
		n.childMarkup(&b, f, p, i)
	}
	b.WriteString(` \right]`)
	return b.String()
}

func (n *Node) layoutMarkup(f Formatter, p Path) string {
	var b strings.Builder
	l := n.layout
	for i, idx := range l.MarkupOrder {
		b.WriteString(l.Markup[i])
		n.childMarkup(&b, f, p, idx)
	}
	b.WriteString(l.Markup[len(l.Markup)-1])
	return b.String()
}

// Describe writes the diagnostic form of the chain starting at n to w and
// returns the path of the last node visited. Notes about flagged nodes go
// to l when it is non-nil. A write failure stops the render with a
// *FatalParseError carrying the path of the node being written.
func (n *Node) Describe(w io.Writer, l *diag.Log, p Path) (Path, error) {
	for cur := n; cur != nil; cur = cur.sibling {
		p = p.Next()
		text, err := cur.plain(l, p)
		if err != nil {
			return p, err
		}
		if _, err := io.WriteString(w, text); err != nil {
			return p, &FatalParseError{Path: p, Err: err}
		}
	}
	return p, nil
}

func (n *Node) plain(l *diag.Log, p Path) (string, error) {
	if l != nil {
		n.note(l, p)
	}
	switch n.kind {
	case KindComposite:
		if n.layout == nil {
			return n.arrayText(l, p)
		}
		return n.layoutText(l, p)
	case KindAdapter:
		if st, ok := n.inner.(fmt.Stringer); ok {
			return st.String(), nil
		}
		return "", nil
	}
	return n.text, nil
}

func (n *Node) note(l *diag.Log, p Path) {
	if n.HasError() {
		l.Push(diag.Error, fmt.Sprintf("%s: %s segment has an error", p, n.Type()))
	}
	if n.Focused() {
		l.Push(diag.Info, fmt.Sprintf("%s: %s segment has focus", p, n.Type()))
	}
	if n.kind == KindAdapter {
		if _, ok := n.inner.(fmt.Stringer); !ok {
			l.Push(diag.Warning, fmt.Sprintf("%s: adapted %T has no text form", p, n.inner))
		}
	}
}

func (n *Node) childText(b *strings.Builder, l *diag.Log, p Path, i int) error {
	_, err := n.children[i].Describe(b, l, p.Descend(i))
	return err
}

func (n *Node) arrayText(l *diag.Log, p Path) (string, error) {
	var b strings.Builder
	b.WriteString(" {")
	for i := range n.children {
		if i > 0 {
			b.WriteString(", ")
		}
		if err := n.childText(&b, l, p, i); err != nil {
			return "", err
		}
	}
	b.WriteString("}")
	return b.String(), nil
}

func (n *Node) layoutText(l *diag.Log, p Path) (string, error) {
	var b strings.Builder
	lay := n.layout
	for i, idx := range lay.TextOrder {
		b.WriteString(lay.Text[i])
		if err := n.childText(&b, l, p, idx); err != nil {
			return "", err
		}
	}
	b.WriteString(lay.Text[len(lay.Text)-1])
	return b.String(), nil
}

// Render writes the markup of the tree rooted at n to w.
func Render(w io.Writer, n *Node, f Formatter) error {
	s := NewSink(w)
	n.Format(s, f, RootPath())
	return s.Err()
}

// Markup returns the markup of the tree rooted at n.
func Markup(n *Node, f Formatter) string {
	var b strings.Builder
	n.Format(NewSink(&b), f, RootPath())
	return b.String()
}

// DescribeTo writes the diagnostic form of the tree rooted at n to w.
func DescribeTo(w io.Writer, n *Node, l *diag.Log) error {
	_, err := n.Describe(w, l, RootPath())
	return err
}

// Text returns the diagnostic form of the tree rooted at n.
func Text(n *Node, l *diag.Log) string {
	var b strings.Builder
	// strings.Builder never fails, so neither can the render.
	_ = DescribeTo(&b, n, l)
	return b.String()
}

func (n *Node) String() string {
	return Text(n, nil)
}
