// Package segment implements a persistent tree of typed expression segments.
//
// A tree is a chain of *Node siblings, each of which may own a fixed set of
// child chains. Every edit returns a new chain that shares all untouched
// nodes with the original, so older versions stay valid (undo, snapshots,
// concurrent readers). SetChild is the single in-place mutation and is meant
// for wiring a tree while it is being constructed.
package segment

import "slices"

// Segment is the capability every renderable value exposes.
type Segment interface {
	Type() Type
	Focused() bool
	HasError() bool
}

// Numeral is a numeric literal that can continue an integer part or a
// mantissa. Adapted numerals obey the same concatenation rule as digits.
type Numeral interface {
	Segment
	ToDigit() Segment
	ToMantissaDigit() Segment
}

// Marked is implemented by adapted values that supply their own markup.
type Marked interface {
	Markup() string
}

// Formatter decorates the fragment produced for s at pos. The separator
// between array elements is requested with a nil segment and a zero path.
type Formatter interface {
	Format(s Segment, fragment string, t Type, pos Path) string
}

// Kind is the closed set of node variants.
type Kind uint8

const (
	KindLeaf Kind = iota
	KindComposite
	KindPlaceholder
	KindAdapter
)

func (k Kind) String() string {
	switch k {
	case KindLeaf:
		return "leaf"
	case KindComposite:
		return "composite"
	case KindPlaceholder:
		return "placeholder"
	case KindAdapter:
		return "adapter"
	}
	return "unknown"
}

const (
	overrideFocus uint8 = 1 << iota
	overrideError
)

// Node is one element of a sibling chain.
// The zero value is not usable; build nodes with the constructors.
type Node struct {
	kind  Kind
	typ   Type
	focus bool
	err   bool

	sibling  *Node
	children []*Node
	super    int
	sub      int

	// text is the diagnostic form, format the markup template.
	text   string
	format string

	layout  *Layout
	numeral bool

	inner    Segment
	override uint8
}

func (n *Node) clone() *Node {
	c := *n
	c.children = slices.Clone(n.children)
	return &c
}

// Kind returns the node variant.
func (n *Node) Kind() Kind { return n.kind }

// Type returns the node classification. Adapters report the wrapped type.
func (n *Node) Type() Type {
	if n.kind == KindAdapter {
		return n.inner.Type()
	}
	return n.typ
}

// Focused reports whether the node holds the caret.
func (n *Node) Focused() bool {
	if n.kind == KindAdapter && n.override&overrideFocus == 0 {
		return n.inner.Focused()
	}
	return n.focus
}

// HasError reports whether the node is flagged as invalid.
func (n *Node) HasError() bool {
	if n.kind == KindAdapter && n.override&overrideError == 0 {
		return n.inner.HasError()
	}
	return n.err
}

// Sibling returns the next node of the chain, or nil.
func (n *Node) Sibling() *Node { return n.sibling }

// HasSibling reports whether n is not the tail of its chain.
func (n *Node) HasSibling() bool { return n.sibling != nil }

// SuperIndex returns the superscript nesting index, -1 when not applicable.
func (n *Node) SuperIndex() int { return n.super }

// SubIndex returns the subscript nesting index, -1 when not applicable.
func (n *Node) SubIndex() int { return n.sub }

// Text returns the diagnostic text of a leaf or the placeholder text.
func (n *Node) Text() string { return n.text }

// Template returns the markup template of a leaf or placeholder.
func (n *Node) Template() string { return n.format }

// Layout returns the wrapper layout of a composite; nil for arrays and
// every other kind.
func (n *Node) Layout() *Layout { return n.layout }

// Inner returns the value wrapped by an adapter.
func (n *Node) Inner() Segment { return n.inner }

// IsNumeral reports whether n is a numeric literal.
func (n *Node) IsNumeral() bool {
	if n.kind == KindAdapter {
		_, ok := n.inner.(Numeral)
		return ok
	}
	return n.numeral
}

// IsArray reports whether n is a list-style composite.
func (n *Node) IsArray() bool { return n.kind == KindComposite && n.layout == nil }

// Len returns the number of nodes in the chain starting at n.
func (n *Node) Len() int {
	count := 0
	for cur := n; cur != nil; cur = cur.sibling {
		count++
	}
	return count
}

// Children returns a copy of the child chains.
func (n *Node) Children() []*Node { return slices.Clone(n.children) }

// NumChildren returns the number of child slots.
func (n *Node) NumChildren() int { return len(n.children) }

// Child returns the i-th child chain.
func (n *Node) Child(i int) (*Node, error) {
	if i < 0 || i >= len(n.children) {
		return nil, outOfBounds(i)
	}
	return n.children[i], nil
}

// Basic creates a leaf whose markup and text are both s.
func Basic(s string, t Type) *Node {
	return BasicFormat(s, s, t)
}

// BasicFormat creates a leaf with a markup template distinct from its text.
func BasicFormat(format, text string, t Type) *Node {
	return &Node{kind: KindLeaf, typ: t, text: text, format: format, super: -1, sub: -1}
}

// Empty creates a placeholder marking an editable gap.
func Empty() *Node {
	return EmptyText("")
}

// EmptyText creates a placeholder that renders placeholder in markup.
func EmptyText(placeholder string) *Node {
	return &Node{kind: KindPlaceholder, typ: TypeEmpty, format: placeholder, super: -1, sub: -1}
}

// Array creates a list composite. Nil elements become placeholders.
func Array(elems ...*Node) *Node {
	return &Node{
		kind:     KindComposite,
		typ:      TypeObject,
		children: orEmpty(elems),
		super:    -1,
		sub:      -1,
	}
}

// Adapt wraps s so it can take part in a chain. A *Node is returned as is.
func Adapt(s Segment) *Node {
	if n, ok := s.(*Node); ok {
		return n
	}
	return &Node{kind: KindAdapter, inner: s, super: -1, sub: -1}
}

// AdaptWithSibling wraps s and attaches sibling after it.
func AdaptWithSibling(s Segment, sibling *Node) *Node {
	n := Adapt(s)
	if n.kind != KindAdapter {
		return n.withSibling(sibling)
	}
	n.sibling = sibling
	return n
}

func orEmpty(nodes []*Node) []*Node {
	out := make([]*Node, len(nodes))
	for i, n := range nodes {
		if n == nil {
			n = Empty()
		}
		out[i] = n
	}
	return out
}
