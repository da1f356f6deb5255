package segment

import (
	"reflect"
	"slices"
)

// rebuild walks i hops along the chain, replaces the node found there with
// fn's result and copies every node of the walked prefix. The tail past the
// replaced node is shared.
func (n *Node) rebuild(i int, fn func(*Node) *Node) (*Node, error) {
	if i < 0 {
		return nil, outOfBounds(i)
	}
	var prefix []*Node
	cur := n
	for k := 0; k < i; k++ {
		if cur.sibling == nil {
			return nil, outOfBounds(i)
		}
		prefix = append(prefix, cur)
		cur = cur.sibling
	}
	out := fn(cur)
	for k := len(prefix) - 1; k >= 0; k-- {
		c := prefix[k].clone()
		c.sibling = out
		out = c
	}
	return out, nil
}

func (n *Node) nodeAt(i int) (*Node, error) {
	if i < 0 {
		return nil, outOfBounds(i)
	}
	cur := n
	for k := 0; k < i; k++ {
		if cur.sibling == nil {
			return nil, outOfBounds(i)
		}
		cur = cur.sibling
	}
	return cur, nil
}

// withSibling returns a copy of n with its sibling replaced. A placeholder
// is replaced by s instead.
func (n *Node) withSibling(s *Node) *Node {
	if n.kind == KindPlaceholder {
		if s == nil {
			return n
		}
		return s
	}
	c := n.clone()
	c.sibling = s
	return c
}

// SetFocus returns a chain where the i-th node's focus flag is f.
func (n *Node) SetFocus(i int, f bool) (*Node, error) {
	return n.rebuild(i, func(t *Node) *Node {
		c := t.clone()
		c.focus = f
		c.override |= overrideFocus
		return c
	})
}

// SetError returns a chain where the i-th node's error flag is e.
func (n *Node) SetError(i int, e bool) (*Node, error) {
	return n.rebuild(i, func(t *Node) *Node {
		c := t.clone()
		c.err = e
		c.override |= overrideError
		return c
	})
}

// SetSibling returns a chain where the i-th node is followed by s; a nil s
// cuts the chain there. A placeholder at i is replaced by s, or kept when s
// is nil.
func (n *Node) SetSibling(i int, s *Node) (*Node, error) {
	return n.rebuild(i, func(t *Node) *Node {
		return t.withSibling(s)
	})
}

// Concat appends o at the end of the chain. A numeral appended after a
// non-numeral becomes an integer continuation, or a mantissa continuation
// when it follows a decimal point. A trailing placeholder is replaced by o.
func (n *Node) Concat(o *Node) (*Node, error) {
	if o == nil {
		return nil, ErrNilSegment
	}
	if n.kind == KindPlaceholder {
		return o, nil
	}
	return n.rebuild(n.Len()-1, func(t *Node) *Node {
		if t.kind == KindPlaceholder {
			return o
		}
		c := t.clone()
		c.sibling = t.continuation(o)
		return c
	})
}

func (n *Node) continuation(o *Node) *Node {
	if !o.IsNumeral() || n.IsNumeral() {
		return o
	}
	if n.Type() == TypePoint {
		if o.Type() == TypeInteger {
			return o.ToMantissaDigit()
		}
		return o
	}
	return o.ToDigit()
}

// SegmentAt returns the i-th node detached from its chain.
func (n *Node) SegmentAt(i int) (*Node, error) {
	at, err := n.nodeAt(i)
	if err != nil {
		return nil, err
	}
	if at.sibling == nil {
		return at, nil
	}
	c := at.clone()
	c.sibling = nil
	return c, nil
}

// Subsegment returns the nodes [from, to) as a new chain. An empty range
// yields a placeholder and the full range returns n itself.
func (n *Node) Subsegment(from, to int) (*Node, error) {
	size := n.Len()
	switch {
	case from < 0:
		return nil, outOfBounds(from)
	case to > size || from > to:
		return nil, outOfBounds(to)
	case from == to:
		if n.kind == KindPlaceholder {
			return n, nil
		}
		return Empty(), nil
	case from == 0 && to == size:
		return n, nil
	}
	tail, err := n.nodeAt(from)
	if err != nil {
		return nil, err
	}
	if to == size {
		return tail, nil
	}
	return tail.SetSibling(to-from-1, nil)
}

// SubsegmentFrom returns the shared tail starting at from.
func (n *Node) SubsegmentFrom(from int) (*Node, error) {
	return n.nodeAt(from)
}

// SetChild replaces child slot i in place. It mutates n and every chain
// sharing it, so it must only be used while a tree is being built.
func (n *Node) SetChild(i int, c *Node) error {
	if c == nil {
		return ErrNilSegment
	}
	if i < 0 || i >= len(n.children) {
		return outOfBounds(i)
	}
	n.children[i] = c
	return nil
}

// withChild is the persistent counterpart of SetChild.
func (n *Node) withChild(i int, c *Node) (*Node, error) {
	if c == nil {
		return nil, ErrNilSegment
	}
	if i < 0 || i >= len(n.children) {
		return nil, outOfBounds(i)
	}
	out := n.clone()
	out.children[i] = c
	return out, nil
}

// ToDigit retypes the run of numerals starting at n as integer digits.
// Non-numerals are returned unchanged.
func (n *Node) ToDigit() *Node {
	return n.convertRun(TypeInteger, Numeral.ToDigit)
}

// ToMantissaDigit retypes the run of numerals starting at n as mantissa digits.
func (n *Node) ToMantissaDigit() *Node {
	return n.convertRun(TypeMantissa, Numeral.ToMantissaDigit)
}

func (n *Node) convertRun(t Type, adapt func(Numeral) Segment) *Node {
	if !n.IsNumeral() {
		return n
	}
	c := n.clone()
	if n.kind == KindAdapter {
		c.inner = adapt(n.inner.(Numeral))
	} else {
		c.typ = t
	}
	if n.sibling != nil {
		c.sibling = n.sibling.convertRun(t, adapt)
	}
	return c
}

// Equal reports whether both chains have the same shape and content.
// Focus and error flags are ignored.
func (n *Node) Equal(o *Node) bool {
	a, b := n, o
	for ; a != nil && b != nil; a, b = a.sibling, b.sibling {
		if !a.equalNode(b) {
			return false
		}
	}
	return a == nil && b == nil
}

func (n *Node) equalNode(o *Node) bool {
	if n == o {
		return true
	}
	if n.kind != o.kind || n.Type() != o.Type() ||
		n.text != o.text || n.format != o.format ||
		n.numeral != o.numeral ||
		n.super != o.super || n.sub != o.sub {
		return false
	}
	if !n.layout.equal(o.layout) {
		return false
	}
	if n.kind == KindAdapter && !reflect.DeepEqual(n.inner, o.inner) {
		return false
	}
	return slices.EqualFunc(n.children, o.children, (*Node).Equal)
}
