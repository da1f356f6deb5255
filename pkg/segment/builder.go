package segment

import (
	"fmt"
	"iter"
)

// Builder edits a tree through addresses of the form
// [sibling, child, sibling, ..., sibling]: the first element indexes the
// top-level chain, each following pair selects a child slot and a node in
// that child chain. The paths produced by rendering are valid addresses.
//
// A Builder replaces its root on every edit; the trees it hands out are
// never modified afterwards.
type Builder struct {
	root *Node
}

// NewBuilder starts from root, or from a placeholder when root is nil.
func NewBuilder(root *Node) *Builder {
	if root == nil {
		root = Empty()
	}
	return &Builder{root: root}
}

// Node returns the current tree.
func (b *Builder) Node() *Node { return b.root }

// Len returns the length of the top-level chain.
func (b *Builder) Len() int { return b.root.Len() }

// IsEmpty reports whether the tree is a single placeholder.
func (b *Builder) IsEmpty() bool {
	return b.root.kind == KindPlaceholder && b.root.sibling == nil
}

func checkAddress(addr []int) error {
	if len(addr) == 0 || len(addr)%2 == 0 {
		return fmt.Errorf("%w: %v", ErrInvalidAddress, addr)
	}
	return nil
}

// locate returns the chain that the last element of addr indexes.
func locate(chain *Node, addr []int) (*Node, error) {
	for len(addr) > 1 {
		at, err := chain.nodeAt(addr[0])
		if err != nil {
			return nil, err
		}
		if chain, err = at.Child(addr[1]); err != nil {
			return nil, err
		}
		addr = addr[2:]
	}
	return chain, nil
}

// modify applies fn to the chain addressed by addr and rebuilds every
// ancestor on the way back up.
func modify(chain *Node, addr []int, fn func(chain *Node, i int) (*Node, error)) (*Node, error) {
	if len(addr) == 1 {
		return fn(chain, addr[0])
	}
	i, c := addr[0], addr[1]
	at, err := chain.nodeAt(i)
	if err != nil {
		return nil, err
	}
	child, err := at.Child(c)
	if err != nil {
		return nil, err
	}
	edited, err := modify(child, addr[2:], fn)
	if err != nil {
		return nil, err
	}
	if edited == nil {
		edited = Empty()
	}
	return chain.rebuild(i, func(t *Node) *Node {
		out, _ := t.withChild(c, edited)
		return out
	})
}

func (b *Builder) apply(addr []int, fn func(chain *Node, i int) (*Node, error)) error {
	if err := checkAddress(addr); err != nil {
		return err
	}
	root, err := modify(b.root, addr, fn)
	if err != nil {
		return err
	}
	b.root = root
	return nil
}

// At returns the node at addr, detached from its chain.
func (b *Builder) At(addr ...int) (*Node, error) {
	if err := checkAddress(addr); err != nil {
		return nil, err
	}
	chain, err := locate(b.root, addr)
	if err != nil {
		return nil, err
	}
	return chain.SegmentAt(addr[len(addr)-1])
}

// ChainLen returns the length of the chain holding addr.
func (b *Builder) ChainLen(addr ...int) (int, error) {
	if err := checkAddress(addr); err != nil {
		return 0, err
	}
	chain, err := locate(b.root, addr)
	if err != nil {
		return 0, err
	}
	return chain.Len(), nil
}

// Insert places s before the node at addr. An index equal to the chain
// length appends; inserting into a lone placeholder fills it.
func (b *Builder) Insert(s *Node, addr ...int) error {
	if s == nil {
		return ErrNilSegment
	}
	return b.apply(addr, func(chain *Node, i int) (*Node, error) {
		size := chain.Len()
		switch {
		case i < 0 || i > size:
			return nil, outOfBounds(i)
		case chain.kind == KindPlaceholder && size == 1:
			return s, nil
		case i == 0:
			return s.Concat(chain)
		case i == size:
			return chain.Concat(s)
		}
		tail, err := chain.nodeAt(i)
		if err != nil {
			return nil, err
		}
		joined, err := s.Concat(tail)
		if err != nil {
			return nil, err
		}
		return chain.SetSibling(i-1, joined)
	})
}

// Delete removes the node at addr. Removing the last node of a chain
// leaves a placeholder.
func (b *Builder) Delete(addr ...int) error {
	return b.apply(addr, func(chain *Node, i int) (*Node, error) {
		at, err := chain.nodeAt(i)
		if err != nil {
			return nil, err
		}
		if i == 0 {
			if at.sibling == nil {
				return Empty(), nil
			}
			return at.sibling, nil
		}
		return chain.rebuild(i-1, func(t *Node) *Node {
			c := t.clone()
			c.sibling = at.sibling
			return c
		})
	})
}

// Replace swaps the node at addr for s, keeping the rest of the chain.
func (b *Builder) Replace(s *Node, addr ...int) error {
	if s == nil {
		return ErrNilSegment
	}
	return b.apply(addr, func(chain *Node, i int) (*Node, error) {
		at, err := chain.nodeAt(i)
		if err != nil {
			return nil, err
		}
		joined := s
		if at.sibling != nil {
			if joined, err = s.Concat(at.sibling); err != nil {
				return nil, err
			}
		}
		if i == 0 {
			return joined, nil
		}
		return chain.rebuild(i-1, func(t *Node) *Node {
			c := t.clone()
			c.sibling = joined
			return c
		})
	})
}

// SetFocus sets the focus flag of the node at addr.
func (b *Builder) SetFocus(f bool, addr ...int) error {
	return b.apply(addr, func(chain *Node, i int) (*Node, error) {
		return chain.SetFocus(i, f)
	})
}

// SetError sets the error flag of the node at addr.
func (b *Builder) SetError(e bool, addr ...int) error {
	return b.apply(addr, func(chain *Node, i int) (*Node, error) {
		return chain.SetError(i, e)
	})
}

// Append adds s at the end of the top-level chain.
func (b *Builder) Append(s *Node) error {
	root, err := b.root.Concat(s)
	if err != nil {
		return err
	}
	b.root = root
	return nil
}

// Prepend adds s before the top-level chain.
func (b *Builder) Prepend(s *Node) error {
	if s == nil {
		return ErrNilSegment
	}
	if b.IsEmpty() {
		b.root = s
		return nil
	}
	root, err := s.Concat(b.root)
	if err != nil {
		return err
	}
	b.root = root
	return nil
}

// IndexOf returns the first top-level index holding a node equal to s, or -1.
func (b *Builder) IndexOf(s *Node) int {
	for i, n := range b.All() {
		if n.Equal(s) {
			return i
		}
	}
	return -1
}

// LastIndexOf returns the last top-level index holding a node equal to s, or -1.
func (b *Builder) LastIndexOf(s *Node) int {
	last := -1
	for i, n := range b.All() {
		if n.Equal(s) {
			last = i
		}
	}
	return last
}

// Reverse reverses the order of the top-level chain. Placeholders inside a
// longer chain are dropped since they cannot have a sibling.
func (b *Builder) Reverse() {
	if b.root.sibling == nil {
		return
	}
	var out *Node
	for cur := b.root; cur != nil; cur = cur.sibling {
		if cur.kind == KindPlaceholder {
			continue
		}
		c := cur.clone()
		c.sibling = out
		out = c
	}
	if out == nil {
		out = Empty()
	}
	b.root = out
}

// All iterates over the top-level nodes, each detached from its chain.
func (b *Builder) All() iter.Seq2[int, *Node] {
	return func(yield func(int, *Node) bool) {
		i := 0
		for cur := b.root; cur != nil; cur = cur.sibling {
			single := cur
			if cur.sibling != nil {
				single = cur.clone()
				single.sibling = nil
			}
			if !yield(i, single) {
				return
			}
			i++
		}
	}
}
