package segment

import "iter"

// TypeChain associates an ordered list of types with a display name, for
// compound classification such as "integer within a vinculum".
// A TypeChain is immutable.
type TypeChain struct {
	code Type
	next *TypeChain
	name string
}

// NewTypeChain builds a chain named name over types, in order.
// It returns nil when types is empty.
func NewTypeChain(name string, types ...Type) *TypeChain {
	var chain *TypeChain
	for i := len(types) - 1; i >= 0; i-- {
		chain = &TypeChain{code: types[i], next: chain, name: name}
	}
	return chain
}

// Code returns the head type.
func (c *TypeChain) Code() Type { return c.code }

// Next returns the tail of the chain, or nil.
func (c *TypeChain) Next() *TypeChain { return c.next }

func (c *TypeChain) String() string { return c.name }

// Get returns the first link whose head is t.
func (c *TypeChain) Get(t Type) (*TypeChain, bool) {
	for l := c; l != nil; l = l.next {
		if l.code == t {
			return l, true
		}
	}
	return nil, false
}

// Contains reports whether t appears anywhere in the chain.
func (c *TypeChain) Contains(t Type) bool {
	_, ok := c.Get(t)
	return ok
}

// Equal reports whether both chains have the same head and, where both
// have a tail, equal tails.
func (c *TypeChain) Equal(o *TypeChain) bool {
	for a, b := c, o; ; a, b = a.next, b.next {
		if a == nil || b == nil {
			return a == b
		}
		if a.code != b.code {
			return false
		}
		if a.next == nil || b.next == nil {
			return true
		}
	}
}

// Concat returns a new chain with o appended after the last link of c.
// The receiver keeps its name.
func (c *TypeChain) Concat(o *TypeChain) *TypeChain {
	if c == nil {
		return o
	}
	return &TypeChain{code: c.code, next: c.next.Concat(o), name: c.name}
}

// All iterates over the types of the chain in order.
func (c *TypeChain) All() iter.Seq[Type] {
	return func(yield func(Type) bool) {
		for l := c; l != nil; l = l.next {
			if !yield(l.code) {
				return
			}
		}
	}
}
