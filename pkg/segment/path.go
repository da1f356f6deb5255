package segment

import (
	"slices"
	"strconv"
	"strings"
)

// Path is the address of a segment within a rendered tree. A Path is an
// immutable value: Next and Descend return new paths and never touch the
// receiver, so concurrent renders can share any Path freely.
//
// The root render starts at RootPath ([-1]). Visiting a node advances the
// last element; descending into child i appends i and -1, so the child's own
// advance yields [..., i, 0].
type Path struct {
	elems []int
}

// RootPath returns the path a top-level render starts from.
func RootPath() Path {
	return Path{elems: []int{-1}}
}

// NewPath builds a path from explicit elements.
func NewPath(elems ...int) Path {
	return Path{elems: slices.Clone(elems)}
}

// IsZero reports whether p has no elements.
func (p Path) IsZero() bool { return len(p.elems) == 0 }

// Len returns the number of elements.
func (p Path) Len() int { return len(p.elems) }

// At returns the i-th element.
func (p Path) At(i int) int { return p.elems[i] }

// Last returns the final element, or -1 for the zero path.
func (p Path) Last() int {
	if len(p.elems) == 0 {
		return -1
	}
	return p.elems[len(p.elems)-1]
}

// Elems returns a copy of the elements.
func (p Path) Elems() []int { return slices.Clone(p.elems) }

// Next returns p with its last element advanced by one.
func (p Path) Next() Path {
	if len(p.elems) == 0 {
		return Path{elems: []int{0}}
	}
	next := slices.Clone(p.elems)
	next[len(next)-1]++
	return Path{elems: next}
}

// Descend returns the path a render of child i starts from.
func (p Path) Descend(i int) Path {
	next := make([]int, len(p.elems), len(p.elems)+2)
	copy(next, p.elems)
	return Path{elems: append(next, i, -1)}
}

// Parent drops the last child step, undoing Descend.
func (p Path) Parent() Path {
	if len(p.elems) < 3 {
		return p
	}
	return Path{elems: slices.Clone(p.elems[:len(p.elems)-2])}
}

// Equal reports whether both paths hold the same elements.
func (p Path) Equal(o Path) bool { return slices.Equal(p.elems, o.elems) }

// String renders the path as "[0, 1, 0]".
func (p Path) String() string {
	var b strings.Builder
	b.WriteByte('[')
	for i, e := range p.elems {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(strconv.Itoa(e))
	}
	b.WriteByte(']')
	return b.String()
}
