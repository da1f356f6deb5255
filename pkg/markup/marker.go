// Package markup turns rendered fragments into annotated TeX through an
// ordered pipeline of markers.
package markup

import (
	"reflect"

	"github.com/aretw0/typeset/pkg/segment"
)

// Marker transforms the fragment produced for a segment. The segment is nil
// for structural tokens such as array separators.
type Marker interface {
	Mark(s segment.Segment, fragment string, t segment.Type, pos segment.Path) string
}

// MarkerFunc adapts a function to Marker. Function markers never compare
// equal to another marker.
type MarkerFunc func(s segment.Segment, fragment string, t segment.Type, pos segment.Path) string

func (f MarkerFunc) Mark(s segment.Segment, fragment string, t segment.Type, pos segment.Path) string {
	return f(s, fragment, t, pos)
}

// Equaler lets a marker decide which markers duplicate it.
type Equaler interface {
	Equal(other Marker) bool
}

// NoOp returns fragments unchanged.
type NoOp struct{}

func (NoOp) Mark(_ segment.Segment, fragment string, _ segment.Type, _ segment.Path) string {
	return fragment
}

// Equivalent reports whether a and b are the same marker: by Equal when a
// implements Equaler, otherwise by == for comparable types.
func Equivalent(a, b Marker) bool {
	if a == nil || b == nil {
		return a == b
	}
	if eq, ok := a.(Equaler); ok {
		return eq.Equal(b)
	}
	ta := reflect.TypeOf(a)
	if ta != reflect.TypeOf(b) || !ta.Comparable() {
		return false
	}
	return a == b
}
