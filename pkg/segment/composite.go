package segment

import (
	"fmt"
	"slices"
)

// Layout describes how a composite interleaves fixed wrapper strings with
// its children. Markup[i] precedes child MarkupOrder[i] and the final
// wrapper closes the output; Text and TextOrder do the same for the
// diagnostic form.
type Layout struct {
	// Name identifies the construct, e.g. "fraction" or "sum".
	Name string
	// Param is the construct argument, such as the bound variable of a sum.
	Param string

	Markup      []string
	MarkupOrder []int
	Text        []string
	TextOrder   []int

	Super int
	Sub   int
}

func (l *Layout) equal(o *Layout) bool {
	if l == nil || o == nil {
		return l == o
	}
	return l.Name == o.Name && l.Param == o.Param &&
		slices.Equal(l.Markup, o.Markup) && slices.Equal(l.MarkupOrder, o.MarkupOrder) &&
		slices.Equal(l.Text, o.Text) && slices.Equal(l.TextOrder, o.TextOrder) &&
		l.Super == o.Super && l.Sub == o.Sub
}

func (l *Layout) validate(children int) error {
	check := func(form string, wrappers []string, order []int) error {
		if len(wrappers) != len(order)+1 {
			return fmt.Errorf("%w: %s has %d wrappers for %d slots", ErrInvalidLayout, form, len(wrappers), len(order))
		}
		for _, idx := range order {
			if idx < 0 || idx >= children {
				return fmt.Errorf("%w: %s order references child %d of %d", ErrInvalidLayout, form, idx, children)
			}
		}
		return nil
	}
	if err := check("markup", l.Markup, l.MarkupOrder); err != nil {
		return err
	}
	return check("text", l.Text, l.TextOrder)
}

// Composite creates a wrapper-driven composite of type t. Nil children
// become placeholders.
func Composite(t Type, l Layout, children ...*Node) (*Node, error) {
	if err := l.validate(len(children)); err != nil {
		return nil, err
	}
	return compose(t, l, children...), nil
}

func compose(t Type, l Layout, children ...*Node) *Node {
	l.Markup = slices.Clone(l.Markup)
	l.MarkupOrder = slices.Clone(l.MarkupOrder)
	l.Text = slices.Clone(l.Text)
	l.TextOrder = slices.Clone(l.TextOrder)
	return &Node{
		kind:     KindComposite,
		typ:      t,
		children: orEmpty(children),
		layout:   &l,
		super:    l.Super,
		sub:      l.Sub,
	}
}
