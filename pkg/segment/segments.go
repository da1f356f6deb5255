package segment

import (
	"fmt"
	"slices"
	"sort"
)

// Point creates a decimal point.
func Point() *Node { return Basic(".", TypePoint) }

// Operator creates an infix operator symbol.
func Operator(sym string) *Node { return Basic(" "+sym, TypeOperator) }

// OperatorFormat creates an operator whose markup differs from its text,
// e.g. OperatorFormat(` \times`, " *").
func OperatorFormat(format, text string) *Node {
	return BasicFormat(format, text, TypeOperator)
}

// BoundVariable creates a variable bound by an enclosing construct.
func BoundVariable(name string) *Node { return Basic(" "+name, TypeVarBound) }

// FreeVariable creates a free variable.
func FreeVariable(name string) *Node { return Basic(" "+name, TypeVarFree) }

// Constant creates a named constant such as \pi.
func Constant(format, text string) *Node { return BasicFormat(format, text, TypeConstant) }

// LeftParen and RightParen create stand-alone parentheses.
func LeftParen() *Node { return BasicFormat(` \left(`, " (", TypeLParenthesis) }

func RightParen() *Node { return BasicFormat(` \right)`, " )", TypeRParenthesis) }

// Fraction creates num over den.
func Fraction(num, den *Node) *Node {
	return compose(TypeFraction, Layout{
		Name:        "fraction",
		Markup:      []string{` \frac{`, ` }{`, `}`},
		MarkupOrder: []int{0, 1},
		Text:        []string{" Rational[", " ,", " ]"},
		TextOrder:   []int{0, 1},
		Super:       0,
		Sub:         1,
	}, num, den)
}

// Paren creates a parenthesised group.
func Paren(inner *Node) *Node {
	return compose(TypeFunction, Layout{
		Name:        "paren",
		Markup:      []string{` \left(`, ` \right)`},
		MarkupOrder: []int{0},
		Text:        []string{" (", " )"},
		TextOrder:   []int{0},
		Super:       -1,
		Sub:         -1,
	}, inner)
}

// Exp creates e raised to x.
func Exp(x *Node) *Node {
	return compose(TypeFunction, Layout{
		Name:        "exp",
		Markup:      []string{` e^{`, ` }`},
		MarkupOrder: []int{0},
		Text:        []string{" Exp[", " ]"},
		TextOrder:   []int{0},
		Super:       0,
		Sub:         -1,
	}, x)
}

// Pow creates base raised to exp.
func Pow(base, exp *Node) *Node {
	return compose(TypeExponent, Layout{
		Name:        "pow",
		Markup:      []string{"", ` ^{`, ` }`},
		MarkupOrder: []int{0, 1},
		Text:        []string{"", " ^(", " )"},
		TextOrder:   []int{0, 1},
		Super:       1,
		Sub:         0,
	}, base, exp)
}

// Root creates the degree-th root of radicand.
func Root(degree, radicand *Node) *Node {
	return compose(TypeFunction, Layout{
		Name:        "root",
		Markup:      []string{` \sqrt[`, ` ]{`, ` }`},
		MarkupOrder: []int{0, 1},
		Text:        []string{" Power(", " , 1/", " )"},
		TextOrder:   []int{1, 0},
		Super:       0,
		Sub:         1,
	}, degree, radicand)
}

func unary(name string, markup, text [2]string) func(*Node) *Node {
	return func(x *Node) *Node {
		return compose(TypeFunction, Layout{
			Name:        name,
			Markup:      markup[:],
			MarkupOrder: []int{0},
			Text:        text[:],
			TextOrder:   []int{0},
			Super:       -1,
			Sub:         -1,
		}, x)
	}
}

var (
	// Sqrt creates a square root.
	Sqrt = unary("sqrt", [2]string{` \sqrt{`, ` }`}, [2]string{" Sqrt[", " ]"})
	// Abs creates an absolute value.
	Abs = unary("abs", [2]string{` \left|`, ` \right|`}, [2]string{" Abs[", " ]"})
	// Floor creates a floor bracket.
	Floor = unary("floor", [2]string{` \left\lfloor`, ` \right\rfloor`}, [2]string{" Floor[", " ]"})
	// Ceil creates a ceiling bracket.
	Ceil = unary("ceil", [2]string{` \left\lceil`, ` \right\rceil`}, [2]string{" Ceiling[", " ]"})
)

// LogBase creates the logarithm of arg in base.
func LogBase(base, arg *Node) *Node {
	return compose(TypeObject, Layout{
		Name:        "log",
		Markup:      []string{` \log_{`, ` } \left(`, ` \right)`},
		MarkupOrder: []int{0, 1},
		Text:        []string{" Log[", " ,", " ]"},
		TextOrder:   []int{1, 0},
		Super:       1,
		Sub:         0,
	}, base, arg)
}

func series(name, sym, fn string) func(string, *Node, *Node, *Node) *Node {
	return func(index string, upper, lower, body *Node) *Node {
		return compose(TypeObject, Layout{
			Name:        name,
			Param:       index,
			Markup:      []string{fmt.Sprintf(` \%s\limits_{%s = `, sym, index), ` }^{`, ` }\,`, ""},
			MarkupOrder: []int{1, 0, 2},
			Text:        []string{" " + fn + "[", fmt.Sprintf(" ,{%s,", index), " ,", " }]"},
			TextOrder:   []int{2, 1, 0},
			Super:       0,
			Sub:         1,
		}, upper, lower, body)
	}
}

var (
	// Sum creates the sum of body for index from lower to upper.
	Sum = series("sum", "sum", "Sum")
	// Product creates the product of body for index from lower to upper.
	Product = series("product", "prod", "Product")
)

// Integral creates the definite integral of body over index.
func Integral(index string, upper, lower, body *Node) *Node {
	return compose(TypeObject, Layout{
		Name:        "integral",
		Param:       index,
		Markup:      []string{` \int\limits_{`, ` }^{`, ` }`, fmt.Sprintf(` \,\mathrm{d}%s`, index)},
		MarkupOrder: []int{1, 0, 2},
		Text:        []string{" Integrate[", fmt.Sprintf(" ,{%s,", index), " ,", " }]"},
		TextOrder:   []int{2, 1, 0},
		Super:       0,
		Sub:         1,
	}, upper, lower, body)
}

// Limit creates the limit of body as index approaches value.
func Limit(index string, value, body *Node) *Node {
	return compose(TypeObject, Layout{
		Name:        "limit",
		Param:       index,
		Markup:      []string{fmt.Sprintf(` \lim\limits_{%s \to `, index), ` }\,`, ""},
		MarkupOrder: []int{0, 1},
		Text:        []string{" Limit[", fmt.Sprintf(" , %s -> ", index), " ]"},
		TextOrder:   []int{1, 0},
		Super:       1,
		Sub:         0,
	}, value, body)
}

// Diff creates the derivative of body with respect to index.
func Diff(index string, body *Node) *Node {
	return compose(TypeFunction, Layout{
		Name:        "diff",
		Param:       index,
		Markup:      []string{fmt.Sprintf(` \frac{\mathrm{d}}{\mathrm{d}\, %s}\,`, index), ""},
		MarkupOrder: []int{0},
		Text:        []string{" D[", fmt.Sprintf(" , %s]", index)},
		TextOrder:   []int{0},
		Super:       -1,
		Sub:         -1,
	}, body)
}

// factory builds a named composite from a parameter and its children.
type factory struct {
	arity int
	param bool
	build func(param string, children []*Node) *Node
}

var factories = map[string]factory{
	"fraction": {arity: 2, build: func(_ string, c []*Node) *Node { return Fraction(c[0], c[1]) }},
	"paren":    {arity: 1, build: func(_ string, c []*Node) *Node { return Paren(c[0]) }},
	"exp":      {arity: 1, build: func(_ string, c []*Node) *Node { return Exp(c[0]) }},
	"pow":      {arity: 2, build: func(_ string, c []*Node) *Node { return Pow(c[0], c[1]) }},
	"root":     {arity: 2, build: func(_ string, c []*Node) *Node { return Root(c[0], c[1]) }},
	"sqrt":     {arity: 1, build: func(_ string, c []*Node) *Node { return Sqrt(c[0]) }},
	"abs":      {arity: 1, build: func(_ string, c []*Node) *Node { return Abs(c[0]) }},
	"floor":    {arity: 1, build: func(_ string, c []*Node) *Node { return Floor(c[0]) }},
	"ceil":     {arity: 1, build: func(_ string, c []*Node) *Node { return Ceil(c[0]) }},
	"log":      {arity: 2, build: func(_ string, c []*Node) *Node { return LogBase(c[0], c[1]) }},
	"sum":      {arity: 3, param: true, build: func(p string, c []*Node) *Node { return Sum(p, c[0], c[1], c[2]) }},
	"product":  {arity: 3, param: true, build: func(p string, c []*Node) *Node { return Product(p, c[0], c[1], c[2]) }},
	"integral": {arity: 3, param: true, build: func(p string, c []*Node) *Node { return Integral(p, c[0], c[1], c[2]) }},
	"limit":    {arity: 2, param: true, build: func(p string, c []*Node) *Node { return Limit(p, c[0], c[1]) }},
	"diff":     {arity: 1, param: true, build: func(p string, c []*Node) *Node { return Diff(p, c[0]) }},
}

// Build creates the composite registered under name.
func Build(name, param string, children ...*Node) (*Node, error) {
	f, ok := factories[name]
	if !ok {
		return nil, fmt.Errorf("%w: no composite named %q", ErrInvalidLayout, name)
	}
	if len(children) != f.arity {
		return nil, fmt.Errorf("%w: %s takes %d children, got %d", ErrInvalidLayout, name, f.arity, len(children))
	}
	if f.param && param == "" {
		return nil, fmt.Errorf("%w: %s needs a parameter", ErrInvalidLayout, name)
	}
	return f.build(param, slices.Clone(children)), nil
}

// Composites lists the names accepted by Build, sorted.
func Composites() []string {
	names := make([]string, 0, len(factories))
	for name := range factories {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
