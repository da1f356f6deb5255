package segment

import (
	"fmt"
	"strings"
)

// Type classifies a segment. Every node is given exactly one Type at
// construction and consumers compare types with == or Is.
type Type int

// TypeNone is the parent of every family root.
const TypeNone Type = -1

// Family roots.
const (
	TypeEmpty Type = iota
	TypeEditable
	TypeNonEditable
	TypeAlphanumeric
	TypePunctuation
	TypeWhitespace
	TypeSymbol
	TypeObject

	// Alphanumeric family.
	TypeNumeric
	TypeText

	// Numeric family.
	TypeDecimal
	TypeNonDecimal
	TypeInteger
	TypeMantissa

	// Recurring mantissa forms.
	TypeEllipsis
	TypeVinculum
	TypeDot
	TypeDotAll
	TypeDotBar
	TypeArc
	TypeParenthesised

	// Text family.
	TypeCased
	TypeNonCased
	TypeUpper
	TypeLower
	TypeVarBound
	TypeConstant
	TypeVarFree
	TypeUnit

	// Punctuation family.
	TypeOperator
	TypeSeparator
	TypeDelimiter
	TypePair
	TypePrefix
	TypeInfix
	TypeSuffix
	TypePrefixPlus
	TypePrefixMinus
	TypePoint
	TypeLeft
	TypeRight
	TypeLParenthesis
	TypeRParenthesis

	// Whitespace family.
	TypeHWhitespace
	TypeVWhitespace

	// Object family.
	TypeFunction
	TypeFraction
	TypeMFraction
	TypeAutoComplete
	TypeExponent

	typeCount
)

type typeInfo struct {
	name   string
	parent Type
	// factor multiplies the parent's legacy code; for roots it is the code.
	factor int
}

var typeTable = [typeCount]typeInfo{
	TypeEmpty:        {"empty", TypeNone, 0},
	TypeEditable:     {"editable", TypeNone, 1},
	TypeNonEditable:  {"non_editable", TypeNone, -1},
	TypeAlphanumeric: {"alphanumeric", TypeNone, 2},
	TypePunctuation:  {"punctuation", TypeNone, 3},
	TypeWhitespace:   {"whitespace", TypeNone, 4},
	TypeSymbol:       {"symbol", TypeNone, 5},
	TypeObject:       {"object", TypeNone, 7},

	TypeNumeric: {"numeric", TypeAlphanumeric, 2},
	TypeText:    {"text", TypeAlphanumeric, 3},

	TypeDecimal:    {"decimal", TypeNumeric, 2},
	TypeNonDecimal: {"non_decimal", TypeNumeric, 3},
	TypeInteger:    {"integer", TypeNumeric, 4},
	TypeMantissa:   {"mantissa", TypeNumeric, 5},

	TypeEllipsis:      {"ellipsis", TypeMantissa, 2},
	TypeVinculum:      {"vinculum", TypeMantissa, 3},
	TypeDot:           {"dot", TypeMantissa, 4},
	TypeDotAll:        {"dot_all", TypeMantissa, 5},
	TypeDotBar:        {"dot_bar", TypeMantissa, 6},
	TypeArc:           {"arc", TypeMantissa, 7},
	TypeParenthesised: {"parenthesised", TypeMantissa, 8},

	TypeCased:    {"cased", TypeText, 2},
	TypeNonCased: {"non_cased", TypeText, 3},
	TypeUpper:    {"upper", TypeCased, 2},
	TypeLower:    {"lower", TypeCased, 3},
	TypeVarBound: {"var_bound", TypeUpper, 2},
	TypeConstant: {"constant", TypeLower, 2},
	TypeVarFree:  {"var_free", TypeLower, 3},
	TypeUnit:     {"unit", TypeNonCased, 2},

	TypeOperator:     {"operator", TypePunctuation, 2},
	TypeSeparator:    {"separator", TypePunctuation, 3},
	TypeDelimiter:    {"delimiter", TypePunctuation, 4},
	TypePair:         {"pair", TypePunctuation, 5},
	TypePrefix:       {"prefix", TypeOperator, 2},
	TypeInfix:        {"infix", TypeOperator, 3},
	TypeSuffix:       {"suffix", TypeOperator, 4},
	TypePrefixPlus:   {"prefix_plus", TypePrefix, 2},
	TypePrefixMinus:  {"prefix_minus", TypePrefix, 3},
	TypePoint:        {"point", TypeSeparator, 2},
	TypeLeft:         {"left", TypePair, 2},
	TypeRight:        {"right", TypePair, 3},
	TypeLParenthesis: {"l_parenthesis", TypeLeft, 2},
	TypeRParenthesis: {"r_parenthesis", TypeRight, 2},

	TypeHWhitespace: {"h_whitespace", TypeWhitespace, 2},
	TypeVWhitespace: {"v_whitespace", TypeWhitespace, 3},

	TypeFunction:     {"function", TypeObject, 2},
	TypeFraction:     {"fraction", TypeObject, 3},
	TypeMFraction:    {"m_fraction", TypeObject, 4},
	TypeAutoComplete: {"auto_complete", TypeObject, 5},
	TypeExponent:     {"exponent", TypeObject, 6},
}

// Valid reports whether t is one of the declared types.
func (t Type) Valid() bool {
	return t >= 0 && t < typeCount
}

// Parent returns the family t specialises, or TypeNone for a family root.
func (t Type) Parent() Type {
	if !t.Valid() {
		return TypeNone
	}
	return typeTable[t].parent
}

// Root returns the top-level family of t.
func (t Type) Root() Type {
	for t.Parent() != TypeNone {
		t = t.Parent()
	}
	return t
}

// Is reports whether t equals family or is a (transitive) specialisation of it.
func (t Type) Is(family Type) bool {
	for ; t != TypeNone; t = t.Parent() {
		if t == family {
			return true
		}
	}
	return false
}

// Code returns the legacy multiplicative classification code. Codes of
// unrelated types can coincide, so they are only meant for interop.
func (t Type) Code() int {
	if !t.Valid() {
		return 0
	}
	info := typeTable[t]
	if info.parent == TypeNone {
		return info.factor
	}
	return info.parent.Code() * info.factor
}

func (t Type) String() string {
	if !t.Valid() {
		return fmt.Sprintf("type(%d)", int(t))
	}
	return typeTable[t].name
}

// ParseType maps a type name as returned by Type.String back to its Type.
func ParseType(name string) (Type, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	for t := Type(0); t < typeCount; t++ {
		if typeTable[t].name == name {
			return t, nil
		}
	}
	return TypeNone, fmt.Errorf("%w: %q", ErrUnknownType, name)
}

// Types returns every declared type in declaration order.
func Types() []Type {
	ts := make([]Type, 0, typeCount)
	for t := Type(0); t < typeCount; t++ {
		ts = append(ts, t)
	}
	return ts
}
