package segment

// Digit creates an integer numeral. A run of digits renders as one number.
func Digit(d string) *Node {
	return DigitType(d, TypeInteger)
}

// DigitType creates a numeral of an explicit numeric type, e.g. TypeMantissa
// or one of the recurring forms.
func DigitType(d string, t Type) *Node {
	n := Basic(d, t)
	n.numeral = true
	return n
}

// Number builds a chain of digits from s, one node per rune. A '.' becomes a
// decimal point and the digits after it are mantissa digits.
func Number(s string) (*Node, error) {
	var chain *Node
	t := TypeInteger
	for _, r := range s {
		var next *Node
		if r == '.' {
			next = Point()
			t = TypeMantissa
		} else {
			next = DigitType(string(r), t)
		}
		if chain == nil {
			chain = next
			continue
		}
		var err error
		if chain, err = chain.Concat(next); err != nil {
			return nil, err
		}
	}
	if chain == nil {
		return Empty(), nil
	}
	return chain, nil
}
