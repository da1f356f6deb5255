package document

import (
	"fmt"

	"github.com/aretw0/typeset/pkg/segment"
)

// Encode returns the document form of the tree rooted at n.
func Encode(name string, n *segment.Node) (*Document, error) {
	specs, err := encodeChain(n)
	if err != nil {
		return nil, err
	}
	return &Document{Version: Version, Name: name, Expression: specs}, nil
}

func encodeChain(n *segment.Node) ([]NodeSpec, error) {
	var specs []NodeSpec
	for cur := n; cur != nil; cur = cur.Sibling() {
		spec, err := encodeNode(cur)
		if err != nil {
			return nil, err
		}
		specs = append(specs, spec)
	}
	return specs, nil
}

func encodeNode(n *segment.Node) (NodeSpec, error) {
	spec := NodeSpec{Focus: n.Focused(), Error: n.HasError()}
	switch n.Kind() {
	case segment.KindLeaf:
		spec.Text = n.Text()
		spec.Type = n.Type().String()
		if n.Template() != n.Text() {
			spec.Format = n.Template()
		}
		spec.Kind = KindLeaf
		if n.IsNumeral() {
			spec.Kind = KindDigit
		}
	case segment.KindPlaceholder:
		spec.Kind = KindEmpty
		spec.Text = n.Template()
	case segment.KindComposite:
		spec.Kind = KindArray
		if l := n.Layout(); l != nil {
			spec.Kind = l.Name
			spec.Param = l.Param
		}
		for _, c := range n.Children() {
			child, err := encodeChain(c)
			if err != nil {
				return NodeSpec{}, err
			}
			spec.Children = append(spec.Children, child)
		}
	default:
		return NodeSpec{}, fmt.Errorf("%w: %s of type %s", ErrUnsupported, n.Kind(), n.Type())
	}
	return spec, nil
}
