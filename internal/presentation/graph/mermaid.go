package graph

import (
	"fmt"
	"strings"

	"github.com/aretw0/typeset/pkg/segment"
)

// GenerateMermaid produces a Mermaid flowchart of a segment tree.
// Node IDs follow render paths. Shapes depend on the variant:
// - Leaf: [Rectangle]
// - Composite: ((Circle)), labelled with its layout name
// - Array: [[Subroutine]]
// - Placeholder: [/Parallelogram/]
// - Adapter: {{Hexagon}}
// Siblings are joined with solid arrows and child chains with dotted arrows
// labelled by slot. Focused and erroneous segments get highlight classes.
func GenerateMermaid(tree *segment.Node) string {
	var sb strings.Builder
	sb.WriteString("graph TD\n")

	var focused, errored []string
	writeChain(&sb, tree, segment.RootPath(), &focused, &errored)

	if len(focused)+len(errored) > 0 {
		sb.WriteString("\n    %% Overlay Styles\n")
		sb.WriteString("    classDef focused fill:#ffeb3b,stroke:#fbc02d,stroke-width:4px,color:#000;\n")
		sb.WriteString("    classDef error fill:#ffcdd2,stroke:#c62828,stroke-width:2px,color:#000;\n")
		for _, id := range focused {
			sb.WriteString(fmt.Sprintf("    class %s focused;\n", id))
		}
		for _, id := range errored {
			sb.WriteString(fmt.Sprintf("    class %s error;\n", id))
		}
	}
	return sb.String()
}

func writeChain(sb *strings.Builder, chain *segment.Node, p segment.Path, focused, errored *[]string) {
	prev := ""
	for cur := chain; cur != nil; cur = cur.Sibling() {
		p = p.Next()
		id := nodeID(p)

		opener, closer := shape(cur)
		sb.WriteString(fmt.Sprintf("    %s%s\"%s\"%s\n", id, opener, label(cur), closer))
		if prev != "" {
			sb.WriteString(fmt.Sprintf("    %s --> %s\n", prev, id))
		}
		if cur.Focused() {
			*focused = append(*focused, id)
		}
		if cur.HasError() {
			*errored = append(*errored, id)
		}

		for i, child := range cur.Children() {
			cp := p.Descend(i)
			sb.WriteString(fmt.Sprintf("    %s -. %d .-> %s\n", id, i, nodeID(cp.Next())))
			writeChain(sb, child, cp, focused, errored)
		}
		prev = id
	}
}

func shape(n *segment.Node) (string, string) {
	switch n.Kind() {
	case segment.KindComposite:
		if n.IsArray() {
			return "[[", "]]"
		}
		return "((", "))"
	case segment.KindPlaceholder:
		return "[/", "/]"
	case segment.KindAdapter:
		return "{{", "}}"
	}
	return "[", "]"
}

func label(n *segment.Node) string {
	var s string
	switch n.Kind() {
	case segment.KindComposite:
		s = "array"
		if l := n.Layout(); l != nil {
			s = l.Name
		}
	case segment.KindPlaceholder:
		s = "empty"
	case segment.KindAdapter:
		s = fmt.Sprintf("%T", n.Inner())
	default:
		s = strings.TrimSpace(n.Text())
		if s == "" {
			s = strings.TrimSpace(n.Template())
		}
		s = fmt.Sprintf("%s <br/> %s", s, n.Type())
	}
	// Mermaid labels cannot hold double quotes.
	return strings.ReplaceAll(s, "\"", "'")
}

// nodeID turns a path such as [0, 1, 0] into n_0_1_0.
func nodeID(p segment.Path) string {
	var sb strings.Builder
	sb.WriteString("n")
	for _, e := range p.Elems() {
		sb.WriteString(fmt.Sprintf("_%d", e))
	}
	return sb.String()
}
