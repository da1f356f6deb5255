/*
Package typeset builds and renders mathematical expressions as persistent
segment trees.

An expression is a chain of segments: leaves (digits, variables, operators),
composites with child chains (fractions, powers, sums) and placeholders for
gaps still to be filled. Trees are immutable; every edit returns a new root
that shares the untouched structure with the old one, which makes undo
histories and concurrent readers cheap.

# Rendering

Trees render two ways:

  - Markup: TeX for MathJax, piped through a marker formatter that adds
    positions (\cssId), caret, error highlighting, class names and styles.
  - Text: a diagnostic form such as " Rational[1 ,x ]", with notes about
    focused or erroneous segments collected in a diag.Log.

# Usage

	eng := typeset.New()

	tree, err := eng.Load("quadratic.yaml")
	if err != nil {
		log.Fatal(err)
	}
	fmt.Println(eng.Markup(tree))

Build trees directly with pkg/segment, edit them with segment.Builder or the
undoable pkg/editor, persist them as documents (pkg/document) through a
ports.DocumentStore and serve them over HTTP (pkg/adapters/http).
*/
package typeset
