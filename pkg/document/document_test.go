package document_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/aretw0/typeset/pkg/document"
	"github.com/aretw0/typeset/pkg/segment"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sample = `
version: 1
name: sample
expression:
  - "2"
  - {kind: operator, text: "+"}
  - kind: fraction
    focus: true
    children:
      - ["1"]
      - ["x"]
`

func TestParse_YAML(t *testing.T) {
	doc, err := document.Parse([]byte(sample), "yaml")
	require.NoError(t, err)
	assert.Equal(t, 1, doc.Version)
	assert.Equal(t, "sample", doc.Name)
	require.Len(t, doc.Expression, 3)
	assert.Equal(t, document.KindNumber, doc.Expression[0].Kind)

	tree, err := doc.Tree()
	require.NoError(t, err)
	assert.Equal(t, 3, tree.Len())
	assert.Equal(t, `2 + \frac{1 }{x}`, segment.Markup(tree, nil))
	assert.Equal(t, "2 + Rational[1 ,x ]", segment.Text(tree, nil))

	frac, err := tree.SegmentAt(2)
	require.NoError(t, err)
	assert.True(t, frac.Focused())
	assert.Equal(t, segment.TypeFraction, frac.Type())
}

func TestParse_JSONShorthand(t *testing.T) {
	doc, err := document.Parse([]byte(`{"version": 1, "expression": ["1.5", "y", {"kind": "empty", "error": true}]}`), "json")
	require.NoError(t, err)

	tree, err := doc.Tree()
	require.NoError(t, err)
	require.Equal(t, 5, tree.Len())

	mantissa, err := tree.SegmentAt(2)
	require.NoError(t, err)
	assert.Equal(t, segment.TypeMantissa, mantissa.Type())

	y, err := tree.SegmentAt(3)
	require.NoError(t, err)
	assert.Equal(t, segment.TypeVarFree, y.Type())

	gap, err := tree.SegmentAt(4)
	require.NoError(t, err)
	assert.Equal(t, segment.KindPlaceholder, gap.Kind())
	assert.True(t, gap.HasError())
}

func TestDocument_RoundTrip(t *testing.T) {
	b := segment.NewBuilder(nil)
	require.NoError(t, b.Append(segment.Sum("i", segment.Basic("n", segment.TypeVarFree), segment.Digit("1"),
		segment.Pow(segment.BoundVariable("i"), segment.Digit("2")))))
	require.NoError(t, b.Append(segment.OperatorFormat(` \times`, " *")))
	require.NoError(t, b.Append(segment.Array(segment.Digit("3"), nil)))
	require.NoError(t, b.Append(segment.Constant(`\pi`, "Pi")))
	require.NoError(t, b.SetError(true, 0, 2, 0))
	tree := b.Node()

	for _, format := range []string{"yaml", "json"} {
		t.Run(format, func(t *testing.T) {
			doc, err := document.Encode("series", tree)
			require.NoError(t, err)

			data, err := document.Marshal(doc, format)
			require.NoError(t, err)

			parsed, err := document.Parse(data, format)
			require.NoError(t, err)
			assert.Equal(t, "series", parsed.Name)

			got, err := parsed.Tree()
			require.NoError(t, err)
			assert.True(t, tree.Equal(got), "decoded tree differs:\n%s", data)
			assert.Equal(t, segment.Markup(tree, nil), segment.Markup(got, nil))

			body, err := segment.NewBuilder(got).At(0, 2, 0)
			require.NoError(t, err)
			assert.True(t, body.HasError())
		})
	}
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "expr.yaml")
	require.NoError(t, os.WriteFile(path, []byte(sample), 0o644))

	doc, err := document.Load(path)
	require.NoError(t, err)
	assert.Equal(t, "sample", doc.Name)

	assert.Equal(t, "json", document.FormatOf("a/b.JSON"))
	assert.Equal(t, "yaml", document.FormatOf("a/b.yml"))

	_, err = document.Load(filepath.Join(dir, "missing.yaml"))
	assert.Error(t, err)
}

func TestParse_Invalid(t *testing.T) {
	tests := map[string]string{
		"unknown kind":     `expression: [{kind: hexagon}]`,
		"missing kind":     `expression: [{text: x}]`,
		"unknown field":    `expression: [{kind: leaf, colour: red}]`,
		"bad type":         `expression: [{kind: leaf, text: x, type: hexagon}]`,
		"bad number":       `expression: [{kind: number, text: "1.2.3"}]`,
		"wrong arity":      `expression: [{kind: fraction, children: [["1"]]}]`,
		"missing param":    `expression: [{kind: sum, children: [["n"], ["1"], ["i"]]}]`,
		"bad child":        `expression: [{kind: sqrt, children: [[{kind: nope}]]}]`,
		"empty document":   ``,
		"expression shape": `expression: 5`,
	}
	for name, src := range tests {
		t.Run(name, func(t *testing.T) {
			doc, err := document.Parse([]byte(src), "yaml")
			if err == nil {
				_, err = doc.Tree()
			}
			assert.ErrorIs(t, err, document.ErrInvalidDocument)
		})
	}
}

func TestEncode_Unsupported(t *testing.T) {
	_, err := document.Encode("x", segment.Adapt(foreign{}))
	assert.ErrorIs(t, err, document.ErrUnsupported)
}

type foreign struct{}

func (foreign) Type() segment.Type { return segment.TypeSymbol }
func (foreign) Focused() bool      { return false }
func (foreign) HasError() bool     { return false }

func TestDocument_EmptyExpression(t *testing.T) {
	doc, err := document.Parse([]byte(`version: 1`), "yaml")
	require.NoError(t, err)
	tree, err := doc.Tree()
	require.NoError(t, err)
	assert.Equal(t, segment.KindPlaceholder, tree.Kind())
}
