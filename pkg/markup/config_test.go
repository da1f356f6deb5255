package markup_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/aretw0/typeset/pkg/markup"
	"github.com/aretw0/typeset/pkg/segment"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const yamlConfig = `
disabled: [cssid]
classes:
  operator: op
styles:
  integer:
    colour: blue
    fonts: [bold]
caret_mode: overwrite
`

func TestConfig_ApplyYAML(t *testing.T) {
	cfg, err := markup.ParseConfig([]byte(yamlConfig), "yaml")
	require.NoError(t, err)

	f := markup.New()
	require.NoError(t, cfg.Apply(f))

	assert.False(t, f.Enabled(markup.KeyCSSID))
	assert.Equal(t, []int{markup.KeyCSSID}, f.DisabledKeys())

	one, err := segment.Digit("1").SetFocus(0, true)
	require.NoError(t, err)
	assert.Equal(t, `\cssId{caret}{\bbox[black]{ \style{color:#0000ff;}{\mathbf{1}} }}`, segment.Markup(one, f))
	assert.Equal(t, `\class{op}{ +}`, segment.Markup(segment.Operator("+"), f))
}

func TestConfig_LoadJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "markup.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"disabled":["error"],"caret_mode":"append"}`), 0o644))

	cfg, err := markup.LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"error"}, cfg.Disabled)
	assert.Equal(t, "append", cfg.CaretMode)

	f := markup.New()
	require.NoError(t, cfg.Apply(f))
	caret, _ := f.Caret()
	assert.Equal(t, markup.ModeAppend, caret.Mode())
	assert.False(t, f.Enabled(markup.KeyError))
}

func TestConfig_Invalid(t *testing.T) {
	tests := map[string]markup.Config{
		"marker": {Disabled: []string{"sparkle"}},
		"type":   {Classes: map[string]string{"hexagon": "x"}},
		"font":   {Styles: map[string]markup.StyleConfig{"integer": {Fonts: []string{"wavy"}}}},
		"colour": {Styles: map[string]markup.StyleConfig{"integer": {Colour: "#zzzzzz"}}},
		"caret":  {CaretMode: "sideways"},
	}
	for name, cfg := range tests {
		t.Run(name, func(t *testing.T) {
			f := markup.New()
			keys := f.Keys()
			assert.ErrorIs(t, cfg.Apply(f), markup.ErrInvalidConfig)
			assert.Equal(t, keys, f.Keys(), "nothing is applied on error")
		})
	}

	_, err := markup.LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
	_, err = markup.ParseConfig([]byte("disabled: {"), "yaml")
	assert.Error(t, err)
}
