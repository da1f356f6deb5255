package markup

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/aretw0/typeset/pkg/segment"
)

// ErrInvalidConfig is returned for configuration values that cannot be applied.
var ErrInvalidConfig = errors.New("invalid markup config")

// StyleConfig is the file form of a Style.
type StyleConfig struct {
	Colour string   `yaml:"colour,omitempty" json:"colour,omitempty"`
	Fonts  []string `yaml:"fonts,omitempty" json:"fonts,omitempty"`
}

// Config tunes a Formatter built with New. Types are referred to by name,
// e.g. "integer" or "var_free".
type Config struct {
	// Disabled lists markers to switch off: style, cssid, class, caret, error.
	Disabled  []string               `yaml:"disabled,omitempty" json:"disabled,omitempty"`
	Classes   map[string]string      `yaml:"classes,omitempty" json:"classes,omitempty"`
	Styles    map[string]StyleConfig `yaml:"styles,omitempty" json:"styles,omitempty"`
	CaretMode string                 `yaml:"caret_mode,omitempty" json:"caret_mode,omitempty"`
}

var markerKeys = map[string]int{
	"style": KeyStyle,
	"cssid": KeyCSSID,
	"class": KeyClassName,
	"caret": KeyCaret,
	"error": KeyError,
}

// MarkerKey resolves a built-in marker name to its key.
func MarkerKey(name string) (int, bool) {
	k, ok := markerKeys[strings.ToLower(strings.TrimSpace(name))]
	return k, ok
}

// LoadConfig reads a YAML or JSON (by extension) configuration file.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read markup config: %w", err)
	}
	format := "yaml"
	if strings.ToLower(filepath.Ext(path)) == ".json" {
		format = "json"
	}
	return ParseConfig(data, format)
}

// ParseConfig decodes a configuration in the given format ("yaml" or "json").
func ParseConfig(data []byte, format string) (*Config, error) {
	var cfg Config
	switch format {
	case "json":
		if err := json.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("failed to parse markup config: %w", err)
		}
	default:
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("failed to parse markup config: %w", err)
		}
	}
	return &cfg, nil
}

// Apply registers classes, styles and the caret mode on f, then disables
// the listed markers. Nothing is changed when any value is invalid.
func (c *Config) Apply(f *Formatter) error {
	mode, err := ParseInputMode(c.CaretMode)
	if err != nil {
		return err
	}

	classes := make(map[segment.Type]string, len(c.Classes))
	for name, class := range c.Classes {
		t, err := segment.ParseType(name)
		if err != nil {
			return fmt.Errorf("%w: class for %v", ErrInvalidConfig, err)
		}
		classes[t] = class
	}

	styles := make(map[segment.Type]Style, len(c.Styles))
	for name, sc := range c.Styles {
		t, err := segment.ParseType(name)
		if err != nil {
			return fmt.Errorf("%w: style for %v", ErrInvalidConfig, err)
		}
		st, err := sc.style()
		if err != nil {
			return err
		}
		styles[t] = st
	}

	disabled := make([]int, 0, len(c.Disabled))
	for _, name := range c.Disabled {
		k, ok := MarkerKey(name)
		if !ok {
			return fmt.Errorf("%w: unknown marker %q", ErrInvalidConfig, name)
		}
		disabled = append(disabled, k)
	}

	if m, ok := f.ClassName(); ok {
		for t, class := range classes {
			m.Register(t, class)
		}
	}
	if m, ok := f.Style(); ok {
		for t, st := range styles {
			m.Register(t, st)
		}
	}
	if m, ok := f.Caret(); ok {
		m.SetMode(mode)
	}
	for _, k := range disabled {
		f.Disable(k)
	}
	return nil
}

func (sc StyleConfig) style() (Style, error) {
	var st Style
	for _, name := range sc.Fonts {
		fs, err := ParseFontStyle(name)
		if err != nil {
			return Style{}, err
		}
		st.Fonts |= fs
	}
	if sc.Colour != "" {
		c, err := ParseColour(sc.Colour)
		if err != nil {
			return Style{}, err
		}
		st.Colour, st.Coloured = c, true
	}
	return st, nil
}
