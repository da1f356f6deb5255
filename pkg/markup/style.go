package markup

import (
	"fmt"
	"maps"
	"strings"
	"sync"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/aretw0/typeset/pkg/segment"
)

// FontStyle is a set of font commands, applied innermost first in
// declaration order.
type FontStyle uint8

const (
	Bold FontStyle = 1 << iota
	Italic
	Underline
	Monospace
	Roman
	Caligraphic
	StrikeThrough
)

var fontStyles = []struct {
	style FontStyle
	name  string
	cmd   string
}{
	{Bold, "bold", `\mathbf`},
	{Italic, "italic", `\mathit`},
	{Underline, "underline", `\underline`},
	{Monospace, "monospace", `\mathtt`},
	{Roman, "roman", `\mathrm`},
	{Caligraphic, "caligraphic", `\mathcal`},
	{StrikeThrough, "strike_through", `\cancelto`},
}

func (f FontStyle) String() string {
	var names []string
	for _, fs := range fontStyles {
		if f&fs.style != 0 {
			names = append(names, fs.name)
		}
	}
	if len(names) == 0 {
		return "normal"
	}
	return strings.Join(names, "|")
}

// ParseFontStyle maps one font style name to its flag.
func ParseFontStyle(name string) (FontStyle, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	if name == "normal" {
		return 0, nil
	}
	for _, fs := range fontStyles {
		if fs.name == name {
			return fs.style, nil
		}
	}
	return 0, fmt.Errorf("%w: unknown font style %q", ErrInvalidConfig, name)
}

var namedColours = map[string]string{
	"black":  "#000000",
	"white":  "#ffffff",
	"red":    "#ff0000",
	"green":  "#008000",
	"blue":   "#0000ff",
	"yellow": "#ffff00",
	"orange": "#ffa500",
	"purple": "#800080",
	"gray":   "#808080",
	"grey":   "#808080",
}

// ParseColour accepts a hex colour (#rgb or #rrggbb) or a basic colour name.
func ParseColour(s string) (colorful.Color, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if hex, ok := namedColours[s]; ok {
		s = hex
	}
	c, err := colorful.Hex(s)
	if err != nil {
		return colorful.Color{}, fmt.Errorf("%w: colour %q: %v", ErrInvalidConfig, s, err)
	}
	return c, nil
}

// Style is the presentation registered for one segment type.
type Style struct {
	Fonts    FontStyle
	Colour   colorful.Color
	Coloured bool
}

// Apply wraps fragment in the font commands, then in the colour.
func (st Style) Apply(fragment string) string {
	for _, fs := range fontStyles {
		if st.Fonts&fs.style == 0 {
			continue
		}
		if fs.style == StrikeThrough {
			fragment = fs.cmd + "{" + fragment + "}{}"
		} else {
			fragment = fs.cmd + "{" + fragment + "}"
		}
	}
	if st.Coloured {
		fragment = `\style{color:` + st.Colour.Clamped().Hex() + `;}{` + fragment + `}`
	}
	return fragment
}

// StyleMarker applies the style registered for a segment's type.
type StyleMarker struct {
	mu     sync.RWMutex
	styles map[segment.Type]Style
}

// NewStyleMarker creates a style marker that renders non-decimal numerals
// in black roman type.
func NewStyleMarker() *StyleMarker {
	m := &StyleMarker{styles: make(map[segment.Type]Style)}
	m.Register(segment.TypeNonDecimal, Style{Fonts: Roman, Colour: colorful.Color{}, Coloured: true})
	return m
}

// Register sets the style of t.
func (m *StyleMarker) Register(t segment.Type, st Style) {
	m.mu.Lock()
	m.styles[t] = st
	m.mu.Unlock()
}

// RegisterColour sets the style of t from a colour string; an empty colour
// leaves the fragment uncoloured.
func (m *StyleMarker) RegisterColour(t segment.Type, colour string, fonts FontStyle) error {
	st := Style{Fonts: fonts}
	if colour != "" {
		c, err := ParseColour(colour)
		if err != nil {
			return err
		}
		st.Colour, st.Coloured = c, true
	}
	m.Register(t, st)
	return nil
}

// Unregister removes the style of t.
func (m *StyleMarker) Unregister(t segment.Type) {
	m.mu.Lock()
	delete(m.styles, t)
	m.mu.Unlock()
}

// Lookup returns the style of t.
func (m *StyleMarker) Lookup(t segment.Type) (Style, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	st, ok := m.styles[t]
	return st, ok
}

// Styles returns a copy of the registrations.
func (m *StyleMarker) Styles() map[segment.Type]Style {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return maps.Clone(m.styles)
}

func (m *StyleMarker) Mark(s segment.Segment, fragment string, t segment.Type, _ segment.Path) string {
	if s == nil {
		return fragment
	}
	st, ok := m.Lookup(t)
	if !ok {
		return fragment
	}
	return st.Apply(fragment)
}

func (m *StyleMarker) Equal(o Marker) bool {
	_, ok := o.(*StyleMarker)
	return ok
}
