package markup

import (
	"fmt"
	"strings"
	"sync"

	"github.com/aretw0/typeset/pkg/segment"
)

// CaretID is the element identifier given to the caret.
const CaretID = "caret"

// InputMode selects how the caret is drawn around the focused segment.
type InputMode int

const (
	ModeInsert InputMode = iota
	ModeAppend
	ModeOverwrite
	ModePrepend
)

func (m InputMode) String() string {
	switch m {
	case ModeInsert:
		return "insert"
	case ModeAppend:
		return "append"
	case ModeOverwrite:
		return "overwrite"
	case ModePrepend:
		return "prepend"
	}
	return fmt.Sprintf("mode(%d)", int(m))
}

// ParseInputMode maps a mode name back to its InputMode.
func ParseInputMode(s string) (InputMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "insert":
		return ModeInsert, nil
	case "append":
		return ModeAppend, nil
	case "overwrite":
		return ModeOverwrite, nil
	case "prepend":
		return ModePrepend, nil
	}
	return ModeInsert, fmt.Errorf("%w: unknown input mode %q", ErrInvalidConfig, s)
}

// CaretMarker draws the caret around focused segments and remembers the
// position it was last drawn at.
type CaretMarker struct {
	mu   sync.Mutex
	mode InputMode
	last segment.Path
	hit  bool
}

// NewCaretMarker creates a caret marker drawing in mode.
func NewCaretMarker(mode InputMode) *CaretMarker {
	return &CaretMarker{mode: mode}
}

// Mode returns the current input mode.
func (m *CaretMarker) Mode() InputMode {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.mode
}

// SetMode changes the input mode for subsequent renders.
func (m *CaretMarker) SetMode(mode InputMode) {
	m.mu.Lock()
	m.mode = mode
	m.mu.Unlock()
}

func (m *CaretMarker) Mark(s segment.Segment, fragment string, _ segment.Type, pos segment.Path) string {
	if s == nil || !s.Focused() {
		return fragment
	}
	m.mu.Lock()
	m.last, m.hit = pos, true
	mode := m.mode
	m.mu.Unlock()

	switch mode {
	case ModeAppend:
		return `\cssId{` + CaretID + `}{\left\lfloor ` + fragment + ` \right.}`
	case ModeOverwrite:
		return `\cssId{` + CaretID + `}{\bbox[black]{ ` + fragment + ` }}`
	case ModePrepend:
		return `\cssId{` + CaretID + `}{\left. ` + fragment + ` \right\rfloor}`
	default:
		return `\cssId{` + CaretID + `}{\left|` + fragment + `\right.}`
	}
}

// LastPosition returns the path the caret was last drawn at.
func (m *CaretMarker) LastPosition() (segment.Path, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.last, m.hit
}

// Reset forgets the recorded position.
func (m *CaretMarker) Reset() {
	m.mu.Lock()
	m.last, m.hit = segment.Path{}, false
	m.mu.Unlock()
}

func (m *CaretMarker) Equal(o Marker) bool {
	_, ok := o.(*CaretMarker)
	return ok
}
