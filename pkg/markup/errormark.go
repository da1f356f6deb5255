package markup

import (
	"sync"

	"github.com/aretw0/typeset/pkg/segment"
)

// ErrorMarker highlights segments flagged with an error,
// \bbox[red]{ fragment }, and remembers where it last did so.
type ErrorMarker struct {
	mu   sync.Mutex
	last segment.Path
	hit  bool
}

// NewErrorMarker creates an error marker.
func NewErrorMarker() *ErrorMarker {
	return &ErrorMarker{}
}

func (m *ErrorMarker) Mark(s segment.Segment, fragment string, _ segment.Type, pos segment.Path) string {
	if s == nil || !s.HasError() {
		return fragment
	}
	m.mu.Lock()
	m.last, m.hit = pos, true
	m.mu.Unlock()
	return `\bbox[red]{ ` + fragment + ` }`
}

// LastPosition returns the path of the most recently highlighted segment.
func (m *ErrorMarker) LastPosition() (segment.Path, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.last, m.hit
}

// Reset forgets the recorded position.
func (m *ErrorMarker) Reset() {
	m.mu.Lock()
	m.last, m.hit = segment.Path{}, false
	m.mu.Unlock()
}

func (m *ErrorMarker) Equal(o Marker) bool {
	_, ok := o.(*ErrorMarker)
	return ok
}
