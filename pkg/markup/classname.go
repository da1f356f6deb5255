package markup

import (
	"maps"
	"sync"

	"github.com/aretw0/typeset/pkg/segment"
)

// ClassNameMarker wraps fragments of registered types in \class{name}{fragment}.
type ClassNameMarker struct {
	mu    sync.RWMutex
	names map[segment.Type]string
}

// NewClassNameMarker creates a marker with no registered classes.
func NewClassNameMarker() *ClassNameMarker {
	return &ClassNameMarker{names: make(map[segment.Type]string)}
}

// Register assigns a class name to t. An empty name unregisters it.
func (m *ClassNameMarker) Register(t segment.Type, name string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if name == "" {
		delete(m.names, t)
		return
	}
	m.names[t] = name
}

// Name returns the class registered for t.
func (m *ClassNameMarker) Name(t segment.Type) (string, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	name, ok := m.names[t]
	return name, ok
}

// Names returns a copy of the registrations.
func (m *ClassNameMarker) Names() map[segment.Type]string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return maps.Clone(m.names)
}

func (m *ClassNameMarker) Mark(s segment.Segment, fragment string, t segment.Type, _ segment.Path) string {
	if s == nil {
		return fragment
	}
	name, ok := m.Name(t)
	if !ok {
		return fragment
	}
	return `\class{` + name + `}{` + fragment + `}`
}

func (m *ClassNameMarker) Equal(o Marker) bool {
	_, ok := o.(*ClassNameMarker)
	return ok
}
