package markup

import (
	"log/slog"
	"slices"
	"sync"

	"github.com/aretw0/typeset/internal/logging"
	"github.com/aretw0/typeset/pkg/segment"
)

// Keys of the built-in markers.
const (
	KeyStyle     = 0x0
	KeyCSSID     = 0x1
	KeyClassName = 0x2
	KeyCaret     = 0x7FFFFFFE
	KeyError     = 0x7FFFFFFF
)

// Formatter applies its active markers in ascending key order. Markers can
// be disabled and re-enabled without losing them; a key is never both
// active and disabled. A Formatter is safe for concurrent use.
type Formatter struct {
	mu       sync.RWMutex
	active   map[int]Marker
	order    []int
	disabled map[int]Marker
	logger   *slog.Logger
}

var _ segment.Formatter = (*Formatter)(nil)

// Option configures a Formatter.
type Option func(*Formatter)

// WithLogger sets the logger used by the formatter and its built-in markers.
func WithLogger(logger *slog.Logger) Option {
	return func(f *Formatter) {
		if logger == nil {
			logger = logging.NewNop()
		}
		f.logger = logger
	}
}

func newFormatter(opts []Option) *Formatter {
	f := &Formatter{
		active:   make(map[int]Marker),
		disabled: make(map[int]Marker),
		logger:   logging.NewNop(),
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// New returns a formatter with the style, identifier, class, caret and
// error markers registered under their default keys.
func New(opts ...Option) *Formatter {
	f := newFormatter(opts)
	f.Add(KeyStyle, NewStyleMarker())
	f.Add(KeyCSSID, NewCSSIDMarker(f.logger))
	f.Add(KeyClassName, NewClassNameMarker())
	f.Add(KeyCaret, NewCaretMarker(ModeInsert))
	f.Add(KeyError, NewErrorMarker())
	return f
}

// Empty returns a formatter holding a single no-op marker under key 0.
func Empty(opts ...Option) *Formatter {
	f := newFormatter(opts)
	f.Add(0, NoOp{})
	return f
}

// Format threads fragment through every active marker.
func (f *Formatter) Format(s segment.Segment, fragment string, t segment.Type, pos segment.Path) string {
	f.mu.RLock()
	defer f.mu.RUnlock()
	for _, k := range f.order {
		fragment = f.active[k].Mark(s, fragment, t, pos)
	}
	return fragment
}

func (f *Formatter) contains(m Marker) bool {
	for _, set := range []map[int]Marker{f.active, f.disabled} {
		for _, existing := range set {
			if Equivalent(existing, m) || Equivalent(m, existing) {
				return true
			}
		}
	}
	return false
}

func (f *Formatter) reorder() {
	f.order = f.order[:0]
	for k := range f.active {
		f.order = append(f.order, k)
	}
	slices.Sort(f.order)
}

// Add registers m as active under key. It reports false when m is nil or
// when the key or an equivalent marker is already registered.
func (f *Formatter) Add(key int, m Marker) bool {
	if m == nil {
		return false
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.active[key]; ok {
		return false
	}
	if _, ok := f.disabled[key]; ok {
		return false
	}
	if f.contains(m) {
		f.logger.Debug("marker already registered", "key", key)
		return false
	}
	f.active[key] = m
	f.reorder()
	return true
}

// Remove drops the marker under key, active or disabled.
func (f *Formatter) Remove(key int) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.active[key]; ok {
		delete(f.active, key)
		f.reorder()
		return true
	}
	if _, ok := f.disabled[key]; ok {
		delete(f.disabled, key)
		return true
	}
	return false
}

// Disable moves an active marker aside.
func (f *Formatter) Disable(key int) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	m, ok := f.active[key]
	if !ok {
		return false
	}
	delete(f.active, key)
	f.disabled[key] = m
	f.reorder()
	return true
}

// Enable restores a disabled marker.
func (f *Formatter) Enable(key int) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	m, ok := f.disabled[key]
	if !ok {
		return false
	}
	delete(f.disabled, key)
	f.active[key] = m
	f.reorder()
	return true
}

// Get returns the marker under key, active or disabled.
func (f *Formatter) Get(key int) (Marker, bool) {
	f.mu.RLock()
	defer f.mu.RUnlock()
	if m, ok := f.active[key]; ok {
		return m, true
	}
	m, ok := f.disabled[key]
	return m, ok
}

// Enabled reports whether key holds an active marker.
func (f *Formatter) Enabled(key int) bool {
	f.mu.RLock()
	defer f.mu.RUnlock()
	_, ok := f.active[key]
	return ok
}

// Keys returns the active keys in application order.
func (f *Formatter) Keys() []int {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return slices.Clone(f.order)
}

// DisabledKeys returns the disabled keys, sorted.
func (f *Formatter) DisabledKeys() []int {
	f.mu.RLock()
	defer f.mu.RUnlock()
	keys := make([]int, 0, len(f.disabled))
	for k := range f.disabled {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}

func lookup[M Marker](f *Formatter, key int) (M, bool) {
	m, ok := f.Get(key)
	if !ok {
		var zero M
		return zero, false
	}
	typed, ok := m.(M)
	return typed, ok
}

// Caret returns the caret marker under KeyCaret.
func (f *Formatter) Caret() (*CaretMarker, bool) { return lookup[*CaretMarker](f, KeyCaret) }

// Errors returns the error marker under KeyError.
func (f *Formatter) Errors() (*ErrorMarker, bool) { return lookup[*ErrorMarker](f, KeyError) }

// CSSID returns the identifier marker under KeyCSSID.
func (f *Formatter) CSSID() (*CSSIDMarker, bool) { return lookup[*CSSIDMarker](f, KeyCSSID) }

// Style returns the style marker under KeyStyle.
func (f *Formatter) Style() (*StyleMarker, bool) { return lookup[*StyleMarker](f, KeyStyle) }

// ClassName returns the class marker under KeyClassName.
func (f *Formatter) ClassName() (*ClassNameMarker, bool) {
	return lookup[*ClassNameMarker](f, KeyClassName)
}
