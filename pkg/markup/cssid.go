package markup

import (
	"log/slog"

	"github.com/aretw0/typeset/internal/logging"
	"github.com/aretw0/typeset/pkg/segment"
)

// CSSIDMarker tags every segment fragment with its position path:
// \cssId{[0, 1, 0]}{fragment}.
type CSSIDMarker struct {
	logger *slog.Logger
}

// NewCSSIDMarker creates an identifier marker. Segments rendered without a
// path are reported on logger and left untagged.
func NewCSSIDMarker(logger *slog.Logger) *CSSIDMarker {
	if logger == nil {
		logger = logging.NewNop()
	}
	return &CSSIDMarker{logger: logger}
}

func (m *CSSIDMarker) Mark(s segment.Segment, fragment string, t segment.Type, pos segment.Path) string {
	if s == nil {
		return fragment
	}
	if pos.IsZero() {
		m.logger.Warn("segment rendered without a position", "type", t.String())
		return fragment
	}
	return `\cssId{` + pos.String() + `}{` + fragment + `}`
}

func (m *CSSIDMarker) Equal(o Marker) bool {
	_, ok := o.(*CSSIDMarker)
	return ok
}
