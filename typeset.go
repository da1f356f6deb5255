package typeset

import (
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/aretw0/typeset/internal/logging"
	"github.com/aretw0/typeset/pkg/diag"
	"github.com/aretw0/typeset/pkg/document"
	"github.com/aretw0/typeset/pkg/markup"
	"github.com/aretw0/typeset/pkg/observability"
	"github.com/aretw0/typeset/pkg/segment"
)

// Engine is the high-level entry point for rendering expression trees.
// It pairs a marker formatter with logging and optional metrics.
// Safe for concurrent use.
type Engine struct {
	formatter *markup.Formatter
	metrics   *observability.Metrics
	logger    *slog.Logger
}

// Option defines a functional option for configuring the Engine.
type Option func(*Engine)

// WithFormatter replaces the default marker set.
func WithFormatter(f *markup.Formatter) Option {
	return func(e *Engine) {
		e.formatter = f
	}
}

// WithMetrics records render counts and durations.
func WithMetrics(m *observability.Metrics) Option {
	return func(e *Engine) {
		e.metrics = m
	}
}

// WithLogger sets a custom structured logger for the engine.
func WithLogger(logger *slog.Logger) Option {
	return func(e *Engine) {
		e.logger = logger
	}
}

// New creates an Engine. Without WithFormatter it uses markup.New with the
// engine's logger.
func New(opts ...Option) *Engine {
	eng := &Engine{logger: logging.NewNop()}
	for _, opt := range opts {
		opt(eng)
	}
	if eng.formatter == nil {
		eng.formatter = markup.New(markup.WithLogger(eng.logger))
	}
	return eng
}

// NewFromConfig creates an Engine whose formatter is configured by the
// marker config file at path.
func NewFromConfig(path string, opts ...Option) (*Engine, error) {
	cfg, err := markup.LoadConfig(path)
	if err != nil {
		return nil, err
	}
	eng := New(opts...)
	if err := cfg.Apply(eng.formatter); err != nil {
		return nil, fmt.Errorf("failed to apply %s: %w", path, err)
	}
	return eng, nil
}

// Formatter returns the marker formatter used for markup.
func (e *Engine) Formatter() *markup.Formatter {
	return e.formatter
}

// Render writes the markup of tree to w.
func (e *Engine) Render(w io.Writer, tree *segment.Node) error {
	start := time.Now()
	err := segment.Render(w, tree, e.formatter)
	e.metrics.ObserveRender(observability.ModeMarkup, tree.Len(), time.Since(start), err)
	if err != nil {
		e.logger.Error("render failed", "mode", observability.ModeMarkup, "err", err)
	}
	return err
}

// Markup returns the markup of tree.
func (e *Engine) Markup(tree *segment.Node) string {
	var b strings.Builder
	// strings.Builder never fails to write.
	_ = e.Render(&b, tree)
	return b.String()
}

// Report is the diagnostic text form of a tree and the notes gathered
// while producing it.
type Report struct {
	Text     string   `json:"text"`
	Errors   []string `json:"errors,omitempty"`
	Warnings []string `json:"warnings,omitempty"`
	Info     []string `json:"info,omitempty"`
}

// Describe writes the text form of tree to w and returns the diagnostics.
func (e *Engine) Describe(w io.Writer, tree *segment.Node) (*diag.Log, error) {
	l := diag.New(diag.WithLogger(e.logger))
	start := time.Now()
	err := segment.DescribeTo(w, tree, l)
	e.metrics.ObserveRender(observability.ModeText, tree.Len(), time.Since(start), err)
	if err != nil {
		e.logger.Error("describe failed", "mode", observability.ModeText, "err", err)
	}
	return l, err
}

// Report returns the text form of tree with its diagnostics.
func (e *Engine) Report(tree *segment.Node) Report {
	var b strings.Builder
	l, _ := e.Describe(&b, tree)
	return Report{
		Text:     b.String(),
		Errors:   l.Messages(diag.Error),
		Warnings: l.Messages(diag.Warning),
		Info:     l.Messages(diag.Info),
	}
}

// Load reads a document file and builds its tree.
func (e *Engine) Load(path string) (*segment.Node, error) {
	doc, err := document.Load(path)
	if err != nil {
		return nil, err
	}
	tree, err := doc.Tree()
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	e.logger.Debug("document loaded", "path", path, "name", doc.Name, "segments", tree.Len())
	return tree, nil
}
