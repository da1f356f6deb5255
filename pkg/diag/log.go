// Package diag holds the severity-bucketed message log filled by diagnostic
// (plain text) renders of a segment tree.
package diag

import (
	"context"
	"log/slog"
	"sync"

	"github.com/aretw0/typeset/internal/logging"
)

// Severity selects one of the log's stacks.
type Severity int

const (
	Error Severity = iota
	Warning
	Info
)

const severityCount = 3

func (s Severity) String() string {
	switch s {
	case Error:
		return "error"
	case Warning:
		return "warning"
	case Info:
		return "info"
	}
	return "unknown"
}

func (s Severity) level() slog.Level {
	switch s {
	case Error:
		return slog.LevelError
	case Warning:
		return slog.LevelWarn
	}
	return slog.LevelInfo
}

// Log keeps one LIFO stack of messages per severity.
// It is safe for concurrent use.
type Log struct {
	mu     sync.Mutex
	stacks [severityCount][]string
	logger *slog.Logger
}

// Option configures a Log.
type Option func(*Log)

// WithLogger mirrors every pushed message to logger.
func WithLogger(logger *slog.Logger) Option {
	return func(l *Log) {
		if logger == nil {
			logger = logging.NewNop()
		}
		l.logger = logger
	}
}

// New creates an empty Log.
func New(opts ...Option) *Log {
	l := &Log{logger: logging.NewNop()}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

func valid(s Severity) bool {
	return s >= 0 && s < severityCount
}

// Push adds msg on top of the stack for s. Unknown severities are ignored.
func (l *Log) Push(s Severity, msg string) {
	if !valid(s) {
		return
	}
	l.mu.Lock()
	l.stacks[s] = append(l.stacks[s], msg)
	l.mu.Unlock()

	l.logger.Log(context.Background(), s.level(), msg, "severity", s.String())
}

// Peek returns the most recent message for s without removing it.
func (l *Log) Peek(s Severity) (string, bool) {
	if !valid(s) {
		return "", false
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	st := l.stacks[s]
	if len(st) == 0 {
		return "", false
	}
	return st[len(st)-1], true
}

// Pop removes and returns the most recent message for s.
func (l *Log) Pop(s Severity) (string, bool) {
	if !valid(s) {
		return "", false
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	st := l.stacks[s]
	if len(st) == 0 {
		return "", false
	}
	msg := st[len(st)-1]
	l.stacks[s] = st[:len(st)-1]
	return msg, true
}

// Count returns the number of messages held for s.
func (l *Log) Count(s Severity) int {
	if !valid(s) {
		return 0
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.stacks[s])
}

// Messages returns the messages for s, oldest first.
func (l *Log) Messages(s Severity) []string {
	if !valid(s) {
		return nil
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	return append([]string(nil), l.stacks[s]...)
}
