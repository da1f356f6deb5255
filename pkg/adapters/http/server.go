// Package http exposes rendering and editing sessions over HTTP with chi.
package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"github.com/aretw0/typeset"
	"github.com/aretw0/typeset/internal/logging"
	"github.com/aretw0/typeset/pkg/document"
	"github.com/aretw0/typeset/pkg/observability"
	"github.com/aretw0/typeset/pkg/ports"
	"github.com/aretw0/typeset/pkg/segment"
	"github.com/aretw0/typeset/pkg/session"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// maxBody bounds request bodies.
const maxBody = 1 << 20

// Server serves the HTTP API.
type Server struct {
	Engine   *typeset.Engine
	Sessions *session.Manager
	Metrics  *observability.Metrics
	Logger   *slog.Logger
}

// RenderResponse is the body returned for a rendered tree.
type RenderResponse struct {
	Name   string          `json:"name,omitempty"`
	Markup string          `json:"markup"`
	Report typeset.Report  `json:"report"`
	Tree   json.RawMessage `json:"document,omitempty"`
}

// EditRequest is one builder operation on a session tree.
type EditRequest struct {
	Op      string             `json:"op"`
	Address []int              `json:"address,omitempty"`
	Node    *document.NodeSpec `json:"node,omitempty"`
	Flag    bool               `json:"flag,omitempty"`
}

// Edit operations accepted by POST /sessions/{id}/edit.
const (
	OpAppend  = "append"
	OpPrepend = "prepend"
	OpInsert  = "insert"
	OpReplace = "replace"
	OpDelete  = "delete"
	OpFocus   = "focus"
	OpError   = "error"
)

// NewHandler creates the HTTP handler. Metrics, when set, are served on
// /metrics.
func NewHandler(s *Server) http.Handler {
	if s.Logger == nil {
		s.Logger = logging.NewNop()
	}
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)

	r.Get("/health", s.GetHealth)
	r.Post("/render", s.Render)
	r.Route("/sessions", func(r chi.Router) {
		r.Get("/", s.ListSessions)
		r.Get("/{id}", s.GetSession)
		r.Put("/{id}", s.PutSession)
		r.Delete("/{id}", s.DeleteSession)
		r.Post("/{id}/edit", s.EditSession)
	})
	if s.Metrics != nil {
		r.Handle("/metrics", s.Metrics.Handler())
	}
	return enableCORS(r)
}

func enableCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.Logger.Error("response encode failed", "err", err)
	}
}

func (s *Server) fail(w http.ResponseWriter, r *http.Request, status int, err error) {
	attrs := []any{"path", r.URL.Path, "status", status, "err", err}
	if status >= http.StatusInternalServerError {
		s.Logger.Error("request failed", attrs...)
	} else {
		s.Logger.Warn("request rejected", attrs...)
	}
	s.writeJSON(w, status, map[string]string{"error": err.Error()})
}

// statusOf maps domain errors to HTTP status codes.
func statusOf(err error) int {
	switch {
	case errors.Is(err, ports.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, document.ErrInvalidDocument),
		errors.Is(err, document.ErrUnsupported),
		errors.Is(err, segment.ErrOutOfBounds),
		errors.Is(err, segment.ErrInvalidAddress),
		errors.Is(err, segment.ErrNilSegment):
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}

func readDocument(r *http.Request) (*document.Document, error) {
	data, err := io.ReadAll(io.LimitReader(r.Body, maxBody))
	if err != nil {
		return nil, err
	}
	format := "json"
	if ct := r.Header.Get("Content-Type"); ct == "application/yaml" || ct == "application/x-yaml" || ct == "text/yaml" {
		format = "yaml"
	}
	return document.Parse(data, format)
}

func (s *Server) respond(w http.ResponseWriter, name string, tree *segment.Node, withDoc bool) error {
	resp := RenderResponse{
		Name:   name,
		Markup: s.Engine.Markup(tree),
		Report: s.Engine.Report(tree),
	}
	if withDoc {
		doc, err := document.Encode(name, tree)
		if err != nil {
			return err
		}
		if resp.Tree, err = json.Marshal(doc); err != nil {
			return err
		}
	}
	s.writeJSON(w, http.StatusOK, resp)
	return nil
}

// GetHealth handles GET /health.
func (s *Server) GetHealth(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// Render handles POST /render: a document in, its markup and text out.
func (s *Server) Render(w http.ResponseWriter, r *http.Request) {
	doc, err := readDocument(r)
	if err != nil {
		s.fail(w, r, http.StatusBadRequest, fmt.Errorf("invalid request body: %w", err))
		return
	}
	tree, err := doc.Tree()
	if err != nil {
		s.fail(w, r, statusOf(err), err)
		return
	}
	if err := s.respond(w, doc.Name, tree, false); err != nil {
		s.fail(w, r, statusOf(err), err)
	}
}

// ListSessions handles GET /sessions.
func (s *Server) ListSessions(w http.ResponseWriter, r *http.Request) {
	ids, err := s.Sessions.List(r.Context())
	if err != nil {
		s.fail(w, r, http.StatusInternalServerError, err)
		return
	}
	s.Metrics.ObserveSession("list")
	s.writeJSON(w, http.StatusOK, map[string][]string{"sessions": ids})
}

// GetSession handles GET /sessions/{id}.
func (s *Server) GetSession(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	doc, err := s.Sessions.Load(r.Context(), id)
	if err != nil {
		s.fail(w, r, statusOf(err), err)
		return
	}
	tree, err := doc.Tree()
	if err != nil {
		s.fail(w, r, http.StatusInternalServerError, fmt.Errorf("stored session %s: %w", id, err))
		return
	}
	s.Metrics.ObserveSession("load")
	if err := s.respond(w, doc.Name, tree, true); err != nil {
		s.fail(w, r, statusOf(err), err)
	}
}

// PutSession handles PUT /sessions/{id}, replacing the session document.
func (s *Server) PutSession(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	doc, err := readDocument(r)
	if err != nil {
		s.fail(w, r, http.StatusBadRequest, fmt.Errorf("invalid request body: %w", err))
		return
	}
	tree, err := doc.Tree()
	if err != nil {
		s.fail(w, r, statusOf(err), err)
		return
	}
	if err := s.Sessions.Save(r.Context(), id, doc); err != nil {
		s.fail(w, r, statusOf(err), err)
		return
	}
	s.Metrics.ObserveSession("save")
	s.Logger.Info("session saved", "session_id", id, "segments", tree.Len())
	if err := s.respond(w, doc.Name, tree, false); err != nil {
		s.fail(w, r, statusOf(err), err)
	}
}

// DeleteSession handles DELETE /sessions/{id}.
func (s *Server) DeleteSession(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := s.Sessions.Delete(r.Context(), id); err != nil {
		s.fail(w, r, statusOf(err), err)
		return
	}
	s.Metrics.ObserveSession("delete")
	w.WriteHeader(http.StatusNoContent)
}

// EditSession handles POST /sessions/{id}/edit, applying one builder
// operation. Missing sessions start empty.
func (s *Server) EditSession(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	var req EditRequest
	if err := json.NewDecoder(io.LimitReader(r.Body, maxBody)).Decode(&req); err != nil {
		s.fail(w, r, http.StatusBadRequest, fmt.Errorf("invalid request body: %w", err))
		return
	}
	tree, err := s.Sessions.Edit(r.Context(), id, req.apply)
	if err != nil {
		s.fail(w, r, statusOf(err), err)
		return
	}
	s.Metrics.ObserveSession("edit")
	if err := s.respond(w, id, tree, true); err != nil {
		s.fail(w, r, statusOf(err), err)
	}
}

func (req EditRequest) node() (*segment.Node, error) {
	if req.Node == nil {
		return nil, fmt.Errorf("%w: %s needs a node", document.ErrInvalidDocument, req.Op)
	}
	return req.Node.Node()
}

func (req EditRequest) apply(b *segment.Builder) error {
	switch req.Op {
	case OpDelete:
		return b.Delete(req.Address...)
	case OpFocus:
		return b.SetFocus(req.Flag, req.Address...)
	case OpError:
		return b.SetError(req.Flag, req.Address...)
	}

	n, err := req.node()
	if err != nil {
		return err
	}
	switch req.Op {
	case OpAppend:
		return b.Append(n)
	case OpPrepend:
		return b.Prepend(n)
	case OpInsert:
		return b.Insert(n, req.Address...)
	case OpReplace:
		return b.Replace(n, req.Address...)
	}
	return fmt.Errorf("%w: unknown edit %q", document.ErrInvalidDocument, req.Op)
}
