// Package document reads and writes expression trees as YAML or JSON.
//
// A document holds an expression: a list of node entries forming one
// sibling chain. An entry is either a map with a kind, or a plain string
// shorthand: a number such as "12.5" expands into digits and anything else
// becomes a free-variable leaf.
//
//	version: 1
//	expression:
//	  - "2"
//	  - {kind: operator, text: "+"}
//	  - kind: fraction
//	    children:
//	      - ["1"]
//	      - ["x"]
package document

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"reflect"
	"strings"

	"github.com/mitchellh/mapstructure"
	"gopkg.in/yaml.v3"

	"github.com/aretw0/typeset/pkg/segment"
)

// Version is the document format version written by Encode.
const Version = 1

// ErrInvalidDocument is returned for documents that do not describe a tree.
var ErrInvalidDocument = errors.New("invalid document")

// ErrUnsupported is returned when a tree holds nodes with no document form.
var ErrUnsupported = errors.New("node has no document form")

// Entry kinds besides the composite names accepted by segment.Build.
const (
	KindLeaf     = "leaf"
	KindDigit    = "digit"
	KindNumber   = "number"
	KindOperator = "operator"
	KindPoint    = "point"
	KindEmpty    = "empty"
	KindArray    = "array"
)

// NodeSpec is the document form of one node.
type NodeSpec struct {
	Kind     string       `json:"kind" yaml:"kind" mapstructure:"kind"`
	Text     string       `json:"text,omitempty" yaml:"text,omitempty" mapstructure:"text"`
	Format   string       `json:"format,omitempty" yaml:"format,omitempty" mapstructure:"format"`
	Type     string       `json:"type,omitempty" yaml:"type,omitempty" mapstructure:"type"`
	Param    string       `json:"param,omitempty" yaml:"param,omitempty" mapstructure:"param"`
	Focus    bool         `json:"focus,omitempty" yaml:"focus,omitempty" mapstructure:"focus"`
	Error    bool         `json:"error,omitempty" yaml:"error,omitempty" mapstructure:"error"`
	Children [][]NodeSpec `json:"children,omitempty" yaml:"children,omitempty" mapstructure:"children"`
}

// Document is a named expression.
type Document struct {
	Version    int        `json:"version" yaml:"version" mapstructure:"version"`
	Name       string     `json:"name,omitempty" yaml:"name,omitempty" mapstructure:"name"`
	Expression []NodeSpec `json:"expression" yaml:"expression" mapstructure:"expression"`
}

var nodeSpecType = reflect.TypeOf(NodeSpec{})

// shorthand expands string entries into full node specs.
func shorthand(from, to reflect.Type, data any) (any, error) {
	if to != nodeSpecType || from.Kind() != reflect.String {
		return data, nil
	}
	s := data.(string)
	if isNumber(s) {
		return map[string]any{"kind": KindNumber, "text": s}, nil
	}
	return map[string]any{"kind": KindLeaf, "text": s, "type": segment.TypeVarFree.String()}, nil
}

func isNumber(s string) bool {
	if s == "" {
		return false
	}
	points := 0
	for _, r := range s {
		switch {
		case r == '.':
			points++
		case r < '0' || r > '9':
			return false
		}
	}
	return points <= 1 && s != "."
}

// Parse decodes a document in the given format ("yaml" or "json").
func Parse(data []byte, format string) (*Document, error) {
	var raw map[string]any
	switch format {
	case "json":
		if err := json.Unmarshal(data, &raw); err != nil {
			return nil, fmt.Errorf("failed to parse document: %w", err)
		}
	default:
		if err := yaml.Unmarshal(data, &raw); err != nil {
			return nil, fmt.Errorf("failed to parse document: %w", err)
		}
	}
	if raw == nil {
		return nil, fmt.Errorf("%w: empty document", ErrInvalidDocument)
	}

	var doc Document
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		DecodeHook:  shorthand,
		ErrorUnused: true,
		Result:      &doc,
	})
	if err != nil {
		return nil, err
	}
	if err := dec.Decode(raw); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidDocument, err)
	}
	return &doc, nil
}

// Load reads a YAML or JSON (by extension) document file.
func Load(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read document: %w", err)
	}
	return Parse(data, FormatOf(path))
}

// FormatOf returns "json" for .json paths and "yaml" otherwise.
func FormatOf(path string) string {
	if strings.ToLower(filepath.Ext(path)) == ".json" {
		return "json"
	}
	return "yaml"
}

// Marshal encodes doc in the given format.
func Marshal(doc *Document, format string) ([]byte, error) {
	if format == "json" {
		return json.MarshalIndent(doc, "", "  ")
	}
	return yaml.Marshal(doc)
}

// Tree builds the expression of doc.
func (d *Document) Tree() (*segment.Node, error) {
	if len(d.Expression) == 0 {
		return segment.Empty(), nil
	}
	return buildChain(d.Expression)
}

func buildChain(specs []NodeSpec) (*segment.Node, error) {
	var head *segment.Node
	for _, spec := range specs {
		n, err := spec.build()
		if err != nil {
			return nil, err
		}
		if head == nil {
			head = n
		} else if head, err = head.Concat(n); err != nil {
			return nil, err
		}
		// The entry's nodes always form the tail of the chain.
		if head, err = spec.flag(head, head.Len()-n.Len()); err != nil {
			return nil, err
		}
	}
	return head, nil
}

// flag applies the entry's flags to the node it produced at index i.
func (s NodeSpec) flag(chain *segment.Node, i int) (*segment.Node, error) {
	var err error
	if s.Focus {
		if chain, err = chain.SetFocus(i, true); err != nil {
			return nil, err
		}
	}
	if s.Error {
		if chain, err = chain.SetError(i, true); err != nil {
			return nil, err
		}
	}
	return chain, nil
}

func (s NodeSpec) nodeType(fallback segment.Type) (segment.Type, error) {
	if s.Type == "" {
		return fallback, nil
	}
	t, err := segment.ParseType(s.Type)
	if err != nil {
		return segment.TypeNone, fmt.Errorf("%w: %v", ErrInvalidDocument, err)
	}
	return t, nil
}

func (s NodeSpec) children() ([]*segment.Node, error) {
	out := make([]*segment.Node, len(s.Children))
	for i, specs := range s.Children {
		if len(specs) == 0 {
			out[i] = segment.Empty()
			continue
		}
		c, err := buildChain(specs)
		if err != nil {
			return nil, fmt.Errorf("%s child %d: %w", s.Kind, i, err)
		}
		out[i] = c
	}
	return out, nil
}

func (s NodeSpec) build() (*segment.Node, error) {
	switch s.Kind {
	case KindLeaf:
		t, err := s.nodeType(segment.TypeVarFree)
		if err != nil {
			return nil, err
		}
		if s.Format != "" {
			return segment.BasicFormat(s.Format, s.Text, t), nil
		}
		return segment.Basic(s.Text, t), nil
	case KindDigit:
		t, err := s.nodeType(segment.TypeInteger)
		if err != nil {
			return nil, err
		}
		return segment.DigitType(s.Text, t), nil
	case KindNumber:
		if !isNumber(s.Text) {
			return nil, fmt.Errorf("%w: %q is not a number", ErrInvalidDocument, s.Text)
		}
		return segment.Number(s.Text)
	case KindOperator:
		if s.Format != "" {
			return segment.OperatorFormat(s.Format, s.Text), nil
		}
		return segment.Operator(s.Text), nil
	case KindPoint:
		return segment.Point(), nil
	case KindEmpty:
		return segment.EmptyText(s.Text), nil
	case KindArray:
		children, err := s.children()
		if err != nil {
			return nil, err
		}
		return segment.Array(children...), nil
	case "":
		return nil, fmt.Errorf("%w: entry without kind", ErrInvalidDocument)
	}

	children, err := s.children()
	if err != nil {
		return nil, err
	}
	n, err := segment.Build(s.Kind, s.Param, children...)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidDocument, err)
	}
	return n, nil
}

// Node builds the chain described by this single entry.
func (s NodeSpec) Node() (*segment.Node, error) {
	return buildChain([]NodeSpec{s})
}
