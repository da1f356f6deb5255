package cli

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/aretw0/typeset"
	"github.com/aretw0/typeset/internal/logging"
	"github.com/aretw0/typeset/pkg/document"
	"github.com/aretw0/typeset/pkg/markup"
	"github.com/aretw0/typeset/pkg/observability"
	"github.com/aretw0/typeset/pkg/segment"
)

// DefaultConfigName is picked up from the working directory when no
// marker config is given.
const DefaultConfigName = "typeset.yaml"

// Options are the settings shared by every command. ConfigPath names a
// marker config file (YAML or JSON); Plain disables every marker.
type Options struct {
	ConfigPath string
	LogLevel   string
	JSONLogs   bool
	Plain      bool
}

// Logger builds the command logger on stderr.
func (o Options) Logger() (*slog.Logger, error) {
	level, err := logging.ParseLevel(o.LogLevel)
	if err != nil {
		return nil, err
	}
	return logging.NewWriter(os.Stderr, level, o.JSONLogs), nil
}

// createEngine initializes an engine with standard CLI conventions.
func createEngine(opts Options, logger *slog.Logger, metrics *observability.Metrics) (*typeset.Engine, error) {
	engineOpts := []typeset.Option{typeset.WithLogger(logger)}
	if metrics != nil {
		engineOpts = append(engineOpts, typeset.WithMetrics(metrics))
	}
	if opts.Plain {
		return typeset.New(append(engineOpts, typeset.WithFormatter(markup.Empty(markup.WithLogger(logger))))...), nil
	}

	// Smart convention: a typeset.yaml next to the user configures markers.
	path := opts.ConfigPath
	if path == "" && hasFile(DefaultConfigName) {
		path = DefaultConfigName
	}
	if path == "" {
		return typeset.New(engineOpts...), nil
	}

	engine, err := typeset.NewFromConfig(path, engineOpts...)
	if err != nil {
		return nil, fmt.Errorf("error initializing engine: %w", err)
	}
	logger.Debug("marker config applied", "path", path)
	return engine, nil
}

func hasFile(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// readTree loads a document from path, or from stdin when path is "-".
func readTree(path string, stdin io.Reader) (string, *segment.Node, error) {
	var (
		doc *document.Document
		err error
	)
	if path == "-" {
		data, rerr := io.ReadAll(stdin)
		if rerr != nil {
			return "", nil, fmt.Errorf("failed to read stdin: %w", rerr)
		}
		doc, err = document.Parse(data, "yaml")
	} else {
		doc, err = document.Load(path)
	}
	if err != nil {
		return "", nil, err
	}

	tree, err := doc.Tree()
	if err != nil {
		return "", nil, err
	}
	name := doc.Name
	if name == "" && path != "-" {
		name = filepath.Base(path)
	}
	return name, tree, nil
}
