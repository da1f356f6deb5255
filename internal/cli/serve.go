package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/aretw0/typeset/internal/presentation/tui"
	"github.com/aretw0/typeset/pkg/adapters/file"
	apihttp "github.com/aretw0/typeset/pkg/adapters/http"
	"github.com/aretw0/typeset/pkg/adapters/memory"
	"github.com/aretw0/typeset/pkg/adapters/redis"
	"github.com/aretw0/typeset/pkg/observability"
	"github.com/aretw0/typeset/pkg/persistence/middleware"
	"github.com/aretw0/typeset/pkg/ports"
	"github.com/aretw0/typeset/pkg/session"
)

// ShutdownTimeout bounds the graceful shutdown of the server.
const ShutdownTimeout = 5 * time.Second

// ServeOptions configure the HTTP server.
// RedisURL selects the Redis session store. Otherwise StoreDir keeps sessions
// as YAML files, and with neither set sessions live in memory.
type ServeOptions struct {
	Addr       string
	RedisURL   string
	StoreDir   string
	SessionTTL time.Duration
	NoBanner   bool
	Banner     io.Writer
}

// Backend is the session storage chosen for a server.
type Backend struct {
	Store  ports.DocumentStore
	Locker ports.DistributedLocker
	Close  func() error
}

// OpenBackend opens the session store described by opts. Saves are
// validated and every operation is logged.
func OpenBackend(opts ServeOptions, logger *slog.Logger) (*Backend, error) {
	b, err := openStore(opts)
	if err != nil {
		return nil, err
	}
	b.Store = middleware.Chain(b.Store,
		middleware.NewLoggingMiddleware(logger),
		middleware.NewValidatingMiddleware(),
	)
	return b, nil
}

func openStore(opts ServeOptions) (*Backend, error) {
	nop := func() error { return nil }
	switch {
	case opts.RedisURL != "":
	case opts.StoreDir != "":
		return &Backend{Store: file.NewStore(opts.StoreDir), Close: nop}, nil
	default:
		return &Backend{Store: memory.NewStore(), Close: nop}, nil
	}

	var storeOpts []redis.Option
	if opts.SessionTTL > 0 {
		storeOpts = append(storeOpts, redis.WithTTL(opts.SessionTTL))
	}
	store, err := redis.NewFromURL(opts.RedisURL, storeOpts...)
	if err != nil {
		return nil, fmt.Errorf("failed to open redis store: %w", err)
	}
	return &Backend{
		Store:  store,
		Locker: redis.NewLocker(store.Client(), redis.DefaultPrefix),
		Close:  store.Close,
	}, nil
}

// NewServerHandler wires the engine, sessions and metrics into the HTTP API.
func NewServerHandler(opts Options, backend *Backend, logger *slog.Logger) (http.Handler, error) {
	metrics := observability.NewMetrics()
	engine, err := createEngine(opts, logger, metrics)
	if err != nil {
		return nil, err
	}

	sessionOpts := []session.Option{session.WithLogger(logger)}
	if backend.Locker != nil {
		sessionOpts = append(sessionOpts, session.WithLocker(backend.Locker))
	}

	return apihttp.NewHandler(&apihttp.Server{
		Engine:   engine,
		Sessions: session.NewManager(backend.Store, sessionOpts...),
		Metrics:  metrics,
		Logger:   logger,
	}), nil
}

// Serve runs the HTTP server until ctx is cancelled, then shuts it down.
func Serve(ctx context.Context, opts Options, sopts ServeOptions) error {
	logger, err := opts.Logger()
	if err != nil {
		return err
	}

	backend, err := OpenBackend(sopts, logger)
	if err != nil {
		return err
	}
	defer func() {
		if err := backend.Close(); err != nil {
			logger.Warn("failed to close session store", "err", err)
		}
	}()

	handler, err := NewServerHandler(opts, backend, logger)
	if err != nil {
		return err
	}

	ln, err := net.Listen("tcp", sopts.Addr)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", sopts.Addr, err)
	}

	if !sopts.NoBanner && sopts.Banner != nil {
		tui.PrintBanner(sopts.Banner)
	}
	store := "memory"
	switch {
	case sopts.RedisURL != "":
		store = "redis"
	case sopts.StoreDir != "":
		store = sopts.StoreDir
	}
	logger.Info("typeset server listening", "addr", ln.Addr().String(), "store", store)

	return serveListener(ctx, &http.Server{Handler: handler}, ln, logger)
}

func serveListener(ctx context.Context, srv *http.Server, ln net.Listener, logger *slog.Logger) error {
	// Channel to listen for errors coming from the listener.
	serverErrors := make(chan error, 1)
	go func() {
		serverErrors <- srv.Serve(ln)
	}()

	select {
	case err := <-serverErrors:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("server error: %w", err)

	case <-ctx.Done():
		logger.Info("shutting down")

		// Give outstanding requests a deadline for completion.
		shutdownCtx, cancel := context.WithTimeout(context.Background(), ShutdownTimeout)
		defer cancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Error("graceful shutdown did not complete", "timeout", ShutdownTimeout, "err", err)
			if err := srv.Close(); err != nil {
				return fmt.Errorf("error killing server: %w", err)
			}
		}
		logger.Info("server stopped gracefully")
		return nil
	}
}
