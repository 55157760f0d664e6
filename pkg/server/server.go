// Package server serves a tree of Markdown documents over the Gemini protocol,
// converting each document to Gemtext on request.
package server

import (
	"context"
	"crypto/tls"
	"errors"
	"fmt"
	"net"
	"sync"
	"time"

	"golang.org/x/net/netutil"

	"github.com/yaklabco/exarch/internal/logging"
	"github.com/yaklabco/exarch/internal/metrics"
	"github.com/yaklabco/exarch/pkg/fsutil"
	"github.com/yaklabco/exarch/pkg/gemtext"
)

// acceptBackoff is the pause after a transient accept failure.
const acceptBackoff = 50 * time.Millisecond

// ErrNoTLS is returned by New when no TLS configuration is supplied.
var ErrNoTLS = errors.New("server requires a TLS configuration")

// Config holds everything a Server needs. It is read once by New.
type Config struct {
	// Root is the directory of documents to serve.
	Root string

	// IndexFiles are tried when a request names a directory. Nil selects
	// fsutil.DefaultIndexFiles.
	IndexFiles []string

	// TLS is the server's TLS configuration.
	TLS *tls.Config

	// Timeout bounds one connection from accept to close. 0 disables it.
	Timeout time.Duration

	// MaxConnections caps concurrently handled connections. 0 is unlimited.
	MaxConnections int

	// SilentFailures closes failed requests without a status line.
	SilentFailures bool

	// Converter turns documents into Gemtext. Nil selects the default.
	Converter *gemtext.Converter

	// Recorder receives metrics. Nil selects metrics.NoopRecorder.
	Recorder metrics.Recorder
}

// Server is a Gemini server. Its configuration is immutable after New, so
// connection handlers share it without locking.
type Server struct {
	tls            *tls.Config
	resolver       *fsutil.Resolver
	converter      *gemtext.Converter
	recorder       metrics.Recorder
	timeout        time.Duration
	maxConnections int
	silentFailures bool

	wg sync.WaitGroup
}

// New validates cfg and creates a Server.
func New(cfg Config) (*Server, error) {
	if cfg.TLS == nil {
		return nil, ErrNoTLS
	}

	resolver, err := fsutil.NewResolver(cfg.Root, cfg.IndexFiles)
	if err != nil {
		return nil, fmt.Errorf("document root: %w", err)
	}

	converter := cfg.Converter
	if converter == nil {
		converter = gemtext.NewConverter(nil)
	}

	recorder := cfg.Recorder
	if recorder == nil {
		recorder = metrics.NoopRecorder{}
	}

	return &Server{
		tls:            cfg.TLS,
		resolver:       resolver,
		converter:      converter,
		recorder:       recorder,
		timeout:        cfg.Timeout,
		maxConnections: cfg.MaxConnections,
		silentFailures: cfg.SilentFailures,
	}, nil
}

// Root returns the absolute document root.
func (s *Server) Root() string {
	return s.resolver.Root()
}

// ListenAndServe listens on the TCP address addr and calls Serve.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	var lc net.ListenConfig
	ln, err := lc.Listen(ctx, "tcp", addr)
	if err != nil {
		return fmt.Errorf("listen on %s: %w", addr, err)
	}

	logging.FromContext(ctx).Info("listening",
		logging.FieldAddr, ln.Addr().String(),
		logging.FieldRoot, s.Root())

	return s.Serve(ctx, ln)
}

// Serve accepts connections on ln and handles each on its own goroutine.
//
// Serve returns nil once ctx is cancelled and every in-flight connection has
// finished. Any other accept failure is returned after the same drain. ln is
// always closed on return.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	if s.maxConnections > 0 {
		ln = netutil.LimitListener(ln, s.maxConnections)
	}

	stop := context.AfterFunc(ctx, func() { _ = ln.Close() })
	defer stop()
	defer s.wg.Wait()
	defer ln.Close()

	// In-flight connections finish even after ctx is cancelled; their
	// lifetime is bounded by the per-connection deadline instead.
	connCtx := context.WithoutCancel(ctx)

	for {
		conn, err := ln.Accept()
		if err != nil {
			if ctx.Err() != nil {
				return nil
			}

			var netErr net.Error
			if errors.As(err, &netErr) && netErr.Timeout() {
				logging.FromContext(ctx).Warn("accept failed; retrying", logging.FieldError, err)
				time.Sleep(acceptBackoff)
				continue
			}

			return fmt.Errorf("accept: %w", err)
		}

		s.wg.Add(1)
		go func() {
			defer s.wg.Done()
			s.handleConn(connCtx, conn)
		}()
	}
}
