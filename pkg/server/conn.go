package server

import (
	"context"
	"crypto/tls"
	"net"
	"time"

	"github.com/google/uuid"

	"github.com/yaklabco/exarch/internal/logging"
	"github.com/yaklabco/exarch/internal/metrics"
	"github.com/yaklabco/exarch/pkg/gemini"
)

// handleConn runs one connection through handshake, request read and reply.
// Every failure is contained here and ends the connection.
func (s *Server) handleConn(ctx context.Context, raw net.Conn) {
	start := time.Now()
	s.recorder.ConnectionOpened()

	ctx = logging.WithFields(ctx,
		logging.FieldConn, uuid.NewString(),
		logging.FieldRemote, raw.RemoteAddr().String())
	logger := logging.FromContext(ctx)

	outcome := metrics.OutcomeDropped
	conn := tls.Server(raw, s.tls)
	defer func() {
		_ = conn.Close()
		s.recorder.ConnectionClosed(outcome, time.Since(start))
	}()

	if s.timeout > 0 {
		if err := raw.SetDeadline(start.Add(s.timeout)); err != nil {
			logger.Debug("set deadline failed", logging.FieldError, err)
			return
		}
	}

	if err := conn.HandshakeContext(ctx); err != nil {
		logger.Debug("tls handshake failed", logging.FieldError, err)
		return
	}

	u, err := gemini.ReadRequest(conn)
	if err != nil {
		status, reply := gemini.StatusForRequestError(err)
		logger.Debug("invalid request", logging.FieldError, err)
		if reply {
			outcome = s.fail(ctx, conn, status, err)
		}
		return
	}

	ctx = logging.WithFields(ctx, logging.FieldURL, u.String())
	outcome = s.respond(ctx, conn, u)
}
