package server

import (
	"context"
	"io"
	"net/url"
	"time"

	"github.com/yaklabco/exarch/internal/logging"
	"github.com/yaklabco/exarch/internal/metrics"
	"github.com/yaklabco/exarch/pkg/fsutil"
	"github.com/yaklabco/exarch/pkg/gemini"
)

// respond resolves u under the root, converts the document and writes the
// reply to w.
func (s *Server) respond(ctx context.Context, w io.Writer, u *url.URL) metrics.Outcome {
	logger := logging.FromContext(ctx)

	path, err := s.resolver.Resolve(ctx, u.Path)
	if err != nil {
		return s.fail(ctx, w, statusForLookup(err), err)
	}

	content, err := fsutil.ReadFile(ctx, path)
	if err != nil {
		return s.fail(ctx, w, statusForLookup(err), err)
	}

	convertStart := time.Now()
	doc, err := s.converter.ConvertDocument(string(content))
	s.recorder.ObserveConversion(time.Since(convertStart), err == nil)
	if err != nil {
		return s.fail(ctx, w, gemini.StatusTemporaryFailure, err)
	}
	if doc.MetadataErr != nil {
		logger.Debug("ignoring front matter", logging.FieldPath, path, logging.FieldError, doc.MetadataErr)
	}

	n, err := gemini.WriteDocument(w, doc.Gemtext)
	s.recorder.ObserveResponse(int(gemini.StatusSuccess), n)
	if err != nil {
		logger.Debug("write failed", logging.FieldError, err)
		return metrics.OutcomeDropped
	}

	logger.Info("served",
		logging.FieldStatus, int(gemini.StatusSuccess),
		logging.FieldPath, path,
		logging.FieldTitle, doc.Metadata.Title,
		logging.FieldBytes, n)
	return metrics.OutcomeServed
}

// fail logs cause and, unless failures are silent, writes a header-only
// failure reply.
func (s *Server) fail(ctx context.Context, w io.Writer, status gemini.Status, cause error) metrics.Outcome {
	logger := logging.FromContext(ctx)

	if s.silentFailures {
		logger.Info("dropped", logging.FieldStatus, int(status), logging.FieldError, cause)
		return metrics.OutcomeDropped
	}

	n, err := gemini.WriteFailure(w, status, status.String())
	s.recorder.ObserveResponse(int(status), n)
	if err != nil {
		logger.Debug("write failed", logging.FieldError, err)
		return metrics.OutcomeDropped
	}

	logger.Info("rejected", logging.FieldStatus, int(status), logging.FieldError, cause)
	return metrics.OutcomeRejected
}

// statusForLookup maps a resolve or read failure onto a reply status.
func statusForLookup(err error) gemini.Status {
	if fsutil.IsNotFound(err) {
		return gemini.StatusNotFound
	}
	return gemini.StatusTemporaryFailure
}
