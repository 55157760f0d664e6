package server

import (
	"bytes"
	"context"
	"errors"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/exarch/internal/metrics"
	"github.com/yaklabco/exarch/pkg/fsutil"
	"github.com/yaklabco/exarch/pkg/gemini"
)

func newTestServer(t *testing.T, cfg Config) *Server {
	t.Helper()

	if cfg.Root == "" {
		cfg.Root = siteRoot(t)
	}
	cfg.TLS = testTLSConfig(t)

	srv, err := New(cfg)
	require.NoError(t, err)
	return srv
}

func TestRespond(t *testing.T) {
	t.Parallel()

	srv := newTestServer(t, Config{})

	tests := []struct {
		name        string
		path        string
		wantReply   string
		wantOutcome metrics.Outcome
	}{
		{"document", "/about.md", "20 text/gemini\r\nplain text", metrics.OutcomeServed},
		{"index", "", "20 text/gemini\r\n# Home\n\nSee docs[1].\n\n=> /docs/", metrics.OutcomeServed},
		{"missing", "/nope", "51 not found\r\n", metrics.OutcomeRejected},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			var buf bytes.Buffer
			outcome := srv.respond(context.Background(), &buf, &url.URL{Scheme: "gemini", Path: tt.path})

			assert.Equal(t, tt.wantReply, buf.String())
			assert.Equal(t, tt.wantOutcome, outcome)
		})
	}
}

func TestRespond_Silent(t *testing.T) {
	t.Parallel()

	srv := newTestServer(t, Config{SilentFailures: true})

	var buf bytes.Buffer
	outcome := srv.respond(context.Background(), &buf, &url.URL{Path: "/nope"})

	assert.Empty(t, buf.String())
	assert.Equal(t, metrics.OutcomeDropped, outcome)
}

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) { return 0, errors.New("connection reset") }

func TestRespond_WriteFailure(t *testing.T) {
	t.Parallel()

	srv := newTestServer(t, Config{})

	assert.Equal(t, metrics.OutcomeDropped,
		srv.respond(context.Background(), failingWriter{}, &url.URL{Path: "/about"}))
	assert.Equal(t, metrics.OutcomeDropped,
		srv.respond(context.Background(), failingWriter{}, &url.URL{Path: "/nope"}))
}

func TestStatusForLookup(t *testing.T) {
	t.Parallel()

	assert.Equal(t, gemini.StatusNotFound, statusForLookup(fsutil.ErrNotFound))
	assert.Equal(t, gemini.StatusNotFound, statusForLookup(fsutil.ErrOutsideRoot))
	assert.Equal(t, gemini.StatusNotFound, statusForLookup(fsutil.ErrIsDirectory))
	assert.Equal(t, gemini.StatusTemporaryFailure, statusForLookup(fsutil.ErrPermissionDenied))
	assert.Equal(t, gemini.StatusTemporaryFailure, statusForLookup(context.Canceled))
}
