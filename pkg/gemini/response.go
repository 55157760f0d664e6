package gemini

import (
	"errors"
	"fmt"
	"io"
)

// WriteDocument writes a success header for MediaType followed by body. It
// returns the total number of bytes written.
func WriteDocument(w io.Writer, body []byte) (int, error) {
	header, err := WriteHeader(w, StatusSuccess, MediaType)
	if err != nil {
		return header, err
	}

	n, err := w.Write(body)
	if err != nil {
		return header + n, fmt.Errorf("write response body: %w", err)
	}
	return header + n, nil
}

// WriteFailure writes a header-only failure response. meta is a short
// human-readable reason.
func WriteFailure(w io.Writer, status Status, meta string) (int, error) {
	if status.IsSuccess() {
		return 0, fmt.Errorf("%w: %d", errNotFailure, int(status))
	}
	return WriteHeader(w, status, meta)
}

var errNotFailure = errors.New("status is not a failure")

// StatusForRequestError maps a ReadRequest error to the failure status a
// client should receive. The boolean is false for errors that should close
// the connection without a reply.
func StatusForRequestError(err error) (Status, bool) {
	switch {
	case errors.Is(err, ErrRequestTooLong),
		errors.Is(err, ErrInvalidUTF8),
		errors.Is(err, ErrInvalidURL),
		errors.Is(err, ErrUnsupportedScheme):
		return StatusBadRequest, true
	default:
		return 0, false
	}
}
