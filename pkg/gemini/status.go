// Package gemini implements the framing rules of the Gemini protocol: request
// lines, status codes and response headers.
package gemini

import (
	"fmt"
	"io"
)

// Status is a two-digit Gemini response status code.
type Status int

// Status codes used by exarch.
const (
	StatusInput                 Status = 10
	StatusSuccess               Status = 20
	StatusRedirect              Status = 30
	StatusTemporaryFailure      Status = 40
	StatusServerUnavailable     Status = 41
	StatusPermanentFailure      Status = 50
	StatusNotFound              Status = 51
	StatusProxyRequestRefused   Status = 53
	StatusBadRequest            Status = 59
	StatusCertificateRequired   Status = 60
	StatusCertificateNotAllowed Status = 61
)

// MediaType is the media type of every document exarch serves.
const MediaType = "text/gemini"

// DefaultPort is the registered Gemini port.
const DefaultPort = 1965

//nolint:gochecknoglobals // Read-only lookup table.
var statusText = map[Status]string{
	StatusInput:                 "input",
	StatusSuccess:               "success",
	StatusRedirect:              "redirect",
	StatusTemporaryFailure:      "temporary failure",
	StatusServerUnavailable:     "server unavailable",
	StatusPermanentFailure:      "permanent failure",
	StatusNotFound:              "not found",
	StatusProxyRequestRefused:   "proxy request refused",
	StatusBadRequest:            "bad request",
	StatusCertificateRequired:   "client certificate required",
	StatusCertificateNotAllowed: "certificate not authorised",
}

// String returns the human-readable name of the status.
func (s Status) String() string {
	if text, ok := statusText[s]; ok {
		return text
	}
	return fmt.Sprintf("status %d", int(s))
}

// Class returns the first digit of the status, e.g. 5 for 51.
func (s Status) Class() int {
	return int(s) / 10
}

// IsSuccess reports whether s is in the 2x class.
func (s Status) IsSuccess() bool {
	return s.Class() == 2
}

// WriteHeader writes a "<status> <meta>\r\n" response header to w and returns
// the number of bytes written.
func WriteHeader(w io.Writer, status Status, meta string) (int, error) {
	n, err := fmt.Fprintf(w, "%02d %s\r\n", int(status), meta)
	if err != nil {
		return n, fmt.Errorf("write response header: %w", err)
	}
	return n, nil
}
