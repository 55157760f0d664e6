package gemini

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"net/url"
	"unicode/utf8"
)

// MaxRequestLength is the largest permitted request line, excluding CRLF.
const MaxRequestLength = 1024

// DefaultScheme is assumed for request URLs without a scheme.
const DefaultScheme = "gemini"

// terminator ends every request line.
const terminator = "\r\n"

// Request framing and validation errors.
var (
	ErrUnexpectedEOF     = errors.New("unexpected end of request")
	ErrRequestTooLong    = errors.New("request line exceeds 1024 bytes")
	ErrInvalidUTF8       = errors.New("request is not valid UTF-8")
	ErrInvalidURL        = errors.New("invalid request URL")
	ErrUnsupportedScheme = errors.New("unsupported URL scheme")
)

// ReadRequest reads one CRLF-terminated request line from r and returns the
// requested URL.
//
// At most MaxRequestLength+2 bytes are read. A URL without a scheme is given
// DefaultScheme; any other explicit scheme is rejected. Bytes following the
// terminator are ignored.
func ReadRequest(r io.Reader) (*url.URL, error) {
	line, err := readLine(r)
	if err != nil {
		return nil, err
	}
	return ParseRequest(line)
}

// readLine fills a fixed buffer until it contains CRLF.
func readLine(r io.Reader) ([]byte, error) {
	buf := make([]byte, MaxRequestLength+len(terminator))
	filled := 0

	for {
		n, err := r.Read(buf[filled:])
		filled += n

		if idx := bytes.Index(buf[:filled], []byte(terminator)); idx >= 0 {
			return buf[:idx], nil
		}
		if filled == len(buf) {
			return nil, ErrRequestTooLong
		}

		switch {
		case errors.Is(err, io.EOF):
			return nil, ErrUnexpectedEOF
		case err != nil:
			return nil, fmt.Errorf("read request: %w", err)
		case n == 0:
			return nil, ErrUnexpectedEOF
		}
	}
}

// ParseRequest validates a request line with its terminator removed.
func ParseRequest(line []byte) (*url.URL, error) {
	if len(line) > MaxRequestLength {
		return nil, ErrRequestTooLong
	}
	if !utf8.Valid(line) {
		return nil, ErrInvalidUTF8
	}

	u, err := url.Parse(string(line))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidURL, err)
	}

	switch u.Scheme {
	case "":
		u.Scheme = DefaultScheme
	case DefaultScheme:
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedScheme, u.Scheme)
	}

	return u, nil
}
