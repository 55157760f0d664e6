package gemini

import (
	"bytes"
	"errors"
	"io"
	"strings"
	"testing"
	"testing/iotest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadRequest(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		input   string
		want    string
		wantErr error
	}{
		{name: "full url", input: "gemini://example.org/docs/a\r\n", want: "gemini://example.org/docs/a"},
		{name: "missing scheme", input: "/docs/a\r\n", want: "gemini:///docs/a"},
		{name: "uppercase scheme", input: "GEMINI://example.org/\r\n", want: "gemini://example.org/"},
		{name: "trailing bytes ignored", input: "gemini://h/a\r\nextra", want: "gemini://h/a"},
		{name: "empty line", input: "\r\n", want: "gemini:"},
		{name: "eof before terminator", input: "gemini://h/a", wantErr: ErrUnexpectedEOF},
		{name: "bare newline", input: "gemini://h/a\n", wantErr: ErrUnexpectedEOF},
		{name: "empty stream", input: "", wantErr: ErrUnexpectedEOF},
		{name: "other scheme", input: "https://example.org/\r\n", wantErr: ErrUnsupportedScheme},
		{name: "invalid utf8", input: "gemini://h/\xff\r\n", wantErr: ErrInvalidUTF8},
		{name: "invalid url", input: "gemini://h/%zz\r\n", wantErr: ErrInvalidURL},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			u, err := ReadRequest(strings.NewReader(tt.input))
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, u)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, u.String())
		})
	}
}

func TestReadRequest_LengthBoundary(t *testing.T) {
	t.Parallel()

	prefix := "gemini://h/"

	t.Run("exactly max accepted", func(t *testing.T) {
		t.Parallel()

		line := prefix + strings.Repeat("a", MaxRequestLength-len(prefix))
		require.Len(t, line, MaxRequestLength)

		u, err := ReadRequest(strings.NewReader(line + "\r\n"))
		require.NoError(t, err)
		assert.Equal(t, line, u.String())
	})

	t.Run("one over max rejected", func(t *testing.T) {
		t.Parallel()

		line := prefix + strings.Repeat("a", MaxRequestLength+1-len(prefix))
		_, err := ReadRequest(strings.NewReader(line + "\r\n"))
		assert.ErrorIs(t, err, ErrRequestTooLong)
	})

	t.Run("endless stream rejected", func(t *testing.T) {
		t.Parallel()

		_, err := ReadRequest(strings.NewReader(strings.Repeat("a", 4096)))
		assert.ErrorIs(t, err, ErrRequestTooLong)
	})
}

func TestReadRequest_ByteAtATime(t *testing.T) {
	t.Parallel()

	u, err := ReadRequest(iotest.OneByteReader(strings.NewReader("gemini://h/slow\r\n")))
	require.NoError(t, err)
	assert.Equal(t, "/slow", u.Path)
}

func TestReadRequest_DataWithEOF(t *testing.T) {
	t.Parallel()

	u, err := ReadRequest(iotest.DataErrReader(strings.NewReader("gemini://h/x\r\n")))
	require.NoError(t, err)
	assert.Equal(t, "/x", u.Path)
}

func TestReadRequest_ReadError(t *testing.T) {
	t.Parallel()

	sentinel := errors.New("connection reset")
	_, err := ReadRequest(iotest.ErrReader(sentinel))

	require.ErrorIs(t, err, sentinel)
	assert.NotErrorIs(t, err, ErrUnexpectedEOF)
}

type zeroReader struct{}

func (zeroReader) Read([]byte) (int, error) { return 0, nil }

func TestReadRequest_ZeroRead(t *testing.T) {
	t.Parallel()

	_, err := ReadRequest(zeroReader{})
	assert.ErrorIs(t, err, ErrUnexpectedEOF)
}

func TestReadRequest_DoesNotOverread(t *testing.T) {
	t.Parallel()

	src := bytes.NewReader(bytes.Repeat([]byte("a"), 5000))
	_, err := ReadRequest(src)
	require.ErrorIs(t, err, ErrRequestTooLong)

	rest, err := io.ReadAll(src)
	require.NoError(t, err)
	assert.Len(t, rest, 5000-(MaxRequestLength+2))
}
