package gemini

import (
	"bytes"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatus(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "not found", StatusNotFound.String())
	assert.Equal(t, "status 99", Status(99).String())
	assert.Equal(t, 5, StatusBadRequest.Class())
	assert.True(t, StatusSuccess.IsSuccess())
	assert.False(t, StatusTemporaryFailure.IsSuccess())
}

func TestWriteDocument(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	n, err := WriteDocument(&buf, []byte("# hi"))

	require.NoError(t, err)
	assert.Equal(t, "20 text/gemini\r\n# hi", buf.String())
	assert.Equal(t, buf.Len(), n)
}

func TestWriteFailure(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	_, err := WriteFailure(&buf, StatusNotFound, "not found")
	require.NoError(t, err)
	assert.Equal(t, "51 not found\r\n", buf.String())

	_, err = WriteFailure(&buf, StatusSuccess, "nope")
	assert.Error(t, err)
}

type brokenWriter struct{}

func (brokenWriter) Write([]byte) (int, error) { return 0, errors.New("broken pipe") }

func TestWriteHeader_Error(t *testing.T) {
	t.Parallel()

	_, err := WriteHeader(brokenWriter{}, StatusSuccess, MediaType)
	assert.ErrorContains(t, err, "broken pipe")
}

func TestStatusForRequestError(t *testing.T) {
	t.Parallel()

	tests := []struct {
		err       error
		want      Status
		wantReply bool
	}{
		{ErrRequestTooLong, StatusBadRequest, true},
		{ErrInvalidUTF8, StatusBadRequest, true},
		{fmt.Errorf("%w: bad escape", ErrInvalidURL), StatusBadRequest, true},
		{fmt.Errorf("%w: \"https\"", ErrUnsupportedScheme), StatusBadRequest, true},
		{ErrUnexpectedEOF, 0, false},
		{errors.New("timeout"), 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.err.Error(), func(t *testing.T) {
			t.Parallel()

			got, reply := StatusForRequestError(tt.err)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.wantReply, reply)
		})
	}
}
