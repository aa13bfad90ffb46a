package encoder_test

import (
	"bytes"
	"encoding/base64"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bridge/internal/domain"
	"bridge/internal/encoder"
)

var pngHeader = []byte{0x89, 'P', 'N', 'G', 0x0D, 0x0A, 0x1A, 0x0A, 0, 0, 0, 0x0D, 'I', 'H', 'D', 'R'}

func pngBytes(size int) []byte {
	b := make([]byte, size)
	copy(b, pngHeader)
	return b
}

func reasonOf(t *testing.T, err error) string {
	t.Helper()
	var vErr *domain.ValidationError
	require.True(t, errors.As(err, &vErr), "expected ValidationError, got %v", err)
	return vErr.Reason
}

func TestEncoder_Encode_PNG(t *testing.T) {
	enc := encoder.New(0)
	data := pngBytes(2048)

	out, err := enc.Encode(domain.Document{FileName: "notice.png", MediaType: domain.MediaTypePNG, Size: 2048, Bytes: data})

	require.NoError(t, err)
	assert.Equal(t, domain.MediaTypePNG, out.MediaType)
	decoded, err := base64.StdEncoding.DecodeString(out.Data)
	require.NoError(t, err)
	assert.Equal(t, data, decoded)
}

func TestEncoder_Validate_AllowList(t *testing.T) {
	enc := encoder.New(0)
	for mt := range domain.AllowedMediaTypes {
		err := enc.Validate(domain.Document{MediaType: mt, Size: 3, Bytes: []byte("abc")})
		assert.NoError(t, err, mt)
	}

	for _, mt := range []domain.MediaType{"text/plain", "application/zip", "image/gif", ""} {
		err := enc.Validate(domain.Document{MediaType: mt, Size: 3, Bytes: []byte("abc")})
		assert.Equal(t, domain.ReasonUnsupportedType, reasonOf(t, err), mt)
	}
}

func TestEncoder_Validate_TooLarge(t *testing.T) {
	enc := encoder.New(0)

	err := enc.Validate(domain.Document{MediaType: domain.MediaTypePDF, Size: encoder.DefaultMaxBytes + 1, Bytes: []byte("%PDF")})
	assert.Equal(t, domain.ReasonTooLarge, reasonOf(t, err))

	err = enc.Validate(domain.Document{MediaType: domain.MediaTypePDF, Size: encoder.DefaultMaxBytes, Bytes: []byte("%PDF")})
	assert.NoError(t, err)
}

func TestEncoder_Encode_RejectsBeforeEncoding(t *testing.T) {
	enc := encoder.New(0)

	out, err := enc.Encode(domain.Document{FileName: "notes.txt", MediaType: "text/plain", Size: 5, Bytes: []byte("hello")})

	require.Error(t, err)
	assert.Empty(t, out.Data)
}

func TestEncoder_FromReader_SniffsGenericType(t *testing.T) {
	enc := encoder.New(0)

	doc, err := enc.FromReader("scan", "application/octet-stream", bytes.NewReader(pngBytes(64)))

	require.NoError(t, err)
	assert.Equal(t, domain.MediaTypePNG, doc.MediaType)
	assert.Equal(t, int64(64), doc.Size)
}

func TestEncoder_FromReader_NormalizesDeclaredType(t *testing.T) {
	enc := encoder.New(0)

	doc, err := enc.FromReader("scan.jpg", "Image/JPG", strings.NewReader("\xff\xd8\xff\xe0data"))

	require.NoError(t, err)
	assert.Equal(t, domain.MediaTypeJPEG, doc.MediaType)
}

func TestEncoder_FromReader_RejectsText(t *testing.T) {
	enc := encoder.New(0)

	_, err := enc.FromReader("notes.txt", "", strings.NewReader("just some words"))

	assert.Equal(t, domain.ReasonUnsupportedType, reasonOf(t, err))
}

func TestEncoder_FromReader_StopsAtLimit(t *testing.T) {
	enc := encoder.New(1024 * 1024)

	_, err := enc.FromReader("big.png", "image/png", bytes.NewReader(pngBytes(1024*1024+10)))

	assert.Equal(t, domain.ReasonTooLarge, reasonOf(t, err))
}

func TestEncoder_FromReader_Empty(t *testing.T) {
	enc := encoder.New(0)

	_, err := enc.FromReader("empty.pdf", "application/pdf", bytes.NewReader(nil))

	assert.Equal(t, domain.ReasonEmpty, reasonOf(t, err))
}
