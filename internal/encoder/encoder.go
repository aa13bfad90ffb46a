package encoder

import (
	"encoding/base64"
	"fmt"
	"io"
	"strings"

	"github.com/gabriel-vasile/mimetype"

	"bridge/internal/domain"
)

// DefaultMaxBytes is the largest accepted document (10 MiB).
const DefaultMaxBytes int64 = 10 * 1024 * 1024

const octetStream = "application/octet-stream"

// Encoder validates uploaded documents and converts them into an inline
// payload for the collaborator request.
type Encoder struct {
	maxBytes int64
}

// New creates an Encoder. A non-positive maxBytes selects DefaultMaxBytes.
func New(maxBytes int64) *Encoder {
	if maxBytes <= 0 {
		maxBytes = DefaultMaxBytes
	}
	return &Encoder{maxBytes: maxBytes}
}

// MaxBytes returns the configured size bound.
func (e *Encoder) MaxBytes() int64 {
	return e.maxBytes
}

// FromReader reads an upload into a Document. At most maxBytes+1 bytes are read,
// so an oversized stream is rejected without buffering all of it. A missing or
// generic declared type is replaced by the type sniffed from the content.
func (e *Encoder) FromReader(fileName, declaredType string, r io.Reader) (domain.Document, error) {
	data, err := io.ReadAll(io.LimitReader(r, e.maxBytes+1))
	if err != nil {
		return domain.Document{}, fmt.Errorf("reading upload: %w", err)
	}
	if int64(len(data)) > e.maxBytes {
		return domain.Document{}, tooLarge(e.maxBytes)
	}

	doc := domain.Document{
		FileName:  fileName,
		MediaType: resolveMediaType(declaredType, data),
		Size:      int64(len(data)),
		Bytes:     data,
	}
	if err := e.Validate(doc); err != nil {
		return domain.Document{}, err
	}
	return doc, nil
}

// Validate checks the media type allow-list and size bound.
func (e *Encoder) Validate(doc domain.Document) error {
	if !domain.AllowedMediaTypes[doc.MediaType] {
		return domain.NewValidationError(domain.ReasonUnsupportedType,
			"unsupported file type %q; allowed: pdf, jpeg, png, webp, heic", doc.MediaType)
	}
	size := doc.Size
	if n := int64(len(doc.Bytes)); n > size {
		size = n
	}
	if size > e.maxBytes {
		return tooLarge(e.maxBytes)
	}
	if len(doc.Bytes) == 0 {
		return domain.NewValidationError(domain.ReasonEmpty, "file is empty")
	}
	return nil
}

// Encode validates doc and returns its base64 form.
func (e *Encoder) Encode(doc domain.Document) (domain.EncodedDocument, error) {
	if err := e.Validate(doc); err != nil {
		return domain.EncodedDocument{}, err
	}
	return domain.EncodedDocument{
		MediaType: doc.MediaType,
		Data:      base64.StdEncoding.EncodeToString(doc.Bytes),
	}, nil
}

func tooLarge(maxBytes int64) error {
	return domain.NewValidationError(domain.ReasonTooLarge,
		"file exceeds the %d MiB limit", maxBytes/(1024*1024))
}

// resolveMediaType normalizes the declared type, sniffing the content when
// the client sent nothing useful.
func resolveMediaType(declared string, data []byte) domain.MediaType {
	mt := normalize(declared)
	if mt == "" || mt == octetStream {
		mt = normalize(mimetype.Detect(data).String())
	}
	return domain.MediaType(mt)
}

func normalize(contentType string) string {
	ct := strings.ToLower(strings.TrimSpace(contentType))
	if i := strings.IndexByte(ct, ';'); i >= 0 {
		ct = strings.TrimSpace(ct[:i])
	}
	if ct == "image/jpg" {
		ct = string(domain.MediaTypeJPEG)
	}
	return ct
}
