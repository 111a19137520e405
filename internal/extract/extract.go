package extract

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/ledongthuc/pdf"
	"github.com/nguyenthenguyen/docx"

	"skillmatch-backend/internal/shared/storage/object"
)

const (
	mimePDF  = "application/pdf"
	mimeDOC  = "application/msword"
	mimeDOCX = "application/vnd.openxmlformats-officedocument.wordprocessingml.document"
)

// ErrExtraction marks a supported document that could not be read.
// Callers map it to a user-visible "failed to extract text" message.
var ErrExtraction = errors.New("failed to extract text")

// Text extracts UTF-8 plain text from an in-memory document.
// Unsupported MIME types yield empty text with no error; callers must treat
// empty text as "nothing extracted", not as a failure.
func Text(ctx context.Context, data []byte, mimeType string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	switch normalizeMimeType(mimeType) {
	case mimePDF:
		return extractPDF(data)
	case mimeDOC, mimeDOCX:
		return extractDOCX(data)
	default:
		return "", nil
	}
}

// FromStore reads a stored object and extracts its text.
func FromStore(ctx context.Context, store object.ObjectStore, storageKey string, mimeType string) (string, error) {
	body, err := store.Open(ctx, storageKey)
	if err != nil {
		return "", fmt.Errorf("extract text key=%s mime=%s: %w", storageKey, mimeType, err)
	}
	defer body.Close()

	raw, err := io.ReadAll(body)
	if err != nil {
		return "", fmt.Errorf("extract text key=%s mime=%s: read: %w", storageKey, mimeType, err)
	}

	return Text(ctx, raw, mimeType)
}

func extractPDF(data []byte) (string, error) {
	reader := bytes.NewReader(data)
	pdfReader, err := pdf.NewReader(reader, int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("%w: pdf: %v", ErrExtraction, err)
	}
	plain, err := pdfReader.GetPlainText()
	if err != nil {
		return "", fmt.Errorf("%w: pdf: %v", ErrExtraction, err)
	}
	var buf bytes.Buffer
	if _, err := io.Copy(&buf, plain); err != nil {
		return "", fmt.Errorf("%w: pdf: %v", ErrExtraction, err)
	}
	return buf.String(), nil
}

func extractDOCX(data []byte) (string, error) {
	if len(data) == 0 {
		return "", fmt.Errorf("%w: empty document", ErrExtraction)
	}
	doc, err := docx.ReadDocxFromMemory(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("%w: docx: %v", ErrExtraction, err)
	}
	defer doc.Close()

	return stripDocxXML(doc.Editable().GetContent()), nil
}

// stripDocxXML flattens the word/document.xml body into plain text,
// inserting newlines at paragraph and line-break boundaries.
func stripDocxXML(raw string) string {
	var buf strings.Builder
	inTag := false
	tag := strings.Builder{}
	for _, r := range raw {
		switch {
		case r == '<':
			inTag = true
			tag.Reset()
		case r == '>':
			inTag = false
			name := tag.String()
			if name == "/w:p" || strings.HasPrefix(name, "w:br") {
				if buf.Len() > 0 {
					buf.WriteByte('\n')
				}
			}
		case inTag:
			tag.WriteRune(r)
		default:
			buf.WriteRune(r)
		}
	}
	return strings.TrimSpace(buf.String())
}

func normalizeMimeType(mimeType string) string {
	return strings.ToLower(strings.TrimSpace(strings.Split(mimeType, ";")[0]))
}
