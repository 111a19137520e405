package extract

import (
	"context"
	"errors"
	"strings"
	"testing"
)

func TestTextUnsupportedMimeReturnsEmpty(t *testing.T) {
	text, err := Text(context.Background(), []byte("just some plain text"), "text/plain")
	if err != nil {
		t.Fatalf("expected no error for unsupported mime, got %v", err)
	}
	if text != "" {
		t.Fatalf("expected empty text for unsupported mime, got %q", text)
	}
}

func TestTextUnsupportedMimeWithParams(t *testing.T) {
	text, err := Text(context.Background(), []byte("x"), "text/plain; charset=utf-8")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if text != "" {
		t.Fatalf("expected empty text, got %q", text)
	}
}

func TestTextCorruptPDFFailsWithExtractionError(t *testing.T) {
	_, err := Text(context.Background(), []byte("not a pdf at all"), "application/pdf")
	if err == nil {
		t.Fatal("expected error for corrupt pdf")
	}
	if !errors.Is(err, ErrExtraction) {
		t.Fatalf("expected ErrExtraction, got %v", err)
	}
}

func TestTextCorruptDocxFailsWithExtractionError(t *testing.T) {
	_, err := Text(context.Background(), []byte{0x01, 0x02, 0x03}, "application/vnd.openxmlformats-officedocument.wordprocessingml.document")
	if err == nil {
		t.Fatal("expected error for corrupt docx")
	}
	if !errors.Is(err, ErrExtraction) {
		t.Fatalf("expected ErrExtraction, got %v", err)
	}
}

func TestTextEmptyDocxRejected(t *testing.T) {
	_, err := Text(context.Background(), nil, "application/msword")
	if !errors.Is(err, ErrExtraction) {
		t.Fatalf("expected ErrExtraction for empty doc, got %v", err)
	}
}

func TestTextCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := Text(ctx, []byte("x"), "application/pdf"); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context error, got %v", err)
	}
}

func TestStripDocxXML(t *testing.T) {
	raw := `<w:body><w:p><w:r><w:t>Jane Doe</w:t></w:r></w:p><w:p><w:r><w:t>Engineer</w:t><w:br/><w:t>Remote</w:t></w:r></w:p></w:body>`
	got := stripDocxXML(raw)
	want := "Jane Doe\nEngineer\nRemote"
	if got != want {
		t.Fatalf("stripDocxXML = %q, want %q", got, want)
	}
	if strings.Contains(got, "<") {
		t.Fatalf("markup leaked into output: %q", got)
	}
}
