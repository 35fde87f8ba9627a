// Package extract turns job descriptions and CVs stored as files into plain
// text for scoring. Supported formats are plain text, HTML, PDF and DOCX.
package extract

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// MaxDocumentBytes caps the size of a document accepted for extraction.
const MaxDocumentBytes = 10 << 20

// ErrTooLarge is returned when a document exceeds MaxDocumentBytes.
var ErrTooLarge = errors.New("document exceeds size limit")

// UnsupportedFormatError reports a file extension with no extractor.
type UnsupportedFormatError struct {
	Ext string
}

func (e *UnsupportedFormatError) Error() string {
	return fmt.Sprintf("unsupported document format %q", e.Ext)
}

// File reads the document at path and returns its text.
func File(path string) (string, error) {
	info, err := os.Stat(path)
	if err != nil {
		return "", fmt.Errorf("stat %s: %w", path, err)
	}
	if info.Size() > MaxDocumentBytes {
		return "", fmt.Errorf("%s: %w", path, ErrTooLarge)
	}

	content, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("read %s: %w", path, err)
	}
	return Bytes(content, filepath.Ext(path))
}

// Reader reads at most MaxDocumentBytes from r and extracts text for ext.
func Reader(r io.Reader, ext string) (string, error) {
	content, err := io.ReadAll(io.LimitReader(r, MaxDocumentBytes+1))
	if err != nil {
		return "", fmt.Errorf("read document: %w", err)
	}
	if len(content) > MaxDocumentBytes {
		return "", ErrTooLarge
	}
	return Bytes(content, ext)
}

// Bytes extracts text from content according to ext, which includes the
// leading dot. An empty extension is treated as plain text.
func Bytes(content []byte, ext string) (string, error) {
	ext = strings.ToLower(ext)
	switch ext {
	case ".txt", ".md", ".text", "":
		return extractPlain(content), nil
	case ".html", ".htm":
		return extractHTML(content)
	case ".pdf":
		return extractPDF(content)
	case ".docx":
		return extractDOCX(content)
	default:
		return "", &UnsupportedFormatError{Ext: ext}
	}
}

// SupportedExtensions lists the extensions Bytes accepts.
func SupportedExtensions() []string {
	return []string{".txt", ".md", ".text", ".html", ".htm", ".pdf", ".docx"}
}
