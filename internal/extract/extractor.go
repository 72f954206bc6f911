// Package extract turns raw document bytes into plain text. The extraction
// service is an external collaborator: the core never assumes anything about
// the internal structure of a document, only that extraction either yields
// text or fails.
package extract

import (
	"context"
	"fmt"
	"unicode/utf8"
)

// Extractor extracts the plain text content of a document.
type Extractor interface {
	ExtractText(ctx context.Context, data []byte, mimeType string) (string, error)
}

// PlainText decodes the document bytes as UTF-8 without calling a model.
// Suitable for text/* uploads and for tests.
type PlainText struct{}

// ExtractText implements Extractor.
func (PlainText) ExtractText(_ context.Context, data []byte, _ string) (string, error) {
	if len(data) == 0 {
		return "", fmt.Errorf("document is empty")
	}
	if !utf8.Valid(data) {
		return "", fmt.Errorf("document is not valid UTF-8 text")
	}
	return string(data), nil
}
