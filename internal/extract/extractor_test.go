package extract

import (
	"context"
	"testing"
)

func TestPlainText(t *testing.T) {
	ctx := context.Background()

	text, err := PlainText{}.ExtractText(ctx, []byte("BALANCE 100.00"), "text/plain")
	if err != nil {
		t.Fatalf("ExtractText() error = %v", err)
	}
	if text != "BALANCE 100.00" {
		t.Errorf("ExtractText() = %q", text)
	}

	if _, err := (PlainText{}).ExtractText(ctx, nil, "text/plain"); err == nil {
		t.Error("empty document should fail")
	}

	if _, err := (PlainText{}).ExtractText(ctx, []byte{0xff, 0xfe, 0x00}, "text/plain"); err == nil {
		t.Error("non-UTF-8 bytes should fail")
	}
}

// text/* documents short-circuit to a UTF-8 decode and never reach the model,
// so the client can be nil here.
func TestGemini_TextShortCircuit(t *testing.T) {
	g := NewGemini(nil, "test-model")

	text, err := g.ExtractText(context.Background(), []byte("statement text"), "text/plain; charset=utf-8")
	if err != nil {
		t.Fatalf("ExtractText() error = %v", err)
	}
	if text != "statement text" {
		t.Errorf("ExtractText() = %q", text)
	}
}

func TestGemini_EmptyDocument(t *testing.T) {
	g := NewGemini(nil, "test-model")
	if _, err := g.ExtractText(context.Background(), nil, "application/pdf"); err == nil {
		t.Error("empty document should fail before any model call")
	}
}
