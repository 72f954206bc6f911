package pipeline

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"github.com/dvloznov/statement-ledger/internal/extract"
	"github.com/dvloznov/statement-ledger/internal/ledger"
	"github.com/dvloznov/statement-ledger/internal/transcribe"
)

// Step is a single stage of the statement pipeline.
type Step interface {
	Execute(ctx context.Context, state *State) error
}

// State is the shared state threaded through the pipeline steps.
type State struct {
	Data     []byte
	MimeType string

	Text        string         // extracted document text
	RawResponse string         // transcription-service response text
	Statement   map[string]any // decoded raw statement
	Ledger      *ledger.Ledger
}

// ExtractTextStep turns the document bytes into plain text. Empty output is
// a whole-request failure.
type ExtractTextStep struct {
	Extractor extract.Extractor
}

func (s *ExtractTextStep) Execute(ctx context.Context, state *State) error {
	text, err := s.Extractor.ExtractText(ctx, state.Data, state.MimeType)
	if err != nil {
		return extractionErr("extract", err)
	}
	if strings.TrimSpace(text) == "" {
		return extractionErr("extract", fmt.Errorf("document yielded no text"))
	}
	state.Text = text
	return nil
}

// TranscribeStep asks the transcription service for the structured rendition
// of the statement text. The prompt builder applies the document character
// budget before sending.
type TranscribeStep struct {
	Transcriber transcribe.Transcriber
}

func (s *TranscribeStep) Execute(ctx context.Context, state *State) error {
	prompt := transcribe.BuildStatementPrompt(state.Text)
	raw, err := s.Transcriber.Transcribe(ctx, prompt)
	if err != nil {
		return extractionErr("transcribe", err)
	}
	state.RawResponse = raw
	return nil
}

// DecodeStep cleans the response and decodes it into the generic statement
// shape. This is the single point where malformed transcription output fails
// the request.
type DecodeStep struct{}

func (s *DecodeStep) Execute(_ context.Context, state *State) error {
	cleaned := transcribe.CleanResponse(state.RawResponse)
	statement, err := ledger.DecodeStatement(cleaned)
	if err != nil {
		return extractionErr("decode", err)
	}
	state.Statement = statement
	return nil
}

// AssembleStep runs the normalizer and reconciliation over the decoded
// statement. It cannot fail; unusable entries are dropped and the drop count
// is logged for observability without changing the response contract.
type AssembleStep struct {
	Log zerolog.Logger
}

func (s *AssembleStep) Execute(_ context.Context, state *State) error {
	state.Ledger = ledger.Assemble(state.Statement)

	rawEntries, _ := state.Statement["transactions"].([]any)
	if dropped := len(rawEntries) - len(state.Ledger.Transactions); dropped > 0 {
		s.Log.Debug().
			Int("dropped", dropped).
			Int("kept", len(state.Ledger.Transactions)).
			Msg("Dropped unusable transaction entries")
	}
	return nil
}

func extractionErr(stage string, err error) *ledger.ExtractionError {
	return &ledger.ExtractionError{Stage: stage, Err: err}
}
