// Package pipeline orchestrates the document-to-ledger flow: extract text,
// transcribe it to raw JSON, decode, assemble. Each upload runs the steps
// strictly in sequence with no internal parallelism, no retries and no
// backoff; a stalled collaborator stalls the whole request up to the
// caller's deadline.
package pipeline

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/dvloznov/statement-ledger/internal/extract"
	"github.com/dvloznov/statement-ledger/internal/ledger"
	"github.com/dvloznov/statement-ledger/internal/transcribe"
)

// Pipeline runs the standard extract → transcribe → decode → assemble
// sequence. It holds no mutable state between runs; concurrent Process
// calls are independent.
type Pipeline struct {
	steps []Step
	log   zerolog.Logger
}

// New creates the standard statement pipeline around the two external
// collaborators.
func New(extractor extract.Extractor, transcriber transcribe.Transcriber, log zerolog.Logger) *Pipeline {
	return &Pipeline{
		steps: []Step{
			&ExtractTextStep{Extractor: extractor},
			&TranscribeStep{Transcriber: transcriber},
			&DecodeStep{},
			&AssembleStep{Log: log},
		},
		log: log,
	}
}

// Process converts one uploaded document into a validated ledger. A returned
// error is always a *ledger.ExtractionError: entry-level problems inside the
// statement never fail the run, only whole-request failures do.
func (p *Pipeline) Process(ctx context.Context, data []byte, mimeType string) (*ledger.Ledger, error) {
	state := &State{
		Data:     data,
		MimeType: mimeType,
	}

	for _, step := range p.steps {
		if err := step.Execute(ctx, state); err != nil {
			p.log.Warn().Err(err).Msg("Statement processing failed")
			return nil, err
		}
	}

	p.log.Info().
		Int("transactions", len(state.Ledger.Transactions)).
		Str("currency", state.Ledger.Currency).
		Msg("Statement processed")

	return state.Ledger, nil
}
