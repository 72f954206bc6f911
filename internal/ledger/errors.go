package ledger

import "fmt"

// ExtractionError marks a whole-request failure: the document produced no
// usable text, the transcription call failed, or the transcription response
// could not be interpreted as structured data at all. Per-entry problems are
// never surfaced this way; those are handled by dropping the entry.
type ExtractionError struct {
	Stage string // "extract", "transcribe" or "decode"
	Err   error
}

func (e *ExtractionError) Error() string {
	return fmt.Sprintf("extraction failed at %s stage: %v", e.Stage, e.Err)
}

func (e *ExtractionError) Unwrap() error {
	return e.Err
}
