// Package handlers implements the HTTP endpoints: statement upload, ledger
// retrieval and the transaction search/pagination view.
package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/rs/zerolog"

	"github.com/dvloznov/statement-ledger/internal/api/middleware"
	"github.com/dvloznov/statement-ledger/internal/docsource"
	"github.com/dvloznov/statement-ledger/internal/ledger"
	"github.com/dvloznov/statement-ledger/internal/session"
)

// UploadField is the multipart form field the statement file must arrive in.
const UploadField = "statement"

// maxUploadBytes caps the accepted document size.
const maxUploadBytes = 20 << 20 // 20 MiB

// Processor runs the document-to-ledger flow. Satisfied by
// pipeline.Pipeline; tests substitute a stub.
type Processor interface {
	Process(ctx context.Context, data []byte, mimeType string) (*ledger.Ledger, error)
}

// Fetcher downloads document bytes for a gs:// URI.
type Fetcher func(ctx context.Context, uri string) ([]byte, string, error)

// StatementsHandler handles statement-related endpoints.
type StatementsHandler struct {
	processor Processor
	store     *session.Store
	fetch     Fetcher
	log       zerolog.Logger
}

// NewStatementsHandler creates a new statements handler backed by the given
// processor and session store.
func NewStatementsHandler(processor Processor, store *session.Store, log zerolog.Logger) *StatementsHandler {
	return &StatementsHandler{
		processor: processor,
		store:     store,
		fetch:     docsource.FetchGCS,
		log:       log,
	}
}

// statementResponse is the ledger wire shape plus the session ID follow-up
// requests use.
type statementResponse struct {
	ID string `json:"id"`
	ledger.Response
}

// Upload handles POST /api/statements: a multipart upload with the document
// under the "statement" field. A missing or empty file is an input error and
// nothing is processed.
func (h *StatementsHandler) Upload(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxUploadBytes)

	file, header, err := r.FormFile(UploadField)
	if err != nil {
		middleware.WriteError(w, http.StatusBadRequest, "statement file is required")
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		middleware.WriteError(w, http.StatusBadRequest, "could not read uploaded file")
		return
	}
	if len(data) == 0 {
		middleware.WriteError(w, http.StatusBadRequest, "uploaded file is empty")
		return
	}

	h.process(w, r, data, header.Header.Get("Content-Type"))
}

// FromGCS handles POST /api/statements/gcs: processing a statement that was
// already uploaded to Cloud Storage, referenced by gs:// URI.
func (h *StatementsHandler) FromGCS(w http.ResponseWriter, r *http.Request) {
	var req struct {
		GCSURI string `json:"gcs_uri"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		middleware.WriteError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if !docsource.IsGCSURI(req.GCSURI) {
		middleware.WriteError(w, http.StatusBadRequest, "gcs_uri must be a gs:// URI")
		return
	}

	data, contentType, err := h.fetch(r.Context(), req.GCSURI)
	if err != nil {
		h.log.Error().Err(err).Str("gcs_uri", req.GCSURI).Msg("Failed to fetch document")
		middleware.WriteError(w, http.StatusBadGateway, "failed to fetch document")
		return
	}

	h.process(w, r, data, contentType)
}

// process runs the pipeline and writes either the assembled ledger or the
// defaulted error-shaped ledger. Extraction failures keep the full response
// shape so consumers never special-case the error path structurally.
func (h *StatementsHandler) process(w http.ResponseWriter, r *http.Request, data []byte, mimeType string) {
	led, err := h.processor.Process(r.Context(), data, mimeType)
	if err != nil {
		var exErr *ledger.ExtractionError
		if errors.As(err, &exErr) {
			middleware.WriteJSON(w, http.StatusUnprocessableEntity,
				ledger.EmptyLedger().ToResponse(exErr.Error()))
			return
		}
		h.log.Error().Err(err).Msg("Statement processing failed")
		middleware.WriteError(w, http.StatusInternalServerError, "failed to process statement")
		return
	}

	rec, err := h.store.Save(led)
	if err != nil {
		h.log.Error().Err(err).Msg("Failed to store ledger")
		middleware.WriteError(w, http.StatusInternalServerError, "failed to store ledger")
		return
	}

	middleware.WriteJSON(w, http.StatusOK, statementResponse{
		ID:       rec.ID,
		Response: led.ToResponse(""),
	})
}

// Get handles GET /api/statements/{id}.
func (h *StatementsHandler) Get(w http.ResponseWriter, r *http.Request, id string) {
	rec, ok := h.store.Get(id)
	if !ok {
		middleware.WriteError(w, http.StatusNotFound, "statement not found")
		return
	}

	middleware.WriteJSON(w, http.StatusOK, statementResponse{
		ID:       rec.ID,
		Response: rec.Ledger.ToResponse(""),
	})
}

// Transactions handles GET /api/statements/{id}/transactions with optional
// search, page and page_size query parameters. The view is recomputed from
// scratch on every call; the stored ledger is never mutated.
func (h *StatementsHandler) Transactions(w http.ResponseWriter, r *http.Request, id string) {
	rec, ok := h.store.Get(id)
	if !ok {
		middleware.WriteError(w, http.StatusNotFound, "statement not found")
		return
	}

	query := r.URL.Query()
	search := query.Get("search")
	page := intParam(query.Get("page"), 1)
	pageSize := intParam(query.Get("page_size"), ledger.DefaultPageSize)

	filtered := ledger.SearchTransactions(rec.Ledger.Transactions, search)
	result := ledger.Paginate(filtered, page, pageSize)

	middleware.WriteJSON(w, http.StatusOK, result.ToResponse())
}

// intParam parses a positive integer query parameter, falling back for
// anything missing, malformed or non-positive.
func intParam(raw string, fallback int) int {
	if raw == "" {
		return fallback
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 1 {
		return fallback
	}
	return n
}
