package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"mime"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"google.golang.org/genai"

	"github.com/dvloznov/statement-ledger/internal/config"
	"github.com/dvloznov/statement-ledger/internal/docsource"
	"github.com/dvloznov/statement-ledger/internal/extract"
	"github.com/dvloznov/statement-ledger/internal/ledger"
	"github.com/dvloznov/statement-ledger/internal/logger"
	"github.com/dvloznov/statement-ledger/internal/pipeline"
	"github.com/dvloznov/statement-ledger/internal/transcribe"
)

func main() {
	log := logger.New()

	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	switch os.Args[1] {
	case "ingest":
		runIngest(log)
	case "view":
		runView(log)
	case "help", "-h", "--help":
		printUsage()
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n\n", os.Args[1])
		printUsage()
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println("Statement Ledger CLI")
	fmt.Println("\nUsage:")
	fmt.Println("  cli <command> [options]")
	fmt.Println("\nCommands:")
	fmt.Println("  ingest    Process a statement (local file or gs:// URI) and print the ledger")
	fmt.Println("  view      Process a statement and print a filtered, paginated transaction view")
	fmt.Println("  help      Show this help message")
	fmt.Println("\nRun 'cli <command> -h' for more information on a command.")
}

func runIngest(log zerolog.Logger) {
	fs := flag.NewFlagSet("ingest", flag.ExitOnError)
	source := fs.String("source", "", "statement file path or gs:// URI")
	fs.Parse(os.Args[2:])

	led := processStatement(log, *source)
	printJSON(led.ToResponse(""))
}

func runView(log zerolog.Logger) {
	fs := flag.NewFlagSet("view", flag.ExitOnError)
	source := fs.String("source", "", "statement file path or gs:// URI")
	search := fs.String("search", "", "search term (matches date, description or amount)")
	page := fs.Int("page", 1, "page number (1-based)")
	pageSize := fs.Int("page-size", ledger.DefaultPageSize, "transactions per page")
	fs.Parse(os.Args[2:])

	led := processStatement(log, *source)

	view := ledger.NewViewState(*pageSize)
	view.SetSearch(*search)
	view.SetPage(*page)

	printJSON(view.Compute(led.Transactions).ToResponse())
}

// processStatement runs the full pipeline for one document and exits on any
// whole-request failure.
func processStatement(log zerolog.Logger, source string) *ledger.Ledger {
	if source == "" {
		log.Fatal().Msg("Error: --source is required")
	}

	cfg := config.Load()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	data, mimeType := loadDocument(ctx, log, source)

	extractor, transcriber := buildCollaborators(ctx, log, cfg, mimeType)

	led, err := pipeline.New(extractor, transcriber, log).Process(ctx, data, mimeType)
	if err != nil {
		log.Fatal().Err(err).Msg("Statement processing failed")
	}
	return led
}

func loadDocument(ctx context.Context, log zerolog.Logger, source string) ([]byte, string) {
	if docsource.IsGCSURI(source) {
		data, contentType, err := docsource.FetchGCS(ctx, source)
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to fetch document from GCS")
		}
		return data, contentType
	}

	data, err := os.ReadFile(source)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to read statement file")
	}
	return data, mime.TypeByExtension(filepath.Ext(source))
}

// buildCollaborators wires the extractor and transcriber. Plain-text
// documents still need the transcription model, so the API key is required
// either way; only the extraction step can run without it.
func buildCollaborators(ctx context.Context, log zerolog.Logger, cfg config.Config, mimeType string) (extract.Extractor, transcribe.Transcriber) {
	if cfg.GeminiAPIKey == "" {
		log.Fatal().Msg("GEMINI_API_KEY is required")
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:      cfg.GeminiAPIKey,
		HTTPOptions: genai.HTTPOptions{APIVersion: "v1"},
	})
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to create genai client")
	}

	if strings.HasPrefix(mimeType, "text/") {
		return extract.PlainText{}, transcribe.NewGemini(client, cfg.GeminiModel)
	}
	return extract.NewGemini(client, cfg.GeminiModel), transcribe.NewGemini(client, cfg.GeminiModel)
}

func printJSON(v any) {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		fmt.Fprintf(os.Stderr, "encode output: %v\n", err)
		os.Exit(1)
	}
}
