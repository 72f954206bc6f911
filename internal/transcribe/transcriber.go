// Package transcribe wraps the natural-language-to-JSON transcription
// collaborator. Its output is untrusted text expected to contain JSON; the
// ledger package owns deciding whether it actually does.
package transcribe

import (
	"context"
	"fmt"
	"strings"

	"google.golang.org/genai"
)

// Transcriber sends a prompt to the transcription service and returns the
// raw response text. No correctness is guaranteed: the response may be
// malformed, incomplete, or not JSON at all.
type Transcriber interface {
	Transcribe(ctx context.Context, prompt string) (string, error)
}

// Gemini is the Gemini-backed Transcriber.
type Gemini struct {
	client *genai.Client
	model  string
}

// NewGemini creates a Gemini-backed transcriber.
func NewGemini(client *genai.Client, model string) *Gemini {
	return &Gemini{client: client, model: model}
}

// Transcribe implements Transcriber.
func (g *Gemini) Transcribe(ctx context.Context, prompt string) (string, error) {
	contents := []*genai.Content{
		{
			Role:  "user",
			Parts: []*genai.Part{{Text: prompt}},
		},
	}

	resp, err := g.client.Models.GenerateContent(ctx, g.model, contents, nil)
	if err != nil {
		return "", fmt.Errorf("transcribe: generate content: %w", err)
	}

	text := resp.Text()
	if strings.TrimSpace(text) == "" {
		return "", fmt.Errorf("transcribe: empty response from model")
	}
	return text, nil
}
