package extract

import (
	"context"
	"fmt"
	"strings"

	"google.golang.org/genai"
)

const extractionPrompt = "Extract the plain text content of the attached document.\n" +
	"Preserve the reading order of tables and columns.\n" +
	"Return ONLY the extracted text. Do not summarize, annotate, or add Markdown."

// Gemini extracts document text with a Gemini model. PDFs and images go to
// the model as inline blobs; text/* documents short-circuit to a plain UTF-8
// decode since there is nothing to extract.
type Gemini struct {
	client *genai.Client
	model  string
}

// NewGemini creates a Gemini-backed extractor. The client is shared with the
// transcriber; it is created once at process start.
func NewGemini(client *genai.Client, model string) *Gemini {
	return &Gemini{client: client, model: model}
}

// ExtractText implements Extractor.
func (g *Gemini) ExtractText(ctx context.Context, data []byte, mimeType string) (string, error) {
	if len(data) == 0 {
		return "", fmt.Errorf("document is empty")
	}
	if strings.HasPrefix(mimeType, "text/") {
		return PlainText{}.ExtractText(ctx, data, mimeType)
	}
	if mimeType == "" {
		mimeType = "application/pdf"
	}

	contents := []*genai.Content{
		{
			Role: "user",
			Parts: []*genai.Part{
				{Text: extractionPrompt},
				{
					InlineData: &genai.Blob{
						MIMEType: mimeType,
						Data:     data,
					},
				},
			},
		},
	}

	resp, err := g.client.Models.GenerateContent(ctx, g.model, contents, nil)
	if err != nil {
		return "", fmt.Errorf("extract text: generate content: %w", err)
	}

	text := resp.Text()
	if strings.TrimSpace(text) == "" {
		return "", fmt.Errorf("extract text: model returned no text")
	}
	return text, nil
}
