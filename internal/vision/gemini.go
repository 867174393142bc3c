package vision

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/lithammer/dedent"
	"github.com/rs/zerolog/log"
	"google.golang.org/genai"
)

const geminiModel = "gemini-2.5-flash-lite"

var transcriptionPrompt = strings.TrimSpace(dedent.Dedent(`
	Transcribe all text visible in this screenshot of a marketplace listing.

	Rules:
	- Output the text exactly as it appears, top to bottom.
	- Preserve dollar amounts verbatim, including the $ sign.
	- Preserve labels such as "Condition" followed by their value.
	- Do not describe the image, summarize, or add any commentary.

	Respond with ONLY the transcribed text.`))

// GeminiRecognizer extracts on-screen text from listing screenshots using
// the Gemini API. It uses the GEMINI_API_KEY environment variable for
// authentication.
type GeminiRecognizer struct {
	client *genai.Client
}

func NewGeminiRecognizer(ctx context.Context) (*GeminiRecognizer, error) {
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey: os.Getenv("GEMINI_API_KEY"),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}
	return &GeminiRecognizer{client: client}, nil
}

// Recognize sends the screenshot to Gemini with a transcription prompt and
// returns the raw text response.
func (r *GeminiRecognizer) Recognize(ctx context.Context, imageData []byte, mimeType string) (string, error) {
	if mimeType == "" {
		mimeType = "image/png"
	}

	parts := []*genai.Part{
		genai.NewPartFromText(transcriptionPrompt),
		{InlineData: &genai.Blob{Data: imageData, MIMEType: mimeType}},
	}
	contents := []*genai.Content{
		genai.NewContentFromParts(parts, genai.RoleUser),
	}

	result, err := r.client.Models.GenerateContent(ctx, geminiModel, contents, nil)
	if err != nil {
		return "", fmt.Errorf("failed to generate content: %w", err)
	}

	if len(result.Candidates) == 0 || len(result.Candidates[0].Content.Parts) == 0 {
		return "", fmt.Errorf("no response from Gemini")
	}

	if result.UsageMetadata != nil {
		log.Debug().
			Int("inputTokens", int(result.UsageMetadata.PromptTokenCount)).
			Int("outputTokens", int(result.UsageMetadata.CandidatesTokenCount)).
			Msg("gemini transcription complete")
	}

	return result.Text(), nil
}
