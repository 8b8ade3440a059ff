// Package genai turns a prompt into generated text with the Gemini
// generateContent API.
package genai

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	googleai "google.golang.org/genai"

	"github.com/shashiranjanraj/cuisineai/pkg/metrics"
)

// ErrGeneration wraps every failure of a generation call.
var ErrGeneration = errors.New("genai: generation failed")

// Generator is the single operation the recipe and nutrition services need.
type Generator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// Options configures a Client. HTTPClient carries the per-call timeout and,
// in tests, a stub transport.
type Options struct {
	APIKey     string
	Model      string
	BaseURL    string
	APIVersion string
	HTTPClient *http.Client
}

// Client calls one fixed model. It makes exactly one attempt per call.
type Client struct {
	sdk   *googleai.Client
	model string
}

func NewClient(ctx context.Context, opts Options) (*Client, error) {
	sdk, err := googleai.NewClient(ctx, &googleai.ClientConfig{
		APIKey:     opts.APIKey,
		Backend:    googleai.BackendGeminiAPI,
		HTTPClient: opts.HTTPClient,
		HTTPOptions: googleai.HTTPOptions{
			BaseURL:    opts.BaseURL,
			APIVersion: opts.APIVersion,
		},
	})
	if err != nil {
		return nil, fmt.Errorf("genai: new client: %w", err)
	}
	return &Client{sdk: sdk, model: opts.Model}, nil
}

// Generate sends prompt as a single user turn and returns the concatenated
// text parts of the first candidate.
func (c *Client) Generate(ctx context.Context, prompt string) (text string, err error) {
	start := time.Now()
	defer func() { metrics.ObserveGeneration(c.model, start, err) }()

	resp, err := c.sdk.Models.GenerateContent(ctx, c.model, googleai.Text(prompt), nil)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrGeneration, err)
	}

	if len(resp.Candidates) == 0 {
		if resp.PromptFeedback != nil && resp.PromptFeedback.BlockReason != "" {
			return "", fmt.Errorf("%w: prompt blocked: %s", ErrGeneration, resp.PromptFeedback.BlockReason)
		}
		return "", fmt.Errorf("%w: no candidates returned", ErrGeneration)
	}

	text = resp.Text()
	if text == "" {
		return "", fmt.Errorf("%w: empty candidate (finish reason %q)", ErrGeneration, resp.Candidates[0].FinishReason)
	}
	return text, nil
}
