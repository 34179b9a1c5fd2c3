package ai

import (
	"context"
	"errors"
	"fmt"

	"google.golang.org/genai"

	"resuminator/internal/config"
)

// promptSuffix is appended to every caller prompt so the drafted text stays
// plain enough to drop into the résumé editor.
const promptSuffix = " Do not add special characters."

// Client forwards prompts to the Gemini text-generation service.
type Client struct {
	genai *genai.Client
	model string
}

// NewClient builds a Gemini client from the configured API key and model.
func NewClient(ctx context.Context, cfg config.GeminiConfig) (*Client, error) {
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  cfg.APIKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("create genai client: %w", err)
	}
	return &Client{genai: client, model: cfg.Model}, nil
}

// Generate sends the prompt, with the fixed instruction suffix, and returns
// the service's raw text reply. The caller bounds the call via ctx.
func (c *Client) Generate(ctx context.Context, prompt string) (string, error) {
	resp, err := c.genai.Models.GenerateContent(ctx, c.model, genai.Text(prompt+promptSuffix), nil)
	if err != nil {
		return "", fmt.Errorf("generate content: %w", err)
	}

	text := resp.Text()
	if text == "" {
		return "", errors.New("empty generation response")
	}
	return text, nil
}
