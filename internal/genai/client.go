// Package genai wraps the Gemini SDK in the copywriting, document and
// banner helpers the app uses.
package genai

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	gemini "google.golang.org/genai"
)

const (
	// DefaultTextModel is used for descriptions and document analysis.
	DefaultTextModel = "gemini-3-flash-preview"
	// DefaultImageModel is used for banners.
	DefaultImageModel = "gemini-2.5-flash-image"
	// DefaultTimeout bounds a single generateContent call.
	DefaultTimeout = 60 * time.Second
)

// Generator produces content from a model. *gemini.Models satisfies it.
type Generator interface {
	GenerateContent(ctx context.Context, model string, contents []*gemini.Content, config *gemini.GenerateContentConfig) (*gemini.GenerateContentResponse, error)
}

// ClientOptions tune the SDK client. Zero values use the SDK defaults and
// DefaultTimeout.
type ClientOptions struct {
	BaseURL string
	Timeout time.Duration
}

// Client calls the Gemini API through the SDK.
type Client struct {
	models Generator
}

// NewClient creates a Gemini API client with the given key.
func NewClient(ctx context.Context, apiKey string, opts ClientOptions) (*Client, error) {
	if apiKey == "" {
		return nil, errors.New("genai API key is required")
	}
	if opts.Timeout <= 0 {
		opts.Timeout = DefaultTimeout
	}

	sdk, err := gemini.NewClient(ctx, &gemini.ClientConfig{
		APIKey:      apiKey,
		Backend:     gemini.BackendGeminiAPI,
		HTTPClient:  &http.Client{Timeout: opts.Timeout},
		HTTPOptions: gemini.HTTPOptions{BaseURL: strings.TrimRight(opts.BaseURL, "/")},
	})
	if err != nil {
		return nil, fmt.Errorf("creating genai client: %w", err)
	}
	return &Client{models: sdk.Models}, nil
}

// GenerateContent runs one generateContent call against model.
func (c *Client) GenerateContent(ctx context.Context, model string, contents []*gemini.Content, config *gemini.GenerateContentConfig) (*gemini.GenerateContentResponse, error) {
	if model == "" {
		return nil, errors.New("model is required")
	}
	resp, err := c.models.GenerateContent(ctx, model, contents, config)
	if err != nil {
		return nil, fmt.Errorf("generating content with %s: %w", model, err)
	}
	return resp, nil
}

// responseText joins the non-thought text parts of the first candidate.
func responseText(resp *gemini.GenerateContentResponse) string {
	parts := firstParts(resp)
	var sb strings.Builder
	for _, p := range parts {
		if p == nil || p.Thought {
			continue
		}
		sb.WriteString(p.Text)
	}
	return sb.String()
}

// responseImage returns the first inline data part of the first candidate.
func responseImage(resp *gemini.GenerateContentResponse) *gemini.Blob {
	for _, p := range firstParts(resp) {
		if p != nil && p.InlineData != nil && len(p.InlineData.Data) > 0 {
			return p.InlineData
		}
	}
	return nil
}

func firstParts(resp *gemini.GenerateContentResponse) []*gemini.Part {
	if resp == nil || len(resp.Candidates) == 0 {
		return nil
	}
	c := resp.Candidates[0]
	if c == nil || c.Content == nil {
		return nil
	}
	return c.Content.Parts
}
