package genai

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	gemini "google.golang.org/genai"
)

// Fallback answers returned when a call fails or comes back empty.
const (
	NoDescription       = "No description generated."
	FallbackDescription = "Beautifully maintained property in a prime location with all basic amenities."
	NoAnalysis          = "Could not analyze the document."
	FallbackAnalysis    = "Failed to process document."
)

const (
	descriptionInstruction = "You are an expert real estate copywriter in India. Create concise, professional, and persuasive property descriptions that highlight luxury and convenience. Avoid buzzwords like 'unbeatable' or 'stunning'. Focus on lifestyle benefits."
	analyzeInstruction     = "Extract all key information from this document (e.g., receipt details, menu items, or chart data). Provide a clean summary in bullet points."
	bannerTemplate         = "A professional real estate marketing banner for: %s. Clean, high-end, architectural photography style."

	descriptionMaxTokens   = 200
	descriptionTemperature = 0.7
)

// AspectRatio is a banner shape.
type AspectRatio string

const (
	Square   AspectRatio = "1:1"
	Classic  AspectRatio = "4:3"
	Wide     AspectRatio = "16:9"
	Portrait AspectRatio = "9:16"
)

// AspectRatios lists the supported banner shapes.
var AspectRatios = []AspectRatio{Square, Classic, Wide, Portrait}

// IsValid checks if an aspect ratio is supported.
func (a AspectRatio) IsValid() bool {
	for _, v := range AspectRatios {
		if a == v {
			return true
		}
	}
	return false
}

// ErrEmptyDocument is logged when AnalyzeDocument gets no bytes.
var ErrEmptyDocument = errors.New("empty document")

// Details describes a listing for copywriting.
type Details struct {
	Title      string   `json:"title"`
	Rent       int64    `json:"rent"`
	Location   string   `json:"location"`
	Facilities []string `json:"facilities"`
	Furnishing string   `json:"furnishing"`
	TenantType string   `json:"tenantType"`
}

func (d Details) prompt() string {
	return fmt.Sprintf(`Generate a compelling real estate description for a rental property in India with these details:
Title: %s
Rent: ₹%d/month
Location: %s
Furnishing: %s
Ideal for: %s
Facilities: %s`, d.Title, d.Rent, d.Location, d.Furnishing, d.TenantType, strings.Join(d.Facilities, ", "))
}

// Assistant turns model calls into values the UI can always show. Failures
// are logged and replaced with fixed fallbacks.
type Assistant struct {
	gen        Generator
	textModel  string
	imageModel string
}

// NewAssistant wraps gen. Empty model names use the defaults.
func NewAssistant(gen Generator, textModel, imageModel string) *Assistant {
	if textModel == "" {
		textModel = DefaultTextModel
	}
	if imageModel == "" {
		imageModel = DefaultImageModel
	}
	return &Assistant{gen: gen, textModel: textModel, imageModel: imageModel}
}

// GenerateDescription writes listing copy from d.
func (a *Assistant) GenerateDescription(ctx context.Context, d Details) string {
	resp, err := a.generate(ctx, a.textModel, gemini.Text(d.prompt()), &gemini.GenerateContentConfig{
		SystemInstruction: gemini.NewContentFromText(descriptionInstruction, gemini.RoleUser),
		MaxOutputTokens:   descriptionMaxTokens,
		Temperature:       gemini.Ptr[float32](descriptionTemperature),
	})
	if err != nil {
		slog.Error("generating description", "title", d.Title, "error", err)
		return FallbackDescription
	}

	text := strings.TrimSpace(responseText(resp))
	if text == "" {
		return NoDescription
	}
	return text
}

// AnalyzeDocument summarizes an image or PDF as bullet points.
func (a *Assistant) AnalyzeDocument(ctx context.Context, data []byte, mimeType string) string {
	if len(data) == 0 {
		slog.Error("analyzing document", "mime", mimeType, "error", ErrEmptyDocument)
		return FallbackAnalysis
	}

	contents := []*gemini.Content{gemini.NewContentFromParts([]*gemini.Part{
		gemini.NewPartFromBytes(data, mimeType),
		gemini.NewPartFromText(analyzeInstruction),
	}, gemini.RoleUser)}
	resp, err := a.generate(ctx, a.textModel, contents, nil)
	if err != nil {
		slog.Error("analyzing document", "mime", mimeType, "bytes", len(data), "error", err)
		return FallbackAnalysis
	}

	text := responseText(resp)
	if text == "" {
		return NoAnalysis
	}
	return text
}

// GenerateBanner renders a marketing banner and returns it as a data URI.
// It reports false when no image came back.
func (a *Assistant) GenerateBanner(ctx context.Context, prompt string, ratio AspectRatio) (string, bool) {
	if !ratio.IsValid() {
		slog.Warn("rejecting banner request", "aspectRatio", ratio)
		return "", false
	}

	resp, err := a.generate(ctx, a.imageModel, gemini.Text(fmt.Sprintf(bannerTemplate, prompt)), &gemini.GenerateContentConfig{
		ImageConfig: &gemini.ImageConfig{AspectRatio: string(ratio)},
	})
	if err != nil {
		slog.Error("generating banner", "aspectRatio", ratio, "error", err)
		return "", false
	}

	blob := responseImage(resp)
	if blob == nil {
		return "", false
	}
	return "data:image/png;base64," + base64.StdEncoding.EncodeToString(blob.Data), true
}

func (a *Assistant) generate(ctx context.Context, model string, contents []*gemini.Content, config *gemini.GenerateContentConfig) (*gemini.GenerateContentResponse, error) {
	if a.gen == nil {
		return nil, errors.New("no generator configured")
	}
	return a.gen.GenerateContent(ctx, model, contents, config)
}
