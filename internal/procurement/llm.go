package procurement

import (
	"context"
	"errors"
	"fmt"
	"net"
	"os"
	"strings"

	anthropic "github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
	"google.golang.org/genai"
)

// GeneratorConfig tunes a generation collaborator. Zero values select the
// provider defaults: the original workflow's model, temperature 0.5 and a
// 2000-token output cap.
type GeneratorConfig struct {
	Model           string
	Temperature     float64
	MaxOutputTokens int
}

const (
	DefaultGeminiModel = "gemini-1.5-pro-latest"

	defaultTemperature     = 0.5
	defaultMaxOutputTokens = 2000
)

type llmFailureClass int

const (
	failureTimeout llmFailureClass = iota
	failureRateLimit
	failureServer
	failureClient
)

func (c llmFailureClass) String() string {
	switch c {
	case failureTimeout:
		return "timeout"
	case failureRateLimit:
		return "rate limited"
	case failureClient:
		return "client error"
	default:
		return "server error"
	}
}

// GeminiModeler is the slice of the genai model surface the generator
// needs, split out so tests can inject a fake.
type GeminiModeler interface {
	GenerateContent(ctx context.Context, model string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error)
}

type GeminiClientCreator func(ctx context.Context, apiKey string) (GeminiModeler, error)

func defaultGeminiCreator(ctx context.Context, apiKey string) (GeminiModeler, error) {
	client, err := genai.NewClient(ctx, &genai.ClientConfig{APIKey: apiKey})
	if err != nil {
		return nil, err
	}
	return client.Models, nil
}

var newGeminiClient GeminiClientCreator = defaultGeminiCreator

// GeminiGenerator calls the Gemini generateContent API. It is the default
// generation collaborator.
type GeminiGenerator struct {
	models GeminiModeler
	cfg    GeneratorConfig
}

// NewGeminiGeneratorFromEnv builds a GeminiGenerator from GEMINI_API_KEY,
// falling back to GOOGLE_API_KEY.
func NewGeminiGeneratorFromEnv(ctx context.Context, cfg GeneratorConfig) (*GeminiGenerator, error) {
	apiKey := strings.TrimSpace(os.Getenv("GEMINI_API_KEY"))
	if apiKey == "" {
		apiKey = strings.TrimSpace(os.Getenv("GOOGLE_API_KEY"))
	}
	if apiKey == "" {
		return nil, errors.New("GEMINI_API_KEY or GOOGLE_API_KEY not configured")
	}
	models, err := newGeminiClient(ctx, apiKey)
	if err != nil {
		return nil, fmt.Errorf("create gemini client: %w", err)
	}
	if strings.TrimSpace(cfg.Model) == "" {
		cfg.Model = DefaultGeminiModel
	}
	if cfg.Temperature == 0 {
		cfg.Temperature = defaultTemperature
	}
	if cfg.MaxOutputTokens <= 0 {
		cfg.MaxOutputTokens = defaultMaxOutputTokens
	}
	return &GeminiGenerator{models: models, cfg: cfg}, nil
}

func (g *GeminiGenerator) Generate(ctx context.Context, prompt string) (string, error) {
	resp, err := g.models.GenerateContent(ctx, g.cfg.Model, genai.Text(prompt), &genai.GenerateContentConfig{
		Temperature:     genai.Ptr(float32(g.cfg.Temperature)),
		MaxOutputTokens: int32(g.cfg.MaxOutputTokens),
	})
	if err != nil {
		return "", fmt.Errorf("gemini %s: %w", classifyTransportError(err), err)
	}
	text := geminiResponseText(resp)
	if strings.TrimSpace(text) == "" {
		return "", errors.New("gemini returned an empty response")
	}
	return text, nil
}

func geminiResponseText(resp *genai.GenerateContentResponse) string {
	if resp == nil || len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return ""
	}
	var sb strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if part != nil {
			sb.WriteString(part.Text)
		}
	}
	return sb.String()
}

// AnthropicMessager is the slice of the Anthropic client the generator
// needs, split out so tests can inject a fake.
type AnthropicMessager interface {
	New(ctx context.Context, params anthropic.MessageNewParams, opts ...option.RequestOption) (*anthropic.Message, error)
}

type AnthropicClientCreator func(apiKey string) AnthropicMessager

func defaultAnthropicCreator(apiKey string) AnthropicMessager {
	c := anthropic.NewClient(option.WithAPIKey(apiKey))
	return &c.Messages
}

var newAnthropicClient AnthropicClientCreator = defaultAnthropicCreator

// AnthropicGenerator is the alternate generation collaborator, selected with
// --provider=anthropic.
type AnthropicGenerator struct {
	messages AnthropicMessager
	cfg      GeneratorConfig
}

func NewAnthropicGeneratorFromEnv(cfg GeneratorConfig) (*AnthropicGenerator, error) {
	apiKey := strings.TrimSpace(os.Getenv("ANTHROPIC_API_KEY"))
	if apiKey == "" {
		return nil, errors.New("ANTHROPIC_API_KEY not configured")
	}
	if strings.TrimSpace(cfg.Model) == "" {
		cfg.Model = string(anthropic.ModelClaudeSonnet4_20250514)
	}
	if cfg.Temperature == 0 {
		cfg.Temperature = defaultTemperature
	}
	if cfg.MaxOutputTokens <= 0 {
		cfg.MaxOutputTokens = defaultMaxOutputTokens
	}
	return &AnthropicGenerator{messages: newAnthropicClient(apiKey), cfg: cfg}, nil
}

func (a *AnthropicGenerator) Generate(ctx context.Context, prompt string) (string, error) {
	resp, err := a.messages.New(ctx, anthropic.MessageNewParams{
		Model:       anthropic.Model(a.cfg.Model),
		MaxTokens:   int64(a.cfg.MaxOutputTokens),
		Messages:    []anthropic.MessageParam{anthropic.NewUserMessage(anthropic.NewTextBlock(prompt))},
		Temperature: anthropic.Float(a.cfg.Temperature),
	})
	if err != nil {
		return "", fmt.Errorf("anthropic %s: %w", classifyTransportError(err), err)
	}
	var sb strings.Builder
	for _, b := range resp.Content {
		if b.Type == "text" {
			sb.WriteString(b.Text)
		}
	}
	if strings.TrimSpace(sb.String()) == "" {
		return "", errors.New("anthropic returned an empty response")
	}
	return sb.String(), nil
}

func classifyTransportError(err error) llmFailureClass {
	msg := strings.ToLower(err.Error())
	if errors.Is(err, context.DeadlineExceeded) {
		return failureTimeout
	}
	var ne net.Error
	if errors.As(err, &ne) && ne.Timeout() {
		return failureTimeout
	}
	switch {
	case strings.Contains(msg, "429"):
		return failureRateLimit
	case strings.Contains(msg, " 5") || strings.Contains(msg, "status code: 5") || strings.Contains(msg, "server error"):
		return failureServer
	case strings.Contains(msg, " 4") || strings.Contains(msg, "status code: 4"):
		return failureClient
	default:
		return failureServer
	}
}
