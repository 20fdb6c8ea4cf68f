package procurement

import (
	"context"
	"errors"
	"strings"
	"testing"

	anthropic "github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
	"google.golang.org/genai"
)

// fakeGeminiModels implements GeminiModeler for testing.
type fakeGeminiModels struct {
	resp      *genai.GenerateContentResponse
	err       error
	gotModel  string
	gotConfig *genai.GenerateContentConfig
	gotPrompt string
}

func (f *fakeGeminiModels) GenerateContent(_ context.Context, model string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error) {
	f.gotModel = model
	f.gotConfig = config
	if len(contents) > 0 && len(contents[0].Parts) > 0 {
		f.gotPrompt = contents[0].Parts[0].Text
	}
	return f.resp, f.err
}

func newGeminiTextResponse(text string) *genai.GenerateContentResponse {
	return &genai.GenerateContentResponse{
		Candidates: []*genai.Candidate{
			{Content: &genai.Content{Parts: []*genai.Part{{Text: text}}}},
		},
	}
}

func withFakeGeminiClient(fake *fakeGeminiModels) func() {
	old := newGeminiClient
	newGeminiClient = func(_ context.Context, _ string) (GeminiModeler, error) { return fake, nil }
	return func() { newGeminiClient = old }
}

func TestNewGeminiGeneratorFromEnvDefaults(t *testing.T) {
	t.Setenv("GEMINI_API_KEY", "test-key")
	cleanup := withFakeGeminiClient(&fakeGeminiModels{})
	defer cleanup()

	g, err := NewGeminiGeneratorFromEnv(context.Background(), GeneratorConfig{})
	if err != nil {
		t.Fatalf("NewGeminiGeneratorFromEnv: %v", err)
	}
	if g.cfg.Model != DefaultGeminiModel {
		t.Fatalf("expected default model, got %q", g.cfg.Model)
	}
	if g.cfg.Temperature != 0.5 {
		t.Fatalf("expected default temperature 0.5, got %v", g.cfg.Temperature)
	}
	if g.cfg.MaxOutputTokens != 2000 {
		t.Fatalf("expected default max tokens 2000, got %d", g.cfg.MaxOutputTokens)
	}
}

func TestNewGeminiGeneratorFromEnvGoogleKeyFallback(t *testing.T) {
	t.Setenv("GEMINI_API_KEY", "")
	t.Setenv("GOOGLE_API_KEY", "fallback-key")
	var gotKey string
	old := newGeminiClient
	newGeminiClient = func(_ context.Context, apiKey string) (GeminiModeler, error) {
		gotKey = apiKey
		return &fakeGeminiModels{}, nil
	}
	defer func() { newGeminiClient = old }()

	if _, err := NewGeminiGeneratorFromEnv(context.Background(), GeneratorConfig{}); err != nil {
		t.Fatalf("NewGeminiGeneratorFromEnv: %v", err)
	}
	if gotKey != "fallback-key" {
		t.Fatalf("expected GOOGLE_API_KEY fallback, got %q", gotKey)
	}
}

func TestNewGeminiGeneratorFromEnvMissingKey(t *testing.T) {
	t.Setenv("GEMINI_API_KEY", "")
	t.Setenv("GOOGLE_API_KEY", "")
	if _, err := NewGeminiGeneratorFromEnv(context.Background(), GeneratorConfig{}); err == nil {
		t.Fatal("expected error when no API key is configured")
	}
}

func TestGeminiGenerate(t *testing.T) {
	fake := &fakeGeminiModels{resp: newGeminiTextResponse("generated rfp")}
	g := &GeminiGenerator{models: fake, cfg: GeneratorConfig{Model: DefaultGeminiModel, Temperature: 0.5, MaxOutputTokens: 2000}}

	out, err := g.Generate(context.Background(), "draft an rfp")
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if out != "generated rfp" {
		t.Fatalf("unexpected output: %q", out)
	}
	if fake.gotModel != DefaultGeminiModel {
		t.Fatalf("expected model %q, got %q", DefaultGeminiModel, fake.gotModel)
	}
	if fake.gotPrompt != "draft an rfp" {
		t.Fatalf("expected prompt passed through, got %q", fake.gotPrompt)
	}
	if fake.gotConfig == nil || fake.gotConfig.Temperature == nil || *fake.gotConfig.Temperature != 0.5 {
		t.Fatalf("expected temperature 0.5 in request config, got %+v", fake.gotConfig)
	}
	if fake.gotConfig.MaxOutputTokens != 2000 {
		t.Fatalf("expected max output tokens 2000, got %d", fake.gotConfig.MaxOutputTokens)
	}
}

func TestGeminiGenerateEmptyResponse(t *testing.T) {
	fake := &fakeGeminiModels{resp: newGeminiTextResponse("   ")}
	g := &GeminiGenerator{models: fake, cfg: GeneratorConfig{Model: DefaultGeminiModel}}
	if _, err := g.Generate(context.Background(), "prompt"); err == nil {
		t.Fatal("expected error for empty completion")
	}
}

func TestGeminiGenerateClassifiesFailure(t *testing.T) {
	fake := &fakeGeminiModels{err: errors.New("googleapi: Error 429: quota exceeded")}
	g := &GeminiGenerator{models: fake, cfg: GeneratorConfig{Model: DefaultGeminiModel}}
	_, err := g.Generate(context.Background(), "prompt")
	if err == nil {
		t.Fatal("expected error")
	}
	if !strings.Contains(err.Error(), "gemini rate limited") {
		t.Fatalf("expected rate limit classification, got %v", err)
	}
}

// mockMessager implements AnthropicMessager for testing.
type mockMessager struct {
	response  *anthropic.Message
	err       error
	gotParams anthropic.MessageNewParams
}

func (m *mockMessager) New(_ context.Context, params anthropic.MessageNewParams, _ ...option.RequestOption) (*anthropic.Message, error) {
	m.gotParams = params
	return m.response, m.err
}

func newMockMessage(text string) *anthropic.Message {
	return &anthropic.Message{
		Content: []anthropic.ContentBlockUnion{
			{Type: "text", Text: text},
		},
	}
}

func withMockClient(mock *mockMessager) func() {
	old := newAnthropicClient
	newAnthropicClient = func(_ string) AnthropicMessager { return mock }
	return func() { newAnthropicClient = old }
}

func TestNewAnthropicGeneratorFromEnvMissingKey(t *testing.T) {
	t.Setenv("ANTHROPIC_API_KEY", "")
	if _, err := NewAnthropicGeneratorFromEnv(GeneratorConfig{}); err == nil {
		t.Fatal("expected error when ANTHROPIC_API_KEY is missing")
	}
}

func TestAnthropicGenerate(t *testing.T) {
	t.Setenv("ANTHROPIC_API_KEY", "test-key")
	mock := &mockMessager{response: newMockMessage("negotiation plan")}
	cleanup := withMockClient(mock)
	defer cleanup()

	g, err := NewAnthropicGeneratorFromEnv(GeneratorConfig{})
	if err != nil {
		t.Fatalf("NewAnthropicGeneratorFromEnv: %v", err)
	}
	out, err := g.Generate(context.Background(), "plan the negotiation")
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if out != "negotiation plan" {
		t.Fatalf("unexpected output: %q", out)
	}
	if mock.gotParams.MaxTokens != 2000 {
		t.Fatalf("expected max tokens 2000, got %d", mock.gotParams.MaxTokens)
	}
	if len(mock.gotParams.Messages) != 1 {
		t.Fatalf("expected single user message, got %d", len(mock.gotParams.Messages))
	}
}

func TestAnthropicGenerateEmptyResponse(t *testing.T) {
	t.Setenv("ANTHROPIC_API_KEY", "test-key")
	cleanup := withMockClient(&mockMessager{response: &anthropic.Message{Content: []anthropic.ContentBlockUnion{}}})
	defer cleanup()

	g, err := NewAnthropicGeneratorFromEnv(GeneratorConfig{})
	if err != nil {
		t.Fatalf("NewAnthropicGeneratorFromEnv: %v", err)
	}
	if _, err := g.Generate(context.Background(), "prompt"); err == nil {
		t.Fatal("expected error for empty completion")
	}
}

func TestClassifyTransportError(t *testing.T) {
	for _, tc := range []struct {
		msg  string
		want llmFailureClass
	}{
		{msg: "got 429 too many requests", want: failureRateLimit},
		{msg: "status code: 500 internal", want: failureServer},
		{msg: "status code: 400 bad request", want: failureClient},
		{msg: "connection reset by peer", want: failureServer},
	} {
		if got := classifyTransportError(assertErr(tc.msg)); got != tc.want {
			t.Fatalf("classifyTransportError(%q) got %v, want %v", tc.msg, got, tc.want)
		}
	}
	if got := classifyTransportError(context.DeadlineExceeded); got != failureTimeout {
		t.Fatalf("expected timeout classification, got %v", got)
	}
}

type assertErr string

func (e assertErr) Error() string { return string(e) }
