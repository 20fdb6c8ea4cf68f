package knowledge

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"google.golang.org/genai"
)

const DefaultEmbeddingModel = "gemini-embedding-001"

// Embedder turns text into vectors. Corpus passages and queries are
// embedded through separate methods so retrieval-tuned models can apply
// the matching task type to each side.
type Embedder interface {
	EmbedDocuments(ctx context.Context, texts []string) ([][]float32, error)
	EmbedQuery(ctx context.Context, text string) ([]float32, error)
}

// GenAIEmbedder embeds text with the Gemini embedding API.
type GenAIEmbedder struct {
	client *genai.Client
	model  string
}

// NewGenAIEmbedderFromEnv builds a GenAIEmbedder from GEMINI_API_KEY,
// falling back to GOOGLE_API_KEY. An empty model selects
// DefaultEmbeddingModel.
func NewGenAIEmbedderFromEnv(ctx context.Context, model string) (*GenAIEmbedder, error) {
	apiKey := strings.TrimSpace(os.Getenv("GEMINI_API_KEY"))
	if apiKey == "" {
		apiKey = strings.TrimSpace(os.Getenv("GOOGLE_API_KEY"))
	}
	if apiKey == "" {
		return nil, errors.New("GEMINI_API_KEY or GOOGLE_API_KEY not configured")
	}
	if strings.TrimSpace(model) == "" {
		model = DefaultEmbeddingModel
	}
	client, err := genai.NewClient(ctx, &genai.ClientConfig{APIKey: apiKey})
	if err != nil {
		return nil, fmt.Errorf("create genai client: %w", err)
	}
	return &GenAIEmbedder{client: client, model: model}, nil
}

func (e *GenAIEmbedder) EmbedDocuments(ctx context.Context, texts []string) ([][]float32, error) {
	return e.embed(ctx, texts, genai.TaskTypeRetrievalDocument)
}

func (e *GenAIEmbedder) EmbedQuery(ctx context.Context, text string) ([]float32, error) {
	vecs, err := e.embed(ctx, []string{text}, genai.TaskTypeRetrievalQuery)
	if err != nil {
		return nil, err
	}
	return vecs[0], nil
}

func (e *GenAIEmbedder) embed(ctx context.Context, texts []string, task genai.TaskType) ([][]float32, error) {
	if len(texts) == 0 {
		return nil, nil
	}
	contents := make([]*genai.Content, len(texts))
	for i, text := range texts {
		contents[i] = genai.NewContentFromText(text, genai.RoleUser)
	}
	result, err := e.client.Models.EmbedContent(ctx, e.model, contents, &genai.EmbedContentRequest{
		TaskType: task,
	})
	if err != nil {
		return nil, fmt.Errorf("embed: %w", err)
	}
	if len(result.Embeddings) != len(texts) {
		return nil, fmt.Errorf("embed: got %d embeddings for %d texts", len(result.Embeddings), len(texts))
	}
	out := make([][]float32, len(result.Embeddings))
	for i, emb := range result.Embeddings {
		out[i] = emb.Values
	}
	return out, nil
}

func (e *GenAIEmbedder) Close() error {
	if e.client != nil {
		return e.client.Close()
	}
	return nil
}
