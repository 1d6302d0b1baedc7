package services

import (
	"context"
	"fmt"
	"math"
	"strings"
	"sync"
)

// Embedder generates a fixed-size vector representation of text.
type Embedder interface {
	Embed(ctx context.Context, text string) ([]float32, error)
	Model() string
}

// Comparison carries the cosine similarity of a job/resume pair along with
// the resume vector, which the talent index reuses so the text is not
// embedded twice.
type Comparison struct {
	Cosine       float64
	ResumeVector []float32
}

type SimilarityService interface {
	Compare(ctx context.Context, jobText, resumeText string) (*Comparison, error)
	Embed(ctx context.Context, text string) ([]float32, error)
}

type similarityService struct {
	once     sync.Once
	factory  func() (Embedder, error)
	embedder Embedder
	initErr  error
}

// NewSimilarityService wraps an embedding backend behind single-flight lazy
// initialization: the factory runs at most once, on first use, no matter
// how many requests race the first call.
func NewSimilarityService(factory func() (Embedder, error)) SimilarityService {
	return &similarityService{factory: factory}
}

func (s *similarityService) backend() (Embedder, error) {
	s.once.Do(func() {
		s.embedder, s.initErr = s.factory()
	})
	if s.initErr != nil {
		return nil, fmt.Errorf("%w: %v", ErrEmbeddingFailed, s.initErr)
	}
	return s.embedder, nil
}

// Compare embeds both texts with the same backend instance and returns
// their cosine similarity.
func (s *similarityService) Compare(ctx context.Context, jobText, resumeText string) (*Comparison, error) {
	if strings.TrimSpace(jobText) == "" || strings.TrimSpace(resumeText) == "" {
		return nil, fmt.Errorf("%w: cannot embed empty text", ErrInvalidInput)
	}

	embedder, err := s.backend()
	if err != nil {
		return nil, err
	}

	jobVector, err := embedder.Embed(ctx, jobText)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrEmbeddingFailed, err)
	}

	resumeVector, err := embedder.Embed(ctx, resumeText)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrEmbeddingFailed, err)
	}

	cosine, err := CosineSimilarity(jobVector, resumeVector)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrEmbeddingFailed, err)
	}

	return &Comparison{Cosine: cosine, ResumeVector: resumeVector}, nil
}

// Embed exposes the shared backend for callers that need a raw vector,
// such as the talent index search.
func (s *similarityService) Embed(ctx context.Context, text string) ([]float32, error) {
	if strings.TrimSpace(text) == "" {
		return nil, fmt.Errorf("%w: cannot embed empty text", ErrInvalidInput)
	}

	embedder, err := s.backend()
	if err != nil {
		return nil, err
	}

	vector, err := embedder.Embed(ctx, text)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrEmbeddingFailed, err)
	}

	return vector, nil
}

// CosineSimilarity computes the cosine of the angle between two vectors,
// a float in [-1, 1].
func CosineSimilarity(a, b []float32) (float64, error) {
	if len(a) == 0 || len(a) != len(b) {
		return 0, fmt.Errorf("vector dimensions do not match: %d vs %d", len(a), len(b))
	}

	var dot, normA, normB float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
		normA += float64(a[i]) * float64(a[i])
		normB += float64(b[i]) * float64(b[i])
	}

	if normA == 0 || normB == 0 {
		return 0, fmt.Errorf("cannot compute similarity of a zero vector")
	}

	return dot / (math.Sqrt(normA) * math.Sqrt(normB)), nil
}

type geminiEmbedder struct {
	gemini GeminiService
}

// NewGeminiEmbedder adapts the Gemini client to the Embedder interface.
func NewGeminiEmbedder(gemini GeminiService) Embedder {
	return &geminiEmbedder{gemini: gemini}
}

func (g *geminiEmbedder) Embed(ctx context.Context, text string) ([]float32, error) {
	return g.gemini.GenerateEmbedding(ctx, text)
}

func (g *geminiEmbedder) Model() string {
	return g.gemini.EmbeddingModel()
}

type ollamaEmbedder struct {
	ollama OllamaService
}

// NewOllamaEmbedder adapts the local Ollama client to the Embedder interface.
func NewOllamaEmbedder(ollama OllamaService) Embedder {
	return &ollamaEmbedder{ollama: ollama}
}

func (o *ollamaEmbedder) Embed(ctx context.Context, text string) ([]float32, error) {
	return o.ollama.Embed(ctx, text)
}

func (o *ollamaEmbedder) Model() string {
	return o.ollama.EmbeddingModel()
}
