package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

const (
	defaultOllamaHost       = "http://localhost:11434"
	defaultOllamaEmbedModel = "nomic-embed-text"
)

// OllamaService talks to a local Ollama-compatible server for text
// generation and embeddings.
type OllamaService interface {
	Generate(ctx context.Context, prompt string) (string, error)
	Embed(ctx context.Context, text string) ([]float32, error)
	EmbeddingModel() string
}

type ollamaService struct {
	host       string
	model      string
	embedModel string
	httpClient *http.Client
}

func NewOllamaService(host, model, embedModel string, timeout time.Duration) OllamaService {
	if host == "" {
		host = defaultOllamaHost
	}
	if embedModel == "" {
		embedModel = defaultOllamaEmbedModel
	}
	if timeout == 0 {
		timeout = 60 * time.Second
	}

	return &ollamaService{
		host:       host,
		model:      model,
		embedModel: embedModel,
		httpClient: &http.Client{Timeout: timeout},
	}
}

type ollamaGenerateRequest struct {
	Model  string `json:"model"`
	Prompt string `json:"prompt"`
	Stream bool   `json:"stream"`
}

type ollamaGenerateResponse struct {
	Response string `json:"response"`
}

// Generate implements OllamaService.
func (o *ollamaService) Generate(ctx context.Context, prompt string) (string, error) {
	if o.model == "" {
		return "", fmt.Errorf("no local model configured")
	}

	var resp ollamaGenerateResponse
	err := o.post(ctx, "/api/generate", ollamaGenerateRequest{
		Model:  o.model,
		Prompt: prompt,
		Stream: false,
	}, &resp)
	if err != nil {
		return "", err
	}

	if resp.Response == "" {
		return "", fmt.Errorf("local model returned empty response")
	}

	return resp.Response, nil
}

type ollamaEmbedRequest struct {
	Model  string `json:"model"`
	Prompt string `json:"prompt"`
}

type ollamaEmbedResponse struct {
	Embedding []float32 `json:"embedding"`
}

// Embed implements OllamaService.
func (o *ollamaService) Embed(ctx context.Context, text string) ([]float32, error) {
	var resp ollamaEmbedResponse
	err := o.post(ctx, "/api/embeddings", ollamaEmbedRequest{
		Model:  o.embedModel,
		Prompt: text,
	}, &resp)
	if err != nil {
		return nil, err
	}

	if len(resp.Embedding) == 0 {
		return nil, fmt.Errorf("empty embedding result")
	}

	return resp.Embedding, nil
}

func (o *ollamaService) EmbeddingModel() string {
	return o.embedModel
}

func (o *ollamaService) post(ctx context.Context, path string, payload, out interface{}) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to encode request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, o.host+path, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := o.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("local model request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("local model returned status %d: %s", resp.StatusCode, bytes.TrimSpace(msg))
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}

	return nil
}
