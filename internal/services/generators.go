package services

import (
	"context"
	"fmt"
	"time"
)

const defaultRemoteTimeout = 90 * time.Second

// Low temperature keeps the screening output close to deterministic.
const narrativeTemperature = 0.1

type localGenerator struct {
	ollama  OllamaService
	enabled bool
}

// NewLocalGenerator wraps the local model as the first strategy in the
// narrative chain.
func NewLocalGenerator(ollama OllamaService, enabled bool) TextGenerator {
	return &localGenerator{ollama: ollama, enabled: enabled}
}

func (l *localGenerator) Name() string { return "local" }

func (l *localGenerator) Available() bool { return l.enabled && l.ollama != nil }

func (l *localGenerator) Generate(ctx context.Context, prompt string) (string, error) {
	output, err := l.ollama.Generate(ctx, prompt)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrModelUnavailable, err)
	}
	return output, nil
}

type remoteGenerator struct {
	gemini  GeminiService
	enabled bool
	timeout time.Duration
}

// NewRemoteGenerator wraps the remote model. Every call is bounded by a
// timeout; a timed-out call counts as a failed strategy, it is never left
// pending.
func NewRemoteGenerator(gemini GeminiService, enabled bool, timeout time.Duration) TextGenerator {
	if timeout <= 0 {
		timeout = defaultRemoteTimeout
	}
	return &remoteGenerator{gemini: gemini, enabled: enabled, timeout: timeout}
}

func (r *remoteGenerator) Name() string { return "remote" }

func (r *remoteGenerator) Available() bool { return r.enabled && r.gemini != nil }

func (r *remoteGenerator) Generate(ctx context.Context, prompt string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	output, err := r.gemini.GenerateText(ctx, prompt, narrativeTemperature)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrModelUnavailable, err)
	}
	return output, nil
}
