// Package openai provides the embedding client used for semantic similarity,
// with a circuit breaker so a flapping API cannot stall batch scoring runs.
package openai

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	goopenai "github.com/sashabaranov/go-openai"
)

const defaultEmbeddingModel = string(goopenai.SmallEmbedding3)

// ErrCircuitOpen is returned while the breaker is cooling down after a
// failure. Callers treat it as "similarity unavailable", not as fatal.
var ErrCircuitOpen = errors.New("embedding circuit breaker is open")

// embeddingAPI is the slice of the OpenAI client the embedder needs.
// Narrowed for testability.
type embeddingAPI interface {
	CreateEmbeddings(ctx context.Context, req goopenai.EmbeddingRequestConverter) (goopenai.EmbeddingResponse, error)
}

// Embedder calls the OpenAI embeddings endpoint. One failure opens the
// breaker for the retry window; requests during the window fail fast.
type Embedder struct {
	api   embeddingAPI
	model goopenai.EmbeddingModel

	mu          sync.Mutex
	lastFailure time.Time
	retryAfter  time.Duration
}

// NewEmbedder builds an Embedder backed by the real OpenAI client.
func NewEmbedder(apiKey, model string, retryAfter time.Duration) (*Embedder, error) {
	apiKey = strings.TrimSpace(apiKey)
	if apiKey == "" {
		return nil, errors.New("openai api key is required")
	}
	if model = strings.TrimSpace(model); model == "" {
		model = defaultEmbeddingModel
	}
	if retryAfter <= 0 {
		retryAfter = 5 * time.Minute
	}

	return &Embedder{
		api:        goopenai.NewClient(apiKey),
		model:      goopenai.EmbeddingModel(model),
		retryAfter: retryAfter,
	}, nil
}

// EmbedText returns the embedding vector for the given text.
func (e *Embedder) EmbedText(ctx context.Context, text string) ([]float32, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, errors.New("text must not be empty")
	}

	if err := e.checkBreaker(); err != nil {
		return nil, err
	}

	resp, err := e.api.CreateEmbeddings(ctx, goopenai.EmbeddingRequest{
		Input: []string{text},
		Model: e.model,
	})
	if err != nil {
		e.recordFailure()
		return nil, fmt.Errorf("create embeddings: %w", err)
	}
	if len(resp.Data) == 0 || len(resp.Data[0].Embedding) == 0 {
		e.recordFailure()
		return nil, errors.New("openai api returned empty embedding")
	}

	e.recordSuccess()
	return resp.Data[0].Embedding, nil
}

func (e *Embedder) checkBreaker() error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.lastFailure.IsZero() {
		return nil
	}
	if time.Since(e.lastFailure) < e.retryAfter {
		return ErrCircuitOpen
	}
	return nil
}

func (e *Embedder) recordFailure() {
	e.mu.Lock()
	e.lastFailure = time.Now()
	e.mu.Unlock()
}

func (e *Embedder) recordSuccess() {
	e.mu.Lock()
	e.lastFailure = time.Time{}
	e.mu.Unlock()
}
