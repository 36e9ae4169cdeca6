package openai

import (
	"context"
	"errors"
	"testing"
	"time"

	goopenai "github.com/sashabaranov/go-openai"
)

type stubAPI struct {
	resp  goopenai.EmbeddingResponse
	err   error
	calls int
}

func (s *stubAPI) CreateEmbeddings(_ context.Context, _ goopenai.EmbeddingRequestConverter) (goopenai.EmbeddingResponse, error) {
	s.calls++
	return s.resp, s.err
}

func embeddingResponse(vec []float32) goopenai.EmbeddingResponse {
	return goopenai.EmbeddingResponse{
		Data: []goopenai.Embedding{{Embedding: vec}},
	}
}

func TestEmbedText(t *testing.T) {
	stub := &stubAPI{resp: embeddingResponse([]float32{0.1, 0.2})}
	e := &Embedder{api: stub, retryAfter: time.Minute}

	vec, err := e.EmbedText(context.Background(), "hello")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(vec) != 2 || vec[0] != 0.1 {
		t.Fatalf("unexpected vector: %v", vec)
	}
}

func TestEmbedTextEmptyInput(t *testing.T) {
	e := &Embedder{api: &stubAPI{}, retryAfter: time.Minute}

	if _, err := e.EmbedText(context.Background(), "   "); err == nil {
		t.Fatalf("expected an error for empty text")
	}
}

func TestBreakerOpensAfterFailure(t *testing.T) {
	stub := &stubAPI{err: errors.New("rate limited")}
	e := &Embedder{api: stub, retryAfter: time.Minute}

	if _, err := e.EmbedText(context.Background(), "hello"); err == nil {
		t.Fatalf("expected the api error to propagate")
	}
	if stub.calls != 1 {
		t.Fatalf("expected 1 api call, got %d", stub.calls)
	}

	_, err := e.EmbedText(context.Background(), "hello again")
	if !errors.Is(err, ErrCircuitOpen) {
		t.Fatalf("expected ErrCircuitOpen, got %v", err)
	}
	if stub.calls != 1 {
		t.Fatalf("open breaker must not call the api, got %d calls", stub.calls)
	}
}

func TestBreakerClosesAfterWindow(t *testing.T) {
	stub := &stubAPI{resp: embeddingResponse([]float32{0.5})}
	e := &Embedder{api: stub, retryAfter: time.Minute}
	e.lastFailure = time.Now().Add(-2 * time.Minute)

	if _, err := e.EmbedText(context.Background(), "hello"); err != nil {
		t.Fatalf("expected the breaker to allow a retry, got %v", err)
	}

	// Success resets the breaker entirely.
	if !e.lastFailure.IsZero() {
		t.Fatalf("expected lastFailure to be cleared")
	}
}

func TestEmptyResponseOpensBreaker(t *testing.T) {
	stub := &stubAPI{resp: goopenai.EmbeddingResponse{}}
	e := &Embedder{api: stub, retryAfter: time.Minute}

	if _, err := e.EmbedText(context.Background(), "hello"); err == nil {
		t.Fatalf("expected an error for an empty response")
	}
	if _, err := e.EmbedText(context.Background(), "hello"); !errors.Is(err, ErrCircuitOpen) {
		t.Fatalf("expected ErrCircuitOpen, got %v", err)
	}
}

func TestNewEmbedderRequiresKey(t *testing.T) {
	if _, err := NewEmbedder("  ", "", 0); err == nil {
		t.Fatalf("expected an error for a missing api key")
	}
}

func TestNewEmbedderDefaults(t *testing.T) {
	e, err := NewEmbedder("sk-test", "", 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if string(e.model) != defaultEmbeddingModel {
		t.Fatalf("unexpected default model: %q", e.model)
	}
	if e.retryAfter != 5*time.Minute {
		t.Fatalf("unexpected default retry window: %v", e.retryAfter)
	}
}
