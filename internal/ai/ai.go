// Package ai defines the provider-agnostic contracts for the two model-backed
// features of the matcher: embedding-based semantic similarity and the
// optional second-opinion tier review. Deterministic scoring never depends on
// this package; callers degrade gracefully when a provider is unavailable.
package ai

import (
	"context"
	"math"
)

// Embedder turns text into a dense vector. Implementations are safe for
// concurrent use.
type Embedder interface {
	EmbedText(ctx context.Context, text string) ([]float32, error)
}

// TierOpinion is a model's independent read of the candidate's AI depth,
// used to sanity-check the keyword classifier. It never changes a score.
type TierOpinion struct {
	Tier       int
	Confidence float64
	Reason     string
	Raw        string
}

// Opiner produces a TierOpinion for a resume against a job description.
type Opiner interface {
	ReviewTier(ctx context.Context, resumeText, jobText string) (*TierOpinion, error)
}

// CosineSimilarity computes the cosine of the angle between two vectors.
// Mismatched lengths or zero vectors yield 0.
func CosineSimilarity(a, b []float32) float64 {
	if len(a) != len(b) || len(a) == 0 {
		return 0
	}
	var dot, na, nb float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
		na += float64(a[i]) * float64(a[i])
		nb += float64(b[i]) * float64(b[i])
	}
	if na == 0 || nb == 0 {
		return 0
	}
	return dot / (math.Sqrt(na) * math.Sqrt(nb))
}

// Similarity01 rescales a cosine value from [-1, 1] to [0, 1]. The scoring
// pipeline multiplies by 100 exactly once, so this is the only rescale point.
func Similarity01(cos float64) float64 {
	v := (cos + 1.0) / 2.0
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
