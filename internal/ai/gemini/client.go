// Package gemini implements the optional second-opinion reviewer on top of
// the Google GenAI API. Resume markdown is stored as cached content so a
// candidate reviewed against many jobs is uploaded once.
package gemini

import (
	"context"
	"crypto/sha256"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"google.golang.org/genai"
)

const defaultModel = "gemini-2.5-flash"

// Generator wraps the GenAI client for prompt-in, text-out interactions.
type Generator struct {
	client    *genai.Client
	modelName string

	cacheMu        sync.RWMutex
	candidateCache map[string]cachedCandidate
}

type cachedCandidate struct {
	name string
	hash string
}

// NewGenerator creates a Generator for the Gemini API backend.
func NewGenerator(ctx context.Context, apiKey, model string) (*Generator, error) {
	apiKey = strings.TrimSpace(apiKey)
	if apiKey == "" {
		return nil, errors.New("gemini api key is required")
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("create genai client: %w", err)
	}

	if model = strings.TrimSpace(model); model == "" {
		model = defaultModel
	}

	return &Generator{client: client, modelName: model}, nil
}

// GenerateContent sends the prompt and returns the concatenated text parts of
// the first response.
func (g *Generator) GenerateContent(ctx context.Context, prompt string) (string, error) {
	return g.generateContent(ctx, prompt, nil)
}

// GenerateContentWithCache is GenerateContent reusing a cached-content
// resource previously created by EnsureCandidateCache.
func (g *Generator) GenerateContentWithCache(ctx context.Context, prompt, cacheName string) (string, error) {
	cacheName = strings.TrimSpace(cacheName)
	if cacheName == "" {
		return g.generateContent(ctx, prompt, nil)
	}
	return g.generateContent(ctx, prompt, &genai.GenerateContentConfig{CachedContent: cacheName})
}

// EnsureCandidateCache uploads the candidate's resume markdown as cached
// content under the given key. Identical markdown reuses the existing
// resource; changed markdown creates a fresh one.
func (g *Generator) EnsureCandidateCache(ctx context.Context, key, markdown string) (string, error) {
	if g == nil || g.client == nil {
		return "", errors.New("gemini generator is not initialized")
	}

	key = strings.TrimSpace(key)
	if key == "" {
		return "", errors.New("cache key is required")
	}
	markdown = strings.TrimSpace(markdown)
	if markdown == "" {
		return "", errors.New("resume markdown must not be empty")
	}

	hashBytes := sha256.Sum256([]byte(markdown))
	hash := fmt.Sprintf("%x", hashBytes[:])

	g.cacheMu.RLock()
	existing, ok := g.candidateCache[key]
	g.cacheMu.RUnlock()
	if ok && existing.hash == hash && existing.name != "" {
		return existing.name, nil
	}

	g.cacheMu.Lock()
	defer g.cacheMu.Unlock()

	if g.candidateCache == nil {
		g.candidateCache = make(map[string]cachedCandidate)
	}
	if existing, ok := g.candidateCache[key]; ok && existing.hash == hash && existing.name != "" {
		return existing.name, nil
	}

	cached, err := g.client.Caches.Create(ctx, g.modelName, &genai.CreateCachedContentConfig{
		DisplayName: fmt.Sprintf("candidate-%s", key),
		TTL:         24 * time.Hour,
		Contents: []*genai.Content{{
			Role:  genai.RoleUser,
			Parts: []*genai.Part{{Text: markdown}},
		}},
	})
	if err != nil {
		return "", fmt.Errorf("create candidate cache: %w", err)
	}

	name := strings.TrimSpace(cached.Name)
	if name == "" {
		return "", errors.New("gemini api returned empty cache name")
	}

	g.candidateCache[key] = cachedCandidate{name: name, hash: hash}
	return name, nil
}

func (g *Generator) generateContent(ctx context.Context, prompt string, config *genai.GenerateContentConfig) (string, error) {
	if g == nil || g.client == nil {
		return "", errors.New("gemini generator is not initialized")
	}

	prompt = strings.TrimSpace(prompt)
	if prompt == "" {
		return "", errors.New("prompt must not be empty")
	}

	resp, err := g.client.Models.GenerateContent(ctx, g.modelName, genai.Text(prompt), config)
	if err != nil {
		return "", fmt.Errorf("generate content: %w", err)
	}

	var builder strings.Builder
	for _, candidate := range resp.Candidates {
		if candidate == nil || candidate.Content == nil {
			continue
		}
		for _, part := range candidate.Content.Parts {
			if part == nil {
				continue
			}
			text := strings.TrimSpace(part.Text)
			if text == "" {
				continue
			}
			if builder.Len() > 0 {
				builder.WriteString("\n")
			}
			builder.WriteString(text)
		}
	}

	output := strings.TrimSpace(builder.String())
	if output == "" {
		return "", errors.New("gemini api returned empty response")
	}

	return output, nil
}

func (g *Generator) Model() string {
	if g == nil {
		return ""
	}
	return g.modelName
}
