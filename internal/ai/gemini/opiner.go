package gemini

import (
	"context"
	"crypto/sha256"
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
	"unicode/utf8"

	_ "embed"

	"github.com/hsinyuc/talentsift/internal/ai"
	"github.com/hsinyuc/talentsift/internal/logger"
	"go.uber.org/zap"
)

type contentGenerator interface {
	GenerateContent(ctx context.Context, prompt string) (string, error)
	Model() string
}

// cacheGenerator is the optional cached-content surface of a generator. When
// available, the resume is uploaded once and reused across job reviews.
type cacheGenerator interface {
	contentGenerator
	EnsureCandidateCache(ctx context.Context, key, markdown string) (string, error)
	GenerateContentWithCache(ctx context.Context, prompt, cacheName string) (string, error)
}

//go:embed prompt.md
var promptTemplate string

const defaultMaxLogLength = 200

// cachedResumeNote stands in for the resume body when the full markdown is
// already attached as cached content.
const cachedResumeNote = "履歷全文已以快取內容附上。"

// Opiner asks Gemini for an independent tier classification. It is advisory:
// the deterministic classifier's tier always wins, the opinion is logged and
// stored alongside it.
type Opiner struct {
	generator contentGenerator
	logger    *zap.Logger
	maxLogLen int
}

func NewOpiner(generator contentGenerator, log *zap.Logger, maxLogLength int) *Opiner {
	if maxLogLength <= 0 {
		maxLogLength = defaultMaxLogLength
	}
	if log == nil {
		log = zap.NewNop()
	}

	return &Opiner{
		generator: generator,
		logger:    logger.WithFields(log, logger.CommonFields("gemini", generator.Model())...),
		maxLogLen: maxLogLength,
	}
}

// ReviewTier implements ai.Opiner.
func (o *Opiner) ReviewTier(ctx context.Context, resumeText, jobText string) (*ai.TierOpinion, error) {
	resumeText = strings.TrimSpace(resumeText)
	if resumeText == "" {
		return nil, fmt.Errorf("resume text is required")
	}

	raw, err := o.generate(ctx, resumeText, jobText)
	if err != nil {
		return nil, err
	}

	o.logger.Debug("tier review response",
		zap.Int("response_length", utf8.RuneCountInString(raw)),
		zap.String("response_preview", logger.TruncateForLog(raw, o.maxLogLen)),
	)

	opinion, err := parseResponse(raw)
	if err != nil {
		return nil, err
	}

	opinion.Raw = raw
	return opinion, nil
}

// generate prefers the cached-content path when the generator supports it.
// The resume is uploaded once, keyed by its content hash, and the prompt then
// carries only the job text. A cache failure falls back to the full prompt.
func (o *Opiner) generate(ctx context.Context, resumeText, jobText string) (string, error) {
	if cg, ok := o.generator.(cacheGenerator); ok {
		hash := sha256.Sum256([]byte(resumeText))
		key := fmt.Sprintf("%x", hash[:8])
		cacheName, err := cg.EnsureCandidateCache(ctx, key, resumeText)
		if err == nil {
			prompt := buildPrompt(cachedResumeNote, jobText)
			o.logger.Debug("tier review request",
				zap.String("cache", cacheName),
				zap.Int("prompt_length", utf8.RuneCountInString(prompt)),
				zap.String("prompt_preview", logger.TruncateForLog(prompt, o.maxLogLen)),
			)
			return cg.GenerateContentWithCache(ctx, prompt, cacheName)
		}
		o.logger.Warn("resume cache unavailable, sending the full resume", zap.Error(err))
	}

	prompt := buildPrompt(resumeText, jobText)
	o.logger.Debug("tier review request",
		zap.Int("prompt_length", utf8.RuneCountInString(prompt)),
		zap.String("prompt_preview", logger.TruncateForLog(prompt, o.maxLogLen)),
	)
	return o.generator.GenerateContent(ctx, prompt)
}

func buildPrompt(resumeText, jobText string) string {
	template := promptTemplate
	if strings.TrimSpace(template) == "" {
		template = "Resume:\n{{RESUME_MD}}\n\nJob:\n{{JOB_TEXT}}\n\nJSON Response:"
	}
	if strings.TrimSpace(jobText) == "" {
		jobText = "(not provided)"
	}
	prompt := strings.ReplaceAll(template, "{{RESUME_MD}}", resumeText)
	prompt = strings.ReplaceAll(prompt, "{{JOB_TEXT}}", jobText)
	return prompt
}

func parseResponse(raw string) (*ai.TierOpinion, error) {
	cleaned := extractJSON(raw)

	var data map[string]any
	if err := json.Unmarshal([]byte(cleaned), &data); err != nil {
		return nil, fmt.Errorf("parse gemini response: %w", err)
	}

	tier := int(coerceFloat(data["tier"]))
	if tier < 1 || tier > 3 {
		return nil, fmt.Errorf("gemini returned out-of-range tier %d", tier)
	}

	confidence := coerceFloat(data["confidence"])
	if math.IsNaN(confidence) {
		confidence = 0
	}

	return &ai.TierOpinion{
		Tier:       tier,
		Confidence: confidence,
		Reason:     coerceString(data["reason"]),
	}, nil
}

func extractJSON(raw string) string {
	raw = strings.TrimSpace(raw)
	if strings.HasPrefix(raw, "```") {
		raw = strings.TrimPrefix(raw, "```json")
		raw = strings.TrimPrefix(raw, "```")
		raw = strings.TrimSpace(raw)
		if idx := strings.LastIndex(raw, "```"); idx != -1 {
			raw = raw[:idx]
		}
	}
	raw = strings.Trim(raw, "`")
	return strings.TrimSpace(raw)
}

func coerceFloat(v any) float64 {
	switch val := v.(type) {
	case float64:
		return val
	case int:
		return float64(val)
	case string:
		trimmed := strings.TrimSpace(val)
		if trimmed == "" {
			return math.NaN()
		}
		f, err := strconv.ParseFloat(trimmed, 64)
		if err != nil {
			return math.NaN()
		}
		return f
	default:
		return math.NaN()
	}
}

func coerceString(v any) string {
	switch val := v.(type) {
	case string:
		return strings.TrimSpace(val)
	case fmt.Stringer:
		return strings.TrimSpace(val.String())
	default:
		if v == nil {
			return ""
		}
		bytes, err := json.Marshal(v)
		if err != nil {
			return fmt.Sprintf("%v", v)
		}
		return string(bytes)
	}
}
