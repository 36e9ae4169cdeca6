// Package match orchestrates one scoring run: load the candidate, compute
// semantic similarity, run the deterministic funnel and persist the result.
package match

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/hsinyuc/talentsift/internal/ai"
	"github.com/hsinyuc/talentsift/internal/funnel"
	"github.com/hsinyuc/talentsift/internal/resume"
	"github.com/hsinyuc/talentsift/internal/scoring"
	"github.com/hsinyuc/talentsift/internal/store"
)

// neutralSimilarity is used when no embedder is configured or the provider is
// unavailable. Centered so an outage shifts every candidate equally.
const neutralSimilarity = 0.5

// Runner scores candidates against jobs. Embedder and Opiner are optional;
// the deterministic funnel runs without them.
type Runner struct {
	Store    *store.Store
	Config   *scoring.Config
	Embedder ai.Embedder
	Opiner   ai.Opiner
	Logger   *zap.Logger

	// Filters are applied to the candidate list before a batch run.
	Filters []funnel.Filter
}

// Outcome is the result of scoring one candidate.
type Outcome struct {
	Code104 string
	Result  *scoring.Result
	Row     *store.MatchResult
}

// ScoreCandidate runs the funnel for one candidate against one stored job
// and upserts the match result.
func (r *Runner) ScoreCandidate(ctx context.Context, code104 string, job *store.Job) (*Outcome, error) {
	if r.Store == nil || r.Config == nil {
		return nil, errors.New("runner requires a store and a scoring config")
	}
	if job == nil {
		return nil, errors.New("job is required")
	}

	row, err := r.Store.GetCandidate(ctx, code104)
	if err != nil {
		return nil, fmt.Errorf("load candidate %s: %w", code104, err)
	}
	extract, err := row.Extract()
	if err != nil {
		return nil, err
	}

	req, err := resume.ParseJobRequirement(job.Title, []byte(job.Payload))
	if err != nil {
		return nil, fmt.Errorf("parse job %q: %w", job.Title, err)
	}

	similarity := r.semanticSimilarity(ctx, extract, req)
	result := scoring.Score(r.Config, extract, req, similarity)

	r.reviewTier(ctx, extract, req, result)

	stored, err := r.Store.UpsertMatchResult(ctx, row.ID, job.ID, result, r.Config.Version)
	if err != nil {
		return nil, fmt.Errorf("store match result: %w", err)
	}

	r.logger().Info("candidate scored",
		zap.String("code_104", code104),
		zap.String("job", job.Title),
		zap.Float64("overall_score", result.OverallScore),
		zap.Bool("passed_hard_filter", result.PassedHardFilter),
		zap.Int("tier", result.Experience.Tier),
	)

	return &Outcome{Code104: code104, Result: result, Row: stored}, nil
}

// ScoreAll scores every stored candidate against the job with bounded
// concurrency. Individual failures are logged and skipped so one bad record
// cannot abort a batch.
func (r *Runner) ScoreAll(ctx context.Context, job *store.Job, concurrency int) ([]*Outcome, error) {
	if concurrency <= 0 {
		concurrency = 4
	}

	candidates, err := r.Store.ListCandidates(ctx)
	if err != nil {
		return nil, fmt.Errorf("list candidates: %w", err)
	}

	if len(r.Filters) > 0 {
		deps := funnel.Deps{
			Store:         r.Store,
			Logger:        r.logger(),
			Job:           job,
			ConfigVersion: r.Config.Version,
		}
		candidates, err = funnel.Run(ctx, deps, r.Filters, candidates)
		if err != nil {
			return nil, err
		}
	}

	outcomes := make([]*Outcome, len(candidates))
	group, gctx := errgroup.WithContext(ctx)
	group.SetLimit(concurrency)

	for i, c := range candidates {
		group.Go(func() error {
			outcome, err := r.ScoreCandidate(gctx, c.Code104, job)
			if err != nil {
				r.logger().Warn("skipping candidate",
					zap.String("code_104", c.Code104),
					zap.Error(err),
				)
				return nil
			}
			outcomes[i] = outcome
			return nil
		})
	}
	if err := group.Wait(); err != nil {
		return nil, err
	}

	out := make([]*Outcome, 0, len(outcomes))
	for _, o := range outcomes {
		if o != nil {
			out = append(out, o)
		}
	}
	return out, nil
}

// semanticSimilarity embeds the candidate and job texts and rescales the
// cosine once. Any provider failure degrades to the neutral value.
func (r *Runner) semanticSimilarity(ctx context.Context, extract *resume.Extract, req *resume.JobRequirement) float64 {
	if r.Embedder == nil {
		return neutralSimilarity
	}

	candidateVec, err := r.Embedder.EmbedText(ctx, extract.EmbeddingText())
	if err != nil {
		r.logger().Warn("embedding candidate failed, using neutral similarity", zap.Error(err))
		return neutralSimilarity
	}
	jobVec, err := r.Embedder.EmbedText(ctx, req.Text())
	if err != nil {
		r.logger().Warn("embedding job failed, using neutral similarity", zap.Error(err))
		return neutralSimilarity
	}

	return ai.Similarity01(ai.CosineSimilarity(candidateVec, jobVec))
}

// reviewTier attaches the advisory model opinion when an opiner is
// configured. A disagreement with the deterministic tier is logged, never
// applied to the score.
func (r *Runner) reviewTier(ctx context.Context, extract *resume.Extract, req *resume.JobRequirement, result *scoring.Result) {
	if r.Opiner == nil || !result.PassedHardFilter {
		return
	}

	opinion, err := r.Opiner.ReviewTier(ctx, extract.RawMarkdown, req.Text())
	if err != nil {
		r.logger().Warn("tier review failed", zap.Error(err))
		return
	}

	if opinion.Tier != result.Experience.Tier {
		r.logger().Info("tier review disagrees with classifier",
			zap.Int("classifier_tier", result.Experience.Tier),
			zap.Int("reviewed_tier", opinion.Tier),
			zap.Float64("confidence", opinion.Confidence),
			zap.String("reason", opinion.Reason),
		)
	}

	note, _ := json.Marshal(map[string]any{
		"tier":       opinion.Tier,
		"confidence": opinion.Confidence,
		"reason":     opinion.Reason,
	})
	result.InterviewSuggestions = append(result.InterviewSuggestions,
		fmt.Sprintf("模型複審意見：%s", string(note)))
}

func (r *Runner) logger() *zap.Logger {
	if r.Logger == nil {
		return zap.NewNop()
	}
	return r.Logger
}
