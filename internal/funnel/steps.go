package funnel

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"

	"go.uber.org/zap"

	"github.com/hsinyuc/talentsift/internal/store"
)

type requireMarkdownFilter struct{}

// NewRequireMarkdown creates a filter that drops candidates without stored
// raw markdown. Scorers need the full document; such records are ingest
// leftovers from older versions.
func NewRequireMarkdown() Filter {
	return &requireMarkdownFilter{}
}

func (f *requireMarkdownFilter) Name() string { return "require_markdown" }

func (f *requireMarkdownFilter) Validate() error { return nil }

func (f *requireMarkdownFilter) Apply(_ context.Context, deps Deps, candidates []store.Candidate) ([]store.Candidate, Step, error) {
	initial := len(candidates)
	kept := make([]store.Candidate, 0, initial)
	var dropped []string

	for _, c := range candidates {
		if c.RawMarkdown == "" {
			dropped = append(dropped, c.Code104)
			continue
		}
		kept = append(kept, c)
	}

	if deps.Logger != nil && len(dropped) > 0 {
		deps.Logger.Info("excluding candidates without stored markdown",
			zap.Strings("excluded_candidates", dropped),
			zap.Int("candidates_left", len(kept)),
		)
	}

	return kept, Step{Initial: initial, Dropped: len(dropped), Left: len(kept)}, nil
}

type excludeFileFilter struct {
	path string
}

// NewExcludeFile creates a filter that drops candidates whose 104 code is
// listed in the exclude file, one code per line, # starts a comment.
func NewExcludeFile(path string) Filter {
	return &excludeFileFilter{path: strings.TrimSpace(path)}
}

func (f *excludeFileFilter) Name() string { return "exclude_file" }

func (f *excludeFileFilter) Validate() error { return nil }

func (f *excludeFileFilter) Apply(_ context.Context, deps Deps, candidates []store.Candidate) ([]store.Candidate, Step, error) {
	initial := len(candidates)
	if f.path == "" {
		return candidates, Step{Initial: initial, Dropped: 0, Left: initial}, nil
	}

	excluded, err := readExcludeFile(f.path)
	if err != nil {
		return nil, Step{}, fmt.Errorf("reading exclude file: %w", err)
	}

	kept := make([]store.Candidate, 0, initial)
	var dropped []string
	for _, c := range candidates {
		if excluded[c.Code104] {
			dropped = append(dropped, c.Code104)
			continue
		}
		kept = append(kept, c)
	}

	if deps.Logger != nil && len(dropped) > 0 {
		deps.Logger.Info("excluding candidates based on exclude file",
			zap.String("path", f.path),
			zap.Strings("excluded_candidates", dropped),
			zap.Int("candidates_left", len(kept)),
		)
	}

	return kept, Step{Initial: initial, Dropped: len(dropped), Left: len(kept)}, nil
}

func readExcludeFile(path string) (map[string]bool, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	codes := make(map[string]bool)
	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if idx := strings.Index(line, "#"); idx >= 0 {
			line = strings.TrimSpace(line[:idx])
		}
		if line != "" {
			codes[line] = true
		}
	}
	return codes, scanner.Err()
}

type skipScoredFilter struct {
	force bool
}

// NewSkipScored creates a filter that drops candidates already scored for
// this job with the current scoring configuration version. The force flag
// turns it into a no-op so a full re-score is always one flag away.
func NewSkipScored(force bool) Filter {
	return &skipScoredFilter{force: force}
}

func (f *skipScoredFilter) Name() string { return "skip_scored" }

func (f *skipScoredFilter) Validate() error { return nil }

func (f *skipScoredFilter) Apply(ctx context.Context, deps Deps, candidates []store.Candidate) ([]store.Candidate, Step, error) {
	initial := len(candidates)
	if f.force {
		if deps.Logger != nil {
			deps.Logger.Info("rescoring all candidates", zap.String("reason", "force flag is set"))
		}
		return candidates, Step{Initial: initial, Dropped: 0, Left: initial}, nil
	}

	if deps.Store == nil || deps.Job == nil {
		return nil, Step{}, fmt.Errorf("store and job are required")
	}

	kept := make([]store.Candidate, 0, initial)
	var dropped []string
	for _, c := range candidates {
		current, err := deps.Store.HasCurrentResult(ctx, c.ID, deps.Job.ID, deps.ConfigVersion)
		if err != nil {
			return nil, Step{}, fmt.Errorf("checking stored result: %w", err)
		}
		if current {
			dropped = append(dropped, c.Code104)
			continue
		}
		kept = append(kept, c)
	}

	if deps.Logger != nil && len(dropped) > 0 {
		deps.Logger.Info("skipping already scored candidates",
			zap.Strings("skipped_candidates", dropped),
			zap.Int("candidates_left", len(kept)),
		)
	}

	return kept, Step{Initial: initial, Dropped: len(dropped), Left: len(kept)}, nil
}
