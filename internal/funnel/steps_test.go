package funnel

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/hsinyuc/talentsift/internal/store"
)

func codes(candidates []store.Candidate) []string {
	out := make([]string, 0, len(candidates))
	for _, c := range candidates {
		out = append(out, c.Code104)
	}
	return out
}

func TestRequireMarkdown(t *testing.T) {
	candidates := []store.Candidate{
		{Code104: "111", RawMarkdown: "# 基本資料"},
		{Code104: "222"},
		{Code104: "333", RawMarkdown: "# 基本資料"},
	}

	kept, step, err := NewRequireMarkdown().Apply(context.Background(), Deps{}, candidates)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if step.Initial != 3 || step.Dropped != 1 || step.Left != 2 {
		t.Fatalf("unexpected step: %+v", step)
	}
	got := codes(kept)
	if len(got) != 2 || got[0] != "111" || got[1] != "333" {
		t.Fatalf("unexpected survivors: %v", got)
	}
}

func TestExcludeFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "exclude.txt")
	content := "# known spam accounts\n222\n\n333 # re-applied twice\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("writing exclude file: %v", err)
	}

	candidates := []store.Candidate{
		{Code104: "111"}, {Code104: "222"}, {Code104: "333"},
	}

	kept, step, err := NewExcludeFile(path).Apply(context.Background(), Deps{}, candidates)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if step.Dropped != 2 {
		t.Fatalf("unexpected step: %+v", step)
	}
	if got := codes(kept); len(got) != 1 || got[0] != "111" {
		t.Fatalf("unexpected survivors: %v", got)
	}
}

func TestExcludeFileEmptyPathIsNoop(t *testing.T) {
	candidates := []store.Candidate{{Code104: "111"}}

	kept, step, err := NewExcludeFile("  ").Apply(context.Background(), Deps{}, candidates)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if step.Dropped != 0 || len(kept) != 1 {
		t.Fatalf("expected a pass-through, got %+v / %v", step, codes(kept))
	}
}

func TestExcludeFileMissing(t *testing.T) {
	f := NewExcludeFile(filepath.Join(t.TempDir(), "nope.txt"))

	if _, _, err := f.Apply(context.Background(), Deps{}, nil); err == nil {
		t.Fatalf("expected an error for a missing exclude file")
	}
}

func TestSkipScoredForce(t *testing.T) {
	candidates := []store.Candidate{{Code104: "111"}, {Code104: "222"}}

	// With force set the filter never consults the store, so nil deps are fine.
	kept, step, err := NewSkipScored(true).Apply(context.Background(), Deps{}, candidates)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if step.Dropped != 0 || len(kept) != 2 {
		t.Fatalf("force must keep everyone, got %+v", step)
	}
}

func TestSkipScoredRequiresStoreAndJob(t *testing.T) {
	f := NewSkipScored(false)

	if _, _, err := f.Apply(context.Background(), Deps{}, []store.Candidate{{Code104: "111"}}); err == nil {
		t.Fatalf("expected an error without store and job deps")
	}
}

func TestRunAppliesFiltersInOrder(t *testing.T) {
	path := filepath.Join(t.TempDir(), "exclude.txt")
	if err := os.WriteFile(path, []byte("333\n"), 0o644); err != nil {
		t.Fatalf("writing exclude file: %v", err)
	}

	candidates := []store.Candidate{
		{Code104: "111", RawMarkdown: "x"},
		{Code104: "222"},
		{Code104: "333", RawMarkdown: "x"},
	}
	filters := []Filter{NewRequireMarkdown(), NewExcludeFile(path), NewSkipScored(true)}

	kept, err := Run(context.Background(), Deps{}, filters, candidates)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := codes(kept); len(got) != 1 || got[0] != "111" {
		t.Fatalf("unexpected survivors: %v", got)
	}
}
