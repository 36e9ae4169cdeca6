package resume

import (
	"strings"
	"testing"
)

func TestParseJobRequirement(t *testing.T) {
	payload := `{
		"position": "AI Engineer",
		"hard_filters": {
			"required_skills": ["Python"],
			"required_frameworks": ["LangChain", "LlamaIndex"]
		}
	}`

	job, err := ParseJobRequirement("AI 工程師", []byte(payload))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if job.Title != "AI 工程師" {
		t.Fatalf("unexpected title: %q", job.Title)
	}
	if len(job.HardFilters.RequiredSkills) != 1 || job.HardFilters.RequiredSkills[0] != "Python" {
		t.Fatalf("unexpected hard filters: %+v", job.HardFilters)
	}
	if len(job.HardFilters.RequiredFrameworks) != 2 {
		t.Fatalf("unexpected frameworks: %+v", job.HardFilters)
	}
	if job.Fields["position"] != "AI Engineer" {
		t.Fatalf("free-form fields must be preserved: %#v", job.Fields)
	}
}

func TestParseJobRequirementEmptyPayload(t *testing.T) {
	job, err := ParseJobRequirement("後端工程師", nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !job.HardFilters.Empty() {
		t.Fatalf("expected empty hard filters")
	}
	if job.Text() != "後端工程師" {
		t.Fatalf("empty payload must fall back to the title, got %q", job.Text())
	}
}

func TestParseJobRequirementInvalidJSON(t *testing.T) {
	if _, err := ParseJobRequirement("x", []byte("{not json")); err == nil {
		t.Fatalf("expected a parse error")
	}
}

func TestJobRequirementText(t *testing.T) {
	job, err := ParseJobRequirement("AI 工程師", []byte(`{"position": "AI Engineer"}`))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if text := job.Text(); !strings.Contains(text, "AI Engineer") {
		t.Fatalf("text must render the payload, got %q", text)
	}
}

func TestHardFiltersEmpty(t *testing.T) {
	if !(HardFilters{}).Empty() {
		t.Fatalf("zero value must be empty")
	}
	if (HardFilters{RequiredKeywords: []string{"LLM"}}).Empty() {
		t.Fatalf("populated filters must not be empty")
	}
}

func TestEmbeddingText(t *testing.T) {
	e := NewExtract()
	e.SkillTags = []string{"Python", "PyTorch"}
	e.WorkExperiences = []WorkExperience{{
		JobTitle:       "AI 工程師",
		JobDescription: "建置 RAG 系統",
		JobSkills:      "Python",
	}}
	e.SelfIntroduction = "對推論優化有興趣"

	text := e.EmbeddingText()

	for _, want := range []string{"Python", "AI 工程師", "建置 RAG 系統", "對推論優化有興趣"} {
		if !strings.Contains(text, want) {
			t.Fatalf("embedding text missing %q: %q", want, text)
		}
	}
}
