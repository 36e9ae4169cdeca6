package scoring

// Detail objects are immutable value objects produced fresh on every scoring
// run. They are serialized into the match result payload as-is.

// EducationLevelDetail describes how one education entry was graded.
type EducationLevelDetail struct {
	School         string  `json:"school"`
	SchoolTier     string  `json:"school_tier"`
	SchoolPoints   float64 `json:"school_points"`
	Major          string  `json:"major"`
	MajorRelevance string  `json:"major_relevance"`
	MajorPoints    float64 `json:"major_points"`
	BaseScore      float64 `json:"base_score"`
}

// EducationDetail is the education dimension result: the best bachelor and
// graduate credentials plus the normalized hybrid score.
type EducationDetail struct {
	Bachelor    *EducationLevelDetail `json:"bachelor,omitempty"`
	Graduate    *EducationLevelDetail `json:"graduate,omitempty"`
	ThesisBonus float64               `json:"thesis_bonus"`
	Score       float64               `json:"score"`
}

// ExperienceDetail is the AI-pyramid classification result.
type ExperienceDetail struct {
	Tier            int      `json:"tier"`
	TierLabel       string   `json:"tier_label"`
	Evidence        []string `json:"evidence"`
	TechStackScore  float64  `json:"tech_stack_score"`
	ComplexityScore float64  `json:"complexity_score"`
	MetricScore     float64  `json:"metric_score"`
	Score           float64  `json:"score"`
}

// EngineeringDetail is the per-ladder engineering maturity result.
type EngineeringDetail struct {
	BackendLevel  int     `json:"backend_level"`
	BackendScore  float64 `json:"backend_score"`
	DatabaseLevel int     `json:"database_level"`
	DatabaseScore float64 `json:"database_score"`
	FrontendLevel int     `json:"frontend_level"`
	FrontendScore float64 `json:"frontend_score"`
	MEng          float64 `json:"m_eng"`
}

// SkillDetail is the skill verification result.
type SkillDetail struct {
	Ecosystem       string   `json:"skill_ecosystem"`
	SuspiciousFlags []string `json:"suspicious_flags"`
	Score           float64  `json:"score"`
}

// Result aggregates every dimension of one scoring run for a
// (candidate, job) pair.
type Result struct {
	OverallScore float64 `json:"overall_score"`
	SAI          float64 `json:"s_ai"`
	MEng         float64 `json:"m_eng"`
	STotal       float64 `json:"s_total"`

	EducationScore     float64 `json:"education_score"`
	ExperienceScore    float64 `json:"experience_score"`
	SkillsScore        float64 `json:"skills_score"`
	SemanticSimilarity float64 `json:"semantic_similarity"`

	Education   EducationDetail   `json:"education_detail"`
	Experience  ExperienceDetail  `json:"experience_detail"`
	Engineering EngineeringDetail `json:"engineering_detail"`
	Skills      SkillDetail       `json:"skill_detail"`

	PassedHardFilter   bool     `json:"passed_hard_filter"`
	HardFilterFailures []string `json:"hard_filter_failures"`

	Tags                 []string `json:"tags"`
	AnalysisText         string   `json:"analysis_text"`
	Strengths            []string `json:"strengths"`
	Gaps                 []string `json:"gaps"`
	InterviewSuggestions []string `json:"interview_suggestions"`
}
