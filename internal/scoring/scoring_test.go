package scoring

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hsinyuc/talentsift/internal/resume"
)

func candidateWithWork(description, skills string, tags ...string) *resume.Extract {
	out := resume.NewExtract()
	out.Code104 = "12345678"
	out.SkillTags = tags
	out.WorkExperiences = []resume.WorkExperience{{
		Seq:            1,
		CompanyName:    "測試公司",
		JobTitle:       "工程師",
		JobDescription: description,
		JobSkills:      skills,
	}}
	out.RawMarkdown = description + " " + skills
	return out
}

func TestHardFiltersAllRequiredSkills(t *testing.T) {
	candidate := candidateWithWork("使用 Python 開發後端服務", "Python, FastAPI")
	filters := resume.HardFilters{RequiredSkills: []string{"Python", "Kubernetes"}}

	passed, failures := ApplyHardFilters(candidate, filters)

	require.False(t, passed)
	require.Len(t, failures, 1)
	assert.Contains(t, failures[0], "Kubernetes")
}

func TestHardFiltersAnyOfFrameworks(t *testing.T) {
	candidate := candidateWithWork("建置 LangChain 應用", "")
	filters := resume.HardFilters{RequiredFrameworks: []string{"LangChain", "LlamaIndex"}}

	passed, failures := ApplyHardFilters(candidate, filters)

	require.True(t, passed)
	assert.Empty(t, failures)
}

func TestHardFiltersEmptyConfigPasses(t *testing.T) {
	candidate := candidateWithWork("任何內容", "")

	passed, failures := ApplyHardFilters(candidate, resume.HardFilters{})

	require.True(t, passed)
	assert.Empty(t, failures)
}

func TestHardFiltersCaseInsensitive(t *testing.T) {
	candidate := candidateWithWork("python 與 pytorch 經驗", "")
	filters := resume.HardFilters{RequiredSkills: []string{"Python", "PyTorch"}}

	passed, _ := ApplyHardFilters(candidate, filters)

	require.True(t, passed)
}

func TestEducationTopSchoolCoreMajor(t *testing.T) {
	cfg := DefaultConfig()
	education := []resume.Education{
		{School: "國立清華大學", Department: "資訊工程學系", DegreeLevel: "學士"},
		{School: "國立台灣大學", Department: "資訊工程學系", DegreeLevel: "碩士"},
	}

	detail := ScoreEducation(cfg, education, "")

	require.NotNil(t, detail.Bachelor)
	require.NotNil(t, detail.Graduate)
	assert.Equal(t, "A", detail.Bachelor.SchoolTier)
	assert.Equal(t, 20.0, detail.Bachelor.BaseScore)
	// Hybrid 20*0.7 + 20*0.3 = 20, normalized by 24.
	assert.InDelta(t, 83.3, detail.Score, 0.1)
	assert.Greater(t, detail.Score, 80.0)
}

func TestEducationDoctorateOutscoresBachelorEntry(t *testing.T) {
	cfg := DefaultConfig()
	c := &cfg.Education

	doctorate := c.scoreEntry(resume.Education{
		School: "某大學", Department: "資訊工程學系", DegreeLevel: "博士",
	}, degreeDoctorate)
	bachelor := c.scoreEntry(resume.Education{
		School: "國立台灣大學", Department: "資訊工程學系", DegreeLevel: "學士",
	}, degreeBachelor)

	assert.GreaterOrEqual(t, doctorate.BaseScore, bachelor.BaseScore)
	assert.Equal(t, 25.0, doctorate.BaseScore)
}

func TestEducationThesisBonusAfterCap(t *testing.T) {
	cfg := DefaultConfig()
	education := []resume.Education{
		{School: "國立台灣大學", Department: "資訊工程學系", DegreeLevel: "碩士"},
	}

	plain := ScoreEducation(cfg, education, "")
	withThesis := ScoreEducation(cfg, education, "碩士論文: Deep Learning for NLP, published at EMNLP")

	assert.Equal(t, 5.0, withThesis.ThesisBonus)
	assert.InDelta(t, plain.Score+5.0, withThesis.Score, 0.11)
}

func TestEducationEmptyHistory(t *testing.T) {
	detail := ScoreEducation(DefaultConfig(), nil, "")
	assert.Zero(t, detail.Score)
}

func TestExperienceTier3FromInferenceStack(t *testing.T) {
	cfg := DefaultConfig()
	candidate := candidateWithWork(
		"以 vLLM 部署模型並使用 CUDA 與 Flash Attention 優化推論", "")

	detail := ScoreExperience(cfg, candidate)

	require.Equal(t, 3, detail.Tier)
	assert.Equal(t, "AI Expert", detail.TierLabel)
	assert.GreaterOrEqual(t, detail.Score, 90.0)
	assert.NotEmpty(t, detail.Evidence)
}

func TestExperienceTier1Wrapper(t *testing.T) {
	cfg := DefaultConfig()
	candidate := candidateWithWork("串接 OpenAI API 打造 Chatbot", "")

	detail := ScoreExperience(cfg, candidate)

	require.Equal(t, 1, detail.Tier)
	assert.Equal(t, "Wrapper", detail.TierLabel)
	assert.Less(t, detail.Score, 80.0)
}

func TestExperienceTagOnlyKeywordsAreDiscounted(t *testing.T) {
	cfg := DefaultConfig()
	// A lone vLLM tag is below the tier-3 threshold but still a signal, so
	// the candidate lands on tier 2 with the tag hit marked and discounted.
	candidate := candidateWithWork("一般後端開發", "", "vLLM")

	detail := ScoreExperience(cfg, candidate)

	assert.Equal(t, 2, detail.Tier)
	require.NotEmpty(t, detail.Evidence)
	assert.Contains(t, detail.Evidence[0], "(tag)")
	assert.Equal(t, 1.0, detail.TechStackScore)
}

func TestExperienceMetricBonusSaturates(t *testing.T) {
	text := "延遲降低 40%，throughput 提升 3000 QPS，準確率 95%，Recall@10 改善，F1 上升"

	bonus := metricScore(text)

	assert.Equal(t, 5.0, bonus)
}

func TestEngineeringFullStackHitsCeiling(t *testing.T) {
	cfg := DefaultConfig()
	candidate := resume.NewExtract()
	candidate.RawMarkdown = "部署於 Kubernetes，使用 pgvector 做向量檢索，前端採 React 與 TypeScript"

	detail := ScoreEngineering(cfg, candidate)

	assert.Equal(t, 3, detail.BackendLevel)
	assert.Equal(t, 3, detail.DatabaseLevel)
	assert.Equal(t, 3, detail.FrontendLevel)
	assert.Equal(t, 0.7, detail.MEng)
	assert.Equal(t, 100.0, EngineeringScore100(cfg, detail))
}

func TestEngineeringBasicLevels(t *testing.T) {
	cfg := DefaultConfig()
	candidate := resume.NewExtract()
	candidate.RawMarkdown = "使用 Flask 開發 REST API，資料存於 MySQL"

	detail := ScoreEngineering(cfg, candidate)

	assert.Equal(t, 1, detail.BackendLevel)
	assert.Equal(t, 1, detail.DatabaseLevel)
	assert.Equal(t, 0, detail.FrontendLevel)
	assert.Equal(t, 0.15, detail.MEng)
}

func TestSkillsLLMStackEcosystem(t *testing.T) {
	cfg := DefaultConfig()
	candidate := candidateWithWork("建置 LangChain 與 RAG 應用", "", "LangChain", "RAG")

	detail := ScoreSkills(cfg, candidate)

	assert.Equal(t, "LLM Stack", detail.Ecosystem)
	assert.Equal(t, 90.0, detail.Score)
	assert.Empty(t, detail.SuspiciousFlags)
}

func TestSkillsUnsupportedClaimPenalty(t *testing.T) {
	cfg := DefaultConfig()
	// Docker claimed in tags but absent from every work-history field.
	candidate := candidateWithWork("一般行政工作", "", "Docker")

	detail := ScoreSkills(cfg, candidate)

	require.Len(t, detail.SuspiciousFlags, 1)
	assert.Contains(t, detail.SuspiciousFlags[0], "Docker")
	assert.Equal(t, 25.0, detail.Score)
}

func TestSkillsPortfolioEvidenceSoftensPenalty(t *testing.T) {
	cfg := DefaultConfig()
	// Docker is absent from work history but shows up in the raw narrative,
	// so only the weaker portfolio penalty applies.
	candidate := candidateWithWork("一般行政工作", "", "Docker")
	candidate.RawMarkdown += " 作品集: 使用 Docker 打包個人專案"

	detail := ScoreSkills(cfg, candidate)

	require.Len(t, detail.SuspiciousFlags, 1)
	assert.Contains(t, detail.SuspiciousFlags[0], "portfolio")
	assert.Equal(t, 28.0, detail.Score)
}

func TestSkillsKeywordStuffing(t *testing.T) {
	cfg := DefaultConfig()
	skills := strings.TrimSpace(strings.Repeat("word ", 22))
	candidate := candidateWithWork("short", skills)

	detail := ScoreSkills(cfg, candidate)

	found := false
	for _, flag := range detail.SuspiciousFlags {
		if flag == "Skill list disproportionate to work history (possible keyword stuffing)" {
			found = true
		}
	}
	assert.True(t, found, "expected stuffing flag, got %#v", detail.SuspiciousFlags)
}

func TestSkillsScoreFloor(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Skills.UnsupportedPenalty = 50
	candidate := candidateWithWork("一般行政工作", "", "Docker")

	detail := ScoreSkills(cfg, candidate)

	assert.Equal(t, cfg.Skills.Floor, detail.Score)
}

func TestPipelineHardFilterSentinel(t *testing.T) {
	cfg := DefaultConfig()
	candidate := candidateWithWork("行政助理經驗", "")
	job := &resume.JobRequirement{
		Title:       "AI 工程師",
		HardFilters: resume.HardFilters{RequiredSkills: []string{"Python"}},
	}

	result := Score(cfg, candidate, job, 0.9)

	require.False(t, result.PassedHardFilter)
	assert.Equal(t, cfg.HardFailure, result.OverallScore)
	assert.NotEmpty(t, result.HardFilterFailures)
	assert.Equal(t, []string{"#Filtered"}, result.Tags)
	assert.Zero(t, result.ExperienceScore)
}

func TestPipelineStrongBeatsWeak(t *testing.T) {
	cfg := DefaultConfig()
	job := &resume.JobRequirement{Title: "AI 工程師"}

	strong := candidateWithWork(
		"以 vLLM 與 CUDA 優化推論，延遲降低 40%，部署於 Kubernetes，資料使用 pgvector",
		"Python, PyTorch", "Python", "PyTorch", "vLLM")
	strong.Education = []resume.Education{
		{School: "國立台灣大學", Department: "資訊工程學系", DegreeLevel: "碩士"},
	}

	weak := candidateWithWork("串接 OpenAI API 製作簡單 Chatbot", "")

	strongResult := Score(cfg, strong, job, 0.8)
	weakResult := Score(cfg, weak, job, 0.4)

	require.True(t, strongResult.PassedHardFilter)
	require.True(t, weakResult.PassedHardFilter)
	assert.Greater(t, strongResult.OverallScore, weakResult.OverallScore)
	assert.Greater(t, strongResult.Experience.Tier, weakResult.Experience.Tier)
}

func TestPipelineSemanticScaledOnce(t *testing.T) {
	cfg := DefaultConfig()
	candidate := candidateWithWork("後端開發", "")
	job := &resume.JobRequirement{Title: "工程師"}

	low := Score(cfg, candidate, job, 0.0)
	high := Score(cfg, candidate, job, 1.0)

	// Weight 0.20 over a 0-100 scale: exactly 20 points apart.
	assert.InDelta(t, 20.0, high.OverallScore-low.OverallScore, 0.11)
	assert.Equal(t, 1.0, high.SemanticSimilarity)
}

func TestPipelineOverallCapped(t *testing.T) {
	cfg := DefaultConfig()
	// Overridden weights no longer sum to 1; the overall score must still
	// stay on the 0-100 scale.
	cfg.Weights = Weights{Experience: 1, Engineering: 1, Semantic: 1, Education: 1, Skills: 1}
	candidate := candidateWithWork("以 vLLM 與 CUDA 優化推論", "")
	job := &resume.JobRequirement{Title: "AI 工程師"}

	result := Score(cfg, candidate, job, 1.0)

	assert.Equal(t, 100.0, result.OverallScore)
}

func TestPipelineTags(t *testing.T) {
	cfg := DefaultConfig()
	candidate := candidateWithWork(
		"以 vLLM 與 CUDA 優化推論", "", "LangChain")
	job := &resume.JobRequirement{Title: "AI 工程師"}

	result := Score(cfg, candidate, job, 0.5)

	assert.Contains(t, result.Tags, "#AI-Expert")
	assert.NotEmpty(t, result.AnalysisText)
	assert.NotEmpty(t, result.InterviewSuggestions)
}

func TestConfigDecodeOverlay(t *testing.T) {
	cfg, err := Decode(map[string]any{
		"weights": map[string]any{"experience": 0.5},
		"skills":  map[string]any{"floor": 20},
	})

	require.NoError(t, err)
	assert.Equal(t, 0.5, cfg.Weights.Experience)
	assert.Equal(t, 20.0, cfg.Skills.Floor)
	// Untouched values keep their defaults.
	assert.Equal(t, 0.20, cfg.Weights.Engineering)
	assert.Equal(t, "v2", cfg.Version)
}

func TestWeightsSumToOne(t *testing.T) {
	w := DefaultConfig().Weights
	sum := w.Experience + w.Engineering + w.Semantic + w.Education + w.Skills
	assert.InDelta(t, 1.0, sum, 1e-9)
}
