package scoring

import (
	"math"

	"github.com/hsinyuc/talentsift/internal/resume"
)

// Score runs the full funnel for one (candidate, job) pair. The semantic
// similarity is supplied by the caller in the [0, 1] range; candidates that
// fail the hard filter receive the configured failure sentinel and no
// dimension scoring.
func Score(cfg *Config, candidate *resume.Extract, job *resume.JobRequirement, semantic float64) *Result {
	passed, failures := ApplyHardFilters(candidate, job.HardFilters)
	if !passed {
		return &Result{
			OverallScore:       cfg.HardFailure,
			PassedHardFilter:   false,
			HardFilterFailures: failures,
			Tags:               []string{"#Filtered"},
			AnalysisText:       "未通過硬性條件篩選，不進入評分流程。",
		}
	}

	edu := ScoreEducation(cfg, candidate.Education, candidate.RawMarkdown)
	exp := ScoreExperience(cfg, candidate)
	eng := ScoreEngineering(cfg, candidate)
	skills := ScoreSkills(cfg, candidate)

	semantic = clamp01(semantic)
	eng100 := EngineeringScore100(cfg, eng)

	w := cfg.Weights
	overall := math.Min(w.Experience*exp.Score+
		w.Engineering*eng100+
		w.Semantic*semantic*100.0+
		w.Education*edu.Score+
		w.Skills*skills.Score, 100.0)

	sAI := exp.Score
	sTotal := math.Min(sAI*(1.0+eng.MEng), 100.0)

	r := &Result{
		OverallScore:       round1(overall),
		SAI:                round1(sAI),
		MEng:               eng.MEng,
		STotal:             round1(sTotal),
		EducationScore:     edu.Score,
		ExperienceScore:    exp.Score,
		SkillsScore:        skills.Score,
		SemanticSimilarity: round2(semantic),
		Education:          edu,
		Experience:         exp,
		Engineering:        eng,
		Skills:             skills,
		PassedHardFilter:   true,
	}

	r.Tags = buildTags(r)
	r.Strengths, r.Gaps = buildStrengthsAndGaps(r)
	r.InterviewSuggestions = buildInterviewSuggestions(r)
	r.AnalysisText = buildAnalysis(r)

	return r
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
