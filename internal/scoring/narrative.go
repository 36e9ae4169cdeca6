package scoring

import (
	"fmt"
	"strings"
)

// Narrative rendering for the recruiter-facing payload. Everything here is
// derived from the already-computed Result, so it never changes a score.

var tierTags = map[int]string{
	1: "#API-Wrapper",
	2: "#RAG-Architect",
	3: "#AI-Expert",
}

func buildTags(r *Result) []string {
	tags := []string{tierTags[r.Experience.Tier]}
	if r.Engineering.BackendLevel >= 2 && r.Engineering.FrontendLevel >= 2 {
		tags = append(tags, "#Full-Stack")
	}
	if r.Skills.Ecosystem == "LLM Stack" {
		tags = append(tags, "#LLM-Stack")
	}
	if r.Education.ThesisBonus > 0 {
		tags = append(tags, "#Research")
	}
	return tags
}

func buildStrengthsAndGaps(r *Result) (strengths, gaps []string) {
	if r.Experience.Tier == 3 {
		strengths = append(strengths, "具備模型訓練或推論優化等深度 AI 工程經驗")
	}
	if r.Experience.Tier == 2 {
		strengths = append(strengths, "具備 RAG 或向量檢索系統的實作經驗")
	}
	if r.Experience.MetricScore >= 2.5 {
		strengths = append(strengths, "履歷中有量化的成效指標，成果可驗證")
	}
	if r.Engineering.MEng >= 0.5 {
		strengths = append(strengths, "工程基礎扎實，具備後端與資料層的實戰能力")
	}
	if r.EducationScore >= 80 {
		strengths = append(strengths, "學歷背景優秀，本科或研究所為頂尖學校相關科系")
	}

	if r.Experience.Tier == 1 {
		gaps = append(gaps, "AI 經驗以 API 串接為主，缺乏系統層或模型層的深度")
	}
	if r.Experience.MetricScore == 0 {
		gaps = append(gaps, "工作描述缺乏量化成效，實際貢獻難以評估")
	}
	if r.Engineering.DatabaseLevel == 0 {
		gaps = append(gaps, "未見資料庫或資料處理相關經驗")
	}
	if r.Engineering.BackendLevel == 0 {
		gaps = append(gaps, "未見後端開發相關經驗")
	}
	if len(r.Skills.SuspiciousFlags) > 0 {
		gaps = append(gaps, "技能清單有待查證的項目，面試時需確認")
	}
	return strengths, gaps
}

func buildInterviewSuggestions(r *Result) []string {
	var out []string
	switch r.Experience.Tier {
	case 3:
		out = append(out, "深入追問模型訓練或推論優化的技術細節，例如量化方式、GPU 記憶體管理")
	case 2:
		out = append(out, "請候選人說明 RAG 系統的檢索策略與向量資料庫選型理由")
	default:
		out = append(out, "確認候選人對 LLM API 之外的底層技術理解程度")
	}
	for _, flag := range r.Skills.SuspiciousFlags {
		out = append(out, fmt.Sprintf("查證項目：%s", flag))
	}
	if r.Experience.MetricScore == 0 {
		out = append(out, "請候選人以具體數字描述過往專案的成效")
	}
	return out
}

func buildAnalysis(r *Result) string {
	var b strings.Builder
	fmt.Fprintf(&b, "候選人屬於 %s 層級（第 %d 層），AI 經驗得分 %.1f。",
		r.Experience.TierLabel, r.Experience.Tier, r.ExperienceScore)
	fmt.Fprintf(&b, "工程成熟度乘數 %.2f（後端 L%d、資料庫 L%d、前端 L%d）。",
		r.Engineering.MEng, r.Engineering.BackendLevel,
		r.Engineering.DatabaseLevel, r.Engineering.FrontendLevel)
	fmt.Fprintf(&b, "技能生態系為 %s，學歷得分 %.1f，語意相似度 %.2f。",
		r.Skills.Ecosystem, r.EducationScore, r.SemanticSimilarity)
	fmt.Fprintf(&b, "綜合評分 %.1f。", r.OverallScore)
	return b.String()
}
