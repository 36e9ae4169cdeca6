package extract

import (
	"reflect"
	"testing"
)

const sampleResume = `# 基本資料

![照片](photos/27724639.jpg)

| 謝岳均 ♂ | 英文名字: | Alex Hsieh |
| --- | --- | --- |
| 104代碼: | 27724639 |
| 年齡: | 1995 (29) |
| 國籍: | 台灣 |
| 學歷: | 碩士 |
| 學校: | 國立台灣大學 |
| 科系: | 資訊工程學系 |
| 希望薪資待遇: | 面議 |
| 希望職務類別: | 軟體工程師, AI工程師 |
| 希望工作地點: | 台北市, 新竹市 |
| email: | alex@example.com |
| 手機1: | 0912-345-678 |

個人簡介: 熱愛機器學習與後端系統開發。

# 求職條件

| 希望工作性質: | 全職 |
| 希望上班時段: | 日班 |
| 遠端工作: | 可遠端 |

# 工作經驗

| 台積電股份有限公司, 2020/07/01 ~ 2023/06/30 (3年) |
| --- |
| 產業類別: | 半導體製造業 |
| 職務名稱: | AI 工程師 |
| 工作內容: | 建置 RAG 系統並以 vLLM 與 CUDA 優化推論，延遲降低 40% |
| 工作技能: | Python, PyTorch, Docker |

教育背景

| 學校 | 科系 | 學歷 | 期間 | 地區 | 狀態 |
| 1. | 國立台灣大學 | 資訊工程學系 | 碩士 | 2018/09/01 ~ 2020/06/30 | 台灣 | 畢業 |

# 才能專長

#Python #PyTorch #RAG #Machine Learning

## 自我介紹

對大型語言模型的推論優化有濃厚興趣。

# 附件

| 附件 | | |
| # | 名稱 | 檔案/連結 |
| 1. | 作品集 | https://github.com/alex/portfolio |
`

func TestParseSampleResume(t *testing.T) {
	out := Parse(sampleResume)

	if out.Name != "謝岳均" {
		t.Fatalf("unexpected name: %q", out.Name)
	}
	if out.EnglishName != "Alex Hsieh" {
		t.Fatalf("unexpected english name: %q", out.EnglishName)
	}
	if out.Code104 != "27724639" {
		t.Fatalf("unexpected 104 code: %q", out.Code104)
	}
	if out.BirthYear != "1995" || out.Age != "29" {
		t.Fatalf("unexpected birth year/age: %q / %q", out.BirthYear, out.Age)
	}
	if out.School != "國立台灣大學" || out.Major != "資訊工程學系" {
		t.Fatalf("unexpected school/major: %q / %q", out.School, out.Major)
	}
	if out.PhotoPath != "photos/27724639.jpg" {
		t.Fatalf("unexpected photo path: %q", out.PhotoPath)
	}

	wantCats := []string{"軟體工程師", "AI工程師"}
	if !reflect.DeepEqual(out.DesiredJobCategories, wantCats) {
		t.Fatalf("unexpected job categories: %#v", out.DesiredJobCategories)
	}
	wantLocs := []string{"台北市", "新竹市"}
	if !reflect.DeepEqual(out.DesiredLocations, wantLocs) {
		t.Fatalf("unexpected locations: %#v", out.DesiredLocations)
	}

	if out.Email != "alex@example.com" {
		t.Fatalf("unexpected email: %q", out.Email)
	}
	if out.Mobile1 != "0912-345-678" {
		t.Fatalf("unexpected mobile: %q", out.Mobile1)
	}

	if out.WorkType != "全職" || out.RemoteWorkPreference != "可遠端" {
		t.Fatalf("unexpected preferences: %q / %q", out.WorkType, out.RemoteWorkPreference)
	}

	if len(out.WorkExperiences) != 1 {
		t.Fatalf("expected 1 work experience, got %d", len(out.WorkExperiences))
	}
	we := out.WorkExperiences[0]
	if we.CompanyName != "台積電股份有限公司" {
		t.Fatalf("unexpected company: %q", we.CompanyName)
	}
	if we.DateStart != "2020/07/01" || we.DateEnd != "2023/06/30" || we.Duration != "3年" {
		t.Fatalf("unexpected dates: %+v", we)
	}
	if we.JobTitle != "AI 工程師" {
		t.Fatalf("unexpected job title: %q", we.JobTitle)
	}
	if we.JobSkills != "Python, PyTorch, Docker" {
		t.Fatalf("unexpected job skills: %q", we.JobSkills)
	}

	if len(out.Education) != 1 {
		t.Fatalf("expected 1 education entry, got %d", len(out.Education))
	}
	edu := out.Education[0]
	if edu.School != "國立台灣大學" || edu.DegreeLevel != "碩士" {
		t.Fatalf("unexpected education: %+v", edu)
	}
	if edu.DateStart != "2018/09/01" || edu.DateEnd != "2020/06/30" {
		t.Fatalf("unexpected education period: %+v", edu)
	}

	wantTags := []string{"Python", "PyTorch", "RAG", "Machine Learning"}
	if !reflect.DeepEqual(out.SkillTags, wantTags) {
		t.Fatalf("unexpected skill tags: %#v", out.SkillTags)
	}

	if out.SelfIntroduction != "熱愛機器學習與後端系統開發。" {
		t.Fatalf("unexpected self introduction: %q", out.SelfIntroduction)
	}

	if len(out.Attachments) != 1 {
		t.Fatalf("expected 1 attachment, got %d", len(out.Attachments))
	}
	att := out.Attachments[0]
	if att.Name != "作品集" || att.URL != "https://github.com/alex/portfolio" {
		t.Fatalf("unexpected attachment: %+v", att)
	}
}

func TestParseIsDeterministic(t *testing.T) {
	first := Parse(sampleResume)
	second := Parse(sampleResume)

	if !reflect.DeepEqual(first, second) {
		t.Fatalf("parsing the same input twice produced different results")
	}
}

func TestParseEmptyInput(t *testing.T) {
	out := Parse("")

	if out == nil {
		t.Fatalf("expected a non-nil extract")
	}
	if out.Name != "" || out.Code104 != "" {
		t.Fatalf("expected empty fields, got %+v", out)
	}
	if out.WorkExperiences == nil || out.SkillTags == nil {
		t.Fatalf("list fields must stay initialized")
	}
}

func TestParseRadicalVariantHeadings(t *testing.T) {
	// OCR output uses Kangxi radical forms in headings. Normalization folds
	// them so the section lookups still work.
	md := "# 基本資料\n| 104代碼: | 12345 |\n# ⼯作經驗\n| 公司A, 2020/01/01 ~ 2021/01/01 (1年) |\n"

	out := Parse(md)

	if out.Code104 != "12345" {
		t.Fatalf("unexpected code: %q", out.Code104)
	}
	if len(out.WorkExperiences) != 1 || out.WorkExperiences[0].CompanyName != "公司A" {
		t.Fatalf("unexpected work experiences: %#v", out.WorkExperiences)
	}
}
