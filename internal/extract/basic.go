package extract

import (
	"regexp"
	"strings"

	"github.com/hsinyuc/talentsift/internal/resume"
)

var (
	genderSymbolPattern = regexp.MustCompile(`\s*[♂♀]\s*`)
	leakedNameKeys      = regexp.MustCompile(`英⽂名字|英文名字|104代碼`)

	// 姓/名 with optional bold markers around the slash and colon.
	boldNamePattern = regexp.MustCompile(`姓\*{0,2}[/／]\*{0,2}名\*{0,2}\s*[:：]\s*\*{0,2}\s*([^♂♀\n|*:：]+)`)
	plainNamePatt   = regexp.MustCompile(`姓名\s*[:：]\s*([^♂♀\n|*:：]+)`)

	// Second cell of a gender-symbol row must hold a later known key.
	nextKnownKeyPattern = regexp.MustCompile(`英[⽂文]名字|104代碼`)

	// Broken pipe row: "| Name |" or "| Name ||" with nothing else on the line.
	lonePipeRowPattern = regexp.MustCompile(`(?m)^\|\s*([^\s|][^|]*?)\s*\|{1,2}\s*$`)

	code104Pattern   = regexp.MustCompile(`104\*{0,2}代碼\*{0,2}\s*[:：]\s*\*{0,2}\s*(\d+)`)
	leadingDigits    = regexp.MustCompile(`^(\d+)`)
	birthYearPattern = regexp.MustCompile(`^(\d{4})\s*\((\d+)\)`)

	listSplitPattern     = regexp.MustCompile(`[,，、]`)
	positionSplitPattern = regexp.MustCompile(`\s{2,}|[,，、\n]`)

	photoPattern       = regexp.MustCompile(`!\[.*?\]\(([^)]+)\)`)
	linkedinKeyPattern = regexp.MustCompile(`(?i)linkedin:\s*\[?(https?://[^\s\]]+)`)
	linkedinURLPattern = regexp.MustCompile(`(?i)(https?://(?:www\.)?linkedin\.com/[^\s\]]+)`)

	introStartPattern = regexp.MustCompile(`個[⼈人]簡介\*{0,2}[:：]\*{0,2}\s*`)
)

// introTerminators end the bounded self-introduction lookahead. The extractor
// takes the text up to the earliest of these or the end of the section.
var introTerminators = []string{
	"個⼈格⾔", "個人格言", "個⼈特⾊", "個人特色", "個⼈連結", "個人連結", "#",
}

// parseBasicInfo extracts identity and career fields from the basic-info
// section (or preamble). Fields degrade independently: any value the fallback
// chain cannot produce stays empty.
func parseBasicInfo(section string, out *resume.Extract) {
	rows := ParseTableRows(section)
	kv := KeyValuesFromRows(rows)

	// OCR sometimes collapses the whole table into one text blob; fall back to
	// flat-text splitting when the primary name keys are missing.
	if firstKeyValue(kv, "姓/名", "姓名") == "" {
		mergeKeyValues(kv, KeyValuesFromFlatText(section, basicInfoKeys))
	}

	// Single-cell tables pack every field into one cell with <br> separators.
	if firstKeyValue(kv, "姓/名", "姓名") == "" {
		expanded := brTagPattern.ReplaceAllString(section, "\n")
		expanded = strings.ReplaceAll(expanded, "|", " ")
		mergeKeyValues(kv, KeyValuesFromFlatText(expanded, basicInfoKeys))
	}

	out.Name = extractName(section, rows, kv)
	out.EnglishName = firstKeyValue(kv, "英⽂名字", "英文名字")
	out.Code104 = extractCode104(section, kv)

	ageRaw := kv["年齡"]
	if m := birthYearPattern.FindStringSubmatch(ageRaw); m != nil {
		out.BirthYear = m[1]
		out.Age = m[2]
	} else {
		out.BirthYear = ageRaw
		out.Age = ageRaw
	}

	out.Nationality = kv["國籍"]
	out.CurrentStatus = firstKeyValue(kv, "⽬前⾝份", "目前身份")
	out.EarliestStart = firstKeyValue(kv, "最快可上班⽇", "最快可上班日")
	out.EducationLevel = kv["學歷"]
	out.School = kv["學校"]
	out.Major = kv["科系"]
	out.MilitaryStatus = kv["兵役狀況"]
	out.DesiredSalary = kv["希望薪資待遇"]
	out.DesiredIndustry = kv["希望從事產業"]
	out.YearsOfExperience = kv["年資"]

	out.DesiredJobCategories = extractJobCategories(rows)
	out.DesiredLocations = splitList(firstKeyValue(kv, "希望⼯作地點", "希望工作地點"))

	for _, p := range positionSplitPattern.Split(kv["理想職務"], -1) {
		if p = strings.TrimSpace(p); p != "" {
			out.IdealPositions = append(out.IdealPositions, p)
		}
	}

	if m := photoPattern.FindStringSubmatch(section); m != nil {
		out.PhotoPath = m[1]
	}
	out.LinkedinURL = extractLinkedin(section)

	if intro := extractSelfIntro(section); intro != "" {
		out.SelfIntroduction = intro
	}
}

// extractName runs the name fallback chain: direct key lookup, bold-tolerant
// regex, gender-symbol row heuristic, then the broken single-cell pipe row.
func extractName(section string, rows [][]string, kv map[string]string) string {
	raw := firstKeyValue(kv, "姓/名", "姓名")
	// Adjacent field names leak into the name when <br>-merged cells collapse.
	if idx := leakedNameKeys.FindStringIndex(raw); idx != nil {
		raw = raw[:idx[0]]
	}
	raw = strings.TrimSpace(genderSymbolPattern.ReplaceAllString(raw, ""))

	if raw == "" {
		if m := boldNamePattern.FindStringSubmatch(section); m != nil {
			raw = strings.TrimSpace(m[1])
		} else if m := plainNamePatt.FindStringSubmatch(section); m != nil {
			raw = strings.TrimSpace(m[1])
		}
	}

	if raw == "" {
		// Row heuristic: | 謝岳均 ♂ | 英⽂名字: | ... |
		for _, cells := range rows {
			if len(cells) < 2 {
				continue
			}
			first, second := strings.TrimSpace(cells[0]), strings.TrimSpace(cells[1])
			if genderSymbolPattern.MatchString(first) && nextKnownKeyPattern.MatchString(second) {
				raw = strings.TrimSpace(genderSymbolPattern.ReplaceAllString(first, ""))
				break
			}
		}
	}

	if raw == "" {
		if m := lonePipeRowPattern.FindStringSubmatch(section); m != nil {
			candidate := strings.TrimSpace(m[1])
			if len([]rune(candidate)) <= 30 && !strings.ContainsAny(candidate, ":：") {
				raw = candidate
			}
		}
	}

	return strings.TrimSpace(strings.ReplaceAll(raw, "|", ""))
}

func extractCode104(section string, kv map[string]string) string {
	code := kv["104代碼"]
	if code == "" {
		if m := code104Pattern.FindStringSubmatch(section); m != nil {
			code = m[1]
		}
	}
	if code == "" {
		return ""
	}
	// Digits only; OCR appends stray characters to the code cell.
	if m := leadingDigits.FindStringSubmatch(code); m != nil {
		return m[1]
	}
	return ""
}

// extractJobCategories handles category values split across multiple table
// columns: collect every non-key cell after the category key in the same row,
// join and re-split on comma variants. Single-character fragments are OCR
// column-boundary noise and are dropped.
func extractJobCategories(rows [][]string) []string {
	cats := []string{}
	for _, cells := range rows {
		if !strings.Contains(strings.Join(cells, "|"), "希望職務類別") {
			continue
		}
		foundKey := false
		var fragments []string
		for _, c := range cells {
			if strings.Contains(c, "希望職務類別") {
				foundKey = true
				continue
			}
			if !foundKey {
				continue
			}
			if v := strings.TrimSpace(c); v != "" && !keyCellPattern.MatchString(v) {
				fragments = append(fragments, v)
			}
		}
		for _, c := range splitList(strings.Join(fragments, ", ")) {
			if len([]rune(c)) > 1 {
				cats = append(cats, c)
			}
		}
		break
	}
	return cats
}

func splitList(raw string) []string {
	out := []string{}
	for _, s := range listSplitPattern.Split(raw, -1) {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}

func extractLinkedin(section string) string {
	m := linkedinKeyPattern.FindStringSubmatch(section)
	if m == nil {
		m = linkedinURLPattern.FindStringSubmatch(section)
	}
	if m == nil {
		return ""
	}
	url := strings.TrimRight(m[1], ")")
	return strings.ReplaceAll(url, `\_`, "_")
}

// extractSelfIntro captures the text after the intro key up to the next known
// marker or the end of the section.
func extractSelfIntro(section string) string {
	loc := introStartPattern.FindStringIndex(section)
	if loc == nil {
		return ""
	}
	rest := section[loc[1]:]
	end := len(rest)
	for _, term := range introTerminators {
		if idx := strings.Index(rest, term); idx >= 0 && idx < end {
			end = idx
		}
	}
	return strings.TrimSpace(rest[:end])
}
