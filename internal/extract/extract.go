// Package extract converts OCR-derived 104.com resume markdown into a
// structured candidate record. Parsing is fail-soft throughout: malformed
// tables, missing headings and collapsed text blobs degrade to layered
// fallback strategies, never to errors.
package extract

import (
	"regexp"
	"strings"

	"github.com/hsinyuc/talentsift/internal/resume"
)

var (
	workHeadingPattern   = regexp.MustCompile(`(?m)^#{1,4}\s+[⼯工]作經驗`)
	afterWorkHeadingPatt = regexp.MustCompile(`(?m)^#{1,4}\s+(?:才能專[⻑長]|[⾃自]我介紹)`)
	subHeadingStripPatt  = regexp.MustCompile(`#{1,4}\s+.+`)
)

// minimum usable work-section length before falling back to re-slicing the
// raw markdown. Stray OCR headings frequently truncate the section map entry.
const minWorkSectionLen = 50

// Parse converts resume markdown into a fully populated Extract. The input is
// CJK-normalized first; the same input always yields the same output.
func Parse(markdown string) *resume.Extract {
	markdown = NormalizeCJK(markdown)
	sections := SplitSections(markdown)
	out := resume.NewExtract()
	out.RawMarkdown = markdown

	basicSection := sections["基本資料"]
	if basicSection == "" {
		basicSection = sections[PreambleSection]
	}
	if basicSection != "" {
		parseBasicInfo(basicSection, out)
	}

	parseContact(contactSource(sections, basicSection), out)

	workSection := firstSection(sections, "⼯作經驗", "工作經驗")
	if len(workSection) < minWorkSectionLen {
		if block := sectionBlock(markdown, workHeadingPattern, afterWorkHeadingPatt); block != "" {
			workSection = block
		}
	}
	if workSection != "" {
		out.WorkExperiences = parseWorkExperience(workSection)
	}

	// The education table typically rides inside the work section.
	eduText := workSection
	if idx := strings.Index(eduText, "教育背景"); idx >= 0 {
		eduText = eduText[idx:]
	}
	if parsed := parseEducation(eduText); parsed != nil {
		out.Education = parsed
	}

	for _, body := range sections {
		if strings.Contains(body, "求職條件") || strings.Contains(body, "希望⼯作性質") || strings.Contains(body, "希望工作性質") {
			parseJobPreferences(body, out)
			break
		}
	}

	out.SkillsText, out.SkillTags = parseSkills(markdown)

	if intro := firstSection(sections, "⾃我介紹", "自我介紹"); intro != "" && out.SelfIntroduction == "" {
		out.SelfIntroduction = strings.TrimSpace(subHeadingStripPatt.ReplaceAllString(intro, ""))
	}
	if out.SelfIntroduction == "" {
		out.SelfIntroduction = extractSelfIntro(basicSection)
	}

	assignReferences(sections, out)

	return out
}

// contactSource picks the text parsed for contact fields: the dedicated
// section, a heading that swallowed the contact data (OCR artifact), or the
// basic-info section where contact rows are sometimes embedded.
func contactSource(sections map[string]string, basicSection string) string {
	if s := firstSection(sections, "聯絡⽅式", "聯絡方式"); s != "" {
		return s
	}
	for name, body := range sections {
		if strings.HasPrefix(name, "聯絡⽅式") || strings.HasPrefix(name, "聯絡方式") {
			return name + " " + body
		}
	}
	return basicSection
}

// assignReferences finds the section whose table rows carry the reference or
// attachment labels and parses it. Label mentions in running text do not
// qualify; the label has to be a row cell.
func assignReferences(sections map[string]string, out *resume.Extract) {
	for _, text := range sections {
		var labels []string
		for _, cells := range ParseTableRows(text) {
			if len(cells) > 0 {
				labels = append(labels, strings.TrimSpace(cells[0]))
			}
		}
		joined := strings.Join(labels, " ")
		if strings.Contains(joined, "推薦⼈") || strings.Contains(joined, "推薦人") || strings.Contains(joined, "附件") {
			out.References, out.Attachments = parseAttachments(text)
			return
		}
	}
}

func firstSection(sections map[string]string, names ...string) string {
	for _, n := range names {
		if s := sections[n]; s != "" {
			return s
		}
	}
	return ""
}
