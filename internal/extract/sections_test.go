package extract

import (
	"regexp"
	"testing"
)

func TestSplitSections(t *testing.T) {
	md := "intro line\n# 基本資料\nname row\nmore\n## 工作經驗\njob row\n"

	sections := SplitSections(md)

	if sections[PreambleSection] != "intro line" {
		t.Fatalf("unexpected preamble: %q", sections[PreambleSection])
	}
	if sections["基本資料"] != "name row\nmore" {
		t.Fatalf("unexpected basic section: %q", sections["基本資料"])
	}
	if sections["工作經驗"] != "job row" {
		t.Fatalf("unexpected work section: %q", sections["工作經驗"])
	}
}

func TestSplitSectionsNoHeadings(t *testing.T) {
	sections := SplitSections("just text\nno headings")

	if len(sections) != 1 {
		t.Fatalf("expected only the preamble, got %d sections", len(sections))
	}
	if sections[PreambleSection] != "just text\nno headings" {
		t.Fatalf("unexpected preamble: %q", sections[PreambleSection])
	}
}

func TestSectionBlock(t *testing.T) {
	md := "# 工作經驗\nbody one\n# 才能專長\ntags"
	start := regexp.MustCompile(`(?m)^#\s+工作經驗`)
	end := regexp.MustCompile(`(?m)^#\s+才能專長`)

	block := sectionBlock(md, start, end)
	if block != "\nbody one\n" {
		t.Fatalf("unexpected block: %q", block)
	}

	if got := sectionBlock(md, regexp.MustCompile(`missing`), end); got != "" {
		t.Fatalf("expected empty block for absent heading, got %q", got)
	}
}

func TestNormalizeCJKFoldsRadicals(t *testing.T) {
	// Kangxi radical forms fold to the ideographs the dictionaries use.
	got := NormalizeCJK("⼯作經驗 ⾃我介紹 ⻑")
	if got != "工作經驗 自我介紹 長" {
		t.Fatalf("unexpected normalization: %q", got)
	}
}
