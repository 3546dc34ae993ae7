package narrative

import (
	"regexp"
	"strings"

	"ticker-pulse/internal/types"
)

// A section title is a numbered uppercase phrase on its own line, e.g.
// "2. KEY WATCHPOINTS".
var sectionTitleRe = regexp.MustCompile(`(?m)^\s*\d+\.\s+([A-Z][A-Z0-9 &/,'-]*[A-Z])\s*$`)

// numericPrefixRe backs the positional fallback split.
var numericPrefixRe = regexp.MustCompile(`\d+\.\s*`)

// parseSections extracts (title, body) pairs from model output. When no
// titled section is found it falls back to splitting on numeric prefixes
// and zipping the parts against the expected title list; if even that
// yields too few parts the narrative is unavailable and the list is empty.
func parseSections(text string, expectedTitles []string) []types.NarrativeSection {
	matches := sectionTitleRe.FindAllStringSubmatchIndex(text, -1)
	if len(matches) > 0 {
		sections := make([]types.NarrativeSection, 0, len(matches))
		for i, m := range matches {
			title := text[m[2]:m[3]]
			bodyEnd := len(text)
			if i+1 < len(matches) {
				bodyEnd = matches[i+1][0]
			}
			body := strings.TrimSpace(text[m[1]:bodyEnd])
			sections = append(sections, types.NarrativeSection{Title: title, Content: body})
		}
		return sections
	}

	parts := numericPrefixRe.Split(text, -1)
	trimmed := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			trimmed = append(trimmed, p)
		}
	}
	if len(trimmed) < len(expectedTitles) {
		return []types.NarrativeSection{}
	}

	sections := make([]types.NarrativeSection, 0, len(expectedTitles))
	for i, title := range expectedTitles {
		sections = append(sections, types.NarrativeSection{Title: title, Content: trimmed[i]})
	}
	return sections
}
