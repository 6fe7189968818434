package analysis

import (
	"strconv"
	"strings"
)

// ParseResponse turns a raw model reply into typed per-resume sections. It
// never fails: unrecognized text is dropped, missing headers leave their
// fields at defaults, and an empty reply still yields one default section.
func ParseResponse(raw string) []Section {
	blocks, note := segment(raw)

	sections := make([]Section, 0, len(blocks))
	for _, b := range blocks {
		section := parseBlock(b)
		section.ComparisonNote = note
		sections = append(sections, section)
	}
	return sections
}

type block struct {
	name  string
	lines []string
}

// segment splits the reply into per-resume blocks on opening delimiter
// lines. A reply with no delimiters becomes a single block under the default
// name. Blocks close implicitly at the next delimiter or end of text; ruler
// lines between delimiters are never content. For multi-resume replies the
// trailing comparative recommendation is lifted out of the last block.
func segment(raw string) ([]block, string) {
	lines := strings.Split(raw, "\n")

	var blocks []block
	var current *block
	for _, line := range lines {
		if m := resumeDelimiterRe.FindStringSubmatch(line); m != nil {
			blocks = append(blocks, block{name: m[2]})
			current = &blocks[len(blocks)-1]
			continue
		}
		if current == nil {
			// Preamble before the first delimiter carries no section data.
			continue
		}
		if rulerLineRe.MatchString(line) {
			continue
		}
		current.lines = append(current.lines, line)
	}

	if len(blocks) == 0 {
		return []block{{name: defaultResumeName, lines: lines}}, ""
	}

	last := &blocks[len(blocks)-1]
	remaining, note := splitComparison(last.lines)
	last.lines = remaining
	return blocks, note
}

// splitComparison separates a trailing comparative recommendation from the
// block content. The note runs from the marker line to the end of the block,
// captured verbatim.
func splitComparison(lines []string) ([]string, string) {
	for i, line := range lines {
		if strings.Contains(line, comparisonMarker) {
			note := strings.TrimSpace(strings.Join(lines[i:], "\n"))
			return lines[:i], note
		}
	}
	return lines, ""
}

// parseBlock runs the line-level state machine over one block. Header lines
// are recognized by substring so numbering or markdown emphasis around the
// header does not break the match.
func parseBlock(b block) Section {
	section := Section{
		ResumeName:     strings.TrimSpace(b.name),
		OverallPoints:  []string{},
		Qualifications: []string{},
		MissingSkills:  []string{},
		Improvements:   []string{},
	}

	var target *[]string
	for _, line := range b.lines {
		switch {
		case strings.Contains(line, headerScore):
			section.MatchScore = extractScore(line)
			section.MatchedHeaderCount++
			target = nil
		case strings.Contains(line, headerOverall):
			section.MatchedHeaderCount++
			target = &section.OverallPoints
		case strings.Contains(line, headerQualifications):
			section.MatchedHeaderCount++
			target = &section.Qualifications
		case strings.Contains(line, headerMissing):
			section.MatchedHeaderCount++
			target = &section.MissingSkills
		case strings.Contains(line, headerImprovements):
			section.MatchedHeaderCount++
			target = &section.Improvements
		default:
			if target == nil {
				continue
			}
			if item := stripBullet(line); item != "" {
				*target = append(*target, item)
			}
		}
	}
	return section
}

// stripBullet trims whitespace and a leading list marker from a content line.
func stripBullet(line string) string {
	s := strings.TrimSpace(line)
	for _, marker := range []string{"- ", "* ", "• "} {
		if strings.HasPrefix(s, marker) {
			return strings.TrimSpace(s[len(marker):])
		}
	}
	return s
}

// extractScore pulls the first percentage off a score header line, clamped
// to the 0-100 range. Lines with no percentage score zero.
func extractScore(line string) int {
	m := percentRe.FindStringSubmatch(line)
	if m == nil {
		return 0
	}
	score, err := strconv.Atoi(m[1])
	if err != nil {
		return 0
	}
	if score > 100 {
		return 100
	}
	return score
}
