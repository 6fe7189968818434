package analysis

import (
	"strings"
	"testing"
)

const singleReply = `Match Score: 82%

Overall Assessment:
- Strong backend engineering background
- Limited exposure to the cloud stack named in the posting

Key Qualifications Match:
- Go and Postgres experience
- Prior API ownership

Missing Skills/Experience:
- Kubernetes

Suggested Resume Improvements:
- Quantify project outcomes
- Move the skills summary above work history`

func TestParseSingleReply(t *testing.T) {
	sections := ParseResponse(singleReply)
	if len(sections) != 1 {
		t.Fatalf("sections = %d, want 1", len(sections))
	}

	s := sections[0]
	if s.ResumeName != "Resume 1" {
		t.Errorf("ResumeName = %q, want %q", s.ResumeName, "Resume 1")
	}
	if s.MatchScore != 82 {
		t.Errorf("MatchScore = %d, want 82", s.MatchScore)
	}
	if s.MatchedHeaderCount != 5 {
		t.Errorf("MatchedHeaderCount = %d, want 5", s.MatchedHeaderCount)
	}
	if len(s.OverallPoints) != 2 {
		t.Fatalf("OverallPoints = %v, want 2 entries", s.OverallPoints)
	}
	if s.OverallPoints[0] != "Strong backend engineering background" {
		t.Errorf("bullet not stripped: %q", s.OverallPoints[0])
	}
	if len(s.Qualifications) != 2 || len(s.MissingSkills) != 1 || len(s.Improvements) != 2 {
		t.Errorf("list sizes = %d/%d/%d, want 2/1/2",
			len(s.Qualifications), len(s.MissingSkills), len(s.Improvements))
	}
	if s.ComparisonNote != "" {
		t.Errorf("ComparisonNote = %q, want empty for single reply", s.ComparisonNote)
	}
}

const multiReply = `Here is the analysis you asked for.

===== RESUME 1 - Alice =====
Match Score: 91%
Overall Assessment:
- Excellent fit for the role
Key Qualifications Match:
- Distributed systems work
Missing Skills/Experience:
- None significant
Suggested Resume Improvements:
- Tighten the summary paragraph
===== END RESUME 1 - Alice =====

===== RESUME 2 - Bob =====
1. **Match Score:** 64%
2. Overall Assessment:
• Generalist profile, light on the core stack
3. Key Qualifications Match:
• Team leadership
4. Missing Skills/Experience:
• Production Go experience
5. Suggested Resume Improvements:
• Lead with relevant projects
===== END RESUME 2 - Bob =====

COMPARATIVE RECOMMENDATION:
Submit Alice's resume; it covers the core requirements directly.`

func TestParseMultiReply(t *testing.T) {
	sections := ParseResponse(multiReply)
	if len(sections) != 2 {
		t.Fatalf("sections = %d, want 2", len(sections))
	}

	alice, bob := sections[0], sections[1]
	if alice.ResumeName != "Alice" || bob.ResumeName != "Bob" {
		t.Fatalf("names = %q, %q, want Alice, Bob", alice.ResumeName, bob.ResumeName)
	}
	if alice.MatchScore != 91 {
		t.Errorf("alice score = %d, want 91", alice.MatchScore)
	}
	if bob.MatchScore != 64 {
		t.Errorf("bob score = %d, want 64 (markdown and numbering around headers)", bob.MatchScore)
	}
	if bob.OverallPoints[0] != "Generalist profile, light on the core stack" {
		t.Errorf("unicode bullet not stripped: %q", bob.OverallPoints[0])
	}

	// Content must not bleed across blocks.
	for _, item := range alice.MissingSkills {
		if strings.Contains(item, "Production Go") {
			t.Errorf("bob's content leaked into alice's section: %q", item)
		}
	}
	for _, s := range sections {
		if !strings.Contains(s.ComparisonNote, "Submit Alice's resume") {
			t.Errorf("ComparisonNote = %q, want the shared recommendation", s.ComparisonNote)
		}
		if strings.Contains(strings.Join(s.Improvements, "\n"), "COMPARATIVE") {
			t.Errorf("recommendation leaked into improvements: %v", s.Improvements)
		}
	}
}

func TestParseNeverFails(t *testing.T) {
	tests := []struct {
		name string
		raw  string
	}{
		{"empty reply", ""},
		{"whitespace only", "  \n\n\t\n"},
		{"no headers at all", "The candidate seems fine.\nNothing else to report."},
		{"delimiter with no content", "===== RESUME 1 - Solo ====="},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sections := ParseResponse(tt.raw)
			if len(sections) != 1 {
				t.Fatalf("sections = %d, want 1", len(sections))
			}
			s := sections[0]
			if s.MatchScore != 0 || s.MatchedHeaderCount != 0 {
				t.Errorf("score/headers = %d/%d, want 0/0", s.MatchScore, s.MatchedHeaderCount)
			}
			if len(s.OverallPoints)+len(s.Qualifications)+len(s.MissingSkills)+len(s.Improvements) != 0 {
				t.Errorf("expected all lists empty, got %+v", s)
			}
		})
	}
}

func TestParseTextOutsideSectionsDropped(t *testing.T) {
	raw := "Preamble chatter.\nMatch Score: 50%\nThis stray sentence belongs to no section.\nOverall Assessment:\n- Kept"
	sections := ParseResponse(raw)
	s := sections[0]
	if s.MatchScore != 50 {
		t.Fatalf("MatchScore = %d, want 50", s.MatchScore)
	}
	if len(s.OverallPoints) != 1 || s.OverallPoints[0] != "Kept" {
		t.Errorf("OverallPoints = %v, want only the bullet after the header", s.OverallPoints)
	}
}

func TestExtractScore(t *testing.T) {
	tests := []struct {
		line string
		want int
	}{
		{"Match Score: 82%", 82},
		{"Match Score: 7%", 7},
		{"Match Score: 100%", 100},
		{"Match Score: 150%", 100},
		{"Match Score: very high", 0},
		{"Match Score: 82", 0},
	}
	for _, tt := range tests {
		if got := extractScore(tt.line); got != tt.want {
			t.Errorf("extractScore(%q) = %d, want %d", tt.line, got, tt.want)
		}
	}
}

func TestStripBullet(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"- dashed item", "dashed item"},
		{"* starred item", "starred item"},
		{"• unicode item", "unicode item"},
		{"  - indented item  ", "indented item"},
		{"plain line", "plain line"},
		{"-not a bullet", "-not a bullet"},
		{"   ", ""},
	}
	for _, tt := range tests {
		if got := stripBullet(tt.in); got != tt.want {
			t.Errorf("stripBullet(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
