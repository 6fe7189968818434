package analysis

import "regexp"

// The reply format is dictated by what we ask for: the assembler requests
// these exact strings and the parser recognizes them verbatim. Both sides
// reference this file only, so the wording cannot drift independently.
const (
	headerScore          = "Match Score:"
	headerOverall        = "Overall Assessment:"
	headerQualifications = "Key Qualifications Match:"
	headerMissing        = "Missing Skills/Experience:"
	headerImprovements   = "Suggested Resume Improvements:"

	// comparisonMarker opens the cross-resume recommendation appended after
	// the last per-resume block of a multi-resume reply.
	comparisonMarker = "COMPARATIVE RECOMMENDATION"

	// defaultResumeName labels the single section produced when a reply
	// carries no resume delimiters.
	defaultResumeName = "Resume 1"

)

// SystemPrompt frames every completion request sent by the pipeline.
const SystemPrompt = "You are an expert career advisor and resume consultant."

// Delimiter line formats for multi-resume replies. The closing line starts
// with END so it never reads as a new opening delimiter.
const (
	resumeDelimiterFormat    = "===== RESUME %d - %s ====="
	resumeEndDelimiterFormat = "===== END RESUME %d - %s ====="
)

var (
	// resumeDelimiterRe matches opening delimiter lines and captures the
	// index and the resume name.
	resumeDelimiterRe = regexp.MustCompile(`^\s*=====\s*RESUME\s+(\d+)\s*-\s*(.*?)\s*=====\s*$`)

	// rulerLineRe matches any `===== ... =====` line, including closing
	// delimiters; such lines are boundaries or noise, never content.
	rulerLineRe = regexp.MustCompile(`^\s*=====.*=====\s*$`)

	// percentRe finds a digits-immediately-followed-by-percent score.
	percentRe = regexp.MustCompile(`(\d{1,3})%`)
)
