package analysis

import "time"

// JobInput is the job posting pasted by the user, plus optional custom
// application questions. It is embedded in the prompt and stored verbatim on
// the result for audit; it is never persisted on its own.
type JobInput struct {
	Text            string
	CustomQuestions string
}

// Section is the typed evaluation of one resume recovered from a reply.
type Section struct {
	ResumeName     string   `json:"resumeName"`
	MatchScore     int      `json:"matchScore"`
	OverallPoints  []string `json:"overallPoints"`
	Qualifications []string `json:"qualifications"`
	MissingSkills  []string `json:"missingSkills"`
	Improvements   []string `json:"improvements"`
	ComparisonNote string   `json:"comparisonNote,omitempty"`

	// MatchedHeaderCount records how many of the five section headers were
	// recognized in the block; zero flags a likely-malformed reply without
	// failing the parse.
	MatchedHeaderCount int `json:"matchedHeaderCount"`
}

// Result is one completed analysis. Results are append-only history: created
// once, never mutated, and never deleted when a resume is deleted.
type Result struct {
	ID              string    `json:"id"`
	OwnerID         string    `json:"-"`
	JobText         string    `json:"jobText"`
	CustomQuestions string    `json:"customQuestions,omitempty"`
	RawResponse     string    `json:"rawResponse"`
	Sections        []Section `json:"sections"`
	CreatedAt       time.Time `json:"createdAt"`
}
