package analysis

import (
	"fmt"
	"strings"

	"applyai-backend/internal/resumes"
)

// AssemblePrompt builds the user prompt for one analysis. The same inputs
// always produce the same prompt. Single-resume and multi-resume requests
// get different shapes; the reply structure requested here is exactly what
// ParseResponse recognizes.
func AssemblePrompt(job JobInput, items []resumes.Resume) (string, error) {
	if strings.TrimSpace(job.Text) == "" || len(items) == 0 {
		return "", ErrInsufficientInput
	}

	var b strings.Builder
	if len(items) == 1 {
		writeSinglePrompt(&b, job, items[0])
	} else {
		writeMultiPrompt(&b, job, items)
	}
	return b.String(), nil
}

func writeSinglePrompt(b *strings.Builder, job JobInput, resume resumes.Resume) {
	b.WriteString("Analyze the following resume against the job posting and assess how well the candidate fits the role.\n\n")
	writeJobPosting(b, job.Text)
	b.WriteString("RESUME:\n")
	b.WriteString(strings.TrimSpace(resume.Content))
	b.WriteString("\n\n")
	writeCustomQuestions(b, job.CustomQuestions)
	writeReplyInstructions(b)
}

func writeMultiPrompt(b *strings.Builder, job JobInput, items []resumes.Resume) {
	fmt.Fprintf(b, "Analyze each of the following %d resumes against the job posting and assess how well each candidate fits the role.\n\n", len(items))
	writeJobPosting(b, job.Text)
	for i, resume := range items {
		fmt.Fprintf(b, "RESUME %d - %s:\n", i+1, resume.Name)
		b.WriteString(strings.TrimSpace(resume.Content))
		b.WriteString("\n\n")
	}
	writeCustomQuestions(b, job.CustomQuestions)
	writeReplyInstructions(b)
	b.WriteString("\nWrap the analysis of each resume between its own delimiter lines, exactly as follows:\n")
	for i, resume := range items {
		fmt.Fprintf(b, resumeDelimiterFormat+"\n", i+1, resume.Name)
		b.WriteString("(analysis for this resume)\n")
		fmt.Fprintf(b, resumeEndDelimiterFormat+"\n", i+1, resume.Name)
	}
	fmt.Fprintf(b, "\nAfter the last resume block, add a final section that begins with the line \"%s:\" comparing the resumes and recommending which one to submit for this job.\n", comparisonMarker)
}

func writeJobPosting(b *strings.Builder, jobText string) {
	b.WriteString("JOB POSTING:\n")
	b.WriteString(strings.TrimSpace(jobText))
	b.WriteString("\n\n")
}

// writeCustomQuestions passes the user's application questions through
// verbatim so the reply can address them in the relevant sections.
func writeCustomQuestions(b *strings.Builder, questions string) {
	q := strings.TrimSpace(questions)
	if q == "" {
		return
	}
	b.WriteString("Also address these application questions in your assessment:\n")
	b.WriteString(q)
	b.WriteString("\n\n")
}

func writeReplyInstructions(b *strings.Builder) {
	b.WriteString("Structure the analysis of each resume with exactly these sections, using these exact headers:\n")
	fmt.Fprintf(b, "1. %s <number>%%\n", headerScore)
	fmt.Fprintf(b, "2. %s\n", headerOverall)
	fmt.Fprintf(b, "3. %s\n", headerQualifications)
	fmt.Fprintf(b, "4. %s\n", headerMissing)
	fmt.Fprintf(b, "5. %s\n", headerImprovements)
	b.WriteString("Under sections 2 through 5, write each point as a bullet starting with \"- \".\n")
}
