package main

// Preview or exercise the analysis pipeline from the command line:
//   go run ./cmd/prompttest -job posting.txt -resumes cv.pdf
//   go run ./cmd/prompttest -job posting.txt -resumes alice.pdf,bob.docx -send

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"applyai-backend/internal/analysis"
	"applyai-backend/internal/llm"
	"applyai-backend/internal/llm/anthropic"
	"applyai-backend/internal/normalize"
	"applyai-backend/internal/resumes"
	"applyai-backend/internal/shared/config"
)

func main() {
	cfg := config.Load()

	jobPath := flag.String("job", "", "Path to job posting text file")
	resumePaths := flag.String("resumes", "", "Comma-separated resume files (pdf, docx or txt)")
	questionsPath := flag.String("questions", "", "Path to custom questions file (optional)")
	model := flag.String("model", cfg.LLMModel, "Model to use with -send")
	send := flag.Bool("send", false, "Send the prompt to the model and parse the reply")
	flag.Parse()

	if strings.TrimSpace(*jobPath) == "" || strings.TrimSpace(*resumePaths) == "" {
		exitErr("-job and -resumes are required")
	}

	job := analysis.JobInput{Text: readFile(*jobPath)}
	if strings.TrimSpace(*questionsPath) != "" {
		job.CustomQuestions = readFile(*questionsPath)
	}

	items := loadResumes(strings.Split(*resumePaths, ","))

	prompt, err := analysis.AssemblePrompt(job, items)
	if err != nil {
		exitErr(fmt.Sprintf("assemble prompt: %v", err))
	}

	if !*send {
		fmt.Println(prompt)
		return
	}

	client, err := anthropic.NewClient(cfg.AnthropicAPIKey, *model)
	if err != nil {
		exitErr(err.Error())
	}
	raw, err := client.Complete(context.Background(), llm.Request{
		System: analysis.SystemPrompt,
		Prompt: prompt,
	})
	if err != nil {
		exitErr(fmt.Sprintf("complete: %v", err))
	}

	fmt.Println(raw)
	fmt.Println("---")
	pretty, err := json.MarshalIndent(analysis.ParseResponse(raw), "", "  ")
	if err != nil {
		exitErr(fmt.Sprintf("format sections: %v", err))
	}
	fmt.Println(string(pretty))
}

func loadResumes(paths []string) []resumes.Resume {
	items := make([]resumes.Resume, 0, len(paths))
	for _, path := range paths {
		path = strings.TrimSpace(path)
		if path == "" {
			continue
		}
		declaredType := normalize.TypeFromName(path)
		if declaredType == "" {
			exitErr(fmt.Sprintf("unsupported resume file type: %s", filepath.Ext(path)))
		}
		data, err := os.ReadFile(path)
		if err != nil {
			exitErr(fmt.Sprintf("read resume: %v", err))
		}
		fileName := filepath.Base(path)
		text, err := normalize.Normalize(normalize.Upload{
			Name:         fileName,
			DeclaredType: declaredType,
			Data:         data,
		})
		if err != nil {
			exitErr(fmt.Sprintf("normalize %s: %v", fileName, err))
		}
		items = append(items, resumes.Resume{
			Name:    strings.TrimSuffix(fileName, filepath.Ext(fileName)),
			Content: text,
		})
	}
	return items
}

func readFile(path string) string {
	data, err := os.ReadFile(path)
	if err != nil {
		exitErr(fmt.Sprintf("read %s: %v", path, err))
	}
	return string(data)
}

func exitErr(msg string) {
	_, _ = fmt.Fprintln(os.Stderr, msg)
	os.Exit(1)
}
