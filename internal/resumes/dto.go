package resumes

import "time"

type resumeResponse struct {
	Name         string    `json:"name"`
	Content      string    `json:"content"`
	SourceFormat string    `json:"sourceFormat"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

func toResponse(resume Resume) resumeResponse {
	return resumeResponse{
		Name:         resume.Name,
		Content:      resume.Content,
		SourceFormat: string(resume.SourceFormat),
		CreatedAt:    resume.CreatedAt,
		UpdatedAt:    resume.UpdatedAt,
	}
}

func toResponses(items []Resume) []resumeResponse {
	out := make([]resumeResponse, 0, len(items))
	for _, resume := range items {
		out = append(out, toResponse(resume))
	}
	return out
}
