package analysis

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"applyai-backend/internal/resumes"
	"applyai-backend/internal/shared/server/middleware"
	"applyai-backend/internal/shared/server/respond"
)

// Handler wires HTTP handlers to the service.
type Handler struct {
	Svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{Svc: svc}
}

// RegisterRoutes attaches analysis routes to the router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/analyses", h.analyze)
	rg.GET("/analyses", h.history)
	rg.GET("/resumes/:name/analyses", h.historyForResume)
}

type analyzeRequest struct {
	JobText         string   `json:"jobText"`
	CustomQuestions string   `json:"customQuestions"`
	ResumeNames     []string `json:"resumeNames"`
}

func (h *Handler) analyze(c *gin.Context) {
	ownerID := middleware.OwnerIDFromContext(c)

	var req analyzeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid request body", nil)
		return
	}

	job := JobInput{Text: req.JobText, CustomQuestions: req.CustomQuestions}
	result, err := h.Svc.Analyze(c.Request.Context(), ownerID, job, req.ResumeNames)
	if err != nil {
		h.respondAnalyzeError(c, err)
		return
	}
	c.Set("analysisId", result.ID)
	respond.JSON(c, http.StatusCreated, gin.H{"analysis": result})
}

func (h *Handler) respondAnalyzeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ErrInsufficientInput):
		respond.Error(c, http.StatusUnprocessableEntity, "insufficient_input", "a job posting and at least one resume are required", nil)
	case errors.Is(err, resumes.ErrNotFound):
		respond.Error(c, http.StatusNotFound, "not_found", "resume not found", nil)
	case errors.Is(err, ErrGenerationFailed):
		respond.Error(c, http.StatusBadGateway, "generation_failed", "analysis failed, try again", nil)
	default:
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to run analysis", nil)
	}
}

func (h *Handler) history(c *gin.Context) {
	ownerID := middleware.OwnerIDFromContext(c)

	items, err := h.Svc.History(c.Request.Context(), ownerID)
	if err != nil {
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to list analyses", nil)
		return
	}
	respond.OK(c, gin.H{"analyses": items})
}

func (h *Handler) historyForResume(c *gin.Context) {
	ownerID := middleware.OwnerIDFromContext(c)
	name := c.Param("name")

	items, err := h.Svc.HistoryForResume(c.Request.Context(), ownerID, name)
	if err != nil {
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to list analyses", nil)
		return
	}
	respond.OK(c, gin.H{"analyses": items})
}
