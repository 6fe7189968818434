package resumes

import (
	"errors"
	"io"
	"mime/multipart"
	"net/http"

	"github.com/gin-gonic/gin"

	"applyai-backend/internal/normalize"
	"applyai-backend/internal/shared/server/middleware"
	"applyai-backend/internal/shared/server/respond"
)

const maxUploadSize = 10 << 20 // 10MB

// Handler wires HTTP handlers to the service.
type Handler struct {
	Svc *Service
}

// NewHandler constructs a Handler.
func NewHandler(svc *Service) *Handler {
	return &Handler{Svc: svc}
}

// RegisterRoutes attaches resume routes to the router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/resumes", h.upload)
	rg.GET("/resumes", h.list)
	rg.DELETE("/resumes/:name", h.remove)
	rg.GET("/resumes/:name/raw", h.downloadRaw)
}

func (h *Handler) upload(c *gin.Context) {
	ownerID := middleware.OwnerIDFromContext(c)
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxUploadSize)

	form, err := c.MultipartForm()
	if err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "multipart form is required", nil)
		return
	}

	files := form.File["files"]
	if len(files) == 0 {
		files = form.File["file"]
	}
	if len(files) == 0 {
		respond.Error(c, http.StatusBadRequest, "validation_error", "file is required", nil)
		return
	}

	// Batches are processed one file at a time; each success is persisted
	// before the next file is touched.
	created := make([]resumeResponse, 0, len(files))
	for _, fileHeader := range files {
		resume, err := h.uploadOne(c, ownerID, fileHeader)
		if err != nil {
			h.respondUploadError(c, fileHeader.Filename, err)
			return
		}
		created = append(created, toResponse(resume))
	}

	respond.JSON(c, http.StatusCreated, gin.H{"resumes": created})
}

func (h *Handler) uploadOne(c *gin.Context, ownerID string, fileHeader *multipart.FileHeader) (Resume, error) {
	file, err := fileHeader.Open()
	if err != nil {
		return Resume{}, ErrInvalidInput
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		return Resume{}, ErrInvalidInput
	}

	declaredType := fileHeader.Header.Get("Content-Type")
	if _, ok := normalize.FormatFromMime(declaredType); !ok {
		// Clients that send no useful part type still name the file.
		if byName := normalize.TypeFromName(fileHeader.Filename); byName != "" {
			declaredType = byName
		}
	}
	return h.Svc.Upload(c.Request.Context(), ownerID, fileHeader.Filename, declaredType, data)
}

func (h *Handler) respondUploadError(c *gin.Context, fileName string, err error) {
	switch {
	case errors.Is(err, ErrUnsupportedType):
		respond.Error(c, http.StatusBadRequest, "validation_error", "unsupported file type", gin.H{"file": fileName})
	case errors.Is(err, ErrInvalidInput):
		respond.Error(c, http.StatusBadRequest, "validation_error", "unable to read file", gin.H{"file": fileName})
	case errors.Is(err, normalize.ErrUnsupportedFormat):
		respond.Error(c, http.StatusBadRequest, "validation_error", "unsupported file type", gin.H{"file": fileName})
	case errors.Is(err, normalize.ErrEmptyContent), errors.Is(err, normalize.ErrCorruptDocument):
		respond.Error(c, http.StatusUnprocessableEntity, "unreadable_document", "could not read this document", gin.H{"file": fileName})
	default:
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to save resume", nil)
	}
}

func (h *Handler) list(c *gin.Context) {
	ownerID := middleware.OwnerIDFromContext(c)

	items, err := h.Svc.List(c.Request.Context(), ownerID)
	if err != nil {
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to list resumes", nil)
		return
	}
	respond.OK(c, gin.H{"resumes": toResponses(items)})
}

func (h *Handler) remove(c *gin.Context) {
	ownerID := middleware.OwnerIDFromContext(c)
	name := c.Param("name")

	if err := h.Svc.Delete(c.Request.Context(), ownerID, name); err != nil {
		if errors.Is(err, ErrInvalidInput) {
			respond.Error(c, http.StatusBadRequest, "validation_error", "name is required", nil)
			return
		}
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to delete resume", nil)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *Handler) downloadRaw(c *gin.Context) {
	ownerID := middleware.OwnerIDFromContext(c)
	name := c.Param("name")

	rc, resume, err := h.Svc.OpenRaw(c.Request.Context(), ownerID, name)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			respond.Error(c, http.StatusNotFound, "not_found", "resume not found", nil)
			return
		}
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to open resume", nil)
		return
	}
	defer rc.Close()

	c.Header("Content-Disposition", `attachment; filename="`+resume.Name+`"`)
	c.Status(http.StatusOK)
	if _, err := io.Copy(c.Writer, rc); err != nil {
		// Headers already sent; nothing useful left to do.
		return
	}
}
