// internal/api/handlers.go
package api

import (
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	commonerrors "github.com/skanenje/prompt-enhancer/internal/common/errors"
	"github.com/skanenje/prompt-enhancer/internal/common/logger"
	"github.com/skanenje/prompt-enhancer/internal/enhancer"
	"github.com/skanenje/prompt-enhancer/internal/store"
)

// maxUploadBytes bounds framework definition uploads.
const maxUploadBytes = 64 * 1024

type Handler struct {
	service *enhancer.Service
	store   store.Store
	logger  logger.Logger
}

func NewHandler(service *enhancer.Service, st store.Store, log logger.Logger) *Handler {
	return &Handler{
		service: service,
		store:   st,
		logger:  log.WithFields(map[string]interface{}{"component": "api"}),
	}
}

func (h *Handler) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (h *Handler) ListFrameworks(c *gin.Context) {
	items, err := h.store.List(c.Request.Context())
	if err != nil {
		h.writeError(c, commonerrors.NewFrameworkStoreError(err.Error()))
		return
	}
	c.JSON(http.StatusOK, FrameworkListResponse{Frameworks: items})
}

func (h *Handler) GetFramework(c *gin.Context) {
	fw, err := h.store.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		if err == store.ErrNotFound {
			h.writeError(c, commonerrors.NewFrameworkNotFoundError(c.Param("id")))
			return
		}
		h.writeError(c, commonerrors.NewFrameworkStoreError(err.Error()))
		return
	}
	c.JSON(http.StatusOK, fw)
}

// UploadFramework accepts a raw framework definition JSON body, validates
// it against the schema, and writes it with an atomic replace so it is
// visible to the next lookup.
func (h *Handler) UploadFramework(c *gin.Context) {
	body, err := io.ReadAll(io.LimitReader(c.Request.Body, maxUploadBytes))
	if err != nil || len(body) == 0 {
		h.writeError(c, commonerrors.NewInvalidRequestError("request body required"))
		return
	}

	fw, err := h.store.Save(c.Request.Context(), body)
	if err != nil {
		h.writeError(c, commonerrors.NewFrameworkValidationError(err.Error()))
		return
	}

	c.JSON(http.StatusCreated, gin.H{"id": fw.ID, "name": fw.Name})
}

func (h *Handler) Enhance(c *gin.Context) {
	var req EnhanceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.writeError(c, commonerrors.NewInvalidRequestError(err.Error()))
		return
	}

	out, err := h.service.Enhance(c.Request.Context(), &enhancer.Input{
		Prompt:         req.Prompt,
		FrameworkID:    req.FrameworkID,
		FieldOverrides: req.Fields,
		Explain:        req.Explain,
	})
	if err != nil {
		h.writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, EnhanceResponse{
		SelectedFramework: out.SelectedFramework,
		EnhancedPrompt:    out.EnhancedPrompt,
		Quality:           out.Quality,
		QualityNotes:      out.QualityNotes,
		Explain:           out.Explain,
		Suggestions:       out.Suggestions,
		Analysis:          out.Analysis,
	})
}

func (h *Handler) DebugAnalyze(c *gin.Context) {
	var req DebugAnalyzeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.writeError(c, commonerrors.NewInvalidRequestError(err.Error()))
		return
	}
	c.JSON(http.StatusOK, gin.H{"prompt": req.Prompt, "analysis": h.service.Analyze(req.Prompt)})
}

func (h *Handler) DebugInfer(c *gin.Context) {
	var req DebugInferRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.writeError(c, commonerrors.NewInvalidRequestError(err.Error()))
		return
	}

	fw, inferences, err := h.service.InferPreview(c.Request.Context(), req.FrameworkID, req.Prompt)
	if err != nil {
		h.writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, DebugInferResponse{
		Prompt:     req.Prompt,
		Framework:  fw.ID,
		Template:   fw.Template,
		Inferences: inferences,
	})
}

func (h *Handler) writeError(c *gin.Context, err error) {
	if stdErr, ok := commonerrors.AsStandardError(err); ok {
		c.JSON(stdErr.HTTPStatus(), ErrorResponse{
			Code:    string(stdErr.Code),
			Message: stdErr.Message,
			Details: stdErr.Details,
		})
		return
	}

	h.logger.Error("unhandled error", map[string]interface{}{
		"requestId": c.GetString(requestIDKey),
		"error":     err.Error(),
	})
	c.JSON(http.StatusInternalServerError, ErrorResponse{
		Code:    "INTERNAL_ERROR",
		Message: "internal server error",
	})
}
