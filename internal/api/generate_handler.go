package api

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"resuminator/internal/api/middleware"
	"resuminator/internal/errcode"
)

// Generator drafts résumé text from a free-form prompt.
type Generator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// GenerateHandler proxies prompts to the text-generation service. It keeps
// no state and performs no session check: the endpoint is a passthrough.
type GenerateHandler struct {
	generator Generator
	timeout   time.Duration
}

// NewGenerateHandler constructs the handler with a per-call deadline.
func NewGenerateHandler(generator Generator, timeout time.Duration) *GenerateHandler {
	return &GenerateHandler{generator: generator, timeout: timeout}
}

type generateRequest struct {
	Prompt string `json:"prompt" binding:"required"`
}

// Generate forwards the prompt and returns the generated text verbatim.
func (h *GenerateHandler) Generate(c *gin.Context) {
	var req generateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, err.Error())
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), h.timeout)
	defer cancel()

	text, err := h.generator.Generate(ctx, req.Prompt)
	if err != nil {
		middleware.LoggerFromContext(c).Error("resume generation failed", slog.Any("error", err))
		Error(c, http.StatusInternalServerError, errcode.GenerationFailed, "failed to generate resume")
		return
	}

	c.JSON(http.StatusOK, gin.H{"resume": text})
}
