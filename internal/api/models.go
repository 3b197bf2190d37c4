// internal/api/models.go
package api

import (
	"github.com/skanenje/prompt-enhancer/internal/core/analyzer"
	"github.com/skanenje/prompt-enhancer/internal/core/evaluator"
	"github.com/skanenje/prompt-enhancer/internal/core/selector"
	"github.com/skanenje/prompt-enhancer/internal/store"
)

// EnhanceRequest is the /api/enhance input shape.
type EnhanceRequest struct {
	Prompt      string            `json:"prompt" binding:"required"`
	FrameworkID string            `json:"framework_id,omitempty"`
	Fields      map[string]string `json:"fields,omitempty"`
	Explain     bool              `json:"explain,omitempty"`
}

// EnhanceResponse is the /api/enhance output shape.
type EnhanceResponse struct {
	SelectedFramework string             `json:"selected_framework"`
	EnhancedPrompt    string             `json:"enhanced_prompt"`
	Quality           *evaluator.Metrics `json:"quality"`
	QualityNotes      []string           `json:"quality_notes,omitempty"`
	Explain           []string           `json:"explain,omitempty"`
	Suggestions       []selector.Score   `json:"suggestions,omitempty"`
	Analysis          *analyzer.Analysis `json:"analysis,omitempty"`
}

// FrameworkListResponse wraps the framework listing.
type FrameworkListResponse struct {
	Frameworks []store.Summary `json:"frameworks"`
}

// DebugAnalyzeRequest / DebugInferRequest back the debug surface.
type DebugAnalyzeRequest struct {
	Prompt string `json:"prompt" binding:"required"`
}

type DebugInferRequest struct {
	Prompt      string `json:"prompt" binding:"required"`
	FrameworkID string `json:"framework_id" binding:"required"`
}

type DebugInferResponse struct {
	Prompt     string            `json:"prompt"`
	Framework  string            `json:"framework"`
	Template   string            `json:"template"`
	Inferences map[string]string `json:"inferences"`
}

// ErrorResponse is the uniform error envelope.
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Details string `json:"details,omitempty"`
}
