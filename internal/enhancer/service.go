// internal/enhancer/service.go
package enhancer

import (
	"context"
	"errors"
	"strings"
	"time"

	commonerrors "github.com/skanenje/prompt-enhancer/internal/common/errors"
	"github.com/skanenje/prompt-enhancer/internal/common/logger"
	"github.com/skanenje/prompt-enhancer/internal/common/observability"
	"github.com/skanenje/prompt-enhancer/internal/core/analyzer"
	"github.com/skanenje/prompt-enhancer/internal/core/evaluator"
	"github.com/skanenje/prompt-enhancer/internal/core/selector"
	"github.com/skanenje/prompt-enhancer/internal/core/synthesizer"
	"github.com/skanenje/prompt-enhancer/internal/store"
)

// suggestionCount is how many ranked frameworks accompany each response.
const suggestionCount = 3

// Input is the transport-agnostic enhancement request.
type Input struct {
	Prompt         string
	FrameworkID    string
	FieldOverrides map[string]string
	Explain        bool
}

// Output composes the full pipeline result.
type Output struct {
	SelectedFramework string
	EnhancedPrompt    string
	Quality           *evaluator.Metrics
	QualityNotes      []string
	Explain           []string
	Suggestions       []selector.Score
	Analysis          *analyzer.Analysis
}

// Service wires Analyzer → Selector → Synthesizer → Evaluator. Each request
// is an independent synchronous chain; the only shared state is the
// read-mostly framework store.
type Service struct {
	store       store.Store
	analyzer    *analyzer.Analyzer
	selector    *selector.Selector
	synthesizer *synthesizer.Synthesizer
	evaluator   *evaluator.Evaluator
	defaultID   string
	logger      logger.Logger
	obs         *observability.Observability
}

func New(st store.Store, an *analyzer.Analyzer, sel *selector.Selector, syn *synthesizer.Synthesizer, ev *evaluator.Evaluator, defaultID string, log logger.Logger, obs *observability.Observability) *Service {
	return &Service{
		store:       st,
		analyzer:    an,
		selector:    sel,
		synthesizer: syn,
		evaluator:   ev,
		defaultID:   defaultID,
		logger:      log.WithFields(map[string]interface{}{"component": "enhancer"}),
		obs:         obs,
	}
}

func (s *Service) Enhance(ctx context.Context, input *Input) (*Output, error) {
	started := time.Now()

	if strings.TrimSpace(input.Prompt) == "" {
		return nil, commonerrors.NewInvalidRequestError("prompt is required")
	}

	analysis := s.analyzer.Analyze(input.Prompt)

	var suggestions []selector.Score
	frameworkID := input.FrameworkID
	if frameworkID == "" {
		ranked, err := s.selector.Suggest(ctx, analysis, suggestionCount)
		if err != nil {
			s.record(ctx, started, "error")
			return nil, commonerrors.NewFrameworkStoreError(err.Error())
		}
		suggestions = ranked
		if len(ranked) > 0 {
			frameworkID = ranked[0].ID
		} else {
			frameworkID = s.defaultID
		}
	}

	fw, err := s.store.Get(ctx, frameworkID)
	if err != nil {
		s.record(ctx, started, "not_found")
		if errors.Is(err, store.ErrNotFound) {
			return nil, commonerrors.NewFrameworkNotFoundError(frameworkID)
		}
		return nil, commonerrors.NewFrameworkStoreError(err.Error())
	}

	synth := s.synthesizer.Synthesize(ctx, input.Prompt, fw, input.FieldOverrides, input.Explain)
	quality, notes := s.evaluator.Score(synth.Text, fw, analysis)

	s.logger.Info("prompt enhanced", map[string]interface{}{
		"frameworkId": fw.ID,
		"explicit":    input.FrameworkID != "",
		"overall":     quality.Overall,
		"durationMs":  time.Since(started).Milliseconds(),
	})
	s.record(ctx, started, "ok")

	out := &Output{
		SelectedFramework: fw.ID,
		EnhancedPrompt:    synth.Text,
		Quality:           quality,
		QualityNotes:      notes,
		Explain:           synth.Diagnostics,
		Suggestions:       suggestions,
	}
	if input.Explain {
		out.Analysis = analysis
	}
	return out, nil
}

// Analyze exposes the raw analyzer for the debug surface.
func (s *Service) Analyze(prompt string) *analyzer.Analysis {
	return s.analyzer.Analyze(prompt)
}

// InferPreview runs field inference for every declared field of a framework
// without synthesizing, for the debug surface.
func (s *Service) InferPreview(ctx context.Context, frameworkID, prompt string) (*store.Framework, map[string]string, error) {
	fw, err := s.store.Get(ctx, frameworkID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, nil, commonerrors.NewFrameworkNotFoundError(frameworkID)
		}
		return nil, nil, commonerrors.NewFrameworkStoreError(err.Error())
	}

	result := s.synthesizer.Synthesize(ctx, prompt, fw, nil, false)
	return fw, result.FillMap, nil
}

func (s *Service) record(ctx context.Context, started time.Time, status string) {
	if s.obs == nil {
		return
	}
	s.obs.RecordEnhance(ctx, status)
	s.obs.RecordEnhanceDuration(ctx, time.Since(started), status)
}
