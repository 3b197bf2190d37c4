// internal/core/synthesizer/synthesizer.go
package synthesizer

import (
	"context"
	"fmt"
	"sort"
	"strings"

	commonerrors "github.com/skanenje/prompt-enhancer/internal/common/errors"
	"github.com/skanenje/prompt-enhancer/internal/common/logger"
	"github.com/skanenje/prompt-enhancer/internal/genai"
	"github.com/skanenje/prompt-enhancer/internal/store"
)

// minEnhanceWords gates the final AI pass: very short prompts gain nothing.
const minEnhanceWords = 5

// Result is the synthesized prompt plus the ordered diagnostic trail. The
// trail explains every decision for transparency; it is never used for
// control flow.
type Result struct {
	Text        string            `json:"text"`
	Diagnostics []string          `json:"diagnostics"`
	FillMap     map[string]string `json:"fillMap,omitempty"`
}

// ModelCallRecorder observes the outcome of every external model call.
// Satisfied by *observability.Observability; nil disables recording.
type ModelCallRecorder interface {
	RecordModelCall(ctx context.Context, outcome string)
}

// Synthesizer fills a framework's declared fields with supplied or inferred
// values, naturalizes the filled template, and optionally delegates a final
// enhancement pass to the external model. model may be nil; every tier then
// runs on local heuristics.
type Synthesizer struct {
	model  genai.Client
	obs    ModelCallRecorder
	logger logger.Logger
}

func New(model genai.Client, obs ModelCallRecorder, log logger.Logger) *Synthesizer {
	return &Synthesizer{
		model:  model,
		obs:    obs,
		logger: log.WithFields(map[string]interface{}{"component": "synthesizer"}),
	}
}

func (s *Synthesizer) Synthesize(ctx context.Context, prompt string, fw *store.Framework, overrides map[string]string, explain bool) *Result {
	diag := []string{}

	// Every declared field gets an entry, possibly empty.
	fillMap := make(map[string]string, len(fw.Fields))
	for _, fieldName := range sortedFieldNames(fw.Fields) {
		if v, ok := overrides[fieldName]; ok && v != "" {
			fillMap[fieldName] = v
			diag = append(diag, fmt.Sprintf("Using override for %s: '%s'", fieldName, v))
			continue
		}

		inferred, fromModel := s.inferField(ctx, fieldName, fw.Fields[fieldName], prompt, &diag)
		fillMap[fieldName] = inferred
		switch {
		case fromModel:
			// The model tier already recorded its own trail entry.
		case inferred != "":
			diag = append(diag, fmt.Sprintf("Inferred %s: '%s'", fieldName, inferred))
		default:
			diag = append(diag, fmt.Sprintf("No value for %s; left blank", fieldName))
		}
	}

	raw, fillErr := fillTemplate(fw.Template, fillMap)
	if fillErr != nil {
		// Malformed framework: degrade to appending the field values
		// after the original prompt instead of failing the request.
		parts := []string{}
		for _, k := range sortedFieldNames(fillMap) {
			if fillMap[k] != "" {
				parts = append(parts, fmt.Sprintf("%s: %s", k, fillMap[k]))
			}
		}
		raw = strings.TrimSpace(prompt + " " + strings.Join(parts, " "))
		diag = append(diag, fmt.Sprintf("Template fill failed (%v); appended field values to prompt", fillErr))
	}

	final := Naturalize(raw)
	if explain {
		diag = append(diag, "Naturalized final prompt.")
	}

	final = s.enhance(ctx, final, &diag)

	s.logger.Debug("synthesis complete", map[string]interface{}{
		"frameworkId": fw.ID,
		"fields":      len(fillMap),
		"finalLength": len(final),
	})

	return &Result{Text: final, Diagnostics: diag, FillMap: fillMap}
}

// fillTemplate replaces {Placeholder} slots from the fill map. Any
// placeholder without a corresponding field makes the whole fill fail so
// the caller can take the append fallback, mirroring an all-or-nothing
// format.
func fillTemplate(template string, fillMap map[string]string) (string, error) {
	for _, m := range placeholderPattern.FindAllString(template, -1) {
		name := strings.TrimSpace(m[1 : len(m)-1])
		if _, ok := fillMap[name]; !ok {
			return "", commonerrors.NewTemplateFillError(name)
		}
	}

	out := template
	for name, value := range fillMap {
		out = strings.ReplaceAll(out, "{"+name+"}", value)
	}
	return out, nil
}

// enhance runs the final AI pass when the text is long enough and a model
// is configured. Output shorter than half the input is treated as a
// degenerate completion and discarded.
func (s *Synthesizer) enhance(ctx context.Context, text string, diag *[]string) string {
	if s.model == nil {
		return text
	}
	if len(strings.Fields(text)) <= minEnhanceWords {
		*diag = append(*diag, "AI enhancement skipped (prompt too short)")
		return text
	}

	improved, err := s.model.GenerateContent(ctx,
		"Improve the clarity and specificity of the following prompt while preserving its intent. Return only the improved prompt.\n\n"+text)
	if err != nil {
		s.recordModel(ctx, outcomeLabel(genai.Code(err)))
		*diag = append(*diag, "AI enhancement unavailable; keeping naturalized prompt")
		return text
	}

	improved = strings.TrimSpace(improved)
	if len(improved) < len(text)/2 {
		s.recordModel(ctx, outcomeLabel(commonerrors.ErrCodeModelQualityRejected))
		*diag = append(*diag, "AI enhancement rejected (output too short); keeping naturalized prompt")
		return text
	}

	s.recordModel(ctx, "ok")
	*diag = append(*diag, "AI enhancement applied")
	return Naturalize(improved)
}

func (s *Synthesizer) recordModel(ctx context.Context, outcome string) {
	if s.obs != nil {
		s.obs.RecordModelCall(ctx, outcome)
	}
}

// outcomeLabel turns a model error code into its metric label, for example
// MODEL_TIMEOUT becomes "timeout".
func outcomeLabel(code commonerrors.ErrorCode) string {
	return strings.TrimPrefix(strings.ToLower(string(code)), "model_")
}

func sortedFieldNames(m map[string]string) []string {
	names := make([]string, 0, len(m))
	for k := range m {
		names = append(names, k)
	}
	sort.Strings(names)
	return names
}
