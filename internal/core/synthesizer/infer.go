// internal/core/synthesizer/infer.go
package synthesizer

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	commonerrors "github.com/skanenje/prompt-enhancer/internal/common/errors"
	"github.com/skanenje/prompt-enhancer/internal/genai"
)

// maxInferredLength rejects model answers that echo whole documents instead
// of a single field value.
const maxInferredLength = 200

var (
	topicPatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?i)learn about\s+(.+)`),
		regexp.MustCompile(`(?i)understand\s+(.+)`),
		regexp.MustCompile(`(?i)explain\s+(.+)`),
		regexp.MustCompile(`(?i)about\s+(.+)`),
	}

	// Trailing clauses cut off an extracted topic: "machine learning to a
	// student in 5 minutes" becomes "machine learning".
	topicCutoff = regexp.MustCompile(`\s+(?:to|for|in|within|by)\s+.*$`)
)

// extractTopic pulls a topic phrase out of the prompt. Approximate by
// design: multi-clause prompts and non-English text defeat it, in which
// case ok is false and callers use the raw prompt.
func extractTopic(prompt string) (string, bool) {
	for _, pattern := range topicPatterns {
		if m := pattern.FindStringSubmatch(prompt); m != nil {
			topic := strings.TrimSpace(m[1])
			topic = topicCutoff.ReplaceAllString(topic, "")
			topic = strings.Trim(topic, " .,!?")
			if topic != "" {
				return strings.ToLower(topic), true
			}
		}
	}
	return "", false
}

// inferField resolves a value for one declared field, trying the external
// model first and falling back to the local heuristic table. It never
// returns an error; every model failure degrades to the next tier. fromModel
// reports whether the model tier supplied the value, in which case it has
// already written the trail entry.
func (s *Synthesizer) inferField(ctx context.Context, fieldName, fieldDesc, prompt string, diag *[]string) (value string, fromModel bool) {
	if s.model != nil {
		value, err := s.model.GenerateContent(ctx, buildExtractionPrompt(fieldName, fieldDesc, prompt))
		if err == nil {
			value = strings.TrimSpace(value)
			switch {
			case value == "":
				s.recordModel(ctx, outcomeLabel(commonerrors.ErrCodeModelQualityRejected))
				*diag = append(*diag, fmt.Sprintf("Model returned no value for %s; using heuristic", fieldName))
			case len(value) > maxInferredLength:
				s.recordModel(ctx, outcomeLabel(commonerrors.ErrCodeModelQualityRejected))
				*diag = append(*diag, fmt.Sprintf("Model value for %s rejected (too long); using heuristic", fieldName))
			default:
				s.recordModel(ctx, "ok")
				*diag = append(*diag, fmt.Sprintf("Inferred %s from model: '%s'", fieldName, value))
				return value, true
			}
		} else {
			s.recordModel(ctx, outcomeLabel(genai.Code(err)))
			*diag = append(*diag, fmt.Sprintf("Model unavailable for %s; using heuristic", fieldName))
		}
	}

	return s.heuristicField(fieldName, prompt), false
}

func buildExtractionPrompt(fieldName, fieldDesc, prompt string) string {
	desc := ""
	if fieldDesc != "" {
		desc = fmt.Sprintf(" (%s)", fieldDesc)
	}
	return fmt.Sprintf(
		"Extract a concise value for the field %q%s from the user prompt below. Respond with only the value, no explanation.\n\nUser prompt: %s",
		fieldName, desc, prompt)
}

// heuristicField is the local inference table keyed by normalized field
// name. Unknown fields get the extracted topic verbatim.
func (s *Synthesizer) heuristicField(fieldName, prompt string) string {
	l := strings.ToLower(prompt)
	topic, hasTopic := extractTopic(prompt)
	if !hasTopic {
		topic = strings.TrimSpace(l)
	}

	switch strings.ToLower(strings.TrimSpace(fieldName)) {
	case "action", "task":
		return "explain " + topic
	case "purpose", "objective", "goal":
		return "to build a clear understanding of " + topic
	case "context", "situation":
		return "the user wants to learn about " + topic
	case "expectation":
		return "a clear, practical explanation of " + topic
	case "role":
		return "an expert on " + topic
	case "audience":
		if strings.Contains(l, "student") || strings.Contains(l, "class") || strings.Contains(l, "lecture") {
			return "students"
		}
		if strings.Contains(l, "linkedin") || strings.Contains(l, "twitter") || strings.Contains(l, "post") {
			return "a professional audience"
		}
		return "a general audience"
	case "tone", "emotion":
		if strings.Contains(l, "urgent") || strings.Contains(l, "asap") || strings.Contains(l, "immediately") {
			return "urgent"
		}
		if strings.Contains(l, "fun") || strings.Contains(l, "casual") || strings.Contains(l, "playful") {
			return "casual"
		}
		return "neutral"
	case "length":
		for _, w := range []string{"short", "brief", "one paragraph", "tweet", "subject"} {
			if strings.Contains(l, w) {
				return "short"
			}
		}
		return "medium"
	default:
		return topic
	}
}
