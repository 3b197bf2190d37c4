// internal/core/evaluator/evaluator.go
package evaluator

import (
	"math"
	"regexp"
	"strings"

	"github.com/skanenje/prompt-enhancer/internal/core/analyzer"
	"github.com/skanenje/prompt-enhancer/internal/store"
)

// Metrics holds the four independent quality sub-scores, each clamped to
// [0,10], plus their arithmetic mean.
type Metrics struct {
	Clarity         float64 `json:"clarity"`
	Specificity     float64 `json:"specificity"`
	ContextRichness float64 `json:"context_richness"`
	Actionability   float64 `json:"actionability"`
	Overall         float64 `json:"overall"`
}

var (
	actionVerbs = []string{
		"explain", "design", "create", "summarize", "generate", "write",
		"compare", "analyze", "recommend", "build", "develop", "implement",
	}
	contextIndicators = []string{
		"because", "since", "given", "considering", "context", "background", "situation",
	}
	ambiguousWords  = []string{"something", "anything", "maybe", "perhaps", "might"}
	audienceWords   = []string{"audience", "user", "student", "developer", "manager", "customer"}
	formatWords     = []string{"format", "style", "tone", "length", "bullet", "paragraph"}
	imperativeWords = []string{"create", "write", "generate", "build", "design", "develop"}
	successWords    = []string{"should", "must", "ensure", "verify", "check", "validate"}
	measurableWords = []string{"measure", "count", "rate", "score", "percentage", "number"}
	sequenceWords   = []string{"first", "then", "next", "finally", "step"}
	constraintWords = []string{"within", "limit", "maximum", "minimum", "constraint"}

	digitPattern = regexp.MustCompile(`\b\d+\b`)
	timePatterns = []*regexp.Regexp{
		regexp.MustCompile(`\b(daily|weekly|monthly|annually)\b`),
		regexp.MustCompile(`\b(before|after|by|until)\b`),
	}
)

// Evaluator scores an enhanced prompt along independent quality axes.
// Pure and deterministic; no external calls.
type Evaluator struct{}

func New() *Evaluator {
	return &Evaluator{}
}

// Score computes the four sub-scores and the notes explaining which rules
// fired. The framework is part of the contract for future weighting but
// does not influence the current rules.
func (e *Evaluator) Score(enhanced string, _ *store.Framework, parsed *analyzer.Analysis) (*Metrics, []string) {
	text := strings.ToLower(enhanced)
	notes := []string{}

	clarity := e.scoreClarity(text, &notes)
	specificity := e.scoreSpecificity(text, &notes)
	contextRichness := e.scoreContextRichness(text, parsed, &notes)
	actionability := e.scoreActionability(text, &notes)

	overall := (clarity + specificity + contextRichness + actionability) / 4

	return &Metrics{
		Clarity:         round2(clarity),
		Specificity:     round2(specificity),
		ContextRichness: round2(contextRichness),
		Actionability:   round2(actionability),
		Overall:         round2(overall),
	}, notes
}

func (e *Evaluator) scoreClarity(text string, notes *[]string) float64 {
	score := 0.0

	if containsAny(text, actionVerbs) {
		score += 4.0
		*notes = append(*notes, "Contains clear action verb")
	} else {
		*notes = append(*notes, "Missing explicit action verb")
	}

	sentences := strings.Split(text, ".")
	if len(sentences) > 1 && len(sentences) < 5 {
		score += 2.0
		*notes = append(*notes, "Well-structured sentences")
	}

	if !containsAny(text, ambiguousWords) {
		score += 2.0
	} else {
		*notes = append(*notes, "Contains ambiguous language")
	}

	if strings.Count(text, "?") <= 1 {
		score += 2.0
	}

	return math.Min(10, score)
}

func (e *Evaluator) scoreSpecificity(text string, notes *[]string) float64 {
	score := 0.0

	if digitPattern.MatchString(text) {
		score += 3.0
		*notes = append(*notes, "Contains numeric specificity")
	}

	for _, pattern := range timePatterns {
		if pattern.MatchString(text) {
			score += 2.0
			*notes = append(*notes, "Includes time constraints")
			break
		}
	}

	if containsAny(text, audienceWords) {
		score += 2.0
		*notes = append(*notes, "Specifies target audience")
	}

	if containsAny(text, formatWords) {
		score += 2.0
		*notes = append(*notes, "Includes format requirements")
	}

	longWords := 0
	for _, w := range strings.Fields(text) {
		if len(w) > 8 {
			longWords++
		}
	}
	if longWords > 2 {
		score += 1.0
		*notes = append(*notes, "Contains domain-specific terminology")
	}

	return math.Min(10, score)
}

func (e *Evaluator) scoreContextRichness(text string, parsed *analyzer.Analysis, notes *[]string) float64 {
	score := 0.0

	if containsAny(text, contextIndicators) {
		score += 3.0
		*notes = append(*notes, "Provides contextual background")
	}

	if parsed != nil && parsed.Linguistics != nil && len(parsed.Linguistics.Entities) > 0 {
		score += 2.0
		*notes = append(*notes, "Contains specific entities")
	}

	wordCount := len(strings.Fields(text))
	if wordCount > 20 {
		score += 2.0
	} else if wordCount > 10 {
		score += 1.0
	}

	if parsed != nil && parsed.Linguistics != nil && len(parsed.Linguistics.Subjects) > 1 {
		score += 1.5
	}

	if parsed != nil && len(parsed.Domains) > 0 {
		score += 1.5
		*notes = append(*notes, "Demonstrates domain knowledge")
	}

	return math.Min(10, score)
}

func (e *Evaluator) scoreActionability(text string, notes *[]string) float64 {
	score := 0.0

	if containsAny(text, imperativeWords) {
		score += 3.0
		*notes = append(*notes, "Uses imperative mood")
	}

	if containsAny(text, successWords) {
		score += 2.0
		*notes = append(*notes, "Includes success criteria")
	}

	if containsAny(text, measurableWords) {
		score += 2.0
		*notes = append(*notes, "Defines measurable outcomes")
	}

	if containsAny(text, sequenceWords) {
		score += 2.0
		*notes = append(*notes, "Provides step-by-step guidance")
	}

	if containsAny(text, constraintWords) {
		score += 1.0
	}

	return math.Min(10, score)
}

func containsAny(text string, words []string) bool {
	for _, w := range words {
		if strings.Contains(text, w) {
			return true
		}
	}
	return false
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
