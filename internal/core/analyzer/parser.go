// internal/core/analyzer/parser.go
package analyzer

import (
	"math"
	"regexp"
	"strings"
)

// Parser is the optional syntactic capability. The bundled HeuristicParser
// is a regex stand-in for a real NLP pipeline; swap in something heavier
// behind the same interface when the quality matters.
type Parser interface {
	Parse(text string) *Linguistics
}

var (
	sentenceSplit = regexp.MustCompile(`[.!?]+`)
	tokenSplit    = regexp.MustCompile(`[a-zA-Z0-9']+`)

	pronouns = map[string]bool{
		"i": true, "we": true, "you": true, "he": true,
		"she": true, "they": true, "it": true,
	}

	// Verbs that open an imperative sentence. Broader than the analyzer
	// vocabularies on purpose: parsing is best-effort.
	imperativeVerbs = map[string]bool{
		"explain": true, "teach": true, "summarize": true, "describe": true,
		"define": true, "analyze": true, "compare": true, "evaluate": true,
		"create": true, "write": true, "generate": true, "build": true,
		"design": true, "develop": true, "plan": true, "list": true,
		"make": true, "give": true, "show": true,
	}

	prepositions = map[string]bool{
		"about": true, "of": true, "for": true, "on": true, "regarding": true,
	}
)

// HeuristicParser approximates sentence segmentation, entity detection and
// subject/object extraction without any model. Known failure modes:
// multi-clause sentences, abbreviations with periods, non-English text.
type HeuristicParser struct{}

func NewHeuristicParser() *HeuristicParser {
	return &HeuristicParser{}
}

func (p *HeuristicParser) Parse(text string) *Linguistics {
	ling := &Linguistics{
		Entities:  []Entity{},
		Sentences: []string{},
		Subjects:  []string{},
		Objects:   []string{},
	}

	for _, raw := range sentenceSplit.Split(text, -1) {
		s := strings.TrimSpace(raw)
		if s != "" {
			ling.Sentences = append(ling.Sentences, s)
		}
	}

	allTokens := strings.Fields(text)
	wordTokens := tokenSplit.FindAllString(text, -1)

	totalWords := 0
	for _, sentence := range ling.Sentences {
		tokens := strings.Fields(sentence)
		totalWords += len(tokens)
		if len(tokens) == 0 {
			continue
		}

		first := strings.ToLower(strings.Trim(tokens[0], ",;:"))
		if imperativeVerbs[first] {
			ling.ImperativeCount++
		}
		if pronouns[first] {
			ling.Subjects = append(ling.Subjects, first)
		}

		// Capitalized spans past the first token are treated as proper
		// noun entities.
		span := []string{}
		flush := func() {
			if len(span) > 0 {
				ling.Entities = append(ling.Entities, Entity{
					Text:  strings.Join(span, " "),
					Label: "PROPN",
				})
				span = span[:0]
			}
		}
		for i, tok := range tokens {
			clean := strings.Trim(tok, ".,;:!?\"'")
			if i > 0 && clean != "" && isCapitalized(clean) {
				span = append(span, clean)
			} else {
				flush()
			}
		}
		flush()

		// A token following a preposition is a rough object candidate.
		for i, tok := range tokens[:len(tokens)-1] {
			if prepositions[strings.ToLower(strings.Trim(tok, ".,;:"))] {
				obj := strings.ToLower(strings.Trim(tokens[i+1], ".,;:!?"))
				if obj != "" {
					ling.Objects = append(ling.Objects, obj)
				}
			}
		}
	}

	if len(ling.Sentences) > 0 {
		ling.AvgSentenceLength = float64(totalWords) / float64(len(ling.Sentences))
	}

	ling.Complexity = math.Min(10,
		float64(len(allTokens))/10+
			float64(len(ling.Entities))*0.5+
			float64(len(wordTokens))*0.1)

	return ling
}

func isCapitalized(w string) bool {
	r := rune(w[0])
	return r >= 'A' && r <= 'Z'
}
