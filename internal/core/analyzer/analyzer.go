// internal/core/analyzer/analyzer.go
package analyzer

import (
	"regexp"
	"sort"
	"strings"
)

const (
	ToneNeutral = "neutral"
	ToneUrgent  = "urgent"
	ToneCasual  = "casual"

	AudienceMarketing = "marketing"
	AudienceStudent   = "student"
)

var (
	teachVerbs   = []string{"explain", "teach", "summarize", "describe", "define"}
	analyzeVerbs = []string{"analyze", "compare", "evaluate", "diagnose", "inspect"}
	planNouns    = []string{"plan", "goal", "milestone", "roadmap", "strategy"}

	technicalKeywords = []string{"iot", "mqtt", "rest", "api", "docker", "kubernetes", "rust", "go", "python"}

	urgencyKeywords   = []string{"urgent", "asap", "immediately", "now"}
	casualKeywords    = []string{"fun", "playful", "casual", "joking"}
	marketingKeywords = []string{"linkedin", "post", "twitter", "subject line"}
	studentKeywords   = []string{"student", "class", "lecture"}

	wordPattern = regexp.MustCompile(`[a-zA-Z]+`)
)

// Analyzer extracts shallow linguistic signals from raw text. It is a pure
// function of its input and never fails; empty or non-English input yields
// best-effort defaults. An optional Parser adds the Linguistics block.
type Analyzer struct {
	parser Parser
}

// New creates an Analyzer. parser may be nil, in which case analysis
// results omit the Linguistics block entirely.
func New(parser Parser) *Analyzer {
	return &Analyzer{parser: parser}
}

func (a *Analyzer) Analyze(text string) *Analysis {
	textL := strings.ToLower(text)
	tokens := wordPattern.FindAllString(textL, -1)

	verbSet := map[string]bool{}
	nounSet := map[string]bool{}
	for _, tok := range tokens {
		if containsWord(teachVerbs, tok) || containsWord(analyzeVerbs, tok) {
			verbSet[tok] = true
		}
		if containsWord(planNouns, tok) {
			nounSet[tok] = true
		}
	}

	domains := make([]string, 0)
	for _, kw := range technicalKeywords {
		if strings.Contains(textL, kw) {
			domains = append(domains, kw)
		}
	}

	// Tone rules are evaluated in declaration order and the last match
	// wins: a prompt that is both urgent and playful comes out casual.
	tone := ToneNeutral
	if containsAny(textL, urgencyKeywords) {
		tone = ToneUrgent
	}
	if containsAny(textL, casualKeywords) {
		tone = ToneCasual
	}

	// Same last-rule-wins ordering for audience: student beats marketing.
	audience := ""
	if containsAny(textL, marketingKeywords) {
		audience = AudienceMarketing
	}
	if containsAny(textL, studentKeywords) {
		audience = AudienceStudent
	}

	result := &Analysis{
		Raw:       text,
		Verbs:     setToSlice(verbSet),
		Nouns:     setToSlice(nounSet),
		Domains:   domains,
		Tone:      tone,
		Audience:  audience,
		WordCount: len(strings.Fields(text)),
		CharCount: len(text),
	}

	if a.parser != nil {
		result.Linguistics = a.parser.Parse(text)
	}

	return result
}

func containsAny(text string, keywords []string) bool {
	for _, kw := range keywords {
		if strings.Contains(text, kw) {
			return true
		}
	}
	return false
}

func containsWord(words []string, w string) bool {
	for _, candidate := range words {
		if candidate == w {
			return true
		}
	}
	return false
}

func setToSlice(set map[string]bool) []string {
	out := make([]string, 0, len(set))
	for w := range set {
		out = append(out, w)
	}
	sort.Strings(out)
	return out
}
