// internal/core/selector/selector.go
package selector

import (
	"context"
	"math"
	"sort"
	"strings"

	"github.com/skanenje/prompt-enhancer/internal/core/analyzer"
	"github.com/skanenje/prompt-enhancer/internal/store"
)

// Score ranks one framework against an analysis. Scores are additive rule
// sums used only for ordering; nothing is persisted.
type Score struct {
	ID    string  `json:"id"`
	Name  string  `json:"name"`
	Score float64 `json:"score"`
}

var (
	teachingTriggers = []string{"explain", "teach", "summarize"}
	planningTriggers = []string{"plan", "goal", "strategy", "roadmap"}
	problemTriggers  = []string{"problem", "issue", "fix", "solve", "troubleshoot", "error", "bug"}
)

// Selector is a rule-based framework ranker. Embedding-based matching can
// replace the rule table behind the same Suggest contract.
type Selector struct {
	store store.Store
}

func New(st store.Store) *Selector {
	return &Selector{store: st}
}

// Suggest scores every known framework against the analysis and returns up
// to topN results, best first. A framework is never excluded for scoring
// zero; ties keep the store's enumeration order.
func (s *Selector) Suggest(ctx context.Context, parsed *analyzer.Analysis, topN int) ([]Score, error) {
	available, err := s.store.List(ctx)
	if err != nil {
		return nil, err
	}

	scored := make([]Score, 0, len(available))
	for _, f := range available {
		scored = append(scored, Score{
			ID:    f.ID,
			Name:  f.Name,
			Score: round3(s.scoreForFramework(parsed, f.ID)),
		})
	}

	sort.SliceStable(scored, func(i, j int) bool { return scored[i].Score > scored[j].Score })

	if topN > 0 && len(scored) > topN {
		scored = scored[:topN]
	}
	return scored, nil
}

func (s *Selector) scoreForFramework(parsed *analyzer.Analysis, frameworkID string) float64 {
	fid := strings.ToLower(frameworkID)
	rawL := strings.ToLower(parsed.Raw)
	score := 0.0

	switch fid {
	case "clear":
		// Marketing / emotional content.
		if parsed.Audience == analyzer.AudienceMarketing {
			score += 1.5
		}
		if parsed.Tone == analyzer.ToneCasual || parsed.Tone == analyzer.ToneUrgent {
			score += 0.5
		}
	case "ape":
		if anyInSet(parsed.Verbs, teachingTriggers) {
			score += 1.2
		}
	case "stage":
		if anyInSet(parsed.Nouns, planningTriggers) {
			score += 1.4
		}
	case "pro", "roses":
		// Problem-solving framing.
		if containsAny(rawL, problemTriggers) {
			score += 1.0
		}
	}

	// Tech bias for the teaching/planning frameworks.
	if (fid == "ape" || fid == "stage") && len(parsed.Domains) > 0 {
		score += 0.3
	}

	return score
}

func anyInSet(have, want []string) bool {
	for _, h := range have {
		for _, w := range want {
			if h == w {
				return true
			}
		}
	}
	return false
}

func containsAny(text string, words []string) bool {
	for _, w := range words {
		if strings.Contains(text, w) {
			return true
		}
	}
	return false
}

func round3(v float64) float64 {
	return math.Round(v*1000) / 1000
}
