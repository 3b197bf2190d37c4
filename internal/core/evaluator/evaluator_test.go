// internal/core/evaluator/evaluator_test.go
package evaluator

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/skanenje/prompt-enhancer/internal/core/analyzer"
)

// ==========================
// Scoring Tests
// ==========================

func TestEvaluator_Score(t *testing.T) {
	tests := []struct {
		name       string
		enhanced   string
		withParser bool
		validate   func(t *testing.T, m *Metrics, notes []string)
	}{
		{
			name:     "teaching prompt scores deterministic sub-scores",
			enhanced: "explain machine learning to a student in 5 minutes.",
			validate: func(t *testing.T, m *Metrics, notes []string) {
				assert.Equal(t, 10.0, m.Clarity)
				assert.Equal(t, 5.0, m.Specificity)
				assert.Equal(t, 0.0, m.ContextRichness)
				assert.Equal(t, 0.0, m.Actionability)
				assert.Equal(t, 3.75, m.Overall)
				assert.Contains(t, notes, "Contains clear action verb")
				assert.Contains(t, notes, "Contains numeric specificity")
				assert.Contains(t, notes, "Specifies target audience")
			},
		},
		{
			name:     "vague prompt is penalized with notes",
			enhanced: "maybe do something sometime?",
			validate: func(t *testing.T, m *Metrics, notes []string) {
				assert.Contains(t, notes, "Missing explicit action verb")
				assert.Contains(t, notes, "Contains ambiguous language")
				assert.Less(t, m.Clarity, 5.0)
			},
		},
		{
			name: "context-rich prompt with entities and domain signals",
			enhanced: "Given the background, compare Apache Kafka with RabbitMQ for our iot pipeline " +
				"because we must choose within 2 weeks. First check throughput, then verify the latency numbers.",
			withParser: true,
			validate: func(t *testing.T, m *Metrics, notes []string) {
				assert.GreaterOrEqual(t, m.ContextRichness, 5.0)
				assert.GreaterOrEqual(t, m.Actionability, 5.0)
				assert.Contains(t, notes, "Provides contextual background")
				assert.Contains(t, notes, "Contains specific entities")
				assert.Contains(t, notes, "Demonstrates domain knowledge")
				assert.Contains(t, notes, "Provides step-by-step guidance")
			},
		},
		{
			name:     "empty text stays at the floor",
			enhanced: "",
			validate: func(t *testing.T, m *Metrics, notes []string) {
				assert.Zero(t, m.Specificity)
				assert.Zero(t, m.ContextRichness)
				assert.Zero(t, m.Actionability)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var parser analyzer.Parser
			if tt.withParser {
				parser = analyzer.NewHeuristicParser()
			}
			parsed := analyzer.New(parser).Analyze(tt.enhanced)

			m, notes := New().Score(tt.enhanced, nil, parsed)
			require.NotNil(t, m)

			for _, sub := range []float64{m.Clarity, m.Specificity, m.ContextRichness, m.Actionability} {
				assert.GreaterOrEqual(t, sub, 0.0)
				assert.LessOrEqual(t, sub, 10.0)
			}
			assert.InDelta(t, (m.Clarity+m.Specificity+m.ContextRichness+m.Actionability)/4, m.Overall, 0.01)

			tt.validate(t, m, notes)
		})
	}
}

func TestEvaluator_ScoreWithoutAnalysis(t *testing.T) {
	m, _ := New().Score("explain the deployment process to a new developer.", nil, nil)
	require.NotNil(t, m)
	assert.GreaterOrEqual(t, m.Clarity, 4.0)
}
