// internal/core/synthesizer/synthesizer_test.go
package synthesizer

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/skanenje/prompt-enhancer/internal/common/logger"
	"github.com/skanenje/prompt-enhancer/internal/genai"
	"github.com/skanenje/prompt-enhancer/internal/store"
)

// ==========================
// Test Helpers
// ==========================

// scriptedModel answers field-extraction prompts and the final enhancement
// prompt from fixed scripts.
type scriptedModel struct {
	fieldValue   string
	fieldErr     error
	enhanceValue string
	enhanceErr   error
}

func (m *scriptedModel) GenerateContent(ctx context.Context, prompt string) (string, error) {
	if strings.HasPrefix(prompt, "Improve the clarity") {
		return m.enhanceValue, m.enhanceErr
	}
	return m.fieldValue, m.fieldErr
}

// recordingObserver captures model call outcomes in order.
type recordingObserver struct {
	outcomes []string
}

func (r *recordingObserver) RecordModelCall(ctx context.Context, outcome string) {
	r.outcomes = append(r.outcomes, outcome)
}

func createTestFramework() *store.Framework {
	return &store.Framework{
		ID:       "ape",
		Name:     "APE",
		Template: "Given {Context}, {Action}. The purpose is {Purpose} and to achieve {Expectation}.",
		Fields: map[string]string{
			"Context":     "Background for the request",
			"Action":      "What to do",
			"Purpose":     "Why it matters",
			"Expectation": "What a good answer looks like",
		},
	}
}

// ==========================
// Heuristic Synthesis Tests
// ==========================

func TestSynthesize_HeuristicFill(t *testing.T) {
	s := New(nil, nil, logger.NewTestLogger(t))
	result := s.Synthesize(context.Background(),
		"explain machine learning to a student in 5 minutes",
		createTestFramework(), nil, true)

	require.NotNil(t, result)
	assert.Equal(t, "explain machine learning", result.FillMap["Action"])
	assert.Equal(t, "the user wants to learn about machine learning", result.FillMap["Context"])
	assert.Equal(t, "to build a clear understanding of machine learning", result.FillMap["Purpose"])
	assert.Equal(t, "a clear, practical explanation of machine learning", result.FillMap["Expectation"])

	assert.NotContains(t, result.Text, "{")
	assert.NotContains(t, result.Text, "}")
	assert.True(t, strings.HasSuffix(result.Text, "."))
	assert.False(t, strings.HasSuffix(result.Text, ".."))
	assert.Contains(t, result.Diagnostics, "Naturalized final prompt.")
}

func TestSynthesize_EveryDeclaredFieldGetsAnEntry(t *testing.T) {
	fw := &store.Framework{
		ID:       "custom",
		Template: "{Whatever} do it",
		Fields:   map[string]string{"Whatever": ""},
	}
	s := New(nil, nil, logger.NewTestLogger(t))
	result := s.Synthesize(context.Background(), "", fw, nil, false)

	v, ok := result.FillMap["Whatever"]
	require.True(t, ok)
	assert.Empty(t, v)
	assert.Contains(t, result.Diagnostics, "No value for Whatever; left blank")
	assert.Equal(t, "do it.", result.Text)
}

func TestSynthesize_OverridesWinOverInference(t *testing.T) {
	s := New(nil, nil, logger.NewTestLogger(t))
	result := s.Synthesize(context.Background(),
		"explain machine learning to a student",
		createTestFramework(),
		map[string]string{"Action": "compare supervised and unsupervised learning"},
		false)

	assert.Equal(t, "compare supervised and unsupervised learning", result.FillMap["Action"])
	assert.Contains(t, result.Diagnostics,
		"Using override for Action: 'compare supervised and unsupervised learning'")
	// Remaining fields are still inferred.
	assert.NotEmpty(t, result.FillMap["Context"])
}

func TestSynthesize_AppendFallbackOnMalformedTemplate(t *testing.T) {
	fw := &store.Framework{
		ID:       "broken",
		Template: "Do {Missing} now",
		Fields:   map[string]string{"Topic": "The subject"},
	}
	s := New(nil, nil, logger.NewTestLogger(t))
	result := s.Synthesize(context.Background(), "explain go", fw, nil, false)

	assert.Equal(t, "explain go Topic: go.", result.Text)
	found := false
	for _, d := range result.Diagnostics {
		if strings.HasPrefix(d, "Template fill failed") {
			found = true
		}
	}
	assert.True(t, found, "expected a template fill diagnostic, got %v", result.Diagnostics)
}

func TestSynthesize_NonEmptyOutputWithoutModel(t *testing.T) {
	prompts := []string{
		"explain machine learning to a student in 5 minutes",
		"fix the bug in the login flow",
		"hello",
	}
	s := New(nil, nil, logger.NewTestLogger(t))
	for _, p := range prompts {
		result := s.Synthesize(context.Background(), p, createTestFramework(), nil, false)
		assert.NotEmpty(t, strings.TrimRight(result.Text, "."), "prompt %q", p)
	}
}

// ==========================
// Topic Extraction Tests
// ==========================

func TestExtractTopic(t *testing.T) {
	tests := []struct {
		prompt string
		topic  string
		ok     bool
	}{
		{"explain machine learning to a student in 5 minutes", "machine learning", true},
		{"I want to learn about iot and mqtt", "iot and mqtt", true},
		{"help me understand kubernetes networking", "kubernetes networking", true},
		{"hello there", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.prompt, func(t *testing.T) {
			topic, ok := extractTopic(tt.prompt)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.topic, topic)
		})
	}
}

// ==========================
// Model-Backed Inference Tests
// ==========================

func TestInferField_ModelValueUsed(t *testing.T) {
	model := &scriptedModel{fieldValue: "distributed tracing", enhanceValue: strings.Repeat("a detailed improved prompt ", 10)}
	fw := &store.Framework{
		ID:       "mini",
		Template: "Explain {Topic} with practical examples and common pitfalls",
		Fields:   map[string]string{"Topic": "The subject"},
	}
	s := New(model, nil, logger.NewTestLogger(t))
	result := s.Synthesize(context.Background(), "tell me about tracing", fw, nil, false)

	assert.Equal(t, "distributed tracing", result.FillMap["Topic"])
	assert.Contains(t, result.Diagnostics, "Inferred Topic from model: 'distributed tracing'")
	// One trail entry per decision; no duplicate generic line.
	assert.NotContains(t, result.Diagnostics, "Inferred Topic: 'distributed tracing'")
}

func TestInferField_OverlongModelValueRejected(t *testing.T) {
	model := &scriptedModel{fieldValue: strings.Repeat("x", 250)}
	fw := &store.Framework{
		ID:       "mini",
		Template: "{Action} today",
		Fields:   map[string]string{"Action": "What to do"},
	}
	s := New(model, nil, logger.NewTestLogger(t))
	result := s.Synthesize(context.Background(), "explain go", fw, nil, false)

	assert.Equal(t, "explain go", result.FillMap["Action"])
	assert.Contains(t, result.Diagnostics, "Model value for Action rejected (too long); using heuristic")
}

// ==========================
// Enhancement Pass Tests
// ==========================

func TestEnhance(t *testing.T) {
	longEnough := "Explain the fundamentals of machine learning to an undergraduate student, covering supervised and unsupervised approaches with one concrete example each"

	tests := []struct {
		name       string
		model      *scriptedModel
		wantApply  bool
		diagSubstr string
	}{
		{
			name:       "applied when output is substantial",
			model:      &scriptedModel{fieldValue: "ml basics", enhanceValue: longEnough},
			wantApply:  true,
			diagSubstr: "AI enhancement applied",
		},
		{
			name:       "rejected when output collapses",
			model:      &scriptedModel{fieldValue: "ml basics", enhanceValue: "ok"},
			diagSubstr: "AI enhancement rejected (output too short); keeping naturalized prompt",
		},
		{
			name:       "unavailable on model error",
			model:      &scriptedModel{fieldValue: "ml basics", enhanceErr: context.DeadlineExceeded},
			diagSubstr: "AI enhancement unavailable; keeping naturalized prompt",
		},
	}

	fw := &store.Framework{
		ID:       "mini",
		Template: "Explain {Topic} with practical examples and common pitfalls for beginners",
		Fields:   map[string]string{"Topic": "The subject"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := New(tt.model, nil, logger.NewTestLogger(t))
			result := s.Synthesize(context.Background(), "explain machine learning", fw, nil, false)

			assert.Contains(t, result.Diagnostics, tt.diagSubstr)
			if tt.wantApply {
				assert.Equal(t, Naturalize(longEnough), result.Text)
			} else {
				assert.Contains(t, result.Text, "ml basics")
			}
		})
	}
}

// ==========================
// Model Outcome Metrics Tests
// ==========================

func TestSynthesize_RecordsModelOutcomes(t *testing.T) {
	longEnough := "Explain the fundamentals of machine learning to an undergraduate student, covering supervised and unsupervised approaches with one concrete example each"

	fw := &store.Framework{
		ID:       "mini",
		Template: "Explain {Topic} with practical examples and common pitfalls for beginners",
		Fields:   map[string]string{"Topic": "The subject"},
	}

	tests := []struct {
		name  string
		model *scriptedModel
		want  []string
	}{
		{
			name:  "accepted value and applied enhancement",
			model: &scriptedModel{fieldValue: "ml basics", enhanceValue: longEnough},
			want:  []string{"ok", "ok"},
		},
		{
			name:  "timeouts are labeled per call",
			model: &scriptedModel{fieldErr: genai.ErrTimeout, enhanceErr: genai.ErrTimeout},
			want:  []string{"timeout", "timeout"},
		},
		{
			name:  "auth failures are labeled",
			model: &scriptedModel{fieldErr: genai.ErrUnauthenticated, enhanceErr: genai.ErrUnauthenticated},
			want:  []string{"unauthenticated", "unauthenticated"},
		},
		{
			name:  "degenerate output is quality_rejected",
			model: &scriptedModel{fieldValue: strings.Repeat("x", 250), enhanceValue: "ok"},
			want:  []string{"quality_rejected", "quality_rejected"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := &recordingObserver{}
			s := New(tt.model, rec, logger.NewTestLogger(t))
			s.Synthesize(context.Background(), "explain machine learning", fw, nil, false)

			assert.Equal(t, tt.want, rec.outcomes)
		})
	}
}

func TestSynthesize_NoOutcomesWithoutModel(t *testing.T) {
	rec := &recordingObserver{}
	s := New(nil, rec, logger.NewTestLogger(t))
	s.Synthesize(context.Background(), "explain machine learning", createTestFramework(), nil, false)

	assert.Empty(t, rec.outcomes)
}

func TestEnhance_SkippedForShortPrompts(t *testing.T) {
	model := &scriptedModel{fieldValue: "ok"}
	fw := &store.Framework{
		ID:       "mini",
		Template: "Short {X} text",
		Fields:   map[string]string{"X": ""},
	}
	s := New(model, nil, logger.NewTestLogger(t))
	result := s.Synthesize(context.Background(), "hi", fw, nil, false)

	assert.Contains(t, result.Diagnostics, "AI enhancement skipped (prompt too short)")
	assert.Equal(t, "Short ok text.", result.Text)
}
