// internal/core/selector/selector_test.go
package selector

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/skanenje/prompt-enhancer/internal/core/analyzer"
	"github.com/skanenje/prompt-enhancer/internal/store"
)

// ==========================
// Test Helpers
// ==========================

type fixedStore struct {
	items   []store.Summary
	listErr error
}

func (f *fixedStore) List(ctx context.Context) ([]store.Summary, error) {
	return f.items, f.listErr
}

func (f *fixedStore) Get(ctx context.Context, id string) (*store.Framework, error) {
	return nil, store.ErrNotFound
}

func (f *fixedStore) Save(ctx context.Context, def []byte) (*store.Framework, error) {
	return nil, fmt.Errorf("read-only store")
}

func createTestStore() *fixedStore {
	return &fixedStore{items: []store.Summary{
		{ID: "ape", Name: "APE"},
		{ID: "clear", Name: "CLEAR"},
		{ID: "pro", Name: "PRO"},
		{ID: "roses", Name: "ROSES"},
		{ID: "stage", Name: "STAGE"},
	}}
}

func analyze(text string) *analyzer.Analysis {
	return analyzer.New(nil).Analyze(text)
}

// ==========================
// Suggestion Tests
// ==========================

func TestSelector_Suggest(t *testing.T) {
	tests := []struct {
		name     string
		prompt   string
		topN     int
		validate func(t *testing.T, scored []Score)
	}{
		{
			name:   "teaching prompt ranks ape first",
			prompt: "explain machine learning to a student in 5 minutes",
			topN:   3,
			validate: func(t *testing.T, scored []Score) {
				require.Len(t, scored, 3)
				assert.Equal(t, "ape", scored[0].ID)
				assert.Greater(t, scored[0].Score, 0.0)
			},
		},
		{
			name:   "marketing prompt ranks clear first",
			prompt: "urgent linkedin post announcing our launch",
			topN:   3,
			validate: func(t *testing.T, scored []Score) {
				require.NotEmpty(t, scored)
				assert.Equal(t, "clear", scored[0].ID)
				assert.Equal(t, 2.0, scored[0].Score)
			},
		},
		{
			name:   "planning prompt with tech domain ranks stage first",
			prompt: "plan a roadmap for our go microservice",
			topN:   3,
			validate: func(t *testing.T, scored []Score) {
				require.NotEmpty(t, scored)
				assert.Equal(t, "stage", scored[0].ID)
				assert.Equal(t, 1.7, scored[0].Score)
			},
		},
		{
			name:   "problem prompt favors pro and roses equally",
			prompt: "fix the bug in the login flow",
			topN:   5,
			validate: func(t *testing.T, scored []Score) {
				require.Len(t, scored, 5)
				assert.Equal(t, "pro", scored[0].ID)
				assert.Equal(t, "roses", scored[1].ID)
				assert.Equal(t, scored[0].Score, scored[1].Score)
			},
		},
		{
			name:   "zero-score frameworks are still returned",
			prompt: "hello there",
			topN:   5,
			validate: func(t *testing.T, scored []Score) {
				require.Len(t, scored, 5)
				for _, s := range scored {
					assert.Zero(t, s.Score)
				}
				// Ties keep store enumeration order.
				assert.Equal(t, "ape", scored[0].ID)
				assert.Equal(t, "stage", scored[4].ID)
			},
		},
		{
			name:   "topN caps the result",
			prompt: "hello there",
			topN:   2,
			validate: func(t *testing.T, scored []Score) {
				assert.Len(t, scored, 2)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sel := New(createTestStore())
			scored, err := sel.Suggest(context.Background(), analyze(tt.prompt), tt.topN)
			require.NoError(t, err)

			for i := 1; i < len(scored); i++ {
				assert.GreaterOrEqual(t, scored[i-1].Score, scored[i].Score)
			}
			tt.validate(t, scored)
		})
	}
}

func TestSelector_SuggestPropagatesListError(t *testing.T) {
	sel := New(&fixedStore{listErr: fmt.Errorf("dir gone")})
	_, err := sel.Suggest(context.Background(), analyze("explain things"), 3)
	assert.Error(t, err)
}
