package ledger

import (
	"fmt"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMergeTargets(t *testing.T) {
	t.Run("Duplicates are summed in first-seen order", func(t *testing.T) {
		merged, err := MergeTargets([]Target{{"leadA", 100}, {"leadB", 20}, {"leadA", 50}})
		require.NoError(t, err)
		assert.Equal(t, []Target{{"leadA", 150}, {"leadB", 20}}, merged)
	})

	t.Run("Lead ids are trimmed", func(t *testing.T) {
		merged, err := MergeTargets([]Target{{" leadA", 1}, {"leadA ", 2}})
		require.NoError(t, err)
		assert.Equal(t, []Target{{"leadA", 3}}, merged)
	})

	tooMany := make([]Target, MaxTargets+1)
	for i := range tooMany {
		tooMany[i] = Target{LeadId: fmt.Sprintf("lead-%d", i), Amount: 1}
	}

	invalid := []struct {
		name    string
		targets []Target
	}{
		{"Empty list", nil},
		{"Blank lead id", []Target{{"  ", 10}}},
		{"Zero amount", []Target{{"leadA", 0}}},
		{"Negative amount", []Target{{"leadA", -5}}},
		{"Overflow on merge", []Target{{"leadA", math.MaxInt64}, {"leadA", 1}}},
		{"Too many leads", tooMany},
	}
	for _, tc := range invalid {
		t.Run(tc.name, func(t *testing.T) {
			_, err := MergeTargets(tc.targets)
			assert.ErrorIs(t, err, ErrInvalidArgument)
		})
	}
}

func TestSum(t *testing.T) {
	total, err := Sum([]Target{{"a", 600}, {"b", 400}})
	require.NoError(t, err)
	assert.Equal(t, int64(1000), total)

	_, err = Sum([]Target{{"a", math.MaxInt64}, {"b", 1}})
	assert.ErrorIs(t, err, ErrInvalidArgument)
}
