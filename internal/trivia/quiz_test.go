package trivia

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPickQuizQuestionExcludesPrevious(t *testing.T) {
	candidates := []Question{
		{ID: 5, Question: "five"},
		{ID: 6, Question: "six"},
		{ID: 7, Question: "seven"},
	}

	// With 5 and 6 already asked, 7 is the only eligible question no
	// matter what the random source does.
	for i := 0; i < 50; i++ {
		picked := pickQuizQuestion(candidates, []int{5, 6}, defaultIntN)
		require.NotNil(t, picked)
		assert.Equal(t, 7, picked.ID)
	}
}

func TestPickQuizQuestionEmptyPool(t *testing.T) {
	candidates := []Question{{ID: 1}, {ID: 2}}

	assert.Nil(t, pickQuizQuestion(candidates, []int{1, 2}, defaultIntN))
	assert.Nil(t, pickQuizQuestion(nil, nil, defaultIntN))
}

func TestPickQuizQuestionDeterministicWithInjectedSource(t *testing.T) {
	candidates := []Question{{ID: 10}, {ID: 20}, {ID: 30}}

	first := pickQuizQuestion(candidates, nil, func(n int) int { return 0 })
	last := pickQuizQuestion(candidates, nil, func(n int) int { return n - 1 })

	require.NotNil(t, first)
	require.NotNil(t, last)
	assert.Equal(t, 10, first.ID)
	assert.Equal(t, 30, last.ID)
}

func TestPickQuizQuestionRoughlyUniform(t *testing.T) {
	candidates := []Question{{ID: 1}, {ID: 2}, {ID: 3}, {ID: 4}}

	const trials = 8000
	counts := map[int]int{}
	for i := 0; i < trials; i++ {
		picked := pickQuizQuestion(candidates, nil, defaultIntN)
		require.NotNil(t, picked)
		counts[picked.ID]++
	}

	expected := trials / len(candidates)
	for id, count := range counts {
		assert.InDelta(t, expected, count, float64(expected)/2, "id %d drawn %d times", id, count)
	}
	assert.Len(t, counts, len(candidates), "every eligible question should be drawn")
}
