package trivia

import "math/rand/v2"

// pickQuizQuestion filters candidates down to the eligible pool (ids not in
// previous) and picks one uniformly at random via intn. Returns nil when
// the pool is empty — an exhausted quiz, not an error.
func pickQuizQuestion(candidates []Question, previous []int, intn func(n int) int) *Question {
	asked := make(map[int]struct{}, len(previous))
	for _, id := range previous {
		asked[id] = struct{}{}
	}

	pool := make([]Question, 0, len(candidates))
	for _, q := range candidates {
		if _, ok := asked[q.ID]; !ok {
			pool = append(pool, q)
		}
	}

	if len(pool) == 0 {
		return nil
	}
	picked := pool[intn(len(pool))]
	return &picked
}

func defaultIntN(n int) int {
	return rand.IntN(n)
}
