package session

import (
	"math/rand"
	"sort"

	"roadready/internal/catalog"
	"roadready/internal/store"
)

// Practice sampling constants. A practice test serves SessionSize questions:
// the LowAttemptCount least-attempted candidates taken unconditionally plus
// RandomFillCount drawn uniformly from the rest.
const (
	SessionSize     = 35
	LowAttemptCount = 20
	RandomFillCount = 15
)

// selectPracticeQuestions picks the question ids for a practice session.
// Pools of SessionSize or fewer are returned whole, shuffled. Larger pools
// are stable-sorted ascending by historical attempt count so never-attempted
// questions come first; the lowest LowAttemptCount are always included and
// RandomFillCount more are sampled uniformly from the remainder. The combined
// set is shuffled once more so selection priority does not leak into
// delivery order.
func selectPracticeQuestions(pool []catalog.Question, history map[int]*store.QuestionRecord, rng *rand.Rand) []int {
	candidates := make([]catalog.Question, len(pool))
	copy(candidates, pool)

	if len(candidates) <= SessionSize {
		shuffleQuestions(candidates, rng)
		return questionIDs(candidates)
	}

	attemptsFor := func(q catalog.Question) int {
		if rec, ok := history[q.ID]; ok {
			return rec.Attempts
		}
		return 0
	}
	sort.SliceStable(candidates, func(i, j int) bool {
		return attemptsFor(candidates[i]) < attemptsFor(candidates[j])
	})

	selected := make([]catalog.Question, 0, SessionSize)
	selected = append(selected, candidates[:LowAttemptCount]...)

	rest := candidates[LowAttemptCount:]
	shuffleQuestions(rest, rng)
	fill := RandomFillCount
	if fill > len(rest) {
		fill = len(rest)
	}
	selected = append(selected, rest[:fill]...)

	shuffleQuestions(selected, rng)
	return questionIDs(selected)
}

// shuffleQuestions performs a uniform Fisher-Yates shuffle in place.
func shuffleQuestions(questions []catalog.Question, rng *rand.Rand) {
	rng.Shuffle(len(questions), func(i, j int) {
		questions[i], questions[j] = questions[j], questions[i]
	})
}

func questionIDs(questions []catalog.Question) []int {
	ids := make([]int, len(questions))
	for i, q := range questions {
		ids[i] = q.ID
	}
	return ids
}
