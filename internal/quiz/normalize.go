package quiz

import (
	"math/rand/v2"
	"slices"
)

// Normalize returns a copy of questions with each question's options
// independently shuffled by a uniform permutation drawn from rng.
// CorrectIndices is rewritten to the ascending set of new positions of the
// originally correct options, so the same option texts stay correct.
//
// Questions without options or without correct indices are passed through
// unchanged. The input is never mutated. A nil rng uses the global source.
func Normalize(questions []Question, rng *rand.Rand) []Question {
	out := make([]Question, len(questions))
	for i, q := range questions {
		out[i] = shuffleQuestion(q, rng)
	}
	return out
}

func shuffleQuestion(q Question, rng *rand.Rand) Question {
	if len(q.Options) == 0 || len(q.CorrectIndices) == 0 {
		return q
	}

	var perm []int
	if rng != nil {
		perm = rng.Perm(len(q.Options))
	} else {
		perm = rand.Perm(len(q.Options))
	}

	options := make([]string, len(perm))
	correct := make([]int, 0, len(q.CorrectIndices))
	for newIdx, oldIdx := range perm {
		options[newIdx] = q.Options[oldIdx]
		if q.IsCorrectIndex(oldIdx) {
			correct = append(correct, newIdx)
		}
	}

	q.Options = options
	q.CorrectIndices = slices.Clip(correct)
	return q
}
