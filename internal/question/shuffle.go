package question

import "math/rand"

// Shuffle returns a pseudo-random permutation of qs with each question's
// option list independently permuted. The source slice and its option
// slices are left untouched so the bank can seed further sessions.
func Shuffle(qs []Question, rng *rand.Rand) []Question {
	out := make([]Question, len(qs))
	copy(out, qs)
	rng.Shuffle(len(out), func(i, j int) {
		out[i], out[j] = out[j], out[i]
	})

	for i := range out {
		if len(out[i].Options) == 0 {
			continue
		}
		opts := make([]string, len(out[i].Options))
		copy(opts, out[i].Options)
		rng.Shuffle(len(opts), func(a, b int) {
			opts[a], opts[b] = opts[b], opts[a]
		})
		out[i].Options = opts
	}
	return out
}
