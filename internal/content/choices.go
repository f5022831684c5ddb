package content

import "math/rand"

// GenerateChoices returns n distinct answer choices in shuffled order: the
// answer plus positive distractors within max(5, |answer|) of it.
func GenerateChoices(answer, n int, rng *rand.Rand) []int {
	if n < 1 {
		n = 1
	}
	if rng == nil {
		rng = rand.New(rand.NewSource(int64(answer)))
	}
	spread := answer
	if spread < 0 {
		spread = -spread
	}
	if spread < 5 {
		spread = 5
	}

	seen := map[int]bool{answer: true}
	choices := []int{answer}
	for tries := 0; len(choices) < n && tries < 100*n; tries++ {
		c := answer + rng.Intn(2*spread+1) - spread
		if c > 0 && !seen[c] {
			seen[c] = true
			choices = append(choices, c)
		}
	}
	// narrow ranges around small answers can run dry
	for c := answer + 1; len(choices) < n; c++ {
		if c > 0 && !seen[c] {
			seen[c] = true
			choices = append(choices, c)
		}
	}

	rng.Shuffle(len(choices), func(i, j int) { choices[i], choices[j] = choices[j], choices[i] })
	return choices
}
