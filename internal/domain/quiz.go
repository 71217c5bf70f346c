package domain

// PickUnseen returns one question chosen uniformly at random among candidates
// whose ID is not in previous, or nil when every candidate has been served.
// intn must return a value in [0, n), like math/rand/v2.IntN.
func PickUnseen(candidates []*Question, previous []int64, intn func(n int) int) *Question {
	seen := make(map[int64]struct{}, len(previous))
	for _, id := range previous {
		seen[id] = struct{}{}
	}

	remaining := make([]*Question, 0, len(candidates))
	for _, q := range candidates {
		if q == nil {
			continue
		}
		if _, ok := seen[q.ID]; ok {
			continue
		}
		remaining = append(remaining, q)
	}

	if len(remaining) == 0 {
		return nil
	}
	return remaining[intn(len(remaining))]
}
