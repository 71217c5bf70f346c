package domain

import (
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
)

func questions(ids ...int64) []*Question {
	qs := make([]*Question, 0, len(ids))
	for _, id := range ids {
		qs = append(qs, &Question{ID: id, Question: "q", Answer: "a", Difficulty: 1, CategoryID: 1})
	}
	return qs
}

func TestPickUnseen_NeverReturnsExcludedID(t *testing.T) {
	candidates := questions(1, 2, 3, 4, 5, 6)
	previous := []int64{1, 3, 5}
	excluded := map[int64]bool{1: true, 3: true, 5: true}

	for i := 0; i < 200; i++ {
		picked := PickUnseen(candidates, previous, rand.IntN)
		if assert.NotNil(t, picked) {
			assert.False(t, excluded[picked.ID], "picked excluded question %d", picked.ID)
		}
	}
}

func TestPickUnseen_AllExcludedReturnsNil(t *testing.T) {
	candidates := questions(1, 2, 3)
	assert.Nil(t, PickUnseen(candidates, []int64{3, 2, 1}, rand.IntN))
}

func TestPickUnseen_NoCandidates(t *testing.T) {
	assert.Nil(t, PickUnseen(nil, nil, rand.IntN))
	assert.Nil(t, PickUnseen([]*Question{}, []int64{1}, rand.IntN))
}

func TestPickUnseen_UsesIntnOverRemaining(t *testing.T) {
	candidates := questions(10, 20, 30, 40)
	var gotN int

	picked := PickUnseen(candidates, []int64{20}, func(n int) int {
		gotN = n
		return n - 1
	})

	assert.Equal(t, 3, gotN, "intn should be asked over the unseen questions only")
	if assert.NotNil(t, picked) {
		assert.Equal(t, int64(40), picked.ID)
	}
}

func TestPickUnseen_CoversEveryUnseenQuestion(t *testing.T) {
	candidates := questions(1, 2, 3, 4)
	seen := map[int64]int{}

	for i := 0; i < 4; i++ {
		idx := i
		picked := PickUnseen(candidates, nil, func(int) int { return idx })
		seen[picked.ID]++
	}

	assert.Len(t, seen, 4, "each index should map to a distinct question")
}

func TestPickUnseen_SkipsNilCandidates(t *testing.T) {
	candidates := []*Question{nil, {ID: 7}, nil}
	picked := PickUnseen(candidates, nil, rand.IntN)
	if assert.NotNil(t, picked) {
		assert.Equal(t, int64(7), picked.ID)
	}
}
