package position_test

import (
	"testing"

	"taskboard/internal/position"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestNext(t *testing.T) {
	assert.Equal(t, 1000, position.Next(0), "empty group starts at the gap")
	assert.Equal(t, 4000, position.Next(3000))
	assert.Equal(t, 1750, position.Next(750))
}

func TestForIndex(t *testing.T) {
	assert.Equal(t, 1000, position.ForIndex(0))
	assert.Equal(t, 2000, position.ForIndex(1))
	assert.Equal(t, 10000, position.ForIndex(9))
}

func TestSequence(t *testing.T) {
	assert.Empty(t, position.Sequence(0))
	assert.Equal(t, []int{1000, 2000, 3000}, position.Sequence(3))
}

func TestSequenceStrictlyIncreasing(t *testing.T) {
	seq := position.Sequence(50)
	for i := 1; i < len(seq); i++ {
		assert.Greater(t, seq[i], seq[i-1])
	}
}

func TestValidatePermutation(t *testing.T) {
	a, b, c := uuid.New(), uuid.New(), uuid.New()
	current := []uuid.UUID{a, b, c}

	assert.True(t, position.ValidatePermutation(current, []uuid.UUID{c, a, b}))
	assert.True(t, position.ValidatePermutation(current, []uuid.UUID{a, b, c}))

	// Wrong cardinality.
	assert.False(t, position.ValidatePermutation(current, []uuid.UUID{a, b}))
	assert.False(t, position.ValidatePermutation(current, []uuid.UUID{a, b, c, uuid.New()}))

	// Wrong membership.
	assert.False(t, position.ValidatePermutation(current, []uuid.UUID{a, b, uuid.New()}))

	// Duplicates.
	assert.False(t, position.ValidatePermutation(current, []uuid.UUID{a, a, b}))

	// Empty lists never validate.
	assert.False(t, position.ValidatePermutation(nil, nil))
	assert.False(t, position.ValidatePermutation(current, nil))
}
