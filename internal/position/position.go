// Package position computes sparse integer positions for ordered sibling
// sets (columns within a board, cards within a column). Siblings are spaced
// Gap apart; any insertion at an explicit index first rebalances the whole
// set back to canonical multiples of Gap, so positions never collide and
// never degrade.
package position

import "github.com/google/uuid"

// Gap is the spacing between adjacent siblings after a rebalance.
const Gap = 1000

// Next returns the position for an entity appended after the current
// maximum. An empty group (maxPosition 0) yields Gap.
func Next(maxPosition int) int {
	return maxPosition + Gap
}

// ForIndex returns the position an entity takes when inserted at index into
// a freshly rebalanced group. An index beyond the end of the group simply
// lands the entity last with a wider gap; order stays canonical.
func ForIndex(index int) int {
	return (index + 1) * Gap
}

// Sequence returns the canonical rebalance targets for n siblings:
// Gap, 2*Gap, ... n*Gap.
func Sequence(n int) []int {
	positions := make([]int, n)
	for i := range positions {
		positions[i] = ForIndex(i)
	}
	return positions
}

// ValidatePermutation reports whether ordered is an exact permutation of
// current: same length, same membership, no duplicates.
func ValidatePermutation(current, ordered []uuid.UUID) bool {
	if len(ordered) == 0 || len(ordered) != len(current) {
		return false
	}

	seen := make(map[uuid.UUID]struct{}, len(current))
	for _, id := range current {
		seen[id] = struct{}{}
	}

	for _, id := range ordered {
		if _, ok := seen[id]; !ok {
			return false
		}
		delete(seen, id)
	}
	return len(seen) == 0
}
